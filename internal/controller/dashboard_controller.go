package controller

import (
	"science_lms_backend/internal/service"
	"science_lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService}
}

// Dashboard godoc
// @Summary Role-based dashboard
// @Description Students get enrollments and upcoming deadlines, teachers their courses and newest submissions, administrators system counters and recent records; anonymous visitors get the public overview
// @Tags dashboard
// @Produce  json
// @Success 200 {object} util.Response
// @Router /api/dashboard [get]
func (c *DashboardController) Dashboard(ctx *gin.Context) {
	data, err := c.DashboardService.ForCaller(ctx.Request.Context(), util.CallerFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, data)
}
