package controller

import (
	"science_lms_backend/internal/service"
	"science_lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// Record godoc
// @Summary Record lesson progress
// @Description Upserts the caller's progress on a lesson; completion stamps the time and pins the percentage to 100
// @Tags progress
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Course ID"
// @Param   body body service.ProgressInput true "Progress update"
// @Success 200 {object} util.Response{data=model.StudentProgress}
// @Failure 400 {object} util.Response "Not enrolled"
// @Router /api/courses/{id}/progress [put]
func (c *ProgressController) Record(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("id"))

	var input service.ProgressInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, err := c.ProgressService.Record(courseID, input, util.CallerFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, progress)
}

// ForCourse godoc
// @Summary The caller's progress in a course
// @Description Per-lesson records plus the completed and total lesson counts
// @Tags progress
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Course ID"
// @Success 200 {object} util.Response{data=service.CourseProgress}
// @Router /api/courses/{id}/progress [get]
func (c *ProgressController) ForCourse(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("id"))

	progress, err := c.ProgressService.ForCourse(courseID, util.CallerFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, progress)
}
