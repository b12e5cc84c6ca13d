package controller

import (
	"science_lms_backend/internal/service"
	"science_lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EnrollmentController struct {
	EnrollmentService *service.EnrollmentService
}

func NewEnrollmentController(enrollmentService *service.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{EnrollmentService: enrollmentService}
}

// Enroll godoc
// @Summary Enroll in a course
// @Description Students join a published course; enrolling twice is rejected
// @Tags enrollments
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Course ID"
// @Success 201 {object} util.Response{data=model.CourseEnrollment}
// @Failure 400 {object} util.Response "Already enrolled"
// @Failure 403 {object} util.Response "Not a student or course not published"
// @Router /api/courses/{id}/enroll [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("id"))

	enrollment, err := c.EnrollmentService.Enroll(courseID, util.CallerFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, enrollment)
}

// Drop godoc
// @Summary Drop a course
// @Tags enrollments
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Course ID"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "Not enrolled"
// @Router /api/courses/{id}/enroll [delete]
func (c *EnrollmentController) Drop(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("id"))

	if err := c.EnrollmentService.Drop(courseID, util.CallerFromContext(ctx)); err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// swagger:model CompleteEnrollmentRequest
type CompleteEnrollmentRequest struct {
	StudentID  uint    `json:"studentId" binding:"required"`
	FinalGrade float64 `json:"finalGrade" binding:"min=0,max=100"`
}

// Complete godoc
// @Summary Complete an enrollment
// @Description Teachers close out a student's enrollment with a final grade
// @Tags enrollments
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Course ID"
// @Param   body body CompleteEnrollmentRequest true "Student and grade"
// @Success 200 {object} util.Response{data=model.CourseEnrollment}
// @Failure 403 {object} util.Response "Not a grader"
// @Router /api/courses/{id}/complete [post]
func (c *EnrollmentController) Complete(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("id"))

	var req CompleteEnrollmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	enrollment, err := c.EnrollmentService.Complete(courseID, req.StudentID, req.FinalGrade, util.CallerFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, enrollment)
}
