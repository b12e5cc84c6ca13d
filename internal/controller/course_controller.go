package controller

import (
	"strconv"

	"science_lms_backend/internal/service"
	"science_lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// List godoc
// @Summary Course catalog
// @Description Published courses for everyone; teachers see their own courses in every status, administrators see all
// @Tags courses
// @Produce  json
// @Param   page query int false "Page number" default(1)
// @Param   limit query int false "Page size" default(12)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/courses [get]
func (c *CourseController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "12"))

	caller := util.CallerFromContext(ctx)
	courses, total, err := c.CourseService.List(caller, page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  courses,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// Get godoc
// @Summary Course detail
// @Description The course with its published lessons, quizzes, and assignments, the forums, and the caller's enrollment when they are a student
// @Tags courses
// @Produce  json
// @Param   id path int true "Course ID"
// @Success 200 {object} util.Response{data=service.CourseDetail}
// @Failure 403 {object} util.Response "Unpublished course"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/courses/{id} [get]
func (c *CourseController) Get(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	caller := util.CallerFromContext(ctx)

	detail, err := c.CourseService.Get(id, caller)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, detail)
}

// Create godoc
// @Summary Create a course
// @Description Teachers create courses under their own id regardless of the submitted teacher; administrators may assign any teacher
// @Tags courses
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.CoursePayload true "Course form"
// @Success 201 {object} util.Response{data=model.Course}
// @Failure 422 {object} util.Response "Validation failed"
// @Router /api/courses [post]
func (c *CourseController) Create(ctx *gin.Context) {
	var payload service.CoursePayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.Create(payload, util.CallerFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, course)
}

// Update godoc
// @Summary Update a course
// @Description Partial update; absent fields keep their current values
// @Tags courses
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Course ID"
// @Param   body body service.CoursePayload true "Changed fields"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 403 {object} util.Response "Not the owning teacher"
// @Failure 422 {object} util.Response "Validation failed"
// @Router /api/courses/{id} [put]
func (c *CourseController) Update(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	var payload service.CoursePayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.Update(id, payload, util.CallerFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, course)
}

// Delete godoc
// @Summary Delete a course
// @Description Removes the course and all nested content, enrollments, and progress
// @Tags courses
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Course ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response "Not the owning teacher"
// @Router /api/courses/{id} [delete]
func (c *CourseController) Delete(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	if err := c.CourseService.Delete(id, util.CallerFromContext(ctx)); err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}
