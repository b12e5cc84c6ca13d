package controller

import (
	"science_lms_backend/internal/service"
	"science_lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LessonController struct {
	LessonService *service.LessonService
}

func NewLessonController(lessonService *service.LessonService) *LessonController {
	return &LessonController{LessonService: lessonService}
}

// List godoc
// @Summary Lessons of a course
// @Description Published lessons in order; the owning teacher and administrators also see drafts
// @Tags lessons
// @Produce  json
// @Param   id path int true "Course ID"
// @Success 200 {object} util.Response{data=[]model.Lesson}
// @Router /api/courses/{id}/lessons [get]
func (c *LessonController) List(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("id"))

	lessons, err := c.LessonService.ListByCourse(courseID, util.CallerFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, lessons)
}

// Get godoc
// @Summary Lesson detail
// @Description Drafts are visible only to the owning teacher and administrators
// @Tags lessons
// @Produce  json
// @Param   id path int true "Lesson ID"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Failure 403 {object} util.Response "Unpublished lesson"
// @Router /api/lessons/{id} [get]
func (c *LessonController) Get(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	lesson, err := c.LessonService.Get(id, util.CallerFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, lesson)
}

// Create godoc
// @Summary Add a lesson
// @Description Appends a lesson at the end of the course order
// @Tags lessons
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Course ID"
// @Param   body body service.LessonInput true "Lesson form"
// @Success 201 {object} util.Response{data=model.Lesson}
// @Failure 403 {object} util.Response "Not the owning teacher"
// @Router /api/courses/{id}/lessons [post]
func (c *LessonController) Create(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("id"))

	var input service.LessonInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.LessonService.Create(courseID, input, util.CallerFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, lesson)
}

// Update godoc
// @Summary Update a lesson
// @Tags lessons
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Lesson ID"
// @Param   body body service.LessonInput true "Lesson form"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Router /api/lessons/{id} [put]
func (c *LessonController) Update(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	var input service.LessonInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.LessonService.Update(id, input, util.CallerFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, lesson)
}

// Delete godoc
// @Summary Delete a lesson
// @Tags lessons
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Lesson ID"
// @Success 200 {object} util.Response
// @Router /api/lessons/{id} [delete]
func (c *LessonController) Delete(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	if err := c.LessonService.Delete(id, util.CallerFromContext(ctx)); err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// swagger:model PublishRequest
type PublishRequest struct {
	Published *bool `json:"published" binding:"required"`
}

// Publish godoc
// @Summary Publish or unpublish a lesson
// @Description The first publish stamps the publication time
// @Tags lessons
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Lesson ID"
// @Param   body body PublishRequest true "Target state"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Router /api/lessons/{id}/publish [patch]
func (c *LessonController) Publish(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	var req PublishRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.LessonService.Publish(id, *req.Published, util.CallerFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, lesson)
}

// swagger:model ReorderRequest
type ReorderRequest struct {
	LessonIDs []uint `json:"lessonIds" binding:"required,min=1"`
}

// Reorder godoc
// @Summary Reorder the lessons of a course
// @Tags lessons
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Course ID"
// @Param   body body ReorderRequest true "Lesson ids in the new order"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "A lesson does not belong to the course"
// @Router /api/courses/{id}/lessons/reorder [put]
func (c *LessonController) Reorder(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("id"))

	var req ReorderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.LessonService.Reorder(courseID, req.LessonIDs, util.CallerFromContext(ctx)); err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// UploadVideo godoc
// @Summary Attach a video to a lesson
// @Description Stores the file and derives the estimated duration from the video metadata
// @Tags lessons
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Lesson ID"
// @Param   video formData file true "Video file"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Router /api/lessons/{id}/video [post]
func (c *LessonController) UploadVideo(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	file, err := ctx.FormFile("video")
	if err != nil {
		util.BadRequest(ctx, "video file is required")
		return
	}

	lesson, err := c.LessonService.AttachVideo(ctx.Request.Context(), id, file, util.CallerFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, lesson)
}
