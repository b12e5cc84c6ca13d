package controller

import (
	"science_lms_backend/internal/service"
	"science_lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssignmentController struct {
	AssignmentService *service.AssignmentService
}

func NewAssignmentController(assignmentService *service.AssignmentService) *AssignmentController {
	return &AssignmentController{AssignmentService: assignmentService}
}

// Create godoc
// @Summary Create an assignment
// @Tags assignments
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Course ID"
// @Param   body body service.AssignmentInput true "Assignment form"
// @Success 201 {object} util.Response{data=model.Assignment}
// @Failure 403 {object} util.Response "Not the owning teacher"
// @Router /api/courses/{id}/assignments [post]
func (c *AssignmentController) Create(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("id"))

	var input service.AssignmentInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	assignment, err := c.AssignmentService.Create(courseID, input, util.CallerFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, assignment)
}

// ListByCourse godoc
// @Summary Assignments of a course
// @Description Published assignments only, unless the caller manages the course
// @Tags assignments
// @Produce  json
// @Param   id path int true "Course ID"
// @Success 200 {object} util.Response{data=[]model.Assignment}
// @Router /api/courses/{id}/assignments [get]
func (c *AssignmentController) ListByCourse(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("id"))

	assignments, err := c.AssignmentService.ListByCourse(courseID, util.CallerFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, assignments)
}

// Get godoc
// @Summary Assignment detail
// @Tags assignments
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Assignment ID"
// @Success 200 {object} util.Response{data=model.Assignment}
// @Router /api/assignments/{id} [get]
func (c *AssignmentController) Get(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	assignment, err := c.AssignmentService.Get(id, util.CallerFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, assignment)
}

// Update godoc
// @Summary Update an assignment
// @Tags assignments
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Assignment ID"
// @Param   body body service.AssignmentInput true "Assignment form"
// @Success 200 {object} util.Response{data=model.Assignment}
// @Router /api/assignments/{id} [put]
func (c *AssignmentController) Update(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	var input service.AssignmentInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	assignment, err := c.AssignmentService.Update(id, input, util.CallerFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, assignment)
}

// Publish godoc
// @Summary Publish or unpublish an assignment
// @Tags assignments
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Assignment ID"
// @Param   body body PublishRequest true "Target state"
// @Success 200 {object} util.Response{data=model.Assignment}
// @Router /api/assignments/{id}/publish [patch]
func (c *AssignmentController) Publish(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	var req PublishRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	assignment, err := c.AssignmentService.Publish(id, *req.Published, util.CallerFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, assignment)
}

// Delete godoc
// @Summary Delete an assignment
// @Description Removes the assignment and its submissions
// @Tags assignments
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Assignment ID"
// @Success 200 {object} util.Response
// @Router /api/assignments/{id} [delete]
func (c *AssignmentController) Delete(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	if err := c.AssignmentService.Delete(id, util.CallerFromContext(ctx)); err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// SaveDraft godoc
// @Summary Save a submission draft
// @Description Keeps the work without submitting; can be called repeatedly
// @Tags assignments
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Assignment ID"
// @Param   body body service.SubmissionInput true "Draft content"
// @Success 200 {object} util.Response{data=model.AssignmentSubmission}
// @Router /api/assignments/{id}/draft [put]
func (c *AssignmentController) SaveDraft(ctx *gin.Context) {
	assignmentID := util.MustParseUint(ctx.Param("id"))

	var input service.SubmissionInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sub, err := c.AssignmentService.SaveDraft(assignmentID, input, util.CallerFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, sub)
}

// Submit godoc
// @Summary Submit an assignment
// @Description Marks late work past the due date; rejected entirely when late submission is off
// @Tags assignments
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Assignment ID"
// @Param   body body service.SubmissionInput true "Submission content"
// @Success 200 {object} util.Response{data=model.AssignmentSubmission}
// @Failure 400 {object} util.Response "Past due or already graded"
// @Router /api/assignments/{id}/submit [post]
func (c *AssignmentController) Submit(ctx *gin.Context) {
	assignmentID := util.MustParseUint(ctx.Param("id"))

	var input service.SubmissionInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sub, err := c.AssignmentService.Submit(assignmentID, input, util.CallerFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, sub)
}

// Grade godoc
// @Summary Grade a submission
// @Description Applies the late penalty to the score when the work was late
// @Tags assignments
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Submission ID"
// @Param   body body service.GradeInput true "Score and feedback"
// @Success 200 {object} util.Response{data=model.AssignmentSubmission}
// @Failure 403 {object} util.Response "Not a grader"
// @Router /api/submissions/{id}/grade [post]
func (c *AssignmentController) Grade(ctx *gin.Context) {
	submissionID := util.MustParseUint(ctx.Param("id"))

	var input service.GradeInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sub, err := c.AssignmentService.Grade(submissionID, input, util.CallerFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, sub)
}

// Return godoc
// @Summary Return a graded submission to the student
// @Tags assignments
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Submission ID"
// @Success 200 {object} util.Response{data=model.AssignmentSubmission}
// @Router /api/submissions/{id}/return [post]
func (c *AssignmentController) Return(ctx *gin.Context) {
	submissionID := util.MustParseUint(ctx.Param("id"))

	sub, err := c.AssignmentService.Return(submissionID, util.CallerFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, sub)
}

// ListSubmissions godoc
// @Summary Submissions for an assignment
// @Tags assignments
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Assignment ID"
// @Success 200 {object} util.Response{data=[]model.AssignmentSubmission}
// @Failure 403 {object} util.Response "Not the owning teacher"
// @Router /api/assignments/{id}/submissions [get]
func (c *AssignmentController) ListSubmissions(ctx *gin.Context) {
	assignmentID := util.MustParseUint(ctx.Param("id"))

	subs, err := c.AssignmentService.ListSubmissions(assignmentID, util.CallerFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, subs)
}
