package controller

import (
	"science_lms_backend/internal/service"
	"science_lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// Create godoc
// @Summary Create a quiz
// @Tags quizzes
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Course ID"
// @Param   body body service.QuizInput true "Quiz form"
// @Success 201 {object} util.Response{data=model.Quiz}
// @Failure 403 {object} util.Response "Not the owning teacher"
// @Router /api/courses/{id}/quizzes [post]
func (c *QuizController) Create(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("id"))

	var input service.QuizInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.Create(courseID, input, util.CallerFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, quiz)
}

// ListByCourse godoc
// @Summary Quizzes of a course
// @Description Published quizzes only, unless the caller manages the course
// @Tags quizzes
// @Produce  json
// @Param   id path int true "Course ID"
// @Success 200 {object} util.Response{data=[]model.Quiz}
// @Router /api/courses/{id}/quizzes [get]
func (c *QuizController) ListByCourse(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("id"))

	quizzes, err := c.QuizService.ListByCourse(courseID, util.CallerFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, quizzes)
}

// Get godoc
// @Summary Quiz with questions
// @Description Students receive questions without the correct answers or explanations
// @Tags quizzes
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Quiz ID"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Router /api/quizzes/{id} [get]
func (c *QuizController) Get(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	quiz, err := c.QuizService.Get(id, util.CallerFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, quiz)
}

// Update godoc
// @Summary Update a quiz
// @Tags quizzes
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Quiz ID"
// @Param   body body service.QuizInput true "Quiz form"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Router /api/quizzes/{id} [put]
func (c *QuizController) Update(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	var input service.QuizInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.Update(id, input, util.CallerFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, quiz)
}

// Publish godoc
// @Summary Publish or unpublish a quiz
// @Tags quizzes
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Quiz ID"
// @Param   body body PublishRequest true "Target state"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Router /api/quizzes/{id}/publish [patch]
func (c *QuizController) Publish(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	var req PublishRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.Publish(id, *req.Published, util.CallerFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, quiz)
}

// Delete godoc
// @Summary Delete a quiz
// @Description Removes the quiz with its questions and attempts
// @Tags quizzes
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Quiz ID"
// @Success 200 {object} util.Response
// @Router /api/quizzes/{id} [delete]
func (c *QuizController) Delete(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	if err := c.QuizService.Delete(id, util.CallerFromContext(ctx)); err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// AddQuestion godoc
// @Summary Add a question
// @Tags quizzes
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Quiz ID"
// @Param   body body service.QuestionInput true "Question form"
// @Success 201 {object} util.Response{data=model.QuizQuestion}
// @Router /api/quizzes/{id}/questions [post]
func (c *QuizController) AddQuestion(ctx *gin.Context) {
	quizID := util.MustParseUint(ctx.Param("id"))

	var input service.QuestionInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuizService.AddQuestion(quizID, input, util.CallerFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, question)
}

// UpdateQuestion godoc
// @Summary Update a question
// @Tags quizzes
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Question ID"
// @Param   body body service.QuestionInput true "Question form"
// @Success 200 {object} util.Response{data=model.QuizQuestion}
// @Router /api/questions/{id} [put]
func (c *QuizController) UpdateQuestion(ctx *gin.Context) {
	questionID := util.MustParseUint(ctx.Param("id"))

	var input service.QuestionInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuizService.UpdateQuestion(questionID, input, util.CallerFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, question)
}

// RemoveQuestion godoc
// @Summary Remove a question
// @Tags quizzes
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Question ID"
// @Success 200 {object} util.Response
// @Router /api/questions/{id} [delete]
func (c *QuizController) RemoveQuestion(ctx *gin.Context) {
	questionID := util.MustParseUint(ctx.Param("id"))

	if err := c.QuizService.RemoveQuestion(questionID, util.CallerFromContext(ctx)); err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// StartAttempt godoc
// @Summary Start or resume a quiz attempt
// @Description Resumes an open attempt before counting against the attempt limit
// @Tags quizzes
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Quiz ID"
// @Success 201 {object} util.Response{data=model.QuizAttempt}
// @Failure 400 {object} util.Response "Outside availability window or attempts exhausted"
// @Router /api/quizzes/{id}/attempts [post]
func (c *QuizController) StartAttempt(ctx *gin.Context) {
	quizID := util.MustParseUint(ctx.Param("id"))

	attempt, err := c.QuizService.StartAttempt(quizID, util.CallerFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, attempt)
}

// swagger:model SubmitAttemptRequest
type SubmitAttemptRequest struct {
	Answers map[string]string `json:"answers" binding:"required"`
}

// SubmitAttempt godoc
// @Summary Submit a quiz attempt
// @Description Grades the objective questions and records the score as a percentage
// @Tags quizzes
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Attempt ID"
// @Param   body body SubmitAttemptRequest true "Answers keyed by question id"
// @Success 200 {object} util.Response{data=model.QuizAttempt}
// @Failure 400 {object} util.Response "Attempt already completed"
// @Router /api/attempts/{id} [put]
func (c *QuizController) SubmitAttempt(ctx *gin.Context) {
	attemptID := util.MustParseUint(ctx.Param("id"))

	var req SubmitAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	attempt, err := c.QuizService.SubmitAttempt(attemptID, req.Answers, util.CallerFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, attempt)
}

// ListAttempts godoc
// @Summary The caller's attempts on a quiz
// @Tags quizzes
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Quiz ID"
// @Success 200 {object} util.Response{data=[]model.QuizAttempt}
// @Router /api/quizzes/{id}/attempts [get]
func (c *QuizController) ListAttempts(ctx *gin.Context) {
	quizID := util.MustParseUint(ctx.Param("id"))

	attempts, err := c.QuizService.ListAttempts(quizID, util.CallerFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, attempts)
}
