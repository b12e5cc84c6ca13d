package controller

import (
	"strconv"

	"science_lms_backend/internal/service"
	"science_lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// List godoc
// @Summary List accounts
// @Description All accounts, optionally filtered by role. Administrators only.
// @Tags users
// @Produce  json
// @Security ApiKeyAuth
// @Param   role query string false "Filter by role" Enums(student, teacher, administrator)
// @Param   page query int false "Page number" default(1)
// @Param   limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Failure 403 {object} util.Response "Not an administrator"
// @Router /api/users [get]
func (c *UserController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	role := ctx.Query("role")

	users, total, err := c.UserService.List(role, page, limit, util.CallerFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  users,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// UpdateProfile godoc
// @Summary Update own profile
// @Description Edits the caller's profile. Grade applies to students, subject specialization to teachers.
// @Tags users
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.ProfileInput true "Profile fields"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 401 {object} util.Response "Unauthorized"
// @Router /api/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	var input service.ProfileInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.UpdateProfile(input, util.CallerFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, user)
}

// swagger:model SetActiveRequest
type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// SetActive godoc
// @Summary Enable or disable an account
// @Description Disabled accounts cannot log in. Administrators only.
// @Tags users
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "User ID"
// @Param   body body SetActiveRequest true "Activation flag"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 403 {object} util.Response "Not an administrator"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/users/{id}/active [patch]
func (c *UserController) SetActive(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	var req SetActiveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.SetActive(id, *req.Active, util.CallerFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, user)
}

// Delete godoc
// @Summary Delete an account
// @Description Removes the account with everything rooted at it; a teacher's courses cascade. Administrators only, and never their own account.
// @Tags users
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "User ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response "Not an administrator or own account"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/users/{id} [delete]
func (c *UserController) Delete(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	if err := c.UserService.Delete(id, util.CallerFromContext(ctx)); err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}
