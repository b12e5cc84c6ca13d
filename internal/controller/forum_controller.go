package controller

import (
	"science_lms_backend/internal/service"
	"science_lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ForumController struct {
	ForumService *service.ForumService
}

func NewForumController(forumService *service.ForumService) *ForumController {
	return &ForumController{ForumService: forumService}
}

// List godoc
// @Summary Forums of a course
// @Description Pinned forums first, then by latest activity
// @Tags forums
// @Produce  json
// @Param   id path int true "Course ID"
// @Success 200 {object} util.Response{data=[]model.DiscussionForum}
// @Router /api/courses/{id}/forums [get]
func (c *ForumController) List(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("id"))

	forums, err := c.ForumService.ListByCourse(courseID, util.CallerFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, forums)
}

// ListReplies godoc
// @Summary Replies under a post
// @Description Direct replies, oldest first
// @Tags forums
// @Produce  json
// @Param   id path int true "Post ID"
// @Success 200 {object} util.Response{data=[]model.ForumPost}
// @Router /api/posts/{id}/replies [get]
func (c *ForumController) ListReplies(ctx *gin.Context) {
	postID := util.MustParseUint(ctx.Param("id"))

	posts, err := c.ForumService.ListReplies(postID, util.CallerFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, posts)
}

// Create godoc
// @Summary Create a forum
// @Tags forums
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Course ID"
// @Param   body body service.ForumInput true "Forum form"
// @Success 201 {object} util.Response{data=model.DiscussionForum}
// @Failure 403 {object} util.Response "Not the owning teacher"
// @Router /api/courses/{id}/forums [post]
func (c *ForumController) Create(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("id"))

	var input service.ForumInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	forum, err := c.ForumService.Create(courseID, input, util.CallerFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, forum)
}

// ListThreads godoc
// @Summary Threads of a forum
// @Description Top-level posts with one level of replies, pinned posts first
// @Tags forums
// @Produce  json
// @Param   id path int true "Forum ID"
// @Success 200 {object} util.Response{data=[]model.ForumPost}
// @Router /api/forums/{id}/posts [get]
func (c *ForumController) ListThreads(ctx *gin.Context) {
	forumID := util.MustParseUint(ctx.Param("id"))

	posts, err := c.ForumService.ListThreads(forumID, util.CallerFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, posts)
}

// CreatePost godoc
// @Summary Post to a forum
// @Description Students must be enrolled in the course; locked forums reject new posts
// @Tags forums
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Forum ID"
// @Param   body body service.PostInput true "Post content, optionally replying to a parent"
// @Success 201 {object} util.Response{data=model.ForumPost}
// @Failure 400 {object} util.Response "Forum locked"
// @Router /api/forums/{id}/posts [post]
func (c *ForumController) CreatePost(ctx *gin.Context) {
	forumID := util.MustParseUint(ctx.Param("id"))

	var input service.PostInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	post, err := c.ForumService.CreatePost(forumID, input, util.CallerFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, post)
}

// swagger:model EditPostRequest
type EditPostRequest struct {
	Content string `json:"content" binding:"required"`
}

// EditPost godoc
// @Summary Edit a post
// @Description The author, any teacher, or an administrator may edit
// @Tags forums
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Post ID"
// @Param   body body EditPostRequest true "New content"
// @Success 200 {object} util.Response{data=model.ForumPost}
// @Router /api/posts/{id} [put]
func (c *ForumController) EditPost(ctx *gin.Context) {
	postID := util.MustParseUint(ctx.Param("id"))

	var req EditPostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	post, err := c.ForumService.EditPost(postID, req.Content, util.CallerFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, post)
}

// swagger:model PinRequest
type PinRequest struct {
	Pinned *bool `json:"pinned" binding:"required"`
}

// PinPost godoc
// @Summary Pin or unpin a post
// @Tags forums
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Post ID"
// @Param   body body PinRequest true "Target state"
// @Success 200 {object} util.Response{data=model.ForumPost}
// @Router /api/posts/{id}/pin [patch]
func (c *ForumController) PinPost(ctx *gin.Context) {
	postID := util.MustParseUint(ctx.Param("id"))

	var req PinRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	post, err := c.ForumService.PinPost(postID, *req.Pinned, util.CallerFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, post)
}

// swagger:model LockRequest
type LockRequest struct {
	Locked *bool `json:"locked" binding:"required"`
}

// Lock godoc
// @Summary Lock or unlock a forum
// @Tags forums
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Forum ID"
// @Param   body body LockRequest true "Target state"
// @Success 200 {object} util.Response{data=model.DiscussionForum}
// @Router /api/forums/{id}/lock [patch]
func (c *ForumController) Lock(ctx *gin.Context) {
	forumID := util.MustParseUint(ctx.Param("id"))

	var req LockRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	forum, err := c.ForumService.Lock(forumID, *req.Locked, util.CallerFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, forum)
}
