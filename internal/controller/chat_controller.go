package controller

import (
	"strconv"

	"science_lms_backend/internal/service"
	"science_lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	ChatService *service.ChatService
}

func NewChatController(chatService *service.ChatService) *ChatController {
	return &ChatController{ChatService: chatService}
}

// CreateConversation godoc
// @Summary Open a conversation
// @Description Direct, group, or course-scoped; the creator is always a participant
// @Tags chat
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.ConversationInput true "Conversation form"
// @Success 201 {object} util.Response{data=model.ChatConversation}
// @Router /api/chat/conversations [post]
func (c *ChatController) CreateConversation(ctx *gin.Context) {
	var input service.ConversationInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	conv, err := c.ChatService.CreateConversation(input, util.CallerFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, conv)
}

// ListConversations godoc
// @Summary The caller's conversations
// @Description Ordered by latest message
// @Tags chat
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.ChatConversation}
// @Router /api/chat/conversations [get]
func (c *ChatController) ListConversations(ctx *gin.Context) {
	convs, err := c.ChatService.ListConversations(util.CallerFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, convs)
}

// GetConversation godoc
// @Summary Conversation detail
// @Description The conversation with its participant list; participants only
// @Tags chat
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Conversation ID"
// @Success 200 {object} util.Response{data=model.ChatConversation}
// @Failure 403 {object} util.Response "Not a participant"
// @Router /api/chat/conversations/{id} [get]
func (c *ChatController) GetConversation(ctx *gin.Context) {
	conversationID := ctx.Param("id")

	conv, err := c.ChatService.GetConversation(conversationID, util.CallerFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, conv)
}

// SendMessage godoc
// @Summary Send a message
// @Tags chat
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Conversation ID"
// @Param   body body service.MessageInput true "Message"
// @Success 201 {object} util.Response{data=model.ChatMessage}
// @Failure 403 {object} util.Response "Not a participant"
// @Router /api/chat/conversations/{id}/messages [post]
func (c *ChatController) SendMessage(ctx *gin.Context) {
	conversationID := ctx.Param("id")

	var input service.MessageInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	msg, err := c.ChatService.SendMessage(ctx.Request.Context(), conversationID, input, util.CallerFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, msg)
}

// ListMessages godoc
// @Summary Messages in a conversation
// @Description Newest first, paginated; reading clears the unread counter
// @Tags chat
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Conversation ID"
// @Param   page query int false "Page number" default(1)
// @Param   limit query int false "Page size" default(50)
// @Success 200 {object} util.Response{data=[]model.ChatMessage}
// @Router /api/chat/conversations/{id}/messages [get]
func (c *ChatController) ListMessages(ctx *gin.Context) {
	conversationID := ctx.Param("id")
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))

	msgs, err := c.ChatService.ListMessages(ctx.Request.Context(), conversationID, page, limit, util.CallerFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, msgs)
}

// UnreadCount godoc
// @Summary Unread messages in a conversation
// @Tags chat
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Conversation ID"
// @Success 200 {object} util.Response{data=object}
// @Router /api/chat/conversations/{id}/unread [get]
func (c *ChatController) UnreadCount(ctx *gin.Context) {
	conversationID := ctx.Param("id")

	count, err := c.ChatService.UnreadCount(ctx.Request.Context(), conversationID, util.CallerFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"unread": count})
}

// swagger:model EditMessageRequest
type EditMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

// EditMessage godoc
// @Summary Edit a message
// @Description Only the sender may edit
// @Tags chat
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Message ID"
// @Param   body body EditMessageRequest true "New content"
// @Success 200 {object} util.Response{data=model.ChatMessage}
// @Router /api/chat/messages/{id} [put]
func (c *ChatController) EditMessage(ctx *gin.Context) {
	messageID := ctx.Param("id")

	var req EditMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	msg, err := c.ChatService.EditMessage(messageID, req.Message, util.CallerFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, msg)
}
