package service

import (
	"context"
	"errors"
	"time"

	"science_lms_backend/internal/access"
	"science_lms_backend/internal/model"
	"science_lms_backend/internal/repository"

	"gorm.io/gorm"
)

type ConversationInput struct {
	Title     string `json:"title" binding:"max=255"`
	Type      string `json:"type" binding:"required,oneof=direct group course"`
	CourseID  *uint  `json:"courseId"`
	MemberIDs []uint `json:"memberIds" binding:"required,min=1"`
}

type MessageInput struct {
	Message        string `json:"message" binding:"required"`
	Type           string `json:"type" binding:"omitempty,oneof=text image file"`
	AttachmentURL  string `json:"attachmentUrl"`
	AttachmentName string `json:"attachmentName"`
}

type ChatService struct {
	ChatRepo   *repository.ChatRepository
	CourseRepo *repository.CourseRepository
}

func NewChatService(chatRepo *repository.ChatRepository, courseRepo *repository.CourseRepository) *ChatService {
	return &ChatService{ChatRepo: chatRepo, CourseRepo: courseRepo}
}

// CreateConversation opens a conversation; the creator is always a
// participant. Course conversations must reference an existing course.
func (s *ChatService) CreateConversation(input ConversationInput, caller *access.Caller) (*model.ChatConversation, error) {
	if caller.IsAnonymous() {
		return nil, ErrForbidden
	}
	convType := model.ConversationType(input.Type)
	if convType == model.ConversationCourse {
		if input.CourseID == nil {
			return nil, ErrNotFound
		}
		if _, err := s.CourseRepo.FindByID(*input.CourseID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
	}

	members := input.MemberIDs
	seen := map[uint]bool{caller.ID: true}
	deduped := []uint{caller.ID}
	for _, id := range members {
		if !seen[id] {
			seen[id] = true
			deduped = append(deduped, id)
		}
	}

	conv := &model.ChatConversation{
		CourseID:  input.CourseID,
		Title:     input.Title,
		Type:      convType,
		IsActive:  true,
		CreatedBy: caller.ID,
	}
	if err := s.ChatRepo.CreateConversation(conv, deduped); err != nil {
		return nil, err
	}
	return conv, nil
}

func (s *ChatService) ListConversations(caller *access.Caller) ([]model.ChatConversation, error) {
	if caller.IsAnonymous() {
		return nil, ErrForbidden
	}
	return s.ChatRepo.ListForUser(caller.ID)
}

// GetConversation returns a conversation with its participants.
func (s *ChatService) GetConversation(conversationID string, caller *access.Caller) (*model.ChatConversation, error) {
	if err := s.requireParticipant(conversationID, caller); err != nil {
		return nil, err
	}
	conv, err := s.ChatRepo.FindConversation(conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return conv, nil
}

// SendMessage posts to a conversation the caller participates in.
func (s *ChatService) SendMessage(ctx context.Context, conversationID string, input MessageInput, caller *access.Caller) (*model.ChatMessage, error) {
	if err := s.requireParticipant(conversationID, caller); err != nil {
		return nil, err
	}

	msgType := model.MessageText
	if input.Type != "" {
		msgType = model.MessageType(input.Type)
	}
	msg := &model.ChatMessage{
		ConversationID: conversationID,
		UserID:         caller.ID,
		Message:        input.Message,
		Type:           msgType,
		AttachmentURL:  input.AttachmentURL,
		AttachmentName: input.AttachmentName,
	}
	if err := s.ChatRepo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// ListMessages pages through history, marking the conversation read.
func (s *ChatService) ListMessages(ctx context.Context, conversationID string, page, pageSize int, caller *access.Caller) ([]model.ChatMessage, error) {
	if err := s.requireParticipant(conversationID, caller); err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}
	return s.ChatRepo.ListMessages(ctx, conversationID, caller.ID, page, pageSize)
}

func (s *ChatService) UnreadCount(ctx context.Context, conversationID string, caller *access.Caller) (int64, error) {
	if err := s.requireParticipant(conversationID, caller); err != nil {
		return 0, err
	}
	return s.ChatRepo.UnreadCount(ctx, conversationID, caller.ID), nil
}

// EditMessage lets the sender amend their own text message.
func (s *ChatService) EditMessage(messageID, content string, caller *access.Caller) (*model.ChatMessage, error) {
	msg, err := s.ChatRepo.FindMessage(messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !access.OwnsRecord(caller, msg.UserID) {
		return nil, ErrForbidden
	}

	now := time.Now()
	msg.Message = content
	msg.IsEdited = true
	msg.EditedAt = &now
	if err := s.ChatRepo.UpdateMessage(msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *ChatService) requireParticipant(conversationID string, caller *access.Caller) error {
	if caller.IsAnonymous() {
		return ErrForbidden
	}
	ok, err := s.ChatRepo.IsParticipant(conversationID, caller.ID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotParticipant
	}
	return nil
}
