package repository

import (
	"context"
	"fmt"
	"time"

	"science_lms_backend/internal/model"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type ChatRepository struct {
	DB  *gorm.DB
	RDB *redis.Client
}

func NewChatRepository(db *gorm.DB, rdb *redis.Client) *ChatRepository {
	return &ChatRepository{DB: db, RDB: rdb}
}

func unreadKey(conversationID string, userID uint) string {
	return fmt.Sprintf("chat:unread:%s:%d", conversationID, userID)
}

// CreateConversation inserts the conversation and its participant rows
// together.
func (r *ChatRepository) CreateConversation(conv *model.ChatConversation, memberIDs []uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(conv).Error; err != nil {
			return err
		}
		for _, id := range memberIDs {
			participant := model.ChatParticipant{
				ConversationID: conv.ID,
				UserID:         id,
				IsActive:       true,
			}
			if err := tx.Create(&participant).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ChatRepository) FindConversation(id string) (*model.ChatConversation, error) {
	var conv model.ChatConversation
	err := r.DB.Preload("Participants.User").First(&conv, "id = ?", id).Error
	return &conv, err
}

func (r *ChatRepository) ListForUser(userID uint) ([]model.ChatConversation, error) {
	var convs []model.ChatConversation
	err := r.DB.
		Joins("JOIN chat_participants ON chat_participants.conversation_id = chat_conversations.id").
		Where("chat_participants.user_id = ? AND chat_participants.is_active = ?", userID, true).
		Scopes(Active).
		Preload("Participants.User").
		Order("last_message_at DESC").
		Find(&convs).Error
	return convs, err
}

func (r *ChatRepository) IsParticipant(conversationID string, userID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.ChatParticipant{}).
		Where("conversation_id = ? AND user_id = ? AND is_active = ?", conversationID, userID, true).
		Count(&count).Error
	return count > 0, err
}

// CreateMessage stores the message, bumps last_message_at and increments the
// redis unread counter of every other active participant.
func (r *ChatRepository) CreateMessage(ctx context.Context, msg *model.ChatMessage) error {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}
		return tx.Model(&model.ChatConversation{}).
			Where("id = ?", msg.ConversationID).
			Update("last_message_at", time.Now()).Error
	})
	if err != nil {
		return err
	}

	var others []model.ChatParticipant
	if err := r.DB.
		Where("conversation_id = ? AND user_id != ? AND is_active = ?", msg.ConversationID, msg.UserID, true).
		Find(&others).Error; err != nil {
		return err
	}
	for _, p := range others {
		r.RDB.Incr(ctx, unreadKey(msg.ConversationID, p.UserID))
	}
	return nil
}

// ListMessages pages backwards through history and marks the conversation
// read for the caller.
func (r *ChatRepository) ListMessages(ctx context.Context, conversationID string, userID uint, page, pageSize int) ([]model.ChatMessage, error) {
	var messages []model.ChatMessage
	err := r.DB.
		Where("conversation_id = ?", conversationID).
		Preload("User").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := r.DB.Model(&model.ChatParticipant{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Update("last_read_at", now).Error; err != nil {
		return nil, err
	}
	r.RDB.Del(ctx, unreadKey(conversationID, userID))
	return messages, nil
}

func (r *ChatRepository) UnreadCount(ctx context.Context, conversationID string, userID uint) int64 {
	n, err := r.RDB.Get(ctx, unreadKey(conversationID, userID)).Int64()
	if err != nil {
		return 0
	}
	return n
}

func (r *ChatRepository) FindMessage(id string) (*model.ChatMessage, error) {
	var msg model.ChatMessage
	err := r.DB.First(&msg, "id = ?", id).Error
	return &msg, err
}

func (r *ChatRepository) UpdateMessage(msg *model.ChatMessage) error {
	return r.DB.Save(msg).Error
}
