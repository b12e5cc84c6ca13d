package model

import (
	"time"
)

type ConversationType string

const (
	ConversationDirect ConversationType = "direct"
	ConversationGroup  ConversationType = "group"
	ConversationCourse ConversationType = "course"
)

type MessageType string

const (
	MessageText   MessageType = "text"
	MessageImage  MessageType = "image"
	MessageFile   MessageType = "file"
	MessageSystem MessageType = "system"
)

// swagger:model ChatConversation
type ChatConversation struct {
	UUIDBase
	CourseID      *uint            `gorm:"index" json:"courseId"`
	Title         string           `gorm:"size:255" json:"title"`
	Type          ConversationType `gorm:"type:enum('direct','group','course');default:'direct';index:idx_type_active" json:"type"`
	IsActive      bool             `gorm:"default:true;index:idx_type_active" json:"isActive"`
	LastMessageAt *time.Time       `gorm:"index" json:"lastMessageAt"`
	CreatedBy     uint             `gorm:"index;not null" json:"createdBy"`

	Participants []ChatParticipant `gorm:"foreignKey:ConversationID" json:"participants,omitempty"`
	Messages     []ChatMessage     `gorm:"foreignKey:ConversationID" json:"messages,omitempty"`
}

func (ChatConversation) TableName() string {
	return "chat_conversations"
}

// swagger:model ChatParticipant
type ChatParticipant struct {
	ConversationID string     `gorm:"primaryKey;type:varchar(36)" json:"conversationId"`
	UserID         uint       `gorm:"primaryKey;index" json:"userId"`
	User           *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	JoinedAt       time.Time  `gorm:"autoCreateTime" json:"joinedAt"`
	LastReadAt     *time.Time `json:"lastReadAt"`
	IsActive       bool       `gorm:"default:true" json:"isActive"`
}

func (ChatParticipant) TableName() string {
	return "chat_participants"
}

// swagger:model ChatMessage
type ChatMessage struct {
	UUIDBase
	ConversationID string      `gorm:"index:idx_conv_created;type:varchar(36);not null" json:"conversationId"`
	CreatedAt      time.Time   `gorm:"index:idx_conv_created" json:"createdAt"`
	UserID         uint        `gorm:"index;not null" json:"userId"`
	User           *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Message        string      `gorm:"type:text;not null" json:"message"`
	Type           MessageType `gorm:"type:enum('text','image','file','system');default:'text';index" json:"type"`
	AttachmentURL  string      `gorm:"size:255" json:"attachmentUrl"`
	AttachmentName string      `gorm:"size:255" json:"attachmentName"`
	IsEdited       bool        `gorm:"default:false" json:"isEdited"`
	EditedAt       *time.Time  `json:"editedAt"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
