package model

import (
	"time"

	"gorm.io/datatypes"
)

type LessonContentType string

const (
	LessonText        LessonContentType = "text"
	LessonVideo       LessonContentType = "video"
	LessonInteractive LessonContentType = "interactive"
	LessonMixed       LessonContentType = "mixed"
)

// swagger:model Lesson
type Lesson struct {
	BaseModel
	CourseID    uint              `gorm:"index:idx_course_order;not null" json:"courseId"`
	Title       string            `gorm:"size:255;not null" json:"title"`
	Description string            `gorm:"type:text" json:"description"`
	Content     string            `gorm:"type:longtext" json:"content"` // HTML lesson body
	OrderIndex  int               `gorm:"default:0;index:idx_course_order" json:"orderIndex"`
	ContentType LessonContentType `gorm:"type:enum('text','video','interactive','mixed');default:'mixed'" json:"contentType"`
	VideoURL    string            `gorm:"size:255" json:"videoUrl"`
	Attachments datatypes.JSON    `json:"attachments"`
	// Estimated duration in minutes.
	EstimatedDuration int        `gorm:"default:45" json:"estimatedDuration"`
	IsPublished       bool       `gorm:"default:false;index" json:"isPublished"`
	PublishedAt       *time.Time `json:"publishedAt"`
}

func (Lesson) TableName() string {
	return "lessons"
}
