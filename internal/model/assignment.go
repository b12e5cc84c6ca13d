package model

import (
	"time"

	"gorm.io/datatypes"
)

type SubmissionStatus string

const (
	SubmissionDraft     SubmissionStatus = "draft"
	SubmissionSubmitted SubmissionStatus = "submitted"
	SubmissionGraded    SubmissionStatus = "graded"
	SubmissionReturned  SubmissionStatus = "returned"
)

// swagger:model Assignment
type Assignment struct {
	BaseModel
	CourseID            uint           `gorm:"index:idx_course_published;not null" json:"courseId"`
	LessonID            *uint          `gorm:"index" json:"lessonId"`
	Title               string         `gorm:"size:255;not null" json:"title"`
	Description         string         `gorm:"type:text;not null" json:"description"`
	Instructions        string         `gorm:"type:text" json:"instructions"`
	MaxPoints           float64        `gorm:"type:decimal(5,2);default:100.00" json:"maxPoints"`
	DueDate             *time.Time     `gorm:"index" json:"dueDate"`
	AllowLateSubmission bool           `gorm:"default:true" json:"allowLateSubmission"`
	LatePenaltyPercent  float64        `gorm:"type:decimal(5,2);default:10.00" json:"latePenaltyPercent"`
	AllowedFileTypes    datatypes.JSON `json:"allowedFileTypes"`
	MaxFileSizeMB       int            `gorm:"column:max_file_size_mb;default:10" json:"maxFileSizeMb"`
	IsPublished         bool           `gorm:"default:false;index:idx_course_published" json:"isPublished"`

	Submissions []AssignmentSubmission `gorm:"foreignKey:AssignmentID" json:"submissions,omitempty"`
}

func (Assignment) TableName() string {
	return "assignments"
}

// swagger:model AssignmentSubmission
type AssignmentSubmission struct {
	BaseModel
	AssignmentID uint             `gorm:"uniqueIndex:idx_assignment_student;not null" json:"assignmentId"`
	Assignment   *Assignment      `gorm:"foreignKey:AssignmentID" json:"assignment,omitempty"`
	StudentID    uint             `gorm:"uniqueIndex:idx_assignment_student;not null" json:"studentId"`
	Student      *User            `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Content      string           `gorm:"type:text" json:"content"`
	Attachments  datatypes.JSON   `json:"attachments"`
	Score        *float64         `gorm:"type:decimal(5,2)" json:"score"`
	Feedback     string           `gorm:"type:text" json:"feedback"`
	Status       SubmissionStatus `gorm:"type:enum('draft','submitted','graded','returned');default:'draft';index" json:"status"`
	IsLate       bool             `gorm:"default:false" json:"isLate"`
	SubmittedAt  *time.Time       `gorm:"index" json:"submittedAt"`
	GradedAt     *time.Time       `json:"gradedAt"`
	GradedBy     *uint            `gorm:"index" json:"gradedBy"`
	Grader       *User            `gorm:"foreignKey:GradedBy" json:"grader,omitempty"`
}

func (AssignmentSubmission) TableName() string {
	return "assignment_submissions"
}
