package model

import (
	"time"
)

type ProgressStatus string

const (
	ProgressNotStarted ProgressStatus = "not_started"
	ProgressInProgress ProgressStatus = "in_progress"
	ProgressCompleted  ProgressStatus = "completed"
)

// StudentProgress tracks per-lesson completion; the row with a nil LessonID
// is the course-level rollup.
// swagger:model StudentProgress
type StudentProgress struct {
	BaseModel
	StudentID          uint           `gorm:"uniqueIndex:idx_student_course_lesson;not null" json:"studentId"`
	CourseID           uint           `gorm:"uniqueIndex:idx_student_course_lesson;index:idx_course_status;not null" json:"courseId"`
	LessonID           *uint          `gorm:"uniqueIndex:idx_student_course_lesson" json:"lessonId"`
	Status             ProgressStatus `gorm:"type:enum('not_started','in_progress','completed');default:'not_started';index:idx_course_status" json:"status"`
	ProgressPercentage float64        `gorm:"type:decimal(5,2);default:0.00" json:"progressPercentage"`
	// Time spent in minutes.
	TimeSpent      int        `gorm:"default:0" json:"timeSpent"`
	StartedAt      *time.Time `json:"startedAt"`
	CompletedAt    *time.Time `json:"completedAt"`
	LastAccessedAt *time.Time `gorm:"index" json:"lastAccessedAt"`
}

func (StudentProgress) TableName() string {
	return "student_progress"
}
