package model

import (
	"time"
)

type EnrollmentStatus string

const (
	EnrollmentEnrolled  EnrollmentStatus = "enrolled"
	EnrollmentCompleted EnrollmentStatus = "completed"
	EnrollmentDropped   EnrollmentStatus = "dropped"
)

// swagger:model CourseEnrollment
type CourseEnrollment struct {
	BaseModel
	CourseID    uint             `gorm:"uniqueIndex:idx_course_student;not null" json:"courseId"`
	Course      *Course          `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	StudentID   uint             `gorm:"uniqueIndex:idx_course_student;not null" json:"studentId"`
	Student     *User            `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Status      EnrollmentStatus `gorm:"type:enum('enrolled','completed','dropped');default:'enrolled';index" json:"status"`
	FinalGrade  *float64         `gorm:"type:decimal(5,2)" json:"finalGrade"`
	EnrolledAt  time.Time        `gorm:"autoCreateTime" json:"enrolledAt"`
	CompletedAt *time.Time       `json:"completedAt"`
}

func (CourseEnrollment) TableName() string {
	return "course_enrollments"
}
