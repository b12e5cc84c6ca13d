package repository

import (
	"science_lms_backend/internal/access"
	"science_lms_backend/internal/model"

	"gorm.io/gorm"
)

// Composable query scopes. Each one narrows a single entity type and they
// combine conjunctively, so application order never changes the result set.

func Published(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", model.CoursePublished)
}

func PublishedItems(db *gorm.DB) *gorm.DB {
	return db.Where("is_published = ?", true)
}

func Active(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

func Enrolled(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", model.EnrollmentEnrolled)
}

func Completed(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", model.EnrollmentCompleted)
}

func Pinned(db *gorm.DB) *gorm.DB {
	return db.Where("is_pinned = ?", true)
}

func Submitted(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", model.SubmissionSubmitted)
}

func TopLevel(db *gorm.DB) *gorm.DB {
	return db.Where("parent_id IS NULL")
}

func Students(db *gorm.DB) *gorm.DB {
	return db.Where("role = ?", model.RoleStudent)
}

func Teachers(db *gorm.DB) *gorm.DB {
	return db.Where("role = ?", model.RoleTeacher)
}

func Administrators(db *gorm.DB) *gorm.DB {
	return db.Where("role = ?", model.RoleAdmin)
}

// CourseVisibility returns the course listing scope for a caller: teachers
// see their own courses whatever the status, administrators see everything,
// and everyone else sees published courses only.
func CourseVisibility(caller *access.Caller) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch {
		case caller.IsAdministrator():
			return db
		case caller.IsTeacher():
			return db.Where("teacher_id = ?", caller.ID)
		default:
			return Published(db)
		}
	}
}
