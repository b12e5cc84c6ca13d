package repository

import (
	"science_lms_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// Upsert writes the (student, course, lesson) progress row. Rows already
// identified by the caller update in place; MySQL unique indexes admit any
// number of NULLs, so the conflict clause alone cannot catch the course-level
// row (lesson_id IS NULL) and only covers lesson-row races.
func (r *ProgressRepository) Upsert(progress *model.StudentProgress) error {
	if progress.ID != 0 {
		return r.DB.Save(progress).Error
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "student_id"}, {Name: "course_id"}, {Name: "lesson_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"status", "progress_percentage", "time_spent",
			"started_at", "completed_at", "last_accessed_at", "updated_at",
		}),
	}).Create(progress).Error
}

func (r *ProgressRepository) Find(studentID, courseID uint, lessonID *uint) (*model.StudentProgress, error) {
	var progress model.StudentProgress
	query := r.DB.Where("student_id = ? AND course_id = ?", studentID, courseID)
	if lessonID == nil {
		query = query.Where("lesson_id IS NULL")
	} else {
		query = query.Where("lesson_id = ?", *lessonID)
	}
	err := query.First(&progress).Error
	return &progress, err
}

func (r *ProgressRepository) ListByCourse(studentID, courseID uint) ([]model.StudentProgress, error) {
	var rows []model.StudentProgress
	err := r.DB.
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Find(&rows).Error
	return rows, err
}

func (r *ProgressRepository) CountCompletedLessons(studentID, courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.StudentProgress{}).
		Where("student_id = ? AND course_id = ? AND lesson_id IS NOT NULL", studentID, courseID).
		Where("status = ?", model.ProgressCompleted).
		Count(&count).Error
	return count, err
}
