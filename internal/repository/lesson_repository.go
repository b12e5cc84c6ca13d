package repository

import (
	"science_lms_backend/internal/model"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) Create(lesson *model.Lesson) error {
	return r.DB.Create(lesson).Error
}

func (r *LessonRepository) FindByID(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.First(&lesson, id).Error
	return &lesson, err
}

func (r *LessonRepository) ListByCourse(courseID uint, publishedOnly bool) ([]model.Lesson, error) {
	var lessons []model.Lesson
	query := r.DB.Where("course_id = ?", courseID)
	if publishedOnly {
		query = query.Scopes(PublishedItems)
	}
	err := query.Order("order_index").Find(&lessons).Error
	return lessons, err
}

func (r *LessonRepository) Update(lesson *model.Lesson) error {
	return r.DB.Save(lesson).Error
}

func (r *LessonRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Lesson{}, id).Error
}

func (r *LessonRepository) NextOrderIndex(courseID uint) (int, error) {
	var max int
	err := r.DB.Model(&model.Lesson{}).
		Where("course_id = ?", courseID).
		Select("COALESCE(MAX(order_index), 0)").
		Scan(&max).Error
	return max + 1, err
}

// Reorder rewrites order_index for the whole course in one transaction so a
// partially applied drag-and-drop never persists.
func (r *LessonRepository) Reorder(courseID uint, lessonIDs []uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		for i, id := range lessonIDs {
			res := tx.Model(&model.Lesson{}).
				Where("id = ? AND course_id = ?", id, courseID).
				Update("order_index", i+1)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})
}
