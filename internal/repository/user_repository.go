package repository

import (
	"time"

	"science_lms_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = now
	}
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

func (r *UserRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) FindRecent(limit int) ([]model.User, error) {
	var users []model.User
	err := r.DB.Order("created_at DESC").Limit(limit).Find(&users).Error
	return users, err
}

// FindAll pages through the user table, optionally filtered by role.
func (r *UserRepository) FindAll(role string, page, pageSize int) ([]model.User, int64, error) {
	query := r.DB.Model(&model.User{})
	if role != "" {
		query = query.Where("role = ?", role)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&users).Error
	return users, total, err
}

// Delete removes a user together with everything rooted at them: a teacher's
// courses cascade through DeleteCourseCascade, a student's enrollment,
// submission, attempt and progress rows go directly.
func (r *UserRepository) Delete(user *model.User, deleteCourse func(tx *gorm.DB, courseID uint) error) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if user.IsTeacher() {
			var courseIDs []uint
			if err := tx.Model(&model.Course{}).Where("teacher_id = ?", user.ID).Pluck("id", &courseIDs).Error; err != nil {
				return err
			}
			for _, id := range courseIDs {
				if err := deleteCourse(tx, id); err != nil {
					return err
				}
			}
		}
		if err := tx.Where("student_id = ?", user.ID).Delete(&model.CourseEnrollment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("student_id = ?", user.ID).Delete(&model.AssignmentSubmission{}).Error; err != nil {
			return err
		}
		if err := tx.Where("student_id = ?", user.ID).Delete(&model.QuizAttempt{}).Error; err != nil {
			return err
		}
		if err := tx.Where("student_id = ?", user.ID).Delete(&model.StudentProgress{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&model.ForumPost{}).Error; err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
}
