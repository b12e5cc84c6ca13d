package repository

import (
	"time"

	"science_lms_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

func (r *QuizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.First(&quiz, id).Error
	return &quiz, err
}

func (r *QuizRepository) FindWithQuestions(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index")
		}).
		First(&quiz, id).Error
	return &quiz, err
}

func (r *QuizRepository) ListByCourse(courseID uint, publishedOnly bool) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	query := r.DB.Where("course_id = ?", courseID)
	if publishedOnly {
		query = query.Scopes(PublishedItems)
	}
	err := query.Find(&quizzes).Error
	return quizzes, err
}

// FindUpcoming returns published quizzes for the given courses that are still
// open, soonest deadline first.
func (r *QuizRepository) FindUpcoming(courseIDs []uint, now time.Time, limit int) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	if len(courseIDs) == 0 {
		return quizzes, nil
	}
	err := r.DB.
		Where("course_id IN ?", courseIDs).
		Scopes(PublishedItems).
		Where("available_until >= ?", now).
		Order("available_until").
		Limit(limit).
		Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) Update(quiz *model.Quiz) error {
	return r.DB.Save(quiz).Error
}

func (r *QuizRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", id).Delete(&model.QuizQuestion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", id).Delete(&model.QuizAttempt{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Quiz{}, id).Error
	})
}

func (r *QuizRepository) CreateQuestion(q *model.QuizQuestion) error {
	return r.DB.Create(q).Error
}

func (r *QuizRepository) FindQuestion(id uint) (*model.QuizQuestion, error) {
	var q model.QuizQuestion
	err := r.DB.First(&q, id).Error
	return &q, err
}

func (r *QuizRepository) UpdateQuestion(q *model.QuizQuestion) error {
	return r.DB.Save(q).Error
}

func (r *QuizRepository) DeleteQuestion(id uint) error {
	return r.DB.Delete(&model.QuizQuestion{}, id).Error
}

func (r *QuizRepository) CountAttempts(quizID, studentID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.QuizAttempt{}).
		Where("quiz_id = ? AND student_id = ?", quizID, studentID).
		Count(&count).Error
	return count, err
}

func (r *QuizRepository) FindOpenAttempt(quizID, studentID uint) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := r.DB.
		Where("quiz_id = ? AND student_id = ? AND status = ?", quizID, studentID, model.AttemptInProgress).
		First(&attempt).Error
	return &attempt, err
}

func (r *QuizRepository) CreateAttempt(attempt *model.QuizAttempt) error {
	return r.DB.Create(attempt).Error
}

func (r *QuizRepository) FindAttempt(id uint) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := r.DB.Preload("Quiz").First(&attempt, id).Error
	return &attempt, err
}

func (r *QuizRepository) UpdateAttempt(attempt *model.QuizAttempt) error {
	return r.DB.Save(attempt).Error
}

func (r *QuizRepository) ListAttemptsByStudent(quizID, studentID uint) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.
		Where("quiz_id = ? AND student_id = ?", quizID, studentID).
		Order("started_at DESC").
		Find(&attempts).Error
	return attempts, err
}
