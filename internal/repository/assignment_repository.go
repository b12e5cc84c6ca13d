package repository

import (
	"time"

	"science_lms_backend/internal/model"

	"gorm.io/gorm"
)

type AssignmentRepository struct {
	DB *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{DB: db}
}

func (r *AssignmentRepository) Create(assignment *model.Assignment) error {
	return r.DB.Create(assignment).Error
}

func (r *AssignmentRepository) FindByID(id uint) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.DB.First(&assignment, id).Error
	return &assignment, err
}

func (r *AssignmentRepository) ListByCourse(courseID uint, publishedOnly bool) ([]model.Assignment, error) {
	var assignments []model.Assignment
	query := r.DB.Where("course_id = ?", courseID)
	if publishedOnly {
		query = query.Scopes(PublishedItems)
	}
	err := query.Find(&assignments).Error
	return assignments, err
}

// FindUpcoming returns published assignments for the given courses that are
// not yet due, earliest due date first.
func (r *AssignmentRepository) FindUpcoming(courseIDs []uint, now time.Time, limit int) ([]model.Assignment, error) {
	var assignments []model.Assignment
	if len(courseIDs) == 0 {
		return assignments, nil
	}
	err := r.DB.
		Where("course_id IN ?", courseIDs).
		Scopes(PublishedItems).
		Where("due_date >= ?", now).
		Order("due_date").
		Limit(limit).
		Find(&assignments).Error
	return assignments, err
}

func (r *AssignmentRepository) Update(assignment *model.Assignment) error {
	return r.DB.Save(assignment).Error
}

func (r *AssignmentRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("assignment_id = ?", id).Delete(&model.AssignmentSubmission{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Assignment{}, id).Error
	})
}

func (r *AssignmentRepository) CreateSubmission(sub *model.AssignmentSubmission) error {
	return r.DB.Create(sub).Error
}

func (r *AssignmentRepository) FindSubmission(id uint) (*model.AssignmentSubmission, error) {
	var sub model.AssignmentSubmission
	err := r.DB.Preload("Assignment").First(&sub, id).Error
	return &sub, err
}

func (r *AssignmentRepository) FindSubmissionByStudent(assignmentID, studentID uint) (*model.AssignmentSubmission, error) {
	var sub model.AssignmentSubmission
	err := r.DB.
		Where("assignment_id = ? AND student_id = ?", assignmentID, studentID).
		First(&sub).Error
	return &sub, err
}

func (r *AssignmentRepository) ListSubmissions(assignmentID uint) ([]model.AssignmentSubmission, error) {
	var subs []model.AssignmentSubmission
	err := r.DB.
		Where("assignment_id = ?", assignmentID).
		Preload("Student").
		Order("submitted_at DESC").
		Find(&subs).Error
	return subs, err
}

// FindRecentSubmitted flattens submitted work across every assignment of the
// given courses, newest first, limited overall rather than per assignment.
func (r *AssignmentRepository) FindRecentSubmitted(courseIDs []uint, limit int) ([]model.AssignmentSubmission, error) {
	var subs []model.AssignmentSubmission
	if len(courseIDs) == 0 {
		return subs, nil
	}
	err := r.DB.
		Joins("JOIN assignments ON assignments.id = assignment_submissions.assignment_id").
		Where("assignments.course_id IN ?", courseIDs).
		Where("assignment_submissions.status = ?", model.SubmissionSubmitted).
		Preload("Student").
		Preload("Assignment").
		Order("assignment_submissions.submitted_at DESC").
		Limit(limit).
		Find(&subs).Error
	return subs, err
}

func (r *AssignmentRepository) UpdateSubmission(sub *model.AssignmentSubmission) error {
	return r.DB.Save(sub).Error
}
