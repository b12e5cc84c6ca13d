package repository

import (
	"science_lms_backend/internal/model"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

func (r *EnrollmentRepository) Create(enrollment *model.CourseEnrollment) error {
	return r.DB.Create(enrollment).Error
}

func (r *EnrollmentRepository) FindByCourseAndStudent(courseID, studentID uint) (*model.CourseEnrollment, error) {
	var enrollment model.CourseEnrollment
	err := r.DB.
		Where("course_id = ? AND student_id = ?", courseID, studentID).
		First(&enrollment).Error
	return &enrollment, err
}

// FindEnrolledByStudent returns the student's active enrollments with the
// course, its teacher and its lessons attached, as the student dashboard
// renders them.
func (r *EnrollmentRepository) FindEnrolledByStudent(studentID uint) ([]model.CourseEnrollment, error) {
	var enrollments []model.CourseEnrollment
	err := r.DB.
		Where("student_id = ?", studentID).
		Scopes(Enrolled).
		Preload("Course.Teacher").
		Preload("Course.Lessons").
		Find(&enrollments).Error
	return enrollments, err
}

func (r *EnrollmentRepository) Update(enrollment *model.CourseEnrollment) error {
	return r.DB.Save(enrollment).Error
}

func (r *EnrollmentRepository) CourseIDs(enrollments []model.CourseEnrollment) []uint {
	ids := make([]uint, 0, len(enrollments))
	for _, e := range enrollments {
		ids = append(ids, e.CourseID)
	}
	return ids
}
