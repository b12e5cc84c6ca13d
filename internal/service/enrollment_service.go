package service

import (
	"errors"
	"time"

	"science_lms_backend/internal/access"
	"science_lms_backend/internal/model"
	"science_lms_backend/internal/repository"

	"gorm.io/gorm"
)

type EnrollmentService struct {
	EnrollmentRepo *repository.EnrollmentRepository
	CourseRepo     *repository.CourseRepository
}

func NewEnrollmentService(enrollmentRepo *repository.EnrollmentRepository, courseRepo *repository.CourseRepository) *EnrollmentService {
	return &EnrollmentService{EnrollmentRepo: enrollmentRepo, CourseRepo: courseRepo}
}

// Enroll registers the calling student in a published course. The
// (course, student) pair is unique; enrolling twice fails.
func (s *EnrollmentService) Enroll(courseID uint, caller *access.Caller) (*model.CourseEnrollment, error) {
	if !caller.IsStudent() {
		return nil, ErrForbidden
	}
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if course.Status != model.CoursePublished {
		return nil, ErrForbidden
	}

	if _, err := s.EnrollmentRepo.FindByCourseAndStudent(courseID, caller.ID); err == nil {
		return nil, ErrAlreadyEnrolled
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	enrollment := &model.CourseEnrollment{
		CourseID:  courseID,
		StudentID: caller.ID,
		Status:    model.EnrollmentEnrolled,
	}
	if err := s.EnrollmentRepo.Create(enrollment); err != nil {
		// Concurrent double-enroll slips past the lookup; the unique
		// (course, student) index catches it.
		if repository.IsDuplicateEntry(err) {
			return nil, ErrAlreadyEnrolled
		}
		return nil, err
	}
	return enrollment, nil
}

// Drop marks the caller's enrollment dropped.
func (s *EnrollmentService) Drop(courseID uint, caller *access.Caller) error {
	if !caller.IsStudent() {
		return ErrForbidden
	}
	enrollment, err := s.EnrollmentRepo.FindByCourseAndStudent(courseID, caller.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotEnrolled
		}
		return err
	}
	enrollment.Status = model.EnrollmentDropped
	return s.EnrollmentRepo.Update(enrollment)
}

// Complete closes a student's enrollment with a final grade. Teachers and
// administrators only.
func (s *EnrollmentService) Complete(courseID, studentID uint, finalGrade float64, caller *access.Caller) (*model.CourseEnrollment, error) {
	if !access.CanGrade(caller) {
		return nil, ErrForbidden
	}
	enrollment, err := s.EnrollmentRepo.FindByCourseAndStudent(courseID, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	now := time.Now()
	enrollment.Status = model.EnrollmentCompleted
	enrollment.FinalGrade = &finalGrade
	enrollment.CompletedAt = &now
	if err := s.EnrollmentRepo.Update(enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}
