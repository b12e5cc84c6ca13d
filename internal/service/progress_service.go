package service

import (
	"errors"
	"time"

	"science_lms_backend/internal/access"
	"science_lms_backend/internal/model"
	"science_lms_backend/internal/repository"

	"gorm.io/gorm"
)

type ProgressInput struct {
	LessonID           *uint   `json:"lessonId"`
	Status             string  `json:"status" binding:"required,oneof=not_started in_progress completed"`
	ProgressPercentage float64 `json:"progressPercentage" binding:"min=0,max=100"`
	TimeSpent          int     `json:"timeSpent" binding:"min=0"`
}

// CourseProgress is the per-course rollup the student progress page shows.
type CourseProgress struct {
	Lessons          []model.StudentProgress `json:"lessons"`
	CompletedLessons int64                   `json:"completedLessons"`
	TotalLessons     int64                   `json:"totalLessons"`
	Percentage       float64                 `json:"percentage"`
}

type ProgressService struct {
	ProgressRepo   *repository.ProgressRepository
	EnrollmentRepo *repository.EnrollmentRepository
	LessonRepo     *repository.LessonRepository
}

func NewProgressService(progressRepo *repository.ProgressRepository, enrollmentRepo *repository.EnrollmentRepository, lessonRepo *repository.LessonRepository) *ProgressService {
	return &ProgressService{ProgressRepo: progressRepo, EnrollmentRepo: enrollmentRepo, LessonRepo: lessonRepo}
}

// Record upserts the caller's progress row for (course, lesson). Only
// enrolled students track progress.
func (s *ProgressService) Record(courseID uint, input ProgressInput, caller *access.Caller) (*model.StudentProgress, error) {
	if !caller.IsStudent() {
		return nil, ErrForbidden
	}
	if _, err := s.EnrollmentRepo.FindByCourseAndStudent(courseID, caller.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotEnrolled
		}
		return nil, err
	}

	now := time.Now()
	progress := &model.StudentProgress{
		StudentID:          caller.ID,
		CourseID:           courseID,
		LessonID:           input.LessonID,
		Status:             model.ProgressStatus(input.Status),
		ProgressPercentage: input.ProgressPercentage,
		TimeSpent:          input.TimeSpent,
		LastAccessedAt:     &now,
	}

	// Preserve started_at across updates; stamp completed_at on completion.
	// Carrying the existing id makes the write an in-place update, which the
	// course-level row (nil lesson) requires.
	if existing, err := s.ProgressRepo.Find(caller.ID, courseID, input.LessonID); err == nil {
		progress.ID = existing.ID
		progress.CreatedAt = existing.CreatedAt
		progress.StartedAt = existing.StartedAt
		progress.CompletedAt = existing.CompletedAt
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if progress.Status != model.ProgressNotStarted && progress.StartedAt == nil {
		progress.StartedAt = &now
	}
	if progress.Status == model.ProgressCompleted && progress.CompletedAt == nil {
		progress.CompletedAt = &now
		progress.ProgressPercentage = 100
	}

	if err := s.ProgressRepo.Upsert(progress); err != nil {
		return nil, err
	}
	return progress, nil
}

// ForCourse assembles the caller's rollup over a course's published lessons.
func (s *ProgressService) ForCourse(courseID uint, caller *access.Caller) (*CourseProgress, error) {
	if !caller.IsStudent() {
		return nil, ErrForbidden
	}
	rows, err := s.ProgressRepo.ListByCourse(caller.ID, courseID)
	if err != nil {
		return nil, err
	}
	completed, err := s.ProgressRepo.CountCompletedLessons(caller.ID, courseID)
	if err != nil {
		return nil, err
	}
	lessons, err := s.LessonRepo.ListByCourse(courseID, true)
	if err != nil {
		return nil, err
	}

	cp := &CourseProgress{
		Lessons:          rows,
		CompletedLessons: completed,
		TotalLessons:     int64(len(lessons)),
	}
	if cp.TotalLessons > 0 {
		cp.Percentage = float64(completed) / float64(cp.TotalLessons) * 100
	}
	return cp, nil
}
