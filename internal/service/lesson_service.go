package service

import (
	"context"
	"errors"
	"math"
	"mime/multipart"
	"time"

	"science_lms_backend/internal/access"
	"science_lms_backend/internal/model"
	"science_lms_backend/internal/repository"
	"science_lms_backend/internal/util"

	"gorm.io/gorm"
)

type LessonInput struct {
	Title             string `json:"title" binding:"required,max=255"`
	Description       string `json:"description"`
	Content           string `json:"content"`
	ContentType       string `json:"contentType" binding:"omitempty,oneof=text video interactive mixed"`
	VideoURL          string `json:"videoUrl"`
	EstimatedDuration int    `json:"estimatedDuration" binding:"omitempty,min=1"`
}

type LessonService struct {
	LessonRepo *repository.LessonRepository
	CourseRepo *repository.CourseRepository
	Storage    *StorageService
}

func NewLessonService(lessonRepo *repository.LessonRepository, courseRepo *repository.CourseRepository, storage *StorageService) *LessonService {
	return &LessonService{LessonRepo: lessonRepo, CourseRepo: courseRepo, Storage: storage}
}

// courseForManage loads the course and checks the caller may manage its
// content.
func (s *LessonService) courseForManage(courseID uint, caller *access.Caller) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !access.CanEditCourse(caller, course) {
		return nil, ErrForbidden
	}
	return course, nil
}

// ListByCourse returns a course's lessons ordered by position; published-only
// unless the caller may manage the course.
func (s *LessonService) ListByCourse(courseID uint, caller *access.Caller) ([]model.Lesson, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !access.CanViewCourse(caller, course) {
		return nil, ErrForbidden
	}
	publishedOnly := !access.CanEditCourse(caller, course)
	return s.LessonRepo.ListByCourse(courseID, publishedOnly)
}

func (s *LessonService) Get(id uint, caller *access.Caller) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	course, err := s.CourseRepo.FindByID(lesson.CourseID)
	if err != nil {
		return nil, err
	}
	if !access.CanViewCourse(caller, course) {
		return nil, ErrForbidden
	}
	if !lesson.IsPublished && !access.CanEditCourse(caller, course) {
		return nil, ErrForbidden
	}
	return lesson, nil
}

func (s *LessonService) Create(courseID uint, input LessonInput, caller *access.Caller) (*model.Lesson, error) {
	if _, err := s.courseForManage(courseID, caller); err != nil {
		return nil, err
	}

	order, err := s.LessonRepo.NextOrderIndex(courseID)
	if err != nil {
		return nil, err
	}

	lesson := &model.Lesson{
		CourseID:          courseID,
		Title:             input.Title,
		Description:       input.Description,
		Content:           input.Content,
		ContentType:       model.LessonMixed,
		VideoURL:          input.VideoURL,
		OrderIndex:        order,
		EstimatedDuration: 45,
	}
	if input.ContentType != "" {
		lesson.ContentType = model.LessonContentType(input.ContentType)
	}
	if input.EstimatedDuration > 0 {
		lesson.EstimatedDuration = input.EstimatedDuration
	}
	if err := s.LessonRepo.Create(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *LessonService) Update(id uint, input LessonInput, caller *access.Caller) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if _, err := s.courseForManage(lesson.CourseID, caller); err != nil {
		return nil, err
	}

	lesson.Title = input.Title
	lesson.Description = input.Description
	lesson.Content = input.Content
	if input.ContentType != "" {
		lesson.ContentType = model.LessonContentType(input.ContentType)
	}
	lesson.VideoURL = input.VideoURL
	if input.EstimatedDuration > 0 {
		lesson.EstimatedDuration = input.EstimatedDuration
	}
	if err := s.LessonRepo.Update(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *LessonService) Delete(id uint, caller *access.Caller) error {
	lesson, err := s.LessonRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if _, err := s.courseForManage(lesson.CourseID, caller); err != nil {
		return err
	}
	return s.LessonRepo.Delete(id)
}

func (s *LessonService) Publish(id uint, publish bool, caller *access.Caller) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if _, err := s.courseForManage(lesson.CourseID, caller); err != nil {
		return nil, err
	}

	lesson.IsPublished = publish
	if publish && lesson.PublishedAt == nil {
		now := time.Now()
		lesson.PublishedAt = &now
	}
	if err := s.LessonRepo.Update(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *LessonService) Reorder(courseID uint, lessonIDs []uint, caller *access.Caller) error {
	if _, err := s.courseForManage(courseID, caller); err != nil {
		return err
	}
	if err := s.LessonRepo.Reorder(courseID, lessonIDs); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// AttachVideo stores an uploaded lesson video and, when the file can be
// probed, fills estimated_duration from the footage length.
func (s *LessonService) AttachVideo(ctx context.Context, id uint, file *multipart.FileHeader, caller *access.Caller) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if _, err := s.courseForManage(lesson.CourseID, caller); err != nil {
		return nil, err
	}

	url, localPath, err := s.Storage.Save(ctx, file, "lessons")
	if err != nil {
		return nil, err
	}

	lesson.VideoURL = url
	lesson.ContentType = model.LessonVideo
	if localPath != "" {
		if info, err := util.ProbeVideo(localPath); err == nil && info.Duration > 0 {
			lesson.EstimatedDuration = int(math.Ceil(info.Duration / 60))
		}
	}
	if err := s.LessonRepo.Update(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}
