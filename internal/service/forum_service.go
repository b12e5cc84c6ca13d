package service

import (
	"encoding/json"
	"errors"
	"time"

	"science_lms_backend/internal/access"
	"science_lms_backend/internal/model"
	"science_lms_backend/internal/repository"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ForumInput struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description"`
}

type PostInput struct {
	Content     string          `json:"content" binding:"required"`
	ParentID    *uint           `json:"parentId"`
	Attachments json.RawMessage `json:"attachments"`
}

type ForumService struct {
	ForumRepo      *repository.ForumRepository
	CourseRepo     *repository.CourseRepository
	EnrollmentRepo *repository.EnrollmentRepository
}

func NewForumService(forumRepo *repository.ForumRepository, courseRepo *repository.CourseRepository, enrollmentRepo *repository.EnrollmentRepository) *ForumService {
	return &ForumService{ForumRepo: forumRepo, CourseRepo: courseRepo, EnrollmentRepo: enrollmentRepo}
}

func (s *ForumService) ListByCourse(courseID uint, caller *access.Caller) ([]model.DiscussionForum, error) {
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
	return s.ForumRepo.ListByCourse(courseID)
}

func (s *ForumService) Create(courseID uint, input ForumInput, caller *access.Caller) (*model.DiscussionForum, error) {
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

	forum := &model.DiscussionForum{
		CourseID:    courseID,
		Title:       input.Title,
		Description: input.Description,
		CreatedBy:   caller.ID,
	}
	if err := s.ForumRepo.Create(forum); err != nil {
		return nil, err
	}
	return forum, nil
}

// ListThreads returns a forum's top-level posts with replies attached.
func (s *ForumService) ListThreads(forumID uint, caller *access.Caller) ([]model.ForumPost, error) {
	forum, err := s.ForumRepo.FindByID(forumID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	course, err := s.CourseRepo.FindByID(forum.CourseID)
	if err != nil {
		return nil, err
	}
	if !access.CanViewCourse(caller, course) {
		return nil, ErrForbidden
	}
	return s.ForumRepo.ListThreads(forumID)
}

// ListReplies returns the direct replies under a post, oldest first.
func (s *ForumService) ListReplies(postID uint, caller *access.Caller) ([]model.ForumPost, error) {
	post, err := s.ForumRepo.FindPost(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	forum, err := s.ForumRepo.FindByID(post.ForumID)
	if err != nil {
		return nil, err
	}
	course, err := s.CourseRepo.FindByID(forum.CourseID)
	if err != nil {
		return nil, err
	}
	if !access.CanViewCourse(caller, course) {
		return nil, ErrForbidden
	}
	return s.ForumRepo.ListReplies(postID)
}

// CreatePost adds a post or threaded reply. Enrolled students, the course's
// teacher and administrators may post; locked forums reject everyone.
func (s *ForumService) CreatePost(forumID uint, input PostInput, caller *access.Caller) (*model.ForumPost, error) {
	if caller.IsAnonymous() {
		return nil, ErrForbidden
	}
	forum, err := s.ForumRepo.FindByID(forumID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if forum.IsLocked {
		return nil, ErrForumLocked
	}

	course, err := s.CourseRepo.FindByID(forum.CourseID)
	if err != nil {
		return nil, err
	}
	if caller.IsStudent() {
		if _, err := s.EnrollmentRepo.FindByCourseAndStudent(forum.CourseID, caller.ID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotEnrolled
			}
			return nil, err
		}
	} else if !access.CanEditCourse(caller, course) {
		return nil, ErrForbidden
	}

	if input.ParentID != nil {
		parent, err := s.ForumRepo.FindPost(*input.ParentID)
		if err != nil || parent.ForumID != forumID {
			return nil, ErrNotFound
		}
	}

	post := &model.ForumPost{
		ForumID:     forumID,
		UserID:      caller.ID,
		ParentID:    input.ParentID,
		Content:     input.Content,
		Attachments: datatypes.JSON(input.Attachments),
	}
	if err := s.ForumRepo.CreatePost(post); err != nil {
		return nil, err
	}
	return post, nil
}

// EditPost lets the author amend their post; moderators may edit anything.
func (s *ForumService) EditPost(postID uint, content string, caller *access.Caller) (*model.ForumPost, error) {
	post, err := s.ForumRepo.FindPost(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !access.CanModeratePost(caller, post) {
		return nil, ErrForbidden
	}

	now := time.Now()
	post.Content = content
	post.IsEdited = true
	post.EditedAt = &now
	if err := s.ForumRepo.UpdatePost(post); err != nil {
		return nil, err
	}
	return post, nil
}

// PinPost toggles a post pin; teacher/admin only.
func (s *ForumService) PinPost(postID uint, pinned bool, caller *access.Caller) (*model.ForumPost, error) {
	if !access.CanGrade(caller) {
		return nil, ErrForbidden
	}
	post, err := s.ForumRepo.FindPost(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	post.IsPinned = pinned
	if err := s.ForumRepo.UpdatePost(post); err != nil {
		return nil, err
	}
	return post, nil
}

// Lock toggles a forum's locked flag; teacher/admin only.
func (s *ForumService) Lock(forumID uint, locked bool, caller *access.Caller) (*model.DiscussionForum, error) {
	forum, err := s.ForumRepo.FindByID(forumID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	course, err := s.CourseRepo.FindByID(forum.CourseID)
	if err != nil {
		return nil, err
	}
	if !access.CanEditCourse(caller, course) {
		return nil, ErrForbidden
	}
	forum.IsLocked = locked
	if err := s.ForumRepo.Update(forum); err != nil {
		return nil, err
	}
	return forum, nil
}
