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

type AssignmentInput struct {
	Title               string          `json:"title" binding:"required,max=255"`
	Description         string          `json:"description" binding:"required"`
	Instructions        string          `json:"instructions"`
	LessonID            *uint           `json:"lessonId"`
	MaxPoints           float64         `json:"maxPoints" binding:"omitempty,min=0"`
	DueDate             *time.Time      `json:"dueDate"`
	AllowLateSubmission *bool           `json:"allowLateSubmission"`
	LatePenaltyPercent  *float64        `json:"latePenaltyPercent" binding:"omitempty,min=0,max=100"`
	AllowedFileTypes    json.RawMessage `json:"allowedFileTypes"`
	MaxFileSizeMB       int             `json:"maxFileSizeMb" binding:"omitempty,min=1"`
}

type SubmissionInput struct {
	Content     string          `json:"content"`
	Attachments json.RawMessage `json:"attachments"`
}

type GradeInput struct {
	Score    float64 `json:"score" binding:"min=0"`
	Feedback string  `json:"feedback"`
}

type AssignmentService struct {
	AssignmentRepo *repository.AssignmentRepository
	CourseRepo     *repository.CourseRepository
	EnrollmentRepo *repository.EnrollmentRepository
}

func NewAssignmentService(assignmentRepo *repository.AssignmentRepository, courseRepo *repository.CourseRepository, enrollmentRepo *repository.EnrollmentRepository) *AssignmentService {
	return &AssignmentService{AssignmentRepo: assignmentRepo, CourseRepo: courseRepo, EnrollmentRepo: enrollmentRepo}
}

func (s *AssignmentService) courseForManage(courseID uint, caller *access.Caller) error {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !access.CanEditCourse(caller, course) {
		return ErrForbidden
	}
	return nil
}

func (s *AssignmentService) Create(courseID uint, input AssignmentInput, caller *access.Caller) (*model.Assignment, error) {
	if err := s.courseForManage(courseID, caller); err != nil {
		return nil, err
	}

	assignment := &model.Assignment{
		CourseID:            courseID,
		LessonID:            input.LessonID,
		Title:               input.Title,
		Description:         input.Description,
		Instructions:        input.Instructions,
		MaxPoints:           100,
		DueDate:             input.DueDate,
		AllowLateSubmission: true,
		LatePenaltyPercent:  10,
		AllowedFileTypes:    datatypes.JSON(input.AllowedFileTypes),
		MaxFileSizeMB:       10,
	}
	if input.MaxPoints > 0 {
		assignment.MaxPoints = input.MaxPoints
	}
	if input.AllowLateSubmission != nil {
		assignment.AllowLateSubmission = *input.AllowLateSubmission
	}
	if input.LatePenaltyPercent != nil {
		assignment.LatePenaltyPercent = *input.LatePenaltyPercent
	}
	if input.MaxFileSizeMB > 0 {
		assignment.MaxFileSizeMB = input.MaxFileSizeMB
	}
	if err := s.AssignmentRepo.Create(assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

func (s *AssignmentService) ListByCourse(courseID uint, caller *access.Caller) ([]model.Assignment, error) {
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
	return s.AssignmentRepo.ListByCourse(courseID, publishedOnly)
}

func (s *AssignmentService) Get(id uint, caller *access.Caller) (*model.Assignment, error) {
	assignment, err := s.AssignmentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	course, err := s.CourseRepo.FindByID(assignment.CourseID)
	if err != nil {
		return nil, err
	}
	if !access.CanViewCourse(caller, course) {
		return nil, ErrForbidden
	}
	if !assignment.IsPublished && !access.CanEditCourse(caller, course) {
		return nil, ErrForbidden
	}
	return assignment, nil
}

func (s *AssignmentService) Update(id uint, input AssignmentInput, caller *access.Caller) (*model.Assignment, error) {
	assignment, err := s.AssignmentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.courseForManage(assignment.CourseID, caller); err != nil {
		return nil, err
	}

	assignment.Title = input.Title
	assignment.Description = input.Description
	assignment.Instructions = input.Instructions
	assignment.LessonID = input.LessonID
	assignment.DueDate = input.DueDate
	if input.MaxPoints > 0 {
		assignment.MaxPoints = input.MaxPoints
	}
	if input.AllowLateSubmission != nil {
		assignment.AllowLateSubmission = *input.AllowLateSubmission
	}
	if input.LatePenaltyPercent != nil {
		assignment.LatePenaltyPercent = *input.LatePenaltyPercent
	}
	if len(input.AllowedFileTypes) > 0 {
		assignment.AllowedFileTypes = datatypes.JSON(input.AllowedFileTypes)
	}
	if input.MaxFileSizeMB > 0 {
		assignment.MaxFileSizeMB = input.MaxFileSizeMB
	}
	if err := s.AssignmentRepo.Update(assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

func (s *AssignmentService) Publish(id uint, publish bool, caller *access.Caller) (*model.Assignment, error) {
	assignment, err := s.AssignmentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.courseForManage(assignment.CourseID, caller); err != nil {
		return nil, err
	}
	assignment.IsPublished = publish
	if err := s.AssignmentRepo.Update(assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

func (s *AssignmentService) Delete(id uint, caller *access.Caller) error {
	assignment, err := s.AssignmentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if err := s.courseForManage(assignment.CourseID, caller); err != nil {
		return err
	}
	return s.AssignmentRepo.Delete(id)
}

// SaveDraft creates or updates the calling student's draft for an
// assignment. One submission row per (assignment, student).
func (s *AssignmentService) SaveDraft(assignmentID uint, input SubmissionInput, caller *access.Caller) (*model.AssignmentSubmission, error) {
	_, sub, err := s.submissionFor(assignmentID, caller)
	if err != nil {
		return nil, err
	}

	sub.Content = input.Content
	if len(input.Attachments) > 0 {
		sub.Attachments = datatypes.JSON(input.Attachments)
	}
	if sub.ID == 0 {
		err = s.AssignmentRepo.CreateSubmission(sub)
	} else {
		err = s.AssignmentRepo.UpdateSubmission(sub)
	}
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// Submit turns the draft in, stamping submitted_at and the late flag.
func (s *AssignmentService) Submit(assignmentID uint, input SubmissionInput, caller *access.Caller) (*model.AssignmentSubmission, error) {
	assignment, sub, err := s.submissionFor(assignmentID, caller)
	if err != nil {
		return nil, err
	}
	if sub.Status == model.SubmissionGraded {
		return nil, ErrForbidden
	}

	now := time.Now()
	late := assignment.DueDate != nil && now.After(*assignment.DueDate)
	if late && !assignment.AllowLateSubmission {
		return nil, ErrForbidden
	}

	if input.Content != "" {
		sub.Content = input.Content
	}
	if len(input.Attachments) > 0 {
		sub.Attachments = datatypes.JSON(input.Attachments)
	}
	sub.Status = model.SubmissionSubmitted
	sub.IsLate = late
	sub.SubmittedAt = &now

	if sub.ID == 0 {
		err = s.AssignmentRepo.CreateSubmission(sub)
	} else {
		err = s.AssignmentRepo.UpdateSubmission(sub)
	}
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// Grade scores a submitted assignment, applying the late penalty when the
// work was late.
func (s *AssignmentService) Grade(submissionID uint, input GradeInput, caller *access.Caller) (*model.AssignmentSubmission, error) {
	if !access.CanGrade(caller) {
		return nil, ErrForbidden
	}
	sub, err := s.AssignmentRepo.FindSubmission(submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.courseForManage(sub.Assignment.CourseID, caller); err != nil {
		return nil, err
	}

	score := input.Score
	if sub.IsLate && sub.Assignment.LatePenaltyPercent > 0 {
		score = ApplyLatePenalty(score, sub.Assignment.LatePenaltyPercent)
	}

	now := time.Now()
	sub.Score = &score
	sub.Feedback = input.Feedback
	sub.Status = model.SubmissionGraded
	sub.GradedAt = &now
	sub.GradedBy = &caller.ID
	if err := s.AssignmentRepo.UpdateSubmission(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// Return hands a graded submission back to the student.
func (s *AssignmentService) Return(submissionID uint, caller *access.Caller) (*model.AssignmentSubmission, error) {
	if !access.CanGrade(caller) {
		return nil, ErrForbidden
	}
	sub, err := s.AssignmentRepo.FindSubmission(submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	sub.Status = model.SubmissionReturned
	if err := s.AssignmentRepo.UpdateSubmission(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *AssignmentService) ListSubmissions(assignmentID uint, caller *access.Caller) ([]model.AssignmentSubmission, error) {
	assignment, err := s.AssignmentRepo.FindByID(assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.courseForManage(assignment.CourseID, caller); err != nil {
		return nil, err
	}
	return s.AssignmentRepo.ListSubmissions(assignmentID)
}

// submissionFor loads the assignment and the caller's existing submission
// row, or a fresh one, after checking the student may submit at all.
func (s *AssignmentService) submissionFor(assignmentID uint, caller *access.Caller) (*model.Assignment, *model.AssignmentSubmission, error) {
	if !caller.IsStudent() {
		return nil, nil, ErrForbidden
	}
	assignment, err := s.AssignmentRepo.FindByID(assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	if !assignment.IsPublished {
		return nil, nil, ErrForbidden
	}
	if _, err := s.EnrollmentRepo.FindByCourseAndStudent(assignment.CourseID, caller.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotEnrolled
		}
		return nil, nil, err
	}

	sub, err := s.AssignmentRepo.FindSubmissionByStudent(assignmentID, caller.ID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, err
		}
		sub = &model.AssignmentSubmission{
			AssignmentID: assignmentID,
			StudentID:    caller.ID,
			Status:       model.SubmissionDraft,
		}
	}
	return assignment, sub, nil
}

// ApplyLatePenalty deducts the configured percentage from a late score.
func ApplyLatePenalty(score, penaltyPercent float64) float64 {
	s := score * (1 - penaltyPercent/100)
	if s < 0 {
		return 0
	}
	return s
}
