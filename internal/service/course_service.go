package service

import (
	"errors"
	"fmt"

	"science_lms_backend/internal/access"
	"science_lms_backend/internal/model"
	"science_lms_backend/internal/repository"

	"gorm.io/gorm"
)

// CoursePayload carries the create/update form. Pointer fields distinguish
// "absent" from zero on partial updates.
type CoursePayload struct {
	Title         *string `json:"title"`
	Code          *string `json:"code"`
	Description   *string `json:"description"`
	GradeLevel    *string `json:"gradeLevel"`
	Subject       *string `json:"subject"`
	TeacherID     *uint   `json:"teacherId"`
	CoverImage    *string `json:"coverImage"`
	Status        *string `json:"status"`
	DurationWeeks *int    `json:"durationWeeks"`
}

// CourseDetail is the course page: the course with published nested content
// plus the caller's enrollment when they are a student.
type CourseDetail struct {
	Course     *model.Course           `json:"course"`
	Enrollment *model.CourseEnrollment `json:"enrollment,omitempty"`
}

type CourseService struct {
	CourseRepo     *repository.CourseRepository
	UserRepo       *repository.UserRepository
	EnrollmentRepo *repository.EnrollmentRepository
}

func NewCourseService(courseRepo *repository.CourseRepository, userRepo *repository.UserRepository, enrollmentRepo *repository.EnrollmentRepository) *CourseService {
	return &CourseService{
		CourseRepo:     courseRepo,
		UserRepo:       userRepo,
		EnrollmentRepo: enrollmentRepo,
	}
}

// List returns the page of courses the caller may see.
func (s *CourseService) List(caller *access.Caller, page, pageSize int) ([]model.Course, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 12
	}
	return s.CourseRepo.List(caller, page, pageSize)
}

// Get loads the course detail, enforcing the published/privileged visibility
// rule and attaching the student's enrollment record.
func (s *CourseService) Get(id uint, caller *access.Caller) (*CourseDetail, error) {
	course, err := s.CourseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !access.CanViewCourse(caller, course) {
		return nil, ErrForbidden
	}

	course, err = s.CourseRepo.FindDetail(id)
	if err != nil {
		return nil, err
	}

	detail := &CourseDetail{Course: course}
	if access.WantsEnrollment(caller) {
		enrollment, err := s.EnrollmentRepo.FindByCourseAndStudent(id, caller.ID)
		if err == nil {
			detail.Enrollment = enrollment
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	return detail, nil
}

func (s *CourseService) Create(payload CoursePayload, caller *access.Caller) (*model.Course, error) {
	if !access.CanManageCourses(caller) {
		return nil, ErrForbidden
	}

	applyTeacherOverride(&payload, caller)

	course := &model.Course{}
	if err := s.validate(&payload, course, true); err != nil {
		return nil, err
	}
	if err := s.CourseRepo.Create(course); err != nil {
		if repository.IsDuplicateEntry(err) {
			verr := NewValidationError()
			verr.Add("code", "This course code is already taken.")
			return nil, verr
		}
		return nil, err
	}
	return course, nil
}

func (s *CourseService) Update(id uint, payload CoursePayload, caller *access.Caller) (*model.Course, error) {
	if !access.CanManageCourses(caller) {
		return nil, ErrForbidden
	}
	course, err := s.CourseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !access.CanEditCourse(caller, course) {
		return nil, ErrForbidden
	}

	applyTeacherOverride(&payload, caller)

	if err := s.validate(&payload, course, false); err != nil {
		return nil, err
	}
	if err := s.CourseRepo.Update(course); err != nil {
		if repository.IsDuplicateEntry(err) {
			verr := NewValidationError()
			verr.Add("code", "This course code is already taken.")
			return nil, verr
		}
		return nil, err
	}
	return course, nil
}

func (s *CourseService) Delete(id uint, caller *access.Caller) error {
	if !access.CanManageCourses(caller) {
		return ErrForbidden
	}
	course, err := s.CourseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !access.CanEditCourse(caller, course) {
		return ErrForbidden
	}
	return s.CourseRepo.DeleteCascade(course.ID)
}

// applyTeacherOverride pins ownership: a teacher always creates and keeps
// courses under their own id, whatever the form submitted.
func applyTeacherOverride(payload *CoursePayload, caller *access.Caller) {
	if caller.IsTeacher() {
		id := access.EffectiveTeacherID(caller, 0)
		payload.TeacherID = &id
	}
}

// validate applies the form rules and, when they pass, copies the payload
// onto course. Absent fields keep their current values on updates; creation
// requires the full set.
func (s *CourseService) validate(payload *CoursePayload, course *model.Course, creating bool) error {
	verr := NewValidationError()

	if payload.Title != nil {
		if *payload.Title == "" {
			verr.Add("title", "Course title is required.")
		} else if len(*payload.Title) > 255 {
			verr.Add("title", "Course title may not be longer than 255 characters.")
		}
	} else if creating {
		verr.Add("title", "Course title is required.")
	}

	if payload.Code != nil {
		switch {
		case *payload.Code == "":
			verr.Add("code", "Course code is required.")
		case len(*payload.Code) > 20:
			verr.Add("code", "Course code may not be longer than 20 characters.")
		default:
			taken, err := s.CourseRepo.CodeTaken(*payload.Code, course.ID)
			if err != nil {
				return err
			}
			if taken {
				verr.Add("code", "This course code is already taken.")
			}
		}
	} else if creating {
		verr.Add("code", "Course code is required.")
	}

	if payload.Description != nil {
		if *payload.Description == "" {
			verr.Add("description", "Course description is required.")
		}
	} else if creating {
		verr.Add("description", "Course description is required.")
	}

	if payload.GradeLevel != nil {
		switch model.GradeLevel(*payload.GradeLevel) {
		case model.Grade7, model.Grade8, model.Grade9:
		default:
			verr.Add("grade_level", "Grade level must be 7th, 8th, or 9th.")
		}
	} else if creating {
		verr.Add("grade_level", "Grade level is required.")
	}

	if payload.Subject != nil {
		if *payload.Subject == "" {
			verr.Add("subject", "Subject is required.")
		} else if len(*payload.Subject) > 100 {
			verr.Add("subject", "Subject may not be longer than 100 characters.")
		}
	} else if creating {
		verr.Add("subject", "Subject is required.")
	}

	if payload.TeacherID != nil && *payload.TeacherID != 0 {
		exists, err := s.UserRepo.Exists(*payload.TeacherID)
		if err != nil {
			return err
		}
		if !exists {
			verr.Add("teacher_id", "Selected teacher does not exist.")
		}
	} else if creating {
		verr.Add("teacher_id", "Teacher assignment is required.")
	}

	if payload.Status != nil {
		switch model.CourseStatus(*payload.Status) {
		case model.CourseDraft, model.CoursePublished, model.CourseArchived:
		default:
			verr.Add("status", fmt.Sprintf("Status %q is not valid.", *payload.Status))
		}
	} else if creating {
		verr.Add("status", "Status is required.")
	}

	if payload.DurationWeeks != nil {
		if *payload.DurationWeeks < 1 {
			verr.Add("duration_weeks", "Course duration must be at least 1 week.")
		} else if *payload.DurationWeeks > 52 {
			verr.Add("duration_weeks", "Course duration cannot exceed 52 weeks.")
		}
	} else if creating {
		verr.Add("duration_weeks", "Course duration is required.")
	}

	if verr.HasErrors() {
		return verr
	}

	if payload.Title != nil {
		course.Title = *payload.Title
	}
	if payload.Code != nil {
		course.Code = *payload.Code
	}
	if payload.Description != nil {
		course.Description = *payload.Description
	}
	if payload.GradeLevel != nil {
		course.GradeLevel = model.GradeLevel(*payload.GradeLevel)
	}
	if payload.Subject != nil {
		course.Subject = *payload.Subject
	}
	if payload.TeacherID != nil && *payload.TeacherID != 0 {
		course.TeacherID = *payload.TeacherID
	}
	if payload.CoverImage != nil {
		course.CoverImage = *payload.CoverImage
	}
	if payload.Status != nil {
		course.Status = model.CourseStatus(*payload.Status)
	}
	if payload.DurationWeeks != nil {
		course.DurationWeeks = *payload.DurationWeeks
	}
	return nil
}
