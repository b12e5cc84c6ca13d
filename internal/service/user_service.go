package service

import (
	"errors"
	"time"

	"science_lms_backend/internal/access"
	"science_lms_backend/internal/model"
	"science_lms_backend/internal/repository"

	"gorm.io/gorm"
)

// ProfileInput is the self-service profile form. Role and activation are
// admin-only and deliberately absent.
type ProfileInput struct {
	Name                  string     `json:"name" binding:"omitempty,max=100"`
	Bio                   string     `json:"bio"`
	Avatar                string     `json:"avatar" binding:"omitempty,max=255"`
	Grade                 string     `json:"grade" binding:"omitempty,max=20"`
	SubjectSpecialization string     `json:"subjectSpecialization" binding:"omitempty,max=100"`
	BirthDate             *time.Time `json:"birthDate"`
}

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

// List pages through all accounts. Administrators only.
func (s *UserService) List(role string, page, pageSize int, caller *access.Caller) ([]model.User, int64, error) {
	if !caller.IsAdministrator() {
		return nil, 0, ErrForbidden
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.UserRepo.FindAll(role, page, pageSize)
}

// UpdateProfile lets a user edit their own profile fields.
func (s *UserService) UpdateProfile(input ProfileInput, caller *access.Caller) (*model.User, error) {
	if caller.IsAnonymous() {
		return nil, ErrForbidden
	}
	user, err := s.UserRepo.FindByID(caller.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Bio != "" {
		user.Bio = input.Bio
	}
	if input.Avatar != "" {
		user.Avatar = input.Avatar
	}
	if input.Grade != "" && user.IsStudent() {
		user.Grade = input.Grade
	}
	if input.SubjectSpecialization != "" && user.IsTeacher() {
		user.SubjectSpecialization = input.SubjectSpecialization
	}
	if input.BirthDate != nil {
		user.BirthDate = input.BirthDate
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetActive enables or disables an account. Disabled accounts fail login.
func (s *UserService) SetActive(id uint, active bool, caller *access.Caller) (*model.User, error) {
	if !caller.IsAdministrator() {
		return nil, ErrForbidden
	}
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	user.IsActive = active
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes an account and everything rooted at it. A teacher's courses
// go down with all their nested content; a student's enrollments, work, and
// posts go directly.
func (s *UserService) Delete(id uint, caller *access.Caller) error {
	if !caller.IsAdministrator() {
		return ErrForbidden
	}
	if caller.ID == id {
		return ErrForbidden
	}
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.UserRepo.Delete(user, repository.DeleteCourseTx)
}
