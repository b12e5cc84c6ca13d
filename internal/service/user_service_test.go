package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"science_lms_backend/internal/access"
	"science_lms_backend/internal/model"
)

// The role gates fire before any repository access, so they can be tested
// with a nil repository.

func TestUserListRequiresAdministrator(t *testing.T) {
	svc := NewUserService(nil)

	tests := []struct {
		name   string
		caller *access.Caller
	}{
		{"anonymous", nil},
		{"student", &access.Caller{ID: 1, Role: model.RoleStudent}},
		{"teacher", &access.Caller{ID: 2, Role: model.RoleTeacher}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.List("", 1, 20, tt.caller)
			assert.ErrorIs(t, err, ErrForbidden)
		})
	}
}

func TestUserDeleteGuards(t *testing.T) {
	svc := NewUserService(nil)

	t.Run("non-administrator", func(t *testing.T) {
		err := svc.Delete(3, &access.Caller{ID: 2, Role: model.RoleTeacher})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("own account", func(t *testing.T) {
		err := svc.Delete(9, &access.Caller{ID: 9, Role: model.RoleAdmin})
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestUpdateProfileRequiresLogin(t *testing.T) {
	svc := NewUserService(nil)

	_, err := svc.UpdateProfile(ProfileInput{Name: "X"}, nil)
	assert.ErrorIs(t, err, ErrForbidden)
}
