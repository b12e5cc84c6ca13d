package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"science_lms_backend/internal/model"
)

func TestGenerateAndParseJWT(t *testing.T) {
	user := &model.User{
		BaseModel: model.BaseModel{ID: 12},
		Email:     "teacher@school.edu",
		Role:      model.RoleTeacher,
	}

	token, err := GenerateJWT(user, "test-secret", time.Hour)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ParseJWT(token, "test-secret")
	assert.NoError(t, err)
	assert.Equal(t, uint(12), claims.UserID)
	assert.Equal(t, model.RoleTeacher, claims.Role)
	assert.Equal(t, "teacher@school.edu", claims.Email)
}

func TestParseJWTWrongSecret(t *testing.T) {
	user := &model.User{BaseModel: model.BaseModel{ID: 1}, Role: model.RoleStudent}

	token, err := GenerateJWT(user, "right-secret", time.Hour)
	assert.NoError(t, err)

	_, err = ParseJWT(token, "wrong-secret")
	assert.Error(t, err)
}

func TestParseJWTExpired(t *testing.T) {
	user := &model.User{BaseModel: model.BaseModel{ID: 1}, Role: model.RoleStudent}

	token, err := GenerateJWT(user, "test-secret", -time.Minute)
	assert.NoError(t, err)

	_, err = ParseJWT(token, "test-secret")
	assert.Error(t, err)
}

func TestParseJWTGarbage(t *testing.T) {
	_, err := ParseJWT("not.a.token", "test-secret")
	assert.Error(t, err)
}
