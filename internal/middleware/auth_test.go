package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"science_lms_backend/internal/config"
	"science_lms_backend/internal/model"
	"science_lms_backend/internal/util"
)

const testSecret = "middleware-test-secret"

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cfg := &config.Config{}
	cfg.JWT.Secret = testSecret
	r.Use(func(c *gin.Context) {
		c.Set("config", cfg)
		c.Next()
	})
	r.GET("/whoami", append(handlers, func(c *gin.Context) {
		caller := util.CallerFromContext(c)
		if caller == nil {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, string(caller.Role))
	})...)
	return r
}

func tokenFor(t *testing.T, id uint, role model.UserRole) string {
	t.Helper()
	user := &model.User{BaseModel: model.BaseModel{ID: id}, Role: role}
	token, err := util.GenerateJWT(user, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT() failed: %v", err)
	}
	return token
}

func request(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter(AuthMiddleware())

	t.Run("valid token passes", func(t *testing.T) {
		w := request(r, tokenFor(t, 1, model.RoleStudent))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "student", w.Body.String())
	})

	t.Run("missing token rejected", func(t *testing.T) {
		w := request(r, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		w := request(r, "not-a-token")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token via query parameter", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami?token="+tokenFor(t, 2, model.RoleTeacher), nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "teacher", w.Body.String())
	})
}

func TestTryAuthMiddleware(t *testing.T) {
	r := newRouter(TryAuthMiddleware())

	t.Run("anonymous passes through", func(t *testing.T) {
		w := request(r, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "anonymous", w.Body.String())
	})

	t.Run("valid token attaches claims", func(t *testing.T) {
		w := request(r, tokenFor(t, 3, model.RoleAdmin))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "administrator", w.Body.String())
	})

	t.Run("bad token treated as anonymous", func(t *testing.T) {
		w := request(r, "expired.or.garbage")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "anonymous", w.Body.String())
	})
}

func TestRoleMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		role     model.UserRole
		allowed  []model.UserRole
		wantCode int
	}{
		{"teacher on teacher route", model.RoleTeacher, []model.UserRole{model.RoleTeacher}, http.StatusOK},
		{"student on teacher route", model.RoleStudent, []model.UserRole{model.RoleTeacher}, http.StatusForbidden},
		{"admin passes teacher gate", model.RoleAdmin, []model.UserRole{model.RoleTeacher}, http.StatusOK},
		{"admin passes student gate", model.RoleAdmin, []model.UserRole{model.RoleStudent}, http.StatusOK},
		{"student on student route", model.RoleStudent, []model.UserRole{model.RoleStudent}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(AuthMiddleware(), RoleMiddleware(tt.allowed...))
			w := request(r, tokenFor(t, 1, tt.role))
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}
