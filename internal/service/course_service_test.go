package service

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"science_lms_backend/internal/access"
	"science_lms_backend/internal/model"
	"science_lms_backend/internal/repository"
)

func newMockedCourseService(t *testing.T) (*CourseService, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New() failed: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	if err != nil {
		t.Fatalf("gorm.Open() failed: %v", err)
	}

	svc := NewCourseService(
		repository.NewCourseRepository(db),
		repository.NewUserRepository(db),
		repository.NewEnrollmentRepository(db),
	)
	return svc, mock
}

func countRows(n int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"count(*)"}).AddRow(n)
}

func strp(s string) *string { return &s }

func uintp(u uint) *uint { return &u }

func intp(i int) *int { return &i }

func fullPayload() CoursePayload {
	return CoursePayload{
		Title:         strp("Physical Science"),
		Code:          strp("SCI-801"),
		Description:   strp("Motion, forces, and energy."),
		GradeLevel:    strp("8th"),
		Subject:       strp("Physics"),
		TeacherID:     uintp(7),
		Status:        strp("draft"),
		DurationWeeks: intp(12),
	}
}

func TestCourseValidateCreateMissingFields(t *testing.T) {
	svc, _ := newMockedCourseService(t)

	course := &model.Course{}
	err := svc.validate(&CoursePayload{}, course, true)

	verr, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	assert.Contains(t, verr.Fields["title"], "Course title is required.")
	assert.Contains(t, verr.Fields["code"], "Course code is required.")
	assert.Contains(t, verr.Fields["description"], "Course description is required.")
	assert.Contains(t, verr.Fields["grade_level"], "Grade level is required.")
	assert.Contains(t, verr.Fields["subject"], "Subject is required.")
	assert.Contains(t, verr.Fields["teacher_id"], "Teacher assignment is required.")
	assert.Contains(t, verr.Fields["status"], "Status is required.")
	assert.Contains(t, verr.Fields["duration_weeks"], "Course duration is required.")
}

func TestCourseValidateCreateRequiresEveryField(t *testing.T) {
	svc, mock := newMockedCourseService(t)

	mock.ExpectQuery("SELECT count.+FROM `courses`").WillReturnRows(countRows(0))
	mock.ExpectQuery("SELECT count.+FROM `users`").WillReturnRows(countRows(1))

	// A payload carrying only the fields that happen to have model defaults
	// must still fail; defaults never stand in for required input.
	payload := fullPayload()
	payload.Subject = nil
	payload.Status = nil
	payload.DurationWeeks = nil

	err := svc.validate(&payload, &model.Course{}, true)
	verr, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	assert.Contains(t, verr.Fields["subject"], "Subject is required.")
	assert.Contains(t, verr.Fields["status"], "Status is required.")
	assert.Contains(t, verr.Fields["duration_weeks"], "Course duration is required.")
}

func TestCourseValidateFieldRules(t *testing.T) {
	long := func(n int) string {
		b := make([]byte, n)
		for i := range b {
			b[i] = 'x'
		}
		return string(b)
	}

	tests := []struct {
		name    string
		mutate  func(*CoursePayload)
		field   string
		message string
	}{
		{"title too long", func(p *CoursePayload) { p.Title = strp(long(256)) }, "title", "Course title may not be longer than 255 characters."},
		{"code too long", func(p *CoursePayload) { p.Code = strp(long(21)) }, "code", "Course code may not be longer than 20 characters."},
		{"bad grade level", func(p *CoursePayload) { p.GradeLevel = strp("10th") }, "grade_level", "Grade level must be 7th, 8th, or 9th."},
		{"empty subject", func(p *CoursePayload) { p.Subject = strp("") }, "subject", "Subject is required."},
		{"subject too long", func(p *CoursePayload) { p.Subject = strp(long(101)) }, "subject", "Subject may not be longer than 100 characters."},
		{"bad status", func(p *CoursePayload) { p.Status = strp("retired") }, "status", `Status "retired" is not valid.`},
		{"duration too short", func(p *CoursePayload) { p.DurationWeeks = intp(0) }, "duration_weeks", "Course duration must be at least 1 week."},
		{"duration too long", func(p *CoursePayload) { p.DurationWeeks = intp(53) }, "duration_weeks", "Course duration cannot exceed 52 weeks."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newMockedCourseService(t)

			payload := CoursePayload{}
			tt.mutate(&payload)

			err := svc.validate(&payload, &model.Course{}, false)
			verr, ok := AsValidationError(err)
			if !ok {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			assert.Contains(t, verr.Fields[tt.field], tt.message)
		})
	}
}

func TestCourseListClampsPaging(t *testing.T) {
	svc, mock := newMockedCourseService(t)

	// An out-of-range page/limit falls back to the defaults; gorm drops the
	// LIMIT clause entirely for Limit(0), so requiring one proves the clamp.
	mock.ExpectQuery("SELECT count.+FROM `courses`").WillReturnRows(countRows(0))
	mock.ExpectQuery("SELECT .+ FROM `courses` .+ORDER BY created_at DESC LIMIT").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, total, err := svc.List(&access.Caller{ID: 1, Role: model.RoleStudent}, 0, 0)
	assert.NoError(t, err)
	assert.Zero(t, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseValidateCodeTaken(t *testing.T) {
	svc, mock := newMockedCourseService(t)

	mock.ExpectQuery("SELECT count.+FROM `courses`").WillReturnRows(countRows(1))

	err := svc.validate(&CoursePayload{Code: strp("SCI-801")}, &model.Course{}, false)
	verr, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	assert.Contains(t, verr.Fields["code"], "This course code is already taken.")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseValidateUnknownTeacher(t *testing.T) {
	svc, mock := newMockedCourseService(t)

	mock.ExpectQuery("SELECT count.+FROM `users`").WillReturnRows(countRows(0))

	err := svc.validate(&CoursePayload{TeacherID: uintp(42)}, &model.Course{}, false)
	verr, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	assert.Contains(t, verr.Fields["teacher_id"], "Selected teacher does not exist.")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseValidateCopiesPayload(t *testing.T) {
	svc, mock := newMockedCourseService(t)

	mock.ExpectQuery("SELECT count.+FROM `courses`").WillReturnRows(countRows(0))
	mock.ExpectQuery("SELECT count.+FROM `users`").WillReturnRows(countRows(1))

	course := &model.Course{}
	payload := fullPayload()

	err := svc.validate(&payload, course, true)
	assert.NoError(t, err)

	assert.Equal(t, "Physical Science", course.Title)
	assert.Equal(t, "SCI-801", course.Code)
	assert.Equal(t, model.Grade8, course.GradeLevel)
	assert.Equal(t, "Physics", course.Subject)
	assert.Equal(t, uint(7), course.TeacherID)
	assert.Equal(t, model.CourseDraft, course.Status)
	assert.Equal(t, 12, course.DurationWeeks)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyTeacherOverride(t *testing.T) {
	submitted := uint(99)

	t.Run("teacher is pinned to own id", func(t *testing.T) {
		payload := CoursePayload{TeacherID: &submitted}
		applyTeacherOverride(&payload, &access.Caller{ID: 7, Role: model.RoleTeacher})
		assert.Equal(t, uint(7), *payload.TeacherID)
	})

	t.Run("admin keeps the submitted teacher", func(t *testing.T) {
		payload := CoursePayload{TeacherID: &submitted}
		applyTeacherOverride(&payload, &access.Caller{ID: 1, Role: model.RoleAdmin})
		assert.Equal(t, uint(99), *payload.TeacherID)
	})
}
