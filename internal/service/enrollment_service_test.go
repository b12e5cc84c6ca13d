package service

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	"science_lms_backend/internal/access"
	"science_lms_backend/internal/model"
	"science_lms_backend/internal/repository"
)

func newMockedEnrollmentService(t *testing.T) (*EnrollmentService, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New() failed: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(gormmysql.New(gormmysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	if err != nil {
		t.Fatalf("gorm.Open() failed: %v", err)
	}

	svc := NewEnrollmentService(
		repository.NewEnrollmentRepository(db),
		repository.NewCourseRepository(db),
	)
	return svc, mock
}

// A concurrent duplicate slips past the existence lookup and hits the unique
// (course, student) index; the 1062 it raises must come back as the same
// already-enrolled error the lookup produces, not a 500.
func TestEnrollDuplicateEntryRace(t *testing.T) {
	svc, mock := newMockedEnrollmentService(t)
	student := &access.Caller{ID: 3, Role: model.RoleStudent}

	mock.ExpectQuery("SELECT .+ FROM `courses`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).AddRow(10, "published"))
	mock.ExpectQuery("SELECT .+ FROM `course_enrollments`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `course_enrollments`").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectRollback()

	_, err := svc.Enroll(10, student)
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollAlreadyEnrolled(t *testing.T) {
	svc, mock := newMockedEnrollmentService(t)
	student := &access.Caller{ID: 3, Role: model.RoleStudent}

	mock.ExpectQuery("SELECT .+ FROM `courses`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).AddRow(10, "published"))
	mock.ExpectQuery("SELECT .+ FROM `course_enrollments`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "course_id", "student_id"}).AddRow(1, 10, 3))

	_, err := svc.Enroll(10, student)
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollUnpublishedCourse(t *testing.T) {
	svc, mock := newMockedEnrollmentService(t)
	student := &access.Caller{ID: 3, Role: model.RoleStudent}

	mock.ExpectQuery("SELECT .+ FROM `courses`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).AddRow(10, "draft"))

	_, err := svc.Enroll(10, student)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}
