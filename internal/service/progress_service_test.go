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

func newMockedProgressService(t *testing.T) (*ProgressService, sqlmock.Sqlmock) {
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

	svc := NewProgressService(
		repository.NewProgressRepository(db),
		repository.NewEnrollmentRepository(db),
		repository.NewLessonRepository(db),
	)
	return svc, mock
}

// A second Record for the same (student, course, lesson) must update the
// existing row, not insert another one. This matters most for the
// course-level rollup row, whose NULL lesson_id the unique index ignores.
func TestProgressRecordUpdatesExistingRow(t *testing.T) {
	svc, mock := newMockedProgressService(t)
	student := &access.Caller{ID: 3, Role: model.RoleStudent}

	mock.ExpectQuery("SELECT .+ FROM `course_enrollments`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "course_id", "student_id"}).AddRow(1, 10, 3))
	mock.ExpectQuery("SELECT .+ FROM `student_progress` .+lesson_id IS NULL").
		WillReturnRows(sqlmock.NewRows([]string{"id", "student_id", "course_id"}).AddRow(5, 3, 10))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `student_progress` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	progress, err := svc.Record(10, ProgressInput{Status: "in_progress", ProgressPercentage: 40}, student)
	assert.NoError(t, err)
	assert.Equal(t, uint(5), progress.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgressRecordInsertsFirstRow(t *testing.T) {
	svc, mock := newMockedProgressService(t)
	student := &access.Caller{ID: 3, Role: model.RoleStudent}

	mock.ExpectQuery("SELECT .+ FROM `course_enrollments`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "course_id", "student_id"}).AddRow(1, 10, 3))
	mock.ExpectQuery("SELECT .+ FROM `student_progress`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `student_progress` .+ON DUPLICATE KEY UPDATE").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit()

	progress, err := svc.Record(10, ProgressInput{Status: "in_progress", ProgressPercentage: 10}, student)
	assert.NoError(t, err)
	assert.Equal(t, uint(7), progress.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgressRecordRequiresStudent(t *testing.T) {
	svc, _ := newMockedProgressService(t)

	_, err := svc.Record(10, ProgressInput{Status: "completed"}, &access.Caller{ID: 2, Role: model.RoleTeacher})
	assert.ErrorIs(t, err, ErrForbidden)
}
