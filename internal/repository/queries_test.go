package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// newMockedDB backs gorm with sqlmock so the shape of executed SQL can be
// asserted through regexp expectations.
func newMockedDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
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
	return db, mock
}

// The recent-submissions feed flattens across every assignment of the given
// courses with a single overall limit, newest submitted_at first, rather than
// limiting per assignment.
func TestFindRecentSubmittedFlattensAcrossCourses(t *testing.T) {
	db, mock := newMockedDB(t)
	repo := NewAssignmentRepository(db)

	mock.ExpectQuery("SELECT .+ FROM `assignment_submissions` " +
		"JOIN assignments ON assignments\\.id = assignment_submissions\\.assignment_id " +
		"WHERE assignments\\.course_id IN .+ AND assignment_submissions\\.status = .+ " +
		"ORDER BY assignment_submissions\\.submitted_at DESC LIMIT").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindRecentSubmitted([]uint{1, 2}, 10)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindRecentSubmittedEmptyCourseSet(t *testing.T) {
	db, mock := newMockedDB(t)
	repo := NewAssignmentRepository(db)

	subs, err := repo.FindRecentSubmitted(nil, 10)
	assert.NoError(t, err)
	assert.Empty(t, subs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Upcoming deadlines filter on published work whose due date has not passed,
// soonest first.
func TestFindUpcomingFiltersByDueDate(t *testing.T) {
	db, mock := newMockedDB(t)
	now := time.Now()

	t.Run("assignments", func(t *testing.T) {
		repo := NewAssignmentRepository(db)

		mock.ExpectQuery("SELECT .+ FROM `assignments` " +
			"WHERE course_id IN .+ AND is_published = .+ AND due_date >= .+ " +
			"ORDER BY due_date LIMIT").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindUpcoming([]uint{1}, now, 5)
		assert.NoError(t, err)
	})

	t.Run("quizzes", func(t *testing.T) {
		repo := NewQuizRepository(db)

		mock.ExpectQuery("SELECT .+ FROM `quizzes` " +
			"WHERE course_id IN .+ AND is_published = .+ AND available_until >= .+ " +
			"ORDER BY available_until LIMIT").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindUpcoming([]uint{1}, now, 5)
		assert.NoError(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

// The course detail attaches lessons published-only in order_index order, and
// quizzes and assignments published-only, for every role.
func TestFindDetailPreloadsPublishedOnly(t *testing.T) {
	db, mock := newMockedDB(t)
	repo := NewCourseRepository(db)

	mock.MatchExpectationsInOrder(false)
	mock.ExpectQuery("SELECT .+ FROM `courses` WHERE").
		WillReturnRows(sqlmock.NewRows([]string{"id", "teacher_id"}).AddRow(1, 7))
	mock.ExpectQuery("SELECT .+ FROM `lessons` WHERE .+ AND is_published = .+ ORDER BY order_index").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT .+ FROM `quizzes` WHERE .+ AND is_published =").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT .+ FROM `assignments` WHERE .+ AND is_published =").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT .+ FROM `discussion_forums` WHERE").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT .+ FROM `users` WHERE").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	course, err := repo.FindDetail(1)
	assert.NoError(t, err)
	assert.Equal(t, uint(1), course.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
