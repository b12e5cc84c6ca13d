package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"science_lms_backend/internal/access"
	"science_lms_backend/internal/model"
)

// newDryRunDB builds a gorm session that only generates SQL, so the scope
// composition can be checked without a server.
func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	sqlDB, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() failed: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{DryRun: true})
	if err != nil {
		t.Fatalf("gorm.Open() failed: %v", err)
	}
	return db
}

func TestScopes(t *testing.T) {
	db := newDryRunDB(t)

	tests := []struct {
		name     string
		scope    func(*gorm.DB) *gorm.DB
		model    interface{}
		wantSQL  string
		wantVars []interface{}
	}{
		{"published course", Published, &model.Course{}, "status = ?", []interface{}{model.CoursePublished}},
		{"published item", PublishedItems, &model.Lesson{}, "is_published = ?", []interface{}{true}},
		{"active", Active, &model.User{}, "is_active = ?", []interface{}{true}},
		{"enrolled", Enrolled, &model.CourseEnrollment{}, "status = ?", []interface{}{model.EnrollmentEnrolled}},
		{"completed", Completed, &model.CourseEnrollment{}, "status = ?", []interface{}{model.EnrollmentCompleted}},
		{"pinned", Pinned, &model.DiscussionForum{}, "is_pinned = ?", []interface{}{true}},
		{"submitted", Submitted, &model.AssignmentSubmission{}, "status = ?", []interface{}{model.SubmissionSubmitted}},
		{"top level", TopLevel, &model.ForumPost{}, "parent_id IS NULL", nil},
		{"students", Students, &model.User{}, "role = ?", []interface{}{model.RoleStudent}},
		{"teachers", Teachers, &model.User{}, "role = ?", []interface{}{model.RoleTeacher}},
		{"administrators", Administrators, &model.User{}, "role = ?", []interface{}{model.RoleAdmin}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt := db.Session(&gorm.Session{DryRun: true}).
				Model(tt.model).Scopes(tt.scope).Find(tt.model).Statement

			assert.Contains(t, stmt.SQL.String(), tt.wantSQL)
			for _, v := range tt.wantVars {
				assert.Contains(t, stmt.Vars, v)
			}
		})
	}
}

func TestScopesCombineConjunctively(t *testing.T) {
	db := newDryRunDB(t)

	// Order of application must not matter: both orders produce the same
	// pair of conjunctive conditions.
	a := db.Session(&gorm.Session{DryRun: true}).
		Model(&model.User{}).Scopes(Students, Active).Find(&[]model.User{}).Statement
	b := db.Session(&gorm.Session{DryRun: true}).
		Model(&model.User{}).Scopes(Active, Students).Find(&[]model.User{}).Statement

	for _, stmt := range []string{a.SQL.String(), b.SQL.String()} {
		assert.Contains(t, stmt, "role = ?")
		assert.Contains(t, stmt, "is_active = ?")
		assert.Contains(t, stmt, " AND ")
	}
	assert.ElementsMatch(t, a.Vars, b.Vars)
}

func TestCourseVisibility(t *testing.T) {
	db := newDryRunDB(t)

	build := func(caller *access.Caller) (string, []interface{}) {
		stmt := db.Session(&gorm.Session{DryRun: true}).
			Model(&model.Course{}).
			Scopes(CourseVisibility(caller)).
			Find(&[]model.Course{}).Statement
		return stmt.SQL.String(), stmt.Vars
	}

	t.Run("anonymous sees published only", func(t *testing.T) {
		sql, vars := build(nil)
		assert.Contains(t, sql, "status = ?")
		assert.Contains(t, vars, model.CoursePublished)
	})

	t.Run("student sees published only", func(t *testing.T) {
		sql, vars := build(&access.Caller{ID: 1, Role: model.RoleStudent})
		assert.Contains(t, sql, "status = ?")
		assert.Contains(t, vars, model.CoursePublished)
	})

	t.Run("teacher sees own courses regardless of status", func(t *testing.T) {
		sql, vars := build(&access.Caller{ID: 7, Role: model.RoleTeacher})
		assert.Contains(t, sql, "teacher_id = ?")
		assert.NotContains(t, sql, "status = ?")
		assert.Contains(t, vars, uint(7))
	})

	t.Run("admin sees everything", func(t *testing.T) {
		sql, _ := build(&access.Caller{ID: 2, Role: model.RoleAdmin})
		assert.NotContains(t, sql, "WHERE")
	})
}
