package repository

import (
	"context"
	"encoding/json"
	"time"

	"science_lms_backend/internal/model"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const overviewCacheKey = "dashboard:overview"

// OverviewStats is the anonymous landing-page summary.
type OverviewStats struct {
	TotalCourses  int64 `json:"total_courses"`
	TotalStudents int64 `json:"total_students"`
	TotalTeachers int64 `json:"total_teachers"`
	TotalQuizzes  int64 `json:"total_quizzes"`
}

// AdminStats is the system-wide counter block on the admin dashboard.
type AdminStats struct {
	TotalUsers           int64 `json:"total_users"`
	TotalStudents        int64 `json:"total_students"`
	TotalTeachers        int64 `json:"total_teachers"`
	TotalAdministrators  int64 `json:"total_administrators"`
	TotalCourses         int64 `json:"total_courses"`
	PublishedCourses     int64 `json:"published_courses"`
	TotalAssignments     int64 `json:"total_assignments"`
	TotalQuizzes         int64 `json:"total_quizzes"`
	ActiveEnrollments    int64 `json:"active_enrollments"`
	CompletedEnrollments int64 `json:"completed_enrollments"`
	PendingSubmissions   int64 `json:"pending_submissions"`
}

type DashboardRepository struct {
	DB  *gorm.DB
	RDB *redis.Client
}

func NewDashboardRepository(db *gorm.DB, rdb *redis.Client) *DashboardRepository {
	return &DashboardRepository{DB: db, RDB: rdb}
}

func (r *DashboardRepository) count(m interface{}, scopes ...func(*gorm.DB) *gorm.DB) (int64, error) {
	var count int64
	err := r.DB.Model(m).Scopes(scopes...).Count(&count).Error
	return count, err
}

// OverviewStats serves the public counters, cached for a minute since the
// landing page is the hottest unauthenticated path.
func (r *DashboardRepository) OverviewStats(ctx context.Context) (*OverviewStats, error) {
	if cached, err := r.RDB.Get(ctx, overviewCacheKey).Result(); err == nil {
		var stats OverviewStats
		if json.Unmarshal([]byte(cached), &stats) == nil {
			return &stats, nil
		}
	}

	var stats OverviewStats
	var err error
	if stats.TotalCourses, err = r.count(&model.Course{}, Published); err != nil {
		return nil, err
	}
	if stats.TotalStudents, err = r.count(&model.User{}, Students, Active); err != nil {
		return nil, err
	}
	if stats.TotalTeachers, err = r.count(&model.User{}, Teachers, Active); err != nil {
		return nil, err
	}
	if stats.TotalQuizzes, err = r.count(&model.Quiz{}, PublishedItems); err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(&stats); err == nil {
		r.RDB.Set(ctx, overviewCacheKey, raw, time.Minute)
	}
	return &stats, nil
}

func (r *DashboardRepository) AdminStats() (*AdminStats, error) {
	var stats AdminStats
	var err error
	if stats.TotalUsers, err = r.count(&model.User{}, Active); err != nil {
		return nil, err
	}
	if stats.TotalStudents, err = r.count(&model.User{}, Students, Active); err != nil {
		return nil, err
	}
	if stats.TotalTeachers, err = r.count(&model.User{}, Teachers, Active); err != nil {
		return nil, err
	}
	if stats.TotalAdministrators, err = r.count(&model.User{}, Administrators, Active); err != nil {
		return nil, err
	}
	if stats.TotalCourses, err = r.count(&model.Course{}); err != nil {
		return nil, err
	}
	if stats.PublishedCourses, err = r.count(&model.Course{}, Published); err != nil {
		return nil, err
	}
	if stats.TotalAssignments, err = r.count(&model.Assignment{}); err != nil {
		return nil, err
	}
	if stats.TotalQuizzes, err = r.count(&model.Quiz{}); err != nil {
		return nil, err
	}
	if stats.ActiveEnrollments, err = r.count(&model.CourseEnrollment{}, Enrolled); err != nil {
		return nil, err
	}
	if stats.CompletedEnrollments, err = r.count(&model.CourseEnrollment{}, Completed); err != nil {
		return nil, err
	}
	if stats.PendingSubmissions, err = r.count(&model.AssignmentSubmission{}, Submitted); err != nil {
		return nil, err
	}
	return &stats, nil
}
