package service

import (
	"context"
	"time"

	"science_lms_backend/internal/access"
	"science_lms_backend/internal/model"
	"science_lms_backend/internal/repository"
)

const (
	recentDeadlineLimit   = 5
	recentSubmissionLimit = 10
	recentRowLimit        = 10
	featuredCourseLimit   = 6
)

// StudentDashboard: active enrollments with course material, plus the next
// deadlines across those courses.
type StudentDashboard struct {
	Enrollments       []model.CourseEnrollment `json:"enrollments"`
	RecentAssignments []model.Assignment       `json:"recent_assignments"`
	RecentQuizzes     []model.Quiz             `json:"recent_quizzes"`
}

// TeacherDashboard: every owned course with its nested content, plus the
// newest submitted work across all of them.
type TeacherDashboard struct {
	Courses           []model.Course               `json:"courses"`
	RecentSubmissions []model.AssignmentSubmission `json:"recent_submissions"`
}

// AdminDashboard: system-wide counters and the newest users and courses.
type AdminDashboard struct {
	Stats         *repository.AdminStats `json:"stats"`
	RecentUsers   []model.User           `json:"recent_users"`
	RecentCourses []model.Course         `json:"recent_courses"`
}

// Overview is the public landing page for anonymous visitors.
type Overview struct {
	Stats           *repository.OverviewStats `json:"stats"`
	FeaturedCourses []model.Course            `json:"featured_courses"`
}

type DashboardService struct {
	DashboardRepo  *repository.DashboardRepository
	UserRepo       *repository.UserRepository
	CourseRepo     *repository.CourseRepository
	EnrollmentRepo *repository.EnrollmentRepository
	AssignmentRepo *repository.AssignmentRepository
	QuizRepo       *repository.QuizRepository
}

func NewDashboardService(
	dashboardRepo *repository.DashboardRepository,
	userRepo *repository.UserRepository,
	courseRepo *repository.CourseRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	assignmentRepo *repository.AssignmentRepository,
	quizRepo *repository.QuizRepository,
) *DashboardService {
	return &DashboardService{
		DashboardRepo:  dashboardRepo,
		UserRepo:       userRepo,
		CourseRepo:     courseRepo,
		EnrollmentRepo: enrollmentRepo,
		AssignmentRepo: assignmentRepo,
		QuizRepo:       quizRepo,
	}
}

// ForCaller dispatches on role. Anonymous callers (and any unknown role) get
// the public overview.
func (s *DashboardService) ForCaller(ctx context.Context, caller *access.Caller) (interface{}, error) {
	switch {
	case caller.IsStudent():
		return s.studentDashboard(caller)
	case caller.IsTeacher():
		return s.teacherDashboard(caller)
	case caller.IsAdministrator():
		return s.adminDashboard()
	default:
		return s.PublicOverview(ctx)
	}
}

func (s *DashboardService) studentDashboard(caller *access.Caller) (*StudentDashboard, error) {
	enrollments, err := s.EnrollmentRepo.FindEnrolledByStudent(caller.ID)
	if err != nil {
		return nil, err
	}
	courseIDs := s.EnrollmentRepo.CourseIDs(enrollments)
	now := time.Now()

	assignments, err := s.AssignmentRepo.FindUpcoming(courseIDs, now, recentDeadlineLimit)
	if err != nil {
		return nil, err
	}
	quizzes, err := s.QuizRepo.FindUpcoming(courseIDs, now, recentDeadlineLimit)
	if err != nil {
		return nil, err
	}

	return &StudentDashboard{
		Enrollments:       enrollments,
		RecentAssignments: assignments,
		RecentQuizzes:     quizzes,
	}, nil
}

func (s *DashboardService) teacherDashboard(caller *access.Caller) (*TeacherDashboard, error) {
	courses, err := s.CourseRepo.FindOwned(caller.ID)
	if err != nil {
		return nil, err
	}
	courseIDs := make([]uint, 0, len(courses))
	for _, c := range courses {
		courseIDs = append(courseIDs, c.ID)
	}

	submissions, err := s.AssignmentRepo.FindRecentSubmitted(courseIDs, recentSubmissionLimit)
	if err != nil {
		return nil, err
	}

	return &TeacherDashboard{
		Courses:           courses,
		RecentSubmissions: submissions,
	}, nil
}

func (s *DashboardService) adminDashboard() (*AdminDashboard, error) {
	stats, err := s.DashboardRepo.AdminStats()
	if err != nil {
		return nil, err
	}
	users, err := s.UserRepo.FindRecent(recentRowLimit)
	if err != nil {
		return nil, err
	}
	courses, err := s.CourseRepo.FindRecent(recentRowLimit)
	if err != nil {
		return nil, err
	}

	return &AdminDashboard{
		Stats:         stats,
		RecentUsers:   users,
		RecentCourses: courses,
	}, nil
}

// PublicOverview serves anonymous visitors.
func (s *DashboardService) PublicOverview(ctx context.Context) (*Overview, error) {
	stats, err := s.DashboardRepo.OverviewStats(ctx)
	if err != nil {
		return nil, err
	}
	courses, err := s.CourseRepo.FindFeatured(featuredCourseLimit)
	if err != nil {
		return nil, err
	}

	return &Overview{
		Stats:           stats,
		FeaturedCourses: courses,
	}, nil
}
