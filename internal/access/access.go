// Package access centralizes the role rules that decide what a caller may
// see or change. Every Forbidden produced by the services traces back to a
// predicate here, so the policy is testable without a database or a request.
package access

import (
	"science_lms_backend/internal/model"
)

// Caller identifies the requesting user. A nil *Caller is an anonymous
// visitor.
type Caller struct {
	ID   uint
	Role model.UserRole
}

func (c *Caller) IsAnonymous() bool {
	return c == nil || c.ID == 0
}

func (c *Caller) IsStudent() bool {
	return c != nil && c.Role == model.RoleStudent
}

func (c *Caller) IsTeacher() bool {
	return c != nil && c.Role == model.RoleTeacher
}

func (c *Caller) IsAdministrator() bool {
	return c != nil && c.Role == model.RoleAdmin
}

// CanManageCourses reports whether the caller may create, update, or delete
// courses and their nested content (lessons, quizzes, assignments, forums).
func CanManageCourses(c *Caller) bool {
	return c.IsTeacher() || c.IsAdministrator()
}

// CanViewCourse allows published courses for everyone; any teacher or an
// administrator may also open drafts and archived courses. The check is
// deliberately not restricted to the owning teacher, matching long-standing
// behavior the frontend relies on.
func CanViewCourse(c *Caller, course *model.Course) bool {
	if course.Status == model.CoursePublished {
		return true
	}
	return c.IsTeacher() || c.IsAdministrator()
}

// CanEditCourse gates mutation of an existing course: the owning teacher or
// an administrator.
func CanEditCourse(c *Caller, course *model.Course) bool {
	if c.IsAdministrator() {
		return true
	}
	return c.IsTeacher() && course.TeacherID == c.ID
}

// EffectiveTeacherID resolves the teacher_id stored on a created or updated
// course. Teachers always own what they create, whatever the payload says;
// administrators may assign any teacher.
func EffectiveTeacherID(c *Caller, requested uint) uint {
	if c.IsTeacher() {
		return c.ID
	}
	return requested
}

// WantsEnrollment reports whether the course detail view should look up the
// caller's enrollment record. Only students have one.
func WantsEnrollment(c *Caller) bool {
	return c.IsStudent()
}

// CanGrade reports whether the caller may score submissions and attempts.
func CanGrade(c *Caller) bool {
	return c.IsTeacher() || c.IsAdministrator()
}

// CanModeratePost allows a post's author to edit it and teachers or
// administrators to moderate anything.
func CanModeratePost(c *Caller, post *model.ForumPost) bool {
	if c.IsAnonymous() {
		return false
	}
	if post.UserID == c.ID {
		return true
	}
	return c.IsTeacher() || c.IsAdministrator()
}

// OwnsRecord reports whether a student-owned row (submission, attempt,
// progress) belongs to the caller.
func OwnsRecord(c *Caller, studentID uint) bool {
	return c != nil && c.ID == studentID
}
