package access

import (
	"testing"

	"science_lms_backend/internal/model"
)

var (
	anon    *Caller
	student = &Caller{ID: 10, Role: model.RoleStudent}
	teacher = &Caller{ID: 20, Role: model.RoleTeacher}
	other   = &Caller{ID: 21, Role: model.RoleTeacher}
	admin   = &Caller{ID: 30, Role: model.RoleAdmin}
)

func TestCanViewCourse(t *testing.T) {
	published := &model.Course{Status: model.CoursePublished, TeacherID: 20}
	draft := &model.Course{Status: model.CourseDraft, TeacherID: 20}
	archived := &model.Course{Status: model.CourseArchived, TeacherID: 20}

	tests := []struct {
		name   string
		caller *Caller
		course *model.Course
		want   bool
	}{
		{"anonymous published", anon, published, true},
		{"anonymous draft", anon, draft, false},
		{"anonymous archived", anon, archived, false},
		{"student published", student, published, true},
		{"student draft", student, draft, false},
		{"owning teacher draft", teacher, draft, true},
		{"other teacher draft", other, draft, true}, // any teacher may open drafts
		{"admin draft", admin, draft, true},
		{"admin archived", admin, archived, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanViewCourse(tt.caller, tt.course); got != tt.want {
				t.Errorf("CanViewCourse() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanManageCourses(t *testing.T) {
	tests := []struct {
		name   string
		caller *Caller
		want   bool
	}{
		{"anonymous", anon, false},
		{"student", student, false},
		{"teacher", teacher, true},
		{"admin", admin, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanManageCourses(tt.caller); got != tt.want {
				t.Errorf("CanManageCourses() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanEditCourse(t *testing.T) {
	course := &model.Course{TeacherID: 20}

	if !CanEditCourse(teacher, course) {
		t.Error("owning teacher should edit own course")
	}
	if CanEditCourse(other, course) {
		t.Error("non-owning teacher must not edit the course")
	}
	if !CanEditCourse(admin, course) {
		t.Error("administrator should edit any course")
	}
	if CanEditCourse(student, course) {
		t.Error("student must not edit courses")
	}
}

func TestEffectiveTeacherID(t *testing.T) {
	// A teacher creating a course owns it regardless of the submitted id.
	if got := EffectiveTeacherID(teacher, 999); got != teacher.ID {
		t.Errorf("EffectiveTeacherID(teacher, 999) = %d, want %d", got, teacher.ID)
	}
	if got := EffectiveTeacherID(admin, 999); got != 999 {
		t.Errorf("EffectiveTeacherID(admin, 999) = %d, want 999", got)
	}
}

func TestWantsEnrollment(t *testing.T) {
	if WantsEnrollment(teacher) || WantsEnrollment(admin) || WantsEnrollment(anon) {
		t.Error("enrollment lookup applies to students only")
	}
	if !WantsEnrollment(student) {
		t.Error("student detail view should include the enrollment record")
	}
}

func TestCanModeratePost(t *testing.T) {
	post := &model.ForumPost{UserID: 10}

	tests := []struct {
		name   string
		caller *Caller
		want   bool
	}{
		{"anonymous", anon, false},
		{"author", student, true},
		{"other student", &Caller{ID: 11, Role: model.RoleStudent}, false},
		{"teacher", teacher, true},
		{"admin", admin, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanModeratePost(tt.caller, post); got != tt.want {
				t.Errorf("CanModeratePost() = %v, want %v", got, tt.want)
			}
		})
	}
}
