package model

type CourseStatus string

const (
	CourseDraft     CourseStatus = "draft"
	CoursePublished CourseStatus = "published"
	CourseArchived  CourseStatus = "archived"
)

type GradeLevel string

const (
	Grade7 GradeLevel = "7th"
	Grade8 GradeLevel = "8th"
	Grade9 GradeLevel = "9th"
)

// swagger:model Course
type Course struct {
	BaseModel
	Title       string       `gorm:"size:255;not null" json:"title"`
	Code        string       `gorm:"size:20;unique;not null" json:"code"` // e.g. SCI101
	Description string       `gorm:"type:text;not null" json:"description"`
	GradeLevel  GradeLevel   `gorm:"size:10;index:idx_status_grade" json:"gradeLevel"`
	Subject     string       `gorm:"size:100;default:'Science'" json:"subject"`
	TeacherID   uint         `gorm:"index;not null" json:"teacherId"`
	Teacher     *User        `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
	CoverImage  string       `gorm:"size:255" json:"coverImage"`
	Status      CourseStatus `gorm:"type:enum('draft','published','archived');default:'draft';index:idx_status_grade" json:"status"`
	// Duration in weeks, 1-52.
	DurationWeeks int `gorm:"default:16" json:"durationWeeks"`

	Enrollments []CourseEnrollment `gorm:"foreignKey:CourseID" json:"enrollments,omitempty"`
	Lessons     []Lesson           `gorm:"foreignKey:CourseID" json:"lessons,omitempty"`
	Quizzes     []Quiz             `gorm:"foreignKey:CourseID" json:"quizzes,omitempty"`
	Assignments []Assignment       `gorm:"foreignKey:CourseID" json:"assignments,omitempty"`
	Forums      []DiscussionForum  `gorm:"foreignKey:CourseID" json:"forums,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}
