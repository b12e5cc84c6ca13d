package model

import (
	"time"

	"gorm.io/datatypes"
)

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionTrueFalse      QuestionType = "true_false"
	QuestionShortAnswer    QuestionType = "short_answer"
	QuestionEssay          QuestionType = "essay"
)

type AttemptStatus string

const (
	AttemptInProgress AttemptStatus = "in_progress"
	AttemptCompleted  AttemptStatus = "completed"
	AttemptAbandoned  AttemptStatus = "abandoned"
)

// swagger:model Quiz
type Quiz struct {
	BaseModel
	CourseID    uint    `gorm:"index:idx_course_published;not null" json:"courseId"`
	LessonID    *uint   `gorm:"index" json:"lessonId"`
	Lesson      *Lesson `gorm:"foreignKey:LessonID" json:"lesson,omitempty"`
	Title       string  `gorm:"size:255;not null" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	// Time limit in minutes; nil means untimed.
	TimeLimit              *int           `json:"timeLimit"`
	MaxAttempts            int            `gorm:"default:3" json:"maxAttempts"`
	PassingScore           float64        `gorm:"type:decimal(5,2);default:70.00" json:"passingScore"`
	ShuffleQuestions       bool           `gorm:"default:true" json:"shuffleQuestions"`
	ShowResultsImmediately bool           `gorm:"default:true" json:"showResultsImmediately"`
	IsPublished            bool           `gorm:"default:false;index:idx_course_published" json:"isPublished"`
	AvailableFrom          *time.Time     `json:"availableFrom"`
	AvailableUntil         *time.Time     `json:"availableUntil"`
	Questions              []QuizQuestion `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// swagger:model QuizQuestion
type QuizQuestion struct {
	BaseModel
	QuizID   uint         `gorm:"index:idx_quiz_order;not null" json:"quizId"`
	Question string       `gorm:"type:text;not null" json:"question"`
	Type     QuestionType `gorm:"type:enum('multiple_choice','true_false','short_answer','essay');default:'multiple_choice';index" json:"type"`
	// Options for multiple choice; CorrectAnswers holds option indices or
	// accepted text, depending on Type.
	Options        datatypes.JSON `json:"options"`
	CorrectAnswers datatypes.JSON `gorm:"not null" json:"correctAnswers"`
	Explanation    string         `gorm:"type:text" json:"explanation"`
	Points         float64        `gorm:"type:decimal(5,2);default:1.00" json:"points"`
	OrderIndex     int            `gorm:"default:0;index:idx_quiz_order" json:"orderIndex"`
	ImageURL       string         `gorm:"size:255" json:"imageUrl"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// swagger:model QuizAttempt
type QuizAttempt struct {
	BaseModel
	QuizID    uint           `gorm:"index:idx_quiz_student;not null" json:"quizId"`
	Quiz      *Quiz          `gorm:"foreignKey:QuizID" json:"quiz,omitempty"`
	StudentID uint           `gorm:"index:idx_quiz_student;not null" json:"studentId"`
	Student   *User          `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Answers   datatypes.JSON `json:"answers"`
	Score     *float64       `gorm:"type:decimal(5,2)" json:"score"`
	// Time taken in minutes.
	TimeTaken   *int          `json:"timeTaken"`
	StartedAt   time.Time     `gorm:"not null" json:"startedAt"`
	CompletedAt *time.Time    `gorm:"index" json:"completedAt"`
	Status      AttemptStatus `gorm:"type:enum('in_progress','completed','abandoned');default:'in_progress'" json:"status"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
