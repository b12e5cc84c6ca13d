package model

import (
	"time"
)

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleTeacher UserRole = "teacher"
	RoleAdmin   UserRole = "administrator"
)

// swagger:model User
type User struct {
	BaseModel
	Name     string   `gorm:"size:100;not null" json:"name"`
	Email    string   `gorm:"size:100;unique;not null" json:"email"`
	Password string   `gorm:"size:100;not null" json:"-"`
	Role     UserRole `gorm:"type:enum('student','teacher','administrator');default:'student';index:idx_role_active" json:"role"`
	Avatar   string   `gorm:"size:255" json:"avatar"`
	Bio      string   `gorm:"type:text" json:"bio"`
	// Grade applies to students, SubjectSpecialization to teachers.
	Grade                 string     `gorm:"size:20" json:"grade,omitempty"`
	SubjectSpecialization string     `gorm:"size:100" json:"subjectSpecialization,omitempty"`
	BirthDate             *time.Time `json:"birthDate,omitempty"`
	IsActive              bool       `gorm:"default:true;index:idx_role_active" json:"isActive"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsStudent() bool {
	return u.Role == RoleStudent
}

func (u *User) IsTeacher() bool {
	return u.Role == RoleTeacher
}

func (u *User) IsAdministrator() bool {
	return u.Role == RoleAdmin
}
