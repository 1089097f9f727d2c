package models

import (
	"time"
)

type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleTeacher Role = "TEACHER"
)

func (r Role) String() string {
	return string(r)
}

func IsValidRole(role string) bool {
	switch Role(role) {
	case RoleStudent, RoleTeacher:
		return true
	default:
		return false
	}
}

// Caller is the resolved identity behind a request.
type Caller struct {
	UserID int64
	Role   Role
}

func (c Caller) IsStudent() bool { return c.Role == RoleStudent }
func (c Caller) IsTeacher() bool { return c.Role == RoleTeacher }

type User struct {
	ID         int64     `json:"id" db:"id"`
	Email      string    `json:"email" db:"email"`
	FullName   string    `json:"full_name" db:"full_name"`
	Role       Role      `json:"role" db:"role"`
	ClassGrade *int      `json:"class_grade,omitempty" db:"class_grade"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

type BlockedStudent struct {
	ID        int64     `json:"id" db:"id"`
	StudentID int64     `json:"student_id" db:"student_id"`
	Reason    string    `json:"reason" db:"reason"`
	BlockedAt time.Time `json:"blocked_at" db:"blocked_at"`
}

type Query struct {
	ID          int64     `json:"id" db:"id"`
	StudentID   int64     `json:"student_id" db:"student_id"`
	StudentName string    `json:"student_name" db:"student_name"`
	ClassGrade  int       `json:"class_grade" db:"class_grade"`
	Title       string    `json:"title" db:"title"`
	Content     string    `json:"content" db:"content"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	IsDeleted   bool      `json:"-" db:"is_deleted"`
}
