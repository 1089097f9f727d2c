package models

import (
	"time"
)

type AssignmentStatus string

const (
	AssignmentStatusDraft     AssignmentStatus = "DRAFT"
	AssignmentStatusPublished AssignmentStatus = "PUBLISHED"
	AssignmentStatusClosed    AssignmentStatus = "CLOSED"
)

func (s AssignmentStatus) String() string {
	return string(s)
}

type Assignment struct {
	ID            int64            `json:"id" db:"id"`
	Title         string           `json:"title" db:"title"`
	Description   string           `json:"description" db:"description"`
	ClassGrade    int              `json:"class_grade" db:"class_grade"`
	DueDate       time.Time        `json:"due_date" db:"due_date"`
	TotalMarks    int              `json:"total_marks" db:"total_marks"`
	AttachmentURL *string          `json:"attachment_url,omitempty" db:"attachment_url"`
	Status        AssignmentStatus `json:"status" db:"status"`
	CreatedBy     int64            `json:"created_by" db:"created_by"`
	CreatedAt     time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at" db:"updated_at"`
}

// IsOverdueAt reports whether now is strictly after the due date.
func (a *Assignment) IsOverdueAt(now time.Time) bool {
	return now.After(a.DueDate)
}

// AssignmentView is an assignment annotated for a particular caller.
// HasSubmitted and IsGraded stay Unset unless the caller is a student.
type AssignmentView struct {
	Assignment
	IsOverdue    bool `json:"is_overdue"`
	HasSubmitted Flag `json:"has_submitted"`
	IsGraded     Flag `json:"is_graded"`
}
