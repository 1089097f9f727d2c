package models

import (
	"time"
)

type LateRequestStatus string

const (
	LateRequestStatusPending  LateRequestStatus = "PENDING"
	LateRequestStatusApproved LateRequestStatus = "APPROVED"
	LateRequestStatusRejected LateRequestStatus = "REJECTED"
)

func (s LateRequestStatus) String() string {
	return string(s)
}

// IsDecision reports whether s is a valid teacher response.
func (s LateRequestStatus) IsDecision() bool {
	return s == LateRequestStatusApproved || s == LateRequestStatusRejected
}

type LateSubmissionRequest struct {
	ID              int64             `json:"id" db:"id"`
	AssignmentID    int64             `json:"assignment_id" db:"assignment_id"`
	StudentID       int64             `json:"student_id" db:"student_id"`
	Reason          string            `json:"reason" db:"reason"`
	Status          LateRequestStatus `json:"status" db:"status"`
	RequestedAt     time.Time         `json:"requested_at" db:"requested_at"`
	RespondedAt     *time.Time        `json:"responded_at,omitempty" db:"responded_at"`
	TeacherResponse *string           `json:"teacher_response,omitempty" db:"teacher_response"`
}

type LateRequestView struct {
	LateSubmissionRequest
	AssignmentTitle string `json:"assignment_title"`
	StudentName     string `json:"student_name"`
	StudentEmail    string `json:"student_email"`
}
