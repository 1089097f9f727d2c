package models

import (
	"time"
)

type SubmissionStatus string

const (
	SubmissionStatusPending   SubmissionStatus = "PENDING"
	SubmissionStatusSubmitted SubmissionStatus = "SUBMITTED"
	SubmissionStatusGraded    SubmissionStatus = "GRADED"
)

func (s SubmissionStatus) String() string {
	return string(s)
}

type Submission struct {
	ID             int64            `json:"id" db:"id"`
	AssignmentID   int64            `json:"assignment_id" db:"assignment_id"`
	StudentID      int64            `json:"student_id" db:"student_id"`
	SubmissionText *string          `json:"submission_text,omitempty" db:"submission_text"`
	AttachmentURL  *string          `json:"attachment_url,omitempty" db:"attachment_url"`
	SubmittedAt    time.Time        `json:"submitted_at" db:"submitted_at"`
	Status         SubmissionStatus `json:"status" db:"status"`
	IsLate         bool             `json:"is_late" db:"is_late"`
	MarksObtained  *int             `json:"marks_obtained,omitempty" db:"marks_obtained"`
	Feedback       *string          `json:"feedback,omitempty" db:"feedback"`
	UpdatedAt      time.Time        `json:"updated_at" db:"updated_at"`
}

func (s *Submission) IsGraded() bool {
	return s.Status == SubmissionStatusGraded
}

type SubmissionView struct {
	Submission
	StudentName  string `json:"student_name"`
	StudentEmail string `json:"student_email"`
}
