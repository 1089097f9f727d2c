package models

import "time"

type EventType string

const (
	EventAssignmentPublished  EventType = "assignment.published"
	EventAssignmentDeleted    EventType = "assignment.deleted"
	EventSubmissionCreated    EventType = "submission.created"
	EventSubmissionGraded     EventType = "submission.graded"
	EventLateRequestCreated   EventType = "late_request.created"
	EventLateRequestResponded EventType = "late_request.responded"
	EventStudentBlocked       EventType = "student.blocked"
	EventStudentUnblocked     EventType = "student.unblocked"
)

func (t EventType) String() string {
	return string(t)
}

// Event is the envelope published after a committed state change.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

type AssignmentEvent struct {
	AssignmentID int64     `json:"assignment_id"`
	ClassGrade   int       `json:"class_grade"`
	Title        string    `json:"title"`
	DueDate      time.Time `json:"due_date"`
	TeacherID    int64     `json:"teacher_id"`
}

type SubmissionEvent struct {
	SubmissionID  int64   `json:"submission_id"`
	AssignmentID  int64   `json:"assignment_id"`
	StudentID     int64   `json:"student_id"`
	IsLate        bool    `json:"is_late"`
	MarksObtained *int    `json:"marks_obtained,omitempty"`
	Feedback      *string `json:"feedback,omitempty"`
}

type LateRequestEvent struct {
	RequestID    int64             `json:"request_id"`
	AssignmentID int64             `json:"assignment_id"`
	StudentID    int64             `json:"student_id"`
	Status       LateRequestStatus `json:"status"`
}

type ModerationEvent struct {
	StudentID int64  `json:"student_id"`
	Reason    string `json:"reason,omitempty"`
}
