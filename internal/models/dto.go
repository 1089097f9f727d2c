package models

import "time"

// Data Transfer Objects

type CreateAssignmentRequest struct {
	Title         string    `json:"title" validate:"required,min=3,max=200"`
	Description   string    `json:"description" validate:"required"`
	ClassGrade    int       `json:"class_grade" validate:"required,min=6,max=10"`
	DueDate       time.Time `json:"due_date" validate:"required,future"`
	TotalMarks    int       `json:"total_marks" validate:"required,min=1,max=200"`
	AttachmentURL *string   `json:"attachment_url" validate:"omitempty,max=1000"`
}

type SubmitAssignmentRequest struct {
	AssignmentID   int64   `json:"assignment_id" validate:"required,min=1"`
	SubmissionText *string `json:"submission_text"`
	AttachmentURL  *string `json:"attachment_url" validate:"omitempty,max=1000"`
}

type GradeSubmissionRequest struct {
	MarksObtained *int    `json:"marks_obtained" validate:"required,min=0"`
	Feedback      *string `json:"feedback"`
}

type CreateLateRequestRequest struct {
	AssignmentID int64  `json:"assignment_id" validate:"required,min=1"`
	Reason       string `json:"reason" validate:"required,min=10,max=500"`
}

type RespondLateRequestRequest struct {
	Status          LateRequestStatus `json:"status" validate:"required,oneof=APPROVED REJECTED"`
	TeacherResponse *string           `json:"teacher_response"`
}

type BlockStudentRequest struct {
	StudentID int64  `json:"student_id" validate:"required,min=1"`
	Reason    string `json:"reason" validate:"required,max=500"`
}

type CreateQueryRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
}

type CreateUserRequest struct {
	Email      string `json:"email" validate:"required,email,max=255"`
	FullName   string `json:"full_name" validate:"required,min=2,max=255"`
	Role       Role   `json:"role" validate:"required,oneof=STUDENT TEACHER"`
	ClassGrade *int   `json:"class_grade" validate:"omitempty,min=6,max=10"`
}

type UploadAttachmentResponse struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

type LateApprovalResponse struct {
	AssignmentID int64 `json:"assignment_id"`
	Approved     bool  `json:"approved"`
}

type BlockStatusResponse struct {
	StudentID int64 `json:"student_id"`
	Blocked   bool  `json:"blocked"`
}
