package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/RubachokBoss/tutoring-center/internal/errs"
	"github.com/RubachokBoss/tutoring-center/internal/models"
	"github.com/RubachokBoss/tutoring-center/internal/repository"
	"github.com/RubachokBoss/tutoring-center/internal/service/integration"
)

var (
	errSubmissionNotFound = errs.NotFound("submission not found")
	errAlreadySubmitted   = errs.Conflict("assignment already submitted")
)

type SubmissionService interface {
	SubmitAssignment(ctx context.Context, caller models.Caller, req *models.SubmitAssignmentRequest) (*models.SubmissionView, error)
	GradeSubmission(ctx context.Context, caller models.Caller, submissionID int64, req *models.GradeSubmissionRequest) (*models.SubmissionView, error)
	ListSubmissionsByAssignment(ctx context.Context, caller models.Caller, assignmentID int64) ([]models.SubmissionView, error)
	GetMySubmission(ctx context.Context, caller models.Caller, assignmentID int64) (*models.SubmissionView, error)
	ListMySubmissions(ctx context.Context, caller models.Caller) ([]models.SubmissionView, error)
}

type submissionService struct {
	submissionRepo repository.SubmissionRepository
	assignmentRepo repository.AssignmentRepository
	lateRequests   LateRequestService
	directory      UserDirectory
	publisher      integration.EventPublisher
	now            Clock
	logger         zerolog.Logger
}

func NewSubmissionService(
	submissionRepo repository.SubmissionRepository,
	assignmentRepo repository.AssignmentRepository,
	lateRequests LateRequestService,
	directory UserDirectory,
	publisher integration.EventPublisher,
	now Clock,
	logger zerolog.Logger,
) SubmissionService {
	return &submissionService{
		submissionRepo: submissionRepo,
		assignmentRepo: assignmentRepo,
		lateRequests:   lateRequests,
		directory:      directory,
		publisher:      publisher,
		now:            now,
		logger:         logger,
	}
}

func (s *submissionService) SubmitAssignment(ctx context.Context, caller models.Caller, req *models.SubmitAssignmentRequest) (*models.SubmissionView, error) {
	if !caller.IsStudent() {
		return nil, errs.PermissionDenied("only students can submit assignments")
	}
	if isBlank(req.SubmissionText) && isBlank(req.AttachmentURL) {
		return nil, errs.InvalidArgument("please provide either submission text or an attachment")
	}

	assignment, err := s.assignmentRepo.GetByID(ctx, req.AssignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	if assignment == nil {
		return nil, errAssignmentNotFound
	}

	existing, err := s.submissionRepo.GetByAssignmentAndStudent(ctx, req.AssignmentID, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing submission: %w", err)
	}
	if existing != nil {
		return nil, errAlreadySubmitted
	}

	now := s.now()
	isLate := assignment.IsOverdueAt(now)
	if isLate {
		approved, err := s.lateRequests.IsLateApproved(ctx, req.AssignmentID, caller.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to check late approval: %w", err)
		}
		if !approved {
			return nil, errs.PermissionDenied("assignment is overdue, please request late submission permission from your teacher")
		}
	}

	submission := &models.Submission{
		AssignmentID:   req.AssignmentID,
		StudentID:      caller.UserID,
		SubmissionText: nonBlank(req.SubmissionText),
		AttachmentURL:  nonBlank(req.AttachmentURL),
		SubmittedAt:    now,
		Status:         models.SubmissionStatusSubmitted,
		IsLate:         isLate,
		UpdatedAt:      now,
	}

	// the unique index settles concurrent submits that both passed the lookup above
	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errAlreadySubmitted
		}
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	s.logger.Info().
		Int64("submission_id", submission.ID).
		Int64("assignment_id", submission.AssignmentID).
		Int64("student_id", submission.StudentID).
		Bool("is_late", submission.IsLate).
		Msg("Assignment submitted")

	publish(ctx, s.publisher, s.logger, integration.NewEvent(models.EventSubmissionCreated, now, models.SubmissionEvent{
		SubmissionID: submission.ID,
		AssignmentID: submission.AssignmentID,
		StudentID:    submission.StudentID,
		IsLate:       submission.IsLate,
	}))

	return s.view(ctx, submission), nil
}

// GradeSubmission sets marks within [0, totalMarks]. Grading again overwrites.
func (s *submissionService) GradeSubmission(ctx context.Context, caller models.Caller, submissionID int64, req *models.GradeSubmissionRequest) (*models.SubmissionView, error) {
	if !caller.IsTeacher() {
		return nil, errs.PermissionDenied("only teachers can grade submissions")
	}
	if req.MarksObtained == nil {
		return nil, errs.InvalidArgument("marks obtained is required")
	}

	submission, err := s.submissionRepo.GetByID(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	if submission == nil {
		return nil, errSubmissionNotFound
	}

	assignment, err := s.assignmentRepo.GetByID(ctx, submission.AssignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	if assignment == nil {
		return nil, errAssignmentNotFound
	}

	marks := *req.MarksObtained
	if marks < 0 {
		return nil, errs.InvalidArgument("marks obtained cannot be negative")
	}
	if marks > assignment.TotalMarks {
		return nil, errs.Newf(errs.KindInvalidArgument, "marks obtained (%d) cannot exceed total marks (%d)", marks, assignment.TotalMarks)
	}

	now := s.now()
	submission.MarksObtained = &marks
	submission.Feedback = req.Feedback
	submission.Status = models.SubmissionStatusGraded
	submission.UpdatedAt = now

	if err := s.submissionRepo.UpdateGrade(ctx, submission); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to grade submission: %w", err)
	}

	s.logger.Info().
		Int64("submission_id", submission.ID).
		Int("marks_obtained", marks).
		Int("total_marks", assignment.TotalMarks).
		Int64("teacher_id", caller.UserID).
		Msg("Submission graded")

	publish(ctx, s.publisher, s.logger, integration.NewEvent(models.EventSubmissionGraded, now, models.SubmissionEvent{
		SubmissionID:  submission.ID,
		AssignmentID:  submission.AssignmentID,
		StudentID:     submission.StudentID,
		IsLate:        submission.IsLate,
		MarksObtained: submission.MarksObtained,
		Feedback:      submission.Feedback,
	}))

	return s.view(ctx, submission), nil
}

func (s *submissionService) ListSubmissionsByAssignment(ctx context.Context, caller models.Caller, assignmentID int64) ([]models.SubmissionView, error) {
	if !caller.IsTeacher() {
		return nil, errs.PermissionDenied("only teachers can view all submissions")
	}

	assignment, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	if assignment == nil {
		return nil, errAssignmentNotFound
	}

	submissions, err := s.submissionRepo.GetByAssignmentID(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get submissions by assignment: %w", err)
	}

	views := make([]models.SubmissionView, 0, len(submissions))
	for i := range submissions {
		views = append(views, *s.view(ctx, &submissions[i]))
	}
	return views, nil
}

func (s *submissionService) GetMySubmission(ctx context.Context, caller models.Caller, assignmentID int64) (*models.SubmissionView, error) {
	if !caller.IsStudent() {
		return nil, errs.PermissionDenied("only students have submissions")
	}

	assignment, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	if assignment == nil {
		return nil, errAssignmentNotFound
	}

	submission, err := s.submissionRepo.GetByAssignmentAndStudent(ctx, assignmentID, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	if submission == nil {
		return nil, errSubmissionNotFound
	}
	return s.view(ctx, submission), nil
}

// ListMySubmissions skips submissions whose assignment has been deleted.
func (s *submissionService) ListMySubmissions(ctx context.Context, caller models.Caller) ([]models.SubmissionView, error) {
	if !caller.IsStudent() {
		return nil, errs.PermissionDenied("only students have submissions")
	}

	submissions, err := s.submissionRepo.GetByStudentID(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get submissions by student: %w", err)
	}

	views := make([]models.SubmissionView, 0, len(submissions))
	for i := range submissions {
		assignment, err := s.assignmentRepo.GetByID(ctx, submissions[i].AssignmentID)
		if err != nil {
			return nil, fmt.Errorf("failed to get assignment: %w", err)
		}
		if assignment == nil {
			continue
		}
		views = append(views, *s.view(ctx, &submissions[i]))
	}
	return views, nil
}

func (s *submissionService) view(ctx context.Context, submission *models.Submission) *models.SubmissionView {
	return &models.SubmissionView{
		Submission:   *submission,
		StudentName:  s.directory.DisplayName(ctx, submission.StudentID),
		StudentEmail: s.directory.Email(ctx, submission.StudentID),
	}
}

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

func nonBlank(s *string) *string {
	if isBlank(s) {
		return nil
	}
	return s
}
