package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/RubachokBoss/tutoring-center/internal/errs"
	"github.com/RubachokBoss/tutoring-center/internal/models"
	"github.com/RubachokBoss/tutoring-center/internal/repository"
	"github.com/RubachokBoss/tutoring-center/internal/service/integration"
)

type LateRequestService interface {
	CreateLateRequest(ctx context.Context, caller models.Caller, req *models.CreateLateRequestRequest) (*models.LateRequestView, error)
	RespondLateRequest(ctx context.Context, caller models.Caller, requestID int64, req *models.RespondLateRequestRequest) (*models.LateRequestView, error)
	// IsLateApproved is true only for an existing APPROVED request.
	IsLateApproved(ctx context.Context, assignmentID, studentID int64) (bool, error)
	ListPendingRequests(ctx context.Context, caller models.Caller) ([]models.LateRequestView, error)
	ListAllRequests(ctx context.Context, caller models.Caller) ([]models.LateRequestView, error)
	GetMyRequest(ctx context.Context, caller models.Caller, assignmentID int64) (*models.LateRequestView, error)
}

type lateRequestService struct {
	lateRequestRepo repository.LateRequestRepository
	assignmentRepo  repository.AssignmentRepository
	directory       UserDirectory
	publisher       integration.EventPublisher
	now             Clock
	logger          zerolog.Logger
}

func NewLateRequestService(
	lateRequestRepo repository.LateRequestRepository,
	assignmentRepo repository.AssignmentRepository,
	directory UserDirectory,
	publisher integration.EventPublisher,
	now Clock,
	logger zerolog.Logger,
) LateRequestService {
	return &lateRequestService{
		lateRequestRepo: lateRequestRepo,
		assignmentRepo:  assignmentRepo,
		directory:       directory,
		publisher:       publisher,
		now:             now,
		logger:          logger,
	}
}

func (s *lateRequestService) CreateLateRequest(ctx context.Context, caller models.Caller, req *models.CreateLateRequestRequest) (*models.LateRequestView, error) {
	if !caller.IsStudent() {
		return nil, errs.PermissionDenied("only students can request late submission")
	}

	assignment, err := s.assignmentRepo.GetByID(ctx, req.AssignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	if assignment == nil {
		return nil, errAssignmentNotFound
	}

	now := s.now()
	if !assignment.IsOverdueAt(now) {
		return nil, errs.InvalidState("assignment is not yet overdue")
	}

	existing, err := s.lateRequestRepo.GetByAssignmentAndStudent(ctx, req.AssignmentID, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing late request: %w", err)
	}
	if existing != nil {
		return nil, errLateRequestExists
	}

	request := &models.LateSubmissionRequest{
		AssignmentID: req.AssignmentID,
		StudentID:    caller.UserID,
		Reason:       req.Reason,
		Status:       models.LateRequestStatusPending,
		RequestedAt:  now,
	}

	if err := s.lateRequestRepo.Create(ctx, request); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errLateRequestExists
		}
		return nil, fmt.Errorf("failed to create late request: %w", err)
	}

	s.logger.Info().
		Int64("request_id", request.ID).
		Int64("assignment_id", request.AssignmentID).
		Int64("student_id", request.StudentID).
		Msg("Late submission requested")

	publish(ctx, s.publisher, s.logger, integration.NewEvent(models.EventLateRequestCreated, now, models.LateRequestEvent{
		RequestID:    request.ID,
		AssignmentID: request.AssignmentID,
		StudentID:    request.StudentID,
		Status:       request.Status,
	}))

	return s.view(ctx, request, assignment), nil
}

func (s *lateRequestService) RespondLateRequest(ctx context.Context, caller models.Caller, requestID int64, req *models.RespondLateRequestRequest) (*models.LateRequestView, error) {
	if !caller.IsTeacher() {
		return nil, errs.PermissionDenied("only teachers can respond to late requests")
	}
	if !req.Status.IsDecision() {
		return nil, errs.InvalidArgument("status must be APPROVED or REJECTED")
	}

	request, err := s.lateRequestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to get late request: %w", err)
	}
	if request == nil {
		return nil, errLateRequestNotFound
	}
	if request.Status != models.LateRequestStatusPending {
		return nil, errAlreadyResponded
	}

	now := s.now()
	updated, err := s.lateRequestRepo.Respond(ctx, requestID, req.Status, req.TeacherResponse, now)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errLateRequestNotFound
		}
		return nil, fmt.Errorf("failed to respond to late request: %w", err)
	}
	if !updated {
		// another teacher answered between the read and the update
		return nil, errAlreadyResponded
	}

	request.Status = req.Status
	request.TeacherResponse = req.TeacherResponse
	request.RespondedAt = &now

	s.logger.Info().
		Int64("request_id", request.ID).
		Str("status", request.Status.String()).
		Int64("teacher_id", caller.UserID).
		Msg("Late request responded")

	publish(ctx, s.publisher, s.logger, integration.NewEvent(models.EventLateRequestResponded, now, models.LateRequestEvent{
		RequestID:    request.ID,
		AssignmentID: request.AssignmentID,
		StudentID:    request.StudentID,
		Status:       request.Status,
	}))

	assignment, err := s.assignmentRepo.GetByID(ctx, request.AssignmentID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("assignment_id", request.AssignmentID).Msg("Failed to load assignment for view")
	}
	return s.view(ctx, request, assignment), nil
}

func (s *lateRequestService) IsLateApproved(ctx context.Context, assignmentID, studentID int64) (bool, error) {
	request, err := s.lateRequestRepo.GetByAssignmentAndStudent(ctx, assignmentID, studentID)
	if err != nil {
		return false, fmt.Errorf("failed to get late request: %w", err)
	}
	return request != nil && request.Status == models.LateRequestStatusApproved, nil
}

func (s *lateRequestService) ListPendingRequests(ctx context.Context, caller models.Caller) ([]models.LateRequestView, error) {
	if !caller.IsTeacher() {
		return nil, errs.PermissionDenied("only teachers can list late requests")
	}

	requests, err := s.lateRequestRepo.GetByStatus(ctx, models.LateRequestStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending late requests: %w", err)
	}
	return s.views(ctx, requests)
}

func (s *lateRequestService) ListAllRequests(ctx context.Context, caller models.Caller) ([]models.LateRequestView, error) {
	if !caller.IsTeacher() {
		return nil, errs.PermissionDenied("only teachers can list late requests")
	}

	requests, err := s.lateRequestRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get late requests: %w", err)
	}
	return s.views(ctx, requests)
}

func (s *lateRequestService) GetMyRequest(ctx context.Context, caller models.Caller, assignmentID int64) (*models.LateRequestView, error) {
	if !caller.IsStudent() {
		return nil, errs.PermissionDenied("only students have late requests")
	}

	request, err := s.lateRequestRepo.GetByAssignmentAndStudent(ctx, assignmentID, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get late request: %w", err)
	}
	if request == nil {
		return nil, errs.NotFound("no late request found for this assignment")
	}

	assignment, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	return s.view(ctx, request, assignment), nil
}

func (s *lateRequestService) views(ctx context.Context, requests []models.LateSubmissionRequest) ([]models.LateRequestView, error) {
	assignments := make(map[int64]*models.Assignment)
	views := make([]models.LateRequestView, 0, len(requests))
	for i := range requests {
		id := requests[i].AssignmentID
		assignment, seen := assignments[id]
		if !seen {
			var err error
			assignment, err = s.assignmentRepo.GetByID(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("failed to get assignment: %w", err)
			}
			assignments[id] = assignment
		}
		views = append(views, *s.view(ctx, &requests[i], assignment))
	}
	return views, nil
}

// view tolerates a nil assignment; its title renders as "Unknown".
func (s *lateRequestService) view(ctx context.Context, request *models.LateSubmissionRequest, assignment *models.Assignment) *models.LateRequestView {
	title := unknown
	if assignment != nil {
		title = assignment.Title
	}
	return &models.LateRequestView{
		LateSubmissionRequest: *request,
		AssignmentTitle:       title,
		StudentName:           s.directory.DisplayName(ctx, request.StudentID),
		StudentEmail:          s.directory.Email(ctx, request.StudentID),
	}
}

var (
	errLateRequestNotFound = errs.NotFound("late request not found")
	errLateRequestExists   = errs.Conflict("late submission request already exists for this assignment")
	errAlreadyResponded    = errs.InvalidState("request has already been responded to")
)
