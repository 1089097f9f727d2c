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

var errAssignmentNotFound = errs.NotFound("assignment not found")

type AssignmentService interface {
	CreateAssignment(ctx context.Context, caller models.Caller, req *models.CreateAssignmentRequest) (*models.AssignmentView, error)
	ListAssignmentsByClass(ctx context.Context, caller models.Caller, classGrade int) ([]models.AssignmentView, error)
	ListAllAssignments(ctx context.Context, caller models.Caller) ([]models.AssignmentView, error)
	GetAssignment(ctx context.Context, caller models.Caller, id int64) (*models.AssignmentView, error)
	DeleteAssignment(ctx context.Context, caller models.Caller, id int64) error
}

type assignmentService struct {
	assignmentRepo repository.AssignmentRepository
	submissionRepo repository.SubmissionRepository
	publisher      integration.EventPublisher
	now            Clock
	logger         zerolog.Logger
}

func NewAssignmentService(
	assignmentRepo repository.AssignmentRepository,
	submissionRepo repository.SubmissionRepository,
	publisher integration.EventPublisher,
	now Clock,
	logger zerolog.Logger,
) AssignmentService {
	return &assignmentService{
		assignmentRepo: assignmentRepo,
		submissionRepo: submissionRepo,
		publisher:      publisher,
		now:            now,
		logger:         logger,
	}
}

// CreateAssignment publishes a new assignment. Field bounds are checked at the boundary.
func (s *assignmentService) CreateAssignment(ctx context.Context, caller models.Caller, req *models.CreateAssignmentRequest) (*models.AssignmentView, error) {
	if !caller.IsTeacher() {
		return nil, errs.PermissionDenied("only teachers can create assignments")
	}

	now := s.now()
	assignment := &models.Assignment{
		Title:         req.Title,
		Description:   req.Description,
		ClassGrade:    req.ClassGrade,
		DueDate:       req.DueDate.UTC(),
		TotalMarks:    req.TotalMarks,
		AttachmentURL: req.AttachmentURL,
		Status:        models.AssignmentStatusPublished,
		CreatedBy:     caller.UserID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}

	s.logger.Info().
		Int64("assignment_id", assignment.ID).
		Int("class_grade", assignment.ClassGrade).
		Int64("teacher_id", caller.UserID).
		Msg("Assignment created")

	publish(ctx, s.publisher, s.logger, integration.NewEvent(models.EventAssignmentPublished, now, models.AssignmentEvent{
		AssignmentID: assignment.ID,
		ClassGrade:   assignment.ClassGrade,
		Title:        assignment.Title,
		DueDate:      assignment.DueDate,
		TeacherID:    caller.UserID,
	}))

	return &models.AssignmentView{
		Assignment:   *assignment,
		IsOverdue:    assignment.IsOverdueAt(now),
		HasSubmitted: models.FlagUnset,
		IsGraded:     models.FlagUnset,
	}, nil
}

func (s *assignmentService) ListAssignmentsByClass(ctx context.Context, caller models.Caller, classGrade int) ([]models.AssignmentView, error) {
	assignments, err := s.assignmentRepo.GetByClassAndStatus(ctx, classGrade, models.AssignmentStatusPublished)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignments by class: %w", err)
	}
	return s.annotate(ctx, caller, assignments)
}

func (s *assignmentService) ListAllAssignments(ctx context.Context, caller models.Caller) ([]models.AssignmentView, error) {
	if !caller.IsTeacher() {
		return nil, errs.PermissionDenied("only teachers can list all assignments")
	}

	assignments, err := s.assignmentRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all assignments: %w", err)
	}
	return s.annotate(ctx, caller, assignments)
}

func (s *assignmentService) GetAssignment(ctx context.Context, caller models.Caller, id int64) (*models.AssignmentView, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	if assignment == nil {
		return nil, errAssignmentNotFound
	}

	views, err := s.annotate(ctx, caller, []models.Assignment{*assignment})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *assignmentService) DeleteAssignment(ctx context.Context, caller models.Caller, id int64) error {
	if !caller.IsTeacher() {
		return errs.PermissionDenied("only teachers can delete assignments")
	}

	assignment, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get assignment: %w", err)
	}
	if assignment == nil {
		return errAssignmentNotFound
	}

	// Submissions and late requests stay behind; lookups through this id now 404.
	if err := s.assignmentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errAssignmentNotFound
		}
		return fmt.Errorf("failed to delete assignment: %w", err)
	}

	s.logger.Info().
		Int64("assignment_id", id).
		Int64("teacher_id", caller.UserID).
		Msg("Assignment deleted")

	publish(ctx, s.publisher, s.logger, integration.NewEvent(models.EventAssignmentDeleted, s.now(), models.AssignmentEvent{
		AssignmentID: assignment.ID,
		ClassGrade:   assignment.ClassGrade,
		Title:        assignment.Title,
		DueDate:      assignment.DueDate,
		TeacherID:    caller.UserID,
	}))

	return nil
}

// annotate computes overdue state for everyone and submission flags for students only.
func (s *assignmentService) annotate(ctx context.Context, caller models.Caller, assignments []models.Assignment) ([]models.AssignmentView, error) {
	now := s.now()

	var byAssignment map[int64]models.Submission
	if caller.IsStudent() {
		submissions, err := s.submissionRepo.GetByStudentID(ctx, caller.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to get student submissions: %w", err)
		}
		byAssignment = make(map[int64]models.Submission, len(submissions))
		for _, sub := range submissions {
			byAssignment[sub.AssignmentID] = sub
		}
	}

	views := make([]models.AssignmentView, 0, len(assignments))
	for _, a := range assignments {
		view := models.AssignmentView{
			Assignment: a,
			IsOverdue:  a.IsOverdueAt(now),
		}
		if byAssignment != nil {
			sub, ok := byAssignment[a.ID]
			view.HasSubmitted = models.FlagOf(ok)
			view.IsGraded = models.FlagOf(ok && sub.IsGraded())
		}
		views = append(views, view)
	}
	return views, nil
}
