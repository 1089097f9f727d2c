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

// ModerationService keeps the set of students barred from posting queries.
type ModerationService interface {
	BlockStudent(ctx context.Context, caller models.Caller, req *models.BlockStudentRequest) (*models.BlockedStudent, error)
	UnblockStudent(ctx context.Context, caller models.Caller, studentID int64) error
	IsBlocked(ctx context.Context, studentID int64) (bool, error)
}

type moderationService struct {
	blockedRepo repository.BlockedStudentRepository
	userRepo    repository.UserRepository
	publisher   integration.EventPublisher
	now         Clock
	logger      zerolog.Logger
}

func NewModerationService(
	blockedRepo repository.BlockedStudentRepository,
	userRepo repository.UserRepository,
	publisher integration.EventPublisher,
	now Clock,
	logger zerolog.Logger,
) ModerationService {
	return &moderationService{
		blockedRepo: blockedRepo,
		userRepo:    userRepo,
		publisher:   publisher,
		now:         now,
		logger:      logger,
	}
}

func (s *moderationService) BlockStudent(ctx context.Context, caller models.Caller, req *models.BlockStudentRequest) (*models.BlockedStudent, error) {
	if !caller.IsTeacher() {
		return nil, errs.PermissionDenied("only teachers can block students")
	}
	if strings.TrimSpace(req.Reason) == "" {
		return nil, errs.InvalidArgument("reason is required")
	}

	target, err := s.userRepo.GetByID(ctx, req.StudentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	if target == nil {
		return nil, errs.NotFound("student not found")
	}
	if target.Role != models.RoleStudent {
		return nil, errs.InvalidArgument("can only block students")
	}

	blocked, err := s.blockedRepo.ExistsByStudentID(ctx, req.StudentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check block status: %w", err)
	}
	if blocked {
		return nil, errs.Conflict("student is already blocked")
	}

	now := s.now()
	row := &models.BlockedStudent{
		StudentID: req.StudentID,
		Reason:    req.Reason,
		BlockedAt: now,
	}
	if err := s.blockedRepo.Create(ctx, row); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errs.Conflict("student is already blocked")
		}
		return nil, fmt.Errorf("failed to block student: %w", err)
	}

	s.logger.Info().
		Int64("student_id", req.StudentID).
		Int64("teacher_id", caller.UserID).
		Msg("Student blocked")

	publish(ctx, s.publisher, s.logger, integration.NewEvent(models.EventStudentBlocked, now, models.ModerationEvent{
		StudentID: req.StudentID,
		Reason:    req.Reason,
	}))

	return row, nil
}

// UnblockStudent is a no-op for students that are not blocked.
func (s *moderationService) UnblockStudent(ctx context.Context, caller models.Caller, studentID int64) error {
	if !caller.IsTeacher() {
		return errs.PermissionDenied("only teachers can unblock students")
	}

	removed, err := s.blockedRepo.DeleteByStudentID(ctx, studentID)
	if err != nil {
		return fmt.Errorf("failed to unblock student: %w", err)
	}
	if !removed {
		return nil
	}

	s.logger.Info().
		Int64("student_id", studentID).
		Int64("teacher_id", caller.UserID).
		Msg("Student unblocked")

	publish(ctx, s.publisher, s.logger, integration.NewEvent(models.EventStudentUnblocked, s.now(), models.ModerationEvent{
		StudentID: studentID,
	}))

	return nil
}

func (s *moderationService) IsBlocked(ctx context.Context, studentID int64) (bool, error) {
	blocked, err := s.blockedRepo.ExistsByStudentID(ctx, studentID)
	if err != nil {
		return false, fmt.Errorf("failed to check block status: %w", err)
	}
	return blocked, nil
}
