package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/RubachokBoss/tutoring-center/internal/errs"
	"github.com/RubachokBoss/tutoring-center/internal/models"
	"github.com/RubachokBoss/tutoring-center/internal/repository"
)

type QueryService interface {
	CreateQuery(ctx context.Context, caller models.Caller, req *models.CreateQueryRequest) (*models.Query, error)
	ListQueriesByClass(ctx context.Context, caller models.Caller, classGrade int) ([]models.Query, error)
	DeleteQuery(ctx context.Context, caller models.Caller, id int64) error
}

type queryService struct {
	queryRepo  repository.QueryRepository
	userRepo   repository.UserRepository
	moderation ModerationService
	now        Clock
	logger     zerolog.Logger
}

func NewQueryService(
	queryRepo repository.QueryRepository,
	userRepo repository.UserRepository,
	moderation ModerationService,
	now Clock,
	logger zerolog.Logger,
) QueryService {
	return &queryService{
		queryRepo:  queryRepo,
		userRepo:   userRepo,
		moderation: moderation,
		now:        now,
		logger:     logger,
	}
}

func (s *queryService) CreateQuery(ctx context.Context, caller models.Caller, req *models.CreateQueryRequest) (*models.Query, error) {
	if !caller.IsStudent() {
		return nil, errs.PermissionDenied("only students can post queries")
	}

	blocked, err := s.moderation.IsBlocked(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, errs.PermissionDenied("you are blocked from posting queries")
	}

	student, err := s.userRepo.GetByID(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	if student == nil {
		return nil, errs.NotFound("student not found")
	}
	if student.ClassGrade == nil {
		return nil, errs.InvalidState("student has no class grade")
	}

	query := &models.Query{
		StudentID:   student.ID,
		StudentName: student.FullName,
		ClassGrade:  *student.ClassGrade,
		Title:       req.Title,
		Content:     req.Content,
		CreatedAt:   s.now(),
	}
	if err := s.queryRepo.Create(ctx, query); err != nil {
		return nil, fmt.Errorf("failed to create query: %w", err)
	}

	s.logger.Info().
		Int64("query_id", query.ID).
		Int64("student_id", query.StudentID).
		Int("class_grade", query.ClassGrade).
		Msg("Query created")

	return query, nil
}

func (s *queryService) ListQueriesByClass(ctx context.Context, _ models.Caller, classGrade int) ([]models.Query, error) {
	queries, err := s.queryRepo.GetByClassGrade(ctx, classGrade)
	if err != nil {
		return nil, fmt.Errorf("failed to get queries: %w", err)
	}
	return queries, nil
}

func (s *queryService) DeleteQuery(ctx context.Context, caller models.Caller, id int64) error {
	if !caller.IsTeacher() {
		return errs.PermissionDenied("only teachers can delete queries")
	}

	if err := s.queryRepo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errs.NotFound("query not found")
		}
		return fmt.Errorf("failed to delete query: %w", err)
	}

	s.logger.Info().
		Int64("query_id", id).
		Int64("teacher_id", caller.UserID).
		Msg("Query deleted")

	return nil
}
