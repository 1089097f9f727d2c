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
)

type UserService interface {
	CreateUser(ctx context.Context, caller models.Caller, req *models.CreateUserRequest) (*models.User, error)
	GetUser(ctx context.Context, caller models.Caller, id int64) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	now      Clock
	logger   zerolog.Logger
}

func NewUserService(userRepo repository.UserRepository, now Clock, logger zerolog.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		now:      now,
		logger:   logger,
	}
}

func (s *userService) CreateUser(ctx context.Context, caller models.Caller, req *models.CreateUserRequest) (*models.User, error) {
	if !caller.IsTeacher() {
		return nil, errs.PermissionDenied("only teachers can create users")
	}
	if req.Role == models.RoleStudent && req.ClassGrade == nil {
		return nil, errs.InvalidArgument("class_grade is required for students")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, errs.Conflict("user with this email already exists")
	}

	user := &models.User{
		Email:     email,
		FullName:  req.FullName,
		Role:      req.Role,
		CreatedAt: s.now(),
	}
	if req.Role == models.RoleStudent {
		user.ClassGrade = req.ClassGrade
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errs.Conflict("user with this email already exists")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Str("role", user.Role.String()).
		Msg("User created")

	return user, nil
}

func (s *userService) GetUser(ctx context.Context, caller models.Caller, id int64) (*models.User, error) {
	if !caller.IsTeacher() && caller.UserID != id {
		return nil, errs.PermissionDenied("students can only view their own profile")
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, errs.NotFound("user not found")
	}
	return user, nil
}
