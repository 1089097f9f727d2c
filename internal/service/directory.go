package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/RubachokBoss/tutoring-center/internal/repository"
)

const unknown = "Unknown"

// UserDirectory resolves display data for read-side enrichment.
// Lookups never fail; a missing user or a store error yields "Unknown".
type UserDirectory interface {
	DisplayName(ctx context.Context, userID int64) string
	Email(ctx context.Context, userID int64) string
}

type userDirectory struct {
	userRepo repository.UserRepository
	logger   zerolog.Logger
}

func NewUserDirectory(userRepo repository.UserRepository, logger zerolog.Logger) UserDirectory {
	return &userDirectory{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (d *userDirectory) DisplayName(ctx context.Context, userID int64) string {
	name, _ := d.lookup(ctx, userID)
	return name
}

func (d *userDirectory) Email(ctx context.Context, userID int64) string {
	_, email := d.lookup(ctx, userID)
	return email
}

func (d *userDirectory) lookup(ctx context.Context, userID int64) (string, string) {
	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		d.logger.Warn().Err(err).Int64("user_id", userID).Msg("Failed to resolve user")
		return unknown, unknown
	}
	if user == nil {
		return unknown, unknown
	}

	name, email := user.FullName, user.Email
	if name == "" {
		name = unknown
	}
	if email == "" {
		email = unknown
	}
	return name, email
}
