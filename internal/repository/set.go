package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Set groups the stores a running service needs.
type Set struct {
	Assignments     AssignmentRepository
	Submissions     SubmissionRepository
	LateRequests    LateRequestRepository
	BlockedStudents BlockedStudentRepository
	Users           UserRepository
	Queries         QueryRepository
	Health          HealthChecker
}

func NewPostgresSet(db *sql.DB, logger zerolog.Logger) *Set {
	return &Set{
		Assignments:     NewAssignmentRepository(db, logger),
		Submissions:     NewSubmissionRepository(db, logger),
		LateRequests:    NewLateRequestRepository(db, logger),
		BlockedStudents: NewBlockedStudentRepository(db, logger),
		Users:           NewUserRepository(db, logger),
		Queries:         NewQueryRepository(db, logger),
		Health:          NewPostgresRepository(db, logger),
	}
}
