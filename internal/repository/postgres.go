package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

var (
	// ErrNotFound is returned by Update and Delete when no row has the given id.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert violates a natural-key unique index.
	ErrDuplicate = errors.New("duplicate record")
)

const uniqueViolation = pq.ErrorCode("23505")

type PostgresRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewPostgresRepository(db *sql.DB, logger zerolog.Logger) *PostgresRepository {
	return &PostgresRepository{
		db:     db,
		logger: logger,
	}
}

// Ping gives the database five seconds to answer.
func (r *PostgresRepository) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.db.PingContext(ctx)
}

// translate maps driver errors onto the repository sentinels.
func (r *PostgresRepository) translate(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		r.logger.Debug().
			Str("constraint", pqErr.Constraint).
			Msg("Unique constraint violated")
		return ErrDuplicate
	}
	return err
}

// requireAffected turns a zero-row write into ErrNotFound.
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
