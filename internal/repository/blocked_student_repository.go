package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/RubachokBoss/tutoring-center/internal/models"
)

type BlockedStudentRepository interface {
	// Create fails with ErrDuplicate when the student is already blocked.
	Create(ctx context.Context, blocked *models.BlockedStudent) error
	ExistsByStudentID(ctx context.Context, studentID int64) (bool, error)
	// DeleteByStudentID removes the block if present; a missing row is not an error.
	DeleteByStudentID(ctx context.Context, studentID int64) (bool, error)
}

type blockedStudentRepository struct {
	*PostgresRepository
}

func NewBlockedStudentRepository(db *sql.DB, logger zerolog.Logger) BlockedStudentRepository {
	return &blockedStudentRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *blockedStudentRepository) Create(ctx context.Context, blocked *models.BlockedStudent) error {
	query := `
		INSERT INTO blocked_students (student_id, reason, blocked_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		blocked.StudentID,
		blocked.Reason,
		blocked.BlockedAt,
	).Scan(&blocked.ID)

	return r.translate(err)
}

func (r *blockedStudentRepository) ExistsByStudentID(ctx context.Context, studentID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM blocked_students WHERE student_id = $1)`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, studentID).Scan(&exists)
	return exists, err
}

func (r *blockedStudentRepository) DeleteByStudentID(ctx context.Context, studentID int64) (bool, error) {
	query := `DELETE FROM blocked_students WHERE student_id = $1`
	res, err := r.db.ExecContext(ctx, query, studentID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
