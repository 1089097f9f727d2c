package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/RubachokBoss/tutoring-center/internal/models"
)

type QueryRepository interface {
	Create(ctx context.Context, query *models.Query) error
	GetByID(ctx context.Context, id int64) (*models.Query, error)
	GetByClassGrade(ctx context.Context, classGrade int) ([]models.Query, error)
	SoftDelete(ctx context.Context, id int64) error
}

type queryRepository struct {
	*PostgresRepository
}

func NewQueryRepository(db *sql.DB, logger zerolog.Logger) QueryRepository {
	return &queryRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *queryRepository) Create(ctx context.Context, q *models.Query) error {
	query := `
		INSERT INTO queries (student_id, student_name, class_grade, title, content, created_at, is_deleted)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		q.StudentID,
		q.StudentName,
		q.ClassGrade,
		q.Title,
		q.Content,
		q.CreatedAt,
	).Scan(&q.ID)

	return r.translate(err)
}

func (r *queryRepository) GetByID(ctx context.Context, id int64) (*models.Query, error) {
	query := `
		SELECT id, student_id, student_name, class_grade, title, content, created_at, is_deleted
		FROM queries
		WHERE id = $1
	`

	q := &models.Query{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&q.ID,
		&q.StudentID,
		&q.StudentName,
		&q.ClassGrade,
		&q.Title,
		&q.Content,
		&q.CreatedAt,
		&q.IsDeleted,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return q, nil
}

func (r *queryRepository) GetByClassGrade(ctx context.Context, classGrade int) ([]models.Query, error) {
	query := `
		SELECT id, student_id, student_name, class_grade, title, content, created_at, is_deleted
		FROM queries
		WHERE class_grade = $1 AND is_deleted = FALSE
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, classGrade)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	queries := make([]models.Query, 0)
	for rows.Next() {
		var q models.Query
		err := rows.Scan(
			&q.ID,
			&q.StudentID,
			&q.StudentName,
			&q.ClassGrade,
			&q.Title,
			&q.Content,
			&q.CreatedAt,
			&q.IsDeleted,
		)
		if err != nil {
			return nil, err
		}
		queries = append(queries, q)
	}

	return queries, rows.Err()
}

func (r *queryRepository) SoftDelete(ctx context.Context, id int64) error {
	query := `UPDATE queries SET is_deleted = TRUE WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
