package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/RubachokBoss/tutoring-center/internal/models"
)

type AssignmentRepository interface {
	Create(ctx context.Context, assignment *models.Assignment) error
	GetByID(ctx context.Context, id int64) (*models.Assignment, error)
	GetByClassAndStatus(ctx context.Context, classGrade int, status models.AssignmentStatus) ([]models.Assignment, error)
	GetAll(ctx context.Context) ([]models.Assignment, error)
	Update(ctx context.Context, assignment *models.Assignment) error
	Delete(ctx context.Context, id int64) error
}

type assignmentRepository struct {
	*PostgresRepository
}

func NewAssignmentRepository(db *sql.DB, logger zerolog.Logger) AssignmentRepository {
	return &assignmentRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

const assignmentColumns = `id, title, description, class_grade, due_date, total_marks,
	attachment_url, status, created_by, created_at, updated_at`

func scanAssignment(row rowScanner, a *models.Assignment) error {
	var attachment sql.NullString
	err := row.Scan(
		&a.ID,
		&a.Title,
		&a.Description,
		&a.ClassGrade,
		&a.DueDate,
		&a.TotalMarks,
		&attachment,
		&a.Status,
		&a.CreatedBy,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return err
	}
	a.AttachmentURL = stringPtr(attachment)
	return nil
}

func (r *assignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	query := `
		INSERT INTO assignments (title, description, class_grade, due_date, total_marks,
			attachment_url, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		assignment.Title,
		assignment.Description,
		assignment.ClassGrade,
		assignment.DueDate,
		assignment.TotalMarks,
		assignment.AttachmentURL,
		assignment.Status,
		assignment.CreatedBy,
		assignment.CreatedAt,
		assignment.UpdatedAt,
	).Scan(&assignment.ID)

	return r.translate(err)
}

func (r *assignmentRepository) GetByID(ctx context.Context, id int64) (*models.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE id = $1`

	assignment := &models.Assignment{}
	err := scanAssignment(r.db.QueryRowContext(ctx, query, id), assignment)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return assignment, nil
}

func (r *assignmentRepository) GetByClassAndStatus(ctx context.Context, classGrade int, status models.AssignmentStatus) ([]models.Assignment, error) {
	query := `
		SELECT ` + assignmentColumns + `
		FROM assignments
		WHERE class_grade = $1 AND status = $2
		ORDER BY due_date DESC
	`

	return r.list(ctx, query, classGrade, status)
}

func (r *assignmentRepository) GetAll(ctx context.Context) ([]models.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *assignmentRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Assignment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]models.Assignment, 0)
	for rows.Next() {
		var assignment models.Assignment
		if err := scanAssignment(rows, &assignment); err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}

	return assignments, rows.Err()
}

func (r *assignmentRepository) Update(ctx context.Context, assignment *models.Assignment) error {
	query := `
		UPDATE assignments
		SET title = $1, description = $2, class_grade = $3, due_date = $4, total_marks = $5,
			attachment_url = $6, status = $7, updated_at = $8
		WHERE id = $9
	`

	res, err := r.db.ExecContext(ctx, query,
		assignment.Title,
		assignment.Description,
		assignment.ClassGrade,
		assignment.DueDate,
		assignment.TotalMarks,
		assignment.AttachmentURL,
		assignment.Status,
		assignment.UpdatedAt,
		assignment.ID,
	)
	if err != nil {
		return err
	}

	return requireAffected(res)
}

func (r *assignmentRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM assignments WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
