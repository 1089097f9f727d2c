package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/RubachokBoss/tutoring-center/internal/models"
)

type SubmissionRepository interface {
	// Create fails with ErrDuplicate when the (assignment, student) pair already has a row.
	Create(ctx context.Context, submission *models.Submission) error
	GetByID(ctx context.Context, id int64) (*models.Submission, error)
	GetByAssignmentAndStudent(ctx context.Context, assignmentID, studentID int64) (*models.Submission, error)
	GetByAssignmentID(ctx context.Context, assignmentID int64) ([]models.Submission, error)
	GetByStudentID(ctx context.Context, studentID int64) ([]models.Submission, error)
	UpdateGrade(ctx context.Context, submission *models.Submission) error
}

type submissionRepository struct {
	*PostgresRepository
}

func NewSubmissionRepository(db *sql.DB, logger zerolog.Logger) SubmissionRepository {
	return &submissionRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

const submissionColumns = `id, assignment_id, student_id, submission_text, attachment_url,
	submitted_at, status, is_late, marks_obtained, feedback, updated_at`

func scanSubmission(row rowScanner, s *models.Submission) error {
	var (
		text       sql.NullString
		attachment sql.NullString
		marks      sql.NullInt64
		feedback   sql.NullString
	)
	err := row.Scan(
		&s.ID,
		&s.AssignmentID,
		&s.StudentID,
		&text,
		&attachment,
		&s.SubmittedAt,
		&s.Status,
		&s.IsLate,
		&marks,
		&feedback,
		&s.UpdatedAt,
	)
	if err != nil {
		return err
	}
	s.SubmissionText = stringPtr(text)
	s.AttachmentURL = stringPtr(attachment)
	s.MarksObtained = intPtr(marks)
	s.Feedback = stringPtr(feedback)
	return nil
}

func (r *submissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	query := `
		INSERT INTO submissions (assignment_id, student_id, submission_text, attachment_url,
			submitted_at, status, is_late, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		submission.AssignmentID,
		submission.StudentID,
		submission.SubmissionText,
		submission.AttachmentURL,
		submission.SubmittedAt,
		submission.Status,
		submission.IsLate,
		submission.UpdatedAt,
	).Scan(&submission.ID)

	return r.translate(err)
}

func (r *submissionRepository) GetByID(ctx context.Context, id int64) (*models.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE id = $1`
	return r.get(ctx, query, id)
}

func (r *submissionRepository) GetByAssignmentAndStudent(ctx context.Context, assignmentID, studentID int64) (*models.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE assignment_id = $1 AND student_id = $2`
	return r.get(ctx, query, assignmentID, studentID)
}

func (r *submissionRepository) get(ctx context.Context, query string, args ...interface{}) (*models.Submission, error) {
	submission := &models.Submission{}
	err := scanSubmission(r.db.QueryRowContext(ctx, query, args...), submission)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return submission, nil
}

func (r *submissionRepository) GetByAssignmentID(ctx context.Context, assignmentID int64) ([]models.Submission, error) {
	query := `
		SELECT ` + submissionColumns + `
		FROM submissions
		WHERE assignment_id = $1
		ORDER BY submitted_at DESC
	`
	return r.list(ctx, query, assignmentID)
}

func (r *submissionRepository) GetByStudentID(ctx context.Context, studentID int64) ([]models.Submission, error) {
	query := `
		SELECT ` + submissionColumns + `
		FROM submissions
		WHERE student_id = $1
		ORDER BY submitted_at DESC
	`
	return r.list(ctx, query, studentID)
}

func (r *submissionRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Submission, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	submissions := make([]models.Submission, 0)
	for rows.Next() {
		var submission models.Submission
		if err := scanSubmission(rows, &submission); err != nil {
			return nil, err
		}
		submissions = append(submissions, submission)
	}

	return submissions, rows.Err()
}

func (r *submissionRepository) UpdateGrade(ctx context.Context, submission *models.Submission) error {
	query := `
		UPDATE submissions
		SET marks_obtained = $1, feedback = $2, status = $3, updated_at = $4
		WHERE id = $5
	`

	res, err := r.db.ExecContext(ctx, query,
		submission.MarksObtained,
		submission.Feedback,
		submission.Status,
		submission.UpdatedAt,
		submission.ID,
	)
	if err != nil {
		return err
	}

	return requireAffected(res)
}
