package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/zerolog"

	"github.com/RubachokBoss/tutoring-center/internal/models"
)

type LateRequestRepository interface {
	// Create fails with ErrDuplicate when the (assignment, student) pair already has a request.
	Create(ctx context.Context, request *models.LateSubmissionRequest) error
	GetByID(ctx context.Context, id int64) (*models.LateSubmissionRequest, error)
	GetByAssignmentAndStudent(ctx context.Context, assignmentID, studentID int64) (*models.LateSubmissionRequest, error)
	GetByStatus(ctx context.Context, status models.LateRequestStatus) ([]models.LateSubmissionRequest, error)
	GetAll(ctx context.Context) ([]models.LateSubmissionRequest, error)
	// Respond moves a PENDING request to status. It reports false when the
	// request exists but is no longer PENDING and ErrNotFound when it is missing.
	Respond(ctx context.Context, id int64, status models.LateRequestStatus, teacherResponse *string, respondedAt time.Time) (bool, error)
}

type lateRequestRepository struct {
	*PostgresRepository
}

func NewLateRequestRepository(db *sql.DB, logger zerolog.Logger) LateRequestRepository {
	return &lateRequestRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

const lateRequestColumns = `id, assignment_id, student_id, reason, status,
	requested_at, responded_at, teacher_response`

func scanLateRequest(row rowScanner, lr *models.LateSubmissionRequest) error {
	var (
		respondedAt sql.NullTime
		response    sql.NullString
	)
	err := row.Scan(
		&lr.ID,
		&lr.AssignmentID,
		&lr.StudentID,
		&lr.Reason,
		&lr.Status,
		&lr.RequestedAt,
		&respondedAt,
		&response,
	)
	if err != nil {
		return err
	}
	lr.RespondedAt = timePtr(respondedAt)
	lr.TeacherResponse = stringPtr(response)
	return nil
}

func (r *lateRequestRepository) Create(ctx context.Context, request *models.LateSubmissionRequest) error {
	query := `
		INSERT INTO late_submission_requests (assignment_id, student_id, reason, status, requested_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		request.AssignmentID,
		request.StudentID,
		request.Reason,
		request.Status,
		request.RequestedAt,
	).Scan(&request.ID)

	return r.translate(err)
}

func (r *lateRequestRepository) GetByID(ctx context.Context, id int64) (*models.LateSubmissionRequest, error) {
	query := `SELECT ` + lateRequestColumns + ` FROM late_submission_requests WHERE id = $1`
	return r.get(ctx, query, id)
}

func (r *lateRequestRepository) GetByAssignmentAndStudent(ctx context.Context, assignmentID, studentID int64) (*models.LateSubmissionRequest, error) {
	query := `SELECT ` + lateRequestColumns + ` FROM late_submission_requests WHERE assignment_id = $1 AND student_id = $2`
	return r.get(ctx, query, assignmentID, studentID)
}

func (r *lateRequestRepository) get(ctx context.Context, query string, args ...interface{}) (*models.LateSubmissionRequest, error) {
	request := &models.LateSubmissionRequest{}
	err := scanLateRequest(r.db.QueryRowContext(ctx, query, args...), request)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return request, nil
}

func (r *lateRequestRepository) GetByStatus(ctx context.Context, status models.LateRequestStatus) ([]models.LateSubmissionRequest, error) {
	query := `
		SELECT ` + lateRequestColumns + `
		FROM late_submission_requests
		WHERE status = $1
		ORDER BY requested_at
	`
	return r.list(ctx, query, status)
}

func (r *lateRequestRepository) GetAll(ctx context.Context) ([]models.LateSubmissionRequest, error) {
	query := `SELECT ` + lateRequestColumns + ` FROM late_submission_requests ORDER BY requested_at DESC`
	return r.list(ctx, query)
}

func (r *lateRequestRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.LateSubmissionRequest, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]models.LateSubmissionRequest, 0)
	for rows.Next() {
		var request models.LateSubmissionRequest
		if err := scanLateRequest(rows, &request); err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}

	return requests, rows.Err()
}

func (r *lateRequestRepository) Respond(ctx context.Context, id int64, status models.LateRequestStatus, teacherResponse *string, respondedAt time.Time) (bool, error) {
	query := `
		UPDATE late_submission_requests
		SET status = $1, teacher_response = $2, responded_at = $3
		WHERE id = $4 AND status = 'PENDING'
	`

	res, err := r.db.ExecContext(ctx, query, status, teacherResponse, respondedAt, id)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 1 {
		return true, nil
	}

	var exists bool
	err = r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM late_submission_requests WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, ErrNotFound
	}

	return false, nil
}
