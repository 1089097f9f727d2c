package memory

import (
	"context"
	"sort"
	"time"

	"github.com/RubachokBoss/tutoring-center/internal/models"
	"github.com/RubachokBoss/tutoring-center/internal/repository"
)

type lateRequestRepository struct {
	db *DB
}

func NewLateRequestRepository(db *DB) repository.LateRequestRepository {
	return &lateRequestRepository{db: db}
}

func (r *lateRequestRepository) Create(_ context.Context, request *models.LateSubmissionRequest) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, lr := range r.db.lateRequests {
		if lr.AssignmentID == request.AssignmentID && lr.StudentID == request.StudentID {
			return repository.ErrDuplicate
		}
	}

	request.ID = r.db.nextID("late_submission_requests")
	row := *request
	r.db.lateRequests[row.ID] = &row
	return nil
}

func (r *lateRequestRepository) GetByID(_ context.Context, id int64) (*models.LateSubmissionRequest, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	if lr, ok := r.db.lateRequests[id]; ok {
		row := *lr
		return &row, nil
	}
	return nil, nil
}

func (r *lateRequestRepository) GetByAssignmentAndStudent(_ context.Context, assignmentID, studentID int64) (*models.LateSubmissionRequest, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, lr := range r.db.lateRequests {
		if lr.AssignmentID == assignmentID && lr.StudentID == studentID {
			row := *lr
			return &row, nil
		}
	}
	return nil, nil
}

func (r *lateRequestRepository) GetByStatus(_ context.Context, status models.LateRequestStatus) ([]models.LateSubmissionRequest, error) {
	requests := r.filter(func(lr *models.LateSubmissionRequest) bool { return lr.Status == status })
	sort.Slice(requests, func(i, j int) bool { return requests[i].ID < requests[j].ID })
	return requests, nil
}

func (r *lateRequestRepository) GetAll(_ context.Context) ([]models.LateSubmissionRequest, error) {
	requests := r.filter(func(*models.LateSubmissionRequest) bool { return true })
	sort.Slice(requests, func(i, j int) bool { return requests[i].ID > requests[j].ID })
	return requests, nil
}

func (r *lateRequestRepository) filter(keep func(*models.LateSubmissionRequest) bool) []models.LateSubmissionRequest {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	requests := make([]models.LateSubmissionRequest, 0)
	for _, lr := range r.db.lateRequests {
		if keep(lr) {
			requests = append(requests, *lr)
		}
	}
	return requests
}

func (r *lateRequestRepository) Respond(_ context.Context, id int64, status models.LateRequestStatus, teacherResponse *string, respondedAt time.Time) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	lr, ok := r.db.lateRequests[id]
	if !ok {
		return false, repository.ErrNotFound
	}
	if lr.Status != models.LateRequestStatusPending {
		return false, nil
	}

	at := respondedAt
	lr.Status = status
	lr.TeacherResponse = teacherResponse
	lr.RespondedAt = &at
	return true, nil
}
