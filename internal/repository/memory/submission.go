package memory

import (
	"context"
	"sort"

	"github.com/RubachokBoss/tutoring-center/internal/models"
	"github.com/RubachokBoss/tutoring-center/internal/repository"
)

type submissionRepository struct {
	db *DB
}

func NewSubmissionRepository(db *DB) repository.SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(_ context.Context, submission *models.Submission) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, s := range r.db.submissions {
		if s.AssignmentID == submission.AssignmentID && s.StudentID == submission.StudentID {
			return repository.ErrDuplicate
		}
	}

	submission.ID = r.db.nextID("submissions")
	row := *submission
	r.db.submissions[row.ID] = &row
	return nil
}

func (r *submissionRepository) GetByID(_ context.Context, id int64) (*models.Submission, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	if s, ok := r.db.submissions[id]; ok {
		row := *s
		return &row, nil
	}
	return nil, nil
}

func (r *submissionRepository) GetByAssignmentAndStudent(_ context.Context, assignmentID, studentID int64) (*models.Submission, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, s := range r.db.submissions {
		if s.AssignmentID == assignmentID && s.StudentID == studentID {
			row := *s
			return &row, nil
		}
	}
	return nil, nil
}

func (r *submissionRepository) GetByAssignmentID(_ context.Context, assignmentID int64) ([]models.Submission, error) {
	return r.filter(func(s *models.Submission) bool { return s.AssignmentID == assignmentID }), nil
}

func (r *submissionRepository) GetByStudentID(_ context.Context, studentID int64) ([]models.Submission, error) {
	return r.filter(func(s *models.Submission) bool { return s.StudentID == studentID }), nil
}

func (r *submissionRepository) filter(keep func(*models.Submission) bool) []models.Submission {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	submissions := make([]models.Submission, 0)
	for _, s := range r.db.submissions {
		if keep(s) {
			submissions = append(submissions, *s)
		}
	}
	sort.Slice(submissions, func(i, j int) bool {
		if submissions[i].SubmittedAt.Equal(submissions[j].SubmittedAt) {
			return submissions[i].ID > submissions[j].ID
		}
		return submissions[i].SubmittedAt.After(submissions[j].SubmittedAt)
	})
	return submissions
}

func (r *submissionRepository) UpdateGrade(_ context.Context, submission *models.Submission) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	row, ok := r.db.submissions[submission.ID]
	if !ok {
		return repository.ErrNotFound
	}
	row.MarksObtained = submission.MarksObtained
	row.Feedback = submission.Feedback
	row.Status = submission.Status
	row.UpdatedAt = submission.UpdatedAt
	return nil
}
