package memory

import (
	"context"
	"sort"

	"github.com/RubachokBoss/tutoring-center/internal/models"
	"github.com/RubachokBoss/tutoring-center/internal/repository"
)

type assignmentRepository struct {
	db *DB
}

func NewAssignmentRepository(db *DB) repository.AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) Create(_ context.Context, assignment *models.Assignment) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	assignment.ID = r.db.nextID("assignments")
	row := *assignment
	r.db.assignments[row.ID] = &row
	return nil
}

func (r *assignmentRepository) GetByID(_ context.Context, id int64) (*models.Assignment, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	if a, ok := r.db.assignments[id]; ok {
		row := *a
		return &row, nil
	}
	return nil, nil
}

func (r *assignmentRepository) GetByClassAndStatus(_ context.Context, classGrade int, status models.AssignmentStatus) ([]models.Assignment, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	assignments := make([]models.Assignment, 0)
	for _, a := range r.db.assignments {
		if a.ClassGrade == classGrade && a.Status == status {
			assignments = append(assignments, *a)
		}
	}
	sort.Slice(assignments, func(i, j int) bool {
		return assignments[i].DueDate.After(assignments[j].DueDate)
	})
	return assignments, nil
}

func (r *assignmentRepository) GetAll(_ context.Context) ([]models.Assignment, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	assignments := make([]models.Assignment, 0, len(r.db.assignments))
	for _, a := range r.db.assignments {
		assignments = append(assignments, *a)
	}
	sort.Slice(assignments, func(i, j int) bool {
		return assignments[i].ID > assignments[j].ID
	})
	return assignments, nil
}

func (r *assignmentRepository) Update(_ context.Context, assignment *models.Assignment) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.assignments[assignment.ID]; !ok {
		return repository.ErrNotFound
	}
	row := *assignment
	r.db.assignments[row.ID] = &row
	return nil
}

func (r *assignmentRepository) Delete(_ context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.assignments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.db.assignments, id)
	return nil
}
