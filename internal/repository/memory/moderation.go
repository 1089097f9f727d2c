package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/RubachokBoss/tutoring-center/internal/models"
	"github.com/RubachokBoss/tutoring-center/internal/repository"
)

type blockedStudentRepository struct {
	db *DB
}

func NewBlockedStudentRepository(db *DB) repository.BlockedStudentRepository {
	return &blockedStudentRepository{db: db}
}

func (r *blockedStudentRepository) Create(_ context.Context, blocked *models.BlockedStudent) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.blocked[blocked.StudentID]; ok {
		return repository.ErrDuplicate
	}

	blocked.ID = r.db.nextID("blocked_students")
	row := *blocked
	r.db.blocked[row.StudentID] = &row
	return nil
}

func (r *blockedStudentRepository) ExistsByStudentID(_ context.Context, studentID int64) (bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	_, ok := r.db.blocked[studentID]
	return ok, nil
}

func (r *blockedStudentRepository) DeleteByStudentID(_ context.Context, studentID int64) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	_, ok := r.db.blocked[studentID]
	delete(r.db.blocked, studentID)
	return ok, nil
}

type userRepository struct {
	db *DB
}

func NewUserRepository(db *DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(_ context.Context, user *models.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, u := range r.db.users {
		if strings.EqualFold(u.Email, user.Email) {
			return repository.ErrDuplicate
		}
	}

	user.ID = r.db.nextID("users")
	row := *user
	r.db.users[row.ID] = &row
	return nil
}

func (r *userRepository) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	if u, ok := r.db.users[id]; ok {
		row := *u
		return &row, nil
	}
	return nil, nil
}

func (r *userRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, u := range r.db.users {
		if strings.EqualFold(u.Email, email) {
			row := *u
			return &row, nil
		}
	}
	return nil, nil
}

type queryRepository struct {
	db *DB
}

func NewQueryRepository(db *DB) repository.QueryRepository {
	return &queryRepository{db: db}
}

func (r *queryRepository) Create(_ context.Context, q *models.Query) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	q.ID = r.db.nextID("queries")
	row := *q
	r.db.queries[row.ID] = &row
	return nil
}

func (r *queryRepository) GetByID(_ context.Context, id int64) (*models.Query, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	if q, ok := r.db.queries[id]; ok {
		row := *q
		return &row, nil
	}
	return nil, nil
}

func (r *queryRepository) GetByClassGrade(_ context.Context, classGrade int) ([]models.Query, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	queries := make([]models.Query, 0)
	for _, q := range r.db.queries {
		if q.ClassGrade == classGrade && !q.IsDeleted {
			queries = append(queries, *q)
		}
	}
	sort.Slice(queries, func(i, j int) bool {
		if queries[i].CreatedAt.Equal(queries[j].CreatedAt) {
			return queries[i].ID > queries[j].ID
		}
		return queries[i].CreatedAt.After(queries[j].CreatedAt)
	})
	return queries, nil
}

func (r *queryRepository) SoftDelete(_ context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	q, ok := r.db.queries[id]
	if !ok {
		return repository.ErrNotFound
	}
	q.IsDeleted = true
	return nil
}
