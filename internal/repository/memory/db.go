// Package memory holds in-process stores that mirror the Postgres
// repositories, including their natural-key uniqueness rules.
package memory

import (
	"context"
	"sync"

	"github.com/RubachokBoss/tutoring-center/internal/models"
	"github.com/RubachokBoss/tutoring-center/internal/repository"
)

// DB is a single-lock database; every check-then-insert runs under mu.
type DB struct {
	mu sync.RWMutex

	assignments  map[int64]*models.Assignment
	submissions  map[int64]*models.Submission
	lateRequests map[int64]*models.LateSubmissionRequest
	blocked      map[int64]*models.BlockedStudent
	users        map[int64]*models.User
	queries      map[int64]*models.Query

	seq map[string]int64
}

func Open() *DB {
	return &DB{
		assignments:  make(map[int64]*models.Assignment),
		submissions:  make(map[int64]*models.Submission),
		lateRequests: make(map[int64]*models.LateSubmissionRequest),
		blocked:      make(map[int64]*models.BlockedStudent),
		users:        make(map[int64]*models.User),
		queries:      make(map[int64]*models.Query),
		seq:          make(map[string]int64),
	}
}

// nextID must be called with mu held for writing.
func (db *DB) nextID(table string) int64 {
	db.seq[table]++
	return db.seq[table]
}

// Ping always succeeds; the store lives in process.
func (db *DB) Ping(context.Context) error {
	return nil
}

// NewSet returns every store backed by one fresh DB.
func NewSet() *repository.Set {
	db := Open()
	return &repository.Set{
		Assignments:     NewAssignmentRepository(db),
		Submissions:     NewSubmissionRepository(db),
		LateRequests:    NewLateRequestRepository(db),
		BlockedStudents: NewBlockedStudentRepository(db),
		Users:           NewUserRepository(db),
		Queries:         NewQueryRepository(db),
		Health:          db,
	}
}
