package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/RubachokBoss/tutoring-center/internal/models"
	"github.com/RubachokBoss/tutoring-center/internal/repository/memory"
	"github.com/RubachokBoss/tutoring-center/internal/service"
)

var (
	teacher = models.Caller{UserID: 1, Role: models.RoleTeacher}
	student = models.Caller{UserID: 2, Role: models.RoleStudent}
	other   = models.Caller{UserID: 3, Role: models.RoleStudent}

	dueDate = time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []models.Event
	fail   bool
}

func (p *recordingPublisher) Publish(_ context.Context, event models.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("broker unavailable")
	}
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) Types() []models.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]models.EventType, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.Type)
	}
	return types
}

type fixture struct {
	ctx       context.Context
	clock     *fakeClock
	publisher *recordingPublisher
	svc       *service.Services
}

func newFixture() *fixture {
	clock := &fakeClock{now: time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC)}
	publisher := &recordingPublisher{}
	return &fixture{
		ctx:       context.Background(),
		clock:     clock,
		publisher: publisher,
		svc:       service.New(memory.NewSet(), publisher, clock.Now, zerolog.Nop()),
	}
}

// createAssignment publishes the reference assignment: due 2025-01-10, 50 marks.
func (f *fixture) createAssignment(t *testing.T) *models.AssignmentView {
	t.Helper()
	view, err := f.svc.Assignments.CreateAssignment(f.ctx, teacher, &models.CreateAssignmentRequest{
		Title:       "Fractions",
		Description: "Exercises 1-10",
		ClassGrade:  7,
		DueDate:     dueDate,
		TotalMarks:  50,
	})
	require.NoError(t, err)
	return view
}

func text(s string) *string { return &s }

func marks(n int) *int { return &n }
