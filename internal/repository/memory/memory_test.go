package memory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RubachokBoss/tutoring-center/internal/models"
	"github.com/RubachokBoss/tutoring-center/internal/repository"
)

func TestSubmissionCreateIsUniquePerPair(t *testing.T) {
	ctx := context.Background()
	repo := NewSubmissionRepository(Open())

	const workers = 16
	var (
		wg        sync.WaitGroup
		succeeded int32
		dupes     int32
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.Create(ctx, &models.Submission{
				AssignmentID: 1,
				StudentID:    7,
				Status:       models.SubmissionStatusSubmitted,
				SubmittedAt:  time.Now(),
			})
			switch {
			case err == nil:
				atomic.AddInt32(&succeeded, 1)
			case errors.Is(err, repository.ErrDuplicate):
				atomic.AddInt32(&dupes, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), succeeded)
	assert.Equal(t, int32(workers-1), dupes)

	// a different student on the same assignment is unaffected
	require.NoError(t, repo.Create(ctx, &models.Submission{AssignmentID: 1, StudentID: 8}))
}

func TestLateRequestRespondOnce(t *testing.T) {
	ctx := context.Background()
	repo := NewLateRequestRepository(Open())

	req := &models.LateSubmissionRequest{
		AssignmentID: 3,
		StudentID:    4,
		Reason:       "hospital visit",
		Status:       models.LateRequestStatusPending,
		RequestedAt:  time.Now(),
	}
	require.NoError(t, repo.Create(ctx, req))
	assert.ErrorIs(t, repo.Create(ctx, &models.LateSubmissionRequest{AssignmentID: 3, StudentID: 4}), repository.ErrDuplicate)

	var (
		wg   sync.WaitGroup
		wins int32
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.Respond(ctx, req.ID, models.LateRequestStatusApproved, nil, time.Now())
			if err == nil && ok {
				atomic.AddInt32(&wins, 1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), wins)

	got, err := repo.GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LateRequestStatusApproved, got.Status)
	assert.NotNil(t, got.RespondedAt)

	_, err = repo.Respond(ctx, 999, models.LateRequestStatusApproved, nil, time.Now())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestBlockedStudents(t *testing.T) {
	ctx := context.Background()
	repo := NewBlockedStudentRepository(Open())

	require.NoError(t, repo.Create(ctx, &models.BlockedStudent{StudentID: 5, Reason: "spam"}))
	assert.ErrorIs(t, repo.Create(ctx, &models.BlockedStudent{StudentID: 5, Reason: "again"}), repository.ErrDuplicate)

	blocked, err := repo.ExistsByStudentID(ctx, 5)
	require.NoError(t, err)
	assert.True(t, blocked)

	removed, err := repo.DeleteByStudentID(ctx, 5)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.DeleteByStudentID(ctx, 5)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestAssignmentsByClassOrderedByDueDate(t *testing.T) {
	ctx := context.Background()
	repo := NewAssignmentRepository(Open())
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, grade := range []int{7, 7, 8, 7} {
		require.NoError(t, repo.Create(ctx, &models.Assignment{
			Title:      "a",
			ClassGrade: grade,
			DueDate:    base.AddDate(0, 0, i),
			TotalMarks: 10,
			Status:     models.AssignmentStatusPublished,
		}))
	}
	require.NoError(t, repo.Create(ctx, &models.Assignment{ClassGrade: 7, Status: models.AssignmentStatusDraft, DueDate: base}))

	got, err := repo.GetByClassAndStatus(ctx, 7, models.AssignmentStatusPublished)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.True(t, got[0].DueDate.After(got[1].DueDate))
	assert.True(t, got[1].DueDate.After(got[2].DueDate))

	assert.ErrorIs(t, repo.Delete(ctx, 42), repository.ErrNotFound)
	require.NoError(t, repo.Delete(ctx, got[0].ID))
	missing, err := repo.GetByID(ctx, got[0].ID)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
