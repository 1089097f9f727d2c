package service_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RubachokBoss/tutoring-center/internal/errs"
	"github.com/RubachokBoss/tutoring-center/internal/models"
)

func TestCreateLateRequest(t *testing.T) {
	f := newFixture()
	a := f.createAssignment(t)
	req := &models.CreateLateRequestRequest{AssignmentID: a.ID, Reason: "family emergency, sorry"}

	_, err := f.svc.LateRequests.CreateLateRequest(f.ctx, student, req)
	assert.Equal(t, errs.KindInvalidState, errs.KindOf(err))
	assert.Equal(t, "assignment is not yet overdue", errs.Message(err))

	f.clock.Set(dueDate)
	_, err = f.svc.LateRequests.CreateLateRequest(f.ctx, student, req)
	assert.Equal(t, errs.KindInvalidState, errs.KindOf(err), "due date itself is not overdue")

	f.clock.Set(dueDate.Add(time.Second))
	created, err := f.svc.LateRequests.CreateLateRequest(f.ctx, student, req)
	require.NoError(t, err)
	assert.Equal(t, models.LateRequestStatusPending, created.Status)
	assert.Equal(t, f.clock.Now(), created.RequestedAt)
	assert.Nil(t, created.RespondedAt)

	_, err = f.svc.LateRequests.CreateLateRequest(f.ctx, student, req)
	assert.Equal(t, errs.KindConflict, errs.KindOf(err))

	_, err = f.svc.LateRequests.CreateLateRequest(f.ctx, teacher, req)
	assert.Equal(t, errs.KindPermissionDenied, errs.KindOf(err))

	_, err = f.svc.LateRequests.CreateLateRequest(f.ctx, other, &models.CreateLateRequestRequest{AssignmentID: 404, Reason: "missing assignment"})
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

func TestRespondLateRequestIsTerminal(t *testing.T) {
	f := newFixture()
	a := f.createAssignment(t)
	f.clock.Set(dueDate.Add(24 * time.Hour))

	req, err := f.svc.LateRequests.CreateLateRequest(f.ctx, student, &models.CreateLateRequestRequest{
		AssignmentID: a.ID,
		Reason:       "was in hospital all week",
	})
	require.NoError(t, err)

	_, err = f.svc.LateRequests.RespondLateRequest(f.ctx, student, req.ID, &models.RespondLateRequestRequest{Status: models.LateRequestStatusApproved})
	assert.Equal(t, errs.KindPermissionDenied, errs.KindOf(err))

	_, err = f.svc.LateRequests.RespondLateRequest(f.ctx, teacher, req.ID, &models.RespondLateRequestRequest{Status: models.LateRequestStatusPending})
	assert.Equal(t, errs.KindInvalidArgument, errs.KindOf(err))

	_, err = f.svc.LateRequests.RespondLateRequest(f.ctx, teacher, 999, &models.RespondLateRequestRequest{Status: models.LateRequestStatusApproved})
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))

	rejected, err := f.svc.LateRequests.RespondLateRequest(f.ctx, teacher, req.ID, &models.RespondLateRequestRequest{
		Status:          models.LateRequestStatusRejected,
		TeacherResponse: text("no documentation"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.LateRequestStatusRejected, rejected.Status)
	assert.Equal(t, "no documentation", *rejected.TeacherResponse)

	for _, decision := range []models.LateRequestStatus{models.LateRequestStatusApproved, models.LateRequestStatusRejected} {
		_, err = f.svc.LateRequests.RespondLateRequest(f.ctx, teacher, req.ID, &models.RespondLateRequestRequest{Status: decision})
		assert.Equal(t, errs.KindInvalidState, errs.KindOf(err))
		assert.Equal(t, "request has already been responded to", errs.Message(err))
	}

	ok, err := f.svc.LateRequests.IsLateApproved(f.ctx, a.ID, student.UserID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = f.svc.Submissions.SubmitAssignment(f.ctx, student, &models.SubmitAssignmentRequest{AssignmentID: a.ID, SubmissionText: text("x")})
	assert.Equal(t, errs.KindPermissionDenied, errs.KindOf(err))
}

func TestConcurrentResponsesYieldOneSuccess(t *testing.T) {
	f := newFixture()
	a := f.createAssignment(t)
	f.clock.Set(dueDate.Add(time.Hour))

	req, err := f.svc.LateRequests.CreateLateRequest(f.ctx, student, &models.CreateLateRequestRequest{
		AssignmentID: a.ID,
		Reason:       "power outage at home",
	})
	require.NoError(t, err)

	var (
		wg   sync.WaitGroup
		wins int32
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.LateRequests.RespondLateRequest(f.ctx, teacher, req.ID, &models.RespondLateRequestRequest{
				Status: models.LateRequestStatusApproved,
			})
			if err == nil {
				atomic.AddInt32(&wins, 1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), wins)
}

func TestIsLateApprovedWithoutRequest(t *testing.T) {
	f := newFixture()
	a := f.createAssignment(t)

	ok, err := f.svc.LateRequests.IsLateApproved(f.ctx, a.ID, student.UserID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLateRequestListings(t *testing.T) {
	f := newFixture()
	a := f.createAssignment(t)
	f.clock.Set(dueDate.Add(time.Hour))

	first, err := f.svc.LateRequests.CreateLateRequest(f.ctx, student, &models.CreateLateRequestRequest{AssignmentID: a.ID, Reason: "first student reason"})
	require.NoError(t, err)
	_, err = f.svc.LateRequests.CreateLateRequest(f.ctx, other, &models.CreateLateRequestRequest{AssignmentID: a.ID, Reason: "second student reason"})
	require.NoError(t, err)
	_, err = f.svc.LateRequests.RespondLateRequest(f.ctx, teacher, first.ID, &models.RespondLateRequestRequest{Status: models.LateRequestStatusApproved})
	require.NoError(t, err)

	pending, err := f.svc.LateRequests.ListPendingRequests(f.ctx, teacher)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, other.UserID, pending[0].StudentID)
	assert.Equal(t, "Fractions", pending[0].AssignmentTitle)
	assert.Equal(t, "Unknown", pending[0].StudentName)

	all, err := f.svc.LateRequests.ListAllRequests(f.ctx, teacher)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = f.svc.LateRequests.ListPendingRequests(f.ctx, student)
	assert.Equal(t, errs.KindPermissionDenied, errs.KindOf(err))

	mine, err := f.svc.LateRequests.GetMyRequest(f.ctx, student, a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LateRequestStatusApproved, mine.Status)

	_, err = f.svc.LateRequests.GetMyRequest(f.ctx, student, 999)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))

	require.NoError(t, f.svc.Assignments.DeleteAssignment(f.ctx, teacher, a.ID))
	all, err = f.svc.LateRequests.ListAllRequests(f.ctx, teacher)
	require.NoError(t, err)
	for _, v := range all {
		assert.Equal(t, "Unknown", v.AssignmentTitle)
	}
}
