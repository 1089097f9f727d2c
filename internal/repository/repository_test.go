package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RubachokBoss/tutoring-center/internal/models"
)

func newMock(t *testing.T) (sqlmock.Sqlmock, *Set) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return mock, NewPostgresSet(db, zerolog.Nop())
}

func TestSubmissionCreateTranslatesUniqueViolation(t *testing.T) {
	mock, set := newMock(t)

	mock.ExpectQuery("INSERT INTO submissions").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "uq_submissions_assignment_student"})

	err := set.Submissions.Create(context.Background(), &models.Submission{
		AssignmentID: 1,
		StudentID:    2,
		Status:       models.SubmissionStatusSubmitted,
		SubmittedAt:  time.Now(),
		UpdatedAt:    time.Now(),
	})

	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionCreateReturnsID(t *testing.T) {
	mock, set := newMock(t)

	mock.ExpectQuery("INSERT INTO submissions").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

	s := &models.Submission{AssignmentID: 1, StudentID: 2, Status: models.SubmissionStatusSubmitted}
	require.NoError(t, set.Submissions.Create(context.Background(), s))
	assert.Equal(t, int64(11), s.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionScanNullableColumns(t *testing.T) {
	mock, set := newMock(t)
	now := time.Date(2025, 1, 9, 23, 0, 0, 0, time.UTC)

	cols := []string{"id", "assignment_id", "student_id", "submission_text", "attachment_url",
		"submitted_at", "status", "is_late", "marks_obtained", "feedback", "updated_at"}
	mock.ExpectQuery("FROM submissions WHERE assignment_id").
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(int64(5), int64(1), int64(2), "answer", nil, now, "GRADED", false, int64(45), nil, now))

	got, err := set.Submissions.GetByAssignmentAndStudent(context.Background(), 1, 2)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.SubmissionStatusGraded, got.Status)
	require.NotNil(t, got.SubmissionText)
	assert.Equal(t, "answer", *got.SubmissionText)
	assert.Nil(t, got.AttachmentURL)
	require.NotNil(t, got.MarksObtained)
	assert.Equal(t, 45, *got.MarksObtained)
	assert.Nil(t, got.Feedback)
}

func TestAssignmentGetByIDMissing(t *testing.T) {
	mock, set := newMock(t)

	mock.ExpectQuery("FROM assignments WHERE id").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	got, err := set.Assignments.GetByID(context.Background(), 9)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAssignmentDeleteMissing(t *testing.T) {
	mock, set := newMock(t)

	mock.ExpectExec("DELETE FROM assignments").
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, set.Assignments.Delete(context.Background(), 9), ErrNotFound)
}

func TestLateRequestRespond(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("pending request is updated", func(t *testing.T) {
		mock, set := newMock(t)
		mock.ExpectExec("UPDATE late_submission_requests").
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := set.LateRequests.Respond(ctx, 3, models.LateRequestStatusApproved, nil, now)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already responded", func(t *testing.T) {
		mock, set := newMock(t)
		mock.ExpectExec("UPDATE late_submission_requests").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		ok, err := set.LateRequests.Respond(ctx, 3, models.LateRequestStatusRejected, nil, now)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing request", func(t *testing.T) {
		mock, set := newMock(t)
		mock.ExpectExec("UPDATE late_submission_requests").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		_, err := set.LateRequests.Respond(ctx, 3, models.LateRequestStatusApproved, nil, now)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestBlockedStudentDuplicate(t *testing.T) {
	mock, set := newMock(t)

	mock.ExpectQuery("INSERT INTO blocked_students").
		WillReturnError(&pq.Error{Code: "23505"})

	err := set.BlockedStudents.Create(context.Background(), &models.BlockedStudent{StudentID: 4, Reason: "spam"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestPostgresSetHealth(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	set := NewPostgresSet(db, zerolog.Nop())

	mock.ExpectPing()
	assert.NoError(t, set.Health.Ping(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	assert.Error(t, set.Health.Ping(context.Background()))

	assert.NoError(t, mock.ExpectationsWereMet())
}
