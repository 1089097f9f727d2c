package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RubachokBoss/tutoring-center/internal/errs"
	"github.com/RubachokBoss/tutoring-center/internal/models"
)

// createStudent registers a grade 7 student in the directory.
func (f *fixture) createStudent(t *testing.T, email string) *models.User {
	t.Helper()
	user, err := f.svc.Users.CreateUser(f.ctx, teacher, &models.CreateUserRequest{
		Email:      email,
		FullName:   "Sam Student",
		Role:       models.RoleStudent,
		ClassGrade: marks(7),
	})
	require.NoError(t, err)
	return user
}

func TestBlockAndUnblock(t *testing.T) {
	f := newFixture()
	target := f.createStudent(t, "kid@example.com")
	block := &models.BlockStudentRequest{StudentID: target.ID, Reason: "spam"}

	_, err := f.svc.Moderation.BlockStudent(f.ctx, student, block)
	assert.Equal(t, errs.KindPermissionDenied, errs.KindOf(err))

	row, err := f.svc.Moderation.BlockStudent(f.ctx, teacher, block)
	require.NoError(t, err)
	assert.Equal(t, f.clock.Now(), row.BlockedAt)

	blocked, err := f.svc.Moderation.IsBlocked(f.ctx, target.ID)
	require.NoError(t, err)
	assert.True(t, blocked)

	_, err = f.svc.Moderation.BlockStudent(f.ctx, teacher, block)
	assert.Equal(t, errs.KindConflict, errs.KindOf(err))

	require.NoError(t, f.svc.Moderation.UnblockStudent(f.ctx, teacher, target.ID))
	blocked, err = f.svc.Moderation.IsBlocked(f.ctx, target.ID)
	require.NoError(t, err)
	assert.False(t, blocked)

	assert.NoError(t, f.svc.Moderation.UnblockStudent(f.ctx, teacher, other.UserID))

	assert.Equal(t, []models.EventType{models.EventStudentBlocked, models.EventStudentUnblocked}, f.publisher.Types())
}

func TestBlockRequiresReason(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Moderation.BlockStudent(f.ctx, teacher, &models.BlockStudentRequest{StudentID: 2, Reason: "  "})
	assert.Equal(t, errs.KindInvalidArgument, errs.KindOf(err))
}

func TestBlockStudentChecksTarget(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Moderation.BlockStudent(f.ctx, teacher, &models.BlockStudentRequest{StudentID: 424242, Reason: "spam"})
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	assert.Equal(t, "student not found", errs.Message(err))

	colleague, err := f.svc.Users.CreateUser(f.ctx, teacher, &models.CreateUserRequest{
		Email:    "colleague@example.com",
		FullName: "Pat Teacher",
		Role:     models.RoleTeacher,
	})
	require.NoError(t, err)

	_, err = f.svc.Moderation.BlockStudent(f.ctx, teacher, &models.BlockStudentRequest{StudentID: colleague.ID, Reason: "spam"})
	assert.Equal(t, errs.KindInvalidArgument, errs.KindOf(err))
	assert.Equal(t, "can only block students", errs.Message(err))

	for _, id := range []int64{424242, colleague.ID} {
		blocked, err := f.svc.Moderation.IsBlocked(f.ctx, id)
		require.NoError(t, err)
		assert.False(t, blocked)
	}
	assert.Empty(t, f.publisher.Types())
}

func TestQueriesHonourModerationGate(t *testing.T) {
	f := newFixture()

	user, err := f.svc.Users.CreateUser(f.ctx, teacher, &models.CreateUserRequest{
		Email:      "kid@example.com",
		FullName:   "Sam Student",
		Role:       models.RoleStudent,
		ClassGrade: marks(9),
	})
	require.NoError(t, err)
	asker := models.Caller{UserID: user.ID, Role: models.RoleStudent}
	post := &models.CreateQueryRequest{Title: "Question 4", Content: "How do I start?"}

	q, err := f.svc.Queries.CreateQuery(f.ctx, asker, post)
	require.NoError(t, err)
	assert.Equal(t, "Sam Student", q.StudentName)
	assert.Equal(t, 9, q.ClassGrade)

	_, err = f.svc.Moderation.BlockStudent(f.ctx, teacher, &models.BlockStudentRequest{StudentID: user.ID, Reason: "abuse"})
	require.NoError(t, err)

	_, err = f.svc.Queries.CreateQuery(f.ctx, asker, post)
	assert.Equal(t, errs.KindPermissionDenied, errs.KindOf(err))
	assert.Equal(t, "you are blocked from posting queries", errs.Message(err))

	require.NoError(t, f.svc.Moderation.UnblockStudent(f.ctx, teacher, user.ID))
	_, err = f.svc.Queries.CreateQuery(f.ctx, asker, post)
	require.NoError(t, err)

	queries, err := f.svc.Queries.ListQueriesByClass(f.ctx, teacher, 9)
	require.NoError(t, err)
	assert.Len(t, queries, 2)

	require.NoError(t, f.svc.Queries.DeleteQuery(f.ctx, teacher, q.ID))
	assert.Equal(t, errs.KindNotFound, errs.KindOf(f.svc.Queries.DeleteQuery(f.ctx, teacher, 999)))
	assert.Equal(t, errs.KindPermissionDenied, errs.KindOf(f.svc.Queries.DeleteQuery(f.ctx, asker, q.ID)))

	queries, err = f.svc.Queries.ListQueriesByClass(f.ctx, asker, 9)
	require.NoError(t, err)
	assert.Len(t, queries, 1)
}

func TestCreateQueryUnknownStudent(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Queries.CreateQuery(f.ctx, student, &models.CreateQueryRequest{Title: "t", Content: "c"})
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

func TestUsers(t *testing.T) {
	f := newFixture()
	req := &models.CreateUserRequest{Email: "t@example.com", FullName: "Teach", Role: models.RoleTeacher}

	_, err := f.svc.Users.CreateUser(f.ctx, student, req)
	assert.Equal(t, errs.KindPermissionDenied, errs.KindOf(err))

	created, err := f.svc.Users.CreateUser(f.ctx, teacher, req)
	require.NoError(t, err)
	assert.Nil(t, created.ClassGrade)

	_, err = f.svc.Users.CreateUser(f.ctx, teacher, &models.CreateUserRequest{Email: "T@example.com", FullName: "Dup", Role: models.RoleTeacher})
	assert.Equal(t, errs.KindConflict, errs.KindOf(err))

	_, err = f.svc.Users.CreateUser(f.ctx, teacher, &models.CreateUserRequest{Email: "s@example.com", FullName: "No Grade", Role: models.RoleStudent})
	assert.Equal(t, errs.KindInvalidArgument, errs.KindOf(err))

	got, err := f.svc.Users.GetUser(f.ctx, teacher, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "t@example.com", got.Email)

	_, err = f.svc.Users.GetUser(f.ctx, teacher, 999)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))

	_, err = f.svc.Users.GetUser(f.ctx, student, created.ID)
	assert.Equal(t, errs.KindPermissionDenied, errs.KindOf(err))
}
