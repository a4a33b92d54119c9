package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskflow/internal/common"
	"github.com/dmitrijs2005/taskflow/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestTaskLifecycle(t *testing.T) {
	e := newEnv(t)
	fixed := time.Date(2024, 5, 1, 9, 30, 45, 123456789, time.UTC)
	e.tasks.now = func() time.Time { return fixed }

	a := e.signup(t, "a@x.com", "pw123")
	ctxA := e.as(a.Token)

	task, err := e.tasks.Create(ctxA, "Buy milk")
	require.NoError(t, err)
	assert.False(t, task.Completed)
	assert.Equal(t, a.User.ID, task.OwnerID)
	assert.Equal(t, "2024-05-01T09:30:45.123Z", task.CreatedAtString())

	updated, err := e.tasks.Update(ctxA, task.ID, models.TaskPatch{Completed: ptr(true)})
	require.NoError(t, err)
	assert.True(t, updated.Completed)
	assert.Equal(t, "Buy milk", updated.Title)

	renamed, err := e.tasks.Update(ctxA, task.ID, models.TaskPatch{Title: ptr("Buy oat milk")})
	require.NoError(t, err)
	assert.True(t, renamed.Completed)
	assert.Equal(t, "Buy oat milk", renamed.Title)

	list, err := e.tasks.List(ctxA)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, renamed, list[0])

	b := e.signup(t, "b@x.com", "pw456")
	listB, err := e.tasks.List(e.as(b.Token))
	require.NoError(t, err)
	assert.Empty(t, listB)

	ok, err := e.tasks.Delete(ctxA, task.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = e.tasks.Delete(ctxA, task.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestTasks_OwnershipIsolation(t *testing.T) {
	e := newEnv(t)
	a := e.signup(t, "a@x.com", "pw123")
	b := e.signup(t, "b@x.com", "pw456")
	ctxA, ctxB := e.as(a.Token), e.as(b.Token)

	task, err := e.tasks.Create(ctxA, "secret plan")
	require.NoError(t, err)

	listB, err := e.tasks.List(ctxB)
	require.NoError(t, err)
	assert.Empty(t, listB)

	_, err = e.tasks.Update(ctxB, task.ID, models.TaskPatch{Completed: ptr(true)})
	require.ErrorIs(t, err, common.ErrorNotFound)

	_, err = e.tasks.Update(ctxB, task.ID, models.TaskPatch{})
	require.ErrorIs(t, err, common.ErrorNotFound)

	_, err = e.tasks.Delete(ctxB, task.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)

	// unchanged for the owner
	still, err := e.tasks.List(ctxA)
	require.NoError(t, err)
	require.Len(t, still, 1)
	assert.False(t, still[0].Completed)
}

func TestTasks_RequireAuthentication(t *testing.T) {
	e := newEnv(t)
	a := e.signup(t, "a@x.com", "pw123")
	task, err := e.tasks.Create(e.as(a.Token), "Buy milk")
	require.NoError(t, err)

	for _, tok := range []string{"", "garbage"} {
		ctx := e.as(tok)

		_, err := e.tasks.List(ctx)
		assert.ErrorIs(t, err, common.ErrorUnauthenticated)

		_, err = e.tasks.Create(ctx, "x")
		assert.ErrorIs(t, err, common.ErrorUnauthenticated)

		_, err = e.tasks.Update(ctx, task.ID, models.TaskPatch{Completed: ptr(true)})
		assert.ErrorIs(t, err, common.ErrorUnauthenticated)

		_, err = e.tasks.Delete(ctx, task.ID)
		assert.ErrorIs(t, err, common.ErrorUnauthenticated)
	}

	// the guard runs before validation
	_, err = e.tasks.Create(context.Background(), "")
	assert.ErrorIs(t, err, common.ErrorUnauthenticated)
}

func TestTasks_Validation(t *testing.T) {
	e := newEnv(t)
	a := e.signup(t, "a@x.com", "pw123")
	ctx := e.as(a.Token)

	_, err := e.tasks.Create(ctx, "  ")
	require.ErrorIs(t, err, common.ErrorValidation)

	task, err := e.tasks.Create(ctx, "Buy milk")
	require.NoError(t, err)

	_, err = e.tasks.Update(ctx, task.ID, models.TaskPatch{Title: ptr("")})
	require.ErrorIs(t, err, common.ErrorValidation)

	unchanged, err := e.tasks.Update(ctx, task.ID, models.TaskPatch{})
	require.NoError(t, err)
	assert.Equal(t, task, unchanged)
}

func TestTasks_ListOrder(t *testing.T) {
	e := newEnv(t)
	a := e.signup(t, "a@x.com", "pw123")
	ctx := e.as(a.Token)

	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	e.tasks.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	for _, title := range []string{"one", "two", "three"} {
		_, err := e.tasks.Create(ctx, title)
		require.NoError(t, err)
	}

	list, err := e.tasks.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "one", list[0].Title)
	assert.Equal(t, "three", list[2].Title)
}
