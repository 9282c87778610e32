package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard-dev/taskboard/internal/common"
	"github.com/taskboard-dev/taskboard/internal/server/store"
)

func newTaskFixture(t *testing.T) (*TaskService, *fakeClock) {
	t.Helper()

	clk := newFakeClock()
	svc := NewTaskService(store.NewMemoryGateway(), newTestLogger())
	svc.now = clk.Now

	return svc, clk
}

func TestTaskService_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	svc, clk := newTaskFixture(t)

	created, err := svc.Create(ctx, "owner-1", "groceries", "milk, eggs")
	require.NoError(t, err)
	require.NotEmpty(t, created.TaskID)

	got, err := svc.Get(ctx, "owner-1", created.TaskID)
	require.NoError(t, err)

	assert.Equal(t, "groceries", got.Title)
	assert.Equal(t, "milk, eggs", got.Description)
	assert.False(t, got.Done)
	assert.Equal(t, "owner-1", got.OwnerID())
	assert.Equal(t, clk.Now().UnixMilli(), got.CreatedAt)
}

func TestTaskService_List(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTaskFixture(t)

	tasks, err := svc.List(ctx, "owner-1")
	require.NoError(t, err)
	assert.Empty(t, tasks)

	first, err := svc.Create(ctx, "owner-1", "first", "")
	require.NoError(t, err)
	second, err := svc.Create(ctx, "owner-1", "second", "")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "owner-2", "other owner", "")
	require.NoError(t, err)

	tasks, err = svc.List(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	ids := []string{tasks[0].TaskID, tasks[1].TaskID}
	assert.Contains(t, ids, first.TaskID)
	assert.Contains(t, ids, second.TaskID)
	for _, task := range tasks {
		assert.Equal(t, "owner-1", task.OwnerID())
	}
}

func TestTaskService_Update(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTaskFixture(t)

	task, err := svc.Create(ctx, "owner-1", "groceries", "milk")
	require.NoError(t, err)

	strPtr := func(s string) *string { return &s }
	boolPtr := func(b bool) *bool { return &b }

	t.Run("unchanged title with changed done flag", func(t *testing.T) {
		err := svc.Update(ctx, "owner-1", task.TaskID, TaskUpdate{
			Title: strPtr("groceries"),
			Done:  boolPtr(true),
		})
		require.NoError(t, err)

		got, err := svc.Get(ctx, "owner-1", task.TaskID)
		require.NoError(t, err)
		assert.Equal(t, "groceries", got.Title)
		assert.Equal(t, "milk", got.Description)
		assert.True(t, got.Done)
	})

	t.Run("same done flag again", func(t *testing.T) {
		err := svc.Update(ctx, "owner-1", task.TaskID, TaskUpdate{Done: boolPtr(true)})
		assert.ErrorIs(t, err, common.ErrNothingToUpdate)
	})

	t.Run("flip back to not done", func(t *testing.T) {
		err := svc.Update(ctx, "owner-1", task.TaskID, TaskUpdate{Done: boolPtr(false)})
		require.NoError(t, err)

		got, err := svc.Get(ctx, "owner-1", task.TaskID)
		require.NoError(t, err)
		assert.False(t, got.Done)
	})

	t.Run("clear the description", func(t *testing.T) {
		err := svc.Update(ctx, "owner-1", task.TaskID, TaskUpdate{Description: strPtr("")})
		require.NoError(t, err)

		got, err := svc.Get(ctx, "owner-1", task.TaskID)
		require.NoError(t, err)
		assert.Empty(t, got.Description)
	})

	t.Run("unknown task", func(t *testing.T) {
		err := svc.Update(ctx, "owner-1", "no-such-task", TaskUpdate{Title: strPtr("X")})
		assert.ErrorIs(t, err, common.ErrorNotFound)
	})

	t.Run("wrong owner", func(t *testing.T) {
		err := svc.Update(ctx, "owner-2", task.TaskID, TaskUpdate{Title: strPtr("X")})
		assert.ErrorIs(t, err, common.ErrorNotFound)
	})
}

func TestTaskService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTaskFixture(t)

	task, err := svc.Create(ctx, "owner-1", "groceries", "milk")
	require.NoError(t, err)

	prior, err := svc.Delete(ctx, "owner-1", task.TaskID)
	require.NoError(t, err)
	assert.Equal(t, "groceries", prior.Title)
	assert.Equal(t, task.TaskID, prior.TaskID)

	_, err = svc.Get(ctx, "owner-1", task.TaskID)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = svc.Delete(ctx, "owner-1", task.TaskID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
