package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weddingplanner-backend/models"
	"weddingplanner-backend/repository"
	"weddingplanner-backend/testutil"
)

func TestSweepMarksOverdueTasksDelayed(t *testing.T) {
	db := testutil.DB(t)
	store := repository.NewStore(db)
	ctx := context.Background()
	now := time.Date(2026, 6, 1, 6, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	w := testutil.SeedWedding(t, ctx, db, "p1")
	deleted := testutil.SeedWedding(t, ctx, db, "p1")

	tasks := map[string]*models.Task{
		"overdue":     {WeddingID: w.ID, Title: "overdue", Status: models.TaskNotStarted, DueDate: &past},
		"in progress": {WeddingID: w.ID, Title: "in progress", Status: models.TaskInProgress, DueDate: &past},
		"done":        {WeddingID: w.ID, Title: "done", Status: models.TaskCompleted, DueDate: &past},
		"future":      {WeddingID: w.ID, Title: "future", Status: models.TaskNotStarted, DueDate: &future},
		"undated":     {WeddingID: w.ID, Title: "undated", Status: models.TaskNotStarted},
		"orphaned":    {WeddingID: deleted.ID, Title: "orphaned", Status: models.TaskNotStarted, DueDate: &past},
	}
	for _, task := range tasks {
		require.NoError(t, store.Tasks.Create(ctx, task))
	}
	require.NoError(t, store.Weddings.Delete(ctx, deleted.ID, deleted.ID))

	sweeper := NewTaskSweeper(db, testutil.Logger(t))
	sweeper.now = func() time.Time { return now }

	n, err := sweeper.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	want := map[string]string{
		"overdue":     models.TaskDelayed,
		"in progress": models.TaskDelayed,
		"done":        models.TaskCompleted,
		"future":      models.TaskNotStarted,
		"undated":     models.TaskNotStarted,
		"orphaned":    models.TaskNotStarted,
	}
	for name, task := range tasks {
		got, err := store.Tasks.GetByID(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, want[name], got.Status, name)
	}

	n, err = sweeper.Sweep(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStartSchedulerRejectsBadSpec(t *testing.T) {
	sweeper := NewTaskSweeper(testutil.DB(t), testutil.Logger(t))
	_, err := sweeper.StartScheduler("every now and then")
	assert.Error(t, err)

	c, err := sweeper.StartScheduler("0 6 * * *")
	require.NoError(t, err)
	c.Stop()
}
