package localstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/daily-planner-api/internal/models"
	"github.com/yukikurage/daily-planner-api/internal/utils"
)

const testUserID uint64 = 1

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := New(dir)
	require.NoError(t, err)
	return store, dir
}

func TestLoadTasks_Empty(t *testing.T) {
	store, _ := newTestStore(t)

	tasks, err := store.LoadTasks(testUserID)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestSaveAndLoadTasks(t *testing.T) {
	store, _ := newTestStore(t)

	saved := []models.Task{
		{
			ID:          "task-1",
			UserID:      testUserID,
			FeatureName: "write report",
			Status:      models.TaskStatusInProgress,
			Date:        utils.NormalizeDay(time.Now()),
			OrderIndex:  0,
		},
	}
	require.NoError(t, store.SaveTasks(testUserID, saved))

	loaded, err := store.LoadTasks(testUserID)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "task-1", loaded[0].ID)
	assert.Equal(t, models.TaskStatusInProgress, loaded[0].Status)
}

func TestLoadTasks_ScopedPerUser(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.SaveTasks(1, []models.Task{
		{ID: "mine", UserID: 1, FeatureName: "user 1 task", Status: models.TaskStatusUntouched},
	}))

	// Another user's snapshot is empty, not user 1's rows.
	other, err := store.LoadTasks(2)
	require.NoError(t, err)
	assert.Empty(t, other)

	// And saving for user 2 leaves user 1's snapshot intact.
	require.NoError(t, store.SaveTasks(2, []models.Task{
		{ID: "theirs", UserID: 2, FeatureName: "user 2 task", Status: models.TaskStatusUntouched},
	}))

	mine, err := store.LoadTasks(1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "mine", mine[0].ID)
}

func TestLoadTasks_MigratesLegacyTodos(t *testing.T) {
	store, dir := newTestStore(t)

	createdAt := time.Date(2024, time.June, 1, 9, 30, 0, 0, time.UTC)
	legacy := []map[string]any{
		{
			"id":         "1",
			"title":      "x",
			"isComplete": true,
			"createdAt":  createdAt.Format(time.RFC3339),
		},
	}
	data, err := json.Marshal(legacy)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "todos.json"), data, 0o644))

	tasks, err := store.LoadTasks(testUserID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	task := tasks[0]
	assert.Equal(t, "1", task.ID)
	assert.Equal(t, testUserID, task.UserID)
	assert.Equal(t, "x", task.FeatureName)
	assert.Equal(t, models.TaskStatusDone, task.Status)
	assert.True(t, utils.SameDay(task.Date, time.Now()))
	assert.Equal(t, 0, task.OrderIndex)
	assert.True(t, task.CreatedAt.Equal(createdAt))

	// Legacy key is cleared after migration.
	_, err = os.Stat(filepath.Join(dir, "todos.json"))
	assert.True(t, os.IsNotExist(err))

	// Subsequent loads read the migrated payload.
	again, err := store.LoadTasks(testUserID)
	require.NoError(t, err)
	require.Len(t, again, 1)
	assert.Equal(t, models.TaskStatusDone, again[0].Status)
}

func TestLoadTasks_LegacyOrderFollowsPosition(t *testing.T) {
	store, dir := newTestStore(t)

	legacy := []map[string]any{
		{"id": "a", "title": "first", "isComplete": false, "createdAt": time.Now().Format(time.RFC3339)},
		{"id": "b", "title": "second", "isComplete": true, "createdAt": time.Now().Format(time.RFC3339)},
		{"id": "c", "title": "third", "isComplete": false, "createdAt": time.Now().Format(time.RFC3339)},
	}
	data, err := json.Marshal(legacy)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "todos.json"), data, 0o644))

	tasks, err := store.LoadTasks(testUserID)
	require.NoError(t, err)
	require.Len(t, tasks, 3)

	for i, task := range tasks {
		assert.Equal(t, i, task.OrderIndex)
	}
	assert.Equal(t, models.TaskStatusUntouched, tasks[0].Status)
	assert.Equal(t, models.TaskStatusDone, tasks[1].Status)
}

func TestSaveTasks_NilBecomesEmptyArray(t *testing.T) {
	store, dir := newTestStore(t)

	require.NoError(t, store.SaveTasks(testUserID, nil))

	data, err := os.ReadFile(filepath.Join(dir, "tasks_1.json"))
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}
