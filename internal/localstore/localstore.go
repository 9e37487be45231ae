// Package localstore is the file-backed fallback used when the remote store
// is unreachable. It mirrors the browser-side storage the web client keeps:
// a "tasks" key with the current task shape and a legacy "todos" key from an
// earlier version of the app, migrated on first load. Snapshots are kept in
// one file per user so degraded reads and writes never cross user boundaries.
package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/yukikurage/daily-planner-api/internal/models"
	"github.com/yukikurage/daily-planner-api/internal/utils"
)

const (
	tasksKey      = "tasks"
	legacyKey     = "todos"
	fileExtension = ".json"
)

// Store reads and writes per-user task snapshots under a data directory,
// one JSON file per user.
type Store struct {
	dir string
}

// New creates a Store rooted at dir, creating it if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// legacyTodo is the pre-rewrite item shape kept under the "todos" key.
type legacyTodo struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	IsComplete bool      `json:"isComplete"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (s *Store) tasksPath(userID uint64) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s_%d%s", tasksKey, userID, fileExtension))
}

func (s *Store) legacyPath() string {
	return filepath.Join(s.dir, legacyKey+fileExtension)
}

// LoadTasks returns the user's persisted snapshot. When the user has no
// "tasks" payload yet but a legacy "todos" payload exists, the legacy items
// are migrated into the task shape under that user, saved, and the legacy
// key is deleted. The legacy payload predates user scoping, so it belongs to
// whichever user loads it first.
func (s *Store) LoadTasks(userID uint64) ([]models.Task, error) {
	data, err := os.ReadFile(s.tasksPath(userID))
	if err == nil {
		var tasks []models.Task
		if err := json.Unmarshal(data, &tasks); err != nil {
			return nil, fmt.Errorf("failed to decode tasks payload: %w", err)
		}
		return tasks, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read tasks payload: %w", err)
	}

	tasks, migrated, err := s.migrateLegacy(userID)
	if err != nil {
		return nil, err
	}
	if !migrated {
		return []models.Task{}, nil
	}
	return tasks, nil
}

// SaveTasks replaces the user's persisted snapshot.
func (s *Store) SaveTasks(userID uint64, tasks []models.Task) error {
	if tasks == nil {
		tasks = []models.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("failed to encode tasks payload: %w", err)
	}
	if err := os.WriteFile(s.tasksPath(userID), data, 0o644); err != nil {
		return fmt.Errorf("failed to write tasks payload: %w", err)
	}
	return nil
}

// migrateLegacy converts a "todos" payload into tasks owned by userID and
// clears the legacy key. Completed items become Done, everything else
// Untouched; all items land on today with order following their legacy
// position.
func (s *Store) migrateLegacy(userID uint64) ([]models.Task, bool, error) {
	data, err := os.ReadFile(s.legacyPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read legacy payload: %w", err)
	}

	var todos []legacyTodo
	if err := json.Unmarshal(data, &todos); err != nil {
		return nil, false, fmt.Errorf("failed to decode legacy payload: %w", err)
	}

	today := utils.NormalizeDay(time.Now())
	tasks := make([]models.Task, 0, len(todos))
	for i, todo := range todos {
		status := models.TaskStatusUntouched
		if todo.IsComplete {
			status = models.TaskStatusDone
		}
		tasks = append(tasks, models.Task{
			ID:          todo.ID,
			UserID:      userID,
			FeatureName: todo.Title,
			Status:      status,
			Date:        today,
			OrderIndex:  i,
			CreatedAt:   todo.CreatedAt,
		})
	}

	if err := s.SaveTasks(userID, tasks); err != nil {
		return nil, false, err
	}
	if err := os.Remove(s.legacyPath()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, false, fmt.Errorf("failed to clear legacy payload: %w", err)
	}

	return tasks, true, nil
}
