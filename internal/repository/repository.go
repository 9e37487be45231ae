package repository

import (
	"time"

	"github.com/yukikurage/daily-planner-api/internal/models"
	"github.com/yukikurage/daily-planner-api/internal/utils"
)

// TaskRepository defines the interface for task data access. It is the
// boundary to the remote canonical store: every method can fail, and callers
// own the optimistic-view bookkeeping around those failures.
type TaskRepository interface {
	// Create persists a new task
	Create(task *models.Task) error

	// FindByID finds one of the user's tasks by ID
	FindByID(userID uint64, id string) (*models.Task, error)

	// ListByUser returns all of the user's tasks ordered by day, then order_index
	ListByUser(userID uint64) ([]models.Task, error)

	// Update persists the full row
	Update(task *models.Task) error

	// UpdateOrderIndex sets order_index on a single row. Reorder issues one
	// call per row; there is deliberately no multi-row transaction.
	UpdateOrderIndex(userID uint64, id string, orderIndex int) error

	// Delete removes a task permanently
	Delete(userID uint64, id string) error
}

// ApplicationRepository defines the interface for job application data access
type ApplicationRepository interface {
	Create(app *models.JobApplication) error
	FindByID(userID uint64, id string) (*models.JobApplication, error)

	// ListByUser returns one page of the user's applications plus the total
	// row count for the filter
	ListByUser(userID uint64, status *models.ApplicationStatus, params utils.PaginationParams) ([]models.JobApplication, int64, error)
	Update(app *models.JobApplication) error
	Delete(userID uint64, id string) error
}

// HabitRepository defines the interface for habit and habit-log data access
type HabitRepository interface {
	Create(habit *models.Habit) error
	FindByID(userID uint64, id string) (*models.Habit, error)
	ListByUser(userID uint64) ([]models.Habit, error)
	Update(habit *models.Habit) error
	Delete(userID uint64, id string) error

	// FindLog returns the log row for one habit on one day, if any
	FindLog(habitID string, day time.Time) (*models.HabitLog, error)
	CreateLog(log *models.HabitLog) error
	DeleteLog(habitID string, day time.Time) error
	ListLogs(habitID string) ([]models.HabitLog, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(user *models.User) error
	FindByID(id uint64) (*models.User, error)
	FindByUsername(username string) (*models.User, error)
}
