package repository

import (
	"github.com/yukikurage/daily-planner-api/internal/models"
	"github.com/yukikurage/daily-planner-api/internal/utils"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create persists a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	task.Date = utils.NormalizeDay(task.Date)
	return r.db.Create(task).Error
}

// FindByID finds one of the user's tasks by ID
func (r *GormTaskRepository) FindByID(userID uint64, id string) (*models.Task, error) {
	var task models.Task
	if err := r.db.Where("user_id = ? AND id = ?", userID, id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByUser returns all of the user's tasks. Rows come back ordered by day,
// then order_index, then created_at so a day with duplicate or missing order
// values still lists deterministically.
func (r *GormTaskRepository) ListByUser(userID uint64) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Where("user_id = ?", userID).
		Order("date ASC, order_index ASC, created_at ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update persists the full row
func (r *GormTaskRepository) Update(task *models.Task) error {
	task.Date = utils.NormalizeDay(task.Date)
	return r.db.Save(task).Error
}

// UpdateOrderIndex sets order_index on a single row
func (r *GormTaskRepository) UpdateOrderIndex(userID uint64, id string, orderIndex int) error {
	result := r.db.Model(&models.Task{}).
		Where("user_id = ? AND id = ?", userID, id).
		Update("order_index", orderIndex)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a task permanently
func (r *GormTaskRepository) Delete(userID uint64, id string) error {
	result := r.db.Where("user_id = ?", userID).Delete(&models.Task{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
