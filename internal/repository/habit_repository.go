package repository

import (
	"time"

	"github.com/yukikurage/daily-planner-api/internal/models"
	"github.com/yukikurage/daily-planner-api/internal/utils"
	"gorm.io/gorm"
)

// GormHabitRepository is a GORM implementation of HabitRepository
type GormHabitRepository struct {
	db *gorm.DB
}

// NewHabitRepository creates a new HabitRepository
func NewHabitRepository(db *gorm.DB) HabitRepository {
	return &GormHabitRepository{db: db}
}

func (r *GormHabitRepository) Create(habit *models.Habit) error {
	return r.db.Create(habit).Error
}

func (r *GormHabitRepository) FindByID(userID uint64, id string) (*models.Habit, error) {
	var habit models.Habit
	if err := r.db.Where("user_id = ? AND id = ?", userID, id).First(&habit).Error; err != nil {
		return nil, err
	}
	return &habit, nil
}

func (r *GormHabitRepository) ListByUser(userID uint64) ([]models.Habit, error) {
	var habits []models.Habit
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Preload("Logs").
		Find(&habits).Error
	if err != nil {
		return nil, err
	}
	return habits, nil
}

func (r *GormHabitRepository) Update(habit *models.Habit) error {
	return r.db.Save(habit).Error
}

func (r *GormHabitRepository) Delete(userID uint64, id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var habit models.Habit
		if err := tx.Where("user_id = ? AND id = ?", userID, id).First(&habit).Error; err != nil {
			return err
		}
		if err := tx.Where("habit_id = ?", id).Delete(&models.HabitLog{}).Error; err != nil {
			return err
		}
		return tx.Delete(&habit).Error
	})
}

func (r *GormHabitRepository) FindLog(habitID string, day time.Time) (*models.HabitLog, error) {
	var log models.HabitLog
	err := r.db.Where("habit_id = ? AND date = ?", habitID, utils.NormalizeDay(day)).First(&log).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *GormHabitRepository) CreateLog(log *models.HabitLog) error {
	log.Date = utils.NormalizeDay(log.Date)
	return r.db.Create(log).Error
}

func (r *GormHabitRepository) DeleteLog(habitID string, day time.Time) error {
	return r.db.
		Where("habit_id = ? AND date = ?", habitID, utils.NormalizeDay(day)).
		Delete(&models.HabitLog{}).Error
}

func (r *GormHabitRepository) ListLogs(habitID string) ([]models.HabitLog, error) {
	var logs []models.HabitLog
	err := r.db.Where("habit_id = ?", habitID).Order("date DESC").Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
