package models

import (
	"time"
)

// Habit is a recurring routine the user checks off per day.
type Habit struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	UserID    uint64    `gorm:"not null;index" json:"user_id"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Logs []HabitLog `gorm:"foreignKey:HabitID" json:"logs,omitempty"`
}

// HabitLog marks a habit as done on one calendar day. One row per (habit, day).
type HabitLog struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	HabitID   string    `gorm:"type:uuid;not null;index:idx_habit_logs_habit_date,unique" json:"habit_id"`
	Date      time.Time `gorm:"type:date;not null;index:idx_habit_logs_habit_date,unique" json:"date"`
	CreatedAt time.Time `json:"created_at"`
}
