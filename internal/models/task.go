package models

import (
	"time"
)

type TaskStatus string

const (
	TaskStatusUntouched  TaskStatus = "Untouched"
	TaskStatusInProgress TaskStatus = "InProgress"
	TaskStatusDone       TaskStatus = "Done"
)

// ValidStatus reports whether s is one of the three task states.
func ValidStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusUntouched, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityHigh   TaskPriority = "High"
	TaskPriorityMedium TaskPriority = "Medium"
	TaskPriorityLow    TaskPriority = "Low"
)

// ValidPriority reports whether p is a known priority value.
func ValidPriority(p TaskPriority) bool {
	switch p {
	case TaskPriorityHigh, TaskPriorityMedium, TaskPriorityLow:
		return true
	}
	return false
}

// Task is one row of the planner. OrderIndex positions the task among the
// tasks sharing the same calendar Date; it carries no meaning across days.
type Task struct {
	ID               string        `gorm:"type:uuid;primarykey" json:"id"`
	UserID           uint64        `gorm:"not null;index" json:"user_id"`
	FeatureName      string        `gorm:"not null" json:"feature_name"`
	Description      string        `gorm:"type:text" json:"description"`
	Status           TaskStatus    `gorm:"type:varchar(20);not null;default:'Untouched'" json:"status"`
	Date             time.Time     `gorm:"type:date;not null;index" json:"date"`
	Priority         *TaskPriority `gorm:"type:varchar(10)" json:"priority"`
	EstimatedHours   int           `gorm:"not null;default:0" json:"estimated_hours"`
	EstimatedMinutes int           `gorm:"not null;default:0" json:"estimated_minutes"`
	StartedAt        *time.Time    `json:"started_at"`
	OrderIndex       int           `gorm:"not null;default:0" json:"order_index"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// EstimatedTotalMinutes returns the combined estimate in minutes.
func (t Task) EstimatedTotalMinutes() int {
	return t.EstimatedHours*60 + t.EstimatedMinutes
}
