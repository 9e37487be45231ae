package dto

import (
	"time"

	"github.com/yukikurage/daily-planner-api/internal/analytics"
	"github.com/yukikurage/daily-planner-api/internal/constants"
	"github.com/yukikurage/daily-planner-api/internal/models"
)

// TaskDTO represents a task in API responses. Date is rendered date-only.
type TaskDTO struct {
	ID               string               `json:"id"`
	FeatureName      string               `json:"feature_name"`
	Description      string               `json:"description"`
	Status           models.TaskStatus    `json:"status"`
	Date             string               `json:"date"`
	Priority         *models.TaskPriority `json:"priority"`
	EstimatedHours   int                  `json:"estimated_hours"`
	EstimatedMinutes int                  `json:"estimated_minutes"`
	StartedAt        *time.Time           `json:"started_at"`
	OrderIndex       int                  `json:"order_index"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
}

// TaskListResponse carries the task list plus an optional degraded-read
// warning the client is expected to surface.
type TaskListResponse struct {
	Tasks   []TaskDTO `json:"tasks"`
	Warning string    `json:"warning,omitempty"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:               task.ID,
		FeatureName:      task.FeatureName,
		Description:      task.Description,
		Status:           task.Status,
		Date:             task.Date.Format(constants.DateLayout),
		Priority:         task.Priority,
		EstimatedHours:   task.EstimatedHours,
		EstimatedMinutes: task.EstimatedMinutes,
		StartedAt:        task.StartedAt,
		OrderIndex:       task.OrderIndex,
		CreatedAt:        task.CreatedAt,
		UpdatedAt:        task.UpdatedAt,
	}
}

// ToTaskListResponse converts a slice of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task, warning string) TaskListResponse {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}
	return TaskListResponse{
		Tasks:   items,
		Warning: warning,
	}
}

// StatusShares are each status bucket's percentage of the day's tasks.
type StatusShares struct {
	Done       float64 `json:"done"`
	InProgress float64 `json:"in_progress"`
	Untouched  float64 `json:"untouched"`
}

// PriorityShares are each priority bucket's percentage of the day's tasks.
type PriorityShares struct {
	High   float64 `json:"high"`
	Medium float64 `json:"medium"`
	Low    float64 `json:"low"`
	None   float64 `json:"none"`
}

// DashboardResponse is the analytics rollup for one calendar day.
type DashboardResponse struct {
	Date             string                   `json:"date"`
	TaskCount        int                      `json:"task_count"`
	Statuses         analytics.StatusCounts   `json:"statuses"`
	StatusShares     StatusShares             `json:"status_shares"`
	Priorities       analytics.PriorityCounts `json:"priorities"`
	PriorityShares   PriorityShares           `json:"priority_shares"`
	Time             analytics.TimeRollup     `json:"time"`
	RemainingMinutes int                      `json:"remaining_minutes"`
	SuccessRate      string                   `json:"success_rate"`
}

// ToDashboardResponse computes the day's aggregates from a task snapshot.
func ToDashboardResponse(tasks []models.Task, day time.Time) DashboardResponse {
	subset := analytics.FilterByDate(tasks, day)
	statuses := analytics.CountByStatus(subset)
	priorities := analytics.CountByPriority(subset)
	rollup := analytics.RollupEstimates(subset)
	total := len(subset)

	return DashboardResponse{
		Date:      day.Format(constants.DateLayout),
		TaskCount: total,
		Statuses:  statuses,
		StatusShares: StatusShares{
			Done:       analytics.Share(statuses.Done, total),
			InProgress: analytics.Share(statuses.InProgress, total),
			Untouched:  analytics.Share(statuses.Untouched, total),
		},
		Priorities: priorities,
		PriorityShares: PriorityShares{
			High:   analytics.Share(priorities.High, total),
			Medium: analytics.Share(priorities.Medium, total),
			Low:    analytics.Share(priorities.Low, total),
			None:   analytics.Share(priorities.None, total),
		},
		Time:             rollup,
		RemainingMinutes: rollup.TotalMinutes - rollup.DoneMinutes - rollup.InProgressMinutes,
		SuccessRate:      analytics.SuccessRate(statuses.Done, total),
	}
}
