// Package analytics derives read-only statistics from a task snapshot.
// Every function here is a pure transform of its inputs; nothing is cached
// or mutated, so callers may invoke them from any goroutine.
package analytics

import (
	"fmt"
	"time"

	"github.com/yukikurage/daily-planner-api/internal/models"
	"github.com/yukikurage/daily-planner-api/internal/utils"
)

// FilterByDate returns the tasks whose Date falls on the same calendar day
// as the target. Time-of-day never affects membership.
func FilterByDate(tasks []models.Task, day time.Time) []models.Task {
	filtered := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if utils.SameDay(t.Date, day) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// StatusCounts holds the per-status task counts of a subset.
// Done + InProgress + Untouched always equals the subset size.
type StatusCounts struct {
	Done       int `json:"done"`
	InProgress int `json:"in_progress"`
	Untouched  int `json:"untouched"`
}

// CountByStatus tallies tasks per status.
func CountByStatus(tasks []models.Task) StatusCounts {
	var counts StatusCounts
	for _, t := range tasks {
		switch t.Status {
		case models.TaskStatusDone:
			counts.Done++
		case models.TaskStatusInProgress:
			counts.InProgress++
		default:
			counts.Untouched++
		}
	}
	return counts
}

// PriorityCounts holds the per-priority task counts of a subset. Tasks with
// no priority set land in None; the four buckets always sum to the subset size.
type PriorityCounts struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
	None   int `json:"none"`
}

// CountByPriority tallies tasks per priority bucket.
func CountByPriority(tasks []models.Task) PriorityCounts {
	var counts PriorityCounts
	for _, t := range tasks {
		if t.Priority == nil {
			counts.None++
			continue
		}
		switch *t.Priority {
		case models.TaskPriorityHigh:
			counts.High++
		case models.TaskPriorityMedium:
			counts.Medium++
		case models.TaskPriorityLow:
			counts.Low++
		default:
			counts.None++
		}
	}
	return counts
}

// TimeRollup sums estimated minutes over a subset, with per-status splits.
// Remaining minutes is TotalMinutes - DoneMinutes - InProgressMinutes and is
// left to the caller.
type TimeRollup struct {
	TotalMinutes      int `json:"total_minutes"`
	DoneMinutes       int `json:"done_minutes"`
	InProgressMinutes int `json:"in_progress_minutes"`
}

// RollupEstimates sums the hour/minute estimates of a subset.
func RollupEstimates(tasks []models.Task) TimeRollup {
	var rollup TimeRollup
	for _, t := range tasks {
		minutes := t.EstimatedTotalMinutes()
		rollup.TotalMinutes += minutes
		switch t.Status {
		case models.TaskStatusDone:
			rollup.DoneMinutes += minutes
		case models.TaskStatusInProgress:
			rollup.InProgressMinutes += minutes
		}
	}
	return rollup
}

// SuccessRate renders done/total as a percentage with one decimal.
// An empty subset yields exactly "0", never NaN.
func SuccessRate(done, total int) string {
	if total == 0 {
		return "0"
	}
	return fmt.Sprintf("%.1f", float64(done)/float64(total)*100)
}

// Share returns part/whole as a percentage. Zero denominators yield 0; this
// is the single convention for every rendered ratio, so NaN and Inf can never
// reach a response.
func Share(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
