package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/daily-planner-api/internal/constants"
	"github.com/yukikurage/daily-planner-api/internal/models"
	"github.com/yukikurage/daily-planner-api/internal/repository"
	"github.com/yukikurage/daily-planner-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrHabitNotFound    = errors.New("habit not found")
	ErrHabitNameMissing = errors.New("habit name is required")
)

// HabitService handles habit tracking business logic
type HabitService struct {
	habitRepo repository.HabitRepository
}

// NewHabitService creates a new HabitService
func NewHabitService(habitRepo repository.HabitRepository) *HabitService {
	return &HabitService{
		habitRepo: habitRepo,
	}
}

// HabitSummary is a habit with its derived tracking stats.
type HabitSummary struct {
	Habit         models.Habit `json:"habit"`
	CompletedDays int          `json:"completed_days"`
	CurrentStreak int          `json:"current_streak"`
	DoneToday     bool         `json:"done_today"`
}

// List returns the user's habits with completion stats as of today
func (s *HabitService) List(userID uint64) ([]HabitSummary, error) {
	habits, err := s.habitRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}

	today := utils.NormalizeDay(time.Now())
	summaries := make([]HabitSummary, 0, len(habits))
	for _, habit := range habits {
		summaries = append(summaries, summarize(habit, today))
	}
	return summaries, nil
}

// Create adds a new habit
func (s *HabitService) Create(userID uint64, name string) (*models.Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrHabitNameMissing
	}

	habit := &models.Habit{
		ID:     uuid.NewString(),
		UserID: userID,
		Name:   name,
	}
	if err := s.habitRepo.Create(habit); err != nil {
		return nil, fmt.Errorf("failed to create habit: %w", err)
	}
	return habit, nil
}

// Rename changes a habit's name
func (s *HabitService) Rename(userID uint64, id, name string) (*models.Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrHabitNameMissing
	}

	habit, err := s.habitRepo.FindByID(userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHabitNotFound
		}
		return nil, fmt.Errorf("failed to find habit: %w", err)
	}

	habit.Name = name
	if err := s.habitRepo.Update(habit); err != nil {
		return nil, fmt.Errorf("failed to update habit: %w", err)
	}
	return habit, nil
}

// Delete removes a habit and its logs
func (s *HabitService) Delete(userID uint64, id string) error {
	if err := s.habitRepo.Delete(userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrHabitNotFound
		}
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	return nil
}

// Toggle flips a habit's completion for one day and returns the new state.
func (s *HabitService) Toggle(userID uint64, id string, day time.Time) (bool, error) {
	habit, err := s.habitRepo.FindByID(userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrHabitNotFound
		}
		return false, fmt.Errorf("failed to find habit: %w", err)
	}

	_, err = s.habitRepo.FindLog(habit.ID, day)
	if err == nil {
		if err := s.habitRepo.DeleteLog(habit.ID, day); err != nil {
			return false, fmt.Errorf("failed to clear habit log: %w", err)
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("failed to check habit log: %w", err)
	}

	log := &models.HabitLog{
		HabitID: habit.ID,
		Date:    day,
	}
	if err := s.habitRepo.CreateLog(log); err != nil {
		return false, fmt.Errorf("failed to record habit log: %w", err)
	}
	return true, nil
}

// summarize derives completion stats from a habit's preloaded logs. Days are
// keyed by their wire format so the stored rows compare by calendar day no
// matter which location the driver hands back.
func summarize(habit models.Habit, today time.Time) HabitSummary {
	days := make(map[string]bool, len(habit.Logs))
	for _, log := range habit.Logs {
		days[log.Date.Format(constants.DateLayout)] = true
	}

	// Streak counts back from today; a miss today doesn't break a streak
	// that is still alive through yesterday.
	streak := 0
	cursor := today
	if !days[cursor.Format(constants.DateLayout)] {
		cursor = cursor.AddDate(0, 0, -1)
	}
	for days[cursor.Format(constants.DateLayout)] {
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}

	return HabitSummary{
		Habit:         habit,
		CompletedDays: len(days),
		CurrentStreak: streak,
		DoneToday:     days[today.Format(constants.DateLayout)],
	}
}
