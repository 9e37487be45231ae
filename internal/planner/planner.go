// Package planner owns the task lifecycle: the authoritative task collection,
// status transitions, per-day ordering, and the optimistic view kept in sync
// with the remote store. Mutations apply to the in-memory view first, then
// persist; a rejected persistence call discards the optimistic value and
// re-fetches canonical state, so the view never stays diverged.
package planner

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yukikurage/daily-planner-api/internal/localstore"
	"github.com/yukikurage/daily-planner-api/internal/models"
	"github.com/yukikurage/daily-planner-api/internal/repository"
	"github.com/yukikurage/daily-planner-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrNameRequired      = errors.New("feature name is required")
	ErrInvalidStatus     = errors.New("invalid task status")
	ErrInvalidPriority   = errors.New("invalid task priority")
	ErrInvalidEstimate   = errors.New("estimates must be non-negative whole numbers")
	ErrInvalidDate       = errors.New("invalid date value")
	ErrEmptyReorder      = errors.New("at least one task ID is required")
	ErrLocalOnlyDeletion = errors.New("task removed locally only; remote store rejected the delete")
)

// PersistenceError reports a remote write the store rejected. The optimistic
// change has already been discarded by the time callers see it.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Service mediates all task mutations for every user session. The per-user
// view holds the last known task list: canonical rows after a successful
// round-trip, tentative rows between an optimistic apply and its confirmation.
type Service struct {
	repo  repository.TaskRepository
	local *localstore.Store
	log   zerolog.Logger

	mu   sync.Mutex
	view map[uint64][]models.Task
}

// NewService creates a planner service. local may be nil when no file
// fallback is configured.
func NewService(repo repository.TaskRepository, local *localstore.Store, log zerolog.Logger) *Service {
	return &Service{
		repo:  repo,
		local: local,
		log:   log,
		view:  make(map[uint64][]models.Task),
	}
}

// CreateTaskInput carries the user-supplied fields for a new task.
type CreateTaskInput struct {
	FeatureName      string
	Description      string
	Date             time.Time
	Priority         *models.TaskPriority
	EstimatedHours   int
	EstimatedMinutes int
}

// List returns the user's tasks, optionally narrowed to one calendar day.
// When the backing store is unreachable it falls back to the cached view (or
// the file store) and returns that data alongside the read error; it never
// returns nil tasks.
func (s *Service) List(userID uint64, day *time.Time) ([]models.Task, error) {
	tasks, err := s.repo.ListByUser(userID)
	if err != nil {
		s.log.Warn().Err(err).Uint64("user_id", userID).Msg("task list unavailable, serving fallback")
		fallback := s.fallbackTasks(userID)
		return filterDay(fallback, day), err
	}

	s.setView(userID, tasks)
	return filterDay(tasks, day), nil
}

// Create builds a task with status Untouched and the next order slot within
// its day, persists it, and returns the refreshed list. A rejected write
// leaves the view untouched.
func (s *Service) Create(userID uint64, input CreateTaskInput) ([]models.Task, error) {
	name := strings.TrimSpace(input.FeatureName)
	if name == "" {
		return nil, ErrNameRequired
	}
	if input.Priority != nil && !models.ValidPriority(*input.Priority) {
		return nil, ErrInvalidPriority
	}
	if input.EstimatedHours < 0 || input.EstimatedMinutes < 0 {
		return nil, ErrInvalidEstimate
	}
	if input.Date.IsZero() {
		return nil, ErrInvalidDate
	}

	day := utils.NormalizeDay(input.Date)
	canonical, err := s.repo.ListByUser(userID)
	if err != nil {
		return nil, &PersistenceError{Op: "create", Err: err}
	}

	task := &models.Task{
		ID:               uuid.NewString(),
		UserID:           userID,
		FeatureName:      name,
		Description:      input.Description,
		Status:           models.TaskStatusUntouched,
		Date:             day,
		Priority:         input.Priority,
		EstimatedHours:   input.EstimatedHours,
		EstimatedMinutes: input.EstimatedMinutes,
		OrderIndex:       nextOrderIndex(canonical, day),
	}

	if err := s.repo.Create(task); err != nil {
		return nil, &PersistenceError{Op: "create", Err: err}
	}

	return s.refresh(userID)
}

// UpdateFields merges the supplied fields into the task and persists the
// merge. Only keys present in fields are touched; a status merge that first
// reaches InProgress stamps StartedAt if it is still unset.
func (s *Service) UpdateFields(userID uint64, id string, fields map[string]any) ([]models.Task, error) {
	task, err := s.repo.FindByID(userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, &PersistenceError{Op: "update", Err: err}
	}

	prev := *task
	if err := mergeFields(task, fields); err != nil {
		return nil, err
	}

	s.applyOptimistic(userID, *task)

	if err := s.repo.Update(task); err != nil {
		// Discard the tentative value up front so a failed refresh still
		// serves the pre-merge state, not the unpersisted one.
		s.applyOptimistic(userID, prev)
		list, _ := s.refresh(userID)
		return list, &PersistenceError{Op: "update", Err: err}
	}

	return s.refresh(userID)
}

// SetStatus is the primary transition operation: the new status lands in the
// view immediately, then persists. On rejection the view is re-pulled from
// canonical state and the tentative status discarded.
func (s *Service) SetStatus(userID uint64, id string, status models.TaskStatus) ([]models.Task, error) {
	if !models.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	return s.UpdateFields(userID, id, map[string]any{"status": string(status)})
}

// Reorder re-indexes one day's tasks to match ids: each task named in ids
// gets order_index = its position. Tasks on other days, and IDs that do not
// belong to the day group, are ignored, so a stale reorder of one day can
// never disturb another. The operation is idempotent.
func (s *Service) Reorder(userID uint64, day time.Time, ids []string) ([]models.Task, error) {
	if len(ids) == 0 {
		return nil, ErrEmptyReorder
	}

	canonical, err := s.repo.ListByUser(userID)
	if err != nil {
		return nil, &PersistenceError{Op: "reorder", Err: err}
	}

	group := make(map[string]struct{})
	for _, t := range canonical {
		if utils.SameDay(t.Date, day) {
			group[t.ID] = struct{}{}
		}
	}

	assigned := make(map[string]int, len(ids))
	position := 0
	for _, id := range ids {
		if _, ok := group[id]; !ok {
			continue
		}
		if _, dup := assigned[id]; dup {
			continue
		}
		assigned[id] = position
		position++
	}

	// Optimistic re-index of the cached view.
	s.mu.Lock()
	if view, ok := s.view[userID]; ok {
		for i := range view {
			if idx, ok := assigned[view[i].ID]; ok {
				view[i].OrderIndex = idx
			}
		}
		sortTasks(view)
	}
	s.mu.Unlock()

	// Each row update is independent; a partial failure falls back to
	// re-fetching canonical state rather than reconciling.
	for id, idx := range assigned {
		if err := s.repo.UpdateOrderIndex(userID, id, idx); err != nil {
			list, _ := s.refresh(userID)
			return list, &PersistenceError{Op: "reorder", Err: err}
		}
	}

	return s.refresh(userID)
}

// Delete removes the task permanently. When the remote store rejects the
// delete, the task is dropped from the local view and file fallback anyway
// and ErrLocalOnlyDeletion reports the divergence.
func (s *Service) Delete(userID uint64, id string) ([]models.Task, error) {
	err := s.repo.Delete(userID, id)
	if err == nil {
		return s.refresh(userID)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTaskNotFound
	}

	s.log.Warn().Err(err).Str("task_id", id).Uint64("user_id", userID).
		Msg("remote delete rejected, removing locally only")

	s.mu.Lock()
	view := removeTask(s.view[userID], id)
	s.view[userID] = view
	result := copyTasks(view)
	s.mu.Unlock()

	if s.local != nil {
		if saveErr := s.local.SaveTasks(userID, result); saveErr != nil {
			s.log.Error().Err(saveErr).Msg("failed to persist local-only deletion")
		}
	}

	return result, fmt.Errorf("%w: %w", ErrLocalOnlyDeletion, err)
}

// refresh re-pulls canonical state into the view and returns it.
func (s *Service) refresh(userID uint64) ([]models.Task, error) {
	tasks, err := s.repo.ListByUser(userID)
	if err != nil {
		return s.fallbackTasks(userID), &PersistenceError{Op: "refresh", Err: err}
	}
	s.setView(userID, tasks)
	return copyTasks(tasks), nil
}

func (s *Service) setView(userID uint64, tasks []models.Task) {
	s.mu.Lock()
	s.view[userID] = copyTasks(tasks)
	s.mu.Unlock()
}

// applyOptimistic replaces one task in the view with its tentative value.
func (s *Service) applyOptimistic(userID uint64, task models.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	view := s.view[userID]
	for i := range view {
		if view[i].ID == task.ID {
			view[i] = task
			return
		}
	}
}

// fallbackTasks serves the last known view, or the file store when the view
// is cold. Always non-nil.
func (s *Service) fallbackTasks(userID uint64) []models.Task {
	s.mu.Lock()
	view, ok := s.view[userID]
	cached := copyTasks(view)
	s.mu.Unlock()
	if ok {
		return cached
	}

	if s.local != nil {
		tasks, err := s.local.LoadTasks(userID)
		if err == nil {
			return tasks
		}
		s.log.Warn().Err(err).Msg("local fallback unavailable")
	}
	return []models.Task{}
}

func mergeFields(task *models.Task, fields map[string]any) error {
	if raw, ok := fields["feature_name"]; ok {
		name, ok := raw.(string)
		if !ok || strings.TrimSpace(name) == "" {
			return ErrNameRequired
		}
		task.FeatureName = strings.TrimSpace(name)
	}
	if raw, ok := fields["description"]; ok {
		if desc, ok := raw.(string); ok {
			task.Description = desc
		}
	}
	if raw, ok := fields["status"]; ok {
		str, ok := raw.(string)
		if !ok || !models.ValidStatus(models.TaskStatus(str)) {
			return ErrInvalidStatus
		}
		status := models.TaskStatus(str)
		if status == models.TaskStatusInProgress && task.StartedAt == nil {
			now := time.Now()
			task.StartedAt = &now
		}
		task.Status = status
	}
	if raw, ok := fields["priority"]; ok {
		if raw == nil {
			task.Priority = nil
		} else {
			str, ok := raw.(string)
			if !ok || !models.ValidPriority(models.TaskPriority(str)) {
				return ErrInvalidPriority
			}
			priority := models.TaskPriority(str)
			task.Priority = &priority
		}
	}
	if raw, ok := fields["date"]; ok {
		str, ok := raw.(string)
		if !ok {
			return ErrInvalidDate
		}
		day, err := utils.ParseDay(str)
		if err != nil {
			parsed, rfcErr := time.Parse(time.RFC3339, str)
			if rfcErr != nil {
				return ErrInvalidDate
			}
			day = utils.NormalizeDay(parsed)
		}
		task.Date = day
	}
	if raw, ok := fields["estimated_hours"]; ok {
		hours, err := intField(raw)
		if err != nil || hours < 0 {
			return ErrInvalidEstimate
		}
		task.EstimatedHours = hours
	}
	if raw, ok := fields["estimated_minutes"]; ok {
		minutes, err := intField(raw)
		if err != nil || minutes < 0 {
			return ErrInvalidEstimate
		}
		task.EstimatedMinutes = minutes
	}
	return nil
}

// intField accepts the numeric types JSON decoding can hand us. Fractional
// values are rejected rather than truncated.
func intField(raw any) (int, error) {
	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("not a whole number: %v", v)
		}
		return int(v), nil
	case int:
		return v, nil
	default:
		return 0, fmt.Errorf("not a number: %T", raw)
	}
}

func nextOrderIndex(tasks []models.Task, day time.Time) int {
	next := 0
	for _, t := range tasks {
		if utils.SameDay(t.Date, day) && t.OrderIndex >= next {
			next = t.OrderIndex + 1
		}
	}
	return next
}

func filterDay(tasks []models.Task, day *time.Time) []models.Task {
	if day == nil {
		if tasks == nil {
			return []models.Task{}
		}
		return tasks
	}
	filtered := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if utils.SameDay(t.Date, *day) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// sortTasks orders by day, then order_index, falling back to created_at so
// duplicate or gapped order values still compare deterministically.
func sortTasks(tasks []models.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if !utils.SameDay(a.Date, b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.OrderIndex != b.OrderIndex {
			return a.OrderIndex < b.OrderIndex
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
}

func removeTask(tasks []models.Task, id string) []models.Task {
	result := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != id {
			result = append(result, t)
		}
	}
	return result
}

func copyTasks(tasks []models.Task) []models.Task {
	result := make([]models.Task, len(tasks))
	copy(result, tasks)
	return result
}
