package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/daily-planner-api/internal/dto"
	apierrors "github.com/yukikurage/daily-planner-api/internal/errors"
	"github.com/yukikurage/daily-planner-api/internal/middleware"
	"github.com/yukikurage/daily-planner-api/internal/models"
	"github.com/yukikurage/daily-planner-api/internal/planner"
	"github.com/yukikurage/daily-planner-api/internal/utils"
)

// TaskHandler exposes the task lifecycle over HTTP.
type TaskHandler struct {
	planner *planner.Service
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(plannerService *planner.Service) *TaskHandler {
	return &TaskHandler{
		planner: plannerService,
	}
}

// ListTasks returns the user's tasks, optionally filtered to one day via
// ?date=YYYY-MM-DD. An unreachable store degrades to fallback data plus a
// warning instead of an error status.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var day *time.Time
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := utils.ParseDay(dateStr)
		if err != nil {
			apierrors.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}
		day = &parsed
	}

	tasks, err := h.planner.List(userID, day)
	warning := ""
	if err != nil {
		warning = "Task store is unreachable; showing last known data"
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, warning))
}

// CreateTask creates a new task on a given day.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateTaskRequest struct {
		FeatureName      string               `json:"feature_name" binding:"required"`
		Description      string               `json:"description"`
		Date             string               `json:"date" binding:"required"`
		Priority         *models.TaskPriority `json:"priority"`
		EstimatedHours   int                  `json:"estimated_hours"`
		EstimatedMinutes int                  `json:"estimated_minutes"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	day, err := utils.ParseDay(req.Date)
	if err != nil {
		apierrors.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	tasks, err := h.planner.Create(userID, planner.CreateTaskInput{
		FeatureName:      req.FeatureName,
		Description:      req.Description,
		Date:             day,
		Priority:         req.Priority,
		EstimatedHours:   req.EstimatedHours,
		EstimatedMinutes: req.EstimatedMinutes,
	})
	if err != nil {
		respondTaskError(c, err, nil)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskListResponse(tasks, ""))
}

// UpdateTask merges the fields present in the request body into the task.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	// Parse raw JSON to detect which fields were sent
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	tasks, err := h.planner.UpdateFields(userID, c.Param("id"), fields)
	if err != nil {
		respondTaskError(c, err, tasks)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, ""))
}

// SetTaskStatus applies a status transition.
func (h *TaskHandler) SetTaskStatus(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type SetStatusRequest struct {
		Status models.TaskStatus `json:"status" binding:"required"`
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	tasks, err := h.planner.SetStatus(userID, c.Param("id"), req.Status)
	if err != nil {
		respondTaskError(c, err, tasks)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, ""))
}

// ReorderTasks re-indexes one day's tasks to the submitted ID sequence.
func (h *TaskHandler) ReorderTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type ReorderRequest struct {
		Date    string   `json:"date" binding:"required"`
		TaskIDs []string `json:"task_ids" binding:"required"`
	}

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	day, err := utils.ParseDay(req.Date)
	if err != nil {
		apierrors.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	tasks, err := h.planner.Reorder(userID, day, req.TaskIDs)
	if err != nil {
		respondTaskError(c, err, tasks)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, ""))
}

// DeleteTask removes a task. A remote-store rejection still removes the task
// locally and reports the degraded state in the response.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	tasks, err := h.planner.Delete(userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, planner.ErrLocalOnlyDeletion) {
			c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks,
				"Remote store rejected the delete; task removed locally only"))
			return
		}
		respondTaskError(c, err, tasks)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, ""))
}

// respondTaskError maps planner errors to API responses. For persistence
// failures the canonical list re-fetched by the planner rides along so the
// client can immediately replace its diverged view.
func respondTaskError(c *gin.Context, err error, refreshed []models.Task) {
	var persistence *planner.PersistenceError
	switch {
	case errors.Is(err, planner.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, planner.ErrNameRequired),
		errors.Is(err, planner.ErrInvalidStatus),
		errors.Is(err, planner.ErrInvalidPriority),
		errors.Is(err, planner.ErrInvalidEstimate),
		errors.Is(err, planner.ErrInvalidDate),
		errors.Is(err, planner.ErrEmptyReorder):
		apierrors.BadRequest(c, err.Error())
	case errors.As(err, &persistence):
		details := gin.H{"op": persistence.Op}
		if refreshed != nil {
			details["tasks"] = dto.ToTaskListResponse(refreshed, "").Tasks
		}
		apierrors.RespondWithError(c, http.StatusBadGateway,
			apierrors.NewAPIErrorWithDetails(apierrors.ErrCodePersistenceFailed,
				"Remote store rejected the operation", details))
	default:
		apierrors.InternalError(c, "")
	}
}
