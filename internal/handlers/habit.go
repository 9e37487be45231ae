package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/daily-planner-api/internal/errors"
	"github.com/yukikurage/daily-planner-api/internal/middleware"
	"github.com/yukikurage/daily-planner-api/internal/services"
	"github.com/yukikurage/daily-planner-api/internal/utils"
)

// HabitHandler exposes the habit tracker.
type HabitHandler struct {
	habitService *services.HabitService
}

// NewHabitHandler creates a new HabitHandler.
func NewHabitHandler(habitService *services.HabitService) *HabitHandler {
	return &HabitHandler{
		habitService: habitService,
	}
}

// ListHabits returns the user's habits with completion stats.
func (h *HabitHandler) ListHabits(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	habits, err := h.habitService.List(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch habits")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"habits": habits,
	})
}

// CreateHabit adds a new habit.
func (h *HabitHandler) CreateHabit(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateHabitRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req CreateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	habit, err := h.habitService.Create(userID, req.Name)
	if err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusCreated, habit)
}

// RenameHabit changes a habit's name.
func (h *HabitHandler) RenameHabit(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type RenameRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	habit, err := h.habitService.Rename(userID, c.Param("id"), req.Name)
	if err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, habit)
}

// DeleteHabit removes a habit and its history.
func (h *HabitHandler) DeleteHabit(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.habitService.Delete(userID, c.Param("id")); err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Habit deleted successfully",
	})
}

// ToggleHabit flips a habit's completion for one day (default today).
func (h *HabitHandler) ToggleHabit(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type ToggleRequest struct {
		Date string `json:"date"`
	}

	var req ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	day := utils.NormalizeDay(time.Now())
	if req.Date != "" {
		parsed, err := utils.ParseDay(req.Date)
		if err != nil {
			apierrors.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}
		day = parsed
	}

	done, err := h.habitService.Toggle(userID, c.Param("id"), day)
	if err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"done": done,
	})
}

func respondHabitError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrHabitNotFound):
		apierrors.NotFound(c, "Habit not found")
	case errors.Is(err, services.ErrHabitNameMissing):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
