package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/daily-planner-api/internal/dto"
	apierrors "github.com/yukikurage/daily-planner-api/internal/errors"
	"github.com/yukikurage/daily-planner-api/internal/middleware"
	"github.com/yukikurage/daily-planner-api/internal/planner"
	"github.com/yukikurage/daily-planner-api/internal/utils"
)

// DashboardHandler serves the per-day analytics rollup.
type DashboardHandler struct {
	planner *planner.Service
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(plannerService *planner.Service) *DashboardHandler {
	return &DashboardHandler{
		planner: plannerService,
	}
}

// GetDashboard computes the selected day's aggregates from the current task
// snapshot. Defaults to today. Aggregation itself cannot fail; a degraded
// read only means the numbers come from fallback data.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	day := utils.NormalizeDay(time.Now())
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := utils.ParseDay(dateStr)
		if err != nil {
			apierrors.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}
		day = parsed
	}

	tasks, err := h.planner.List(userID, nil)
	response := dto.ToDashboardResponse(tasks, day)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"dashboard": response,
			"warning":   "Task store is unreachable; dashboard uses last known data",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"dashboard": response})
}
