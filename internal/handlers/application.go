package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/daily-planner-api/internal/errors"
	"github.com/yukikurage/daily-planner-api/internal/middleware"
	"github.com/yukikurage/daily-planner-api/internal/models"
	"github.com/yukikurage/daily-planner-api/internal/services"
	"github.com/yukikurage/daily-planner-api/internal/utils"
)

// ApplicationHandler exposes the job-application tracker.
type ApplicationHandler struct {
	appService *services.ApplicationService
}

// NewApplicationHandler creates a new ApplicationHandler.
func NewApplicationHandler(appService *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		appService: appService,
	}
}

// ListApplications returns the user's applications, optionally filtered by
// pipeline stage via ?status=.
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var status *models.ApplicationStatus
	if statusStr := c.Query("status"); statusStr != "" {
		s := models.ApplicationStatus(statusStr)
		status = &s
	}

	params := utils.GetPaginationParams(c)
	apps, total, err := h.appService.List(userID, status, params)
	if err != nil {
		respondApplicationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": apps,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// CreateApplication records a new application.
func (h *ApplicationHandler) CreateApplication(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateApplicationRequest struct {
		Company   string `json:"company" binding:"required"`
		Role      string `json:"role" binding:"required"`
		URL       string `json:"url"`
		Notes     string `json:"notes"`
		AppliedAt string `json:"applied_at"`
	}

	var req CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var appliedAt time.Time
	if req.AppliedAt != "" {
		parsed, err := utils.ParseDay(req.AppliedAt)
		if err != nil {
			apierrors.BadRequest(c, "Invalid applied_at, expected YYYY-MM-DD")
			return
		}
		appliedAt = parsed
	}

	app, err := h.appService.Create(userID, services.CreateApplicationInput{
		Company:   req.Company,
		Role:      req.Role,
		URL:       req.URL,
		Notes:     req.Notes,
		AppliedAt: appliedAt,
	})
	if err != nil {
		respondApplicationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, app)
}

// UpdateApplication merges the provided fields into an application.
func (h *ApplicationHandler) UpdateApplication(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type UpdateApplicationRequest struct {
		Company *string                   `json:"company"`
		Role    *string                   `json:"role"`
		Status  *models.ApplicationStatus `json:"status"`
		URL     *string                   `json:"url"`
		Notes   *string                   `json:"notes"`
	}

	var req UpdateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	app, err := h.appService.Update(userID, c.Param("id"), services.UpdateApplicationInput{
		Company: req.Company,
		Role:    req.Role,
		Status:  req.Status,
		URL:     req.URL,
		Notes:   req.Notes,
	})
	if err != nil {
		respondApplicationError(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}

// DeleteApplication removes an application.
func (h *ApplicationHandler) DeleteApplication(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.appService.Delete(userID, c.Param("id")); err != nil {
		respondApplicationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Application deleted successfully",
	})
}

func respondApplicationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrApplicationNotFound):
		apierrors.NotFound(c, "Application not found")
	case errors.Is(err, services.ErrCompanyRequired),
		errors.Is(err, services.ErrRoleRequired),
		errors.Is(err, services.ErrInvalidAppStatus):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
