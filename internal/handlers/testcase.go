package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/daily-planner-api/internal/errors"
	"github.com/yukikurage/daily-planner-api/internal/middleware"
	"github.com/yukikurage/daily-planner-api/internal/services"
)

// TestCaseHandler exposes AI-assisted test-case generation.
type TestCaseHandler struct {
	aiService *services.AIService
}

// NewTestCaseHandler creates a new TestCaseHandler.
func NewTestCaseHandler(aiService *services.AIService) *TestCaseHandler {
	return &TestCaseHandler{
		aiService: aiService,
	}
}

// GenerateTestCases produces test scenarios for a feature description.
func (h *TestCaseHandler) GenerateTestCases(c *gin.Context) {
	if _, exists := middleware.GetUserID(c); !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type GenerateRequest struct {
		FeatureName string `json:"feature_name" binding:"required"`
		Description string `json:"description"`
	}

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if h.aiService == nil {
		apierrors.ServiceUnavailable(c, "AI service is not configured. Please set OPENAI_API_KEY environment variable.")
		return
	}

	scenarios, err := h.aiService.GenerateScenarios(c.Request.Context(), req.FeatureName, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAIServiceNotConfigured):
			apierrors.ServiceUnavailable(c, err.Error())
		case errors.Is(err, services.ErrFeatureNameRequired):
			apierrors.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrAINoScenarios):
			apierrors.RespondWithError(c, http.StatusUnprocessableEntity,
				apierrors.NewAPIError(apierrors.ErrCodeInvalidInput, err.Error()))
		default:
			apierrors.InternalError(c, fmt.Sprintf("Failed to generate test cases: %v", err))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"scenarios": scenarios,
	})
}
