package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/daily-planner-api/internal/models"
	"github.com/yukikurage/daily-planner-api/internal/repository"
	"github.com/yukikurage/daily-planner-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound = errors.New("job application not found")
	ErrCompanyRequired     = errors.New("company is required")
	ErrRoleRequired        = errors.New("role is required")
	ErrInvalidAppStatus    = errors.New("invalid application status")
)

// ApplicationService handles job application business logic
type ApplicationService struct {
	appRepo repository.ApplicationRepository
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(appRepo repository.ApplicationRepository) *ApplicationService {
	return &ApplicationService{
		appRepo: appRepo,
	}
}

// CreateApplicationInput represents input for creating a job application
type CreateApplicationInput struct {
	Company   string
	Role      string
	URL       string
	Notes     string
	AppliedAt time.Time
}

// UpdateApplicationInput represents input for updating a job application
type UpdateApplicationInput struct {
	Company *string
	Role    *string
	Status  *models.ApplicationStatus
	URL     *string
	Notes   *string
}

// List returns one page of the user's applications, optionally filtered by
// pipeline stage, plus the total row count for the filter
func (s *ApplicationService) List(userID uint64, status *models.ApplicationStatus, params utils.PaginationParams) ([]models.JobApplication, int64, error) {
	if status != nil && !models.ValidApplicationStatus(*status) {
		return nil, 0, ErrInvalidAppStatus
	}
	apps, total, err := s.appRepo.ListByUser(userID, status, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, total, nil
}

// Create records a new application in the "applied" stage
func (s *ApplicationService) Create(userID uint64, input CreateApplicationInput) (*models.JobApplication, error) {
	if strings.TrimSpace(input.Company) == "" {
		return nil, ErrCompanyRequired
	}
	if strings.TrimSpace(input.Role) == "" {
		return nil, ErrRoleRequired
	}

	appliedAt := input.AppliedAt
	if appliedAt.IsZero() {
		appliedAt = time.Now()
	}

	app := &models.JobApplication{
		ID:        uuid.NewString(),
		UserID:    userID,
		Company:   strings.TrimSpace(input.Company),
		Role:      strings.TrimSpace(input.Role),
		Status:    models.ApplicationStatusApplied,
		URL:       input.URL,
		Notes:     input.Notes,
		AppliedAt: utils.NormalizeDay(appliedAt),
	}

	if err := s.appRepo.Create(app); err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	return app, nil
}

// Update merges the provided fields into an existing application
func (s *ApplicationService) Update(userID uint64, id string, input UpdateApplicationInput) (*models.JobApplication, error) {
	app, err := s.appRepo.FindByID(userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}

	if input.Company != nil {
		if strings.TrimSpace(*input.Company) == "" {
			return nil, ErrCompanyRequired
		}
		app.Company = strings.TrimSpace(*input.Company)
	}
	if input.Role != nil {
		if strings.TrimSpace(*input.Role) == "" {
			return nil, ErrRoleRequired
		}
		app.Role = strings.TrimSpace(*input.Role)
	}
	if input.Status != nil {
		if !models.ValidApplicationStatus(*input.Status) {
			return nil, ErrInvalidAppStatus
		}
		app.Status = *input.Status
	}
	if input.URL != nil {
		app.URL = *input.URL
	}
	if input.Notes != nil {
		app.Notes = *input.Notes
	}

	if err := s.appRepo.Update(app); err != nil {
		return nil, fmt.Errorf("failed to update application: %w", err)
	}

	return app, nil
}

// Delete removes an application permanently
func (s *ApplicationService) Delete(userID uint64, id string) error {
	if err := s.appRepo.Delete(userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrApplicationNotFound
		}
		return fmt.Errorf("failed to delete application: %w", err)
	}
	return nil
}
