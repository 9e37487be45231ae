package repository

import (
	"github.com/yukikurage/daily-planner-api/internal/database"
	"github.com/yukikurage/daily-planner-api/internal/models"
	"github.com/yukikurage/daily-planner-api/internal/utils"
	"gorm.io/gorm"
)

// GormApplicationRepository is a GORM implementation of ApplicationRepository
type GormApplicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &GormApplicationRepository{db: db}
}

func (r *GormApplicationRepository) Create(app *models.JobApplication) error {
	app.AppliedAt = utils.NormalizeDay(app.AppliedAt)
	return r.db.Create(app).Error
}

func (r *GormApplicationRepository) FindByID(userID uint64, id string) (*models.JobApplication, error) {
	var app models.JobApplication
	if err := r.db.Where("user_id = ? AND id = ?", userID, id).First(&app).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *GormApplicationRepository) ListByUser(userID uint64, status *models.ApplicationStatus, params utils.PaginationParams) ([]models.JobApplication, int64, error) {
	query := r.db.Model(&models.JobApplication{}).Where("user_id = ?", userID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var apps []models.JobApplication
	err := query.
		Order("applied_at DESC, created_at DESC").
		Scopes(database.Paginate(params)).
		Find(&apps).Error
	if err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}

func (r *GormApplicationRepository) Update(app *models.JobApplication) error {
	app.AppliedAt = utils.NormalizeDay(app.AppliedAt)
	return r.db.Save(app).Error
}

func (r *GormApplicationRepository) Delete(userID uint64, id string) error {
	result := r.db.Where("user_id = ?", userID).Delete(&models.JobApplication{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
