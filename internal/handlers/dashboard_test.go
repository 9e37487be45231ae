package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/daily-planner-api/internal/constants"
	"github.com/yukikurage/daily-planner-api/internal/dto"
	"github.com/yukikurage/daily-planner-api/internal/localstore"
	"github.com/yukikurage/daily-planner-api/internal/models"
	"github.com/yukikurage/daily-planner-api/internal/planner"
	"github.com/yukikurage/daily-planner-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type dashboardTestEnv struct {
	db      *gorm.DB
	service *planner.Service
	router  *gin.Engine
}

func setupDashboardTestEnv(t *testing.T) dashboardTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Task{}))

	local, err := localstore.New(t.TempDir())
	require.NoError(t, err)

	service := planner.NewService(repository.NewTaskRepository(db), local, zerolog.Nop())
	handler := NewDashboardHandler(service)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/dashboard", func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, testUserID)
		c.Next()
	}, handler.GetDashboard)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return dashboardTestEnv{db: db, service: service, router: router}
}

func (env dashboardTestEnv) seedTask(t *testing.T, input planner.CreateTaskInput) models.Task {
	t.Helper()
	tasks, err := env.service.Create(testUserID, input)
	require.NoError(t, err)
	for _, task := range tasks {
		if task.FeatureName == input.FeatureName {
			return task
		}
	}
	t.Fatal("seeded task not found")
	return models.Task{}
}

func (env dashboardTestEnv) getDashboard(t *testing.T, url string) dto.DashboardResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, bytes.NewReader(nil))
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var wrapper struct {
		Dashboard dto.DashboardResponse `json:"dashboard"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &wrapper))
	return wrapper.Dashboard
}

func TestDashboard_AggregatesSelectedDay(t *testing.T) {
	env := setupDashboardTestEnv(t)
	day := mustParseDay(t, "2025-03-10")
	high := models.TaskPriorityHigh

	done := env.seedTask(t, planner.CreateTaskInput{
		FeatureName:      "done task",
		Date:             day,
		Priority:         &high,
		EstimatedHours:   1,
		EstimatedMinutes: 30,
	})
	inProgress := env.seedTask(t, planner.CreateTaskInput{
		FeatureName:      "active task",
		Date:             day,
		EstimatedMinutes: 45,
	})
	env.seedTask(t, planner.CreateTaskInput{
		FeatureName: "other day",
		Date:        mustParseDay(t, "2025-03-11"),
	})

	_, err := env.service.SetStatus(testUserID, done.ID, models.TaskStatusDone)
	require.NoError(t, err)
	_, err = env.service.SetStatus(testUserID, inProgress.ID, models.TaskStatusInProgress)
	require.NoError(t, err)

	dashboard := env.getDashboard(t, "/api/dashboard?date=2025-03-10")

	assert.Equal(t, "2025-03-10", dashboard.Date)
	assert.Equal(t, 2, dashboard.TaskCount)
	assert.Equal(t, 1, dashboard.Statuses.Done)
	assert.Equal(t, 1, dashboard.Statuses.InProgress)
	assert.Equal(t, 0, dashboard.Statuses.Untouched)
	assert.Equal(t, 1, dashboard.Priorities.High)
	assert.Equal(t, 1, dashboard.Priorities.None)
	assert.Equal(t, 135, dashboard.Time.TotalMinutes)
	assert.Equal(t, 90, dashboard.Time.DoneMinutes)
	assert.Equal(t, 45, dashboard.Time.InProgressMinutes)
	assert.Equal(t, 0, dashboard.RemainingMinutes)
	assert.Equal(t, "50.0", dashboard.SuccessRate)
	assert.Equal(t, 50.0, dashboard.StatusShares.Done)
}

func TestDashboard_EmptyDayHasNoNaN(t *testing.T) {
	env := setupDashboardTestEnv(t)

	dashboard := env.getDashboard(t, "/api/dashboard?date=2025-01-01")

	assert.Equal(t, 0, dashboard.TaskCount)
	assert.Equal(t, "0", dashboard.SuccessRate)
	assert.Equal(t, 0.0, dashboard.StatusShares.Done)
	assert.Equal(t, 0.0, dashboard.PriorityShares.None)
}

func TestDashboard_InvalidDate(t *testing.T) {
	env := setupDashboardTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard?date=bogus", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
