package main

import (
	"os"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/yukikurage/daily-planner-api/internal/config"
	"github.com/yukikurage/daily-planner-api/internal/constants"
	"github.com/yukikurage/daily-planner-api/internal/database"
	"github.com/yukikurage/daily-planner-api/internal/handlers"
	"github.com/yukikurage/daily-planner-api/internal/localstore"
	"github.com/yukikurage/daily-planner-api/internal/middleware"
	"github.com/yukikurage/daily-planner-api/internal/planner"
	"github.com/yukikurage/daily-planner-api/internal/repository"
	"github.com/yukikurage/daily-planner-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Configure logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.GinMode != "release" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		log.Fatal().Err(err).Msg("failed to add indexes")
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create Redis store")
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionName, store))

	// Local file fallback for degraded task flows
	local, err := localstore.New(cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize local store")
	}

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	habitRepo := repository.NewHabitRepository(db)
	appRepo := repository.NewApplicationRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	plannerService := planner.NewService(taskRepo, local, log.Logger)
	habitService := services.NewHabitService(habitRepo)
	appService := services.NewApplicationService(appRepo)
	articleService := services.NewArticleService(cfg.ArticleFeedURL)

	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey)
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(plannerService)
	dashboardHandler := handlers.NewDashboardHandler(plannerService)
	testCaseHandler := handlers.NewTestCaseHandler(aiService)
	articleHandler := handlers.NewArticleHandler(articleService)
	habitHandler := handlers.NewHabitHandler(habitService)
	appHandler := handlers.NewApplicationHandler(appService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Daily Planner API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.PUT("/reorder", taskHandler.ReorderTasks)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.PUT("/:id/status", taskHandler.SetTaskStatus)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}

		// Dashboard (protected)
		api.GET("/dashboard", middleware.RequireAuth(), dashboardHandler.GetDashboard)

		// Test-case generation (protected)
		api.POST("/testcases/generate", middleware.RequireAuth(), testCaseHandler.GenerateTestCases)

		// Article discovery (protected)
		api.GET("/articles", middleware.RequireAuth(), articleHandler.ListArticles)

		// Habit routes (protected)
		habits := api.Group("/habits")
		habits.Use(middleware.RequireAuth())
		{
			habits.GET("", habitHandler.ListHabits)
			habits.POST("", habitHandler.CreateHabit)
			habits.PATCH("/:id", habitHandler.RenameHabit)
			habits.DELETE("/:id", habitHandler.DeleteHabit)
			habits.POST("/:id/toggle", habitHandler.ToggleHabit)
		}

		// Job application routes (protected)
		apps := api.Group("/applications")
		apps.Use(middleware.RequireAuth())
		{
			apps.GET("", appHandler.ListApplications)
			apps.POST("", appHandler.CreateApplication)
			apps.PATCH("/:id", appHandler.UpdateApplication)
			apps.DELETE("/:id", appHandler.DeleteApplication)
		}
	}

	// Start server
	log.Info().Msg("server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
