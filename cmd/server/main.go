package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/modubox/lockerhub/backend-go/internal/api"
	"github.com/modubox/lockerhub/backend-go/internal/config"
	"github.com/modubox/lockerhub/backend-go/internal/database"
	"github.com/modubox/lockerhub/backend-go/internal/database/repository"
	"github.com/modubox/lockerhub/backend-go/internal/database/service"
	"github.com/modubox/lockerhub/backend-go/internal/handler"
	"github.com/modubox/lockerhub/backend-go/internal/logger"
	"github.com/modubox/lockerhub/backend-go/internal/middleware"
	"github.com/modubox/lockerhub/backend-go/internal/weather"
)

func main() {
	// 1. Config (.env is optional, real env wins)
	_ = godotenv.Load()
	cfg := config.LoadConfig()

	// 2. Logger
	appLogger := logger.New(cfg)

	appLogger.Info("🚀 [Go] Starting LockerHub API...",
		"environment", cfg.AppEnv,
	)

	// 3. Connect to Database
	if err := database.ConnectDatabase(cfg, appLogger); err != nil {
		appLogger.Error("❌ Failed to connect to database", "error", err)
		os.Exit(1)
	}

	db := database.GetDatabase()

	// 4. Initialize Repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	stationRepo := repository.NewStationRepository(db)
	lockerRepo := repository.NewLockerRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// 5. Initialize Redis Client (weather cache)
	redisClient, err := database.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Warn("⚠️ Failed to connect to Redis for weather cache", "error", err)
		appLogger.Info("💡 Weather lookups will go straight to the API (no caching)")
		// Continue without Redis - station details still work
	}
	defer redisClient.Close()

	// 6. Weather client
	weatherClient := weather.NewClient(cfg, appLogger)

	// 7. Initialize Services
	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg, appLogger)
	userService := service.NewUserService(userRepo, refreshTokenRepo, appLogger)
	stationService := service.NewStationService(stationRepo, weatherClient, redisClient, appLogger)
	lockerService := service.NewLockerService(lockerRepo, stationRepo, appLogger)
	postService := service.NewPostService(postRepo, appLogger)
	commentService := service.NewCommentService(commentRepo, postRepo, appLogger)

	// 8. Initialize Handlers & Middleware
	authHandler := handler.NewAuthHandler(authService, appLogger)
	userHandler := handler.NewUserHandler(userService, appLogger)
	stationHandler := handler.NewStationHandler(stationService, appLogger)
	lockerHandler := handler.NewLockerHandler(lockerService, appLogger)
	postHandler := handler.NewPostHandler(postService, appLogger)
	commentHandler := handler.NewCommentHandler(commentService, appLogger)
	authMiddleware := middleware.NewAuthMiddleware(authService, appLogger)

	r := api.SetupRouter(
		authHandler,
		userHandler,
		stationHandler,
		lockerHandler,
		postHandler,
		commentHandler,
		authMiddleware,
	)

	// 9. Start HTTP Server
	addr := fmt.Sprintf(":%s", cfg.ApiServicePort)
	appLogger.Info("🌍 [Go] HTTP Server running on port...", "port", addr)
	if err := r.Run(addr); err != nil {
		appLogger.Error("❌ HTTP Server failed to start", "error", err)
		os.Exit(1)
	}
}
