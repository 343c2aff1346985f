package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/CiurtinAndrei/ChatApp-backend/internal/config"
	"github.com/CiurtinAndrei/ChatApp-backend/internal/database"
	"github.com/CiurtinAndrei/ChatApp-backend/internal/middleware"
	"github.com/CiurtinAndrei/ChatApp-backend/internal/models"
	"github.com/CiurtinAndrei/ChatApp-backend/internal/routes"
	"github.com/CiurtinAndrei/ChatApp-backend/internal/services"
	"github.com/CiurtinAndrei/ChatApp-backend/pkg/logger"
)

func main() {
	config.LoadConfig()

	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}
	logger.Init(env)

	logger.Info().Str("environment", env).Msg("Starting ChatApp Backend...")

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	database.Connect()
	database.InitRedis()

	logger.Info().Msg("Running database migrations (stage 1: tables)...")

	// User <-> Media reference each other (profile picture / owner), so the
	// constraints go in on a second pass.
	database.DB.Config.DisableForeignKeyConstraintWhenMigrating = true

	tableModels := []interface{}{
		&models.User{},
		&models.Media{},
		&models.Friend{},
		&models.Conversation{},
		&models.Message{},
	}

	for _, m := range tableModels {
		if err := database.DB.AutoMigrate(m); err != nil {
			logger.Fatal().Err(err).Msgf("Failed to migrate table for %T", m)
		}
	}

	logger.Info().Msg("Running database migrations (stage 2: constraints)...")
	database.DB.Config.DisableForeignKeyConstraintWhenMigrating = false
	if err := database.DB.AutoMigrate(tableModels...); err != nil {
		logger.Fatal().Err(err).Msg("Failed to add database constraints")
	}
	logger.Info().Msg("Database migrations complete")

	// Storage layout before accepting requests: uploads/{,rescaled,
	// profilepics,deleted}, retention area purged.
	if err := services.EnsureStorageLayout(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to prepare storage layout")
	}

	r := gin.New()

	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.ErrorHandlerMiddleware())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.GeneralRateLimit())

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		routes.RegisterAuthRoutes(auth)

		routes.RegisterUserRoutes(api)
		routes.RegisterFriendRoutes(api)
		routes.RegisterConversationRoutes(api)
		routes.RegisterMessageRoutes(api)
		routes.RegisterMediaRoutes(api)
	}

	r.GET("/health", func(c *gin.Context) {
		dbStatus := "ok"
		redisStatus := "ok"

		sqlDB, err := database.DB.DB()
		if err != nil || sqlDB.Ping() != nil {
			dbStatus = "error"
		}

		if database.Redis != nil {
			if _, err := database.Redis.Ping(context.Background()).Result(); err != nil {
				redisStatus = "error"
			}
		} else {
			redisStatus = "not configured"
		}

		status := "ok"
		if dbStatus != "ok" {
			status = "degraded"
		}

		c.JSON(200, gin.H{
			"status": status,
			"checks": gin.H{
				"database": dbStatus,
				"redis":    redisStatus,
			},
		})
	})

	port := config.AppConfig.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("port", port).Str("env", env).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited gracefully")
}
