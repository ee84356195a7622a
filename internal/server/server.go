package server

import (
	"context"
	"log"
	"net/http"

	"github.com/SaaiAravindhRaja/CodeCoach/configs"
	"github.com/SaaiAravindhRaja/CodeCoach/internal/dbs"
	"github.com/SaaiAravindhRaja/CodeCoach/internal/handlers"
	"github.com/SaaiAravindhRaja/CodeCoach/internal/logger"
	"github.com/SaaiAravindhRaja/CodeCoach/internal/middlewares"
	"github.com/SaaiAravindhRaja/CodeCoach/internal/repositories"
	"github.com/SaaiAravindhRaja/CodeCoach/internal/services"
	"github.com/SaaiAravindhRaja/CodeCoach/internal/workerpool"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func StartGinServer() {
	logger.InitLogger()
	defer logger.SyncLogger()

	config := configs.LoadConfig()

	db, err := dbs.Init(config)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := dbs.CreateSchema(db); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}

	ctx := context.Background()
	if err := dbs.InitRedis(ctx, config.RedisAddr); err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}
	defer dbs.CloseRedis()

	cache := services.NewRedisCache(dbs.RedisClient)
	problemRepo := repositories.NewProblemRepository(db, cache)
	sessionRepo := repositories.NewSessionRepository(db)
	progressRepo := repositories.NewProgressRepository(db)

	if err := SeedProblems(ctx, problemRepo); err != nil {
		log.Fatalf("Failed to seed problems: %v", err)
	}

	audioStorage, err := services.NewAudioStorage(config.UploadDir)
	if err != nil {
		log.Fatalf("Failed to initialize audio storage: %v", err)
	}
	transcription := services.NewTranscriptionService(config.ElevenLabsKey)
	evaluation := services.NewEvaluationService(config.AnthropicKey)

	pool := workerpool.NewStatsWorkerPool(config.NumberOfWorkers, dbs.RedisClient,
		handlers.CompletionStream, "stats_workers", sessionRepo, progressRepo)
	if err := pool.Start(ctx); err != nil {
		logger.Log.Error("Failed starting worker pool")
		log.Fatalf("failed to start worker pool: %v", err)
	}
	defer pool.Stop()

	router := gin.New()
	router.Use(middlewares.ErrorHandlerMiddleware())
	router.Use(middlewares.ProviderKeyMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000", "http://127.0.0.1:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", middlewares.AnthropicKeyHeader, middlewares.ElevenLabsKeyHeader},
		AllowCredentials: true,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "codecoach-api"})
	})

	handlers.NewProblemHandler(problemRepo).RegisterRoutes(router)
	handlers.NewSessionHandler(sessionRepo, problemRepo, transcription, evaluation, audioStorage, dbs.RedisClient).RegisterRoutes(router)
	handlers.NewStatsHandler(sessionRepo, progressRepo).RegisterRoutes(router)

	port := ":" + config.ServerPort
	log.Printf("Starting server on port %s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
