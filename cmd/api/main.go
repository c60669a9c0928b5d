package main

// @title Scenic Route Service API
// @version 1.0.0
// @description Сервис генерации живописных автомобильных маршрутов. Строит путь от старта до финиша с остановками у интересных мест, укладываясь в заданный бюджет прироста времени.
// @description
// @description Основные возможности:
// @description - Синхронная и асинхронная генерация маршрута с остановками у POI
// @description - Отслеживание прогресса генерации
// @description - Проверка нахождения путешественника на маршруте по закодированному пути

// @contact.name API Support
// @contact.email support@scenic-route-service.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/scenic-route-service/docs"
	"github.com/scenic-route-service/internal/config"
	httpDelivery "github.com/scenic-route-service/internal/delivery/http"
	"github.com/scenic-route-service/internal/delivery/http/handler"
	"github.com/scenic-route-service/internal/infrastructure/google"
	"github.com/scenic-route-service/internal/pkg/logger"
	"github.com/scenic-route-service/internal/repository/cache"
	"github.com/scenic-route-service/internal/repository/postgres"
	redisRepo "github.com/scenic-route-service/internal/repository/redis"
	"github.com/scenic-route-service/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Scenic Route Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize Repositories
	// Один клиент Google Maps Platform закрывает геокодирование,
	// directions и nearby-поиск
	googleClient := google.NewClient(&cfg.Google, log)
	generationRepo := postgres.NewGenerationRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)

	log.Info("Repositories initialized")

	// 7. Initialize Use Cases
	discoveryUC := usecase.NewPOIDiscoveryUseCase(googleClient, cfg.Route, log)
	selectorUC := usecase.NewVariantSelectorUseCase(googleClient, log)

	routeUC := usecase.NewRouteUseCase(
		googleClient,
		googleClient,
		generationRepo,
		cacheRepo,
		streamRepo,
		discoveryUC,
		selectorUC,
		cfg.Route,
		cfg.Cache,
		log,
	)

	validateLocationUC := usecase.NewValidateLocationUseCase(cfg.Route, log)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP Handlers
	routeHandler := handler.NewRouteHandler(routeUC, validateLocationUC, log)

	log.Info("HTTP handlers initialized")

	// 9. Initialize HTTP Server
	server := httpDelivery.NewServer(cfg, log, routeHandler)

	log.Info("HTTP server initialized")

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if err := db.Close(); err != nil {
		log.Error("Failed to close database", zap.Error(err))
	}

	if err := redisClient.Close(); err != nil {
		log.Error("Failed to close Redis", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
