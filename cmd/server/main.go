package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ngoctranle/mediadex/adapters/event"
	httpAdapter "github.com/ngoctranle/mediadex/adapters/http"
	"github.com/ngoctranle/mediadex/adapters/imagecache"
	"github.com/ngoctranle/mediadex/adapters/persistence"
	hintsUC "github.com/ngoctranle/mediadex/internal/application/usecase/hints"
	"github.com/ngoctranle/mediadex/internal/config"
	"github.com/ngoctranle/mediadex/pkg/auth"
	"github.com/ngoctranle/mediadex/pkg/logger"
)

func main() {

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewZapLogger("development").Fatal("cannot load config", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	appLogger.Info("Start Mediadex API Server...")

	// Initialize dependencies
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Redis", err)
	}
	defer redisClient.Close()

	kafkaClient, err := event.NewKafkaProducerClient(cfg)
	if err != nil {
		appLogger.Fatal("cannot init Kafka", err)
	}
	defer kafkaClient.Close()
	appLogger.Info("Initialize Kafka Producers successfully.")

	imageCache, err := imagecache.NewCloudinaryImageCache(cfg, redisClient, appLogger)
	if err != nil {
		appLogger.Fatal("cannot init image cache", err)
	}

	// Repositories
	itemStore := persistence.NewPostgresItemStore(dbPool, appLogger)
	searchIndex := persistence.NewPostgresSearchIndex(dbPool, appLogger)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)

	// Use Cases
	enricher := hintsUC.NewEnricher(itemStore, imageCache, cfg.Search.ProviderTimeout, appLogger)
	searchHintsUseCase := hintsUC.NewSearchHintsUseCase(searchIndex, enricher, kafkaClient, appLogger)

	// HTTP Handlers
	searchHandler := httpAdapter.NewSearchHandler(searchHintsUseCase, appLogger)

	// Middleware
	errorMiddleware := httpAdapter.ErrorMiddleware(appLogger)
	optionalAuth := httpAdapter.OptionalAuthMiddleware(jwtSvc)

	// Setup Gin router
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(errorMiddleware)

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })
		api.GET("/search", optionalAuth, searchHandler.Search)
	}

	appLogger.Info("Server running", zap.String("port", cfg.App.Port))
	if err := router.Run(":" + cfg.App.Port); err != nil {
		appLogger.Fatal("Cannot run server", err)
	}
}
