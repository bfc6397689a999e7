// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	_ "organizer-portal/docs" // Required for Swagger
	"organizer-portal/internal/api"
	"organizer-portal/internal/api/handlers"
	"organizer-portal/internal/api/middleware"
	"organizer-portal/internal/auth"
	"organizer-portal/internal/cache"
	"organizer-portal/internal/clock"
	"organizer-portal/internal/config"
	"organizer-portal/internal/crypto"
	"organizer-portal/internal/logging"
	"organizer-portal/internal/ratelimit"
	"organizer-portal/internal/storage"
	"organizer-portal/internal/web"
	"organizer-portal/internal/widget"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// @title           Organizer Portal API
// @version         1.0
// @description     JSON endpoints behind the organizer portal pages and the embeddable ticket widget

// @BasePath  /
func main() {
	// Load configuration from .env
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using system environment variables")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if f, err := os.Create("gin.log"); err == nil {
		gin.DefaultWriter = io.MultiWriter(f, os.Stdout)
	}

	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	auth.InitJWT(cfg)
	clk := clock.NewSystem()
	ctx := context.Background()

	store, closeStore, err := openStore(ctx, cfg, clk, logger)
	if err != nil {
		logger.Fatal("Failed to open data source", zap.String("source", cfg.DataSource), zap.Error(err))
	}
	defer closeStore()

	// Redis is optional: without it the widget is rendered on every request
	// and no rate limits apply.
	var limiter middleware.Limiter
	var widgetCache widget.Cache
	if cfg.Redis.URL != "" {
		rateLimiter, err := ratelimit.NewRateLimiter(cfg.Redis.URL)
		if err != nil {
			logger.Fatal("Failed to initialize rate limiter", zap.Error(err))
		}
		defer rateLimiter.Close()
		limiter = rateLimiter

		redisCache := cache.NewRedisCache(rateLimiter.Client())
		if cfg.DataSource == config.DataSourceDemo {
			// demo data is rebuilt on start, old renders would be stale
			if err := redisCache.Purge(ctx); err != nil {
				logger.Warn("Failed to purge widget cache", zap.Error(err))
			}
		}
		widgetCache = redisCache
	} else {
		logger.Info("REDIS_URL not set, widget cache and rate limits disabled")
	}

	org, err := store.GetOrganizer(ctx)
	if err != nil {
		logger.Fatal("Failed to load organizer", zap.Error(err))
	}

	views, err := web.NewRenderer(org.Currency)
	if err != nil {
		logger.Fatal("Failed to parse templates", zap.Error(err))
	}

	widgets, err := widget.NewService(store, widgetCache, cfg.Widget.CacheTTL, func(err error) bool {
		return errors.Is(err, storage.ErrNotFound)
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize widget service", zap.Error(err))
	}

	h := handlers.NewHandler(store, views, widgets, clk, logger, cfg)

	// Set up and start the server
	router := api.SetupRouter(h, limiter, logger, cfg)

	serverAddr := fmt.Sprintf(":%s", cfg.Server.Port)
	if cfg.Env == "development" {
		logger.Info("Server starting", zap.String("url", "http://localhost"+serverAddr))
		logger.Info("Swagger UI available", zap.String("url", "http://localhost"+serverAddr+"/swagger/index.html"))
	}

	if err := router.Run(serverAddr); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

// openStore returns the store selected by DATA_SOURCE together with a
// function that releases it.
func openStore(ctx context.Context, cfg *config.Config, clk clock.Clock, logger *zap.Logger) (storage.Store, func(), error) {
	seed, err := storage.LoadDemo(clk.Now())
	if err != nil {
		return nil, nil, err
	}

	if cfg.DataSource == config.DataSourceDemo {
		logger.Info("Using in-memory demo data")
		return storage.NewMemoryStore(seed), func() {}, nil
	}

	dbConfig := storage.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
	}

	// Create database if it doesn't exist
	if err := storage.EnsureDatabase(dbConfig); err != nil {
		return nil, nil, err
	}

	db, err := storage.NewDB(dbConfig)
	if err != nil {
		return nil, nil, err
	}

	if err := storage.RunMigrations(db, logger); err != nil {
		db.Close()
		return nil, nil, err
	}

	cipher, err := crypto.NewFieldCipher(cfg.DataKey)
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	store := storage.NewMySQLStore(db, cipher)
	if err := store.SeedDemo(ctx, seed); err != nil {
		db.Close()
		return nil, nil, err
	}
	return store, func() { db.Close() }, nil
}
