package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pageza/nutriplan/backend/config"
	"github.com/pageza/nutriplan/backend/internal/api"
	"github.com/pageza/nutriplan/backend/internal/cache"
	"github.com/pageza/nutriplan/backend/internal/catalog"
	"github.com/pageza/nutriplan/backend/internal/database"
	"github.com/pageza/nutriplan/backend/internal/evaluator"
	"github.com/pageza/nutriplan/backend/internal/logging"
	"github.com/pageza/nutriplan/backend/internal/middleware"
	"github.com/pageza/nutriplan/backend/internal/repository"
	"github.com/pageza/nutriplan/backend/internal/router"
	"github.com/pageza/nutriplan/backend/internal/server"
	"github.com/pageza/nutriplan/backend/internal/service"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logger := logging.Setup(config.IsDevelopment())
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := run(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}

func run(cfg *config.Config, logger zerolog.Logger) error {
	ctx := context.Background()

	rulesCfg, err := config.LoadRulesConfig(cfg.RulesFile)
	if err != nil {
		return err
	}

	db, err := database.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)
	if err := database.RunMigrations(ctx, db); err != nil {
		return err
	}

	src, err := catalogSource(ctx, cfg, db)
	if err != nil {
		return err
	}
	ds, err := src.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load food catalog: %w", err)
	}
	logger.Info().Str("source", ds.Source()).Int("foods", ds.Len()).Msg("food catalog loaded")

	checks := map[string]api.HealthCheck{
		"database": func(ctx context.Context) error { return database.HealthCheck(ctx, db) },
	}

	var evalCache service.EvaluationCache = cache.Noop{}
	var limiter gin.HandlerFunc
	if cfg.RedisHost != "" || cfg.RedisURL != "" {
		client, err := database.NewRedisClient(ctx, cfg)
		if err != nil {
			return err
		}
		defer client.Close()
		evalCache = cache.NewRedisCache(client, cfg.CacheTTL)
		limiter = middleware.NewEvaluationRateLimiter(client, cfg.RateLimit, cfg.RateLimitWindow).RateLimitMiddleware()
		checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
	} else {
		logger.Warn().Msg("redis not configured, evaluation cache and rate limiting disabled")
	}

	ev := evaluator.NewFromConfig(rulesCfg, ds)
	svc := service.NewRecommendationService(ev, evalCache, repository.NewPlanRepository(db), logger)

	handlers := router.Handlers{
		Recommendation: api.NewRecommendationHandler(svc, limiter),
		Catalog:        api.NewCatalogHandler(svc),
		Health:         api.NewHealthHandler(checks, gin.H{"catalog": ds.Source(), "foods": ds.Len()}),
	}
	if cfg.JWTSecret != "" {
		handlers.Admin = api.NewAdminHandler(svc, service.NewOperatorAuthService(cfg.JWTSecret, 24*time.Hour))
	} else {
		logger.Warn().Msg("JWT_SECRET not set, admin routes disabled")
	}

	srv := server.New(cfg, router.SetupRouter(logger, cfg.AllowedOrigins, handlers), logger)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("shutting down server")
	}
	return srv.Shutdown(context.Background())
}

func catalogSource(ctx context.Context, cfg *config.Config, db *gorm.DB) (catalog.Source, error) {
	switch cfg.CatalogSource {
	case config.CatalogEmbedded, "":
		return catalog.EmbeddedSource{}, nil
	case config.CatalogFile:
		return catalog.FileSource{Path: cfg.CatalogPath}, nil
	case config.CatalogS3:
		s3Cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return catalog.S3Source{Client: s3Cfg.Client, Bucket: s3Cfg.BucketName, Key: s3Cfg.Key}, nil
	case config.CatalogDatabase:
		return repository.NewFoodRepository(db), nil
	}
	return nil, fmt.Errorf("unknown catalog source %q", cfg.CatalogSource)
}
