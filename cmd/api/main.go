package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/pageza/workwise/backend/config"
	"github.com/pageza/workwise/backend/internal/api"
	"github.com/pageza/workwise/backend/internal/database"
	"github.com/pageza/workwise/backend/internal/logger"
	"github.com/pageza/workwise/backend/internal/middleware"
	"github.com/pageza/workwise/backend/internal/server"
	"github.com/pageza/workwise/backend/internal/service"
	"github.com/pageza/workwise/backend/internal/storage"
)

func main() {
	log := logger.Must(config.GetEnvironment())
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}

	db, err := database.New(cfg, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.RunMigrations(db, envOr("MIGRATIONS_DIR", "migrations"), log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("failed to get sql.DB", zap.Error(err))
	}
	defer sqlDB.Close()

	// Redis only backs the sign-up rate limit, so run without it when it is down
	var signupLimiter *middleware.RateLimiter
	redisClient, err := database.NewRedisClient(cfg, log)
	if err != nil {
		log.Warn("redis unavailable, sign-up rate limiting disabled", zap.Error(err))
	} else {
		defer redisClient.Close()
		signupLimiter = middleware.NewSignupRateLimiter(redisClient, cfg.SignupRateLimit, cfg.SignupRateWindow, log)
	}

	ctx := context.Background()
	caps := config.ResolveCapabilities(cfg)
	limits := storage.PhotoLimits{MaxBytes: cfg.Blob.MaxPhotoBytes, AllowedTypes: cfg.Blob.AllowedTypes}

	photos, err := newPhotoStore(ctx, cfg.Blob, limits, log)
	if err != nil {
		log.Fatal("failed to initialize photo storage", zap.Error(err))
	}
	if photos == nil {
		log.Warn("no blob backend configured, profiles will be saved without uploaded photos")
	}

	authService := service.NewAuthService(db, cfg.JWTSecret, log).WithTokenTTL(cfg.TokenTTL)
	if caps.ProviderEnabled(config.ProviderGoogle) {
		authService.RegisterProvider(config.ProviderGoogle, service.NewGoogleVerifier(cfg.OAuth.GoogleClientID))
	}
	if caps.ProviderEnabled(config.ProviderFacebook) {
		authService.RegisterProvider(config.ProviderFacebook, service.NewFacebookVerifier(
			cfg.OAuth.FacebookGraph, cfg.OAuth.FacebookAppID, &http.Client{Timeout: 10 * time.Second},
		))
	}
	profileService := service.NewProfileService(db)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	signupService := service.NewSignupService(service.SignupDeps{
		Auth:     authService,
		Profiles: profileService,
		Photos:   photos,
		Limits:   limits,
		Caps:     caps,
		Metrics:  service.NewMetrics(registry),
		Logger:   log,
	})

	srv := server.New(cfg, api.Deps{
		Auth:          authService,
		Profiles:      profileService,
		Signup:        signupService,
		SignupLimiter: signupLimiter,
		DB:            sqlDB,
		MaxPhotoBytes: cfg.Blob.MaxPhotoBytes,
		Logger:        log,
	}, registry)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		log.Info("received signal", zap.String("signal", sig.String()))
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	}
	log.Info("server stopped")
}

// newPhotoStore returns nil when the blob backend is "none"
func newPhotoStore(ctx context.Context, blob config.BlobConfig, limits storage.PhotoLimits, log *zap.Logger) (storage.PhotoStore, error) {
	switch blob.Backend {
	case config.BlobBackendS3:
		s3Config, err := config.NewS3Config(ctx, blob)
		if err != nil {
			return nil, err
		}
		return storage.NewS3PhotoStore(s3Config, limits, log), nil
	case config.BlobBackendMinio:
		store, err := storage.NewMinioPhotoStore(ctx, blob, limits, log)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, nil
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
