// @title        Alumni Network API
// @version      1.0
// @description  Alumni network: accounts, directory, events, mentorships, resources and dashboard.
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	_ "github.com/alumnihub/alumni-network/docs"
	"github.com/alumnihub/alumni-network/internal/api"
	"github.com/alumnihub/alumni-network/internal/api/handler"
	"github.com/alumnihub/alumni-network/internal/core/ports"
	"github.com/alumnihub/alumni-network/internal/core/service"
	mongodb "github.com/alumnihub/alumni-network/internal/infrastructure/db/mongo"
	redisdb "github.com/alumnihub/alumni-network/internal/infrastructure/db/redis"
	"github.com/alumnihub/alumni-network/internal/infrastructure/queue"
	"github.com/alumnihub/alumni-network/internal/infrastructure/storage"
	"github.com/alumnihub/alumni-network/internal/pkg/config"
	"github.com/alumnihub/alumni-network/internal/pkg/password"
	"github.com/alumnihub/alumni-network/internal/pkg/token"
	"github.com/alumnihub/alumni-network/pkg/logger"
)

const (
	shutdownTimeout = 10 * time.Second
	uploadsPath     = "/uploads"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "alumni-api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "alumni-api",
	})

	// --- Datastores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "alumni-api",
	})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(dctx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	users := mongodb.NewUserRepository(db)
	events := mongodb.NewEventRepository(db)
	mentorships := mongodb.NewMentorshipRepository(db)
	resources := mongodb.NewResourceRepository(db)
	activities := mongodb.NewActivityRepository(db)
	if err := mongodb.EnsureIndexes(ctx, users, events, mentorships, resources, activities); err != nil {
		return err
	}

	// --- File storage ---
	files, uploadDir, err := newFileStore(ctx, cfg)
	if err != nil {
		return err
	}

	// --- Auth core ---
	hasher, err := password.NewHasher(cfg.Auth.PasswordCost)
	if err != nil {
		return err
	}
	tokens, err := token.NewManager([]byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL)
	if err != nil {
		return err
	}

	// --- Activity pipeline ---
	activityService := service.NewActivityService(activities, redisdb.NewDedupChecker(rdb), log)
	dispatcher := queue.NewDispatcher(cfg.Activity.Workers, activityService, logger.Component("activity"))
	dispatcher.Start()

	// --- Services ---
	authService := service.NewAuthService(users, hasher, tokens, files, log)

	e := api.NewRouter(api.Deps{
		Auth:       authService,
		Profiles:   service.NewProfileService(users, files, dispatcher, log),
		Events:     service.NewEventService(events, files, dispatcher, log),
		Mentorship: service.NewMentorshipService(mentorships, users, dispatcher, log),
		Resources:  service.NewResourceService(resources, users, authService, files, dispatcher, log),
		Dashboard:  service.NewDashboardService(users, events, mentorships, resources, activities, log),
		Tokens:     tokens,
		Roles:      authService,
		HealthChecks: map[string]handler.Check{
			"mongodb": func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) },
			"redis":   func(ctx context.Context) error { return redisdb.Ping(ctx, rdb) },
		},
		UploadDir: uploadDir,
		Metrics:   true,
		Log:       log,
	})
	e.Server.ReadHeaderTimeout = 5 * time.Second

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			_ = dispatcher.Stop(context.Background())
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown")
	}

	// Handlers have returned, so nothing enqueues any more.
	if err := dispatcher.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("activity queue not drained")
	}
	log.Info().Msg("shutdown complete")
	return nil
}

// newFileStore builds the configured upload backend. The returned directory is
// non-empty only for the local backend and is served under /uploads.
func newFileStore(ctx context.Context, cfg *config.Config) (ports.FileStore, string, error) {
	switch cfg.Storage.Backend {
	case config.StorageS3:
		s, err := storage.NewS3Store(ctx, storage.S3Config{
			Bucket:    cfg.Storage.Bucket,
			Region:    cfg.Storage.Region,
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
		})
		if err != nil {
			return nil, "", err
		}
		return s, "", nil
	default:
		s, err := storage.NewLocalStore(cfg.Storage.UploadDir, uploadsPath)
		if err != nil {
			return nil, "", err
		}
		return s, s.Root(), nil
	}
}
