// Package bootstrap wires the stores and services shared by the binaries.
package bootstrap

import (
	"context"
	"fmt"

	"quizbook/internal/adapter"
	"quizbook/internal/adapter/storage"
	"quizbook/internal/cache"
	"quizbook/internal/config"
	"quizbook/internal/database"
	"quizbook/internal/domain"
	"quizbook/internal/logger"
	"quizbook/internal/repository"
	"quizbook/internal/service"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Container holds the wired dependencies. Cache is nil when Redis is not
// configured.
type Container struct {
	DB     *sqlx.DB
	Redis  *redis.Client
	Cache  domain.Cache
	Blobs  domain.BlobStore
	FSRoot string // set when Blobs is the local filesystem store

	Policy  service.AdminPolicy
	Reader  service.QuizReaderService
	Editor  service.QuizEditorService
	Scoring service.ScoringService
}

// New connects to the database, Redis and blob storage and builds the quiz
// services.
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	appLogger := logger.Get()
	c := &Container{}

	db, err := database.Connect(cfg.DB, cfg.GetDSN())
	if err != nil {
		return nil, err
	}
	c.DB = db

	if cfg.Redis.Address != "" {
		client, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			c.Close()
			return nil, err
		}
		c.Redis = client
		c.Cache = adapter.NewRedisCacheAdapter(client)
		appLogger.Info("Quiz cache enabled", zap.String("address", cfg.Redis.Address), zap.Duration("ttl", cfg.Cache.QuizTTL))
	} else {
		appLogger.Warn("Redis address not configured, quiz cache disabled")
	}

	if err := c.initBlobs(ctx, cfg.Storage); err != nil {
		c.Close()
		return nil, err
	}

	repo := repository.NewQuizDatabaseAdapter(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	c.Policy = service.NewAdminPolicy(cfg.Admin.Emails)
	c.Reader = service.NewQuizReaderService(repo, c.Cache, cfg.Cache.QuizTTL)
	c.Editor = service.NewQuizEditorService(repo, txManager, c.Policy, c.Blobs, c.Cache)
	c.Scoring = service.NewScoringService(c.Reader)
	return c, nil
}

func (c *Container) initBlobs(ctx context.Context, cfg config.StorageConfig) error {
	switch cfg.Backend {
	case config.StorageMinIO:
		store, err := storage.NewMinIOStore(ctx, cfg.MinIO, cfg.PublicBaseURL)
		if err != nil {
			return err
		}
		c.Blobs = store
	case config.StorageFS, "":
		store, err := storage.NewFSStore(cfg.FS.Root, cfg.PublicBaseURL)
		if err != nil {
			return err
		}
		c.Blobs = store
		c.FSRoot = store.Root()
	default:
		return fmt.Errorf("unsupported storage backend %q", cfg.Backend)
	}
	logger.Get().Info("Blob storage initialized", zap.String("backend", cfg.Backend))
	return nil
}

// Close releases the connections held by c.
func (c *Container) Close() {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logger.Get().Warn("Failed to close Redis client", zap.Error(err))
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logger.Get().Warn("Failed to close database", zap.Error(err))
		}
	}
}
