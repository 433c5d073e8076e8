package cli

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"dni-registry/internal/config"
	"dni-registry/internal/repository"
	"dni-registry/internal/repository/document"
	"dni-registry/internal/repository/memory"
	"dni-registry/internal/repository/postgres"
	"dni-registry/internal/repository/sqlite"
	"dni-registry/internal/storage"
)

// openRepository builds the backend selected by cfg.Store.Backend.
func openRepository(ctx context.Context, cfg config.Config, logger logrus.FieldLogger) (repository.UserRepository, error) {
	switch cfg.Store.Backend {
	case config.BackendFile, "":
		logger.Debugf("using json file %s", cfg.Store.Path)
		repo, err := document.OpenFile(ctx, cfg.Store.Path, document.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		return repo, nil

	case config.BackendMemory:
		return memory.NewUserRepository(), nil

	case config.BackendSQLite:
		db, err := sqlite.Open(cfg.Database.Path)
		if err != nil {
			return nil, err
		}
		repo := sqlite.NewUserRepository(db)
		if err := repo.Init(ctx); err != nil {
			repo.Close()
			return nil, fmt.Errorf("init user repository: %w", err)
		}
		logger.Debugf("using sqlite database %s", cfg.Database.Path)
		return repo, nil

	case config.BackendPostgres:
		pool, err := postgres.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, err
		}
		repo := postgres.NewUserRepository(pool)
		if err := repo.Init(ctx); err != nil {
			repo.Close()
			return nil, fmt.Errorf("init user repository: %w", err)
		}
		return repo, nil

	case config.BackendS3:
		medium, err := buildS3Medium(ctx, cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("setup storage: %w", err)
		}
		repo, err := document.Open(ctx, medium, document.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		return repo, nil

	case config.BackendRedis:
		client, err := buildRedisClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		repo, err := document.Open(ctx, storage.NewRedisMedium(client, cfg.Redis.Key), document.WithLogger(logger))
		if err != nil {
			client.Close()
			return nil, err
		}
		return &closingRepository{UserRepository: repo, close: client.Close}, nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func buildS3Medium(ctx context.Context, cfg config.Config, logger logrus.FieldLogger) (*storage.S3Medium, error) {
	medium, err := storage.OpenS3(ctx, storage.S3Config{
		Bucket:   cfg.Storage.Bucket,
		Key:      cfg.Storage.Key,
		Region:   cfg.Storage.Region,
		Endpoint: cfg.Storage.Endpoint,
		Profile:  cfg.AWS.Profile,
	})
	if err != nil {
		return nil, err
	}
	logger.WithField("region", cfg.Storage.Region).Debugf("using %s", medium)
	return medium, nil
}

func buildRedisClient(ctx context.Context, cfg config.Config) (*redis.Client, error) {
	if cfg.Redis.URL == "" {
		return nil, fmt.Errorf("redis url is required")
	}
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

// closingRepository releases an extra resource after the wrapped repository.
type closingRepository struct {
	repository.UserRepository
	close func() error
}

func (r *closingRepository) Close() error {
	if err := r.UserRepository.Close(); err != nil {
		return err
	}
	return r.close()
}
