package server

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"items-api/internal/config"
	"items-api/internal/store"
	dynamostore "items-api/internal/store/dynamodb"
	sqlitestore "items-api/internal/store/sqlite"
)

// Container holds all application dependencies. It is built once per process
// (Lambda init or server startup) and shared across invocations; the store
// handle it owns is the only cross-invocation state.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger
	Store  store.ItemStore
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	logger := newLogger(cfg)

	itemStore, err := newStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"store_type": cfg.Store.Type,
		"table":      cfg.Store.TableName,
	}).Info("container initialized")

	return &Container{
		Config: cfg,
		Logger: logger,
		Store:  itemStore,
	}, nil
}

// Close releases resources held by the container
func (c *Container) Close() error {
	if c.Store != nil {
		return c.Store.Close()
	}
	return nil
}

// newStore selects the storage backend from configuration.
func newStore(ctx context.Context, cfg *config.Config) (store.ItemStore, error) {
	switch cfg.Store.Type {
	case config.StoreMemory:
		return store.NewMemoryStore(), nil
	case config.StoreSQLite:
		return sqlitestore.Open(cfg.Store.ConnectionString)
	case config.StoreDynamoDB:
		return dynamostore.Connect(ctx, cfg.Store.Region, cfg.Store.Endpoint, cfg.Store.TableName)
	default:
		return nil, fmt.Errorf("unknown store type: %s", cfg.Store.Type)
	}
}

func newLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()
	if cfg.Environment != "development" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger
}
