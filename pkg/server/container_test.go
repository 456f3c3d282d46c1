package server

import (
	"context"
	"testing"

	"items-api/internal/config"
	"items-api/internal/models"
)

func TestNewContainerMemoryStore(t *testing.T) {
	cfg := &config.Config{
		Environment: "development",
		Store:       config.StoreConfig{Type: config.StoreMemory, TableName: "items"},
	}

	container, err := NewContainer(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewContainer(): %v", err)
	}
	defer container.Close()

	if container.Store == nil {
		t.Fatal("container has no store")
	}
	if err := container.Store.PutIfAbsent(context.Background(), models.Item{"id": "a"}); err != nil {
		t.Errorf("store not usable: %v", err)
	}
}

func TestNewContainerSQLiteStore(t *testing.T) {
	cfg := &config.Config{
		Environment: "development",
		Store: config.StoreConfig{
			Type:             config.StoreSQLite,
			ConnectionString: t.TempDir() + "/items.db",
		},
	}

	container, err := NewContainer(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewContainer(): %v", err)
	}
	if err := container.Close(); err != nil {
		t.Errorf("Close(): %v", err)
	}
}

func TestNewContainerUnknownStore(t *testing.T) {
	cfg := &config.Config{
		Environment: "development",
		Store:       config.StoreConfig{Type: "etcd"},
	}

	if _, err := NewContainer(context.Background(), cfg); err == nil {
		t.Fatal("NewContainer() accepted unknown store type")
	}
}
