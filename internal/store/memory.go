package store

import (
	"context"
	"sync"

	"items-api/internal/models"
)

// MemoryStore is a mutex-guarded in-process backend. It is the default for
// local development and the fixture for handler tests.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]models.Item
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]models.Item),
	}
}

// PutIfAbsent inserts the item only if its key is not already present.
func (s *MemoryStore) PutIfAbsent(ctx context.Context, item models.Item) error {
	id := item.ID()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; ok {
		return NewStoreError("put", id, ErrAlreadyExists)
	}
	s.items[id] = copyItem(item)
	return nil
}

// GetByKey returns a copy of the stored item, so callers cannot mutate the
// store's state.
func (s *MemoryStore) GetByKey(ctx context.Context, id string) (models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		return nil, NewStoreError("get", id, ErrNotFound)
	}
	return copyItem(item), nil
}

// UpdateIfPresent applies the given fields to an existing item.
func (s *MemoryStore) UpdateIfPresent(ctx context.Context, id string, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return NewStoreError("update", id, ErrNotFound)
	}
	for k, v := range fields {
		item[k] = v
	}
	return nil
}

// DeleteByKey removes the item; absent keys are a no-op.
func (s *MemoryStore) DeleteByKey(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, id)
	return nil
}

// Close implements ItemStore; nothing to release.
func (s *MemoryStore) Close() error {
	return nil
}

// Len returns the number of stored items.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func copyItem(item models.Item) models.Item {
	out := make(models.Item, len(item))
	for k, v := range item {
		out[k] = v
	}
	return out
}
