package store

import (
	"context"

	"items-api/internal/models"
)

// ItemStore is the conditional-write key-value contract every backend
// implements. Existence checks are atomic in the backend; callers never lock.
type ItemStore interface {
	// PutIfAbsent inserts the item only if its key is not already present.
	// Returns ErrAlreadyExists when the key is taken.
	PutIfAbsent(ctx context.Context, item models.Item) error

	// GetByKey returns the item stored under id, or ErrNotFound.
	GetByKey(ctx context.Context, id string) (models.Item, error)

	// UpdateIfPresent applies the given field values to an existing item.
	// Only the fields passed are written. Returns ErrNotFound when no item
	// with the key exists.
	UpdateIfPresent(ctx context.Context, id string, fields map[string]interface{}) error

	// DeleteByKey removes the item under id. Deleting an absent key is not
	// an error.
	DeleteByKey(ctx context.Context, id string) error

	// Close releases any underlying connection resources.
	Close() error
}
