// Package sqlite implements the item store on a single SQLite table, storing
// each item as a JSON document. Conditional semantics come from statement
// atomicity: the primary key rejects duplicate inserts, and RowsAffected
// reveals whether an update found its row.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite3 "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	sqlite3 "github.com/mattn/go-sqlite3"

	"items-api/internal/models"
	"items-api/internal/store"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Store is a SQLite-backed ItemStore.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and brings the schema up to
// date.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// An in-memory database exists per connection; the pool must not open a
	// second one.
	if strings.Contains(path, ":memory:") {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Migrate applies the embedded schema migrations to db.
func Migrate(db *sql.DB) error {
	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return err
	}

	driver, err := migratesqlite3.WithInstance(db, &migratesqlite3.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// PutIfAbsent inserts the item; a primary-key violation means the key is
// taken.
func (s *Store) PutIfAbsent(ctx context.Context, item models.Item) error {
	id := item.ID()

	raw, err := json.Marshal(item)
	if err != nil {
		return store.NewStoreError("put", id, err)
	}

	_, err = s.db.ExecContext(ctx, `INSERT INTO items (id, data) VALUES (?, ?)`, id, string(raw))
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			return store.NewStoreError("put", id, store.ErrAlreadyExists)
		}
		return store.NewStoreError("put", id, err)
	}
	return nil
}

// GetByKey performs a point lookup by primary key.
func (s *Store) GetByKey(ctx context.Context, id string) (models.Item, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM items WHERE id = ?`, id).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.NewStoreError("get", id, store.ErrNotFound)
		}
		return nil, store.NewStoreError("get", id, err)
	}

	var item models.Item
	if err := json.Unmarshal([]byte(raw), &item); err != nil {
		return nil, store.NewStoreError("get", id, err)
	}
	return item, nil
}

// UpdateIfPresent rewrites only the given fields inside the stored document
// with nested json_set calls. Zero affected rows means the key was absent.
func (s *Store) UpdateIfPresent(ctx context.Context, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return store.NewStoreError("update", id, errors.New("no fields to update"))
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	expr := "data"
	args := make([]interface{}, 0, 2*len(fields)+1)
	for _, k := range keys {
		expr = "json_set(" + expr + ", ?, ?)"
		args = append(args, "$."+k, fields[k])
	}
	args = append(args, id)

	res, err := s.db.ExecContext(ctx, `UPDATE items SET data = `+expr+` WHERE id = ?`, args...)
	if err != nil {
		return store.NewStoreError("update", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return store.NewStoreError("update", id, err)
	}
	if affected == 0 {
		return store.NewStoreError("update", id, store.ErrNotFound)
	}
	return nil
}

// DeleteByKey deletes the row; absent keys are a no-op.
func (s *Store) DeleteByKey(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id); err != nil {
		return store.NewStoreError("delete", id, err)
	}
	return nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
