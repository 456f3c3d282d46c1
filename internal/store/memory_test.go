package store

import (
	"context"
	"sync"
	"testing"

	"items-api/internal/models"
)

func TestMemoryStorePutIfAbsent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.PutIfAbsent(ctx, models.Item{"id": "a", "name": "first"}); err != nil {
		t.Fatalf("PutIfAbsent() on fresh key: %v", err)
	}

	err := s.PutIfAbsent(ctx, models.Item{"id": "a", "name": "second"})
	if !IsAlreadyExists(err) {
		t.Fatalf("PutIfAbsent() on taken key = %v, want ErrAlreadyExists", err)
	}

	// The losing put must not have touched the stored item.
	item, err := s.GetByKey(ctx, "a")
	if err != nil {
		t.Fatalf("GetByKey() after conflict: %v", err)
	}
	if item["name"] != "first" {
		t.Errorf("stored item changed by failed put: name = %v", item["name"])
	}
}

func TestMemoryStoreGetByKey(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, err := s.GetByKey(ctx, "missing"); !IsNotFound(err) {
		t.Fatalf("GetByKey() on absent key = %v, want ErrNotFound", err)
	}

	if err := s.PutIfAbsent(ctx, models.Item{"id": "a", "n": 1.0}); err != nil {
		t.Fatal(err)
	}

	item, err := s.GetByKey(ctx, "a")
	if err != nil {
		t.Fatalf("GetByKey(): %v", err)
	}

	// Mutating the returned copy must not leak back into the store.
	item["n"] = 2.0
	again, _ := s.GetByKey(ctx, "a")
	if again["n"] != 1.0 {
		t.Errorf("returned item aliases store state: n = %v", again["n"])
	}
}

func TestMemoryStoreUpdateIfPresent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	err := s.UpdateIfPresent(ctx, "missing", map[string]interface{}{"modified": "x"})
	if !IsNotFound(err) {
		t.Fatalf("UpdateIfPresent() on absent key = %v, want ErrNotFound", err)
	}

	if err := s.PutIfAbsent(ctx, models.Item{"id": "a", "name": "widget", "modified": "t0"}); err != nil {
		t.Fatal(err)
	}
	if err := s.UpdateIfPresent(ctx, "a", map[string]interface{}{"modified": "t1"}); err != nil {
		t.Fatalf("UpdateIfPresent(): %v", err)
	}

	item, _ := s.GetByKey(ctx, "a")
	if item["modified"] != "t1" {
		t.Errorf("modified = %v, want t1", item["modified"])
	}
	if item["name"] != "widget" {
		t.Errorf("untouched field changed: name = %v", item["name"])
	}
}

func TestMemoryStoreDeleteByKey(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	// Idempotent: deleting an absent key succeeds.
	if err := s.DeleteByKey(ctx, "missing"); err != nil {
		t.Fatalf("DeleteByKey() on absent key: %v", err)
	}

	if err := s.PutIfAbsent(ctx, models.Item{"id": "a"}); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteByKey(ctx, "a"); err != nil {
		t.Fatalf("DeleteByKey(): %v", err)
	}
	if err := s.DeleteByKey(ctx, "a"); err != nil {
		t.Fatalf("second DeleteByKey(): %v", err)
	}
	if _, err := s.GetByKey(ctx, "a"); !IsNotFound(err) {
		t.Fatalf("GetByKey() after delete = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	const racers = 32
	var wg sync.WaitGroup
	wins := make(chan struct{}, racers)

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.PutIfAbsent(ctx, models.Item{"id": "contested"}); err == nil {
				wins <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(wins)

	var won int
	for range wins {
		won++
	}
	if won != 1 {
		t.Errorf("%d concurrent creates succeeded, want exactly 1", won)
	}
}
