package storage_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/blinksale/rate-limiting/internal/storage"
)

func TestMemoryStoreExists(t *testing.T) {
	store := storage.NewMemoryStore()
	defer store.Close()

	ctx := context.Background()

	exists, err := store.Exists(ctx, "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists {
		t.Errorf("missing key should not exist")
	}

	if err := store.Set(ctx, "fingerprint", "3:1700000000"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	exists, err = store.Exists(ctx, "fingerprint")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Errorf("key should exist after Set")
	}
}

func TestMemoryStoreGetMissing(t *testing.T) {
	store := storage.NewMemoryStore()
	defer store.Close()

	val, err := store.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if val != "" {
		t.Errorf("missing key should read as empty, got %q", val)
	}
}

func TestMemoryStoreSetOverwrites(t *testing.T) {
	store := storage.NewMemoryStore()
	defer store.Close()

	ctx := context.Background()

	if err := store.Set(ctx, "fingerprint", "1:100"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Set(ctx, "fingerprint", "2:100"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	val, err := store.Get(ctx, "fingerprint")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if val != "2:100" {
		t.Errorf("expected overwritten value 2:100, got %q", val)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	store := storage.NewMemoryStore()
	defer store.Close()

	ctx := context.Background()

	if err := store.Set(ctx, "fingerprint", "1:100"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Delete(ctx, "fingerprint"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	exists, err := store.Exists(ctx, "fingerprint")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists {
		t.Errorf("key should not exist after Delete")
	}

	// Deleting a missing key is not an error
	if err := store.Delete(ctx, "missing"); err != nil {
		t.Errorf("delete of missing key should not fail: %v", err)
	}
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	store := storage.NewMemoryStore()
	defer store.Close()

	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", n%5)
			if err := store.Set(ctx, key, "1:100"); err != nil {
				t.Errorf("set failed: %v", err)
			}
			if _, err := store.Get(ctx, key); err != nil {
				t.Errorf("get failed: %v", err)
			}
			if _, err := store.Exists(ctx, key); err != nil {
				t.Errorf("exists failed: %v", err)
			}
		}(i)
	}
	wg.Wait()
}
