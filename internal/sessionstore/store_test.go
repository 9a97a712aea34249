package sessionstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
)

func createTestBadgerDB(t *testing.T) *badger.DB {
	t.Helper()
	dir := t.TempDir()
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		t.Fatalf("open badger db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func stores(t *testing.T) map[string]Store {
	t.Helper()
	return map[string]Store{
		"memory": NewMemoryStore(),
		"badger": NewBadgerStore(createTestBadgerDB(t)),
	}
}

func TestStoreGetUnknownReturnsNotFound(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := store.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestStoreAppendCreatesAndGrowsSession(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if _, err := store.Append(ctx, "s1", 100, time.Hour, 10); err != nil {
				t.Fatalf("append 1: %v", err)
			}
			sess, err := store.Append(ctx, "s1", 200, time.Hour, 10)
			if err != nil {
				t.Fatalf("append 2: %v", err)
			}
			if len(sess.Items) != 2 || sess.Items[0] != 100 || sess.Items[1] != 200 {
				t.Errorf("expected [100 200], got %v", sess.Items)
			}

			fetched, err := store.Get(ctx, "s1")
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if len(fetched.Items) != 2 {
				t.Errorf("expected stored session to retain 2 items, got %v", fetched.Items)
			}
		})
	}
}

func TestStoreAppendTrimsToMaxItems(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			var sess *EvolvingSession
			var err error
			for i := int64(1); i <= 5; i++ {
				sess, err = store.Append(ctx, "bounded", i, time.Hour, 3)
				if err != nil {
					t.Fatalf("append %d: %v", i, err)
				}
			}
			if len(sess.Items) != 3 {
				t.Fatalf("expected trimming to 3 items, got %v", sess.Items)
			}
			want := []int64{3, 4, 5}
			for i, item := range sess.Items {
				if item != want[i] {
					t.Errorf("expected %v, got %v", want, sess.Items)
					break
				}
			}
		})
	}
}

func TestStoreGetExpiredReturnsExpired(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if _, err := store.Append(ctx, "expiring", 1, time.Millisecond, 10); err != nil {
				t.Fatalf("append: %v", err)
			}
			time.Sleep(20 * time.Millisecond)

			_, err := store.Get(ctx, "expiring")
			if !errors.Is(err, ErrExpired) && !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrExpired or ErrNotFound (badger TTL GC), got %v", err)
			}
		})
	}
}

func TestStoreDeleteRemovesSession(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if _, err := store.Append(ctx, "doomed", 1, time.Hour, 10); err != nil {
				t.Fatalf("append: %v", err)
			}
			if err := store.Delete(ctx, "doomed"); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if _, err := store.Get(ctx, "doomed"); !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound after delete, got %v", err)
			}
		})
	}
}

func TestStoreCleanupExpiredRemovesOnlyExpired(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if _, err := store.Append(ctx, "fresh", 1, time.Hour, 10); err != nil {
				t.Fatalf("append fresh: %v", err)
			}
			if _, err := store.Append(ctx, "stale", 1, time.Millisecond, 10); err != nil {
				t.Fatalf("append stale: %v", err)
			}
			time.Sleep(20 * time.Millisecond)

			removed, err := store.CleanupExpired(ctx)
			if err != nil {
				t.Fatalf("cleanup: %v", err)
			}
			if removed < 0 || removed > 1 {
				t.Errorf("expected at most the one expired session removed, got %d", removed)
			}

			if _, err := store.Get(ctx, "fresh"); err != nil {
				t.Errorf("expected fresh session to survive cleanup, got %v", err)
			}
		})
	}
}

func TestStoreCountReflectsLiveSessions(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if _, err := store.Append(ctx, "a", 1, time.Hour, 10); err != nil {
				t.Fatalf("append a: %v", err)
			}
			if _, err := store.Append(ctx, "b", 1, time.Hour, 10); err != nil {
				t.Fatalf("append b: %v", err)
			}
			count, err := store.Count(ctx)
			if err != nil {
				t.Fatalf("count: %v", err)
			}
			if count != 2 {
				t.Errorf("expected 2 sessions, got %d", count)
			}
		})
	}
}
