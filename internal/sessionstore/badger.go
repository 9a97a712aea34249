package sessionstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/sessionml/vmisknn/internal/vmisknn"
)

const sessionKeyPrefix = "evolving_session:"

// BadgerStore is a BadgerDB-backed Store, durable across process
// restarts. Each session is stored as a single JSON-encoded value with a
// Badger TTL matching its ExpiresAt, so expired keys are reclaimed by
// Badger's own garbage collector in addition to CleanupExpired.
type BadgerStore struct {
	db *badger.DB
}

var _ Store = (*BadgerStore)(nil)

// NewBadgerStore wraps an already-opened BadgerDB handle.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

func (s *BadgerStore) Get(_ context.Context, id string) (*EvolvingSession, error) {
	var sess EvolvingSession

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(sessionKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get session: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &sess)
		})
	})
	if err != nil {
		return nil, err
	}

	if sess.isExpired() {
		return nil, ErrExpired
	}
	return &sess, nil
}

func (s *BadgerStore) Append(_ context.Context, id string, item vmisknn.ItemID, ttl time.Duration, maxItems int) (*EvolvingSession, error) {
	now := time.Now()
	var sess EvolvingSession

	err := s.db.Update(func(txn *badger.Txn) error {
		existing, err := txn.Get(sessionKey(id))
		switch {
		case errors.Is(err, badger.ErrKeyNotFound):
			sess = EvolvingSession{ID: id, CreatedAt: now}
		case err != nil:
			return fmt.Errorf("get session: %w", err)
		default:
			if err := existing.Value(func(val []byte) error {
				return json.Unmarshal(val, &sess)
			}); err != nil {
				return fmt.Errorf("unmarshal session: %w", err)
			}
			if sess.isExpired() {
				sess = EvolvingSession{ID: id, CreatedAt: now}
			}
		}

		sess.Items = appendBounded(sess.Items, item, maxItems)
		sess.LastAccessedAt = now
		sess.ExpiresAt = now.Add(ttl)

		data, err := json.Marshal(&sess)
		if err != nil {
			return fmt.Errorf("marshal session: %w", err)
		}

		entry := badger.NewEntry(sessionKey(id), data).WithTTL(ttl)
		return txn.SetEntry(entry)
	})
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *BadgerStore) Delete(_ context.Context, id string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete(sessionKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *BadgerStore) CleanupExpired(_ context.Context) (int, error) {
	var expired []string

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(sessionKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var sess EvolvingSession
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &sess)
			})
			if err != nil {
				continue
			}
			if sess.isExpired() {
				expired = append(expired, sess.ID)
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("scan sessions: %w", err)
	}

	removed := 0
	for _, id := range expired {
		if err := s.Delete(context.Background(), id); err != nil {
			continue
		}
		removed++
	}
	return removed, nil
}

func (s *BadgerStore) Count(_ context.Context) (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(sessionKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

func sessionKey(id string) []byte {
	return []byte(sessionKeyPrefix + id)
}
