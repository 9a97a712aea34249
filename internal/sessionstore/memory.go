package sessionstore

import (
	"context"
	"sync"
	"time"

	"github.com/sessionml/vmisknn/internal/vmisknn"
)

// MemoryStore is an in-process, map-backed Store. Suitable for
// single-instance deployments and tests; sessions are lost on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*EvolvingSession
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*EvolvingSession)}
}

func (s *MemoryStore) Get(_ context.Context, id string) (*EvolvingSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if sess.isExpired() {
		return nil, ErrExpired
	}
	return copySession(sess), nil
}

func (s *MemoryStore) Append(_ context.Context, id string, item vmisknn.ItemID, ttl time.Duration, maxItems int) (*EvolvingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	sess, ok := s.sessions[id]
	if !ok || sess.isExpired() {
		sess = &EvolvingSession{ID: id, CreatedAt: now}
	}

	sess.Items = appendBounded(sess.Items, item, maxItems)
	sess.LastAccessedAt = now
	sess.ExpiresAt = now.Add(ttl)
	s.sessions[id] = sess

	return copySession(sess), nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *MemoryStore) CleanupExpired(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if sess.isExpired() {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed, nil
}

func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions), nil
}

func copySession(sess *EvolvingSession) *EvolvingSession {
	out := &EvolvingSession{
		ID:             sess.ID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		ExpiresAt:      sess.ExpiresAt,
	}
	if sess.Items != nil {
		out.Items = make([]vmisknn.ItemID, len(sess.Items))
		copy(out.Items, sess.Items)
	}
	return out
}
