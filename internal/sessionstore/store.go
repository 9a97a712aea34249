package sessionstore

import (
	"context"
	"errors"
	"time"

	"github.com/sessionml/vmisknn/internal/vmisknn"
)

// ErrNotFound is returned when a session ID has no evolving session on
// record.
var ErrNotFound = errors.New("sessionstore: session not found")

// ErrExpired is returned when a session ID was found but has passed its
// ExpiresAt; callers should treat this the same as ErrNotFound for
// recommendation purposes but may distinguish it for logging.
var ErrExpired = errors.New("sessionstore: session expired")

// EvolvingSession is the growing per-caller item list (the "evolving
// session" of 4.E) plus the bookkeeping needed for TTL expiry.
type EvolvingSession struct {
	ID             string
	Items          []vmisknn.ItemID
	CreatedAt      time.Time
	LastAccessedAt time.Time
	ExpiresAt      time.Time
}

func (s *EvolvingSession) isExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Store persists evolving sessions keyed by opaque session ID.
type Store interface {
	// Get returns the evolving session for id. It returns ErrNotFound if
	// unknown, or ErrExpired if known but past ExpiresAt.
	Get(ctx context.Context, id string) (*EvolvingSession, error)

	// Append adds item to id's evolving session, creating it if absent,
	// and refreshes ExpiresAt to now+ttl. maxItems bounds the retained
	// history, trimming from the oldest end, mirroring the engine's own
	// MaxItemsInSession truncation so a long-lived session stays bounded
	// in storage as well as in Predict.
	Append(ctx context.Context, id string, item vmisknn.ItemID, ttl time.Duration, maxItems int) (*EvolvingSession, error)

	// Delete removes a session unconditionally.
	Delete(ctx context.Context, id string) error

	// CleanupExpired removes every session past its ExpiresAt and
	// reports how many were removed.
	CleanupExpired(ctx context.Context) (int, error)

	// Count reports the number of sessions currently tracked.
	Count(ctx context.Context) (int, error)
}

func appendBounded(items []vmisknn.ItemID, item vmisknn.ItemID, maxItems int) []vmisknn.ItemID {
	items = append(items, item)
	if maxItems > 0 && len(items) > maxItems {
		items = items[len(items)-maxItems:]
	}
	return items
}
