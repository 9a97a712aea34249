package vmisknn

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/sessionml/vmisknn/internal/logging"
)

// Engine composes a live Index with the query-time Config behind a
// single Predict entry point (4.F). It is the unit that gets rebuilt
// when the training corpus refreshes: Rebuild swaps the index pointer
// under a short write lock, while Predict takes only a read lock to
// snapshot the pointer, then runs lock-free against that snapshot.
type Engine struct {
	mu     sync.RWMutex
	index  *Index
	config Config
	rule   BusinessRule
	logger zerolog.Logger
}

// NewEngine constructs an Engine around an already-built Index.
func NewEngine(index *Index, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	rule := BusinessRule(nil)
	if config.EnableBusinessLogic {
		rule = DefaultBusinessRule()
	}
	return &Engine{
		index:  index,
		config: config,
		rule:   rule,
		logger: logging.WithComponent("vmisknn"),
	}, nil
}

// Rebuild atomically swaps in a newly built index. In-flight Predict
// calls keep using the snapshot they started with.
func (e *Engine) Rebuild(index *Index) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.index = index
	e.logger.Info().Int("sessions", index.SessionCount()).Msg("index rebuilt")
}

// snapshot returns the currently live index.
func (e *Engine) snapshot() *Index {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.index
}

// Predict is the public entry point (4.F): a pure composition of
// FindNeighbors and ScoreItems over a shared immutable index snapshot.
// evolving is ordered oldest-first, newest last; only its newest
// config.MaxItemsInSession items are used. Predict
// performs no suspension and is safe for unbounded concurrent callers;
// it never returns an error for query-time anomalies — an empty or
// short evolving session simply yields an empty result.
func (e *Engine) Predict(ctx context.Context, evolving []ItemID) ([]Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("vmisknn: predict: %w", err)
	}
	if len(evolving) == 0 {
		return nil, nil
	}
	if len(evolving) > e.config.MaxItemsInSession {
		evolving = evolving[len(evolving)-e.config.MaxItemsInSession:]
	}

	idx := e.snapshot()
	if idx == nil {
		return nil, nil
	}

	neighbors := idx.FindNeighbors(evolving, e.config.MMostRecentSessions, e.config.NeighborhoodSizeK)
	if len(neighbors) == 0 {
		return nil, nil
	}

	rule := e.rule
	return idx.ScoreItems(neighbors, evolving, e.config.NumItemsToRecommend, e.config.IDFExponent, rule), nil
}
