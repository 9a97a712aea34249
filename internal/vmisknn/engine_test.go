package vmisknn

import (
	"context"
	"errors"
	"testing"
	"time"
)

func buildTinyEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	idx := buildTinyCorpus(t)
	e, err := NewEngine(idx, cfg)
	if err != nil {
		t.Fatalf("unexpected NewEngine error: %v", err)
	}
	return e
}

func TestEnginePredictTinyCorpusScenario(t *testing.T) {
	cfg := Config{
		MMostRecentSessions: 5,
		NeighborhoodSizeK:   500,
		NumItemsToRecommend: 20,
		MaxItemsInSession:   10,
		IDFExponent:         1,
		EnableBusinessLogic: false,
	}
	e := buildTinyEngine(t, cfg)

	recs, err := e.Predict(context.Background(), []ItemID{920005})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 4 {
		t.Fatalf("expected 4 recommendations, got %d: %+v", len(recs), recs)
	}
	if recs[0].Item != 920004 {
		t.Errorf("expected 920004 to be the top recommendation, got %d", recs[0].Item)
	}
}

func TestEnginePredictRejectsCancelledContext(t *testing.T) {
	e := buildTinyEngine(t, Config{
		MMostRecentSessions: 5, NeighborhoodSizeK: 5, NumItemsToRecommend: 5, MaxItemsInSession: 5, IDFExponent: 1,
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Predict(ctx, []ItemID{920005})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestEnginePredictEmptyEvolvingYieldsNilWithoutError(t *testing.T) {
	e := buildTinyEngine(t, Config{
		MMostRecentSessions: 5, NeighborhoodSizeK: 5, NumItemsToRecommend: 5, MaxItemsInSession: 5, IDFExponent: 1,
	})

	recs, err := e.Predict(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recs != nil {
		t.Errorf("expected nil recommendations for empty evolving session, got %v", recs)
	}
}

func TestEnginePredictTruncatesOverlongEvolvingSession(t *testing.T) {
	e := buildTinyEngine(t, Config{
		MMostRecentSessions: 5, NeighborhoodSizeK: 5, NumItemsToRecommend: 5, MaxItemsInSession: 1, IDFExponent: 1,
	})

	// Only the last item (920005) should survive truncation to
	// MaxItemsInSession=1; an unknown leading item must not break predict.
	recs, err := e.Predict(context.Background(), []ItemID{424242, 920005})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) == 0 {
		t.Fatal("expected recommendations after truncating to the known trailing item")
	}
}

func TestEngineRebuildSwapsIndexAtomically(t *testing.T) {
	e := buildTinyEngine(t, Config{
		MMostRecentSessions: 5, NeighborhoodSizeK: 5, NumItemsToRecommend: 5, MaxItemsInSession: 5, IDFExponent: 1,
	})

	newEvents := []Event{{ExternalSession: 1, Item: 1, Time: 1}, {ExternalSession: 1, Item: 2, Time: 1}}
	newIdx, err := Build(newEvents, BuildOptions{MMostRecentSessions: 5})
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}

	e.Rebuild(newIdx)

	recs, err := e.Predict(context.Background(), []ItemID{1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 1 || recs[0].Item != 2 {
		t.Fatalf("expected the rebuilt index to be live, got %+v", recs)
	}
}

func TestNewEngineRejectsInvalidConfig(t *testing.T) {
	idx := buildTinyCorpus(t)
	_, err := NewEngine(idx, Config{})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestEnginePredictConcurrentReadsAreSafe(t *testing.T) {
	e := buildTinyEngine(t, Config{
		MMostRecentSessions: 5, NeighborhoodSizeK: 5, NumItemsToRecommend: 5, MaxItemsInSession: 5, IDFExponent: 1,
	})

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 50; j++ {
				_, _ = e.Predict(context.Background(), []ItemID{920005})
			}
		}()
	}
	timeout := time.After(5 * time.Second)
	for i := 0; i < 8; i++ {
		select {
		case <-done:
		case <-timeout:
			t.Fatal("timed out waiting for concurrent Predict calls")
		}
	}
}
