package vmisknn

import "testing"

// buildTinyCorpus mirrors the two-session corpus used throughout the
// neighbor-finding scenarios: S0={920006,920005,920004} max_ts=1,
// S1={920005,920004,920003,920002} max_ts=1.
func buildTinyCorpus(t *testing.T) *Index {
	t.Helper()
	events := []Event{
		{ExternalSession: 1, Item: 920006, Time: 1},
		{ExternalSession: 1, Item: 920005, Time: 1},
		{ExternalSession: 1, Item: 920004, Time: 1},
		{ExternalSession: 2, Item: 920005, Time: 1},
		{ExternalSession: 2, Item: 920004, Time: 1},
		{ExternalSession: 2, Item: 920003, Time: 1},
		{ExternalSession: 2, Item: 920002, Time: 1},
	}
	idx, err := Build(events, BuildOptions{MMostRecentSessions: 5})
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	return idx
}

func TestFindNeighborsTinyCorpus(t *testing.T) {
	idx := buildTinyCorpus(t)

	neighbors := idx.FindNeighbors([]ItemID{920005}, 500, 500)
	if len(neighbors) != 2 {
		t.Fatalf("expected both sessions to be neighbors of query [920005], got %d", len(neighbors))
	}
}

func TestFindNeighborsKClampedToM(t *testing.T) {
	idx := buildTinyCorpus(t)

	neighbors := idx.FindNeighbors([]ItemID{920005}, 1, 500)
	if len(neighbors) > 1 {
		t.Fatalf("expected k to be clamped to m=1, got %d neighbors", len(neighbors))
	}
}

func TestFindNeighborsEmptyEvolvingYieldsNoNeighbors(t *testing.T) {
	idx := buildTinyCorpus(t)
	if got := idx.FindNeighbors(nil, 500, 500); got != nil {
		t.Errorf("expected nil neighbors for empty evolving session, got %v", got)
	}
}

func TestFindNeighborsUnknownItemYieldsNoNeighbors(t *testing.T) {
	idx := buildTinyCorpus(t)
	if got := idx.FindNeighbors([]ItemID{424242}, 500, 500); got != nil {
		t.Errorf("expected nil neighbors for an item with no postings, got %v", got)
	}
}

func TestFindNeighborsDuplicateItemsInEvolvingCountOnce(t *testing.T) {
	idx := buildTinyCorpus(t)

	once := idx.FindNeighbors([]ItemID{920005}, 500, 500)
	twice := idx.FindNeighbors([]ItemID{920005, 920005}, 500, 500)

	scoreOf := func(ns []neighbor, session SessionIndex) (float64, bool) {
		for _, n := range ns {
			if n.session == session {
				return n.score, true
			}
		}
		return 0, false
	}

	for _, n := range once {
		s1, ok1 := scoreOf(once, n.session)
		s2, ok2 := scoreOf(twice, n.session)
		if !ok1 || !ok2 {
			t.Fatalf("expected session %d present in both runs", n.session)
		}
		if s1 != s2 {
			t.Errorf("expected repeated item in evolving (dedup by uniqueCount) to leave session %d score unchanged: %v vs %v", n.session, s1, s2)
		}
	}
}

func TestFindNeighborsEarlyTerminationRespectsMBudget(t *testing.T) {
	// Build a corpus where one item has many postings of increasing
	// recency; m should bound the accumulator to the m most recent ones
	// regardless of how many total sessions contain the item.
	var events []Event
	for s := uint32(0); s < 50; s++ {
		events = append(events, Event{ExternalSession: s, Item: 1, Time: Timestamp(s)})
	}
	idx, err := Build(events, BuildOptions{MMostRecentSessions: 5})
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}

	neighbors := idx.FindNeighbors([]ItemID{1}, 5, 5)
	if len(neighbors) != 5 {
		t.Fatalf("expected accumulator bounded to m=5, got %d", len(neighbors))
	}
	// The 5 admitted sessions must be the most recent ones (max_ts 45..49).
	for _, n := range neighbors {
		if n.maxTS < 45 {
			t.Errorf("expected only the most recent sessions to survive m-bounding, got max_ts=%d", n.maxTS)
		}
	}
}

func TestFindNeighborsDecayFavorsRecentQueryItems(t *testing.T) {
	idx := buildTinyCorpus(t)

	// Querying with the most-recent item last should give sessions
	// matching on a more-recent query position a larger accumulated score
	// than a query that only matches an older position.
	neighbors := idx.FindNeighbors([]ItemID{920002, 920005}, 500, 500)

	var s1Score float64
	for _, n := range neighbors {
		// session 1 (S1, dense index may vary) contains both items.
		if len(idx.ItemsForSession(n.session)) == 4 {
			s1Score = n.score
		}
	}
	if s1Score <= 0 {
		t.Fatalf("expected positive accumulated score for the session matching both query items")
	}

	// S0 contains only 920005 of the query items: it matches at the newest
	// position of [920002, 920005] but only at the older position of
	// [920005, 920002], so it must score higher for the first query.
	s0Score := func(ns []neighbor) float64 {
		for _, n := range ns {
			if len(idx.ItemsForSession(n.session)) == 3 {
				return n.score
			}
		}
		return 0
	}
	recent := s0Score(neighbors)
	older := s0Score(idx.FindNeighbors([]ItemID{920005, 920002}, 500, 500))
	if recent <= older {
		t.Errorf("expected S0 to score higher when its item is the newest query item: %v vs %v", recent, older)
	}
}
