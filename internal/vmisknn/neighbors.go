package vmisknn

// timestampHeapBranching is the branching factor (d) used by the
// min-heap-by-timestamp in the neighbor finder's hot inner loop (4.D,
// 4.G, design note "heap choice").
const timestampHeapBranching = 8

// FindNeighbors bounds the candidate set to the m most-recent historical
// sessions matching the evolving session, scores each by position-decayed
// intersection, and returns the top-k by similarity (ties broken by
// larger max_ts). evolving is ordered oldest-first, newest last. An empty
// evolving session, or one with no matching postings, yields an empty
// result — never an error.
func (idx *Index) FindNeighbors(evolving []ItemID, m, k int) []neighbor {
	l := len(evolving)
	if l == 0 || m <= 0 {
		return nil
	}
	if k > m {
		k = m
	}
	if k <= 0 {
		return nil
	}

	unique := uniqueCount(evolving)
	if unique == 0 {
		return nil
	}

	scores := make(map[SessionIndex]float64, m)
	tsHeap := newOctonaryHeap(timestampHeapBranching)

	// A repeated item scores only at its farthest-back occurrence.
	farthest := make(map[ItemID]int, unique)
	for pos := 0; pos < l; pos++ {
		farthest[evolving[l-1-pos]] = pos
	}
	for pos := 0; pos < l; pos++ {
		item := evolving[l-1-pos]
		if farthest[item] != pos {
			continue
		}

		decay := float64(l-pos) / float64(unique)
		walkPostingList(idx, item, decay, m, scores, tsHeap)
	}

	if len(scores) == 0 {
		return nil
	}

	top := newBoundedTopNHeap[SessionIndex](k)
	for session, score := range scores {
		top.Offer(scoredEntry[SessionIndex]{
			id:       session,
			score:    score,
			tiebreak: float64(idx.MaxTimestamp(session)),
		})
	}

	entries := top.Drain()
	out := make([]neighbor, len(entries))
	for i, e := range entries {
		out[i] = neighbor{session: e.id, score: e.score, maxTS: idx.MaxTimestamp(e.id)}
	}
	return out
}

// walkPostingList admits or grows accumulator entries for one item's
// posting list, stopping early once the list runs older than the
// current floor of a full accumulator (4.D).
func walkPostingList(idx *Index, item ItemID, decay float64, m int, scores map[SessionIndex]float64, tsHeap *octonaryHeap) {
	postings := idx.SessionsForItem(item)
	for _, c := range postings {
		if _, ok := scores[c]; ok {
			scores[c] += decay
			continue
		}

		cts := idx.MaxTimestamp(c)

		if len(scores) < m {
			scores[c] = decay
			tsHeap.Push(c, cts)
			continue
		}

		top, ok := tsHeap.Peek()
		if ok && cts > top {
			evicted, _, _ := tsHeap.PopMin()
			delete(scores, evicted)
			scores[c] = decay
			tsHeap.Push(c, cts)
			continue
		}

		// Posting list is max_ts-descending; everything remaining is
		// older than the current floor and cannot be admitted.
		break
	}
}

func uniqueCount(items []ItemID) int {
	seen := make(map[ItemID]struct{}, len(items))
	for _, it := range items {
		seen[it] = struct{}{}
	}
	return len(seen)
}
