package vmisknn

import "sort"

// octonaryHeap is a d-ary (d=8 by default) min-heap over admitted
// sessions, ordered by max_ts ascending so the root is always the oldest
// admitted session. The neighbor finder (4.D) uses it to decide, in O(1)
// amortized, whether a newly-seen session is fresh enough to evict the
// current floor of the accumulator.
//
// A d-ary heap with d=8 keeps more keys per cache line than a binary
// heap at the sizes this algorithm operates at (m up to a few hundred),
// trading slightly more comparisons per sift for fewer cache misses.
type octonaryHeap struct {
	d       int
	session []SessionIndex
	ts      []Timestamp
}

// newOctonaryHeap returns an empty min-heap with the given branching
// factor. d must be >= 2; callers pass 8 on the hot path.
func newOctonaryHeap(d int) *octonaryHeap {
	if d < 2 {
		d = 2
	}
	return &octonaryHeap{d: d}
}

func (h *octonaryHeap) Len() int { return len(h.ts) }

// Peek returns the minimum timestamp currently admitted, and whether the
// heap is non-empty.
func (h *octonaryHeap) Peek() (Timestamp, bool) {
	if len(h.ts) == 0 {
		return 0, false
	}
	return h.ts[0], true
}

// Push admits a session with the given timestamp.
func (h *octonaryHeap) Push(session SessionIndex, ts Timestamp) {
	h.session = append(h.session, session)
	h.ts = append(h.ts, ts)
	h.siftUp(len(h.ts) - 1)
}

// PopMin removes and returns the session with the minimum timestamp.
func (h *octonaryHeap) PopMin() (SessionIndex, Timestamp, bool) {
	n := len(h.ts)
	if n == 0 {
		return 0, 0, false
	}
	session, ts := h.session[0], h.ts[0]
	last := n - 1
	h.session[0], h.ts[0] = h.session[last], h.ts[last]
	h.session = h.session[:last]
	h.ts = h.ts[:last]
	if last > 0 {
		h.siftDown(0)
	}
	return session, ts, true
}

func (h *octonaryHeap) firstChild(i int) int { return h.d*i + 1 }
func (h *octonaryHeap) parent(i int) int     { return (i - 1) / h.d }

func (h *octonaryHeap) siftUp(i int) {
	for i > 0 {
		p := h.parent(i)
		if h.ts[i] >= h.ts[p] {
			break
		}
		h.swap(i, p)
		i = p
	}
}

func (h *octonaryHeap) siftDown(i int) {
	n := len(h.ts)
	for {
		smallest := i
		first := h.firstChild(i)
		for c := first; c < first+h.d && c < n; c++ {
			if h.ts[c] < h.ts[smallest] {
				smallest = c
			}
		}
		if smallest == i {
			return
		}
		h.swap(i, smallest)
		i = smallest
	}
}

func (h *octonaryHeap) swap(i, j int) {
	h.session[i], h.session[j] = h.session[j], h.session[i]
	h.ts[i], h.ts[j] = h.ts[j], h.ts[i]
}

// scoredEntry is one candidate admitted to a bounded top-N-by-score
// selection: an opaque id, its score, and an optional tie-break key
// (larger wins on equal score — freshness for sessions, unused for
// items).
type scoredEntry[T any] struct {
	id       T
	score    float64
	tiebreak float64
}

// boundedTopNHeap keeps the N entries with the largest score (ties
// broken by larger tiebreak), implemented as a size-capped min-heap so
// eviction of the current worst entry is O(log N). This backs both
// BoundedTopNByScore over neighbor sessions (4.D) and over candidate
// items (4.E).
type boundedTopNHeap[T any] struct {
	capacity int
	entries  []scoredEntry[T]
}

func newBoundedTopNHeap[T any](capacity int) *boundedTopNHeap[T] {
	return &boundedTopNHeap[T]{capacity: capacity}
}

func (h *boundedTopNHeap[T]) Len() int { return len(h.entries) }

// worseThan reports whether a belongs strictly below b in the ordering
// BoundedTopNByScore keeps (a is evicted before b on tie contention).
func worseThan[T any](a, b scoredEntry[T]) bool {
	if a.score != b.score {
		return a.score < b.score
	}
	return a.tiebreak < b.tiebreak
}

// Offer considers e for admission. If the heap has spare capacity, e is
// always admitted. Otherwise e replaces the current worst entry only if
// e is strictly better than it.
func (h *boundedTopNHeap[T]) Offer(e scoredEntry[T]) {
	if h.capacity <= 0 {
		return
	}
	if len(h.entries) < h.capacity {
		h.entries = append(h.entries, e)
		h.siftUp(len(h.entries) - 1)
		return
	}
	if worseThan(h.entries[0], e) {
		h.entries[0] = e
		h.siftDown(0)
	}
}

// Top returns the current worst admitted entry (the heap root) and
// whether the heap is non-empty. Used for the neighbor finder's
// heap.top comparisons.
func (h *boundedTopNHeap[T]) Top() (scoredEntry[T], bool) {
	if len(h.entries) == 0 {
		return scoredEntry[T]{}, false
	}
	return h.entries[0], true
}

// Drain returns all admitted entries sorted by descending score (ties
// broken by descending tiebreak), emptying the heap.
func (h *boundedTopNHeap[T]) Drain() []scoredEntry[T] {
	out := h.entries
	sort.Slice(out, func(i, j int) bool {
		return worseThan(out[j], out[i])
	})
	h.entries = nil
	return out
}

// siftUp restores the min-heap invariant (parent never ranks above a
// child) after an append at the tail.
func (h *boundedTopNHeap[T]) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !worseThan(h.entries[i], h.entries[p]) {
			break
		}
		h.entries[i], h.entries[p] = h.entries[p], h.entries[i]
		i = p
	}
}

// siftDown restores the min-heap invariant after the root is replaced.
func (h *boundedTopNHeap[T]) siftDown(i int) {
	n := len(h.entries)
	for {
		smallest := i
		l, r := 2*i+1, 2*i+2
		if l < n && worseThan(h.entries[l], h.entries[smallest]) {
			smallest = l
		}
		if r < n && worseThan(h.entries[r], h.entries[smallest]) {
			smallest = r
		}
		if smallest == i {
			return
		}
		h.entries[i], h.entries[smallest] = h.entries[smallest], h.entries[i]
		i = smallest
	}
}
