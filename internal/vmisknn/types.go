package vmisknn

// ItemID is an opaque item identifier. Immutable once ingested.
type ItemID = int64

// SessionIndex is a dense, 0-based session identifier assigned at build
// time, in first-emission order. It is distinct from the external
// session identifier carried by raw training Events.
type SessionIndex = uint32

// Timestamp is seconds-since-epoch, truncated to 32 bits as the original
// corpus does.
type Timestamp = uint32

// Event is a single raw training record: an item a session interacted
// with at a point in time. ExternalSession is the corpus's own session
// identifier (u32); it is collapsed to a dense SessionIndex during
// ingest and is not retained by the built Index.
type Event struct {
	ExternalSession uint32
	Item            ItemID
	Time            Timestamp
}

// ItemAttributes carries the optional business-rule metadata for an
// item. Absent items are treated as non-recommendable under filtering.
type ItemAttributes struct {
	IsForSale bool
	IsAdult   bool
}

// Recommendation is one scored item returned by Predict, in descending
// score order.
type Recommendation struct {
	Item  ItemID
	Score float64
}

// neighbor is one historical session retained during neighbor-finding,
// together with its position-decayed similarity to the evolving session.
type neighbor struct {
	session SessionIndex
	score   float64
	maxTS   Timestamp
}

// sessions is the dense, build-time-assigned corpus: parallel arrays
// indexed by SessionIndex.
type sessions struct {
	// items[s] holds the deduplicated, ascending-sorted items of session s.
	items [][]ItemID
	// maxTS[s] holds the maximum event timestamp observed in session s.
	maxTS []Timestamp
}

func (s *sessions) count() int { return len(s.items) }
