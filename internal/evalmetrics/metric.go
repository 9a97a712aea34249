package evalmetrics

import "github.com/sessionml/vmisknn/internal/vmisknn"

// SessionMetric accumulates a score across repeated (recommendations,
// next items) observations, one per evaluated session.
type SessionMetric interface {
	// Add records one session's recommendation list against the items it
	// actually went on to interact with.
	Add(recommendations, nextItems []vmisknn.ItemID)

	// Result returns the running average score across all Add calls.
	Result() float64

	// Name identifies the metric, e.g. "Mrr@20".
	Name() string
}

func topN(items []vmisknn.ItemID, n int) []vmisknn.ItemID {
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}
