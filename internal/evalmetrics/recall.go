package evalmetrics

import (
	"fmt"

	"github.com/sessionml/vmisknn/internal/vmisknn"
)

// Recall is the fraction of the items a session actually interacted with
// next that appear among the top Length recommendations.
type Recall struct {
	sumOfScores float64
	qty         int
	length      int
}

// NewRecall returns a Recall evaluated over the top length recommendations.
func NewRecall(length int) *Recall {
	return &Recall{length: length}
}

func (r *Recall) Add(recommendations, nextItems []vmisknn.ItemID) {
	r.qty++
	topRecos := itemSet(topN(recommendations, r.length))
	next := itemSet(nextItems)

	r.sumOfScores += float64(intersectionCount(topRecos, next)) / float64(len(nextItems))
}

func (r *Recall) Result() float64 {
	if r.qty == 0 {
		return 0
	}
	return r.sumOfScores / float64(r.qty)
}

func (r *Recall) Name() string { return fmt.Sprintf("Recall@%d", r.length) }
