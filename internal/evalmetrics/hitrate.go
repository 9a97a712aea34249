package evalmetrics

import (
	"fmt"

	"github.com/sessionml/vmisknn/internal/vmisknn"
)

// HitRate is the fraction of sessions where the next item appears
// anywhere within the top Length recommendations.
type HitRate struct {
	sumOfScores float64
	qty         int
	length      int
}

// NewHitRate returns a HitRate evaluated over the top length recommendations.
func NewHitRate(length int) *HitRate {
	return &HitRate{length: length}
}

func (h *HitRate) Add(recommendations, nextItems []vmisknn.ItemID) {
	h.qty++
	topRecos := topN(recommendations, h.length)
	nextItem := nextItems[0]
	for _, item := range topRecos {
		if item == nextItem {
			h.sumOfScores++
			break
		}
	}
}

func (h *HitRate) Result() float64 {
	if h.qty == 0 {
		return 0
	}
	return h.sumOfScores / float64(h.qty)
}

func (h *HitRate) Name() string { return fmt.Sprintf("HitRate@%d", h.length) }
