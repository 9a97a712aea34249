package evalmetrics

import (
	"fmt"

	"github.com/sessionml/vmisknn/internal/vmisknn"
)

// MRR is the Mean Reciprocal Rank of the first next-item within the top
// Length recommendations.
type MRR struct {
	sumOfScores float64
	qty         int
	length      int
}

// NewMRR returns an MRR evaluated over the top length recommendations.
func NewMRR(length int) *MRR {
	return &MRR{length: length}
}

func (m *MRR) Add(recommendations, nextItems []vmisknn.ItemID) {
	m.qty++
	topRecos := topN(recommendations, m.length)
	nextItem := nextItems[0]
	for rank, item := range topRecos {
		if item == nextItem {
			m.sumOfScores += 1.0 / float64(rank+1)
			break
		}
	}
}

func (m *MRR) Result() float64 {
	if m.qty == 0 {
		return 0
	}
	return m.sumOfScores / float64(m.qty)
}

func (m *MRR) Name() string { return fmt.Sprintf("Mrr@%d", m.length) }
