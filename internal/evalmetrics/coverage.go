package evalmetrics

import (
	"fmt"

	"github.com/sessionml/vmisknn/internal/vmisknn"
)

// Coverage is the fraction of the training corpus's distinct items that
// appear at least once across all top-Length recommendation lists seen.
type Coverage struct {
	uniqueTrainingItems int
	testItems           map[vmisknn.ItemID]struct{}
	length              int
}

// NewCoverage builds a Coverage metric over the distinct items present in
// events, evaluated over the top length recommendations.
func NewCoverage(events []vmisknn.Event, length int) *Coverage {
	distinct := make(map[vmisknn.ItemID]struct{})
	for _, e := range events {
		distinct[e.Item] = struct{}{}
	}
	return &Coverage{
		uniqueTrainingItems: len(distinct),
		testItems:           make(map[vmisknn.ItemID]struct{}),
		length:              length,
	}
}

func (c *Coverage) Add(recommendations, _ []vmisknn.ItemID) {
	for _, item := range topN(recommendations, c.length) {
		c.testItems[item] = struct{}{}
	}
}

func (c *Coverage) Result() float64 {
	if c.uniqueTrainingItems == 0 {
		return 0
	}
	return float64(len(c.testItems)) / float64(c.uniqueTrainingItems)
}

func (c *Coverage) Name() string { return fmt.Sprintf("Coverage@%d", c.length) }
