package evalmetrics

import (
	"fmt"
	"math"

	"github.com/sessionml/vmisknn/internal/vmisknn"
)

// F1 is the harmonic mean of Precision and Recall, both evaluated over
// the same top Length recommendations.
type F1 struct {
	precision *Precision
	recall    *Recall
	length    int
}

// NewF1 returns an F1 evaluated over the top length recommendations.
func NewF1(length int) *F1 {
	return &F1{
		precision: NewPrecision(length),
		recall:    NewRecall(length),
		length:    length,
	}
}

func (f *F1) Add(recommendations, nextItems []vmisknn.ItemID) {
	f.precision.Add(recommendations, nextItems)
	f.recall.Add(recommendations, nextItems)
}

func (f *F1) Result() float64 {
	p, r := f.precision.Result(), f.recall.Result()
	score := 2.0 * (p * r) / (p + r)
	if math.IsNaN(score) {
		return 0
	}
	return score
}

func (f *F1) Name() string { return fmt.Sprintf("F1score@%d", f.length) }
