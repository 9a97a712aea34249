package evalmetrics

import (
	"fmt"

	"github.com/sessionml/vmisknn/internal/vmisknn"
)

// Precision is the fraction of the top Length recommendations that
// appear among the items a session actually interacted with next.
type Precision struct {
	sumOfScores float64
	qty         int
	length      int
}

// NewPrecision returns a Precision evaluated over the top length recommendations.
func NewPrecision(length int) *Precision {
	return &Precision{length: length}
}

func (p *Precision) Add(recommendations, nextItems []vmisknn.ItemID) {
	p.qty++
	topRecos := itemSet(topN(recommendations, p.length))
	next := itemSet(nextItems)

	p.sumOfScores += float64(intersectionCount(topRecos, next)) / float64(p.length)
}

func (p *Precision) Result() float64 {
	if p.qty == 0 {
		return 0
	}
	return p.sumOfScores / float64(p.qty)
}

func (p *Precision) Name() string { return fmt.Sprintf("Precision@%d", p.length) }

func itemSet(items []vmisknn.ItemID) map[vmisknn.ItemID]struct{} {
	set := make(map[vmisknn.ItemID]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

func intersectionCount(a, b map[vmisknn.ItemID]struct{}) int {
	count := 0
	for item := range a {
		if _, ok := b[item]; ok {
			count++
		}
	}
	return count
}
