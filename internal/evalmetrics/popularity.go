package evalmetrics

import (
	"fmt"

	"github.com/sessionml/vmisknn/internal/vmisknn"
)

// Popularity is the average normalized training-set popularity of the
// distinct items within the top Length recommendations, one minus this
// score is sometimes read as a novelty/long-tail indicator.
type Popularity struct {
	sumOfScores      float64
	qty              int
	popularityScores map[vmisknn.ItemID]int
	length           int
	maxFrequency     int
}

// NewPopularity builds a Popularity metric from the per-item incidence
// counts in events, evaluated over the top length recommendations.
func NewPopularity(events []vmisknn.Event, length int) *Popularity {
	scores := make(map[vmisknn.ItemID]int, len(events))
	maxFreq := 0
	for _, e := range events {
		scores[e.Item]++
		if scores[e.Item] > maxFreq {
			maxFreq = scores[e.Item]
		}
	}
	return &Popularity{
		popularityScores: scores,
		length:           length,
		maxFrequency:     maxFreq,
	}
}

func (p *Popularity) Add(recommendations, _ []vmisknn.ItemID) {
	items := itemSet(topN(recommendations, p.length))
	p.qty++
	if len(items) == 0 {
		return
	}

	var sum float64
	for item := range items {
		if freq, ok := p.popularityScores[item]; ok {
			sum += float64(freq) / float64(p.maxFrequency)
		}
	}
	p.sumOfScores += sum / float64(len(items))
}

func (p *Popularity) Result() float64 {
	if p.qty == 0 {
		return 0
	}
	return p.sumOfScores / float64(p.qty)
}

func (p *Popularity) Name() string { return fmt.Sprintf("Popularity@%d", p.length) }
