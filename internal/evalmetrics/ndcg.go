package evalmetrics

import (
	"fmt"
	"math"

	"github.com/sessionml/vmisknn/internal/vmisknn"
)

// NDCG is the Normalized Discounted Cumulative Gain of the top Length
// recommendations against the items a session actually interacted with
// next, normalized by the ideal (next-items-first) ordering's own DCG.
type NDCG struct {
	sumOfScores float64
	qty         int
	length      int
}

// NewNDCG returns an NDCG evaluated over the top length recommendations.
func NewNDCG(length int) *NDCG {
	return &NDCG{length: length}
}

func (n *NDCG) dcg(ranked, relevant []vmisknn.ItemID) float64 {
	relevantSet := make(map[vmisknn.ItemID]struct{}, len(relevant))
	for _, item := range relevant {
		relevantSet[item] = struct{}{}
	}

	var result float64
	for index, item := range ranked {
		if _, ok := relevantSet[item]; !ok {
			continue
		}
		if index == 0 {
			result++
		} else {
			result += 1 / math.Log2(float64(index)+1)
		}
	}
	return result
}

func (n *NDCG) Add(recommendations, nextItems []vmisknn.ItemID) {
	topRecos := topN(recommendations, n.length)
	topNextItems := topN(nextItems, n.length)

	dcg := n.dcg(topRecos, nextItems)
	dcgMax := n.dcg(topNextItems, nextItems)

	n.sumOfScores += dcg / dcgMax
	n.qty++
}

func (n *NDCG) Result() float64 {
	if n.qty == 0 {
		return 0
	}
	return n.sumOfScores / float64(n.qty)
}

func (n *NDCG) Name() string { return fmt.Sprintf("Ndcg@%d", n.length) }
