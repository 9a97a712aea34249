package vmisknn

import "math"

// ScoreItems aggregates item scores from the top-k neighbors of a query
// (4.E), applies self-exclusion and the optional business-rule filter,
// and returns up to N (item, score) pairs in descending score order.
// evolving is ordered oldest-first, newest last; idfExponent is the
// alpha exponent from the idf_weighting open question (0 disables IDF,
// 1 is the classical form).
func (idx *Index) ScoreItems(
	neighbors []neighbor,
	evolving []ItemID,
	n int,
	idfExponent float64,
	rule BusinessRule,
) []Recommendation {
	if n <= 0 || len(evolving) == 0 {
		return nil
	}

	itemScores := make(map[ItemID]float64)

	for _, nb := range neighbors {
		items := idx.ItemsForSession(nb.session)
		j := firstMatchPosition(items, evolving)
		if j == 0 {
			// No match: cannot happen for a genuine neighbor, but guard
			// against a malformed caller-supplied neighbor set.
			continue
		}
		weight := linearDecay(j)
		if weight == 0 {
			continue
		}
		for _, item := range items {
			idfWeight := 1.0
			if idfExponent != 0 {
				idfWeight = math.Pow(idx.IDF(item), idfExponent)
			}
			itemScores[item] += weight * idfWeight * nb.score
		}
	}

	mostRecent := evolving[len(evolving)-1]
	delete(itemScores, mostRecent)

	if len(itemScores) == 0 {
		return nil
	}

	var queryAttrs ItemAttributes
	var queryKnown bool
	if rule != nil {
		queryAttrs, queryKnown = idx.Attributes(mostRecent)
	}

	top := newBoundedTopNHeap[ItemID](n)
	for item, score := range itemScores {
		if rule != nil {
			candAttrs, candKnown := idx.Attributes(item)
			if !rule.Allow(queryAttrs, candAttrs, queryKnown, candKnown) {
				continue
			}
		}
		top.Offer(scoredEntry[ItemID]{id: item, score: score})
	}

	entries := top.Drain()
	out := make([]Recommendation, len(entries))
	for i, e := range entries {
		out[i] = Recommendation{Item: e.id, Score: e.score}
	}
	return out
}

// firstMatchPosition returns j, the 1-based distance from the newest end
// of evolving at which the nearest matching item against sessionItems is
// found (4.E step 1): scanning newest-to-oldest, j is one more than the
// index of the first match. Returns 0 if no item of evolving occurs in
// sessionItems, which should not happen for a genuine neighbor.
func firstMatchPosition(sessionItems []ItemID, evolving []ItemID) int {
	l := len(evolving)
	set := itemSet(sessionItems)
	for pos := 0; pos < l; pos++ {
		item := evolving[l-1-pos]
		if _, ok := set[item]; ok {
			return pos + 1
		}
	}
	return 0
}

func itemSet(items []ItemID) map[ItemID]struct{} {
	set := make(map[ItemID]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}

// linearDecay is the position-decay weight from 4.E step 2:
// linear(j) = 1 - 0.1*(j-1) for j <= 100, else 0.
func linearDecay(j int) float64 {
	if j > 100 {
		return 0
	}
	return 1 - 0.1*float64(j-1)
}
