package vmisknn

import (
	"math"
	"sort"
)

// postingLists is the materialized build-time output of the posting-list
// builder (4.B): for each item, its m-truncated, max_ts-descending list
// of sessions, and its IDF score.
type postingLists struct {
	sessionsForItem map[ItemID][]SessionIndex
	idf             map[ItemID]float64
}

type itemSessionTS struct {
	item    ItemID
	session SessionIndex
	maxTS   Timestamp
}

// BuildPostings builds the posting lists and IDF table from a dense
// session corpus. m bounds each posting list's length. If
// maxSessionLength is positive, sessions whose item count exceeds it are
// excluded entirely (they contribute noise, per 4.B).
//
// IDF is computed before m-truncation: for item i, idf(i) = ln(total
// (item, session) incidences kept across the whole corpus / i's own
// incidence count before truncation). This is the denominator the
// original implementation commits to (see the open question in the
// design notes): the numerator is a single corpus-wide constant, not
// "distinct sessions containing i".
func BuildPostings(s *sessions, m int, maxSessionLength int) *postingLists {
	var flat []itemSessionTS

	for si := 0; si < s.count(); si++ {
		items := s.items[si]
		if maxSessionLength > 0 && len(items) > maxSessionLength {
			continue
		}
		maxTS := s.maxTS[si]
		for _, item := range items {
			flat = append(flat, itemSessionTS{item: item, session: SessionIndex(si), maxTS: maxTS})
		}
	}

	totalIncidences := len(flat)

	sort.Slice(flat, func(i, j int) bool {
		return flat[i].item < flat[j].item
	})

	pl := &postingLists{
		sessionsForItem: make(map[ItemID][]SessionIndex),
		idf:             make(map[ItemID]float64),
	}

	n := len(flat)
	for i := 0; i < n; {
		j := i
		item := flat[i].item
		for j < n && flat[j].item == item {
			j++
		}
		run := flat[i:j]
		runLength := len(run)

		sorted := make([]itemSessionTS, runLength)
		copy(sorted, run)
		sort.Slice(sorted, func(a, b int) bool {
			return sorted[a].maxTS < sorted[b].maxTS
		})

		limit := m
		if limit > runLength {
			limit = runLength
		}
		top := make([]SessionIndex, limit)
		for k := 0; k < limit; k++ {
			top[k] = sorted[runLength-1-k].session
		}

		pl.sessionsForItem[item] = top
		pl.idf[item] = idfScore(totalIncidences, runLength)

		i = j
	}

	return pl
}

func idfScore(totalIncidences, runLength int) float64 {
	if runLength == 0 {
		return 0
	}
	return math.Log(float64(totalIncidences) / float64(runLength))
}
