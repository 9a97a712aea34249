package vmisknn

// Snapshot is the gob-serializable mirror of an Index's internal state,
// used by internal/vmisknn/storage to persist and restore a built index
// across process restarts without re-running Ingest/BuildPostings
// against the full training corpus.
type Snapshot struct {
	SessionItems [][]ItemID
	SessionMaxTS []Timestamp

	PostingSessions map[ItemID][]SessionIndex
	PostingIDF      map[ItemID]float64

	Attributes map[ItemID]ItemAttributes
}

// ToSnapshot captures the index's current state for serialization.
func (idx *Index) ToSnapshot() Snapshot {
	return Snapshot{
		SessionItems:    idx.sessions.items,
		SessionMaxTS:    idx.sessions.maxTS,
		PostingSessions: idx.postings.sessionsForItem,
		PostingIDF:      idx.postings.idf,
		Attributes:      idx.attributes,
	}
}

// IndexFromSnapshot reconstructs a ready-to-query Index from a
// previously captured Snapshot, without re-running Build.
func IndexFromSnapshot(s Snapshot) *Index {
	return &Index{
		sessions: &sessions{
			items: s.SessionItems,
			maxTS: s.SessionMaxTS,
		},
		postings: &postingLists{
			sessionsForItem: s.PostingSessions,
			idf:             s.PostingIDF,
		},
		attributes: s.Attributes,
	}
}
