package vmisknn

// Index is the immutable offline index (4.C): the read-only structure
// queries are served from. It is constructed once by Build and is safe
// for concurrent reads from any number of goroutines; it exposes no
// mutating methods.
type Index struct {
	sessions   *sessions
	postings   *postingLists
	attributes map[ItemID]ItemAttributes
}

// BuildOptions groups the inputs to Build beyond the raw events.
type BuildOptions struct {
	MMostRecentSessions int
	MaxSessionLength    int
	Attributes          map[ItemID]ItemAttributes
}

// Build ingests raw training events and materializes posting lists and
// IDF, producing a ready-to-query Index. It returns ErrEmptyCorpus
// surfaced from Ingest.
func Build(events []Event, opts BuildOptions) (*Index, error) {
	sess, err := Ingest(events)
	if err != nil {
		return nil, err
	}

	m := opts.MMostRecentSessions
	if m <= 0 {
		m = DefaultConfig().MMostRecentSessions
	}

	postings := BuildPostings(sess, m, opts.MaxSessionLength)

	return &Index{
		sessions:   sess,
		postings:   postings,
		attributes: opts.Attributes,
	}, nil
}

// SessionCount returns the number of dense sessions in the index.
func (idx *Index) SessionCount() int { return idx.sessions.count() }

// ItemsForSession returns the borrowed, ascending-sorted item list of a
// dense session index. Callers must not mutate the returned slice.
func (idx *Index) ItemsForSession(s SessionIndex) []ItemID {
	if int(s) >= idx.sessions.count() {
		return nil
	}
	return idx.sessions.items[s]
}

// MaxTimestamp returns the max event timestamp of a dense session index.
func (idx *Index) MaxTimestamp(s SessionIndex) Timestamp {
	if int(s) >= idx.sessions.count() {
		return 0
	}
	return idx.sessions.maxTS[s]
}

// SessionsForItem returns the borrowed, max_ts-descending, m-truncated
// posting list for an item. The result may be empty but is never nil's
// absence treated as an error — an unseen item simply has no postings.
func (idx *Index) SessionsForItem(item ItemID) []SessionIndex {
	return idx.postings.sessionsForItem[item]
}

// IDF returns the inverse-document-frequency score for an item. Unknown
// items return 0, per the UnknownItem error-handling policy (7): they
// contribute nothing rather than aborting the query.
func (idx *Index) IDF(item ItemID) float64 {
	return idx.postings.idf[item]
}

// Attributes returns the optional business-rule metadata for an item and
// whether it is present. Absent items are always rejected by the
// default business rule.
func (idx *Index) Attributes(item ItemID) (ItemAttributes, bool) {
	if idx.attributes == nil {
		return ItemAttributes{}, false
	}
	attrs, ok := idx.attributes[item]
	return attrs, ok
}
