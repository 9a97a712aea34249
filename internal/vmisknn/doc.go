// Package vmisknn implements the VMIS-kNN session-based recommendation
// algorithm: Variable-Most-Recent-Intersection Session k-Nearest-Neighbors.
//
// Given a short prefix of items a user has recently interacted with (the
// evolving session), the algorithm returns the top-N items most likely to
// be interacted with next. Predictions are served from an immutable
// in-memory index built once from a historical corpus of
// (session, item, timestamp) events.
//
// # Pipeline
//
// Dependency order mirrors construction order: ordering primitives
// (heap.go) underpin ingest (ingest.go), which feeds the posting-list
// builder (postings.go), which materializes the read-only Index
// (index.go). At query time the Engine composes the neighbor finder
// (neighbors.go) and the item scorer (scorer.go) behind a single Predict
// entry point (engine.go).
//
//	historical events -> Ingest -> BuildPostings -> Index
//	evolving session   -> Index.FindNeighbors -> top-k neighbors
//	top-k neighbors    -> Index.ScoreItems -> top-N recommendations
//
// # Concurrency
//
// The Index is built once and is safe for concurrent read access from any
// number of goroutines; its query methods take no locks and allocate only
// per-call state. Engine.Predict holds a read lock only while loading the
// current index pointer. Rebuilding a live Engine's index swaps the pointer under
// a short-lived write lock; in-flight Predict calls keep using the index
// snapshot they started with.
//
// # Non-goals
//
// No online learning: the index is immutable after Build. No approximate
// nearest neighbors. No cross-process consistency. No durability
// requirement for the in-memory index itself (see the storage
// subpackage for an optional on-disk snapshot format).
package vmisknn
