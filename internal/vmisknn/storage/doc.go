// Package storage persists a built vmisknn.Index to disk and restores it,
// so a process can serve recommendations immediately after start instead
// of re-running Ingest/BuildPostings against the full training corpus.
//
// Snapshots are stored as gob-encoded, gzip-compressed files named
// "{name}_v{version}.gob.gz" under a base directory, mirroring the
// versioned-model-file convention this package is adapted from. Each
// file is a gob-encoded storedFile envelope: SnapshotMetadata plus the
// gzip-compressed, SHA-256-checksummed gob encoding of the index
// snapshot itself. Save writes a new version; Load verifies the
// checksum before decoding; Prune keeps only the N most recent versions
// of a named snapshot.
//
// Concurrent Save/Load/Delete/Prune calls against the same Store are
// safe: a single RWMutex guards the in-memory version index.
package storage
