// Package sessionstore tracks the evolving session (5.C) across HTTP
// requests: the growing, server-side list of items a caller's session has
// interacted with, keyed by an opaque session ID the caller supplies on
// each /v1/recommend call. This lets a client send only the newest item
// per request instead of replaying its whole history.
//
// Store is implemented twice: an in-process map for single-instance
// deployments and tests, and a BadgerDB-backed store for durability
// across restarts. Both honor a per-append TTL and expose CleanupExpired
// for periodic GC of abandoned sessions.
package sessionstore
