// Package httpapi is the thin HTTP serving surface for the VMIS-kNN
// recommender. It exposes a single endpoint, GET /v1/recommend, that
// mirrors the original Serenade contract: given the most recently viewed
// item and a session identifier, it appends the item to the caller's
// evolving session (when consent is given) and returns a ranked list of
// recommended item IDs.
//
// The handler composes two collaborators that are out of scope for this
// package's own logic: the session store (internal/sessionstore), which
// tracks the evolving session across requests, and the prediction engine
// (internal/vmisknn), which holds the trained offline index and serves
// Predict. This package owns request parsing, response encoding, rate
// limiting, and request instrumentation only.
package httpapi
