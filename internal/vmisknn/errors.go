package vmisknn

import "errors"

// Build-time errors. These are fatal to index construction and are
// surfaced to the startup caller; they never occur on the query path.
var (
	// ErrMalformedInput is returned when a training record is not three
	// whitespace-separated fields or a field fails to parse numerically.
	ErrMalformedInput = errors.New("vmisknn: malformed training record")

	// ErrEmptyCorpus is returned when no sessions survive ingest.
	ErrEmptyCorpus = errors.New("vmisknn: empty corpus")

	// ErrIndexIOFailure is returned when the optional binary index
	// layout cannot be read.
	ErrIndexIOFailure = errors.New("vmisknn: index snapshot read failed")

	// ErrInvalidConfig is returned when a Config fails Validate.
	ErrInvalidConfig = errors.New("vmisknn: invalid configuration")
)

// PredictionEmpty is not an error kind at all — an empty top-N slice is
// the correct response when no item of the evolving session occurs in
// any training session. No sentinel exists for it; callers check len == 0.
