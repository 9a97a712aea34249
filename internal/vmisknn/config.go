package vmisknn

import "fmt"

// Config holds the hyper-parameters consumed by the offline index builder
// and by Predict. It is typically loaded once at startup via
// internal/config and passed by value to NewEngine; the index builder
// receives the m and session-length bounds through BuildOptions.
type Config struct {
	// MMostRecentSessions bounds both the posting-list length and the
	// neighbor-candidate set size ("m" in the algorithm notation).
	MMostRecentSessions int `json:"m_most_recent_sessions"`

	// NeighborhoodSizeK is the number of top-similarity neighbors used
	// for item scoring ("k"). Must be <= MMostRecentSessions.
	NeighborhoodSizeK int `json:"neighborhood_size_k"`

	// NumItemsToRecommend is the size of the returned top-N list.
	NumItemsToRecommend int `json:"num_items_to_recommend"`

	// MaxItemsInSession caps the evolving-session length used by
	// Predict: of a longer session, only the newest MaxItemsInSession
	// items are used.
	MaxItemsInSession int `json:"max_items_in_session"`

	// MaxSessionLength optionally excludes training sessions whose item
	// count exceeds this cap from the posting lists, on the grounds
	// that very long sessions contribute noise. Zero disables the
	// filter.
	MaxSessionLength int `json:"max_session_length"`

	// IDFExponent is the "alpha" from the idf_weighting open question:
	// item_scores[i] += session_weight * idf(i)^alpha * similarity.
	// Zero disables IDF weighting entirely; one is the classical form.
	IDFExponent float64 `json:"idf_exponent"`

	// EnableBusinessLogic toggles the business-rule filter at top-N
	// admission time.
	EnableBusinessLogic bool `json:"enable_business_logic"`
}

// DefaultConfig returns the default hyper-parameters, matching the
// original implementation's documented defaults.
func DefaultConfig() Config {
	return Config{
		MMostRecentSessions: 500,
		NeighborhoodSizeK:   500,
		NumItemsToRecommend: 21,
		MaxItemsInSession:   3,
		MaxSessionLength:    0,
		IDFExponent:         1,
		EnableBusinessLogic: true,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.MMostRecentSessions < 1 {
		return fmt.Errorf("%w: m_most_recent_sessions must be positive, got %d", ErrInvalidConfig, c.MMostRecentSessions)
	}
	if c.NeighborhoodSizeK < 1 {
		return fmt.Errorf("%w: neighborhood_size_k must be positive, got %d", ErrInvalidConfig, c.NeighborhoodSizeK)
	}
	if c.NeighborhoodSizeK > c.MMostRecentSessions {
		return fmt.Errorf("%w: neighborhood_size_k (%d) must be <= m_most_recent_sessions (%d)",
			ErrInvalidConfig, c.NeighborhoodSizeK, c.MMostRecentSessions)
	}
	if c.NumItemsToRecommend < 1 {
		return fmt.Errorf("%w: num_items_to_recommend must be positive, got %d", ErrInvalidConfig, c.NumItemsToRecommend)
	}
	if c.MaxItemsInSession < 1 {
		return fmt.Errorf("%w: max_items_in_session must be positive, got %d", ErrInvalidConfig, c.MaxItemsInSession)
	}
	if c.MaxSessionLength < 0 {
		return fmt.Errorf("%w: max_session_length must be non-negative, got %d", ErrInvalidConfig, c.MaxSessionLength)
	}
	if c.IDFExponent < 0 {
		return fmt.Errorf("%w: idf_exponent must be non-negative, got %f", ErrInvalidConfig, c.IDFExponent)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c Config) Clone() Config {
	return c
}
