package vmisknn

import (
	"errors"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected default config to be valid, got %v", err)
	}
}

func TestConfigValidateRejectsInvalidFields(t *testing.T) {
	base := DefaultConfig()

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero m", func(c *Config) { c.MMostRecentSessions = 0 }},
		{"zero k", func(c *Config) { c.NeighborhoodSizeK = 0 }},
		{"k greater than m", func(c *Config) { c.NeighborhoodSizeK = c.MMostRecentSessions + 1 }},
		{"zero N", func(c *Config) { c.NumItemsToRecommend = 0 }},
		{"zero max items in session", func(c *Config) { c.MaxItemsInSession = 0 }},
		{"negative max session length", func(c *Config) { c.MaxSessionLength = -1 }},
		{"negative idf exponent", func(c *Config) { c.IDFExponent = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestConfigCloneIsIndependentCopy(t *testing.T) {
	original := DefaultConfig()
	clone := original.Clone()

	clone.MMostRecentSessions = 999
	if original.MMostRecentSessions == 999 {
		t.Error("expected Clone to return an independent copy")
	}
}
