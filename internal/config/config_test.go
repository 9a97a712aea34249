package config

import (
	"errors"
	"testing"
	"time"
)

func validConfig() *Config {
	cfg := defaultConfig()
	cfg.Training.EventsPath = "/tmp/events.tsv"
	return cfg
}

func TestConfigValidateAcceptsValidConfig(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestConfigValidateRejectsBadModel(t *testing.T) {
	cfg := validConfig()
	cfg.Model.NeighborhoodSizeK = cfg.Model.MMostRecentSessions + 1

	err := cfg.Validate()
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestConfigValidateRejectsMissingEventsPath(t *testing.T) {
	cfg := validConfig()
	cfg.Training.EventsPath = ""

	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestConfigValidateRejectsUnknownSessionStoreBackend(t *testing.T) {
	cfg := validConfig()
	cfg.SessionStore.Backend = "redis"

	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestConfigValidateRequiresBadgerDirWhenBackendIsBadger(t *testing.T) {
	cfg := validConfig()
	cfg.SessionStore.Backend = "badger"
	cfg.SessionStore.BadgerDir = ""

	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestConfigValidateRejectsNonPositiveTTL(t *testing.T) {
	cfg := validConfig()
	cfg.SessionStore.TTL = 0

	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestConfigValidateRequiresStorageDirWhenEnabled(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.Enabled = true
	cfg.Storage.Dir = ""

	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestConfigValidateRejectsBadPort(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 70000

	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestConfigValidateRejectsUnknownLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "verbose"

	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestConfigValidateRejectsUnknownLogFormat(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Format = "xml"

	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestModelConfigToVMISKNNConfigMirrorsFields(t *testing.T) {
	cfg := validConfig()
	cfg.Model.MMostRecentSessions = 123
	cfg.Model.NeighborhoodSizeK = 100
	cfg.Model.NumItemsToRecommend = 5
	cfg.Model.MaxItemsInSession = 2
	cfg.Model.MaxSessionLength = 7
	cfg.Model.IDFExponent = 0.5
	cfg.Model.EnableBusinessLogic = false

	vc := cfg.Model.ToVMISKNNConfig()
	if vc.MMostRecentSessions != 123 || vc.NeighborhoodSizeK != 100 ||
		vc.NumItemsToRecommend != 5 || vc.MaxItemsInSession != 2 ||
		vc.MaxSessionLength != 7 || vc.IDFExponent != 0.5 || vc.EnableBusinessLogic != false {
		t.Errorf("unexpected conversion: %+v", vc)
	}
}

func TestSessionStoreConfigCleanupIntervalDefault(t *testing.T) {
	cfg := defaultConfig()
	if cfg.SessionStore.CleanupInterval != 5*time.Minute {
		t.Errorf("expected default cleanup interval 5m, got %v", cfg.SessionStore.CleanupInterval)
	}
}
