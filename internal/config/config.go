package config

import (
	"fmt"
	"time"

	"github.com/sessionml/vmisknn/internal/vmisknn"
)

// Config holds all application configuration for the recommender service.
type Config struct {
	Model        ModelConfig        `koanf:"model"`
	Training     TrainingConfig     `koanf:"training"`
	Storage      StorageConfig      `koanf:"storage"`
	SessionStore SessionStoreConfig `koanf:"session_store"`
	Server       ServerConfig       `koanf:"server"`
	Logging      LoggingConfig      `koanf:"logging"`
}

// ModelConfig mirrors vmisknn.Config's koanf-loadable fields.
type ModelConfig struct {
	MMostRecentSessions int     `koanf:"m_most_recent_sessions"`
	NeighborhoodSizeK   int     `koanf:"neighborhood_size_k"`
	NumItemsToRecommend int     `koanf:"num_items_to_recommend"`
	MaxItemsInSession   int     `koanf:"max_items_in_session"`
	MaxSessionLength    int     `koanf:"max_session_length"`
	IDFExponent         float64 `koanf:"idf_exponent"`
	EnableBusinessLogic bool    `koanf:"enable_business_logic"`
}

// ToVMISKNNConfig converts to the internal/vmisknn.Config the engine
// actually consumes.
func (m ModelConfig) ToVMISKNNConfig() vmisknn.Config {
	return vmisknn.Config{
		MMostRecentSessions: m.MMostRecentSessions,
		NeighborhoodSizeK:   m.NeighborhoodSizeK,
		NumItemsToRecommend: m.NumItemsToRecommend,
		MaxItemsInSession:   m.MaxItemsInSession,
		MaxSessionLength:    m.MaxSessionLength,
		IDFExponent:         m.IDFExponent,
		EnableBusinessLogic: m.EnableBusinessLogic,
	}
}

// TrainingConfig locates the training corpus and controls index rebuilds.
type TrainingConfig struct {
	// EventsPath is the TSV training file (session_id, item_id, timestamp).
	EventsPath string `koanf:"events_path"`

	// AttributesPath is an optional TSV/CSV file of item business-rule
	// attributes (item_id, is_for_sale, is_adult). Empty disables
	// business-rule filtering regardless of Model.EnableBusinessLogic.
	AttributesPath string `koanf:"attributes_path"`

	// RebuildInterval is how often the index is rebuilt from EventsPath.
	// Zero disables periodic rebuilding (build once at startup).
	RebuildInterval time.Duration `koanf:"rebuild_interval"`
}

// StorageConfig controls where built-index snapshots are persisted.
type StorageConfig struct {
	Enabled bool   `koanf:"enabled"`
	Dir     string `koanf:"dir"`
	Name    string `koanf:"name"`
	// KeepVersions bounds how many snapshot versions Prune retains.
	KeepVersions int `koanf:"keep_versions"`
}

// SessionStoreConfig selects and configures the evolving-session store.
type SessionStoreConfig struct {
	// Backend is "memory" or "badger".
	Backend string `koanf:"backend"`
	// BadgerDir is the BadgerDB data directory, used when Backend is "badger".
	BadgerDir string `koanf:"badger_dir"`
	// TTL bounds how long an idle evolving session is retained.
	TTL time.Duration `koanf:"ttl"`
	// CleanupInterval is how often expired sessions are swept.
	CleanupInterval time.Duration `koanf:"cleanup_interval"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
}

// LoggingConfig configures the zerolog-based logger.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`
	// Format is the output format: json or console.
	Format string `koanf:"format"`
	// Caller includes the calling file:line in each log entry.
	Caller bool `koanf:"caller"`
}

// Validate checks the configuration for errors, delegating model
// hyperparameter checks to vmisknn.Config.Validate.
func (c *Config) Validate() error {
	modelCfg := c.Model.ToVMISKNNConfig()
	if err := modelCfg.Validate(); err != nil {
		return fmt.Errorf("%w: model: %w", ErrInvalidConfig, err)
	}

	if c.Training.EventsPath == "" {
		return fmt.Errorf("%w: training.events_path must be set", ErrInvalidConfig)
	}

	switch c.SessionStore.Backend {
	case "memory", "badger":
	default:
		return fmt.Errorf("%w: session_store.backend must be \"memory\" or \"badger\", got %q", ErrInvalidConfig, c.SessionStore.Backend)
	}
	if c.SessionStore.Backend == "badger" && c.SessionStore.BadgerDir == "" {
		return fmt.Errorf("%w: session_store.badger_dir must be set when backend is \"badger\"", ErrInvalidConfig)
	}
	if c.SessionStore.TTL <= 0 {
		return fmt.Errorf("%w: session_store.ttl must be positive", ErrInvalidConfig)
	}

	if c.Storage.Enabled && c.Storage.Dir == "" {
		return fmt.Errorf("%w: storage.dir must be set when storage.enabled is true", ErrInvalidConfig)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port must be in (0, 65535], got %d", ErrInvalidConfig, c.Server.Port)
	}

	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logging.level must be one of trace/debug/info/warn/error, got %q", ErrInvalidConfig, c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("%w: logging.format must be \"json\" or \"console\", got %q", ErrInvalidConfig, c.Logging.Format)
	}

	return nil
}
