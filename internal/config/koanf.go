package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix every environment variable override must carry,
// e.g. VMISKNN_SERVER_PORT.
const EnvPrefix = "VMISKNN_"

// ConfigPathEnvVar names the environment variable that, if set, points
// directly at the YAML config file to load.
const ConfigPathEnvVar = "VMISKNN_CONFIG_FILE"

// DefaultConfigPaths are searched, in order, when ConfigPathEnvVar is unset.
var DefaultConfigPaths = []string{
	"./config.yaml",
	"./config/config.yaml",
	"/etc/vmisknn/config.yaml",
}

func defaultConfig() *Config {
	return &Config{
		Model: ModelConfig{
			MMostRecentSessions: 500,
			NeighborhoodSizeK:   500,
			NumItemsToRecommend: 21,
			MaxItemsInSession:   3,
			MaxSessionLength:    0,
			IDFExponent:         1,
			EnableBusinessLogic: true,
		},
		Training: TrainingConfig{
			EventsPath:      "./data/events.tsv",
			AttributesPath:  "",
			RebuildInterval: 0,
		},
		Storage: StorageConfig{
			Enabled:      true,
			Dir:          "./data/snapshots",
			Name:         "vmisknn",
			KeepVersions: 3,
		},
		SessionStore: SessionStoreConfig{
			Backend:         "memory",
			BadgerDir:       "./data/sessions",
			TTL:             30 * time.Minute,
			CleanupInterval: 5 * time.Minute,
		},
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// findConfigFile resolves the YAML config file to load, if any. It checks
// ConfigPathEnvVar first, then DefaultConfigPaths in order. Returns "" if
// none exist.
func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		return p
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			abs, err := filepath.Abs(p)
			if err != nil {
				return p
			}
			return abs
		}
	}
	return ""
}

// envTransformFunc maps an environment variable name (after stripping
// EnvPrefix) to its koanf dot-path key, e.g. "SERVER_PORT" -> "server.port".
func envTransformFunc(key string) string {
	key = strings.TrimPrefix(key, EnvPrefix)
	key = strings.ToLower(key)

	switch key {
	case "model_m_most_recent_sessions":
		return "model.m_most_recent_sessions"
	case "model_neighborhood_size_k":
		return "model.neighborhood_size_k"
	case "model_num_items_to_recommend":
		return "model.num_items_to_recommend"
	case "model_max_items_in_session":
		return "model.max_items_in_session"
	case "model_max_session_length":
		return "model.max_session_length"
	case "model_idf_exponent":
		return "model.idf_exponent"
	case "model_enable_business_logic":
		return "model.enable_business_logic"
	case "training_events_path":
		return "training.events_path"
	case "training_attributes_path":
		return "training.attributes_path"
	case "training_rebuild_interval":
		return "training.rebuild_interval"
	case "storage_enabled":
		return "storage.enabled"
	case "storage_dir":
		return "storage.dir"
	case "storage_name":
		return "storage.name"
	case "storage_keep_versions":
		return "storage.keep_versions"
	case "session_store_backend":
		return "session_store.backend"
	case "session_store_badger_dir":
		return "session_store.badger_dir"
	case "session_store_ttl":
		return "session_store.ttl"
	case "session_store_cleanup_interval":
		return "session_store.cleanup_interval"
	case "server_host":
		return "server.host"
	case "server_port":
		return "server.port"
	case "server_read_timeout":
		return "server.read_timeout"
	case "server_write_timeout":
		return "server.write_timeout"
	case "logging_level":
		return "logging.level"
	case "logging_format":
		return "logging.format"
	case "logging_caller":
		return "logging.caller"
	default:
		// Fall back to a mechanical underscore-to-dot mapping for any key
		// not covered above (first underscore only, matching the nested
		// section/field shape of Config).
		if i := strings.Index(key, "_"); i > 0 {
			return key[:i] + "." + key[i+1:]
		}
		return key
	}
}

// Load reads configuration from built-in defaults, an optional YAML file,
// and environment variables (highest precedence), in that order, then
// validates the result.
func Load() (*Config, error) {
	return LoadWithKoanf(findConfigFile())
}

// LoadWithKoanf loads configuration using an explicit config file path
// ("" to skip the file layer). It is split out from Load so tests can
// point at a fixture file directly.
func LoadWithKoanf(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("config: loading defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: loading file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("config: loading environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshalling: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// GetKoanfInstance builds and returns the underlying *koanf.Koanf used to
// load cfg's values, without the final Unmarshal/Validate steps. It is
// useful for diagnostics (e.g. printing the fully-resolved key set).
func GetKoanfInstance(configPath string) (*koanf.Koanf, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, err
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, err
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, err
	}
	return k, nil
}

// WatchConfigFile watches path for changes and invokes callback whenever
// it is rewritten. The caller is responsible for reloading configuration
// (typically via LoadWithKoanf) and for synchronizing access to it.
func WatchConfigFile(path string, callback func()) error {
	provider := file.Provider(path)
	return provider.Watch(func(event interface{}, err error) {
		if err != nil {
			return
		}
		callback()
	})
}
