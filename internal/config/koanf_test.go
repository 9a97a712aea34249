package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadWithKoanfDefaults(t *testing.T) {
	cfg, err := LoadWithKoanf("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Model.MMostRecentSessions != 500 {
		t.Errorf("expected default m_most_recent_sessions 500, got %d", cfg.Model.MMostRecentSessions)
	}
	if cfg.Model.NumItemsToRecommend != 21 {
		t.Errorf("expected default num_items_to_recommend 21, got %d", cfg.Model.NumItemsToRecommend)
	}
	if cfg.SessionStore.Backend != "memory" {
		t.Errorf("expected default session_store backend memory, got %s", cfg.SessionStore.Backend)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default server port 8080, got %d", cfg.Server.Port)
	}
	// Validate only checks that training.events_path is non-empty, not
	// that the file exists, so the defaults validate.
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestLoadWithKoanfFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yamlContent := `
server:
  port: 9090
model:
  num_items_to_recommend: 10
session_store:
  backend: badger
  badger_dir: /tmp/sessions
training:
  events_path: /tmp/events.tsv
`
	if err := os.WriteFile(path, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("writing fixture config: %v", err)
	}

	cfg, err := LoadWithKoanf(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected file-overridden port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Model.NumItemsToRecommend != 10 {
		t.Errorf("expected file-overridden num_items_to_recommend 10, got %d", cfg.Model.NumItemsToRecommend)
	}
	// Untouched defaults must survive the file layer.
	if cfg.Model.MMostRecentSessions != 500 {
		t.Errorf("expected untouched default m_most_recent_sessions 500, got %d", cfg.Model.MMostRecentSessions)
	}
}

func TestLoadWithKoanfEnvOverridesFileAndDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yamlContent := `
server:
  port: 9090
training:
  events_path: /tmp/events.tsv
`
	if err := os.WriteFile(path, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("writing fixture config: %v", err)
	}

	t.Setenv("VMISKNN_SERVER_PORT", "7000")
	t.Setenv("VMISKNN_MODEL_IDF_EXPONENT", "2.5")

	cfg, err := LoadWithKoanf(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("expected env-overridden port 7000, got %d", cfg.Server.Port)
	}
	if cfg.Model.IDFExponent != 2.5 {
		t.Errorf("expected env-overridden idf_exponent 2.5, got %f", cfg.Model.IDFExponent)
	}
}

func TestLoadWithKoanfInvalidConfigFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yamlContent := `
server:
  port: 0
training:
  events_path: /tmp/events.tsv
`
	if err := os.WriteFile(path, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("writing fixture config: %v", err)
	}

	if _, err := LoadWithKoanf(path); err == nil {
		t.Error("expected error for invalid server.port, got nil")
	}
}

func TestFindConfigFilePrefersEnvVar(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "explicit.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 1234\n"), 0o644); err != nil {
		t.Fatalf("writing fixture config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	if got := findConfigFile(); got != path {
		t.Errorf("expected %s, got %s", path, got)
	}
}

func TestEnvTransformFuncMapsKnownKeys(t *testing.T) {
	cases := map[string]string{
		"VMISKNN_SERVER_PORT":               "server.port",
		"VMISKNN_MODEL_IDF_EXPONENT":        "model.idf_exponent",
		"VMISKNN_SESSION_STORE_BACKEND":     "session_store.backend",
		"VMISKNN_STORAGE_KEEP_VERSIONS":     "storage.keep_versions",
		"VMISKNN_TRAINING_REBUILD_INTERVAL": "training.rebuild_interval",
	}
	for in, want := range cases {
		if got := envTransformFunc(in); got != want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDefaultConfigSessionStoreTTLIsPositive(t *testing.T) {
	cfg := defaultConfig()
	if cfg.SessionStore.TTL <= 0 {
		t.Errorf("expected positive default TTL, got %v", cfg.SessionStore.TTL)
	}
	if cfg.SessionStore.TTL != 30*time.Minute {
		t.Errorf("expected default TTL 30m, got %v", cfg.SessionStore.TTL)
	}
}
