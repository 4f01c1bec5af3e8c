package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okabeworks/visatrans/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d", cfg.Server.Port)
	}
	if cfg.Engine.Provider != "openai" {
		t.Errorf("engine.provider = %q", cfg.Engine.Provider)
	}
	if cfg.Pipeline.SourceLang != "ja" || cfg.Pipeline.TargetLang != "en" {
		t.Errorf("language pair = %q/%q", cfg.Pipeline.SourceLang, cfg.Pipeline.TargetLang)
	}
	if cfg.Pipeline.MaxParallel != 4 {
		t.Errorf("pipeline.max_parallel = %d", cfg.Pipeline.MaxParallel)
	}
	if cfg.Pipeline.CacheTTL != 30*time.Minute {
		t.Errorf("pipeline.cache_ttl = %v", cfg.Pipeline.CacheTTL)
	}
	if cfg.Vocabulary.Path == "" {
		t.Error("vocabulary.path default missing")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("VISATRANS_SERVER_PORT", "9191")
	t.Setenv("VISATRANS_ENGINE_PROVIDER", "ollama")

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9191 {
		t.Errorf("server.port = %d", cfg.Server.Port)
	}
	if cfg.Engine.Provider != "ollama" {
		t.Errorf("engine.provider = %q", cfg.Engine.Provider)
	}
}

// Keys whose default is the zero value must still accept env overrides;
// viper ignores env vars for keys it has never seen.
func TestLoad_EnvOverrideForZeroDefaultKeys(t *testing.T) {
	t.Setenv("VISATRANS_ENGINE_API_KEY", "sk-test")
	t.Setenv("VISATRANS_ENGINE_MODEL", "gpt-4o")
	t.Setenv("VISATRANS_ENGINE_BASE_URL", "http://localhost:8000/v1")
	t.Setenv("VISATRANS_ENGINE_CREDENTIALS", "/etc/visatrans/sa.json")
	t.Setenv("VISATRANS_VOCABULARY_DB_PATH", "/var/lib/visatrans/vocab.db")

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Engine.APIKey != "sk-test" {
		t.Errorf("engine.api_key = %q", cfg.Engine.APIKey)
	}
	if cfg.Engine.Model != "gpt-4o" {
		t.Errorf("engine.model = %q", cfg.Engine.Model)
	}
	if cfg.Engine.BaseURL != "http://localhost:8000/v1" {
		t.Errorf("engine.base_url = %q", cfg.Engine.BaseURL)
	}
	if cfg.Engine.Credentials != "/etc/visatrans/sa.json" {
		t.Errorf("engine.credentials = %q", cfg.Engine.Credentials)
	}
	if cfg.Vocabulary.DBPath != "/var/lib/visatrans/vocab.db" {
		t.Errorf("vocabulary.db_path = %q", cfg.Vocabulary.DBPath)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `server:
  port: 7070
engine:
  provider: google
pipeline:
  max_parallel: 2
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("server.port = %d", cfg.Server.Port)
	}
	if cfg.Engine.Provider != "google" {
		t.Errorf("engine.provider = %q", cfg.Engine.Provider)
	}
	if cfg.Pipeline.MaxParallel != 2 {
		t.Errorf("pipeline.max_parallel = %d", cfg.Pipeline.MaxParallel)
	}
}

func TestLoad_MissingConfigFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}
