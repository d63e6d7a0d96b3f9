package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/expmath/vdcorput/internal/bounds"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "debug: false\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Host != "localhost" || cfg.Server.Port != 8080 {
		t.Errorf("server defaults = %s:%d", cfg.Server.Host, cfg.Server.Port)
	}
	if cfg.Numerics.PrecisionBits != bounds.DefaultPrecisionBits {
		t.Errorf("PrecisionBits = %d, want %d", cfg.Numerics.PrecisionBits, bounds.DefaultPrecisionBits)
	}
	if cfg.Closure.SearchDepth != 5 || !cfg.Closure.PruneOrDefault() {
		t.Errorf("closure defaults = depth %d, prune %v", cfg.Closure.SearchDepth, cfg.Closure.PruneOrDefault())
	}
	if cfg.Knowledge.WatchOrDefault() {
		t.Error("watch should default to false without a knowledge dir")
	}
}

func TestLoad_Explicit(t *testing.T) {
	path := writeConfig(t, `
debug: true
server:
  host: 0.0.0.0
  port: 9090
storage:
  database_path: /tmp/kb.db
knowledge:
  dir: /tmp/knowledge
  watch: false
numerics:
  precision_bits: 128
closure:
  search_depth: 3
  prune: false
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Debug {
		t.Error("Debug not set")
	}
	if cfg.Server.Host != "0.0.0.0" || cfg.Server.Port != 9090 {
		t.Errorf("server = %s:%d", cfg.Server.Host, cfg.Server.Port)
	}
	if cfg.Storage.DatabasePath != "/tmp/kb.db" {
		t.Errorf("DatabasePath = %q", cfg.Storage.DatabasePath)
	}
	if cfg.Knowledge.Dir != "/tmp/knowledge" || cfg.Knowledge.WatchOrDefault() {
		t.Errorf("knowledge = %q watch %v", cfg.Knowledge.Dir, cfg.Knowledge.WatchOrDefault())
	}
	if cfg.Numerics.PrecisionBits != 128 {
		t.Errorf("PrecisionBits = %d", cfg.Numerics.PrecisionBits)
	}
	if cfg.Closure.SearchDepth != 3 || cfg.Closure.PruneOrDefault() {
		t.Errorf("closure = depth %d, prune %v", cfg.Closure.SearchDepth, cfg.Closure.PruneOrDefault())
	}
}

func TestLoad_RelativePaths(t *testing.T) {
	path := writeConfig(t, `
storage:
  database_path: ./data/kb.db
knowledge:
  dir: ./knowledge
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	configDir := filepath.Dir(path)
	if cfg.Storage.DatabasePath != filepath.Join(configDir, "data/kb.db") {
		t.Errorf("DatabasePath = %q", cfg.Storage.DatabasePath)
	}
	if cfg.Knowledge.Dir != filepath.Join(configDir, "knowledge") {
		t.Errorf("Knowledge.Dir = %q", cfg.Knowledge.Dir)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}
	path := writeConfig(t, "server: [not a mapping\n")
	if _, err := Load(path); err == nil {
		t.Error("malformed yaml should fail")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg := &Config{}
	ApplyDefaults(cfg)
	cfg.Server.Port = 7070

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Server.Port != 7070 {
		t.Errorf("Port = %d after round trip", loaded.Server.Port)
	}
}
