package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultMatchesDefault(t *testing.T) {
	var cfg Config
	if err := yaml.Unmarshal(defaultSnakeYAML, &cfg); err != nil {
		t.Fatalf("Embedded default does not parse: %v", err)
	}

	want := Default()
	if cfg != want {
		t.Errorf("Embedded default = %+v\nexpected %+v", cfg, want)
	}
}

func TestLoadCustomPathPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snake.yaml")
	data := []byte(`
storage:
  path: /tmp/other.db
ssh:
  idle_timeout: 5m
theme:
  food: { glyph: "@@", color: yellow }
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Storage.Path != "/tmp/other.db" {
		t.Errorf("Storage.Path = %q, expected /tmp/other.db", cfg.Storage.Path)
	}
	if cfg.SSH.IdleTimeout != 5*time.Minute {
		t.Errorf("SSH.IdleTimeout = %v, expected 5m", cfg.SSH.IdleTimeout)
	}
	if cfg.Theme.Food.Glyph != "@@" || cfg.Theme.Food.Color != "yellow" {
		t.Errorf("Theme.Food = %+v, expected @@ yellow", cfg.Theme.Food)
	}

	// Untouched keys keep their defaults
	if cfg.SSH.Address != ":23235" {
		t.Errorf("SSH.Address = %q, expected default :23235", cfg.SSH.Address)
	}
	if cfg.Theme.Head != Default().Theme.Head {
		t.Errorf("Theme.Head = %+v, expected default", cfg.Theme.Head)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of a missing custom file should fail")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("storage: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(bad)
	if err == nil {
		t.Error("Load() of malformed YAML should fail")
	}
	if cfg != Default() {
		t.Error("A failed parse should hand back the defaults")
	}
}

func TestLoadWithoutFiles(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load() without files = %+v, expected defaults", cfg)
	}
}

func TestLoadUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	dir := filepath.Join(home, ".snake")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("log:\n  level: debug\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, expected debug from ~/.snake/config.yaml", cfg.Log.Level)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level   string
		want    log.Level
		wantErr bool
	}{
		{"", log.InfoLevel, false},
		{"debug", log.DebugLevel, false},
		{"warn", log.WarnLevel, false},
		{"loud", log.InfoLevel, true},
	}

	for _, tc := range tests {
		got, err := LogConfig{Level: tc.level}.ParseLevel()
		if got != tc.want || (err != nil) != tc.wantErr {
			t.Errorf("ParseLevel(%q) = (%v, %v), expected (%v, err=%v)", tc.level, got, err, tc.want, tc.wantErr)
		}
	}
}
