package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("PS1DB_DATA", "/srv/ps1db")
	path := writeConfig(t, `
log_level = "debug"

[database]
path = "${PS1DB_DATA}/collection.db"

[library]
root = "/srv/dumps"
extensions = [".bin", ".cue"]

[matching]
threshold = 0.85

[probe]
timeout_seconds = 10
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log_level = %q", cfg.LogLevel)
	}
	if cfg.Database.Path != "/srv/ps1db/collection.db" {
		t.Errorf("env substitution failed: %q", cfg.Database.Path)
	}
	if len(cfg.Library.Extensions) != 2 {
		t.Errorf("extensions = %v", cfg.Library.Extensions)
	}
	if cfg.Matching.Threshold != 0.85 {
		t.Errorf("threshold = %g", cfg.Matching.Threshold)
	}
	if cfg.Probe.TimeoutSeconds != 10 {
		t.Errorf("timeout = %d", cfg.Probe.TimeoutSeconds)
	}
	// Unset keys fall back to defaults.
	if cfg.Probe.Binary != "file" {
		t.Errorf("probe binary default = %q", cfg.Probe.Binary)
	}
	if len(cfg.Scrape.URLs) != 2 {
		t.Errorf("scrape url defaults = %v", cfg.Scrape.URLs)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("log_level default = %q", cfg.LogLevel)
	}
	if cfg.Database.Path == "" || cfg.Matching.Threshold != 0.8 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.Probe.TimeoutSeconds != 5 {
		t.Errorf("probe timeout default = %d", cfg.Probe.TimeoutSeconds)
	}
}

func TestLoadMissingEnvVar(t *testing.T) {
	path := writeConfig(t, `
[database]
path = "${PS1DB_SURELY_UNSET_VAR}/db"
`)

	_, err := Load(path)
	var cerr *ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *ConfigError, got %v", err)
	}
	if len(cerr.Missing) != 1 || cerr.Missing[0] != "PS1DB_SURELY_UNSET_VAR" {
		t.Errorf("missing = %v", cerr.Missing)
	}
	if !strings.Contains(cerr.Error(), "PS1DB_SURELY_UNSET_VAR") {
		t.Errorf("error message should name the variable: %q", cerr.Error())
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err == nil {
		t.Error("Load should fail for a missing explicit path")
	}
}

func TestLoadBadTOML(t *testing.T) {
	_, err := Load(writeConfig(t, "log_level = [unclosed"))
	if err == nil {
		t.Error("Load should fail for malformed TOML")
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("default config should validate, got %v", errs)
	}

	cfg = &Config{
		LogLevel: "loud",
		Matching: MatchingConfig{Threshold: 1.5},
		Probe:    ProbeConfig{TimeoutSeconds: 0},
		Library:  LibraryConfig{Extensions: []string{"bin"}},
		Scrape:   ScrapeConfig{URLs: []string{"ftp://example.org"}},
	}
	errs := cfg.Validate()
	if len(errs) != 5 {
		t.Errorf("got %d errors, want 5: %v", len(errs), errs)
	}
}

func TestValidateMissingLibraryRoot(t *testing.T) {
	cfg := &Config{Library: LibraryConfig{Root: filepath.Join(t.TempDir(), "nope")}}
	cfg.applyDefaults()

	errs := cfg.Validate()
	if len(errs) != 1 || !strings.Contains(errs[0], "library.root") {
		t.Errorf("got %v", errs)
	}
}

func TestConfigErrorEmpty(t *testing.T) {
	e := &ConfigError{}
	if e.HasErrors() {
		t.Error("empty ConfigError should report no errors")
	}
	if e.Error() != "" {
		t.Errorf("Error() = %q", e.Error())
	}
}
