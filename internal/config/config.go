// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	LogLevel string         `toml:"log_level"`
	Database DatabaseConfig `toml:"database"`
	Library  LibraryConfig  `toml:"library"`
	Matching MatchingConfig `toml:"matching"`
	Probe    ProbeConfig    `toml:"probe"`
	Scrape   ScrapeConfig   `toml:"scrape"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type LibraryConfig struct {
	Root       string   `toml:"root"`
	Extensions []string `toml:"extensions"`
}

type MatchingConfig struct {
	Threshold float64 `toml:"threshold"`
}

type ProbeConfig struct {
	Binary         string `toml:"binary"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type ScrapeConfig struct {
	URLs []string `toml:"urls"`
}

// Default wiki list pages the catalog is populated from.
var defaultScrapeURLs = []string{
	"https://en.wikipedia.org/wiki/List_of_PlayStation_games_(A%E2%80%93L)",
	"https://en.wikipedia.org/wiki/List_of_PlayStation_games_(M%E2%80%93Z)",
}

// Load reads and parses the configuration file. An empty path searches the
// usual locations and falls back to pure defaults when nothing is found.
func Load(path string) (*Config, error) {
	if path == "" {
		path = discover()
	}
	if path == "" {
		cfg := &Config{}
		cfg.applyDefaults()
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Substitute environment variables
	content := substituteEnvVars(string(data))
	if missing := unresolvedEnvVars(content); len(missing) > 0 {
		return nil, &ConfigError{Path: path, Missing: missing}
	}

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Database.Path == "" {
		c.Database.Path = "./data/ps1_collection.db"
	}
	if len(c.Library.Extensions) == 0 {
		c.Library.Extensions = []string{".bin", ".iso", ".img", ".cue", ".chd", ".pbp"}
	}
	if c.Matching.Threshold == 0 {
		c.Matching.Threshold = 0.8
	}
	if c.Probe.Binary == "" {
		c.Probe.Binary = "file"
	}
	if c.Probe.TimeoutSeconds == 0 {
		c.Probe.TimeoutSeconds = 5
	}
	if len(c.Scrape.URLs) == 0 {
		c.Scrape.URLs = defaultScrapeURLs
	}
}

// discover returns the first existing config file among the usual locations.
func discover() string {
	candidates := []string{"./ps1db.toml"}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "ps1db", "config.toml"))
	}
	candidates = append(candidates, "/etc/ps1db/config.toml")

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func substituteEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		varName := match[2 : len(match)-1] // Strip ${ and }
		if value, ok := os.LookupEnv(varName); ok {
			return value
		}
		return match // Leave unchanged if not found
	})
}

func unresolvedEnvVars(content string) []string {
	var missing []string
	seen := make(map[string]bool)
	for _, m := range envVarPattern.FindAllStringSubmatch(content, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			missing = append(missing, m[1])
		}
	}
	return missing
}
