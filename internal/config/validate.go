package config

import (
	"fmt"
	"os"
	"strings"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if !validLogLevels[c.LogLevel] {
		errs = append(errs, fmt.Sprintf("log_level: must be one of debug, info, warn, error; got %q", c.LogLevel))
	}

	if c.Matching.Threshold < 0 || c.Matching.Threshold > 1 {
		errs = append(errs, fmt.Sprintf("matching.threshold: must be in [0, 1], got %g", c.Matching.Threshold))
	}

	if c.Probe.TimeoutSeconds < 1 {
		errs = append(errs, fmt.Sprintf("probe.timeout_seconds: must be at least 1, got %d", c.Probe.TimeoutSeconds))
	}

	for _, ext := range c.Library.Extensions {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, fmt.Sprintf("library.extensions: %q must start with a dot", ext))
		}
	}

	for _, u := range c.Scrape.URLs {
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			errs = append(errs, fmt.Sprintf("scrape.urls: %q is not an http(s) URL", u))
		}
	}

	if c.Library.Root != "" {
		if _, err := os.Stat(c.Library.Root); os.IsNotExist(err) {
			errs = append(errs, fmt.Sprintf("library.root: warning: directory %q does not exist", c.Library.Root))
		}
	}

	return errs
}
