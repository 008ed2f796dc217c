package scanner

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// commandContext is swapped in tests.
var commandContext = exec.CommandContext

// FileProbe identifies files by running an external command, file(1) by
// default.
type FileProbe struct {
	binary  string
	timeout time.Duration
}

// NewFileProbe creates a probe running binary with the given per-file
// timeout.
func NewFileProbe(binary string, timeout time.Duration) *FileProbe {
	if binary == "" {
		binary = "file"
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &FileProbe{binary: binary, timeout: timeout}
}

// Identify returns the probe's one-line description of path. A probe that
// exceeds its budget is "no signal", not an error: the scan goes on without
// it.
func (p *FileProbe) Identify(ctx context.Context, path string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	out, err := commandContext(ctx, p.binary, "--brief", path).Output()
	if ctx.Err() != nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("probe %s: %w", path, err)
	}
	return strings.TrimSpace(string(out)), nil
}
