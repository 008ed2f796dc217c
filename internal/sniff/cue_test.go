package sniff

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCue(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "disc.cue")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCueSheet(t *testing.T) {
	path := writeCue(t, `TITLE "Ridge Racer Type 4"
PERFORMER "Namco"
FILE "track01.bin" BINARY
  TRACK 01 MODE2/2352
    INDEX 01 00:00:00
`)

	meta, err := CueSheet(path)
	require.NoError(t, err)
	assert.Equal(t, "Ridge Racer Type 4", meta.Title)
	assert.Equal(t, "Namco", meta.Performer)
}

func TestCueSheetNoMetadata(t *testing.T) {
	path := writeCue(t, `FILE "track01.bin" BINARY
  TRACK 01 MODE2/2352
    INDEX 01 00:00:00
`)

	meta, err := CueSheet(path)
	require.NoError(t, err)
	assert.Empty(t, meta.Title)
	assert.Empty(t, meta.Performer)
}

func TestCueSheetMissingFile(t *testing.T) {
	_, err := CueSheet(filepath.Join(t.TempDir(), "absent.cue"))
	assert.Error(t, err)
}
