package sniff

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// cueMaxSize caps the read; real cue sheets are a few hundred bytes.
const cueMaxSize = 64 << 10

var (
	cueTitleRegex     = regexp.MustCompile(`(?im)^\s*TITLE\s+"([^"]+)"`)
	cuePerformerRegex = regexp.MustCompile(`(?im)^\s*PERFORMER\s+"([^"]+)"`)
)

// CueMeta is the disc-level metadata a cue sheet volunteers.
type CueMeta struct {
	Title     string
	Performer string
}

// CueSheet extracts the first TITLE and PERFORMER lines from the cue sheet
// at path. A sheet without either yields a zero CueMeta and no error.
func CueSheet(path string) (CueMeta, error) {
	f, err := os.Open(path)
	if err != nil {
		return CueMeta{}, fmt.Errorf("open cue sheet: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, cueMaxSize))
	if err != nil {
		return CueMeta{}, fmt.Errorf("read cue sheet: %w", err)
	}

	var meta CueMeta
	if m := cueTitleRegex.FindSubmatch(data); m != nil {
		meta.Title = strings.TrimSpace(string(m[1]))
	}
	if m := cuePerformerRegex.FindSubmatch(data); m != nil {
		meta.Performer = strings.TrimSpace(string(m[1]))
	}
	return meta, nil
}
