// Package sniff recovers identification signals from raw disc images using
// bounded reads. It never fails a scan: junk input degrades to an empty
// Signal.
package sniff

import (
	"io"
	"os"
	"regexp"
	"strings"
)

const (
	sectorSize = 2048

	// bootWindow covers the system area and the start of the filesystem,
	// where the boot descriptor lives.
	bootWindow = 32 * sectorSize

	pvdOffset     = 16 * sectorSize
	licenseOffset = 4 * sectorSize

	serialWindow = 256 << 10
)

var (
	bootRegex    = regexp.MustCompile(`BOOT\s*=\s*cdrom:\\?([^;\\]+)`)
	licenseRegex = regexp.MustCompile(`(?:TITLE|GAME)[:\s]+([A-Za-z0-9\s\-]+)`)

	// serialRegex admits only the three known retail prefix classes.
	serialRegex = regexp.MustCompile(`S[CLK][A-Z]{2}-\d{5}`)
)

// Signal is what a bounded read of an image surrendered. Either field may be
// empty; an all-empty Signal is a valid outcome, not an error.
type Signal struct {
	Title  string
	Serial string
}

func (s Signal) Empty() bool { return s.Title == "" && s.Serial == "" }

// SerialOnly reports that no title heuristic produced a plausible string but
// a serial was found, so the caller can fall back to serial-based lookup.
func (s Signal) SerialOnly() bool { return s.Title == "" && s.Serial != "" }

// File sniffs the image at path. Missing or unreadable files degrade to an
// empty Signal.
func File(path string) Signal {
	f, err := os.Open(path)
	if err != nil {
		return Signal{}
	}
	defer f.Close()
	return Image(f)
}

// Image runs the title heuristics in strict priority order: boot descriptor,
// ISO volume label, licence-area text. The first plausible string wins. Each
// heuristic reads only its own fixed window, never the whole image. The
// serial pass is independent of the title cascade.
func Image(r io.ReaderAt) Signal {
	sig := Signal{Serial: findSerial(r)}

	if t := bootTitle(r); t != "" {
		sig.Title = t
		return sig
	}
	if t := volumeLabel(r); t != "" {
		sig.Title = t
		return sig
	}
	sig.Title = licenseTitle(r)
	return sig
}

func bootTitle(r io.ReaderAt) string {
	m := bootRegex.FindSubmatch(readWindow(r, 0, bootWindow))
	if m == nil {
		return ""
	}
	return cleanBootName(string(m[1]))
}

// cleanBootName strips executable-name noise from a boot descriptor value.
// Serial-style names like "SLUS_005.94" reduce to their four-letter prefix
// and are rejected, pushing the cascade on to the volume label.
func cleanBootName(s string) string {
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9':
			return -1
		case r == '.' || r == ';' || r == '_' || r == '\\':
			return -1
		}
		return r
	}, s)
	s = strings.TrimSpace(s)
	if len(s) <= 4 {
		return ""
	}
	return s
}

func volumeLabel(r io.ReaderAt) string {
	sector := readWindow(r, pvdOffset, sectorSize)
	if len(sector) < 72 || string(sector[1:6]) != "CD001" {
		return ""
	}
	label := strings.TrimSpace(strings.TrimRight(printable(sector[40:72]), "; _"))
	if len(label) <= 4 || strings.HasPrefix(label, "PLAYSTATION") {
		return ""
	}
	return label
}

func licenseTitle(r io.ReaderAt) string {
	m := licenseRegex.FindSubmatch(readWindow(r, licenseOffset, sectorSize))
	if m == nil {
		return ""
	}
	t := strings.TrimSpace(string(m[1]))
	if len(t) <= 4 {
		return ""
	}
	return t
}

func findSerial(r io.ReaderAt) string {
	return string(serialRegex.Find(readWindow(r, 0, serialWindow)))
}

// readWindow returns whatever exists in [off, off+n). Short reads and EOF are
// fine; the heuristics just see less.
func readWindow(r io.ReaderAt, off int64, n int) []byte {
	buf := make([]byte, n)
	read, err := r.ReadAt(buf, off)
	if err != nil && err != io.EOF {
		return nil
	}
	return buf[:read]
}

// printable keeps printable ASCII only, so label fields padded with control
// bytes compare cleanly.
func printable(b []byte) string {
	out := make([]byte, 0, len(b))
	for _, c := range b {
		if c >= 0x20 && c < 0x7f {
			out = append(out, c)
		}
	}
	return string(out)
}
