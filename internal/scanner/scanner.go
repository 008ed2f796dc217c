// Package scanner walks a library of disc dumps and reconciles each file
// against the catalog.
package scanner

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmunix/ps1db/internal/collection"
	"github.com/vmunix/ps1db/internal/sniff"
	"github.com/vmunix/ps1db/pkg/title"
)

// Catalog is the slice of the catalog store a scan needs.
type Catalog interface {
	Entries() ([]title.Entry, error)
	FindBySerial(serial string) (title.Entry, error)
	UpdateSerial(id int64, serial string) error
}

// Library receives the scan's persistence writes.
type Library interface {
	UpsertEntry(e *collection.LibraryEntry) error
	Prune(seen []string) (int64, error)
}

// Prober identifies a file with an external command under a deadline.
type Prober interface {
	Identify(ctx context.Context, path string) (string, error)
}

// Decision is the verdict an interactive session returns for one match.
type Decision int

const (
	DecisionAccept Decision = iota
	DecisionReject
	DecisionAcceptRest // accept this and stop asking
)

// ConfirmFunc reviews a sub-exact match before it is recorded.
type ConfirmFunc func(cand title.Candidate, match title.Scored) Decision

// Stats summarizes one scan run.
type Stats struct {
	Processed    int
	Matched      int
	Ambiguous    int
	Unmatched    int
	SerialsFound int
	Updated      int // catalog serial numbers written
	Pruned       int64
}

// Options tune a Scanner. Zero values select sensible defaults.
type Options struct {
	Probe      Prober
	Logger     *slog.Logger
	Threshold  float64
	Extensions []string
	Confirm    ConfirmFunc
}

// Scanner reconciles a directory tree of disc dumps against a catalog
// snapshot. It processes one file at a time to completion; consistent
// catalog comparisons matter more than throughput here.
type Scanner struct {
	catalog   Catalog
	library   Library
	probe     Prober
	log       *slog.Logger
	threshold float64
	exts      map[string]bool
	confirm   ConfirmFunc
	acceptAll bool

	// indirection for tests
	sniffFile func(string) sniff.Signal
	parseCue  func(string) (sniff.CueMeta, error)
}

// New creates a Scanner.
func New(cat Catalog, lib Library, opts Options) *Scanner {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = []string{".bin", ".iso", ".img", ".cue", ".chd", ".pbp"}
	}
	extSet := make(map[string]bool, len(exts))
	for _, e := range exts {
		extSet[strings.ToLower(e)] = true
	}
	return &Scanner{
		catalog:   cat,
		library:   lib,
		probe:     opts.Probe,
		log:       log.With("component", "scanner"),
		threshold: opts.Threshold,
		exts:      extSet,
		confirm:   opts.Confirm,
		sniffFile: sniff.File,
		parseCue:  sniff.CueSheet,
	}
}

// Scan walks root, reconciles every supported file and prunes library rows
// whose files vanished. Cancellation is honored between files: the current
// file always completes, committed rows stay committed. Directory walk
// errors abort the scan; a single unreadable file does not.
func (s *Scanner) Scan(ctx context.Context, root string) (*Stats, error) {
	entries, err := s.catalog.Entries()
	if err != nil {
		return nil, err
	}
	s.log.Info("scan started", "root", root, "catalog_entries", len(entries))

	stats := &Stats{}
	var seen []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		ext := strings.ToLower(filepath.Ext(path))
		if !s.exts[ext] {
			return nil
		}
		seen = append(seen, path)
		s.processFile(ctx, path, ext, entries, stats)
		return nil
	})
	if err != nil {
		return stats, err
	}

	pruned, err := s.library.Prune(seen)
	if err != nil {
		return stats, err
	}
	stats.Pruned = pruned

	s.log.Info("scan finished",
		"processed", stats.Processed,
		"matched", stats.Matched,
		"ambiguous", stats.Ambiguous,
		"unmatched", stats.Unmatched,
		"serials_found", stats.SerialsFound,
		"pruned", stats.Pruned)
	return stats, nil
}

func (s *Scanner) processFile(ctx context.Context, path, ext string, entries []title.Entry, stats *Stats) {
	stats.Processed++
	base := filepath.Base(path)

	cand := title.Candidate{
		Filename: base,
		Path:     path,
		Ext:      ext,
		Regions:  title.DetectRegions(base),
	}
	cand.DiscNumber, cand.TotalDiscs = title.ExtractDiscInfo(base)
	if info, err := os.Stat(path); err == nil {
		cand.Size = info.Size()
	}

	switch ext {
	case ".iso", ".bin", ".img":
		sig := s.sniffFile(path)
		cand.SniffedTitle = sig.Title
		cand.SniffedSerial = sig.Serial
	case ".cue":
		if meta, err := s.parseCue(path); err == nil {
			cand.SniffedTitle = meta.Title
		}
	}
	if cand.SniffedSerial != "" {
		stats.SerialsFound++
	}

	if s.probe != nil {
		if desc, err := s.probe.Identify(ctx, path); err == nil && desc != "" {
			s.log.Debug("probe", "file", base, "type", desc)
		}
	}

	res := title.Match(cand, entries, s.threshold)
	if res.Outcome == title.Ambiguous {
		if best, ok := disambiguate(cand, res.Candidates); ok {
			res = title.Result{Outcome: title.Matched, Best: best}
		}
	}
	if res.Outcome == title.NoMatch && cand.SniffedSerial != "" {
		if e, err := s.catalog.FindBySerial(cand.SniffedSerial); err == nil {
			res = title.Result{Outcome: title.Matched, Best: title.Scored{Entry: e, Confidence: 1.0}}
		}
	}
	if res.Outcome == title.Matched && res.Best.Confidence < 1.0 {
		res = s.confirmMatch(cand, res)
	}

	entry := &collection.LibraryEntry{
		FilePath:   path,
		FileType:   ext,
		FileSize:   cand.Size,
		DiscNumber: cand.DiscNumber,
		TotalDiscs: cand.TotalDiscs,
	}

	switch res.Outcome {
	case title.Matched:
		stats.Matched++
		id := res.Best.Entry.ID
		entry.GameID = &id
		if res.RegionMismatch {
			s.log.Warn("region mismatch",
				"file", base,
				"matched", res.Best.Entry.Title,
				"file_regions", cand.Regions.String(),
				"catalog_regions", res.Best.Entry.Regions.String())
		}
		s.log.Debug("matched", "file", base, "title", res.Best.Entry.Title, "confidence", res.Best.Confidence)
		if cand.SniffedSerial != "" {
			if err := s.catalog.UpdateSerial(id, cand.SniffedSerial); err != nil {
				s.log.Warn("serial update failed", "game_id", id, "error", err)
			} else {
				stats.Updated++
			}
		}
	case title.Ambiguous:
		stats.Ambiguous++
		titles := make([]string, len(res.Candidates))
		for i, sc := range res.Candidates {
			titles[i] = sc.Entry.Title
		}
		s.log.Info("ambiguous match", "file", base, "candidates", strings.Join(titles, ", "))
	default:
		stats.Unmatched++
		s.log.Debug("no match", "file", base)
	}

	// One broken row must not stop the rest of the scan.
	if err := s.library.UpsertEntry(entry); err != nil {
		s.log.Error("library write failed", "file", base, "error", err)
	}
}

// confirmMatch runs the interactive hook, when configured, over a sub-exact
// match. Rejection demotes the result to no match.
func (s *Scanner) confirmMatch(cand title.Candidate, res title.Result) title.Result {
	if s.confirm == nil || s.acceptAll {
		return res
	}
	switch s.confirm(cand, res.Best) {
	case DecisionReject:
		return title.Result{Outcome: title.NoMatch}
	case DecisionAcceptRest:
		s.acceptAll = true
	}
	return res
}

// disambiguate picks among exact duplicates using the filename's region
// hint. It only decides when the hint narrows the set to exactly one entry.
func disambiguate(cand title.Candidate, scored []title.Scored) (title.Scored, bool) {
	if !cand.Regions.Any() {
		return title.Scored{}, false
	}
	var hits []title.Scored
	for _, sc := range scored {
		if cand.Regions.Intersects(sc.Entry.Regions) {
			hits = append(hits, sc)
		}
	}
	if len(hits) == 1 {
		return hits[0], true
	}
	return title.Scored{}, false
}
