// Package collection tracks ownership state, digital backups and scanned
// library files for catalog games.
package collection

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound indicates the requested row doesn't exist.
	ErrNotFound = errors.New("not found")

	// ErrConstraint indicates a check or foreign key constraint violation,
	// e.g. an unknown status value or unsupported backup file type.
	ErrConstraint = errors.New("constraint violation")

	// ErrChecksumMismatch indicates a backup file no longer matches its
	// recorded CRC32.
	ErrChecksumMismatch = errors.New("checksum mismatch")
)

// Store provides access to collection data.
type Store struct {
	db *sql.DB
}

// NewStore creates a new collection store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Counts summarizes the collection tables.
type Counts struct {
	Owned        int
	Hunting      int
	Backups      int
	Verified     int
	LibraryFiles int
}

// Counts computes collection-wide totals.
func (s *Store) Counts() (*Counts, error) {
	c := &Counts{}
	err := s.db.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM game_status WHERE status = 'OWNED'),
			(SELECT COUNT(*) FROM game_status WHERE status = 'HUNTING'),
			(SELECT COUNT(*) FROM digital_backups),
			(SELECT COUNT(*) FROM digital_backups WHERE last_verified IS NOT NULL),
			(SELECT COUNT(*) FROM usr_lib)`,
	).Scan(&c.Owned, &c.Hunting, &c.Backups, &c.Verified, &c.LibraryFiles)
	if err != nil {
		return nil, fmt.Errorf("collection counts: %w", err)
	}
	return c, nil
}

// mapError converts SQLite errors to custom error types.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	errStr := err.Error()
	if strings.Contains(errStr, "CHECK constraint failed") ||
		strings.Contains(errStr, "FOREIGN KEY constraint failed") {
		return ErrConstraint
	}
	return err
}
