package collection

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// LibraryEntry is one scanned file in the user's library. GameID is nil for
// files no catalog entry could be matched to.
type LibraryEntry struct {
	ID          int64
	GameID      *int64
	Title       string // joined from the catalog, empty when unmatched
	FilePath    string
	FileType    string
	FileSize    int64
	DiscNumber  int
	TotalDiscs  int
	LastScanned time.Time
}

// UpsertEntry inserts or refreshes the library row for a file path.
func (s *Store) UpsertEntry(e *LibraryEntry) error {
	if e.DiscNumber < 1 {
		e.DiscNumber = 1
	}
	if e.TotalDiscs < 1 {
		e.TotalDiscs = 1
	}
	e.LastScanned = time.Now().UTC()

	result, err := s.db.Exec(`
		INSERT INTO usr_lib (game_id, file_path, file_type, file_size, disc_number, total_discs, last_scanned)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(file_path) DO UPDATE SET
			game_id = excluded.game_id,
			file_type = excluded.file_type,
			file_size = excluded.file_size,
			disc_number = excluded.disc_number,
			total_discs = excluded.total_discs,
			last_scanned = excluded.last_scanned`,
		e.GameID, e.FilePath, e.FileType, e.FileSize, e.DiscNumber, e.TotalDiscs, e.LastScanned,
	)
	if err != nil {
		return fmt.Errorf("upsert library entry %s: %w", e.FilePath, mapError(err))
	}
	if id, err := result.LastInsertId(); err == nil {
		e.ID = id
	}
	return nil
}

// ListEntries returns every scanned file, matched titles first.
func (s *Store) ListEntries() ([]*LibraryEntry, error) {
	rows, err := s.db.Query(`
		SELECT l.id, l.game_id, COALESCE(g.title, ''), l.file_path, l.file_type,
			l.file_size, l.disc_number, l.total_discs, l.last_scanned
		FROM usr_lib l
		LEFT JOIN games g ON g.id = l.game_id
		ORDER BY g.title IS NULL, g.title, l.file_path`,
	)
	if err != nil {
		return nil, fmt.Errorf("list library entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*LibraryEntry
	for rows.Next() {
		e := &LibraryEntry{}
		var gameID sql.NullInt64
		if err := rows.Scan(&e.ID, &gameID, &e.Title, &e.FilePath, &e.FileType,
			&e.FileSize, &e.DiscNumber, &e.TotalDiscs, &e.LastScanned); err != nil {
			return nil, fmt.Errorf("scan library entry: %w", err)
		}
		if gameID.Valid {
			e.GameID = &gameID.Int64
		}
		results = append(results, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate library entries: %w", err)
	}
	return results, nil
}

// Prune deletes library rows whose file path is not in seen, returning how
// many were removed. An empty seen set empties the table: every previously
// scanned file is gone.
func (s *Store) Prune(seen []string) (int64, error) {
	query := "DELETE FROM usr_lib"
	args := make([]any, len(seen))
	if len(seen) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(seen)), ", ")
		query += " WHERE file_path NOT IN (" + placeholders + ")"
		for i, p := range seen {
			args[i] = p
		}
	}
	result, err := s.db.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("prune library entries: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("get rows affected: %w", err)
	}
	return n, nil
}

// CountByFileType breaks the scanned library down by extension.
func (s *Store) CountByFileType() (map[string]int, error) {
	rows, err := s.db.Query(
		"SELECT file_type, COUNT(*) FROM usr_lib GROUP BY file_type")
	if err != nil {
		return nil, fmt.Errorf("count by file type: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[string]int)
	for rows.Next() {
		var ft string
		var n int
		if err := rows.Scan(&ft, &n); err != nil {
			return nil, fmt.Errorf("scan file type count: %w", err)
		}
		counts[ft] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate file type counts: %w", err)
	}
	return counts, nil
}
