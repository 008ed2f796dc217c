package catalog

import (
	"fmt"
	"strings"

	"github.com/vmunix/ps1db/pkg/title"
)

// Game is one catalog row: a title as released, with its regional
// availability and release metadata.
type Game struct {
	ID            int64
	Title         string
	SerialNumber  string
	Developer     string
	Publisher     string
	ReleaseDateJP string
	ReleaseDateEU string
	ReleaseDateNA string
	IsLaunchTitle bool
	ReferenceURL  string
	RegionJP      bool
	RegionEU      bool
	RegionNA      bool
	Notes         string
}

// Regions returns the availability flags as a region set.
func (g *Game) Regions() title.RegionSet {
	return title.RegionSet{NA: g.RegionNA, EU: g.RegionEU, JP: g.RegionJP}
}

// Entry converts a catalog row into the slice of it the matcher consumes.
func (g *Game) Entry() title.Entry {
	return title.Entry{ID: g.ID, Title: g.Title, Regions: g.Regions()}
}

const gameColumns = `id, title, serial_number, developer, publisher,
	release_date_jp, release_date_eu, release_date_na, is_launch_title,
	reference_url, region_jp, region_eu, region_na, notes`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(r rowScanner) (*Game, error) {
	g := &Game{}
	err := r.Scan(&g.ID, &g.Title, &g.SerialNumber, &g.Developer, &g.Publisher,
		&g.ReleaseDateJP, &g.ReleaseDateEU, &g.ReleaseDateNA, &g.IsLaunchTitle,
		&g.ReferenceURL, &g.RegionJP, &g.RegionEU, &g.RegionNA, &g.Notes)
	if err != nil {
		return nil, err
	}
	return g, nil
}

func addGame(q querier, g *Game) error {
	result, err := q.Exec(`
		INSERT INTO games (title, serial_number, developer, publisher,
			release_date_jp, release_date_eu, release_date_na, is_launch_title,
			reference_url, region_jp, region_eu, region_na, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.Title, g.SerialNumber, g.Developer, g.Publisher,
		g.ReleaseDateJP, g.ReleaseDateEU, g.ReleaseDateNA, g.IsLaunchTitle,
		g.ReferenceURL, g.RegionJP, g.RegionEU, g.RegionNA, g.Notes,
	)
	if err != nil {
		return fmt.Errorf("insert game: %w", mapSQLiteError(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	g.ID = id
	return nil
}

// AddGame inserts a new game into the catalog.
// Sets ID on the struct.
func (s *Store) AddGame(g *Game) error { return addGame(s.db, g) }

// AddGame inserts a new game within a transaction.
func (t *Tx) AddGame(g *Game) error { return addGame(t.tx, g) }

func getGame(q querier, id int64) (*Game, error) {
	g, err := scanGame(q.QueryRow(
		"SELECT "+gameColumns+" FROM games WHERE id = ?", id))
	if err != nil {
		return nil, fmt.Errorf("get game %d: %w", id, mapSQLiteError(err))
	}
	return g, nil
}

// GetGame retrieves a game by ID.
// Returns ErrNotFound if the game does not exist.
func (s *Store) GetGame(id int64) (*Game, error) { return getGame(s.db, id) }

// GetGame retrieves a game by ID within a transaction.
func (t *Tx) GetGame(id int64) (*Game, error) { return getGame(t.tx, id) }

func getGameBySerial(q querier, serial string) (*Game, error) {
	g, err := scanGame(q.QueryRow(
		"SELECT "+gameColumns+" FROM games WHERE serial_number = ?", serial))
	if err != nil {
		return nil, fmt.Errorf("get game by serial %q: %w", serial, mapSQLiteError(err))
	}
	return g, nil
}

// GetGameBySerial retrieves a game by its serial number.
// Returns ErrNotFound if no game carries the serial.
func (s *Store) GetGameBySerial(serial string) (*Game, error) {
	return getGameBySerial(s.db, serial)
}

// GetGameBySerial retrieves a game by serial within a transaction.
func (t *Tx) GetGameBySerial(serial string) (*Game, error) {
	return getGameBySerial(t.tx, serial)
}

// FindBySerial resolves a serial number to a matcher entry.
func (s *Store) FindBySerial(serial string) (title.Entry, error) {
	g, err := s.GetGameBySerial(serial)
	if err != nil {
		return title.Entry{}, err
	}
	return g.Entry(), nil
}

// Filter narrows ListGames. Zero values mean "don't filter".
type Filter struct {
	Region     string // "jp", "eu" or "na"
	Publisher  string
	LaunchOnly bool
	Limit      int
	Offset     int
}

func listGames(q querier, f Filter) ([]*Game, error) {
	var conditions []string
	var args []any

	switch strings.ToLower(f.Region) {
	case "jp":
		conditions = append(conditions, "region_jp = 1")
	case "eu":
		conditions = append(conditions, "region_eu = 1")
	case "na":
		conditions = append(conditions, "region_na = 1")
	}
	if f.Publisher != "" {
		conditions = append(conditions, "publisher = ?")
		args = append(args, f.Publisher)
	}
	if f.LaunchOnly {
		conditions = append(conditions, "is_launch_title = 1")
	}

	query := "SELECT " + gameColumns + " FROM games"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY title"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Limit, f.Offset)
	}

	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		results = append(results, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate games: %w", err)
	}
	return results, nil
}

// ListGames returns catalog rows ordered by title.
func (s *Store) ListGames(f Filter) ([]*Game, error) { return listGames(s.db, f) }

// ListGames returns catalog rows within a transaction.
func (t *Tx) ListGames(f Filter) ([]*Game, error) { return listGames(t.tx, f) }

// Entries returns the whole catalog as matcher entries, a read-only snapshot
// for one scan run.
func (s *Store) Entries() ([]title.Entry, error) {
	games, err := s.ListGames(Filter{})
	if err != nil {
		return nil, err
	}
	entries := make([]title.Entry, 0, len(games))
	for _, g := range games {
		entries = append(entries, g.Entry())
	}
	return entries, nil
}

func updateSerial(q querier, id int64, serial string) error {
	result, err := q.Exec("UPDATE games SET serial_number = ? WHERE id = ?", serial, id)
	if err != nil {
		return fmt.Errorf("update serial for game %d: %w", id, mapSQLiteError(err))
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("update serial for game %d: %w", id, ErrNotFound)
	}
	return nil
}

// UpdateSerial records a serial number discovered for an existing game.
func (s *Store) UpdateSerial(id int64, serial string) error {
	return updateSerial(s.db, id, serial)
}

// UpdateSerial records a serial number within a transaction.
func (t *Tx) UpdateSerial(id int64, serial string) error {
	return updateSerial(t.tx, id, serial)
}

// ReplaceAll swaps the entire catalog for the given rows in one transaction.
// Used by populate, where the scraped lists are the source of truth.
func (s *Store) ReplaceAll(games []*Game) error {
	tx, err := s.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.tx.Exec("DELETE FROM games"); err != nil {
		return fmt.Errorf("clear games: %w", mapSQLiteError(err))
	}
	for _, g := range games {
		if err := tx.AddGame(g); err != nil {
			return err
		}
	}
	return tx.Commit()
}
