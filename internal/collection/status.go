package collection

import (
	"fmt"
	"time"
)

// Status is the ownership state of a catalog game.
type Status string

const (
	StatusOwned   Status = "OWNED"
	StatusHunting Status = "HUNTING"
	StatusNone    Status = "NONE"
)

// ParseStatus validates a user-supplied status string.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusOwned, StatusHunting, StatusNone:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown status %q (want OWNED, HUNTING or NONE)", s)
}

// GameStatus is one ownership row, at most one per game.
type GameStatus struct {
	GameID    int64
	Title     string // joined from the catalog, read-only
	Status    Status
	Notes     string
	UpdatedAt time.Time
}

// SetStatus records the ownership state for a game, replacing any previous
// state.
func (s *Store) SetStatus(gameID int64, status Status, notes string) error {
	_, err := s.db.Exec(`
		INSERT INTO game_status (game_id, status, notes, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(game_id) DO UPDATE SET
			status = excluded.status,
			notes = excluded.notes,
			updated_at = excluded.updated_at`,
		gameID, status, notes, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("set status for game %d: %w", gameID, mapError(err))
	}
	return nil
}

// GetStatus retrieves the ownership row for a game.
// Returns ErrNotFound if none was ever recorded.
func (s *Store) GetStatus(gameID int64) (*GameStatus, error) {
	gs := &GameStatus{}
	err := s.db.QueryRow(`
		SELECT gs.game_id, g.title, gs.status, gs.notes, gs.updated_at
		FROM game_status gs
		JOIN games g ON g.id = gs.game_id
		WHERE gs.game_id = ?`, gameID,
	).Scan(&gs.GameID, &gs.Title, &gs.Status, &gs.Notes, &gs.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get status for game %d: %w", gameID, mapError(err))
	}
	return gs, nil
}

// ListByStatus returns every game in the given ownership state, ordered by
// title.
func (s *Store) ListByStatus(status Status) ([]*GameStatus, error) {
	rows, err := s.db.Query(`
		SELECT gs.game_id, g.title, gs.status, gs.notes, gs.updated_at
		FROM game_status gs
		JOIN games g ON g.id = gs.game_id
		WHERE gs.status = ?
		ORDER BY g.title`, status,
	)
	if err != nil {
		return nil, fmt.Errorf("list %s games: %w", status, err)
	}
	defer func() { _ = rows.Close() }()

	var results []*GameStatus
	for rows.Next() {
		gs := &GameStatus{}
		if err := rows.Scan(&gs.GameID, &gs.Title, &gs.Status, &gs.Notes, &gs.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan status row: %w", err)
		}
		results = append(results, gs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status rows: %w", err)
	}
	return results, nil
}
