package collection

import (
	"database/sql"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"time"
)

// Backup is the digital backup recorded for a game, at most one per game.
type Backup struct {
	ID             int64
	GameID         int64
	Title          string // joined from the catalog, read-only
	FilePath       string
	FileType       string
	FileSize       int64
	CRC32          string
	LastVerified   *time.Time
	EmulatorConfig string
}

// Checksum computes the CRC32 (IEEE) of the file at path, streaming so large
// images never load into memory.
func Checksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open backup file: %w", err)
	}
	defer f.Close()

	h := crc32.NewIEEE()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("checksum %s: %w", path, err)
	}
	return fmt.Sprintf("%08x", h.Sum32()), nil
}

// AddBackup records a backup for a game, replacing any previous one. The
// schema rejects file types other than .iso, .bin, .pbp and .chd.
func (s *Store) AddBackup(b *Backup) error {
	if b.EmulatorConfig == "" {
		b.EmulatorConfig = "{}"
	}
	result, err := s.db.Exec(`
		INSERT INTO digital_backups (game_id, file_path, file_type, file_size, crc32, emulator_config)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(game_id) DO UPDATE SET
			file_path = excluded.file_path,
			file_type = excluded.file_type,
			file_size = excluded.file_size,
			crc32 = excluded.crc32,
			last_verified = NULL,
			emulator_config = excluded.emulator_config`,
		b.GameID, b.FilePath, b.FileType, b.FileSize, b.CRC32, b.EmulatorConfig,
	)
	if err != nil {
		return fmt.Errorf("add backup for game %d: %w", b.GameID, mapError(err))
	}
	if id, err := result.LastInsertId(); err == nil {
		b.ID = id
	}
	return nil
}

// GetBackup retrieves the backup recorded for a game.
// Returns ErrNotFound if none exists.
func (s *Store) GetBackup(gameID int64) (*Backup, error) {
	b := &Backup{}
	var verified sql.NullTime
	err := s.db.QueryRow(`
		SELECT b.id, b.game_id, g.title, b.file_path, b.file_type, b.file_size,
			b.crc32, b.last_verified, b.emulator_config
		FROM digital_backups b
		JOIN games g ON g.id = b.game_id
		WHERE b.game_id = ?`, gameID,
	).Scan(&b.ID, &b.GameID, &b.Title, &b.FilePath, &b.FileType, &b.FileSize,
		&b.CRC32, &verified, &b.EmulatorConfig)
	if err != nil {
		return nil, fmt.Errorf("get backup for game %d: %w", gameID, mapError(err))
	}
	if verified.Valid {
		b.LastVerified = &verified.Time
	}
	return b, nil
}

// ListBackups returns every recorded backup, ordered by title.
func (s *Store) ListBackups() ([]*Backup, error) {
	rows, err := s.db.Query(`
		SELECT b.id, b.game_id, g.title, b.file_path, b.file_type, b.file_size,
			b.crc32, b.last_verified, b.emulator_config
		FROM digital_backups b
		JOIN games g ON g.id = b.game_id
		ORDER BY g.title`,
	)
	if err != nil {
		return nil, fmt.Errorf("list backups: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Backup
	for rows.Next() {
		b := &Backup{}
		var verified sql.NullTime
		if err := rows.Scan(&b.ID, &b.GameID, &b.Title, &b.FilePath, &b.FileType,
			&b.FileSize, &b.CRC32, &verified, &b.EmulatorConfig); err != nil {
			return nil, fmt.Errorf("scan backup: %w", err)
		}
		if verified.Valid {
			b.LastVerified = &verified.Time
		}
		results = append(results, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate backups: %w", err)
	}
	return results, nil
}

// VerifyBackup recomputes the checksum of a game's backup file and compares
// it with the recorded one, bumping last_verified on success. A mismatch
// returns ErrChecksumMismatch and leaves the row untouched.
func (s *Store) VerifyBackup(gameID int64) (*Backup, error) {
	b, err := s.GetBackup(gameID)
	if err != nil {
		return nil, err
	}
	sum, err := Checksum(b.FilePath)
	if err != nil {
		return nil, err
	}
	if sum != b.CRC32 {
		return b, fmt.Errorf("backup for game %d (%s): recorded %s, computed %s: %w",
			gameID, b.FilePath, b.CRC32, sum, ErrChecksumMismatch)
	}

	now := time.Now().UTC()
	if _, err := s.db.Exec(
		"UPDATE digital_backups SET last_verified = ? WHERE game_id = ?", now, gameID,
	); err != nil {
		return nil, fmt.Errorf("mark backup verified for game %d: %w", gameID, mapError(err))
	}
	b.LastVerified = &now
	return b, nil
}
