package catalog

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/vmunix/ps1db/internal/migrations"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return db
}

func sampleGame() *Game {
	return &Game{
		Title:         "Metal Gear Solid",
		SerialNumber:  "SLUS-00594",
		Developer:     "Konami",
		Publisher:     "Konami",
		ReleaseDateNA: "1998-10-21",
		RegionNA:      true,
		RegionEU:      true,
		RegionJP:      true,
	}
}
