package collection

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeImage(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "game.bin")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write image: %v", err)
	}
	return path
}

func TestStore_AddBackup(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)
	id := addGame(t, db, "Vagrant Story")

	b := &Backup{GameID: id, FilePath: "/backups/vs.bin", FileType: ".bin", FileSize: 1234, CRC32: "deadbeef"}
	if err := store.AddBackup(b); err != nil {
		t.Fatalf("AddBackup: %v", err)
	}

	got, err := store.GetBackup(id)
	if err != nil {
		t.Fatalf("GetBackup: %v", err)
	}
	if got.FilePath != "/backups/vs.bin" || got.CRC32 != "deadbeef" {
		t.Errorf("got %+v", got)
	}
	if got.Title != "Vagrant Story" {
		t.Errorf("title = %q, want joined catalog title", got.Title)
	}
	if got.LastVerified != nil {
		t.Error("fresh backup should not be verified")
	}
	if got.EmulatorConfig != "{}" {
		t.Errorf("emulator config = %q, want default {}", got.EmulatorConfig)
	}
}

func TestStore_AddBackup_ReplacesAndResetsVerification(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)
	id := addGame(t, db, "Vagrant Story")

	path := writeImage(t, "image contents")
	sum, err := Checksum(path)
	if err != nil {
		t.Fatalf("Checksum: %v", err)
	}
	if err := store.AddBackup(&Backup{GameID: id, FilePath: path, FileType: ".bin", CRC32: sum}); err != nil {
		t.Fatalf("AddBackup: %v", err)
	}
	if _, err := store.VerifyBackup(id); err != nil {
		t.Fatalf("VerifyBackup: %v", err)
	}

	// Recording a new backup for the same game replaces the row and clears
	// last_verified.
	if err := store.AddBackup(&Backup{GameID: id, FilePath: "/elsewhere/vs.iso", FileType: ".iso", CRC32: "00000000"}); err != nil {
		t.Fatalf("AddBackup replace: %v", err)
	}
	got, err := store.GetBackup(id)
	if err != nil {
		t.Fatalf("GetBackup: %v", err)
	}
	if got.FilePath != "/elsewhere/vs.iso" || got.FileType != ".iso" {
		t.Errorf("replace did not take: %+v", got)
	}
	if got.LastVerified != nil {
		t.Error("replacing a backup must reset last_verified")
	}
}

func TestStore_AddBackup_RejectsFileType(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)
	id := addGame(t, db, "Vagrant Story")

	err := store.AddBackup(&Backup{GameID: id, FilePath: "/x.rar", FileType: ".rar"})
	if !errors.Is(err, ErrConstraint) {
		t.Errorf("expected ErrConstraint, got %v", err)
	}
}

func TestStore_VerifyBackup(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)
	id := addGame(t, db, "Vagrant Story")

	path := writeImage(t, "pristine dump")
	sum, err := Checksum(path)
	if err != nil {
		t.Fatalf("Checksum: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	b := &Backup{GameID: id, FilePath: path, FileType: ".bin", FileSize: info.Size(), CRC32: sum}
	if err := store.AddBackup(b); err != nil {
		t.Fatalf("AddBackup: %v", err)
	}

	got, err := store.VerifyBackup(id)
	if err != nil {
		t.Fatalf("VerifyBackup: %v", err)
	}
	if got.LastVerified == nil {
		t.Fatal("VerifyBackup should set LastVerified")
	}

	// Corrupt the file; verification must now fail without touching the row.
	if err := os.WriteFile(path, []byte("bit rot"), 0o644); err != nil {
		t.Fatalf("corrupt image: %v", err)
	}
	_, err = store.VerifyBackup(id)
	if !errors.Is(err, ErrChecksumMismatch) {
		t.Errorf("expected ErrChecksumMismatch, got %v", err)
	}
}

func TestStore_VerifyBackup_MissingFile(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)
	id := addGame(t, db, "Vagrant Story")

	b := &Backup{GameID: id, FilePath: filepath.Join(t.TempDir(), "gone.bin"), FileType: ".bin", CRC32: "deadbeef"}
	if err := store.AddBackup(b); err != nil {
		t.Fatalf("AddBackup: %v", err)
	}
	if _, err := store.VerifyBackup(id); err == nil {
		t.Error("VerifyBackup should fail for a missing file")
	}
}

func TestChecksum(t *testing.T) {
	path := writeImage(t, "hello")
	sum, err := Checksum(path)
	if err != nil {
		t.Fatalf("Checksum: %v", err)
	}
	// crc32("hello") is a fixed value.
	if sum != "3610a686" {
		t.Errorf("Checksum = %q, want 3610a686", sum)
	}
}
