package storage

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"tapcard/internal/config"
)

// TestBackupSkipsPictureCache verifies the backup carries the database and
// original uploads but leaves out the regenerable resize cache.
func TestBackupSkipsPictureCache(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "tapcard.db")
	if err := os.WriteFile(dbPath, []byte("db"), 0o644); err != nil {
		t.Fatal(err)
	}
	uploads := filepath.Join(dir, "uploads")
	pictures := filepath.Join(uploads, "profile-pictures")
	if err := os.MkdirAll(filepath.Join(pictures, "cache"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(pictures, "picture_1.png"), []byte("orig"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(pictures, "cache", "picture_1_64.png"), []byte("small"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Config{DBPath: dbPath, UploadsDir: uploads}
	dest := filepath.Join(dir, "backup.zip")
	path, err := BackupToZip(cfg, dest)
	if err != nil {
		t.Fatalf("backup: %v", err)
	}

	reader, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	defer reader.Close()

	names := map[string]bool{}
	for _, f := range reader.File {
		names[f.Name] = true
	}
	if !names["tapcard.db"] {
		t.Fatal("database missing from backup")
	}
	if !names["uploads/profile-pictures/picture_1.png"] {
		t.Fatalf("original upload missing from backup: %v", names)
	}
	if names["uploads/profile-pictures/cache/picture_1_64.png"] {
		t.Fatal("resize cache should not be backed up")
	}
}
