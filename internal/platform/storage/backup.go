package storage

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tapcard/internal/config"
)

// BackupToZip writes a zip of the database and the uploads tree. Resized
// picture derivatives under profile-pictures/cache are skipped; they are
// rebuilt on demand from the originals.
func BackupToZip(cfg config.Config, destPath string) (string, error) {
	if destPath == "" {
		destPath = fmt.Sprintf("tapcard-backup-%s.zip", time.Now().UTC().Format("20060102-150405"))
	}
	if filepath.Ext(destPath) != ".zip" {
		destPath = destPath + ".zip"
	}
	out, err := os.Create(destPath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	defer zw.Close()

	if err := addFile(zw, cfg.DBPath, "tapcard.db"); err != nil {
		return "", err
	}
	if cfg.UploadsDir != "" {
		if err := addUploads(zw, cfg.UploadsDir); err != nil {
			return "", err
		}
	}
	return destPath, nil
}

func addFile(zw *zip.Writer, sourcePath, name string) error {
	file, err := os.Open(sourcePath)
	if err != nil {
		return err
	}
	defer file.Close()
	info, err := file.Stat()
	if err != nil {
		return err
	}
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = name
	header.Method = zip.Deflate
	w, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, file)
	return err
}

func addUploads(zw *zip.Writer, uploadsDir string) error {
	return filepath.WalkDir(uploadsDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(uploadsDir, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if rel == "profile-pictures/cache" {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(filepath.Base(rel), ".") {
			return nil
		}
		return addFile(zw, path, "uploads/"+rel)
	})
}
