package archive

import (
	"archive/zip"
	"fmt"
	"os"

	"github.com/datallboy/bget/internal/browser"
)

func extractZip(archivePath, destDir string) error {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("%w: open zip: %v", browser.ErrExtractionFailed, err)
	}
	defer zr.Close()

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("create dest dir: %w", err)
	}

	for _, entry := range zr.File {
		target, err := secureJoin(destDir, entry.Name)
		if err != nil {
			return err
		}
		if target == "" {
			continue
		}

		if entry.FileInfo().IsDir() {
			if err := os.MkdirAll(target, entry.Mode()); err != nil {
				return fmt.Errorf("mkdir %s: %w", target, err)
			}
			continue
		}

		rc, err := entry.Open()
		if err != nil {
			return fmt.Errorf("%w: open zip entry %s: %v", browser.ErrExtractionFailed, entry.Name, err)
		}
		err = writeFile(target, rc, entry.Mode())
		rc.Close()
		if err != nil {
			return err
		}
	}

	return nil
}
