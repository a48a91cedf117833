// Package archive extracts downloaded browser archives into their
// installation folders. Dispatch is by file extension, which the fetcher
// has already corrected to match the sniffed content format.
package archive

import (
	"context"
	"fmt"
	"strings"

	"github.com/datallboy/bget/internal/browser"
	"github.com/datallboy/bget/internal/sysexec"
)

// Install extracts the archive into destDir, which is created if missing.
func Install(ctx context.Context, runner sysexec.Runner, archivePath, destDir string) error {
	switch {
	case strings.HasSuffix(archivePath, ".zip"):
		return extractZip(archivePath, destDir)
	case strings.HasSuffix(archivePath, ".tar.gz"):
		return extractTarGz(archivePath, destDir)
	case strings.HasSuffix(archivePath, ".tar.bz2"):
		return extractTarBz2(archivePath, destDir)
	case strings.HasSuffix(archivePath, ".tar.xz"):
		return extractTarXz(archivePath, destDir)
	case strings.HasSuffix(archivePath, ".dmg"):
		return installDMG(ctx, runner, archivePath, destDir)
	default:
		return fmt.Errorf("%w: %s", browser.ErrUnsupportedArchive, archivePath)
	}
}
