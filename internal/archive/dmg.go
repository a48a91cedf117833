package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/datallboy/bget/internal/browser"
	"github.com/datallboy/bget/internal/sysexec"
)

// installDMG mounts a macOS disk image, copies the single .app bundle at
// the mount root into destDir and unmounts again. Detach runs on every
// exit path once the attach succeeded, including copy failures.
func installDMG(ctx context.Context, runner sysexec.Runner, archivePath, destDir string) error {
	mountPath, err := attachDMG(ctx, runner, archivePath)
	if err != nil {
		return err
	}
	defer detachDMG(ctx, runner, mountPath)

	apps, err := filepath.Glob(filepath.Join(mountPath, "*.app"))
	if err != nil {
		return fmt.Errorf("scan mounted volume: %w", err)
	}
	if len(apps) != 1 {
		return fmt.Errorf("%w: expected one app bundle in %s, found %d", browser.ErrExtractionFailed, mountPath, len(apps))
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("create dest dir: %w", err)
	}

	// cp -R keeps the bundle's symlinks and resource forks intact, which
	// archive-style copying would flatten.
	if _, stderr, err := runner.Run(ctx, "cp", "-R", apps[0], destDir); err != nil {
		return fmt.Errorf("%w: copy app bundle: %v: %s", browser.ErrExtractionFailed, err, strings.TrimSpace(stderr))
	}

	return nil
}

func attachDMG(ctx context.Context, runner sysexec.Runner, archivePath string) (string, error) {
	stdout, stderr, err := runner.Run(ctx, "hdiutil", "attach", "-nobrowse", "-noautoopen", archivePath)
	if err != nil {
		return "", fmt.Errorf("%w: hdiutil attach: %v: %s", browser.ErrExtractionFailed, err, strings.TrimSpace(stderr))
	}

	// The mount point is the last tab-separated column of the attach
	// output, e.g. "/dev/disk2s1\tApple_HFS\t/Volumes/Firefox Nightly".
	for _, line := range strings.Split(stdout, "\n") {
		if idx := strings.Index(line, "/Volumes/"); idx >= 0 {
			return strings.TrimSpace(line[idx:]), nil
		}
	}
	return "", fmt.Errorf("%w: no volume in hdiutil output: %q", browser.ErrExtractionFailed, stdout)
}

func detachDMG(ctx context.Context, runner sysexec.Runner, mountPath string) {
	// Best effort; a busy volume is the OS's problem at this point.
	_, _, _ = runner.Run(ctx, "hdiutil", "detach", mountPath, "-quiet")
}
