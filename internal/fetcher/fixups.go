package fetcher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/datallboy/bget/internal/browser"
)

// chromiumMacHelpers are the helper-process binaries inside the versioned
// Chromium framework that must be executable for the browser to launch
// subprocesses.
var chromiumMacHelpers = []string{
	"Chromium Helper",
	"Chromium Helper (GPU)",
	"Chromium Helper (Plugin)",
	"Chromium Helper (Renderer)",
}

// applyFixups runs the platform-specific post-extraction steps on the
// staging tree, before it is renamed into place. Windows archives need
// none; everywhere else the browser binary loses its execute bit in
// transit and gets it back here.
func (f *Fetcher) applyFixups(stagingDir, revision string) error {
	if f.platform == browser.Win32 || f.platform == browser.Win64 {
		return nil
	}

	exe, err := browser.ExecutablePath(f.product, f.platform, stagingDir, revision)
	if err != nil {
		return err
	}
	if err := os.Chmod(exe, 0o755); err != nil {
		return fmt.Errorf("mark executable: %w", err)
	}

	if f.product == browser.Chromium && f.platform == browser.MacOS {
		f.fixupChromiumMacHelpers(stagingDir)
	}
	return nil
}

// fixupChromiumMacHelpers restores the execute bits on the framework
// helper binaries. The framework version directory is resolved through the
// "Current" pointer; any failure here is logged and swallowed because the
// main binary stays usable without the helpers fixed up.
func (f *Fetcher) fixupChromiumMacHelpers(stagingDir string) {
	versions := filepath.Join(stagingDir,
		"chrome-mac", "Chromium.app", "Contents", "Frameworks",
		"Chromium Framework.framework", "Versions")

	current, err := readVersionPointer(filepath.Join(versions, "Current"))
	if err != nil {
		f.log.Warn().Err(err).Msg("could not resolve framework version, skipping helper fixup")
		return
	}

	for _, helper := range chromiumMacHelpers {
		bin := filepath.Join(versions, current, "Helpers",
			helper+".app", "Contents", "MacOS", helper)
		if err := os.Chmod(bin, 0o755); err != nil {
			f.log.Warn().Err(err).Str("helper", helper).Msg("could not mark helper executable")
		}
	}
}

// readVersionPointer resolves the Current entry, which is a symlink to the
// version directory in pristine bundles but can arrive as a plain file
// containing the version name after extraction.
func readVersionPointer(path string) (string, error) {
	if target, err := os.Readlink(path); err == nil {
		return filepath.Base(target), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	version := strings.TrimSpace(string(data))
	if version == "" {
		return "", fmt.Errorf("empty version pointer at %s", path)
	}
	return version, nil
}
