package browser

import (
	"fmt"
	"path/filepath"
	"strconv"
)

// chromeWinFolderBoundary is the snapshot revision at which the Chromium
// Windows archive switched from chrome-win32 to chrome-win.
const chromeWinFolderBoundary = 591479

// target describes how one (product, platform) pair is fetched. fixedURL,
// when set, bypasses the template entirely: it is a redirect endpoint that
// always serves the latest nightly no matter which revision was asked for.
type target struct {
	// urlTemplate takes host, revision, archive name, in that order.
	urlTemplate string
	fixedURL    string
	archiveExt  string
}

var targets = map[Product]map[Platform]target{
	Chromium: {
		Linux: {urlTemplate: "%s/chromium-browser-snapshots/Linux_x64/%s/%s.zip", archiveExt: ".zip"},
		MacOS: {urlTemplate: "%s/chromium-browser-snapshots/Mac/%s/%s.zip", archiveExt: ".zip"},
		Win32: {urlTemplate: "%s/chromium-browser-snapshots/Win/%s/%s.zip", archiveExt: ".zip"},
		Win64: {urlTemplate: "%s/chromium-browser-snapshots/Win_x64/%s/%s.zip", archiveExt: ".zip"},
	},
	Firefox: {
		Linux:      {fixedURL: "https://download.mozilla.org/?product=firefox-nightly-latest-ssl&os=linux64&lang=en-US", archiveExt: ".tar.bz2"},
		LinuxArm64: {fixedURL: "https://download.mozilla.org/?product=firefox-nightly-latest-ssl&os=linux64-aarch64&lang=en-US", archiveExt: ".tar.bz2"},
		MacOS:      {urlTemplate: "%s/pub/firefox/nightly/latest-mozilla-central/firefox-%s.en-US.%s.dmg", archiveExt: ".dmg"},
		Win32:      {urlTemplate: "%s/pub/firefox/nightly/latest-mozilla-central/firefox-%s.en-US.%s.zip", archiveExt: ".zip"},
		Win64:      {urlTemplate: "%s/pub/firefox/nightly/latest-mozilla-central/firefox-%s.en-US.%s.zip", archiveExt: ".zip"},
	},
}

// chromiumSnapshotDirs maps platforms to the per-platform directory of the
// chromium-browser-snapshots bucket.
var chromiumSnapshotDirs = map[Platform]string{
	Linux: "Linux_x64",
	MacOS: "Mac",
	Win32: "Win",
	Win64: "Win_x64",
}

// SnapshotDir returns the Chromium snapshot bucket directory for a
// platform.
func SnapshotDir(platform Platform) (string, error) {
	if err := Supported(Chromium, platform); err != nil {
		return "", err
	}
	return chromiumSnapshotDirs[platform], nil
}

// Supported reports whether builds exist for the pair. Chromium publishes
// no arm64 Linux snapshots, so that combination gets its own error with a
// usable remediation hint.
func Supported(product Product, platform Platform) error {
	if product == Chromium && platform == LinuxArm64 {
		return fmt.Errorf("%w: chromium has no linux-arm64 snapshot builds; use firefox, or point BGET at a system-installed chromium executable", ErrUnsupportedArchCombo)
	}
	if _, ok := targets[product][platform]; !ok {
		return fmt.Errorf("%w: %s on %s", ErrUnsupportedPlatform, product, platform)
	}
	return nil
}

// ArchiveName returns the top-level name the archive extracts to. Chromium
// Windows archives changed name at a known revision boundary; Firefox
// archives are simply named after the platform.
func ArchiveName(product Product, platform Platform, revision string) string {
	if product == Firefox {
		return string(platform)
	}
	switch platform {
	case MacOS:
		return "chrome-mac"
	case Win32, Win64:
		if n, err := strconv.Atoi(revision); err == nil && n < chromeWinFolderBoundary {
			return "chrome-win32"
		}
		return "chrome-win"
	default:
		return "chrome-linux"
	}
}

// DownloadURL resolves the archive URL for a revision.
//
// For Firefox on the two Linux platforms the returned URL is a fixed
// redirect endpoint that always resolves to the latest nightly: the
// revision argument is ignored there, and the installed build can be newer
// than the revision string recorded for it. That mismatch is upstream
// behavior for the nightly channel and is preserved as-is.
func DownloadURL(product Product, platform Platform, host, revision string) (string, error) {
	if err := Supported(product, platform); err != nil {
		return "", err
	}
	t := targets[product][platform]
	if t.fixedURL != "" {
		return t.fixedURL, nil
	}
	return fmt.Sprintf(t.urlTemplate, host, revision, ArchiveName(product, platform, revision)), nil
}

// ArchiveFilename returns the local file name the download is written to,
// including the extension the URL template implies. The real payload may
// not match that extension; see the sniff package.
func ArchiveFilename(product Product, platform Platform, revision string) (string, error) {
	if err := Supported(product, platform); err != nil {
		return "", err
	}
	return ArchiveName(product, platform, revision) + targets[product][platform].archiveExt, nil
}

// ExecutablePath returns the browser binary's path inside an extracted
// revision folder. The revision matters only for Chromium on Windows,
// where the interior folder name depends on the revision boundary.
func ExecutablePath(product Product, platform Platform, folderPath, revision string) (string, error) {
	switch product {
	case Chromium:
		switch platform {
		case Linux:
			return filepath.Join(folderPath, "chrome-linux", "chrome"), nil
		case MacOS:
			return filepath.Join(folderPath, "chrome-mac", "Chromium.app", "Contents", "MacOS", "Chromium"), nil
		case Win32, Win64:
			return filepath.Join(folderPath, ArchiveName(product, platform, revision), "chrome.exe"), nil
		}
	case Firefox:
		switch platform {
		case Linux, LinuxArm64:
			return filepath.Join(folderPath, "firefox", "firefox"), nil
		case MacOS:
			return filepath.Join(folderPath, "Firefox Nightly.app", "Contents", "MacOS", "firefox"), nil
		case Win32, Win64:
			return filepath.Join(folderPath, "firefox", "firefox.exe"), nil
		}
	}
	return "", fmt.Errorf("%w: %s on %s", ErrUnsupportedPlatform, product, platform)
}

// FolderPath returns the installation folder for a revision under the
// download root.
func FolderPath(root string, platform Platform, revision string) string {
	return filepath.Join(root, fmt.Sprintf("%s-%s", platform, revision))
}
