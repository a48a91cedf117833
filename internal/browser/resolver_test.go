package browser

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var supportedPairs = []struct {
	product  Product
	platform Platform
}{
	{Chromium, Linux},
	{Chromium, MacOS},
	{Chromium, Win32},
	{Chromium, Win64},
	{Firefox, Linux},
	{Firefox, LinuxArm64},
	{Firefox, MacOS},
	{Firefox, Win32},
	{Firefox, Win64},
}

func TestExecutablePathSupportedPairs(t *testing.T) {
	for _, pair := range supportedPairs {
		t.Run(string(pair.product)+"/"+string(pair.platform), func(t *testing.T) {
			path, err := ExecutablePath(pair.product, pair.platform, filepath.Join("root", "folder"), "1095492")
			require.NoError(t, err)
			assert.NotEmpty(t, path)
		})
	}
}

func TestExecutablePathUnknownPair(t *testing.T) {
	_, err := ExecutablePath(Chromium, LinuxArm64, "folder", "1095492")
	assert.ErrorIs(t, err, ErrUnsupportedPlatform)

	_, err = ExecutablePath(Product("opera"), Linux, "folder", "1095492")
	assert.ErrorIs(t, err, ErrUnsupportedPlatform)
}

func TestFolderPathParseRoundTrip(t *testing.T) {
	cases := []struct {
		platform Platform
		revision string
	}{
		{Linux, "1095492"},
		{LinuxArm64, "141.0a1"},
		{MacOS, "141.0a1"},
		{Win32, "591478"},
		{Win64, "1095492"},
	}
	for _, tc := range cases {
		t.Run(string(tc.platform), func(t *testing.T) {
			folder := FolderPath("/cache/bget", tc.platform, tc.revision)
			platform, revision, ok := ParseInstalledName(filepath.Base(folder))
			require.True(t, ok)
			assert.Equal(t, tc.platform, platform)
			assert.Equal(t, tc.revision, revision)
		})
	}
}

func TestParseInstalledNameRejectsUnknown(t *testing.T) {
	for _, name := range []string{"", "linux", "mac", "debian-12", "archive.zip", "-123"} {
		_, _, ok := ParseInstalledName(name)
		assert.False(t, ok, "name %q should not parse", name)
	}
}

func TestChromiumWindowsArchiveBoundary(t *testing.T) {
	assert.Equal(t, "chrome-win32", ArchiveName(Chromium, Win32, "591478"))
	assert.Equal(t, "chrome-win", ArchiveName(Chromium, Win32, "591479"))
	assert.Equal(t, "chrome-win32", ArchiveName(Chromium, Win64, "500000"))
	assert.Equal(t, "chrome-win", ArchiveName(Chromium, Win64, "1095492"))
}

func TestFirefoxArchiveNameIsPlatform(t *testing.T) {
	for _, platform := range []Platform{Linux, LinuxArm64, MacOS, Win32, Win64} {
		assert.Equal(t, string(platform), ArchiveName(Firefox, platform, "141.0a1"))
	}
}

func TestDownloadURLTemplates(t *testing.T) {
	url, err := DownloadURL(Chromium, Linux, "https://storage.googleapis.com", "1095492")
	require.NoError(t, err)
	assert.Equal(t, "https://storage.googleapis.com/chromium-browser-snapshots/Linux_x64/1095492/chrome-linux.zip", url)

	url, err = DownloadURL(Chromium, Win64, "https://storage.googleapis.com", "500000")
	require.NoError(t, err)
	assert.Equal(t, "https://storage.googleapis.com/chromium-browser-snapshots/Win_x64/500000/chrome-win32.zip", url)

	url, err = DownloadURL(Firefox, MacOS, "https://archive.mozilla.org", "141.0a1")
	require.NoError(t, err)
	assert.Equal(t, "https://archive.mozilla.org/pub/firefox/nightly/latest-mozilla-central/firefox-141.0a1.en-US.mac.dmg", url)

	url, err = DownloadURL(Firefox, Win64, "https://archive.mozilla.org", "141.0a1")
	require.NoError(t, err)
	assert.Equal(t, "https://archive.mozilla.org/pub/firefox/nightly/latest-mozilla-central/firefox-141.0a1.en-US.win64.zip", url)
}

// The Firefox Linux endpoints always resolve to the latest nightly; the
// revision argument has no effect on the URL.
func TestDownloadURLFirefoxLinuxIgnoresRevision(t *testing.T) {
	first, err := DownloadURL(Firefox, Linux, "https://example.com", "141.0a1")
	require.NoError(t, err)
	second, err := DownloadURL(Firefox, Linux, "https://other.example", "999.0a1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "firefox-nightly-latest-ssl")

	arm, err := DownloadURL(Firefox, LinuxArm64, "https://example.com", "141.0a1")
	require.NoError(t, err)
	assert.Contains(t, arm, "aarch64")
}

func TestDownloadURLUnsupportedCombo(t *testing.T) {
	_, err := DownloadURL(Chromium, LinuxArm64, "https://storage.googleapis.com", "1095492")
	assert.ErrorIs(t, err, ErrUnsupportedArchCombo)
}

func TestArchiveFilename(t *testing.T) {
	name, err := ArchiveFilename(Chromium, Linux, "1095492")
	require.NoError(t, err)
	assert.Equal(t, "chrome-linux.zip", name)

	name, err = ArchiveFilename(Firefox, Linux, "141.0a1")
	require.NoError(t, err)
	assert.Equal(t, "linux.tar.bz2", name)

	name, err = ArchiveFilename(Firefox, MacOS, "141.0a1")
	require.NoError(t, err)
	assert.Equal(t, "mac.dmg", name)
}

func TestSnapshotDir(t *testing.T) {
	dir, err := SnapshotDir(Linux)
	require.NoError(t, err)
	assert.Equal(t, "Linux_x64", dir)

	_, err = SnapshotDir(LinuxArm64)
	assert.ErrorIs(t, err, ErrUnsupportedArchCombo)
}

func TestParseProduct(t *testing.T) {
	product, err := ParseProduct("firefox")
	require.NoError(t, err)
	assert.Equal(t, Firefox, product)

	_, err = ParseProduct("opera")
	assert.ErrorIs(t, err, ErrUnsupportedProduct)
}

func TestParsePlatform(t *testing.T) {
	platform, err := ParsePlatform("linux-arm64")
	require.NoError(t, err)
	assert.Equal(t, LinuxArm64, platform)

	_, err = ParsePlatform("freebsd")
	assert.ErrorIs(t, err, ErrUnsupportedPlatform)
}
