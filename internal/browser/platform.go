package browser

import (
	"fmt"
	"runtime"
	"strings"
)

// Platform identifies an OS+architecture pairing used for URL and path
// resolution.
type Platform string

const (
	Linux      Platform = "linux"
	LinuxArm64 Platform = "linux-arm64"
	MacOS      Platform = "mac"
	Win32      Platform = "win32"
	Win64      Platform = "win64"
)

var knownPlatforms = []Platform{Linux, LinuxArm64, MacOS, Win32, Win64}

// ParsePlatform validates a platform identifier from config or flags.
func ParsePlatform(s string) (Platform, error) {
	for _, p := range knownPlatforms {
		if Platform(s) == p {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedPlatform, s)
}

// DetectPlatform maps the running OS and architecture to a platform
// identifier.
func DetectPlatform() Platform {
	switch runtime.GOOS {
	case "darwin":
		return MacOS
	case "windows":
		if runtime.GOARCH == "386" {
			return Win32
		}
		return Win64
	default:
		if runtime.GOARCH == "arm64" {
			return LinuxArm64
		}
		return Linux
	}
}

// ParseInstalledName splits an installed folder name of the form
// {platform}-{revision} back into its parts. The linux-arm64 identifier
// itself contains a hyphen, so the two-segment prefix is checked before
// falling back to a plain split on the first hyphen. Names that do not
// start with a known platform report ok=false.
func ParseInstalledName(name string) (Platform, string, bool) {
	if rest, found := strings.CutPrefix(name, string(LinuxArm64)+"-"); found && rest != "" {
		return LinuxArm64, rest, true
	}
	platform, revision, found := strings.Cut(name, "-")
	if !found || revision == "" {
		return "", "", false
	}
	for _, p := range knownPlatforms {
		if Platform(platform) == p {
			return p, revision, true
		}
	}
	return "", "", false
}

func (p Platform) String() string {
	return string(p)
}
