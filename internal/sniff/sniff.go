// Package sniff classifies a downloaded archive's real container format
// from its leading bytes. Download endpoints do not always honor the file
// extension their URL implies — Firefox Linux nightlies in particular can
// arrive gzip- or xz-compressed behind a .tar.bz2 name — and extracting by
// extension alone silently corrupts the install.
package sniff

import (
	"bytes"
	"context"
	"os"
	"strings"

	"github.com/datallboy/bget/internal/sysexec"
)

// Format is the detected container format of an archive file.
type Format int

const (
	Unknown Format = iota
	Zip
	TarGz
	TarBz2
	TarXz
)

func (f Format) String() string {
	switch f {
	case Zip:
		return "zip"
	case TarGz:
		return "tar+gzip"
	case TarBz2:
		return "tar+bzip2"
	case TarXz:
		return "tar+xz"
	default:
		return "unknown"
	}
}

// Ext returns the canonical file extension for the format, or "" when the
// format is unknown.
func (f Format) Ext() string {
	switch f {
	case Zip:
		return ".zip"
	case TarGz:
		return ".tar.gz"
	case TarBz2:
		return ".tar.bz2"
	case TarXz:
		return ".tar.xz"
	default:
		return ""
	}
}

const headerLen = 20

var (
	xzMagic    = []byte{0xFD, 0x37, 0x7A, 0x58, 0x5A, 0x00}
	gzipMagic  = []byte{0x1F, 0x8B}
	bzip2Magic = []byte{0x42, 0x5A} // "BZ"
	zipMagic   = []byte{0x50, 0x4B} // "PK"
)

// Classify inspects the first bytes of the file and, when no magic number
// matches, falls back to the system file(1) utility through the runner.
// It never fails hard: anything unrecognized comes back as Unknown and the
// caller extracts under the extension the URL implied, surfacing whatever
// error that produces.
func Classify(ctx context.Context, runner sysexec.Runner, path string) Format {
	if f := classifyHeader(path); f != Unknown {
		return f
	}
	return classifyWithFile(ctx, runner, path)
}

func classifyHeader(path string) Format {
	f, err := os.Open(path)
	if err != nil {
		return Unknown
	}
	defer f.Close()

	header := make([]byte, headerLen)
	n, err := f.Read(header)
	if err != nil && n == 0 {
		return Unknown
	}
	header = header[:n]

	switch {
	case bytes.HasPrefix(header, xzMagic):
		return TarXz
	case bytes.HasPrefix(header, gzipMagic):
		return TarGz
	case bytes.HasPrefix(header, bzip2Magic):
		return TarBz2
	case bytes.HasPrefix(header, zipMagic):
		return Zip
	default:
		return Unknown
	}
}

func classifyWithFile(ctx context.Context, runner sysexec.Runner, path string) Format {
	stdout, _, err := runner.Run(ctx, "file", path)
	if err != nil {
		return Unknown
	}

	// Substring matches are case-sensitive and ordered; file(1) prints
	// e.g. "gzip compressed data" or "Zip archive data".
	switch {
	case strings.Contains(stdout, "gzip"):
		return TarGz
	case strings.Contains(stdout, "bzip2"):
		return TarBz2
	case strings.Contains(stdout, "Zip"):
		return Zip
	default:
		return Unknown
	}
}
