package browser

import "errors"

// ErrUnsupportedProduct indicates a product name outside the known families.
var ErrUnsupportedProduct = errors.New("unsupported product")

// ErrUnsupportedPlatform indicates a (product, platform) pair with no
// entry in the download table.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// ErrUnsupportedArchive indicates no extraction handler matched the
// archive, even after content sniffing.
var ErrUnsupportedArchive = errors.New("unsupported archive format")

// ErrDownloadFailed indicates a non-200 response from the download host.
var ErrDownloadFailed = errors.New("download failed")

// ErrExtractionFailed indicates an extraction subprocess exited non-zero,
// or the archive contents were not laid out as expected.
var ErrExtractionFailed = errors.New("extraction failed")

// ErrNotInstalled indicates removal was requested for a revision with no
// on-disk folder.
var ErrNotInstalled = errors.New("revision is not installed")

// ErrUnsupportedArchCombo indicates a product that publishes no builds for
// the requested architecture.
var ErrUnsupportedArchCombo = errors.New("unsupported product/architecture combination")
