// Package fetcher downloads and installs browser binaries into a local
// cache directory and manages the revisions installed there.
//
// A Fetcher assumes single-writer ownership of its download root for the
// lifetime of the process. Pointing concurrent Fetchers (or processes) at
// the same root is not supported; there is no cooperative locking.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/segmentio/ksuid"

	"github.com/datallboy/bget/internal/archive"
	"github.com/datallboy/bget/internal/browser"
	"github.com/datallboy/bget/internal/sniff"
	"github.com/datallboy/bget/internal/sysexec"
)

// ProgressFunc is invoked after every chunk written to disk. A total of 0
// means the server did not report a content length, not that the download
// is complete.
type ProgressFunc func(received, total int64)

// RevisionInfo describes one revision of a product for this fetcher's
// platform. It is recomputed on every lookup; Local reflects disk state at
// the time of the call and is never cached.
type RevisionInfo struct {
	Revision       string           `json:"revision"`
	Product        browser.Product  `json:"product"`
	Platform       browser.Platform `json:"platform"`
	FolderPath     string           `json:"folderPath"`
	ExecutablePath string           `json:"executablePath"`
	URL            string           `json:"url"`
	Local          bool             `json:"local"`
}

// Options configures a Fetcher. Every field is optional.
type Options struct {
	Product    browser.Product  // default chromium
	Platform   browser.Platform // default detected from the running OS/arch
	Path       string           // download root; default under os.UserCacheDir
	Host       string           // download host; default per product
	Logger     *zerolog.Logger  // default no-op
	HTTPClient *http.Client     // default http.DefaultClient
	Runner     sysexec.Runner   // default sysexec.System
}

// Fetcher downloads, installs, enumerates and removes browser revisions.
type Fetcher struct {
	product  browser.Product
	platform browser.Platform
	root     string
	host     string
	client   *http.Client
	runner   sysexec.Runner
	log      zerolog.Logger

	// versionsURL overrides the Firefox product-details endpoint in tests.
	versionsURL string
}

// New builds a Fetcher, filling in defaults for unset options.
func New(opts Options) (*Fetcher, error) {
	f := &Fetcher{
		product:  opts.Product,
		platform: opts.Platform,
		root:     opts.Path,
		host:     opts.Host,
		client:   opts.HTTPClient,
		runner:   opts.Runner,
		log:      zerolog.Nop(),
	}
	if f.product == "" {
		f.product = browser.Chromium
	}
	if _, err := browser.ParseProduct(string(f.product)); err != nil {
		return nil, err
	}
	if f.platform == "" {
		f.platform = browser.DetectPlatform()
	}
	if _, err := browser.ParsePlatform(string(f.platform)); err != nil {
		return nil, err
	}
	if f.root == "" {
		cacheDir, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("resolve cache dir: %w", err)
		}
		f.root = filepath.Join(cacheDir, "bget", string(f.product))
	}
	if f.host == "" {
		f.host = f.product.DefaultHost()
	}
	if f.client == nil {
		f.client = http.DefaultClient
	}
	if f.runner == nil {
		f.runner = sysexec.System{}
	}
	if opts.Logger != nil {
		f.log = *opts.Logger
	}
	return f, nil
}

// Product returns the browser family this fetcher serves.
func (f *Fetcher) Product() browser.Product { return f.product }

// Platform returns the platform identifier this fetcher serves.
func (f *Fetcher) Platform() browser.Platform { return f.platform }

// Host returns the download host in use.
func (f *Fetcher) Host() string { return f.host }

// RevisionInfo computes the derived record for a revision. The only I/O is
// the existence check behind Local.
func (f *Fetcher) RevisionInfo(revision string) (*RevisionInfo, error) {
	folder := browser.FolderPath(f.root, f.platform, revision)

	exe, err := browser.ExecutablePath(f.product, f.platform, folder, revision)
	if err != nil {
		return nil, err
	}
	url, err := browser.DownloadURL(f.product, f.platform, f.host, revision)
	if err != nil {
		return nil, err
	}

	local := false
	if _, err := os.Stat(folder); err == nil {
		local = true
	}

	return &RevisionInfo{
		Revision:       revision,
		Product:        f.product,
		Platform:       f.platform,
		FolderPath:     folder,
		ExecutablePath: exe,
		URL:            url,
		Local:          local,
	}, nil
}

// CanDownload reports whether the host serves the revision, via a HEAD
// request.
func (f *Fetcher) CanDownload(ctx context.Context, revision string) (bool, error) {
	url, err := browser.DownloadURL(f.product, f.platform, f.host, revision)
	if err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false, fmt.Errorf("build request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("head %s: %w", url, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode == http.StatusOK, nil
}

// Download fetches, verifies and extracts a revision, returning its info.
// It is idempotent: an existing installation folder short-circuits without
// network I/O, trusting existence alone. The downloaded archive never
// survives the call; only the extracted folder persists, and a failed
// install leaves nothing under the final folder name.
func (f *Fetcher) Download(ctx context.Context, revision string, onProgress ProgressFunc) (*RevisionInfo, error) {
	if err := browser.Supported(f.product, f.platform); err != nil {
		return nil, err
	}

	info, err := f.RevisionInfo(revision)
	if err != nil {
		return nil, err
	}
	if info.Local {
		f.log.Debug().Str("revision", revision).Msg("revision already installed, skipping download")
		return info, nil
	}

	if err := os.MkdirAll(f.root, 0o755); err != nil {
		return nil, fmt.Errorf("create download root: %w", err)
	}

	archiveFile, err := browser.ArchiveFilename(f.product, f.platform, revision)
	if err != nil {
		return nil, err
	}
	archivePath := filepath.Join(f.root, fmt.Sprintf(".partial-%s-%s", ksuid.New().String(), archiveFile))
	defer func() {
		// archivePath may have been renamed by the sniff correction; the
		// closure always deletes the current name.
		_ = os.Remove(archivePath)
	}()

	f.log.Info().Str("url", info.URL).Str("revision", revision).Msg("downloading archive")
	if err := f.fetchArchive(ctx, info.URL, archivePath, onProgress); err != nil {
		return nil, err
	}

	archivePath = f.correctExtension(ctx, archivePath)

	staging := filepath.Join(f.root, ".staging-"+ksuid.New().String())
	defer os.RemoveAll(staging)

	if err := archive.Install(ctx, f.runner, archivePath, staging); err != nil {
		return nil, err
	}
	if err := f.applyFixups(staging, revision); err != nil {
		return nil, err
	}
	if err := os.Rename(staging, info.FolderPath); err != nil {
		return nil, fmt.Errorf("finalize install folder: %w", err)
	}

	f.log.Info().Str("folder", info.FolderPath).Msg("revision installed")
	info.Local = true
	return info, nil
}

// LocalRevisions lists the revisions installed for this fetcher's
// platform, in directory enumeration order.
func (f *Fetcher) LocalRevisions() ([]string, error) {
	entries, err := os.ReadDir(f.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read download root: %w", err)
	}

	var revisions []string
	for _, entry := range entries {
		platform, revision, ok := browser.ParseInstalledName(entry.Name())
		if !ok || platform != f.platform {
			continue
		}
		revisions = append(revisions, revision)
	}
	return revisions, nil
}

// Remove deletes an installed revision.
func (f *Fetcher) Remove(revision string) error {
	folder := browser.FolderPath(f.root, f.platform, revision)
	if _, err := os.Stat(folder); err != nil {
		return fmt.Errorf("%w: %s %s for %s", browser.ErrNotInstalled, f.product, revision, f.platform)
	}
	return os.RemoveAll(folder)
}

// fetchArchive streams the response body to archivePath, reporting
// progress per chunk. A non-200 response drains the body before failing so
// the connection can be reused.
func (f *Fetcher) fetchArchive(ctx context.Context, url, archivePath string, onProgress ProgressFunc) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: %s returned status %d", browser.ErrDownloadFailed, url, resp.StatusCode)
	}

	out, err := os.Create(archivePath)
	if err != nil {
		return fmt.Errorf("create archive file: %w", err)
	}

	total := resp.ContentLength
	if total < 0 {
		total = 0 // unknown
	}
	var body io.Reader = resp.Body
	if onProgress != nil {
		body = &progressReader{r: resp.Body, total: total, report: onProgress}
	}

	if _, err := io.Copy(out, body); err != nil {
		out.Close()
		return fmt.Errorf("write archive: %w", err)
	}
	return out.Close()
}

// correctExtension renames the archive when its sniffed content format
// disagrees with the extension the URL implied. Extraction dispatches on
// extension, so a lying endpoint would otherwise corrupt the install. An
// unknown format keeps the original name and lets extraction surface the
// error.
func (f *Fetcher) correctExtension(ctx context.Context, archivePath string) string {
	format := sniff.Classify(ctx, f.runner, archivePath)
	ext := format.Ext()
	if ext == "" || strings.HasSuffix(archivePath, ext) {
		return archivePath
	}

	renamed := trimArchiveExt(archivePath) + ext
	if err := os.Rename(archivePath, renamed); err != nil {
		f.log.Warn().Err(err).Msg("could not rename archive to sniffed format")
		return archivePath
	}
	f.log.Info().Str("format", format.String()).Str("archive", filepath.Base(renamed)).
		Msg("archive content did not match its extension, renamed")
	return renamed
}

var archiveExts = []string{".tar.gz", ".tar.bz2", ".tar.xz", ".zip", ".dmg"}

func trimArchiveExt(path string) string {
	for _, ext := range archiveExts {
		if strings.HasSuffix(path, ext) {
			return strings.TrimSuffix(path, ext)
		}
	}
	return strings.TrimSuffix(path, filepath.Ext(path))
}
