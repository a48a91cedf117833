package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/datallboy/bget/internal/browser"
)

// firefoxVersionsURL serves the current version of every Firefox channel
// as JSON.
const firefoxVersionsURL = "https://product-details.mozilla.org/1.0/firefox_versions.json"

// LatestRevision resolves the newest published revision for the fetcher's
// product: the snapshot bucket's LAST_CHANGE marker for Chromium, the
// nightly channel version from Mozilla's product-details feed for Firefox.
func (f *Fetcher) LatestRevision(ctx context.Context) (string, error) {
	if f.product == browser.Firefox {
		return f.latestFirefoxNightly(ctx)
	}
	return f.latestChromiumSnapshot(ctx)
}

func (f *Fetcher) latestChromiumSnapshot(ctx context.Context) (string, error) {
	dir, err := browser.SnapshotDir(f.platform)
	if err != nil {
		return "", err
	}
	url := fmt.Sprintf("%s/chromium-browser-snapshots/%s/LAST_CHANGE", f.host, dir)

	body, err := f.getBody(ctx, url)
	if err != nil {
		return "", err
	}

	revision := strings.TrimSpace(string(body))
	if revision == "" {
		return "", fmt.Errorf("empty LAST_CHANGE response from %s", url)
	}
	return revision, nil
}

func (f *Fetcher) latestFirefoxNightly(ctx context.Context) (string, error) {
	url := f.versionsURL
	if url == "" {
		url = firefoxVersionsURL
	}

	body, err := f.getBody(ctx, url)
	if err != nil {
		return "", err
	}

	var versions struct {
		Nightly string `json:"FIREFOX_NIGHTLY"`
	}
	if err := json.Unmarshal(body, &versions); err != nil {
		return "", fmt.Errorf("decode firefox versions: %w", err)
	}
	if versions.Nightly == "" {
		return "", fmt.Errorf("no FIREFOX_NIGHTLY version in %s", url)
	}
	return versions.Nightly, nil
}

func (f *Fetcher) getBody(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: %s returned status %d", browser.ErrDownloadFailed, url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
