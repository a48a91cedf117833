package browser

import "fmt"

// Product identifies a browser family.
type Product string

const (
	Chromium Product = "chromium"
	Firefox  Product = "firefox"
)

// ParseProduct validates a product name from config or flags.
func ParseProduct(s string) (Product, error) {
	switch Product(s) {
	case Chromium, Firefox:
		return Product(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedProduct, s)
}

// DefaultHost returns the download host used when none is configured.
// Firefox nightlies are served from the Mozilla archive; the two Linux
// redirect endpoints bypass the host entirely (see DownloadURL).
func (p Product) DefaultHost() string {
	switch p {
	case Firefox:
		return "https://archive.mozilla.org"
	default:
		return "https://storage.googleapis.com"
	}
}

func (p Product) String() string {
	return string(p)
}
