package crawler

import (
	"context"
	"io"
	"time"

	"github.com/dealmungchi/lurecrawler/helpers"
	"github.com/dealmungchi/lurecrawler/internal/lure"
	"github.com/dealmungchi/lurecrawler/services/cache"
)

// Extractor turns one product page of a maker site into a canonical record
type Extractor interface {
	// Extract fetches productURL and builds its record
	Extract(ctx context.Context, productURL string) (*lure.Record, error)

	// GetName returns the maker name for logging and identification
	GetName() string

	// Source returns the maker's profile and capability flags
	Source() Source
}

// Source describes one maker site
type Source struct {
	lure.Profile

	// Hosts the site serves product pages from, used to resolve a URL to its source
	Hosts []string

	// NeedsScriptedBrowser is set for sites that render product data with JavaScript
	NeedsScriptedBrowser bool
	// NeedsVisibleBrowser is set for sites that reject headless browsers
	NeedsVisibleBrowser bool
}

// PageFetcher fetches a page and returns its UTF-8 HTML
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (io.Reader, error)
}

// httpFetcher adapts the plain HTTP client to PageFetcher
type httpFetcher struct {
	client *helpers.Client
}

func (f httpFetcher) Fetch(ctx context.Context, url string) (io.Reader, error) {
	return f.client.FetchWithRandomHeaders(ctx, url)
}

// Options carries the settings and services every extractor is built with
type Options struct {
	HTTP           *helpers.Client
	Cache          cache.CacheService
	BlockTime      time.Duration
	MaxAttempts    int
	RetryDelay     time.Duration
	RequestTimeout time.Duration
	BrowserBin     string
}
