package crawler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/dealmungchi/lurecrawler/helpers"
	"github.com/dealmungchi/lurecrawler/internal/lure"
	"github.com/dealmungchi/lurecrawler/logger"
	"github.com/dealmungchi/lurecrawler/services/cache"
	scrapeerrors "github.com/dealmungchi/lurecrawler/pkg/errors"
)

// BaseCrawler provides common functionality for all extractors
type BaseCrawler struct {
	source      Source
	fetcher     PageFetcher
	browser     *BrowserSession
	CacheSvc    cache.CacheService
	BlockTime   time.Duration
	MaxAttempts int
	RetryDelay  time.Duration
	log         *logger.Logger

	// fetchFunc replaces the fetcher; tests use it to serve fixtures
	fetchFunc func(ctx context.Context, url string) (io.Reader, error)
}

func newBaseCrawler(src Source, opts Options, browser *BrowserSession) BaseCrawler {
	base := BaseCrawler{
		source:      src,
		browser:     browser,
		CacheSvc:    opts.Cache,
		BlockTime:   opts.BlockTime,
		MaxAttempts: opts.MaxAttempts,
		RetryDelay:  opts.RetryDelay,
		log:         logger.ForSource(src.ManufacturerSlug),
	}
	if browser != nil {
		base.fetcher = browser
	} else {
		client := opts.HTTP
		if client == nil {
			client = helpers.NewClient(opts.RequestTimeout)
		}
		base.fetcher = httpFetcher{client: client}
	}
	if base.MaxAttempts < 1 {
		base.MaxAttempts = 1
	}
	return base
}

// GetName returns the maker name
func (c *BaseCrawler) GetName() string {
	return c.source.Manufacturer
}

// Source returns the maker profile
func (c *BaseCrawler) Source() Source {
	return c.source
}

func (c *BaseCrawler) cacheKey() string {
	return cache.RateLimitKeyPrefix + c.source.ManufacturerSlug
}

// fetchWithRetry fetches a page, retrying network failures and 5xx answers
// with linear backoff. 4xx answers are final. A 429 blocks the whole source
// for BlockTime.
func (c *BaseCrawler) fetchWithRetry(ctx context.Context, url string) (io.Reader, error) {
	return c.fetchWithRetryUsing(ctx, url, nil)
}

// fetchWithRetryUsing is fetchWithRetry over a custom fetch, such as a browser
// visit that also evaluates page scripts. A nil fetch uses the source fetcher.
func (c *BaseCrawler) fetchWithRetryUsing(ctx context.Context, url string, fetch func(ctx context.Context, url string) (io.Reader, error)) (io.Reader, error) {
	slug := c.source.ManufacturerSlug

	// Check if the source is rate limited
	if c.CacheSvc != nil {
		if _, err := c.CacheSvc.Get(c.cacheKey()); err == nil {
			return nil, scrapeerrors.NewRateLimit(slug, c.BlockTime)
		}
	}

	if c.fetchFunc != nil {
		fetch = c.fetchFunc
	}
	if fetch == nil {
		fetch = c.fetcher.Fetch
	}

	var lastErr error
	for attempt := 1; attempt <= c.MaxAttempts; attempt++ {
		body, err := fetch(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err

		var statusErr *helpers.StatusError
		if errors.As(err, &statusErr) {
			if statusErr.RateLimited() {
				if c.CacheSvc != nil {
					c.CacheSvc.Set(c.cacheKey(), []byte(fmt.Sprintf("%d", c.BlockTime/time.Second)), c.BlockTime)
				}
				return nil, scrapeerrors.NewRateLimit(slug, c.BlockTime)
			}
			if !statusErr.Retryable() {
				return nil, scrapeerrors.NewNotFound(slug, url, statusErr.StatusCode)
			}
		}
		if ctx.Err() != nil {
			return nil, scrapeerrors.NewNetwork(slug, url, "fetch cancelled", ctx.Err())
		}
		if attempt == c.MaxAttempts {
			break
		}

		c.log.Warn().Err(err).Int("attempt", attempt).Str("url", url).Msg("fetch failed, retrying")
		select {
		case <-ctx.Done():
			return nil, scrapeerrors.NewNetwork(slug, url, "fetch cancelled", ctx.Err())
		case <-time.After(time.Duration(attempt) * c.RetryDelay):
		}
	}

	return nil, scrapeerrors.NewNetwork(slug, url, fmt.Sprintf("fetch failed after %d attempts", c.MaxAttempts), lastErr)
}

// fetchDocument fetches url and parses it
func (c *BaseCrawler) fetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	body, err := c.fetchWithRetry(ctx, url)
	if err != nil {
		return nil, err
	}
	return c.createDocument(url, body)
}

// createDocument creates a goquery document from a reader
func (c *BaseCrawler) createDocument(url string, reader io.Reader) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return nil, scrapeerrors.NewParsing(c.source.ManufacturerSlug, url, "HTML parse error", err)
	}
	return doc, nil
}

// assemble builds the record with this source's profile and logs what degraded
func (c *BaseCrawler) assemble(raw lure.Raw) (*lure.Record, error) {
	rec, err := lure.Assemble(raw, c.source.Profile)
	if err != nil {
		return nil, err
	}

	event := c.log.Debug()
	if rec.Price == 0 || len(rec.Weights) == 0 || len(rec.Colors) == 0 {
		event = c.log.Warn()
	}
	event.Str("url", rec.SourceURL).
		Str("slug", rec.Slug).
		Int("price", rec.Price).
		Int("weights", len(rec.Weights)).
		Int("colors", len(rec.Colors)).
		Bool("length", rec.Length != nil).
		Msg("assembled record")

	return rec, nil
}
