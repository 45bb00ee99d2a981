package crawler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"

	"github.com/dealmungchi/lurecrawler/helpers"
	"github.com/dealmungchi/lurecrawler/logger"
)

// navigationStatusJS reads the HTTP status of the main document; 0 when the
// browser does not expose it.
const navigationStatusJS = `() => {
	const nav = performance.getEntriesByType('navigation')[0];
	return nav && nav.responseStatus ? nav.responseStatus : 0;
}`

// BrowserOptions configures a browser session
type BrowserOptions struct {
	Source  string
	Visible bool
	Bin     string
	Timeout time.Duration
}

// BrowserSession is one Chromium instance shared by every page of a source
// run. It must be closed by whoever launched it.
type BrowserSession struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration
	log      *logger.Logger
}

// LaunchBrowser starts Chromium, headless unless opts.Visible is set
func LaunchBrowser(opts BrowserOptions) (*BrowserSession, error) {
	l := launcher.New().
		Headless(!opts.Visible).
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Set("no-sandbox").
		Set("disable-blink-features", "AutomationControlled").
		Set("window-size", "1366,900").
		Set("lang", "ja-JP")
	if opts.Bin != "" {
		l = l.Bin(opts.Bin)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	session := &BrowserSession{
		browser:  browser,
		launcher: l,
		timeout:  timeout,
		log:      logger.ForBrowser(opts.Source, opts.Visible),
	}
	session.log.Info().Msg("browser session started")
	return session, nil
}

// Visit opens url in a fresh stealth page and hands the loaded page to fn.
// The page is closed when fn returns.
func (s *BrowserSession) Visit(ctx context.Context, url string, fn func(page *rod.Page) error) error {
	page, err := stealth.Page(s.browser)
	if err != nil {
		return fmt.Errorf("stealth page: %w", err)
	}
	defer page.Close()

	p := page.Context(ctx).Timeout(s.timeout)
	if err := p.Navigate(url); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("wait load %s: %w", url, err)
	}
	if err := p.WaitStable(500 * time.Millisecond); err != nil {
		s.log.Warn().Err(err).Str("url", url).Msg("page stability timeout, continuing")
	}

	if res, err := p.Eval(navigationStatusJS); err == nil {
		if status := res.Value.Int(); status >= 400 {
			return &helpers.StatusError{URL: url, StatusCode: status}
		}
	}

	return fn(p)
}

// Fetch returns the rendered HTML of url
func (s *BrowserSession) Fetch(ctx context.Context, url string) (io.Reader, error) {
	var html string
	err := s.Visit(ctx, url, func(page *rod.Page) error {
		var err error
		html, err = page.HTML()
		return err
	})
	if err != nil {
		return nil, err
	}
	return strings.NewReader(html), nil
}

// Close shuts the browser down and removes its profile directory
func (s *BrowserSession) Close() error {
	err := s.browser.Close()
	s.launcher.Kill()
	s.launcher.Cleanup()
	s.log.Info().Msg("browser session closed")
	return err
}

// EvalJSON runs a script that returns JSON.stringify(...) and decodes the
// string into out.
func EvalJSON(page *rod.Page, js string, out any) error {
	res, err := page.Eval(js)
	if err != nil {
		return fmt.Errorf("eval: %w", err)
	}
	if err := json.Unmarshal([]byte(res.Value.Str()), out); err != nil {
		return fmt.Errorf("decode eval result: %w", err)
	}
	return nil
}
