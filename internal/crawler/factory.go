package crawler

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/dealmungchi/lurecrawler/logger"
	scrapeerrors "github.com/dealmungchi/lurecrawler/pkg/errors"
)

// registration binds a maker profile to its extractor constructor
type registration struct {
	source Source
	build  func(base BaseCrawler) Extractor
}

// registrations is the dispatch table, keyed at runtime by manufacturer slug
var registrations = []registration{
	{duoSource, newDuoCrawler},
	{jackallSource, newJackallCrawler},
	{megabassSource, newMegabassCrawler},
	{ospSource, newOSPCrawler},
	{daiwaSource, newDaiwaCrawler},
	{shimanoSource, newShimanoCrawler},
	{evergreenSource, newEvergreenCrawler},
	{imakatsuSource, newImakatsuCrawler},
	{depsSource, newDepsCrawler},
	{gancraftSource, newGanCraftCrawler},
	{luckyCraftSource, newLuckyCraftCrawler},
	{tackleHouseSource, newTackleHouseCrawler},
	{zipBaitsSource, newZipBaitsCrawler},
	{mariaSource, newMariaCrawler},
	{bassdaySource, newBassdayCrawler},
	{smithSource, newSmithCrawler},
	{jumprizeSource, newJumprizeCrawler},
	{blueBlueSource, newBlueBlueCrawler},
	{majorCraftSource, newMajorCraftCrawler},
	{noriesSource, newNoriesCrawler},
	{decoySource, newDecoyCrawler},
}

// Factory builds extractors for maker slugs
type Factory struct {
	opts   Options
	bySlug map[string]registration
}

// NewFactory creates a factory over the built-in dispatch table
func NewFactory(opts Options) *Factory {
	f := &Factory{opts: opts, bySlug: make(map[string]registration, len(registrations))}
	for _, r := range registrations {
		f.bySlug[r.source.ManufacturerSlug] = r
	}
	return f
}

// Sources lists every registered maker, sorted by slug
func (f *Factory) Sources() []Source {
	sources := make([]Source, 0, len(f.bySlug))
	for _, r := range f.bySlug {
		sources = append(sources, r.source)
	}
	sort.Slice(sources, func(i, j int) bool {
		return sources[i].ManufacturerSlug < sources[j].ManufacturerSlug
	})
	return sources
}

// Lookup returns the source registered under slug
func (f *Factory) Lookup(slug string) (Source, bool) {
	r, ok := f.bySlug[strings.ToLower(strings.TrimSpace(slug))]
	return r.source, ok
}

// Resolve finds the source that serves productURL by host name
func (f *Factory) Resolve(productURL string) (Source, bool) {
	u, err := url.Parse(productURL)
	if err != nil {
		return Source{}, false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	for _, r := range registrations {
		for _, h := range r.source.Hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return r.source, true
			}
		}
	}
	return Source{}, false
}

// Acquire builds the extractor for slug. Sources that need a browser get a
// fresh session, which release closes; release must be called on every path.
func (f *Factory) Acquire(slug string) (Extractor, func(), error) {
	r, ok := f.bySlug[strings.ToLower(strings.TrimSpace(slug))]
	if !ok {
		return nil, func() {}, scrapeerrors.NewConfiguration(fmt.Sprintf("no extractor registered for maker %q", slug), nil)
	}

	var session *BrowserSession
	if r.source.NeedsScriptedBrowser || r.source.NeedsVisibleBrowser {
		var err error
		session, err = LaunchBrowser(BrowserOptions{
			Source:  r.source.ManufacturerSlug,
			Visible: r.source.NeedsVisibleBrowser,
			Bin:     f.opts.BrowserBin,
			Timeout: f.opts.RequestTimeout,
		})
		if err != nil {
			return nil, func() {}, scrapeerrors.NewConfiguration("browser unavailable for "+r.source.ManufacturerSlug, err)
		}
	}

	release := func() {
		if session == nil {
			return
		}
		if err := session.Close(); err != nil {
			logger.ForSource(r.source.ManufacturerSlug).Warn().Err(err).Msg("failed to close browser session")
		}
	}

	return r.build(newBaseCrawler(r.source, f.opts, session)), release, nil
}
