package crawler

import (
	"context"
	"strings"

	"github.com/antchfx/htmlquery"

	"github.com/dealmungchi/lurecrawler/helpers"
	"github.com/dealmungchi/lurecrawler/internal/lure"
	"github.com/dealmungchi/lurecrawler/internal/normalize"
)

var evergreenSource = Source{
	Profile: lure.Profile{
		Manufacturer:     "EVERGREEN",
		ManufacturerSlug: "evergreen",
		PricePolicy:      lure.PriceFirstNonzero,
		FishCodes: map[string][]string{
			"bass":  {"black bass"},
			"salt":  {"seabass"},
			"trout": {"trout"},
		},
	},
	Hosts: []string{"evergreen-fishing.com"},
}

// EvergreenCrawler extracts Evergreen pages with XPath; the markup nests the
// spec rows too irregularly for CSS selectors.
type EvergreenCrawler struct {
	BaseCrawler
}

func newEvergreenCrawler(base BaseCrawler) Extractor {
	return &EvergreenCrawler{BaseCrawler: base}
}

func (c *EvergreenCrawler) Extract(ctx context.Context, productURL string) (*lure.Record, error) {
	doc, err := c.fetchNode(ctx, productURL)
	if err != nil {
		return nil, err
	}

	raw := lure.Raw{
		SourceURL:   productURL,
		Name:        xText(doc, `//h2[@class='item-name']`),
		NameKana:    xText(doc, `//p[@class='item-kana']`),
		Description: xLines(doc, `//div[@class='item-text']`),
		MainImage:   xImg(doc, `//div[@class='item-photo']//img`),
	}
	category := xText(doc, `//p[@class='item-category']`)
	raw.ClassifyText = strings.Join([]string{raw.Name, raw.NameKana, category}, " ")

	for _, table := range htmlquery.Find(doc, `//table[contains(@class,'spec')]`) {
		field := func(label string) string {
			return xText(table, `.//th[contains(.,'`+label+`')]/following-sibling::td[1]`)
		}
		raw.AddVariant(lure.Variant{
			Length:  normalize.LengthPtr(field("レングス")),
			Weights: normalize.ParseWeights(field("ウエイト")),
			Price:   normalize.ParsePrice(field("価格")),
		})
	}

	for _, li := range htmlquery.Find(doc, `//div[@id='color']//li`) {
		_, name := helpers.StripColorNumber(xText(li, `.//span`))
		raw.AddColor(name, xImg(li, `.//img`))
	}

	return c.assemble(raw)
}
