package crawler

import (
	"context"
	"strings"

	"github.com/dealmungchi/lurecrawler/helpers"
	"github.com/dealmungchi/lurecrawler/internal/lure"
	"github.com/dealmungchi/lurecrawler/internal/normalize"
)

var smithSource = Source{
	Profile: lure.Profile{
		Manufacturer:     "SMITH",
		ManufacturerSlug: "smith",
		PricePolicy:      lure.PriceFirstNonzero,
		DefaultFish:      []string{"trout"},
		FishCodes: map[string][]string{
			"trout": {"trout"},
			"salt":  {"seabass"},
			"bass":  {"black bass"},
		},
	},
	Hosts: []string{"smith.jp"},
}

// SmithCrawler extracts SMITH pages: old table layouts in Shift_JIS with the
// color names listed in one cell and no color images
type SmithCrawler struct {
	BaseCrawler
}

func newSmithCrawler(base BaseCrawler) Extractor {
	return &SmithCrawler{BaseCrawler: base}
}

func (c *SmithCrawler) Extract(ctx context.Context, productURL string) (*lure.Record, error) {
	doc, err := c.fetchNode(ctx, productURL)
	if err != nil {
		return nil, err
	}

	raw := lure.Raw{
		SourceURL:   productURL,
		Name:        xText(doc, `//td[@class='pname']`),
		Description: xLines(doc, `//td[@class='desc']`),
		MainImage:   xImg(doc, `//img[@class='main']`),
	}

	field := func(label string) string {
		return xText(doc, `//table[@class='spec']//td[normalize-space(.)='`+label+`']/following-sibling::td[1]`)
	}
	raw.AddVariant(lure.Variant{
		Length:  normalize.LengthPtr(field("全長")),
		Weights: normalize.ParseWeights(field("重量")),
		Price:   normalize.ParsePrice(field("価格")),
	})

	colors := xLines(doc, `//table[@class='spec']//td[normalize-space(.)='カラー']/following-sibling::td[1]`)
	for _, line := range strings.Split(colors, "\n") {
		_, name := helpers.StripColorNumber(line)
		raw.AddColor(name, "")
	}

	return c.assemble(raw)
}
