package crawler

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dealmungchi/lurecrawler/internal/lure"
	"github.com/dealmungchi/lurecrawler/internal/normalize"
)

var luckyCraftSource = Source{
	Profile: lure.Profile{
		Manufacturer:     "Lucky Craft",
		ManufacturerSlug: "luckycraft",
		PricePolicy:      lure.PriceFirstNonzero,
		DefaultFish:      []string{"black bass"},
		FishCodes: map[string][]string{
			"salt":  {"seabass"},
			"trout": {"trout"},
		},
	},
	Hosts: []string{"luckycraft.co.jp"},
}

// LuckyCraftCrawler extracts Lucky Craft pages, which give sizes in inches and ounces
type LuckyCraftCrawler struct {
	BaseCrawler
}

func newLuckyCraftCrawler(base BaseCrawler) Extractor {
	return &LuckyCraftCrawler{BaseCrawler: base}
}

func (c *LuckyCraftCrawler) Extract(ctx context.Context, productURL string) (*lure.Record, error) {
	doc, err := c.fetchDocument(ctx, productURL)
	if err != nil {
		return nil, err
	}

	raw := lure.Raw{
		SourceURL:   productURL,
		Name:        textOf(doc.Find("h2.prod_name").First()),
		Description: htmlTextOf(doc.Find(".prod_comment").First()),
		MainImage:   imgSrc(doc.Find(".prod_image img").First()),
		Price:       normalize.ParsePrice(textOf(doc.Find("p.price").First())),
	}

	var v lure.Variant
	var typeText string
	for _, pair := range specPairs(doc.Find("table.specs")) {
		switch {
		case labelIs(pair[0], "length"):
			v.Length = normalize.LengthPtr(pair[1])
		case labelIs(pair[0], "weight"):
			v.Weights = normalize.ParseWeights(pair[1])
		case labelIs(pair[0], "type"):
			typeText = pair[1]
		}
	}
	raw.AddVariant(v)
	raw.ClassifyText = strings.Join([]string{raw.Name, typeText, raw.Description}, " ")

	doc.Find("table.color td").Each(func(_ int, td *goquery.Selection) {
		raw.AddColor(textOf(td.Find(".caption")), imgSrc(td.Find("img").First()))
	})

	return c.assemble(raw)
}
