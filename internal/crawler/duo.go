package crawler

import (
	"context"

	"github.com/PuerkitoBio/goquery"

	"github.com/dealmungchi/lurecrawler/internal/lure"
	"github.com/dealmungchi/lurecrawler/internal/normalize"
)

var duoSource = Source{
	Profile: lure.Profile{
		Manufacturer:     "DUO",
		ManufacturerSlug: "duo",
		PricePolicy:      lure.PriceFirstNonzero,
		FishCodes: map[string][]string{
			"bass":  {"black bass"},
			"salt":  {"seabass"},
			"trout": {"trout"},
		},
	},
	Hosts: []string{"duo-inc.co.jp"},
}

// DuoCrawler extracts DUO product pages
type DuoCrawler struct {
	BaseCrawler
}

func newDuoCrawler(base BaseCrawler) Extractor {
	return &DuoCrawler{BaseCrawler: base}
}

// Extract reads the product header, the two-column spec tables and the color list
func (c *DuoCrawler) Extract(ctx context.Context, productURL string) (*lure.Record, error) {
	doc, err := c.fetchDocument(ctx, productURL)
	if err != nil {
		return nil, err
	}

	raw := lure.Raw{
		SourceURL:  productURL,
		Name:       textOf(doc.Find("h1.product-title").First()),
		NameKana:   textOf(doc.Find("p.product-kana").First()),
		Breadcrumb: crumbs(doc.Find("nav.breadcrumb")),
	}
	raw.MainImage = imgSrc(doc.Find(".product-main img").First())
	if raw.MainImage == "" {
		raw.MainImage = metaContent(doc, "og:image")
	}

	doc.Find(".product-desc p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		raw.Description = htmlTextOf(p)
		return raw.Description == ""
	})
	if raw.Description == "" {
		raw.Description = metaContent(doc, "description")
	}

	// one table per size
	doc.Find("table.spec-table").Each(func(_ int, table *goquery.Selection) {
		var v lure.Variant
		for _, pair := range specPairs(table) {
			label, value := pair[0], pair[1]
			switch {
			case labelIs(label, "length", "全長"):
				v.Length = normalize.LengthPtr(value)
			case labelIs(label, "weight", "重量", "自重"):
				v.Weights = normalize.ParseWeights(value)
			case labelIs(label, "price", "価格"):
				v.Price = normalize.ParsePrice(value)
			}
		}
		raw.AddVariant(v)
	})

	doc.Find("ul.color-list li").Each(func(_ int, li *goquery.Selection) {
		raw.AddColor(textOf(li.Find(".color-name")), imgSrc(li.Find("img").First()))
	})

	return c.assemble(raw)
}
