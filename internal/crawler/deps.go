package crawler

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dealmungchi/lurecrawler/internal/lure"
	"github.com/dealmungchi/lurecrawler/internal/normalize"
)

var depsSource = Source{
	Profile: lure.Profile{
		Manufacturer:     "deps",
		ManufacturerSlug: "deps",
		PricePolicy:      lure.PriceMin,
		DefaultFish:      []string{"black bass"},
	},
	Hosts: []string{"depsweb.co.jp"},
}

// DepsCrawler extracts deps pages. The spec is one free-text line per model,
// "TYPE-SS: Length:250mm / Weight:5oz class / ¥6,600(税込)".
type DepsCrawler struct {
	BaseCrawler
}

func newDepsCrawler(base BaseCrawler) Extractor {
	return &DepsCrawler{BaseCrawler: base}
}

func (c *DepsCrawler) Extract(ctx context.Context, productURL string) (*lure.Record, error) {
	doc, err := c.fetchDocument(ctx, productURL)
	if err != nil {
		return nil, err
	}

	raw := lure.Raw{
		SourceURL:   productURL,
		Name:        textOf(doc.Find(".product_title h2").First()),
		NameKana:    textOf(doc.Find(".product_title span").First()),
		Breadcrumb:  crumbs(doc.Find("ul.breadcrumb")),
		Description: htmlTextOf(doc.Find(".product_desc").First()),
		MainImage:   imgSrc(doc.Find(".product_photo img").First()),
	}

	for _, line := range strings.Split(htmlTextOf(doc.Find("div.spec")), "\n") {
		label, _, _ := strings.Cut(line, ":")
		raw.AddVariant(lure.Variant{
			Label:   label,
			Length:  normalize.LengthPtr(line),
			Weights: normalize.ParseWeights(line),
			Price:   normalize.ParsePrice(line),
		})
	}

	doc.Find(".color_box").Each(func(_ int, box *goquery.Selection) {
		raw.AddColor(textOf(box.Find("h4").First()), imgSrc(box.Find("img").First()))
	})

	return c.assemble(raw)
}
