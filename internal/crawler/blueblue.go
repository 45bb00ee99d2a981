package crawler

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dealmungchi/lurecrawler/internal/lure"
	"github.com/dealmungchi/lurecrawler/internal/normalize"
)

var blueBlueSource = Source{
	Profile: lure.Profile{
		Manufacturer:     "BlueBlue",
		ManufacturerSlug: "blueblue",
		PricePolicy:      lure.PriceFirstNonzero,
		DefaultFish:      []string{"seabass"},
	},
	Hosts: []string{"bluebluefishing.com"},
}

// BlueBlueCrawler extracts BlueBlue product pages. The spec block is free
// text, one "Label: value" line per field.
type BlueBlueCrawler struct {
	BaseCrawler
}

func newBlueBlueCrawler(base BaseCrawler) Extractor {
	return &BlueBlueCrawler{BaseCrawler: base}
}

func (c *BlueBlueCrawler) Extract(ctx context.Context, productURL string) (*lure.Record, error) {
	doc, err := c.fetchDocument(ctx, productURL)
	if err != nil {
		return nil, err
	}

	raw := lure.Raw{
		SourceURL:   productURL,
		Name:        textOf(doc.Find("h1.product-name").First()),
		NameKana:    textOf(doc.Find(".product-name-kana").First()),
		Description: htmlTextOf(doc.Find(".product-description").First()),
		MainImage:   imgSrc(doc.Find(".product-main img").First()),
	}

	var v lure.Variant
	for _, line := range strings.Split(htmlTextOf(doc.Find(".product-spec")), "\n") {
		label, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		switch {
		case labelIs(label, "weight", "重量"):
			v.Weights = normalize.ParseWeights(value)
		case labelIs(label, "length", "全長"):
			v.Length = normalize.LengthPtr(value)
		case labelIs(label, "price", "価格"):
			v.Price = normalize.ParsePrice(value)
		}
	}
	raw.AddVariant(v)
	raw.Price = normalize.ParsePrice(textOf(doc.Find(".product-price")))

	doc.Find("ul.product-color li").Each(func(_ int, li *goquery.Selection) {
		name, _ := li.Attr("data-color-name")
		raw.AddColor(name, imgSrc(li.Find("img").First()))
	})

	return c.assemble(raw)
}
