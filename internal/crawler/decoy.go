package crawler

import (
	"context"

	"github.com/dealmungchi/lurecrawler/internal/lure"
	"github.com/dealmungchi/lurecrawler/internal/normalize"
)

var decoySource = Source{
	Profile: lure.Profile{
		Manufacturer:     "DECOY",
		ManufacturerSlug: "decoy",
		PricePolicy:      lure.PriceFirstNonzero,
		DefaultType:      "jig head",
		DefaultFish:      []string{"black bass"},
		SingleFinish:     true,
	},
	Hosts: []string{"decoy.jp"},
}

// DecoyCrawler extracts DECOY terminal tackle pages. Products come in one
// finish, so the record gets a single default color.
type DecoyCrawler struct {
	BaseCrawler
}

func newDecoyCrawler(base BaseCrawler) Extractor {
	return &DecoyCrawler{BaseCrawler: base}
}

func (c *DecoyCrawler) Extract(ctx context.Context, productURL string) (*lure.Record, error) {
	doc, err := c.fetchDocument(ctx, productURL)
	if err != nil {
		return nil, err
	}

	raw := lure.Raw{
		SourceURL:   productURL,
		Name:        textOf(doc.Find("h1.product_title").First()),
		Description: htmlTextOf(doc.Find(".product_text").First()),
		MainImage:   imgSrc(doc.Find(".product_photo img").First()),
	}

	headers, rows := headerTable(doc.Find("table.spec").First())
	size := column(headers, "サイズ")
	weight := column(headers, "重量")
	price := column(headers, "価格")
	for _, cells := range rows {
		raw.AddVariant(lure.Variant{
			Label:   cell(cells, size),
			Weights: normalize.ParseWeights(cell(cells, weight)),
			Price:   normalize.ParsePrice(cell(cells, price)),
		})
	}

	return c.assemble(raw)
}
