package crawler

import (
	"context"

	"github.com/PuerkitoBio/goquery"

	"github.com/dealmungchi/lurecrawler/helpers"
	"github.com/dealmungchi/lurecrawler/internal/lure"
	"github.com/dealmungchi/lurecrawler/internal/normalize"
)

var ospSource = Source{
	Profile: lure.Profile{
		Manufacturer:     "O.S.P",
		ManufacturerSlug: "osp",
		PricePolicy:      lure.PriceFirstNonzero,
		DefaultFish:      []string{"black bass"},
	},
	Hosts: []string{"o-s-p.net"},
}

// OSPCrawler extracts O.S.P pages (Shift_JIS). The spec table has one row per
// model and a numbered color chart.
type OSPCrawler struct {
	BaseCrawler
}

func newOSPCrawler(base BaseCrawler) Extractor {
	return &OSPCrawler{BaseCrawler: base}
}

func (c *OSPCrawler) Extract(ctx context.Context, productURL string) (*lure.Record, error) {
	doc, err := c.fetchDocument(ctx, productURL)
	if err != nil {
		return nil, err
	}

	raw := lure.Raw{
		SourceURL:   productURL,
		Name:        textOf(doc.Find("#products_name h2").First()),
		NameKana:    textOf(doc.Find("#products_name .kana").First()),
		Breadcrumb:  textOf(doc.Find("#pankuzu")),
		Description: htmlTextOf(doc.Find("#products_txt").First()),
		MainImage:   imgSrc(doc.Find("#main_img img").First()),
	}

	headers, rows := headerTable(doc.Find("table.spec").First())
	model := column(headers, "model", "品名")
	length := column(headers, "length", "全長")
	weight := column(headers, "weight", "重量")
	price := column(headers, "price", "価格")
	for _, cells := range rows {
		raw.AddVariant(lure.Variant{
			Label:   cell(cells, model),
			Length:  normalize.LengthPtr(cell(cells, length)),
			Weights: normalize.ParseWeights(cell(cells, weight)),
			Price:   normalize.ParsePrice(cell(cells, price)),
		})
	}

	doc.Find(".colorchart li").Each(func(_ int, li *goquery.Selection) {
		_, name := helpers.StripColorNumber(textOf(li.Find("span").First()))
		raw.AddColor(name, imgSrc(li.Find("img").First()))
	})

	return c.assemble(raw)
}
