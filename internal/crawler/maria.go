package crawler

import (
	"context"

	"github.com/PuerkitoBio/goquery"

	"github.com/dealmungchi/lurecrawler/internal/lure"
	"github.com/dealmungchi/lurecrawler/internal/normalize"
)

var mariaSource = Source{
	Profile: lure.Profile{
		Manufacturer:     "Maria",
		ManufacturerSlug: "maria",
		PricePolicy:      lure.PriceMin,
		DefaultFish:      []string{"seabass"},
	},
	Hosts: []string{"yamaria.co.jp"},
}

// MariaCrawler extracts Maria pages (Yamashita Maria). One spec row per size.
type MariaCrawler struct {
	BaseCrawler
}

func newMariaCrawler(base BaseCrawler) Extractor {
	return &MariaCrawler{BaseCrawler: base}
}

func (c *MariaCrawler) Extract(ctx context.Context, productURL string) (*lure.Record, error) {
	doc, err := c.fetchDocument(ctx, productURL)
	if err != nil {
		return nil, err
	}

	raw := lure.Raw{
		SourceURL:   productURL,
		Name:        textOf(doc.Find("h2.product-title").First()),
		NameKana:    textOf(doc.Find(".product-title-en").First()),
		Breadcrumb:  crumbs(doc.Find(".breadcrumb")),
		Description: htmlTextOf(doc.Find(".product-comment").First()),
		MainImage:   imgSrc(doc.Find(".product-photo img").First()),
	}

	headers, rows := headerTable(doc.Find("table.tbl-spec").First())
	name := column(headers, "品名")
	length := column(headers, "全長")
	weight := column(headers, "重量")
	price := column(headers, "価格")
	taxExcluded := column(headers, "本体") >= 0
	for _, cells := range rows {
		amount := cell(cells, price)
		if taxExcluded && amount != "" {
			amount = "本体価格" + amount
		}
		raw.AddVariant(lure.Variant{
			Label:   cell(cells, name),
			Length:  normalize.LengthPtr(cell(cells, length)),
			Weights: normalize.ParseWeights(cell(cells, weight)),
			Price:   normalize.ParsePrice(amount),
		})
	}

	doc.Find("ul.color-list li").Each(func(_ int, li *goquery.Selection) {
		raw.AddColor(textOf(li.Find(".color-name")), imgSrc(li.Find("img").First()))
	})

	return c.assemble(raw)
}
