package crawler

import (
	"context"

	"github.com/PuerkitoBio/goquery"

	"github.com/dealmungchi/lurecrawler/internal/lure"
	"github.com/dealmungchi/lurecrawler/internal/normalize"
)

var jackallSource = Source{
	Profile: lure.Profile{
		Manufacturer:     "JACKALL",
		ManufacturerSlug: "jackall",
		PricePolicy:      lure.PriceMin,
		FishCodes: map[string][]string{
			"bass":      {"black bass"},
			"saltwater": {"seabass"},
			"timon":     {"trout"},
		},
	},
	Hosts: []string{"jackall.co.jp"},
}

// JackallCrawler extracts Jackall pages, where every size has its own spec box
type JackallCrawler struct {
	BaseCrawler
}

func newJackallCrawler(base BaseCrawler) Extractor {
	return &JackallCrawler{BaseCrawler: base}
}

func (c *JackallCrawler) Extract(ctx context.Context, productURL string) (*lure.Record, error) {
	doc, err := c.fetchDocument(ctx, productURL)
	if err != nil {
		return nil, err
	}

	raw := lure.Raw{
		SourceURL:   productURL,
		Name:        textOf(doc.Find("h1.product-name").First()),
		NameKana:    textOf(doc.Find(".product-name-kana").First()),
		Breadcrumb:  crumbs(doc.Find(".breadcrumb")),
		Description: htmlTextOf(doc.Find(".product-text").First()),
		MainImage:   imgSrc(doc.Find(".main-visual img").First()),
	}

	doc.Find("div.spec-box").Each(func(_ int, box *goquery.Selection) {
		v := lure.Variant{Label: textOf(box.Find("h3").First())}
		for _, pair := range specPairs(box) {
			switch {
			case labelIs(pair[0], "length", "全長"):
				v.Length = normalize.LengthPtr(pair[1])
			case labelIs(pair[0], "weight", "自重", "重量"):
				v.Weights = normalize.ParseWeights(pair[1])
			case labelIs(pair[0], "price", "価格"):
				v.Price = normalize.ParsePrice(pair[1])
			}
		}
		raw.AddVariant(v)
	})

	doc.Find(".color-chart .color-item").Each(func(_ int, item *goquery.Selection) {
		name, _ := item.Attr("data-name")
		raw.AddColor(name, imgSrc(item.Find("img").First()))
	})

	return c.assemble(raw)
}
