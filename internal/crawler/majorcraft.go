package crawler

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dealmungchi/lurecrawler/helpers"
	"github.com/dealmungchi/lurecrawler/internal/lure"
	"github.com/dealmungchi/lurecrawler/internal/normalize"
)

var majorCraftSource = Source{
	Profile: lure.Profile{
		Manufacturer:     "Major Craft",
		ManufacturerSlug: "majorcraft",
		PricePolicy:      lure.PriceMin,
		FishCodes: map[string][]string{
			"jig": {"yellowtail", "amberjack"},
			"egi": {"squid"},
			"aji": {"horse mackerel"},
			"tai": {"sea bream"},
		},
	},
	Hosts: []string{"majorcraft.co.jp"},
}

// MajorCraftCrawler extracts Major Craft pages. Jigs list one row per weight.
type MajorCraftCrawler struct {
	BaseCrawler
}

func newMajorCraftCrawler(base BaseCrawler) Extractor {
	return &MajorCraftCrawler{BaseCrawler: base}
}

func (c *MajorCraftCrawler) Extract(ctx context.Context, productURL string) (*lure.Record, error) {
	doc, err := c.fetchDocument(ctx, productURL)
	if err != nil {
		return nil, err
	}

	raw := lure.Raw{
		SourceURL:   productURL,
		Name:        textOf(doc.Find("h2.product_name").First()),
		NameKana:    textOf(doc.Find(".product_name_en").First()),
		Description: htmlTextOf(doc.Find(".product_txt").First()),
		MainImage:   imgSrc(doc.Find(".main_img img").First()),
	}
	raw.ClassifyText = strings.Join([]string{raw.Name, raw.NameKana, raw.Description}, " ")

	headers, rows := headerTable(doc.Find("table.spec_table").First())
	code := column(headers, "品番")
	weight := column(headers, "ウェイト", "ウエイト", "重量")
	length := column(headers, "全長")
	price := column(headers, "価格")
	for _, cells := range rows {
		raw.AddVariant(lure.Variant{
			Label:   cell(cells, code),
			Weights: normalize.ParseWeights(cell(cells, weight)),
			Length:  normalize.LengthPtr(cell(cells, length)),
			Price:   normalize.ParsePrice(cell(cells, price)),
		})
	}

	doc.Find(".color li").Each(func(_ int, li *goquery.Selection) {
		_, name := helpers.StripColorNumber(textOf(li.Find("p").First()))
		raw.AddColor(name, imgSrc(li.Find("img").First()))
	})

	return c.assemble(raw)
}
