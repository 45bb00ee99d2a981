package crawler

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dealmungchi/lurecrawler/internal/lure"
	"github.com/dealmungchi/lurecrawler/internal/normalize"
)

var zipBaitsSource = Source{
	Profile: lure.Profile{
		Manufacturer:     "ZIPBAITS",
		ManufacturerSlug: "zipbaits",
		PricePolicy:      lure.PriceFirstNonzero,
		FishCodes: map[string][]string{
			"bass":  {"black bass"},
			"salt":  {"seabass"},
			"trout": {"trout"},
		},
	},
	Hosts: []string{"zipbaits.com"},
}

// ZipBaitsCrawler extracts ZIPBAITS pages, which address products by query
// string (item/?id=rigge-70&cat=trout)
type ZipBaitsCrawler struct {
	BaseCrawler
}

func newZipBaitsCrawler(base BaseCrawler) Extractor {
	return &ZipBaitsCrawler{BaseCrawler: base}
}

func (c *ZipBaitsCrawler) Extract(ctx context.Context, productURL string) (*lure.Record, error) {
	doc, err := c.fetchDocument(ctx, productURL)
	if err != nil {
		return nil, err
	}

	raw := lure.Raw{
		SourceURL:   productURL,
		Slug:        normalize.SlugFromQuery(productURL, "id"),
		Name:        textOf(doc.Find("h1.item_title").First()),
		NameKana:    textOf(doc.Find(".item_kana").First()),
		Description: htmlTextOf(doc.Find(".item_lead").First()),
		MainImage:   imgSrc(doc.Find(".item_main img").First()),
	}
	raw.ClassifyText = strings.Join([]string{raw.Name, textOf(doc.Find(".item_cat")), raw.Description}, " ")

	var v lure.Variant
	for _, pair := range specPairs(doc.Find("table#spec")) {
		switch {
		case labelIs(pair[0], "length"):
			v.Length = normalize.LengthPtr(pair[1])
		case labelIs(pair[0], "weight"):
			v.Weights = normalize.ParseWeights(pair[1])
		case labelIs(pair[0], "price"):
			v.Price = normalize.ParsePrice(pair[1])
		}
	}
	raw.AddVariant(v)

	doc.Find("ul.chips li").Each(func(_ int, li *goquery.Selection) {
		raw.AddColor(textOf(li.Find(".name")), imgSrc(li.Find("img").First()))
	})

	return c.assemble(raw)
}
