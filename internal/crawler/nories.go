package crawler

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dealmungchi/lurecrawler/helpers"
	"github.com/dealmungchi/lurecrawler/internal/lure"
	"github.com/dealmungchi/lurecrawler/internal/normalize"
)

var noriesSource = Source{
	Profile: lure.Profile{
		Manufacturer:     "NORIES",
		ManufacturerSlug: "nories",
		PricePolicy:      lure.PriceFirstNonzero,
		DefaultFish:      []string{"black bass"},
	},
	Hosts: []string{"nories.com"},
}

// NoriesCrawler extracts NORIES pages; spec lines read "LENGTH: 2.8inch"
type NoriesCrawler struct {
	BaseCrawler
}

func newNoriesCrawler(base BaseCrawler) Extractor {
	return &NoriesCrawler{BaseCrawler: base}
}

func (c *NoriesCrawler) Extract(ctx context.Context, productURL string) (*lure.Record, error) {
	doc, err := c.fetchDocument(ctx, productURL)
	if err != nil {
		return nil, err
	}

	raw := lure.Raw{
		SourceURL:   productURL,
		Name:        textOf(doc.Find("h1.ttl").First()),
		Description: htmlTextOf(doc.Find(".lead").First()),
		MainImage:   imgSrc(doc.Find(".mainimg img").First()),
	}

	var v lure.Variant
	var typeText string
	doc.Find(".spec p").Each(func(_ int, p *goquery.Selection) {
		label, value, ok := strings.Cut(textOf(p), ":")
		if !ok {
			return
		}
		switch strings.ToUpper(strings.TrimSpace(label)) {
		case "LENGTH":
			v.Length = normalize.LengthPtr(value)
		case "WEIGHT":
			v.Weights = normalize.ParseWeights(value)
		case "PRICE":
			v.Price = normalize.ParsePrice(value)
		case "TYPE":
			typeText = value
		}
	})
	raw.AddVariant(v)
	raw.ClassifyText = strings.Join([]string{raw.Name, typeText, raw.Description}, " ")

	doc.Find(".colors li").Each(func(_ int, li *goquery.Selection) {
		_, name := helpers.StripColorNumber(textOf(li.Find("span").First()))
		raw.AddColor(name, imgSrc(li.Find("img").First()))
	})

	return c.assemble(raw)
}
