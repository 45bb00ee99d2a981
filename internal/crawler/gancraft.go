package crawler

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dealmungchi/lurecrawler/helpers"
	"github.com/dealmungchi/lurecrawler/internal/lure"
	"github.com/dealmungchi/lurecrawler/internal/normalize"
)

var gancraftSource = Source{
	Profile: lure.Profile{
		Manufacturer:     "GAN CRAFT",
		ManufacturerSlug: "gancraft",
		PricePolicy:      lure.PriceFirstNonzero,
		DefaultType:      "big bait",
		DefaultFish:      []string{"black bass"},
		FishCodes: map[string][]string{
			"salt": {"seabass"},
		},
	},
	Hosts: []string{"gancraft.com"},
}

// GanCraftCrawler extracts GAN CRAFT pages. Spec lines are "全長：178mm";
// color links point at the full-size image.
type GanCraftCrawler struct {
	BaseCrawler
}

func newGanCraftCrawler(base BaseCrawler) Extractor {
	return &GanCraftCrawler{BaseCrawler: base}
}

func (c *GanCraftCrawler) Extract(ctx context.Context, productURL string) (*lure.Record, error) {
	doc, err := c.fetchDocument(ctx, productURL)
	if err != nil {
		return nil, err
	}

	raw := lure.Raw{
		SourceURL:   productURL,
		Name:        textOf(doc.Find("h1.entry-title").First()),
		Description: htmlTextOf(doc.Find(".item-text").First()),
		MainImage:   imgSrc(doc.Find(".item-image img").First()),
	}

	var v lure.Variant
	var typeText string
	doc.Find("ul.spec li").Each(func(_ int, li *goquery.Selection) {
		label, value, ok := strings.Cut(textOf(li), ":")
		if !ok {
			return
		}
		switch {
		case labelIs(label, "全長"):
			v.Length = normalize.LengthPtr(value)
		case labelIs(label, "重量", "自重"):
			v.Weights = normalize.ParseWeights(value)
		case labelIs(label, "価格"):
			v.Price = normalize.ParsePrice(label + value)
		case labelIs(label, "タイプ"):
			typeText = value
		}
	})
	raw.AddVariant(v)
	raw.ClassifyText = strings.Join([]string{raw.Name, typeText, raw.Description}, " ")

	doc.Find(".colorlist a").Each(func(_ int, a *goquery.Selection) {
		title, _ := a.Attr("title")
		_, name := helpers.StripColorNumber(title)
		img, _ := a.Attr("href")
		if img == "" {
			img = imgSrc(a.Find("img").First())
		}
		raw.AddColor(name, img)
	})

	return c.assemble(raw)
}
