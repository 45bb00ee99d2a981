package crawler

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dealmungchi/lurecrawler/helpers"
	"github.com/dealmungchi/lurecrawler/internal/lure"
	"github.com/dealmungchi/lurecrawler/internal/normalize"
)

var imakatsuSource = Source{
	Profile: lure.Profile{
		Manufacturer:     "imakatsu",
		ManufacturerSlug: "imakatsu",
		PricePolicy:      lure.PriceFirstNonzero,
		DefaultFish:      []string{"black bass"},
	},
	Hosts:                []string{"imakatsu.co.jp"},
	NeedsScriptedBrowser: true,
	NeedsVisibleBrowser:  true,
}

// ImakatsuCrawler extracts imakatsu pages. The site serves an empty shell to
// headless browsers; colors live in a select box with images keyed by value.
type ImakatsuCrawler struct {
	BaseCrawler
}

func newImakatsuCrawler(base BaseCrawler) Extractor {
	return &ImakatsuCrawler{BaseCrawler: base}
}

func (c *ImakatsuCrawler) Extract(ctx context.Context, productURL string) (*lure.Record, error) {
	doc, err := c.fetchDocument(ctx, productURL)
	if err != nil {
		return nil, err
	}

	raw := lure.Raw{
		SourceURL:   productURL,
		Name:        textOf(doc.Find("h1.product_title").First()),
		Description: htmlTextOf(doc.Find(".product_text").First()),
		MainImage:   imgSrc(doc.Find(".product_img img").First()),
		Price:       normalize.ParsePrice(textOf(doc.Find("span.price").First())),
	}
	raw.ClassifyText = strings.Join([]string{raw.Name, textOf(doc.Find("p.category")), raw.Description}, " ")

	var v lure.Variant
	doc.Find(".spec li").Each(func(_ int, li *goquery.Selection) {
		label, value, ok := strings.Cut(textOf(li), ":")
		if !ok {
			return
		}
		switch {
		case labelIs(label, "length"):
			v.Length = normalize.LengthPtr(value)
		case labelIs(label, "weight"):
			v.Weights = normalize.ParseWeights(value)
		}
	})
	raw.AddVariant(v)

	images := map[string]string{}
	doc.Find(".color_images img").Each(func(_ int, img *goquery.Selection) {
		if key, ok := img.Attr("data-color"); ok {
			images[key] = imgSrc(img)
		}
	})
	doc.Find("select#color option").Each(func(_ int, opt *goquery.Selection) {
		value, _ := opt.Attr("value")
		if value == "" {
			return
		}
		_, name := helpers.StripColorNumber(textOf(opt))
		raw.AddColor(name, images[value])
	})

	return c.assemble(raw)
}
