package crawler

import (
	"context"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-rod/rod"

	"github.com/dealmungchi/lurecrawler/internal/lure"
	"github.com/dealmungchi/lurecrawler/internal/normalize"
)

// megabassColorsJS reads the color data the product script builds at runtime.
// Only plain values cross back from the page.
const megabassColorsJS = `() => {
	const data = window.__PRODUCT__ && window.__PRODUCT__.colors;
	if (!Array.isArray(data)) return "[]";
	return JSON.stringify(data.map(c => ({ name: String(c.name || ""), image: String(c.image || "") })));
}`

var megabassSource = Source{
	Profile: lure.Profile{
		Manufacturer:     "Megabass",
		ManufacturerSlug: "megabass",
		PricePolicy:      lure.PriceFirstNonzero,
		DefaultFish:      []string{"black bass"},
		FishCodes: map[string][]string{
			"saltwater": {"seabass"},
			"trout":     {"trout"},
		},
	},
	Hosts:                []string{"megabass.co.jp"},
	NeedsScriptedBrowser: true,
}

type megabassColor struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// MegabassCrawler extracts Megabass pages. Colors are rendered by script, so
// the page is loaded in the browser and the color data read from the page.
type MegabassCrawler struct {
	BaseCrawler
}

func newMegabassCrawler(base BaseCrawler) Extractor {
	return &MegabassCrawler{BaseCrawler: base}
}

func (c *MegabassCrawler) Extract(ctx context.Context, productURL string) (*lure.Record, error) {
	var colors []megabassColor

	var visit func(ctx context.Context, url string) (io.Reader, error)
	if c.browser != nil {
		visit = func(ctx context.Context, url string) (io.Reader, error) {
			var html string
			err := c.browser.Visit(ctx, url, func(page *rod.Page) error {
				var err error
				if html, err = page.HTML(); err != nil {
					return err
				}
				if err := EvalJSON(page, megabassColorsJS, &colors); err != nil {
					c.log.Warn().Err(err).Str("url", url).Msg("color script failed, using swatches")
					colors = nil
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
			return strings.NewReader(html), nil
		}
	}

	body, err := c.fetchWithRetryUsing(ctx, productURL, visit)
	if err != nil {
		return nil, err
	}
	doc, err := c.createDocument(productURL, body)
	if err != nil {
		return nil, err
	}
	return c.assemble(parseMegabass(doc, productURL, colors))
}

// parseMegabass builds the raw record; scripted colors win over the static
// swatch list when present
func parseMegabass(doc *goquery.Document, productURL string, colors []megabassColor) lure.Raw {
	raw := lure.Raw{
		SourceURL:   productURL,
		Name:        textOf(doc.Find("h1.item-name").First()),
		NameKana:    textOf(doc.Find(".item-name-kana").First()),
		Description: htmlTextOf(doc.Find(".item-detail").First()),
		MainImage:   imgSrc(doc.Find(".item-main img").First()),
	}

	var v lure.Variant
	var typeText string
	for _, pair := range specPairs(doc.Find("dl.spec")) {
		switch {
		case labelIs(pair[0], "length"):
			v.Length = normalize.LengthPtr(pair[1])
		case labelIs(pair[0], "weight"):
			v.Weights = normalize.ParseWeights(pair[1])
		case labelIs(pair[0], "price"):
			v.Price = normalize.ParsePrice(pair[1])
		case labelIs(pair[0], "type"):
			typeText = pair[1]
		}
	}
	raw.AddVariant(v)
	raw.ClassifyText = strings.Join([]string{raw.Name, typeText, raw.Description}, " ")

	if len(colors) > 0 {
		for _, col := range colors {
			raw.AddColor(col.Name, col.Image)
		}
	} else {
		doc.Find("ul.color-swatches li").Each(func(_ int, li *goquery.Selection) {
			name, _ := li.Attr("data-color-name")
			img, _ := li.Attr("data-image")
			raw.AddColor(name, img)
		})
	}
	return raw
}
