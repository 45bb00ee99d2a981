package crawler

import (
	"context"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dealmungchi/lurecrawler/helpers"
	"github.com/dealmungchi/lurecrawler/internal/lure"
	"github.com/dealmungchi/lurecrawler/internal/normalize"
)

var bassdaySource = Source{
	Profile: lure.Profile{
		Manufacturer:     "Bassday",
		ManufacturerSlug: "bassday",
		PricePolicy:      lure.PriceFirstNonzero,
		DefaultFish:      []string{"trout"},
		FishCodes: map[string][]string{
			"trout": {"trout"},
			"salt":  {"seabass"},
			"bass":  {"black bass"},
		},
	},
	Hosts: []string{"bassday.co.jp"},
}

// bassdayLabel finds the labels of the run-on spec text
// ("SIZE:70mm WEIGHT:6g TYPE:...")
var bassdayLabel = regexp.MustCompile(`(SIZE|LENGTH|WEIGHT|TYPE|PRICE)\s*:`)

// BassdayCrawler extracts Bassday pages
type BassdayCrawler struct {
	BaseCrawler
}

func newBassdayCrawler(base BaseCrawler) Extractor {
	return &BassdayCrawler{BaseCrawler: base}
}

func (c *BassdayCrawler) Extract(ctx context.Context, productURL string) (*lure.Record, error) {
	doc, err := c.fetchDocument(ctx, productURL)
	if err != nil {
		return nil, err
	}

	raw := lure.Raw{
		SourceURL:   productURL,
		Name:        textOf(doc.Find("h1.product-name").First()),
		Description: htmlTextOf(doc.Find(".product-lead").First()),
		MainImage:   imgSrc(doc.Find(".product-image img").First()),
	}

	var v lure.Variant
	for _, f := range bassdayFields(textOf(doc.Find("div.spec"))) {
		field, value := f[0], f[1]
		switch field {
		case "SIZE", "LENGTH":
			if v.Length == nil {
				v.Length = normalize.LengthPtr(value)
			}
		case "WEIGHT":
			v.Weights = normalize.ParseWeights(value)
		case "PRICE":
			v.Price = normalize.ParsePrice(value)
		}
	}
	raw.AddVariant(v)

	doc.Find(".gallery figure").Each(func(_ int, fig *goquery.Selection) {
		_, name := helpers.StripColorNumber(textOf(fig.Find("figcaption")))
		raw.AddColor(name, imgSrc(fig.Find("img").First()))
	})

	return c.assemble(raw)
}

// bassdayFields pairs each label of the spec text with the text up to the
// next label, in document order
func bassdayFields(text string) [][2]string {
	var fields [][2]string
	locs := bassdayLabel.FindAllStringSubmatchIndex(text, -1)
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		fields = append(fields, [2]string{text[loc[2]:loc[3]], strings.TrimSpace(text[loc[1]:end])})
	}
	return fields
}
