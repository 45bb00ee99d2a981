package crawler

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dealmungchi/lurecrawler/helpers"
	"github.com/dealmungchi/lurecrawler/internal/lure"
	"github.com/dealmungchi/lurecrawler/internal/normalize"
)

var tackleHouseSource = Source{
	Profile: lure.Profile{
		Manufacturer:     "TACKLE HOUSE",
		ManufacturerSlug: "tacklehouse",
		PricePolicy:      lure.PriceMax,
		DefaultType:      "minnow",
		DefaultFish:      []string{"seabass"},
	},
	Hosts: []string{"tacklehouse.co.jp"},
}

// TackleHouseCrawler extracts TACKLE HOUSE pages: Shift_JIS tables, bare
// number prices with a page-level note saying whether they include tax
type TackleHouseCrawler struct {
	BaseCrawler
}

func newTackleHouseCrawler(base BaseCrawler) Extractor {
	return &TackleHouseCrawler{BaseCrawler: base}
}

func (c *TackleHouseCrawler) Extract(ctx context.Context, productURL string) (*lure.Record, error) {
	doc, err := c.fetchDocument(ctx, productURL)
	if err != nil {
		return nil, err
	}

	raw := lure.Raw{
		SourceURL:   productURL,
		Name:        textOf(doc.Find("td.title").First()),
		Description: htmlTextOf(doc.Find("td.comment").First()),
		MainImage:   imgSrc(doc.Find("img.photo").First()),
	}

	taxExcluded := strings.Contains(textOf(doc.Find(".price_note")), "本体価格")
	headers, rows := headerTable(doc.Find(`table[summary="spec"]`).First())
	model := column(headers, "model")
	length := column(headers, "length")
	weight := column(headers, "weight")
	price := column(headers, "price")
	for _, cells := range rows {
		v := lure.Variant{
			Label:   cell(cells, model),
			Length:  normalize.LengthPtr(cell(cells, length)),
			Weights: normalize.ParseWeights(cell(cells, weight)),
		}
		if amount := cell(cells, price); amount != "" {
			if taxExcluded {
				v.Price = normalize.ParsePrice("本体価格" + amount)
			} else {
				v.Price = normalize.ParsePrice(amount + "円")
			}
		}
		raw.AddVariant(v)
	}

	doc.Find(`table[summary="color"] td`).Each(func(_ int, td *goquery.Selection) {
		_, name := helpers.StripColorNumber(textOf(td))
		raw.AddColor(name, imgSrc(td.Find("img").First()))
	})

	return c.assemble(raw)
}
