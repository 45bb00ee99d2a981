package crawler

import (
	"context"

	"github.com/PuerkitoBio/goquery"

	"github.com/dealmungchi/lurecrawler/internal/lure"
	"github.com/dealmungchi/lurecrawler/internal/normalize"
)

var shimanoSource = Source{
	Profile: lure.Profile{
		Manufacturer:     "SHIMANO",
		ManufacturerSlug: "shimano",
		PricePolicy:      lure.PriceMin,
		FishCodes: map[string][]string{
			"bass":     {"black bass"},
			"seabass":  {"seabass"},
			"trout":    {"trout"},
			"squid":    {"squid"},
			"offshore": {"yellowtail", "amberjack"},
			"flatfish": {"flatfish"},
		},
	},
	Hosts:                []string{"fish.shimano.com"},
	NeedsScriptedBrowser: true,
}

// ShimanoCrawler extracts Shimano pages. The page is a client-rendered app:
// name, images and description come from its JSON-LD, sizes from the spec table.
type ShimanoCrawler struct {
	BaseCrawler
}

func newShimanoCrawler(base BaseCrawler) Extractor {
	return &ShimanoCrawler{BaseCrawler: base}
}

func (c *ShimanoCrawler) Extract(ctx context.Context, productURL string) (*lure.Record, error) {
	doc, err := c.fetchDocument(ctx, productURL)
	if err != nil {
		return nil, err
	}

	raw := lure.Raw{
		SourceURL:  productURL,
		Breadcrumb: crumbs(doc.Find("nav.breadcrumb")),
	}
	if ld, ok := jsonLDProduct(doc); ok {
		raw.Name = ld.Name
		raw.Description = normalize.CleanHTML(ld.Description)
		raw.MainImage = ld.FirstImage()
		raw.Price = ld.Price()
	}
	if raw.Name == "" {
		raw.Name = textOf(doc.Find("h1").First())
	}

	headers, rows := headerTable(doc.Find("table.spec").First())
	code := column(headers, "品番")
	length := column(headers, "全長")
	weight := column(headers, "重量", "自重")
	price := column(headers, "価格")
	for _, cells := range rows {
		raw.AddVariant(lure.Variant{
			Label:   cell(cells, code),
			Length:  normalize.LengthPtr(withUnit(cell(cells, length), headerAt(headers, length), "mm")),
			Weights: normalize.ParseWeights(withUnit(cell(cells, weight), headerAt(headers, weight), "g")),
			Price:   daiwaPrice(cell(cells, price), headerAt(headers, price)),
		})
	}

	doc.Find("div.color-list li").Each(func(_ int, li *goquery.Selection) {
		img := li.Find("img").First()
		name := textOf(li.Find("p").First())
		if name == "" {
			name, _ = img.Attr("alt")
		}
		raw.AddColor(name, imgSrc(img))
	})

	return c.assemble(raw)
}
