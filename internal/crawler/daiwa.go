package crawler

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dealmungchi/lurecrawler/internal/lure"
	"github.com/dealmungchi/lurecrawler/internal/normalize"
)

var daiwaSource = Source{
	Profile: lure.Profile{
		Manufacturer:     "DAIWA",
		ManufacturerSlug: "daiwa",
		PricePolicy:      lure.PriceMin,
		FishCodes: map[string][]string{
			"bass_le":  {"black bass"},
			"salt_le":  {"seabass"},
			"trout_le": {"trout"},
			"ika_le":   {"squid"},
			"aomono":   {"yellowtail", "amberjack"},
		},
	},
	Hosts: []string{"daiwa.com"},
}

// DaiwaCrawler extracts Daiwa pages. The spec table lists one SKU per row,
// colors included, and puts units in the column headers.
type DaiwaCrawler struct {
	BaseCrawler
}

func newDaiwaCrawler(base BaseCrawler) Extractor {
	return &DaiwaCrawler{BaseCrawler: base}
}

func (c *DaiwaCrawler) Extract(ctx context.Context, productURL string) (*lure.Record, error) {
	doc, err := c.fetchDocument(ctx, productURL)
	if err != nil {
		return nil, err
	}

	raw := lure.Raw{
		SourceURL:   productURL,
		Name:        textOf(doc.Find("h1.product-name").First()),
		Breadcrumb:  crumbs(doc.Find(".breadcrumb")),
		Description: htmlTextOf(doc.Find(".product-lead").First()),
		MainImage:   imgSrc(doc.Find(".product-main-image img").First()),
	}

	headers, rows := headerTable(doc.Find("table.spec-table").First())
	colorCol := column(headers, "カラー")
	lengthCol := column(headers, "全長")
	weightCol := column(headers, "自重", "重量")
	priceCol := column(headers, "価格")

	for _, cells := range rows {
		raw.AddVariant(lure.Variant{
			Label:   cell(cells, 0),
			Length:  normalize.LengthPtr(withUnit(cell(cells, lengthCol), headerAt(headers, lengthCol), "mm")),
			Weights: normalize.ParseWeights(withUnit(cell(cells, weightCol), headerAt(headers, weightCol), "g")),
			Price:   daiwaPrice(cell(cells, priceCol), headerAt(headers, priceCol)),
		})
		raw.AddColor(cell(cells, colorCol), "")
	}

	// the gallery carries the images for the names listed in the table
	doc.Find(".color-gallery img").Each(func(_ int, img *goquery.Selection) {
		name, _ := img.Attr("alt")
		raw.AddColor(normalize.Text(name), imgSrc(img))
	})

	return c.assemble(raw)
}

func headerAt(headers []string, i int) string {
	if i < 0 || i >= len(headers) {
		return ""
	}
	return headers[i]
}

// withUnit appends the header's unit to a bare number cell
func withUnit(value, header, unit string) string {
	if value == "" || value == "-" {
		return ""
	}
	if strings.Contains(strings.ToLower(header), "("+unit+")") && !strings.Contains(strings.ToLower(value), unit) {
		return value + unit
	}
	return value
}

func daiwaPrice(value, header string) int {
	if value == "" || value == "-" || strings.Contains(value, "オープン") {
		return 0
	}
	if strings.Contains(header, "本体") || strings.Contains(header, "税別") || strings.Contains(header, "税抜") {
		return normalize.ParsePrice("本体価格" + value)
	}
	if strings.Contains(header, "税込") {
		return normalize.ParsePrice(value + "円(税込)")
	}
	return normalize.ParsePrice(value + "円")
}
