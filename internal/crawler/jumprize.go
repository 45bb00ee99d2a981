package crawler

import (
	"context"

	"github.com/PuerkitoBio/goquery"

	"github.com/dealmungchi/lurecrawler/helpers"
	"github.com/dealmungchi/lurecrawler/internal/lure"
	"github.com/dealmungchi/lurecrawler/internal/normalize"
)

var jumprizeSource = Source{
	Profile: lure.Profile{
		Manufacturer:     "JUMPRIZE",
		ManufacturerSlug: "jumprize",
		PricePolicy:      lure.PriceFirstNonzero,
		DefaultFish:      []string{"seabass"},
	},
	Hosts: []string{"jumprize.com"},
}

// JumprizeCrawler extracts JUMPRIZE pages, a WordPress block-editor layout
type JumprizeCrawler struct {
	BaseCrawler
}

func newJumprizeCrawler(base BaseCrawler) Extractor {
	return &JumprizeCrawler{BaseCrawler: base}
}

func (c *JumprizeCrawler) Extract(ctx context.Context, productURL string) (*lure.Record, error) {
	doc, err := c.fetchDocument(ctx, productURL)
	if err != nil {
		return nil, err
	}

	content := doc.Find(".entry-content").First()
	raw := lure.Raw{
		SourceURL: productURL,
		Name:      textOf(doc.Find("h1.entry-title").First()),
		MainImage: helpers.FirstNonEmpty(
			imgSrc(content.Find("figure.wp-block-image.main img").First()),
			metaContent(doc, "og:image"),
		),
	}
	content.ChildrenFiltered("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		raw.Description = htmlTextOf(p)
		return raw.Description == ""
	})

	var v lure.Variant
	for _, pair := range specPairs(content.Find("table").First()) {
		switch {
		case labelIs(pair[0], "全長", "サイズ"):
			v.Length = normalize.LengthPtr(pair[1])
		case labelIs(pair[0], "重量", "ウエイト"):
			v.Weights = normalize.ParseWeights(pair[1])
		case labelIs(pair[0], "価格"):
			v.Price = normalize.ParsePrice(pair[1])
		}
	}
	raw.AddVariant(v)

	content.Find("figure.wp-block-gallery figure").Each(func(_ int, fig *goquery.Selection) {
		_, name := helpers.StripColorNumber(textOf(fig.Find("figcaption")))
		raw.AddColor(name, imgSrc(fig.Find("img").First()))
	})

	return c.assemble(raw)
}
