package crawler

import (
	"context"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"github.com/dealmungchi/lurecrawler/internal/normalize"
	scrapeerrors "github.com/dealmungchi/lurecrawler/pkg/errors"
)

// fetchNode fetches url and parses it for XPath queries
func (c *BaseCrawler) fetchNode(ctx context.Context, url string) (*html.Node, error) {
	body, err := c.fetchWithRetry(ctx, url)
	if err != nil {
		return nil, err
	}
	doc, err := htmlquery.Parse(body)
	if err != nil {
		return nil, scrapeerrors.NewParsing(c.source.ManufacturerSlug, url, "HTML parse error", err)
	}
	return doc, nil
}

// xText returns the folded text of the first node matching expr
func xText(top *html.Node, expr string) string {
	n := htmlquery.FindOne(top, expr)
	if n == nil {
		return ""
	}
	return normalize.Text(htmlquery.InnerText(n))
}

// xLines returns the cleaned text of the first node matching expr with its
// line breaks kept
func xLines(top *html.Node, expr string) string {
	n := htmlquery.FindOne(top, expr)
	if n == nil {
		return ""
	}
	return normalize.Fold(normalize.CleanHTML(htmlquery.OutputHTML(n, false)))
}

// xImg returns the image URL of the first <img> matching expr
func xImg(top *html.Node, expr string) string {
	n := htmlquery.FindOne(top, expr)
	if n == nil {
		return ""
	}
	for _, attr := range []string{"data-src", "data-original", "src"} {
		if v := strings.TrimSpace(htmlquery.SelectAttr(n, attr)); v != "" && !strings.HasPrefix(v, "data:") {
			return v
		}
	}
	return ""
}
