package crawler

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dealmungchi/lurecrawler/internal/normalize"
)

// textOf returns the folded single-line text of a selection
func textOf(s *goquery.Selection) string {
	return normalize.Text(s.Text())
}

// htmlTextOf returns the cleaned multi-line text of a selection, keeping <br> breaks
func htmlTextOf(s *goquery.Selection) string {
	html, err := s.Html()
	if err != nil {
		return textOf(s)
	}
	return normalize.Fold(normalize.CleanHTML(html))
}

// crumbs joins the items of a breadcrumb trail
func crumbs(s *goquery.Selection) string {
	items := s.Find("li")
	if items.Length() == 0 {
		items = s.Find("a")
	}
	var parts []string
	items.Each(func(_ int, item *goquery.Selection) {
		if t := textOf(item); t != "" {
			parts = append(parts, t)
		}
	})
	return strings.Join(parts, " > ")
}

// imgSrc returns the real image URL of an <img>, preferring lazy-load attributes
func imgSrc(s *goquery.Selection) string {
	for _, attr := range []string{"data-src", "data-lazy-src", "data-original", "src"} {
		if v, ok := s.Attr(attr); ok && strings.TrimSpace(v) != "" && !strings.HasPrefix(v, "data:") {
			return strings.TrimSpace(v)
		}
	}
	if srcset, ok := s.Attr("srcset"); ok {
		if fields := strings.Fields(strings.Split(srcset, ",")[0]); len(fields) > 0 {
			return fields[0]
		}
	}
	return ""
}

// metaContent returns the content of <meta property=name> or <meta name=name>
func metaContent(doc *goquery.Document, name string) string {
	sel := doc.Find(`meta[property="` + name + `"], meta[name="` + name + `"]`).First()
	v, _ := sel.Attr("content")
	return strings.TrimSpace(v)
}

// specPairs returns the label/value pairs of a spec block laid out as
// two-cell rows or as a definition list
func specPairs(s *goquery.Selection) [][2]string {
	var pairs [][2]string
	s.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("th, td")
		if cells.Length() < 2 {
			return
		}
		pairs = append(pairs, [2]string{textOf(cells.Eq(0)), textOf(cells.Eq(1))})
	})
	s.Find("dt").Each(func(_ int, dt *goquery.Selection) {
		pairs = append(pairs, [2]string{textOf(dt), textOf(dt.NextFiltered("dd"))})
	})
	return pairs
}

// headerTable splits a table whose first row holds column headers into the
// header labels and the cells of every following row
func headerTable(table *goquery.Selection) ([]string, []*goquery.Selection) {
	var headers []string
	var rows []*goquery.Selection
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		if headers == nil && row.Find("th").Length() > 0 && row.Find("td").Length() == 0 {
			row.Find("th").Each(func(_ int, th *goquery.Selection) {
				headers = append(headers, textOf(th))
			})
			return
		}
		if cells := row.Find("td, th"); cells.Length() > 0 {
			rows = append(rows, cells)
		}
	})
	return headers, rows
}

// column returns the index of the first header containing any keyword, or -1
func column(headers []string, keywords ...string) int {
	for i, h := range headers {
		h = strings.ToLower(h)
		for _, k := range keywords {
			if strings.Contains(h, strings.ToLower(k)) {
				return i
			}
		}
	}
	return -1
}

// cell returns the text of cells[i], "" when i is out of range
func cell(cells *goquery.Selection, i int) string {
	if i < 0 || i >= cells.Length() {
		return ""
	}
	return textOf(cells.Eq(i))
}

// labelIs reports whether a spec label names one of the given fields
func labelIs(label string, names ...string) bool {
	label = strings.ToLower(label)
	for _, n := range names {
		if strings.Contains(label, strings.ToLower(n)) {
			return true
		}
	}
	return false
}

// productLD is the subset of a schema.org Product we read
type productLD struct {
	Type        any             `json:"@type"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Image       json.RawMessage `json:"image"`
	Offers      json.RawMessage `json:"offers"`
}

type offerLD struct {
	Price    json.Number `json:"price"`
	LowPrice json.Number `json:"lowPrice"`
}

// jsonLDProduct returns the first schema.org Product embedded in the page
func jsonLDProduct(doc *goquery.Document) (productLD, bool) {
	var found productLD
	ok := false
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		raw := strings.TrimSpace(s.Text())
		var candidates []productLD
		if strings.HasPrefix(raw, "[") {
			json.Unmarshal([]byte(raw), &candidates)
		} else {
			var single productLD
			if json.Unmarshal([]byte(raw), &single) == nil {
				candidates = append(candidates, single)
			}
		}
		for _, p := range candidates {
			if isProductType(p.Type) && p.Name != "" {
				found, ok = p, true
				return false
			}
		}
		return true
	})
	return found, ok
}

func isProductType(t any) bool {
	switch v := t.(type) {
	case string:
		return v == "Product"
	case []any:
		for _, x := range v {
			if s, _ := x.(string); s == "Product" {
				return true
			}
		}
	}
	return false
}

// FirstImage returns the first image URL of the product
func (p productLD) FirstImage() string {
	var single string
	if json.Unmarshal(p.Image, &single) == nil {
		return single
	}
	var list []string
	if json.Unmarshal(p.Image, &list) == nil && len(list) > 0 {
		return list[0]
	}
	return ""
}

// Price returns the offer price in yen, 0 when absent
func (p productLD) Price() int {
	var offers []offerLD
	var single offerLD
	if json.Unmarshal(p.Offers, &single) == nil {
		offers = []offerLD{single}
	} else {
		json.Unmarshal(p.Offers, &offers)
	}
	for _, o := range offers {
		for _, n := range []json.Number{o.Price, o.LowPrice} {
			if v, err := n.Float64(); err == nil && v > 0 {
				return int(v + 0.5)
			}
		}
	}
	return 0
}
