// Package lure holds the canonical catalog record and the assembler that
// builds it from per-source extraction results.
package lure

// MaxDescription is the rune limit for Record.Description.
const MaxDescription = 500

// DefaultColorName names the synthesized color of single-finish products.
const DefaultColorName = "default"

// Color is one named finish of a lure
type Color struct {
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

// Record is the canonical lure product record
type Record struct {
	Name             string    `json:"name"`
	NameKana         string    `json:"nameKana"`
	Slug             string    `json:"slug"`
	Manufacturer     string    `json:"manufacturer"`
	ManufacturerSlug string    `json:"manufacturerSlug"`
	Type             string    `json:"type"`
	TargetFish       []string  `json:"targetFish"`
	Description      string    `json:"description"`
	Price            int       `json:"price"`
	Colors           []Color   `json:"colors"`
	Weights          []float64 `json:"weights"`
	Length           *int      `json:"length"`
	MainImage        string    `json:"mainImage"`
	SourceURL        string    `json:"sourceUrl"`
}

// Variant is one weight/length/price combination listed on a product page
type Variant struct {
	Label   string
	Weights []float64
	Length  *int
	Price   int
}

// Raw is what an extractor found on one page, before normalization into a Record.
type Raw struct {
	SourceURL   string
	Name        string
	NameKana    string
	Slug        string
	Description string
	Breadcrumb  string
	MainImage   string

	// ClassifyText overrides the text the type and fish rules run on.
	ClassifyText string

	Variants []Variant
	Colors   []Color

	// Price seen outside any variant, e.g. a single price line above the spec table.
	Price int
}

// AddVariant appends a variant, ignoring ones that carry nothing.
func (r *Raw) AddVariant(v Variant) {
	if len(v.Weights) == 0 && v.Length == nil && v.Price == 0 {
		return
	}
	r.Variants = append(r.Variants, v)
}

// AddColor appends a color, ignoring blank names.
func (r *Raw) AddColor(name, imageURL string) {
	if name == "" {
		return
	}
	r.Colors = append(r.Colors, Color{Name: name, ImageURL: imageURL})
}
