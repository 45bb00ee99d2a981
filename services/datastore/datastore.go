// Package datastore writes canonical records to the catalog table, one row
// per color and weight.
package datastore

import (
	"context"

	"github.com/dealmungchi/lurecrawler/internal/lure"
)

// Row is one (color × weight) line of the catalog table
type Row struct {
	Name             string   `json:"name"`
	NameKana         string   `json:"name_kana"`
	Slug             string   `json:"slug"`
	Manufacturer     string   `json:"manufacturer"`
	ManufacturerSlug string   `json:"manufacturer_slug"`
	Type             string   `json:"type"`
	TargetFish       []string `json:"target_fish"`
	Description      string   `json:"description"`
	Price            int      `json:"price"`
	ColorName        string   `json:"color_name"`
	ImageURL         string   `json:"image_url"`
	Weight           float64  `json:"weight"`
	Length           *int     `json:"length"`
	SourceURL        string   `json:"source_url"`
}

// Store is the catalog table
type Store interface {
	// Exists reports whether the row's (maker, slug, color, weight) key is stored
	Exists(ctx context.Context, row Row) (bool, error)

	// Insert stores rows
	Insert(ctx context.Context, rows []Row) error

	// ListBySlug returns every stored row of one product
	ListBySlug(ctx context.Context, manufacturerSlug, slug string) ([]Row, error)
}

// RowsFor expands a record into its rows. images maps a color name to the
// stored image URL; colors missing from it keep their source image.
func RowsFor(rec *lure.Record, images map[string]string) []Row {
	rows := make([]Row, 0, len(rec.Colors)*len(rec.Weights))
	for _, c := range rec.Colors {
		img, ok := images[c.Name]
		if !ok {
			img = c.ImageURL
		}
		for _, w := range rec.Weights {
			rows = append(rows, Row{
				Name:             rec.Name,
				NameKana:         rec.NameKana,
				Slug:             rec.Slug,
				Manufacturer:     rec.Manufacturer,
				ManufacturerSlug: rec.ManufacturerSlug,
				Type:             rec.Type,
				TargetFish:       rec.TargetFish,
				Description:      rec.Description,
				Price:            rec.Price,
				ColorName:        c.Name,
				ImageURL:         img,
				Weight:           w,
				Length:           rec.Length,
				SourceURL:        rec.SourceURL,
			})
		}
	}
	return rows
}
