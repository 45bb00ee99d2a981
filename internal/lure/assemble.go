package lure

import (
	"net/url"
	"strings"

	"github.com/dealmungchi/lurecrawler/internal/classify"
	"github.com/dealmungchi/lurecrawler/internal/normalize"
	"github.com/dealmungchi/lurecrawler/pkg/errors"
)

// Assemble merges what an extractor found into one canonical Record. A
// missing name or an undeterminable slug is a validation error; every other
// gap degrades to its default.
func Assemble(raw Raw, p Profile) (*Record, error) {
	name := normalize.Text(raw.Name)
	if name == "" {
		return nil, errors.NewValidation(p.ManufacturerSlug, raw.SourceURL, "product name not found")
	}

	slug := raw.Slug
	if slug == "" {
		slug = normalize.Slug(raw.SourceURL, name)
	}
	if slug == "" {
		return nil, errors.NewValidation(p.ManufacturerSlug, raw.SourceURL, "cannot determine slug")
	}

	rec := &Record{
		Name:             name,
		NameKana:         normalize.Text(raw.NameKana),
		Slug:             slug,
		Manufacturer:     p.Manufacturer,
		ManufacturerSlug: p.ManufacturerSlug,
		Description:      normalize.Truncate(normalize.CollapseSpace(raw.Description), MaxDescription),
		SourceURL:        raw.SourceURL,
	}
	if rec.NameKana == "" {
		rec.NameKana = name
	}

	var weights []float64
	prices := []int{}
	for _, v := range raw.Variants {
		weights = append(weights, v.Weights...)
		if rec.Length == nil && v.Length != nil {
			l := *v.Length
			rec.Length = &l
		}
		prices = append(prices, v.Price)
	}
	rec.Weights = normalize.NormalizeWeights(weights)
	rec.Price = p.PricePolicy.Pick(prices)
	if rec.Price == 0 {
		rec.Price = raw.Price
	}

	rec.Colors = mergeColors(raw.Colors, raw.SourceURL)

	rec.MainImage = normalize.AbsURL(raw.SourceURL, raw.MainImage)
	if rec.MainImage == "" {
		for _, c := range rec.Colors {
			if c.ImageURL != "" {
				rec.MainImage = c.ImageURL
				break
			}
		}
	}
	if len(rec.Colors) == 0 && p.SingleFinish && rec.MainImage != "" {
		rec.Colors = []Color{{Name: DefaultColorName, ImageURL: rec.MainImage}}
	}

	text := raw.ClassifyText
	if text == "" {
		text = strings.Join([]string{name, raw.Breadcrumb, urlPath(raw.SourceURL), rec.Description}, " ")
	}
	rec.Type = classify.Type(text, p.typeRules(), p.DefaultType)

	rec.TargetFish = classify.FishFromURL(raw.SourceURL, p.FishCodes)
	if rec.TargetFish == nil {
		rec.TargetFish = classify.TargetFish(text, p.fishRules(), p.DefaultFish)
	}

	return rec, nil
}

// mergeColors dedupes by normalized name keeping document order. The first
// sighting's image wins; a later duplicate only fills an empty image.
func mergeColors(colors []Color, base string) []Color {
	out := make([]Color, 0, len(colors))
	index := make(map[string]int, len(colors))
	for _, c := range colors {
		name := normalize.Text(c.Name)
		if name == "" {
			continue
		}
		img := normalize.AbsURL(base, c.ImageURL)
		key := normalize.ColorKey(name)
		if i, ok := index[key]; ok {
			if out[i].ImageURL == "" {
				out[i].ImageURL = img
			}
			continue
		}
		index[key] = len(out)
		out = append(out, Color{Name: name, ImageURL: img})
	}
	return out
}

func urlPath(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.ReplaceAll(u.Path, "-", " ")
}
