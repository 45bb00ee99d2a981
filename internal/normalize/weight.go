package normalize

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// GramsPerOunce is the avoirdupois ounce.
const GramsPerOunce = 28.3495

var (
	// "24oz class(約680g)": the gram figure in parentheses replaces the ounce figure
	ounceWithGrams = regexp.MustCompile(`\d+(?:\.\d+)?(?:[\s-]+\d+/\d+|/\d+)?\s*(?:oz|ounce)[^()\d]*\(\s*(?:約|approx\.?)?\s*(\d+(?:\.\d+)?)\s*(?:g|grams?)\s*\)`)
	// "7g(1/4oz)": the ounce figure in parentheses restates the gram figure
	gramsWithOunce = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:g|grams?)\s*\([^()]*(?:oz|ounce)[^()]*\)`)

	mixedOunce    = regexp.MustCompile(`(^|[^\d/.])(\d+)[\s-]+(\d+)/(\d+)\s*(?:oz|ounce)`)
	fractionOunce = regexp.MustCompile(`(\d+)/(\d+)\s*(?:oz|ounce)`)
	decimalOunce  = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:oz|ounce)`)
	grams         = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:g|grams?)\b`)
)

// ParseWeights returns every weight mentioned in text, in grams, rounded to
// one decimal, deduplicated and ascending.
func ParseWeights(text string) []float64 {
	text = strings.ToLower(Fold(text))
	text = ounceWithGrams.ReplaceAllString(text, " ${1}g ")
	text = gramsWithOunce.ReplaceAllString(text, " ${1}g ")

	var values []float64

	text = mixedOunce.ReplaceAllStringFunc(text, func(m string) string {
		sub := mixedOunce.FindStringSubmatch(m)
		whole, _ := strconv.ParseFloat(sub[2], 64)
		if frac, ok := fraction(sub[3], sub[4]); ok {
			values = append(values, (whole+frac)*GramsPerOunce)
		}
		return sub[1] + " "
	})
	text = fractionOunce.ReplaceAllStringFunc(text, func(m string) string {
		sub := fractionOunce.FindStringSubmatch(m)
		if frac, ok := fraction(sub[1], sub[2]); ok {
			values = append(values, frac*GramsPerOunce)
		}
		return " "
	})
	text = decimalOunce.ReplaceAllStringFunc(text, func(m string) string {
		sub := decimalOunce.FindStringSubmatch(m)
		if v, err := strconv.ParseFloat(sub[1], 64); err == nil {
			values = append(values, v*GramsPerOunce)
		}
		return " "
	})
	for _, m := range grams.FindAllStringSubmatch(text, -1) {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			values = append(values, v)
		}
	}

	return NormalizeWeights(values)
}

// NormalizeWeights rounds to one decimal, drops non-positive values and
// duplicates and sorts ascending. The result is never nil.
func NormalizeWeights(values []float64) []float64 {
	seen := make(map[int64]bool, len(values))
	out := make([]float64, 0, len(values))
	for _, v := range values {
		key := int64(math.Round(v * 10))
		if key <= 0 || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, float64(key)/10)
	}
	sort.Float64s(out)
	return out
}

func fraction(num, den string) (float64, bool) {
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0, false
	}
	return n / d, true
}
