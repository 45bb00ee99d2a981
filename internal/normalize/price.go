package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

const yenNumber = `(\d{1,3}(?:,\d{3})+|\d+)`

var (
	// 税込 directly before or after the number
	taxIncludedBefore = regexp.MustCompile(`税込(?:み)?(?:価格|定価)?\s*[:]?\s*[¥\\]?\s*` + yenNumber)
	taxIncludedAfter  = regexp.MustCompile(yenNumber + `\s*円?\s*税込`)

	// "2,200円(税込)" / "¥2,200 (tax in)"
	taxIncludedParen = regexp.MustCompile(`(?i)` + yenNumber + `\s*円?\s*\(\s*(?:税込|tax\s*in)`)

	taxExcludedBefore = regexp.MustCompile(`(?:税別|税抜|本体価格|本体)\s*(?:価格)?\s*[:]?\s*[¥\\]?\s*` + yenNumber)
	taxExcludedAfter  = regexp.MustCompile(`(?i)` + yenNumber + `\s*円?\s*\(?\s*(?:\+\s*税|税別|税抜|\+\s*tax)`)

	bareYen = regexp.MustCompile(`[¥\\]\s*` + yenNumber + `|` + yenNumber + `\s*円`)
)

// ParsePrice resolves free price text to tax-included yen. It returns 0 when
// no amount is found.
func ParsePrice(text string) int {
	text = Fold(text)

	for _, re := range []*regexp.Regexp{taxIncludedBefore, taxIncludedAfter, taxIncludedParen} {
		if v := firstAmount(re, text); v > 0 {
			return v
		}
	}
	for _, re := range []*regexp.Regexp{taxExcludedBefore, taxExcludedAfter} {
		if v := firstAmount(re, text); v > 0 {
			return AddTax(v)
		}
	}
	return firstAmount(bareYen, text)
}

// AddTax applies the 10% consumption tax, rounding half up.
func AddTax(v int) int {
	return (v*110 + 50) / 100
}

func firstAmount(re *regexp.Regexp, text string) int {
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		for _, g := range m[1:] {
			if g == "" {
				continue
			}
			v, err := strconv.Atoi(strings.ReplaceAll(g, ",", ""))
			if err == nil && v > 0 {
				return v
			}
		}
	}
	return 0
}
