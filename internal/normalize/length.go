package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// MaxLengthMM bounds plausible lure lengths; anything larger is parse noise.
const MaxLengthMM = 5000

var (
	millimeters = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*mm`)
	centimeters = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*cm`)
	inches      = regexp.MustCompile(`(\d+(?:\.\d+)?)(?:[\s-]+(\d+)/(\d+))?\s*(?:inch(?:es)?|"|”|″|インチ)`)
)

// ParseLength returns the first plausible length in text, in millimeters.
// mm beats cm beats inches.
func ParseLength(text string) (int, bool) {
	text = strings.ToLower(Fold(text))

	if v, ok := firstLength(millimeters, text, 1); ok {
		return v, true
	}
	if v, ok := firstLength(centimeters, text, 10); ok {
		return v, true
	}
	for _, m := range inches.FindAllStringSubmatch(text, -1) {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		if m[2] != "" {
			if frac, ok := fraction(m[2], m[3]); ok {
				v += frac
			}
		}
		if mm, ok := saneLength(v * 25.4); ok {
			return mm, true
		}
	}
	return 0, false
}

// LengthPtr is ParseLength for record fields, nil when absent.
func LengthPtr(text string) *int {
	if v, ok := ParseLength(text); ok {
		return &v
	}
	return nil
}

func firstLength(re *regexp.Regexp, text string, scale float64) (int, bool) {
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		if mm, ok := saneLength(v * scale); ok {
			return mm, true
		}
	}
	return 0, false
}

func saneLength(mm float64) (int, bool) {
	v := int(math.Round(mm))
	if v <= 0 || v > MaxLengthMM {
		return 0, false
	}
	return v, true
}
