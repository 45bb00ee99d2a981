// Package classify maps product text to a lure type and target species using
// ordered rule lists. The first matching rule wins, so more specific phrases
// must be listed before the generic words they contain.
package classify

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/dealmungchi/lurecrawler/internal/normalize"
)

// Placeholder is the type given when no rule fires and the source has no default.
const Placeholder = "other"

// Rule maps a pattern to a lure type
type Rule struct {
	Pattern *regexp.Regexp
	Type    string
}

// FishRule maps a pattern to one or more target species
type FishRule struct {
	Pattern *regexp.Regexp
	Species []string
}

func rule(pattern, lureType string) Rule {
	return Rule{Pattern: regexp.MustCompile(`(?i)` + pattern), Type: lureType}
}

func fish(pattern string, species ...string) FishRule {
	return FishRule{Pattern: regexp.MustCompile(`(?i)` + pattern), Species: species}
}

// Type returns the first rule's type whose pattern matches text, or fallback
// (Placeholder when fallback is empty).
func Type(text string, rules []Rule, fallback string) string {
	text = normalize.Fold(text)
	for _, r := range rules {
		if r.Pattern.MatchString(text) {
			return r.Type
		}
	}
	if fallback == "" {
		return Placeholder
	}
	return fallback
}

// TargetFish returns the species of the first matching rule, or a copy of
// fallback. The result is never nil.
func TargetFish(text string, rules []FishRule, fallback []string) []string {
	text = normalize.Fold(text)
	for _, r := range rules {
		if r.Pattern.MatchString(text) {
			return append([]string{}, r.Species...)
		}
	}
	return append([]string{}, fallback...)
}

// FishFromURL looks up the category codes a site puts in its URL paths or
// query strings (/products/salt/..., ?cat=sw). Path segments are tried in
// order, then query values. It returns nil when no code is known.
func FishFromURL(rawURL string, codes map[string][]string) []string {
	if len(codes) == 0 {
		return nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}
	for _, seg := range strings.Split(u.Path, "/") {
		if species, ok := codes[strings.ToLower(seg)]; ok {
			return append([]string{}, species...)
		}
	}
	for _, values := range u.Query() {
		for _, v := range values {
			if species, ok := codes[strings.ToLower(v)]; ok {
				return append([]string{}, species...)
			}
		}
	}
	return nil
}
