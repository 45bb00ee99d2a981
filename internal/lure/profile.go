package lure

import "github.com/dealmungchi/lurecrawler/internal/classify"

// PricePolicy picks one price from several variant prices
type PricePolicy int

const (
	// PriceFirstNonzero takes the first nonzero price in document order
	PriceFirstNonzero PricePolicy = iota
	// PriceMin takes the lowest nonzero price; for sources whose variants are size options
	PriceMin
	// PriceMax takes the highest nonzero price
	PriceMax
)

func (p PricePolicy) String() string {
	switch p {
	case PriceMin:
		return "min"
	case PriceMax:
		return "max"
	default:
		return "first-nonzero"
	}
}

// Pick applies the policy to prices in document order. Zero means unknown and
// is never picked.
func (p PricePolicy) Pick(prices []int) int {
	picked := 0
	for _, v := range prices {
		if v <= 0 {
			continue
		}
		switch p {
		case PriceFirstNonzero:
			return v
		case PriceMin:
			if picked == 0 || v < picked {
				picked = v
			}
		case PriceMax:
			if v > picked {
				picked = v
			}
		}
	}
	return picked
}

// Profile is the per-manufacturer policy the assembler applies
type Profile struct {
	Manufacturer     string
	ManufacturerSlug string
	PricePolicy      PricePolicy

	// DefaultType is used when no type rule fires; classify.Placeholder when empty.
	DefaultType string
	DefaultFish []string

	// FishCodes maps URL category codes to species and is consulted first.
	FishCodes map[string][]string

	TypeRules []classify.Rule
	FishRules []classify.FishRule

	// SingleFinish marks makers whose products come in one finish only.
	SingleFinish bool
}

func (p Profile) typeRules() []classify.Rule {
	if p.TypeRules != nil {
		return p.TypeRules
	}
	return classify.DefaultTypeRules
}

func (p Profile) fishRules() []classify.FishRule {
	if p.FishRules != nil {
		return p.FishRules
	}
	return classify.DefaultFishRules
}
