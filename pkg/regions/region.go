package regions

import (
	"regexp"
)

// TextRegion is a detected text region with its normalized geometry and
// recognition confidence. Regions are immutable once produced; merging
// two regions creates a new one.
type TextRegion struct {
	Text       string      `json:"text"`         // Recognized text
	Box        BoundingBox `json:"bounding_box"` // Normalized bounding box
	Confidence float64     `json:"confidence"`   // Recognition confidence in [0,1]
}

// Price-like text, in decreasing order of specificity: "$12.99",
// "12.99 USD", and a bare two-decimal number. The bare form must not
// touch other digits on either side, so "112.99" inside a longer digit
// run or "12.999" never count. RE2 has no lookarounds; matching an
// explicit non-digit (or string edge) on both sides accepts the same set.
var pricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$\s?\d+\.\d{2}`),
	regexp.MustCompile(`\d+\.\d{2}\s?(?:USD|usd)`),
	regexp.MustCompile(`(?:^|\D)\d+\.\d{2}(?:$|\D)`),
}

// HasPricePattern reports whether the region's text contains a monetary
// amount.
func (r TextRegion) HasPricePattern() bool {
	for _, p := range pricePatterns {
		if p.MatchString(r.Text) {
			return true
		}
	}
	return false
}
