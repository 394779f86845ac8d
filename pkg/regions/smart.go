package regions

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Region area bounds as fractions of total image area. Anything below is
// speckle noise, anything above is a full-page block. Boundary values are
// kept.
const (
	minRegionArea = 0.003
	maxRegionArea = 0.5
)

// Vertical gap below which a bare description and a bare price on
// adjacent lines are treated as one item.
const mergeGap = 0.05

var footerKeywords = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\btotal\b`),
	regexp.MustCompile(`(?i)\bsubtotal\b`),
	regexp.MustCompile(`(?i)\bgrand\s+total\b`),
	regexp.MustCompile(`(?i)\bthank\s+you\b`),
	regexp.MustCompile(`(?i)\bhave\s+a\s+.*\s+day\b`),
	regexp.MustCompile(`(?i)\bvisit\s+us\b`),
	regexp.MustCompile(`(?i)\bcard\s*#`),
	regexp.MustCompile(`(?i)\btender\b`),
	regexp.MustCompile(`(?i)\bchange\b`),
	regexp.MustCompile(`(?i)\bbalance\b`),
}

var taxTipPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\btax\b`),
	regexp.MustCompile(`(?i)\btip\b`),
	regexp.MustCompile(`(?i)\bgratuity\b`),
	regexp.MustCompile(`(?i)\bservice\s+charge\b`),
	regexp.MustCompile(`(?i)\bdelivery\s+fee\b`),
}

var quantityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\d+\s?x\b`),
	regexp.MustCompile(`^\d+\s+[A-Za-z]`),
	regexp.MustCompile(`(?i)@\s?\$?\d+\.\d{2}`),
}

// DetectSmartRegions runs the full heuristic pipeline over a structured
// annotation: header/footer boundary detection, item and tax/tip
// classification, and multi-line item merging. The returned list holds
// merged item regions first, tax/tip regions after them.
func DetectSmartRegions(ann *Annotation) ([]TextRegion, error) {
	if ann == nil || ann.Structured == nil {
		return nil, fmt.Errorf("%w: missing structured annotation", ErrInvalidInput)
	}

	paragraphs, err := extractStructured(ann.Structured)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(paragraphs, func(i, j int) bool {
		return paragraphs[i].Box.CenterY() < paragraphs[j].Box.CenterY()
	})

	headerEnd := detectHeaderBoundary(paragraphs)
	footerStart := detectFooterBoundary(paragraphs)

	var items, taxTip []TextRegion
	for _, region := range paragraphs {
		centerY := region.Box.CenterY()
		if centerY < headerEnd || centerY > footerStart {
			continue
		}

		area := region.Box.Area()
		if area < minRegionArea || area > maxRegionArea {
			continue
		}

		if utf8.RuneCountInString(strings.TrimSpace(region.Text)) <= 1 {
			continue
		}

		if isTaxTipLine(region.Text) {
			taxTip = append(taxTip, region)
			continue
		}

		if region.HasPricePattern() || isLikelyItemLine(region.Text) {
			items = append(items, region)
		}
	}

	grouped := groupMultilineItems(items)
	return append(grouped, taxTip...), nil
}

// detectHeaderBoundary estimates where the header (store name, address,
// phone) ends. The first price on the receipt marks the start of the
// items; the header ends at the bottom of the region just above it.
// Capped at 0.25 so a receipt whose items start immediately is not
// discarded wholesale.
func detectHeaderBoundary(sorted []TextRegion) float64 {
	boundary := 0.15

	for i, region := range sorted {
		if region.HasPricePattern() {
			if i > 0 {
				boundary = sorted[i-1].Box.YMax
			} else {
				boundary = region.Box.YMin
			}
			break
		}
	}

	return min(boundary, 0.25)
}

// detectFooterBoundary estimates where the footer (totals, payment info,
// thank-you banners) begins, scanning bottom-up for the first keyword
// match. Floored at 0.75 to avoid swallowing the bottom of the item list.
func detectFooterBoundary(sorted []TextRegion) float64 {
	for i := len(sorted) - 1; i >= 0; i-- {
		for _, keyword := range footerKeywords {
			if keyword.MatchString(sorted[i].Text) {
				return max(sorted[i].Box.YMin, 0.75)
			}
		}
	}
	return 0.85
}

func isTaxTipLine(text string) bool {
	for _, p := range taxTipPatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// isLikelyItemLine reports whether text looks like an item description
// even without a visible price: it carries a quantity cue, or it has a
// reasonable length and is mostly letters.
func isLikelyItemLine(text string) bool {
	for _, p := range quantityPatterns {
		if p.MatchString(text) {
			return true
		}
	}

	length := utf8.RuneCountInString(strings.TrimSpace(text))
	if length < 3 || length > 50 {
		return false
	}

	letters := 0
	total := 0
	for _, r := range text {
		if r == ' ' {
			continue
		}
		total++
		if unicode.IsLetter(r) {
			letters++
		}
	}

	return total > 0 && float64(letters)/float64(total) > 0.4
}

// groupMultilineItems merges item descriptions split across two lines,
// e.g. the dish name on one line and its price on the next. A single
// greedy left-to-right pass: adjacent regions closer than mergeGap merge
// when exactly one of the pair has a price. Merging never mutates the
// inputs.
func groupMultilineItems(items []TextRegion) []TextRegion {
	if len(items) < 2 {
		return items
	}

	grouped := make([]TextRegion, 0, len(items))
	skipNext := false

	for i, current := range items {
		if skipNext {
			skipNext = false
			continue
		}

		if i < len(items)-1 {
			next := items[i+1]
			gap := next.Box.YMin - current.Box.YMax
			if gap < mergeGap && current.HasPricePattern() != next.HasPricePattern() {
				grouped = append(grouped, TextRegion{
					Text:       current.Text + " " + next.Text,
					Box:        current.Box.Union(next.Box),
					Confidence: (current.Confidence + next.Confidence) / 2,
				})
				skipNext = true
				continue
			}
		}

		grouped = append(grouped, current)
	}

	return grouped
}
