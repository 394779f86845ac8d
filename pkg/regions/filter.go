package regions

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// Regions thinner than this are horizontal rules and separator lines.
const minRegionHeight = 0.008

// The filter pass re-derives its own boundaries with a shorter keyword
// list and looser caps than the smart pipeline.
var filterFooterKeywords = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\btotal\b`),
	regexp.MustCompile(`(?i)\bsubtotal\b`),
	regexp.MustCompile(`(?i)\bgrand\s+total\b`),
	regexp.MustCompile(`(?i)\bthank\s+you\b`),
	regexp.MustCompile(`(?i)\bhave\s+a\s+.*\s+day\b`),
	regexp.MustCompile(`(?i)\bcard\s*#`),
	regexp.MustCompile(`(?i)\btender\b`),
	regexp.MustCompile(`(?i)\bbalance\b`),
}

// Business-info noise that survives position-based filtering: phone
// numbers, URLs, street addresses.
var headerNoisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{3}[-.:]\d{3}[-.:]\d{4}`),
	regexp.MustCompile(`(?i)www\.|\.com|\.net`),
	regexp.MustCompile(`^\d+\s+[A-Z][a-z]+\s+St`),
}

var footerNoisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)thank\s+you`),
	regexp.MustCompile(`(?i)please\s+come\s+again`),
	regexp.MustCompile(`(?i)visit\s+us`),
}

// FilterItemRegions applies a self-contained heuristic pass over a raw
// region list: header/footer band exclusion, area and height bounds, and
// regex rejection of business-info and courtesy-phrase noise. It is used
// on extractor output whenever the smart classifier was bypassed. Unlike
// the smart pipeline it neither separates tax/tip lines nor merges
// multi-line items.
func FilterItemRegions(regionList []TextRegion) []TextRegion {
	if len(regionList) == 0 {
		return nil
	}

	sorted := make([]TextRegion, len(regionList))
	copy(sorted, regionList)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Box.CenterY() < sorted[j].Box.CenterY()
	})

	headerEnd := 0.1
	for _, region := range sorted {
		if region.HasPricePattern() {
			headerEnd = max(0.05, region.Box.YMin-0.02)
			break
		}
	}

	footerStart := 0.9
	for i := len(sorted) - 1; i >= 0 && footerStart >= 0.9; i-- {
		for _, keyword := range filterFooterKeywords {
			if keyword.MatchString(sorted[i].Text) {
				footerStart = min(0.95, sorted[i].Box.YMin)
				break
			}
		}
	}

	var filtered []TextRegion
	for _, region := range sorted {
		centerY := region.Box.CenterY()
		if centerY < headerEnd || centerY > footerStart {
			continue
		}

		area := region.Box.Area()
		if area < minRegionArea || area > maxRegionArea {
			continue
		}

		trimmedLen := utf8.RuneCountInString(strings.TrimSpace(region.Text))
		if trimmedLen <= 1 {
			continue
		}

		if region.Box.Height() < minRegionHeight {
			continue
		}

		if matchesAny(headerNoisePatterns, region.Text) || matchesAny(footerNoisePatterns, region.Text) {
			continue
		}

		if isDigitsOnly(region.Text) && !region.HasPricePattern() {
			continue
		}

		if trimmedLen < 3 && !region.HasPricePattern() {
			continue
		}

		filtered = append(filtered, region)
	}

	return filtered
}

func matchesAny(patterns []*regexp.Regexp, text string) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// isDigitsOnly reports whether the text is nothing but digits once
// spaces, decimal points, commas and dollar signs are stripped.
func isDigitsOnly(text string) bool {
	stripped := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '.', ',', '$':
			return -1
		}
		return r
	}, text)

	if stripped == "" {
		return false
	}
	for _, r := range stripped {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
