// Package regions turns a receipt OCR response into an ordered list of
// candidate line-item text regions plus tax/tip regions, using only
// geometric position, regex matching and simple heuristics.
//
// The input is the vendor-neutral Annotation union: either a hierarchical
// page/block/paragraph tree or a flat list of individually boxed tokens
// (see pkg/gvision for the conversion from a Google Cloud Vision
// response). The pipeline tries the richest strategy first and degrades
// gracefully:
//
//  1. DetectSmartRegions: paragraph tree plus header/footer boundary
//     detection, item and tax/tip classification, multi-line merging.
//  2. Plain structured extraction followed by FilterItemRegions.
//  3. Flat token-line extraction followed by FilterItemRegions.
//
// A strategy that fails or produces nothing is logged as a warning and
// the next one runs; only when every strategy comes up empty does
// DetectRegions fail with ErrNoRegions.
//
// Everything in this package is pure, synchronous computation with no
// shared mutable state, so it is safe to call concurrently across
// independent receipts without coordination.
package regions

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure modes callers distinguish.
var (
	// ErrInvalidInput marks a nil or structurally unusable response.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidGeometry marks an unusable bounding polygon or image size.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrNoRegions is returned when every extraction strategy has been
	// exhausted without producing output.
	ErrNoRegions = errors.New("no text regions found")
)

// strategy is one step of the fallback cascade. Plain strategies get the
// generic filter pass applied to their output; the smart strategy already
// classifies and is returned as-is. A strategy whose input variant is
// absent is skipped without a warning.
type strategy struct {
	name    string
	smart   bool
	applies func(*Annotation) bool
	detect  func(*Annotation) ([]TextRegion, error)
}

func hasStructured(ann *Annotation) bool { return ann.Structured != nil }
func hasFlat(ann *Annotation) bool       { return len(ann.Flat) > 0 }

var strategies = []strategy{
	{name: "smart", smart: true, applies: hasStructured, detect: DetectSmartRegions},
	{name: "structured", applies: hasStructured, detect: func(ann *Annotation) ([]TextRegion, error) {
		return extractStructured(ann.Structured)
	}},
	{name: "flat", applies: hasFlat, detect: func(ann *Annotation) ([]TextRegion, error) {
		return extractFlat(ann.Flat)
	}},
}

// DetectRegions extracts candidate item regions from an OCR response,
// trying each extraction strategy in order until one produces output.
// Strategy failures are soft: they are logged through the config and the
// cascade continues. A nil annotation, or one carrying neither variant,
// aborts immediately with ErrInvalidInput; ErrNoRegions is returned only
// after all strategies came up empty.
func DetectRegions(ann *Annotation, config Config) ([]TextRegion, error) {
	if ann == nil {
		return nil, fmt.Errorf("%w: annotation cannot be nil", ErrInvalidInput)
	}
	if ann.Structured == nil && len(ann.Flat) == 0 {
		return nil, fmt.Errorf("%w: annotation carries neither a structured tree nor flat tokens", ErrInvalidInput)
	}

	for _, s := range strategies {
		if !s.applies(ann) {
			continue
		}
		detected, err := s.detect(ann)
		if err != nil {
			logWarning(config, "%s region detection failed: %v", s.name, err)
			continue
		}
		if len(detected) == 0 {
			continue
		}

		if s.smart {
			return detected, nil
		}
		return FilterItemRegions(detected), nil
	}

	return nil, ErrNoRegions
}
