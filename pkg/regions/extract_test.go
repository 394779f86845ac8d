package regions

import (
	"reflect"
	"testing"
)

// wordOf builds a Word with one Symbol per rune, the way vendors deliver
// character-level symbols.
func wordOf(s string) Word {
	var w Word
	for _, r := range s {
		w.Symbols = append(w.Symbols, Symbol{Text: string(r)})
	}
	return w
}

// paragraphAt builds a paragraph with a rectangular polygon in pixel
// space and the given words.
func paragraphAt(x1, y1, x2, y2, confidence float64, words ...string) Paragraph {
	p := Paragraph{
		Vertices: []Vertex{
			{X: x1, Y: y1}, {X: x2, Y: y1}, {X: x2, Y: y2}, {X: x1, Y: y2},
		},
		Confidence: confidence,
	}
	for _, w := range words {
		p.Words = append(p.Words, wordOf(w))
	}
	return p
}

func structuredPage(width, height float64, paragraphs ...Paragraph) *StructuredAnnotation {
	return &StructuredAnnotation{
		Pages: []Page{{Width: width, Height: height, Blocks: []Block{{Paragraphs: paragraphs}}}},
	}
}

func TestExtractStructured(t *testing.T) {
	ann := structuredPage(1000, 2000,
		paragraphAt(100, 100, 500, 140, 0.9, "Joe's", "Diner"),
		paragraphAt(100, 300, 400, 340, 0, "Burger"),
	)

	got, err := extractStructured(ann)
	if err != nil {
		t.Fatalf("extractStructured failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 regions, got %d", len(got))
	}

	if got[0].Text != "Joe's Diner" {
		t.Errorf("symbol/word reconstruction = %q, want %q", got[0].Text, "Joe's Diner")
	}
	if got[0].Confidence != 0.9 {
		t.Errorf("confidence = %g, want 0.9", got[0].Confidence)
	}
	wantBox := BoundingBox{XMin: 0.1, YMin: 0.05, XMax: 0.5, YMax: 0.07}
	if got[0].Box != wantBox {
		t.Errorf("box = %+v, want %+v", got[0].Box, wantBox)
	}

	// Vendor-omitted confidence defaults to 1.0
	if got[1].Confidence != 1.0 {
		t.Errorf("omitted confidence = %g, want 1.0", got[1].Confidence)
	}
}

func TestExtractStructured_SkipsEmptyParagraphs(t *testing.T) {
	ann := structuredPage(1000, 1000,
		paragraphAt(10, 10, 20, 20, 1, "", " "),
		paragraphAt(100, 300, 400, 340, 1, "Fries"),
	)

	got, err := extractStructured(ann)
	if err != nil {
		t.Fatalf("extractStructured failed: %v", err)
	}
	if len(got) != 1 || got[0].Text != "Fries" {
		t.Errorf("expected only the non-empty paragraph, got %+v", got)
	}
}

func TestExtractStructured_FirstPageOnly(t *testing.T) {
	ann := structuredPage(1000, 1000, paragraphAt(100, 100, 300, 130, 1, "Soup"))
	ann.Pages = append(ann.Pages, Page{
		Width: 1000, Height: 1000,
		Blocks: []Block{{Paragraphs: []Paragraph{paragraphAt(100, 100, 300, 130, 1, "Second", "Page")}}},
	})

	got, err := extractStructured(ann)
	if err != nil {
		t.Fatalf("extractStructured failed: %v", err)
	}
	if len(got) != 1 || got[0].Text != "Soup" {
		t.Errorf("expected first-page content only, got %+v", got)
	}
}

func TestExtractStructured_MissingDimensions(t *testing.T) {
	// Pages without declared dimensions fall back to 1x1; geometry
	// degrades to a clamped box but extraction still succeeds.
	ann := structuredPage(0, 0, paragraphAt(100, 100, 300, 130, 1, "Salad"))

	got, err := extractStructured(ann)
	if err != nil {
		t.Fatalf("extractStructured failed: %v", err)
	}
	want := BoundingBox{XMin: 1, YMin: 1, XMax: 1, YMax: 1}
	if got[0].Box != want {
		t.Errorf("box = %+v, want fully clamped %+v", got[0].Box, want)
	}
}

func TestExtractStructured_Errors(t *testing.T) {
	if _, err := extractStructured(nil); err == nil {
		t.Error("expected error for nil annotation")
	}
	if _, err := extractStructured(&StructuredAnnotation{}); err == nil {
		t.Error("expected error for missing pages")
	}
}

func flatToken(text string, x1, y1, x2, y2 float64) FlatToken {
	return FlatToken{
		Text: text,
		Vertices: []Vertex{
			{X: x1, Y: y1}, {X: x2, Y: y1}, {X: x2, Y: y2}, {X: x1, Y: y2},
		},
	}
}

func TestExtractFlat_GroupsLines(t *testing.T) {
	tokens := []FlatToken{
		// Whole-image aggregate defines the inferred 1000x1000 size
		flatToken("Burger $8.99\nFries $3.49", 0, 0, 1000, 1000),
		// First pseudo-line (centers 109.5, bucket 100), out of reading order
		flatToken("$8.99", 600, 101, 700, 118),
		flatToken("Burger", 100, 102, 300, 117),
		// Second pseudo-line (centers 129, bucket 120)
		flatToken("Fries", 100, 122, 250, 136),
		flatToken("$3.49", 600, 121, 700, 137),
	}

	got, err := extractFlat(tokens)
	if err != nil {
		t.Fatalf("extractFlat failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 line regions, got %d: %+v", len(got), got)
	}

	if got[0].Text != "Burger $8.99" {
		t.Errorf("line 1 text = %q, want %q (x-sorted)", got[0].Text, "Burger $8.99")
	}
	if got[1].Text != "Fries $3.49" {
		t.Errorf("line 2 text = %q, want %q", got[1].Text, "Fries $3.49")
	}

	// Line box is the union of its token polygons
	wantBox := BoundingBox{XMin: 0.1, YMin: 0.101, XMax: 0.7, YMax: 0.118}
	if !reflect.DeepEqual(got[0].Box, wantBox) {
		t.Errorf("line 1 box = %+v, want %+v", got[0].Box, wantBox)
	}

	if got[0].Confidence != 1.0 {
		t.Errorf("flat confidence = %g, want 1.0", got[0].Confidence)
	}
}

func TestExtractFlat_AdjacentCentersShareBucket(t *testing.T) {
	// Two genuinely distinct lines whose centers land in the same
	// 10-pixel bucket merge into one pseudo-line. Known heuristic.
	tokens := []FlatToken{
		flatToken("full", 0, 0, 1000, 1000),
		flatToken("Tea", 100, 100, 200, 108), // center 104
		flatToken("Scone", 100, 109, 250, 117), // center 113... separate bucket
	}

	got, err := extractFlat(tokens)
	if err != nil {
		t.Fatalf("extractFlat failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("centers 104 and 113 fall in buckets 100 and 110, want 2 lines, got %d", len(got))
	}

	tokens[2] = flatToken("Scone", 100, 101, 250, 117) // center 109, bucket 100
	got, err = extractFlat(tokens)
	if err != nil {
		t.Fatalf("extractFlat failed: %v", err)
	}
	if len(got) != 1 || got[0].Text != "Tea Scone" {
		t.Errorf("expected same-bucket tokens to merge, got %+v", got)
	}
}

func TestExtractFlat_TooFewTokens(t *testing.T) {
	got, err := extractFlat([]FlatToken{flatToken("only aggregate", 0, 0, 100, 100)})
	if err != nil {
		t.Fatalf("extractFlat failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no regions for aggregate-only input, got %+v", got)
	}
}
