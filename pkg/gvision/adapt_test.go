package gvision

import (
	"errors"
	"testing"

	"cloud.google.com/go/vision/v2/apiv1/visionpb"

	"github.com/tallysplit/receiptocr/pkg/regions"
)

func protoPoly(coords ...int32) *visionpb.BoundingPoly {
	poly := &visionpb.BoundingPoly{}
	for i := 0; i+1 < len(coords); i += 2 {
		poly.Vertices = append(poly.Vertices, &visionpb.Vertex{X: coords[i], Y: coords[i+1]})
	}
	return poly
}

func protoWord(text string) *visionpb.Word {
	word := &visionpb.Word{}
	for _, r := range text {
		word.Symbols = append(word.Symbols, &visionpb.Symbol{Text: string(r)})
	}
	return word
}

func TestAnnotationFromResponse_Structured(t *testing.T) {
	resp := &visionpb.AnnotateImageResponse{
		FullTextAnnotation: &visionpb.TextAnnotation{
			Pages: []*visionpb.Page{{
				Width:  1000,
				Height: 2000,
				Blocks: []*visionpb.Block{{
					Paragraphs: []*visionpb.Paragraph{{
						BoundingBox: protoPoly(100, 50, 500, 50, 500, 90, 100, 90),
						Confidence:  0.9,
						Words:       []*visionpb.Word{protoWord("Burger"), protoWord("$8.99")},
					}},
				}},
			}},
		},
	}

	ann, err := AnnotationFromResponse(resp)
	if err != nil {
		t.Fatalf("AnnotationFromResponse failed: %v", err)
	}
	if ann.Structured == nil {
		t.Fatal("expected a structured annotation")
	}
	if len(ann.Flat) != 0 {
		t.Fatalf("expected no flat tokens, got %d", len(ann.Flat))
	}

	pages := ann.Structured.Pages
	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}
	if pages[0].Width != 1000 || pages[0].Height != 2000 {
		t.Errorf("page size = %gx%g, want 1000x2000", pages[0].Width, pages[0].Height)
	}

	para := pages[0].Blocks[0].Paragraphs[0]
	if got := float32(para.Confidence); got != 0.9 {
		t.Errorf("confidence = %g, want 0.9", got)
	}
	if len(para.Vertices) != 4 {
		t.Fatalf("expected 4 vertices, got %d", len(para.Vertices))
	}
	if para.Vertices[2] != (regions.Vertex{X: 500, Y: 90}) {
		t.Errorf("vertex[2] = %+v, want {500 90}", para.Vertices[2])
	}
	if len(para.Words) != 2 || len(para.Words[0].Symbols) != 6 {
		t.Errorf("words not carried through: %+v", para.Words)
	}
}

func TestAnnotationFromResponse_Flat(t *testing.T) {
	resp := &visionpb.AnnotateImageResponse{
		TextAnnotations: []*visionpb.EntityAnnotation{
			{Description: "Burger $8.99\nFries $3.49", BoundingPoly: protoPoly(0, 0, 800, 0, 800, 600, 0, 600)},
			{Description: "Burger", BoundingPoly: protoPoly(100, 400, 300, 400, 300, 430, 100, 430)},
		},
	}

	ann, err := AnnotationFromResponse(resp)
	if err != nil {
		t.Fatalf("AnnotationFromResponse failed: %v", err)
	}
	if ann.Structured != nil {
		t.Error("expected no structured annotation")
	}
	if len(ann.Flat) != 2 {
		t.Fatalf("expected 2 flat tokens, got %d", len(ann.Flat))
	}
	if ann.Flat[1].Text != "Burger" {
		t.Errorf("token text = %q, want %q", ann.Flat[1].Text, "Burger")
	}
	if ann.Flat[1].Vertices[0] != (regions.Vertex{X: 100, Y: 400}) {
		t.Errorf("token vertex = %+v, want {100 400}", ann.Flat[1].Vertices[0])
	}
}

func TestAnnotationFromResponse_BothShapes(t *testing.T) {
	resp := &visionpb.AnnotateImageResponse{
		FullTextAnnotation: &visionpb.TextAnnotation{
			Pages: []*visionpb.Page{{Width: 100, Height: 100}},
		},
		TextAnnotations: []*visionpb.EntityAnnotation{
			{Description: "hi", BoundingPoly: protoPoly(0, 0, 10, 10)},
		},
	}

	ann, err := AnnotationFromResponse(resp)
	if err != nil {
		t.Fatalf("AnnotationFromResponse failed: %v", err)
	}
	if ann.Structured == nil || len(ann.Flat) != 1 {
		t.Errorf("expected both shapes carried through, got structured=%v flat=%d",
			ann.Structured != nil, len(ann.Flat))
	}
}

func TestAnnotationFromResponse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		resp *visionpb.AnnotateImageResponse
	}{
		{"nil response", nil},
		{"empty response", &visionpb.AnnotateImageResponse{}},
		{
			// A full text annotation with no pages is as good as absent
			"full text annotation without pages",
			&visionpb.AnnotateImageResponse{FullTextAnnotation: &visionpb.TextAnnotation{}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := AnnotationFromResponse(tt.resp); !errors.Is(err, regions.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}
