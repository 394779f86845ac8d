package gvision

import (
	"fmt"

	"cloud.google.com/go/vision/v2/apiv1/visionpb"

	"github.com/tallysplit/receiptocr/pkg/regions"
)

// AnnotationFromResponse converts a raw Cloud Vision response into the
// vendor-neutral annotation union. The decision between the structured
// tree and the flat token list happens here, once; downstream code never
// probes the vendor shape. A nil response, or one carrying neither shape,
// is ErrInvalidInput.
func AnnotationFromResponse(resp *visionpb.AnnotateImageResponse) (*regions.Annotation, error) {
	if resp == nil {
		return nil, fmt.Errorf("%w: response cannot be nil", regions.ErrInvalidInput)
	}

	ann := &regions.Annotation{}

	if full := resp.GetFullTextAnnotation(); full != nil && len(full.GetPages()) > 0 {
		ann.Structured = structuredFromProto(full)
	}

	for _, entity := range resp.GetTextAnnotations() {
		ann.Flat = append(ann.Flat, regions.FlatToken{
			Text:     entity.GetDescription(),
			Vertices: verticesFromProto(entity.GetBoundingPoly()),
		})
	}

	if ann.Structured == nil && len(ann.Flat) == 0 {
		return nil, fmt.Errorf("%w: response carries neither full text annotation nor text annotations", regions.ErrInvalidInput)
	}

	return ann, nil
}

// structuredFromProto maps the proto page tree onto the internal one.
// Proto confidence is a float32 defaulting to zero when unset; the zero
// is carried through as-is and treated as vendor-omitted downstream.
func structuredFromProto(full *visionpb.TextAnnotation) *regions.StructuredAnnotation {
	structured := &regions.StructuredAnnotation{}

	for _, page := range full.GetPages() {
		p := regions.Page{
			Width:  float64(page.GetWidth()),
			Height: float64(page.GetHeight()),
		}

		for _, block := range page.GetBlocks() {
			b := regions.Block{}
			for _, paragraph := range block.GetParagraphs() {
				pg := regions.Paragraph{
					Vertices:   verticesFromProto(paragraph.GetBoundingBox()),
					Confidence: float64(paragraph.GetConfidence()),
				}
				for _, word := range paragraph.GetWords() {
					w := regions.Word{}
					for _, symbol := range word.GetSymbols() {
						w.Symbols = append(w.Symbols, regions.Symbol{Text: symbol.GetText()})
					}
					pg.Words = append(pg.Words, w)
				}
				b.Paragraphs = append(b.Paragraphs, pg)
			}
			p.Blocks = append(p.Blocks, b)
		}

		structured.Pages = append(structured.Pages, p)
	}

	return structured
}

func verticesFromProto(poly *visionpb.BoundingPoly) []regions.Vertex {
	if poly == nil {
		return nil
	}
	vertices := make([]regions.Vertex, 0, len(poly.GetVertices()))
	for _, v := range poly.GetVertices() {
		vertices = append(vertices, regions.Vertex{X: float64(v.GetX()), Y: float64(v.GetY())})
	}
	return vertices
}
