package regions

import (
	"fmt"
	"sort"
	"strings"
)

// pageImageSize returns the page's declared pixel dimensions, substituting
// 1x1 when the vendor omitted them. Geometry degrades in that case but
// extraction still succeeds.
func pageImageSize(page Page) ImageSize {
	size := ImageSize{Width: page.Width, Height: page.Height}
	if size.Width <= 0 {
		size.Width = 1
	}
	if size.Height <= 0 {
		size.Height = 1
	}
	return size
}

// paragraphText reconstructs a paragraph's text: symbols concatenate
// within each word, words join with single spaces.
func paragraphText(p Paragraph) string {
	words := make([]string, 0, len(p.Words))
	for _, word := range p.Words {
		var sb strings.Builder
		for _, sym := range word.Symbols {
			sb.WriteString(sym.Text)
		}
		words = append(words, sb.String())
	}
	return strings.TrimSpace(strings.Join(words, " "))
}

// extractStructured walks the paragraph tree of the first page and turns
// each non-empty paragraph into a TextRegion. Multi-page receipts are not
// supported; pages beyond the first are ignored.
func extractStructured(ann *StructuredAnnotation) ([]TextRegion, error) {
	if ann == nil {
		return nil, fmt.Errorf("%w: missing structured annotation", ErrInvalidInput)
	}
	if len(ann.Pages) == 0 {
		return nil, fmt.Errorf("%w: structured annotation has no pages", ErrInvalidInput)
	}

	page := ann.Pages[0]
	size := pageImageSize(page)

	var result []TextRegion
	for _, block := range page.Blocks {
		for _, paragraph := range block.Paragraphs {
			text := paragraphText(paragraph)
			if text == "" {
				continue
			}

			box, err := NormalizeVertices(paragraph.Vertices, size)
			if err != nil {
				return nil, err
			}

			confidence := paragraph.Confidence
			if confidence <= 0 {
				confidence = 1.0
			}

			result = append(result, TextRegion{Text: text, Box: box, Confidence: confidence})
		}
	}

	return result, nil
}

// flatLine collects the tokens that share one vertical bucket.
type flatLine struct {
	tokens []FlatToken
}

// extractFlat groups individually boxed tokens into pseudo-lines. The
// image size is inferred from the first token's polygon (the whole-image
// aggregate), since flat responses carry no explicit dimensions. Tokens
// are bucketed by their vertical center into 10-pixel bands; two distinct
// but vertically adjacent lines can land in the same band and merge. The
// bucket size is a fixed heuristic independent of image resolution.
func extractFlat(tokens []FlatToken) ([]TextRegion, error) {
	if len(tokens) < 2 {
		return nil, nil
	}

	first := tokens[0]
	if len(first.Vertices) == 0 {
		return nil, fmt.Errorf("%w: first annotation has no bounding polygon", ErrInvalidInput)
	}
	var size ImageSize
	for _, v := range first.Vertices {
		size.Width = max(size.Width, v.X)
		size.Height = max(size.Height, v.Y)
	}

	lines := make(map[int]*flatLine)
	for _, token := range tokens[1:] {
		if len(token.Vertices) == 0 {
			continue
		}

		var sum float64
		for _, v := range token.Vertices {
			sum += v.Y
		}
		centerY := sum / float64(len(token.Vertices))

		key := int(centerY/10) * 10
		line := lines[key]
		if line == nil {
			line = &flatLine{}
			lines[key] = line
		}
		line.tokens = append(line.tokens, token)
	}

	keys := make([]int, 0, len(lines))
	for key := range lines {
		keys = append(keys, key)
	}
	sort.Ints(keys)

	var result []TextRegion
	for _, key := range keys {
		line := lines[key]

		// Reading order within a line
		sort.SliceStable(line.tokens, func(i, j int) bool {
			return minX(line.tokens[i].Vertices) < minX(line.tokens[j].Vertices)
		})

		texts := make([]string, 0, len(line.tokens))
		var all []Vertex
		for _, token := range line.tokens {
			texts = append(texts, token.Text)
			all = append(all, token.Vertices...)
		}

		box, err := NormalizeVertices(all, size)
		if err != nil {
			return nil, err
		}

		result = append(result, TextRegion{
			Text:       strings.Join(texts, " "),
			Box:        box,
			Confidence: 1.0,
		})
	}

	return result, nil
}

func minX(vertices []Vertex) float64 {
	x := vertices[0].X
	for _, v := range vertices[1:] {
		x = min(x, v.X)
	}
	return x
}
