package regions

// Annotation is the vendor-neutral form of an OCR response.
// Exactly one of the two variants is expected to be populated; the
// conversion from the vendor's own shape happens once, at the system
// boundary (see pkg/gvision), so the pipeline never probes vendor types.
type Annotation struct {
	Structured *StructuredAnnotation // Hierarchical page/block/paragraph tree
	Flat       []FlatToken           // Individually boxed text tokens
}

// StructuredAnnotation is the hierarchical text structure some OCR
// responses carry: pages containing blocks, blocks containing paragraphs,
// down to individual symbols.
type StructuredAnnotation struct {
	Pages []Page // Pages in reading order
}

// Page is a single scanned page with its declared pixel dimensions.
type Page struct {
	Width  float64 // Page width in pixels
	Height float64 // Page height in pixels
	Blocks []Block // Layout blocks on this page
}

// Block is a layout block containing one or more paragraphs.
type Block struct {
	Paragraphs []Paragraph // Child paragraphs in this block
}

// Paragraph carries its own bounding polygon in pixel space plus the
// words that make up its text. Confidence values at or below zero are
// treated as vendor-omitted and default to 1.0 downstream.
type Paragraph struct {
	Vertices   []Vertex // Bounding polygon in pixel coordinates
	Confidence float64  // Recognition confidence, <= 0 when omitted
	Words      []Word   // Words in this paragraph
}

// Word is a group of symbols forming one token.
type Word struct {
	Symbols []Symbol // Characters in this word
}

// Symbol is a single recognized character.
type Symbol struct {
	Text string // Character text
}

// FlatToken is one element of the flat annotation list: a text string
// with its bounding polygon. The first element of a flat response is the
// whole-image aggregate and is only used to infer the image dimensions.
type FlatToken struct {
	Text     string   // Token text
	Vertices []Vertex // Bounding polygon in pixel coordinates
}

// Vertex is a point in pixel space.
type Vertex struct {
	X float64
	Y float64
}

// ImageSize holds pixel dimensions of the source image.
type ImageSize struct {
	Width  float64
	Height float64
}
