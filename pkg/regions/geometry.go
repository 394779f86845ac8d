package regions

import (
	"fmt"
)

// BoundingBox is an axis-aligned rectangle in coordinates normalized to
// the [0,1]x[0,1] image space. Instances are treated as immutable values;
// operations that combine boxes return new instances.
type BoundingBox struct {
	XMin float64 `json:"x_min"`
	YMin float64 `json:"y_min"`
	XMax float64 `json:"x_max"`
	YMax float64 `json:"y_max"`
}

// Width returns the horizontal extent of the box.
func (b BoundingBox) Width() float64 {
	return b.XMax - b.XMin
}

// Height returns the vertical extent of the box.
func (b BoundingBox) Height() float64 {
	return b.YMax - b.YMin
}

// Area returns the fraction of the image the box covers.
func (b BoundingBox) Area() float64 {
	return b.Width() * b.Height()
}

// CenterY returns the vertical center of the box.
func (b BoundingBox) CenterY() float64 {
	return (b.YMin + b.YMax) / 2
}

// Union returns the smallest box containing both b and other.
func (b BoundingBox) Union(other BoundingBox) BoundingBox {
	return BoundingBox{
		XMin: min(b.XMin, other.XMin),
		YMin: min(b.YMin, other.YMin),
		XMax: max(b.XMax, other.XMax),
		YMax: max(b.YMax, other.YMax),
	}
}

// NormalizeVertices converts a pixel-space bounding polygon into a
// normalized BoundingBox, dividing by the image dimensions and clamping
// every value into [0,1]. Vendors occasionally report coordinates slightly
// outside the image bounds, so clamping is always applied.
func NormalizeVertices(vertices []Vertex, size ImageSize) (BoundingBox, error) {
	if len(vertices) == 0 {
		return BoundingBox{}, fmt.Errorf("%w: vertices cannot be empty", ErrInvalidGeometry)
	}
	if size.Width <= 0 || size.Height <= 0 {
		return BoundingBox{}, fmt.Errorf("%w: image size %gx%g", ErrInvalidGeometry, size.Width, size.Height)
	}

	xMin, xMax := vertices[0].X, vertices[0].X
	yMin, yMax := vertices[0].Y, vertices[0].Y
	for _, v := range vertices[1:] {
		xMin = min(xMin, v.X)
		xMax = max(xMax, v.X)
		yMin = min(yMin, v.Y)
		yMax = max(yMax, v.Y)
	}

	return BoundingBox{
		XMin: clamp01(xMin / size.Width),
		YMin: clamp01(yMin / size.Height),
		XMax: clamp01(xMax / size.Width),
		YMax: clamp01(yMax / size.Height),
	}, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
