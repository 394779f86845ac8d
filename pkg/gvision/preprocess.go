package gvision

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

// PrepareImage bounds the pixel dimensions of a receipt photo before it
// is uploaded. Images whose longest side exceeds maxDim are scaled down
// proportionally and re-encoded as JPEG; smaller images pass through
// untouched. Phone cameras routinely produce 4000px+ photos that only
// slow the vendor call down without improving OCR on a receipt.
func PrepareImage(data []byte, maxDim int) ([]byte, error) {
	if maxDim <= 0 {
		return data, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() <= maxDim && bounds.Dy() <= maxDim {
		return data, nil
	}

	resized := imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
		return nil, fmt.Errorf("failed to encode resized image: %w", err)
	}
	return buf.Bytes(), nil
}
