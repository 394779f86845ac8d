// Package regionpdf renders a detected-region list onto a single PDF page
// for visual inspection. Each region is drawn as an outlined box at its
// normalized position with its text label, in output order (item regions
// first, tax/tip regions after), optionally on top of the receipt photo.
//
// The PDF is a debugging artifact: it makes boundary and classification
// decisions visible without re-running the pipeline under a debugger.
package regionpdf

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"

	"github.com/tallysplit/receiptocr/pkg/regions"
)

// Config holds rendering options.
type Config struct {
	PageWidth  float64 // Page width in points
	PageHeight float64 // Page height in points
	Font       FontConfig
	LabelBoxes bool // Draw the region text inside each box
}

// FontConfig contains font settings for region labels.
type FontConfig struct {
	Name string  // Font name (e.g., "Helvetica")
	Size float64 // Default label size in points
}

// DefaultConfig returns a config with sensible defaults: a portrait A4
// page and labeled boxes.
func DefaultConfig() Config {
	return Config{
		PageWidth:  595.28,
		PageHeight: 841.89,
		Font:       FontConfig{Name: "Helvetica", Size: 9},
		LabelBoxes: true,
	}
}

// Render produces a one-page PDF with every region outlined at its
// normalized position scaled to the configured page size. A non-nil
// imageData is drawn as the page background so the boxes land on the
// photographed receipt itself.
func Render(regionList []regions.TextRegion, imageData []byte, config Config) ([]byte, error) {
	if len(regionList) == 0 {
		return nil, fmt.Errorf("no regions to render")
	}
	if config.PageWidth <= 0 || config.PageHeight <= 0 {
		return nil, fmt.Errorf("invalid page size %gx%g", config.PageWidth, config.PageHeight)
	}

	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.AddPageFormat("P", fpdf.SizeType{Wd: config.PageWidth, Ht: config.PageHeight})
	pdf.SetFont(config.Font.Name, "", config.Font.Size)

	if imageData != nil {
		imageType, err := detectImageType(imageData)
		if err != nil {
			return nil, fmt.Errorf("failed to detect image type: %w", err)
		}
		opts := fpdf.ImageOptions{ReadDpi: false, ImageType: imageType}
		pdf.RegisterImageOptionsReader("receipt", opts, bytes.NewReader(imageData))
		pdf.ImageOptions("receipt", 0, 0, config.PageWidth, config.PageHeight, false, opts, 0, "")
	}

	pdf.SetDrawColor(220, 30, 30)
	pdf.SetTextColor(220, 30, 30)

	for _, region := range regionList {
		drawRegion(pdf, region, config)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// drawRegion outlines one region and writes its label, sized to fit the
// box width.
func drawRegion(pdf *fpdf.Fpdf, region regions.TextRegion, config Config) {
	x := region.Box.XMin * config.PageWidth
	y := region.Box.YMin * config.PageHeight
	w := region.Box.Width() * config.PageWidth
	h := region.Box.Height() * config.PageHeight

	pdf.Rect(x, y, w, h, "D")

	if !config.LabelBoxes || region.Text == "" {
		return
	}

	// Convert text to ISO-8859-1 to avoid PDF encoding issues
	latin1, err := charmap.ISO8859_1.NewEncoder().String(region.Text)
	if err != nil {
		latin1 = region.Text // fallback to raw text
	}

	strWidth := pdf.GetStringWidth(latin1)
	if strWidth > w && strWidth > 0 {
		pdf.SetFontSize(config.Font.Size * w / strWidth)
	}

	fontSize, _ := pdf.GetFontSize()
	pdf.Text(x+1, y+fontSize, latin1)
	pdf.SetFontSize(config.Font.Size)
}

// detectImageType tries to figure out whether the data is PNG, JPEG, etc.
func detectImageType(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode image config: %w", err)
	}
	return strings.ToUpper(format), nil
}
