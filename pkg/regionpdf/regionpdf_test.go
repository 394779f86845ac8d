package regionpdf

import (
	"bytes"
	"testing"

	"github.com/tallysplit/receiptocr/pkg/regions"
)

var sampleRegions = []regions.TextRegion{
	{
		Text:       "Burger $8.99",
		Box:        regions.BoundingBox{XMin: 0.1, YMin: 0.4, XMax: 0.8, YMax: 0.45},
		Confidence: 0.8,
	},
	{
		Text:       "Tax $0.72",
		Box:        regions.BoundingBox{XMin: 0.1, YMin: 0.46, XMax: 0.8, YMax: 0.48},
		Confidence: 0.9,
	},
}

func TestRender(t *testing.T) {
	data, err := Render(sampleRegions, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not start with a PDF header: %q", data[:min(len(data), 8)])
	}
}

func TestRender_NonLatinLabel(t *testing.T) {
	regionList := []regions.TextRegion{
		{
			Text:       "Café éclair €4.50",
			Box:        regions.BoundingBox{XMin: 0.1, YMin: 0.1, XMax: 0.9, YMax: 0.15},
			Confidence: 1.0,
		},
	}
	if _, err := Render(regionList, nil, DefaultConfig()); err != nil {
		t.Fatalf("Render failed on non-latin label: %v", err)
	}
}

func TestRender_Errors(t *testing.T) {
	tests := []struct {
		name    string
		regions []regions.TextRegion
		image   []byte
		config  Config
	}{
		{"no regions", nil, nil, DefaultConfig()},
		{"zero page size", sampleRegions, nil, Config{}},
		{"garbage image data", sampleRegions, []byte("not an image"), DefaultConfig()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Render(tt.regions, tt.image, tt.config); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
