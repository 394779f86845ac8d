// receiptscan is a command-line tool for extracting candidate line-item
// regions from photographed receipts using Google Cloud Vision OCR.
//
// The tool sends each receipt image to the Vision API (or replays a saved
// API response), converts the response into the internal annotation form,
// runs the region-detection pipeline and writes the resulting region list
// as JSON. Identical images are served from an in-memory TTL cache keyed
// by the SHA-256 of the image bytes, so reprocessing a receipt within the
// cache window skips the vendor call.
//
// Configuration:
//
// An optional YAML configuration file tunes the vendor call and cache:
//
//	endpoint: "vision.googleapis.com:443"
//	language_hints: ["en"]
//	max_dimension: 2048
//	cache_ttl_seconds: 900
//
// Usage:
//
//	receiptscan -image receipt.jpg [options]
//
// Input flags (exactly one required):
//
//	-image string     Path to a receipt image
//	-images string    Comma-separated list of receipt images
//	-response string  Path to a saved Vision API response JSON (offline replay)
//
// Output flags:
//
//	-regions string   Path to save detected regions JSON (default: stdout)
//	-overlay string   Path to save a PDF with region boxes drawn on the receipt
//	-dump-api string  Path to save the raw API response as JSON
//
// Authentication:
//
// The tool uses the GOOGLE_APPLICATION_CREDENTIALS environment variable
// for authentication with Google Cloud.
//
// Example:
//
//	export GOOGLE_APPLICATION_CREDENTIALS=/path/to/credentials.json
//	receiptscan -config config.yml -image dinner.jpg -regions dinner.json -overlay dinner.pdf
//	receiptscan -response saved_response.json -regions regions.json
package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"gopkg.in/yaml.v3"

	"github.com/tallysplit/receiptocr/pkg/gvision"
	"github.com/tallysplit/receiptocr/pkg/ocrcache"
	"github.com/tallysplit/receiptocr/pkg/regionpdf"
	"github.com/tallysplit/receiptocr/pkg/regions"
)

type yamlConfig struct {
	Endpoint        string   `yaml:"endpoint"`
	LanguageHints   []string `yaml:"language_hints"`
	MaxDimension    int      `yaml:"max_dimension"`
	CacheTTLSeconds int      `yaml:"cache_ttl_seconds"`
}

type toolConfig struct {
	vision   gvision.Config
	maxDim   int
	cacheTTL time.Duration
}

// loadConfig reads the optional YAML file and fills in defaults.
func loadConfig(path string) (*toolConfig, error) {
	cfg := &toolConfig{
		maxDim:   2048,
		cacheTTL: ocrcache.DefaultTTL,
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return nil, err
	}

	cfg.vision = gvision.Config{
		Endpoint:      yc.Endpoint,
		LanguageHints: yc.LanguageHints,
	}
	if yc.MaxDimension > 0 {
		cfg.maxDim = yc.MaxDimension
	}
	if yc.CacheTTLSeconds > 0 {
		cfg.cacheTTL = time.Duration(yc.CacheTTLSeconds) * time.Second
	}
	return cfg, nil
}

func main() {
	configPath := flag.String("config", "", "Path to the config YAML file")
	imagePath := flag.String("image", "", "Path to a receipt image (required if -images/-response not specified)")
	imagePaths := flag.String("images", "", "Comma-separated list of receipt images (required if -image/-response not specified)")
	responsePath := flag.String("response", "", "Path to a saved Vision API response JSON (required if -image/-images not specified)")

	regionsPath := flag.String("regions", "", "Path to save detected regions JSON (default: stdout)")
	overlayPath := flag.String("overlay", "", "Path to save a PDF with region boxes drawn on the receipt")
	dumpAPIPath := flag.String("dump-api", "", "Path to save the raw API response as JSON")

	flag.Parse()

	inputs := 0
	for _, v := range []string{*imagePath, *imagePaths, *responsePath} {
		if v != "" {
			inputs++
		}
	}
	if inputs != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one of -image, -images or -response must be provided")
		fmt.Fprintln(os.Stderr, "Usage:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()
	cache := ocrcache.New[*visionpb.AnnotateImageResponse]()

	switch {
	case *responsePath != "":
		data, err := os.ReadFile(*responsePath)
		if err != nil {
			log.Fatalf("Failed to read response file: %v", err)
		}
		resp, err := gvision.ResponseFromJSON(data)
		if err != nil {
			log.Fatalf("Failed to parse response file: %v", err)
		}
		processResponse(resp, *responsePath, nil, *regionsPath, *overlayPath, *dumpAPIPath)

	case *imagePath != "":
		processImage(ctx, cache, cfg, *imagePath, *regionsPath, *overlayPath, *dumpAPIPath)

	default:
		for _, path := range strings.Split(*imagePaths, ",") {
			path = strings.TrimSpace(path)
			if path == "" {
				continue
			}
			processImage(ctx, cache, cfg, path, *regionsPath, *overlayPath, *dumpAPIPath)
		}
	}
}

// processImage runs one receipt image through the OCR call (or the cache)
// and the region pipeline.
func processImage(ctx context.Context, cache *ocrcache.Cache[*visionpb.AnnotateImageResponse],
	cfg *toolConfig, path, regionsPath, overlayPath, dumpAPIPath string) {

	imageBytes, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read image file %s: %v", path, err)
	}

	prepared, err := gvision.PrepareImage(imageBytes, cfg.maxDim)
	if err != nil {
		log.Fatalf("Failed to prepare image %s: %v", path, err)
	}

	sum := sha256.Sum256(prepared)
	key := hex.EncodeToString(sum[:])

	resp, ok := cache.Get(key)
	if ok {
		fmt.Printf("Using cached OCR response for %s\n", path)
	} else {
		fmt.Printf("Annotating %s\n", path)
		resp, err = gvision.AnnotateReceipt(ctx, prepared, &cfg.vision)
		if err != nil {
			log.Fatalf("Failed to annotate %s: %v", path, err)
		}
		if err := cache.Put(key, resp, cfg.cacheTTL); err != nil {
			log.Fatalf("Failed to cache response: %v", err)
		}
	}

	processResponse(resp, path, prepared, regionsPath, overlayPath, dumpAPIPath)
}

// processResponse converts a Vision response to regions and writes the
// requested outputs.
func processResponse(resp *visionpb.AnnotateImageResponse, source string, imageData []byte,
	regionsPath, overlayPath, dumpAPIPath string) {

	if dumpAPIPath != "" {
		apiJSON, err := gvision.ToJSON(resp)
		if err != nil {
			log.Fatalf("Failed to convert API response to JSON: %v", err)
		}
		if err := os.WriteFile(dumpAPIPath, []byte(apiJSON), 0644); err != nil {
			log.Fatalf("Failed to write API response JSON: %v", err)
		}
		fmt.Println("API response JSON saved to:", dumpAPIPath)
	}

	ann, err := gvision.AnnotationFromResponse(resp)
	if err != nil {
		log.Fatalf("Unusable OCR response for %s: %v", source, err)
	}

	detected, err := regions.DetectRegions(ann, regions.DefaultConfig())
	if err != nil {
		log.Fatalf("Region detection failed for %s: %v", source, err)
	}

	regionsJSON, err := json.MarshalIndent(detected, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode regions: %v", err)
	}
	if regionsPath != "" {
		if err := os.WriteFile(regionsPath, regionsJSON, 0644); err != nil {
			log.Fatalf("Failed to write regions JSON: %v", err)
		}
		fmt.Println("Detected regions saved to:", regionsPath)
	} else {
		fmt.Println(string(regionsJSON))
	}

	if overlayPath != "" {
		pdfBytes, err := regionpdf.Render(detected, imageData, regionpdf.DefaultConfig())
		if err != nil {
			log.Fatalf("Failed to render overlay PDF: %v", err)
		}
		if err := os.WriteFile(overlayPath, pdfBytes, 0644); err != nil {
			log.Fatalf("Failed to write overlay PDF: %v", err)
		}
		fmt.Println("Region overlay PDF saved to:", overlayPath)
	}
}
