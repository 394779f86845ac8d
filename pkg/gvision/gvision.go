// Package gvision integrates with the Google Cloud Vision API for receipt
// OCR and converts its responses into the vendor-neutral annotation form
// the region pipeline consumes.
//
// The package owns the complete system boundary: sending image bytes to
// Cloud Vision (AnnotateReceipt), deciding once which of the two response
// shapes was returned (AnnotationFromResponse), optional image downscaling
// before upload (PrepareImage), and protojson dump/replay of raw responses
// for offline processing and debugging.
//
// Usage Requirements:
//
// - Google Cloud project with the Vision API enabled
// - Authentication via the GOOGLE_APPLICATION_CREDENTIALS environment variable
package gvision

// Config holds Google Cloud Vision settings for receipt OCR.
type Config struct {
	Endpoint      string   // API endpoint, defaults to vision.googleapis.com:443
	LanguageHints []string // Optional language hints passed with each request
}

// DefaultEndpoint is the public Cloud Vision API endpoint.
const DefaultEndpoint = "vision.googleapis.com:443"
