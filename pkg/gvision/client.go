package gvision

import (
	"context"
	"fmt"
	"os"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"
)

// AnnotateReceipt sends image bytes to Google Cloud Vision for document
// text detection and returns the raw response for the image.
func AnnotateReceipt(ctx context.Context, imageBytes []byte, cfg *Config) (*visionpb.AnnotateImageResponse, error) {
	if len(imageBytes) == 0 {
		return nil, fmt.Errorf("image bytes cannot be empty")
	}

	endpoint := DefaultEndpoint
	if cfg != nil && cfg.Endpoint != "" {
		endpoint = cfg.Endpoint
	}

	// Instantiate the Vision client using credentials from environment variable
	client, err := vision.NewImageAnnotatorClient(
		ctx,
		option.WithEndpoint(endpoint),
		option.WithCredentialsFile(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vision client: %w", err)
	}
	defer client.Close()

	req := &visionpb.AnnotateImageRequest{
		Image: &visionpb.Image{Content: imageBytes},
		Features: []*visionpb.Feature{
			{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
		},
	}
	if cfg != nil && len(cfg.LanguageHints) > 0 {
		req.ImageContext = &visionpb.ImageContext{LanguageHints: cfg.LanguageHints}
	}

	resp, err := client.BatchAnnotateImages(ctx, &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{req},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to annotate image: %w", err)
	}

	if len(resp.Responses) == 0 {
		return nil, fmt.Errorf("empty batch response from Vision API")
	}
	annotated := resp.Responses[0]
	if annotated.Error != nil {
		return nil, fmt.Errorf("Vision API error: %s", annotated.Error.GetMessage())
	}

	return annotated, nil
}
