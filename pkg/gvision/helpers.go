package gvision

import (
	"encoding/json"
	"fmt"

	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// ToJSON converts various types to a JSON string. Protocol buffer
// messages go through protojson, regular Go structs through the standard
// json package.
func ToJSON(data interface{}) (string, error) {
	switch v := data.(type) {
	case proto.Message:
		jsonData, err := protojson.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(jsonData), nil

	default:
		jsonData, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", err
		}
		return string(jsonData), nil
	}
}

// ResponseFromJSON parses a protojson-encoded Vision response, as written
// by ToJSON or saved from an earlier API call. It allows reprocessing a
// receipt without repeating the vendor call.
func ResponseFromJSON(data []byte) (*visionpb.AnnotateImageResponse, error) {
	resp := &visionpb.AnnotateImageResponse{}
	if err := protojson.Unmarshal(data, resp); err != nil {
		return nil, fmt.Errorf("failed to parse Vision response JSON: %w", err)
	}
	return resp, nil
}
