package ocr

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"bizcardx/internal/domain"
	"bizcardx/internal/extraction"
)

const detectionSchema = `{
  "type": "object",
  "required": ["detections"],
  "additionalProperties": false,
  "properties": {
    "image_base64": {"type": "string"},
    "detections": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["text"],
        "additionalProperties": false,
        "properties": {
          "text": {"type": "string"},
          "box": {
            "type": "array",
            "minItems": 4,
            "maxItems": 4,
            "items": {
              "type": "array",
              "minItems": 2,
              "maxItems": 2,
              "items": {"type": "number"}
            }
          },
          "confidence": {"type": "number", "minimum": 0, "maximum": 1}
        }
      }
    }
  }
}`

var compiledDetectionSchema = jsonschema.MustCompileString("detections.json", detectionSchema)

// DetectionInput is one client-posted OCR detection.
type DetectionInput struct {
	Text       string       `json:"text"`
	Box        [][2]float64 `json:"box,omitempty"`
	Confidence float64      `json:"confidence"`
}

// DetectionRequest is the body accepted by the detections endpoint.
type DetectionRequest struct {
	ImageBase64 string           `json:"image_base64,omitempty"`
	Detections  []DetectionInput `json:"detections"`
}

// ParseDetectionRequest validates raw JSON against the detection schema and
// returns the ordered token sequence plus the decoded image, if any.
// Schema violations and bad base64 wrap domain.ErrInvalidDetections.
func ParseDetectionRequest(raw []byte) ([]extraction.RawToken, []byte, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrInvalidDetections, err)
	}
	if err := compiledDetectionSchema.Validate(doc); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrInvalidDetections, err)
	}

	var req DetectionRequest
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&req); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrInvalidDetections, err)
	}

	var image []byte
	if req.ImageBase64 != "" {
		b, err := base64.StdEncoding.DecodeString(stripDataURI(req.ImageBase64))
		if err != nil {
			return nil, nil, fmt.Errorf("%w: image_base64: %v", domain.ErrInvalidDetections, err)
		}
		image = b
	}

	dets := make([]extraction.Detection, len(req.Detections))
	for i, d := range req.Detections {
		var region extraction.BoundingRegion
		for j := 0; j < len(d.Box) && j < len(region); j++ {
			region[j] = extraction.Point{X: d.Box[j][0], Y: d.Box[j][1]}
		}
		dets[i] = extraction.Detection{Region: region, Text: d.Text, Confidence: d.Confidence}
	}
	return extraction.NewTokenSequence(dets), image, nil
}

// stripDataURI drops a "data:image/png;base64," style prefix.
func stripDataURI(s string) string {
	if strings.HasPrefix(s, "data:") {
		if i := strings.Index(s, ","); i >= 0 {
			return s[i+1:]
		}
	}
	return s
}
