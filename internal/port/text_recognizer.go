package port

import (
	"context"

	"bizcardx/internal/extraction"
)

// TextRecognizer runs OCR over an image and returns the detected text spans
// in scan order.
type TextRecognizer interface {
	Recognize(ctx context.Context, image []byte) ([]extraction.RawToken, error)
}
