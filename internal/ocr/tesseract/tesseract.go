// Package tesseract implements port.TextRecognizer with gosseract.
package tesseract

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
	"go.uber.org/zap"

	"bizcardx/internal/config"
	"bizcardx/internal/domain"
	"bizcardx/internal/extraction"
	"bizcardx/internal/ocr"
	"bizcardx/internal/port"
)

type recognizer struct {
	languages      []string
	tessdataPrefix string
	clientFactory  func() *gosseract.Client
	log            *zap.Logger
}

// NewRecognizer returns a Tesseract-backed TextRecognizer. A client is created
// per call since gosseract clients are not safe for concurrent use.
func NewRecognizer(cfg *config.OCRConfig, log *zap.Logger) port.TextRecognizer {
	return &recognizer{
		languages:      cfg.Languages,
		tessdataPrefix: cfg.TessdataPrefix,
		clientFactory:  gosseract.NewClient,
		log:            log,
	}
}

// Recognize returns one token per text line, in Tesseract's reading order.
func (r *recognizer) Recognize(ctx context.Context, image []byte) ([]extraction.RawToken, error) {
	if len(image) == 0 {
		return nil, domain.ErrEmptyImage
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := r.clientFactory()
	defer c.Close()

	if r.tessdataPrefix != "" {
		c.TessdataPrefix = r.tessdataPrefix
	}
	if len(r.languages) > 0 {
		if err := c.SetLanguage(r.languages...); err != nil {
			return nil, fmt.Errorf("tesseract.Recognize set languages: %w", err)
		}
	}
	if err := c.SetImageFromBytes(image); err != nil {
		return nil, fmt.Errorf("%w: set image: %v", domain.ErrRecognitionFailed, err)
	}

	boxes, err := c.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRecognitionFailed, err)
	}

	lines := make([]ocr.Line, len(boxes))
	for i, b := range boxes {
		lines[i] = ocr.Line{Text: b.Word, Bounds: b.Box, Confidence: b.Confidence}
	}
	tokens := ocr.TokensFromLines(lines)
	r.log.Debug("tesseract.Recognize",
		zap.Int("lines", len(boxes)),
		zap.Int("tokens", len(tokens)),
	)
	return tokens, nil
}
