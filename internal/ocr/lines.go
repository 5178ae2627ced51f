// Package ocr converts recognizer output and client-posted detections into
// the token sequences consumed by the extraction pipeline.
package ocr

import (
	"image"
	"strings"

	"bizcardx/internal/extraction"
)

// Line is one recognized text line with its pixel bounds. Confidence is on
// the 0-100 scale Tesseract reports.
type Line struct {
	Text       string
	Bounds     image.Rectangle
	Confidence float64
}

// RectRegion converts an axis-aligned rectangle into four corners, clockwise
// from top-left.
func RectRegion(r image.Rectangle) extraction.BoundingRegion {
	return extraction.BoundingRegion{
		{X: float64(r.Min.X), Y: float64(r.Min.Y)},
		{X: float64(r.Max.X), Y: float64(r.Min.Y)},
		{X: float64(r.Max.X), Y: float64(r.Max.Y)},
		{X: float64(r.Min.X), Y: float64(r.Max.Y)},
	}
}

// TokensFromLines trims each line, drops blank ones and numbers the rest in
// the order given.
func TokensFromLines(lines []Line) []extraction.RawToken {
	dets := make([]extraction.Detection, 0, len(lines))
	for _, l := range lines {
		text := strings.TrimSpace(l.Text)
		if text == "" {
			continue
		}
		dets = append(dets, extraction.Detection{
			Region:     RectRegion(l.Bounds),
			Text:       text,
			Confidence: clamp01(l.Confidence / 100.0),
		})
	}
	return extraction.NewTokenSequence(dets)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
