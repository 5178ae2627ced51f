package extraction

// Point is a 2-D coordinate in image space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// BoundingRegion is the quadrilateral around a detection, clockwise from the
// top-left corner. It is carried through for display and never inspected by
// the classifier.
type BoundingRegion [4]Point

// RawToken is one OCR detection.
type RawToken struct {
	Text       string         `json:"text"`
	Region     BoundingRegion `json:"region"`
	Confidence float64        `json:"confidence"`
	// Order is the position in the OCR scan sequence. Leading positions are
	// structurally meaningful (see WithLeadingFields).
	Order int `json:"order"`
}

// Detection is a single (region, text, confidence) triple as produced by an
// OCR engine, before scan order has been assigned.
type Detection struct {
	Region     BoundingRegion
	Text       string
	Confidence float64
}

// NewTokenSequence assigns scan order to detections without reordering or
// dropping any of them.
func NewTokenSequence(detections []Detection) []RawToken {
	tokens := make([]RawToken, len(detections))
	for i, d := range detections {
		tokens[i] = RawToken{
			Text:       d.Text,
			Region:     d.Region,
			Confidence: d.Confidence,
			Order:      i,
		}
	}
	return tokens
}

// TokensFromText builds a token sequence from bare strings. Regions and
// confidence are left zero.
func TokensFromText(texts ...string) []RawToken {
	tokens := make([]RawToken, len(texts))
	for i, t := range texts {
		tokens[i] = RawToken{Text: t, Order: i}
	}
	return tokens
}

// Texts returns the text of each token in order.
func Texts(tokens []RawToken) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Text
	}
	return out
}
