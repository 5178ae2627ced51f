// Package extraction turns an OCR token sequence from a business card into a
// normalized contact record.
//
// The pipeline is strictly linear: Classify tags each token with an ordered
// rule table, Aggregate merges the tagged items per field, and Build attaches
// the source image. Nothing here blocks or keeps state between calls.
package extraction

// Result is the outcome of one extraction: the record plus the per-token
// classification that produced it.
type Result struct {
	Record     Record            `json:"record"`
	Classified []ClassifiedToken `json:"classified"`
}

// Extractor runs the classify, aggregate and build stages.
type Extractor struct {
	classifier *Classifier
}

// NewExtractor returns an extractor using a classifier built with opts.
func NewExtractor(opts ...Option) *Extractor {
	return &Extractor{classifier: NewClassifier(opts...)}
}

// Classifier exposes the underlying classifier.
func (e *Extractor) Classifier() *Classifier {
	return e.classifier
}

// Extract runs the pipeline over tokens. An empty sequence yields a record
// with every text field empty.
func (e *Extractor) Extract(tokens []RawToken, image []byte) *Result {
	classified := e.classifier.Classify(tokens)
	return &Result{
		Record:     Build(Aggregate(classified), image),
		Classified: classified,
	}
}
