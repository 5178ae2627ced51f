package export

import (
	"encoding/csv"
	"io"

	"bizcardx/internal/domain"
)

// BOM is the UTF-8 byte order mark, for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter wraps csv.Writer for exporting cards.
type CSVWriter struct {
	w   io.Writer
	csv *csv.Writer
}

// NewCSVWriter creates a CSVWriter that writes to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: w, csv: csv.NewWriter(w)}
}

// WriteBOM writes the byte order mark. Call before anything else.
func (w *CSVWriter) WriteBOM() error {
	_, err := w.w.Write(BOM)
	return err
}

// WriteHeader writes the Columns header row.
func (w *CSVWriter) WriteHeader() error {
	return w.csv.Write(Columns)
}

// WriteCards writes one row per card.
func (w *CSVWriter) WriteCards(cards []domain.BusinessCard) error {
	for i := range cards {
		if err := w.csv.Write(cardToRow(&cards[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *CSVWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *CSVWriter) Error() error {
	return w.csv.Error()
}
