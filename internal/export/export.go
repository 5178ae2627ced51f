// Package export writes stored business cards as CSV or XLSX.
package export

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"bizcardx/internal/domain"
	"bizcardx/internal/extraction"
)

// Columns is the export header row: the record columns without the image,
// followed by the creation time.
var Columns = append(append([]string{}, extraction.ColumnNames[:len(extraction.AllTags)]...), "CreatedAt")

// cardToRow converts a card to a row in Columns order.
func cardToRow(card *domain.BusinessCard) []string {
	fields := card.Fields()
	row := make([]string, 0, len(Columns))
	for _, tag := range extraction.AllTags {
		row = append(row, fields.Get(tag))
	}
	return append(row, card.CreatedAt.UTC().Format(time.RFC3339))
}

// Write encodes cards to w in the requested format.
func Write(w io.Writer, format domain.ExportFormat, cards []domain.BusinessCard) error {
	switch format {
	case domain.ExportFormatCSV:
		cw := NewCSVWriter(w)
		if err := cw.WriteBOM(); err != nil {
			return err
		}
		if err := cw.WriteHeader(); err != nil {
			return err
		}
		if err := cw.WriteCards(cards); err != nil {
			return err
		}
		cw.Flush()
		return cw.Error()
	case domain.ExportFormatXLSX:
		return WriteXLSX(w, cards)
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedExportFormat, format)
	}
}

// ParseFormat resolves a query value, defaulting to CSV.
func ParseFormat(s string) (domain.ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "csv":
		return domain.ExportFormatCSV, nil
	case "xlsx":
		return domain.ExportFormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedExportFormat, s)
	}
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename replaces anything outside [a-zA-Z0-9_-] with _, collapses
// runs of underscores and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns {base}_{YYYY-MM-DD}.{format} for Content-Disposition.
func BuildFilename(base string, format domain.ExportFormat, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(base), now.Format("2006-01-02"), format)
}
