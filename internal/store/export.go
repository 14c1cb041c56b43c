package store

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Veraticus/calcmaster/internal/common"
)

// ExportFormat is an on-demand export file format.
type ExportFormat string

// Supported export formats.
const (
	FormatTXT  ExportFormat = "txt"
	FormatCSV  ExportFormat = "csv"
	FormatJSON ExportFormat = "json"
)

// TimestampLayout is the layout of every persisted timestamp.
const TimestampLayout = "2006-01-02 15:04:05"

// ParseExportFormat resolves a user supplied format name.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch f := ExportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTXT, FormatCSV, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %s", common.ErrUnsupportedFormat, s)
	}
}

// CSVField escapes a text field by substituting commas with semicolons.
// Quoting is deliberately not used so exports stay one record per line.
func CSVField(s string) string {
	return strings.ReplaceAll(s, ",", ";")
}

// DefaultExportName builds "<prefix>_YYYYMMDD_HHMMSS.<format>".
func DefaultExportName(prefix string, format ExportFormat, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", prefix, now.Format("20060102_150405"), format)
}

// WriteExport writes rendered export data to path.
func WriteExport(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: could not write export: %v", common.ErrPersistence, err)
	}
	return nil
}
