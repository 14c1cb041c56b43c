// Package history records every calculation in a capacity-bounded,
// newest-first log persisted as history.json.
package history

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/calcmaster/internal/common"
	"github.com/Veraticus/calcmaster/internal/store"
)

// DefaultLimit is the number of entries kept on disk.
const DefaultLimit = 100

// Entry is one recorded calculation.
type Entry struct {
	Timestamp   string `json:"timestamp"`
	Calculation string `json:"calculation"`
	Result      string `json:"result"`
}

// Store is the calculation history.
type Store struct {
	log *store.Log[Entry]
	now func() time.Time
}

// Option configures a Store.
type Option func(*config)

type config struct {
	now    func() time.Time
	logger *slog.Logger
	limit  int
}

// WithLimit overrides DefaultLimit.
func WithLimit(n int) Option {
	return func(c *config) { c.limit = n }
}

// WithClock overrides the clock used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *config) { c.now = now }
}

// WithLogger overrides the logger used for load warnings.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// Open loads the history stored at path.
func Open(path string, opts ...Option) (*Store, error) {
	c := config{now: time.Now, logger: slog.Default(), limit: DefaultLimit}
	for _, opt := range opts {
		opt(&c)
	}
	if c.limit <= 0 {
		return nil, common.InvalidInput("history limit must be positive")
	}

	l, err := store.Open[Entry](path,
		store.WithCapacity(c.limit),
		store.WithClock(c.now),
		store.WithLogger(c.logger))
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}

	return &Store{log: l, now: c.now}, nil
}

// Record prepends a new entry stamped with the current time, evicting the
// oldest entries beyond the limit. The entry is returned even when saving
// fails; the error then wraps common.ErrPersistence.
func (s *Store) Record(calculation, result string) (Entry, error) {
	entry := Entry{
		Timestamp:   s.now().Format(store.TimestampLayout),
		Calculation: calculation,
		Result:      result,
	}
	return entry, s.log.Prepend(entry)
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return s.log.Len()
}

// List returns the newest limit entries, or all of them when limit <= 0.
func (s *Store) List(limit int) []Entry {
	items := s.log.Items()
	if limit > 0 && limit < len(items) {
		return items[:limit]
	}
	return items
}

// Search returns the entries whose calculation, result or timestamp contains
// term, ignoring case, in stored order.
func (s *Store) Search(term string) []Entry {
	term = strings.ToLower(term)
	var out []Entry
	for _, e := range s.log.Items() {
		if strings.Contains(strings.ToLower(e.Calculation), term) ||
			strings.Contains(strings.ToLower(e.Result), term) ||
			strings.Contains(strings.ToLower(e.Timestamp), term) {
			out = append(out, e)
		}
	}
	return out
}

// Clear removes every entry.
func (s *Store) Clear() error {
	return s.log.Replace(nil)
}

// Render produces the export document without writing it.
func (s *Store) Render(format store.ExportFormat) ([]byte, error) {
	entries := s.log.Items()
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: history is empty", common.ErrNothingToExport)
	}

	var buf bytes.Buffer
	switch format {
	case store.FormatTXT:
		buf.WriteString("CalcMaster 360 - Calculation History\n")
		buf.WriteString(strings.Repeat("=", 50) + "\n\n")
		for _, e := range entries {
			fmt.Fprintf(&buf, "%s: %s = %s\n", e.Timestamp, e.Calculation, e.Result)
		}
	case store.FormatCSV:
		buf.WriteString("Timestamp,Calculation,Result\n")
		for _, e := range entries {
			fmt.Fprintf(&buf, "%s,%s,%s\n", e.Timestamp, store.CSVField(e.Calculation), store.CSVField(e.Result))
		}
	case store.FormatJSON:
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal history: %w", err)
		}
		buf.Write(data)
		buf.WriteByte('\n')
	default:
		return nil, fmt.Errorf("%w: %s", common.ErrUnsupportedFormat, format)
	}

	return buf.Bytes(), nil
}

// Export writes the history to path, or to a timestamped file in the working
// directory when path is empty. It returns the file written.
func (s *Store) Export(format store.ExportFormat, path string) (string, error) {
	data, err := s.Render(format)
	if err != nil {
		return "", err
	}
	if path == "" {
		path = s.DefaultExportName(format)
	}
	return path, store.WriteExport(path, data)
}

// DefaultExportName returns calc_history_YYYYMMDD_HHMMSS.<format>.
func (s *Store) DefaultExportName(format store.ExportFormat) string {
	return store.DefaultExportName("calc_history", format, s.now())
}
