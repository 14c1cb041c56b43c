// Package favorites keeps named, reusable calculations with usage tracking.
// Names are unique ignoring case.
package favorites

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/Veraticus/calcmaster/internal/common"
	"github.com/Veraticus/calcmaster/internal/store"
)

// DefaultCategory is used when a favorite is added without a category.
const DefaultCategory = "general"

// Entry is one saved calculation.
type Entry struct {
	LastUsed   *string `json:"last_used"`
	Name       string  `json:"name"`
	Expression string  `json:"expression"`
	Category   string  `json:"category"`
	Created    string  `json:"created"`
	UsageCount int     `json:"usage_count"`
}

// LastUsedDisplay returns the last use timestamp or "Never".
func (e Entry) LastUsedDisplay() string {
	if e.LastUsed == nil {
		return "Never"
	}
	return *e.LastUsed
}

// Changes describes an edit. Nil fields are left untouched.
type Changes struct {
	Name       *string
	Expression *string
	Category   *string
}

// Store is the favorites collection, kept in insertion order.
type Store struct {
	log *store.Log[Entry]
	now func() time.Time
}

// Option configures a Store.
type Option func(*config)

type config struct {
	now    func() time.Time
	logger *slog.Logger
}

// WithClock overrides the clock used for created and last used timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *config) { c.now = now }
}

// WithLogger overrides the logger used for load warnings.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// Open loads the favorites stored at path.
func Open(path string, opts ...Option) (*Store, error) {
	c := config{now: time.Now, logger: slog.Default()}
	for _, opt := range opts {
		opt(&c)
	}

	l, err := store.Open[Entry](path, store.WithClock(c.now), store.WithLogger(c.logger))
	if err != nil {
		return nil, fmt.Errorf("failed to open favorites: %w", err)
	}

	s := &Store{log: l, now: c.now}
	for i, e := range l.Items() {
		if first := s.indexOf(e.Name, -1); first < i {
			c.logger.Warn("Duplicate favorite name, lookups resolve to the first entry",
				"path", path, "name", e.Name, "index", i+1, "first_index", first+1)
		}
	}
	return s, nil
}

// Len returns the number of favorites.
func (s *Store) Len() int {
	return s.log.Len()
}

// Add appends a new favorite. It fails with common.ErrDuplicateName when the
// name is already taken ignoring case.
func (s *Store) Add(name, expression, category string) (Entry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Entry{}, common.InvalidInput("favorite name is required")
	}
	if strings.TrimSpace(expression) == "" {
		return Entry{}, common.InvalidInput("favorite expression is required")
	}
	if strings.TrimSpace(category) == "" {
		category = DefaultCategory
	}
	if s.indexOf(name, -1) >= 0 {
		return Entry{}, fmt.Errorf("%w: %s", common.ErrDuplicateName, name)
	}

	entry := Entry{
		Name:       name,
		Expression: expression,
		Category:   category,
		Created:    s.now().Format(store.TimestampLayout),
	}
	return entry, s.log.Append(entry)
}

// Get returns the favorite with the given name.
func (s *Store) Get(name string) (Entry, error) {
	i := s.indexOf(name, -1)
	if i < 0 {
		return Entry{}, fmt.Errorf("%w: favorite %q", common.ErrNotFound, name)
	}
	return s.log.At(i)
}

// Index returns the position of the favorite with the given name.
func (s *Store) Index(name string) (int, error) {
	i := s.indexOf(name, -1)
	if i < 0 {
		return -1, fmt.Errorf("%w: favorite %q", common.ErrNotFound, name)
	}
	return i, nil
}

// Remove deletes the favorite at index and returns it. The order of the
// remaining favorites is preserved.
func (s *Store) Remove(index int) (Entry, error) {
	return s.log.RemoveAt(index)
}

// RemoveByName deletes the favorite with the given name.
func (s *Store) RemoveByName(name string) (Entry, error) {
	i := s.indexOf(name, -1)
	if i < 0 {
		return Entry{}, fmt.Errorf("%w: favorite %q", common.ErrNotFound, name)
	}
	return s.log.RemoveAt(i)
}

// Edit applies changes to the favorite at index. A rename colliding with
// another favorite fails with common.ErrDuplicateName and nothing changes.
func (s *Store) Edit(index int, changes Changes) (Entry, error) {
	if _, err := s.log.At(index); err != nil {
		return Entry{}, err
	}

	if changes.Name != nil {
		name := strings.TrimSpace(*changes.Name)
		if name == "" {
			return Entry{}, common.InvalidInput("favorite name is required")
		}
		if s.indexOf(name, index) >= 0 {
			return Entry{}, fmt.Errorf("%w: %s", common.ErrDuplicateName, name)
		}
		changes.Name = &name
	}
	if changes.Category != nil && strings.TrimSpace(*changes.Category) == "" {
		category := DefaultCategory
		changes.Category = &category
	}

	err := s.log.Update(index, func(e *Entry) {
		if changes.Name != nil {
			e.Name = *changes.Name
		}
		if changes.Expression != nil {
			e.Expression = *changes.Expression
		}
		if changes.Category != nil {
			e.Category = *changes.Category
		}
	})
	updated, _ := s.log.At(index)
	return updated, err
}

// RecordUsage stamps the favorite as used now and increments its count.
func (s *Store) RecordUsage(name string) (Entry, error) {
	i := s.indexOf(name, -1)
	if i < 0 {
		return Entry{}, fmt.Errorf("%w: favorite %q", common.ErrNotFound, name)
	}

	now := s.now().Format(store.TimestampLayout)
	err := s.log.Update(i, func(e *Entry) {
		e.LastUsed = &now
		e.UsageCount++
	})
	updated, _ := s.log.At(i)
	return updated, err
}

// List returns all favorites, or those in category (ignoring case) when
// category is not empty.
func (s *Store) List(category string) []Entry {
	items := s.log.Items()
	if category == "" {
		return items
	}
	var out []Entry
	for _, e := range items {
		if strings.EqualFold(e.Category, category) {
			out = append(out, e)
		}
	}
	return out
}

// Categories returns the distinct categories, sorted.
func (s *Store) Categories() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, e := range s.log.Items() {
		if _, ok := seen[e.Category]; ok {
			continue
		}
		seen[e.Category] = struct{}{}
		out = append(out, e.Category)
	}
	sort.Strings(out)
	return out
}

// Search matches term against name, expression and category, ignoring case.
func (s *Store) Search(term string) []Entry {
	term = strings.ToLower(term)
	var out []Entry
	for _, e := range s.log.Items() {
		if strings.Contains(strings.ToLower(e.Name), term) ||
			strings.Contains(strings.ToLower(e.Expression), term) ||
			strings.Contains(strings.ToLower(e.Category), term) {
			out = append(out, e)
		}
	}
	return out
}

// Clear removes every favorite, or only those in category when it is not empty.
func (s *Store) Clear(category string) error {
	if category == "" {
		return s.log.Replace(nil)
	}
	var keep []Entry
	for _, e := range s.log.Items() {
		if !strings.EqualFold(e.Category, category) {
			keep = append(keep, e)
		}
	}
	return s.log.Replace(keep)
}

// MostUsed returns up to limit favorites by usage count, highest first.
// Ties keep insertion order.
func (s *Store) MostUsed(limit int) []Entry {
	items := s.log.Items()
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].UsageCount > items[j].UsageCount
	})
	return head(items, limit)
}

// RecentlyUsed returns up to limit favorites that have been used, most recent
// first. Ties keep insertion order.
func (s *Store) RecentlyUsed(limit int) []Entry {
	var used []Entry
	for _, e := range s.log.Items() {
		if e.LastUsed != nil {
			used = append(used, e)
		}
	}
	// The timestamp layout sorts lexically in time order.
	sort.SliceStable(used, func(i, j int) bool {
		return *used[i].LastUsed > *used[j].LastUsed
	})
	return head(used, limit)
}

// Render produces the export document without writing it.
func (s *Store) Render(format store.ExportFormat) ([]byte, error) {
	entries := s.log.Items()
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no favorites", common.ErrNothingToExport)
	}

	var buf bytes.Buffer
	switch format {
	case store.FormatTXT:
		buf.WriteString("CalcMaster 360 - Favorite Calculations\n")
		buf.WriteString(strings.Repeat("=", 50) + "\n\n")
		for _, e := range entries {
			fmt.Fprintf(&buf, "Name: %s\n", e.Name)
			fmt.Fprintf(&buf, "Expression: %s\n", e.Expression)
			fmt.Fprintf(&buf, "Category: %s\n", e.Category)
			fmt.Fprintf(&buf, "Created: %s\n", e.Created)
			fmt.Fprintf(&buf, "Last Used: %s\n", e.LastUsedDisplay())
			fmt.Fprintf(&buf, "Usage Count: %d\n", e.UsageCount)
			buf.WriteString(strings.Repeat("-", 30) + "\n")
		}
	case store.FormatCSV:
		buf.WriteString("Name,Expression,Category,Created,Last Used,Usage Count\n")
		for _, e := range entries {
			fmt.Fprintf(&buf, "%s,%s,%s,%s,%s,%d\n",
				store.CSVField(e.Name),
				store.CSVField(e.Expression),
				store.CSVField(e.Category),
				store.CSVField(e.Created),
				store.CSVField(e.LastUsedDisplay()),
				e.UsageCount)
		}
	case store.FormatJSON:
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal favorites: %w", err)
		}
		buf.Write(data)
		buf.WriteByte('\n')
	default:
		return nil, fmt.Errorf("%w: %s", common.ErrUnsupportedFormat, format)
	}

	return buf.Bytes(), nil
}

// Export writes the favorites to path, or to a timestamped file in the working
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

// DefaultExportName returns calc_favorites_YYYYMMDD_HHMMSS.<format>.
func (s *Store) DefaultExportName(format store.ExportFormat) string {
	return store.DefaultExportName("calc_favorites", format, s.now())
}

// indexOf finds name ignoring case, skipping index skip.
func (s *Store) indexOf(name string, skip int) int {
	name = strings.TrimSpace(name)
	for i, e := range s.log.Items() {
		if i != skip && strings.EqualFold(e.Name, name) {
			return i
		}
	}
	return -1
}

func head(items []Entry, limit int) []Entry {
	if limit > 0 && limit < len(items) {
		return items[:limit]
	}
	return items
}
