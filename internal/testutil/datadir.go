// Package testutil seeds calculator data directories for tests.
//
// Example:
//
//	dir := testutil.NewDataDir(t).
//		WithSampleHistory().
//		WithFavorite("Tip", "45 * 0.15", "daily").
//		Build()
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/Veraticus/calcmaster/internal/config"
	"github.com/Veraticus/calcmaster/internal/favorites"
	"github.com/Veraticus/calcmaster/internal/finance"
	"github.com/Veraticus/calcmaster/internal/history"
	"github.com/Veraticus/calcmaster/internal/store"
)

// DataDir builds a data directory holding history, favorites and currency
// files. Nothing is written until Build.
type DataDir struct {
	t         *testing.T
	rates     finance.Rates
	history   []history.Entry
	favorites []favorites.Entry
}

// NewDataDir starts an empty data directory under t.TempDir().
func NewDataDir(t *testing.T) *DataDir {
	t.Helper()
	return &DataDir{t: t}
}

// WithHistory adds entries, newest first, as stored on disk.
func (d *DataDir) WithHistory(entries ...history.Entry) *DataDir {
	d.history = append(d.history, entries...)
	return d
}

// WithSampleHistory adds SampleHistory.
func (d *DataDir) WithSampleHistory() *DataDir {
	return d.WithHistory(SampleHistory()...)
}

// WithFavorite adds a never used favorite.
func (d *DataDir) WithFavorite(name, expression, category string) *DataDir {
	d.favorites = append(d.favorites, favorites.Entry{
		Name:       name,
		Expression: expression,
		Category:   category,
		Created:    "2024-01-01 09:00:00",
	})
	return d
}

// WithUsedFavorite adds a favorite with a usage count and last use time.
func (d *DataDir) WithUsedFavorite(name, expression, category, lastUsed string, count int) *DataDir {
	d.favorites = append(d.favorites, favorites.Entry{
		Name:       name,
		Expression: expression,
		Category:   category,
		Created:    "2024-01-01 09:00:00",
		LastUsed:   &lastUsed,
		UsageCount: count,
	})
	return d
}

// WithRates writes a currency file instead of letting the app seed defaults.
func (d *DataDir) WithRates(rates finance.Rates) *DataDir {
	d.rates = rates
	return d
}

// Build writes the files and returns the directory.
func (d *DataDir) Build() string {
	d.t.Helper()

	dir := filepath.Join(d.t.TempDir(), "data")
	paths := config.NewPaths(dir)

	write := func(path string, v any) {
		if err := store.WriteJSON(path, v); err != nil {
			d.t.Fatalf("failed to seed %s: %v", path, err)
		}
	}

	if d.history != nil {
		write(paths.History, d.history)
	}
	if d.favorites != nil {
		write(paths.Favorites, d.favorites)
	}
	if d.rates != nil {
		write(paths.Currency, d.rates)
	}

	return dir
}

// SampleHistory returns one entry of every history kind, newest first.
func SampleHistory() []history.Entry {
	return []history.Entry{
		{Timestamp: "2024-01-15 10:05:00", Calculation: "Convert: 100 centimeter to meter", Result: "1"},
		{Timestamp: "2024-01-15 10:04:00", Calculation: "EMI: Loan=100000, Rate=10%, Time=5 years", Result: "2124.70"},
		{Timestamp: "2024-01-15 10:03:00", Calculation: "sin(30)", Result: "0.5"},
		{Timestamp: "2024-01-15 10:02:00", Calculation: "2 + 3", Result: "5"},
		{Timestamp: "2024-01-15 10:01:00", Calculation: "25!", Result: "15511210043330985984000000"},
	}
}
