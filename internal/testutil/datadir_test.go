package testutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/calcmaster/internal/config"
	"github.com/Veraticus/calcmaster/internal/favorites"
	"github.com/Veraticus/calcmaster/internal/finance"
	"github.com/Veraticus/calcmaster/internal/history"
	"github.com/Veraticus/calcmaster/internal/testutil"
)

func TestDataDir_Build(t *testing.T) {
	dir := testutil.NewDataDir(t).
		WithSampleHistory().
		WithFavorite("Tip", "45 * 0.15", "daily").
		WithUsedFavorite("Area", "pi * 2 ^ 2", "geometry", "2024-01-10 12:00:00", 3).
		WithRates(finance.Rates{"USD": 1, "EUR": 0.9}).
		Build()
	paths := config.NewPaths(dir)

	h, err := history.Open(paths.History)
	require.NoError(t, err)
	assert.Equal(t, testutil.SampleHistory(), h.List(0))

	stats := h.Stats()
	for _, kind := range history.Kinds {
		assert.Equal(t, 1, stats.ByType[kind], kind)
	}

	f, err := favorites.Open(paths.Favorites)
	require.NoError(t, err)
	area, err := f.Get("area")
	require.NoError(t, err)
	assert.Equal(t, 3, area.UsageCount)
	assert.Equal(t, "2024-01-10 12:00:00", area.LastUsedDisplay())

	rates := finance.LoadRateTable(paths.Currency)
	assert.Equal(t, []string{"USD", "EUR"}, rates.Codes())
}

func TestDataDir_EmptyWritesNothing(t *testing.T) {
	dir := testutil.NewDataDir(t).Build()

	_, err := os.Stat(filepath.Join(dir, config.HistoryFile))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
