package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/calcmaster/internal/common"
)

func TestWriteExport(t *testing.T) {
	data := []byte(strings.Repeat("2024-01-15 10:00:00,2 + 2,4\n", 100))

	t.Run("with progress", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "history.csv")
		var progress bytes.Buffer

		require.NoError(t, WriteExport(&progress, path, data))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, data, got)
	})

	t.Run("without progress", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "history.csv")
		require.NoError(t, WriteExport(nil, path, data))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, data, got)
	})

	t.Run("unwritable path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "history.csv")
		err := WriteExport(nil, path, data)
		assert.ErrorIs(t, err, common.ErrPersistence)
	})
}

func TestRenderTable(t *testing.T) {
	out := RenderTable([]string{"Code", "Rate"}, [][]string{{"USD", "1"}, {"EUR", "0.85"}})

	assert.Contains(t, out, "Code")
	assert.Contains(t, out, "EUR")
	assert.Contains(t, out, "0.85")
	assert.Less(t, strings.Index(out, "USD"), strings.Index(out, "EUR"))
}
