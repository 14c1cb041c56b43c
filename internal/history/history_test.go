package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/calcmaster/internal/common"
	"github.com/Veraticus/calcmaster/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stepClock returns a clock that advances one second per call.
func stepClock() func() time.Time {
	t := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func openTestStore(t *testing.T, opts ...Option) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.json")
	s, err := Open(path, append([]Option{WithClock(stepClock())}, opts...)...)
	require.NoError(t, err)
	return s, path
}

func TestStore_Record(t *testing.T) {
	s, path := openTestStore(t)

	entry, err := s.Record("2 + 2", "4")
	require.NoError(t, err)
	assert.Equal(t, Entry{Timestamp: "2024-01-15 10:00:01", Calculation: "2 + 2", Result: "4"}, entry)

	_, err = s.Record("sin(30)", "0.5")
	require.NoError(t, err)

	list := s.List(0)
	require.Len(t, list, 2)
	assert.Equal(t, "sin(30)", list[0].Calculation, "newest first")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var onDisk []Entry
	require.NoError(t, json.Unmarshal(data, &onDisk))
	assert.Equal(t, list, onDisk)
	assert.True(t, strings.HasPrefix(string(data), "[\n  {\n    \"timestamp\""), "two space indent")
}

func TestStore_RecordEvictsOldest(t *testing.T) {
	s, _ := openTestStore(t)

	for i := 0; i <= DefaultLimit; i++ {
		_, err := s.Record(fmt.Sprintf("calc %d", i), fmt.Sprint(i))
		require.NoError(t, err)
	}

	assert.Equal(t, DefaultLimit, s.Len())
	list := s.List(0)
	assert.Equal(t, "calc 100", list[0].Calculation)
	assert.Equal(t, "calc 1", list[len(list)-1].Calculation)
	assert.Empty(t, s.Search("calc 0 "))
	for _, e := range list {
		assert.NotEqual(t, "calc 0", e.Calculation)
	}
}

func TestStore_Reload(t *testing.T) {
	s, path := openTestStore(t, WithLimit(5))
	_, err := s.Record("1 + 1", "2")
	require.NoError(t, err)

	reopened, err := Open(path, WithLimit(5))
	require.NoError(t, err)
	assert.Equal(t, s.List(0), reopened.List(0))
}

func TestOpen_InvalidLimit(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "h.json"), WithLimit(0))
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestStore_List(t *testing.T) {
	s, _ := openTestStore(t)
	for i := 0; i < 5; i++ {
		_, err := s.Record(fmt.Sprint(i), fmt.Sprint(i))
		require.NoError(t, err)
	}

	assert.Len(t, s.List(2), 2)
	assert.Equal(t, "4", s.List(2)[0].Calculation)
	assert.Len(t, s.List(10), 5)
	assert.Len(t, s.List(0), 5)
}

func TestStore_Search(t *testing.T) {
	s, _ := openTestStore(t)
	_, _ = s.Record("Currency: 100 USD to EUR", "85")
	_, _ = s.Record("sqrt(16)", "4")
	_, _ = s.Record("Convert: 1 mile to kilometer", "1.60934")

	tests := []struct {
		name string
		term string
		want []string
	}{
		{name: "calculation case insensitive", term: "usd", want: []string{"Currency: 100 USD to EUR"}},
		{name: "result", term: "1.609", want: []string{"Convert: 1 mile to kilometer"}},
		{name: "timestamp", term: "10:00:02", want: []string{"sqrt(16)"}},
		{name: "all in stored order", term: "2024-01-15", want: []string{"Convert: 1 mile to kilometer", "sqrt(16)", "Currency: 100 USD to EUR"}},
		{name: "no match", term: "cosh", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, e := range s.Search(tt.term) {
				got = append(got, e.Calculation)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStore_Clear(t *testing.T) {
	s, path := openTestStore(t)
	_, _ = s.Record("1 + 1", "2")

	require.NoError(t, s.Clear())
	assert.Equal(t, 0, s.Len())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		calc string
		want Kind
	}{
		{calc: "2 + 2", want: KindBasic},
		{calc: "Basic: square of 4", want: KindBasic},
		{calc: "sin(30)", want: KindScientific},
		{calc: "LOG(100)", want: KindScientific},
		{calc: "Simple Interest: P=1000, R=5%, T=2 years", want: KindFinancial},
		{calc: "EMI: Loan=5000, Rate=7%, Time=3 years", want: KindFinancial},
		{calc: "Currency: 100 USD to EUR", want: KindFinancial},
		{calc: "Convert: 100 centimeter to meter", want: KindConversion},
		{calc: "Convert: -40 celsius to fahrenheit", want: KindBasic},
		{calc: "sin(30) / 2", want: KindBasic},
		{calc: "Convert: 1 gst", want: KindFinancial},
		{calc: "factorial(5)", want: KindOther},
	}

	for _, tt := range tests {
		t.Run(tt.calc, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.calc))
		})
	}
}

func TestStore_Stats(t *testing.T) {
	s, _ := openTestStore(t)
	assert.Equal(t, Stats{}, s.Stats())

	_, _ = s.Record("2 + 2", "4")
	_, _ = s.Record("cos(0)", "1")
	_, _ = s.Record("Convert: 1 day to hour", "24")
	_, _ = s.Record("3 * 3", "9")

	stats := s.Stats()
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, map[Kind]int{KindBasic: 2, KindScientific: 1, KindConversion: 1}, stats.ByType)
	assert.Equal(t, "2024-01-15 10:00:01", stats.FirstTimestamp)
	assert.Equal(t, "2024-01-15 10:00:04", stats.LastTimestamp)
}

func TestStore_Export(t *testing.T) {
	s, _ := openTestStore(t)

	_, err := s.Export(store.FormatTXT, filepath.Join(t.TempDir(), "empty.txt"))
	assert.ErrorIs(t, err, common.ErrNothingToExport)

	_, _ = s.Record("Simple Interest: P=1000, R=5%, T=2 years", "1,100")
	_, _ = s.Record("2 + 2", "4")

	dir := t.TempDir()

	t.Run("txt", func(t *testing.T) {
		path, err := s.Export(store.FormatTXT, filepath.Join(dir, "h.txt"))
		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "CalcMaster 360 - Calculation History\n"+
			strings.Repeat("=", 50)+"\n\n"+
			"2024-01-15 10:00:02: 2 + 2 = 4\n"+
			"2024-01-15 10:00:01: Simple Interest: P=1000, R=5%, T=2 years = 1,100\n", string(data))
	})

	t.Run("csv escapes commas", func(t *testing.T) {
		path, err := s.Export(store.FormatCSV, filepath.Join(dir, "h.csv"))
		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "Timestamp,Calculation,Result\n"+
			"2024-01-15 10:00:02,2 + 2,4\n"+
			"2024-01-15 10:00:01,Simple Interest: P=1000; R=5%; T=2 years,1;100\n", string(data))
	})

	t.Run("json", func(t *testing.T) {
		path, err := s.Export(store.FormatJSON, filepath.Join(dir, "h.json"))
		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var entries []Entry
		require.NoError(t, json.Unmarshal(data, &entries))
		assert.Equal(t, s.List(0), entries)
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := s.Export("xml", filepath.Join(dir, "h.xml"))
		assert.ErrorIs(t, err, common.ErrUnsupportedFormat)
	})
}

func TestStore_DefaultExportName(t *testing.T) {
	s, _ := openTestStore(t)
	assert.Equal(t, "calc_history_20240115_100001.csv", s.DefaultExportName(store.FormatCSV))
}
