package finance

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"sort"
	"time"

	"github.com/Veraticus/calcmaster/internal/common"
	"github.com/Veraticus/calcmaster/internal/store"
)

// BaseCurrency is the reference currency; its rate is always 1.0.
const BaseCurrency = "USD"

// DefaultRates seeds a missing or unreadable currency file.
func DefaultRates() Rates {
	return Rates{
		"USD": 1.0,
		"EUR": 0.85,
		"GBP": 0.75,
		"JPY": 110.0,
		"INR": 74.0,
		"CAD": 1.25,
		"AUD": 1.35,
		"CHF": 0.92,
		"CNY": 6.45,
	}
}

// RateTable is the mutable, file-backed currency rate table. The set of
// codes is fixed once loaded; only rates can change.
type RateTable struct {
	rates Rates
	path  string
}

// LoadRateTable reads the table from path. A missing file is seeded with
// DefaultRates; an unreadable one falls back to DefaultRates with a warning,
// and a corrupt one is first copied aside so a later Update cannot lose it.
func LoadRateTable(path string) *RateTable {
	t := &RateTable{path: path}

	var loaded Rates
	err := store.ReadJSON(path, &loaded)
	switch {
	case err == nil && len(loaded) > 0:
		t.rates = normalizeRates(loaded)
	case err == nil, errors.Is(err, os.ErrNotExist):
		t.rates = DefaultRates()
		if saveErr := t.Save(); saveErr != nil {
			slog.Warn("Could not save default currency rates", "path", path, "error", saveErr)
		}
	case errors.Is(err, store.ErrCorrupted):
		t.rates = DefaultRates()
		backup, backupErr := store.PreserveCorrupt(path, time.Now())
		if backupErr != nil {
			slog.Warn("Could not load currency rates, using defaults",
				"path", path, "error", err, "backup_error", backupErr)
		} else {
			slog.Warn("Could not load currency rates, using defaults",
				"path", path, "error", err, "backup", backup)
		}
	default:
		slog.Warn("Could not load currency rates, using defaults", "path", path, "error", err)
		t.rates = DefaultRates()
	}

	return t
}

// normalizeRates uppercases codes, drops unusable rates and pins USD to 1.0.
// A file whose USD rate is not 1.0 is rescaled so cross rates are kept.
func normalizeRates(in Rates) Rates {
	out := make(Rates, len(in)+1)
	for code, rate := range in {
		if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
			slog.Warn("Ignoring invalid currency rate", "code", code, "rate", rate)
			continue
		}
		out[NormalizeCode(code)] = rate
	}

	usd, ok := out[BaseCurrency]
	if !ok {
		out[BaseCurrency] = 1.0
		return out
	}
	if usd != 1.0 {
		for code, rate := range out {
			out[code] = rate / usd
		}
		out[BaseCurrency] = 1.0
	}
	return out
}

// Path returns the backing file location.
func (t *RateTable) Path() string {
	return t.path
}

// Rates returns a snapshot of the table.
func (t *RateTable) Rates() Rates {
	out := make(Rates, len(t.rates))
	for k, v := range t.rates {
		out[k] = v
	}
	return out
}

// Codes returns the currency codes, USD first then alphabetical.
func (t *RateTable) Codes() []string {
	codes := make([]string, 0, len(t.rates))
	for code := range t.rates {
		if code != BaseCurrency {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	return append([]string{BaseCurrency}, codes...)
}

// Rate returns the rate of a single code.
func (t *RateTable) Rate(code string) (float64, error) {
	rate, ok := t.rates[NormalizeCode(code)]
	if !ok {
		return 0, fmt.Errorf("%w: %s", common.ErrUnknownCurrency, code)
	}
	return rate, nil
}

// Convert converts amount using the current table.
func (t *RateTable) Convert(amount float64, fromCode, toCode string) (float64, error) {
	return ConvertCurrency(amount, fromCode, toCode, t.rates)
}

// Update changes the rate of an existing code and persists the table.
// A failed save is returned wrapped in common.ErrPersistence; the new rate
// stays in effect in memory.
func (t *RateTable) Update(code string, rate float64) error {
	code = NormalizeCode(code)
	if _, ok := t.rates[code]; !ok {
		return fmt.Errorf("%w: %s", common.ErrUnknownCurrency, code)
	}
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return common.InvalidInput("rate must be a positive number")
	}
	if code == BaseCurrency && rate != 1.0 {
		return common.InvalidInput("%s is the base currency and must stay at 1.0", BaseCurrency)
	}

	t.rates[code] = rate
	return t.Save()
}

// Save writes the table to disk.
func (t *RateTable) Save() error {
	if err := store.WriteJSON(t.path, t.rates); err != nil {
		return fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}
	return nil
}
