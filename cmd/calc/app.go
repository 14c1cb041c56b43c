package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/calcmaster/internal/calc"
	"github.com/Veraticus/calcmaster/internal/cli"
	"github.com/Veraticus/calcmaster/internal/common"
	"github.com/Veraticus/calcmaster/internal/config"
	"github.com/Veraticus/calcmaster/internal/convert"
	"github.com/Veraticus/calcmaster/internal/engine"
	"github.com/Veraticus/calcmaster/internal/favorites"
	"github.com/Veraticus/calcmaster/internal/finance"
	"github.com/Veraticus/calcmaster/internal/history"
	"github.com/Veraticus/calcmaster/internal/store"
)

// app bundles everything a command needs.
type app struct {
	out       io.Writer
	settings  *config.Settings
	calc      *engine.Calculator
	rates     *finance.RateTable
	history   *history.Store
	favorites *favorites.Store
}

// initApp loads the settings and opens the data files. Unreadable data files
// are preserved and replaced with empty ones, so this only fails on bad
// settings or an unusable data directory.
func initApp(cmd *cobra.Command) (*app, error) {
	settings, err := config.LoadSettings(viper.GetViper())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidConfig, err)
	}

	logger := slog.Default().With("data_dir", settings.Paths.DataDir)

	rates := finance.LoadRateTable(settings.Paths.Currency)
	calculator := engine.NewWithConfig(convert.Default(), rates, engine.Config{
		AngleMode: calc.AngleMode(settings.AngleMode),
		Precision: settings.Precision,
	})

	hist, err := history.Open(settings.Paths.History,
		history.WithLimit(settings.HistoryLimit),
		history.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	favs, err := favorites.Open(settings.Paths.Favorites, favorites.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	return &app{
		out:       cmd.OutOrStdout(),
		settings:  settings,
		calc:      calculator,
		rates:     rates,
		history:   hist,
		favorites: favs,
	}, nil
}

// record appends a result to the history. A failed save is only logged: the
// entry stays in memory and the calculation itself succeeded.
func (a *app) record(r engine.Result) {
	if _, err := a.history.Record(r.Expression, r.Display); err != nil {
		common.LogWarn(err, "Could not save calculation to history", common.Fields{"calculation": r.Expression})
	}
}

// show prints a result and records it.
func (a *app) show(r engine.Result) {
	fmt.Fprintln(a.out, cli.RenderResult(r))
	a.record(r)
}

// useFavorite marks a favorite as used and evaluates its expression. The
// result is nil when the expression is not something the evaluator accepts,
// such as "100 USD to EUR"; the favorite is still returned for display.
func (a *app) useFavorite(name string) (favorites.Entry, *engine.Result, error) {
	fav, err := a.favorites.RecordUsage(name)
	if err != nil {
		if !errors.Is(err, common.ErrPersistence) {
			return favorites.Entry{}, nil, err
		}
		common.LogWarn(err, "Could not save favorite usage", common.Fields{"favorite": name})
	}

	r, err := a.calc.Evaluate(fav.Expression)
	if err != nil {
		common.LogDebug("Favorite expression is not evaluable", common.Fields{"favorite": fav.Name, "error": err.Error()})
		return fav, nil, nil
	}
	a.record(r)
	return fav, &r, nil
}

// lastCalculation returns the newest history entry's calculation text.
func (a *app) lastCalculation() (string, error) {
	entries := a.history.List(1)
	if len(entries) == 0 {
		return "", fmt.Errorf("%w: history is empty", common.ErrNotFound)
	}
	return entries[0].Calculation, nil
}

// export writes rendered data to path with a progress bar and reports it.
func (a *app) export(render func(store.ExportFormat) ([]byte, error), defaultName func(store.ExportFormat) string, formatName, path string) error {
	format, err := store.ParseExportFormat(formatName)
	if err != nil {
		return err
	}
	data, err := render(format)
	if err != nil {
		return err
	}
	if path == "" {
		path = defaultName(format)
	}
	if err := cli.WriteExport(a.out, path, data); err != nil {
		return err
	}
	fmt.Fprintln(a.out, cli.FormatSuccess(fmt.Sprintf("Exported to %s", path)))
	return nil
}
