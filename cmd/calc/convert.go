package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/calcmaster/internal/cli"
	"github.com/Veraticus/calcmaster/internal/common"
	"github.com/Veraticus/calcmaster/internal/convert"
	"github.com/Veraticus/calcmaster/internal/engine"
)

func convertCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "convert VALUE FROM TO",
		Short: "Convert a value between units",
		Long: `Convert a value between two units of the same category.

Without --category the category is detected from the two units:
  calc convert 100 centimeter meter
  calc convert 98.6 fahrenheit celsius
  calc convert 5 kilometer mile --category length`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := parseArg("value", args[0])
			if err != nil {
				return err
			}

			a, err := initApp(cmd)
			if err != nil {
				return err
			}

			var r engine.Result
			if category == "" {
				r, err = a.calc.QuickConvert(value, args[1], args[2])
			} else {
				cat, parseErr := a.calc.Catalog().ParseCategory(category)
				if parseErr != nil {
					return parseErr
				}
				r, err = a.calc.Convert(cat, value, args[1], args[2])
			}
			if err != nil {
				return err
			}

			a.show(r)
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "unit category (length, weight, temperature, time, volume, area)")

	return cmd
}

func unitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "units [category]",
		Short: "List conversion categories and their units",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp(cmd)
			if err != nil {
				return err
			}
			catalog := a.calc.Catalog()

			categories := catalog.Categories()
			if len(args) == 1 {
				cat, err := catalog.ParseCategory(args[0])
				if err != nil {
					return err
				}
				categories = []convert.Category{cat}
			}

			var rows [][]string
			for _, cat := range categories {
				names, err := catalog.Units(cat)
				if err != nil {
					return err
				}
				display := make([]string, len(names))
				for i, n := range names {
					display[i] = fmt.Sprintf("%s (%s)", catalog.DisplayName(n), n)
				}
				rows = append(rows, []string{string(cat), strings.Join(display, ", ")})
			}

			fmt.Fprintln(a.out, cli.FormatTitle("Unit Conversions"))
			fmt.Fprintln(a.out, cli.RenderTable([]string{"Category", "Units"}, rows))
			return nil
		},
	}
}

// parseArg parses a numeric command argument.
func parseArg(name, s string) (float64, error) {
	v, err := cli.ParseNumber(s)
	if err != nil {
		return 0, common.NewUserError(fmt.Sprintf("invalid %s %q", name, s), common.ErrInvalidInput)
	}
	return v, nil
}
