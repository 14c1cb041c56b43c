package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/calcmaster/internal/cli"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"hist"},
		Short:   "View, search, export or clear the calculation history",
	}

	cmd.AddCommand(listHistoryCmd())
	cmd.AddCommand(searchHistoryCmd())
	cmd.AddCommand(historyStatsCmd())
	cmd.AddCommand(clearHistoryCmd())
	cmd.AddCommand(exportHistoryCmd())

	return cmd
}

func listHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the most recent calculations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := initApp(cmd)
			if err != nil {
				return err
			}

			entries := a.history.List(limit)
			if len(entries) == 0 {
				fmt.Fprintln(a.out, cli.FormatInfo("No calculations in history."))
				return nil
			}

			fmt.Fprintln(a.out, cli.FormatTitle(fmt.Sprintf("Recent Calculations (%d of %d)", len(entries), a.history.Len())))
			fmt.Fprintln(a.out, historyTable(entries))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 10, "number of entries to show (0 for all)")

	return cmd
}

func searchHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search TERM",
		Short: "Find calculations containing a term",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp(cmd)
			if err != nil {
				return err
			}

			entries := a.history.Search(args[0])
			if len(entries) == 0 {
				fmt.Fprintln(a.out, cli.FormatInfo(fmt.Sprintf("No calculations match %q.", args[0])))
				return nil
			}
			fmt.Fprintln(a.out, cli.FormatTitle(fmt.Sprintf("Found %d matching calculations", len(entries))))
			fmt.Fprintln(a.out, historyTable(entries))
			return nil
		},
	}
}

func historyStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize the history by calculation type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := initApp(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, statsView(a.history.Stats()))
			return nil
		},
	}
}

func clearHistoryCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every history entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := initApp(cmd)
			if err != nil {
				return err
			}

			if !yes {
				p := cli.NewPrompter(cmd.InOrStdin(), a.out)
				ok, err := p.Confirm(cmd.Context(), fmt.Sprintf("Clear all %d history entries?", a.history.Len()))
				if err != nil || !ok {
					return err
				}
			}

			if err := a.history.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(a.out, cli.FormatSuccess("History cleared."))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}

func exportHistoryCmd() *cobra.Command {
	var formatName, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the history as txt, csv or json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := initApp(cmd)
			if err != nil {
				return err
			}
			return a.export(a.history.Render, a.history.DefaultExportName, formatName, output)
		},
	}

	cmd.Flags().StringVarP(&formatName, "format", "f", "txt", "export format (txt, csv, json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: calc_history_<timestamp>.<format>)")

	return cmd
}
