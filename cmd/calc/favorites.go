package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Veraticus/calcmaster/internal/cli"
	"github.com/Veraticus/calcmaster/internal/common"
	"github.com/Veraticus/calcmaster/internal/engine"
	"github.com/Veraticus/calcmaster/internal/favorites"
)

func favoritesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"fav"},
		Short:   "Manage saved calculations",
		Long:    `Save frequently used expressions under a name, group them by category and rerun them.`,
	}

	cmd.AddCommand(addFavoriteCmd())
	cmd.AddCommand(listFavoritesCmd())
	cmd.AddCommand(useFavoriteCmd())
	cmd.AddCommand(editFavoriteCmd())
	cmd.AddCommand(removeFavoriteCmd())
	cmd.AddCommand(topFavoritesCmd())
	cmd.AddCommand(recentFavoritesCmd())
	cmd.AddCommand(favoriteCategoriesCmd())
	cmd.AddCommand(searchFavoritesCmd())
	cmd.AddCommand(clearFavoritesCmd())
	cmd.AddCommand(exportFavoritesCmd())

	return cmd
}

func addFavoriteCmd() *cobra.Command {
	var category string
	var fromLast bool

	cmd := &cobra.Command{
		Use:   "add NAME [EXPRESSION]",
		Short: "Save an expression as a favorite",
		Long: `Save an expression under NAME. With --from-last the newest history
entry is saved instead of EXPRESSION.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if fromLast == (len(args) == 2) {
				return common.InvalidInput("give either EXPRESSION or --from-last")
			}

			a, err := initApp(cmd)
			if err != nil {
				return err
			}

			var expression string
			if fromLast {
				if expression, err = a.lastCalculation(); err != nil {
					return err
				}
			} else {
				expression = args[1]
			}

			fav, err := a.favorites.Add(args[0], expression, category)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, cli.FormatSuccess(fmt.Sprintf("Added %q to favorites in %s", fav.Name, fav.Category)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", favorites.DefaultCategory, "favorite category")
	cmd.Flags().BoolVar(&fromLast, "from-last", false, "save the most recent calculation from history")

	return cmd
}

func listFavoritesCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List favorites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := initApp(cmd)
			if err != nil {
				return err
			}
			return printFavorites(a.out, "Favorites", a.favorites.List(category))
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "only show this category")

	return cmd
}

func useFavoriteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use NAME",
		Short: "Run a favorite and record it in history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp(cmd)
			if err != nil {
				return err
			}
			fav, r, err := a.useFavorite(args[0])
			if err != nil {
				return err
			}
			printFavoriteUse(a.out, fav, r)
			return nil
		},
	}
}

func editFavoriteCmd() *cobra.Command {
	var name, expression, category string

	cmd := &cobra.Command{
		Use:   "edit NAME",
		Short: "Change the name, expression or category of a favorite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var changes favorites.Changes
			if cmd.Flags().Changed("name") {
				changes.Name = &name
			}
			if cmd.Flags().Changed("expression") {
				changes.Expression = &expression
			}
			if cmd.Flags().Changed("category") {
				changes.Category = &category
			}
			if changes == (favorites.Changes{}) {
				return common.InvalidInput("nothing to change: use --name, --expression or --category")
			}

			a, err := initApp(cmd)
			if err != nil {
				return err
			}
			index, err := a.favorites.Index(args[0])
			if err != nil {
				return err
			}
			fav, err := a.favorites.Edit(index, changes)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, cli.FormatSuccess(fmt.Sprintf("Updated %q", fav.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&expression, "expression", "", "new expression")
	cmd.Flags().StringVar(&category, "category", "", "new category")

	return cmd
}

func removeFavoriteCmd() *cobra.Command {
	var index int

	cmd := &cobra.Command{
		Use:     "remove [NAME]",
		Aliases: []string{"rm"},
		Short:   "Remove a favorite by name or by its list number",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (index > 0) == (len(args) == 1) {
				return common.InvalidInput("give either NAME or --index")
			}

			a, err := initApp(cmd)
			if err != nil {
				return err
			}

			var removed favorites.Entry
			if len(args) == 1 {
				removed, err = a.favorites.RemoveByName(args[0])
			} else {
				removed, err = a.favorites.Remove(index - 1)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, cli.FormatSuccess(fmt.Sprintf("Removed %q", removed.Name)))
			return nil
		},
	}

	cmd.Flags().IntVarP(&index, "index", "i", 0, "list number shown by 'calc favorites list'")

	return cmd
}

func topFavoritesCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "top",
		Short: "Show the most used favorites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := initApp(cmd)
			if err != nil {
				return err
			}
			return printFavorites(a.out, "Most Used Favorites", a.favorites.MostUsed(limit))
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 5, "number of favorites to show")

	return cmd
}

func recentFavoritesCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show the most recently used favorites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := initApp(cmd)
			if err != nil {
				return err
			}
			return printFavorites(a.out, "Recently Used Favorites", a.favorites.RecentlyUsed(limit))
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 5, "number of favorites to show")

	return cmd
}

func favoriteCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List favorite categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := initApp(cmd)
			if err != nil {
				return err
			}
			categories := a.favorites.Categories()
			if len(categories) == 0 {
				fmt.Fprintln(a.out, cli.FormatInfo("No favorites saved yet."))
				return nil
			}
			rows := make([][]string, len(categories))
			for i, c := range categories {
				rows[i] = []string{c, fmt.Sprint(len(a.favorites.List(c)))}
			}
			fmt.Fprintln(a.out, cli.RenderTable([]string{"Category", "Favorites"}, rows))
			return nil
		},
	}
}

func searchFavoritesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search TERM",
		Short: "Find favorites by name, expression or category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp(cmd)
			if err != nil {
				return err
			}
			return printFavorites(a.out, fmt.Sprintf("Favorites matching %q", args[0]), a.favorites.Search(args[0]))
		},
	}
}

func clearFavoritesCmd() *cobra.Command {
	var category string
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all favorites, or one category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := initApp(cmd)
			if err != nil {
				return err
			}

			if !yes {
				question := "Clear all favorites?"
				if category != "" {
					question = fmt.Sprintf("Clear all favorites in %s?", category)
				}
				p := cli.NewPrompter(cmd.InOrStdin(), a.out)
				ok, err := p.Confirm(cmd.Context(), question)
				if err != nil || !ok {
					return err
				}
			}

			if err := a.favorites.Clear(category); err != nil {
				return err
			}
			fmt.Fprintln(a.out, cli.FormatSuccess("Favorites cleared."))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "only clear this category")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}

func exportFavoritesCmd() *cobra.Command {
	var formatName, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export favorites as txt, csv or json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := initApp(cmd)
			if err != nil {
				return err
			}
			return a.export(a.favorites.Render, a.favorites.DefaultExportName, formatName, output)
		},
	}

	cmd.Flags().StringVarP(&formatName, "format", "f", "json", "export format (txt, csv, json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: calc_favorites_<timestamp>.<format>)")

	return cmd
}

func printFavorites(w io.Writer, title string, entries []favorites.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, cli.FormatInfo("No favorites found."))
		return err
	}
	_, err := fmt.Fprintf(w, "%s\n%s\n", cli.FormatTitle(cli.StarIcon+" "+title), favoritesTable(entries))
	return err
}

func printFavoriteUse(w io.Writer, fav favorites.Entry, r *engine.Result) {
	if r != nil {
		fmt.Fprintln(w, cli.RenderResult(*r))
	} else {
		fmt.Fprintln(w, cli.RenderBox(fav.Name, fav.Expression))
		fmt.Fprintln(w, cli.FormatWarning("This favorite is a note and cannot be evaluated directly."))
	}
	fmt.Fprintln(w, cli.FormatInfo(fmt.Sprintf("Used %d times", fav.UsageCount)))
}
