package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/calcmaster/internal/calc"
	"github.com/Veraticus/calcmaster/internal/cli"
	"github.com/Veraticus/calcmaster/internal/convert"
	"github.com/Veraticus/calcmaster/internal/engine"
	"github.com/Veraticus/calcmaster/internal/favorites"
	"github.com/Veraticus/calcmaster/internal/finance"
	"github.com/Veraticus/calcmaster/internal/format"
	"github.com/Veraticus/calcmaster/internal/store"
)

const helpText = `CalcMaster 360 is a multi-functional calculator with
various modes to suit your calculation needs.

FEATURES:
- Basic: Standard arithmetic operations and memory
- Scientific: Trig, log, exponents, and more
- Financial: Interest, EMI, GST and currency conversion
- Converter: Unit conversions for length, weight, etc.
- History: View, search and export past calculations
- Favorites: Save frequently used calculations

NAVIGATION:
- Use numbers to select menu options
- Follow prompts for inputs
- Type 'back' or 'menu' to return to the previous screen
- Press Ctrl+C to cancel the current prompt`

func menuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Open the interactive calculator menu",
		Args:  cobra.NoArgs,
		RunE:  runMenu,
	}
}

func runMenu(cmd *cobra.Command, _ []string) error {
	a, err := initApp(cmd)
	if err != nil {
		return err
	}

	p := cli.NewPrompter(cmd.InOrStdin(), a.out)
	if interrupts != nil {
		p = p.WithInterrupts(interrupts)
	}

	s := &session{app: a, p: p}
	return s.mainMenu().Run(cmd.Context(), p)
}

// session runs the interactive menus against one app.
type session struct {
	*app
	p *cli.Prompter
}

func (s *session) mainMenu() cli.Menu {
	return cli.Menu{
		Title:    cli.CalcIcon + " CalcMaster 360",
		BackText: "Exit",
		Items: []cli.MenuItem{
			{Label: "Basic Calculator", Action: s.submenu(s.basicMenu)},
			{Label: "Scientific Calculator", Action: s.submenu(s.scientificMenu)},
			{Label: "Financial Calculator", Action: s.submenu(s.financialMenu)},
			{Label: "Unit Converter", Action: s.submenu(s.converterMenu)},
			{Label: "View Calculation History", Action: s.submenu(s.historyMenu)},
			{Label: "Favorites", Action: s.submenu(s.favoritesMenu)},
			{Label: "Help", Action: s.help},
		},
	}
}

func (s *session) submenu(build func() cli.Menu) cli.Action {
	return func(ctx context.Context) error {
		return build().Run(ctx, s.p)
	}
}

func (s *session) help(context.Context) error {
	s.p.Println(cli.RenderBox(cli.FormatTitle("Help & Information"), helpText))
	return nil
}

// compute shows and records the result of a computation.
func (s *session) compute(r engine.Result, err error) error {
	if err != nil {
		return err
	}
	s.p.ShowResult(r)
	s.record(r)
	return nil
}

// Basic mode.

func (s *session) basicMenu() cli.Menu {
	return cli.Menu{
		Title:    "Basic Calculator",
		BackText: "Back to Main Menu",
		Items: []cli.MenuItem{
			{Label: "Simple Calculation", Action: s.simpleCalculation},
			{Label: "Square", Action: s.unary("Enter a number", func(x float64) (engine.Result, error) {
				return s.calc.Square(x), nil
			})},
			{Label: "Square Root", Action: s.unary("Enter a number", s.calc.SquareRoot)},
			{Label: "Percentage", Action: s.percentage},
			{Label: "Memory Functions", Action: s.submenu(s.memoryMenu)},
		},
	}
}

func (s *session) unary(prompt string, fn func(float64) (engine.Result, error)) cli.Action {
	return func(ctx context.Context) error {
		x, err := s.p.Number(ctx, prompt)
		if err != nil {
			return err
		}
		return s.compute(fn(x))
	}
}

func (s *session) simpleCalculation(ctx context.Context) error {
	a, err := s.p.Number(ctx, "Enter first number")
	if err != nil {
		return err
	}

	var op calc.Operator
	for {
		line, err := s.p.Line(ctx, "Enter operator (+, -, *, /)")
		if err != nil {
			return err
		}
		if op, err = calc.ParseOperator(line); err == nil {
			break
		}
		s.p.Error("Please enter one of + - * /.")
	}

	b, err := s.p.Number(ctx, "Enter second number")
	if err != nil {
		return err
	}
	return s.compute(s.calc.Arithmetic(a, op, b))
}

func (s *session) percentage(ctx context.Context) error {
	value, err := s.p.Number(ctx, "Enter the value")
	if err != nil {
		return err
	}
	percent, err := s.p.Number(ctx, "Enter the percentage")
	if err != nil {
		return err
	}
	return s.compute(s.calc.Percentage(value, percent), nil)
}

func (s *session) memoryMenu() cli.Menu {
	mem := s.calc.Memory()
	update := func(prompt, verb string, apply func(float64) float64) cli.Action {
		return func(ctx context.Context) error {
			v, err := s.p.Number(ctx, prompt)
			if err != nil {
				return err
			}
			total := apply(v)
			s.p.Success("%s %s. New value: %s", verb, s.calc.Format(v), s.calc.Format(total))
			return nil
		}
	}

	return cli.Menu{
		Title:    "Memory Functions",
		BackText: "Back to Basic Calculator",
		Header: func() string {
			return "Current Memory: " + s.calc.Format(mem.Recall())
		},
		Items: []cli.MenuItem{
			{Label: "Memory Add (M+)", Action: update("Enter value to add to memory", "Added", mem.Add)},
			{Label: "Memory Subtract (M-)", Action: update("Enter value to subtract from memory", "Subtracted", mem.Subtract)},
			{Label: "Memory Recall (MR)", Action: func(context.Context) error {
				s.p.Info("Memory value: %s", s.calc.Format(mem.Recall()))
				return nil
			}},
			{Label: "Memory Clear (MC)", Action: func(context.Context) error {
				mem.Clear()
				s.p.Success("Memory cleared.")
				return nil
			}},
		},
	}
}

// Scientific mode.

func (s *session) scientificMenu() cli.Menu {
	return cli.Menu{
		Title:    "Scientific Calculator",
		BackText: "Back to Main Menu",
		Header: func() string {
			return "Angle Mode: " + strings.ToUpper(string(s.calc.AngleMode()))
		},
		Items: []cli.MenuItem{
			{Label: "Trigonometric Functions", Action: s.functionPicker("Trigonometric Functions", "Enter angle", "sin", "cos", "tan")},
			{Label: "Inverse Trigonometric Functions", Action: s.functionPicker("Inverse Trigonometric Functions", "Enter value", "asin", "acos", "atan")},
			{Label: "Logarithms", Action: s.logarithm},
			{Label: "Exponential Functions", Action: s.exponential},
			{Label: "Power Function", Action: s.power},
			{Label: "Factorial", Action: s.unary("Enter a non-negative integer", s.calc.Factorial)},
			{Label: "Absolute Value", Action: s.unary("Enter a number", func(x float64) (engine.Result, error) {
				return s.calc.Function("abs", x)
			})},
			{Label: "Toggle Angle Mode (Degrees/Radians)", Action: func(context.Context) error {
				s.p.Success("Angle mode set to %s", strings.ToUpper(string(s.calc.ToggleAngleMode())))
				return nil
			}},
			{Label: "Evaluate Expression", Action: s.evaluate},
		},
	}
}

func (s *session) functionPicker(title, prompt string, names ...string) cli.Action {
	return func(ctx context.Context) error {
		name, err := s.p.Select(ctx, title, names)
		if err != nil {
			return err
		}
		x, err := s.p.Number(ctx, prompt)
		if err != nil {
			return err
		}
		return s.compute(s.calc.Function(name, x))
	}
}

func (s *session) logarithm(ctx context.Context) error {
	kind, err := s.p.Select(ctx, "Logarithms", []string{
		"Logarithm (base 10)",
		"Natural Logarithm (base e)",
		"Custom Base Logarithm",
	})
	if err != nil {
		return err
	}

	x, err := s.p.Number(ctx, "Enter a positive number")
	if err != nil {
		return err
	}

	switch {
	case strings.HasPrefix(kind, "Natural"):
		return s.compute(s.calc.Function("ln", x))
	case strings.HasPrefix(kind, "Custom"):
		base, err := s.p.Number(ctx, "Enter the base")
		if err != nil {
			return err
		}
		return s.compute(s.calc.Log(x, base))
	default:
		return s.compute(s.calc.Log(x, 10))
	}
}

func (s *session) exponential(ctx context.Context) error {
	kind, err := s.p.Select(ctx, "Exponential Functions", []string{"e^x", "10^x"})
	if err != nil {
		return err
	}
	x, err := s.p.Number(ctx, "Enter x")
	if err != nil {
		return err
	}
	if kind == "10^x" {
		return s.compute(s.calc.Power(10, x))
	}
	return s.compute(s.calc.Function("exp", x))
}

func (s *session) power(ctx context.Context) error {
	base, err := s.p.Number(ctx, "Enter the base")
	if err != nil {
		return err
	}
	exponent, err := s.p.Number(ctx, "Enter the exponent")
	if err != nil {
		return err
	}
	return s.compute(s.calc.Power(base, exponent))
}

func (s *session) evaluate(ctx context.Context) error {
	expr, err := s.p.Text(ctx, "Enter expression (e.g. 2 * sin(30) + sqrt(16))", "")
	if err != nil {
		return err
	}
	return s.compute(s.calc.Evaluate(expr))
}

// Financial mode.

func (s *session) financialMenu() cli.Menu {
	return cli.Menu{
		Title:    "Financial Calculator",
		BackText: "Back to Main Menu",
		Items: []cli.MenuItem{
			{Label: "Simple Interest Calculator", Action: s.simpleInterest},
			{Label: "Compound Interest Calculator", Action: s.compoundInterest},
			{Label: "EMI Calculator", Action: s.emi},
			{Label: "GST Calculator", Action: s.gst},
			{Label: "Currency Converter", Action: s.currency},
			{Label: "Manage Currency Rates", Action: s.manageRates},
		},
	}
}

// numbers prompts for each value in turn.
func (s *session) numbers(ctx context.Context, prompts ...string) ([]float64, error) {
	values := make([]float64, len(prompts))
	for i, prompt := range prompts {
		v, err := s.p.Number(ctx, prompt)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

func (s *session) simpleInterest(ctx context.Context) error {
	v, err := s.numbers(ctx, "Enter principal amount", "Enter annual interest rate (%)", "Enter time period (years)")
	if err != nil {
		return err
	}
	return s.compute(s.calc.SimpleInterest(v[0], v[1], v[2]))
}

func (s *session) compoundInterest(ctx context.Context) error {
	v, err := s.numbers(ctx,
		"Enter principal amount",
		"Enter annual interest rate (%)",
		"Enter time period (years)",
		"Enter compounding frequency per year (1=annually, 12=monthly)")
	if err != nil {
		return err
	}
	return s.compute(s.calc.CompoundInterest(v[0], v[1], v[2], v[3]))
}

func (s *session) emi(ctx context.Context) error {
	v, err := s.numbers(ctx, "Enter loan amount", "Enter annual interest rate (%)", "Enter loan tenure (years)")
	if err != nil {
		return err
	}
	return s.compute(s.calc.EMI(v[0], v[1], v[2]))
}

func (s *session) gst(ctx context.Context) error {
	kind, err := s.p.Select(ctx, "GST Calculator", []string{"Add GST to amount", "Extract GST from amount"})
	if err != nil {
		return err
	}
	direction := finance.GSTAdd
	if strings.HasPrefix(kind, "Extract") {
		direction = finance.GSTExtract
	}

	v, err := s.numbers(ctx, "Enter amount", "Enter GST rate (%)")
	if err != nil {
		return err
	}
	return s.compute(s.calc.GST(v[0], v[1], direction))
}

func (s *session) currency(ctx context.Context) error {
	s.p.Info("Available currencies: %s", strings.Join(s.rates.Codes(), ", "))

	amount, err := s.p.Number(ctx, "Enter amount")
	if err != nil {
		return err
	}
	from, err := s.p.Text(ctx, "From currency", "")
	if err != nil {
		return err
	}
	to, err := s.p.Text(ctx, "To currency", "")
	if err != nil {
		return err
	}
	return s.compute(s.calc.Currency(amount, from, to))
}

func (s *session) manageRates(ctx context.Context) error {
	s.p.Println(cli.FormatTitle("Current rates (1 USD =)"))
	s.p.Println(cli.RenderTable([]string{"Code", "Rate"}, rateRows(s.rates)))

	ok, err := s.p.Confirm(ctx, "Update an exchange rate?")
	if err != nil || !ok {
		return err
	}

	code, err := s.p.Text(ctx, "Enter currency code to update", "")
	if err != nil {
		return err
	}
	code = finance.NormalizeCode(code)
	if _, err := s.rates.Rate(code); err != nil {
		return err
	}
	rate, err := s.p.Number(ctx, fmt.Sprintf("Enter new exchange rate for %s (1 USD = ? %s)", code, code))
	if err != nil {
		return err
	}
	if err := s.rates.Update(code, rate); err != nil {
		return err
	}
	s.p.Success("Exchange rate for %s updated to %s", code, format.Number(rate, 6))
	return nil
}

// Unit converter.

func (s *session) converterMenu() cli.Menu {
	catalog := s.calc.Catalog()
	items := make([]cli.MenuItem, 0, len(catalog.Categories())+1)
	for _, cat := range catalog.Categories() {
		label := strings.ToUpper(string(cat[:1])) + string(cat[1:]) + " Converter"
		items = append(items, cli.MenuItem{Label: label, Action: s.categoryConverter(cat)})
	}
	items = append(items, cli.MenuItem{Label: "Quick Convert", Action: s.quickConvert})

	return cli.Menu{
		Title:    "Unit Converter",
		BackText: "Back to Main Menu",
		Items:    items,
	}
}

func (s *session) categoryConverter(cat convert.Category) cli.Action {
	return func(ctx context.Context) error {
		catalog := s.calc.Catalog()
		names, err := catalog.Units(cat)
		if err != nil {
			return err
		}
		options := make([]string, len(names))
		for i, n := range names {
			options[i] = catalog.DisplayName(n)
		}

		from, err := s.pickUnit(ctx, "Convert from", names, options)
		if err != nil {
			return err
		}
		to, err := s.pickUnit(ctx, "Convert to", names, options)
		if err != nil {
			return err
		}
		value, err := s.p.Number(ctx, fmt.Sprintf("Enter value in %s", catalog.DisplayName(from)))
		if err != nil {
			return err
		}
		return s.compute(s.calc.Convert(cat, value, from, to))
	}
}

// pickUnit selects a unit by its display name and returns its catalog name.
func (s *session) pickUnit(ctx context.Context, title string, names, options []string) (string, error) {
	picked, err := s.p.Select(ctx, title, options)
	if err != nil {
		return "", err
	}
	for i, o := range options {
		if o == picked {
			return names[i], nil
		}
	}
	return picked, nil
}

func (s *session) quickConvert(ctx context.Context) error {
	value, err := s.p.Number(ctx, "Enter value")
	if err != nil {
		return err
	}
	from, err := s.p.Text(ctx, "From unit (e.g. kilometer)", "")
	if err != nil {
		return err
	}
	to, err := s.p.Text(ctx, "To unit (e.g. mile)", "")
	if err != nil {
		return err
	}
	return s.compute(s.calc.QuickConvert(value, from, to))
}

// History.

func (s *session) historyMenu() cli.Menu {
	return cli.Menu{
		Title:    "Calculation History",
		BackText: "Back to Main Menu",
		Header: func() string {
			return fmt.Sprintf("%d calculations stored", s.history.Len())
		},
		Items: []cli.MenuItem{
			{Label: "View Recent Calculations", Action: func(context.Context) error {
				entries := s.history.List(10)
				if len(entries) == 0 {
					s.p.Info("No calculations in history.")
					return nil
				}
				s.p.Println(historyTable(entries))
				return nil
			}},
			{Label: "Search History", Action: s.searchHistory},
			{Label: "Statistics", Action: func(context.Context) error {
				s.p.Println(statsView(s.history.Stats()))
				return nil
			}},
			{Label: "Export History", Action: func(ctx context.Context) error {
				return s.exportWith(ctx, s.history.Render, s.history.DefaultExportName)
			}},
			{Label: "Clear History", Action: s.clearHistory},
		},
	}
}

func (s *session) searchHistory(ctx context.Context) error {
	term, err := s.p.Text(ctx, "Search term", "")
	if err != nil {
		return err
	}
	entries := s.history.Search(term)
	if len(entries) == 0 {
		s.p.Info("No calculations match %q.", term)
		return nil
	}
	s.p.Println(historyTable(entries))
	return nil
}

func (s *session) clearHistory(ctx context.Context) error {
	ok, err := s.p.Confirm(ctx, "Are you sure you want to clear all history?")
	if err != nil || !ok {
		return err
	}
	if err := s.history.Clear(); err != nil {
		return err
	}
	s.p.Success("History cleared.")
	return nil
}

func (s *session) exportWith(ctx context.Context, render func(store.ExportFormat) ([]byte, error), defaultName func(store.ExportFormat) string) error {
	formatName, err := s.p.Select(ctx, "Export format", []string{"txt", "csv", "json"})
	if err != nil {
		return err
	}
	path, err := s.p.Line(ctx, "Output file (Enter for default)")
	if err != nil {
		return err
	}
	return s.export(render, defaultName, formatName, path)
}

// Favorites.

func (s *session) favoritesMenu() cli.Menu {
	return cli.Menu{
		Title:    cli.StarIcon + " Favorites",
		BackText: "Back to Main Menu",
		Items: []cli.MenuItem{
			{Label: "View Favorites", Action: func(context.Context) error {
				return printFavorites(s.p.Writer(), "Favorites", s.favorites.List(""))
			}},
			{Label: "Use Favorite", Action: s.useFavoriteAction},
			{Label: "Add Favorite", Action: s.addFavorite},
			{Label: "Add Last Calculation to Favorites", Action: s.addLastFavorite},
			{Label: "Edit Favorite", Action: s.editFavorite},
			{Label: "Remove from Favorites", Action: s.removeFavorite},
			{Label: "Most Used", Action: func(context.Context) error {
				return printFavorites(s.p.Writer(), "Most Used Favorites", s.favorites.MostUsed(5))
			}},
			{Label: "Recently Used", Action: func(context.Context) error {
				return printFavorites(s.p.Writer(), "Recently Used Favorites", s.favorites.RecentlyUsed(5))
			}},
			{Label: "Search Favorites", Action: s.searchFavorites},
			{Label: "Export Favorites", Action: func(ctx context.Context) error {
				return s.exportWith(ctx, s.favorites.Render, s.favorites.DefaultExportName)
			}},
			{Label: "Clear Favorites", Action: s.clearFavorites},
		},
	}
}

// pickFavorite lets the user choose a favorite by name.
func (s *session) pickFavorite(ctx context.Context) (favorites.Entry, int, error) {
	entries := s.favorites.List("")
	if len(entries) == 0 {
		s.p.Info("No favorites saved yet.")
		return favorites.Entry{}, -1, cli.ErrBack
	}
	options := make([]string, len(entries))
	for i, e := range entries {
		options[i] = fmt.Sprintf("%s: %s", e.Name, e.Expression)
	}
	s.p.Println(favoritesTable(entries))

	choice, err := s.p.Choice(ctx, len(entries))
	if err != nil {
		return favorites.Entry{}, -1, err
	}
	return entries[choice-1], choice - 1, nil
}

func (s *session) useFavoriteAction(ctx context.Context) error {
	fav, _, err := s.pickFavorite(ctx)
	if err != nil {
		return err
	}
	fav, r, err := s.useFavorite(fav.Name)
	if err != nil {
		return err
	}
	printFavoriteUse(s.p.Writer(), fav, r)
	return nil
}

func (s *session) addFavorite(ctx context.Context) error {
	expression, err := s.p.Text(ctx, "Expression", "")
	if err != nil {
		return err
	}
	return s.saveFavorite(ctx, expression)
}

func (s *session) addLastFavorite(ctx context.Context) error {
	expression, err := s.lastCalculation()
	if err != nil {
		return err
	}
	s.p.Info("Last calculation: %s", expression)
	return s.saveFavorite(ctx, expression)
}

func (s *session) saveFavorite(ctx context.Context, expression string) error {
	name, err := s.p.Text(ctx, "Name for this favorite", "")
	if err != nil {
		return err
	}
	category, err := s.p.Text(ctx, "Category (Enter for general)", favorites.DefaultCategory)
	if err != nil {
		return err
	}
	fav, err := s.favorites.Add(name, expression, category)
	if err != nil {
		return err
	}
	s.p.Success("Added %q to favorites in %s", fav.Name, fav.Category)
	return nil
}

func (s *session) editFavorite(ctx context.Context) error {
	fav, index, err := s.pickFavorite(ctx)
	if err != nil {
		return err
	}

	var changes favorites.Changes
	for _, field := range []struct {
		target **string
		label  string
		value  string
	}{
		{label: "Name", value: fav.Name, target: &changes.Name},
		{label: "Expression", value: fav.Expression, target: &changes.Expression},
		{label: "Category", value: fav.Category, target: &changes.Category},
	} {
		line, err := s.p.Line(ctx, fmt.Sprintf("%s [%s]", field.label, field.value))
		if err != nil {
			return err
		}
		if line != "" && line != field.value {
			*field.target = &line
		}
	}

	if changes == (favorites.Changes{}) {
		s.p.Info("Nothing changed.")
		return nil
	}
	updated, err := s.favorites.Edit(index, changes)
	if err != nil {
		return err
	}
	s.p.Success("Updated %q", updated.Name)
	return nil
}

func (s *session) removeFavorite(ctx context.Context) error {
	fav, index, err := s.pickFavorite(ctx)
	if err != nil {
		return err
	}
	ok, err := s.p.Confirm(ctx, fmt.Sprintf("Remove %q?", fav.Name))
	if err != nil || !ok {
		return err
	}
	if _, err := s.favorites.Remove(index); err != nil {
		return err
	}
	s.p.Success("Removed %q", fav.Name)
	return nil
}

func (s *session) searchFavorites(ctx context.Context) error {
	term, err := s.p.Text(ctx, "Search term", "")
	if err != nil {
		return err
	}
	return printFavorites(s.p.Writer(), fmt.Sprintf("Favorites matching %q", term), s.favorites.Search(term))
}

func (s *session) clearFavorites(ctx context.Context) error {
	category, err := s.p.Line(ctx, "Category to clear (Enter for all)")
	if err != nil {
		return err
	}
	question := "Clear all favorites?"
	if category != "" {
		question = fmt.Sprintf("Clear all favorites in %s?", category)
	}
	ok, err := s.p.Confirm(ctx, question)
	if err != nil || !ok {
		return err
	}
	if err := s.favorites.Clear(category); err != nil {
		return err
	}
	s.p.Success("Favorites cleared.")
	return nil
}
