package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/calcmaster/internal/cli"
	"github.com/Veraticus/calcmaster/internal/common"
	"github.com/Veraticus/calcmaster/internal/engine"
	"github.com/Veraticus/calcmaster/internal/finance"
	"github.com/Veraticus/calcmaster/internal/format"
)

func financeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "finance",
		Aliases: []string{"fin"},
		Short:   "Interest, loan, GST and currency calculations",
	}

	cmd.AddCommand(simpleInterestCmd())
	cmd.AddCommand(compoundInterestCmd())
	cmd.AddCommand(emiCmd())
	cmd.AddCommand(gstCmd())
	cmd.AddCommand(currencyCmd())

	return cmd
}

// numericCmd builds a command whose positional arguments are all numbers.
func numericCmd(use, short string, names []string, run func(a *app, v []float64) (engine.Result, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(len(names)),
		RunE: func(cmd *cobra.Command, args []string) error {
			values := make([]float64, len(args))
			for i, s := range args {
				v, err := parseArg(names[i], s)
				if err != nil {
					return err
				}
				values[i] = v
			}

			a, err := initApp(cmd)
			if err != nil {
				return err
			}
			r, err := run(a, values)
			if err != nil {
				return err
			}
			a.show(r)
			return nil
		},
	}
}

func simpleInterestCmd() *cobra.Command {
	return numericCmd("si PRINCIPAL RATE YEARS", "Simple interest",
		[]string{"principal", "rate", "years"},
		func(a *app, v []float64) (engine.Result, error) {
			return a.calc.SimpleInterest(v[0], v[1], v[2])
		})
}

func compoundInterestCmd() *cobra.Command {
	var n float64
	cmd := numericCmd("ci PRINCIPAL RATE YEARS", "Compound interest",
		[]string{"principal", "rate", "years"},
		func(a *app, v []float64) (engine.Result, error) {
			return a.calc.CompoundInterest(v[0], v[1], v[2], n)
		})
	cmd.Flags().Float64Var(&n, "n", 1, "compounding periods per year")
	return cmd
}

func emiCmd() *cobra.Command {
	return numericCmd("emi LOAN RATE YEARS", "Monthly loan installment",
		[]string{"loan amount", "rate", "years"},
		func(a *app, v []float64) (engine.Result, error) {
			return a.calc.EMI(v[0], v[1], v[2])
		})
}

func gstCmd() *cobra.Command {
	var extract bool
	cmd := numericCmd("gst AMOUNT RATE", "Add GST to an amount, or extract it with --extract",
		[]string{"amount", "rate"},
		func(a *app, v []float64) (engine.Result, error) {
			direction := finance.GSTAdd
			if extract {
				direction = finance.GSTExtract
			}
			return a.calc.GST(v[0], v[1], direction)
		})
	cmd.Flags().BoolVar(&extract, "extract", false, "treat AMOUNT as GST inclusive and extract the tax")
	return cmd
}

func currencyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "currency AMOUNT FROM TO",
		Short: "Convert between currencies using the stored rates",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseArg("amount", args[0])
			if err != nil {
				return err
			}
			a, err := initApp(cmd)
			if err != nil {
				return err
			}
			r, err := a.calc.Currency(amount, args[1], args[2])
			if err != nil {
				return err
			}
			a.show(r)
			return nil
		},
	}
}

func ratesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Show or update currency rates",
		Long:  `Currency rates are stored relative to USD in currency.json inside the data directory.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the stored currency rates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := initApp(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, cli.FormatTitle("Currency Rates (1 USD =)"))
			fmt.Fprintln(a.out, cli.RenderTable([]string{"Code", "Rate"}, rateRows(a.rates)))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "update CODE RATE",
		Short: "Change the rate of a currency",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rate, err := parseArg("rate", args[1])
			if err != nil {
				return err
			}
			a, err := initApp(cmd)
			if err != nil {
				return err
			}
			if err := a.rates.Update(args[0], rate); err != nil {
				return err
			}
			common.LogInfo("Currency rate updated", common.Fields{"code": finance.NormalizeCode(args[0]), "rate": rate, "path": a.rates.Path()})
			fmt.Fprintln(a.out, cli.FormatSuccess(fmt.Sprintf("Updated %s to %s", finance.NormalizeCode(args[0]), format.Number(rate, a.settings.Precision))))
			return nil
		},
	})

	return cmd
}

func rateRows(t *finance.RateTable) [][]string {
	rates := t.Rates()
	rows := make([][]string, 0, len(rates))
	for _, code := range t.Codes() {
		rows = append(rows, []string{code, format.Number(rates[code], 6)})
	}
	return rows
}
