package main

import (
	"strings"

	"github.com/spf13/cobra"
)

func evalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eval EXPRESSION",
		Short: "Evaluate an arithmetic expression",
		Long: `Evaluate an expression with + - * / % ^, parentheses, the constants pi and e
and the functions sin cos tan asin acos atan sqrt log ln exp abs.

Trigonometry follows the configured angle mode:
  calc eval "2 * (3 + 4)"
  calc eval "sin(30)" --angle-mode degrees`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp(cmd)
			if err != nil {
				return err
			}
			r, err := a.calc.Evaluate(strings.Join(args, " "))
			if err != nil {
				return err
			}
			a.show(r)
			return nil
		},
	}
}
