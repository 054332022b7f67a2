package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"fincalc/service"
)

var calcInput string

var calcCmd = &cobra.Command{
	Use:   "calc <calculator>",
	Short: "Run a calculator on a JSON input and print the JSON result",
	Example: `  fincalc calc loan --input '{"amount": 10000, "annual_rate": 12, "term_months": 24}'
  fincalc calc mortgage --input @house.json
  echo '{"balance": 6000, "apr": 19.9, "monthly_payment": 250}' | fincalc calc credit-card-payoff --input -`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readInput(calcInput, cmd.InOrStdin())
		if err != nil {
			return err
		}

		_, result, err := newCalculatorService().EvaluateJSON(context.Background(), args[0], raw)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), result)
	},
}

func newCalculatorService() *service.CalculatorService {
	explainer := service.NewExplanationService(cfg.Site.Locale, cfg.Site.Currency)
	return service.NewCalculatorService(service.NewDefaultCatalog(explainer), nil, 0)
}

// readInput accepts inline JSON, @file, or - for stdin. Empty input runs
// the calculator on zero values.
func readInput(arg string, stdin io.Reader) ([]byte, error) {
	switch {
	case arg == "-":
		return io.ReadAll(stdin)
	case strings.HasPrefix(arg, "@"):
		data, err := os.ReadFile(strings.TrimPrefix(arg, "@"))
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		return data, nil
	default:
		return []byte(arg), nil
	}
}

func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func init() {
	calcCmd.Flags().StringVarP(&calcInput, "input", "i", "", "JSON input, @file or - for stdin")
	rootCmd.AddCommand(calcCmd)
}
