package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/go-playground/form/v4"
	"github.com/spf13/cobra"

	"fincalc/domain"
	"fincalc/finance"
)

var promptCmd = &cobra.Command{
	Use:   "prompt [calculator]",
	Short: "Fill in a calculator interactively (defaults to the loan calculator)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		slug := "loan"
		if len(args) == 1 {
			slug = args[0]
		}

		calculators := newCalculatorService()
		calc, err := calculators.Catalog().Get(slug)
		if err != nil {
			return err
		}
		info := calc.Info()
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n\n", info.Title, info.Description)

		values, err := askFields(info.Fields, cfg.Site.Locale)
		if errors.Is(err, terminal.InterruptErr) {
			return nil
		}
		if err != nil {
			return err
		}

		input := calc.NewInput()
		decoder := form.NewDecoder()
		decoder.SetTagName("form")
		if err := decoder.Decode(input, values); err != nil {
			return fmt.Errorf("read answers: %w", err)
		}

		result, err := calculators.Evaluate(context.Background(), slug, input)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), result)
	},
}

// askFields prompts for every field, accepting money in the site locale
// ("$25,000.50") for numeric fields.
func askFields(fields []domain.Field, locale string) (url.Values, error) {
	values := url.Values{}
	for _, f := range fields {
		message := f.Label
		if f.Unit != "" {
			message += " (" + f.Unit + ")"
		}

		var answer string
		var prompt survey.Prompt
		var opts []survey.AskOpt
		switch {
		case len(f.Options) > 0:
			prompt = &survey.Select{Message: message, Options: f.Options, Default: f.Default}
		default:
			prompt = &survey.Input{Message: message, Default: f.Default, Help: f.Help}
			if f.Step != "" {
				opts = append(opts, survey.WithValidator(numberValidator(locale)))
			}
		}
		if err := survey.AskOne(prompt, &answer, opts...); err != nil {
			return nil, err
		}

		if f.Step != "" && strings.TrimSpace(answer) != "" {
			n, err := finance.ParseCurrency(answer, locale)
			if err != nil {
				return nil, err
			}
			answer = strconv.FormatFloat(n, 'f', -1, 64)
		}
		values.Set(f.Name, answer)
	}
	return values, nil
}

func numberValidator(locale string) survey.Validator {
	return func(ans interface{}) error {
		s, _ := ans.(string)
		if strings.TrimSpace(s) == "" {
			return nil
		}
		if _, err := finance.ParseCurrency(s, locale); err != nil {
			return fmt.Errorf("%q is not a number", s)
		}
		return nil
	}
}

func init() {
	rootCmd.AddCommand(promptCmd)
}
