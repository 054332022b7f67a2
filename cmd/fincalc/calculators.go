package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var calculatorsJSON bool

var calculatorsCmd = &cobra.Command{
	Use:   "calculators",
	Short: "List the available calculators",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		infos := newCalculatorService().Catalog().Infos()
		if calculatorsJSON {
			return printJSON(cmd.OutOrStdout(), infos)
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "SLUG\tCATEGORY\tTITLE")
		for _, info := range infos {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", info.Slug, info.Category, info.Title)
		}
		return tw.Flush()
	},
}

func init() {
	calculatorsCmd.Flags().BoolVar(&calculatorsJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(calculatorsCmd)
}
