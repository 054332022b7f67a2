package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"fincalc/config"
)

var (
	verbose    bool
	configPath string

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "fincalc",
	Short: "Financial calculators website and command line",
	Long: `fincalc serves a website of loan, mortgage, debt, savings and
retirement calculators, and runs the same calculators from the terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded

		logger := cfg.Log.NewLogger(os.Stderr, verbose)
		slog.SetDefault(logger)
		return nil
	},
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
}
