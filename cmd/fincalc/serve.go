package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"fincalc/app"
)

var (
	serveAddr       string
	serveContentDir string
	serveWatch      bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the website",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if serveAddr != "" {
			cfg.Server.Addr = serveAddr
		}
		if serveContentDir != "" {
			cfg.Content.Dir = serveContentDir
		}
		if cmd.Flags().Changed("watch") {
			cfg.Content.Watch = serveWatch
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := app.New(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		return a.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides server.addr)")
	serveCmd.Flags().StringVar(&serveContentDir, "content", "", "Directory of markdown content (overrides content.dir)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "Reload content when files change")
	rootCmd.AddCommand(serveCmd)
}
