package main

import (
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"fincalc/app"
	"fincalc/content"
	"fincalc/seo"
)

var (
	sitemapOut    string
	sitemapImages bool
)

var sitemapCmd = &cobra.Command{
	Use:   "sitemap",
	Short: "Write the sitemap XML for the configured base URL",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		library, err := content.Open(cfg.Content.Dir)
		if err != nil {
			return err
		}

		site := app.SiteFromConfig(cfg.Site)
		src := seo.Sources{
			Calculators: newCalculatorService().Catalog().Infos(),
			Articles:    library.Articles(),
			Pages:       library.Pages(),
			Updated:     time.Now(),
		}

		set := site.Sitemap(src)
		if sitemapImages {
			set = site.ImageSitemap(src)
		}
		out, err := seo.Encode(set)
		if err != nil {
			return err
		}

		var w io.Writer = cmd.OutOrStdout()
		if sitemapOut != "" && sitemapOut != "-" {
			f, err := os.Create(sitemapOut)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}
		_, err = w.Write(out)
		return err
	},
}

func init() {
	sitemapCmd.Flags().StringVarP(&sitemapOut, "out", "o", "", "Output file (default stdout)")
	sitemapCmd.Flags().BoolVar(&sitemapImages, "images", false, "Write the image sitemap instead")
	rootCmd.AddCommand(sitemapCmd)
}
