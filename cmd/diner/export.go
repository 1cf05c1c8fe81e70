package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vbonduro/rubysdiner/internal/assets/local"
	"github.com/vbonduro/rubysdiner/internal/export"
	"github.com/vbonduro/rubysdiner/internal/web"
	"github.com/vbonduro/rubysdiner/internal/web/static"
	"github.com/vbonduro/rubysdiner/internal/web/templates"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the site as static files",
	Long: `Renders the page in its initial state and writes it to --out together
with the stylesheet, the bridge script and every image in the asset directory.
The exported page has no live session; it shows the default menu category.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		ctx := cmd.Context()
		cat, err := loadCatalog(ctx, cfg, logger)
		if err != nil {
			return err
		}
		images, err := local.NewLocalImageStore(cfg.Assets.Dir)
		if err != nil {
			return err
		}

		server := web.NewServer(cat, templates.FS, images, web.Options{Site: siteOptions(cfg)}, logger)
		n, err := export.New(server, web.ModeStatic, static.FS, images, logger).Run(ctx, exportOut, export.NewReporter())
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d files to %s\n", n, exportOut)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "dist", "output directory")
	rootCmd.AddCommand(exportCmd)
}
