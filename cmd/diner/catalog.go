package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vbonduro/rubysdiner/internal/catalog"
	"github.com/vbonduro/rubysdiner/internal/db"
	"github.com/vbonduro/rubysdiner/internal/service"
	"github.com/vbonduro/rubysdiner/internal/store"
)

var seedFrom string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the menu and site catalog",
}

var catalogSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write a catalog into the SQLite store",
	Long: `Reads the catalog from --from (or the embedded default) and replaces the
contents of catalog.db_path with it. Serve with catalog.source=sqlite to use it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		c, err := catalog.Default()
		if seedFrom != "" {
			c, err = catalog.LoadFile(seedFrom)
		}
		if err != nil {
			return err
		}

		database, err := db.Open(cfg.Catalog.DBPath)
		if err != nil {
			return err
		}
		defer func() {
			if err := database.Close(); err != nil {
				logger.Error("failed to close database", "error", err)
			}
		}()

		svc := service.NewCatalogService(store.NewCatalogStore(database), logger)
		if err := svc.Seed(cmd.Context(), c); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %s with %d categories\n", cfg.Catalog.DBPath, len(c.Categories))
		return nil
	},
}

var catalogDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the active catalog as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		c, err := loadCatalog(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		data, err := c.Marshal()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	catalogSeedCmd.Flags().StringVar(&seedFrom, "from", "", "YAML catalog to seed from (default: embedded catalog)")
	catalogCmd.AddCommand(catalogSeedCmd, catalogDumpCmd)
	rootCmd.AddCommand(catalogCmd)
}
