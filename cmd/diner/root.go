package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vbonduro/rubysdiner/internal/catalog"
	"github.com/vbonduro/rubysdiner/internal/celebrity"
	"github.com/vbonduro/rubysdiner/internal/config"
	"github.com/vbonduro/rubysdiner/internal/db"
	"github.com/vbonduro/rubysdiner/internal/logging"
	"github.com/vbonduro/rubysdiner/internal/menu"
	"github.com/vbonduro/rubysdiner/internal/navigation"
	"github.com/vbonduro/rubysdiner/internal/reservation"
	"github.com/vbonduro/rubysdiner/internal/service"
	"github.com/vbonduro/rubysdiner/internal/site"
	"github.com/vbonduro/rubysdiner/internal/store"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "diner",
	Short: "Ruby's Diner single-page site",
	Long: `diner serves the Ruby's Diner site: a menu with category tabs, a
reservation form, a celebrity carousel, reviews, staff and opening hours.
It can also export the page as static files and manage the catalog store.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// setup loads and validates the configuration and installs the logger. The
// returned cleanup closes the log file.
func setup() (*config.Config, *slog.Logger, func(), error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid config: %w", err)
	}
	logger, cleanup, err := logging.New(cfg.Log.Level, cfg.Log.File, verbose)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, logger, cleanup, nil
}

func siteOptions(cfg *config.Config) site.Options {
	return site.Options{
		DefaultCategory: cfg.Site.DefaultCategory,
		ShowStaff:       cfg.Site.ShowStaff,
		MenuTransition: menu.Transition{
			FadeOut: cfg.Site.MenuFadeOut,
			FadeIn:  cfg.Site.MenuFadeIn,
		},
		Navigation: navigation.Options{
			Threshold:    cfg.Site.NavThreshold,
			HeaderOffset: cfg.Site.NavHeaderOffset,
		},
		Carousel: celebrity.CarouselOptions{
			Warmup: cfg.Carousel.Warmup,
			Tick:   cfg.Carousel.Tick,
			Step:   cfg.Carousel.Step,
		},
		Reservation: reservation.Options{
			BackdropDismiss: cfg.Site.BackdropDismiss,
			FadeIn:          cfg.Reservation.FadeIn,
			FadeOut:         cfg.Reservation.FadeOut,
		},
	}
}

// loadCatalog reads the catalog from the configured source.
func loadCatalog(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*catalog.Catalog, error) {
	switch cfg.Catalog.Source {
	case service.SourceFile:
		logger.Info("loading catalog", "source", cfg.Catalog.Source, "path", cfg.Catalog.Path)
		return catalog.LoadFile(cfg.Catalog.Path)
	case service.SourceSQLite:
		logger.Info("loading catalog", "source", cfg.Catalog.Source, "db", cfg.Catalog.DBPath)
		database, err := db.Open(cfg.Catalog.DBPath)
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := database.Close(); err != nil {
				logger.Error("failed to close database", "error", err)
			}
		}()
		c, err := service.NewCatalogService(store.NewCatalogStore(database), logger).Load(ctx)
		if errors.Is(err, store.ErrEmpty) {
			return nil, fmt.Errorf("%w: run `diner catalog seed` first", err)
		}
		return c, err
	default:
		logger.Info("loading catalog", "source", service.SourceEmbedded)
		return catalog.Default()
	}
}
