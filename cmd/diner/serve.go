package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vbonduro/rubysdiner/internal/assets/local"
	"github.com/vbonduro/rubysdiner/internal/live"
	"github.com/vbonduro/rubysdiner/internal/web"
	"github.com/vbonduro/rubysdiner/internal/web/templates"
)

var (
	listenAddr string
	noLive     bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()
		if listenAddr != "" {
			cfg.Server.ListenAddr = listenAddr
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cat, err := loadCatalog(ctx, cfg, logger)
		if err != nil {
			return err
		}

		images, err := local.NewLocalImageStore(cfg.Assets.Dir)
		if err != nil {
			return err
		}

		opts := web.Options{
			Site:        siteOptions(cfg),
			CORSOrigins: cfg.Server.CORSOrigins,
		}
		if !noLive {
			opts.Live = live.NewHandler(cat, opts.Site, logger)
		}
		server := web.NewServer(cat, templates.FS, images, opts, logger)

		go func() {
			<-ctx.Done()
			logger.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				logger.Error("shutdown failed", "error", err)
			}
		}()

		if err := server.ListenAndServe(cfg.Server.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "addr", "", "listen address (overrides server.listen_addr)")
	serveCmd.Flags().BoolVar(&noLive, "no-live", false, "disable websocket sessions and serve the htmx fallback only")
	rootCmd.AddCommand(serveCmd)
}
