package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/rubysdiner/internal/catalog"
	"github.com/vbonduro/rubysdiner/internal/config"
	"github.com/vbonduro/rubysdiner/internal/db"
	"github.com/vbonduro/rubysdiner/internal/service"
	"github.com/vbonduro/rubysdiner/internal/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSiteOptionsFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Site.NavThreshold = 100
	cfg.Site.BackdropDismiss = true
	cfg.Carousel.Tick = 50 * time.Millisecond
	cfg.Site.MenuFadeOut = 300 * time.Millisecond

	opts := siteOptions(cfg)
	assert.Equal(t, "burgers", opts.DefaultCategory)
	assert.Equal(t, 100.0, opts.Navigation.Threshold)
	assert.True(t, opts.Reservation.BackdropDismiss)
	assert.Equal(t, 50*time.Millisecond, opts.Carousel.Tick)
	assert.Equal(t, 300*time.Millisecond, opts.Reservation.FadeOut)
	assert.Equal(t, 300*time.Millisecond, opts.MenuTransition.FadeOut)
	assert.Zero(t, opts.MenuTransition.FadeIn)
}

func TestLoadCatalogSources(t *testing.T) {
	ctx := context.Background()
	want, err := catalog.Default()
	require.NoError(t, err)

	t.Run("embedded", func(t *testing.T) {
		got, err := loadCatalog(ctx, config.DefaultConfig(), discardLogger())
		require.NoError(t, err)
		assert.Equal(t, want.Name, got.Name)
	})

	t.Run("sqlite unseeded", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Catalog.Source = service.SourceSQLite
		cfg.Catalog.DBPath = filepath.Join(t.TempDir(), "diner.db")
		_, err := loadCatalog(ctx, cfg, discardLogger())
		assert.ErrorIs(t, err, store.ErrEmpty)
	})

	t.Run("sqlite seeded", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Catalog.Source = service.SourceSQLite
		cfg.Catalog.DBPath = filepath.Join(t.TempDir(), "diner.db")

		database, err := db.Open(cfg.Catalog.DBPath)
		require.NoError(t, err)
		require.NoError(t, service.NewCatalogService(store.NewCatalogStore(database), discardLogger()).Seed(ctx, want))
		require.NoError(t, database.Close())

		got, err := loadCatalog(ctx, cfg, discardLogger())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.Run(versionCmd, nil)
	assert.Equal(t, "diner dev\n", out.String())
}
