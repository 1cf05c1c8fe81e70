package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vbonduro/rubysdiner/internal/catalog"
)

// Catalog sources selectable through configuration.
const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourceSQLite   = "sqlite"
)

// catalogRepository is the subset of store.CatalogStore that CatalogService requires.
type catalogRepository interface {
	Replace(ctx context.Context, c *catalog.Catalog) error
	Load(ctx context.Context) (*catalog.Catalog, error)
}

type CatalogService struct {
	repo   catalogRepository
	logger *slog.Logger
}

func NewCatalogService(repo catalogRepository, logger *slog.Logger) *CatalogService {
	return &CatalogService{repo: repo, logger: logger}
}

// Seed validates c and stores it, replacing whatever was there.
func (s *CatalogService) Seed(ctx context.Context, c *catalog.Catalog) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := s.repo.Replace(ctx, c); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}
	s.logger.Info("catalog seeded",
		"categories", len(c.Categories),
		"celebrities", len(c.Celebrities),
		"testimonials", len(c.Testimonials),
		"staff", len(c.Staff))
	return nil
}

// Load reads the stored catalog and validates it before use.
func (s *CatalogService) Load(ctx context.Context) (*catalog.Catalog, error) {
	c, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	s.logger.Debug("catalog loaded from store", "name", c.Name)
	return c, nil
}
