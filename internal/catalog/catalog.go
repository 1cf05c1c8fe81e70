package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vbonduro/rubysdiner/internal/domain"
)

//go:embed default.yaml
var defaultYAML []byte

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid catalog")

// Contact is the footer contact block.
type Contact struct {
	Address string `yaml:"address" json:"address"`
	Phone   string `yaml:"phone" json:"phone"`
	Email   string `yaml:"email" json:"email"`
}

// Catalog holds every data table the site renders. It is read once at
// startup and never mutated afterwards.
type Catalog struct {
	Name               string                  `yaml:"name"`
	Tagline            string                  `yaml:"tagline"`
	Categories         []domain.MenuCategory   `yaml:"categories"`
	Celebrities        []domain.CelebrityVisit `yaml:"celebrities"`
	Testimonials       []domain.Testimonial    `yaml:"testimonials"`
	Staff              []domain.StaffMember    `yaml:"staff"`
	StaffFallbackImage string                  `yaml:"staff_fallback_image"`
	About              string                  `yaml:"about"`
	Hours              []domain.OpeningHours   `yaml:"hours"`
	Contact            Contact                 `yaml:"contact"`
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(defaultYAML)
}

// LoadFile reads and validates a YAML catalog from disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	c := &Catalog{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Marshal encodes the catalog back to YAML.
func (c *Catalog) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshalling catalog: %w", err)
	}
	return data, nil
}

// Validate rejects data the renderers cannot display faithfully. Ratings
// outside 1..5 are rejected here rather than clamped at render time.
func (c *Catalog) Validate() error {
	seen := make(map[string]bool, len(c.Categories))
	for i, cat := range c.Categories {
		if cat.Key == "" {
			return fmt.Errorf("%w: category %d has no key", ErrInvalid, i)
		}
		if seen[cat.Key] {
			return fmt.Errorf("%w: duplicate category %q", ErrInvalid, cat.Key)
		}
		seen[cat.Key] = true
		for j, item := range cat.Items {
			if item.Name == "" {
				return fmt.Errorf("%w: item %d in %q has no name", ErrInvalid, j, cat.Key)
			}
		}
	}
	for i, celeb := range c.Celebrities {
		if celeb.Name == "" {
			return fmt.Errorf("%w: celebrity %d has no name", ErrInvalid, i)
		}
	}
	for i, t := range c.Testimonials {
		if t.AuthorName == "" {
			return fmt.Errorf("%w: testimonial %d has no author", ErrInvalid, i)
		}
		if t.Rating < 1 || t.Rating > 5 {
			return fmt.Errorf("%w: testimonial by %q has rating %d, want 1-5", ErrInvalid, t.AuthorName, t.Rating)
		}
	}
	for i, s := range c.Staff {
		if s.Name == "" {
			return fmt.Errorf("%w: staff member %d has no name", ErrInvalid, i)
		}
	}
	return nil
}

// Category looks up a category by key.
func (c *Catalog) Category(key string) (domain.MenuCategory, bool) {
	for _, cat := range c.Categories {
		if cat.Key == key {
			return cat, true
		}
	}
	return domain.MenuCategory{}, false
}
