package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vbonduro/rubysdiner/internal/catalog"
	"github.com/vbonduro/rubysdiner/internal/domain"
)

// ErrEmpty is returned by Load when the database has never been seeded.
var ErrEmpty = errors.New("catalog store is empty")

type CatalogStore struct {
	db *sql.DB
}

func NewCatalogStore(db *sql.DB) *CatalogStore {
	return &CatalogStore{db: db}
}

// Replace overwrites the stored catalog in a single transaction.
func (s *CatalogStore) Replace(ctx context.Context, c *catalog.Catalog) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"menu_items", "categories", "celebrities", "testimonials", "staff", "opening_hours", "site_settings"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for i, cat := range c.Categories {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO categories (slug, label, position) VALUES (?, ?, ?)
		`, cat.Key, cat.Label, i); err != nil {
			return fmt.Errorf("failed to insert category %q: %w", cat.Key, err)
		}
		for j, item := range cat.Items {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO menu_items (category_key, position, name, price, description, image_url)
				VALUES (?, ?, ?, ?, ?, ?)
			`, cat.Key, j, item.Name, item.Price, item.Description, item.ImageURL); err != nil {
				return fmt.Errorf("failed to insert menu item %q: %w", item.Name, err)
			}
		}
	}

	for i, v := range c.Celebrities {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO celebrities (position, name, visit_date, image_url, story) VALUES (?, ?, ?, ?, ?)
		`, i, v.Name, v.VisitDate, v.ImageURL, v.Story); err != nil {
			return fmt.Errorf("failed to insert celebrity %q: %w", v.Name, err)
		}
	}

	for i, t := range c.Testimonials {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO testimonials (position, author, date, rating, image_url, text) VALUES (?, ?, ?, ?, ?, ?)
		`, i, t.AuthorName, t.Date, t.Rating, t.ImageURL, t.Text); err != nil {
			return fmt.Errorf("failed to insert testimonial by %q: %w", t.AuthorName, err)
		}
	}

	for i, m := range c.Staff {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO staff (position, name, role, description, image_url) VALUES (?, ?, ?, ?, ?)
		`, i, m.Name, m.Position, m.Description, m.ImageURL); err != nil {
			return fmt.Errorf("failed to insert staff member %q: %w", m.Name, err)
		}
	}

	for i, h := range c.Hours {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO opening_hours (position, days, hours) VALUES (?, ?, ?)
		`, i, h.Days, h.Hours); err != nil {
			return fmt.Errorf("failed to insert opening hours: %w", err)
		}
	}

	for name, value := range settings(c) {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO site_settings (name, value) VALUES (?, ?)
		`, name, value); err != nil {
			return fmt.Errorf("failed to insert setting %q: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog: %w", err)
	}
	return nil
}

func settings(c *catalog.Catalog) map[string]string {
	return map[string]string{
		"name":                 c.Name,
		"tagline":              c.Tagline,
		"about":                c.About,
		"staff_fallback_image": c.StaffFallbackImage,
		"contact_address":      c.Contact.Address,
		"contact_phone":        c.Contact.Phone,
		"contact_email":        c.Contact.Email,
	}
}

// Load reads the stored catalog back in declared order.
func (s *CatalogStore) Load(ctx context.Context) (*catalog.Catalog, error) {
	c := &catalog.Catalog{}

	vals, err := s.loadSettings(ctx)
	if err != nil {
		return nil, err
	}
	if len(vals) == 0 {
		return nil, ErrEmpty
	}
	c.Name = vals["name"]
	c.Tagline = vals["tagline"]
	c.About = vals["about"]
	c.StaffFallbackImage = vals["staff_fallback_image"]
	c.Contact = catalog.Contact{
		Address: vals["contact_address"],
		Phone:   vals["contact_phone"],
		Email:   vals["contact_email"],
	}

	if c.Categories, err = s.loadCategories(ctx); err != nil {
		return nil, err
	}

	err = s.query(ctx, "celebrities", `
		SELECT name, visit_date, image_url, story FROM celebrities ORDER BY position ASC
	`, func(rows *sql.Rows) error {
		var v domain.CelebrityVisit
		if err := rows.Scan(&v.Name, &v.VisitDate, &v.ImageURL, &v.Story); err != nil {
			return err
		}
		c.Celebrities = append(c.Celebrities, v)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = s.query(ctx, "testimonials", `
		SELECT author, date, rating, image_url, text FROM testimonials ORDER BY position ASC
	`, func(rows *sql.Rows) error {
		var t domain.Testimonial
		if err := rows.Scan(&t.AuthorName, &t.Date, &t.Rating, &t.ImageURL, &t.Text); err != nil {
			return err
		}
		c.Testimonials = append(c.Testimonials, t)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = s.query(ctx, "staff", `
		SELECT name, role, description, image_url FROM staff ORDER BY position ASC
	`, func(rows *sql.Rows) error {
		var m domain.StaffMember
		if err := rows.Scan(&m.Name, &m.Position, &m.Description, &m.ImageURL); err != nil {
			return err
		}
		c.Staff = append(c.Staff, m)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = s.query(ctx, "opening hours", `
		SELECT days, hours FROM opening_hours ORDER BY position ASC
	`, func(rows *sql.Rows) error {
		var h domain.OpeningHours
		if err := rows.Scan(&h.Days, &h.Hours); err != nil {
			return err
		}
		c.Hours = append(c.Hours, h)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c, nil
}

func (s *CatalogStore) loadSettings(ctx context.Context) (map[string]string, error) {
	vals := make(map[string]string)
	err := s.query(ctx, "settings", `SELECT name, value FROM site_settings`, func(rows *sql.Rows) error {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return err
		}
		vals[name] = value
		return nil
	})
	return vals, err
}

func (s *CatalogStore) loadCategories(ctx context.Context) ([]domain.MenuCategory, error) {
	var cats []domain.MenuCategory
	index := make(map[string]int)
	err := s.query(ctx, "categories", `
		SELECT slug, label FROM categories ORDER BY position ASC
	`, func(rows *sql.Rows) error {
		var cat domain.MenuCategory
		if err := rows.Scan(&cat.Key, &cat.Label); err != nil {
			return err
		}
		index[cat.Key] = len(cats)
		cats = append(cats, cat)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = s.query(ctx, "menu items", `
		SELECT category_key, name, price, description, image_url FROM menu_items
		ORDER BY category_key, position ASC
	`, func(rows *sql.Rows) error {
		var key string
		var item domain.MenuItem
		if err := rows.Scan(&key, &item.Name, &item.Price, &item.Description, &item.ImageURL); err != nil {
			return err
		}
		if i, ok := index[key]; ok {
			cats[i].Items = append(cats[i].Items, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cats, nil
}

func (s *CatalogStore) query(ctx context.Context, what, q string, scan func(*sql.Rows) error) error {
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", what, err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("failed to scan %s: %w", what, err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating %s: %w", what, err)
	}
	return nil
}
