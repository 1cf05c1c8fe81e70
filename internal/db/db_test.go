package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAppliesMigrations(t *testing.T) {
	d, err := Open(filepath.Join(t.TempDir(), "diner.db"))
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, d.Close()) })

	for _, table := range []string{"categories", "menu_items", "celebrities", "testimonials", "staff", "opening_hours", "site_settings"} {
		var name string
		err := d.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		assert.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestOpenTwiceIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diner.db")

	d, err := Open(path)
	require.NoError(t, err)
	_, err = d.Exec("INSERT INTO site_settings (name, value) VALUES ('name', 'Ruby''s Diner')")
	require.NoError(t, err)
	require.NoError(t, d.Close())

	d, err = Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, d.Close()) })

	var value string
	require.NoError(t, d.QueryRow("SELECT value FROM site_settings WHERE name = 'name'").Scan(&value))
	assert.Equal(t, "Ruby's Diner", value)
}

func TestRatingConstraint(t *testing.T) {
	d, err := Open(filepath.Join(t.TempDir(), "diner.db"))
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, d.Close()) })

	_, err = d.Exec("INSERT INTO testimonials (position, author, rating) VALUES (0, 'A', 6)")
	assert.Error(t, err)
}
