package assets

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when an image does not exist. Callers answer with
// a 404 so the browser falls back to the placeholder image.
var ErrNotFound = errors.New("image not found")

// ImageStore serves the site's photos by name, e.g. "menu/burger.jpg".
type ImageStore interface {
	Get(ctx context.Context, name string) (io.ReadCloser, string, error)
	List(ctx context.Context) ([]string, error)
}
