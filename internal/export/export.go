// Package export writes the site as static files: the rendered page, the
// stylesheet and bridge script, and every image in the asset store.
package export

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"github.com/vbonduro/rubysdiner/internal/assets"
)

// PageRenderer writes the full page. web.Server satisfies it.
type PageRenderer interface {
	RenderIndex(w io.Writer, mode string) error
}

type Exporter struct {
	page   PageRenderer
	mode   string
	static fs.FS
	images assets.ImageStore
	logger *slog.Logger
}

// New returns an exporter. images may be nil, in which case the page relies
// on its placeholder images.
func New(page PageRenderer, mode string, static fs.FS, images assets.ImageStore, logger *slog.Logger) *Exporter {
	return &Exporter{page: page, mode: mode, static: static, images: images, logger: logger}
}

type job struct {
	name  string
	write func(w io.Writer) error
}

// Run writes every file under outDir and returns how many were written.
func (e *Exporter) Run(ctx context.Context, outDir string, progress Reporter) (int, error) {
	jobs := []job{{name: "index.html", write: func(w io.Writer) error { return e.page.RenderIndex(w, e.mode) }}}

	err := fs.WalkDir(e.static, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || path.Ext(p) == ".go" {
			return err
		}
		jobs = append(jobs, job{name: path.Join("static", p), write: e.copyStatic(p)})
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("listing static files: %w", err)
	}

	if e.images != nil {
		names, err := e.images.List(ctx)
		if err != nil {
			return 0, err
		}
		for _, name := range names {
			jobs = append(jobs, job{name: path.Join("assets", "images", name), write: e.copyImage(ctx, name)})
		}
	}

	progress.Start(len(jobs))
	defer progress.Finish()
	for i, j := range jobs {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if err := writeFile(filepath.Join(outDir, filepath.FromSlash(j.name)), j.write); err != nil {
			return i, fmt.Errorf("writing %s: %w", j.name, err)
		}
		progress.Update(i+1, j.name)
		e.logger.Debug("exported file", "name", j.name)
	}
	e.logger.Info("export complete", "dir", outDir, "files", len(jobs))
	return len(jobs), nil
}

func (e *Exporter) copyStatic(name string) func(io.Writer) error {
	return func(w io.Writer) error {
		f, err := e.static.Open(name)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(w, f)
		return err
	}
}

func (e *Exporter) copyImage(ctx context.Context, name string) func(io.Writer) error {
	return func(w io.Writer) error {
		rc, _, err := e.images.Get(ctx, name)
		if err != nil {
			return err
		}
		defer rc.Close()
		_, err = io.Copy(w, rc)
		return err
	}
}

func writeFile(dst string, write func(io.Writer) error) (err error) {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}
