package web

import (
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/vbonduro/rubysdiner/internal/clock"
	"github.com/vbonduro/rubysdiner/internal/site"
)

// Page modes read by the browser bridge.
const (
	ModeLive     = "live"
	ModeFallback = "fallback"
	ModeStatic   = "static"
)

type indexPage struct {
	Title   string
	Mode    string
	HeadVID string
	BodyVID string
	Head    template.HTML
	Body    template.HTML
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	mode := ModeFallback
	if s.opts.Live != nil {
		mode = ModeLive
	}
	if err := s.RenderIndex(w, mode); err != nil {
		s.logger.Error("render index", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// RenderIndex writes the full page in its initial state. The page is built on
// a manual clock that is never advanced, so no timers outlive the call.
func (s *Server) RenderIndex(w io.Writer, mode string) error {
	page, err := site.Build(s.catalog, clock.NewManual(time.Now()), s.opts.Site, s.logger)
	if err != nil {
		return err
	}
	defer page.Close()

	doc := page.Doc
	data := indexPage{
		Title:   s.catalog.Name,
		Mode:    mode,
		HeadVID: doc.Head().VID(),
		BodyVID: doc.Body().VID(),
		Head:    template.HTML(doc.Head().InnerHTML()),
		Body:    template.HTML(doc.Body().InnerHTML()),
	}
	return s.renderPage(w, data, "base.html", "pages/index.html")
}
