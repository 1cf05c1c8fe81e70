package web

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vbonduro/rubysdiner/internal/assets"
)

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	if s.images == nil {
		http.NotFound(w, r)
		return
	}
	name := chi.URLParam(r, "*")
	rc, mimeType, err := s.images.Get(r.Context(), name)
	if err != nil {
		if errors.Is(err, assets.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		s.logger.Warn("image lookup failed", "name", name, "err", err)
		http.Error(w, "invalid image path", http.StatusBadRequest)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := io.Copy(w, rc); err != nil {
		s.logger.Error("failed to write image", "name", name, "err", err)
	}
}
