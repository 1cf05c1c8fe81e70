package web

import (
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vbonduro/rubysdiner/internal/domain"
	"github.com/vbonduro/rubysdiner/internal/menu"
	"github.com/vbonduro/rubysdiner/internal/view"
)

// handleMenuPartial returns the cards of one category for an htmx swap into
// the menu grid. An unknown category renders an empty grid.
func (s *Server) handleMenuPartial(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "category")
	grid, n := menu.Render(view.NewDocument(), s.catalog.Categories, key)
	s.logger.Debug("menu partial", "category", key, "items", n)
	if err := s.renderPartial(w, "partials/fragment.html", template.HTML(grid.InnerHTML())); err != nil {
		s.logger.Error("render menu partial", "err", err)
	}
}

func (s *Server) handleMenuAPI(w http.ResponseWriter, r *http.Request) {
	cats := s.catalog.Categories
	if cats == nil {
		cats = []domain.MenuCategory{}
	}
	s.writeJSON(w, http.StatusOK, cats)
}

func (s *Server) handleMenuCategoryAPI(w http.ResponseWriter, r *http.Request) {
	c, ok := s.catalog.Category(chi.URLParam(r, "category"))
	if !ok {
		s.writeJSON(w, http.StatusNotFound, map[string]string{"error": "category not found"})
		return
	}
	s.writeJSON(w, http.StatusOK, c)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode json", "err", err)
	}
}
