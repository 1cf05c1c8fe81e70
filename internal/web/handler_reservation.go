package web

import (
	"html/template"
	"net/http"

	"github.com/vbonduro/rubysdiner/internal/reservation"
	"github.com/vbonduro/rubysdiner/internal/view"
)

// handleReservation answers a form post made without a live session. Nothing
// is stored; the response is the confirmation modal, appended to the body by
// htmx.
func (s *Server) handleReservation(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	values := make(map[string]string, len(r.PostForm))
	for k := range r.PostForm {
		values[k] = r.PostForm.Get(k)
	}
	req := reservation.FromValues(values)
	if err := reservation.Validate(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	modal := reservation.Modal(view.NewDocument(), req)
	s.logger.Info("reservation confirmed", "date", req.Date, "time", req.Time, "party_size", req.PartySize)
	if err := s.renderPartial(w, "partials/fragment.html", template.HTML(modal.HTML())); err != nil {
		s.logger.Error("render reservation", "err", err)
	}
}
