// Package staff renders the "Meet Our Staff" cards.
package staff

import (
	"github.com/vbonduro/rubysdiner/internal/domain"
	"github.com/vbonduro/rubysdiner/internal/view"
)

// Render replaces the children of container with one card per staff member.
// Every photo falls back to the shared fallback image.
func Render(doc *view.Document, container *view.Element, members []domain.StaffMember, fallback string) {
	if container == nil {
		return
	}
	cards := make([]*view.Element, 0, len(members))
	for _, m := range members {
		cards = append(cards, Card(doc, m, fallback))
	}
	container.ReplaceChildren(cards...)
}

func Card(doc *view.Document, m domain.StaffMember, fallback string) *view.Element {
	return doc.El("div", "staff-card").Append(
		doc.El("div", "staff-image").Append(doc.Image(m.ImageURL, m.Name, fallback)),
		doc.El("div", "staff-info").Append(
			doc.El("h3", "", m.Name),
			doc.El("div", "staff-position", m.Position),
			doc.El("p", "", m.Description),
		),
	)
}
