// Package celebrity renders the celebrity visitor cards and drives the
// auto-scrolling carousel that holds them.
package celebrity

import (
	"net/url"

	"github.com/vbonduro/rubysdiner/internal/domain"
	"github.com/vbonduro/rubysdiner/internal/view"
)

func FallbackImage(name string) string {
	return "https://placehold.co/400x500/e2e8f0/1e293b?text=" + url.QueryEscape(name)
}

// Render replaces the children of container with one card per visit, in order.
func Render(doc *view.Document, container *view.Element, visits []domain.CelebrityVisit) {
	if container == nil {
		return
	}
	cards := make([]*view.Element, 0, len(visits))
	for _, v := range visits {
		cards = append(cards, Card(doc, v))
	}
	container.ReplaceChildren(cards...)
}

func Card(doc *view.Document, v domain.CelebrityVisit) *view.Element {
	info := doc.El("div", "celebrity-info").Append(
		doc.El("h3", "", v.Name),
		doc.El("p", "visit-date", "Visited on "+v.VisitDate),
		doc.El("p", "", v.Story),
	)
	return doc.El("div", "celebrity-card").Append(
		doc.Image(v.ImageURL, v.Name, FallbackImage(v.Name)),
		info,
	)
}
