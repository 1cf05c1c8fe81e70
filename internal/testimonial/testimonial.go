// Package testimonial renders customer review cards with star ratings.
package testimonial

import (
	"net/url"

	"github.com/vbonduro/rubysdiner/internal/domain"
	"github.com/vbonduro/rubysdiner/internal/view"
)

const (
	MaxStars   = 5
	FilledStar = "fas fa-star"
	EmptyStar  = "far fa-star"
)

// FallbackImage is keyed by the first letter of the author's name.
func FallbackImage(author string) string {
	initial := ""
	for _, r := range author {
		initial = string(r)
		break
	}
	return "https://placehold.co/100x100/e2e8f0/1e293b?text=" + url.QueryEscape(initial)
}

// Render replaces the children of container with one review card per
// testimonial, in order.
func Render(doc *view.Document, container *view.Element, reviews []domain.Testimonial) {
	if container == nil {
		return
	}
	cards := make([]*view.Element, 0, len(reviews))
	for _, r := range reviews {
		cards = append(cards, Card(doc, r))
	}
	container.ReplaceChildren(cards...)
}

func Card(doc *view.Document, r domain.Testimonial) *view.Element {
	img := doc.Image(r.ImageURL, r.AuthorName, FallbackImage(r.AuthorName))
	img.AddClass("reviewer-image")

	header := doc.El("div", "review-header").Append(
		img,
		doc.El("div", "reviewer-info").Append(
			doc.El("h4", "", r.AuthorName),
			doc.El("span", "review-date", r.Date),
		),
	)
	return doc.El("div", "review-card").Append(
		header,
		Stars(doc, r.Rating),
		doc.El("p", "", r.Text),
	)
}

// Stars always renders MaxStars glyphs; rating is clamped to [0, MaxStars].
func Stars(doc *view.Document, rating int) *view.Element {
	rating = min(max(rating, 0), MaxStars)
	row := doc.El("div", "review-stars")
	for i := 0; i < MaxStars; i++ {
		class := EmptyStar
		if i < rating {
			class = FilledStar
		}
		row.AppendChild(doc.El("i", class))
	}
	return row
}
