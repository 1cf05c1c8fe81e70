package testimonial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/rubysdiner/internal/catalog"
	"github.com/vbonduro/rubysdiner/internal/domain"
	"github.com/vbonduro/rubysdiner/internal/view"
)

func countStars(row *view.Element) (filled, empty int) {
	for _, g := range row.Children() {
		switch {
		case g.HasClass("fas"):
			filled++
		case g.HasClass("far"):
			empty++
		}
	}
	return filled, empty
}

func TestStars(t *testing.T) {
	tests := []struct {
		rating int
		filled int
	}{
		{rating: 5, filled: 5},
		{rating: 4, filled: 4},
		{rating: 1, filled: 1},
		{rating: 0, filled: 0},
		{rating: -2, filled: 0},
		{rating: 9, filled: 5},
	}
	doc := view.NewDocument()
	for _, tt := range tests {
		row := Stars(doc, tt.rating)
		filled, empty := countStars(row)
		assert.Equal(t, tt.filled, filled, "rating %d", tt.rating)
		assert.Equal(t, MaxStars-tt.filled, empty, "rating %d", tt.rating)
		assert.Len(t, row.Children(), MaxStars)
	}
}

func TestRenderCatalogTestimonials(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)

	doc := view.NewDocument()
	container := doc.El("div", "reviews-container")
	doc.Body().AppendChild(container)
	Render(doc, container, c.Testimonials)

	cards := container.Children()
	require.Len(t, cards, len(c.Testimonials))
	for i, card := range cards {
		want := c.Testimonials[i]
		assert.Equal(t, want.AuthorName, card.Query(view.HasTag("h4")).Text())
		filled, _ := countStars(card.Query(view.HasClassName("review-stars")))
		assert.Equal(t, want.Rating, filled)
	}
}

func TestRenderIsFullReplace(t *testing.T) {
	doc := view.NewDocument()
	container := doc.El("div", "reviews-container")
	doc.Body().AppendChild(container)
	review := []domain.Testimonial{{AuthorName: "Betty Lou", Rating: 4}}

	Render(doc, container, review)
	old := container.Children()
	doc.Flush()

	Render(doc, container, review)
	for _, card := range old {
		assert.False(t, card.Attached())
	}
	assert.Len(t, container.Children(), 1)

	patches := doc.Flush()
	require.Len(t, patches, 1)
	assert.Equal(t, view.OpHTML, patches[0].Op)
	assert.Equal(t, container.VID(), patches[0].Target)
}

func TestFallbackUsesInitial(t *testing.T) {
	doc := view.NewDocument()
	card := Card(doc, domain.Testimonial{AuthorName: "Betty Lou", Rating: 5, ImageURL: "/missing.jpg"})
	doc.Body().AppendChild(card)

	img := card.Query(view.HasClassName("reviewer-image"))
	require.NotNil(t, img)
	img.Dispatch(view.NewEvent("error"))
	assert.Equal(t, "https://placehold.co/100x100/e2e8f0/1e293b?text=B", img.Attr("src"))
	assert.Equal(t, "https://placehold.co/100x100/e2e8f0/1e293b?text=", FallbackImage(""))
}

func TestRenderNilContainer(t *testing.T) {
	assert.NotPanics(t, func() {
		Render(view.NewDocument(), nil, []domain.Testimonial{{AuthorName: "A", Rating: 3}})
	})
}
