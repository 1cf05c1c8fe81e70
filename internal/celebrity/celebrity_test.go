package celebrity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/rubysdiner/internal/catalog"
	"github.com/vbonduro/rubysdiner/internal/clock"
	"github.com/vbonduro/rubysdiner/internal/view"
)

var epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestRenderCards(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)

	doc := view.NewDocument()
	strip := doc.El("div", "celebrity-carousel")
	doc.Body().AppendChild(strip)
	Render(doc, strip, c.Celebrities)

	cards := strip.Children()
	require.Len(t, cards, len(c.Celebrities))
	for i, card := range cards {
		assert.Equal(t, c.Celebrities[i].Name, card.Query(view.HasTag("h3")).Text())
		assert.Equal(t, "Visited on "+c.Celebrities[i].VisitDate, card.Query(view.HasClassName("visit-date")).Text())
	}

	img := cards[0].Query(view.HasTag("img"))
	img.Dispatch(view.NewEvent("error"))
	assert.Equal(t, FallbackImage(c.Celebrities[0].Name), img.Attr("src"))
	assert.Contains(t, img.Attr("src"), "400x500")
}

func TestRenderIsFullReplace(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)

	doc := view.NewDocument()
	strip := doc.El("div", "celebrity-carousel")
	doc.Body().AppendChild(strip)
	Render(doc, strip, c.Celebrities[:2])
	old := strip.Children()
	doc.Flush()

	Render(doc, strip, c.Celebrities[:2])
	for _, card := range old {
		assert.False(t, card.Attached())
	}
	assert.Len(t, strip.Children(), 2)

	patches := doc.Flush()
	require.Len(t, patches, 1)
	assert.Equal(t, view.OpHTML, patches[0].Op)
	assert.Equal(t, strip.VID(), patches[0].Target)
}

func newCarousel(t *testing.T, scrollWidth, clientWidth float64) (*Carousel, *view.Element, *clock.Manual) {
	t.Helper()
	doc := view.NewDocument()
	strip := doc.El("div", "celebrity-carousel")
	doc.Body().AppendChild(strip)
	strip.SetLayout(view.Layout{ScrollWidth: scrollWidth, ClientWidth: clientWidth})
	sched := clock.NewManual(epoch)
	return NewCarousel(strip, sched, DefaultCarouselOptions()), strip, sched
}

func TestCarouselWarmup(t *testing.T) {
	c, strip, sched := newCarousel(t, 110, 100)
	c.Start()

	sched.Advance(1999 * time.Millisecond)
	assert.False(t, c.Running())
	assert.Equal(t, 0.0, strip.ScrollLeft())

	// Hover before warm-up has no effect since handlers are not bound yet.
	strip.Dispatch(view.NewEvent("mouseleave"))
	assert.False(t, c.Running())

	sched.Advance(time.Millisecond)
	assert.True(t, c.Running())
	sched.Advance(30 * time.Millisecond)
	assert.Equal(t, 1.0, strip.ScrollLeft())
}

func TestCarouselBouncesWithinBounds(t *testing.T) {
	c, strip, sched := newCarousel(t, 105, 100)
	c.Start()
	sched.Advance(2 * time.Second)

	var positions []float64
	for i := 0; i < 14; i++ {
		sched.Advance(30 * time.Millisecond)
		positions = append(positions, c.Position())
		assert.GreaterOrEqual(t, c.Position(), 0.0)
		assert.LessOrEqual(t, c.Position(), 5.0)
		assert.Equal(t, c.Position(), strip.ScrollLeft())
	}
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 4, 3, 2, 1, 0, 1, 2, 3, 4}, positions)
}

func TestCarouselDirectionFlipsAtBoundaries(t *testing.T) {
	c, _, sched := newCarousel(t, 102, 100)
	c.Start()
	sched.Advance(2 * time.Second)

	sched.Advance(60 * time.Millisecond)
	assert.Equal(t, 2.0, c.Position())
	assert.Equal(t, 1.0, c.Direction())

	sched.Advance(30 * time.Millisecond)
	assert.Equal(t, 1.0, c.Position())
	assert.Equal(t, -1.0, c.Direction())
}

func TestCarouselDegenerateWidth(t *testing.T) {
	c, strip, sched := newCarousel(t, 80, 100)
	c.Start()
	sched.Advance(2 * time.Second)

	dir := c.Direction()
	sched.Advance(30 * time.Millisecond)
	assert.Equal(t, -dir, c.Direction())
	sched.Advance(30 * time.Millisecond)
	assert.Equal(t, dir, c.Direction())
	assert.Equal(t, 0.0, c.Position())
	assert.Equal(t, 0.0, strip.ScrollLeft())
}

func TestCarouselHoverCancelsAndRestarts(t *testing.T) {
	c, strip, sched := newCarousel(t, 1000, 100)
	c.Start()
	sched.Advance(2 * time.Second)
	assert.Equal(t, 1, sched.Pending())

	strip.Dispatch(view.NewEvent("mouseenter"))
	assert.False(t, c.Running())
	assert.Equal(t, 0, sched.Pending())
	pos := c.Position()
	sched.Advance(time.Second)
	assert.Equal(t, pos, c.Position())

	// Repeated leaves never stack timers.
	strip.Dispatch(view.NewEvent("mouseleave"))
	strip.Dispatch(view.NewEvent("mouseleave"))
	assert.Equal(t, 1, sched.Pending())

	sched.Advance(300 * time.Millisecond)
	assert.Equal(t, pos+10, c.Position())
}

func TestCarouselStop(t *testing.T) {
	c, _, sched := newCarousel(t, 1000, 100)
	c.Start()
	c.Stop()
	sched.Advance(5 * time.Second)
	assert.False(t, c.Running())
	assert.Equal(t, 0, sched.Pending())
}
