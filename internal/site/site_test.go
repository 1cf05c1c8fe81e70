package site

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

func build(t *testing.T, opts Options) (*Page, *clock.Manual, *catalog.Catalog) {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	sched := clock.NewManual(epoch)
	p, err := Build(cat, sched, opts, nil)
	require.NoError(t, err)
	t.Cleanup(p.Close)
	return p, sched, cat
}

func TestBuildRendersEverySection(t *testing.T) {
	p, _, cat := build(t, DefaultOptions())
	doc := p.Doc

	for _, id := range []string{"home", "menu", "reservations", "celebrities", "testimonials", "staff", "about"} {
		sec := doc.ElementByID(id)
		require.NotNil(t, sec, id)
		assert.True(t, sec.HasClass("animation-ready"), id)
	}

	assert.Len(t, doc.Query(view.HasClassName("menu-items")).Children(), len(cat.Categories[0].Items))
	assert.Equal(t, "burgers", p.Menu.Active())
	assert.Len(t, doc.Query(view.HasClassName("celebrity-carousel")).Children(), len(cat.Celebrities))
	assert.Len(t, doc.Query(view.HasClassName("reviews-container")).Children(), len(cat.Testimonials))
	assert.Len(t, doc.Query(view.HasClassName("staff-container")).Children(), len(cat.Staff))
	assert.Equal(t, "2024-03-01", doc.ElementByID("date").Attr("min"))

	about := doc.Query(view.HasClassName("about-story"))
	require.NotNil(t, about)
	assert.Contains(t, about.InnerHTML(), "<p>")
	assert.NotNil(t, doc.ElementByID("animation-styles"))
}

func TestBuildWithoutStaff(t *testing.T) {
	opts := DefaultOptions()
	opts.ShowStaff = false
	p, _, _ := build(t, opts)

	assert.Nil(t, p.Doc.ElementByID("staff"))
	assert.Nil(t, p.Doc.Query(view.HasAttrValue("href", "#staff")))
}

func TestBuildIsDeterministic(t *testing.T) {
	a, _, _ := build(t, DefaultOptions())
	b, _, _ := build(t, DefaultOptions())
	assert.Equal(t, a.Doc.Body().HTML(), b.Doc.Body().HTML())
	assert.Equal(t, a.Doc.Head().HTML(), b.Doc.Head().HTML())
}

func TestCarouselStartsAfterWarmup(t *testing.T) {
	p, sched, _ := build(t, DefaultOptions())
	strip := p.Doc.Query(view.HasClassName("celebrity-carousel"))
	strip.SetLayout(view.Layout{ScrollWidth: 2000, ClientWidth: 800})

	sched.Advance(2 * time.Second)
	assert.True(t, p.Carousel.Running())
	sched.Advance(90 * time.Millisecond)
	assert.Equal(t, 3.0, strip.ScrollLeft())

	p.Close()
	assert.False(t, p.Carousel.Running())
}

func TestNavigationAfterLayout(t *testing.T) {
	p, _, _ := build(t, DefaultOptions())
	layouts := map[string]view.Layout{}
	for i, id := range []string{"home", "menu", "reservations", "celebrities", "testimonials", "staff", "about"} {
		layouts[p.Doc.ElementByID(id).VID()] = view.Layout{OffsetTop: float64(i) * 900, OffsetHeight: 900}
	}
	p.Doc.ApplyLayout(layouts, 800, 0)
	p.Doc.SetScroll(1000)

	active := p.Navigation.ActiveLinks()
	require.Len(t, active, 1)
	assert.Equal(t, "#menu", active[0].Attr("href"))
}
