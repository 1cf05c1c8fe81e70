// Package animate reveals sections as they scroll into view and applies the
// hero parallax effect.
package animate

import (
	"strconv"

	"github.com/vbonduro/rubysdiner/internal/view"
)

const (
	// RevealRatio is the visible fraction of a section that triggers its
	// entrance animation.
	RevealRatio    = 0.1
	ParallaxFactor = 0.5
)

const stylesID = "animation-styles"

const animationCSS = `.animation-ready{opacity:0;transform:translateY(30px);transition:opacity .8s ease,transform .8s ease}
.animate{opacity:1;transform:translateY(0)}
.menu-item{transition:transform .3s ease,box-shadow .3s ease}
.menu-item:hover{transform:translateY(-10px);box-shadow:0 10px 20px rgba(0,0,0,.15)}
.hero{position:relative;overflow:hidden}`

type Revealer struct {
	doc      *view.Document
	sections []*view.Element
	hero     *view.Element
	pending  []*view.Element
}

func New(doc *view.Document, sections []*view.Element, hero *view.Element) *Revealer {
	return &Revealer{doc: doc, sections: sections, hero: hero}
}

// Init hides every section until it is revealed and starts observing scroll
// and layout updates.
func (r *Revealer) Init() {
	injectStyles(r.doc)
	for _, s := range r.sections {
		s.AddClass("animation-ready")
	}
	r.pending = append([]*view.Element(nil), r.sections...)
	r.doc.On("scroll", func(*view.Event) { r.Update() })
	r.doc.On("layout", func(*view.Event) { r.Update() })
}

// Update reveals sections that have come into view and moves the hero
// background. Revealed sections stop being observed.
func (r *Revealer) Update() {
	y, vh := r.doc.ScrollY(), r.doc.ViewportHeight()
	kept := r.pending[:0]
	for _, s := range r.pending {
		if VisibleRatio(s.Layout(), y, vh) >= RevealRatio {
			s.AddClass("animate")
			continue
		}
		kept = append(kept, s)
	}
	r.pending = kept

	if r.hero != nil {
		r.hero.SetStyle("background-position-y", strconv.FormatFloat(y*ParallaxFactor, 'f', -1, 64)+"px")
	}
}

// Pending counts sections still waiting to be revealed.
func (r *Revealer) Pending() int { return len(r.pending) }

// VisibleRatio is the fraction of an element's height inside the viewport.
func VisibleRatio(l view.Layout, scrollY, viewportHeight float64) float64 {
	if l.OffsetHeight <= 0 || viewportHeight <= 0 {
		return 0
	}
	top := max(l.OffsetTop, scrollY)
	bottom := min(l.OffsetTop+l.OffsetHeight, scrollY+viewportHeight)
	if bottom <= top {
		return 0
	}
	return (bottom - top) / l.OffsetHeight
}

func injectStyles(doc *view.Document) {
	if doc.ElementByID(stylesID) != nil {
		return
	}
	style := doc.CreateElement("style")
	style.SetAttr("id", stylesID)
	style.SetHTML(animationCSS)
	doc.Head().AppendChild(style)
}
