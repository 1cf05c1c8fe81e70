// Package navigation highlights the header link of the section in view and
// smooth-scrolls to a section when its link is clicked.
package navigation

import (
	"strings"

	"github.com/vbonduro/rubysdiner/internal/view"
)

const (
	DefaultThreshold   = 200
	AlternateThreshold = 100
)

type Options struct {
	// Threshold is how far above a section's top the scroll position may be
	// for that section to count as current. Zero selects DefaultThreshold.
	Threshold float64
	// HeaderOffset is subtracted from the target when scrolling on click.
	HeaderOffset float64
}

type Navigator struct {
	doc      *view.Document
	links    []*view.Element
	sections []*view.Element
	opts     Options
}

func New(doc *view.Document, links, sections []*view.Element, opts Options) *Navigator {
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultThreshold
	}
	return &Navigator{doc: doc, links: links, sections: sections, opts: opts}
}

func (n *Navigator) Init() {
	for _, link := range n.links {
		link := link
		link.On("click", func(ev *view.Event) {
			ev.PreventDefault()
			n.Click(link)
		})
	}
	n.doc.On("scroll", func(*view.Event) { n.Update(n.doc.ScrollY()) })
}

// Click makes link the only active link and scrolls to its section.
func (n *Navigator) Click(link *view.Element) {
	n.setActive(link)
	target := n.section(strings.TrimPrefix(link.Attr("href"), "#"))
	if target == nil {
		return
	}
	n.doc.ScrollTo(max(target.Layout().OffsetTop-n.opts.HeaderOffset, 0), true)
}

// Update highlights the link of the last section whose top, less the
// threshold, has been scrolled past. No match leaves every link inactive.
func (n *Navigator) Update(scrollY float64) string {
	current := n.Current(scrollY)
	var match *view.Element
	if current != "" {
		for _, link := range n.links {
			if link.Attr("href") == "#"+current {
				match = link
				break
			}
		}
	}
	n.setActive(match)
	return current
}

// Current returns the id of the section in view at scrollY.
func (n *Navigator) Current(scrollY float64) string {
	current := ""
	for _, s := range n.sections {
		if scrollY >= s.Layout().OffsetTop-n.opts.Threshold {
			current = s.ID()
		}
	}
	return current
}

func (n *Navigator) setActive(active *view.Element) {
	for _, link := range n.links {
		if link == active {
			link.AddClass("active")
		} else {
			link.RemoveClass("active")
		}
	}
}

// ActiveLinks lists the links currently marked active.
func (n *Navigator) ActiveLinks() []*view.Element {
	var out []*view.Element
	for _, link := range n.links {
		if link.HasClass("active") {
			out = append(out, link)
		}
	}
	return out
}

func (n *Navigator) section(id string) *view.Element {
	for _, s := range n.sections {
		if s.ID() == id {
			return s
		}
	}
	return nil
}
