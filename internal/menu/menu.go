// Package menu renders the tabbed menu: one tab per category and a grid of
// item cards for the selected category.
package menu

import (
	"net/url"
	"strconv"
	"time"

	"github.com/vbonduro/rubysdiner/internal/clock"
	"github.com/vbonduro/rubysdiner/internal/domain"
	"github.com/vbonduro/rubysdiner/internal/view"
)

const DefaultCategory = "burgers"

// FallbackImage is the placeholder shown when an item photo fails to load.
func FallbackImage(name string) string {
	return "https://placehold.co/400x300/e2e8f0/1e293b?text=" + url.QueryEscape(name)
}

// Grid classes toggled while a transition runs.
const (
	FadeOutClass = "fade-out"
	FadeInClass  = "fade-in"
)

// Transition fades the grid out before the cards are swapped and back in
// afterwards. The zero value swaps immediately.
type Transition struct {
	FadeOut time.Duration
	FadeIn  time.Duration
}

func DefaultTransition() Transition {
	return Transition{FadeOut: 300 * time.Millisecond, FadeIn: 500 * time.Millisecond}
}

type Menu struct {
	doc       *view.Document
	container *view.Element
	tabs      []*view.Element
	cats      []domain.MenuCategory
	active    string

	sched      clock.Scheduler
	transition Transition
	swap       clock.Timer
	settle     clock.Timer
}

// New binds the menu to its item container and tab buttons. Tabs carry their
// category key in data-category. A nil container leaves the menu inert.
func New(doc *view.Document, container *view.Element, tabs []*view.Element, cats []domain.MenuCategory) *Menu {
	return &Menu{doc: doc, container: container, tabs: tabs, cats: cats}
}

// BuildTabs creates one tab button per category, in declared order.
func BuildTabs(doc *view.Document, cats []domain.MenuCategory) []*view.Element {
	tabs := make([]*view.Element, 0, len(cats))
	for _, c := range cats {
		b := doc.El("button", "tab-btn", c.Label)
		b.SetAttr("type", "button")
		b.SetAttr("data-category", c.Key)
		tabs = append(tabs, b)
	}
	return tabs
}

// Init wires the tab click handlers and displays the default category.
func (m *Menu) Init(defaultKey string) {
	if m.container == nil {
		return
	}
	if defaultKey == "" {
		defaultKey = DefaultCategory
	}
	for _, tab := range m.tabs {
		tab := tab
		tab.On("click", func(*view.Event) {
			m.Select(tab.Attr("data-category"))
		})
	}
	m.markActive(defaultKey)
	m.Display(defaultKey)
}

// Animate makes Select run t on sched. Init still renders immediately.
func (m *Menu) Animate(sched clock.Scheduler, t Transition) {
	m.sched, m.transition = sched, t
}

// Select marks the tab for key as the only active tab and re-renders. With a
// transition the cards are swapped once the fade-out has run; a newer
// selection cancels a pending swap.
func (m *Menu) Select(key string) {
	m.markActive(key)
	if m.sched == nil || m.container == nil || m.transition == (Transition{}) {
		m.Display(key)
		return
	}
	m.Stop()
	grid := m.container
	grid.RemoveClass(FadeInClass)
	grid.AddClass(FadeOutClass)
	m.swap = m.sched.AfterFunc(m.transition.FadeOut, func() {
		m.swap = nil
		m.Display(key)
		grid.RemoveClass(FadeOutClass)
		grid.AddClass(FadeInClass)
		m.settle = m.sched.AfterFunc(m.transition.FadeIn, func() {
			m.settle = nil
			grid.RemoveClass(FadeInClass)
		})
	})
}

// Stop cancels a running transition.
func (m *Menu) Stop() {
	if m.swap != nil {
		m.swap.Stop()
		m.swap = nil
	}
	if m.settle != nil {
		m.settle.Stop()
		m.settle = nil
	}
}

func (m *Menu) markActive(key string) {
	for _, tab := range m.tabs {
		if tab.Attr("data-category") == key {
			tab.AddClass("active")
		} else {
			tab.RemoveClass("active")
		}
	}
}

// Display replaces the container's children with the cards of the category
// and returns how many were rendered. An unknown key renders nothing.
func (m *Menu) Display(key string) int {
	if m.container == nil {
		return 0
	}
	m.active = key
	items := m.items(key)
	cards := make([]*view.Element, 0, len(items))
	for i, item := range items {
		card := Card(m.doc, item)
		card.SetStyle("animation-delay", strconv.FormatFloat(float64(i)/10, 'f', -1, 64)+"s")
		cards = append(cards, card)
	}
	m.container.ReplaceChildren(cards...)
	return len(cards)
}

func (m *Menu) Active() string { return m.active }

func (m *Menu) items(key string) []domain.MenuItem {
	for _, c := range m.cats {
		if c.Key == key {
			return c.Items
		}
	}
	return nil
}

// Card builds a single menu item card.
func Card(doc *view.Document, item domain.MenuItem) *view.Element {
	title := doc.El("div", "menu-item-title").Append(
		doc.El("h3", "", item.Name),
		doc.El("span", "menu-item-price", item.Price),
	)
	info := doc.El("div", "menu-item-info").Append(
		title,
		doc.El("p", "", item.Description),
	)
	return doc.El("div", "menu-item").Append(
		doc.Image(item.ImageURL, item.Name, FallbackImage(item.Name)),
		info,
	)
}

// Render builds a detached grid for key, used for fragment responses.
func Render(doc *view.Document, cats []domain.MenuCategory, key string) (*view.Element, int) {
	grid := doc.El("div", "menu-items")
	m := New(doc, grid, nil, cats)
	n := m.Display(key)
	return grid, n
}
