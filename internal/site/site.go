// Package site assembles the full page: it builds the skeleton from the
// catalog and initialises every component in order.
package site

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/vbonduro/rubysdiner/internal/animate"
	"github.com/vbonduro/rubysdiner/internal/catalog"
	"github.com/vbonduro/rubysdiner/internal/celebrity"
	"github.com/vbonduro/rubysdiner/internal/clock"
	"github.com/vbonduro/rubysdiner/internal/menu"
	"github.com/vbonduro/rubysdiner/internal/navigation"
	"github.com/vbonduro/rubysdiner/internal/reservation"
	"github.com/vbonduro/rubysdiner/internal/staff"
	"github.com/vbonduro/rubysdiner/internal/testimonial"
	"github.com/vbonduro/rubysdiner/internal/view"
)

// Fallback endpoints used by the page when no live session is connected.
const (
	PartialMenuPath = "/partials/menu/"
	ReservationPath = "/reservations"
)

type Options struct {
	DefaultCategory string
	ShowStaff       bool
	// MenuTransition fades the menu grid between categories; zero disables it.
	MenuTransition menu.Transition
	Navigation     navigation.Options
	Carousel       celebrity.CarouselOptions
	Reservation    reservation.Options
}

func DefaultOptions() Options {
	return Options{
		DefaultCategory: menu.DefaultCategory,
		ShowStaff:       true,
		Navigation:      navigation.Options{Threshold: navigation.DefaultThreshold},
		Carousel:        celebrity.DefaultCarouselOptions(),
		Reservation:     reservation.DefaultOptions(),
	}
}

// Page is one live instance of the site. Its element ids are assigned in a
// fixed order, so two pages built from the same catalog and options address
// the same elements with the same vids.
type Page struct {
	Doc         *view.Document
	Menu        *menu.Menu
	Carousel    *celebrity.Carousel
	Reservation *reservation.Flow
	Navigation  *navigation.Navigator
	Revealer    *animate.Revealer

	logger *slog.Logger
}

type skeleton struct {
	hero     *view.Element
	sections []*view.Element
	links    []*view.Element
	menuGrid *view.Element
	tabs     []*view.Element
	form     *view.Element
	carousel *view.Element
	reviews  *view.Element
	staff    *view.Element
}

// Build creates the page and runs the init sequence: menu, reservation form,
// celebrities and carousel, testimonials, staff, animations, navigation.
func Build(cat *catalog.Catalog, sched clock.Scheduler, opts Options, logger *slog.Logger) (*Page, error) {
	if logger == nil {
		logger = slog.Default()
	}
	doc := view.NewDocument()
	sk, err := buildSkeleton(doc, cat, opts)
	if err != nil {
		return nil, err
	}

	p := &Page{Doc: doc, logger: logger}

	p.Menu = menu.New(doc, sk.menuGrid, sk.tabs, cat.Categories)
	p.Menu.Init(opts.DefaultCategory)
	p.Menu.Animate(sched, opts.MenuTransition)

	p.Reservation = reservation.New(doc, sk.form, sched, opts.Reservation)
	p.Reservation.Init()

	celebrity.Render(doc, sk.carousel, cat.Celebrities)
	p.Carousel = celebrity.NewCarousel(sk.carousel, sched, opts.Carousel)
	p.Carousel.Start()

	testimonial.Render(doc, sk.reviews, cat.Testimonials)
	staff.Render(doc, sk.staff, cat.Staff, cat.StaffFallbackImage)

	p.Revealer = animate.New(doc, sk.sections, sk.hero)
	p.Revealer.Init()

	p.Navigation = navigation.New(doc, sk.links, sk.sections, opts.Navigation)
	p.Navigation.Init()

	logger.Debug("page built", "category", p.Menu.Active(), "sections", len(sk.sections))
	return p, nil
}

// Close stops every timer the page owns.
func (p *Page) Close() {
	p.Menu.Stop()
	p.Carousel.Stop()
}

type sectionDef struct {
	id, title, class, nav string
}

func buildSkeleton(doc *view.Document, cat *catalog.Catalog, opts Options) (*skeleton, error) {
	sk := &skeleton{}
	body := doc.Body()

	defs := []sectionDef{
		{id: "home", nav: "Home"},
		{id: "menu", title: "Our Menu", class: "menu-section", nav: "Menu"},
		{id: "reservations", title: "Make a Reservation", class: "reservation-section", nav: "Reservations"},
		{id: "celebrities", title: "Famous Visitors", class: "celebrity-section", nav: "Celebrities"},
		{id: "testimonials", title: "What Our Customers Say", class: "testimonials-section", nav: "Reviews"},
	}
	if opts.ShowStaff {
		defs = append(defs, sectionDef{id: "staff", title: "Meet Our Staff", class: "staff-section", nav: "Our Staff"})
	}
	defs = append(defs, sectionDef{id: "about", title: "Our Story", class: "about-section", nav: "About"})

	navList := doc.El("ul", "nav-links")
	for _, d := range defs {
		link := doc.El("a", "", d.nav)
		link.SetAttr("href", "#"+d.id)
		sk.links = append(sk.links, link)
		navList.Append(doc.El("li", "").Append(link))
	}
	header := doc.El("header", "site-header").Append(
		doc.El("div", "container header-inner").Append(
			doc.El("div", "logo").Append(doc.El("h1", "", cat.Name)),
			doc.El("nav", "").Append(navList),
		),
	)
	body.Append(header)

	main := doc.El("main", "")
	for _, d := range defs {
		sec := doc.El("section", d.class)
		sec.SetAttr("id", d.id)
		inner := doc.El("div", "container")
		if d.title != "" {
			inner.Append(doc.El("div", "section-header").Append(doc.El("h2", "", d.title)))
		}
		sec.Append(inner)
		sk.sections = append(sk.sections, sec)
		main.Append(sec)

		switch d.id {
		case "home":
			sec.AddClass("hero", "hero-section")
			sk.hero = sec
			reserve := doc.El("a", "btn primary-btn", "Reserve a Table")
			reserve.SetAttr("href", "#reservations")
			order := doc.El("a", "btn secondary-btn", "View Menu")
			order.SetAttr("href", "#menu")
			inner.Append(doc.El("div", "hero-content").Append(
				doc.El("h2", "", "Welcome to "+cat.Name),
				doc.El("p", "", cat.Tagline),
				doc.El("div", "hero-buttons").Append(reserve, order),
			))
		case "menu":
			sk.tabs = menu.BuildTabs(doc, cat.Categories)
			for _, tab := range sk.tabs {
				tab.SetAttr("hx-get", PartialMenuPath+tab.Attr("data-category"))
				tab.SetAttr("hx-target", ".menu-items")
			}
			sk.menuGrid = doc.El("div", "menu-items")
			inner.Append(doc.El("div", "menu-tabs").Append(sk.tabs...), sk.menuGrid)
		case "reservations":
			sk.form = reservation.BuildForm(doc)
			sk.form.SetAttr("hx-post", ReservationPath)
			sk.form.SetAttr("hx-target", "body")
			sk.form.SetAttr("hx-swap", "beforeend")
			inner.Append(doc.El("div", "reservation-form-container").Append(sk.form))
		case "celebrities":
			sk.carousel = doc.El("div", "celebrity-carousel")
			inner.Append(sk.carousel)
		case "testimonials":
			sk.reviews = doc.El("div", "reviews-container")
			inner.Append(sk.reviews)
		case "staff":
			sk.staff = doc.El("div", "staff-container")
			inner.Append(sk.staff)
		case "about":
			story, err := renderMarkdown(cat.About)
			if err != nil {
				return nil, err
			}
			hours := doc.El("ul", "hours-list")
			for _, h := range cat.Hours {
				hours.Append(doc.El("li", "").Append(
					doc.El("span", "days", h.Days),
					doc.El("span", "hours", h.Hours),
				))
			}
			inner.Append(
				doc.El("div", "about-story").SetHTML(story),
				doc.El("div", "opening-hours").Append(doc.El("h3", "", "Opening Hours"), hours),
			)
		}
	}
	body.Append(main)

	body.Append(doc.El("footer", "site-footer").Append(
		doc.El("div", "container").Append(
			doc.El("p", "footer-address", cat.Contact.Address),
			doc.El("p", "footer-phone", cat.Contact.Phone),
			doc.El("p", "footer-email", cat.Contact.Email),
			doc.El("p", "copyright", "© "+cat.Name),
		),
	))
	return sk, nil
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

func renderMarkdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("rendering about text: %w", err)
	}
	return buf.String(), nil
}
