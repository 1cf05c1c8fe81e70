package view

import (
	"strconv"
)

// Patch op codes understood by the browser bridge.
const (
	OpHTML       = "html"
	OpAppend     = "append"
	OpRemove     = "remove"
	OpAttr       = "attr"
	OpRemoveAttr = "removeAttr"
	OpClass      = "class"
	OpStyle      = "style"
	OpValue      = "value"
	OpScrollLeft = "scrollLeft"
	OpScrollTo   = "scrollTo"
)

// Patch is one mutation of an attached element, recorded so that a live
// browser can replay it.
type Patch struct {
	Op     string  `json:"op"`
	Target string  `json:"target,omitempty"`
	Name   string  `json:"name,omitempty"`
	Value  string  `json:"value,omitempty"`
	HTML   string  `json:"html,omitempty"`
	Number float64 `json:"number,omitempty"`
	Smooth bool    `json:"smooth,omitempty"`
}

// Event is dispatched to elements and window listeners.
type Event struct {
	Type          string
	Target        *Element
	CurrentTarget *Element

	prevented bool
	stopped   bool
}

func NewEvent(typ string) *Event { return &Event{Type: typ} }

func (ev *Event) PreventDefault()        { ev.prevented = true }
func (ev *Event) DefaultPrevented() bool { return ev.prevented }
func (ev *Event) StopPropagation()       { ev.stopped = true }

// Document owns the view tree of one page instance together with the window
// state (scroll position, viewport) and the pending patch list. It is not
// safe for concurrent use; callers serialise access through an event loop.
type Document struct {
	head *Element
	body *Element

	nextID  int
	byVID   map[string]*Element
	window  map[string][]Listener
	patches []Patch

	scrollY        float64
	viewportHeight float64
}

func NewDocument() *Document {
	d := &Document{
		byVID:  make(map[string]*Element),
		window: make(map[string][]Listener),
	}
	d.head = d.CreateElement("head")
	d.body = d.CreateElement("body")
	d.register(d.head)
	d.register(d.body)
	return d
}

func (d *Document) Head() *Element { return d.head }
func (d *Document) Body() *Element { return d.body }

// CreateElement makes a detached element. Mutations are only recorded as
// patches once the element is attached, and it is only addressable by vid
// while attached.
func (d *Document) CreateElement(tag string) *Element {
	d.nextID++
	e := &Element{
		doc:       d,
		vid:       "v" + strconv.Itoa(d.nextID),
		tag:       tag,
		attrs:     make(map[string]string),
		style:     make(map[string]string),
		listeners: make(map[string][]Listener),
	}
	return e
}

// El is shorthand for CreateElement with classes and optional text.
func (d *Document) El(tag, class string, text ...string) *Element {
	e := d.CreateElement(tag)
	if class != "" {
		e.classes = splitClasses(class)
	}
	for _, t := range text {
		e.text += t
	}
	return e
}

// Image builds an <img> that swaps to fallback the first time it reports a
// load error. The inline onerror handler does the same in browsers that are
// not connected to a live session.
func (d *Document) Image(src, alt, fallback string) *Element {
	img := d.CreateElement("img")
	img.attrs["src"] = src
	img.attrs["alt"] = alt
	if fallback == "" {
		return img
	}
	img.attrs["data-fallback"] = fallback
	img.attrs["onerror"] = "this.onerror=null;this.src=this.dataset.fallback"
	img.On("error", func(*Event) {
		if img.Attr("src") != fallback {
			img.SetAttr("src", fallback)
		}
	})
	return img
}

// ByVID resolves an attached element by its vid.
func (d *Document) ByVID(vid string) *Element {
	return d.byVID[vid]
}

func (d *Document) register(e *Element) {
	e.walk(func(n *Element) bool {
		d.byVID[n.vid] = n
		return true
	})
}

func (d *Document) unregister(e *Element) {
	e.walk(func(n *Element) bool {
		delete(d.byVID, n.vid)
		return true
	})
}

// ElementByID finds an attached element by its id attribute.
func (d *Document) ElementByID(id string) *Element {
	if e := d.body.Query(HasID(id)); e != nil {
		return e
	}
	return d.head.Query(HasID(id))
}

// QueryAll searches the body.
func (d *Document) QueryAll(pred func(*Element) bool) []*Element {
	return d.body.QueryAll(pred)
}

func (d *Document) Query(pred func(*Element) bool) *Element {
	return d.body.Query(pred)
}

// On registers a window-level listener ("scroll", "layout").
func (d *Document) On(event string, fn Listener) {
	d.window[event] = append(d.window[event], fn)
}

func (d *Document) dispatchWindow(typ string) {
	ev := NewEvent(typ)
	for _, fn := range d.window[typ] {
		fn(ev)
	}
}

func (d *Document) ScrollY() float64        { return d.scrollY }
func (d *Document) ViewportHeight() float64 { return d.viewportHeight }

// SetScroll updates the window scroll position as reported by the browser and
// fires the scroll listeners.
func (d *Document) SetScroll(y float64) {
	d.scrollY = y
	d.dispatchWindow("scroll")
}

// ScrollTo asks the browser to scroll the window. The scroll position itself
// only changes once the browser reports it back through SetScroll.
func (d *Document) ScrollTo(y float64, smooth bool) {
	d.patches = append(d.patches, Patch{Op: OpScrollTo, Number: y, Smooth: smooth})
}

// ApplyLayout stores measured geometry for the given elements and fires the
// layout listeners.
func (d *Document) ApplyLayout(layouts map[string]Layout, viewportHeight, scrollY float64) {
	for vid, l := range layouts {
		if e, ok := d.byVID[vid]; ok {
			e.layout = l
		}
	}
	d.viewportHeight = viewportHeight
	d.scrollY = scrollY
	d.dispatchWindow("layout")
}

// SetLayout sets the geometry of a single element without firing listeners.
func (e *Element) SetLayout(l Layout) { e.layout = l }

func (d *Document) record(e *Element, p Patch) {
	if !e.Attached() {
		return
	}
	d.patches = append(d.patches, p)
}

// Flush returns and clears the patches recorded since the previous flush.
func (d *Document) Flush() []Patch {
	out := d.patches
	d.patches = nil
	return out
}
