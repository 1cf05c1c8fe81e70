package view

import (
	"slices"
	"sort"
	"strings"
)

// Listener handles an event dispatched to an element or to the window.
type Listener func(ev *Event)

// Layout is the geometry of an element as measured by the browser. The server
// never computes layout itself; live sessions feed it in from the client.
type Layout struct {
	OffsetTop    float64 `json:"offsetTop"`
	OffsetHeight float64 `json:"offsetHeight"`
	ScrollWidth  float64 `json:"scrollWidth"`
	ClientWidth  float64 `json:"clientWidth"`
}

// Element is a node of the view tree. Every element carries a document-unique
// vid which is rendered as data-vid so patches can address it.
type Element struct {
	doc       *Document
	vid       string
	tag       string
	attrs     map[string]string
	classes   []string
	style     map[string]string
	text      string
	raw       string
	value     string
	def       string
	children  []*Element
	parent    *Element
	listeners map[string][]Listener

	layout     Layout
	scrollLeft float64
}

func (e *Element) VID() string         { return e.vid }
func (e *Element) Tag() string         { return e.tag }
func (e *Element) Parent() *Element    { return e.parent }
func (e *Element) Document() *Document { return e.doc }
func (e *Element) Layout() Layout      { return e.layout }

// Children returns a copy of the child list.
func (e *Element) Children() []*Element {
	return slices.Clone(e.children)
}

// Attached reports whether the element is reachable from the document head or body.
func (e *Element) Attached() bool {
	for n := e; n != nil; n = n.parent {
		if n == e.doc.head || n == e.doc.body {
			return true
		}
	}
	return false
}

func (e *Element) ID() string { return e.attrs["id"] }

func (e *Element) Attr(name string) string { return e.attrs[name] }

func (e *Element) HasAttr(name string) bool {
	_, ok := e.attrs[name]
	return ok
}

func (e *Element) SetAttr(name, value string) *Element {
	if old, ok := e.attrs[name]; ok && old == value {
		return e
	}
	e.attrs[name] = value
	e.doc.record(e, Patch{Op: OpAttr, Target: e.vid, Name: name, Value: value})
	return e
}

func (e *Element) RemoveAttr(name string) {
	if _, ok := e.attrs[name]; !ok {
		return
	}
	delete(e.attrs, name)
	e.doc.record(e, Patch{Op: OpRemoveAttr, Target: e.vid, Name: name})
}

func (e *Element) Classes() []string { return slices.Clone(e.classes) }

func (e *Element) HasClass(name string) bool { return slices.Contains(e.classes, name) }

func (e *Element) AddClass(names ...string) *Element {
	changed := false
	for _, n := range names {
		if n != "" && !e.HasClass(n) {
			e.classes = append(e.classes, n)
			changed = true
		}
	}
	if changed {
		e.recordClasses()
	}
	return e
}

func (e *Element) RemoveClass(name string) {
	i := slices.Index(e.classes, name)
	if i < 0 {
		return
	}
	e.classes = slices.Delete(e.classes, i, i+1)
	e.recordClasses()
}

func (e *Element) recordClasses() {
	e.doc.record(e, Patch{Op: OpClass, Target: e.vid, Value: strings.Join(e.classes, " ")})
}

func (e *Element) Style(prop string) string { return e.style[prop] }

func (e *Element) SetStyle(prop, value string) *Element {
	if old, ok := e.style[prop]; ok && old == value {
		return e
	}
	e.style[prop] = value
	e.doc.record(e, Patch{Op: OpStyle, Target: e.vid, Name: prop, Value: value})
	return e
}

// Text returns the element's own text content, not that of its descendants.
func (e *Element) Text() string { return e.text }

// SetText replaces the element's children with an escaped text node.
func (e *Element) SetText(s string) *Element {
	e.detachChildren()
	e.text, e.raw = s, ""
	e.recordInner()
	return e
}

// SetHTML replaces the element's children with trusted markup.
func (e *Element) SetHTML(markup string) *Element {
	e.detachChildren()
	e.text, e.raw = "", markup
	e.recordInner()
	return e
}

// TextContent concatenates the text of the element and all descendants.
func (e *Element) TextContent() string {
	var b strings.Builder
	e.walk(func(n *Element) bool {
		b.WriteString(n.text)
		return true
	})
	return b.String()
}

// Value is the live value of a form control.
func (e *Element) Value() string { return e.value }

func (e *Element) SetValue(v string) {
	if e.value == v {
		return
	}
	e.value = v
	e.doc.record(e, Patch{Op: OpValue, Target: e.vid, Value: v})
}

// SetDefault sets the value a form reset restores, and the current value.
func (e *Element) SetDefault(v string) *Element {
	e.def, e.value = v, v
	return e
}

func (e *Element) ScrollLeft() float64 { return e.scrollLeft }

func (e *Element) SetScrollLeft(x float64) {
	e.scrollLeft = x
	e.doc.record(e, Patch{Op: OpScrollLeft, Target: e.vid, Number: x})
}

// Append adds children in order and returns the receiver for chaining.
func (e *Element) Append(children ...*Element) *Element {
	for _, c := range children {
		e.AppendChild(c)
	}
	return e
}

func (e *Element) AppendChild(c *Element) {
	if c.parent != nil {
		c.parent.RemoveChild(c)
	}
	e.text, e.raw = "", ""
	c.parent = e
	e.children = append(e.children, c)
	if e.Attached() {
		e.doc.register(c)
	}
	e.doc.record(e, Patch{Op: OpAppend, Target: e.vid, HTML: c.HTML()})
}

func (e *Element) RemoveChild(c *Element) {
	i := slices.Index(e.children, c)
	if i < 0 {
		return
	}
	attached := e.Attached()
	e.children = slices.Delete(e.children, i, i+1)
	c.parent = nil
	if attached {
		e.doc.unregister(c)
	}
	e.doc.record(e, Patch{Op: OpRemove, Target: c.vid})
}

// ReplaceChildren drops every existing child and installs the given ones.
// It is recorded as a single inner-HTML patch.
func (e *Element) ReplaceChildren(children ...*Element) {
	e.detachChildren()
	e.text, e.raw = "", ""
	for _, c := range children {
		if c.parent != nil {
			c.parent.RemoveChild(c)
		}
		c.parent = e
		e.children = append(e.children, c)
	}
	if e.Attached() {
		for _, c := range e.children {
			e.doc.register(c)
		}
	}
	e.recordInner()
}

func (e *Element) detachChildren() {
	attached := e.Attached()
	for _, c := range e.children {
		c.parent = nil
		if attached {
			e.doc.unregister(c)
		}
	}
	e.children = nil
}

func (e *Element) recordInner() {
	e.doc.record(e, Patch{Op: OpHTML, Target: e.vid, HTML: e.InnerHTML()})
}

func (e *Element) On(event string, fn Listener) {
	e.listeners[event] = append(e.listeners[event], fn)
}

// Dispatch delivers ev to the element and then bubbles it up through the
// ancestors until a listener stops propagation.
func (e *Element) Dispatch(ev *Event) {
	ev.Target = e
	for n := e; n != nil && !ev.stopped; n = n.parent {
		ev.CurrentTarget = n
		for _, fn := range slices.Clone(n.listeners[ev.Type]) {
			fn(ev)
		}
	}
}

// Query returns the first descendant (depth-first, document order) matching pred.
func (e *Element) Query(pred func(*Element) bool) *Element {
	var found *Element
	e.walk(func(n *Element) bool {
		if n != e && pred(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

// QueryAll returns all descendants matching pred in document order.
func (e *Element) QueryAll(pred func(*Element) bool) []*Element {
	var out []*Element
	e.walk(func(n *Element) bool {
		if n != e && pred(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// walk visits the subtree rooted at e in document order. Returning false from
// fn stops the walk.
func (e *Element) walk(fn func(*Element) bool) bool {
	if !fn(e) {
		return false
	}
	for _, c := range e.children {
		if !c.walk(fn) {
			return false
		}
	}
	return true
}

// HasClassName and friends build predicates for Query and QueryAll.
func HasClassName(name string) func(*Element) bool {
	return func(e *Element) bool { return e.HasClass(name) }
}

func HasID(id string) func(*Element) bool {
	return func(e *Element) bool { return e.ID() == id }
}

func HasTag(tag string) func(*Element) bool {
	return func(e *Element) bool { return e.tag == tag }
}

func HasAttrValue(name, value string) func(*Element) bool {
	return func(e *Element) bool { return e.attrs[name] == value }
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
