package view

import (
	"html"
	"strings"
)

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

func splitClasses(s string) []string {
	var out []string
	for _, f := range strings.Fields(s) {
		if !contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// HTML renders the element and its subtree.
func (e *Element) HTML() string {
	var b strings.Builder
	e.render(&b)
	return b.String()
}

// InnerHTML renders the children (or text) of the element.
func (e *Element) InnerHTML() string {
	var b strings.Builder
	e.renderInner(&b)
	return b.String()
}

func (e *Element) render(b *strings.Builder) {
	b.WriteByte('<')
	b.WriteString(e.tag)
	writeAttr(b, "data-vid", e.vid)
	if id, ok := e.attrs["id"]; ok {
		writeAttr(b, "id", id)
	}
	if len(e.classes) > 0 {
		writeAttr(b, "class", strings.Join(e.classes, " "))
	}
	if len(e.style) > 0 {
		var css []string
		for _, k := range sortedKeys(e.style) {
			css = append(css, k+": "+e.style[k])
		}
		writeAttr(b, "style", strings.Join(css, "; "))
	}
	for _, k := range sortedKeys(e.attrs) {
		if k == "id" || (k == "value" && e.tag == "input") {
			continue
		}
		writeAttr(b, k, e.attrs[k])
	}
	switch e.tag {
	case "input":
		if e.value != "" {
			writeAttr(b, "value", e.value)
		}
	case "option":
		if p := e.parent; p != nil && p.tag == "select" && p.value == e.attrs["value"] && !e.HasAttr("selected") {
			b.WriteString(" selected")
		}
	}
	b.WriteByte('>')
	if voidElements[e.tag] {
		return
	}
	e.renderInner(b)
	b.WriteString("</")
	b.WriteString(e.tag)
	b.WriteByte('>')
}

func (e *Element) renderInner(b *strings.Builder) {
	switch {
	case e.tag == "textarea":
		b.WriteString(html.EscapeString(e.value))
	case e.raw != "":
		b.WriteString(e.raw)
	case len(e.children) > 0:
		if e.text != "" {
			b.WriteString(html.EscapeString(e.text))
		}
		for _, c := range e.children {
			c.render(b)
		}
	default:
		b.WriteString(html.EscapeString(e.text))
	}
}

func writeAttr(b *strings.Builder, name, value string) {
	b.WriteByte(' ')
	b.WriteString(name)
	if value == "" && isBooleanAttr(name) {
		return
	}
	b.WriteString(`="`)
	b.WriteString(html.EscapeString(value))
	b.WriteByte('"')
}

func isBooleanAttr(name string) bool {
	switch name {
	case "required", "selected", "disabled", "checked", "defer", "async", "hidden":
		return true
	}
	return false
}
