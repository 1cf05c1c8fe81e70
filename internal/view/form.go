package view

func isControl(e *Element) bool {
	switch e.tag {
	case "input", "select", "textarea":
		return e.HasAttr("name")
	}
	return false
}

// Controls returns the named form controls inside e in document order.
func (e *Element) Controls() []*Element {
	return e.QueryAll(isControl)
}

// FormValues collects control values keyed by control name.
func (e *Element) FormValues() map[string]string {
	out := make(map[string]string)
	for _, c := range e.Controls() {
		out[c.Attr("name")] = c.value
	}
	return out
}

// SetFormValues updates the controls whose names appear in values. Values
// arriving from the browser already match what it shows, so no patch is
// recorded.
func (e *Element) SetFormValues(values map[string]string) {
	for _, c := range e.Controls() {
		if v, ok := values[c.Attr("name")]; ok {
			c.value = v
		}
	}
}

// Reset restores every control to its default value.
func (e *Element) Reset() {
	for _, c := range e.Controls() {
		c.SetValue(c.def)
	}
}
