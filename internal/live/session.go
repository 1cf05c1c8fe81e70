// Package live runs one server-side page per browser tab. Browser events
// arrive over a websocket, are applied to the page on its event loop, and the
// resulting patches are written back after every callback.
package live

import (
	"errors"
	"fmt"

	"github.com/vbonduro/rubysdiner/internal/site"
	"github.com/vbonduro/rubysdiner/internal/view"
)

// Client event types.
const (
	EventLayout     = "layout"
	EventScroll     = "scroll"
	EventClick      = "click"
	EventSubmit     = "submit"
	EventMouseEnter = "mouseenter"
	EventMouseLeave = "mouseleave"
	EventError      = "error"
)

var (
	ErrUnknownEvent  = errors.New("unknown event type")
	ErrUnknownTarget = errors.New("unknown target")
)

// ClientEvent is one message from the browser bridge.
type ClientEvent struct {
	Type     string                 `json:"type"`
	Target   string                 `json:"target,omitempty"`
	ScrollY  float64                `json:"scrollY,omitempty"`
	Viewport float64                `json:"viewportHeight,omitempty"`
	Layouts  map[string]view.Layout `json:"layout,omitempty"`
	Values   map[string]string      `json:"values,omitempty"`
}

// ServerMessage carries the patches produced by one loop callback.
type ServerMessage struct {
	Patches []view.Patch `json:"patches"`
}

// Session pairs a page with the id used in logs. Apply must only be called
// from the page's event loop.
type Session struct {
	ID   string
	Page *site.Page
}

func (s *Session) Apply(ev ClientEvent) error {
	doc := s.Page.Doc
	switch ev.Type {
	case EventLayout:
		doc.ApplyLayout(ev.Layouts, ev.Viewport, ev.ScrollY)
		return nil
	case EventScroll:
		doc.SetScroll(ev.ScrollY)
		return nil
	case EventClick, EventMouseEnter, EventMouseLeave, EventError, EventSubmit:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Type)
	}

	el := doc.ByVID(ev.Target)
	if el == nil {
		return fmt.Errorf("%w: %q", ErrUnknownTarget, ev.Target)
	}
	if ev.Type == EventSubmit {
		el.SetFormValues(ev.Values)
	}
	el.Dispatch(view.NewEvent(ev.Type))
	return nil
}
