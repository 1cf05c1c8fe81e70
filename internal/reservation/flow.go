// Package reservation implements the reservation form and its simulated
// confirmation modal. Nothing submitted here is stored or sent anywhere.
package reservation

import (
	"time"

	"github.com/vbonduro/rubysdiner/internal/clock"
	"github.com/vbonduro/rubysdiner/internal/domain"
	"github.com/vbonduro/rubysdiner/internal/view"
)

type State int

const (
	Idle State = iota
	Submitted
	ConfirmationShown
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitted:
		return "submitted"
	case ConfirmationShown:
		return "confirmation-shown"
	}
	return "unknown"
}

type Options struct {
	// BackdropDismiss lets a click on the modal backdrop close it.
	BackdropDismiss bool
	FadeIn          time.Duration
	FadeOut         time.Duration
}

func DefaultOptions() Options {
	return Options{FadeIn: 10 * time.Millisecond, FadeOut: 300 * time.Millisecond}
}

type Flow struct {
	doc   *view.Document
	form  *view.Element
	sched clock.Scheduler
	opts  Options

	state State
	modal *view.Element
	last  domain.ReservationRequest
}

func New(doc *view.Document, form *view.Element, sched clock.Scheduler, opts Options) *Flow {
	def := DefaultOptions()
	if opts.FadeIn <= 0 {
		opts.FadeIn = def.FadeIn
	}
	if opts.FadeOut <= 0 {
		opts.FadeOut = def.FadeOut
	}
	return &Flow{doc: doc, form: form, sched: sched, opts: opts}
}

// Init restricts the date input to today onwards and binds submit.
func (f *Flow) Init() {
	if f.form == nil {
		return
	}
	if date := f.form.Query(view.HasAttrValue("name", FieldDate)); date != nil {
		date.SetAttr("min", f.sched.Now().Format(time.DateOnly))
	}
	f.form.On("submit", func(ev *view.Event) {
		ev.PreventDefault()
		f.Submit(f.form.FormValues())
	})
}

// Submit shows the confirmation for the given field values. It is ignored
// while a confirmation is already on screen.
func (f *Flow) Submit(values map[string]string) bool {
	if f.state != Idle {
		return false
	}
	f.state = Submitted
	f.last = FromValues(values)

	injectStyles(f.doc)
	f.modal = Modal(f.doc, f.last)
	modal := f.modal
	if btn := modal.Query(view.HasClassName("close-modal")); btn != nil {
		btn.On("click", func(*view.Event) { f.Dismiss() })
	}
	if f.opts.BackdropDismiss {
		modal.On("click", func(ev *view.Event) {
			if ev.Target == modal {
				f.Dismiss()
			}
		})
	}
	f.doc.Body().AppendChild(modal)
	f.state = ConfirmationShown

	f.sched.AfterFunc(f.opts.FadeIn, func() {
		if f.modal == modal {
			modal.AddClass("show")
		}
	})
	return true
}

// Dismiss fades the modal out, removes it once the transition has run and
// resets the form straight away.
func (f *Flow) Dismiss() {
	if f.state != ConfirmationShown || f.modal == nil {
		return
	}
	modal := f.modal
	f.modal = nil
	f.state = Idle
	f.last = domain.ReservationRequest{}

	modal.RemoveClass("show")
	f.sched.AfterFunc(f.opts.FadeOut, func() {
		if p := modal.Parent(); p != nil {
			p.RemoveChild(modal)
		}
	})
	f.form.Reset()
}

func (f *Flow) State() State { return f.state }

// Modal returns the modal currently on screen, if any.
func (f *Flow) Modal() *view.Element { return f.modal }

// Last is the request behind the confirmation on screen.
func (f *Flow) Last() domain.ReservationRequest { return f.last }

// Confirmation builds the modal content: heading, messages and close button.
func Confirmation(doc *view.Document, req domain.ReservationRequest) *view.Element {
	closeBtn := doc.El("button", "btn primary-btn close-modal", "Close")
	closeBtn.SetAttr("id", "close-modal")
	closeBtn.SetAttr("type", "button")
	return doc.El("div", "modal-content").Append(
		doc.El("h3", "", "Reservation Confirmed!"),
		doc.El("p", "", "Thank you, "+req.Name+"!"),
		doc.El("p", "", "Your table for "+req.PartySize+" has been booked for "+FormatDate(req.Date)+" at "+req.Time+"."),
		doc.El("p", "", "A confirmation email has been sent to "+req.Email+"."),
		closeBtn,
	)
}

// Modal wraps the confirmation in the backdrop element.
func Modal(doc *view.Document, req domain.ReservationRequest) *view.Element {
	return doc.El("div", "reservation-modal").Append(Confirmation(doc, req))
}

const modalStylesID = "modal-styles"

const modalCSS = `.reservation-modal{position:fixed;top:0;left:0;width:100%;height:100%;background-color:rgba(0,0,0,.7);display:flex;justify-content:center;align-items:center;z-index:2000;opacity:0;transition:opacity .3s ease}
.reservation-modal.show{opacity:1}
.modal-content{background-color:#fff;padding:2rem;border-radius:8px;max-width:500px;width:90%;text-align:center;transform:translateY(-20px);transition:transform .3s ease}
.reservation-modal.show .modal-content{transform:translateY(0)}
.modal-content h3{color:#e63946;margin-bottom:1rem}
.modal-content p{margin-bottom:1rem}`

func injectStyles(doc *view.Document) {
	if doc.ElementByID(modalStylesID) != nil {
		return
	}
	style := doc.CreateElement("style")
	style.SetAttr("id", modalStylesID)
	style.SetHTML(modalCSS)
	doc.Head().AppendChild(style)
}
