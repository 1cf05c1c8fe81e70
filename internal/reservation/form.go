package reservation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vbonduro/rubysdiner/internal/domain"
	"github.com/vbonduro/rubysdiner/internal/view"
)

// Form field names, shared by the markup, the live session and the
// fragment endpoint.
const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldDate            = "date"
	FieldTime            = "time"
	FieldGuests          = "guests"
	FieldSeating         = "booth"
	FieldOccasion        = "occasion"
	FieldSpecialRequests = "special-requests"
)

// ErrMissingField is returned by Validate when a required field is blank.
var ErrMissingField = errors.New("missing required field")

var seatingLabels = map[string]string{
	"any":     "No preference",
	"booth":   "Booth",
	"counter": "Counter",
	"patio":   "Patio",
}

// FromValues builds a request from form values keyed by field name.
func FromValues(values map[string]string) domain.ReservationRequest {
	get := func(k string) string { return strings.TrimSpace(values[k]) }
	return domain.ReservationRequest{
		Name:              get(FieldName),
		Email:             get(FieldEmail),
		Date:              get(FieldDate),
		Time:              get(FieldTime),
		PartySize:         get(FieldGuests),
		SeatingPreference: get(FieldSeating),
		Occasion:          get(FieldOccasion),
		SpecialRequests:   values[FieldSpecialRequests],
	}
}

// Validate mirrors the form's required attributes.
func Validate(req domain.ReservationRequest) error {
	required := []struct{ name, value string }{
		{FieldName, req.Name},
		{FieldEmail, req.Email},
		{FieldDate, req.Date},
		{FieldTime, req.Time},
		{FieldGuests, req.PartySize},
	}
	for _, f := range required {
		if f.value == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}
	return nil
}

// FormatDate renders a YYYY-MM-DD value as e.g. "Friday, March 8, 2024". The
// calendar date is kept as entered; unparseable input is returned unchanged.
func FormatDate(raw string) string {
	d, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return raw
	}
	return d.Format("Monday, January 2, 2006")
}

// BuildForm creates the reservation form markup. The date input's min is
// applied later by Flow.Init.
func BuildForm(doc *view.Document) *view.Element {
	form := doc.El("form", "reservation-form")
	form.SetAttr("id", "reservation-form")
	form.SetAttr("method", "post")
	form.SetAttr("action", "/reservations")

	guests := doc.CreateElement("select")
	guests.Append(option(doc, "", "Select"))
	for _, size := range domain.PartySizes {
		label := size + " people"
		if size == "1" {
			label = "1 person"
		}
		guests.Append(option(doc, size, label))
	}

	seating := doc.CreateElement("select")
	for _, pref := range domain.SeatingPreferences {
		seating.Append(option(doc, pref, seatingLabels[pref]))
	}
	seating.SetDefault(domain.SeatingPreferences[0])

	requests := doc.CreateElement("textarea")
	requests.SetAttr("rows", "3")

	submit := doc.El("button", "btn primary-btn", "Book Now")
	submit.SetAttr("type", "submit")

	form.Append(
		row(doc,
			group(doc, "Name", FieldName, input(doc, "text"), true),
			group(doc, "Email", FieldEmail, input(doc, "email"), true),
		),
		row(doc,
			group(doc, "Date", FieldDate, input(doc, "date"), true),
			group(doc, "Time", FieldTime, input(doc, "time"), true),
		),
		row(doc,
			group(doc, "Number of Guests", FieldGuests, guests, true),
			group(doc, "Seating Preference", FieldSeating, seating, false),
		),
		group(doc, "Special Occasion", FieldOccasion, input(doc, "text"), false),
		group(doc, "Special Requests", FieldSpecialRequests, requests, false),
		submit,
	)
	return form
}

func input(doc *view.Document, typ string) *view.Element {
	in := doc.CreateElement("input")
	in.SetAttr("type", typ)
	return in
}

func option(doc *view.Document, value, label string) *view.Element {
	o := doc.El("option", "", label)
	o.SetAttr("value", value)
	return o
}

func row(doc *view.Document, groups ...*view.Element) *view.Element {
	return doc.El("div", "form-row").Append(groups...)
}

func group(doc *view.Document, label, name string, control *view.Element, required bool) *view.Element {
	control.SetAttr("id", name)
	control.SetAttr("name", name)
	if required {
		control.SetAttr("required", "")
	}
	l := doc.El("label", "", label)
	l.SetAttr("for", name)
	return doc.El("div", "form-group").Append(l, control)
}
