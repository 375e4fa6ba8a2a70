package render

import (
	"github.com/goliatone/go-formkit/pkg/widgets/calendar"
	"github.com/goliatone/go-formkit/pkg/widgets/dropdown"
	"github.com/goliatone/go-formkit/pkg/widgets/file"
	"github.com/goliatone/go-formkit/pkg/widgets/otp"
	"github.com/goliatone/go-formkit/pkg/widgets/password"
	"github.com/goliatone/go-formkit/pkg/widgets/phone"
)

// State supplies live widget state to a render. Fields rendered without
// state get a fresh, closed widget built over their handle.
type State func(*widgetState)

type widgetState struct {
	id       string
	dropdown *dropdown.Widget
	picker   *calendar.Picker
	otp      *otp.Widget
	files    *file.Selector
	password *password.Toggle
	phone    *phone.Widget
}

// WithID fixes the instance id instead of minting one.
func WithID(id string) State {
	return func(s *widgetState) { s.id = id }
}

// WithDropdown renders an existing dropdown, open state and query included.
func WithDropdown(w *dropdown.Widget) State {
	return func(s *widgetState) { s.dropdown = w }
}

// WithDatePicker renders an existing date picker.
func WithDatePicker(p *calendar.Picker) State {
	return func(s *widgetState) { s.picker = p }
}

// WithOTP renders an existing code entry, including its countdown.
func WithOTP(w *otp.Widget) State {
	return func(s *widgetState) { s.otp = w }
}

// WithFiles renders an existing file selector.
func WithFiles(sel *file.Selector) State {
	return func(s *widgetState) { s.files = sel }
}

// WithPassword renders an existing visibility toggle.
func WithPassword(t *password.Toggle) State {
	return func(s *widgetState) { s.password = t }
}

// WithPhone renders an existing phone widget.
func WithPhone(w *phone.Widget) State {
	return func(s *widgetState) { s.phone = w }
}

func collectState(states []State) widgetState {
	var ws widgetState
	for _, state := range states {
		if state != nil {
			state(&ws)
		}
	}
	return ws
}
