// Package password tracks the visibility toggle of password fields.
package password

import "github.com/goliatone/go-formkit/pkg/model"

// Toggle flips a password input between masked and plain text.
type Toggle struct {
	input   *model.PasswordInput
	visible bool
}

// New constructs a masked toggle.
func New(input *model.PasswordInput) *Toggle {
	if input == nil {
		input = &model.PasswordInput{}
	}
	return &Toggle{input: input}
}

// Enabled reports whether the eye button renders.
func (t *Toggle) Enabled() bool {
	return !t.input.HideToggle
}

// Visible reports whether the value is shown in plain text.
func (t *Toggle) Visible() bool { return t.visible }

// Flip switches visibility. It does nothing when the toggle is hidden or
// the input disabled.
func (t *Toggle) Flip() bool {
	if t.Enabled() && !t.input.Disabled {
		t.visible = !t.visible
	}
	return t.visible
}

// InputType returns the HTML input type for the current state.
func (t *Toggle) InputType() string {
	if t.visible {
		return "text"
	}
	return "password"
}

// Label returns the accessible label of the eye button.
func (t *Toggle) Label() string {
	if t.visible {
		return "Hide password"
	}
	return "Show password"
}
