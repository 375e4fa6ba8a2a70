// Package checkbox holds the toggle state of boolean fields.
package checkbox

import (
	"github.com/goliatone/go-formkit/pkg/binding"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/style"
)

// Widget toggles a boolean value source.
type Widget struct {
	input *model.CheckboxInput
	value *binding.Value[bool]
}

// New constructs a checkbox over value.
func New(input *model.CheckboxInput, value *binding.Value[bool]) *Widget {
	if input == nil {
		input = &model.CheckboxInput{}
	}
	if value == nil {
		value = binding.NewUncontrolled(false, nil)
	}
	return &Widget{input: input, value: value}
}

// Checked reports the current state.
func (w *Widget) Checked() bool { return w.value.Get() }

// Toggle flips the state. Disabled checkboxes ignore it.
func (w *Widget) Toggle() bool {
	if w.input.Disabled {
		return w.value.Get()
	}
	next := !w.value.Get()
	w.value.Set(next)
	return next
}

// Classes returns the box and label classes for size.
func (w *Widget) Classes(size style.Size) (box, label string) {
	return style.CheckboxClasses(w.input.Variant, size, w.Checked(), w.input.Disabled)
}

// Icon returns the icon markup for the current state, empty when unset.
func (w *Widget) Icon() string {
	if w.Checked() {
		return w.input.CheckedIcon
	}
	return w.input.UncheckedIcon
}

// ParseBool reads a submitted checkbox value. Browsers send "on" for a
// checked box without an explicit value.
func ParseBool(raw string) bool {
	switch raw {
	case "on", "true", "1", "yes", "checked":
		return true
	default:
		return false
	}
}
