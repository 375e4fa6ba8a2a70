package render

import (
	"github.com/goliatone/go-formkit/pkg/binding"
	"github.com/goliatone/go-formkit/pkg/model"
)

// ChangePipeline returns the change handler of a text-like field: raw text
// is rewritten by the field format, reported to the handle and then to the
// field's own observer.
func ChangePipeline(field model.Field, handle *binding.Handle) func(string) {
	return func(raw string) {
		value := raw
		if field.Format != nil {
			value = field.Format(raw)
		}
		if handle != nil {
			handle.Value = value
			handle.Change(value)
		}
		if field.OnChange != nil {
			field.OnChange(value)
		}
	}
}

// BlurPipeline returns the blur handler: the handle is told first.
func BlurPipeline(field model.Field, handle *binding.Handle) func() {
	return func() {
		if handle != nil {
			handle.Blur()
		}
		if field.OnBlur != nil {
			field.OnBlur()
		}
	}
}

// FocusPipeline returns the focus handler.
func FocusPipeline(field model.Field, handle *binding.Handle) func() {
	return func() {
		if handle != nil {
			handle.Focus()
		}
		if field.OnFocus != nil {
			field.OnFocus()
		}
	}
}
