package tui

import (
	"maps"

	"github.com/goliatone/go-formkit/pkg/form"
)

// State tracks collected values and the server-provided errors keyed by
// field name.
type State struct {
	values map[string]any
	errors form.ErrorMapping
}

// NewState seeds the state with prefilled values and errors.
func NewState(prefill map[string]any, errs form.ErrorMapping) *State {
	values := make(map[string]any, len(prefill))
	maps.Copy(values, prefill)
	return &State{values: values, errors: errs}
}

// Values returns the current value map (mutable).
func (s *State) Values() map[string]any {
	if s == nil {
		return nil
	}
	return s.values
}

// Errors returns the seeded errors.
func (s *State) Errors() form.ErrorMapping {
	if s == nil {
		return form.ErrorMapping{}
	}
	return s.errors
}

// ErrorsFor returns the errors attached to a field.
func (s *State) ErrorsFor(name string) []string {
	if s == nil {
		return nil
	}
	return s.errors.Fields[name]
}

// Value returns the value collected or prefilled for name.
func (s *State) Value(name string) (any, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s.values[name]
	return v, ok
}

// SetValue records value for name; nil removes it.
func (s *State) SetValue(name string, value any) {
	if s == nil {
		return
	}
	if value == nil {
		delete(s.values, name)
		return
	}
	s.values[name] = value
}
