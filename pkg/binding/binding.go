// Package binding connects widgets to the caller-owned form state. A Handle
// is the per-field view a form controller hands to the renderer; a Value is
// the single source of truth a widget reads and writes.
package binding

import "sync"

// Handle exposes the bound value of one field and its event callbacks.
type Handle struct {
	Name     string
	Value    any
	OnChange func(any)
	OnBlur   func()
	OnFocus  func()
}

// Change reports a new value to the controller.
func (h Handle) Change(value any) {
	if h.OnChange != nil {
		h.OnChange(value)
	}
}

// Blur reports that the field lost focus.
func (h Handle) Blur() {
	if h.OnBlur != nil {
		h.OnBlur()
	}
}

// Focus reports that the field gained focus.
func (h Handle) Focus() {
	if h.OnFocus != nil {
		h.OnFocus()
	}
}

// String returns the bound value as text, empty for nil or non-string values.
func (h Handle) String() string {
	if s, ok := h.Value.(string); ok {
		return s
	}
	return ""
}

// Bool returns the bound value as a boolean.
func (h Handle) Bool() bool {
	b, _ := h.Value.(bool)
	return b
}

// Mode distinguishes who owns a value.
type Mode int

const (
	// Uncontrolled values live inside the widget; the caller only observes.
	Uncontrolled Mode = iota
	// Controlled values live with the caller; the widget only proposes.
	Controlled
)

// Value is a typed value source with one owner.
type Value[T any] struct {
	mode Mode

	mu       sync.RWMutex
	local    T
	get      func() T
	set      func(T)
	onChange func(T)
}

// NewControlled reads through get and writes through set. The widget never
// caches the value.
func NewControlled[T any](get func() T, set func(T)) *Value[T] {
	return &Value[T]{mode: Controlled, get: get, set: set}
}

// NewUncontrolled keeps the value locally, seeded with initial. onChange is
// optional and observes every accepted write.
func NewUncontrolled[T any](initial T, onChange func(T)) *Value[T] {
	return &Value[T]{mode: Uncontrolled, local: initial, onChange: onChange}
}

// Mode reports who owns the value.
func (v *Value[T]) Mode() Mode {
	return v.mode
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	if v.mode == Controlled {
		var zero T
		if v.get == nil {
			return zero
		}
		return v.get()
	}
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.local
}

// Set proposes a new value.
func (v *Value[T]) Set(next T) {
	if v.mode == Controlled {
		if v.set != nil {
			v.set(next)
		}
		return
	}
	v.mu.Lock()
	v.local = next
	v.mu.Unlock()
	if v.onChange != nil {
		v.onChange(next)
	}
}

// FromHandle builds a controlled value over a handle. Reads return the
// handle value as T; writes go through Handle.Change and update the view so
// the next read observes them.
func FromHandle[T any](h *Handle) *Value[T] {
	return NewControlled(
		func() T {
			typed, _ := h.Value.(T)
			return typed
		},
		func(next T) {
			h.Value = next
			h.Change(next)
		},
	)
}
