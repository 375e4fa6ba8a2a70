package form

import (
	"maps"
	"sync"

	"github.com/goliatone/go-formkit/pkg/binding"
)

// Control is the caller-owned form state the nodes read from and report to.
type Control interface {
	Value(name string) any
	SetValue(name string, value any)
	Touch(name string)
}

// Handle binds one field of control.
func Handle(control Control, name string) *binding.Handle {
	if control == nil {
		return &binding.Handle{Name: name}
	}
	return &binding.Handle{
		Name:     name,
		Value:    control.Value(name),
		OnChange: func(value any) { control.SetValue(name, value) },
		OnBlur:   func() { control.Touch(name) },
	}
}

// ControlOption configures a MemoryControl.
type ControlOption func(*MemoryControl)

// WithChangeObserver is told about every committed value.
func WithChangeObserver(fn func(name string, value any)) ControlOption {
	return func(c *MemoryControl) { c.observer = fn }
}

// MemoryControl keeps form values in memory. It is safe for concurrent use.
type MemoryControl struct {
	mu       sync.RWMutex
	values   map[string]any
	touched  map[string]bool
	observer func(name string, value any)
}

var _ Control = (*MemoryControl)(nil)

// NewMemoryControl seeds a control with initial values.
func NewMemoryControl(initial map[string]any, opts ...ControlOption) *MemoryControl {
	c := &MemoryControl{
		values:  make(map[string]any, len(initial)),
		touched: make(map[string]bool),
	}
	maps.Copy(c.values, initial)
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Value returns the value of name, nil when unset.
func (c *MemoryControl) Value(name string) any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.values[name]
}

// SetValue commits value under name.
func (c *MemoryControl) SetValue(name string, value any) {
	c.mu.Lock()
	c.values[name] = value
	observer := c.observer
	c.mu.Unlock()

	if observer != nil {
		observer(name, value)
	}
}

// Touch marks name as visited.
func (c *MemoryControl) Touch(name string) {
	c.mu.Lock()
	c.touched[name] = true
	c.mu.Unlock()
}

// Touched reports whether name lost focus at least once.
func (c *MemoryControl) Touched(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.touched[name]
}

// Values returns a copy of every value.
func (c *MemoryControl) Values() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return maps.Clone(c.values)
}

// Merge commits every entry of values.
func (c *MemoryControl) Merge(values map[string]any) {
	for name, value := range values {
		c.SetValue(name, value)
	}
}
