package render

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/render/template"
)

const templatePrefix = "templates/"

// ComponentFunc writes the control markup of one field into buf.
type ComponentFunc func(buf *bytes.Buffer, control ControlView, data ComponentData) error

// ComponentData carries the helpers a component renderer may use.
type ComponentData struct {
	Template      template.TemplateRenderer
	ThemePartials map[string]string
}

// Component renders one input kind. Components without a Render function
// execute Template, or the theme partial registered under Partial.
type Component struct {
	Name     string
	Partial  string
	Template string
	Render   ComponentFunc
}

// Components maps input kinds to components. Callers can override single
// kinds; the latest registration wins.
type Components struct {
	mu         sync.RWMutex
	components map[model.Kind]Component
}

// NewComponents creates an empty registry.
func NewComponents() *Components {
	return &Components{components: make(map[model.Kind]Component)}
}

// NewDefaultComponents creates a registry with the built-in component of
// every kind.
func NewDefaultComponents() *Components {
	registry := NewComponents()
	input := Component{Partial: "forms.input", Template: templatePrefix + "input.tmpl"}
	for _, kind := range []model.Kind{
		model.KindText, model.KindEmail, model.KindPassword, model.KindNumber,
		model.KindURL, model.KindTel,
	} {
		registry.MustRegister(kind, input)
	}
	registry.MustRegister(model.KindSearch, Component{Partial: "forms.search", Template: templatePrefix + "search.tmpl"})
	registry.MustRegister(model.KindTextarea, Component{Partial: "forms.textarea", Template: templatePrefix + "textarea.tmpl"})
	registry.MustRegister(model.KindDropdown, Component{Partial: "forms.dropdown", Template: templatePrefix + "dropdown.tmpl"})
	registry.MustRegister(model.KindCheckbox, Component{Partial: "forms.checkbox", Template: templatePrefix + "checkbox.tmpl"})
	registry.MustRegister(model.KindOTP, Component{Partial: "forms.otp", Template: templatePrefix + "otp.tmpl"})
	registry.MustRegister(model.KindPhone, Component{Partial: "forms.phone", Template: templatePrefix + "phone.tmpl"})
	registry.MustRegister(model.KindDate, Component{Partial: "forms.date", Template: templatePrefix + "date.tmpl"})
	registry.MustRegister(model.KindFile, Component{Partial: "forms.file", Template: templatePrefix + "file.tmpl"})
	return registry
}

// Register associates a component with kind.
func (c *Components) Register(kind model.Kind, component Component) error {
	parsed, ok := model.ParseKind(string(kind))
	if !ok {
		return fmt.Errorf("render: unknown input kind %q", kind)
	}
	if component.Render == nil && strings.TrimSpace(component.Template) == "" {
		return fmt.Errorf("render: component for %q needs a renderer or template", parsed)
	}
	if component.Name == "" {
		component.Name = string(parsed)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.components[parsed] = component
	return nil
}

// MustRegister mirrors Register but panics on error.
func (c *Components) MustRegister(kind model.Kind, component Component) {
	if err := c.Register(kind, component); err != nil {
		panic(err)
	}
}

// Lookup returns the component of kind.
func (c *Components) Lookup(kind model.Kind) (Component, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	component, ok := c.components[kind]
	return component, ok
}

// Kinds returns the registered kinds, sorted.
func (c *Components) Kinds() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	kinds := make([]string, 0, len(c.components))
	for kind := range c.components {
		kinds = append(kinds, string(kind))
	}
	slices.Sort(kinds)
	return kinds
}

// Clone returns an independent copy.
func (c *Components) Clone() *Components {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cloned := NewComponents()
	for kind, component := range c.components {
		cloned.components[kind] = component
	}
	return cloned
}

func (component Component) render(buf *bytes.Buffer, control ControlView, data ComponentData) error {
	if component.Render != nil {
		return component.Render(buf, control, data)
	}
	if data.Template == nil {
		return fmt.Errorf("render: template renderer not configured for %q", component.Template)
	}
	name := component.Template
	if candidate := strings.TrimSpace(data.ThemePartials[component.Partial]); candidate != "" {
		name = candidate
	}
	out, err := data.Template.RenderTemplate(name, map[string]any{"control": control})
	if err != nil {
		return fmt.Errorf("render: component %q: %w", component.Name, err)
	}
	buf.WriteString(out)
	return nil
}
