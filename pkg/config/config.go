// Package config holds the process-scoped form settings: style defaults,
// button look, label and validation display, layout and class overrides.
// Settings live in an explicitly created Store that callers inject into the
// renderer; nothing resets it implicitly.
package config

import (
	"github.com/goliatone/go-formkit/pkg/style"
)

// Settings groups the configurable sections. Nil sections are unset.
type Settings struct {
	Defaults   *Defaults   `json:"defaults,omitempty" yaml:"defaults,omitempty"`
	Button     *Button     `json:"button,omitempty" yaml:"button,omitempty"`
	Label      *Label      `json:"label,omitempty" yaml:"label,omitempty"`
	Validation *Validation `json:"validation,omitempty" yaml:"validation,omitempty"`
	Layout     *Layout     `json:"layout,omitempty" yaml:"layout,omitempty"`
	ClassNames *ClassNames `json:"classNames,omitempty" yaml:"classNames,omitempty"`
}

// Defaults are the global input style defaults.
type Defaults struct {
	Variant   style.Variant                `json:"variant,omitempty" yaml:"variant,omitempty" validate:"omitempty,oneof=default filled outlined ghost soft"`
	Size      style.Responsive[style.Size] `json:"size,omitempty" yaml:"size,omitempty" validate:"omitempty,sizes"`
	Radius    style.Radius                 `json:"radius,omitempty" yaml:"radius,omitempty" validate:"omitempty,oneof=none sm md lg xl 2xl full"`
	FullWidth *bool                        `json:"fullWidth,omitempty" yaml:"fullWidth,omitempty"`
}

// Button configures form buttons.
type Button struct {
	Variant style.ButtonVariant          `json:"variant,omitempty" yaml:"variant,omitempty" validate:"omitempty,oneof=primary secondary outline ghost danger"`
	Size    style.Responsive[style.Size] `json:"size,omitempty" yaml:"size,omitempty" validate:"omitempty,sizes"`
	Radius  style.Radius                 `json:"radius,omitempty" yaml:"radius,omitempty" validate:"omitempty,oneof=none sm md lg xl full"`
}

// Label configures field labels.
type Label struct {
	Show      *bool  `json:"show,omitempty" yaml:"show,omitempty"`
	Required  *bool  `json:"required,omitempty" yaml:"required,omitempty"`
	ClassName string `json:"className,omitempty" yaml:"className,omitempty"`
}

// Validation configures how validation messages are displayed.
type Validation struct {
	ShowError   *bool `json:"showError,omitempty" yaml:"showError,omitempty"`
	ShowSuccess *bool `json:"showSuccess,omitempty" yaml:"showSuccess,omitempty"`
}

// Layout configures the form grid.
type Layout struct {
	Gap          style.Responsive[string] `json:"gap,omitempty" yaml:"gap,omitempty"`
	Columns      style.Responsive[int]    `json:"columns,omitempty" yaml:"columns,omitempty" validate:"omitempty,columns"`
	RemoveBorder bool                     `json:"removeBorder,omitempty" yaml:"removeBorder,omitempty"`
	NoPadding    bool                     `json:"noPadding,omitempty" yaml:"noPadding,omitempty"`
}

// ClassNames are appended to the computed classes of every matching element.
type ClassNames struct {
	Input   string `json:"input,omitempty" yaml:"input,omitempty"`
	Label   string `json:"label,omitempty" yaml:"label,omitempty"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
	Success string `json:"success,omitempty" yaml:"success,omitempty"`
	Helper  string `json:"helper,omitempty" yaml:"helper,omitempty"`
	Wrapper string `json:"wrapper,omitempty" yaml:"wrapper,omitempty"`
	Form    string `json:"form,omitempty" yaml:"form,omitempty"`
	Button  string `json:"button,omitempty" yaml:"button,omitempty"`
}

// StyleDefaults converts the defaults section into the style resolver's
// global level. It returns nil when the section is unset.
func (s Settings) StyleDefaults() *style.Defaults {
	if s.Defaults == nil {
		return nil
	}
	return &style.Defaults{
		Variant:   s.Defaults.Variant,
		Size:      s.Defaults.Size.Resolve(""),
		Radius:    s.Defaults.Radius,
		FullWidth: s.Defaults.FullWidth,
	}
}

// ButtonStyle resolves a button style for the given variant, falling back to
// the configured button variant and then to primary.
func (s Settings) ButtonStyle(variant style.ButtonVariant, fullWidth bool) style.ButtonStyle {
	out := style.ButtonStyle{
		Variant:   variant,
		Size:      style.SizeMD,
		Radius:    style.RadiusMD,
		FullWidth: fullWidth,
	}
	if s.Button != nil {
		if out.Variant == "" {
			out.Variant = s.Button.Variant
		}
		out.Size = s.Button.Size.Resolve(style.SizeMD)
		if s.Button.Radius != "" {
			out.Radius = s.Button.Radius
		}
	}
	if out.Variant == "" {
		out.Variant = style.ButtonPrimary
	}
	return out
}

// ShowLabel reports whether labels render when a field does not say.
func (s Settings) ShowLabel() bool {
	if s.Label != nil && s.Label.Show != nil {
		return *s.Label.Show
	}
	return true
}

// LabelRequired reports the default required marker.
func (s Settings) LabelRequired() bool {
	return s.Label != nil && s.Label.Required != nil && *s.Label.Required
}

// ShowError reports whether error lines render by default.
func (s Settings) ShowError() bool {
	if s.Validation != nil && s.Validation.ShowError != nil {
		return *s.Validation.ShowError
	}
	return true
}

// ShowSuccess reports whether success lines render by default.
func (s Settings) ShowSuccess() bool {
	return s.Validation != nil && s.Validation.ShowSuccess != nil && *s.Validation.ShowSuccess
}

// Classes returns the class overrides, never nil.
func (s Settings) Classes() ClassNames {
	if s.ClassNames == nil {
		return ClassNames{}
	}
	return *s.ClassNames
}

// LayoutOrZero returns the layout section, never nil.
func (s Settings) LayoutOrZero() Layout {
	if s.Layout == nil {
		return Layout{}
	}
	return *s.Layout
}
