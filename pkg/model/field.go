package model

import (
	"github.com/goliatone/go-formkit/pkg/style"
)

// Option is a dropdown entry. Key is the committed value, Value the display
// text.
type Option struct {
	Key   string `json:"key" yaml:"key" validate:"required"`
	Value string `json:"value" yaml:"value"`
}

// LookupOption returns the first option whose key matches. Duplicate keys
// resolve to the earliest entry.
func LookupOption(options []Option, key string) (Option, bool) {
	for _, option := range options {
		if option.Key == key {
			return option, true
		}
	}
	return Option{}, false
}

// DuplicateKeys returns the keys that appear more than once, in first-seen
// order.
func DuplicateKeys(options []Option) []string {
	seen := make(map[string]int, len(options))
	var dups []string
	for _, option := range options {
		seen[option.Key]++
		if seen[option.Key] == 2 {
			dups = append(dups, option.Key)
		}
	}
	return dups
}

// Label configures the field label and helper line.
type Label struct {
	Text         string `json:"text,omitempty" yaml:"text,omitempty"`
	Show         *bool  `json:"show,omitempty" yaml:"show,omitempty"`
	Required     *bool  `json:"required,omitempty" yaml:"required,omitempty"`
	RequiredText string `json:"requiredText,omitempty" yaml:"requiredText,omitempty"`
	ClassName    string `json:"className,omitempty" yaml:"className,omitempty"`
}

// Validation is the display-side validation state of a field.
type Validation struct {
	Error          string `json:"error,omitempty" yaml:"error,omitempty"`
	SuccessMessage string `json:"successMessage,omitempty" yaml:"successMessage,omitempty"`
	ShowError      *bool  `json:"showError,omitempty" yaml:"showError,omitempty"`
	ShowSuccess    *bool  `json:"showSuccess,omitempty" yaml:"showSuccess,omitempty"`
}

// Status derives the display status: error wins over success.
func (v Validation) Status() style.Status {
	switch {
	case v.Error != "":
		return style.StatusError
	case v.SuccessMessage != "":
		return style.StatusSuccess
	default:
		return style.StatusDefault
	}
}

// ErrorVisible reports whether the error line renders. def applies when the
// field does not say.
func (v Validation) ErrorVisible(def bool) bool {
	show := def
	if v.ShowError != nil {
		show = *v.ShowError
	}
	return show && v.Error != ""
}

// SuccessVisible reports whether the success line renders.
func (v Validation) SuccessVisible(def bool) bool {
	show := def
	if v.ShowSuccess != nil {
		show = *v.ShowSuccess
	}
	return show && v.SuccessMessage != ""
}

// Layout places a field inside the form grid.
type Layout struct {
	ColSpan          int    `json:"colSpan,omitempty" yaml:"colSpan,omitempty" validate:"gte=0,lte=12"`
	FullWidth        *bool  `json:"fullWidth,omitempty" yaml:"fullWidth,omitempty"`
	ClassName        string `json:"className,omitempty" yaml:"className,omitempty"`
	WrapperClassName string `json:"wrapperClassName,omitempty" yaml:"wrapperClassName,omitempty"`
}

// Field is one bound input: its descriptor plus the shared configuration.
type Field struct {
	Name       string      `json:"name" yaml:"name" validate:"required"`
	Input      Input       `json:"-" yaml:"-"`
	Style      style.Style `json:"style,omitempty" yaml:"style,omitempty"`
	Label      Label       `json:"label,omitempty" yaml:"label,omitempty"`
	Validation Validation  `json:"validation,omitempty" yaml:"validation,omitempty"`
	Layout     Layout      `json:"layout,omitempty" yaml:"layout,omitempty"`

	// Format rewrites raw text before it is committed.
	Format   func(string) string `json:"-" yaml:"-"`
	OnChange func(any)           `json:"-" yaml:"-"`
	OnBlur   func()              `json:"-" yaml:"-"`
	OnFocus  func()              `json:"-" yaml:"-"`
}

// Kind returns the tag of the field descriptor.
func (f Field) Kind() Kind {
	return KindOf(f.Input)
}

// File is the metadata of a candidate upload.
type File struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}
