package schema

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/style"
)

// Document is a declarative form: layout, sections of fields and the
// action buttons.
type Document struct {
	Name        string `json:"name" yaml:"name" validate:"required"`
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	TitleKey    string `json:"titleKey,omitempty" yaml:"titleKey,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Action      string `json:"action,omitempty" yaml:"action,omitempty"`
	Method      string `json:"method,omitempty" yaml:"method,omitempty" validate:"omitempty,oneof=get post GET POST"`

	Layout   Layout    `json:"layout,omitempty" yaml:"layout,omitempty"`
	Sections []Section `json:"sections" yaml:"sections" validate:"required,min=1,dive"`
	Buttons  *Buttons  `json:"buttons,omitempty" yaml:"buttons,omitempty"`

	// Warnings lists recoverable problems found while loading, such as
	// unknown input types or duplicate option keys.
	Warnings []string `json:"-" yaml:"-"`

	source Source
}

// Layout mirrors form.Layout for documents.
type Layout struct {
	ClassName     string                   `json:"className,omitempty" yaml:"className,omitempty"`
	FormClassName string                   `json:"formClassName,omitempty" yaml:"formClassName,omitempty"`
	RemoveBorder  *bool                    `json:"removeBorder,omitempty" yaml:"removeBorder,omitempty"`
	NoPadding     *bool                    `json:"noPadding,omitempty" yaml:"noPadding,omitempty"`
	Gap           style.Responsive[string] `json:"gap,omitempty" yaml:"gap,omitempty"`
	Columns       style.Responsive[int]    `json:"columns,omitempty" yaml:"columns,omitempty" validate:"omitempty,columns"`
}

// Section groups fields.
type Section struct {
	ID          string  `json:"id,omitempty" yaml:"id,omitempty"`
	Title       string  `json:"title,omitempty" yaml:"title,omitempty"`
	TitleKey    string  `json:"titleKey,omitempty" yaml:"titleKey,omitempty"`
	Subtitle    string  `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	SubtitleKey string  `json:"subtitleKey,omitempty" yaml:"subtitleKey,omitempty"`
	Separator   bool    `json:"separator,omitempty" yaml:"separator,omitempty"`
	Cols        int     `json:"cols,omitempty" yaml:"cols,omitempty" validate:"gte=0,lte=6"`
	ClassName   string  `json:"className,omitempty" yaml:"className,omitempty"`
	Fields      []Field `json:"fields" yaml:"fields" validate:"dive"`
}

// Field is a document field: the shared field configuration plus a tagged
// input descriptor.
type Field struct {
	Name       string           `json:"name" yaml:"name" validate:"required"`
	Input      model.Descriptor `json:"input,omitempty" yaml:"input,omitempty"`
	Style      style.Style      `json:"style,omitempty" yaml:"style,omitempty"`
	Label      model.Label      `json:"label,omitempty" yaml:"label,omitempty"`
	Validation model.Validation `json:"validation,omitempty" yaml:"validation,omitempty"`
	Layout     model.Layout     `json:"layout,omitempty" yaml:"layout,omitempty"`
	Tags       []string         `json:"tags,omitempty" yaml:"tags,omitempty"`

	LabelKey        string `json:"labelKey,omitempty" yaml:"labelKey,omitempty"`
	PlaceholderKey  string `json:"placeholderKey,omitempty" yaml:"placeholderKey,omitempty"`
	RequiredTextKey string `json:"requiredTextKey,omitempty" yaml:"requiredTextKey,omitempty"`
}

// Buttons configures the action row.
type Buttons struct {
	SubmitText    string             `json:"submitText,omitempty" yaml:"submitText,omitempty"`
	SubmitTextKey string             `json:"submitTextKey,omitempty" yaml:"submitTextKey,omitempty"`
	CancelText    string             `json:"cancelText,omitempty" yaml:"cancelText,omitempty"`
	CancelTextKey string             `json:"cancelTextKey,omitempty" yaml:"cancelTextKey,omitempty"`
	Cancel        bool               `json:"cancel,omitempty" yaml:"cancel,omitempty"`
	Layout        form.ButtonsLayout `json:"layout,omitempty" yaml:"layout,omitempty" validate:"omitempty,oneof=horizontal vertical space-between"`
	ClassName     string             `json:"className,omitempty" yaml:"className,omitempty"`
}

// Source reports where the document was loaded from, nil for documents
// built in code.
func (d *Document) Source() Source {
	return d.source
}

// Location returns the origin of the document, or "" when unknown.
func (d *Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Model converts the document field into the renderer's field type. A
// missing label text is derived from the name.
func (f Field) Model() model.Field {
	label := f.Label
	if strings.TrimSpace(label.Text) == "" {
		label.Text = DefaultLabeler(f.Name)
	}
	return model.Field{
		Name:       f.Name,
		Input:      f.Input.Input,
		Style:      f.Style,
		Label:      label,
		Validation: f.Validation,
		Layout:     f.Layout,
	}
}

// Fields returns every field in section order.
func (d *Document) Fields() []model.Field {
	var out []model.Field
	for _, section := range d.Sections {
		for _, field := range section.Fields {
			out = append(out, field.Model())
		}
	}
	return out
}

// Field looks a field up by name.
func (d *Document) Field(name string) (model.Field, bool) {
	for _, section := range d.Sections {
		for _, field := range section.Fields {
			if field.Name == name {
				return field.Model(), true
			}
		}
	}
	return model.Field{}, false
}

// inspect collects the recoverable problems of a decoded document.
func (d *Document) inspect() []string {
	var warnings []string
	seen := make(map[string]bool)
	for _, section := range d.Sections {
		for _, field := range section.Fields {
			if seen[field.Name] {
				warnings = append(warnings, fmt.Sprintf("field %q is declared more than once", field.Name))
			}
			seen[field.Name] = true

			if field.Input.Unknown != "" {
				warnings = append(warnings, fmt.Sprintf("field %q: unknown input type %q, rendering as text", field.Name, field.Input.Unknown))
			}
			if dropdown, ok := field.Input.Input.(*model.DropdownInput); ok {
				for _, key := range model.DuplicateKeys(dropdown.Options) {
					warnings = append(warnings, fmt.Sprintf("field %q: option key %q is duplicated, the first entry wins", field.Name, key))
				}
			}
		}
	}
	return warnings
}
