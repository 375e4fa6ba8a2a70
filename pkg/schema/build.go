package schema

import (
	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/render"
)

// BuildOptions carries the per-request parts of a form built from a
// document.
type BuildOptions struct {
	Renderer *render.Renderer
	Control  form.Control
	Errors   form.ErrorMapping
	Hidden   []form.HiddenField
	// States supplies interactive widget state per field name.
	States func(name string) []render.State
}

// Build turns the document into a renderable form tree.
func (d *Document) Build(opts BuildOptions) form.Form {
	f := form.Form{
		Renderer: opts.Renderer,
		Control:  opts.Control,
		Errors:   opts.Errors,
		ID:       d.Name,
		Action:   d.Action,
		Method:   d.Method,
		Hidden:   opts.Hidden,
		Layout: form.Layout{
			ClassName:     d.Layout.ClassName,
			FormClassName: d.Layout.FormClassName,
			RemoveBorder:  d.Layout.RemoveBorder,
			NoPadding:     d.Layout.NoPadding,
			Gap:           d.Layout.Gap,
			Columns:       d.Layout.Columns,
		},
	}
	if d.Title != "" || d.Description != "" {
		f.Children = append(f.Children, form.Section{
			Title:     d.Title,
			Subtitle:  d.Description,
			ClassName: "col-span-full",
		})
	}

	for _, section := range d.Sections {
		nodes := make([]form.Node, 0, len(section.Fields))
		for _, field := range section.Fields {
			input := form.Input{Field: field.Model()}
			if opts.States != nil {
				input.States = opts.States(field.Name)
			}
			nodes = append(nodes, input)
		}
		f.Children = append(f.Children, form.Section{
			Title:     section.Title,
			Subtitle:  section.Subtitle,
			Separator: section.Separator,
			Cols:      section.Cols,
			ClassName: section.ClassName,
			Children:  nodes,
		})
	}

	buttons := form.Buttons{}
	if b := d.Buttons; b != nil {
		buttons = form.Buttons{
			SubmitText: b.SubmitText,
			CancelText: b.CancelText,
			ShowCancel: b.Cancel,
			Layout:     b.Layout,
			ClassName:  b.ClassName,
		}
	}
	f.Children = append(f.Children, buttons)
	return f
}
