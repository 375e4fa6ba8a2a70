package form

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/style"
)

const (
	formTemplate    = "templates/form.tmpl"
	sectionTemplate = "templates/section.tmpl"
	buttonsTemplate = "templates/buttons.tmpl"
)

// Node is anything a form can hold.
type Node interface {
	Render(ctx context.Context) (string, error)
}

// NodeFunc adapts a function to Node.
type NodeFunc func(ctx context.Context) (string, error)

// Render implements Node.
func (fn NodeFunc) Render(ctx context.Context) (string, error) { return fn(ctx) }

// HTML is trusted markup rendered as is.
type HTML string

// Render implements Node.
func (h HTML) Render(context.Context) (string, error) { return string(h), nil }

func renderNodes(ctx context.Context, nodes []Node) (string, error) {
	var b strings.Builder
	for _, node := range nodes {
		if node == nil {
			continue
		}
		out, err := node.Render(ctx)
		if err != nil {
			return "", err
		}
		b.WriteString(out)
	}
	return b.String(), nil
}

// Layout overrides the settings layout for one form. Nil switches inherit
// the settings value.
type Layout struct {
	ClassName     string
	FormClassName string
	RemoveBorder  *bool
	NoPadding     *bool
	Gap           style.Responsive[string]
	Columns       style.Responsive[int]
}

// Form is the composition root: a wrapper, the <form> element, hidden
// fields, form-level errors and the child nodes.
type Form struct {
	Renderer *render.Renderer
	Control  Control
	Errors   ErrorMapping
	Logger   zerolog.Logger

	ID      string
	Action  string
	Method  string
	EncType string
	Layout  Layout
	Hidden  []HiddenField

	Children []Node
}

type formView struct {
	WrapperClass string        `json:"wrapperClass"`
	ClassName    string        `json:"className"`
	ID           string        `json:"id,omitempty"`
	Action       string        `json:"action,omitempty"`
	Method       string        `json:"method"`
	EncType      string        `json:"enctype,omitempty"`
	Hidden       []HiddenField `json:"hidden,omitempty"`
	Errors       []string      `json:"errors,omitempty"`
	Body         string        `json:"body"`
}

// Render installs the form context and renders the children inside the
// form chrome.
func (f Form) Render(ctx context.Context) (string, error) {
	if f.Renderer == nil {
		return "", errors.New("form: renderer is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	settings := f.Renderer.Settings()
	fc := &Context{
		Control:  f.Control,
		Errors:   f.Errors,
		Renderer: f.Renderer,
		Settings: settings,
		Logger:   f.Logger,
	}
	ctx = WithContext(ctx, fc)

	body, err := renderNodes(ctx, f.Children)
	if err != nil {
		return "", err
	}

	global := settings.LayoutOrZero()
	removeBorder := global.RemoveBorder
	if f.Layout.RemoveBorder != nil {
		removeBorder = *f.Layout.RemoveBorder
	}
	noPadding := global.NoPadding
	if f.Layout.NoPadding != nil {
		noPadding = *f.Layout.NoPadding
	}
	columns := f.Layout.Columns
	if columns.IsZero() {
		columns = global.Columns
	}
	gap := f.Layout.Gap
	if gap.IsZero() {
		gap = global.Gap
	}

	border := ""
	if !removeBorder {
		border = "border border-gray-200 dark:border-gray-700 rounded-lg"
	}
	padding := ""
	if !noPadding {
		padding = "p-6"
	}
	classes := settings.Classes()

	method := strings.ToLower(strings.TrimSpace(f.Method))
	if method == "" {
		method = "post"
	}
	enctype := f.EncType
	if enctype == "" && hasFileInput(f.Children) {
		enctype = "multipart/form-data"
	}

	view := formView{
		WrapperClass: style.Join("w-full", f.Layout.ClassName, classes.Wrapper),
		ClassName: style.Join(
			"w-full grid",
			border,
			padding,
			style.GridClasses(columns),
			style.GapClasses(gap),
			f.Layout.FormClassName,
			classes.Form,
		),
		ID:      f.ID,
		Action:  f.Action,
		Method:  method,
		EncType: enctype,
		Hidden:  SortedHiddenFields(f.Hidden),
		Errors:  f.Errors.Form,
		Body:    body,
	}
	return f.Renderer.RenderPartial(render.PartialForm, formTemplate, view)
}

func hasFileInput(nodes []Node) bool {
	for _, node := range nodes {
		switch n := node.(type) {
		case Input:
			if n.Field.Kind() == model.KindFile {
				return true
			}
		case *Input:
			if n != nil && n.Field.Kind() == model.KindFile {
				return true
			}
		case Section:
			if hasFileInput(n.Children) {
				return true
			}
		case *Section:
			if n != nil && hasFileInput(n.Children) {
				return true
			}
		}
	}
	return false
}

// Section groups nodes under an optional title on a responsive grid.
type Section struct {
	Title     string
	Subtitle  string
	Separator bool
	// Cols is the large-screen column count, 1 to 6. Other values use 3.
	Cols int

	ClassName          string
	TitleClassName     string
	SubtitleClassName  string
	SeparatorClassName string
	GridClassName      string

	Children []Node
}

type sectionView struct {
	ClassName          string `json:"className"`
	Title              string `json:"title,omitempty"`
	Subtitle           string `json:"subtitle,omitempty"`
	TitleClassName     string `json:"titleClassName"`
	SubtitleClassName  string `json:"subtitleClassName"`
	Separator          bool   `json:"separator"`
	SeparatorClassName string `json:"separatorClassName"`
	GridClassName      string `json:"gridClassName"`
	Body               string `json:"body"`
}

// GridColsClass returns the large-screen grid class for cols.
func GridColsClass(cols int) string {
	if cols < 1 || cols > 6 {
		cols = 3
	}
	return "lg:grid-cols-" + strconv.Itoa(cols)
}

// Render implements Node. It panics with ErrOutsideForm outside a Form.
func (s Section) Render(ctx context.Context) (string, error) {
	fc := MustFromContext(ctx)
	body, err := renderNodes(ctx, s.Children)
	if err != nil {
		return "", err
	}
	view := sectionView{
		ClassName:          style.Join("w-full", s.ClassName),
		Title:              s.Title,
		Subtitle:           s.Subtitle,
		TitleClassName:     style.Join("mb-6", s.TitleClassName),
		SubtitleClassName:  style.Join("mt-1 text-sm text-gray-600 dark:text-gray-400", s.SubtitleClassName),
		Separator:          s.Separator,
		SeparatorClassName: style.Join("separator", s.SeparatorClassName),
		GridClassName:      style.Join("grid md:grid-cols-2", GridColsClass(s.Cols), "gap-4 px-3", s.GridClassName),
		Body:               body,
	}
	return fc.Renderer.RenderPartial(render.PartialSection, sectionTemplate, view)
}

// Input renders one field bound to the form control. Its error message
// comes from the form error mapping, replacing any set on the field.
type Input struct {
	Field  model.Field
	States []render.State
}

// Render implements Node. It panics with ErrOutsideForm outside a Form.
func (in Input) Render(ctx context.Context) (string, error) {
	fc := MustFromContext(ctx)
	field := in.Field
	field.Validation.Error = fc.Errors.First(field.Name)

	out, err := fc.Renderer.RenderField(ctx, field, Handle(fc.Control, field.Name), in.States...)
	if err != nil {
		fc.Logger.Error().Err(err).Str("field", field.Name).Msg("render field failed")
		return "", fmt.Errorf("form: input %q: %w", field.Name, err)
	}
	return out, nil
}

// ButtonsLayout arranges the action buttons.
type ButtonsLayout string

const (
	ButtonsHorizontal   ButtonsLayout = "horizontal"
	ButtonsVertical     ButtonsLayout = "vertical"
	ButtonsSpaceBetween ButtonsLayout = "space-between"
)

// ButtonStyle overrides the settings look of one button.
type ButtonStyle struct {
	Variant   style.ButtonVariant
	Size      style.Responsive[style.Size]
	Radius    style.Radius
	FullWidth bool
	ClassName string
}

// Buttons renders the submit button and an optional cancel button.
type Buttons struct {
	SubmitText     string
	CancelText     string
	ShowCancel     bool
	SubmitDisabled bool
	CancelDisabled bool
	Loading        bool
	SubmitStyle    ButtonStyle
	CancelStyle    ButtonStyle
	Layout         ButtonsLayout
	ClassName      string
}

type buttonView struct {
	Type        string `json:"type"`
	Action      string `json:"action"`
	Label       string `json:"label"`
	ClassName   string `json:"className"`
	Disabled    bool   `json:"disabled"`
	Loading     bool   `json:"loading"`
	LoadingText string `json:"loadingText"`
}

type buttonsView struct {
	ClassName string       `json:"className"`
	Buttons   []buttonView `json:"buttons"`
}

// Render implements Node. It panics with ErrOutsideForm outside a Form.
func (b Buttons) Render(ctx context.Context) (string, error) {
	fc := MustFromContext(ctx)
	settings := fc.Settings

	layout := ""
	switch b.Layout {
	case ButtonsVertical:
		layout = "flex-col"
	case ButtonsSpaceBetween:
		layout = "justify-between"
	default:
		layout = "justify-end"
	}
	view := buttonsView{ClassName: style.Join("flex gap-3 mt-6", layout, b.ClassName)}

	if b.ShowCancel {
		cancelVariant := b.CancelStyle.Variant
		if cancelVariant == "" {
			cancelVariant = style.ButtonOutline
		}
		view.Buttons = append(view.Buttons, buttonView{
			Type:      "button",
			Action:    "cancel",
			Label:     firstText(b.CancelText, "Cancel"),
			ClassName: b.classes(settings.ButtonStyle(cancelVariant, b.CancelStyle.FullWidth), b.CancelStyle, settings.Classes().Button),
			Disabled:  b.CancelDisabled || b.Loading,
		})
	}
	view.Buttons = append(view.Buttons, buttonView{
		Type:        "submit",
		Action:      "submit",
		Label:       firstText(b.SubmitText, "Submit"),
		ClassName:   b.classes(settings.ButtonStyle(b.SubmitStyle.Variant, b.SubmitStyle.FullWidth), b.SubmitStyle, settings.Classes().Button),
		Disabled:    b.SubmitDisabled || b.Loading,
		Loading:     b.Loading,
		LoadingText: "Loading...",
	})
	return fc.Renderer.RenderPartial(render.PartialButtons, buttonsTemplate, view)
}

// classes layers explicit size and radius over the settings style and adds
// the breakpoint size tokens.
func (b Buttons) classes(resolved style.ButtonStyle, override ButtonStyle, global string) string {
	if !override.Size.IsZero() {
		resolved.Size = override.Size.Resolve(style.SizeMD)
	}
	if override.Radius != "" {
		resolved.Radius = override.Radius
	}
	return style.Join(style.ButtonClasses(resolved), override.Size.Classes(""), override.ClassName, global)
}

func firstText(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}
