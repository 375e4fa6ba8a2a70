// Package render turns bound fields into HTML. Dispatch runs a visitor over
// the input descriptor; each kind resolves to a component whose template
// renders the control, and the wrapper chrome (label, error, success and
// helper lines) is rendered around it.
package render

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	gotemplatepkg "github.com/goliatone/go-template"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formkit/pkg/config"
	"github.com/goliatone/go-formkit/pkg/render/template"
	"github.com/goliatone/go-formkit/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formkit/pkg/style"
)

// Partial keys a theme manifest can override.
const (
	PartialWrapper  = "forms.wrapper"
	PartialCompact  = "forms.compact"
	PartialForm     = "forms.form"
	PartialSection  = "forms.section"
	PartialButtons  = "forms.buttons"
	PartialCalendar = "forms.calendar"
)

// ContentType is the media type of rendered output.
const ContentType = "text/html; charset=utf-8"

// Option configures a Renderer.
type Option func(*options)

type options struct {
	templates    template.TemplateRenderer
	templateFS   []fs.FS
	components   *Components
	settings     *config.Store
	selector     theme.ThemeSelector
	themeName    string
	themeVariant string
	ids          func() string
	logger       zerolog.Logger
	postHooks    []gotemplatepkg.PostHook
}

// WithTemplateRenderer injects a template engine, replacing the embedded
// pongo2 bundle.
func WithTemplateRenderer(renderer template.TemplateRenderer) Option {
	return func(o *options) {
		if renderer != nil {
			o.templates = renderer
		}
	}
}

// WithTemplatesFS layers an override bundle above the embedded templates.
// It is ignored when a template renderer is injected.
func WithTemplatesFS(files fs.FS) Option {
	return func(o *options) {
		if files != nil {
			o.templateFS = append(o.templateFS, files)
		}
	}
}

// WithPostRenderHooks rewrites the output of every partial rendered by the
// embedded engine. It is ignored when a template renderer is injected.
func WithPostRenderHooks(hooks ...gotemplatepkg.PostHook) Option {
	return func(o *options) {
		o.postHooks = append(o.postHooks, hooks...)
	}
}

// WithComponents replaces the component registry.
func WithComponents(components *Components) Option {
	return func(o *options) {
		if components != nil {
			o.components = components
		}
	}
}

// WithSettings wires the settings store consulted on every render.
func WithSettings(store *config.Store) Option {
	return func(o *options) {
		o.settings = store
	}
}

// WithTheme selects a go-theme manifest whose tokens act as the preset level
// of style resolution and whose templates override component partials.
func WithTheme(selector theme.ThemeSelector, name, variant string) Option {
	return func(o *options) {
		o.selector = selector
		o.themeName = strings.TrimSpace(name)
		o.themeVariant = strings.TrimSpace(variant)
	}
}

// WithIDGenerator overrides how widget instance ids are minted.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) {
		if fn != nil {
			o.ids = fn
		}
	}
}

// WithLogger sets the renderer logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Renderer renders fields and form chrome. It is safe for concurrent use
// once constructed; widget state is supplied per render.
type Renderer struct {
	templates  template.TemplateRenderer
	components *Components
	settings   *config.Store
	theme      *style.Theme
	preset     *style.Preset
	ids        func() string
	log        zerolog.Logger
}

// New constructs a renderer.
func New(opts ...Option) (*Renderer, error) {
	o := options{
		ids:    func() string { return uuid.NewString() },
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	templates := o.templates
	if templates == nil {
		engineOpts := make([]gotemplate.Option, 0, len(o.templateFS)+3)
		for _, files := range o.templateFS {
			engineOpts = append(engineOpts, gotemplate.WithFS(files))
		}
		engineOpts = append(engineOpts,
			gotemplate.WithFS(TemplatesFS()),
			gotemplate.WithPreHooks(logTemplate(o.logger)),
			gotemplate.WithPostHooks(o.postHooks...),
		)
		engine, err := gotemplate.New(engineOpts...)
		if err != nil {
			return nil, fmt.Errorf("render: configure template renderer: %w", err)
		}
		templates = engine
	}

	components := o.components
	if components == nil {
		components = NewDefaultComponents()
	}

	r := &Renderer{
		templates:  templates,
		components: components,
		settings:   o.settings,
		ids:        o.ids,
		log:        o.logger,
	}

	if o.selector != nil {
		selection, err := o.selector.Select(o.themeName, o.themeVariant)
		if err != nil {
			return nil, fmt.Errorf("render: select theme %q: %w", o.themeName, err)
		}
		resolved, err := style.ThemeFromSelection(selection)
		if err != nil {
			return nil, fmt.Errorf("render: resolve theme: %w", err)
		}
		preset, err := resolved.Preset()
		if err != nil {
			return nil, fmt.Errorf("render: theme preset: %w", err)
		}
		r.theme = &resolved
		r.preset = preset
		r.log.Debug().Str("theme", resolved.Name).Str("variant", resolved.Variant).Msg("theme selected")
	}
	return r, nil
}

// Settings returns a snapshot of the current settings.
func (r *Renderer) Settings() config.Settings {
	if r == nil || r.settings == nil {
		return config.Settings{}
	}
	return r.settings.Get()
}

// Theme returns the selected theme, nil when none is configured.
func (r *Renderer) Theme() *style.Theme {
	return r.theme
}

// Components returns the component registry.
func (r *Renderer) Components() *Components {
	return r.components
}

// RenderPartial renders a named partial, honouring theme overrides for key.
func (r *Renderer) RenderPartial(key, name string, data any) (string, error) {
	if r == nil || r.templates == nil {
		return "", errors.New("render: template renderer is nil")
	}
	resolved := r.partial(key, name)
	out, err := r.templates.RenderTemplate(resolved, data)
	if err != nil {
		return "", fmt.Errorf("render: partial %q: %w", resolved, err)
	}
	return out, nil
}

func (r *Renderer) partial(key, fallback string) string {
	if r.theme != nil {
		if candidate := strings.TrimSpace(r.theme.Templates[key]); candidate != "" {
			return candidate
		}
	}
	return fallback
}

func (r *Renderer) themePartials() map[string]string {
	if r.theme == nil {
		return nil
	}
	return r.theme.Templates
}

func logTemplate(logger zerolog.Logger) gotemplatepkg.PreHook {
	return func(ctx *gotemplatepkg.HookContext) error {
		logger.Debug().Str("template", ctx.TemplateName).Msg("render partial")
		return nil
	}
}

// NewID mints a widget instance id.
func (r *Renderer) NewID() string {
	return r.ids()
}
