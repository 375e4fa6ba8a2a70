package tui

import (
	"io/fs"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

// OutputFormat controls how collected values are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme holds the styles used for messages and the month grid.
type Theme struct {
	Title    lipgloss.Style
	Info     lipgloss.Style
	Error    lipgloss.Style
	Header   lipgloss.Style
	Day      lipgloss.Style
	Today    lipgloss.Style
	Selected lipgloss.Style
	Disabled lipgloss.Style
	Weekend  lipgloss.Style
	Label    lipgloss.Style
}

// DefaultTheme returns the built-in styles.
func DefaultTheme() Theme {
	return Theme{
		Title:    lipgloss.NewStyle().Bold(true),
		Info:     lipgloss.NewStyle().Foreground(lipgloss.Color("#64748b")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626")),
		Header:   lipgloss.NewStyle().Faint(true),
		Day:      lipgloss.NewStyle(),
		Today:    lipgloss.NewStyle().Underline(true),
		Selected: lipgloss.NewStyle().Reverse(true),
		Disabled: lipgloss.NewStyle().Faint(true).Strikethrough(true),
		Weekend:  lipgloss.NewStyle().Foreground(lipgloss.Color("#2563eb")),
		Label:    lipgloss.NewStyle().Bold(true),
	}
}

// SubmitTransformer mutates collected values before serialization.
type SubmitTransformer func(map[string]any) (map[string]any, error)

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithSubmitTransformer allows callers to mutate collected values prior to
// serialization.
func WithSubmitTransformer(fn SubmitTransformer) Option {
	return func(r *Renderer) {
		r.submitTransformer = fn
	}
}

// WithTheme replaces the default styles.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// WithClock fixes "today" for the date prompt.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		if now != nil {
			r.now = now
		}
	}
}

// WithFS resolves file paths against files instead of the working
// directory.
func WithFS(files fs.FS) Option {
	return func(r *Renderer) {
		r.files = files
	}
}

// WithMaxAttempts bounds how often an invalid answer is asked again. Zero
// keeps asking.
func WithMaxAttempts(n int) Option {
	return func(r *Renderer) {
		if n >= 0 {
			r.maxAttempts = n
		}
	}
}

// WithLogger records prompt failures.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Renderer) {
		r.log = logger
	}
}
