// Package tui asks for form fields in the terminal with survey prompts,
// one prompt style per input kind, and serializes the answers.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formkit/pkg/binding"
	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/widgets/calendar"
	"github.com/goliatone/go-formkit/pkg/widgets/dropdown"
	"github.com/goliatone/go-formkit/pkg/widgets/file"
	"github.com/goliatone/go-formkit/pkg/widgets/phone"
)

const noneOption = "(none)"

// Renderer asks for every field of a form in the terminal and serializes
// the answers. Answers are checked with the same rules as a form post.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
	now               func() time.Time
	files             fs.FS
	maxAttempts       int
	log               zerolog.Logger
}

// RenderOptions carries the per-session inputs.
type RenderOptions struct {
	Title  string
	Values map[string]any
	Errors form.ErrorMapping
}

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		driver:       NewSurveyDriver(nil, nil),
		outputFormat: OutputFormatJSON,
		theme:        DefaultTheme(),
		now:          time.Now,
		log:          zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render prompts for fields and returns the serialized answers.
func (r *Renderer) Render(ctx context.Context, fields []model.Field, opts RenderOptions) ([]byte, error) {
	values, err := r.Collect(ctx, fields, opts)
	if err != nil {
		return nil, err
	}
	if r.submitTransformer != nil {
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return r.serialize(fields, values)
}

// Collect prompts for fields in order and returns the typed answers, keyed
// by field name. Prefilled values become prompt defaults.
func (r *Renderer) Collect(ctx context.Context, fields []model.Field, opts RenderOptions) (map[string]any, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, ErrNoFields
	}

	if opts.Title != "" {
		if err := r.driver.Info(ctx, r.theme.Title.Render(opts.Title)); err != nil {
			return nil, err
		}
	}
	for _, message := range opts.Errors.Form {
		if err := r.driver.Info(ctx, r.theme.Error.Render(message)); err != nil {
			return nil, err
		}
	}

	state := NewState(opts.Values, opts.Errors)
	for _, field := range fields {
		if strings.TrimSpace(field.Name) == "" {
			continue
		}
		for _, message := range state.ErrorsFor(field.Name) {
			if err := r.driver.Info(ctx, r.theme.Error.Render(fmt.Sprintf("%s: %s", label(field), message))); err != nil {
				return nil, err
			}
		}
		p := &prompter{r: r, ctx: ctx, field: field, state: state}
		if err := model.Visit(field.Input, p); err != nil {
			r.log.Debug().Err(err).Str("field", field.Name).Msg("prompt failed")
			return nil, err
		}
	}
	return state.Values(), nil
}

// prompter asks for one field.
type prompter struct {
	r     *Renderer
	ctx   context.Context
	field model.Field
	state *State
}

// ask repeats read until its answer decodes cleanly, then stores the typed
// value. read returns the raw submission for the field.
func (p *prompter) ask(read func() (url.Values, error)) error {
	return p.askAs(p.field, read)
}

func (p *prompter) askAs(field model.Field, read func() (url.Values, error)) error {
	for attempt := 1; ; attempt++ {
		raw, err := read()
		if err != nil {
			return err
		}
		sub := form.Decode([]model.Field{field}, raw, nil)
		if sub.Valid() {
			p.state.SetValue(p.field.Name, sub.Values[p.field.Name])
			return nil
		}
		for _, message := range sub.Errors.Fields[p.field.Name] {
			if err := p.r.driver.Info(p.ctx, p.r.theme.Error.Render(message)); err != nil {
				return err
			}
		}
		if p.r.maxAttempts > 0 && attempt >= p.r.maxAttempts {
			return fmt.Errorf("%w: %s", ErrTooManyAttempts, p.field.Name)
		}
	}
}

func (p *prompter) single(value string) url.Values {
	return url.Values{p.field.Name: {value}}
}

func (p *prompter) message() string {
	text := label(p.field)
	if required(p.field) {
		text += " *"
	}
	return text
}

func (p *prompter) help(extra string) string {
	parts := []string{p.field.Label.RequiredText, extra}
	var out []string
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			out = append(out, part)
		}
	}
	return strings.Join(out, ". ")
}

// typed runs a free text prompt through the field's focus, change and blur
// handlers. The change handler applies the field format, so the answer is
// decoded without formatting it twice.
func (p *prompter) typed(prompt func() (string, error)) error {
	handle := &binding.Handle{Name: p.field.Name, Value: p.defaultString()}
	focus := render.FocusPipeline(p.field, handle)
	change := render.ChangePipeline(p.field, handle)
	blur := render.BlurPipeline(p.field, handle)

	plain := p.field
	plain.Format = nil
	return p.askAs(plain, func() (url.Values, error) {
		focus()
		answer, err := prompt()
		if err != nil {
			return nil, err
		}
		change(answer)
		blur()
		committed, _ := handle.Value.(string)
		return p.single(committed), nil
	})
}

func (p *prompter) text(base *model.BaseInput) error {
	return p.typed(func() (string, error) {
		return p.r.driver.Input(p.ctx, InputConfig{
			Message: p.message(),
			Default: p.defaultString(),
			Help:    p.help(base.Placeholder),
		})
	})
}

func (p *prompter) VisitText(in *model.TextInput) error     { return p.text(&in.BaseInput) }
func (p *prompter) VisitEmail(in *model.EmailInput) error   { return p.text(&in.BaseInput) }
func (p *prompter) VisitSearch(in *model.SearchInput) error { return p.text(&in.BaseInput) }
func (p *prompter) VisitURL(in *model.URLInput) error       { return p.text(&in.BaseInput) }
func (p *prompter) VisitTel(in *model.TelInput) error       { return p.text(&in.BaseInput) }

func (p *prompter) VisitPassword(*model.PasswordInput) error {
	return p.typed(func() (string, error) {
		return p.r.driver.Password(p.ctx, InputConfig{
			Message: p.message(),
			Default: p.defaultString(),
			Help:    p.help(""),
		})
	})
}

func (p *prompter) VisitTextarea(in *model.TextareaInput) error {
	extra := ""
	if in.MaxLength > 0 {
		extra = fmt.Sprintf("Up to %d characters", in.MaxLength)
	}
	return p.typed(func() (string, error) {
		return p.r.driver.TextArea(p.ctx, TextAreaConfig{
			Message: p.message(),
			Default: p.defaultString(),
			Help:    p.help(extra),
		})
	})
}

func (p *prompter) VisitNumber(in *model.NumberInput) error {
	var bounds []string
	if in.Min != nil {
		bounds = append(bounds, "min "+strconv.FormatFloat(*in.Min, 'f', -1, 64))
	}
	if in.Max != nil {
		bounds = append(bounds, "max "+strconv.FormatFloat(*in.Max, 'f', -1, 64))
	}
	return p.ask(func() (url.Values, error) {
		answer, err := p.r.driver.Input(p.ctx, InputConfig{
			Message: p.message(),
			Default: p.defaultString(),
			Help:    p.help(strings.Join(bounds, ", ")),
		})
		return p.single(answer), err
	})
}

func (p *prompter) VisitDropdown(in *model.DropdownInput) error {
	options := make([]model.Option, 0, len(in.Options)+1)
	if !required(p.field) {
		options = append(options, model.Option{Value: noneOption})
	}
	options = append(options, in.Options...)

	labels := make([]string, len(options))
	defaultIndex := 0
	current := p.defaultString()
	for i, option := range options {
		labels[i] = option.Value
		if current != "" && option.Key == current && defaultIndex == 0 {
			defaultIndex = i
		}
	}
	filter := func(query string, index int) bool {
		if index < 0 || index >= len(options) {
			return false
		}
		return len(dropdown.Filter(options[index:index+1], query)) > 0
	}

	return p.ask(func() (url.Values, error) {
		if len(options) == 0 {
			return p.single(""), p.r.driver.Info(p.ctx, p.r.theme.Info.Render(in.EmptyMessage()))
		}
		idx, err := p.r.driver.Select(p.ctx, SelectConfig{
			Message:      p.message(),
			Options:      labels,
			DefaultIndex: defaultIndex,
			Help:         p.help(in.PlaceholderText()),
			Filter:       filter,
		})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(options) {
			return p.single(""), nil
		}
		return p.single(options[idx].Key), nil
	})
}

func (p *prompter) VisitCheckbox(in *model.CheckboxInput) error {
	message := in.Label
	if message == "" {
		message = p.message()
	}
	current, _ := p.state.Value(p.field.Name)
	checked, _ := current.(bool)
	return p.ask(func() (url.Values, error) {
		answer, err := p.r.driver.Confirm(p.ctx, ConfirmConfig{
			Message: message,
			Default: checked,
			Help:    p.help(""),
		})
		return p.single(strconv.FormatBool(answer)), err
	})
}

func (p *prompter) VisitOTP(in *model.OTPInput) error {
	return p.ask(func() (url.Values, error) {
		answer, err := p.r.driver.Input(p.ctx, InputConfig{
			Message: p.message(),
			Help:    p.help(fmt.Sprintf("Enter the %d digit code", in.SlotCount())),
		})
		return p.single(answer), err
	})
}

func (p *prompter) VisitPhone(in *model.PhoneInput) error {
	countries := phone.Countries(in.Preferred())
	labels := make([]string, len(countries))
	defaultIndex := 0
	for i, c := range countries {
		labels[i] = fmt.Sprintf("%s (+%s)", c.Name, c.DialCode)
		if c.ISO2 == in.Country() {
			defaultIndex = i
		}
	}

	current := ""
	if v, ok := p.state.Value(p.field.Name); ok {
		if data, ok := v.(model.PhoneData); ok {
			current = data.FullNumber
		} else {
			current = fmt.Sprint(v)
		}
	}

	return p.ask(func() (url.Values, error) {
		idx, err := p.r.driver.Select(p.ctx, SelectConfig{
			Message:      p.message() + " country",
			Options:      labels,
			DefaultIndex: defaultIndex,
		})
		if err != nil {
			return nil, err
		}
		country := in.Country()
		if idx >= 0 && idx < len(countries) {
			country = countries[idx].ISO2
			defaultIndex = idx
		}
		number, err := p.r.driver.Input(p.ctx, InputConfig{
			Message: p.message(),
			Default: current,
			Help:    p.help(in.Placeholder),
		})
		if err != nil {
			return nil, err
		}
		return url.Values{
			p.field.Name:                      {number},
			p.field.Name + form.CountrySuffix: {country},
		}, nil
	})
}

func (p *prompter) VisitDate(in *model.DateInput) error {
	var selected *time.Time
	if v, ok := p.state.Value(p.field.Name); ok {
		if t, ok := v.(time.Time); ok {
			selected = &t
		}
	}
	reference := p.r.now()
	if selected != nil {
		reference = *selected
	}
	cal := calendar.New(reference,
		calendar.WithMinDate(in.MinDate),
		calendar.WithMaxDate(in.MaxDate),
		calendar.WithHighlighted(in.HighlightedDates),
		calendar.WithFirstDayOfWeek(in.WeekStart()),
		calendar.WithSelected(selected),
		calendar.WithClock(p.r.now),
	)

	return p.ask(func() (url.Values, error) {
		for {
			if err := p.r.driver.Info(p.ctx, MonthView(cal, p.r.theme)); err != nil {
				return nil, err
			}
			answer, err := p.r.driver.Input(p.ctx, InputConfig{
				Message: p.message(),
				Help:    p.help("Day of the month, < or > to change month, or YYYY-MM-DD"),
			})
			if err != nil {
				return nil, err
			}
			answer = strings.TrimSpace(answer)
			switch answer {
			case "<":
				cal.Prev()
				continue
			case ">":
				cal.Next()
				continue
			case "":
				if t, ok := cal.Selected(); ok {
					return p.single(t.UTC().Format(calendar.ISOLayout)), nil
				}
				return p.single(""), nil
			}
			if day, err := strconv.Atoi(answer); err == nil {
				t, ok := cal.Click(day)
				if !ok {
					if err := p.r.driver.Info(p.ctx, p.r.theme.Error.Render("Date is out of range")); err != nil {
						return nil, err
					}
					continue
				}
				return p.single(t.UTC().Format(calendar.ISOLayout)), nil
			}
			if t, ok := calendar.ParseValue(answer); ok {
				cal.Show(t)
			}
			return p.single(answer), nil
		}
	})
}

func (p *prompter) VisitFile(in *model.FileInput) error {
	for attempt := 1; ; attempt++ {
		answer, err := p.r.driver.Input(p.ctx, InputConfig{
			Message: p.message(),
			Help:    p.help(file.Hint(in)),
		})
		if err != nil {
			return err
		}

		var candidates []model.File
		var problems []string
		for _, path := range splitPaths(answer) {
			meta, err := p.r.stat(path)
			if err != nil {
				problems = append(problems, fmt.Sprintf("Could not read %s", path))
				continue
			}
			candidates = append(candidates, meta)
		}

		selector := file.New(in, binding.NewUncontrolled[[]model.File](nil, nil), file.WithLogger(p.r.log))
		accepted := selector.Select(candidates)
		for _, rejection := range selector.Rejections() {
			problems = append(problems, rejection.Message)
		}
		if len(accepted) == 0 && required(p.field) && len(problems) == 0 {
			problems = append(problems, "This field is required")
		}

		if len(problems) == 0 {
			if len(accepted) == 0 {
				p.state.SetValue(p.field.Name, nil)
			} else {
				p.state.SetValue(p.field.Name, accepted)
			}
			return nil
		}
		for _, problem := range problems {
			if err := p.r.driver.Info(p.ctx, p.r.theme.Error.Render(problem)); err != nil {
				return err
			}
		}
		if p.r.maxAttempts > 0 && attempt >= p.r.maxAttempts {
			return fmt.Errorf("%w: %s", ErrTooManyAttempts, p.field.Name)
		}
	}
}

// stat reads the metadata of a local file, sniffing its type from content.
func (r *Renderer) stat(path string) (model.File, error) {
	var (
		f   io.ReadCloser
		err error
	)
	var size int64
	if r.files != nil {
		var handle fs.File
		handle, err = r.files.Open(path)
		if err == nil {
			f = handle
			var info fs.FileInfo
			if info, err = handle.Stat(); err == nil {
				size = info.Size()
			}
		}
	} else {
		var handle *os.File
		handle, err = os.Open(path)
		if err == nil {
			f = handle
			var info os.FileInfo
			if info, err = handle.Stat(); err == nil {
				size = info.Size()
			}
		}
	}
	if f != nil {
		defer f.Close()
	}
	if err != nil {
		return model.File{}, fmt.Errorf("tui: open %s: %w", path, err)
	}

	mtype, err := file.DetectReader(f)
	if err != nil {
		return model.File{}, err
	}
	return model.File{Name: filepath.Base(path), Size: size, Type: mtype}, nil
}

func (p *prompter) defaultString() string {
	v, ok := p.state.Value(p.field.Name)
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case model.PhoneData:
		return t.FullNumber
	case time.Time:
		return t.UTC().Format(calendar.ISOLayout)
	default:
		return fmt.Sprint(t)
	}
}

func splitPaths(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func label(field model.Field) string {
	if text := strings.TrimSpace(field.Label.Text); text != "" {
		return text
	}
	return field.Name
}

func required(field model.Field) bool {
	return field.Label.Required != nil && *field.Label.Required
}
