package calendar

import (
	"time"

	"github.com/goliatone/go-formkit/pkg/binding"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/widgets/popover"
)

// ISOLayout is the committed value format: UTC with millisecond precision.
const ISOLayout = "2006-01-02T15:04:05.000Z"

// Display layouts per date format.
const (
	LayoutDate     = "Jan 2, 2006"
	LayoutDateTime = "Jan 2, 2006, 3:04 PM"
	LayoutTime     = "3:04:05 PM"
)

// PickerOption configures a Picker.
type PickerOption func(*pickerConfig)

type pickerConfig struct {
	surface popover.Surface
	now     func() time.Time
	loc     *time.Location
}

// WithSurface attaches the outside-click source used while open.
func WithSurface(surface popover.Surface) PickerOption {
	return func(cfg *pickerConfig) { cfg.surface = surface }
}

// WithPickerClock overrides the source of "today".
func WithPickerClock(now func() time.Time) PickerOption {
	return func(cfg *pickerConfig) {
		if now != nil {
			cfg.now = now
		}
	}
}

// WithPickerLocation sets the zone used for the grid and display.
func WithPickerLocation(loc *time.Location) PickerOption {
	return func(cfg *pickerConfig) {
		if loc != nil {
			cfg.loc = loc
		}
	}
}

// Picker is a date field: a trigger showing the committed value and a
// calendar popover.
type Picker struct {
	input   *model.DateInput
	value   *binding.Value[string]
	popover *popover.Popover
	cal     *Calendar
	cfg     pickerConfig
}

// NewPicker constructs a closed picker.
func NewPicker(input *model.DateInput, value *binding.Value[string], opts ...PickerOption) *Picker {
	if input == nil {
		input = &model.DateInput{}
	}
	if value == nil {
		value = binding.NewUncontrolled("", nil)
	}
	cfg := pickerConfig{now: time.Now, loc: time.UTC}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	p := &Picker{input: input, value: value, cfg: cfg}
	p.popover = popover.New(cfg.surface, nil)
	p.cal = p.newCalendar()
	return p
}

// IsOpen reports whether the calendar is shown.
func (p *Picker) IsOpen() bool { return p.popover.IsOpen() }

// Calendar returns the month view. It is rebuilt on every open so that it
// reflects the current value.
func (p *Picker) Calendar() *Calendar { return p.cal }

// Toggle handles a trigger click; disabled pickers ignore it.
func (p *Picker) Toggle() {
	if p.input.Disabled {
		return
	}
	if p.popover.IsOpen() {
		p.popover.Close()
		return
	}
	p.cal = p.newCalendar()
	p.popover.Open()
}

// Close hides the calendar.
func (p *Picker) Close() { p.popover.Close() }

// Dispose drops the outside-click subscription.
func (p *Picker) Dispose() { p.popover.Dispose() }

// Select commits day of the displayed month as an ISO-8601 UTC string and
// closes the calendar. Disabled days are ignored.
func (p *Picker) Select(day int) bool {
	date, ok := p.cal.Click(day)
	if !ok {
		return false
	}
	p.value.Set(date.UTC().Format(ISOLayout))
	p.popover.Close()
	return true
}

// Value returns the committed date, if the bound value parses.
func (p *Picker) Value() (time.Time, bool) {
	return ParseValue(p.value.Get())
}

// Display returns the trigger text: the formatted value or the placeholder.
func (p *Picker) Display() string {
	raw := p.value.Get()
	if raw == "" {
		return p.input.PlaceholderText()
	}
	return Format(raw, p.input.DisplayFormat(), p.cfg.loc)
}

func (p *Picker) newCalendar() *Calendar {
	opts := []Option{
		WithMinDate(p.input.MinDate),
		WithMaxDate(p.input.MaxDate),
		WithHighlighted(p.input.HighlightedDates),
		WithFirstDayOfWeek(p.input.WeekStart()),
		WithClock(p.cfg.now),
		WithLocation(p.cfg.loc),
	}
	reference := p.cfg.now()
	if selected, ok := p.Value(); ok {
		opts = append(opts, WithSelected(&selected))
		reference = selected
	}
	return New(reference, opts...)
}

// ParseValue reads a committed value. RFC 3339 with or without fractional
// seconds and plain dates are accepted.
func ParseValue(raw string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, ISOLayout, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Format renders a committed value for display. Unparseable values are
// returned unchanged.
func Format(raw string, format model.DateFormat, loc *time.Location) string {
	t, ok := ParseValue(raw)
	if !ok {
		return raw
	}
	if loc != nil {
		t = t.In(loc)
	}
	switch format {
	case model.DateFormatDate:
		return t.Format(LayoutDate)
	case model.DateFormatTime:
		return t.Format(LayoutTime)
	default:
		return t.Format(LayoutDateTime)
	}
}
