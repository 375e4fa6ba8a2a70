// Package calendar computes month grids and drives the date picker.
package calendar

import (
	"fmt"
	"time"

	"github.com/goliatone/go-formkit/pkg/style"
)

// LeadingBlanks returns how many empty cells precede day 1 when the week
// starts on firstDayOfWeek and the month starts on firstWeekday. Weekdays
// outside 0..6 wrap around the week.
func LeadingBlanks(firstWeekday, firstDayOfWeek time.Weekday) int {
	return int(normalizeWeekday(normalizeWeekday(firstWeekday) - normalizeWeekday(firstDayOfWeek)))
}

func normalizeWeekday(d time.Weekday) time.Weekday {
	return ((d % 7) + 7) % 7
}

// DaysIn returns the number of days in the month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

var weekdayLetters = [7]string{"S", "M", "T", "W", "T", "F", "S"}

// Header is one weekday column heading.
type Header struct {
	Label   string       `json:"label"`
	Weekday time.Weekday `json:"weekday"`
	Weekend bool         `json:"weekend"`
}

// Headers returns the weekday headings starting at firstDayOfWeek.
func Headers(firstDayOfWeek time.Weekday) []Header {
	out := make([]Header, 7)
	for i := range out {
		weekday := normalizeWeekday(firstDayOfWeek + time.Weekday(i))
		out[i] = Header{
			Label:   weekdayLetters[weekday],
			Weekday: weekday,
			Weekend: isWeekend(weekday),
		}
	}
	return out
}

// Cell is one day of the grid.
type Cell struct {
	Day     int              `json:"day"`
	Date    time.Time        `json:"date"`
	Variant style.DayVariant `json:"variant"`
}

// Disabled reports whether the cell can be clicked.
func (c Cell) Disabled() bool {
	return c.Variant == style.DayDisabled
}

// Grid is a rendered month.
type Grid struct {
	Year    int        `json:"year"`
	Month   time.Month `json:"month"`
	Title   string     `json:"title"`
	Headers []Header   `json:"headers"`
	Blanks  int        `json:"blanks"`
	Cells   []Cell     `json:"cells"`
}

// Option configures a Calendar.
type Option func(*Calendar)

// WithMinDate disables days before min.
func WithMinDate(min *time.Time) Option {
	return func(c *Calendar) { c.min = min }
}

// WithMaxDate disables days after max.
func WithMaxDate(max *time.Time) Option {
	return func(c *Calendar) { c.max = max }
}

// WithHighlighted marks caller-supplied dates.
func WithHighlighted(dates []time.Time) Option {
	return func(c *Calendar) { c.highlighted = dates }
}

// WithFirstDayOfWeek sets the first grid column. Out of range values wrap,
// so 7 is Sunday and -1 is Saturday.
func WithFirstDayOfWeek(day time.Weekday) Option {
	return func(c *Calendar) { c.firstDayOfWeek = normalizeWeekday(day) }
}

// WithSelected marks the committed date.
func WithSelected(selected *time.Time) Option {
	return func(c *Calendar) { c.selected = selected }
}

// WithClock overrides the source of "today".
func WithClock(now func() time.Time) Option {
	return func(c *Calendar) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLocation sets the zone dates are built in. UTC by default.
func WithLocation(loc *time.Location) Option {
	return func(c *Calendar) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// OnSelect observes committed dates.
func OnSelect(fn func(time.Time)) Option {
	return func(c *Calendar) { c.onSelect = fn }
}

// Calendar is the month view state.
type Calendar struct {
	year  int
	month time.Month

	selected       *time.Time
	min            *time.Time
	max            *time.Time
	highlighted    []time.Time
	firstDayOfWeek time.Weekday
	now            func() time.Time
	loc            *time.Location
	onSelect       func(time.Time)
}

// New constructs a calendar showing the month of reference. The week starts
// on Monday unless configured otherwise.
func New(reference time.Time, opts ...Option) *Calendar {
	c := &Calendar{
		firstDayOfWeek: time.Monday,
		now:            time.Now,
		loc:            time.UTC,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	ref := reference.In(c.loc)
	c.year, c.month = ref.Year(), ref.Month()
	return c
}

// Month returns the displayed month.
func (c *Calendar) Month() (int, time.Month) {
	return c.year, c.month
}

// Show jumps to the month of t.
func (c *Calendar) Show(t time.Time) {
	t = t.In(c.loc)
	c.year, c.month = t.Year(), t.Month()
}

// Prev moves to the previous month.
func (c *Calendar) Prev() {
	first := time.Date(c.year, c.month-1, 1, 0, 0, 0, 0, c.loc)
	c.year, c.month = first.Year(), first.Month()
}

// Next moves to the following month.
func (c *Calendar) Next() {
	first := time.Date(c.year, c.month+1, 1, 0, 0, 0, 0, c.loc)
	c.year, c.month = first.Year(), first.Month()
}

// Selected returns the committed date, if any.
func (c *Calendar) Selected() (time.Time, bool) {
	if c.selected == nil {
		return time.Time{}, false
	}
	return *c.selected, true
}

// Grid computes the displayed month.
func (c *Calendar) Grid() Grid {
	first := time.Date(c.year, c.month, 1, 0, 0, 0, 0, c.loc)
	days := DaysIn(c.year, c.month)

	grid := Grid{
		Year:    c.year,
		Month:   c.month,
		Title:   fmt.Sprintf("%s %d", c.month, c.year),
		Headers: Headers(c.firstDayOfWeek),
		Blanks:  LeadingBlanks(first.Weekday(), c.firstDayOfWeek),
		Cells:   make([]Cell, 0, days),
	}
	for day := 1; day <= days; day++ {
		date := c.date(day)
		grid.Cells = append(grid.Cells, Cell{
			Day:     day,
			Date:    date,
			Variant: c.variant(date),
		})
	}
	return grid
}

// Click commits day of the displayed month. Disabled and out-of-range days
// are ignored.
func (c *Calendar) Click(day int) (time.Time, bool) {
	if day < 1 || day > DaysIn(c.year, c.month) {
		return time.Time{}, false
	}
	date := c.date(day)
	if c.disabled(date) {
		return time.Time{}, false
	}
	c.selected = &date
	if c.onSelect != nil {
		c.onSelect(date)
	}
	return date, true
}

func (c *Calendar) date(day int) time.Time {
	return time.Date(c.year, c.month, day, 0, 0, 0, 0, c.loc)
}

func (c *Calendar) variant(date time.Time) style.DayVariant {
	switch {
	case c.disabled(date):
		return style.DayDisabled
	case c.selected != nil && sameDay(*c.selected, date, c.loc):
		return style.DaySelected
	case c.isHighlighted(date):
		return style.DayHighlighted
	case sameDay(c.now(), date, c.loc):
		return style.DayToday
	case isWeekend(date.Weekday()):
		return style.DayWeekend
	default:
		return style.DayDefault
	}
}

// disabled compares whole days so a bound with a time of day still allows
// its own date.
func (c *Calendar) disabled(date time.Time) bool {
	day := dayKey(date, c.loc)
	if c.min != nil && day < dayKey(*c.min, c.loc) {
		return true
	}
	if c.max != nil && day > dayKey(*c.max, c.loc) {
		return true
	}
	return false
}

func (c *Calendar) isHighlighted(date time.Time) bool {
	for _, h := range c.highlighted {
		if sameDay(h, date, c.loc) {
			return true
		}
	}
	return false
}

func isWeekend(day time.Weekday) bool {
	return day == time.Saturday || day == time.Sunday
}

func sameDay(a, b time.Time, loc *time.Location) bool {
	return dayKey(a, loc) == dayKey(b, loc)
}

func dayKey(t time.Time, loc *time.Location) int {
	t = t.In(loc)
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}
