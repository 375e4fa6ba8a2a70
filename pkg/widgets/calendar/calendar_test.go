package calendar

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/binding"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/style"
	"github.com/goliatone/go-formkit/pkg/widgets/popover"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestLeadingBlanks_Range(t *testing.T) {
	for fdow := time.Sunday; fdow <= time.Saturday; fdow++ {
		for first := time.Sunday; first <= time.Saturday; first++ {
			got := LeadingBlanks(first, fdow)
			if got < 0 || got > 6 {
				t.Fatalf("blanks out of range for first=%s fdow=%s: %d", first, fdow, got)
			}
			if (got == 0) != (first == fdow) {
				t.Fatalf("blanks zero iff month starts on week start: first=%s fdow=%s got=%d", first, fdow, got)
			}
		}
	}
}

func TestGrid_WeekStartWrapsOutOfRange(t *testing.T) {
	// January 2025 starts on a Wednesday.
	reference := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		day    time.Weekday
		first  time.Weekday
		blanks int
	}{
		{9, time.Tuesday, 1},
		{-1, time.Saturday, 4},
		{14, time.Sunday, 3},
	}
	for _, tc := range cases {
		if got := LeadingBlanks(time.Wednesday, tc.day); got != tc.blanks {
			t.Fatalf("LeadingBlanks(Wednesday, %d) = %d, want %d", tc.day, got, tc.blanks)
		}
		grid := New(reference, WithFirstDayOfWeek(tc.day)).Grid()
		if grid.Blanks != tc.blanks {
			t.Fatalf("week start %d: expected %d blanks, got %d", tc.day, tc.blanks, grid.Blanks)
		}
		if grid.Headers[0].Weekday != tc.first {
			t.Fatalf("week start %d: first column %s, want %s", tc.day, grid.Headers[0].Weekday, tc.first)
		}
	}
}

func TestGrid_MondayStartWednesdayMonth(t *testing.T) {
	// January 2025 starts on a Wednesday.
	c := New(time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC), WithFirstDayOfWeek(time.Monday))
	grid := c.Grid()
	if grid.Blanks != 2 {
		t.Fatalf("expected 2 leading blanks, got %d", grid.Blanks)
	}
	if len(grid.Cells) != 31 {
		t.Fatalf("expected 31 days, got %d", len(grid.Cells))
	}
	if grid.Title != "January 2025" {
		t.Fatalf("unexpected title %q", grid.Title)
	}
}

func TestHeaders(t *testing.T) {
	labels := func(hs []Header) []string {
		out := make([]string, len(hs))
		for i, h := range hs {
			out[i] = h.Label
		}
		return out
	}
	if diff := cmp.Diff([]string{"M", "T", "W", "T", "F", "S", "S"}, labels(Headers(time.Monday))); diff != "" {
		t.Fatalf("monday headers (-want +got):\n%s", diff)
	}
	sunday := Headers(time.Sunday)
	if diff := cmp.Diff([]string{"S", "M", "T", "W", "T", "F", "S"}, labels(sunday)); diff != "" {
		t.Fatalf("sunday headers (-want +got):\n%s", diff)
	}
	if !sunday[0].Weekend || !sunday[6].Weekend || sunday[1].Weekend {
		t.Fatalf("unexpected weekend flags: %+v", sunday)
	}
}

func TestDaysIn(t *testing.T) {
	cases := map[time.Month]int{time.February: 29, time.April: 30, time.December: 31}
	for month, want := range cases {
		if got := DaysIn(2024, month); got != want {
			t.Fatalf("%s 2024: want %d got %d", month, want, got)
		}
	}
	if DaysIn(2023, time.February) != 28 {
		t.Fatalf("february 2023 should have 28 days")
	}
}

func TestGrid_VariantPriority(t *testing.T) {
	min := time.Date(2025, time.March, 3, 15, 0, 0, 0, time.UTC)
	max := time.Date(2025, time.March, 28, 0, 0, 0, 0, time.UTC)
	selected := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	c := New(selected,
		WithMinDate(&min),
		WithMaxDate(&max),
		WithSelected(&selected),
		WithHighlighted([]time.Time{
			time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
			time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC),
			time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		}),
		WithClock(fixedClock(time.Date(2025, time.March, 12, 9, 0, 0, 0, time.UTC))),
	)
	cells := c.Grid().Cells
	variant := func(day int) style.DayVariant { return cells[day-1].Variant }

	cases := map[int]style.DayVariant{
		1:  style.DayDisabled,    // before min, also highlighted
		2:  style.DayDisabled,    // before min, weekend
		3:  style.DayDefault,     // min day itself, Monday
		10: style.DaySelected,    // selected beats highlighted
		12: style.DayHighlighted, // highlighted beats today
		15: style.DayWeekend,     // Saturday
		29: style.DayDisabled,    // after max
	}
	for day, want := range cases {
		if got := variant(day); got != want {
			t.Fatalf("day %d: want %s got %s", day, want, got)
		}
	}
}

func TestGrid_TodayBeatsWeekend(t *testing.T) {
	c := New(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		WithClock(fixedClock(time.Date(2025, time.March, 16, 12, 0, 0, 0, time.UTC))))
	if got := c.Grid().Cells[15].Variant; got != style.DayToday {
		t.Fatalf("expected today on a Sunday, got %s", got)
	}
}

func TestClick_DisabledIsNoop(t *testing.T) {
	max := time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)
	var picked []time.Time
	c := New(max, WithMaxDate(&max), OnSelect(func(d time.Time) { picked = append(picked, d) }))

	if _, ok := c.Click(6); ok {
		t.Fatalf("expected disabled click to be ignored")
	}
	if _, ok := c.Click(40); ok {
		t.Fatalf("expected out-of-range click to be ignored")
	}
	date, ok := c.Click(5)
	if !ok || !date.Equal(max) {
		t.Fatalf("expected click to commit %s, got %s", max, date)
	}
	if len(picked) != 1 {
		t.Fatalf("expected one selection callback, got %d", len(picked))
	}
}

func TestNavigation_CrossesYear(t *testing.T) {
	c := New(time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC))
	c.Prev()
	if y, m := c.Month(); y != 2024 || m != time.December {
		t.Fatalf("prev: got %d %s", y, m)
	}
	c.Next()
	c.Next()
	if y, m := c.Month(); y != 2025 || m != time.February {
		t.Fatalf("next: got %d %s", y, m)
	}
}

func TestPicker_SelectCommitsISOAndCloses(t *testing.T) {
	bus := popover.NewBus()
	var committed []string
	value := binding.NewUncontrolled("", func(v string) { committed = append(committed, v) })
	picker := NewPicker(&model.DateInput{Format: model.DateFormatDate}, value,
		WithSurface(bus),
		WithPickerClock(fixedClock(time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC))),
	)

	if picker.Display() != "Select date" {
		t.Fatalf("expected placeholder, got %q", picker.Display())
	}
	picker.Toggle()
	if !picker.IsOpen() || bus.Len() != 1 {
		t.Fatalf("expected open picker with listener")
	}
	if !picker.Select(7) {
		t.Fatalf("expected select to succeed")
	}
	if diff := cmp.Diff([]string{"2025-06-07T00:00:00.000Z"}, committed); diff != "" {
		t.Fatalf("committed mismatch (-want +got):\n%s", diff)
	}
	if picker.IsOpen() || bus.Len() != 0 {
		t.Fatalf("expected picker closed and detached")
	}
	if picker.Display() != "Jun 7, 2025" {
		t.Fatalf("unexpected display %q", picker.Display())
	}

	picker.Toggle()
	if y, m := picker.Calendar().Month(); y != 2025 || m != time.June {
		t.Fatalf("reopened calendar should show the selected month, got %d %s", y, m)
	}
	if sel, ok := picker.Calendar().Selected(); !ok || sel.Day() != 7 {
		t.Fatalf("reopened calendar should mark the selected date")
	}
}

func TestPicker_DisabledIgnoresToggle(t *testing.T) {
	picker := NewPicker(&model.DateInput{BaseInput: model.BaseInput{Disabled: true}}, nil)
	picker.Toggle()
	if picker.IsOpen() {
		t.Fatalf("disabled picker must stay closed")
	}
}

func TestFormat(t *testing.T) {
	raw := "2025-06-07T14:30:00.000Z"
	cases := map[model.DateFormat]string{
		model.DateFormatDate:     "Jun 7, 2025",
		model.DateFormatDateTime: "Jun 7, 2025, 2:30 PM",
		model.DateFormatTime:     "2:30:00 PM",
	}
	for format, want := range cases {
		if got := Format(raw, format, time.UTC); got != want {
			t.Fatalf("%s: want %q got %q", format, want, got)
		}
	}
	if got := Format("not a date", model.DateFormatDate, time.UTC); got != "not a date" {
		t.Fatalf("expected raw passthrough, got %q", got)
	}
}
