package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formkit/pkg/renderers/tui"
	"github.com/goliatone/go-formkit/pkg/widgets/calendar"
)

type calendarOptions struct {
	month     string
	selected  string
	min       string
	max       string
	weekStart int
}

func newCalendarCmd(flags *rootFlags) *cobra.Command {
	opts := &calendarOptions{}

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Print a month grid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalendar(cmd, opts, time.Now)
		},
	}

	cmd.Flags().StringVar(&opts.month, "month", "", "Month to show (YYYY-MM), defaults to the current one")
	cmd.Flags().StringVar(&opts.selected, "selected", "", "Selected date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.min, "min", "", "First selectable date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.max, "max", "", "Last selectable date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&opts.weekStart, "week-start", int(time.Monday), "First day of the week (0 Sunday to 6 Saturday)")

	return cmd
}

func runCalendar(cmd *cobra.Command, opts *calendarOptions, now func() time.Time) error {
	if opts.weekStart < 0 || opts.weekStart > 6 {
		return fmt.Errorf("--week-start must be between 0 and 6, got %d", opts.weekStart)
	}
	options := []calendar.Option{
		calendar.WithClock(now),
		calendar.WithFirstDayOfWeek(time.Weekday(opts.weekStart)),
	}

	reference := now()
	for _, date := range []struct {
		flag  string
		raw   string
		apply func(*time.Time) calendar.Option
	}{
		{"selected", opts.selected, calendar.WithSelected},
		{"min", opts.min, calendar.WithMinDate},
		{"max", opts.max, calendar.WithMaxDate},
	} {
		if date.raw == "" {
			continue
		}
		t, ok := calendar.ParseValue(date.raw)
		if !ok {
			return fmt.Errorf("--%s: %q is not a date", date.flag, date.raw)
		}
		options = append(options, date.apply(&t))
		if date.flag == "selected" {
			reference = t
		}
	}
	if opts.month != "" {
		month, err := time.Parse("2006-01", opts.month)
		if err != nil {
			return fmt.Errorf("--month: %q is not YYYY-MM", opts.month)
		}
		reference = month
	}

	fmt.Fprintln(cmd.OutOrStdout(), tui.MonthView(calendar.New(reference, options...), tui.DefaultTheme()))
	return nil
}
