package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/widgets/calendar"
	"github.com/goliatone/go-formkit/pkg/widgets/dropdown"
	"github.com/goliatone/go-formkit/pkg/widgets/otp"
)

const (
	defaultCountdown = 60
	maxCountdown     = 3600
)

type dropdownResponse struct {
	Field   string         `json:"field"`
	Query   string         `json:"query"`
	Options []model.Option `json:"options"`
	Empty   string         `json:"empty,omitempty"`
}

// handleDropdown filters the options of a dropdown field by the q
// parameter, matching display values without regard to case.
func (s *Server) handleDropdown(w http.ResponseWriter, r *http.Request) {
	formName, fieldName := chi.URLParam(r, "form"), chi.URLParam(r, "field")
	doc, ok := s.document(formName)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("form %q not found", formName))
		return
	}
	field, ok := doc.Field(fieldName)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("field %q not found", fieldName))
		return
	}
	input, ok := field.Input.(*model.DropdownInput)
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("field %q is a %s, not a dropdown", fieldName, field.Kind()))
		return
	}

	query := r.URL.Query().Get("q")
	resp := dropdownResponse{
		Field:   fieldName,
		Query:   query,
		Options: append([]model.Option{}, dropdown.Filter(input.Options, query)...),
	}
	if len(resp.Options) == 0 {
		resp.Empty = input.EmptyMessage()
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleCalendar returns a month grid. Parameters: month (YYYY-MM),
// selected, min and max (YYYY-MM-DD or RFC 3339), weekStart (0 to 6,
// Sunday first).
func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	now := s.now()
	opts := []calendar.Option{calendar.WithClock(s.now)}

	reference := now
	if raw := q.Get("month"); raw != "" {
		month, err := time.Parse("2006-01", raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "month must be YYYY-MM")
			return
		}
		reference = month
	}

	dates := map[string]func(*time.Time) calendar.Option{
		"selected": calendar.WithSelected,
		"min":      calendar.WithMinDate,
		"max":      calendar.WithMaxDate,
	}
	for _, key := range []string{"selected", "min", "max"} {
		raw := q.Get(key)
		if raw == "" {
			continue
		}
		t, ok := calendar.ParseValue(raw)
		if !ok {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("%s must be a date", key))
			return
		}
		opts = append(opts, dates[key](&t))
		if key == "selected" && q.Get("month") == "" {
			reference = t
		}
	}

	if raw := q.Get("weekStart"); raw != "" {
		day, err := strconv.Atoi(raw)
		if err != nil || day < 0 || day > 6 {
			writeError(w, http.StatusBadRequest, "weekStart must be between 0 and 6")
			return
		}
		opts = append(opts, calendar.WithFirstDayOfWeek(time.Weekday(day)))
	}

	writeJSON(w, http.StatusOK, calendar.New(reference, opts...).Grid())
}

type countdownMessage struct {
	Remaining int    `json:"remaining"`
	Clock     string `json:"clock"`
	Ready     bool   `json:"ready"`
}

// handleCountdown streams the resend countdown over a websocket: one
// message per tick, the last one with ready set. The seconds parameter
// sets the length.
func (s *Server) handleCountdown(w http.ResponseWriter, r *http.Request) {
	seconds := defaultCountdown
	if raw := r.URL.Query().Get("seconds"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxCountdown {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("seconds must be between 1 and %d", maxCountdown))
			return
		}
		seconds = n
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: s.origins})
	if err != nil {
		s.log.Warn().Err(err).Msg("countdown: websocket accept")
		return
	}
	defer conn.CloseNow()

	// The client only listens; CloseRead handles its close frame and ends
	// ctx when the connection goes away.
	ctx := conn.CloseRead(r.Context())

	ticks := make(chan int, seconds)
	countdown := otp.NewCountdown(seconds,
		otp.WithTickInterval(s.tick),
		otp.WithOnTick(func(remaining int) { ticks <- remaining }),
	)
	countdown.Start(ctx)
	defer countdown.Stop()

	if err := s.sendTick(ctx, conn, seconds); err != nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case remaining := <-ticks:
			if err := s.sendTick(ctx, conn, remaining); err != nil {
				return
			}
			if remaining <= 0 {
				conn.Close(websocket.StatusNormalClosure, "ready")
				return
			}
		}
	}
}

func (s *Server) sendTick(ctx context.Context, conn *websocket.Conn, remaining int) error {
	msg := countdownMessage{Remaining: remaining, Clock: otp.Clock(remaining), Ready: remaining <= 0}
	err := wsjson.Write(ctx, conn, msg)
	if err != nil && !errors.Is(err, context.Canceled) {
		s.log.Debug().Err(err).Msg("countdown: write")
	}
	return err
}
