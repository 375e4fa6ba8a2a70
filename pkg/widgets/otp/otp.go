// Package otp implements one-time-code entry: digit slots with focus
// movement and paste handling, completion detection and the resend
// countdown.
package otp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formkit/pkg/binding"
	"github.com/goliatone/go-formkit/pkg/model"
)

var (
	// ErrResendUnavailable is returned when the widget has no resend action.
	ErrResendUnavailable = errors.New("otp: resend not configured")
	// ErrResendNotReady is returned while the countdown is still running.
	ErrResendNotReady = errors.New("otp: resend countdown still running")
)

// Key is a navigation key handled per slot.
type Key string

const (
	KeyBackspace Key = "Backspace"
	KeyLeft      Key = "ArrowLeft"
	KeyRight     Key = "ArrowRight"
)

// Option configures a Widget.
type Option func(*Widget)

// WithLogger sets the logger used for best-effort failures.
func WithLogger(logger zerolog.Logger) Option {
	return func(w *Widget) { w.log = logger }
}

// WithCountdownOptions passes options to the resend countdown.
func WithCountdownOptions(opts ...CountdownOption) Option {
	return func(w *Widget) { w.countdownOpts = append(w.countdownOpts, opts...) }
}

// Widget is the OTP state of one field.
type Widget struct {
	length     int
	disabled   bool
	value      *binding.Value[string]
	onComplete func(string)
	onResend   func(context.Context) error
	log        zerolog.Logger

	slots []string
	focus int

	complete  bool
	lastFired string

	countdown     *Countdown
	countdownOpts []CountdownOption
	timerCtx      context.Context
}

// New constructs a widget reading its slots from value.
func New(input *model.OTPInput, value *binding.Value[string], opts ...Option) *Widget {
	if input == nil {
		input = &model.OTPInput{}
	}
	if value == nil {
		value = binding.NewUncontrolled("", nil)
	}
	w := &Widget{
		length:     input.SlotCount(),
		disabled:   input.Disabled,
		value:      value,
		onComplete: input.OnComplete,
		onResend:   input.OnResend,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	if input.Resendable {
		w.countdown = NewCountdown(input.ResendSeconds(), w.countdownOpts...)
	}
	w.slots = Decode(value.Get(), w.length)
	w.complete = IsComplete(w.Value(), w.length)
	if w.complete {
		w.lastFired = w.Value()
	}
	return w
}

// Length returns the number of slots.
func (w *Widget) Length() int { return w.length }

// Slots returns a copy of the slot contents; empty slots are "".
func (w *Widget) Slots() []string { return append([]string(nil), w.slots...) }

// Focused returns the index of the focused slot.
func (w *Widget) Focused() int { return w.focus }

// Value returns the encoded slot string.
func (w *Widget) Value() string { return Encode(w.slots) }

// Complete reports whether every slot holds a digit.
func (w *Widget) Complete() bool { return IsComplete(w.Value(), w.length) }

// Countdown returns the resend countdown, nil when resend is off.
func (w *Widget) Countdown() *Countdown { return w.countdown }

// Focus moves focus to slot i.
func (w *Widget) Focus(i int) {
	if i >= 0 && i < w.length {
		w.focus = i
	}
}

// Input sets slot i. Only a single digit or the empty string is accepted;
// a digit advances focus to the next slot.
func (w *Widget) Input(i int, s string) {
	if w.disabled || i < 0 || i >= w.length {
		return
	}
	if s != "" && !isDigit(s) {
		return
	}
	w.slots[i] = s
	w.focus = i
	if s != "" && i < w.length-1 {
		w.focus = i + 1
	}
	w.commit()
}

// Key handles Backspace and arrow keys on slot i. Backspace clears a
// filled slot and moves left from an empty one.
func (w *Widget) Key(i int, key Key) {
	if w.disabled || i < 0 || i >= w.length {
		return
	}
	switch key {
	case KeyBackspace:
		if w.slots[i] != "" {
			w.slots[i] = ""
			w.focus = i
			w.commit()
			return
		}
		if i > 0 {
			w.focus = i - 1
		}
	case KeyLeft:
		if i > 0 {
			w.focus = i - 1
		}
	case KeyRight:
		if i < w.length-1 {
			w.focus = i + 1
		}
	}
}

// Paste fills consecutive slots from i with the digits of text. Focus lands
// on the first empty slot at or after i, or the last slot.
func (w *Widget) Paste(i int, text string) {
	if w.disabled || i < 0 || i >= w.length {
		return
	}
	digits := onlyDigits(text)
	if max := w.length - i; len(digits) > max {
		digits = digits[:max]
	}
	if len(digits) == 0 {
		return
	}
	for offset, digit := range digits {
		w.slots[i+offset] = string(digit)
	}
	w.commit()

	w.focus = w.length - 1
	for idx := i; idx < w.length; idx++ {
		if w.slots[idx] == "" {
			w.focus = idx
			break
		}
	}
}

// Refresh re-reads the bound value after an external change.
func (w *Widget) Refresh() {
	w.slots = Decode(w.value.Get(), w.length)
	w.checkComplete(w.Value())
}

// Clear empties every slot and focuses the first.
func (w *Widget) Clear() {
	for i := range w.slots {
		w.slots[i] = ""
	}
	w.focus = 0
	w.commit()
}

// StartTimer starts the resend countdown. ctx bounds the ticker and is
// reused when a successful resend restarts it.
func (w *Widget) StartTimer(ctx context.Context) {
	if w.countdown == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	w.timerCtx = ctx
	w.countdown.Start(ctx)
}

// CanResend reports whether the resend action is enabled.
func (w *Widget) CanResend() bool {
	return w.countdown != nil && w.onResend != nil && w.countdown.Ready()
}

// Resend invokes the resend action once the countdown reached zero. On
// success the slots clear, focus returns to slot 0 and the countdown
// restarts. A failure is logged and returned; the countdown stays at zero.
// Concurrent calls are not de-duplicated.
func (w *Widget) Resend(ctx context.Context) error {
	if w.countdown == nil || w.onResend == nil {
		return ErrResendUnavailable
	}
	if !w.countdown.Ready() {
		return ErrResendNotReady
	}
	if err := w.onResend(ctx); err != nil {
		w.log.Error().Err(err).Int("length", w.length).Msg("otp resend failed")
		return fmt.Errorf("otp: resend: %w", err)
	}
	w.Clear()

	timerCtx := w.timerCtx
	if timerCtx == nil {
		timerCtx = context.Background()
	}
	w.countdown.Start(timerCtx)
	return nil
}

// Dispose stops the countdown ticker.
func (w *Widget) Dispose() {
	if w.countdown != nil {
		w.countdown.Stop()
	}
}

func (w *Widget) commit() {
	next := w.Value()
	if next != w.value.Get() {
		w.value.Set(next)
	}
	w.checkComplete(next)
}

func (w *Widget) checkComplete(value string) {
	complete := IsComplete(value, w.length)
	if complete && (!w.complete || value != w.lastFired) {
		w.lastFired = value
		if w.onComplete != nil {
			w.onComplete(value)
		}
	}
	w.complete = complete
}

// Encode joins slots into the bound value: empty slots become spaces and
// trailing spaces are dropped.
func Encode(slots []string) string {
	var b strings.Builder
	for _, slot := range slots {
		if slot == "" {
			b.WriteByte(' ')
			continue
		}
		b.WriteString(slot)
	}
	return strings.TrimRight(b.String(), " ")
}

// Decode splits a bound value into length slots. Characters that are not
// digits read as empty slots.
func Decode(value string, length int) []string {
	slots := make([]string, length)
	for i, r := range value {
		if i >= length {
			break
		}
		if r >= '0' && r <= '9' {
			slots[i] = string(r)
		}
	}
	return slots
}

// IsComplete reports whether value holds exactly length digits.
func IsComplete(value string, length int) bool {
	if len(value) != length || length == 0 {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Sanitize validates a submitted code: it must be complete.
func Sanitize(value string, length int) (string, error) {
	trimmed := strings.TrimSpace(value)
	if !IsComplete(trimmed, length) {
		return "", fmt.Errorf("otp: code must be %d digits", length)
	}
	return trimmed, nil
}

func isDigit(s string) bool {
	return len(s) == 1 && s[0] >= '0' && s[0] <= '9'
}

func onlyDigits(text string) string {
	var b strings.Builder
	for _, r := range text {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
