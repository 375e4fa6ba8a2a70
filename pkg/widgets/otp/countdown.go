package otp

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// CountdownOption configures a Countdown.
type CountdownOption func(*Countdown)

// WithTickInterval overrides the one second step.
func WithTickInterval(d time.Duration) CountdownOption {
	return func(c *Countdown) {
		if d > 0 {
			c.step = d
		}
	}
}

// WithOnTick observes every decrement. It runs outside the countdown lock.
func WithOnTick(fn func(remaining int)) CountdownOption {
	return func(c *Countdown) { c.onTick = fn }
}

// Countdown is the resend timer. At most one ticker goroutine runs per
// countdown; it exits at zero, on Stop, on restart or when its context ends.
type Countdown struct {
	mu        sync.Mutex
	interval  int
	remaining int
	step      time.Duration
	onTick    func(int)

	gen    int
	cancel context.CancelFunc
	done   chan struct{}
}

// NewCountdown constructs a stopped countdown of seconds length. Remaining
// starts at the full interval.
func NewCountdown(seconds int, opts ...CountdownOption) *Countdown {
	c := &Countdown{interval: seconds, remaining: seconds, step: time.Second}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Interval returns the configured length in seconds.
func (c *Countdown) Interval() int {
	return c.interval
}

// Remaining returns the seconds left.
func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Ready reports whether the countdown reached zero.
func (c *Countdown) Ready() bool {
	return c.Remaining() <= 0
}

// Label renders the waiting text, "Resend in mm:ss".
func (c *Countdown) Label() string {
	return "Resend in " + Clock(c.Remaining())
}

// Tick decrements the countdown by one step and returns the seconds left.
func (c *Countdown) Tick() int {
	c.mu.Lock()
	if c.remaining > 0 {
		c.remaining--
	}
	remaining := c.remaining
	onTick := c.onTick
	c.mu.Unlock()

	if onTick != nil {
		onTick(remaining)
	}
	return remaining
}

// Start resets the countdown and runs it in the background. A running
// ticker is replaced.
func (c *Countdown) Start(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	c.mu.Lock()
	c.stopLocked()
	c.remaining = c.interval
	if c.interval <= 0 {
		c.mu.Unlock()
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	c.gen++
	gen := c.gen
	done := make(chan struct{})
	c.cancel, c.done = cancel, done
	step := c.step
	c.mu.Unlock()

	go c.run(runCtx, gen, step, done)
}

// Stop halts the ticker, keeping the remaining seconds.
func (c *Countdown) Stop() {
	c.mu.Lock()
	c.stopLocked()
	c.mu.Unlock()
}

// Running reports whether a ticker goroutine is active.
func (c *Countdown) Running() bool {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()
	if done == nil {
		return false
	}
	select {
	case <-done:
		return false
	default:
		return true
	}
}

// Done returns a channel closed when the current ticker exits. It is nil
// when the countdown was never started.
func (c *Countdown) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

func (c *Countdown) run(ctx context.Context, gen int, step time.Duration, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(step)
	defer ticker.Stop()
	defer c.release(gen)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if c.Tick() <= 0 {
				return
			}
		}
	}
}

func (c *Countdown) release(gen int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen == gen && c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Countdown) stopLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// Clock formats seconds as mm:ss.
func Clock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
