// Package popover tracks the open state of floating panels (dropdown lists,
// calendars) and keeps an outside-click subscription only while open.
package popover

import (
	"sort"
	"sync"
)

// Surface delivers outside clicks to subscribers. The returned function
// removes the subscription.
type Surface interface {
	OnOutsideClick(fn func()) (remove func())
}

// Bus is an in-process Surface. Hosts call Click when the pointer lands
// outside every open panel.
type Bus struct {
	mu   sync.Mutex
	next int
	subs map[int]func()
}

// NewBus constructs an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]func())}
}

// OnOutsideClick implements Surface.
func (b *Bus) OnOutsideClick(fn func()) func() {
	if fn == nil {
		return func() {}
	}
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = fn
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
}

// Click dispatches an outside click to every subscriber in subscription
// order. Subscribers may unsubscribe while being called.
func (b *Bus) Click() {
	b.mu.Lock()
	ids := make([]int, 0, len(b.subs))
	for id := range b.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	handlers := make([]func(), 0, len(ids))
	for _, id := range ids {
		handlers = append(handlers, b.subs[id])
	}
	b.mu.Unlock()

	for _, handler := range handlers {
		handler()
	}
}

// Len reports the number of live subscriptions.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Popover is the open/closed state of one panel.
type Popover struct {
	surface Surface
	onClose func()

	open   bool
	remove func()
}

// New constructs a closed popover. onClose runs whenever an open popover
// closes, including through an outside click.
func New(surface Surface, onClose func()) *Popover {
	return &Popover{surface: surface, onClose: onClose}
}

// IsOpen reports whether the panel is shown.
func (p *Popover) IsOpen() bool {
	return p.open
}

// Open shows the panel and subscribes to outside clicks.
func (p *Popover) Open() {
	if p.open {
		return
	}
	p.open = true
	if p.surface != nil {
		p.remove = p.surface.OnOutsideClick(p.Close)
	}
}

// Close hides the panel and drops the subscription.
func (p *Popover) Close() {
	if !p.open {
		return
	}
	p.detach()
	if p.onClose != nil {
		p.onClose()
	}
}

// Toggle flips the open state.
func (p *Popover) Toggle() {
	if p.open {
		p.Close()
		return
	}
	p.Open()
}

// Dispose tears the popover down without running onClose.
func (p *Popover) Dispose() {
	p.detach()
}

func (p *Popover) detach() {
	p.open = false
	if p.remove != nil {
		p.remove()
		p.remove = nil
	}
}
