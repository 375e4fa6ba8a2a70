package popover

import "testing"

func TestPopover_SubscribesOnlyWhileOpen(t *testing.T) {
	bus := NewBus()
	closed := 0
	p := New(bus, func() { closed++ })

	if bus.Len() != 0 {
		t.Fatalf("closed popover must not subscribe")
	}
	p.Open()
	p.Open()
	if bus.Len() != 1 {
		t.Fatalf("expected one subscription, got %d", bus.Len())
	}

	bus.Click()
	if p.IsOpen() || closed != 1 {
		t.Fatalf("outside click should close: open=%v closed=%d", p.IsOpen(), closed)
	}
	if bus.Len() != 0 {
		t.Fatalf("expected subscription removed, got %d", bus.Len())
	}
}

func TestPopover_RepeatedOpenCloseDoesNotAccumulate(t *testing.T) {
	bus := NewBus()
	p := New(bus, nil)
	for i := 0; i < 10; i++ {
		p.Toggle()
		p.Toggle()
	}
	if bus.Len() != 0 {
		t.Fatalf("handlers accumulated: %d", bus.Len())
	}
}

func TestPopover_DisposeSkipsOnClose(t *testing.T) {
	bus := NewBus()
	closed := false
	p := New(bus, func() { closed = true })
	p.Open()
	p.Dispose()
	if closed || p.IsOpen() || bus.Len() != 0 {
		t.Fatalf("dispose should detach silently: closed=%v open=%v subs=%d", closed, p.IsOpen(), bus.Len())
	}
}

func TestBus_ClickReachesAllOpenPanels(t *testing.T) {
	bus := NewBus()
	a := New(bus, nil)
	b := New(bus, nil)
	a.Open()
	b.Open()
	bus.Click()
	if a.IsOpen() || b.IsOpen() {
		t.Fatalf("expected both panels closed")
	}
}

func TestPopover_NilSurface(t *testing.T) {
	p := New(nil, nil)
	p.Open()
	if !p.IsOpen() {
		t.Fatalf("expected open without a surface")
	}
	p.Close()
}
