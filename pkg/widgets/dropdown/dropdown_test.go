package dropdown

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/binding"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/widgets/popover"
)

func fruit() *model.DropdownInput {
	return &model.DropdownInput{
		Searchable: true,
		Options: []model.Option{
			{Key: "a", Value: "Apple"},
			{Key: "b", Value: "Banana"},
			{Key: "c", Value: "Cherry"},
		},
	}
}

func TestSearchAndSelect_EmitsKey(t *testing.T) {
	var emitted []string
	value := binding.NewUncontrolled("", func(v string) { emitted = append(emitted, v) })
	w := New(&model.DropdownInput{
		Searchable: true,
		Options:    []model.Option{{Key: "a", Value: "Apple"}, {Key: "b", Value: "Banana"}},
	}, value)

	w.Toggle()
	w.OpenSearch()
	w.Search("ap")

	want := []model.Option{{Key: "a", Value: "Apple"}}
	if diff := cmp.Diff(want, w.Filtered()); diff != "" {
		t.Fatalf("filtered mismatch (-want +got):\n%s", diff)
	}
	if w.Highlighted() != 0 {
		t.Fatalf("expected cursor reset to 0, got %d", w.Highlighted())
	}

	w.Select(w.Filtered()[0])
	if diff := cmp.Diff([]string{"a"}, emitted); diff != "" {
		t.Fatalf("emitted mismatch (-want +got):\n%s", diff)
	}
	if w.State() != Closed || w.Query() != "" {
		t.Fatalf("expected closed with cleared query, got %s %q", w.State(), w.Query())
	}
	if selected, ok := w.Selected(); !ok || selected.Value != "Apple" {
		t.Fatalf("selected lookup failed: %+v", selected)
	}
}

func TestKey_WrapsAtBothEnds(t *testing.T) {
	w := New(fruit(), nil)
	w.Toggle()

	w.Key(KeyDown)
	if w.Highlighted() != 0 {
		t.Fatalf("down from unset should land on 0, got %d", w.Highlighted())
	}
	w.Key(KeyUp)
	if w.Highlighted() != 2 {
		t.Fatalf("up from 0 should wrap to last, got %d", w.Highlighted())
	}
	w.Key(KeyDown)
	if w.Highlighted() != 0 {
		t.Fatalf("down from last should wrap to 0, got %d", w.Highlighted())
	}
}

func TestKey_EnterCommitsHighlighted(t *testing.T) {
	value := binding.NewUncontrolled("", nil)
	w := New(fruit(), value)
	w.Toggle()
	w.Key(KeyDown)
	w.Key(KeyDown)
	w.Key(KeyEnter)
	if value.Get() != "b" {
		t.Fatalf("expected b committed, got %q", value.Get())
	}
	if w.IsOpen() {
		t.Fatalf("expected list closed after enter")
	}
}

func TestKey_EmptyFilterIsNoop(t *testing.T) {
	value := binding.NewUncontrolled("", nil)
	w := New(fruit(), value)
	w.Toggle()
	w.OpenSearch()
	w.Search("zzz")

	if w.Highlighted() != -1 {
		t.Fatalf("expected no cursor on empty list, got %d", w.Highlighted())
	}
	w.Key(KeyDown)
	w.Key(KeyUp)
	w.Key(KeyEnter)
	if w.Highlighted() != -1 || value.Get() != "" || !w.IsOpen() {
		t.Fatalf("navigation on empty list must be a no-op")
	}
}

func TestKey_IgnoredWhileClosed(t *testing.T) {
	w := New(fruit(), nil)
	w.Key(KeyDown)
	if w.Highlighted() != -1 {
		t.Fatalf("closed list must ignore keys")
	}
}

func TestEscapeAndOutsideClickClose(t *testing.T) {
	bus := popover.NewBus()
	w := New(fruit(), nil, WithSurface(bus))

	w.Toggle()
	w.OpenSearch()
	w.Search("an")
	w.Key(KeyEscape)
	if w.State() != Closed || w.Query() != "" {
		t.Fatalf("escape should close and clear, got %s %q", w.State(), w.Query())
	}
	if bus.Len() != 0 {
		t.Fatalf("listener must be removed on close")
	}

	w.Toggle()
	if bus.Len() != 1 {
		t.Fatalf("listener must attach while open")
	}
	bus.Click()
	if w.IsOpen() || bus.Len() != 0 {
		t.Fatalf("outside click should close and detach")
	}
}

func TestDisabledAndNonSearchable(t *testing.T) {
	input := fruit()
	input.Disabled = true
	w := New(input, nil)
	w.Toggle()
	if w.IsOpen() {
		t.Fatalf("disabled dropdown must not open")
	}

	plain := fruit()
	plain.Searchable = false
	w = New(plain, nil)
	w.Toggle()
	w.OpenSearch()
	if w.State() != Browsing {
		t.Fatalf("non-searchable dropdown must stay browsing, got %s", w.State())
	}
	w.Search("apple")
	if len(w.Filtered()) != 3 {
		t.Fatalf("search outside search mode must not filter")
	}
}

func TestSearch_AppliesFormat(t *testing.T) {
	w := New(fruit(), nil, WithFormat(strings.TrimSpace))
	w.Toggle()
	w.OpenSearch()
	w.Search("  CHER ")
	if w.Query() != "CHER" || len(w.Filtered()) != 1 {
		t.Fatalf("format not applied: %q %v", w.Query(), w.Filtered())
	}
	w.CloseSearch()
	if w.State() != Browsing || w.Query() != "" {
		t.Fatalf("close search should clear the query")
	}
}

func TestHover_BoundsChecked(t *testing.T) {
	w := New(fruit(), nil)
	w.Toggle()
	w.Hover(1)
	w.Hover(7)
	if w.Highlighted() != 1 {
		t.Fatalf("expected hover to keep in-range index, got %d", w.Highlighted())
	}
}

func TestSelected_DuplicateKeysFirstWins(t *testing.T) {
	value := binding.NewUncontrolled("x", nil)
	w := New(&model.DropdownInput{Options: []model.Option{{Key: "x", Value: "First"}, {Key: "x", Value: "Second"}}}, value)
	got, ok := w.Selected()
	if !ok || got.Value != "First" {
		t.Fatalf("expected first duplicate, got %+v", got)
	}
}
