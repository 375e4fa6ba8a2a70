// Package dropdown implements the interaction state of a searchable
// single-select list: open/close, search filtering and keyboard
// navigation over the filtered options.
package dropdown

import (
	"strings"

	"github.com/goliatone/go-formkit/pkg/binding"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/widgets/popover"
)

// State is the dropdown phase.
type State int

const (
	Closed State = iota
	Browsing
	Searching
)

func (s State) String() string {
	switch s {
	case Browsing:
		return "browsing"
	case Searching:
		return "searching"
	default:
		return "closed"
	}
}

// Key is a navigation key understood while the list is open.
type Key string

const (
	KeyUp     Key = "ArrowUp"
	KeyDown   Key = "ArrowDown"
	KeyEnter  Key = "Enter"
	KeyEscape Key = "Escape"
)

// Option configures a Widget.
type Option func(*Widget)

// WithSurface attaches the outside-click source used while open.
func WithSurface(surface popover.Surface) Option {
	return func(w *Widget) {
		w.surface = surface
	}
}

// WithFormat rewrites search text before filtering.
func WithFormat(format func(string) string) Option {
	return func(w *Widget) {
		w.format = format
	}
}

// Widget is the dropdown state machine of one field.
type Widget struct {
	options    []model.Option
	searchable bool
	disabled   bool
	format     func(string) string
	surface    popover.Surface

	value   *binding.Value[string]
	popover *popover.Popover

	searchOpen  bool
	query       string
	highlighted int
}

// New constructs a closed dropdown over the descriptor's options.
func New(input *model.DropdownInput, value *binding.Value[string], opts ...Option) *Widget {
	if input == nil {
		input = &model.DropdownInput{}
	}
	if value == nil {
		value = binding.NewUncontrolled("", nil)
	}
	w := &Widget{
		options:     input.Options,
		searchable:  input.Searchable,
		disabled:    input.Disabled,
		value:       value,
		highlighted: -1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	w.popover = popover.New(w.surface, w.reset)
	return w
}

// State reports the current phase.
func (w *Widget) State() State {
	switch {
	case !w.popover.IsOpen():
		return Closed
	case w.searchOpen:
		return Searching
	default:
		return Browsing
	}
}

// IsOpen reports whether the list is shown.
func (w *Widget) IsOpen() bool { return w.popover.IsOpen() }

// Query returns the active search text.
func (w *Widget) Query() string { return w.query }

// Highlighted returns the cursor index into Filtered, -1 when unset.
func (w *Widget) Highlighted() int { return w.highlighted }

// Toggle handles a trigger click.
func (w *Widget) Toggle() {
	if w.disabled {
		return
	}
	if w.popover.IsOpen() {
		w.popover.Close()
		return
	}
	w.highlighted = -1
	w.popover.Open()
}

// Close handles an outside click or Escape.
func (w *Widget) Close() {
	w.popover.Close()
}

// Dispose drops the outside-click subscription.
func (w *Widget) Dispose() {
	w.popover.Dispose()
	w.reset()
}

// OpenSearch switches an open, searchable list into search mode.
func (w *Widget) OpenSearch() {
	if !w.searchable || !w.popover.IsOpen() {
		return
	}
	w.searchOpen = true
}

// CloseSearch leaves search mode and clears the query.
func (w *Widget) CloseSearch() {
	if !w.searchOpen {
		return
	}
	w.searchOpen = false
	w.query = ""
	w.highlighted = -1
}

// Search replaces the query. The cursor moves to the first match.
func (w *Widget) Search(text string) {
	if w.State() != Searching {
		return
	}
	if w.format != nil {
		text = w.format(text)
	}
	w.query = text
	if len(w.Filtered()) > 0 {
		w.highlighted = 0
	} else {
		w.highlighted = -1
	}
}

// Filtered returns the options matching the current query.
func (w *Widget) Filtered() []model.Option {
	return Filter(w.options, w.query)
}

// Key handles a navigation key. It is ignored while closed, and arrows and
// Enter are ignored when nothing matches.
func (w *Widget) Key(key Key) {
	if !w.popover.IsOpen() {
		return
	}
	if key == KeyEscape {
		w.Close()
		return
	}

	filtered := w.Filtered()
	n := len(filtered)
	if n == 0 {
		return
	}

	switch key {
	case KeyDown:
		if w.highlighted < n-1 {
			w.highlighted++
		} else {
			w.highlighted = 0
		}
	case KeyUp:
		if w.highlighted > 0 {
			w.highlighted--
		} else {
			w.highlighted = n - 1
		}
	case KeyEnter:
		if w.highlighted >= 0 && w.highlighted < n {
			w.Select(filtered[w.highlighted])
		}
	}
}

// Hover moves the cursor to a filtered index.
func (w *Widget) Hover(index int) {
	if !w.popover.IsOpen() || index < 0 || index >= len(w.Filtered()) {
		return
	}
	w.highlighted = index
}

// Select commits the option key and closes the list.
func (w *Widget) Select(option model.Option) {
	if w.disabled {
		return
	}
	w.value.Set(option.Key)
	w.Close()
}

// Selected returns the option matching the bound value. Duplicate keys
// resolve to the first entry.
func (w *Widget) Selected() (model.Option, bool) {
	current := w.value.Get()
	if current == "" {
		return model.Option{}, false
	}
	return model.LookupOption(w.options, current)
}

func (w *Widget) reset() {
	w.query = ""
	w.searchOpen = false
	w.highlighted = -1
}

// Filter keeps the options whose display value contains query, ignoring
// case. An empty query keeps everything.
func Filter(options []model.Option, query string) []model.Option {
	if query == "" {
		return options
	}
	needle := strings.ToLower(query)
	out := make([]model.Option, 0, len(options))
	for _, option := range options {
		if strings.Contains(strings.ToLower(option.Value), needle) {
			out = append(out, option)
		}
	}
	return out
}
