package style

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Breakpoints lists the responsive prefixes in ascending order. The base
// entry carries no prefix.
var Breakpoints = []string{"base", "sm", "md", "lg", "xl", "2xl"}

// Responsive holds one value per breakpoint. Nil entries are absent.
type Responsive[T comparable] struct {
	Base *T `json:"base,omitempty" yaml:"base,omitempty"`
	SM   *T `json:"sm,omitempty" yaml:"sm,omitempty"`
	MD   *T `json:"md,omitempty" yaml:"md,omitempty"`
	LG   *T `json:"lg,omitempty" yaml:"lg,omitempty"`
	XL   *T `json:"xl,omitempty" yaml:"xl,omitempty"`
	XXL  *T `json:"2xl,omitempty" yaml:"2xl,omitempty"`
}

// Fixed returns a responsive value with only the base breakpoint set.
func Fixed[T comparable](value T) Responsive[T] {
	return Responsive[T]{Base: &value}
}

// Resolve returns the base value or def when no base is set. There is no
// viewport on the server, so other breakpoints only surface as classes.
func (r Responsive[T]) Resolve(def T) T {
	if r.Base != nil {
		var zero T
		if *r.Base != zero {
			return *r.Base
		}
	}
	return def
}

// IsZero reports whether no breakpoint carries a value.
func (r Responsive[T]) IsZero() bool {
	return len(r.entries()) == 0
}

type responsiveFields[T comparable] Responsive[T]

// UnmarshalYAML accepts either a scalar (base value) or a breakpoint map.
func (r *Responsive[T]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var value T
		if err := node.Decode(&value); err != nil {
			return fmt.Errorf("style: decode responsive value: %w", err)
		}
		*r = Fixed(value)
		return nil
	}
	var fields responsiveFields[T]
	if err := node.Decode(&fields); err != nil {
		return fmt.Errorf("style: decode responsive map: %w", err)
	}
	*r = Responsive[T](fields)
	return nil
}

// UnmarshalJSON accepts either a scalar (base value) or a breakpoint object.
func (r *Responsive[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*r = Responsive[T]{}
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] != '{' {
		var value T
		if err := json.Unmarshal(trimmed, &value); err != nil {
			return fmt.Errorf("style: decode responsive value: %w", err)
		}
		*r = Fixed(value)
		return nil
	}
	var fields responsiveFields[T]
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return fmt.Errorf("style: decode responsive map: %w", err)
	}
	*r = Responsive[T](fields)
	return nil
}

type breakpointValue[T comparable] struct {
	breakpoint string
	value      T
}

func (r Responsive[T]) entries() []breakpointValue[T] {
	var zero T
	values := []*T{r.Base, r.SM, r.MD, r.LG, r.XL, r.XXL}
	out := make([]breakpointValue[T], 0, len(values))
	for i, value := range values {
		if value == nil || *value == zero {
			continue
		}
		out = append(out, breakpointValue[T]{breakpoint: Breakpoints[i], value: *value})
	}
	return out
}

// Classes renders breakpoint-prefixed classes as "<bp>:<prefix>-<value>".
func (r Responsive[T]) Classes(prefix string) string {
	parts := make([]string, 0, 6)
	for _, entry := range r.entries() {
		class := fmt.Sprint(entry.value)
		if prefix != "" {
			class = prefix + "-" + class
		}
		parts = append(parts, breakpointPrefix(entry.breakpoint)+class)
	}
	return strings.Join(parts, " ")
}

// GridClasses renders grid column classes, defaulting to grid-cols-1.
func GridClasses(columns Responsive[int]) string {
	if columns.IsZero() {
		return "grid-cols-1"
	}
	return columns.Classes("grid-cols")
}

// GapClasses renders arbitrary-value gap classes such as "gap-[1rem]".
func GapClasses(gap Responsive[string]) string {
	parts := make([]string, 0, 6)
	for _, entry := range gap.entries() {
		parts = append(parts, fmt.Sprintf("%sgap-[%s]", breakpointPrefix(entry.breakpoint), entry.value))
	}
	return strings.Join(parts, " ")
}

func breakpointPrefix(breakpoint string) string {
	if breakpoint == "base" {
		return ""
	}
	return breakpoint + ":"
}
