// Package widgets maps schema hints to input kinds. The per-kind widget
// state machines live in the sub-packages.
package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formkit/pkg/model"
)

// Hint is what a schema loader knows about a property before it picks a
// kind for it.
type Hint struct {
	Name       string
	Type       string
	Format     string
	Enum       []string
	MaxLength  *uint64
	Explicit   string
	Extensions map[string]any
}

// Matcher decides whether a kind should handle the hint.
type Matcher func(hint Hint) bool

type rule struct {
	kind     model.Kind
	priority int
	match    Matcher
	order    int
}

// Registry selects the input kind of a property from registered matchers.
// Higher priority wins; ties fall back to registration order. An explicit
// kind on the hint is honoured before any matcher runs.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in matchers.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a matcher for kind at priority.
func (r *Registry) Register(kind model.Kind, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	if _, ok := model.ParseKind(string(kind)); !ok {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		kind:     kind,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the kind for hint. It reports false when nothing matched;
// callers then fall back to text.
func (r *Registry) Resolve(hint Hint) (model.Kind, bool) {
	if kind, ok := model.ParseKind(strings.TrimSpace(hint.Explicit)); ok {
		return kind, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return "", false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(hint) {
			return entry.kind, true
		}
	}
	return "", false
}

// Kind resolves hint, defaulting to text.
func (r *Registry) Kind(hint Hint) model.Kind {
	if kind, ok := r.Resolve(hint); ok {
		return kind
	}
	return model.KindText
}

func (r *Registry) registerBuiltins() {
	r.Register(model.KindCheckbox, 90, func(hint Hint) bool {
		return hint.Type == "boolean"
	})

	r.Register(model.KindDropdown, 80, func(hint Hint) bool {
		return len(hint.Enum) > 0
	})

	r.Register(model.KindFile, 75, func(hint Hint) bool {
		return hint.Type == "string" && (formatIs(hint, "binary") || formatIs(hint, "byte"))
	})

	r.Register(model.KindDate, 70, func(hint Hint) bool {
		return hint.Type == "string" && (formatIs(hint, "date") || formatIs(hint, "date-time") || formatIs(hint, "time"))
	})

	r.Register(model.KindOTP, 65, func(hint Hint) bool {
		return formatIs(hint, "otp") || nameHas(hint, "otp")
	})

	r.Register(model.KindEmail, 60, func(hint Hint) bool {
		return formatIs(hint, "email") || formatIs(hint, "idn-email")
	})

	r.Register(model.KindURL, 60, func(hint Hint) bool {
		return formatIs(hint, "uri") || formatIs(hint, "url") || formatIs(hint, "iri")
	})

	r.Register(model.KindPhone, 60, func(hint Hint) bool {
		return formatIs(hint, "phone") || formatIs(hint, "tel") || nameHas(hint, "phone")
	})

	r.Register(model.KindPassword, 60, func(hint Hint) bool {
		return formatIs(hint, "password") || nameHas(hint, "password")
	})

	r.Register(model.KindNumber, 50, func(hint Hint) bool {
		return hint.Type == "integer" || hint.Type == "number"
	})

	r.Register(model.KindSearch, 40, func(hint Hint) bool {
		return formatIs(hint, "search")
	})

	r.Register(model.KindTextarea, 30, func(hint Hint) bool {
		if hint.Type != "string" {
			return false
		}
		if formatIs(hint, "textarea") || formatIs(hint, "markdown") {
			return true
		}
		return hint.MaxLength != nil && *hint.MaxLength > 255
	})
}

func formatIs(hint Hint, format string) bool {
	return strings.EqualFold(strings.TrimSpace(hint.Format), format)
}

func nameHas(hint Hint, fragment string) bool {
	return strings.Contains(strings.ToLower(hint.Name), fragment)
}
