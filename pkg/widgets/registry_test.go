package widgets

import (
	"testing"

	"github.com/goliatone/go-formkit/pkg/model"
)

func TestResolve_ExplicitKindWins(t *testing.T) {
	reg := NewRegistry()
	hint := Hint{Type: "boolean", Explicit: "otp"}

	if got, ok := reg.Resolve(hint); !ok || got != model.KindOTP {
		t.Fatalf("expected explicit kind to win, got %q (ok=%v)", got, ok)
	}
}

func TestResolve_Builtins(t *testing.T) {
	reg := NewRegistry()
	long := uint64(2000)

	cases := []struct {
		name   string
		hint   Hint
		expect model.Kind
	}{
		{name: "boolean checkbox", hint: Hint{Type: "boolean"}, expect: model.KindCheckbox},
		{name: "enum dropdown", hint: Hint{Type: "string", Enum: []string{"a"}}, expect: model.KindDropdown},
		{name: "binary file", hint: Hint{Type: "string", Format: "binary"}, expect: model.KindFile},
		{name: "date time", hint: Hint{Type: "string", Format: "date-time"}, expect: model.KindDate},
		{name: "email format", hint: Hint{Type: "string", Format: "email"}, expect: model.KindEmail},
		{name: "uri format", hint: Hint{Type: "string", Format: "uri"}, expect: model.KindURL},
		{name: "phone by name", hint: Hint{Name: "mobilePhone", Type: "string"}, expect: model.KindPhone},
		{name: "otp by name", hint: Hint{Name: "otpCode", Type: "string"}, expect: model.KindOTP},
		{name: "password format", hint: Hint{Type: "string", Format: "password"}, expect: model.KindPassword},
		{name: "integer number", hint: Hint{Type: "integer"}, expect: model.KindNumber},
		{name: "long text", hint: Hint{Type: "string", MaxLength: &long}, expect: model.KindTextarea},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := reg.Resolve(tc.hint)
			if !ok {
				t.Fatalf("expected resolution for %s", tc.name)
			}
			if got != tc.expect {
				t.Fatalf("resolve %s: want %q, got %q", tc.name, tc.expect, got)
			}
		})
	}
}

func TestResolve_PriorityOverride(t *testing.T) {
	reg := NewRegistry()
	reg.Register(model.KindSearch, 999, func(hint Hint) bool {
		return hint.Type == "boolean"
	})

	got, ok := reg.Resolve(Hint{Type: "boolean"})
	if !ok || got != model.KindSearch {
		t.Fatalf("priority matcher should win, got %q (ok=%v)", got, ok)
	}
}

func TestKind_DefaultsToText(t *testing.T) {
	reg := NewRegistry()
	if got := reg.Kind(Hint{Type: "string"}); got != model.KindText {
		t.Fatalf("expected text fallback, got %q", got)
	}
	var empty *Registry
	if _, ok := empty.Resolve(Hint{Type: "boolean"}); ok {
		t.Fatalf("nil registry should not resolve")
	}
}

func TestRegister_IgnoresUnknownKinds(t *testing.T) {
	reg := &Registry{}
	reg.Register(model.Kind("slider"), 10, func(Hint) bool { return true })
	if _, ok := reg.Resolve(Hint{}); ok {
		t.Fatalf("unknown kind should not register")
	}
}
