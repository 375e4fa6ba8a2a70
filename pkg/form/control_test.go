package form_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/form"
)

func TestMemoryControl_HandleRoundTrip(t *testing.T) {
	var observed []string
	control := form.NewMemoryControl(
		map[string]any{"name": "Ada"},
		form.WithChangeObserver(func(name string, value any) {
			observed = append(observed, name+"="+value.(string))
		}),
	)

	handle := form.Handle(control, "name")
	if handle.Value != "Ada" {
		t.Fatalf("handle value = %v", handle.Value)
	}
	handle.Change("Grace")
	handle.Blur()

	if got := control.Value("name"); got != "Grace" {
		t.Fatalf("value = %v", got)
	}
	if !control.Touched("name") {
		t.Fatal("blur should mark the field touched")
	}
	if diff := cmp.Diff([]string{"name=Grace"}, observed); diff != "" {
		t.Fatalf("observer mismatch (-want +got):\n%s", diff)
	}
}

func TestMemoryControl_ValuesIsACopy(t *testing.T) {
	control := form.NewMemoryControl(nil)
	control.Merge(map[string]any{"a": 1, "b": true})

	values := control.Values()
	values["a"] = 2
	if got := control.Value("a"); got != 1 {
		t.Fatalf("Values should not alias internal state, got %v", got)
	}
}

func TestMemoryControl_ConcurrentWrites(t *testing.T) {
	control := form.NewMemoryControl(nil)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			control.SetValue("counter", i)
			_ = control.Value("counter")
			control.Touch("counter")
		}()
	}
	wg.Wait()
	if !control.Touched("counter") {
		t.Fatal("expected touched after concurrent writes")
	}
}

func TestHandle_NilControl(t *testing.T) {
	handle := form.Handle(nil, "x")
	handle.Change("ignored")
	if handle.Name != "x" {
		t.Fatalf("name = %q", handle.Name)
	}
}

func TestFromContext(t *testing.T) {
	if _, ok := form.FromContext(context.Background()); ok {
		t.Fatal("expected no form context")
	}

	var seen *form.Context
	probe := form.NodeFunc(func(ctx context.Context) (string, error) {
		seen = form.MustFromContext(ctx)
		return "", nil
	})
	_, err := form.Form{
		Renderer: newRenderer(t),
		Errors:   form.ErrorMapping{Form: []string{"x"}},
		Children: []form.Node{probe},
	}.Render(context.Background())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if seen == nil || seen.Renderer == nil || len(seen.Errors.Form) != 1 {
		t.Fatalf("unexpected context %+v", seen)
	}
}

func TestMustFromContext_Panics(t *testing.T) {
	defer func() {
		if err, ok := recover().(error); !ok || !errors.Is(err, form.ErrOutsideForm) {
			t.Fatalf("expected ErrOutsideForm panic, got %v", err)
		}
	}()
	_ = form.MustFromContext(context.Background())
}
