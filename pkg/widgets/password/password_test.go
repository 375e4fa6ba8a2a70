package password

import (
	"testing"

	"github.com/goliatone/go-formkit/pkg/model"
)

func TestFlip(t *testing.T) {
	toggle := New(nil)
	if toggle.InputType() != "password" || toggle.Label() != "Show password" {
		t.Fatalf("expected masked default")
	}
	toggle.Flip()
	if toggle.InputType() != "text" || toggle.Label() != "Hide password" {
		t.Fatalf("expected plain text after flip")
	}
}

func TestFlip_HiddenToggle(t *testing.T) {
	toggle := New(&model.PasswordInput{HideToggle: true})
	if toggle.Enabled() || toggle.Flip() {
		t.Fatalf("hidden toggle should stay masked")
	}
}
