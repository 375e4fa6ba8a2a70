package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/renderers/tui"
	"github.com/goliatone/go-formkit/pkg/schema"
	"github.com/goliatone/go-formkit/pkg/testsupport"
)

const newsletterYAML = `
name: newsletter
title: Newsletter
sections:
  - id: who
    fields:
      - name: name
        input: text
        label: {required: true}
        labelKey: newsletter.name
  - id: prefs
    fields:
      - name: subscribe
        input: {type: checkbox, label: Yes please}
buttons:
  submitText: Join
  submitTextKey: newsletter.join
`

const catalogYAML = `
es:
  newsletter.name: Nombre
  newsletter.join: Unirse
`

const petsOpenAPI = `
openapi: 3.0.3
info: {title: Pets, version: "1"}
paths:
  /pets:
    post:
      operationId: createPet
      requestBody:
        content:
          application/json:
            schema:
              type: object
              required: [name]
              properties:
                name: {type: string}
                species: {type: string, enum: [cat, dog]}
      responses:
        "201": {description: created}
    get:
      operationId: listPets
      responses:
        "200": {description: ok}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func executeCommand(flags *rootFlags, args ...string) (string, error) {
	cmd := newRootCmdWith(flags)
	cmd.SetArgs(args)
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	return out.String(), err
}

func TestRootRejectsBadLogLevel(t *testing.T) {
	_, err := executeCommand(&rootFlags{}, "--log-level", "loud", "calendar")
	if err == nil || !strings.Contains(err.Error(), "loud") {
		t.Fatalf("expected log level error, got %v", err)
	}
}

func TestRootLoadsSettings(t *testing.T) {
	flags := &rootFlags{}
	_, err := executeCommand(flags, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "calendar")
	if err == nil || !strings.Contains(err.Error(), "load settings") {
		t.Fatalf("expected settings error, got %v", err)
	}
}

func TestRenderCommand(t *testing.T) {
	doc := writeFile(t, "newsletter.yaml", newsletterYAML)

	out, err := executeCommand(&rootFlags{}, "render", doc, "--action", "/join")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	testsupport.AssertContains(t, out,
		`<form id="newsletter"`,
		`action="/join"`,
		`name="name"`,
		`name="subscribe"`,
		`>Join</button>`,
	)
}

func TestRenderCommand_SubsetAndLocale(t *testing.T) {
	doc := writeFile(t, "newsletter.yaml", newsletterYAML)
	catalog := writeFile(t, "messages.yaml", catalogYAML)

	out, err := executeCommand(&rootFlags{}, "render", doc,
		"--sections", "who", "--locale", "es-AR", "--catalog", catalog)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	testsupport.AssertContains(t, out, "Nombre", ">Unirse</button>")
	testsupport.AssertNotContains(t, out, `name="subscribe"`)
}

func TestRenderCommand_WritesFile(t *testing.T) {
	doc := writeFile(t, "newsletter.yaml", newsletterYAML)
	target := filepath.Join(t.TempDir(), "form.html")

	out, err := executeCommand(&rootFlags{}, "render", doc, "-o", target)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "" {
		t.Fatalf("expected nothing on stdout, got %q", out)
	}
	html, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	testsupport.AssertContains(t, string(html), `<form id="newsletter"`)
}

type scriptedDriver struct {
	inputs  []string
	confirm []bool
}

func (d *scriptedDriver) Input(context.Context, tui.InputConfig) (string, error) {
	if len(d.inputs) == 0 {
		return "", errors.New("no input scripted")
	}
	v := d.inputs[0]
	d.inputs = d.inputs[1:]
	return v, nil
}

func (d *scriptedDriver) Password(ctx context.Context, cfg tui.InputConfig) (string, error) {
	return d.Input(ctx, cfg)
}

func (d *scriptedDriver) Confirm(context.Context, tui.ConfirmConfig) (bool, error) {
	if len(d.confirm) == 0 {
		return false, errors.New("no confirm scripted")
	}
	v := d.confirm[0]
	d.confirm = d.confirm[1:]
	return v, nil
}

func (d *scriptedDriver) Select(context.Context, tui.SelectConfig) (int, error) {
	return -1, errors.New("no select scripted")
}

func (d *scriptedDriver) TextArea(ctx context.Context, cfg tui.TextAreaConfig) (string, error) {
	return d.Input(ctx, tui.InputConfig{Message: cfg.Message})
}

func (d *scriptedDriver) Info(context.Context, string) error { return nil }

func TestPromptCommand(t *testing.T) {
	doc := writeFile(t, "newsletter.yaml", newsletterYAML)
	flags := &rootFlags{driver: &scriptedDriver{inputs: []string{"Ada"}, confirm: []bool{true}}}

	out, err := executeCommand(flags, "prompt", doc, "--format", "form")
	if err != nil {
		t.Fatalf("prompt: %v", err)
	}
	if got := strings.TrimSpace(out); got != "name=Ada&subscribe=true" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestPromptCommand_RejectsFormat(t *testing.T) {
	doc := writeFile(t, "newsletter.yaml", newsletterYAML)
	_, err := executeCommand(&rootFlags{driver: &scriptedDriver{}}, "prompt", doc, "--format", "xml")
	if err == nil || !strings.Contains(err.Error(), `"xml"`) {
		t.Fatalf("expected format error, got %v", err)
	}
}

func TestRunCalendar(t *testing.T) {
	now := func() time.Time { return time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC) }
	cmd := newCalendarCmd(&rootFlags{})
	out := &bytes.Buffer{}
	cmd.SetOut(out)

	if err := runCalendar(cmd, &calendarOptions{month: "2024-02", weekStart: 1}, now); err != nil {
		t.Fatalf("calendar: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if strings.TrimSpace(lines[0]) != "February 2024" || len(lines) != 7 {
		t.Fatalf("unexpected month view:\n%s", out.String())
	}

	out.Reset()
	if err := runCalendar(cmd, &calendarOptions{selected: "2023-12-24", weekStart: 0}, now); err != nil {
		t.Fatalf("calendar: %v", err)
	}
	if !strings.Contains(out.String(), "December 2023") {
		t.Fatalf("expected the selected month:\n%s", out.String())
	}

	for _, opts := range []calendarOptions{{month: "Feb"}, {min: "soon"}, {weekStart: 9}} {
		if err := runCalendar(cmd, &opts, now); err == nil {
			t.Fatalf("expected error for %+v", opts)
		}
	}
}

func TestOpenAPICommand_ListsOperations(t *testing.T) {
	spec := writeFile(t, "pets.yaml", petsOpenAPI)
	out, err := executeCommand(&rootFlags{}, "openapi", spec)
	if err != nil {
		t.Fatalf("openapi: %v", err)
	}
	if diff := cmp.Diff([]string{"createPet", "listPets"}, strings.Fields(out)); diff != "" {
		t.Fatalf("operations mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenAPICommand_ConvertsOperation(t *testing.T) {
	spec := writeFile(t, "pets.yaml", petsOpenAPI)

	for _, format := range []schema.Format{schema.FormatYAML, schema.FormatJSON} {
		out, err := executeCommand(&rootFlags{}, "openapi", spec, "--operation", "createPet", "--format", string(format))
		if err != nil {
			t.Fatalf("%s: %v", format, err)
		}
		if format == schema.FormatYAML && !strings.Contains(out, "type: dropdown") {
			t.Fatalf("expected block style yaml:\n%s", out)
		}

		doc, err := schema.Parse([]byte(out), format)
		if err != nil {
			t.Fatalf("%s: reparse: %v\n%s", format, err, out)
		}
		if doc.Name != "createPet" {
			t.Fatalf("%s: unexpected name %q", format, doc.Name)
		}
		species, ok := doc.Field("species")
		if !ok || species.Kind() != model.KindDropdown {
			t.Fatalf("%s: species should be a dropdown, got %+v", format, species)
		}
		name, _ := doc.Field("name")
		if name.Label.Required == nil || !*name.Label.Required {
			t.Fatalf("%s: name should be required", format)
		}
	}
}

func TestOpenAPICommand_UnknownOperation(t *testing.T) {
	spec := writeFile(t, "pets.yaml", petsOpenAPI)
	_, err := executeCommand(&rootFlags{}, "openapi", spec, "--operation", "deletePet")
	if !errors.Is(err, schema.ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}
}

func TestNewServerRegistersDocuments(t *testing.T) {
	doc := writeFile(t, "newsletter.yaml", newsletterYAML)
	flags := &rootFlags{}
	if _, err := executeCommand(flags, "calendar"); err != nil {
		t.Fatalf("setup: %v", err)
	}

	srv, err := newServer(flags, &serveOptions{}, []string{doc})
	if err != nil {
		t.Fatalf("newServer: %v", err)
	}
	if diff := cmp.Diff([]string{"newsletter"}, srv.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	if _, err := newServer(flags, &serveOptions{}, []string{filepath.Join(t.TempDir(), "nope.yaml")}); err == nil {
		t.Fatal("expected error for a missing document")
	}
}
