package schema_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/schema"
	"github.com/goliatone/go-formkit/pkg/testsupport"
)

const signupYAML = `
name: signup
title: Create account
titleKey: signup.title
action: /signup
layout:
  columns: {base: 1, md: 2}
sections:
  - id: account
    title: Account
    cols: 2
    fields:
      - name: email
        input: {type: email, placeholder: you@example.com}
        label: {required: true}
        placeholderKey: signup.email.placeholder
        tags: [contact]
      - name: password
        input: password
      - name: plan
        input:
          type: dropdown
          options:
            - {key: free, value: Free}
            - {key: pro, value: Pro}
            - {key: free, value: Free again}
  - id: extras
    fields:
      - name: favourite_colour
        input: colour-wheel
      - name: accept_terms
        input: {type: checkbox, label: I agree}
        labelKey: signup.terms
buttons:
  submitText: Sign up
  cancel: true
`

func loadSignup(t *testing.T) *schema.Document {
	t.Helper()
	files := fstest.MapFS{"forms/signup.yaml": {Data: []byte(signupYAML)}}
	doc, err := schema.NewLoader(schema.WithFS(files)).Load(context.Background(), schema.SourceFromFS("forms/signup.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return doc
}

func TestLoader_YAMLDocument(t *testing.T) {
	doc := loadSignup(t)

	if doc.Location() != "forms/signup.yaml" || doc.Source().Kind() != schema.SourceKindFS {
		t.Fatalf("unexpected source %v", doc.Source())
	}

	var names []string
	var kinds []model.Kind
	for _, field := range doc.Fields() {
		names = append(names, field.Name)
		kinds = append(kinds, field.Kind())
	}
	if diff := cmp.Diff([]string{"email", "password", "plan", "favourite_colour", "accept_terms"}, names); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}
	wantKinds := []model.Kind{model.KindEmail, model.KindPassword, model.KindDropdown, model.KindText, model.KindCheckbox}
	if diff := cmp.Diff(wantKinds, kinds); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}

	wantWarnings := []string{
		`field "plan": option key "free" is duplicated, the first entry wins`,
		`field "favourite_colour": unknown input type "colour-wheel", rendering as text`,
	}
	if diff := cmp.Diff(wantWarnings, doc.Warnings); diff != "" {
		t.Fatalf("warnings mismatch (-want +got):\n%s", diff)
	}

	colour, ok := doc.Field("favourite_colour")
	if !ok || colour.Label.Text != "Favourite Colour" {
		t.Fatalf("expected derived label, got %+v", colour.Label)
	}
	if _, ok := doc.Field("missing"); ok {
		t.Fatal("unexpected field")
	}
}

func TestParse_JSONDocument(t *testing.T) {
	raw := `{"name":"otp","sections":[{"fields":[{"name":"code","input":{"type":"otp","length":4}}]}]}`
	doc, err := schema.Parse([]byte(raw), schema.FormatJSON)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	field, ok := doc.Field("code")
	if !ok {
		t.Fatal("code field missing")
	}
	otp, ok := field.Input.(*model.OTPInput)
	if !ok || otp.SlotCount() != 4 {
		t.Fatalf("unexpected input %#v", field.Input)
	}
	if len(doc.Warnings) != 0 {
		t.Fatalf("unexpected warnings %v", doc.Warnings)
	}
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"empty":         ``,
		"no name":       "sections: [{fields: [{name: a}]}]",
		"no sections":   "name: x",
		"unnamed field": "name: x\nsections: [{fields: [{input: text}]}]",
		"bad cols":      "name: x\nsections: [{cols: 9, fields: [{name: a}]}]",
		"bad option":    "name: x\nsections: [{fields: [{name: a, input: {type: dropdown, options: [{value: A}]}}]}]",
		"bad yaml":      "name: [",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := schema.Parse([]byte(raw), schema.FormatYAML); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoader_Errors(t *testing.T) {
	loader := schema.NewLoader()
	if _, err := loader.Load(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil source")
	}
	if _, err := loader.Load(context.Background(), schema.SourceFromFS("x.yaml")); err == nil {
		t.Fatal("expected error without filesystem")
	}
	if _, err := schema.Load("does-not-exist.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := loader.Load(ctx, schema.SourceFromFile("x.yaml")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}

func TestFormatFor(t *testing.T) {
	if schema.FormatFor("a/b.JSON") != schema.FormatJSON || schema.FormatFor("a.yml") != schema.FormatYAML {
		t.Fatal("unexpected format detection")
	}
}

func TestDocument_BuildRendersForm(t *testing.T) {
	doc := loadSignup(t)
	r, err := render.New(render.WithIDGenerator(func() string { return "fk" }))
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}

	f := doc.Build(schema.BuildOptions{
		Renderer: r,
		Control:  form.NewMemoryControl(map[string]any{"plan": "pro"}),
		Errors:   form.ErrorMapping{Fields: map[string][]string{"email": {"Taken"}}},
		Hidden:   []form.HiddenField{form.CSRFToken("_csrf", "abc")},
	})
	html, err := f.Render(context.Background())
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	testsupport.AssertContains(t, html,
		`<form id="signup"`,
		`action="/signup"`,
		`name="_csrf" value="abc"`,
		`>Create account</h2>`,
		`>Account</h2>`,
		`placeholder="you@example.com"`,
		`Taken`,
		`>Pro</span>`,
		`I agree`,
		`>Sign up</button>`,
		`>Cancel</button>`,
		`md:grid-cols-2`,
	)
	if strings.Count(html, "<section") != 3 {
		t.Fatalf("expected heading plus two sections:\n%s", html)
	}
}

func TestApplySubset(t *testing.T) {
	doc := loadSignup(t)
	schema.ApplySubset(doc, schema.ParseSubset("password", "CONTACT", ""))

	var names []string
	for _, field := range doc.Fields() {
		names = append(names, field.Name)
	}
	if diff := cmp.Diff([]string{"email", "password"}, names); diff != "" {
		t.Fatalf("subset mismatch (-want +got):\n%s", diff)
	}
	if len(doc.Sections) != 1 || doc.Sections[0].ID != "account" {
		t.Fatalf("empty sections should be dropped: %+v", doc.Sections)
	}

	doc = loadSignup(t)
	schema.ApplySubset(doc, schema.ParseSubset("", "", " extras ,extras"))
	if len(doc.Sections) != 1 || doc.Sections[0].ID != "extras" || len(doc.Sections[0].Fields) != 2 {
		t.Fatalf("section subset mismatch: %+v", doc.Sections)
	}

	if !schema.ParseSubset(" , ", "", "").Empty() {
		t.Fatal("blank lists should give an empty subset")
	}
	doc = loadSignup(t)
	schema.ApplySubset(doc, schema.Subset{})
	if len(doc.Fields()) != 5 {
		t.Fatal("empty subset should keep every field")
	}
}

func TestLocalize(t *testing.T) {
	doc := loadSignup(t)
	catalog := schema.Catalog{
		"es": {
			"signup.title":             "Crear cuenta",
			"signup.email.placeholder": "tu@ejemplo.com",
		},
	}

	var missing []string
	schema.Localize(doc, "es-MX", catalog, func(locale, key, fallback string, err error) string {
		missing = append(missing, locale+":"+key)
		if fallback != "" {
			return fallback
		}
		return key
	})

	if doc.Title != "Crear cuenta" {
		t.Fatalf("title = %q", doc.Title)
	}
	email, _ := doc.Field("email")
	if got := email.Input.(*model.EmailInput).Placeholder; got != "tu@ejemplo.com" {
		t.Fatalf("placeholder = %q", got)
	}
	terms, _ := doc.Field("accept_terms")
	if terms.Label.Text != "signup.terms" {
		t.Fatalf("missing label should fall back to key, got %q", terms.Label.Text)
	}
	if diff := cmp.Diff([]string{"es-MX:signup.terms"}, missing); diff != "" {
		t.Fatalf("missing mismatch (-want +got):\n%s", diff)
	}
}

func TestLocalize_WithoutTranslator(t *testing.T) {
	doc := loadSignup(t)
	var gotErr error
	schema.Localize(doc, "en", nil, func(_, _, fallback string, err error) string {
		gotErr = err
		return fallback
	})
	if !errors.Is(gotErr, schema.ErrMissingTranslator) {
		t.Fatalf("expected ErrMissingTranslator, got %v", gotErr)
	}
	if doc.Title != "Create account" {
		t.Fatalf("title should keep its text, got %q", doc.Title)
	}
}

func TestCatalog_Translate(t *testing.T) {
	catalog := schema.Catalog{"en": {"greeting": "Hello %s"}}
	got, err := catalog.Translate("en-GB", "greeting", "Ada")
	if err != nil || got != "Hello Ada" {
		t.Fatalf("Translate = %q, %v", got, err)
	}
	if _, err := catalog.Translate("fr", "greeting"); err == nil {
		t.Fatal("expected error for unknown locale")
	}
}

func TestDefaultLabeler(t *testing.T) {
	cases := map[string]string{
		"first_name":      "First Name",
		"billingZipCode":  "Billing Zip Code",
		"user.id":         "User ID",
		"otp-code":        "OTP Code",
		"address2":        "Address 2",
		"HTTPStatus":      "Http Status",
		"":                "",
		"  spaced name  ": "Spaced Name",
	}
	for in, want := range cases {
		if got := schema.DefaultLabeler(in); got != want {
			t.Errorf("DefaultLabeler(%q) = %q, want %q", in, got, want)
		}
	}
}
