package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/widgets/calendar"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	confirm      []bool
	textAreas    []string
	passwords    []string
	infoMessages []string
	selects      []SelectConfig
	inputPos     int
	selectPos    int
	confirmPos   int
	textPos      int
	passPos      int
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, _ InputConfig) (string, error) {
	if s.passPos >= len(s.passwords) {
		return "", errors.New("no password scripted")
	}
	val := s.passwords[s.passPos]
	s.passPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selects = append(s.selects, cfg)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func (s *stubDriver) said(fragment string) bool {
	for _, msg := range s.infoMessages {
		if strings.Contains(msg, fragment) {
			return true
		}
	}
	return false
}

func requiredFlag() *bool {
	v := true
	return &v
}

func newTestRenderer(t *testing.T, driver *stubDriver, opts ...Option) *Renderer {
	t.Helper()
	r, err := New(append([]Option{WithPromptDriver(driver)}, opts...)...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func TestRender_TextDropdownCheckbox(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Ada"},
		passwords: []string{"s3cret"},
		textAreas: []string{"Hello there"},
		selectIdx: []int{2},
		confirm:   []bool{true},
	}
	r := newTestRenderer(t, driver)

	fields := []model.Field{
		{Name: "name", Input: &model.TextInput{}},
		{Name: "password", Input: &model.PasswordInput{}},
		{Name: "bio", Input: &model.TextareaInput{MaxLength: 40}},
		{Name: "plan", Input: &model.DropdownInput{Options: []model.Option{
			{Key: "free", Value: "Free"},
			{Key: "pro", Value: "Pro"},
		}}},
		{Name: "terms", Input: &model.CheckboxInput{Label: "I agree"}},
	}

	out, err := r.Render(context.Background(), fields, RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := `{
  "bio": "Hello there",
  "name": "Ada",
  "password": "s3cret",
  "plan": "pro",
  "terms": true
}`
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{noneOption, "Free", "Pro"}, driver.selects[0].Options); diff != "" {
		t.Fatalf("optional dropdown should offer an empty choice (-want +got):\n%s", diff)
	}
	filter := driver.selects[0].Filter
	if filter == nil || !filter("PR", 2) || filter("PR", 1) {
		t.Fatal("filter should match option values ignoring case")
	}
}

func TestRender_NumberValidation(t *testing.T) {
	driver := &stubDriver{inputs: []string{"abc", "-1", "10"}}
	r := newTestRenderer(t, driver)

	min := 0.0
	fields := []model.Field{{
		Name:  "count",
		Input: &model.NumberInput{Min: &min},
		Label: model.Label{Required: requiredFlag()},
	}}
	values, err := r.Collect(context.Background(), fields, RenderOptions{})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if values["count"] != 10.0 {
		t.Fatalf("count = %v", values["count"])
	}
	if !driver.said("Must be a number") || !driver.said("Must be at least 0") {
		t.Fatalf("expected validation messages, got %v", driver.infoMessages)
	}
}

func TestCollect_MaxAttempts(t *testing.T) {
	driver := &stubDriver{inputs: []string{"", ""}}
	r := newTestRenderer(t, driver, WithMaxAttempts(2))

	fields := []model.Field{{Name: "email", Input: &model.EmailInput{}, Label: model.Label{Required: requiredFlag()}}}
	_, err := r.Collect(context.Background(), fields, RenderOptions{})
	if !errors.Is(err, ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
	if !driver.said("This field is required") {
		t.Fatalf("expected required message, got %v", driver.infoMessages)
	}
}

func TestCollect_TextRunsFieldHandlers(t *testing.T) {
	driver := &stubDriver{inputs: []string{"", "ab1"}}
	r := newTestRenderer(t, driver)

	var events []string
	fields := []model.Field{{
		Name:     "code",
		Input:    &model.TextInput{},
		Label:    model.Label{Required: requiredFlag()},
		Format:   strings.ToUpper,
		OnFocus:  func() { events = append(events, "focus") },
		OnChange: func(v any) { events = append(events, "change:"+v.(string)) },
		OnBlur:   func() { events = append(events, "blur") },
	}}
	values, err := r.Collect(context.Background(), fields, RenderOptions{})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if values["code"] != "AB1" {
		t.Fatalf("code = %v", values["code"])
	}
	want := []string{"focus", "change:", "blur", "focus", "change:AB1", "blur"}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestCollect_OTPAndPhone(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"12a", "1234", "07700 900123"},
		selectIdx: []int{1},
	}
	r := newTestRenderer(t, driver)

	fields := []model.Field{
		{Name: "code", Input: &model.OTPInput{Length: 4}},
		{Name: "mobile", Input: &model.PhoneInput{}},
	}
	values, err := r.Collect(context.Background(), fields, RenderOptions{})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if !driver.said("Enter all 4 digits") {
		t.Fatalf("expected otp message, got %v", driver.infoMessages)
	}

	want := map[string]any{
		"code": "1234",
		"mobile": model.PhoneData{
			FullNumber:  "07700900123",
			PhoneCode:   "44",
			PhoneNumber: "07700900123",
		},
	}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if driver.selects[0].Options[1] != "United Kingdom (+44)" || driver.selects[0].DefaultIndex != 0 {
		t.Fatalf("unexpected country prompt %+v", driver.selects[0])
	}
}

func TestCollect_DateNavigatesAndRejectsDisabledDays(t *testing.T) {
	driver := &stubDriver{inputs: []string{">", "25", "12"}}
	now := func() time.Time { return time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC) }
	r := newTestRenderer(t, driver, WithClock(now))

	max := time.Date(2024, time.April, 20, 0, 0, 0, 0, time.UTC)
	fields := []model.Field{{Name: "due", Input: &model.DateInput{MaxDate: &max}}}
	values, err := r.Collect(context.Background(), fields, RenderOptions{})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	want := time.Date(2024, time.April, 12, 0, 0, 0, 0, time.UTC)
	if got, ok := values["due"].(time.Time); !ok || !got.Equal(want) {
		t.Fatalf("due = %v, want %v", values["due"], want)
	}
	if !driver.said("March 2024") || !driver.said("April 2024") {
		t.Fatalf("expected month grids, got %v", driver.infoMessages)
	}
	if !driver.said("Date is out of range") {
		t.Fatalf("expected range message, got %v", driver.infoMessages)
	}
}

func TestCollect_FilesFromFS(t *testing.T) {
	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 32)...)
	files := fstest.MapFS{
		"uploads/notes.txt": {Data: []byte("plain text notes\n")},
		"uploads/photo.png": {Data: png},
	}
	driver := &stubDriver{inputs: []string{"uploads/notes.txt", "uploads/missing.png", "uploads/photo.png"}}
	r := newTestRenderer(t, driver, WithFS(files))

	fields := []model.Field{{
		Name:  "avatar",
		Input: &model.FileInput{Accept: "image/*"},
		Label: model.Label{Required: requiredFlag()},
	}}
	values, err := r.Collect(context.Background(), fields, RenderOptions{})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	want := []model.File{{Name: "photo.png", Size: int64(len(png)), Type: "image/png"}}
	if diff := cmp.Diff(want, values["avatar"]); diff != "" {
		t.Fatalf("files mismatch (-want +got):\n%s", diff)
	}
	if !driver.said("File type not accepted. Allowed: image/*") || !driver.said("Could not read uploads/missing.png") {
		t.Fatalf("expected rejection messages, got %v", driver.infoMessages)
	}
}

func TestCollect_PrefillAndErrors(t *testing.T) {
	driver := &stubDriver{inputs: []string{"ada@example.com"}}
	r := newTestRenderer(t, driver)

	fields := []model.Field{{Name: "email", Input: &model.EmailInput{}, Label: model.Label{Text: "Email"}}}
	_, err := r.Collect(context.Background(), fields, RenderOptions{
		Title:  "Profile",
		Values: map[string]any{"email": "old@example.com", "id": "42"},
		Errors: form.ErrorMapping{
			Fields: map[string][]string{"email": {"Already taken"}},
			Form:   []string{"Please review"},
		},
	})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	for _, fragment := range []string{"Profile", "Please review", "Email: Already taken"} {
		if !driver.said(fragment) {
			t.Fatalf("expected %q in %v", fragment, driver.infoMessages)
		}
	}
}

func TestRender_OutputFormats(t *testing.T) {
	fields := []model.Field{
		{Name: "name", Input: &model.TextInput{}, Label: model.Label{Text: "Name"}},
		{Name: "subscribe", Input: &model.CheckboxInput{}},
	}

	driver := &stubDriver{inputs: []string{"Ada Lovelace"}, confirm: []bool{false}}
	r := newTestRenderer(t, driver, WithOutputFormat(OutputFormatFormURLEncoded))
	out, err := r.Render(context.Background(), fields, RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "name=Ada+Lovelace&subscribe=false" {
		t.Fatalf("form output = %q", out)
	}
	if r.ContentType() != "application/x-www-form-urlencoded" {
		t.Fatalf("content type = %q", r.ContentType())
	}

	driver = &stubDriver{inputs: []string{"Ada"}, confirm: []bool{true}}
	r = newTestRenderer(t, driver,
		WithOutputFormat(OutputFormatPrettyText),
		WithSubmitTransformer(func(values map[string]any) (map[string]any, error) {
			values["source"] = "cli"
			return values, nil
		}),
	)
	out, err = r.Render(context.Background(), fields, RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, line := range []string{"Name: Ada", "subscribe: true", "source: cli"} {
		if !strings.Contains(string(out), line) {
			t.Fatalf("expected %q in:\n%s", line, out)
		}
	}
}

func TestCollect_NoFields(t *testing.T) {
	r := newTestRenderer(t, &stubDriver{})
	if _, err := r.Collect(context.Background(), nil, RenderOptions{}); !errors.Is(err, ErrNoFields) {
		t.Fatalf("expected ErrNoFields, got %v", err)
	}
}

func TestMonthView(t *testing.T) {
	now := func() time.Time { return time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC) }
	cal := calendar.New(now(), calendar.WithClock(now))
	view := MonthView(cal, DefaultTheme())

	lines := strings.Split(view, "\n")
	if strings.TrimSpace(lines[0]) != "February 2024" {
		t.Fatalf("title line = %q", lines[0])
	}
	if !strings.Contains(view, "29") || strings.Contains(view, "30") {
		t.Fatalf("leap February should end on the 29th:\n%s", view)
	}
	// Header plus five weeks: Feb 2024 starts on a Thursday.
	if len(lines) != 7 {
		t.Fatalf("expected 7 lines, got %d:\n%s", len(lines), view)
	}
}
