package model

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formkit/pkg/style"
)

type kindRecorder struct {
	seen []Kind
}

func (r *kindRecorder) record(k Kind) error { r.seen = append(r.seen, k); return nil }

func (r *kindRecorder) VisitText(*TextInput) error         { return r.record(KindText) }
func (r *kindRecorder) VisitEmail(*EmailInput) error       { return r.record(KindEmail) }
func (r *kindRecorder) VisitPassword(*PasswordInput) error { return r.record(KindPassword) }
func (r *kindRecorder) VisitNumber(*NumberInput) error     { return r.record(KindNumber) }
func (r *kindRecorder) VisitSearch(*SearchInput) error     { return r.record(KindSearch) }
func (r *kindRecorder) VisitURL(*URLInput) error           { return r.record(KindURL) }
func (r *kindRecorder) VisitTel(*TelInput) error           { return r.record(KindTel) }
func (r *kindRecorder) VisitDropdown(*DropdownInput) error { return r.record(KindDropdown) }
func (r *kindRecorder) VisitTextarea(*TextareaInput) error { return r.record(KindTextarea) }
func (r *kindRecorder) VisitCheckbox(*CheckboxInput) error { return r.record(KindCheckbox) }
func (r *kindRecorder) VisitOTP(*OTPInput) error           { return r.record(KindOTP) }
func (r *kindRecorder) VisitPhone(*PhoneInput) error       { return r.record(KindPhone) }
func (r *kindRecorder) VisitDate(*DateInput) error         { return r.record(KindDate) }
func (r *kindRecorder) VisitFile(*FileInput) error         { return r.record(KindFile) }

func TestVisit_DispatchesEveryKind(t *testing.T) {
	rec := &kindRecorder{}
	for _, kind := range Kinds() {
		if err := Visit(New(kind), rec); err != nil {
			t.Fatalf("visit %s: %v", kind, err)
		}
	}
	if diff := cmp.Diff(Kinds(), rec.seen); diff != "" {
		t.Fatalf("dispatch mismatch (-want +got):\n%s", diff)
	}
}

func TestVisit_NilDescriptorIsText(t *testing.T) {
	rec := &kindRecorder{}
	if err := Visit(nil, rec); err != nil {
		t.Fatalf("visit: %v", err)
	}
	if len(rec.seen) != 1 || rec.seen[0] != KindText {
		t.Fatalf("expected text dispatch, got %v", rec.seen)
	}
	if (Field{}).Kind() != KindText {
		t.Fatalf("expected empty field to report text kind")
	}
}

func TestVisit_FileWithAcceptList(t *testing.T) {
	rec := &kindRecorder{}
	in := &FileInput{Accept: "image/*,.pdf"}
	if err := Visit(in, rec); err != nil {
		t.Fatalf("visit: %v", err)
	}
	if diff := cmp.Diff([]Kind{KindFile}, rec.seen); diff != "" {
		t.Fatalf("dispatch mismatch (-want +got):\n%s", diff)
	}
	if in.Accept != "image/*,.pdf" {
		t.Fatalf("accept list changed: %q", in.Accept)
	}
}

func TestValidation_Status(t *testing.T) {
	cases := []struct {
		name string
		in   Validation
		want style.Status
	}{
		{"default", Validation{}, style.StatusDefault},
		{"success", Validation{SuccessMessage: "ok"}, style.StatusSuccess},
		{"error wins", Validation{Error: "bad", SuccessMessage: "ok"}, style.StatusError},
	}
	for _, tc := range cases {
		if got := tc.in.Status(); got != tc.want {
			t.Fatalf("%s: want %q got %q", tc.name, tc.want, got)
		}
	}

	hidden := false
	if (Validation{Error: "bad", ShowError: &hidden}).ErrorVisible(true) {
		t.Fatalf("explicit showError=false must hide the error")
	}
	if (Validation{SuccessMessage: "ok"}).SuccessVisible(false) {
		t.Fatalf("success hidden unless enabled")
	}
}

func TestLookupOption_FirstMatchWins(t *testing.T) {
	options := []Option{{Key: "a", Value: "Apple"}, {Key: "b", Value: "Banana"}, {Key: "a", Value: "Avocado"}}
	got, ok := LookupOption(options, "a")
	if !ok || got.Value != "Apple" {
		t.Fatalf("expected first match, got %+v", got)
	}
	if diff := cmp.Diff([]string{"a"}, DuplicateKeys(options)); diff != "" {
		t.Fatalf("duplicates mismatch (-want +got):\n%s", diff)
	}
}

func TestKindDefaults(t *testing.T) {
	otp := &OTPInput{}
	if otp.SlotCount() != 6 || otp.ResendSeconds() != 60 || !otp.Focused() {
		t.Fatalf("unexpected otp defaults")
	}
	date := &DateInput{}
	if date.WeekStart() != time.Monday || date.DisplayFormat() != DateFormatDateTime {
		t.Fatalf("unexpected date defaults")
	}
	dropdown := &DropdownInput{}
	if dropdown.PlaceholderText() != "Select an option" || dropdown.EmptyMessage() != "No results found" {
		t.Fatalf("unexpected dropdown defaults")
	}
	if (&TextareaInput{}).RowCount() != 4 {
		t.Fatalf("unexpected textarea rows")
	}
	if diff := cmp.Diff([]string{"us", "gb", "ca"}, (&PhoneInput{}).Preferred()); diff != "" {
		t.Fatalf("phone preferred mismatch: %s", diff)
	}
}

func TestDescriptor_DecodeYAML(t *testing.T) {
	input := `
- type: dropdown
  searchable: true
  placeholder: Pick
  options:
    - {key: a, value: Apple}
- type: otp
  length: 4
- email
- type: colour-wheel
`
	var descriptors []Descriptor
	if err := yaml.Unmarshal([]byte(input), &descriptors); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(descriptors) != 4 {
		t.Fatalf("expected 4 descriptors, got %d", len(descriptors))
	}

	dropdown, ok := descriptors[0].Input.(*DropdownInput)
	if !ok {
		t.Fatalf("expected dropdown, got %T", descriptors[0].Input)
	}
	if !dropdown.Searchable || dropdown.Placeholder != "Pick" || len(dropdown.Options) != 1 {
		t.Fatalf("dropdown not decoded: %+v", dropdown)
	}
	if otp := descriptors[1].Input.(*OTPInput); otp.SlotCount() != 4 {
		t.Fatalf("otp length not decoded: %+v", otp)
	}
	if descriptors[2].Input.Kind() != KindEmail {
		t.Fatalf("scalar tag not decoded: %T", descriptors[2].Input)
	}
	if descriptors[3].Input.Kind() != KindText || descriptors[3].Unknown != "colour-wheel" {
		t.Fatalf("unknown tag should fall back to text: %+v", descriptors[3])
	}
}

func TestDescriptor_JSONRoundTrip(t *testing.T) {
	raw := []byte(`{"type":"number","min":1,"max":5,"placeholder":"Qty"}`)
	var d Descriptor
	if err := json.Unmarshal(raw, &d); err != nil {
		t.Fatalf("decode: %v", err)
	}
	number, ok := d.Input.(*NumberInput)
	if !ok || number.Min == nil || *number.Min != 1 || *number.Max != 5 || number.Placeholder != "Qty" {
		t.Fatalf("number not decoded: %+v", d.Input)
	}

	encoded, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(encoded, &fields); err != nil {
		t.Fatalf("decode encoded: %v", err)
	}
	if fields["type"] != "number" || fields["placeholder"] != "Qty" {
		t.Fatalf("unexpected encoding: %s", encoded)
	}
}
