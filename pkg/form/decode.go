package form

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-formkit/pkg/binding"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/widgets/calendar"
	"github.com/goliatone/go-formkit/pkg/widgets/checkbox"
	"github.com/goliatone/go-formkit/pkg/widgets/file"
	"github.com/goliatone/go-formkit/pkg/widgets/otp"
	"github.com/goliatone/go-formkit/pkg/widgets/phone"
)

// CountrySuffix names the companion value carrying a phone field's
// country code, as in "mobile_country".
const CountrySuffix = "_country"

const requiredMessage = "This field is required"

// Submission is a decoded form post.
type Submission struct {
	// Values holds one typed value per field: string for the text kinds and
	// dropdown keys, float64 for numbers, bool for checkboxes,
	// model.PhoneData, time.Time and []model.File for the remaining kinds.
	Values map[string]any
	Errors ErrorMapping
	// Uploads keeps the accepted parts of each file field in order.
	Uploads map[string][]*multipart.FileHeader
}

// Valid reports whether decoding recorded no error.
func (s Submission) Valid() bool { return s.Errors.Empty() }

// Decode reads submitted values for fields and applies the same rules the
// widgets enforce interactively. Empty optional fields are left out of
// Values.
func Decode(fields []model.Field, values url.Values, files map[string][]*multipart.FileHeader) Submission {
	out := Submission{Values: make(map[string]any)}
	for _, field := range fields {
		if strings.TrimSpace(field.Name) == "" {
			continue
		}
		d := &decoder{field: field, values: values, files: files, out: &out}
		if err := model.Visit(field.Input, d); err != nil {
			out.Errors.Add(field.Name, err.Error())
		}
	}
	return out
}

type decoder struct {
	field  model.Field
	values url.Values
	files  map[string][]*multipart.FileHeader
	out    *Submission
}

func (d *decoder) raw() string {
	return strings.TrimSpace(d.values.Get(d.field.Name))
}

func (d *decoder) required() bool {
	return d.field.Label.Required != nil && *d.field.Label.Required
}

func (d *decoder) set(value any) {
	d.out.Values[d.field.Name] = value
}

// empty records the required error when needed and reports whether raw is
// blank.
func (d *decoder) empty(raw string) bool {
	if raw != "" {
		return false
	}
	if d.required() {
		d.out.Errors.Add(d.field.Name, requiredMessage)
	}
	return true
}

func (d *decoder) text() error {
	raw := d.raw()
	if d.field.Format != nil {
		raw = d.field.Format(raw)
	}
	if d.empty(raw) {
		return nil
	}
	d.set(raw)
	return nil
}

func (d *decoder) VisitText(*model.TextInput) error         { return d.text() }
func (d *decoder) VisitEmail(*model.EmailInput) error       { return d.text() }
func (d *decoder) VisitPassword(*model.PasswordInput) error { return d.text() }
func (d *decoder) VisitSearch(*model.SearchInput) error     { return d.text() }
func (d *decoder) VisitURL(*model.URLInput) error           { return d.text() }
func (d *decoder) VisitTel(*model.TelInput) error           { return d.text() }

func (d *decoder) VisitTextarea(input *model.TextareaInput) error {
	raw := d.raw()
	if d.field.Format != nil {
		raw = d.field.Format(raw)
	}
	if d.empty(raw) {
		return nil
	}
	if input.MaxLength > 0 && len([]rune(raw)) > input.MaxLength {
		return fmt.Errorf("Must be at most %d characters", input.MaxLength)
	}
	d.set(raw)
	return nil
}

func (d *decoder) VisitNumber(input *model.NumberInput) error {
	raw := d.raw()
	if d.empty(raw) {
		return nil
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return errors.New("Must be a number")
	}
	if input.Min != nil && n < *input.Min {
		return fmt.Errorf("Must be at least %s", strconv.FormatFloat(*input.Min, 'f', -1, 64))
	}
	if input.Max != nil && n > *input.Max {
		return fmt.Errorf("Must be at most %s", strconv.FormatFloat(*input.Max, 'f', -1, 64))
	}
	d.set(n)
	return nil
}

func (d *decoder) VisitDropdown(input *model.DropdownInput) error {
	raw := d.raw()
	if d.empty(raw) {
		return nil
	}
	option, ok := model.LookupOption(input.Options, raw)
	if !ok {
		return errors.New("Select a valid option")
	}
	d.set(option.Key)
	return nil
}

func (d *decoder) VisitCheckbox(*model.CheckboxInput) error {
	checked := checkbox.ParseBool(d.raw())
	if !checked && d.required() {
		d.out.Errors.Add(d.field.Name, requiredMessage)
		return nil
	}
	d.set(checked)
	return nil
}

func (d *decoder) VisitOTP(input *model.OTPInput) error {
	raw := d.raw()
	if d.empty(raw) {
		return nil
	}
	code, err := otp.Sanitize(raw, input.SlotCount())
	if err != nil {
		return fmt.Errorf("Enter all %d digits", input.SlotCount())
	}
	d.set(code)
	return nil
}

func (d *decoder) VisitPhone(input *model.PhoneInput) error {
	raw := d.raw()
	if d.empty(raw) {
		return nil
	}
	country := strings.TrimSpace(d.values.Get(d.field.Name + CountrySuffix))
	if country == "" {
		country = input.Country()
	}
	data, err := phone.Split(raw, country)
	if err != nil {
		return errors.New("Select a valid country")
	}
	if data.PhoneNumber == "" {
		return errors.New("Enter a phone number")
	}
	d.set(data)
	return nil
}

func (d *decoder) VisitDate(input *model.DateInput) error {
	raw := d.raw()
	if d.empty(raw) {
		return nil
	}
	t, ok := calendar.ParseValue(raw)
	if !ok {
		return errors.New("Enter a valid date")
	}
	cal := calendar.New(t,
		calendar.WithLocation(t.Location()),
		calendar.WithMinDate(input.MinDate),
		calendar.WithMaxDate(input.MaxDate),
	)
	if _, ok := cal.Click(t.Day()); !ok {
		return errors.New("Date is out of range")
	}
	d.set(t.UTC().Truncate(time.Second))
	return nil
}

func (d *decoder) VisitFile(input *model.FileInput) error {
	headers := d.files[d.field.Name]
	if len(headers) == 0 {
		if d.required() {
			d.out.Errors.Add(d.field.Name, requiredMessage)
		}
		return nil
	}

	candidates := make([]model.File, 0, len(headers))
	for _, header := range headers {
		meta, err := file.FromHeader(header)
		if err != nil {
			return fmt.Errorf("Could not read %s", header.Filename)
		}
		candidates = append(candidates, meta)
	}

	selector := file.New(input, binding.NewUncontrolled[[]model.File](nil, nil))
	accepted := selector.Select(candidates)
	for _, rejection := range selector.Rejections() {
		d.out.Errors.Add(d.field.Name, rejection.Message)
	}
	if len(accepted) == 0 {
		return nil
	}

	// accepted keeps the order of candidates, and headers[i] belongs to
	// candidates[i], so a single forward walk pairs them even when several
	// parts share a filename.
	uploads := make([]*multipart.FileHeader, 0, len(accepted))
	for i, next := 0, 0; i < len(candidates) && next < len(accepted); i++ {
		if candidates[i] == accepted[next] {
			uploads = append(uploads, headers[i])
			next++
		}
	}
	if d.out.Uploads == nil {
		d.out.Uploads = make(map[string][]*multipart.FileHeader)
	}
	d.out.Uploads[d.field.Name] = uploads
	d.set(accepted)
	return nil
}
