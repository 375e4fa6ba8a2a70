// Package phone splits international phone values into dial code and
// national number.
package phone

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-formkit/pkg/binding"
	"github.com/goliatone/go-formkit/pkg/model"
)

// Country is one entry of the dial code table.
type Country struct {
	ISO2     string
	DialCode string
	Name     string
}

var countries = []Country{
	{ISO2: "au", DialCode: "61", Name: "Australia"},
	{ISO2: "br", DialCode: "55", Name: "Brazil"},
	{ISO2: "ca", DialCode: "1", Name: "Canada"},
	{ISO2: "cn", DialCode: "86", Name: "China"},
	{ISO2: "de", DialCode: "49", Name: "Germany"},
	{ISO2: "es", DialCode: "34", Name: "Spain"},
	{ISO2: "fr", DialCode: "33", Name: "France"},
	{ISO2: "gb", DialCode: "44", Name: "United Kingdom"},
	{ISO2: "in", DialCode: "91", Name: "India"},
	{ISO2: "it", DialCode: "39", Name: "Italy"},
	{ISO2: "jp", DialCode: "81", Name: "Japan"},
	{ISO2: "mx", DialCode: "52", Name: "Mexico"},
	{ISO2: "nl", DialCode: "31", Name: "Netherlands"},
	{ISO2: "us", DialCode: "1", Name: "United States"},
}

// Lookup returns the country registered under an ISO 3166 alpha-2 code.
func Lookup(iso2 string) (Country, bool) {
	iso2 = strings.ToLower(strings.TrimSpace(iso2))
	for _, c := range countries {
		if c.ISO2 == iso2 {
			return c, true
		}
	}
	return Country{}, false
}

// Countries lists the table with the preferred codes first, in the order
// given, followed by the rest sorted by name.
func Countries(preferred []string) []Country {
	out := make([]Country, 0, len(countries))
	seen := make(map[string]bool, len(preferred))
	for _, iso2 := range preferred {
		if c, ok := Lookup(iso2); ok && !seen[c.ISO2] {
			seen[c.ISO2] = true
			out = append(out, c)
		}
	}
	rest := make([]Country, 0, len(countries))
	for _, c := range countries {
		if !seen[c.ISO2] {
			rest = append(rest, c)
		}
	}
	sort.SliceStable(rest, func(i, j int) bool { return rest[i].Name < rest[j].Name })
	return append(out, rest...)
}

// Digits strips everything but ASCII digits.
func Digits(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Split breaks a full number into its parts for country. The national
// number is whatever follows the dial code; a value that does not start
// with the dial code keeps all its digits there.
func Split(value, iso2 string) (model.PhoneData, error) {
	country, ok := Lookup(iso2)
	if !ok {
		return model.PhoneData{}, fmt.Errorf("phone: unknown country %q", iso2)
	}
	digits := Digits(value)
	number := digits
	if strings.HasPrefix(digits, country.DialCode) {
		number = digits[len(country.DialCode):]
	}
	return model.PhoneData{
		FullNumber:  digits,
		PhoneCode:   country.DialCode,
		PhoneNumber: number,
	}, nil
}

// Widget commits phone values and reports their split form.
type Widget struct {
	input   *model.PhoneInput
	value   *binding.Value[string]
	country string
}

// New constructs a widget on the input's default country.
func New(input *model.PhoneInput, value *binding.Value[string]) *Widget {
	if input == nil {
		input = &model.PhoneInput{}
	}
	if value == nil {
		value = binding.NewUncontrolled("", nil)
	}
	return &Widget{input: input, value: value, country: input.Country()}
}

// Country returns the selected country code.
func (w *Widget) Country() string { return w.country }

// Value returns the committed full number.
func (w *Widget) Value() string { return w.value.Get() }

// Placeholder returns the input placeholder.
func (w *Widget) Placeholder() string {
	if w.input.Placeholder != "" {
		return w.input.Placeholder
	}
	return "Enter phone number"
}

// Change commits value under the country iso2, an empty code keeping the
// current one, and reports the split parts.
func (w *Widget) Change(value, iso2 string) (model.PhoneData, error) {
	if w.input.Disabled {
		return model.PhoneData{}, nil
	}
	if iso2 == "" {
		iso2 = w.country
	}
	data, err := Split(value, iso2)
	if err != nil {
		return model.PhoneData{}, err
	}
	w.country = strings.ToLower(iso2)
	w.value.Set(data.FullNumber)
	if w.input.OnPhoneExtracted != nil {
		w.input.OnPhoneExtracted(data)
	}
	return data, nil
}
