package model

import (
	"context"
	"strings"
	"time"

	"github.com/goliatone/go-formkit/pkg/style"
)

// Kind is the tag of an input descriptor.
type Kind string

const (
	KindText     Kind = "text"
	KindEmail    Kind = "email"
	KindPassword Kind = "password"
	KindNumber   Kind = "number"
	KindSearch   Kind = "search"
	KindURL      Kind = "url"
	KindTel      Kind = "tel"
	KindDropdown Kind = "dropdown"
	KindTextarea Kind = "textarea"
	KindCheckbox Kind = "checkbox"
	KindOTP      Kind = "otp"
	KindPhone    Kind = "phone"
	KindDate     Kind = "date"
	KindFile     Kind = "file"
)

// Kinds lists every supported tag in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindText, KindEmail, KindPassword, KindNumber, KindSearch, KindURL, KindTel,
		KindDropdown, KindTextarea, KindCheckbox, KindOTP, KindPhone, KindDate, KindFile,
	}
}

// ParseKind maps a tag to a Kind. Unknown tags report false.
func ParseKind(tag string) (Kind, bool) {
	normalized := Kind(strings.ToLower(strings.TrimSpace(tag)))
	for _, kind := range Kinds() {
		if kind == normalized {
			return kind, true
		}
	}
	return "", false
}

// Input is an input descriptor. The set of implementations is closed.
type Input interface {
	Kind() Kind
	accept(Visitor) error
	isInput()
}

// Visitor handles every descriptor kind.
type Visitor interface {
	VisitText(*TextInput) error
	VisitEmail(*EmailInput) error
	VisitPassword(*PasswordInput) error
	VisitNumber(*NumberInput) error
	VisitSearch(*SearchInput) error
	VisitURL(*URLInput) error
	VisitTel(*TelInput) error
	VisitDropdown(*DropdownInput) error
	VisitTextarea(*TextareaInput) error
	VisitCheckbox(*CheckboxInput) error
	VisitOTP(*OTPInput) error
	VisitPhone(*PhoneInput) error
	VisitDate(*DateInput) error
	VisitFile(*FileInput) error
}

// Visit dispatches input to v. A nil descriptor is treated as a plain text
// input.
func Visit(input Input, v Visitor) error {
	if input == nil {
		return v.VisitText(&TextInput{})
	}
	return input.accept(v)
}

// KindOf returns the descriptor tag, text for nil.
func KindOf(input Input) Kind {
	if input == nil {
		return KindText
	}
	return input.Kind()
}

// BaseInput carries the options shared by the text-like kinds.
type BaseInput struct {
	Placeholder string `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Disabled    bool   `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	ReadOnly    bool   `json:"readOnly,omitempty" yaml:"readOnly,omitempty"`
	AutoFocus   bool   `json:"autoFocus,omitempty" yaml:"autoFocus,omitempty"`
	ClassName   string `json:"className,omitempty" yaml:"className,omitempty"`
}

// Base exposes the shared options.
func (b *BaseInput) Base() *BaseInput { return b }

// TextInput is a plain single-line text input.
type TextInput struct {
	BaseInput `yaml:",inline"`
}

// EmailInput is a text input typed as email.
type EmailInput struct {
	BaseInput `yaml:",inline"`
}

// PasswordInput is a masked text input with a visibility toggle.
type PasswordInput struct {
	BaseInput  `yaml:",inline"`
	HideToggle bool `json:"hideToggle,omitempty" yaml:"hideToggle,omitempty"`
}

// NumberInput is a numeric input with optional bounds.
type NumberInput struct {
	BaseInput `yaml:",inline"`
	Min       *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max       *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	Step      *float64 `json:"step,omitempty" yaml:"step,omitempty"`
}

// SearchInput is a text input with a search icon and a clear button.
type SearchInput struct {
	BaseInput `yaml:",inline"`
}

// URLInput is a text input typed as url.
type URLInput struct {
	BaseInput `yaml:",inline"`
}

// TelInput is a text input typed as tel.
type TelInput struct {
	BaseInput `yaml:",inline"`
}

// DropdownWidth controls the trigger width of a dropdown.
type DropdownWidth string

const (
	DropdownWidthFull DropdownWidth = "full"
	DropdownWidthFit  DropdownWidth = "fit"
)

// DropdownInput is a single-select list with optional search.
type DropdownInput struct {
	BaseInput         `yaml:",inline"`
	Options           []Option      `json:"options" yaml:"options" validate:"dive"`
	Width             DropdownWidth `json:"width,omitempty" yaml:"width,omitempty" validate:"omitempty,oneof=full fit"`
	EmptyText         string        `json:"emptyText,omitempty" yaml:"emptyText,omitempty"`
	Searchable        bool          `json:"searchable,omitempty" yaml:"searchable,omitempty"`
	SearchPlaceholder string        `json:"searchPlaceholder,omitempty" yaml:"searchPlaceholder,omitempty"`
}

// PlaceholderText returns the trigger text shown with no selection.
func (d *DropdownInput) PlaceholderText() string {
	if d.Placeholder != "" {
		return d.Placeholder
	}
	return "Select an option"
}

// EmptyMessage returns the text shown when the filter matches nothing.
func (d *DropdownInput) EmptyMessage() string {
	if d.EmptyText != "" {
		return d.EmptyText
	}
	return "No results found"
}

// SearchPrompt returns the placeholder of the search field.
func (d *DropdownInput) SearchPrompt() string {
	if d.SearchPlaceholder != "" {
		return d.SearchPlaceholder
	}
	return "Type to search..."
}

// TextareaInput is a multi-line text input.
type TextareaInput struct {
	BaseInput `yaml:",inline"`
	Rows      int    `json:"rows,omitempty" yaml:"rows,omitempty" validate:"gte=0"`
	Cols      int    `json:"cols,omitempty" yaml:"cols,omitempty" validate:"gte=0"`
	Resize    string `json:"resize,omitempty" yaml:"resize,omitempty" validate:"omitempty,oneof=none both horizontal vertical"`
	MaxLength int    `json:"maxLength,omitempty" yaml:"maxLength,omitempty" validate:"gte=0"`
}

// RowCount returns the configured rows, 4 when unset.
func (t *TextareaInput) RowCount() int {
	if t.Rows > 0 {
		return t.Rows
	}
	return 4
}

// CheckboxInput is a boolean toggle rendered outside the field wrapper.
type CheckboxInput struct {
	Label         string                `json:"label,omitempty" yaml:"label,omitempty"`
	Disabled      bool                  `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	ClassName     string                `json:"className,omitempty" yaml:"className,omitempty"`
	Variant       style.CheckboxVariant `json:"variant,omitempty" yaml:"variant,omitempty" validate:"omitempty,oneof=default outlined filled"`
	CheckedIcon   string                `json:"checkedIcon,omitempty" yaml:"checkedIcon,omitempty"`
	UncheckedIcon string                `json:"uncheckedIcon,omitempty" yaml:"uncheckedIcon,omitempty"`
}

// OTPInput is a fixed-length one-time code entry.
type OTPInput struct {
	Length         int    `json:"length,omitempty" yaml:"length,omitempty" validate:"gte=0,lte=12"`
	Resendable     bool   `json:"resendable,omitempty" yaml:"resendable,omitempty"`
	ResendInterval int    `json:"resendInterval,omitempty" yaml:"resendInterval,omitempty" validate:"gte=0"`
	Disabled       bool   `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	AutoFocus      *bool  `json:"autoFocus,omitempty" yaml:"autoFocus,omitempty"`
	ClassName      string `json:"className,omitempty" yaml:"className,omitempty"`

	OnComplete func(code string)               `json:"-" yaml:"-"`
	OnResend   func(ctx context.Context) error `json:"-" yaml:"-"`
}

// SlotCount returns the code length, 6 when unset.
func (o *OTPInput) SlotCount() int {
	if o.Length > 0 {
		return o.Length
	}
	return 6
}

// ResendSeconds returns the countdown interval, 60 when unset.
func (o *OTPInput) ResendSeconds() int {
	if o.ResendInterval > 0 {
		return o.ResendInterval
	}
	return 60
}

// Focused reports whether the first slot takes focus on render.
func (o *OTPInput) Focused() bool {
	return o.AutoFocus == nil || *o.AutoFocus
}

// PhoneData is the split form of a phone value.
type PhoneData struct {
	FullNumber  string `json:"fullNumber"`
	PhoneCode   string `json:"phoneCode"`
	PhoneNumber string `json:"phoneNumber"`
}

// PhoneInput is an international phone number input.
type PhoneInput struct {
	BaseInput          `yaml:",inline"`
	DefaultCountry     string   `json:"defaultCountry,omitempty" yaml:"defaultCountry,omitempty"`
	PreferredCountries []string `json:"preferredCountries,omitempty" yaml:"preferredCountries,omitempty"`

	OnPhoneExtracted func(PhoneData) `json:"-" yaml:"-"`
}

// Country returns the default country code, "us" when unset.
func (p *PhoneInput) Country() string {
	if p.DefaultCountry != "" {
		return strings.ToLower(p.DefaultCountry)
	}
	return "us"
}

// Preferred returns the preferred countries, us/gb/ca when unset.
func (p *PhoneInput) Preferred() []string {
	if len(p.PreferredCountries) > 0 {
		return p.PreferredCountries
	}
	return []string{"us", "gb", "ca"}
}

// DateFormat selects how a committed date is displayed.
type DateFormat string

const (
	DateFormatDate     DateFormat = "date"
	DateFormatDateTime DateFormat = "datetime"
	DateFormatTime     DateFormat = "time"
)

// DateInput is a date field backed by a calendar popover.
type DateInput struct {
	BaseInput        `yaml:",inline"`
	Format           DateFormat    `json:"format,omitempty" yaml:"format,omitempty" validate:"omitempty,oneof=date datetime time"`
	MinDate          *time.Time    `json:"minDate,omitempty" yaml:"minDate,omitempty"`
	MaxDate          *time.Time    `json:"maxDate,omitempty" yaml:"maxDate,omitempty"`
	HighlightedDates []time.Time   `json:"highlightedDates,omitempty" yaml:"highlightedDates,omitempty"`
	FirstDayOfWeek   *time.Weekday `json:"firstDayOfWeek,omitempty" yaml:"firstDayOfWeek,omitempty" validate:"omitempty,gte=0,lte=6"`
}

// DisplayFormat returns the display format, datetime when unset.
func (d *DateInput) DisplayFormat() DateFormat {
	if d.Format != "" {
		return d.Format
	}
	return DateFormatDateTime
}

// WeekStart returns the first day of the week, Monday when unset.
func (d *DateInput) WeekStart() time.Weekday {
	if d.FirstDayOfWeek != nil {
		return *d.FirstDayOfWeek
	}
	return time.Monday
}

// PlaceholderText returns the trigger text shown with no date.
func (d *DateInput) PlaceholderText() string {
	if d.Placeholder != "" {
		return d.Placeholder
	}
	return "Select date"
}

// FileInput is a file picker with a drop zone.
type FileInput struct {
	Label     string `json:"label,omitempty" yaml:"label,omitempty"`
	Icon      string `json:"icon,omitempty" yaml:"icon,omitempty"`
	Accept    string `json:"accept,omitempty" yaml:"accept,omitempty"`
	MaxSize   int64  `json:"maxSize,omitempty" yaml:"maxSize,omitempty" validate:"gte=0"`
	Multiple  bool   `json:"multiple,omitempty" yaml:"multiple,omitempty"`
	Disabled  bool   `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	ClassName string `json:"className,omitempty" yaml:"className,omitempty"`
}

func (*TextInput) Kind() Kind     { return KindText }
func (*EmailInput) Kind() Kind    { return KindEmail }
func (*PasswordInput) Kind() Kind { return KindPassword }
func (*NumberInput) Kind() Kind   { return KindNumber }
func (*SearchInput) Kind() Kind   { return KindSearch }
func (*URLInput) Kind() Kind      { return KindURL }
func (*TelInput) Kind() Kind      { return KindTel }
func (*DropdownInput) Kind() Kind { return KindDropdown }
func (*TextareaInput) Kind() Kind { return KindTextarea }
func (*CheckboxInput) Kind() Kind { return KindCheckbox }
func (*OTPInput) Kind() Kind      { return KindOTP }
func (*PhoneInput) Kind() Kind    { return KindPhone }
func (*DateInput) Kind() Kind     { return KindDate }
func (*FileInput) Kind() Kind     { return KindFile }

func (i *TextInput) accept(v Visitor) error     { return v.VisitText(i) }
func (i *EmailInput) accept(v Visitor) error    { return v.VisitEmail(i) }
func (i *PasswordInput) accept(v Visitor) error { return v.VisitPassword(i) }
func (i *NumberInput) accept(v Visitor) error   { return v.VisitNumber(i) }
func (i *SearchInput) accept(v Visitor) error   { return v.VisitSearch(i) }
func (i *URLInput) accept(v Visitor) error      { return v.VisitURL(i) }
func (i *TelInput) accept(v Visitor) error      { return v.VisitTel(i) }
func (i *DropdownInput) accept(v Visitor) error { return v.VisitDropdown(i) }
func (i *TextareaInput) accept(v Visitor) error { return v.VisitTextarea(i) }
func (i *CheckboxInput) accept(v Visitor) error { return v.VisitCheckbox(i) }
func (i *OTPInput) accept(v Visitor) error      { return v.VisitOTP(i) }
func (i *PhoneInput) accept(v Visitor) error    { return v.VisitPhone(i) }
func (i *DateInput) accept(v Visitor) error     { return v.VisitDate(i) }
func (i *FileInput) accept(v Visitor) error     { return v.VisitFile(i) }

func (*TextInput) isInput()     {}
func (*EmailInput) isInput()    {}
func (*PasswordInput) isInput() {}
func (*NumberInput) isInput()   {}
func (*SearchInput) isInput()   {}
func (*URLInput) isInput()      {}
func (*TelInput) isInput()      {}
func (*DropdownInput) isInput() {}
func (*TextareaInput) isInput() {}
func (*CheckboxInput) isInput() {}
func (*OTPInput) isInput()      {}
func (*PhoneInput) isInput()    {}
func (*DateInput) isInput()     {}
func (*FileInput) isInput()     {}

// New returns an empty descriptor for kind, or a text input for an unknown
// kind.
func New(kind Kind) Input {
	switch kind {
	case KindEmail:
		return &EmailInput{}
	case KindPassword:
		return &PasswordInput{}
	case KindNumber:
		return &NumberInput{}
	case KindSearch:
		return &SearchInput{}
	case KindURL:
		return &URLInput{}
	case KindTel:
		return &TelInput{}
	case KindDropdown:
		return &DropdownInput{}
	case KindTextarea:
		return &TextareaInput{}
	case KindCheckbox:
		return &CheckboxInput{}
	case KindOTP:
		return &OTPInput{}
	case KindPhone:
		return &PhoneInput{}
	case KindDate:
		return &DateInput{}
	case KindFile:
		return &FileInput{}
	default:
		return &TextInput{}
	}
}
