package render

// Template views. Renderers pass these through a JSON round-trip before
// templates see them, so every field carries a json tag and numbers that
// templates print are kept as preformatted strings.

// Attr is an extra attribute on the control element.
type Attr struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ControlView is the data a component template receives as "control".
type ControlView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Type        string `json:"type,omitempty"`
	Value       string `json:"value"`
	Placeholder string `json:"placeholder,omitempty"`
	ClassName   string `json:"className"`
	Size        string `json:"size"`
	Status      string `json:"status"`
	Disabled    bool   `json:"disabled"`
	ReadOnly    bool   `json:"readOnly"`
	AutoFocus   bool   `json:"autoFocus"`
	Attrs       []Attr `json:"attrs,omitempty"`

	Search   *SearchView   `json:"search,omitempty"`
	Password *PasswordView `json:"password,omitempty"`
	Dropdown *DropdownView `json:"dropdown,omitempty"`
	Date     *DateView     `json:"date,omitempty"`
	OTP      *OTPView      `json:"otp,omitempty"`
	Phone    *PhoneView    `json:"phone,omitempty"`
	File     *FileView     `json:"file,omitempty"`
	Checkbox *CheckboxView `json:"checkbox,omitempty"`
}

// SearchView drives the search decorations.
type SearchView struct {
	Clear bool `json:"clear"`
}

// PasswordView drives the visibility toggle.
type PasswordView struct {
	Toggle  bool   `json:"toggle"`
	Visible bool   `json:"visible"`
	Label   string `json:"label"`
}

// OptionView is one dropdown row.
type OptionView struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Selected    bool   `json:"selected"`
	Highlighted bool   `json:"highlighted"`
	Index       string `json:"index"`
}

// DropdownView is the trigger and list of a dropdown.
type DropdownView struct {
	Open              bool         `json:"open"`
	Searching         bool         `json:"searching"`
	Searchable        bool         `json:"searchable"`
	Query             string       `json:"query"`
	SearchPlaceholder string       `json:"searchPlaceholder"`
	SearchButton      string       `json:"searchButton"`
	Display           string       `json:"display"`
	HasValue          bool         `json:"hasValue"`
	EmptyText         string       `json:"emptyText"`
	WidthClass        string       `json:"widthClass"`
	Options           []OptionView `json:"options"`
}

// DayView is one clickable day of the calendar.
type DayView struct {
	Day       string `json:"day"`
	Date      string `json:"date"`
	ClassName string `json:"className"`
	Disabled  bool   `json:"disabled"`
	Variant   string `json:"variant"`
}

// CalendarView is a rendered month.
type CalendarView struct {
	Title   string    `json:"title"`
	Headers []string  `json:"headers"`
	Blanks  []string  `json:"blanks"`
	Days    []DayView `json:"days"`
}

// DateView is the trigger and popover of a date picker.
type DateView struct {
	Open     bool          `json:"open"`
	Display  string        `json:"display"`
	HasValue bool          `json:"hasValue"`
	Calendar *CalendarView `json:"calendar,omitempty"`
}

// SlotView is one OTP digit box.
type SlotView struct {
	Index     string `json:"index"`
	Value     string `json:"value"`
	Focused   bool   `json:"focused"`
	ClassName string `json:"className"`
}

// OTPView is the digit boxes and the resend row.
type OTPView struct {
	Slots      []SlotView `json:"slots"`
	Resendable bool       `json:"resendable"`
	CanResend  bool       `json:"canResend"`
	TimerLabel string     `json:"timerLabel"`
	ResendText string     `json:"resendText"`
	Prompt     string     `json:"prompt"`
}

// CountryView is one entry of the country selector.
type CountryView struct {
	ISO2     string `json:"iso2"`
	DialCode string `json:"dialCode"`
	Name     string `json:"name"`
	Selected bool   `json:"selected"`
}

// PhoneView is the country selector and the number input.
type PhoneView struct {
	Country    string        `json:"country"`
	DialCode   string        `json:"dialCode"`
	Countries  []CountryView `json:"countries"`
	InputClass string        `json:"inputClass"`
}

// FileItemView is one selected file.
type FileItemView struct {
	Index string `json:"index"`
	Name  string `json:"name"`
	Size  string `json:"size"`
}

// FileView is the drop zone and the selected file list.
type FileView struct {
	Multiple      bool           `json:"multiple"`
	Dragging      bool           `json:"dragging"`
	Accept        string         `json:"accept,omitempty"`
	Prompt        string         `json:"prompt"`
	Hint          string         `json:"hint"`
	Error         string         `json:"error,omitempty"`
	Files         []FileItemView `json:"files"`
	Icon          string         `json:"icon,omitempty"`
	DropzoneClass string         `json:"dropzoneClass"`
}

// CheckboxView is the box and its inline label.
type CheckboxView struct {
	Checked    bool   `json:"checked"`
	Label      string `json:"label,omitempty"`
	BoxClass   string `json:"boxClass"`
	LabelClass string `json:"labelClass"`
	Icon       string `json:"icon,omitempty"`
}

// LabelView is the field label.
type LabelView struct {
	Show      bool   `json:"show"`
	Text      string `json:"text"`
	For       string `json:"target"`
	ClassName string `json:"className"`
}

// MessageView is an error, success or helper line.
type MessageView struct {
	Text      string `json:"text"`
	ClassName string `json:"className"`
}

// WrapperView is the data the wrapper and compact partials receive.
type WrapperView struct {
	Kind      string       `json:"kind"`
	Name      string       `json:"name"`
	ClassName string       `json:"className"`
	Label     LabelView    `json:"label"`
	Control   string       `json:"control"`
	Error     *MessageView `json:"error,omitempty"`
	Success   *MessageView `json:"success,omitempty"`
	Helper    *MessageView `json:"helper,omitempty"`
}
