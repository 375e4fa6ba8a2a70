package render

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formkit/pkg/binding"
	"github.com/goliatone/go-formkit/pkg/config"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/style"
	"github.com/goliatone/go-formkit/pkg/widgets/calendar"
	"github.com/goliatone/go-formkit/pkg/widgets/checkbox"
	"github.com/goliatone/go-formkit/pkg/widgets/dropdown"
	"github.com/goliatone/go-formkit/pkg/widgets/file"
	"github.com/goliatone/go-formkit/pkg/widgets/otp"
	"github.com/goliatone/go-formkit/pkg/widgets/password"
	"github.com/goliatone/go-formkit/pkg/widgets/phone"
)

const (
	wrapperTemplate = templatePrefix + "wrapper.tmpl"
	compactTemplate = templatePrefix + "compact.tmpl"

	compactErrorClass  = "text-sm text-red-600 dark:text-red-400 mt-1"
	compactHelperClass = "text-xs text-gray-500 dark:text-gray-400 mt-1"
)

// RenderField renders one bound field: the control chosen by its descriptor
// kind inside the wrapper chrome. Checkboxes use the compact layout.
func (r *Renderer) RenderField(ctx context.Context, field model.Field, handle *binding.Handle, states ...State) (string, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return "", err
		}
	}
	if handle == nil {
		handle = &binding.Handle{Name: field.Name}
	}

	settings := r.Settings()
	b := &controlBuilder{
		r:        r,
		field:    field,
		handle:   handle,
		settings: settings,
		state:    collectState(states),
		status:   field.Validation.Status(),
	}
	b.concrete = r.resolveStyle(field.Style, settings)
	if err := model.Visit(field.Input, b); err != nil {
		return "", fmt.Errorf("render: field %q: %w", field.Name, err)
	}

	kind := model.Kind(b.view.Kind)
	component, ok := r.components.Lookup(kind)
	if !ok {
		return "", fmt.Errorf("render: no component for %q", kind)
	}
	var buf bytes.Buffer
	if err := component.render(&buf, b.view, ComponentData{Template: r.templates, ThemePartials: r.themePartials()}); err != nil {
		return "", err
	}

	if kind == model.KindCheckbox {
		return r.RenderPartial(PartialCompact, compactTemplate, b.compact(buf.String()))
	}
	return r.RenderPartial(PartialWrapper, wrapperTemplate, b.wrapper(buf.String()))
}

// resolveStyle applies explicit > preset > settings defaults > fallback. A
// named built-in preset on the field beats the theme preset.
func (r *Renderer) resolveStyle(explicit style.Style, settings config.Settings) style.Concrete {
	preset := r.preset
	if explicit.Preset != "" {
		if builtin, ok := style.LookupPreset(explicit.Preset); ok {
			preset = &builtin
		}
	}
	return style.Resolve(explicit, preset, settings.StyleDefaults(), style.Fallback)
}

type controlBuilder struct {
	r        *Renderer
	field    model.Field
	handle   *binding.Handle
	settings config.Settings
	state    widgetState
	concrete style.Concrete
	status   style.Status
	view     ControlView
}

func (b *controlBuilder) start(kind model.Kind) {
	id := b.state.id
	if id == "" {
		id = b.r.NewID()
	}
	b.view = ControlView{
		ID:     id,
		Name:   b.field.Name,
		Kind:   string(kind),
		Type:   string(kind),
		Value:  valueString(b.handle.Value),
		Size:   string(b.concrete.Size),
		Status: string(b.status),
	}
}

// text fills the options shared by the BaseInput kinds.
func (b *controlBuilder) text(kind model.Kind, base *model.BaseInput) {
	b.start(kind)
	b.view.Placeholder = base.Placeholder
	b.view.Disabled = base.Disabled
	b.view.ReadOnly = base.ReadOnly
	b.view.AutoFocus = base.AutoFocus
	b.view.ClassName = b.inputClass(base.ClassName)
}

func (b *controlBuilder) inputClass(typeClass string) string {
	return style.Join(
		style.InputClasses(b.concrete, b.status),
		b.responsiveSize(),
		typeClass,
		b.settings.Classes().Input,
		"dark:bg-gray-900",
	)
}

// responsiveSize emits the breakpoint size tokens of the settings defaults
// when neither the field nor a preset fixed the size.
func (b *controlBuilder) responsiveSize() string {
	if b.field.Style.Size != "" || b.settings.Defaults == nil {
		return ""
	}
	if b.r.preset != nil && b.r.preset.Size != "" {
		return ""
	}
	return b.settings.Defaults.Size.Classes("")
}

func (b *controlBuilder) attr(name, value string) {
	b.view.Attrs = append(b.view.Attrs, Attr{Name: name, Value: value})
}

func (b *controlBuilder) VisitText(in *model.TextInput) error {
	b.text(model.KindText, &in.BaseInput)
	return nil
}

func (b *controlBuilder) VisitEmail(in *model.EmailInput) error {
	b.text(model.KindEmail, &in.BaseInput)
	return nil
}

func (b *controlBuilder) VisitURL(in *model.URLInput) error {
	b.text(model.KindURL, &in.BaseInput)
	return nil
}

func (b *controlBuilder) VisitTel(in *model.TelInput) error {
	b.text(model.KindTel, &in.BaseInput)
	return nil
}

func (b *controlBuilder) VisitPassword(in *model.PasswordInput) error {
	b.text(model.KindPassword, &in.BaseInput)
	toggle := b.state.password
	if toggle == nil {
		toggle = password.New(in)
	}
	b.view.Type = toggle.InputType()
	b.view.Password = &PasswordView{
		Toggle:  toggle.Enabled(),
		Visible: toggle.Visible(),
		Label:   toggle.Label(),
	}
	if toggle.Enabled() {
		b.view.ClassName = style.Join(b.view.ClassName, "pr-10")
	}
	return nil
}

func (b *controlBuilder) VisitNumber(in *model.NumberInput) error {
	b.text(model.KindNumber, &in.BaseInput)
	for _, bound := range []struct {
		name  string
		value *float64
	}{{"min", in.Min}, {"max", in.Max}, {"step", in.Step}} {
		if bound.value != nil {
			b.attr(bound.name, strconv.FormatFloat(*bound.value, 'f', -1, 64))
		}
	}
	return nil
}

func (b *controlBuilder) VisitSearch(in *model.SearchInput) error {
	b.text(model.KindSearch, &in.BaseInput)
	b.view.ClassName = style.Join(b.view.ClassName, "pl-10")
	b.view.Search = &SearchView{Clear: b.view.Value != "" && !in.Disabled}
	return nil
}

var resizeClasses = map[string]string{
	"none":       "resize-none",
	"both":       "resize",
	"horizontal": "resize-x",
	"vertical":   "resize-y",
}

func (b *controlBuilder) VisitTextarea(in *model.TextareaInput) error {
	b.text(model.KindTextarea, &in.BaseInput)
	b.view.Type = ""
	b.attr("rows", strconv.Itoa(in.RowCount()))
	if in.Cols > 0 {
		b.attr("cols", strconv.Itoa(in.Cols))
	}
	if in.MaxLength > 0 {
		b.attr("maxlength", strconv.Itoa(in.MaxLength))
	}
	b.view.ClassName = style.Join(b.view.ClassName, resizeClasses[in.Resize])
	return nil
}

func (b *controlBuilder) VisitDropdown(in *model.DropdownInput) error {
	b.text(model.KindDropdown, &in.BaseInput)
	b.view.Type = ""
	w := b.state.dropdown
	if w == nil {
		w = dropdown.New(in, binding.FromHandle[string](b.handle), dropdown.WithFormat(b.field.Format))
	}

	selected, hasValue := w.Selected()
	display := in.PlaceholderText()
	if hasValue {
		display = selected.Value
	}
	width := "w-fit"
	if in.Width == "" || in.Width == model.DropdownWidthFull {
		width = "w-full"
	}

	view := &DropdownView{
		Open:              w.IsOpen(),
		Searching:         w.State() == dropdown.Searching,
		Searchable:        in.Searchable,
		Query:             w.Query(),
		SearchPlaceholder: in.SearchPrompt(),
		SearchButton:      "Search options...",
		Display:           display,
		HasValue:          hasValue,
		EmptyText:         in.EmptyMessage(),
		WidthClass:        width,
	}
	for i, option := range w.Filtered() {
		view.Options = append(view.Options, OptionView{
			Key:         option.Key,
			Value:       option.Value,
			Selected:    hasValue && option.Key == selected.Key,
			Highlighted: i == w.Highlighted(),
			Index:       strconv.Itoa(i),
		})
	}
	b.view.Dropdown = view
	b.view.ClassName = style.Join(b.view.ClassName, "flex items-center justify-between gap-3 text-left", width)
	return nil
}

func (b *controlBuilder) VisitCheckbox(in *model.CheckboxInput) error {
	b.start(model.KindCheckbox)
	b.view.Disabled = in.Disabled
	b.view.ClassName = in.ClassName

	w := checkbox.New(in, binding.FromHandle[bool](b.handle))
	box, label := w.Classes(b.concrete.Size)
	b.view.Value = strconv.FormatBool(w.Checked())
	b.view.Checkbox = &CheckboxView{
		Checked:    w.Checked(),
		Label:      in.Label,
		BoxClass:   box,
		LabelClass: label,
		Icon:       SanitizeIcon(w.Icon()),
	}
	return nil
}

var otpSlotSizes = map[style.Size]string{
	style.SizeSM: "w-9 h-10 text-base",
	style.SizeMD: "w-11 h-12 text-lg",
	style.SizeLG: "w-14 h-16 text-2xl",
}

func (b *controlBuilder) VisitOTP(in *model.OTPInput) error {
	b.start(model.KindOTP)
	b.view.Type = "text"
	b.view.Disabled = in.Disabled
	b.view.AutoFocus = in.Focused()
	b.view.ClassName = style.Join("flex gap-2", in.ClassName)

	w := b.state.otp
	if w == nil {
		w = otp.New(in, binding.FromHandle[string](b.handle))
	}
	b.view.Value = w.Value()

	slotClass := style.Join(
		"otp-input text-center font-semibold border",
		otpSlotSizes[style.Compact(b.concrete.Size)],
		style.InputClasses(style.Concrete{Variant: b.concrete.Variant, Size: b.concrete.Size, Radius: b.concrete.Radius}, b.status),
	)
	if in.Disabled {
		slotClass = style.Join(slotClass, "form-input-disabled")
	}
	view := &OTPView{
		Resendable: in.Resendable,
		ResendText: "Resend",
		Prompt:     "Didn't receive code?",
	}
	for i, slot := range w.Slots() {
		view.Slots = append(view.Slots, SlotView{
			Index:     strconv.Itoa(i),
			Value:     strings.TrimSpace(slot),
			Focused:   in.Focused() && i == w.Focused(),
			ClassName: slotClass,
		})
	}
	if countdown := w.Countdown(); countdown != nil {
		view.CanResend = w.CanResend()
		if !countdown.Ready() {
			view.TimerLabel = countdown.Label()
		}
	}
	b.view.OTP = view
	return nil
}

func (b *controlBuilder) VisitPhone(in *model.PhoneInput) error {
	b.text(model.KindPhone, &in.BaseInput)
	b.view.Type = "tel"
	w := b.state.phone
	if w == nil {
		w = phone.New(in, binding.FromHandle[string](b.handle))
	}
	if b.view.Placeholder == "" {
		b.view.Placeholder = w.Placeholder()
	}

	view := &PhoneView{
		Country:    w.Country(),
		InputClass: style.Join(b.view.ClassName, "w-full!"),
	}
	if country, ok := phone.Lookup(w.Country()); ok {
		view.DialCode = "+" + country.DialCode
	}
	for _, country := range phone.Countries(in.Preferred()) {
		view.Countries = append(view.Countries, CountryView{
			ISO2:     country.ISO2,
			DialCode: "+" + country.DialCode,
			Name:     country.Name,
			Selected: country.ISO2 == w.Country(),
		})
	}
	b.view.Phone = view
	return nil
}

func (b *controlBuilder) VisitDate(in *model.DateInput) error {
	b.text(model.KindDate, &in.BaseInput)
	b.view.Type = ""
	p := b.state.picker
	if p == nil {
		p = calendar.NewPicker(in, binding.FromHandle[string](b.handle))
	}
	_, hasValue := p.Value()
	view := &DateView{
		Open:     p.IsOpen(),
		Display:  p.Display(),
		HasValue: hasValue,
	}
	if p.IsOpen() {
		view.Calendar = CalendarFor(p.Calendar())
	}
	b.view.Date = view
	b.view.ClassName = style.Join(b.view.ClassName, "flex items-center justify-between text-left")
	return nil
}

func (b *controlBuilder) VisitFile(in *model.FileInput) error {
	b.start(model.KindFile)
	b.view.Type = "file"
	b.view.Disabled = in.Disabled
	b.view.ClassName = in.ClassName

	sel := b.state.files
	if sel == nil {
		sel = file.New(in, binding.FromHandle[[]model.File](b.handle), file.WithLogger(b.r.log))
	}
	files := sel.Files()
	names := make([]string, 0, len(files))
	view := &FileView{
		Multiple: in.Multiple,
		Dragging: sel.Dragging(),
		Accept:   in.Accept,
		Prompt:   file.Prompt(in),
		Hint:     file.Hint(in),
		Error:    sel.Error(),
		Icon:     SanitizeIcon(in.Icon),
	}
	for i, f := range files {
		names = append(names, f.Name)
		view.Files = append(view.Files, FileItemView{
			Index: strconv.Itoa(i),
			Name:  f.Name,
			Size:  file.FormatSize(f.Size),
		})
	}
	b.view.Value = strings.Join(names, ", ")

	dropzone := "border-gray-300 dark:border-gray-600 hover:border-primary-400"
	switch {
	case in.Disabled:
		dropzone = "border-gray-200 dark:border-gray-700 opacity-50 cursor-not-allowed"
	case sel.Dragging():
		dropzone = "border-primary-500 bg-primary-50 dark:bg-primary-900/20"
	case view.Error != "":
		dropzone = "border-red-500"
	}
	view.DropzoneClass = style.Join("flex flex-col items-center justify-center w-full p-6 border-2 border-dashed rounded-lg cursor-pointer transition-colors", dropzone)
	b.view.File = view
	return nil
}

func (b *controlBuilder) label() LabelView {
	field := b.field
	show := b.settings.ShowLabel()
	if field.Label.Show != nil {
		show = *field.Label.Show
	}
	required := b.settings.LabelRequired()
	if field.Label.Required != nil {
		required = *field.Label.Required
	}
	className := field.Label.ClassName
	if className == "" && b.settings.Label != nil {
		className = b.settings.Label.ClassName
	}
	return LabelView{
		Show: show && field.Label.Text != "",
		Text: field.Label.Text,
		For:  b.view.ID,
		ClassName: style.Join(
			style.LabelClasses(b.concrete.Size, b.status, required),
			className,
			b.settings.Classes().Label,
		),
	}
}

func (b *controlBuilder) messages(view *WrapperView, errorClass, successClass, helperClass string) {
	validation := b.field.Validation
	classes := b.settings.Classes()
	if validation.Error != "" && validation.ErrorVisible(b.settings.ShowError()) {
		view.Error = &MessageView{Text: validation.Error, ClassName: style.Join(errorClass, classes.Error)}
	}
	if validation.SuccessMessage != "" && validation.SuccessVisible(b.settings.ShowSuccess()) {
		view.Success = &MessageView{Text: validation.SuccessMessage, ClassName: style.Join(successClass, classes.Success)}
	}
	if text := b.field.Label.RequiredText; text != "" {
		view.Helper = &MessageView{Text: text, ClassName: style.Join(helperClass, classes.Helper)}
	}
}

func (b *controlBuilder) layoutClasses(base string) string {
	layout := b.field.Layout
	span := ""
	switch {
	case layout.FullWidth != nil && *layout.FullWidth:
		span = "col-span-full"
	case layout.ColSpan > 0:
		span = "col-span-" + strconv.Itoa(layout.ColSpan)
	}
	return style.Join(base, span, layout.ClassName, layout.WrapperClassName)
}

func (b *controlBuilder) wrapper(control string) WrapperView {
	view := WrapperView{
		Kind:      b.view.Kind,
		Name:      b.field.Name,
		ClassName: b.layoutClasses("flex flex-col w-full"),
		Label:     b.label(),
		Control:   control,
	}
	b.messages(&view,
		style.HelperClasses(style.StatusError),
		style.HelperClasses(style.StatusSuccess),
		style.HelperClasses(style.StatusDefault),
	)
	return view
}

func (b *controlBuilder) compact(control string) WrapperView {
	view := WrapperView{
		Kind:      b.view.Kind,
		Name:      b.field.Name,
		ClassName: b.layoutClasses("flex flex-col"),
		Control:   control,
	}
	b.messages(&view, compactErrorClass, style.HelperClasses(style.StatusSuccess), compactHelperClass)
	return view
}

// CalendarFor turns a calendar month into its template view.
func CalendarFor(cal *calendar.Calendar) *CalendarView {
	if cal == nil {
		return nil
	}
	grid := cal.Grid()
	view := &CalendarView{
		Title:  grid.Title,
		Blanks: make([]string, grid.Blanks),
	}
	for _, header := range grid.Headers {
		view.Headers = append(view.Headers, header.Label)
	}
	for _, cell := range grid.Cells {
		view.Days = append(view.Days, DayView{
			Day:       strconv.Itoa(cell.Day),
			Date:      cell.Date.Format("2006-01-02"),
			ClassName: style.DayClasses(cell.Variant),
			Disabled:  cell.Disabled(),
			Variant:   string(cell.Variant),
		})
	}
	return view
}

// RenderCalendar renders a month grid on its own, as served to an open
// picker that navigates between months.
func (r *Renderer) RenderCalendar(cal *calendar.Calendar, fieldID string) (string, error) {
	view := CalendarFor(cal)
	if view == nil {
		return "", fmt.Errorf("render: calendar is nil")
	}
	return r.RenderPartial(PartialCalendar, templatePrefix+"calendar.tmpl", map[string]any{
		"calendar": view,
		"fieldId":  fieldID,
	})
}

func valueString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []model.File:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
