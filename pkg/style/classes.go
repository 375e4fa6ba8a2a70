package style

import "strings"

const (
	inputBase  = "w-full transition-all duration-200 outline-none disabled:cursor-not-allowed disabled:opacity-50 font-sans"
	labelBase  = "font-medium transition-colors duration-200"
	helperBase = "text-sm mt-1.5 transition-colors duration-200"
	buttonBase = "inline-flex items-center justify-center font-medium transition-all duration-200 outline-none disabled:cursor-not-allowed disabled:opacity-50"
	dayBase    = "flex items-center justify-center w-8 h-8 rounded-full text-sm font-medium transition-colors cursor-pointer"
)

var inputVariantClasses = map[Variant]string{
	VariantDefault:  "border bg-white dark:bg-gray-900 text-gray-900 dark:text-gray-100 placeholder:text-gray-400 dark:placeholder:text-gray-500",
	VariantFilled:   "border-0 bg-gray-100 dark:bg-gray-800 text-gray-900 dark:text-gray-100 hover:bg-gray-200 dark:hover:bg-gray-700",
	VariantOutlined: "border-2 bg-transparent text-gray-900 dark:text-gray-100",
	VariantGhost:    "border-0 bg-transparent hover:bg-gray-50 dark:hover:bg-gray-800/50 text-gray-900 dark:text-gray-100",
	VariantSoft:     "border-0 bg-primary-50 dark:bg-primary-900/20 text-primary-900 dark:text-primary-100",
}

var inputSizeClasses = map[Size]string{
	SizeXS: "text-xs px-2 py-1 h-7",
	SizeSM: "text-sm px-3 py-1.5 h-9",
	SizeMD: "text-base px-4 py-2 h-11",
	SizeLG: "text-lg px-5 py-3 h-13",
	SizeXL: "text-xl px-6 py-4 h-16",
}

var radiusClasses = map[Radius]string{
	RadiusNone: "rounded-none",
	RadiusSM:   "rounded-sm",
	RadiusMD:   "rounded-md",
	RadiusLG:   "rounded-lg",
	RadiusXL:   "rounded-xl",
	Radius2XL:  "rounded-2xl",
	RadiusFull: "rounded-full",
}

var inputStatusClasses = map[Status]string{
	StatusDefault: "border-gray-300 dark:border-gray-700 focus:border-primary-500 focus:ring-2 focus:ring-primary-500/20",
	StatusError:   "border-red-500 dark:border-red-400 focus:border-red-500 focus:ring-2 focus:ring-red-500/20 text-red-900 dark:text-red-100",
	StatusSuccess: "border-green-500 dark:border-green-400 focus:border-green-500 focus:ring-2 focus:ring-green-500/20 text-green-900 dark:text-green-100",
	StatusWarning: "border-yellow-500 dark:border-yellow-400 focus:border-yellow-500 focus:ring-2 focus:ring-yellow-500/20 text-yellow-900 dark:text-yellow-100",
}

var labelSizeClasses = map[Size]string{
	SizeXS: "text-xs mb-1",
	SizeSM: "text-sm mb-1.5",
	SizeMD: "text-sm mb-2",
	SizeLG: "text-base mb-2",
	SizeXL: "text-lg mb-2.5",
}

var textStatusClasses = map[Status]string{
	StatusDefault: "text-gray-700 dark:text-gray-300",
	StatusError:   "text-red-600 dark:text-red-400",
	StatusSuccess: "text-green-600 dark:text-green-400",
	StatusWarning: "text-yellow-600 dark:text-yellow-400",
}

const requiredMarker = "after:content-['*'] after:ml-0.5 after:text-red-500"

// InputClasses returns the control classes for a resolved style and status.
func InputClasses(c Concrete, status Status) string {
	return Join(
		inputBase,
		lookup(inputVariantClasses, c.Variant, VariantDefault),
		lookup(inputSizeClasses, c.Size, SizeMD),
		lookup(radiusClasses, c.Radius, RadiusMD),
		lookup(inputStatusClasses, status, StatusDefault),
		widthClass(c.FullWidth),
	)
}

// LabelClasses returns the label classes for a size and status.
func LabelClasses(size Size, status Status, required bool) string {
	marker := ""
	if required {
		marker = requiredMarker
	}
	return Join(
		labelBase,
		lookup(labelSizeClasses, size, SizeMD),
		lookup(textStatusClasses, status, StatusDefault),
		marker,
	)
}

// HelperClasses returns the classes for the error, success and helper lines.
func HelperClasses(status Status) string {
	text := lookup(textStatusClasses, status, StatusDefault)
	if status == "" || status == StatusDefault {
		text = "text-gray-500 dark:text-gray-400"
	}
	return Join(helperBase, text)
}

// ButtonVariant names the visual treatment of a form button.
type ButtonVariant string

const (
	ButtonPrimary   ButtonVariant = "primary"
	ButtonSecondary ButtonVariant = "secondary"
	ButtonOutline   ButtonVariant = "outline"
	ButtonGhost     ButtonVariant = "ghost"
	ButtonDanger    ButtonVariant = "danger"
)

// ButtonStyle is the resolved look of a button.
type ButtonStyle struct {
	Variant   ButtonVariant
	Size      Size
	Radius    Radius
	FullWidth bool
}

var buttonVariantClasses = map[ButtonVariant]string{
	ButtonPrimary:   "bg-primary-600 text-white hover:bg-primary-700 dark:bg-primary-500 dark:hover:bg-primary-600",
	ButtonSecondary: "bg-gray-600 text-white hover:bg-gray-700 dark:bg-gray-500 dark:hover:bg-gray-600",
	ButtonOutline:   "border-2 border-primary-600 text-primary-600 hover:bg-primary-50 dark:border-primary-400 dark:text-primary-400 dark:hover:bg-primary-900/20",
	ButtonGhost:     "text-primary-600 hover:bg-primary-50 dark:text-primary-400 dark:hover:bg-primary-900/20",
	ButtonDanger:    "bg-red-600 text-white hover:bg-red-700 dark:bg-red-500 dark:hover:bg-red-600",
}

var buttonSizeClasses = map[Size]string{
	SizeXS: "text-xs px-2.5 py-1.5 h-7",
	SizeSM: "text-sm px-3 py-2 h-9",
	SizeMD: "text-base px-4 py-2.5 h-11",
	SizeLG: "text-lg px-6 py-3 h-13",
	SizeXL: "text-xl px-8 py-4 h-16",
}

// ButtonClasses returns the classes for a button style.
func ButtonClasses(b ButtonStyle) string {
	return Join(
		buttonBase,
		lookup(buttonVariantClasses, b.Variant, ButtonPrimary),
		lookup(buttonSizeClasses, b.Size, SizeMD),
		lookup(radiusClasses, b.Radius, RadiusMD),
		widthClass(b.FullWidth),
	)
}

// CheckboxVariant names the checkbox box treatment.
type CheckboxVariant string

const (
	CheckboxDefault  CheckboxVariant = "default"
	CheckboxOutlined CheckboxVariant = "outlined"
	CheckboxFilled   CheckboxVariant = "filled"
)

var checkboxVariantClasses = map[CheckboxVariant]string{
	CheckboxDefault:  "border-gray-300 hover:border-primary-400 dark:border-gray-600 dark:hover:border-primary-500 hover:shadow-lg hover:shadow-primary-500/20 hover:scale-110",
	CheckboxOutlined: "border-primary-500 hover:border-primary-600 hover:shadow-xl hover:shadow-primary-500/30 hover:scale-110 ring-2 ring-primary-100 dark:ring-primary-900/30",
	CheckboxFilled:   "bg-linear-to-br from-gray-100 to-gray-50 dark:from-gray-700 dark:to-gray-800 border-transparent hover:from-gray-200 hover:to-gray-100 dark:hover:from-gray-600 dark:hover:to-gray-700 hover:scale-110 shadow-inner",
}

var checkboxSizeClasses = map[Size]string{
	SizeSM: "w-4 h-4 rounded",
	SizeMD: "w-5 h-5 rounded-md",
	SizeLG: "w-6 h-6 rounded-lg",
}

// CheckboxClasses returns the box and label classes of a checkbox.
func CheckboxClasses(variant CheckboxVariant, size Size, checked, disabled bool) (box, label string) {
	size = Compact(size)

	checkedBox := "bg-white dark:bg-gray-800"
	checkedLabel := "text-gray-700 dark:text-gray-300"
	if checked {
		checkedBox = "bg-linear-to-br from-primary-500 via-primary-600 to-primary-700 border-primary-500 shadow-xl shadow-primary-500/40 scale-110 ring-4 ring-primary-100 dark:ring-primary-900/30"
		checkedLabel = "text-gray-900 dark:text-white font-semibold"
	}

	disabledBox := ""
	disabledLabel := "group-hover:text-primary-600 dark:group-hover:text-primary-400 group-hover:translate-x-0.5"
	if disabled {
		disabledBox = "opacity-40 cursor-not-allowed hover:scale-100 hover:shadow-none grayscale"
		disabledLabel = "opacity-40 cursor-not-allowed"
	}

	box = Join(
		"relative inline-flex items-center justify-center cursor-pointer transition-all duration-300 ease-out border-2 group/checkbox overflow-hidden backdrop-blur-sm",
		lookup(checkboxVariantClasses, variant, CheckboxDefault),
		checkboxSizeClasses[size],
		checkedBox,
		disabledBox,
	)

	labelSize := map[Size]string{SizeSM: "text-sm", SizeMD: "text-base", SizeLG: "text-lg"}[size]
	label = Join(
		"ml-3 cursor-pointer select-none transition-all duration-300 font-medium tracking-tight",
		labelSize,
		disabledLabel,
		checkedLabel,
	)
	return box, label
}

// DayVariant is the visual state of a calendar day cell.
type DayVariant string

const (
	DayDefault     DayVariant = "default"
	DayWeekend     DayVariant = "weekend"
	DaySelected    DayVariant = "selected"
	DayHighlighted DayVariant = "highlighted"
	DayInactive    DayVariant = "inactive"
	DayToday       DayVariant = "today"
	DayDisabled    DayVariant = "disabled"
)

var dayVariantClasses = map[DayVariant]string{
	DayDefault:     "text-gray-700 hover:bg-gray-100 dark:text-gray-300 dark:hover:bg-gray-700",
	DayWeekend:     "text-red-500 hover:bg-gray-100 dark:hover:bg-gray-700",
	DaySelected:    "bg-primary-500 text-white hover:bg-primary-600",
	DayHighlighted: "bg-primary-100 text-gray-700 hover:bg-primary-200 dark:bg-primary-900/30",
	DayInactive:    "text-gray-300 cursor-not-allowed dark:text-gray-600",
	DayToday:       "text-gray-900 font-bold ring-2 ring-primary-500 dark:text-white",
	DayDisabled:    "text-gray-300 cursor-not-allowed hover:bg-transparent dark:text-gray-600",
}

// DayClasses returns the classes of a calendar day cell.
func DayClasses(variant DayVariant) string {
	return Join(dayBase, lookup(dayVariantClasses, variant, DayDefault))
}

// Join merges class lists, dropping empty entries and repeated tokens while
// keeping first-seen order.
func Join(classes ...string) string {
	seen := make(map[string]struct{})
	var out []string
	for _, class := range classes {
		for _, token := range strings.Fields(class) {
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			out = append(out, token)
		}
	}
	return strings.Join(out, " ")
}

func widthClass(full bool) string {
	if full {
		return "w-full"
	}
	return "w-auto"
}

func lookup[K ~string](table map[K]string, key, fallback K) string {
	if class, ok := table[key]; ok {
		return class
	}
	return table[fallback]
}
