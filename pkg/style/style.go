package style

import "strings"

// Variant names the visual treatment of an input control.
type Variant string

const (
	VariantDefault  Variant = "default"
	VariantFilled   Variant = "filled"
	VariantOutlined Variant = "outlined"
	VariantGhost    Variant = "ghost"
	VariantSoft     Variant = "soft"
)

// Size names the control scale. Checkbox and OTP widgets only know sm/md/lg
// and clamp the extremes.
type Size string

const (
	SizeXS Size = "xs"
	SizeSM Size = "sm"
	SizeMD Size = "md"
	SizeLG Size = "lg"
	SizeXL Size = "xl"
)

// Radius names the corner rounding applied to a control.
type Radius string

const (
	RadiusNone Radius = "none"
	RadiusSM   Radius = "sm"
	RadiusMD   Radius = "md"
	RadiusLG   Radius = "lg"
	RadiusXL   Radius = "xl"
	Radius2XL  Radius = "2xl"
	RadiusFull Radius = "full"
)

// Status is the validation state a control is drawn with.
type Status string

const (
	StatusDefault Status = "default"
	StatusError   Status = "error"
	StatusSuccess Status = "success"
	StatusWarning Status = "warning"
)

// Style holds the per-field overrides. Empty values mean "not set".
type Style struct {
	Preset    string  `json:"preset,omitempty" yaml:"preset,omitempty" validate:"omitempty,oneof=modern minimal classic rounded soft"`
	Variant   Variant `json:"variant,omitempty" yaml:"variant,omitempty" validate:"omitempty,oneof=default filled outlined ghost soft"`
	Size      Size    `json:"size,omitempty" yaml:"size,omitempty" validate:"omitempty,oneof=xs sm md lg xl"`
	Radius    Radius  `json:"radius,omitempty" yaml:"radius,omitempty" validate:"omitempty,oneof=none sm md lg xl 2xl full"`
	FullWidth *bool   `json:"fullWidth,omitempty" yaml:"fullWidth,omitempty"`
}

// Preset is a named bundle of style choices sitting between the explicit
// field style and the global defaults.
type Preset struct {
	Variant   Variant
	Size      Size
	Radius    Radius
	FullWidth *bool
}

// Defaults carries the process-wide style defaults.
type Defaults struct {
	Variant   Variant
	Size      Size
	Radius    Radius
	FullWidth *bool
}

// Concrete is a fully resolved style with no absent axis.
type Concrete struct {
	Variant   Variant
	Size      Size
	Radius    Radius
	FullWidth bool
}

// Fallback is the hard-coded last resort of the precedence chain.
var Fallback = Concrete{
	Variant:   VariantDefault,
	Size:      SizeMD,
	Radius:    RadiusMD,
	FullWidth: true,
}

var presets = map[string]Preset{
	"modern":  {Variant: VariantFilled, Radius: RadiusLG, Size: SizeLG},
	"minimal": {Variant: VariantGhost, Radius: RadiusNone, Size: SizeMD},
	"classic": {Variant: VariantOutlined, Radius: RadiusSM, Size: SizeMD},
	"rounded": {Variant: VariantDefault, Radius: RadiusFull, Size: SizeMD},
	"soft":    {Variant: VariantSoft, Radius: RadiusXL, Size: SizeMD},
}

// LookupPreset returns the built-in preset registered under name.
func LookupPreset(name string) (Preset, bool) {
	preset, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	return preset, ok
}

// PresetNames lists the built-in preset identifiers.
func PresetNames() []string {
	return []string{"classic", "minimal", "modern", "rounded", "soft"}
}

// Resolve walks explicit > preset > defaults > fallback independently for
// every axis. Nil preset or defaults count as absent.
func Resolve(explicit Style, preset *Preset, defaults *Defaults, fallback Concrete) Concrete {
	if preset == nil {
		preset = &Preset{}
	}
	if defaults == nil {
		defaults = &Defaults{}
	}

	return Concrete{
		Variant:   firstNonEmpty(explicit.Variant, preset.Variant, defaults.Variant, fallback.Variant),
		Size:      firstNonEmpty(explicit.Size, preset.Size, defaults.Size, fallback.Size),
		Radius:    firstNonEmpty(explicit.Radius, preset.Radius, defaults.Radius, fallback.Radius),
		FullWidth: firstBool(fallback.FullWidth, explicit.FullWidth, preset.FullWidth, defaults.FullWidth),
	}
}

// ResolveField resolves a field style, looking up its named preset among the
// built-ins when no preset is supplied by the caller.
func ResolveField(explicit Style, preset *Preset, defaults *Defaults) Concrete {
	if preset == nil && explicit.Preset != "" {
		if builtin, ok := LookupPreset(explicit.Preset); ok {
			preset = &builtin
		}
	}
	return Resolve(explicit, preset, defaults, Fallback)
}

// Compact clamps a size to the sm/md/lg scale used by compact widgets.
func Compact(size Size) Size {
	switch size {
	case SizeXS, SizeSM:
		return SizeSM
	case SizeLG, SizeXL:
		return SizeLG
	default:
		return SizeMD
	}
}

// Bool returns a pointer to v, handy for the optional boolean axes.
func Bool(v bool) *bool {
	return &v
}

func firstNonEmpty[T ~string](values ...T) T {
	for _, value := range values {
		if strings.TrimSpace(string(value)) != "" {
			return value
		}
	}
	var zero T
	return zero
}

func firstBool(fallback bool, values ...*bool) bool {
	for _, value := range values {
		if value != nil {
			return *value
		}
	}
	return fallback
}
