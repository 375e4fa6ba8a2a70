package style

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	theme "github.com/goliatone/go-theme"
)

func TestResolve_ExplicitBeatsPresetAndDefaults(t *testing.T) {
	got := Resolve(
		Style{Size: SizeLG},
		&Preset{Size: SizeSM},
		&Defaults{Size: SizeMD},
		Fallback,
	)
	if got.Size != SizeLG {
		t.Fatalf("expected explicit size lg, got %q", got.Size)
	}
}

func TestResolve_AxesResolveIndependently(t *testing.T) {
	cases := []struct {
		name     string
		explicit Style
		preset   *Preset
		defaults *Defaults
		want     Concrete
	}{
		{
			name: "all absent",
			want: Fallback,
		},
		{
			name:     "defaults only",
			defaults: &Defaults{Variant: VariantGhost, FullWidth: Bool(false)},
			want:     Concrete{Variant: VariantGhost, Size: SizeMD, Radius: RadiusMD, FullWidth: false},
		},
		{
			name:     "mixed levels",
			explicit: Style{Radius: RadiusNone},
			preset:   &Preset{Variant: VariantFilled},
			defaults: &Defaults{Size: SizeXL, Variant: VariantGhost},
			want:     Concrete{Variant: VariantFilled, Size: SizeXL, Radius: RadiusNone, FullWidth: true},
		},
		{
			name:     "explicit full width false wins",
			explicit: Style{FullWidth: Bool(false)},
			defaults: &Defaults{FullWidth: Bool(true)},
			want:     Concrete{Variant: VariantDefault, Size: SizeMD, Radius: RadiusMD, FullWidth: false},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Resolve(tc.explicit, tc.preset, tc.defaults, Fallback)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("resolve mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveField_UsesNamedPreset(t *testing.T) {
	got := ResolveField(Style{Preset: "modern"}, nil, &Defaults{Size: SizeSM})
	want := Concrete{Variant: VariantFilled, Size: SizeLG, Radius: RadiusLG, FullWidth: true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("preset mismatch (-want +got):\n%s", diff)
	}
}

func TestLookupPreset_Builtins(t *testing.T) {
	want := map[string]Preset{
		"modern":  {Variant: VariantFilled, Radius: RadiusLG, Size: SizeLG},
		"minimal": {Variant: VariantGhost, Radius: RadiusNone, Size: SizeMD},
		"classic": {Variant: VariantOutlined, Radius: RadiusSM, Size: SizeMD},
		"rounded": {Variant: VariantDefault, Radius: RadiusFull, Size: SizeMD},
		"soft":    {Variant: VariantSoft, Radius: RadiusXL, Size: SizeMD},
	}
	for _, name := range PresetNames() {
		got, ok := LookupPreset(name)
		if !ok {
			t.Fatalf("preset %q missing", name)
		}
		if diff := cmp.Diff(want[name], got); diff != "" {
			t.Fatalf("preset %q mismatch (-want +got):\n%s", name, diff)
		}
	}
	if _, ok := LookupPreset("unknown"); ok {
		t.Fatalf("expected unknown preset to be absent")
	}
}

func TestJoin_DropsEmptyAndDuplicates(t *testing.T) {
	got := Join("w-full  px-4", "", "px-4 mt-2", "  ", "w-full custom")
	if got != "w-full px-4 mt-2 custom" {
		t.Fatalf("unexpected join result %q", got)
	}
}

func TestInputClasses_StatusAndWidth(t *testing.T) {
	classes := InputClasses(Concrete{Variant: VariantOutlined, Size: SizeSM, Radius: RadiusFull}, StatusError)
	for _, token := range []string{"border-2", "h-9", "rounded-full", "border-red-500", "w-auto"} {
		if !strings.Contains(" "+classes+" ", " "+token+" ") {
			t.Fatalf("expected %q in %q", token, classes)
		}
	}
}

func TestLabelClasses_RequiredMarker(t *testing.T) {
	if got := LabelClasses(SizeMD, StatusDefault, true); !strings.Contains(got, "after:content-['*']") {
		t.Fatalf("expected required marker, got %q", got)
	}
	if got := LabelClasses(SizeMD, StatusDefault, false); strings.Contains(got, "after:content") {
		t.Fatalf("unexpected required marker, got %q", got)
	}
}

func TestCheckboxClasses_ClampsSize(t *testing.T) {
	box, label := CheckboxClasses(CheckboxDefault, SizeXL, true, false)
	if !strings.Contains(box, "w-6 h-6") {
		t.Fatalf("expected lg box size, got %q", box)
	}
	if !strings.Contains(label, "text-lg") || !strings.Contains(label, "font-semibold") {
		t.Fatalf("unexpected label classes %q", label)
	}
}

func TestResponsive_Classes(t *testing.T) {
	cols := Responsive[int]{Base: ptr(1), MD: ptr(2), XXL: ptr(4)}
	if got := GridClasses(cols); got != "grid-cols-1 md:grid-cols-2 2xl:grid-cols-4" {
		t.Fatalf("grid classes: %q", got)
	}
	if got := GridClasses(Responsive[int]{}); got != "grid-cols-1" {
		t.Fatalf("empty grid classes: %q", got)
	}
	gap := Responsive[string]{Base: ptr("1rem"), LG: ptr("2rem")}
	if got := GapClasses(gap); got != "gap-[1rem] lg:gap-[2rem]" {
		t.Fatalf("gap classes: %q", got)
	}
	if got := Fixed(SizeLG).Resolve(SizeMD); got != SizeLG {
		t.Fatalf("resolve base: %q", got)
	}
	if got := (Responsive[Size]{LG: ptr(SizeXL)}).Resolve(SizeMD); got != SizeMD {
		t.Fatalf("resolve default: %q", got)
	}
}

func TestResponsive_DecodesScalarAndMap(t *testing.T) {
	var doc struct {
		Size    Responsive[Size] `yaml:"size"`
		Columns Responsive[int]  `yaml:"columns"`
	}
	input := "size: lg\ncolumns:\n  base: 1\n  md: 3\n"
	if err := yaml.Unmarshal([]byte(input), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.Size.Resolve(SizeMD) != SizeLG {
		t.Fatalf("scalar size not decoded: %+v", doc.Size)
	}
	if got := GridClasses(doc.Columns); got != "grid-cols-1 md:grid-cols-3" {
		t.Fatalf("map columns not decoded: %q", got)
	}

	var fromJSON Responsive[string]
	if err := fromJSON.UnmarshalJSON([]byte(`{"base":"4px","sm":"8px"}`)); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if got := GapClasses(fromJSON); got != "gap-[4px] sm:gap-[8px]" {
		t.Fatalf("json gap classes: %q", got)
	}
}

func TestThemeFromSelection_MergesVariant(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens: map[string]string{
			TokenInputVariant: "filled",
			TokenInputRadius:  "lg",
			"brand.color":     "#123456",
		},
		Templates: map[string]string{
			"forms.input": "themes/acme/input.tmpl",
		},
		Variants: map[string]theme.Variant{
			"compact": {
				Tokens: map[string]string{
					TokenInputSize:      "sm",
					TokenInputFullWidth: "false",
				},
				Templates: map[string]string{
					"forms.checkbox": "themes/acme/checkbox.tmpl",
				},
			},
		},
	}

	selection, err := StaticSelector{Manifest: manifest}.Select("", "compact")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	resolved, err := ThemeFromSelection(selection)
	if err != nil {
		t.Fatalf("theme: %v", err)
	}
	preset, err := resolved.Preset()
	if err != nil {
		t.Fatalf("preset: %v", err)
	}
	want := &Preset{Variant: VariantFilled, Size: SizeSM, Radius: RadiusLG, FullWidth: Bool(false)}
	if diff := cmp.Diff(want, preset); diff != "" {
		t.Fatalf("preset mismatch (-want +got):\n%s", diff)
	}
	if resolved.Templates["forms.checkbox"] == "" || resolved.Templates["forms.input"] == "" {
		t.Fatalf("templates not merged: %+v", resolved.Templates)
	}
	if resolved.CSSVars()["--brand-color"] != "#123456" {
		t.Fatalf("css vars not derived: %+v", resolved.CSSVars())
	}

	if _, err := (StaticSelector{Manifest: manifest}).Select("", "missing"); err == nil {
		t.Fatalf("expected unknown variant error")
	}
}

func ptr[T any](v T) *T {
	return &v
}
