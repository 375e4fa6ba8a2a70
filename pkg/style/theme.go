package style

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Token keys read from a theme manifest to build an input preset.
const (
	TokenInputVariant   = "input.variant"
	TokenInputSize      = "input.size"
	TokenInputRadius    = "input.radius"
	TokenInputFullWidth = "input.fullWidth"
)

// Theme is the flattened view of a selected go-theme manifest.
type Theme struct {
	Name      string
	Variant   string
	Tokens    map[string]string
	Templates map[string]string
}

// ThemeFromSelection merges the manifest tokens and templates with the
// selected variant overrides.
func ThemeFromSelection(selection *theme.Selection) (Theme, error) {
	if selection == nil || selection.Manifest == nil {
		return Theme{}, errors.New("style: theme selection has no manifest")
	}
	manifest := selection.Manifest

	out := Theme{
		Name:      firstNonEmpty(selection.Theme, manifest.Name),
		Variant:   selection.Variant,
		Tokens:    make(map[string]string, len(manifest.Tokens)),
		Templates: make(map[string]string, len(manifest.Templates)),
	}
	for key, value := range manifest.Tokens {
		out.Tokens[key] = value
	}
	for key, value := range manifest.Templates {
		out.Templates[key] = value
	}

	if selection.Variant != "" {
		if variant, ok := manifest.Variants[selection.Variant]; ok {
			for key, value := range variant.Tokens {
				out.Tokens[key] = value
			}
			for key, value := range variant.Templates {
				out.Templates[key] = value
			}
		}
	}
	return out, nil
}

// Preset builds a preset from the theme's input tokens. It returns nil when
// the theme sets none of them.
func (t Theme) Preset() (*Preset, error) {
	preset := &Preset{
		Variant: Variant(strings.TrimSpace(t.Tokens[TokenInputVariant])),
		Size:    Size(strings.TrimSpace(t.Tokens[TokenInputSize])),
		Radius:  Radius(strings.TrimSpace(t.Tokens[TokenInputRadius])),
	}
	if raw := strings.TrimSpace(t.Tokens[TokenInputFullWidth]); raw != "" {
		full, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("style: theme token %s: %w", TokenInputFullWidth, err)
		}
		preset.FullWidth = &full
	}
	if preset.Variant == "" && preset.Size == "" && preset.Radius == "" && preset.FullWidth == nil {
		return nil, nil
	}
	return preset, nil
}

// CSSVars derives custom properties from the theme tokens, "brand" becoming
// "--brand" and dots turning into dashes.
func (t Theme) CSSVars() map[string]string {
	vars := make(map[string]string, len(t.Tokens))
	for key, value := range t.Tokens {
		name := strings.ReplaceAll(strings.TrimSpace(key), ".", "-")
		if name == "" {
			continue
		}
		vars["--"+name] = value
	}
	return vars
}

// StaticSelector serves a single manifest regardless of the requested name.
type StaticSelector struct {
	Manifest *theme.Manifest
}

var _ theme.ThemeSelector = StaticSelector{}

// Select implements theme.ThemeSelector.
func (s StaticSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if s.Manifest == nil {
		return nil, errors.New("style: static selector has no manifest")
	}
	if variant != "" {
		if _, ok := s.Manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("style: theme %q has no variant %q", s.Manifest.Name, variant)
		}
	}
	return &theme.Selection{
		Theme:    firstNonEmpty(name, s.Manifest.Name),
		Variant:  variant,
		Manifest: s.Manifest,
	}, nil
}
