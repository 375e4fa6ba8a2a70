package schema

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formkit/pkg/model"
)

// ErrMissingTranslator is passed to the missing handler when a key is set
// but no translator was supplied.
var ErrMissingTranslator = errors.New("schema: translator is nil")

// Translator resolves a message key for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler decides the text used when key cannot be
// translated. fallback is the untranslated text from the document.
type MissingTranslationHandler func(locale, key, fallback string, err error) string

// Catalog is an in-memory Translator keyed by locale, then message key.
// Lookups fall back from "es-MX" to "es".
type Catalog map[string]map[string]string

// LoadCatalog reads a YAML catalog file.
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: read catalog %s: %w", path, err)
	}
	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("schema: decode catalog %s: %w", path, err)
	}
	return catalog, nil
}

// Translate implements Translator. Arguments are applied with fmt.Sprintf
// when present.
func (c Catalog) Translate(locale, key string, args ...any) (string, error) {
	for _, candidate := range localeChain(locale) {
		if msg, ok := c[candidate][key]; ok {
			if len(args) > 0 {
				return fmt.Sprintf(msg, args...), nil
			}
			return msg, nil
		}
	}
	return "", fmt.Errorf("schema: no %q translation for %q", locale, key)
}

func localeChain(locale string) []string {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return nil
	}
	chain := []string{locale}
	if idx := strings.IndexAny(locale, "-_"); idx > 0 {
		chain = append(chain, locale[:idx])
	}
	return chain
}

// Localize rewrites the texts of doc that carry a message key. Missing
// translations keep the document text, or the key when the text is empty,
// unless onMissing says otherwise.
func Localize(doc *Document, locale string, t Translator, onMissing MissingTranslationHandler) {
	if doc == nil {
		return
	}
	tr := func(key, fallback string) string {
		return translate(locale, key, fallback, t, onMissing)
	}

	if doc.TitleKey != "" {
		doc.Title = tr(doc.TitleKey, doc.Title)
	}
	for i := range doc.Sections {
		section := &doc.Sections[i]
		if section.TitleKey != "" {
			section.Title = tr(section.TitleKey, section.Title)
		}
		if section.SubtitleKey != "" {
			section.Subtitle = tr(section.SubtitleKey, section.Subtitle)
		}
		for j := range section.Fields {
			localizeField(&section.Fields[j], tr)
		}
	}
	if b := doc.Buttons; b != nil {
		if b.SubmitTextKey != "" {
			b.SubmitText = tr(b.SubmitTextKey, b.SubmitText)
		}
		if b.CancelTextKey != "" {
			b.CancelText = tr(b.CancelTextKey, b.CancelText)
		}
	}
}

func localizeField(field *Field, tr func(key, fallback string) string) {
	if field.LabelKey != "" {
		field.Label.Text = tr(field.LabelKey, field.Label.Text)
	}
	if field.RequiredTextKey != "" {
		field.Label.RequiredText = tr(field.RequiredTextKey, field.Label.RequiredText)
	}
	if field.PlaceholderKey != "" {
		if placeholder := placeholderOf(field); placeholder != nil {
			*placeholder = tr(field.PlaceholderKey, *placeholder)
		}
	}
}

// placeholderOf returns the placeholder of descriptors that have one.
func placeholderOf(field *Field) *string {
	if input, ok := field.Input.Input.(interface{ Base() *model.BaseInput }); ok {
		return &input.Base().Placeholder
	}
	return nil
}

func translate(locale, key, fallback string, t Translator, onMissing MissingTranslationHandler) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}

	var err error
	if t == nil {
		err = ErrMissingTranslator
	} else {
		var result string
		result, err = t.Translate(locale, key)
		if err == nil && strings.TrimSpace(result) != "" {
			return result
		}
	}

	if onMissing != nil {
		return onMissing(locale, key, fallback, err)
	}
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return key
}
