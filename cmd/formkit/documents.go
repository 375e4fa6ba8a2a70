package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formkit/pkg/schema"
)

// documentFlags select and localize a loaded document.
type documentFlags struct {
	fields   string
	tags     string
	sections string
	locale   string
	catalog  string
}

func (d *documentFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&d.fields, "fields", "", "Comma separated field names to keep")
	cmd.Flags().StringVar(&d.tags, "tags", "", "Comma separated field tags to keep")
	cmd.Flags().StringVar(&d.sections, "sections", "", "Comma separated section ids to keep")
	cmd.Flags().StringVar(&d.locale, "locale", "", "Translate labels for this locale")
	cmd.Flags().StringVar(&d.catalog, "catalog", "", "Message catalog (YAML) used with --locale")
}

func (f *rootFlags) loadDocument(path string, d *documentFlags) (*schema.Document, error) {
	doc, err := schema.Load(path)
	if err != nil {
		return nil, err
	}
	for _, warning := range doc.Warnings {
		f.log.Warn().Str("document", path).Msg(warning)
	}

	schema.ApplySubset(doc, schema.ParseSubset(d.fields, d.tags, d.sections))

	if locale := strings.TrimSpace(d.locale); locale != "" {
		var translator schema.Translator
		if d.catalog != "" {
			catalog, err := schema.LoadCatalog(d.catalog)
			if err != nil {
				return nil, err
			}
			translator = catalog
		}
		schema.Localize(doc, locale, translator, func(locale, key, fallback string, err error) string {
			f.log.Debug().Str("locale", locale).Str("key", key).Err(err).Msg("translation missing")
			if fallback == "" {
				return key
			}
			return fallback
		})
	}
	return doc, nil
}
