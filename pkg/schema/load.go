// Package schema loads declarative form documents from YAML, JSON and
// OpenAPI operations and builds them into form trees.
package schema

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formkit/pkg/config"
)

// Option configures a Loader.
type Option func(*Loader)

// WithFS resolves fs sources against files.
func WithFS(files fs.FS) Option {
	return func(l *Loader) {
		l.fs = files
	}
}

// WithLogger reports document warnings.
func WithLogger(logger zerolog.Logger) Option {
	return func(l *Loader) {
		l.log = logger
	}
}

// Loader reads form documents from files or an fs.FS.
type Loader struct {
	fs  fs.FS
	log zerolog.Logger
}

// NewLoader constructs a Loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{log: zerolog.Nop()}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Load fetches and parses the document behind src. The format follows the
// location's extension.
func (l *Loader) Load(ctx context.Context, src Source) (*Document, error) {
	if src == nil {
		return nil, errors.New("schema: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case SourceKindFile:
		data, err = os.ReadFile(src.Location())
	case SourceKindFS:
		if l.fs == nil {
			return nil, errors.New("schema: filesystem is not configured")
		}
		data, err = fs.ReadFile(l.fs, src.Location())
	default:
		err = fmt.Errorf("unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", src.Location(), err)
	}

	doc, err := Parse(data, FormatFor(src.Location()))
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, src.Location())
	}
	doc.source = src
	for _, warning := range doc.Warnings {
		l.log.Warn().Str("document", src.Location()).Msg(warning)
	}
	return doc, nil
}

// Parse decodes and validates a document.
func Parse(data []byte, format Format) (*Document, error) {
	if len(data) == 0 {
		return nil, errors.New("schema: document is empty")
	}
	var doc Document
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("schema: decode json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("schema: decode yaml: %w", err)
		}
	}
	if err := Validate(&doc); err != nil {
		return nil, err
	}
	doc.Warnings = doc.inspect()
	return &doc, nil
}

// Validate checks the structural rules of a document.
func Validate(doc *Document) error {
	if doc == nil {
		return errors.New("schema: document is nil")
	}
	if err := config.Validator().Struct(doc); err != nil {
		return fmt.Errorf("schema: invalid document: %w", err)
	}
	return nil
}

// Load reads a document from disk.
func Load(path string) (*Document, error) {
	return NewLoader().Load(context.Background(), SourceFromFile(path))
}
