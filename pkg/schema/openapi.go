package schema

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/goccy/go-json"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// ExtensionKey is the schema extension that overrides what the loader
// infers for a property:
//
//	x-formkit:
//	  kind: otp
//	  input: {length: 4}
//	  section: security
//	  order: 2
//	  tags: [login]
const ExtensionKey = "x-formkit"

const defaultSectionID = "main"

// ErrOperationNotFound is returned when the document has no operation with
// the requested id.
var ErrOperationNotFound = errors.New("schema: operation not found")

// OpenAPIOption configures FromOpenAPI.
type OpenAPIOption func(*openAPIConfig)

type openAPIConfig struct {
	registry *widgets.Registry
	external bool
}

// WithRegistry replaces the built-in kind registry.
func WithRegistry(registry *widgets.Registry) OpenAPIOption {
	return func(c *openAPIConfig) {
		if registry != nil {
			c.registry = registry
		}
	}
}

// WithExternalRefs allows references to other documents.
func WithExternalRefs(allow bool) OpenAPIOption {
	return func(c *openAPIConfig) {
		c.external = allow
	}
}

// Operations lists the operation ids of an OpenAPI document, sorted.
func Operations(ctx context.Context, data []byte) ([]string, error) {
	spec, err := loadOpenAPI(ctx, data, false)
	if err != nil {
		return nil, err
	}
	var ids []string
	eachOperation(spec, func(_, _ string, op *openapi3.Operation) bool {
		if op.OperationID != "" {
			ids = append(ids, op.OperationID)
		}
		return true
	})
	sort.Strings(ids)
	return ids, nil
}

// FromOpenAPI builds a document from the request body of an operation.
// Property kinds come from the registry; the x-formkit extension overrides
// them.
func FromOpenAPI(ctx context.Context, data []byte, operationID string, opts ...OpenAPIOption) (*Document, error) {
	cfg := openAPIConfig{registry: widgets.NewRegistry()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	spec, err := loadOpenAPI(ctx, data, cfg.external)
	if err != nil {
		return nil, err
	}

	var (
		method, path string
		operation    *openapi3.Operation
	)
	eachOperation(spec, func(m, p string, op *openapi3.Operation) bool {
		if op.OperationID != operationID {
			return true
		}
		method, path, operation = m, p, op
		return false
	})
	if operation == nil {
		return nil, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}

	body := requestSchema(operation.RequestBody)
	if body == nil || len(body.Properties) == 0 {
		return nil, fmt.Errorf("schema: operation %q has no request body properties", operationID)
	}

	doc := &Document{
		Name:        operationID,
		Title:       operation.Summary,
		Description: operation.Description,
		Action:      path,
		Method:      "post",
	}
	if method == http.MethodGet {
		doc.Method = "get"
	}

	required := make(map[string]bool, len(body.Required))
	for _, name := range body.Required {
		required[name] = true
	}

	type entry struct {
		field   Field
		section string
		order   int
	}
	var entries []entry
	for name, ref := range body.Properties {
		if ref == nil || ref.Value == nil {
			continue
		}
		ext := extension(ref.Value.Extensions)
		field, err := cfg.field(name, ref.Value, required[name], ext)
		if err != nil {
			return nil, fmt.Errorf("schema: property %q: %w", name, err)
		}
		entries = append(entries, entry{
			field:   field,
			section: stringValue(ext["section"]),
			order:   intValue(ext["order"]),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].order != entries[j].order {
			return entries[i].order < entries[j].order
		}
		return entries[i].field.Name < entries[j].field.Name
	})

	index := make(map[string]int)
	for _, e := range entries {
		id := e.section
		if id == "" {
			id = defaultSectionID
		}
		pos, ok := index[id]
		if !ok {
			title := ""
			if id != defaultSectionID {
				title = DefaultLabeler(id)
			}
			doc.Sections = append(doc.Sections, Section{ID: id, Title: title})
			pos = len(doc.Sections) - 1
			index[id] = pos
		}
		doc.Sections[pos].Fields = append(doc.Sections[pos].Fields, e.field)
	}

	if err := Validate(doc); err != nil {
		return nil, err
	}
	doc.Warnings = doc.inspect()
	doc.source = SourceFromBytes("openapi:" + operationID)
	return doc, nil
}

func (c openAPIConfig) field(name string, s *openapi3.Schema, required bool, ext map[string]any) (Field, error) {
	hint := widgets.Hint{
		Name:       name,
		Type:       schemaType(s),
		Format:     s.Format,
		MaxLength:  s.MaxLength,
		Explicit:   stringValue(ext["kind"]),
		Extensions: ext,
	}
	multiple := false
	if hint.Type == "array" && s.Items != nil && s.Items.Value != nil {
		items := s.Items.Value
		hint.Type, hint.Format = schemaType(items), items.Format
		multiple = true
		s = items
	}
	for _, value := range s.Enum {
		hint.Enum = append(hint.Enum, fmt.Sprint(value))
	}

	kind := c.registry.Kind(hint)
	input := model.New(kind)
	switch in := input.(type) {
	case *model.NumberInput:
		in.Min, in.Max = s.Min, s.Max
		if hint.Type == "integer" {
			step := 1.0
			in.Step = &step
		}
	case *model.DropdownInput:
		for _, value := range hint.Enum {
			in.Options = append(in.Options, model.Option{Key: value, Value: DefaultLabeler(value)})
		}
	case *model.TextareaInput:
		if s.MaxLength != nil {
			in.MaxLength = int(*s.MaxLength)
		}
	case *model.DateInput:
		switch strings.ToLower(s.Format) {
		case "date":
			in.Format = model.DateFormatDate
		case "time":
			in.Format = model.DateFormatTime
		}
	case *model.FileInput:
		in.Multiple = multiple
	}

	if raw, ok := ext["input"]; ok {
		payload, err := json.Marshal(raw)
		if err != nil {
			return Field{}, fmt.Errorf("encode %s input: %w", ExtensionKey, err)
		}
		if err := json.Unmarshal(payload, input); err != nil {
			return Field{}, fmt.Errorf("decode %s input: %w", ExtensionKey, err)
		}
	}

	label := model.Label{Text: s.Title, RequiredText: s.Description}
	if text := stringValue(ext["label"]); text != "" {
		label.Text = text
	}
	if required {
		label.Required = &required
	}

	field := Field{
		Name:  name,
		Input: model.Descriptor{Input: input},
		Label: label,
	}
	if tags, ok := ext["tags"].([]any); ok {
		for _, tag := range tags {
			field.Tags = append(field.Tags, fmt.Sprint(tag))
		}
	}
	return field, nil
}

func loadOpenAPI(ctx context.Context, data []byte, external bool) (*openapi3.T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("schema: openapi document is empty")
	}
	loader := &openapi3.Loader{Context: ctx, IsExternalRefsAllowed: external}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("schema: load openapi: %w", err)
	}
	if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("schema: validate openapi: %w", err)
	}
	return spec, nil
}

// eachOperation visits operations in path order until fn returns false.
func eachOperation(spec *openapi3.T, fn func(method, path string, op *openapi3.Operation) bool) {
	if spec.Paths == nil {
		return
	}
	for _, path := range spec.Paths.InMatchingOrder() {
		item := spec.Paths.Value(path)
		if item == nil {
			continue
		}
		ops := item.Operations()
		methods := make([]string, 0, len(ops))
		for method := range ops {
			methods = append(methods, method)
		}
		sort.Strings(methods)
		for _, method := range methods {
			if !fn(method, path, ops[method]) {
				return
			}
		}
	}
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range []string{"multipart/form-data", "application/x-www-form-urlencoded", "application/json"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func schemaType(s *openapi3.Schema) string {
	if s == nil || s.Type == nil {
		return ""
	}
	if values := s.Type.Slice(); len(values) > 0 {
		return values[0]
	}
	return ""
}

func extension(raw map[string]any) map[string]any {
	if mapped, ok := raw[ExtensionKey].(map[string]any); ok {
		return mapped
	}
	return map[string]any{}
}

func stringValue(v any) string {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func intValue(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	default:
		return 0
	}
}
