package model

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Descriptor wraps an Input for document decoding. The "type" key selects
// the kind; the remaining keys configure it.
type Descriptor struct {
	Input Input
	// Unknown holds the original tag when it did not name a kind and the
	// descriptor fell back to a text input.
	Unknown string
}

type descriptorTag struct {
	Type string `json:"type" yaml:"type"`
}

// UnmarshalYAML decodes a tagged descriptor. A bare scalar is read as the tag.
func (d *Descriptor) UnmarshalYAML(node *yaml.Node) error {
	var tag descriptorTag
	if node.Kind == yaml.ScalarNode {
		tag.Type = node.Value
	} else if err := node.Decode(&tag); err != nil {
		return fmt.Errorf("model: decode descriptor tag: %w", err)
	}

	input, unknown := d.resolve(tag.Type)
	if node.Kind != yaml.ScalarNode {
		if err := node.Decode(input); err != nil {
			return fmt.Errorf("model: decode %s descriptor: %w", input.Kind(), err)
		}
	}
	d.Input, d.Unknown = input, unknown
	return nil
}

// UnmarshalJSON decodes a tagged descriptor. A bare string is read as the tag.
func (d *Descriptor) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	var tag descriptorTag
	scalar := len(trimmed) > 0 && trimmed[0] == '"'
	if scalar {
		if err := json.Unmarshal(trimmed, &tag.Type); err != nil {
			return fmt.Errorf("model: decode descriptor tag: %w", err)
		}
	} else if err := json.Unmarshal(trimmed, &tag); err != nil {
		return fmt.Errorf("model: decode descriptor tag: %w", err)
	}

	input, unknown := d.resolve(tag.Type)
	if !scalar {
		if err := json.Unmarshal(trimmed, input); err != nil {
			return fmt.Errorf("model: decode %s descriptor: %w", input.Kind(), err)
		}
	}
	d.Input, d.Unknown = input, unknown
	return nil
}

// MarshalJSON encodes the descriptor with its type tag.
func (d Descriptor) MarshalJSON() ([]byte, error) {
	if d.Input == nil {
		return []byte(`{"type":"text"}`), nil
	}
	body, err := json.Marshal(d.Input)
	if err != nil {
		return nil, fmt.Errorf("model: encode descriptor: %w", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("model: encode descriptor: %w", err)
	}
	fields["type"] = string(d.Input.Kind())
	return json.Marshal(fields)
}

func (d *Descriptor) resolve(tag string) (Input, string) {
	if tag == "" {
		return &TextInput{}, ""
	}
	kind, ok := ParseKind(tag)
	if !ok {
		return &TextInput{}, tag
	}
	return New(kind), ""
}
