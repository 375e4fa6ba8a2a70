package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formkit/pkg/schema"
)

type openAPIOptions struct {
	operation    string
	format       string
	externalRefs bool
}

func newOpenAPICmd(flags *rootFlags) *cobra.Command {
	opts := &openAPIOptions{}

	cmd := &cobra.Command{
		Use:   "openapi <spec>",
		Short: "Convert an OpenAPI operation into a form document",
		Long:  "Without --operation the command lists the operations that have an id.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOpenAPI(cmd, flags, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.operation, "operation", "", "Operation id to convert")
	cmd.Flags().StringVar(&opts.format, "format", "yaml", "Document format (yaml, json)")
	cmd.Flags().BoolVar(&opts.externalRefs, "external-refs", false, "Resolve $ref pointing at other files")

	return cmd
}

func runOpenAPI(cmd *cobra.Command, flags *rootFlags, opts *openAPIOptions, path string) error {
	format := schema.Format(strings.ToLower(opts.format))
	if format != schema.FormatYAML && format != schema.FormatJSON {
		return fmt.Errorf("unknown format %q", opts.format)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	out := cmd.OutOrStdout()
	if opts.operation == "" {
		ids, err := schema.Operations(cmd.Context(), data)
		if err != nil {
			return err
		}
		for _, id := range ids {
			fmt.Fprintln(out, id)
		}
		return nil
	}

	doc, err := schema.FromOpenAPI(cmd.Context(), data, opts.operation, schema.WithExternalRefs(opts.externalRefs))
	if err != nil {
		return err
	}
	for _, warning := range doc.Warnings {
		flags.log.Warn().Str("operation", opts.operation).Msg(warning)
	}

	encoded, err := encodeDocument(doc, format)
	if err != nil {
		return err
	}
	_, err = out.Write(encoded)
	return err
}

// encodeDocument writes doc in the loader's own format. YAML goes through
// the JSON encoding so input descriptors keep their type tag, and the
// flow styles of the JSON text are reset to block.
func encodeDocument(doc *schema.Document, format schema.Format) ([]byte, error) {
	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	if format == schema.FormatJSON {
		return append(body, '\n'), nil
	}

	var node yaml.Node
	if err := yaml.Unmarshal(body, &node); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	blockStyle(&node)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return buf.Bytes(), nil
}

func blockStyle(node *yaml.Node) {
	node.Style = 0
	for _, child := range node.Content {
		blockStyle(child)
	}
}
