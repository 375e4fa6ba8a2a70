package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/schema"
)

type renderOptions struct {
	document documentFlags
	output   string
	action   string
}

func newRenderCmd(flags *rootFlags) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render <document>",
		Short: "Render a form document as HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, flags, opts, args[0])
		},
	}

	opts.document.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file (stdout if empty)")
	cmd.Flags().StringVar(&opts.action, "action", "", "Override the form action")

	return cmd
}

func runRender(cmd *cobra.Command, flags *rootFlags, opts *renderOptions, path string) error {
	doc, err := flags.loadDocument(path, &opts.document)
	if err != nil {
		return err
	}

	renderer, err := render.New(
		render.WithSettings(flags.settings),
		render.WithLogger(flags.log),
	)
	if err != nil {
		return err
	}

	f := doc.Build(schema.BuildOptions{
		Renderer: renderer,
		Control:  form.NewMemoryControl(nil),
	})
	f.Logger = flags.log
	if opts.action != "" {
		f.Action = opts.action
	}

	html, err := f.Render(cmd.Context())
	if err != nil {
		return fmt.Errorf("render %s: %w", doc.Name, err)
	}

	if opts.output == "" {
		fmt.Fprintln(cmd.OutOrStdout(), html)
		return nil
	}
	if err := os.WriteFile(opts.output, []byte(html), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	flags.log.Info().Str("path", opts.output).Msg("form written")
	return nil
}
