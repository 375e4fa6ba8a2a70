package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formkit/pkg/renderers/tui"
)

type promptOptions struct {
	document    documentFlags
	format      string
	maxAttempts int
}

func newPromptCmd(flags *rootFlags) *cobra.Command {
	opts := &promptOptions{}

	cmd := &cobra.Command{
		Use:   "prompt <document>",
		Short: "Fill a form document in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrompt(cmd, flags, opts, args[0])
		},
	}

	opts.document.register(cmd)
	cmd.Flags().StringVar(&opts.format, "format", string(tui.OutputFormatJSON), "Output format (json, form, pretty)")
	cmd.Flags().IntVar(&opts.maxAttempts, "max-attempts", 0, "Give up after this many invalid answers per field (0 keeps asking)")

	return cmd
}

func runPrompt(cmd *cobra.Command, flags *rootFlags, opts *promptOptions, path string) error {
	format := tui.OutputFormat(strings.ToLower(strings.TrimSpace(opts.format)))
	switch format {
	case tui.OutputFormatJSON, tui.OutputFormatFormURLEncoded, tui.OutputFormatPrettyText:
	default:
		return fmt.Errorf("unknown format %q", opts.format)
	}

	doc, err := flags.loadDocument(path, &opts.document)
	if err != nil {
		return err
	}

	options := []tui.Option{
		tui.WithOutputFormat(format),
		tui.WithMaxAttempts(opts.maxAttempts),
		tui.WithLogger(flags.log),
	}
	if flags.driver != nil {
		options = append(options, tui.WithPromptDriver(flags.driver))
	}
	renderer, err := tui.New(options...)
	if err != nil {
		return err
	}

	out, err := renderer.Render(cmd.Context(), doc.Fields(), tui.RenderOptions{Title: doc.Title})
	if errors.Is(err, tui.ErrAborted) {
		flags.log.Info().Str("form", doc.Name).Msg("prompt aborted")
		return err
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(string(out), "\n"))
	return nil
}
