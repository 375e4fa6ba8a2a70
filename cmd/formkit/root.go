package main

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formkit/internal/logger"
	"github.com/goliatone/go-formkit/pkg/config"
	"github.com/goliatone/go-formkit/pkg/renderers/tui"
)

type rootFlags struct {
	logLevel   string
	configPath string
	humanLogs  bool

	// Set by the persistent pre-run.
	log      zerolog.Logger
	settings *config.Store

	// driver replaces the survey prompts; tests use it.
	driver tui.PromptDriver
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(&rootFlags{})
}

func newRootCmdWith(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "formkit",
		Short:         "Render, prompt and serve declarative forms",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return flags.setup(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Settings file (YAML)")
	cmd.PersistentFlags().BoolVar(&flags.humanLogs, "human-logs", false, "Write console formatted logs")

	cmd.AddCommand(newRenderCmd(flags))
	cmd.AddCommand(newPromptCmd(flags))
	cmd.AddCommand(newCalendarCmd(flags))
	cmd.AddCommand(newServeCmd(flags))
	cmd.AddCommand(newOpenAPICmd(flags))

	return cmd
}

func (f *rootFlags) setup(cmd *cobra.Command) error {
	log, err := logger.New(logger.Options{
		Level:         f.logLevel,
		HumanReadable: f.humanLogs,
		Writer:        cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	f.log = log

	settings := config.Settings{}
	if path := strings.TrimSpace(f.configPath); path != "" {
		settings, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}
		f.log.Debug().Str("path", path).Msg("settings loaded")
	}
	f.settings = config.NewStore(settings)
	return nil
}
