package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formkit/internal/logger"
	"github.com/goliatone/go-formkit/pkg/httpapi"
	"github.com/goliatone/go-formkit/pkg/render"
)

type serveOptions struct {
	addr          string
	origins       []string
	shutdownGrace time.Duration
}

func newServeCmd(flags *rootFlags) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve <document>...",
		Short: "Serve form documents and widget endpoints over HTTP",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, flags, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "Listen address")
	cmd.Flags().StringSliceVar(&opts.origins, "origin", nil, "Hosts allowed to open websockets cross origin")
	cmd.Flags().DurationVar(&opts.shutdownGrace, "shutdown-grace", 10*time.Second, "Time allowed for in-flight requests on shutdown")

	return cmd
}

// newServer loads every document and registers it.
func newServer(flags *rootFlags, opts *serveOptions, paths []string) (*httpapi.Server, error) {
	renderer, err := render.New(
		render.WithSettings(flags.settings),
		render.WithLogger(logger.Component(flags.log, "render")),
	)
	if err != nil {
		return nil, err
	}
	srv, err := httpapi.New(renderer,
		httpapi.WithLogger(logger.Component(flags.log, "http")),
		httpapi.WithOriginPatterns(opts.origins...),
	)
	if err != nil {
		return nil, err
	}
	for _, path := range paths {
		doc, err := flags.loadDocument(path, &documentFlags{})
		if err != nil {
			return nil, err
		}
		if err := srv.Register(doc); err != nil {
			return nil, fmt.Errorf("register %s: %w", path, err)
		}
	}
	return srv, nil
}

func runServe(cmd *cobra.Command, flags *rootFlags, opts *serveOptions, paths []string) error {
	srv, err := newServer(flags, opts, paths)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              opts.addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	flags.log.Info().Str("addr", opts.addr).Strs("forms", srv.Names()).Msg("listening")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), opts.shutdownGrace)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	flags.log.Info().Msg("server stopped")
	return nil
}
