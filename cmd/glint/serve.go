package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aretw0/glint"
	"github.com/aretw0/glint/internal/presentation/tui"
	httpAdapter "github.com/aretw0/glint/pkg/adapters/http"
	"github.com/aretw0/glint/pkg/observability"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the session admin HTTP server",
	Long:  `Exposes the configured session store over a JSON API, with Prometheus metrics on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger := newLogger(cmd, cfg)

		svc, err := glint.Open(cfg,
			glint.WithLogger(logger),
			glint.WithLifecycleHooks(observability.LoggingHooks(logger)),
		)
		if err != nil {
			return fmt.Errorf("failed to open session store: %w", err)
		}
		defer svc.Close()

		addr := cfg.Server.Addr
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}

		opts := []httpAdapter.Option{httpAdapter.WithLogger(logger)}
		if cfg.Server.Metrics && svc.Gatherer() != nil {
			opts = append(opts, httpAdapter.WithGatherer(svc.Gatherer()))
		}

		srv := &http.Server{
			Addr:              addr,
			Handler:           httpAdapter.NewHandler(svc, opts...),
			ReadHeaderTimeout: 10 * time.Second,
		}

		if tui.IsTerminal(cmd.OutOrStdout()) {
			tui.PrintBanner(cmd.OutOrStdout(), strings.TrimSpace(glint.Version))
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Fprintf(cmd.OutOrStdout(), "Starting glint server on %s (adapter: %s)\n", srv.Addr, cfg.Adapter.Kind)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(shutdown)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			fmt.Fprintf(cmd.OutOrStdout(), "\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			// Asking listener to shut down and shed load.
			if err := srv.Shutdown(ctx); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Graceful shutdown did not complete in %v: %v\n", shutdownTimeout, err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), "glint server stopped gracefully")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on (overrides server.addr)")
}
