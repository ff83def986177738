package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/lunchvote/internal/intake"
	"github.com/roach88/lunchvote/internal/present"
	"github.com/roach88/lunchvote/internal/server"
)

// shutdownTimeout bounds how long in-flight requests get after a signal.
const shutdownTimeout = 5 * time.Second

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Addr  string
	Debug bool
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the vote form and results over HTTP",
		Long: `Serve the vote form and today's results over HTTP.

With the default --db ":memory:" votes live only as long as the process,
and a fresh database is created on every start.

Example:
  lunchvote serve --addr :8000
  lunchvote serve --db ./lunch.db --catalog ./venues.yaml --debug`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", envOr("LUNCHVOTE_ADDR", ":8000"), "listen address")
	cmd.Flags().BoolVar(&opts.Debug, "debug", false, "expose /debug/votes")

	return cmd
}

func runServe(opts *ServeOptions, cmd *cobra.Command) error {
	logger := setupLogging(opts.RootOptions, cmd.ErrOrStderr())

	cat, err := opts.loadCatalog()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load catalog", err)
	}
	clock, err := opts.clock()
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}
	logger.Info("catalog loaded", "venues", cat.Len())

	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	logger.Info("opening store", "driver", opts.Driver, "ephemeral", opts.isEphemeral())
	st, err := opts.openStore(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open store", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.Error("error closing store", "error", closeErr)
		}
	}()

	svc := intake.NewService(cat, st, clock, intake.WithLogger(logger))
	presenter := present.New(cat, st, clock)
	srv := server.New(cat, svc, presenter,
		server.WithLogger(logger),
		server.WithDebug(opts.Debug),
	)

	ln, err := net.Listen("tcp", opts.Addr)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to listen", err)
	}

	httpServer := &http.Server{
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		select {
		case sig := <-sigChan:
			logger.Info("received signal, shutting down", "signal", sig)
		case <-ctx.Done():
		}
		shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
		defer stop()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}()

	logger.Info("listening", "addr", ln.Addr().String())
	fmt.Fprintf(cmd.OutOrStdout(), "Listening on %s\n", ln.Addr())

	serveErr := httpServer.Serve(ln)
	cancel()
	<-shutdownDone

	if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
		return WrapExitError(ExitFailure, "server error", serveErr)
	}

	logger.Info("server stopped gracefully")
	return nil
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
