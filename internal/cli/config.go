package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/lunchvote/internal/catalog"
	"github.com/roach88/lunchvote/internal/store"
	"github.com/roach88/lunchvote/internal/vote"
)

// envBindings maps persistent flags to the environment variables that
// supply them when the flag is not given on the command line.
var envBindings = map[string]string{
	"driver":  "LUNCHVOTE_DRIVER",
	"db":      "LUNCHVOTE_DB",
	"catalog": "LUNCHVOTE_CATALOG",
	"tz":      "LUNCHVOTE_TZ",
}

// applyEnv fills unset flags from the environment.
// Command-line flags always win.
func applyEnv(cmd *cobra.Command, opts *RootOptions) error {
	for flag, env := range envBindings {
		value, ok := os.LookupEnv(env)
		if !ok || cmd.Flags().Changed(flag) {
			continue
		}
		if err := cmd.Flags().Set(flag, value); err != nil {
			return fmt.Errorf("invalid %s: %w", env, err)
		}
	}
	return nil
}

// setupLogging installs a slog text handler on w.
// Verbose switches the level to debug.
func setupLogging(opts *RootOptions, w io.Writer) *slog.Logger {
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// loadCatalog returns the configured catalog or the built-in one.
func (o *RootOptions) loadCatalog() (*catalog.Catalog, error) {
	if o.Catalog == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(o.Catalog)
}

// openStore opens the configured vote store.
func (o *RootOptions) openStore(ctx context.Context) (store.VoteStore, error) {
	return store.Open(ctx, o.Driver, o.Database)
}

// clock returns the override clock or a system clock in Timezone.
func (o *RootOptions) clock() (vote.Clock, error) {
	if o.Clock != nil {
		return o.Clock, nil
	}
	if o.Timezone == "" {
		return vote.SystemClock{}, nil
	}
	loc, err := time.LoadLocation(o.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid time zone %q: %w", o.Timezone, err)
	}
	return vote.SystemClock{Location: loc}, nil
}

// isEphemeral reports whether the store vanishes when the process exits.
func (o *RootOptions) isEphemeral() bool {
	return (o.Driver == store.DriverSQLite || o.Driver == "") &&
		(o.Database == "" || o.Database == store.MemoryDSN)
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}
