package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/lunchvote/internal/vote"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	Driver   string // "sqlite" | "postgres"
	Database string // SQLite path, ":memory:", or PostgreSQL DSN
	Catalog  string // catalog file; empty means the built-in catalog
	Timezone string // IANA zone used for "today"; empty means local

	// Clock allows overriding the current day (for testing).
	// If nil, a vote.SystemClock in Timezone is used.
	Clock vote.Clock
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the lunchvote CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lunchvote",
		Short: "lunchvote - where do we eat today?",
		Long:  "Collect one daily lunch preference per person and venue, and rank venues by today's votes.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := applyEnv(cmd, opts); err != nil {
				return err
			}
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	flags.StringVar(&opts.Format, "format", "text", "output format (json|text)")
	flags.StringVar(&opts.Driver, "driver", "sqlite", "store driver (sqlite|postgres)")
	flags.StringVar(&opts.Database, "db", ":memory:", "SQLite path or PostgreSQL DSN")
	flags.StringVar(&opts.Catalog, "catalog", "", "venue catalog file (.yaml or .cue)")
	flags.StringVar(&opts.Timezone, "tz", "", "IANA time zone for the voting day (default local)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewVoteCommand(opts))
	cmd.AddCommand(NewTallyCommand(opts))
	cmd.AddCommand(NewVenuesCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
