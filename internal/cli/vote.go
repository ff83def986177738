package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/lunchvote/internal/intake"
	"github.com/roach88/lunchvote/internal/store"
)

// VoteOptions holds flags for the vote command.
type VoteOptions struct {
	*RootOptions
	Voter string
}

// voteResult is the printed form of an intake.Receipt.
type voteResult intake.Receipt

func (r voteResult) RenderText(w io.Writer) error {
	if len(r.Venues) == 0 {
		_, err := fmt.Fprintf(w, "No venues selected for %s on %s\n", r.Voter, r.Date)
		return err
	}
	_, err := fmt.Fprintf(w, "Recorded %s for %s on %s\n", strings.Join(r.Venues, ", "), r.Voter, r.Date)
	return err
}

// NewVoteCommand creates the vote command.
func NewVoteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &VoteOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "vote --voter <name> <venue-key>...",
		Short: "Record today's votes for one voter",
		Long: `Record one vote per listed venue for today.

Voting twice for the same venue on the same day is accepted and changes
nothing. Needs a persistent database: a file path or a PostgreSQL DSN.

Example:
  lunchvote vote --db ./lunch.db --voter alice markthalle burgerlich`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVote(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Voter, "voter", "", "voter name (required)")

	return cmd
}

func runVote(opts *VoteOptions, venues []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	logger := setupLogging(opts.RootOptions, formatter.GetErrWriter())

	if opts.isEphemeral() {
		return fail(formatter, ExitCommandError, ErrCodeConfig,
			"vote needs a persistent database: pass --db <file> or a PostgreSQL DSN", nil)
	}

	cat, err := opts.loadCatalog()
	if err != nil {
		return fail(formatter, ExitCommandError, ErrCodeCatalog, err.Error(), err)
	}
	clock, err := opts.clock()
	if err != nil {
		return fail(formatter, ExitCommandError, ErrCodeConfig, err.Error(), err)
	}

	ctx := cmd.Context()
	st, err := opts.openStore(ctx)
	if err != nil {
		return fail(formatter, ExitCommandError, ErrCodeStorage, err.Error(), err)
	}
	defer st.Close()

	svc := intake.NewService(cat, st, clock, intake.WithLogger(logger))
	receipt, err := svc.Submit(ctx, intake.Submission{Voter: opts.Voter, Venues: venues})
	if err != nil {
		var ve *intake.ValidationError
		if errors.As(err, &ve) {
			return fail(formatter, ExitFailure, ve.Reason, ve.Error(), err)
		}
		if errors.Is(err, store.ErrStorage) {
			return fail(formatter, ExitFailure, ErrCodeStorage, err.Error(), err)
		}
		return fail(formatter, ExitFailure, ErrCodeGeneric, err.Error(), err)
	}

	return formatter.Success(voteResult(receipt))
}
