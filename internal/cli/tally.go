package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/lunchvote/internal/present"
	"github.com/roach88/lunchvote/internal/vote"
)

// TallyOptions holds flags for the tally command.
type TallyOptions struct {
	*RootOptions
	Date string
}

// tallyResult is the printed form of present.Results.
type tallyResult present.Results

func (r tallyResult) RenderText(w io.Writer) error {
	if len(r.Rows) == 0 {
		_, err := fmt.Fprintf(w, "No votes for %s\n", r.Date)
		return err
	}

	width := 0
	for _, row := range r.Rows {
		width = max(width, len(row.Name))
	}

	fmt.Fprintf(w, "Results for %s\n", r.Date)
	for i, row := range r.Rows {
		fmt.Fprintf(w, "%2d. %-*s  %d\n", i+1, width, row.Name, row.Count)
	}
	_, err := fmt.Fprintf(w, "Total: %d\n", r.Total)
	return err
}

// NewTallyCommand creates the tally command.
func NewTallyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TallyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "tally",
		Short: "Print the ranked tally for a day",
		Long: `Print venues ranked by vote count, highest first.

Venues without votes are not listed. Equal counts keep catalog order.

Example:
  lunchvote tally --db ./lunch.db
  lunchvote tally --db ./lunch.db --date 2024-10-01 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTally(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Date, "date", "", "day to tally as YYYY-MM-DD (default today)")

	return cmd
}

func runTally(opts *TallyOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	setupLogging(opts.RootOptions, formatter.GetErrWriter())

	cat, err := opts.loadCatalog()
	if err != nil {
		return fail(formatter, ExitCommandError, ErrCodeCatalog, err.Error(), err)
	}
	clock, err := opts.clock()
	if err != nil {
		return fail(formatter, ExitCommandError, ErrCodeConfig, err.Error(), err)
	}

	day := clock.Today()
	if opts.Date != "" {
		day, err = vote.ParseDate(opts.Date)
		if err != nil {
			return fail(formatter, ExitCommandError, ErrCodeConfig, err.Error(), err)
		}
	}
	formatter.VerboseLog("Tallying %s", day)

	ctx := cmd.Context()
	st, err := opts.openStore(ctx)
	if err != nil {
		return fail(formatter, ExitCommandError, ErrCodeStorage, err.Error(), err)
	}
	defer st.Close()

	res, err := present.New(cat, st, clock).For(ctx, day)
	if err != nil {
		return fail(formatter, ExitFailure, ErrCodeStorage, err.Error(), err)
	}

	return formatter.Success(tallyResult(res))
}
