package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/lunchvote/internal/catalog"
)

type venueList []catalog.Venue

func (l venueList) RenderText(w io.Writer) error {
	for _, v := range l {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", v.Key, v.Name); err != nil {
			return err
		}
	}
	return nil
}

// NewVenuesCommand creates the venues command.
func NewVenuesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "venues",
		Short:         "List the venue catalog in form order",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := rootOpts.formatter(cmd)
			cat, err := rootOpts.loadCatalog()
			if err != nil {
				return fail(formatter, ExitCommandError, ErrCodeCatalog, err.Error(), err)
			}
			return formatter.Success(venueList(cat.Entries()))
		},
	}
}
