package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewBidCommand creates the bid command.
func NewBidCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "bid <user> <tricks>",
		Short: "Place a bid for the current hand",
		Long: `Place a bid for the current hand.

Bids run 0 through 13; 0 is a nil bid worth +/-100 on its own. Bidding
starts left of the dealer and proceeds clockwise, one bid per seat.

Example:
  spades bid alice 4`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBid(rootOpts, cmd, args[0], args[1])
		},
	}
}

type bidReport struct {
	User string `json:"user"`
	Bid  int    `json:"bid"`
}

func runBid(opts *RootOptions, cmd *cobra.Command, user, raw string) error {
	f := opts.formatter(cmd)

	bid, err := strconv.Atoi(raw)
	if err != nil {
		_ = f.Error("INVALID_INPUT", fmt.Sprintf("bid %q is not a number", raw))
		return &ExitError{Code: ExitFailure, Message: "INVALID_INPUT"}
	}

	eng, closeStore, err := opts.openEngine(cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := eng.PlaceBid(cmd.Context(), user, bid); err != nil {
		return reportError(f, err)
	}

	if f.Format == "json" {
		return f.Success(bidReport{User: user, Bid: bid})
	}
	fmt.Fprintf(f.Writer, "Bid %d recorded for %s\n", bid, user)
	return nil
}
