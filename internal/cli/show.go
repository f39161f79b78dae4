package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/XanaduBarchetta/swe681-spades/internal/engine"
)

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <user>",
		Short: "Show the user's active match from their seat",
		Long: `Show the user's active match from their seat.

Prints the table, bids, trick in progress, the user's unplayed cards, and
which of them are legal to play right now. Only the user's own cards are
ever shown.

Example:
  spades show alice`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(rootOpts, cmd, args[0])
		},
	}
}

func runShow(opts *RootOptions, cmd *cobra.Command, user string) error {
	f := opts.formatter(cmd)
	eng, closeStore, err := opts.openEngine(cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	snap, err := eng.Snapshot(cmd.Context(), user)
	if err != nil {
		return reportError(f, err)
	}
	if snap == nil {
		return reportError(f, engine.ErrNoActiveMatch)
	}
	if f.Format == "json" {
		return f.Success(snap)
	}

	renderSnapshot(f, snap)
	return nil
}

func renderSnapshot(f *OutputFormatter, snap *engine.Snapshot) {
	fmt.Fprintf(f.Writer, "Match %s (%s)\n", snap.MatchID, snap.State)
	for _, seat := range snap.Seats {
		marker := "  "
		if seat.Direction == snap.YourSeat {
			marker = "* "
		}
		line := fmt.Sprintf("%s%-5s %s", marker, seat.Direction, orEmpty(seat.UserID))
		if seat.Bid != nil {
			line += fmt.Sprintf("  bid %d", *seat.Bid)
		}
		if snap.Hand != nil {
			line += fmt.Sprintf("  tricks %d", seat.Tricks)
		}
		fmt.Fprintln(f.Writer, line)
	}
	if snap.Hand == nil {
		fmt.Fprintln(f.Writer, "Waiting for players")
		return
	}

	h := snap.Hand
	fmt.Fprintf(f.Writer, "Hand %d, dealer %s, NS %d (%d bags), EW %d (%d bags)\n",
		h.Number, h.Dealer, h.NSScore, h.NSBags, h.EWScore, h.EWBags)
	if h.SpadesBroken {
		fmt.Fprintln(f.Writer, "Spades are broken")
	}

	fmt.Fprintf(f.Writer, "Trick %d, led by %s", h.Trick.Number, h.Trick.LeadPlayer)
	if len(h.Trick.Plays) > 0 {
		parts := make([]string, len(h.Trick.Plays))
		for i, p := range h.Trick.Plays {
			parts[i] = fmt.Sprintf("%s %s", p.Direction, p.Card)
		}
		fmt.Fprintf(f.Writer, ": %s", strings.Join(parts, ", "))
	}
	fmt.Fprintln(f.Writer)

	switch {
	case h.NextBidder != "":
		fmt.Fprintf(f.Writer, "Waiting on %s to bid\n", h.NextBidder)
	case h.NextPlayer != "":
		fmt.Fprintf(f.Writer, "Waiting on %s to play\n", h.NextPlayer)
	}

	fmt.Fprintf(f.Writer, "Your cards: %s\n", strings.Join(h.YourCards, " "))
	if len(h.Playable) > 0 {
		fmt.Fprintf(f.Writer, "Playable:   %s\n", strings.Join(h.Playable, " "))
	}
}

func orEmpty(s string) string {
	if s == "" {
		return "(empty)"
	}
	return s
}
