package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewJoinCommand creates the join command.
func NewJoinCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "join <user>",
		Short: "Join an open table, creating one if none has a free seat",
		Long: `Join an open table, creating one if none has a free seat.

A user holds at most one active match; joining while already seated reports
the existing match instead of seating the user twice. Filling the fourth
seat starts the match: hands are dealt and bidding opens immediately.

Example:
  spades join alice`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJoin(rootOpts, cmd, args[0])
		},
	}
}

type joinReport struct {
	MatchID       string `json:"match_id"`
	State         string `json:"state"`
	Seat          string `json:"seat"`
	AlreadySeated bool   `json:"already_seated"`
}

func runJoin(opts *RootOptions, cmd *cobra.Command, user string) error {
	f := opts.formatter(cmd)
	eng, closeStore, err := opts.openEngine(cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	ctx := cmd.Context()
	m, err := eng.GetActiveMatch(ctx, user)
	if err != nil {
		return reportError(f, err)
	}
	already := m != nil
	if m == nil {
		if m, err = eng.JoinOrCreate(ctx, user); err != nil {
			return reportError(f, err)
		}
	}

	seat := ""
	if d, ok := m.Seat(user); ok {
		seat = d.String()
	}
	report := joinReport{
		MatchID:       m.ID,
		State:         string(m.State),
		Seat:          seat,
		AlreadySeated: already,
	}
	if f.Format == "json" {
		return f.Success(report)
	}

	if already {
		fmt.Fprintf(f.Writer, "Already seated at %s in match %s (%s)\n", seat, m.ID, m.State)
	} else {
		fmt.Fprintf(f.Writer, "Seated at %s in match %s (%s)\n", seat, m.ID, m.State)
	}
	return nil
}
