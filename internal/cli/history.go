package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "history <user>",
		Short:         "Show the user's win/loss record and finished matches",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(rootOpts, cmd, args[0])
		},
	}
}

func runHistory(opts *RootOptions, cmd *cobra.Command, user string) error {
	f := opts.formatter(cmd)
	eng, closeStore, err := opts.openEngine(cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	h, err := eng.History(cmd.Context(), user)
	if err != nil {
		return reportError(f, err)
	}
	if f.Format == "json" {
		return f.Success(h)
	}

	fmt.Fprintf(f.Writer, "%s: %d wins, %d losses\n", h.UserID, h.Wins, h.Losses)
	for _, m := range h.Matches {
		outcome := "no result"
		if m.Won != nil {
			if *m.Won {
				outcome = "won"
			} else {
				outcome = "lost"
			}
		}
		fmt.Fprintf(f.Writer, "  %s  %s  %s (%s)  %s\n",
			m.EndedAt.Format("2006-01-02 15:04"), m.MatchID, outcome, m.Team, m.State)
	}
	return nil
}
