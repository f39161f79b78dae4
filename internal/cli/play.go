package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/XanaduBarchetta/swe681-spades/internal/engine"
	"github.com/XanaduBarchetta/swe681-spades/internal/game"
)

// NewPlayCommand creates the play command.
func NewPlayCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "play <user> <card>",
		Short: "Play a card in the current trick",
		Long: `Play a card in the current trick.

Cards use a 3-character code: a zero-padded rank (02-14, Ace is 14)
followed by the suit letter S, H, C, or D. A play may resolve the trick,
score the hand, and complete the match in one stroke; the output reports
everything that happened.

Example:
  spades play alice 02S`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(rootOpts, cmd, args[0], args[1])
		},
	}
}

type playReport struct {
	Seat          string `json:"seat"`
	Card          string `json:"card"`
	TrickWinner   string `json:"trick_winner,omitempty"`
	HandComplete  bool   `json:"hand_complete"`
	NSScore       int    `json:"ns_score,omitempty"`
	EWScore       int    `json:"ew_score,omitempty"`
	MatchComplete bool   `json:"match_complete"`
	Winner        string `json:"winner,omitempty"`
}

func runPlay(opts *RootOptions, cmd *cobra.Command, user, card string) error {
	f := opts.formatter(cmd)
	eng, closeStore, err := opts.openEngine(cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	res, err := eng.PlayCard(cmd.Context(), user, card)
	if err != nil {
		return reportError(f, err)
	}

	report := playReport{
		Seat:          res.Seat.String(),
		Card:          res.Card.Code(),
		HandComplete:  res.HandComplete,
		MatchComplete: res.MatchComplete,
	}
	if res.TrickWinner != nil {
		report.TrickWinner = res.TrickWinner.String()
	}
	if res.HandComplete {
		report.NSScore = res.Totals.Scores[game.TeamNS]
		report.EWScore = res.Totals.Scores[game.TeamEW]
	}
	if res.MatchComplete {
		report.Winner = winnerName(res)
	}
	if f.Format == "json" {
		return f.Success(report)
	}

	fmt.Fprintf(f.Writer, "%s played %s\n", report.Seat, report.Card)
	if report.TrickWinner != "" {
		fmt.Fprintf(f.Writer, "Trick won by %s\n", report.TrickWinner)
	}
	if res.HandComplete {
		fmt.Fprintf(f.Writer, "Hand complete: NS %d, EW %d\n", report.NSScore, report.EWScore)
	}
	if res.MatchComplete {
		fmt.Fprintf(f.Writer, "Match complete: %s wins\n", report.Winner)
	}
	return nil
}

func winnerName(res *engine.PlayResult) string {
	if res.NSWin {
		return game.TeamNS.String()
	}
	return game.TeamEW.String()
}
