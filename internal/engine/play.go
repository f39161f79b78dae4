package engine

import (
	"context"
	"fmt"

	"github.com/XanaduBarchetta/swe681-spades/internal/deck"
	"github.com/XanaduBarchetta/swe681-spades/internal/game"
	"github.com/XanaduBarchetta/swe681-spades/internal/store"
)

// PlayResult reports what a successful card play caused.
type PlayResult struct {
	Seat game.Direction
	Card deck.Card

	// TrickWinner is set when this play completed the trick.
	TrickWinner *game.Direction

	// HandComplete is true when this play resolved the 13th trick and the
	// hand was scored. Totals then carries the cumulative match totals.
	HandComplete bool
	Totals       game.ScoreTotals

	// MatchComplete is true when scoring crossed the winning threshold.
	// NSWin reports the winning partnership.
	MatchComplete bool
	NSWin         bool
}

// PlayCard plays one card for the user in their active match.
//
// The whole sequence - turn check, ownership check, legality, the play
// itself, trick resolution, scoring, and the next trick or hand - commits
// in one exclusive transaction. Rule violations roll back cleanly and are
// safe to retry with a different card.
func (e *Engine) PlayCard(ctx context.Context, userID string, code string) (*PlayResult, error) {
	userID, err := normalizeUserID(userID)
	if err != nil {
		return nil, err
	}
	card, err := deck.ParseCard(code)
	if err != nil {
		return nil, &InputError{Message: err.Error()}
	}

	now := e.clock.Now()
	var result *PlayResult
	err = e.store.Update(ctx, func(tx *store.Tx) error {
		m, err := tx.ActiveMatchFor(userID)
		if err != nil {
			return err
		}
		if m == nil {
			return ErrNoActiveMatch
		}
		if err := e.requireInProgress("play card", m); err != nil {
			return err
		}
		seat, ok := m.Seat(userID)
		if !ok {
			return e.wrapBadState("play card", "user %s not seated in own active match %s", userID, m.ID)
		}

		hand, err := tx.CurrentHand(m.ID)
		if err != nil {
			return err
		}
		if hand.BidsPlaced() < len(hand.Bids) {
			return &game.RuleError{
				Code:    game.CodeNotYourTurn,
				Message: "cards cannot be played until all four bids are in",
				Seat:    seat,
			}
		}

		trick, err := tx.CurrentTrick(m.ID, hand.Number)
		if err != nil {
			return err
		}
		if trick.Winner != nil {
			return e.wrapBadState("play card",
				"current trick %d of hand %d in match %s is already resolved", trick.Number, hand.Number, m.ID)
		}

		held, err := tx.UnplayedCards(m.ID, hand.Number, userID)
		if err != nil {
			return err
		}
		if !holds(held, card) {
			return &game.RuleError{
				Code:    game.CodeCardNotInHand,
				Message: fmt.Sprintf("card %s is not held or was already played", card),
				Seat:    seat,
			}
		}

		if err := game.CheckPlay(trick, hand, seat, card, held); err != nil {
			return e.escalate(err)
		}

		// Validation passed: stage the mutation. Guarded writes double-check
		// the pre-image; a miss means validation raced a concurrent commit.
		ok, err = tx.MarkPlayed(m.ID, hand.Number, userID, card)
		if err != nil {
			return err
		}
		if !ok {
			return e.wrapBadState("play card", "hand card %s of %s vanished mid-play", card, userID)
		}
		ok, err = tx.SetPlay(m.ID, hand.Number, trick.Number, seat, card, now)
		if err != nil {
			return err
		}
		if !ok {
			return e.wrapBadState("play card",
				"play slot %s already filled on trick %d of match %s", seat, trick.Number, m.ID)
		}

		c := card
		trick.Plays[seat] = &c
		trick.LastPlay = now
		if seat == trick.LeadPlayer {
			suit := card.Suit
			trick.LeadSuit = &suit
		}
		if card.IsSpade() && !hand.SpadesBroken {
			if err := tx.SetSpadesBroken(m.ID, hand.Number); err != nil {
				return err
			}
			hand.SpadesBroken = true
			e.log.Info("spades broken", "match", m.ID, "hand", hand.Number, "seat", seat.String())
		}

		result = &PlayResult{Seat: seat, Card: card}
		if trick.PlaysMade() == len(trick.Plays) {
			if err := e.resolveTrick(tx, m, hand, trick, result); err != nil {
				return err
			}
		}

		m.LastActivity = now
		if err := tx.SaveMatch(m); err != nil {
			return err
		}

		e.log.Info("card played", "match", m.ID, "hand", hand.Number,
			"trick", trick.Number, "seat", seat.String(), "card", card.Code())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("play card: %w", err)
	}
	return result, nil
}

// resolveTrick assigns the winner of a full trick and advances the hand:
// either the next trick (led by the winner) or, after trick 13, scoring.
func (e *Engine) resolveTrick(tx *store.Tx, m *game.Match, hand *game.Hand, trick *game.Trick, result *PlayResult) error {
	winner, err := game.ResolveTrick(trick)
	if err != nil {
		return e.escalate(err)
	}
	ok, err := tx.SetWinner(m.ID, hand.Number, trick.Number, winner)
	if err != nil {
		return err
	}
	if !ok {
		return e.wrapBadState("resolve trick",
			"trick %d of hand %d in match %s was already resolved", trick.Number, hand.Number, m.ID)
	}
	result.TrickWinner = &winner
	e.log.Info("trick resolved", "match", m.ID, "hand", hand.Number,
		"trick", trick.Number, "winner", winner.String())

	if trick.Number < game.TricksPerHand {
		next := &game.Trick{
			MatchID:    m.ID,
			HandNumber: hand.Number,
			Number:     trick.Number + 1,
			LeadPlayer: winner,
			LastPlay:   e.clock.Now(),
		}
		return tx.InsertTrick(next)
	}
	return e.scoreHand(tx, m, hand, result)
}

// scoreHand finalizes a completed hand and either deals the next hand or
// completes the match.
func (e *Engine) scoreHand(tx *store.Tx, m *game.Match, hand *game.Hand, result *PlayResult) error {
	var bids [4]int
	for _, d := range game.Directions {
		b := hand.Bids[d]
		if b == nil {
			return e.wrapBadState("score hand",
				"hand %d of match %s completed with no %s bid", hand.Number, m.ID, d)
		}
		bids[d] = *b
	}

	counts, err := tx.TrickCounts(m.ID, hand.Number)
	if err != nil {
		return err
	}
	total := 0
	for _, n := range counts {
		total += n
	}
	if total != game.TricksPerHand {
		return e.wrapBadState("score hand",
			"hand %d of match %s resolved %d tricks, want %d", hand.Number, m.ID, total, game.TricksPerHand)
	}

	prev, err := e.carriedTotals(tx, m.ID, hand.Number)
	if err != nil {
		return err
	}

	totals := game.ScoreHand(bids, counts, prev)
	ok, err := tx.FinalizeHand(m.ID, hand.Number, totals)
	if err != nil {
		return err
	}
	if !ok {
		return e.wrapBadState("score hand",
			"hand %d of match %s was already finalized", hand.Number, m.ID)
	}
	result.HandComplete = true
	result.Totals = totals
	e.log.Info("hand scored", "match", m.ID, "hand", hand.Number,
		"ns_score", totals.Scores[game.TeamNS], "ew_score", totals.Scores[game.TeamEW],
		"ns_bags", totals.Bags[game.TeamNS], "ew_bags", totals.Bags[game.TeamEW])

	switch game.DecideOutcome(totals.Scores, e.winScore) {
	case game.OutcomeContinue:
		dealer, err := game.NextClockwise(hand.Dealer)
		if err != nil {
			return err
		}
		return e.dealHand(tx, m, hand.Number+1, dealer)

	case game.OutcomeNSWin:
		return e.completeMatch(tx, m, game.TeamNS, result)

	case game.OutcomeEWWin:
		return e.completeMatch(tx, m, game.TeamEW, result)
	}
	return nil
}

// carriedTotals loads the cumulative totals entering the given hand: the
// finalized totals of the previous hand, or zeros for hand #1.
func (e *Engine) carriedTotals(tx *store.Tx, matchID string, handNumber int) (game.ScoreTotals, error) {
	var totals game.ScoreTotals
	if handNumber == 1 {
		return totals, nil
	}
	prev, err := tx.GetHand(matchID, handNumber-1)
	if err != nil {
		return totals, err
	}
	for _, team := range []game.Team{game.TeamNS, game.TeamEW} {
		if prev.Scores[team] == nil || prev.Bags[team] == nil {
			return totals, e.wrapBadState("carried totals",
				"hand %d of match %s is not finalized", prev.Number, matchID)
		}
		totals.Scores[team] = *prev.Scores[team]
		totals.Bags[team] = *prev.Bags[team]
	}
	return totals, nil
}

// completeMatch transitions the match to COMPLETED and books each seat's
// win or loss.
func (e *Engine) completeMatch(tx *store.Tx, m *game.Match, winner game.Team, result *PlayResult) error {
	nsWin := winner == game.TeamNS
	m.State = game.StateCompleted
	m.NSWin = &nsWin
	result.MatchComplete = true
	result.NSWin = nsWin

	for _, d := range game.Directions {
		userID := m.Seats[d]
		if userID == "" {
			return e.wrapBadState("complete match", "match %s completed with empty %s seat", m.ID, d)
		}
		if err := tx.RecordResult(userID, game.TeamOf(d) == winner); err != nil {
			return err
		}
	}

	e.log.Info("match completed", "match", m.ID, "winner", winner.String())
	return nil
}

func holds(held []deck.Card, card deck.Card) bool {
	for _, c := range held {
		if c == card {
			return true
		}
	}
	return false
}
