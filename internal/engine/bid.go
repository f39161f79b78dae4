package engine

import (
	"context"
	"fmt"

	"github.com/XanaduBarchetta/swe681-spades/internal/game"
	"github.com/XanaduBarchetta/swe681-spades/internal/store"
)

// PlaceBid records the user's bid for the current hand.
//
// Fails with InputError for bids outside 0..13, game.RuleError (NotBidder)
// when it is not the user's turn, and game.StateError if the target bid
// slot turns out to be filled at write time - a concurrent duplicate bid is
// a consistency violation to report, not to ignore.
func (e *Engine) PlaceBid(ctx context.Context, userID string, bid int) error {
	userID, err := normalizeUserID(userID)
	if err != nil {
		return err
	}
	if !game.ValidBid(bid) {
		return &InputError{Message: fmt.Sprintf("bid %d out of range %d..%d", bid, game.MinBid, game.MaxBid)}
	}

	now := e.clock.Now()
	err = e.store.Update(ctx, func(tx *store.Tx) error {
		m, err := tx.ActiveMatchFor(userID)
		if err != nil {
			return err
		}
		if m == nil {
			return ErrNoActiveMatch
		}
		if err := e.requireInProgress("place bid", m); err != nil {
			return err
		}
		seat, ok := m.Seat(userID)
		if !ok {
			return e.wrapBadState("place bid", "user %s not seated in own active match %s", userID, m.ID)
		}

		hand, err := tx.CurrentHand(m.ID)
		if err != nil {
			return err
		}
		if err := game.CheckBidder(hand, seat); err != nil {
			return e.escalate(err)
		}

		ok, err = tx.SetBid(m.ID, hand.Number, seat, bid)
		if err != nil {
			return err
		}
		if !ok {
			return e.wrapBadState("place bid",
				"bid slot %s already filled on hand %d of match %s", seat, hand.Number, m.ID)
		}

		m.LastActivity = now
		if err := tx.SaveMatch(m); err != nil {
			return err
		}

		e.log.Info("bid placed", "match", m.ID, "hand", hand.Number, "seat", seat.String(), "bid", bid)
		return nil
	})
	if err != nil {
		return fmt.Errorf("place bid: %w", err)
	}
	return nil
}
