package engine

import (
	"context"
	"fmt"

	"github.com/XanaduBarchetta/swe681-spades/internal/game"
	"github.com/XanaduBarchetta/swe681-spades/internal/store"
)

// GetActiveMatch returns the FILLING or IN_PROGRESS match the user is
// seated in, or nil if none. This is the precondition collaborator for
// JoinOrCreate: callers check it before seating a user a second time.
func (e *Engine) GetActiveMatch(ctx context.Context, userID string) (*game.Match, error) {
	userID, err := normalizeUserID(userID)
	if err != nil {
		return nil, err
	}

	var out *game.Match
	err = e.store.View(ctx, func(tx *store.Tx) error {
		m, err := tx.ActiveMatchFor(userID)
		if err != nil {
			return err
		}
		out = m
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get active match: %w", err)
	}
	return out, nil
}

// JoinOrCreate seats the user at a FILLING table, creating one if none has
// an open seat. Seats fill NORTH, SOUTH, EAST, WEST; placing the fourth
// user atomically starts the match: state flips to IN_PROGRESS, hand #1 is
// dealt with dealer NORTH, and trick #1 is opened with the seat left of the
// dealer on lead. Dealing commits in the same transaction as the seating,
// so a partially dealt match is never observable.
//
// The caller is responsible for not seating a user who already holds an
// active match (GetActiveMatch); that precondition is not re-validated here.
func (e *Engine) JoinOrCreate(ctx context.Context, userID string) (*game.Match, error) {
	userID, err := normalizeUserID(userID)
	if err != nil {
		return nil, err
	}

	now := e.clock.Now()
	var out *game.Match
	err = e.store.Update(ctx, func(tx *store.Tx) error {
		if err := tx.EnsureUser(userID); err != nil {
			return err
		}

		m, err := tx.FindFilling()
		if err != nil {
			return err
		}
		if m == nil {
			m = &game.Match{
				ID:           e.tokens.Generate(),
				State:        game.StateFilling,
				CreateDate:   now,
				LastActivity: now,
			}
			m.Seats[game.North] = userID
			if err := tx.InsertMatch(m); err != nil {
				return err
			}
			e.log.Info("match created", "match", m.ID, "user", userID)
			out = m
			return nil
		}

		seat, ok := firstEmptySeat(m)
		if !ok {
			return e.wrapBadState("join", "FILLING match %s has no empty seat", m.ID)
		}
		m.Seats[seat] = userID
		m.LastActivity = now

		if seat == game.SeatOrder[3] {
			// Table is full: start play atomically with the seating.
			m.State = game.StateInProgress
			if err := e.dealHand(tx, m, 1, game.North); err != nil {
				return err
			}
			e.log.Info("match started", "match", m.ID, "user", userID)
		} else {
			e.log.Info("user seated", "match", m.ID, "user", userID, "seat", seat.String())
		}

		if err := tx.SaveMatch(m); err != nil {
			return err
		}
		out = m
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("join or create: %w", err)
	}
	return out, nil
}

func firstEmptySeat(m *game.Match) (game.Direction, bool) {
	for _, d := range game.SeatOrder {
		if m.Seats[d] == "" {
			return d, true
		}
	}
	return 0, false
}

// dealHand shuffles, partitions the deck into four 13-card groups in ring
// order starting at NORTH, records the ownership rows, and opens trick #1
// led by the seat left of the dealer. Runs inside the caller's transaction.
func (e *Engine) dealHand(tx *store.Tx, m *game.Match, number int, dealer game.Direction) error {
	hand := &game.Hand{MatchID: m.ID, Number: number, Dealer: dealer}
	if err := tx.InsertHand(hand); err != nil {
		return err
	}

	cards, err := e.shuffler.Shuffle()
	if err != nil {
		return fmt.Errorf("deal hand %d: %w", number, err)
	}

	handCards := make([]game.HandCard, 0, len(cards))
	per := len(cards) / len(game.Directions)
	for i, seat := range game.Directions {
		userID := m.Seats[seat]
		if userID == "" {
			return e.wrapBadState("deal", "dealing match %s with empty %s seat", m.ID, seat)
		}
		for _, c := range cards[i*per : (i+1)*per] {
			handCards = append(handCards, game.HandCard{
				MatchID:    m.ID,
				HandNumber: number,
				UserID:     userID,
				Card:       c,
			})
		}
	}
	if err := tx.InsertHandCards(handCards); err != nil {
		return err
	}

	lead, err := game.NextClockwise(dealer)
	if err != nil {
		return err
	}
	trick := &game.Trick{
		MatchID:    m.ID,
		HandNumber: number,
		Number:     1,
		LeadPlayer: lead,
		LastPlay:   e.clock.Now(),
	}
	if err := tx.InsertTrick(trick); err != nil {
		return err
	}

	e.log.Info("hand dealt", "match", m.ID, "hand", number, "dealer", dealer.String())
	return nil
}
