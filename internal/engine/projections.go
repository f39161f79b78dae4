package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/XanaduBarchetta/swe681-spades/internal/deck"
	"github.com/XanaduBarchetta/swe681-spades/internal/game"
	"github.com/XanaduBarchetta/swe681-spades/internal/store"
)

// Snapshot is the read-only view of a user's active match, shaped for the
// presentation layer. Card codes use the 3-character wire form throughout.
type Snapshot struct {
	MatchID  string     `json:"match_id"`
	State    string     `json:"state"`
	Seats    []SeatView `json:"seats"`
	YourSeat string     `json:"your_seat,omitempty"`
	Hand     *HandView  `json:"hand,omitempty"`
}

// SeatView describes one seat: who sits there, their bid once placed, and
// the tricks they have taken in the current hand.
type SeatView struct {
	Direction string `json:"direction"`
	UserID    string `json:"user_id,omitempty"`
	Bid       *int   `json:"bid,omitempty"`
	Tricks    int    `json:"tricks"`
}

// HandView describes the hand in play. Scores and bags are the cumulative
// match totals entering this hand.
type HandView struct {
	Number       int       `json:"number"`
	Dealer       string    `json:"dealer"`
	SpadesBroken bool      `json:"spades_broken"`
	NSScore      int       `json:"ns_score"`
	EWScore      int       `json:"ew_score"`
	NSBags       int       `json:"ns_bags"`
	EWBags       int       `json:"ew_bags"`
	NextBidder   string    `json:"next_bidder,omitempty"`
	NextPlayer   string    `json:"next_player,omitempty"`
	Trick        TrickView `json:"trick"`
	YourCards    []string  `json:"your_cards"`
	Playable     []string  `json:"playable_cards"`
}

// TrickView describes the trick in play.
type TrickView struct {
	Number     int        `json:"number"`
	LeadPlayer string     `json:"lead_player"`
	LeadSuit   string     `json:"lead_suit,omitempty"`
	Plays      []PlayView `json:"plays"`
}

// PlayView is one card played to the trick.
type PlayView struct {
	Direction string `json:"direction"`
	Card      string `json:"card"`
}

// Snapshot returns the user's active match view, or nil if the user has no
// active match. Pure read: no mutation, no last_activity bump.
func (e *Engine) Snapshot(ctx context.Context, userID string) (*Snapshot, error) {
	userID, err := normalizeUserID(userID)
	if err != nil {
		return nil, err
	}

	var snap *Snapshot
	err = e.store.View(ctx, func(tx *store.Tx) error {
		m, err := tx.ActiveMatchFor(userID)
		if err != nil {
			return err
		}
		if m == nil {
			return nil
		}

		s := &Snapshot{MatchID: m.ID, State: string(m.State)}
		if seat, ok := m.Seat(userID); ok {
			s.YourSeat = seat.String()
		}
		for _, d := range game.Directions {
			s.Seats = append(s.Seats, SeatView{
				Direction: d.String(),
				UserID:    m.Seats[d],
			})
		}
		if m.State != game.StateInProgress {
			snap = s
			return nil
		}

		hand, err := tx.CurrentHand(m.ID)
		if err != nil {
			return err
		}
		counts, err := tx.TrickCounts(m.ID, hand.Number)
		if err != nil {
			return err
		}
		for i, d := range game.Directions {
			s.Seats[i].Bid = hand.Bids[d]
			s.Seats[i].Tricks = counts[d]
		}

		totals, err := e.carriedTotals(tx, m.ID, hand.Number)
		if err != nil {
			return err
		}
		hv := &HandView{
			Number:       hand.Number,
			Dealer:       hand.Dealer.String(),
			SpadesBroken: hand.SpadesBroken,
			NSScore:      totals.Scores[game.TeamNS],
			EWScore:      totals.Scores[game.TeamEW],
			NSBags:       totals.Bags[game.TeamNS],
			EWBags:       totals.Bags[game.TeamEW],
		}

		trick, err := tx.CurrentTrick(m.ID, hand.Number)
		if err != nil {
			return err
		}
		hv.Trick = TrickView{Number: trick.Number, LeadPlayer: trick.LeadPlayer.String()}
		if trick.LeadSuit != nil {
			hv.Trick.LeadSuit = trick.LeadSuit.String()
		}
		hv.Trick.Plays = []PlayView{}
		for _, d := range game.Directions {
			if p := trick.Plays[d]; p != nil {
				hv.Trick.Plays = append(hv.Trick.Plays, PlayView{Direction: d.String(), Card: p.Code()})
			}
		}

		held, err := tx.UnplayedCards(m.ID, hand.Number, userID)
		if err != nil {
			return err
		}
		hv.YourCards = cardCodes(held)
		hv.Playable = []string{}

		if bidder, err := game.NextBidder(hand); err != nil {
			return e.escalate(err)
		} else if bidder != nil {
			hv.NextBidder = bidder.String()
		} else {
			// Bidding closed: play is live.
			player, err := game.NextPlayer(trick)
			if err != nil {
				return e.escalate(err)
			}
			if player != nil {
				hv.NextPlayer = player.String()
				if seat, ok := m.Seat(userID); ok && seat == *player {
					legal, err := game.LegalPlays(trick, hand, seat, held)
					if err != nil {
						return e.escalate(err)
					}
					hv.Playable = cardCodes(legal)
				}
			}
		}

		s.Hand = hv
		snap = s
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	return snap, nil
}

// History is the user's completed-match record.
type History struct {
	UserID  string         `json:"user_id"`
	Wins    int            `json:"wins"`
	Losses  int            `json:"losses"`
	Matches []HistoryEntry `json:"matches"`
}

// HistoryEntry summarizes one terminal match from the user's seat.
type HistoryEntry struct {
	MatchID string    `json:"match_id"`
	State   string    `json:"state"`
	NSWin   *bool     `json:"ns_win,omitempty"`
	Team    string    `json:"team"`
	Won     *bool     `json:"won,omitempty"`
	EndedAt time.Time `json:"ended_at"`
}

// History returns the user's win/loss record and terminal matches, newest
// first. Unknown users get an empty history rather than an error: a valid
// identity that has never joined a table simply has nothing to show.
func (e *Engine) History(ctx context.Context, userID string) (*History, error) {
	userID, err := normalizeUserID(userID)
	if err != nil {
		return nil, err
	}

	h := &History{UserID: userID, Matches: []HistoryEntry{}}
	err = e.store.View(ctx, func(tx *store.Tx) error {
		u, err := tx.GetUser(userID)
		if err == nil {
			h.Wins = u.Wins
			h.Losses = u.Losses
		} else if !isNotFound(err) {
			return err
		}

		matches, err := tx.CompletedMatchesFor(userID)
		if err != nil {
			return err
		}
		for _, m := range matches {
			entry := HistoryEntry{
				MatchID: m.ID,
				State:   string(m.State),
				NSWin:   m.NSWin,
				EndedAt: m.LastActivity,
			}
			if seat, ok := m.Seat(userID); ok {
				team := game.TeamOf(seat)
				entry.Team = team.String()
				if m.NSWin != nil {
					won := (*m.NSWin && team == game.TeamNS) || (!*m.NSWin && team == game.TeamEW)
					entry.Won = &won
				}
			}
			h.Matches = append(h.Matches, entry)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	return h, nil
}

func cardCodes(cards []deck.Card) []string {
	codes := make([]string, len(cards))
	for i, c := range cards {
		codes[i] = c.Code()
	}
	return codes
}

func isNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}
