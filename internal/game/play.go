package game

import (
	"fmt"

	"github.com/XanaduBarchetta/swe681-spades/internal/deck"
)

// TricksPerHand is the number of tricks in one hand.
const TricksPerHand = 13

// NextPlayer returns the seat whose play is due on t, or nil when all four
// seats have played. The scan starts at the lead seat and proceeds clockwise.
func NextPlayer(t *Trick) (*Direction, error) {
	seat := t.LeadPlayer
	if !seat.Valid() {
		return nil, fmt.Errorf("next player: %w", ErrInvalidDirection)
	}
	for i := 0; i < len(t.Plays); i++ {
		if t.Plays[seat] == nil {
			return &seat, nil
		}
		var err error
		if seat, err = NextClockwise(seat); err != nil {
			return nil, fmt.Errorf("next player: %w", err)
		}
	}
	return nil, nil
}

// CheckPlay validates that seat may play card on t given the seat's unplayed
// cards. It enforces turn order, the spade-breaking lead rule, and
// follow-suit. held must be the seat's unplayed cards including card itself;
// ownership (CardNotInHand) is checked by the caller against the persisted
// HandCard rows before legality runs.
func CheckPlay(t *Trick, h *Hand, seat Direction, card deck.Card, held []deck.Card) error {
	next, err := NextPlayer(t)
	if err != nil {
		return err
	}
	if next == nil || *next != seat {
		return &RuleError{
			Code:    CodeNotYourTurn,
			Message: "it is not this seat's turn to play",
			Seat:    seat,
		}
	}

	if seat == t.LeadPlayer {
		// Leading a spade requires spades broken, unless the seat holds
		// nothing but spades and the lead is forced.
		if card.IsSpade() && !h.SpadesBroken && holdsNonSpade(held) {
			return &RuleError{
				Code:    CodeSpadesNotBroken,
				Message: "cannot lead a spade before spades are broken",
				Seat:    seat,
			}
		}
		return nil
	}

	if t.LeadSuit == nil {
		return BadState("check play", "non-lead play with no lead suit on trick %d", t.Number)
	}
	if card.Suit != *t.LeadSuit && holdsSuit(held, *t.LeadSuit) {
		return &RuleError{
			Code:    CodeMustFollowSuit,
			Message: fmt.Sprintf("must follow the %s lead", t.LeadSuit),
			Seat:    seat,
		}
	}
	return nil
}

func holdsNonSpade(held []deck.Card) bool {
	for _, c := range held {
		if !c.IsSpade() {
			return true
		}
	}
	return false
}

func holdsSuit(held []deck.Card, s deck.Suit) bool {
	for _, c := range held {
		if c.Suit == s {
			return true
		}
	}
	return false
}

// ResolveTrick returns the winning seat of a trick with all four plays made:
// the highest spade if any was played, otherwise the highest card of the
// lead suit.
func ResolveTrick(t *Trick) (Direction, error) {
	if t.LeadSuit == nil {
		return 0, BadState("resolve trick", "trick %d has no lead suit", t.Number)
	}
	var winner Direction
	var best *deck.Card
	for _, d := range Directions {
		play := t.Plays[d]
		if play == nil {
			return 0, BadState("resolve trick", "trick %d resolved with missing play from %s", t.Number, d)
		}
		if best == nil || play.Beats(*best, *t.LeadSuit) {
			winner = d
			best = play
		}
	}
	return winner, nil
}

// LegalPlays filters held (a seat's unplayed cards) down to the cards
// CheckPlay would accept right now. Used by the playable-cards projection.
func LegalPlays(t *Trick, h *Hand, seat Direction, held []deck.Card) ([]deck.Card, error) {
	next, err := NextPlayer(t)
	if err != nil {
		return nil, err
	}
	if next == nil || *next != seat {
		return []deck.Card{}, nil
	}
	legal := make([]deck.Card, 0, len(held))
	for _, c := range held {
		if err := CheckPlay(t, h, seat, c, held); err == nil {
			legal = append(legal, c)
		} else if !IsRuleViolation(err) {
			return nil, err
		}
	}
	return legal, nil
}
