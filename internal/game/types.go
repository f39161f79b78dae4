// Package game holds the pure spades rules: seats, turn order, play
// legality, trick resolution, and scoring.
//
// Everything here operates on plain value structs. Loading, locking, and
// saving those values is the store's job; the engine glues the two together.
// Keeping the rules free of persistence concerns makes every transition
// testable as a plain function.
package game

import (
	"time"

	"github.com/XanaduBarchetta/swe681-spades/internal/deck"
)

// MatchState is the lifecycle state of a match.
type MatchState string

const (
	// StateFilling means the table still has empty seats.
	StateFilling MatchState = "FILLING"

	// StateInProgress means all four seats are taken and play is underway.
	StateInProgress MatchState = "IN_PROGRESS"

	// StateAbandoned is set externally when a match idles out. Terminal.
	StateAbandoned MatchState = "ABANDONED"

	// StateForfeited is set externally on forfeit. Terminal.
	StateForfeited MatchState = "FORFEITED"

	// StateCompleted means a partnership reached the winning score. Terminal.
	StateCompleted MatchState = "COMPLETED"
)

// Terminal reports whether no further actions are accepted in s.
func (s MatchState) Terminal() bool {
	return s == StateAbandoned || s == StateForfeited || s == StateCompleted
}

// Match is one table of four seats.
type Match struct {
	ID           string
	Seats        [4]string // userID per Direction; "" while FILLING
	State        MatchState
	CreateDate   time.Time
	LastActivity time.Time
	NSWin        *bool // set only when COMPLETED
}

// Seat returns the direction userID occupies, or false if not seated.
func (m *Match) Seat(userID string) (Direction, bool) {
	if userID == "" {
		return 0, false
	}
	for _, d := range Directions {
		if m.Seats[d] == userID {
			return d, true
		}
	}
	return 0, false
}

// Hand is one deal-to-score cycle of 13 tricks.
//
// Scores and bags are cumulative match totals as of the end of this hand;
// they stay nil until the scoring engine finalizes the hand, after which the
// row is immutable history.
type Hand struct {
	MatchID      string
	Number       int // 1-based, monotonic per match
	Dealer       Direction
	Bids         [4]*int // per Direction; nil until placed
	SpadesBroken bool
	Bags         [2]*int // per Team, cumulative, set at finalize
	Scores       [2]*int // per Team, cumulative, set at finalize
}

// BidsPlaced counts placed bids. The not-started state is exactly
// BidsPlaced() == 0; bidding is closed once it reaches 4. An explicit count
// is used rather than inferring "not started" from the dealer's bid being
// nil, which is ambiguous mid-rotation.
func (h *Hand) BidsPlaced() int {
	n := 0
	for _, b := range h.Bids {
		if b != nil {
			n++
		}
	}
	return n
}

// HandCard is an ownership record: one card dealt to one user in one hand.
// Played flips exactly once, never reverts.
type HandCard struct {
	MatchID    string
	HandNumber int
	UserID     string
	Card       deck.Card
	Played     bool
}

// Trick is one round of four plays.
type Trick struct {
	MatchID    string
	HandNumber int
	Number     int // 1..13
	LeadPlayer Direction
	LeadSuit   *deck.Suit   // nil until the lead play
	Plays      [4]*deck.Card // per Direction
	Winner     *Direction   // set on resolution; the row is then immutable
	LastPlay   time.Time
}

// PlaysMade counts the cards played to the trick so far.
func (t *Trick) PlaysMade() int {
	n := 0
	for _, p := range t.Plays {
		if p != nil {
			n++
		}
	}
	return n
}
