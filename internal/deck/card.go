package deck

import "fmt"

// Suit is one of the four French suits, identified by its code letter.
type Suit byte

const (
	Spades   Suit = 'S'
	Hearts   Suit = 'H'
	Clubs    Suit = 'C'
	Diamonds Suit = 'D'
)

// Valid reports whether s is one of the four defined suits.
func (s Suit) Valid() bool {
	switch s {
	case Spades, Hearts, Clubs, Diamonds:
		return true
	}
	return false
}

func (s Suit) String() string {
	return string(byte(s))
}

// Rank bounds. Jack = 11, Queen = 12, King = 13, Ace = 14 (Aces beat Kings).
const (
	MinRank = 2
	MaxRank = 14
)

// Card is an immutable playing card value.
//
// The wire form is a 3-character code: a zero-padded 2-digit rank followed by
// the suit letter, e.g. "02S", "10H", "14D". The zero padding is load-bearing:
// it makes lexicographic order agree with rank order within a suit, and
// external callers sort on the raw code.
type Card struct {
	Rank int
	Suit Suit
}

// Code returns the 3-character wire form of the card.
func (c Card) Code() string {
	return fmt.Sprintf("%02d%c", c.Rank, byte(c.Suit))
}

func (c Card) String() string {
	return c.Code()
}

// IsSpade reports whether the card is in the spade suit.
func (c Card) IsSpade() bool {
	return c.Suit == Spades
}

// Beats reports whether c wins over other in a trick where leadSuit was led.
// Spades trump everything; otherwise only cards of the lead suit compete,
// compared by numeric rank (Ace high). Comparing two off-suit non-spades is
// meaningless and returns false.
func (c Card) Beats(other Card, leadSuit Suit) bool {
	if c.Suit == other.Suit {
		return c.Rank > other.Rank
	}
	if c.IsSpade() {
		return true
	}
	if other.IsSpade() {
		return false
	}
	return c.Suit == leadSuit && other.Suit != leadSuit
}

// ParseCard parses a 3-character card code. It rejects anything outside the
// 52-card domain so malformed user input never reaches the rules engine.
func ParseCard(code string) (Card, error) {
	if len(code) != 3 {
		return Card{}, fmt.Errorf("parse card %q: want 3 characters", code)
	}
	hi, lo := code[0], code[1]
	if hi < '0' || hi > '9' || lo < '0' || lo > '9' {
		return Card{}, fmt.Errorf("parse card %q: bad rank", code)
	}
	rank := int(hi-'0')*10 + int(lo-'0')
	if rank < MinRank || rank > MaxRank {
		return Card{}, fmt.Errorf("parse card %q: rank %d out of range", code, rank)
	}
	suit := Suit(code[2])
	if !suit.Valid() {
		return Card{}, fmt.Errorf("parse card %q: bad suit", code)
	}
	return Card{Rank: rank, Suit: suit}, nil
}
