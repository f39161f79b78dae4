package game

import "fmt"

// Bid bounds. A bid of MinBid (0) is nil: the bidder commits to taking no
// tricks for a personal +/-100 at scoring.
const (
	MinBid = 0
	MaxBid = 13
)

// ValidBid reports whether v is inside the bid domain. Out-of-range values
// are malformed input and should be rejected before the rules run.
func ValidBid(v int) bool {
	return v >= MinBid && v <= MaxBid
}

// NextBidder returns the seat whose bid is due, or nil when bidding is done.
//
// Bidding starts left of the dealer and proceeds clockwise, so the dealer
// bids last. The fully-empty state is detected with an explicit placed-bid
// count, not by looking at any single seat's bid.
func NextBidder(h *Hand) (*Direction, error) {
	if h.BidsPlaced() >= len(h.Bids) {
		return nil, nil
	}
	seat, err := NextClockwise(h.Dealer)
	if err != nil {
		return nil, fmt.Errorf("next bidder: %w", err)
	}
	for i := 0; i < len(h.Bids); i++ {
		if h.Bids[seat] == nil {
			return &seat, nil
		}
		if seat, err = NextClockwise(seat); err != nil {
			return nil, fmt.Errorf("next bidder: %w", err)
		}
	}
	// BidsPlaced said a nil bid exists but the scan found none.
	return nil, BadState("next bidder", "bid slots inconsistent for hand %d of match %s", h.Number, h.MatchID)
}

// CheckBidder validates that seat is the next bidder on h.
func CheckBidder(h *Hand, seat Direction) error {
	next, err := NextBidder(h)
	if err != nil {
		return err
	}
	if next == nil || *next != seat {
		return &RuleError{
			Code:    CodeNotBidder,
			Message: "it is not this seat's turn to bid",
			Seat:    seat,
		}
	}
	return nil
}
