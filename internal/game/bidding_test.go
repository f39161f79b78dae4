package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func TestNextBidder_FreshHand(t *testing.T) {
	h := &Hand{Number: 1, Dealer: North}

	next, err := NextBidder(h)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, East, *next, "bidding starts left of the dealer")
}

func TestNextBidder_FullRotation(t *testing.T) {
	// Dealer NORTH: bids are due from EAST, SOUTH, WEST, NORTH, then done.
	h := &Hand{Number: 1, Dealer: North}
	wantOrder := []Direction{East, South, West, North}

	for i, want := range wantOrder {
		next, err := NextBidder(h)
		require.NoError(t, err)
		require.NotNil(t, next, "bidder %d", i)
		assert.Equal(t, want, *next)
		h.Bids[*next] = intp(i + 1)
	}

	next, err := NextBidder(h)
	require.NoError(t, err)
	assert.Nil(t, next, "all bids placed")
}

func TestNextBidder_WrappedDealer(t *testing.T) {
	// Dealer WEST: first bidder is NORTH even though NORTH's slot is the
	// first in storage order.
	h := &Hand{Number: 2, Dealer: West}

	next, err := NextBidder(h)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, North, *next)

	// After NORTH and EAST bid, SOUTH is due. The dealer's own bid is still
	// nil here, which must not read as "bidding not started".
	h.Bids[North] = intp(3)
	h.Bids[East] = intp(4)

	next, err = NextBidder(h)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, South, *next)
}

func TestCheckBidder(t *testing.T) {
	h := &Hand{Number: 1, Dealer: North}

	require.NoError(t, CheckBidder(h, East))

	err := CheckBidder(h, South)
	require.Error(t, err)
	assert.True(t, IsRuleViolation(err))
	assert.Equal(t, CodeNotBidder, RuleCodeOf(err))
}

func TestCheckBidder_BiddingClosed(t *testing.T) {
	h := &Hand{Number: 1, Dealer: North}
	for _, d := range Directions {
		h.Bids[d] = intp(3)
	}

	err := CheckBidder(h, East)
	assert.Equal(t, CodeNotBidder, RuleCodeOf(err))
}

func TestValidBid(t *testing.T) {
	assert.True(t, ValidBid(0))
	assert.True(t, ValidBid(13))
	assert.False(t, ValidBid(-1))
	assert.False(t, ValidBid(14))
}
