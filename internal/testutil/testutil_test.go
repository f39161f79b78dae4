package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XanaduBarchetta/swe681-spades/internal/deck"
)

func TestFixedShuffler_DefaultsToCanonicalOrder(t *testing.T) {
	var sh FixedShuffler

	cards, err := sh.Shuffle()
	require.NoError(t, err)
	assert.Equal(t, deck.Full(), cards)

	// Mutating the result must not leak into later calls.
	cards[0] = deck.Card{Rank: 9, Suit: deck.Hearts}
	again, err := sh.Shuffle()
	require.NoError(t, err)
	assert.Equal(t, deck.Full(), again)
}

func TestFixedShuffler_RejectsShortDeck(t *testing.T) {
	sh := FixedShuffler{Cards: deck.Full()[:10]}
	_, err := sh.Shuffle()
	assert.Error(t, err)
}

func TestFixedClock(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewFixedClock(start)

	assert.Equal(t, start, c.Now())
	c.Advance(time.Minute)
	assert.Equal(t, start.Add(time.Minute), c.Now())
}

func TestFixedTokens(t *testing.T) {
	g := NewFixedTokens("m-1", "m-2")
	assert.Equal(t, "m-1", g.Generate())
	assert.Equal(t, "m-2", g.Generate())
	assert.Panics(t, func() { g.Generate() })
}
