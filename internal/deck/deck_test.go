package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFull_FiftyTwoDistinct(t *testing.T) {
	cards := Full()
	require.Len(t, cards, Size)

	seen := make(map[Card]bool, Size)
	for _, c := range cards {
		assert.False(t, seen[c], "duplicate %s", c)
		seen[c] = true
	}
}

func TestShuffle_IsPermutation(t *testing.T) {
	want := make(map[Card]bool, Size)
	for _, c := range Full() {
		want[c] = true
	}

	var sh CryptoShuffler
	for run := 0; run < 20; run++ {
		cards, err := sh.Shuffle()
		require.NoError(t, err)
		require.Len(t, cards, Size)

		seen := make(map[Card]bool, Size)
		for _, c := range cards {
			require.True(t, want[c], "unknown card %s", c)
			require.False(t, seen[c], "duplicate card %s", c)
			seen[c] = true
		}
	}
}

func TestShuffle_DoesNotMutateSharedState(t *testing.T) {
	var sh CryptoShuffler
	a, err := sh.Shuffle()
	require.NoError(t, err)

	b, err := sh.Shuffle()
	require.NoError(t, err)

	// Writing into one result must not affect the other or the full deck.
	a[0] = Card{Rank: 2, Suit: Hearts}
	assert.Equal(t, Card{Rank: 2, Suit: Spades}, Full()[0])
	assert.Len(t, b, Size)
}

func TestShuffle_NoPositionalBias(t *testing.T) {
	// Every card should land in the first position eventually. With 1000
	// runs each of the 52 cards has expected count ~19; seeing fewer than 5
	// distinct leaders would mean the shuffle is badly broken. This is a
	// coarse smoke check, not a statistical proof.
	const runs = 1000

	var sh CryptoShuffler
	leaders := make(map[Card]int)
	for i := 0; i < runs; i++ {
		cards, err := sh.Shuffle()
		require.NoError(t, err)
		leaders[cards[0]]++
	}

	assert.Greater(t, len(leaders), 30, "first position should vary widely")
	for c, n := range leaders {
		assert.Less(t, n, runs/5, "card %s leads suspiciously often", c)
	}
}

func TestRandomIndex_Bounds(t *testing.T) {
	for _, n := range []int{1, 2, 3, 13, 52} {
		for i := 0; i < 200; i++ {
			v, err := randomIndex(n)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, v, 0)
			assert.Less(t, v, n)
		}
	}

	_, err := randomIndex(0)
	assert.Error(t, err)
}
