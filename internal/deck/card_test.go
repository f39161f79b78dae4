package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCard_RoundTrip(t *testing.T) {
	for _, c := range Full() {
		parsed, err := ParseCard(c.Code())
		require.NoError(t, err, "code %s", c.Code())
		assert.Equal(t, c, parsed)
	}
}

func TestParseCard_Rejects(t *testing.T) {
	bad := []string{
		"",
		"2S",
		"002S",
		"01S", // below MinRank
		"15S", // above MaxRank
		"00H",
		"14X", // unknown suit
		"ABS",
		"14s", // lower case suit
	}
	for _, code := range bad {
		_, err := ParseCard(code)
		assert.Error(t, err, "code %q", code)
	}
}

func TestCard_CodeIsZeroPadded(t *testing.T) {
	assert.Equal(t, "02S", Card{Rank: 2, Suit: Spades}.Code())
	assert.Equal(t, "10H", Card{Rank: 10, Suit: Hearts}.Code())
	assert.Equal(t, "14D", Card{Rank: 14, Suit: Diamonds}.Code())
}

func TestCard_Beats(t *testing.T) {
	mustParse := func(code string) Card {
		c, err := ParseCard(code)
		require.NoError(t, err)
		return c
	}

	tests := []struct {
		a, b string
		lead Suit
		want bool
	}{
		{"09H", "03H", Hearts, true},   // same suit, higher rank
		{"03H", "09H", Hearts, false},  // same suit, lower rank
		{"02S", "14H", Hearts, true},   // any spade beats non-spades
		{"14H", "02S", Hearts, false},  // nothing beats a spade but a spade
		{"14S", "02S", Hearts, true},   // spades compare by rank
		{"05H", "14C", Hearts, true},   // lead suit beats off-suit
		{"14C", "05H", Hearts, false},  // off-suit loses to lead suit
		{"14C", "14D", Hearts, false},  // two off-suit cards: no ordering
	}
	for _, tt := range tests {
		got := mustParse(tt.a).Beats(mustParse(tt.b), tt.lead)
		assert.Equal(t, tt.want, got, "%s vs %s lead %s", tt.a, tt.b, tt.lead)
	}
}
