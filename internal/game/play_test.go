package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XanaduBarchetta/swe681-spades/internal/deck"
)

func card(t *testing.T, code string) deck.Card {
	t.Helper()
	c, err := deck.ParseCard(code)
	require.NoError(t, err)
	return c
}

func cardp(t *testing.T, code string) *deck.Card {
	c := card(t, code)
	return &c
}

func suitp(s deck.Suit) *deck.Suit { return &s }

func TestNextPlayer_ClockwiseFromLead(t *testing.T) {
	tr := &Trick{Number: 1, LeadPlayer: East}

	order := []Direction{East, South, West, North}
	for i, want := range order {
		next, err := NextPlayer(tr)
		require.NoError(t, err)
		require.NotNil(t, next, "play %d", i)
		assert.Equal(t, want, *next)
		tr.Plays[*next] = cardp(t, "05H")
	}

	next, err := NextPlayer(tr)
	require.NoError(t, err)
	assert.Nil(t, next, "trick full")
}

func TestCheckPlay_SpadesNotBroken(t *testing.T) {
	h := &Hand{Number: 1, SpadesBroken: false}
	tr := &Trick{Number: 1, LeadPlayer: North}
	held := []deck.Card{card(t, "02S"), card(t, "05H")}

	err := CheckPlay(tr, h, North, card(t, "02S"), held)
	require.Error(t, err)
	assert.Equal(t, CodeSpadesNotBroken, RuleCodeOf(err))

	// Leading the heart is fine and must not break spades by itself.
	require.NoError(t, CheckPlay(tr, h, North, card(t, "05H"), held))
	assert.False(t, h.SpadesBroken)
}

func TestCheckPlay_SpadeLeadForcedWhenOnlySpadesHeld(t *testing.T) {
	h := &Hand{Number: 1, SpadesBroken: false}
	tr := &Trick{Number: 5, LeadPlayer: North}
	held := []deck.Card{card(t, "02S"), card(t, "09S")}

	require.NoError(t, CheckPlay(tr, h, North, card(t, "02S"), held))
}

func TestCheckPlay_SpadeLeadAfterBroken(t *testing.T) {
	h := &Hand{Number: 1, SpadesBroken: true}
	tr := &Trick{Number: 5, LeadPlayer: North}
	held := []deck.Card{card(t, "02S"), card(t, "05H")}

	require.NoError(t, CheckPlay(tr, h, North, card(t, "02S"), held))
}

func TestCheckPlay_MustFollowSuit(t *testing.T) {
	h := &Hand{Number: 1}
	tr := &Trick{
		Number:     2,
		LeadPlayer: North,
		LeadSuit:   suitp(deck.Hearts),
	}
	tr.Plays[North] = cardp(t, "07H")

	held := []deck.Card{card(t, "03H"), card(t, "09C")}
	err := CheckPlay(tr, h, East, card(t, "09C"), held)
	require.Error(t, err)
	assert.Equal(t, CodeMustFollowSuit, RuleCodeOf(err))

	// Void in hearts: the club becomes legal.
	held = []deck.Card{card(t, "09C")}
	require.NoError(t, CheckPlay(tr, h, East, card(t, "09C"), held))
}

func TestCheckPlay_NotYourTurn(t *testing.T) {
	h := &Hand{Number: 1}
	tr := &Trick{Number: 1, LeadPlayer: East}

	err := CheckPlay(tr, h, West, card(t, "05H"), []deck.Card{card(t, "05H")})
	require.Error(t, err)
	assert.Equal(t, CodeNotYourTurn, RuleCodeOf(err))
}

func TestResolveTrick_SpadeBeatsAll(t *testing.T) {
	tr := &Trick{
		Number:     3,
		LeadPlayer: East,
		LeadSuit:   suitp(deck.Hearts),
	}
	tr.Plays[North] = cardp(t, "14S")
	tr.Plays[East] = cardp(t, "02H")
	tr.Plays[South] = cardp(t, "05H")
	tr.Plays[West] = cardp(t, "10H")

	winner, err := ResolveTrick(tr)
	require.NoError(t, err)
	assert.Equal(t, North, winner, "the only spade wins")
}

func TestResolveTrick_LowSpadeStillWins(t *testing.T) {
	tr := &Trick{
		Number:     3,
		LeadPlayer: East,
		LeadSuit:   suitp(deck.Hearts),
	}
	tr.Plays[North] = cardp(t, "02S")
	tr.Plays[East] = cardp(t, "14H")
	tr.Plays[South] = cardp(t, "13H")
	tr.Plays[West] = cardp(t, "10H")

	winner, err := ResolveTrick(tr)
	require.NoError(t, err)
	assert.Equal(t, North, winner)
}

func TestResolveTrick_HighestOfLeadSuit(t *testing.T) {
	tr := &Trick{
		Number:     4,
		LeadPlayer: North,
		LeadSuit:   suitp(deck.Hearts),
	}
	tr.Plays[North] = cardp(t, "05H")
	tr.Plays[East] = cardp(t, "02H")
	tr.Plays[South] = cardp(t, "09H")
	tr.Plays[West] = cardp(t, "03H")

	winner, err := ResolveTrick(tr)
	require.NoError(t, err)
	assert.Equal(t, South, winner)
}

func TestResolveTrick_OffSuitNeverWins(t *testing.T) {
	tr := &Trick{
		Number:     4,
		LeadPlayer: North,
		LeadSuit:   suitp(deck.Clubs),
	}
	tr.Plays[North] = cardp(t, "02C")
	tr.Plays[East] = cardp(t, "14H")
	tr.Plays[South] = cardp(t, "14D")
	tr.Plays[West] = cardp(t, "03C")

	winner, err := ResolveTrick(tr)
	require.NoError(t, err)
	assert.Equal(t, West, winner, "high off-suit cards do not compete")
}

func TestResolveTrick_MissingPlayIsBadState(t *testing.T) {
	tr := &Trick{
		Number:     4,
		LeadPlayer: North,
		LeadSuit:   suitp(deck.Hearts),
	}
	tr.Plays[North] = cardp(t, "05H")

	_, err := ResolveTrick(tr)
	require.Error(t, err)
	assert.True(t, IsBadState(err))
}

func TestLegalPlays_FollowSuit(t *testing.T) {
	h := &Hand{Number: 1}
	tr := &Trick{
		Number:     2,
		LeadPlayer: North,
		LeadSuit:   suitp(deck.Hearts),
	}
	tr.Plays[North] = cardp(t, "07H")

	held := []deck.Card{card(t, "03H"), card(t, "08H"), card(t, "09C")}
	legal, err := LegalPlays(tr, h, East, held)
	require.NoError(t, err)
	assert.ElementsMatch(t, []deck.Card{card(t, "03H"), card(t, "08H")}, legal)
}

func TestLegalPlays_NotOnTurn(t *testing.T) {
	h := &Hand{Number: 1}
	tr := &Trick{Number: 1, LeadPlayer: North}

	legal, err := LegalPlays(tr, h, East, []deck.Card{card(t, "03H")})
	require.NoError(t, err)
	assert.Empty(t, legal)
}

func TestLegalPlays_LeadBeforeSpadesBroken(t *testing.T) {
	h := &Hand{Number: 1, SpadesBroken: false}
	tr := &Trick{Number: 2, LeadPlayer: North}

	held := []deck.Card{card(t, "02S"), card(t, "05H"), card(t, "09C")}
	legal, err := LegalPlays(tr, h, North, held)
	require.NoError(t, err)
	assert.ElementsMatch(t, []deck.Card{card(t, "05H"), card(t, "09C")}, legal)
}
