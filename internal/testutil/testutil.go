// Package testutil provides deterministic stand-ins for the engine's
// injected collaborators: the shuffler, the clock, and the match ID
// generator. Production implementations live next to the interfaces they
// implement; these exist so tests can replay identical deals and timestamps.
package testutil

import (
	"fmt"
	"sync"
	"time"

	"github.com/XanaduBarchetta/swe681-spades/internal/deck"
)

// FixedShuffler returns a predetermined deck order on every call.
//
// The zero value deals the canonical Full() order: all spades to the first
// seat, hearts to the second, clubs to the third, diamonds to the fourth.
// That extreme layout makes whole hands scriptable in tests.
type FixedShuffler struct {
	// Cards is the order to deal. Empty means deck.Full() order.
	Cards []deck.Card
}

// Shuffle returns a copy of the fixed order.
func (f *FixedShuffler) Shuffle() ([]deck.Card, error) {
	src := f.Cards
	if len(src) == 0 {
		src = deck.Full()
	}
	if len(src) != deck.Size {
		return nil, fmt.Errorf("fixed shuffler holds %d cards, want %d", len(src), deck.Size)
	}
	out := make([]deck.Card, len(src))
	copy(out, src)
	return out, nil
}

// FixedClock is a settable clock for tests.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type FixedClock struct {
	mu sync.Mutex
	t  time.Time
}

// NewFixedClock creates a clock pinned to t.
func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{t: t}
}

// Now returns the pinned instant.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

// Advance moves the clock forward by d.
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// FixedTokens returns predetermined match IDs in order.
//
// Panics when exhausted. This is a fail-fast approach to catch test
// misconfiguration (the test created more matches than expected).
type FixedTokens struct {
	mu     sync.Mutex
	tokens []string
	idx    int
}

// NewFixedTokens creates a generator that returns tokens in order.
func NewFixedTokens(tokens ...string) *FixedTokens {
	return &FixedTokens{tokens: tokens}
}

// Generate returns the next predetermined token.
func (g *FixedTokens) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.tokens) {
		panic("FixedTokens: all tokens exhausted")
	}
	token := g.tokens[g.idx]
	g.idx++
	return token
}
