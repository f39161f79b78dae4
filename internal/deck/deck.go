// Package deck defines the 52-card deck and its shuffling.
//
// Shuffles use crypto/rand, not math/rand: shuffle outcomes must not be
// predictable by an adversary who has observed other shuffles. The index
// primitive uses rejection sampling so every permutation is equally likely
// (no modulo bias).
package deck

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
)

// Size is the number of cards in a full deck.
const Size = 52

// Full returns the 52-card deck in canonical order: spades, hearts, clubs,
// diamonds, each suit ascending from 2 to Ace.
func Full() []Card {
	cards := make([]Card, 0, Size)
	for _, s := range []Suit{Spades, Hearts, Clubs, Diamonds} {
		for r := MinRank; r <= MaxRank; r++ {
			cards = append(cards, Card{Rank: r, Suit: s})
		}
	}
	return cards
}

// Shuffler produces a full deck in play order.
//
// Implemented by CryptoShuffler (production) and testutil.FixedShuffler
// (deterministic tests).
type Shuffler interface {
	Shuffle() ([]Card, error)
}

// CryptoShuffler shuffles with a cryptographically strong source.
// Stateless and safe for concurrent use.
type CryptoShuffler struct{}

// Shuffle returns a uniformly random permutation of the full deck using
// Fisher-Yates over randomIndex.
func (CryptoShuffler) Shuffle() ([]Card, error) {
	cards := Full()
	for i := len(cards) - 1; i > 0; i-- {
		j, err := randomIndex(i + 1)
		if err != nil {
			return nil, fmt.Errorf("shuffle: %w", err)
		}
		cards[i], cards[j] = cards[j], cards[i]
	}
	return cards, nil
}

// randomIndex returns a uniform value in [0, n) from crypto/rand.
//
// Rejection sampling: draw a uint32 and retry while it falls in the biased
// tail above the largest multiple of n. The retry probability is negligible
// for n <= 52.
func randomIndex(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("random index: non-positive bound %d", n)
	}
	if n == 1 {
		return 0, nil
	}
	limit := (1 << 32) / uint64(n) * uint64(n)
	var buf [4]byte
	for {
		if _, err := rand.Read(buf[:]); err != nil {
			return 0, fmt.Errorf("random index: %w", err)
		}
		v := uint64(binary.BigEndian.Uint32(buf[:]))
		if v < limit {
			return int(v % uint64(n)), nil
		}
	}
}
