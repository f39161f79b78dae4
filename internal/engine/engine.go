package engine

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/XanaduBarchetta/swe681-spades/internal/deck"
	"github.com/XanaduBarchetta/swe681-spades/internal/game"
	"github.com/XanaduBarchetta/swe681-spades/internal/store"
)

// Clock supplies the current time for last_activity and last_play stamps.
// Implemented by SystemClock (production) and testutil.FixedClock (tests).
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// TokenGenerator generates unique match IDs.
// Implemented by UUIDv7Generator (production) and testutil.FixedTokens (tests).
type TokenGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 match IDs, which keeps
// match listings in creation order for free.
//
// Thread-safety: stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 as a hyphenated string.
// Panics if UUID generation fails (should never happen in practice).
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Engine exposes the public operations of the spades rules engine.
type Engine struct {
	store    *store.Store
	shuffler deck.Shuffler
	clock    Clock
	tokens   TokenGenerator
	log      *slog.Logger
	winScore int
}

// Option configures an Engine.
type Option func(*Engine)

// WithShuffler substitutes the deck shuffler.
func WithShuffler(s deck.Shuffler) Option {
	return func(e *Engine) { e.shuffler = s }
}

// WithClock substitutes the time source.
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithTokenGenerator substitutes the match ID generator.
func WithTokenGenerator(g TokenGenerator) Option {
	return func(e *Engine) { e.tokens = g }
}

// WithLogger sets the logger. The engine never touches process-global
// logging state.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithWinningScore overrides the match-winning threshold.
// Use a small value to keep integration tests short.
func WithWinningScore(score int) Option {
	return func(e *Engine) { e.winScore = score }
}

// New creates an Engine over the given store with production defaults:
// crypto shuffler, system clock, UUIDv7 match IDs, slog default logger,
// 500-point winning threshold.
func New(s *store.Store, opts ...Option) *Engine {
	e := &Engine{
		store:    s,
		shuffler: deck.CryptoShuffler{},
		clock:    SystemClock{},
		tokens:   UUIDv7Generator{},
		log:      slog.Default(),
		winScore: game.DefaultWinningScore,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// InputError is malformed user input: a bid outside 0..13 or an
// unparseable card code. Rejected before any rules run.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

// IsInputError reports whether err is malformed input.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}

// ErrNoActiveMatch is returned by actions that require the user to be
// seated in a FILLING or IN_PROGRESS match.
var ErrNoActiveMatch = errors.New("user has no active match")

// normalizeUserID canonicalizes an authenticated user ID at the identity
// boundary. IDs arriving from different clients may differ only in Unicode
// normalization form; NFC keeps "josé" equal to "josé".
func normalizeUserID(userID string) (string, error) {
	id := norm.NFC.String(strings.TrimSpace(userID))
	if id == "" {
		return "", &InputError{Message: "user ID must not be empty"}
	}
	return id, nil
}

// badState logs an invariant violation at error level and returns it.
// Centralized so no detected corruption can go unlogged.
func (e *Engine) badState(err *game.StateError) error {
	e.log.Error("invariant violation", "op", err.Op, "detail", err.Message)
	return err
}

// escalate routes rule-layer errors: invariant violations get logged
// through badState, everything else passes through unchanged.
func (e *Engine) escalate(err error) error {
	var bs *game.StateError
	if errors.As(err, &bs) {
		return e.badState(bs)
	}
	return err
}

func (e *Engine) wrapBadState(op, format string, args ...any) error {
	return e.badState(game.BadState(op, format, args...))
}

// requireInProgress rejects actions against matches in any other state.
// Terminal states (ABANDONED, FORFEITED, COMPLETED) can be set externally
// at any time, so every action re-checks before mutating.
func (e *Engine) requireInProgress(op string, m *game.Match) error {
	if m.State != game.StateInProgress {
		return e.wrapBadState(op, "match %s is %s, not IN_PROGRESS", m.ID, m.State)
	}
	return nil
}
