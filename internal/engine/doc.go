// Package engine orchestrates spades matches: seating, dealing, bidding,
// card play, trick resolution, and scoring.
//
// ARCHITECTURE:
//
// The engine owns no long-lived state of its own. Each public operation
// (JoinOrCreate, PlaceBid, PlayCard, and the read-only projections) loads
// the relevant rows, applies the pure rules from internal/game, and commits
// the mutation - all inside a single exclusive store transaction. Two
// actions against the same match therefore serialize fully; actions against
// different matches never block each other beyond SQLite's single writer.
//
// The engine is invoked once per user action by whatever presentation layer
// sits above it; there is no background scheduler. Cascading transitions
// (the fourth seat filling, the thirteenth trick resolving) happen inside
// the triggering action's transaction, so observers never see a match
// IN_PROGRESS without a dealt hand or a scored hand without its successor.
//
// Collaborators are injected: the shuffler (crypto-strong in production),
// the clock, the match-ID generator, and the logger. Tests substitute
// deterministic versions from internal/testutil.
//
// ERROR CONTRACT:
//
// game.RuleError - rejected action, user-facing, safe to retry corrected.
// InputError - malformed bid value or card code, rejected before any rules run.
// game.StateError - impossible persisted state or a lost write race; always
// rolled back, logged at error level, never silently swallowed.
package engine
