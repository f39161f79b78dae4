// Package store provides SQLite-backed durable storage for spades matches.
//
// The schema mirrors the engine's record model: users, matches, hands,
// hand_cards, and tricks, all keyed by composite identity
// (match_id, hand_number[, trick_number]) rather than object reference.
//
// # Locking discipline
//
// Every state-transitioning engine operation runs inside a single exclusive
// transaction (Update, which opens BEGIN IMMEDIATE). The transaction spans
// the whole read-validate-mutate-commit sequence, so a turn or legality
// decision can never be made on a value that changes before the write lands.
// Operations on the same match are fully serialized; the commit either
// persists every staged row or none of them.
//
// Guarded writes back this up at the row level: flipping a hand_cards row to
// played, filling a trick play slot, and writing a bid all use WHERE clauses
// asserting the pre-image and report zero affected rows to the caller, which
// treats that as an invariant violation rather than silently overwriting.
//
// # Database configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
package store
