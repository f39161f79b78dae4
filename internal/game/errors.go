package game

import (
	"errors"
	"fmt"
)

// ErrInvalidDirection is returned for direction values outside the 4-seat
// domain. Reaching it indicates corrupted persisted data, not user error.
var ErrInvalidDirection = errors.New("invalid direction")

// RuleError is a rejected user action.
//
// Rule errors are the expected, user-facing outcomes of the rules engine:
// the action was understood but is illegal in the current state. They never
// corrupt state and are always safe to retry with a corrected action.
type RuleError struct {
	// Code identifies the violated rule.
	Code RuleCode

	// Message is a human-readable description.
	Message string

	// Seat is the acting seat, when known.
	Seat Direction
}

// RuleCode categorizes rule violations.
type RuleCode string

const (
	// CodeNotBidder indicates the user bid out of turn.
	CodeNotBidder RuleCode = "NOT_BIDDER"

	// CodeNotYourTurn indicates the user played a card out of turn.
	CodeNotYourTurn RuleCode = "NOT_YOUR_TURN"

	// CodeCardNotInHand indicates the card is not held, or already played.
	CodeCardNotInHand RuleCode = "CARD_NOT_IN_HAND"

	// CodeSpadesNotBroken indicates a spade lead before spades were broken.
	CodeSpadesNotBroken RuleCode = "SPADES_NOT_BROKEN"

	// CodeMustFollowSuit indicates an off-suit play while holding the lead suit.
	CodeMustFollowSuit RuleCode = "MUST_FOLLOW_SUIT"
)

// Error implements the error interface.
func (e *RuleError) Error() string {
	return fmt.Sprintf("%s: %s (seat=%s)", e.Code, e.Message, e.Seat)
}

// IsRuleViolation reports whether err is any rule violation.
// Uses errors.As to handle wrapped errors.
func IsRuleViolation(err error) bool {
	var re *RuleError
	return errors.As(err, &re)
}

// RuleCodeOf returns the violated rule's code, or "" if err is not a
// rule violation.
func RuleCodeOf(err error) RuleCode {
	var re *RuleError
	if errors.As(err, &re) {
		return re.Code
	}
	return ""
}

// StateError is a detected impossible state: a duplicate write that lost a
// race, a missing row the schema guarantees, a score that cannot arise from
// legal play. State errors always roll the transaction back, are logged at
// the highest severity, and surface to callers as a generic failure. They are
// never silently swallowed.
type StateError struct {
	// Op names the operation that detected the corruption.
	Op string

	// Message describes what was found.
	Message string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("bad state in %s: %s", e.Op, e.Message)
}

// IsBadState reports whether err is an invariant violation.
func IsBadState(err error) bool {
	var se *StateError
	return errors.As(err, &se)
}

// BadState constructs a StateError.
func BadState(op, format string, args ...any) *StateError {
	return &StateError{Op: op, Message: fmt.Sprintf(format, args...)}
}
