package store

import (
	"fmt"

	"github.com/XanaduBarchetta/swe681-spades/internal/deck"
	"github.com/XanaduBarchetta/swe681-spades/internal/game"
)

// InsertHandCards bulk-creates the ownership rows for a deal: 13 per seat,
// all unplayed. Runs inside the same transaction as hand creation and
// seating, so a partially dealt hand can never be observed.
func (t *Tx) InsertHandCards(cards []game.HandCard) error {
	stmt, err := t.tx.PrepareContext(t.ctx, `
		INSERT INTO hand_cards (match_id, hand_number, user_id, card, played)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("insert hand cards: %w", err)
	}
	defer stmt.Close()

	for _, hc := range cards {
		if _, err := stmt.ExecContext(t.ctx,
			hc.MatchID, hc.HandNumber, hc.UserID, hc.Card.Code(), hc.Played); err != nil {
			return fmt.Errorf("insert hand card %s for %s: %w", hc.Card, hc.UserID, err)
		}
	}
	return nil
}

// UnplayedCards returns the user's remaining cards for the hand, in code
// order. The zero-padded card codes make that rank order within each suit.
func (t *Tx) UnplayedCards(matchID string, handNumber int, userID string) ([]deck.Card, error) {
	rows, err := t.tx.QueryContext(t.ctx, `
		SELECT card FROM hand_cards
		WHERE match_id = ? AND hand_number = ? AND user_id = ? AND played = 0
		ORDER BY card ASC
	`, matchID, handNumber, userID)
	if err != nil {
		return nil, fmt.Errorf("unplayed cards for %s: %w", userID, err)
	}
	defer rows.Close()

	cards := []deck.Card{}
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("unplayed cards for %s: %w", userID, err)
		}
		c, err := deck.ParseCard(code)
		if err != nil {
			return nil, fmt.Errorf("unplayed cards for %s: %w", userID, err)
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unplayed cards for %s: %w", userID, err)
	}
	return cards, nil
}

// MarkPlayed flips one ownership row to played, guarded on it being held
// and unplayed. The engine validates ownership via UnplayedCards inside the
// same transaction first, so a false return here means the guard saw a
// different pre-image than validation did: corrupted state, not user error.
func (t *Tx) MarkPlayed(matchID string, handNumber int, userID string, card deck.Card) (bool, error) {
	res, err := t.tx.ExecContext(t.ctx, `
		UPDATE hand_cards SET played = 1
		WHERE match_id = ? AND hand_number = ? AND user_id = ? AND card = ? AND played = 0
	`, matchID, handNumber, userID, card.Code())
	if err != nil {
		return false, fmt.Errorf("mark %s played for %s: %w", card, userID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark %s played for %s: %w", card, userID, err)
	}
	return n == 1, nil
}
