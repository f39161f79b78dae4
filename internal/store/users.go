package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// User is the persisted win/loss record. Credentials live elsewhere; the
// engine trusts the authenticated userID it is handed.
type User struct {
	ID     string
	Wins   int
	Losses int
}

// EnsureUser creates the user row if absent. Idempotent.
func (t *Tx) EnsureUser(userID string) error {
	_, err := t.tx.ExecContext(t.ctx, `
		INSERT INTO users (user_id) VALUES (?)
		ON CONFLICT(user_id) DO NOTHING
	`, userID)
	if err != nil {
		return fmt.Errorf("ensure user %s: %w", userID, err)
	}
	return nil
}

// GetUser returns the user's record, or ErrNotFound.
func (t *Tx) GetUser(userID string) (*User, error) {
	var u User
	err := t.tx.QueryRowContext(t.ctx,
		`SELECT user_id, wins, losses FROM users WHERE user_id = ?`, userID,
	).Scan(&u.ID, &u.Wins, &u.Losses)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user %s: %w", userID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", userID, err)
	}
	return &u, nil
}

// RecordResult increments the user's win or loss counter.
func (t *Tx) RecordResult(userID string, won bool) error {
	col := "losses"
	if won {
		col = "wins"
	}
	res, err := t.tx.ExecContext(t.ctx,
		fmt.Sprintf(`UPDATE users SET %s = %s + 1 WHERE user_id = ?`, col, col), userID)
	if err != nil {
		return fmt.Errorf("record result for %s: %w", userID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("record result for %s: %w", userID, err)
	}
	if n == 0 {
		return fmt.Errorf("record result for %s: %w", userID, ErrNotFound)
	}
	return nil
}
