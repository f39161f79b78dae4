package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/XanaduBarchetta/swe681-spades/internal/deck"
	"github.com/XanaduBarchetta/swe681-spades/internal/game"
)

const trickColumns = `match_id, hand_number, trick_number, lead_player,
	north_play, east_play, south_play, west_play, winner, last_play`

// InsertTrick writes a fresh trick row with no plays.
func (t *Tx) InsertTrick(tr *game.Trick) error {
	_, err := t.tx.ExecContext(t.ctx, `
		INSERT INTO tricks (match_id, hand_number, trick_number, lead_player, last_play)
		VALUES (?, ?, ?, ?, ?)
	`, tr.MatchID, tr.HandNumber, tr.Number, tr.LeadPlayer.String(), formatTime(tr.LastPlay))
	if err != nil {
		return fmt.Errorf("insert trick %d of hand %d: %w", tr.Number, tr.HandNumber, err)
	}
	return nil
}

// CurrentTrick returns the highest-numbered trick of the hand, or
// ErrNotFound if the hand has none (which IN_PROGRESS invariants forbid).
func (t *Tx) CurrentTrick(matchID string, handNumber int) (*game.Trick, error) {
	row := t.tx.QueryRowContext(t.ctx, `
		SELECT `+trickColumns+` FROM tricks
		WHERE match_id = ? AND hand_number = ?
		ORDER BY trick_number DESC
		LIMIT 1
	`, matchID, handNumber)
	tr, err := scanTrick(row)
	if err != nil {
		return nil, fmt.Errorf("current trick of hand %d in match %s: %w", handNumber, matchID, err)
	}
	return tr, nil
}

// SetPlay records seat's card into its slot, guarded on the slot being
// empty. False means the slot was already filled: a duplicate play lost the
// race and the caller must treat the state as corrupted rather than
// overwrite a committed play.
func (t *Tx) SetPlay(matchID string, handNumber, trickNumber int, seat game.Direction, card deck.Card, at time.Time) (bool, error) {
	col, err := playColumn(seat)
	if err != nil {
		return false, err
	}
	res, err := t.tx.ExecContext(t.ctx, fmt.Sprintf(`
		UPDATE tricks SET %s = ?, last_play = ?
		WHERE match_id = ? AND hand_number = ? AND trick_number = ? AND %s IS NULL
	`, col, col), card.Code(), formatTime(at), matchID, handNumber, trickNumber)
	if err != nil {
		return false, fmt.Errorf("set %s play on trick %d: %w", seat, trickNumber, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("set %s play on trick %d: %w", seat, trickNumber, err)
	}
	return n == 1, nil
}

// SetWinner resolves the trick, guarded on it being unresolved. A resolved
// trick is immutable.
func (t *Tx) SetWinner(matchID string, handNumber, trickNumber int, winner game.Direction) (bool, error) {
	res, err := t.tx.ExecContext(t.ctx, `
		UPDATE tricks SET winner = ?
		WHERE match_id = ? AND hand_number = ? AND trick_number = ? AND winner IS NULL
	`, winner.String(), matchID, handNumber, trickNumber)
	if err != nil {
		return false, fmt.Errorf("set winner on trick %d: %w", trickNumber, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("set winner on trick %d: %w", trickNumber, err)
	}
	return n == 1, nil
}

// TrickCounts tallies resolved tricks per winning seat for the hand.
func (t *Tx) TrickCounts(matchID string, handNumber int) ([4]int, error) {
	var counts [4]int
	rows, err := t.tx.QueryContext(t.ctx, `
		SELECT winner, COUNT(*) FROM tricks
		WHERE match_id = ? AND hand_number = ? AND winner IS NOT NULL
		GROUP BY winner
	`, matchID, handNumber)
	if err != nil {
		return counts, fmt.Errorf("trick counts for hand %d: %w", handNumber, err)
	}
	defer rows.Close()

	for rows.Next() {
		var winner string
		var n int
		if err := rows.Scan(&winner, &n); err != nil {
			return counts, fmt.Errorf("trick counts for hand %d: %w", handNumber, err)
		}
		d, err := game.ParseDirection(winner)
		if err != nil {
			return counts, fmt.Errorf("trick counts for hand %d: %w", handNumber, err)
		}
		counts[d] = n
	}
	if err := rows.Err(); err != nil {
		return counts, fmt.Errorf("trick counts for hand %d: %w", handNumber, err)
	}
	return counts, nil
}

func scanTrick(row scanner) (*game.Trick, error) {
	var (
		tr             game.Trick
		lead, lastPlay string
		np, ep, sp, wp sql.NullString
		winner         sql.NullString
	)
	err := row.Scan(&tr.MatchID, &tr.HandNumber, &tr.Number, &lead,
		&np, &ep, &sp, &wp, &winner, &lastPlay)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if tr.LeadPlayer, err = game.ParseDirection(lead); err != nil {
		return nil, err
	}
	if tr.LastPlay, err = parseTime(lastPlay); err != nil {
		return nil, err
	}
	for seat, col := range map[game.Direction]sql.NullString{
		game.North: np, game.East: ep, game.South: sp, game.West: wp,
	} {
		if !col.Valid {
			continue
		}
		c, err := deck.ParseCard(col.String)
		if err != nil {
			return nil, err
		}
		card := c
		tr.Plays[seat] = &card
	}
	// The lead suit is not stored; it is the suit of the lead seat's play.
	if lp := tr.Plays[tr.LeadPlayer]; lp != nil {
		suit := lp.Suit
		tr.LeadSuit = &suit
	}
	if winner.Valid {
		d, err := game.ParseDirection(winner.String)
		if err != nil {
			return nil, err
		}
		tr.Winner = &d
	}
	return &tr, nil
}

func playColumn(seat game.Direction) (string, error) {
	switch seat {
	case game.North:
		return "north_play", nil
	case game.East:
		return "east_play", nil
	case game.South:
		return "south_play", nil
	case game.West:
		return "west_play", nil
	}
	return "", fmt.Errorf("play column: %w", game.ErrInvalidDirection)
}
