package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/XanaduBarchetta/swe681-spades/internal/game"
)

const handColumns = `match_id, hand_number, dealer,
	north_bid, east_bid, south_bid, west_bid, spades_broken,
	ns_bags_at_end, ew_bags_at_end, ns_score_after_bags, ew_score_after_bags`

// InsertHand writes a freshly dealt hand row. Bids and totals start null.
func (t *Tx) InsertHand(h *game.Hand) error {
	_, err := t.tx.ExecContext(t.ctx, `
		INSERT INTO hands (match_id, hand_number, dealer, spades_broken)
		VALUES (?, ?, ?, ?)
	`, h.MatchID, h.Number, h.Dealer.String(), h.SpadesBroken)
	if err != nil {
		return fmt.Errorf("insert hand %d of match %s: %w", h.Number, h.MatchID, err)
	}
	return nil
}

// CurrentHand returns the highest-numbered hand of the match, or ErrNotFound.
func (t *Tx) CurrentHand(matchID string) (*game.Hand, error) {
	row := t.tx.QueryRowContext(t.ctx, `
		SELECT `+handColumns+` FROM hands
		WHERE match_id = ?
		ORDER BY hand_number DESC
		LIMIT 1
	`, matchID)
	h, err := scanHand(row)
	if err != nil {
		return nil, fmt.Errorf("current hand of match %s: %w", matchID, err)
	}
	return h, nil
}

// GetHand returns a specific hand, or ErrNotFound.
func (t *Tx) GetHand(matchID string, number int) (*game.Hand, error) {
	row := t.tx.QueryRowContext(t.ctx,
		`SELECT `+handColumns+` FROM hands WHERE match_id = ? AND hand_number = ?`,
		matchID, number)
	h, err := scanHand(row)
	if err != nil {
		return nil, fmt.Errorf("get hand %d of match %s: %w", number, matchID, err)
	}
	return h, nil
}

// SetBid writes seat's bid, guarded on the slot still being null. A false
// return means the slot was already filled: a concurrent duplicate bid lost
// the race, which the caller reports as corrupted state.
func (t *Tx) SetBid(matchID string, handNumber int, seat game.Direction, bid int) (bool, error) {
	col, err := bidColumn(seat)
	if err != nil {
		return false, err
	}
	res, err := t.tx.ExecContext(t.ctx, fmt.Sprintf(`
		UPDATE hands SET %s = ?
		WHERE match_id = ? AND hand_number = ? AND %s IS NULL
	`, col, col), bid, matchID, handNumber)
	if err != nil {
		return false, fmt.Errorf("set %s bid on hand %d of match %s: %w", seat, handNumber, matchID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("set %s bid on hand %d of match %s: %w", seat, handNumber, matchID, err)
	}
	return n == 1, nil
}

// SetSpadesBroken flips the spade-break flag for the hand.
func (t *Tx) SetSpadesBroken(matchID string, handNumber int) error {
	_, err := t.tx.ExecContext(t.ctx, `
		UPDATE hands SET spades_broken = 1
		WHERE match_id = ? AND hand_number = ?
	`, matchID, handNumber)
	if err != nil {
		return fmt.Errorf("break spades on hand %d of match %s: %w", handNumber, matchID, err)
	}
	return nil
}

// FinalizeHand writes the cumulative score and bag totals, guarded on the
// hand not being finalized yet. A finalized hand is immutable history;
// false means something already finalized it.
func (t *Tx) FinalizeHand(matchID string, handNumber int, totals game.ScoreTotals) (bool, error) {
	res, err := t.tx.ExecContext(t.ctx, `
		UPDATE hands
		SET ns_bags_at_end = ?, ew_bags_at_end = ?, ns_score_after_bags = ?, ew_score_after_bags = ?
		WHERE match_id = ? AND hand_number = ? AND ns_score_after_bags IS NULL
	`,
		totals.Bags[game.TeamNS], totals.Bags[game.TeamEW],
		totals.Scores[game.TeamNS], totals.Scores[game.TeamEW],
		matchID, handNumber,
	)
	if err != nil {
		return false, fmt.Errorf("finalize hand %d of match %s: %w", handNumber, matchID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("finalize hand %d of match %s: %w", handNumber, matchID, err)
	}
	return n == 1, nil
}

func scanHand(row scanner) (*game.Hand, error) {
	var (
		h                            game.Hand
		dealer                       string
		nb, eb, sb, wb               sql.NullInt64
		nsBags, ewBags, nsSc, ewSc   sql.NullInt64
	)
	err := row.Scan(&h.MatchID, &h.Number, &dealer,
		&nb, &eb, &sb, &wb, &h.SpadesBroken,
		&nsBags, &ewBags, &nsSc, &ewSc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if h.Dealer, err = game.ParseDirection(dealer); err != nil {
		return nil, err
	}
	h.Bids[game.North] = nullableInt(nb)
	h.Bids[game.East] = nullableInt(eb)
	h.Bids[game.South] = nullableInt(sb)
	h.Bids[game.West] = nullableInt(wb)
	h.Bags[game.TeamNS] = nullableInt(nsBags)
	h.Bags[game.TeamEW] = nullableInt(ewBags)
	h.Scores[game.TeamNS] = nullableInt(nsSc)
	h.Scores[game.TeamEW] = nullableInt(ewSc)
	return &h, nil
}

func bidColumn(seat game.Direction) (string, error) {
	switch seat {
	case game.North:
		return "north_bid", nil
	case game.East:
		return "east_bid", nil
	case game.South:
		return "south_bid", nil
	case game.West:
		return "west_bid", nil
	}
	return "", fmt.Errorf("bid column: %w", game.ErrInvalidDirection)
}

func nullableInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}
