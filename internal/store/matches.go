package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/XanaduBarchetta/swe681-spades/internal/game"
)

// ErrNotFound is returned by point lookups when no row matches.
var ErrNotFound = errors.New("not found")

const matchColumns = `match_id, player_north, player_east, player_south, player_west,
	state, create_date, last_activity, ns_win`

// InsertMatch writes a newly created match row.
func (t *Tx) InsertMatch(m *game.Match) error {
	_, err := t.tx.ExecContext(t.ctx, `
		INSERT INTO matches
		(match_id, player_north, player_east, player_south, player_west, state, create_date, last_activity, ns_win)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		m.ID,
		nullIfEmpty(m.Seats[game.North]),
		nullIfEmpty(m.Seats[game.East]),
		nullIfEmpty(m.Seats[game.South]),
		nullIfEmpty(m.Seats[game.West]),
		string(m.State),
		formatTime(m.CreateDate),
		formatTime(m.LastActivity),
		nullBool(m.NSWin),
	)
	if err != nil {
		return fmt.Errorf("insert match: %w", err)
	}
	return nil
}

// SaveMatch writes back every mutable match field: seats, state,
// last_activity, and the completion flag.
func (t *Tx) SaveMatch(m *game.Match) error {
	res, err := t.tx.ExecContext(t.ctx, `
		UPDATE matches
		SET player_north = ?, player_east = ?, player_south = ?, player_west = ?,
		    state = ?, last_activity = ?, ns_win = ?
		WHERE match_id = ?
	`,
		nullIfEmpty(m.Seats[game.North]),
		nullIfEmpty(m.Seats[game.East]),
		nullIfEmpty(m.Seats[game.South]),
		nullIfEmpty(m.Seats[game.West]),
		string(m.State),
		formatTime(m.LastActivity),
		nullBool(m.NSWin),
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("save match %s: %w", m.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save match %s: %w", m.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("save match %s: %w", m.ID, ErrNotFound)
	}
	return nil
}

// GetMatch returns the match by ID, or ErrNotFound.
func (t *Tx) GetMatch(matchID string) (*game.Match, error) {
	row := t.tx.QueryRowContext(t.ctx,
		`SELECT `+matchColumns+` FROM matches WHERE match_id = ?`, matchID)
	m, err := scanMatch(row)
	if err != nil {
		return nil, fmt.Errorf("get match %s: %w", matchID, err)
	}
	return m, nil
}

// FindFilling returns some FILLING match with an empty seat, or nil if none
// exists. No ordering is guaranteed; any fillable table will do.
func (t *Tx) FindFilling() (*game.Match, error) {
	row := t.tx.QueryRowContext(t.ctx, `
		SELECT `+matchColumns+` FROM matches
		WHERE state = 'FILLING'
		  AND (player_north IS NULL OR player_south IS NULL OR player_east IS NULL OR player_west IS NULL)
		LIMIT 1
	`)
	m, err := scanMatch(row)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find filling match: %w", err)
	}
	return m, nil
}

// ActiveMatchFor returns the FILLING or IN_PROGRESS match seating userID,
// or nil if the user has no active match. At most one can exist; finding a
// second is the caller's invariant violation to report.
func (t *Tx) ActiveMatchFor(userID string) (*game.Match, error) {
	row := t.tx.QueryRowContext(t.ctx, `
		SELECT `+matchColumns+` FROM matches
		WHERE state IN ('FILLING', 'IN_PROGRESS')
		  AND ? IN (player_north, player_south, player_east, player_west)
		LIMIT 1
	`, userID)
	m, err := scanMatch(row)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("active match for %s: %w", userID, err)
	}
	return m, nil
}

// CompletedMatchesFor returns the terminal matches userID sat in, newest
// first, for the history projection.
func (t *Tx) CompletedMatchesFor(userID string) ([]*game.Match, error) {
	rows, err := t.tx.QueryContext(t.ctx, `
		SELECT `+matchColumns+` FROM matches
		WHERE state IN ('ABANDONED', 'FORFEITED', 'COMPLETED')
		  AND ? IN (player_north, player_south, player_east, player_west)
		ORDER BY last_activity DESC, match_id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("completed matches for %s: %w", userID, err)
	}
	defer rows.Close()

	matches := []*game.Match{}
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("completed matches for %s: %w", userID, err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("completed matches for %s: %w", userID, err)
	}
	return matches, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanMatch(row scanner) (*game.Match, error) {
	var (
		m                      game.Match
		north, east            sql.NullString
		south, west            sql.NullString
		state, created, active string
		nsWin                  sql.NullBool
	)
	err := row.Scan(&m.ID, &north, &east, &south, &west, &state, &created, &active, &nsWin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	m.Seats[game.North] = north.String
	m.Seats[game.East] = east.String
	m.Seats[game.South] = south.String
	m.Seats[game.West] = west.String
	m.State = game.MatchState(state)
	if m.CreateDate, err = parseTime(created); err != nil {
		return nil, err
	}
	if m.LastActivity, err = parseTime(active); err != nil {
		return nil, err
	}
	if nsWin.Valid {
		v := nsWin.Bool
		m.NSWin = &v
	}
	return &m, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullBool(b *bool) any {
	if b == nil {
		return nil
	}
	return *b
}
