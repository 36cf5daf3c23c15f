package store

import (
	"database/sql"
	"time"
)

// Event is one recognized gesture as journaled.
type Event struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Kind      string    `json:"kind"`
	Side      string    `json:"side,omitempty"`
	Direction string    `json:"direction,omitempty"`
	Mode      string    `json:"mode"`
	At        time.Time `json:"at"`
}

// EventRepository appends and queries journaled gestures.
type EventRepository struct {
	db *sql.DB
}

// Events returns the event repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

// Append inserts e and sets its ID.
func (r *EventRepository) Append(e *Event) error {
	if e.At.IsZero() {
		e.At = time.Now()
	}

	result, err := r.db.Exec(
		`INSERT INTO events (session_id, kind, side, direction, mode, at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.SessionID, e.Kind, e.Side, e.Direction, e.Mode, e.At,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = id

	return nil
}

// ListBySession retrieves the events of one session in firing order.
func (r *EventRepository) ListBySession(sessionID string) ([]*Event, error) {
	return r.query(
		`SELECT id, session_id, kind, side, direction, mode, at
		 FROM events WHERE session_id = ? ORDER BY id`,
		sessionID,
	)
}

// Recent retrieves the last limit events across all sessions, newest first.
func (r *EventRepository) Recent(limit int) ([]*Event, error) {
	return r.query(
		`SELECT id, session_id, kind, side, direction, mode, at
		 FROM events ORDER BY id DESC LIMIT ?`,
		limit,
	)
}

// CountByKind returns how often each gesture kind fired in a session.
func (r *EventRepository) CountByKind(sessionID string) (map[string]int, error) {
	rows, err := r.db.Query(
		`SELECT kind, COUNT(*) FROM events WHERE session_id = ? GROUP BY kind`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, err
		}
		counts[kind] = n
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

func (r *EventRepository) query(q string, args ...any) ([]*Event, error) {
	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		e := &Event{}
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Kind, &e.Side, &e.Direction, &e.Mode, &e.At); err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
