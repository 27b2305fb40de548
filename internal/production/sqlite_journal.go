package production

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteJournal stores entries in the transitions table of a SQLite database.
type SQLiteJournal struct {
	db    *sql.DB
	owned bool
}

var _ Journal = (*SQLiteJournal)(nil)

// NewSQLiteJournal uses db, creating the schema if needed. Close does not
// close db.
func NewSQLiteJournal(db *sql.DB) (*SQLiteJournal, error) {
	j := &SQLiteJournal{db: db}
	if err := j.initSchema(); err != nil {
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return j, nil
}

// OpenSQLiteJournal opens dsn with the modernc.org/sqlite driver. The
// connection pool is limited to one connection so ":memory:" databases behave
// as a single database.
func OpenSQLiteJournal(dsn string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dsn, err)
	}
	db.SetMaxOpenConns(1)
	j, err := NewSQLiteJournal(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	j.owned = true
	return j, nil
}

func (j *SQLiteJournal) initSchema() error {
	_, err := j.db.Exec(`
		CREATE TABLE IF NOT EXISTS transitions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			machine TEXT NOT NULL,
			seq INTEGER NOT NULL,
			at INTEGER NOT NULL,
			event TEXT NOT NULL,
			from_state TEXT NOT NULL,
			to_state TEXT NOT NULL,
			exits TEXT NOT NULL DEFAULT '[]',
			entries TEXT NOT NULL DEFAULT '[]',
			matched INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_transitions_machine ON transitions(machine, id);
	`)
	return err
}

func (j *SQLiteJournal) Append(ctx context.Context, e Entry) error {
	at := e.At
	if at.IsZero() {
		at = time.Now()
	}
	exits, err := json.Marshal(e.Exits)
	if err != nil {
		return err
	}
	entries, err := json.Marshal(e.Entries)
	if err != nil {
		return err
	}
	_, err = j.db.ExecContext(ctx, `
		INSERT INTO transitions (machine, seq, at, event, from_state, to_state, exits, entries, matched)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Machine,
		int64(e.Seq),
		at.UnixNano(),
		e.Event,
		e.From,
		e.To,
		string(exits),
		string(entries),
		e.Matched,
	)
	return err
}

func (j *SQLiteJournal) Entries(ctx context.Context, machine string) ([]Entry, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT machine, seq, at, event, from_state, to_state, exits, entries, matched
		FROM transitions
		WHERE machine = ?
		ORDER BY id ASC`, machine)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e       Entry
			seq     int64
			atN     int64
			exits   string
			entries string
		)
		if err := rows.Scan(&e.Machine, &seq, &atN, &e.Event, &e.From, &e.To, &exits, &entries, &e.Matched); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(exits), &e.Exits); err != nil {
			return nil, fmt.Errorf("decode exits: %w", err)
		}
		if err := json.Unmarshal([]byte(entries), &e.Entries); err != nil {
			return nil, fmt.Errorf("decode entries: %w", err)
		}
		e.Seq = uint64(seq)
		e.At = time.Unix(0, atN)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (j *SQLiteJournal) Close() error {
	if j.owned {
		return j.db.Close()
	}
	return nil
}
