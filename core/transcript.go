package tyson

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

const transcriptSchema = `CREATE TABLE IF NOT EXISTS evaluations (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	input      TEXT NOT NULL,
	result     TEXT NOT NULL,
	kind       TEXT NOT NULL,
	error      TEXT NOT NULL,
	code       TEXT NOT NULL,
	defs       TEXT NOT NULL,
	created_at TEXT NOT NULL
)`

// Transcript is an append-only sqlite log of evaluations. It is never
// replayed into an environment; bindings live only as long as the process.
type Transcript struct {
	db   *sql.DB
	path string
}

// OpenTranscript opens (or creates) the transcript database at path.
func OpenTranscript(path string) (*Transcript, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("transcript: open %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("transcript: open %s: %w", path, err)
	}
	if _, err := db.Exec(transcriptSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("transcript: create schema: %w", err)
	}
	return &Transcript{db: db, path: path}, nil
}

func (t *Transcript) Path() string { return t.path }

// Record appends one evaluation.
func (t *Transcript) Record(tr Trace) error {
	_, err := t.db.Exec(
		`INSERT INTO evaluations (input, result, kind, error, code, defs, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		tr.Input, tr.Result, tr.Kind, tr.Error, tr.Code, strings.Join(tr.Defs, " "), tr.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("transcript: record: %w", err)
	}
	return nil
}

// Recent returns the last n evaluations, oldest first.
func (t *Transcript) Recent(n int) ([]Trace, error) {
	rows, err := t.db.Query(
		`SELECT input, result, kind, error, code, defs, created_at FROM
		   (SELECT * FROM evaluations ORDER BY id DESC LIMIT ?)
		 ORDER BY id ASC`, n)
	if err != nil {
		return nil, fmt.Errorf("transcript: query: %w", err)
	}
	defer rows.Close()

	var out []Trace
	for rows.Next() {
		var tr Trace
		var defs string
		if err := rows.Scan(&tr.Input, &tr.Result, &tr.Kind, &tr.Error, &tr.Code, &defs, &tr.Timestamp); err != nil {
			return nil, fmt.Errorf("transcript: scan: %w", err)
		}
		if defs != "" {
			tr.Defs = strings.Fields(defs)
		}
		out = append(out, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("transcript: rows: %w", err)
	}
	return out, nil
}

// Count returns the number of recorded evaluations.
func (t *Transcript) Count() (int, error) {
	var n int
	if err := t.db.QueryRow(`SELECT COUNT(*) FROM evaluations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("transcript: count: %w", err)
	}
	return n, nil
}

func (t *Transcript) Close() error {
	return t.db.Close()
}
