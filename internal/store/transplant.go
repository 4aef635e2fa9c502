package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Transplant records one mark copied into a destination log.
type Transplant struct {
	ID      string        `json:"id"`
	Seq     int64         `json:"seq"`
	Dest    string        `json:"dest"`
	Label   string        `json:"label"`
	Pattern string        `json:"pattern"`
	Frame   int           `json:"frame"`
	Time    time.Duration `json:"time"`

	// Found is false when the pattern matched nothing and a zero-offset
	// mark was inserted.
	Found bool `json:"found"`

	// AnchorLog indexes Sources; -1 when Found is false.
	AnchorLog int      `json:"anchor_log"`
	Sources   []string `json:"sources"`
}

// NewTransplantID returns a time-sortable UUIDv7 string.
func NewTransplantID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// WriteTransplant inserts a transplant record.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - duplicate IDs are silently ignored.
// Time is stored in whole milliseconds.
func (s *Store) WriteTransplant(ctx context.Context, t Transplant) error {
	sources := t.Sources
	if sources == nil {
		sources = []string{}
	}
	sourcesJSON, err := json.Marshal(sources)
	if err != nil {
		return fmt.Errorf("write transplant: marshal sources: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO transplants
		(id, seq, dest, label, pattern, frame, time_ms, found, anchor_log, sources)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		t.ID,
		t.Seq,
		t.Dest,
		t.Label,
		t.Pattern,
		t.Frame,
		t.Time.Milliseconds(),
		t.Found,
		t.AnchorLog,
		string(sourcesJSON),
	)
	if err != nil {
		return fmt.Errorf("write transplant: %w", err)
	}

	return nil
}

// ListTransplants returns recorded transplants in ledger order. A non-empty
// dest restricts the result to that destination.
//
// Returns an empty slice (not nil) if nothing matches.
func (s *Store) ListTransplants(ctx context.Context, dest string) ([]Transplant, error) {
	query := `
		SELECT id, seq, dest, label, pattern, frame, time_ms, found, anchor_log, sources
		FROM transplants
	`
	var args []any
	if dest != "" {
		query += ` WHERE dest = ?`
		args = append(args, dest)
	}
	query += ` ORDER BY seq ASC, id COLLATE BINARY ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transplants: %w", err)
	}
	defer rows.Close()

	transplants := []Transplant{}
	for rows.Next() {
		t, err := scanTransplant(rows)
		if err != nil {
			return nil, err
		}
		transplants = append(transplants, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transplants: %w", err)
	}

	return transplants, nil
}

// GetTransplant returns the transplant with the given ID.
// Returns sql.ErrNoRows (wrapped) if it does not exist.
func (s *Store) GetTransplant(ctx context.Context, id string) (Transplant, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, seq, dest, label, pattern, frame, time_ms, found, anchor_log, sources
		FROM transplants
		WHERE id = ?
	`, id)
	t, err := scanTransplant(row)
	if err != nil {
		return Transplant{}, fmt.Errorf("get transplant %s: %w", id, err)
	}
	return t, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTransplant(row scanner) (Transplant, error) {
	var (
		t           Transplant
		timeMS      int64
		sourcesJSON string
	)
	if err := row.Scan(&t.ID, &t.Seq, &t.Dest, &t.Label, &t.Pattern, &t.Frame, &timeMS, &t.Found, &t.AnchorLog, &sourcesJSON); err != nil {
		if err == sql.ErrNoRows {
			return Transplant{}, err
		}
		return Transplant{}, fmt.Errorf("scan transplant: %w", err)
	}
	t.Time = time.Duration(timeMS) * time.Millisecond
	if err := json.Unmarshal([]byte(sourcesJSON), &t.Sources); err != nil {
		return Transplant{}, fmt.Errorf("unmarshal sources: %w", err)
	}
	return t, nil
}
