package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/actatek/configurator/internal/ir"
	"github.com/actatek/configurator/internal/session"
)

// ErrQuoteNotFound is returned by GetQuote for an unknown ref.
var ErrQuoteNotFound = errors.New("quote not found")

// Record is one stored quote.
type Record struct {
	Ref         string    `json:"ref" yaml:"ref"`
	PartNumber  string    `json:"part_number" yaml:"part_number"`
	Fingerprint string    `json:"fingerprint" yaml:"fingerprint"`
	Selections  string    `json:"selections" yaml:"selections"`
	Seq         int64     `json:"seq" yaml:"seq"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
}

// WriteQuote records q. Uses ON CONFLICT(ref) DO NOTHING, so writing the
// same ref twice keeps the first row.
func (s *Store) WriteQuote(ctx context.Context, q session.Quote) error {
	selections, err := ir.MarshalCanonical(q.Configuration.CanonicalMap())
	if err != nil {
		return fmt.Errorf("write quote: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO quotes
		(ref, part_number, fingerprint, selections_json, seq, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(ref) DO NOTHING
	`,
		q.Ref,
		q.PartNumber,
		q.Fingerprint,
		string(selections),
		q.Seq,
		s.now().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("write quote: %w", err)
	}

	return nil
}

// GetQuote returns the quote stored under ref.
func (s *Store) GetQuote(ctx context.Context, ref string) (Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT ref, part_number, fingerprint, selections_json, seq, created_at
		FROM quotes
		WHERE ref = ?
	`, ref)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("get quote %q: %w", ref, ErrQuoteNotFound)
	}
	if err != nil {
		return Record{}, fmt.Errorf("get quote %q: %w", ref, err)
	}
	return rec, nil
}

// ListQuotes returns every stored quote in the order it was written.
// Returns an empty slice (not nil) when the ledger is empty.
func (s *Store) ListQuotes(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ref, part_number, fingerprint, selections_json, seq, created_at
		FROM quotes
		ORDER BY rowid ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query quotes: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quotes: %w", err)
	}

	return records, nil
}

// FindByFingerprint returns quotes issued for the same configuration,
// oldest write first.
func (s *Store) FindByFingerprint(ctx context.Context, fingerprint string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ref, part_number, fingerprint, selections_json, seq, created_at
		FROM quotes
		WHERE fingerprint = ?
		ORDER BY rowid ASC
	`, fingerprint)
	if err != nil {
		return nil, fmt.Errorf("query quotes by fingerprint: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quotes: %w", err)
	}

	return records, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (Record, error) {
	var (
		rec     Record
		created string
	)
	if err := sc.Scan(&rec.Ref, &rec.PartNumber, &rec.Fingerprint, &rec.Selections, &rec.Seq, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, err
		}
		return Record{}, fmt.Errorf("scan quote: %w", err)
	}

	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return Record{}, fmt.Errorf("parse created_at %q: %w", created, err)
	}
	rec.CreatedAt = t
	return rec, nil
}
