// Package store persists quotes and the settings singleton in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Simplici0/cotizador/internal/pricing"
	"github.com/Simplici0/cotizador/internal/quote"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// Fixed width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Store is the record store backed by a migrated SQLite database.
type Store struct {
	db *sql.DB
}

// New wraps db. The schema must already be migrated.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

const quoteColumns = `
	id, folio, created_at,
	client_name, client_company, client_phone, client_email,
	length_cm, width_cm, height_cm, grade, inks, quantity,
	breakdown_json, notes`

// ListQuotes returns quotes newest first. A non-empty query keeps those whose
// folio, client name or client company contains it, ignoring case.
func (s *Store) ListQuotes(ctx context.Context, query string) ([]quote.Quote, error) {
	query = strings.TrimSpace(query)
	search := "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+quoteColumns+`
		FROM quotes
		WHERE (? = ''
			OR lower(folio) LIKE ? ESCAPE '\'
			OR lower(client_name) LIKE ? ESCAPE '\'
			OR lower(client_company) LIKE ? ESCAPE '\')
		ORDER BY created_at DESC, folio DESC
	`, query, search, search, search)
	if err != nil {
		return nil, fmt.Errorf("query quotes: %w", err)
	}
	defer rows.Close()

	quotes := make([]quote.Quote, 0)
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quotes: %w", err)
	}

	return quotes, nil
}

// GetQuote returns the quote with id or ErrNotFound.
func (s *Store) GetQuote(ctx context.Context, id string) (quote.Quote, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE id = ?`, id)

	q, err := scanQuote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return quote.Quote{}, ErrNotFound
	}
	if err != nil {
		return quote.Quote{}, err
	}
	return q, nil
}

// SaveQuote inserts q or replaces the stored record with the same id.
func (s *Store) SaveQuote(ctx context.Context, q quote.Quote) error {
	breakdownJSON, err := json.Marshal(q.Breakdown)
	if err != nil {
		return fmt.Errorf("encode breakdown: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO quotes (`+quoteColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			folio = excluded.folio,
			created_at = excluded.created_at,
			client_name = excluded.client_name,
			client_company = excluded.client_company,
			client_phone = excluded.client_phone,
			client_email = excluded.client_email,
			length_cm = excluded.length_cm,
			width_cm = excluded.width_cm,
			height_cm = excluded.height_cm,
			grade = excluded.grade,
			inks = excluded.inks,
			quantity = excluded.quantity,
			breakdown_json = excluded.breakdown_json,
			notes = excluded.notes
	`,
		q.ID, q.Folio, q.CreatedAt.UTC().Format(timeLayout),
		q.Client.Name, q.Client.Company, q.Client.Phone, q.Client.Email,
		q.Box.Length, q.Box.Width, q.Box.Height, string(q.Box.Grade), q.Box.Inks, q.Box.Quantity,
		string(breakdownJSON), q.Notes,
	)
	if err != nil {
		return fmt.Errorf("save quote %s: %w", q.Folio, err)
	}
	return nil
}

// DeleteQuote removes the quote with id or returns ErrNotFound.
func (s *Store) DeleteQuote(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM quotes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete quote: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete quote: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// NextFolio returns the folio for the next quote.
func (s *Store) NextFolio(ctx context.Context) (string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT folio FROM quotes`)
	if err != nil {
		return "", fmt.Errorf("query folios: %w", err)
	}
	defer rows.Close()

	var folios []string
	for rows.Next() {
		var f string
		if err := rows.Scan(&f); err != nil {
			return "", fmt.Errorf("scan folio: %w", err)
		}
		folios = append(folios, f)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("iterate folios: %w", err)
	}

	return quote.NextFolio(folios), nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanQuote(sc scanner) (quote.Quote, error) {
	var (
		q             quote.Quote
		createdAt     string
		grade         string
		breakdownJSON string
	)
	err := sc.Scan(
		&q.ID, &q.Folio, &createdAt,
		&q.Client.Name, &q.Client.Company, &q.Client.Phone, &q.Client.Email,
		&q.Box.Length, &q.Box.Width, &q.Box.Height, &grade, &q.Box.Inks, &q.Box.Quantity,
		&breakdownJSON, &q.Notes,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return quote.Quote{}, err
		}
		return quote.Quote{}, fmt.Errorf("scan quote: %w", err)
	}

	q.Box.Grade = pricing.BoardGrade(grade)

	if q.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return quote.Quote{}, fmt.Errorf("parse created_at of %s: %w", q.Folio, err)
	}
	if err := json.Unmarshal([]byte(breakdownJSON), &q.Breakdown); err != nil {
		return quote.Quote{}, fmt.Errorf("decode breakdown of %s: %w", q.Folio, err)
	}

	return q, nil
}
