package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Simplici0/cotizador/internal/pricing"
	"github.com/Simplici0/cotizador/internal/quote"
)

// GetSettings returns the settings singleton. Before any price is stored it
// returns the default price list; afterwards grades without a stored price
// are left out and price at 0.
func (s *Store) GetSettings(ctx context.Context) (quote.Settings, error) {
	settings := quote.DefaultSettings()

	err := s.db.QueryRowContext(ctx, `
		SELECT company_name, company_address, company_phone, company_email, company_rfc
		FROM settings
		WHERE id = 1
	`).Scan(
		&settings.Company.Name,
		&settings.Company.Address,
		&settings.Company.Phone,
		&settings.Company.Email,
		&settings.Company.RFC,
	)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return quote.Settings{}, fmt.Errorf("query settings: %w", err)
	}

	stored, err := s.listPrices(ctx)
	if err != nil {
		return quote.Settings{}, err
	}
	if len(stored) == 0 {
		return settings, nil
	}

	prices := make([]quote.GradePrice, 0, len(stored))
	for _, g := range pricing.Grades {
		if price, ok := stored[g]; ok {
			prices = append(prices, quote.GradePrice{Grade: g, PricePerM2: price})
		}
	}
	settings.Prices = prices

	return settings, nil
}

func (s *Store) listPrices(ctx context.Context) (pricing.PriceTable, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT grade, price_per_m2 FROM board_prices`)
	if err != nil {
		return nil, fmt.Errorf("query board prices: %w", err)
	}
	defer rows.Close()

	prices := pricing.PriceTable{}
	for rows.Next() {
		var (
			grade string
			price float64
		)
		if err := rows.Scan(&grade, &price); err != nil {
			return nil, fmt.Errorf("scan board price: %w", err)
		}
		prices[pricing.BoardGrade(grade)] = price
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate board prices: %w", err)
	}

	return prices, nil
}

// SaveSettings replaces the company data and upserts every listed price in
// one transaction.
func (s *Store) SaveSettings(ctx context.Context, settings quote.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin settings transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	c := settings.Company
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO settings (id, company_name, company_address, company_phone, company_email, company_rfc)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			company_name = excluded.company_name,
			company_address = excluded.company_address,
			company_phone = excluded.company_phone,
			company_email = excluded.company_email,
			company_rfc = excluded.company_rfc,
			updated_at = CURRENT_TIMESTAMP
	`, c.Name, c.Address, c.Phone, c.Email, c.RFC); err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}

	for _, p := range settings.Prices {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO board_prices (grade, price_per_m2)
			VALUES (?, ?)
			ON CONFLICT(grade) DO UPDATE SET
				price_per_m2 = excluded.price_per_m2,
				updated_at = CURRENT_TIMESTAMP
		`, string(p.Grade), p.PricePerM2); err != nil {
			return fmt.Errorf("upsert price for %s: %w", p.Grade, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit settings transaction: %w", err)
	}
	return nil
}
