package seed

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Simplici0/cotizador/internal/quote"
)

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// Run inserts the settings singleton and the default board prices when they
// are missing. It never overwrites operator edits and is safe to run on every boot.
func Run(ctx context.Context, db *sql.DB) (Stats, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}
	defaults := quote.DefaultSettings()

	if err := ensureSettings(ctx, tx, defaults.Company, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if err := ensurePrices(ctx, tx, defaults.Prices, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func ensureSettings(ctx context.Context, tx *sql.Tx, company quote.Company, stats *Stats) error {
	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM settings WHERE id = 1)`).Scan(&exists); err != nil {
		return fmt.Errorf("check settings existence: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO settings (id, company_name, company_address, company_phone, company_email, company_rfc)
		VALUES (1, ?, ?, ?, ?, ?)
	`, company.Name, company.Address, company.Phone, company.Email, company.RFC); err != nil {
		return fmt.Errorf("insert settings singleton: %w", err)
	}
	stats.Inserts++
	return nil
}

// ensurePrices only seeds an empty price list, so a grade the operator
// removed stays removed.
func ensurePrices(ctx context.Context, tx *sql.Tx, prices []quote.GradePrice, stats *Stats) error {
	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM board_prices`).Scan(&count); err != nil {
		return fmt.Errorf("count board prices: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, p := range prices {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO board_prices (grade, price_per_m2)
			VALUES (?, ?)
		`, string(p.Grade), p.PricePerM2); err != nil {
			return fmt.Errorf("insert default price for %s: %w", p.Grade, err)
		}
		stats.Inserts++
	}
	return nil
}
