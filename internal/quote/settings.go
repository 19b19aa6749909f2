package quote

import (
	"fmt"

	"github.com/Simplici0/cotizador/internal/pricing"
)

const defaultCompanyName = "Cajas CRR"

// Company is printed on the header of every quote PDF.
type Company struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	RFC     string `json:"rfc"`
}

// GradePrice is the configured price per square meter of one board grade.
type GradePrice struct {
	Grade      pricing.BoardGrade `json:"grade"`
	PricePerM2 float64            `json:"price_per_m2"`
}

// Settings is the singleton configuration record.
type Settings struct {
	Company Company      `json:"company"`
	Prices  []GradePrice `json:"prices"`
}

// DefaultSettings returns the settings used before the operator edits them.
func DefaultSettings() Settings {
	return Settings{
		Company: Company{Name: defaultCompanyName},
		Prices: []GradePrice{
			{Grade: pricing.Grade29EST, PricePerM2: 9.8},
			{Grade: pricing.Grade32EST, PricePerM2: 10.79},
			{Grade: pricing.Grade40EST, PricePerM2: 12.2},
		},
	}
}

// PriceTable indexes the configured prices by grade.
func (s Settings) PriceTable() pricing.PriceTable {
	table := make(pricing.PriceTable, len(s.Prices))
	for _, p := range s.Prices {
		table[p.Grade] = p.PricePerM2
	}
	return table
}

// CompanyName falls back to the default name when none is configured.
func (s Settings) CompanyName() string {
	if s.Company.Name == "" {
		return defaultCompanyName
	}
	return s.Company.Name
}

// Validate rejects unknown grades and prices outside 0..pricing.MaxPricePerM2.
func (s Settings) Validate() error {
	for _, p := range s.Prices {
		if _, err := pricing.ParseGrade(string(p.Grade)); err != nil {
			return err
		}
		if p.PricePerM2 < 0 {
			return fmt.Errorf("el precio de %s debe ser mayor o igual a 0", p.Grade)
		}
		if p.PricePerM2 > pricing.MaxPricePerM2 {
			return fmt.Errorf("el precio de %s no puede exceder %d", p.Grade, pricing.MaxPricePerM2)
		}
	}
	return nil
}

// MissingPriceWarning returns the operator notice for a grade with no
// configured price, or "" when the grade is priced.
func MissingPriceWarning(prices pricing.PriceTable, grade pricing.BoardGrade) string {
	if _, ok := prices.Lookup(grade); ok {
		return ""
	}
	return fmt.Sprintf("Sin precio configurado para %s", grade)
}
