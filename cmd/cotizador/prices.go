package main

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/Simplici0/cotizador/internal/pricing"
	"github.com/Simplici0/cotizador/internal/quote"
)

// priceFile is a TOML price list, e.g.
//
//	[precios]
//	29EST = 9.8
//	32EST = 10.79
type priceFile struct {
	Prices map[string]float64 `toml:"precios"`
}

// loadPriceFile reads a TOML price list into a price table.
func loadPriceFile(path string) (pricing.PriceTable, error) {
	var f priceFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("read price file %s: %w", path, err)
	}

	settings := quote.Settings{}
	for name, price := range f.Prices {
		grade, err := pricing.ParseGrade(name)
		if err != nil {
			return nil, fmt.Errorf("price file %s: %w", path, err)
		}
		settings.Prices = append(settings.Prices, quote.GradePrice{Grade: grade, PricePerM2: price})
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("price file %s: %w", path, err)
	}

	return settings.PriceTable(), nil
}
