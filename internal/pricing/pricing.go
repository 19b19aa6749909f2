package pricing

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Sheet and price constants. GlueFlap is shared with the unfold layout.
const (
	TrimAllowance = 8.0  // cm added to the sheet length (4 glue flap + 4 trim)
	SideAllowance = 0.5  // cm added to the sheet width
	GlueFlap      = 4.0  // cm
	InkRate       = 0.03 // surcharge per ink over the base cost
	Margin        = 1.30 // sale multiplier over cost
	MaxInks       = 4

	lengthPlaces = 2
	moneyPlaces  = 2
	areaPlaces   = 4
)

// Breakdown contains the sheet geometry and price line items for one box spec.
// Every field is rounded once, when computed.
type Breakdown struct {
	SheetLength   float64 `json:"sheet_length"`
	SheetWidth    float64 `json:"sheet_width"`
	AreaM2        float64 `json:"area_m2"`
	BaseCost      float64 `json:"base_cost"`
	InkSurcharge  float64 `json:"ink_surcharge"`
	UnitSalePrice float64 `json:"unit_sale_price"`
	Total         float64 `json:"total"`
}

// ComputeBreakdown computes sheet size and prices for box using prices.
//
// A grade missing from prices is priced at 0. Non-positive dimensions or
// quantity are a caller bug and panic; validate with BoxSpec.Validate first.
func ComputeBreakdown(box BoxSpec, prices PriceTable) Breakdown {
	mustBePositive(box)

	sheetLength := 2*box.Length + 2*box.Width + TrimAllowance
	sheetWidth := box.Height + box.Width + SideAllowance
	areaM2 := sheetLength * sheetWidth / 10000

	pricePerM2, _ := prices.Lookup(box.Grade)

	baseCost := areaM2 * pricePerM2
	inkSurcharge := baseCost * (float64(box.Inks) * InkRate)
	unitSalePrice := (baseCost + inkSurcharge) * Margin
	total := unitSalePrice * float64(box.Quantity)

	return Breakdown{
		SheetLength:   round(sheetLength, lengthPlaces),
		SheetWidth:    round(sheetWidth, lengthPlaces),
		AreaM2:        round(areaM2, areaPlaces),
		BaseCost:      round(baseCost, moneyPlaces),
		InkSurcharge:  round(inkSurcharge, moneyPlaces),
		UnitSalePrice: round(unitSalePrice, moneyPlaces),
		Total:         round(total, moneyPlaces),
	}
}

// round scales v by 10^places and rounds that value half away from zero, so
// a product like 2.135 that lands just below the half cent rounds down.
// Non-finite values are returned unchanged.
func round(v float64, places int32) float64 {
	scaled := v * math.Pow10(int(places))
	if math.IsInf(scaled, 0) || math.IsNaN(scaled) {
		return v
	}
	return decimal.NewFromFloat(scaled).Round(0).Shift(-places).InexactFloat64()
}

func mustBePositive(box BoxSpec) {
	if box.Length <= 0 || box.Width <= 0 || box.Height <= 0 || box.Quantity <= 0 {
		panic(fmt.Sprintf("pricing: non-positive box spec %+v", box))
	}
}
