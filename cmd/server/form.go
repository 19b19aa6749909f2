package main

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/Simplici0/cotizador/internal/pricing"
	"github.com/Simplici0/cotizador/internal/quote"
)

// parseBoxForm reads the box fields of the quote form. Range checks are left
// to BoxSpec.Validate; this only rejects text that is not a number.
func parseBoxForm(r *http.Request) (pricing.BoxSpec, error) {
	if err := r.ParseForm(); err != nil {
		return pricing.BoxSpec{}, fmt.Errorf("formulario inválido")
	}

	var (
		box pricing.BoxSpec
		err error
	)
	if box.Length, err = parseDecimal(r.FormValue("largo"), "El largo"); err != nil {
		return pricing.BoxSpec{}, err
	}
	if box.Width, err = parseDecimal(r.FormValue("ancho"), "El ancho"); err != nil {
		return pricing.BoxSpec{}, err
	}
	if box.Height, err = parseDecimal(r.FormValue("alto"), "El alto"); err != nil {
		return pricing.BoxSpec{}, err
	}
	if box.Inks, err = parseWhole(r.FormValue("tintas"), "El número de tintas"); err != nil {
		return pricing.BoxSpec{}, err
	}
	if box.Quantity, err = parseWhole(r.FormValue("cantidad"), "La cantidad"); err != nil {
		return pricing.BoxSpec{}, err
	}
	box.Grade = pricing.BoardGrade(strings.TrimSpace(r.FormValue("resistencia")))

	return box, nil
}

// parseQuoteForm reads the full quote form into a draft.
func parseQuoteForm(r *http.Request) (quote.Draft, error) {
	box, err := parseBoxForm(r)
	if err != nil {
		return quote.Draft{}, err
	}

	return quote.Draft{
		Client: quote.Client{
			Name:    r.FormValue("cliente_nombre"),
			Company: r.FormValue("cliente_empresa"),
			Phone:   r.FormValue("cliente_telefono"),
			Email:   r.FormValue("cliente_email"),
		},
		Box:   box,
		Notes: r.FormValue("notas"),
	}, nil
}

func parseCompanyForm(r *http.Request) (quote.Company, error) {
	if err := r.ParseForm(); err != nil {
		return quote.Company{}, fmt.Errorf("formulario inválido")
	}

	return quote.Company{
		Name:    strings.TrimSpace(r.FormValue("nombre")),
		Address: strings.TrimSpace(r.FormValue("direccion")),
		Phone:   strings.TrimSpace(r.FormValue("telefono")),
		Email:   strings.TrimSpace(r.FormValue("email")),
		RFC:     strings.ToUpper(strings.TrimSpace(r.FormValue("rfc"))),
	}, nil
}

// parsePricesForm reads one precio_<grade> field per grade. Blank fields are
// skipped so the stored price of that grade is kept.
func parsePricesForm(r *http.Request) ([]quote.GradePrice, error) {
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("formulario inválido")
	}

	prices := make([]quote.GradePrice, 0, len(pricing.Grades))
	for _, g := range pricing.Grades {
		raw := strings.TrimSpace(r.FormValue("precio_" + string(g)))
		if raw == "" {
			continue
		}
		price, err := parseDecimal(raw, "El precio de "+string(g))
		if err != nil {
			return nil, err
		}
		if price < 0 {
			return nil, fmt.Errorf("el precio de %s debe ser mayor o igual a 0", g)
		}
		prices = append(prices, quote.GradePrice{Grade: g, PricePerM2: price})
	}
	return prices, nil
}

// parseDecimal accepts a comma as decimal separator. Blank means 0.
func parseDecimal(raw, label string) (float64, error) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s debe ser un número", label)
	}
	return v, nil
}

func parseWhole(raw, label string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s debe ser un número entero", label)
	}
	return v, nil
}
