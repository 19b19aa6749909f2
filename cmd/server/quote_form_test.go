package main

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/Simplici0/cotizador/internal/pricing"
)

func formRequest(form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/cotizaciones", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestParseQuoteForm_Success(t *testing.T) {
	form := quoteForm()
	form.Set("largo", "30,5")
	form.Set("tintas", "")

	draft, err := parseQuoteForm(formRequest(form))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	want := pricing.BoxSpec{Length: 30.5, Width: 20, Height: 15, Grade: pricing.Grade32EST, Inks: 0, Quantity: 100}
	if draft.Box != want {
		t.Fatalf("box = %+v, want %+v", draft.Box, want)
	}
	if draft.Client.Name != "Abarrotes Lupita" || draft.Notes != "Entrega en planta" {
		t.Fatalf("unexpected draft %+v", draft)
	}
}

func TestParseQuoteForm_InvalidNumbers(t *testing.T) {
	cases := []struct {
		field, value, want string
	}{
		{"largo", "abc", "El largo debe ser un número"},
		{"alto", "Inf", "El alto debe ser un número"},
		{"tintas", "1.5", "El número de tintas debe ser un número entero"},
		{"cantidad", "mil", "La cantidad debe ser un número entero"},
	}

	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			form := quoteForm()
			form.Set(tc.field, tc.value)

			_, err := parseQuoteForm(formRequest(form))
			if err == nil || err.Error() != tc.want {
				t.Fatalf("err = %v, want %q", err, tc.want)
			}
		})
	}
}

func TestParsePricesForm(t *testing.T) {
	prices, err := parsePricesForm(formRequest(url.Values{
		"precio_29EST": {"9.5"},
		"precio_32EST": {""},
		"precio_40EST": {"12,25"},
	}))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(prices) != 2 || prices[0].Grade != pricing.Grade29EST || prices[1].PricePerM2 != 12.25 {
		t.Fatalf("unexpected prices %+v", prices)
	}

	if _, err := parsePricesForm(formRequest(url.Values{"precio_32EST": {"-1"}})); err == nil {
		t.Fatalf("expected negative price to be rejected")
	}
}
