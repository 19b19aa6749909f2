package main

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/Simplici0/cotizador/internal/pricing"
)

func TestSettingsPage(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(t, http.MethodGet, "/configuracion", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	for _, expected := range []string{"Cajas CRR", "precio_29EST", `value="10.79"`} {
		if !strings.Contains(body, expected) {
			t.Fatalf("expected body to contain %q", expected)
		}
	}
}

func TestCompanySubmit(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(t, http.MethodPost, "/configuracion/empresa", url.Values{
		"nombre": {"Cartonera del Bajío"},
		"rfc":    {"cba010101aaa"},
	})
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/configuracion?ok=empresa" {
		t.Fatalf("expected redirect, got %d %q", rr.Code, rr.Header().Get("Location"))
	}

	settings, err := s.store.GetSettings(context.Background())
	if err != nil {
		t.Fatalf("get settings: %v", err)
	}
	if settings.Company.Name != "Cartonera del Bajío" || settings.Company.RFC != "CBA010101AAA" {
		t.Fatalf("unexpected company %+v", settings.Company)
	}
	if len(settings.Prices) != 3 {
		t.Fatalf("prices should be untouched, got %+v", settings.Prices)
	}
}

func TestPricesSubmit(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(t, http.MethodPost, "/configuracion/precios", url.Values{"precio_40EST": {"13.5"}})
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", rr.Code)
	}

	settings, err := s.store.GetSettings(context.Background())
	if err != nil {
		t.Fatalf("get settings: %v", err)
	}
	table := settings.PriceTable()
	if table[pricing.Grade40EST] != 13.5 || table[pricing.Grade29EST] != 9.8 {
		t.Fatalf("unexpected prices %+v", table)
	}
}

func TestPricesSubmitRejectsNegative(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(t, http.MethodPost, "/configuracion/precios", url.Values{"precio_29EST": {"-2"}})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "mayor o igual a 0") {
		t.Fatalf("expected validation message")
	}
}
