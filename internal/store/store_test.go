package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Simplici0/cotizador/internal/db"
	"github.com/Simplici0/cotizador/internal/migrations"
	"github.com/Simplici0/cotizador/internal/pricing"
	"github.com/Simplici0/cotizador/internal/quote"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	ctx := context.Background()
	database, err := db.Open(ctx, filepath.Join(t.TempDir(), "store-test.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	if err := migrations.Up(ctx, database); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	return New(database)
}

func newQuote(t *testing.T, folio, client, company string, createdAt time.Time) quote.Quote {
	t.Helper()

	q, err := quote.New(quote.Draft{
		Client: quote.Client{Name: client, Company: company},
		Box:    pricing.BoxSpec{Length: 30, Width: 20, Height: 15, Grade: pricing.Grade32EST, Inks: 1, Quantity: 100},
		Notes:  "nota " + folio,
	}, quote.DefaultSettings().PriceTable(), folio, createdAt)
	if err != nil {
		t.Fatalf("build quote: %v", err)
	}
	return q
}

func TestSaveAndGetQuoteRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	want := newQuote(t, "COT-0001", "Ana", "Dulces Ana", time.Date(2026, 10, 1, 9, 30, 0, 123, time.UTC))
	if err := s.SaveQuote(ctx, want); err != nil {
		t.Fatalf("SaveQuote: %v", err)
	}

	got, err := s.GetQuote(ctx, want.ID)
	if err != nil {
		t.Fatalf("GetQuote: %v", err)
	}

	if got.Breakdown != want.Breakdown {
		t.Fatalf("breakdown = %+v, want %+v", got.Breakdown, want.Breakdown)
	}
	if got.Box != want.Box || got.Client != want.Client || got.Notes != want.Notes || got.Folio != want.Folio {
		t.Fatalf("quote = %+v, want %+v", got, want)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Fatalf("created_at = %v, want %v", got.CreatedAt, want.CreatedAt)
	}
}

func TestGetQuoteReadsSnapshotWithoutRecalculation(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	q := newQuote(t, "COT-0001", "Ana", "", time.Now())
	if err := s.SaveQuote(ctx, q); err != nil {
		t.Fatalf("SaveQuote: %v", err)
	}

	settings := quote.DefaultSettings()
	settings.Prices[1].PricePerM2 = 99
	if err := s.SaveSettings(ctx, settings); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}

	got, err := s.GetQuote(ctx, q.ID)
	if err != nil {
		t.Fatalf("GetQuote: %v", err)
	}
	if got.Breakdown.Total != q.Breakdown.Total {
		t.Fatalf("expected snapshot total %.2f, got %.2f", q.Breakdown.Total, got.Breakdown.Total)
	}
}

func TestSaveQuoteReplacesFullRecord(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	q := newQuote(t, "COT-0001", "Ana", "", time.Now())
	if err := s.SaveQuote(ctx, q); err != nil {
		t.Fatalf("SaveQuote: %v", err)
	}

	q.Notes = "sin notas previas"
	q.Client.Phone = "555-0101"
	if err := s.SaveQuote(ctx, q); err != nil {
		t.Fatalf("SaveQuote replace: %v", err)
	}

	all, err := s.ListQuotes(ctx, "")
	if err != nil {
		t.Fatalf("ListQuotes: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 quote after replace, got %d", len(all))
	}
	if all[0].Notes != "sin notas previas" || all[0].Client.Phone != "555-0101" {
		t.Fatalf("replace not applied: %+v", all[0])
	}
}

func TestListQuotesOrdersNewestFirstAndFilters(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	base := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	for _, q := range []quote.Quote{
		newQuote(t, "COT-0001", "Primera", "Casa Azul", base),
		newQuote(t, "COT-0003", "Tercera", "Llaveros MX", base.Add(48*time.Hour)),
		newQuote(t, "COT-0002", "Segunda", "casa verde", base.Add(24*time.Hour+500*time.Millisecond)),
	} {
		if err := s.SaveQuote(ctx, q); err != nil {
			t.Fatalf("SaveQuote: %v", err)
		}
	}

	all, err := s.ListQuotes(ctx, "")
	if err != nil {
		t.Fatalf("ListQuotes: %v", err)
	}
	if len(all) != 3 || all[0].Folio != "COT-0003" || all[1].Folio != "COT-0002" || all[2].Folio != "COT-0001" {
		t.Fatalf("quotes are not sorted newest first: %+v", all)
	}

	cases := map[string]int{
		"CASA":     2,
		"llave":    1,
		"cot-0002": 1,
		"segunda":  1,
		"nadie":    0,
	}
	for query, want := range cases {
		got, err := s.ListQuotes(ctx, query)
		if err != nil {
			t.Fatalf("ListQuotes(%q): %v", query, err)
		}
		if len(got) != want {
			t.Fatalf("ListQuotes(%q) returned %d quotes, want %d", query, len(got), want)
		}
	}
}

func TestListQuotesTreatsWildcardsLiterally(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for _, q := range []quote.Quote{
		newQuote(t, "COT-0001", "Ana", "Cajas 100% reciclables", base),
		newQuote(t, "COT-0002", "Beto", "mi_empresa", base.Add(time.Hour)),
		newQuote(t, "COT-0003", "Carla", `Ruta C:\bodega`, base.Add(2*time.Hour)),
		newQuote(t, "COT-0004", "Dora", "Empaques", base.Add(3*time.Hour)),
	} {
		if err := s.SaveQuote(ctx, q); err != nil {
			t.Fatalf("SaveQuote: %v", err)
		}
	}

	cases := map[string][]string{
		"%":    {"COT-0001"},
		"_":    {"COT-0002"},
		`\`:    {"COT-0003"},
		"0%":   {"COT-0001"},
		"i_e":  {"COT-0002"},
		"c_ja": nil,
	}
	for query, want := range cases {
		got, err := s.ListQuotes(ctx, query)
		if err != nil {
			t.Fatalf("ListQuotes(%q): %v", query, err)
		}
		if len(got) != len(want) {
			t.Fatalf("ListQuotes(%q) returned %d quotes, want %d", query, len(got), len(want))
		}
		for i := range want {
			if got[i].Folio != want[i] {
				t.Fatalf("ListQuotes(%q)[%d] = %s, want %s", query, i, got[i].Folio, want[i])
			}
		}
	}
}

func TestDeleteQuote(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	q := newQuote(t, "COT-0001", "Ana", "", time.Now())
	if err := s.SaveQuote(ctx, q); err != nil {
		t.Fatalf("SaveQuote: %v", err)
	}

	if err := s.DeleteQuote(ctx, q.ID); err != nil {
		t.Fatalf("DeleteQuote: %v", err)
	}
	if _, err := s.GetQuote(ctx, q.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetQuote after delete: %v, want ErrNotFound", err)
	}
	if err := s.DeleteQuote(ctx, q.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second DeleteQuote: %v, want ErrNotFound", err)
	}
}

func TestNextFolio(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	folio, err := s.NextFolio(ctx)
	if err != nil || folio != "COT-0001" {
		t.Fatalf("NextFolio on empty store = %q, %v", folio, err)
	}

	for _, f := range []string{"COT-0001", "COT-0005"} {
		if err := s.SaveQuote(ctx, newQuote(t, f, "Ana", "", time.Now())); err != nil {
			t.Fatalf("SaveQuote: %v", err)
		}
	}

	folio, err = s.NextFolio(ctx)
	if err != nil || folio != "COT-0006" {
		t.Fatalf("NextFolio = %q, %v; want COT-0006", folio, err)
	}
}

func TestSettingsDefaultsAndSave(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	got, err := s.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	if got.CompanyName() != "Cajas CRR" || len(got.Prices) != 3 {
		t.Fatalf("unexpected defaults: %+v", got)
	}

	want := quote.Settings{
		Company: quote.Company{Name: "Cartonera del Bajío", RFC: "CBA010101AAA", Email: "ventas@cartonera.mx"},
		Prices: []quote.GradePrice{
			{Grade: pricing.Grade29EST, PricePerM2: 10.5},
			{Grade: pricing.Grade40EST, PricePerM2: 13},
		},
	}
	if err := s.SaveSettings(ctx, want); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}

	got, err = s.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	if got.Company != want.Company {
		t.Fatalf("company = %+v, want %+v", got.Company, want.Company)
	}
	table := got.PriceTable()
	if table[pricing.Grade29EST] != 10.5 || table[pricing.Grade40EST] != 13 {
		t.Fatalf("unexpected prices: %+v", table)
	}
	if _, ok := table.Lookup(pricing.Grade32EST); ok {
		t.Fatalf("expected 32EST to be unpriced after saving without it")
	}
}

func TestSaveSettingsRejectsNegativePrice(t *testing.T) {
	s := newTestStore(t)

	bad := quote.DefaultSettings()
	bad.Prices[2].PricePerM2 = -4
	if err := s.SaveSettings(context.Background(), bad); err == nil {
		t.Fatalf("expected error for negative price")
	}
}
