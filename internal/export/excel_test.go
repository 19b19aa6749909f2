package export

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Simplici0/cotizador/internal/pricing"
	"github.com/Simplici0/cotizador/internal/quote"
)

func TestQuotesXLSX(t *testing.T) {
	prices := quote.DefaultSettings().PriceTable()
	var quotes []quote.Quote
	for i, name := range []string{"Ana", "Beto"} {
		q, err := quote.New(quote.Draft{
			Client: quote.Client{Name: name, Company: "Empresa " + name},
			Box:    pricing.BoxSpec{Length: 30, Width: 20, Height: 15, Grade: pricing.Grade32EST, Quantity: 100},
		}, prices, fmt.Sprintf("COT-%04d", i+1), time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC))
		if err != nil {
			t.Fatalf("build quote: %v", err)
		}
		quotes = append(quotes, q)
	}

	var buf bytes.Buffer
	if err := QuotesXLSX(&buf, quotes); err != nil {
		t.Fatalf("QuotesXLSX returned error: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header and 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Folio" || rows[0][9] != "Total" {
		t.Fatalf("unexpected header %v", rows[0])
	}

	first := rows[1]
	want := []string{"COT-0001", "18/10/2026", "Ana", "Empresa Ana", "30 × 20 × 15", "32EST", "0", "100", "5.38", "537.8"}
	for i, w := range want {
		if first[i] != w {
			t.Fatalf("cell %d = %q, want %q (row %v)", i, first[i], w, first)
		}
	}
	if rows[2][0] != "COT-0002" || rows[2][2] != "Beto" {
		t.Fatalf("unexpected second row %v", rows[2])
	}
}

func TestQuotesXLSXEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := QuotesXLSX(&buf, nil); err != nil {
		t.Fatalf("QuotesXLSX returned error: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected only the header row, got %d", len(rows))
	}
}
