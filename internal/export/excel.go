// Package export writes the quote list as a spreadsheet.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/Simplici0/cotizador/internal/format"
	"github.com/Simplici0/cotizador/internal/quote"
)

// SheetName is the worksheet holding the quotes.
const SheetName = "Cotizaciones"

// ContentType is the MIME type of the written workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var headers = []any{
	"Folio", "Fecha", "Cliente", "Empresa", "Dimensiones (cm)",
	"Resistencia", "Tintas", "Cantidad", "Precio unitario", "Total",
}

// QuotesXLSX writes one row per quote, in the given order, below a header row.
func QuotesXLSX(w io.Writer, quotes []quote.Quote) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &headers); err != nil {
		return fmt.Errorf("write header row: %w", err)
	}

	for i, q := range quotes {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("locate row %d: %w", i+2, err)
		}
		row := []any{
			q.Folio,
			format.Date(q.CreatedAt),
			q.Client.Name,
			q.Client.Company,
			fmt.Sprintf("%s × %s × %s", format.Number(q.Box.Length), format.Number(q.Box.Width), format.Number(q.Box.Height)),
			string(q.Box.Grade),
			q.Box.Inks,
			q.Box.Quantity,
			q.Breakdown.UnitSalePrice,
			q.Breakdown.Total,
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write quote %s: %w", q.Folio, err)
		}
	}

	if err := styleSheet(f, len(quotes)); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func styleSheet(f *excelize.File, rows int) error {
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"292929"}},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", "J1", header); err != nil {
		return fmt.Errorf("style header row: %w", err)
	}

	if rows > 0 {
		moneyFmt := `"$"#,##0.00`
		money, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})
		if err != nil {
			return fmt.Errorf("create money style: %w", err)
		}
		if err := f.SetCellStyle(SheetName, "I2", fmt.Sprintf("J%d", rows+1), money); err != nil {
			return fmt.Errorf("style money columns: %w", err)
		}
	}

	widths := map[string]float64{"A": 12, "B": 12, "C": 28, "D": 28, "E": 18, "I": 16, "J": 16}
	for col, width := range widths {
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return fmt.Errorf("set width of column %s: %w", col, err)
		}
	}
	return nil
}
