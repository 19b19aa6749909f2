package render

import (
	"fmt"
	"io"

	"github.com/Simplici0/cotizador/internal/format"
	"github.com/Simplici0/cotizador/internal/quote"
)

const (
	portraitMargin = 14.0
	rowHeight      = 7.0
	labelColWidth  = 120.0
)

type tableRow struct {
	concept, value string
}

// QuotePDF writes the printable quotation for q, headed with company.
func QuotePDF(w io.Writer, q quote.Quote, company quote.Company) error {
	d := newDocument("P", "Cotización "+q.Folio)
	pageWidth, pageHeight := d.pdf.GetPageSize()
	right := pageWidth - portraitMargin

	name := company.Name
	if name == "" {
		name = quote.DefaultSettings().Company.Name
	}

	d.textColor(colorBlack)
	d.font("B", 18)
	d.text(portraitMargin, 20, name, "L")

	d.font("", 9)
	d.textColor(colorMuted)
	headerY := 26.0
	for _, line := range companyLines(company) {
		d.text(portraitMargin, headerY, line, "L")
		headerY += 4
	}

	d.textColor(colorBlack)
	d.font("B", 12)
	d.text(right, 20, q.Folio, "R")
	d.font("", 9)
	d.textColor(colorMuted)
	d.text(right, 26, format.DateLong(q.CreatedAt), "R")

	ruleY := max(headerY+4, 40)
	d.drawColor(colorRule)
	d.pdf.SetLineWidth(0.5)
	d.pdf.Line(portraitMargin, ruleY, right, ruleY)

	y := ruleY + 10
	d.textColor(colorBlack)
	d.font("B", 11)
	d.text(portraitMargin, y, "DATOS DEL CLIENTE", "L")
	y += 7

	d.font("", 9)
	for _, line := range clientLines(q.Client) {
		d.text(portraitMargin, y, line, "L")
		y += 5
	}
	y += 5

	box, br := q.Box, q.Breakdown
	d.font("B", 11)
	d.text(portraitMargin, y, "ESPECIFICACIONES DE LA CAJA", "L")
	y = d.table(y+3, "Valor", []tableRow{
		{"Dimensiones interiores (L × W × H)", fmt.Sprintf("%s × %s × %s cm", format.Number(box.Length), format.Number(box.Width), format.Number(box.Height))},
		{"Resistencia", string(box.Grade)},
		{"Tintas", format.Inks(box.Inks)},
		{"Cantidad", format.Integer(box.Quantity) + " piezas"},
		{"Largo pliego", format.Number(br.SheetLength) + " cm"},
		{"Ancho pliego", format.Number(br.SheetWidth) + " cm"},
		{"Área del pliego", format.Number(br.AreaM2) + " m²"},
	}, nil)

	y += 10
	d.font("B", 11)
	d.text(portraitMargin, y, "DESGLOSE DE PRECIO", "L")

	prices := []tableRow{{"Costo base (área × precio/m²)", format.MXN(br.BaseCost)}}
	if br.InkSurcharge > 0 {
		prices = append(prices, tableRow{fmt.Sprintf("Recargo tintas (%d × 3%%)", box.Inks), format.MXN(br.InkSurcharge)})
	}
	prices = append(prices,
		tableRow{"Precio unitario de venta (margen 30%)", format.MXN(br.UnitSalePrice)},
		tableRow{"Cantidad: " + format.Integer(box.Quantity) + " piezas", ""},
	)
	y = d.table(y+3, "Monto", prices, &tableRow{"TOTAL", format.MXN(br.Total)})

	if q.Notes != "" {
		y += 10
		d.font("B", 11)
		d.text(portraitMargin, y, "NOTAS", "L")
		d.font("", 9)
		d.pdf.SetXY(portraitMargin, y+3)
		d.pdf.MultiCell(right-portraitMargin, 5, d.tr(q.Notes), "", "L", false)
	}

	d.font("", 8)
	d.textColor(colorFaint)
	d.text(pageWidth/2, pageHeight-10, "Cotización generada por "+appName, "C")

	return d.output(w)
}

// table draws a striped two column table starting at y and returns the y
// below its last row. The value column is right aligned.
func (d *document) table(y float64, valueHeader string, rows []tableRow, footer *tableRow) float64 {
	pageWidth, _ := d.pdf.GetPageSize()
	valueColWidth := pageWidth - 2*portraitMargin - labelColWidth

	d.pdf.SetXY(portraitMargin, y)
	d.pdf.SetLineWidth(0.1)
	d.drawColor(colorRule)

	d.font("B", 9)
	d.fillColor(colorHeaderBg)
	d.textColor(colorWhite)
	d.pdf.CellFormat(labelColWidth, rowHeight, d.tr("Concepto"), "", 0, "L", true, 0, "")
	d.pdf.CellFormat(valueColWidth, rowHeight, d.tr(valueHeader), "", 1, "R", true, 0, "")

	d.font("", 9)
	d.textColor(colorBlack)
	d.fillColor(colorStripe)
	for i, row := range rows {
		fill := i%2 == 1
		d.pdf.SetX(portraitMargin)
		d.pdf.CellFormat(labelColWidth, rowHeight, d.tr(row.concept), "", 0, "L", fill, 0, "")
		d.pdf.CellFormat(valueColWidth, rowHeight, d.tr(row.value), "", 1, "R", fill, 0, "")
	}

	if footer != nil {
		d.font("B", 11)
		d.fillColor(colorHeaderBg)
		d.textColor(colorWhite)
		d.pdf.SetX(portraitMargin)
		d.pdf.CellFormat(labelColWidth, rowHeight+1, d.tr(footer.concept), "", 0, "L", true, 0, "")
		d.pdf.CellFormat(valueColWidth, rowHeight+1, d.tr(footer.value), "", 1, "R", true, 0, "")
		d.textColor(colorBlack)
	}

	return d.pdf.GetY()
}

func companyLines(c quote.Company) []string {
	var lines []string
	if c.Address != "" {
		lines = append(lines, c.Address)
	}
	if c.Phone != "" {
		lines = append(lines, "Tel: "+c.Phone)
	}
	if c.Email != "" {
		lines = append(lines, c.Email)
	}
	if c.RFC != "" {
		lines = append(lines, "RFC: "+c.RFC)
	}
	return lines
}

func clientLines(c quote.Client) []string {
	lines := []string{"Nombre: " + c.Name}
	if c.Company != "" {
		lines = append(lines, "Empresa: "+c.Company)
	}
	if c.Phone != "" {
		lines = append(lines, "Teléfono: "+c.Phone)
	}
	if c.Email != "" {
		lines = append(lines, "Email: "+c.Email)
	}
	return lines
}
