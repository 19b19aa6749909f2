package render

import (
	"fmt"
	"io"

	"github.com/Simplici0/cotizador/internal/format"
	"github.com/Simplici0/cotizador/internal/quote"
	"github.com/Simplici0/cotizador/internal/unfold"
)

// Drawing region of the landscape page, in mm from each edge.
const (
	drawLeft   = 30.0
	drawRight  = 30.0
	drawTop    = 35.0
	drawBottom = 20.0
)

// DrawingPDF writes the technical drawing of the unfolded sheet of q on an A4
// landscape page.
func DrawingPDF(w io.Writer, q quote.Quote) error {
	d := newDocument("L", "Plano "+q.Folio)
	pageWidth, pageHeight := d.pdf.GetPageSize()

	box, br := q.Box, q.Breakdown
	d.textColor(colorBlack)
	d.font("B", 14)
	d.text(portraitMargin, 15, "PLANO TÉCNICO: CAJA CRR DESPLEGADA", "L")
	d.font("", 9)
	d.text(portraitMargin, 22, fmt.Sprintf("%s | %s | %s", q.Folio, box.Grade, format.Inks(box.Inks)), "L")
	d.text(portraitMargin, 27, fmt.Sprintf("Dimensiones: %s × %s × %s cm | Pliego: %s × %s cm | Área: %s m²",
		format.Number(box.Length), format.Number(box.Width), format.Number(box.Height),
		format.Number(br.SheetLength), format.Number(br.SheetWidth), format.Number(br.AreaM2)), "L")

	drawing := unfold.Layout(box, br, DrawingCanvas(pageWidth, pageHeight))
	d.drawUnfold(drawing)

	d.font("", 8)
	d.textColor(colorFaint)
	d.text(pageWidth/2, pageHeight-8, "Plano técnico generado por "+appName+". No a escala real", "C")

	return d.output(w)
}

// DrawingCanvas is the region of a page of the given size that holds the drawing.
func DrawingCanvas(pageWidth, pageHeight float64) unfold.Canvas {
	return unfold.Canvas{
		X:      drawLeft,
		Y:      drawTop,
		Width:  pageWidth - drawLeft - drawRight,
		Height: pageHeight - drawTop - drawBottom,
	}
}

func (d *document) drawUnfold(dr unfold.Drawing) {
	pdf := d.pdf

	d.drawColor(colorBlack)
	d.fillColor(colorBody)
	pdf.SetLineWidth(0.4)
	pdf.Rect(dr.Body.X, dr.Body.Y, dr.Body.W, dr.Body.H, "FD")

	pdf.SetDashPattern([]float64{2, 2}, 0)
	d.drawColor(colorFaint)
	for _, l := range dr.Dividers {
		pdf.Line(l.X1, l.Y1, l.X2, l.Y2)
	}
	pdf.SetDashPattern([]float64{}, 0)

	d.drawColor(colorBlack)
	pdf.SetLineWidth(0.6)
	pdf.Rect(dr.Outline.X, dr.Outline.Y, dr.Outline.W, dr.Outline.H, "D")

	pdf.SetLineWidth(0.4)
	d.fillColor(colorFlap)
	for _, f := range dr.Flaps {
		pdf.Rect(f.Rect.X, f.Rect.Y, f.Rect.W, f.Rect.H, "FD")
	}

	d.textColor(colorLabel)
	for _, group := range [][]unfold.Panel{dr.Panels, dr.Flaps} {
		for _, p := range group {
			d.label(p.Name)
			d.label(p.Size)
		}
	}

	d.drawColor(colorDimension)
	d.textColor(colorDimension)
	pdf.SetLineWidth(0.3)
	for _, dim := range dr.Dimensions {
		for _, l := range dim.Ticks {
			pdf.Line(l.X1, l.Y1, l.X2, l.Y2)
		}
		pdf.Line(dim.Baseline.X1, dim.Baseline.Y1, dim.Baseline.X2, dim.Baseline.Y2)
		for _, l := range dim.Arrows {
			pdf.Line(l.X1, l.Y1, l.X2, l.Y2)
		}
		d.label(dim.Label)
	}
}

func (d *document) label(l unfold.Label) {
	switch l.Role {
	case unfold.RoleName:
		d.font("B", 8)
	case unfold.RoleSize:
		d.font("", 7)
	case unfold.RoleDimension:
		d.font("B", 8)
	}

	if l.Angle != 0 {
		d.rotatedText(l.X, l.Y, l.Angle, l.Text)
		return
	}
	d.text(l.X, l.Y, l.Text, "C")
}
