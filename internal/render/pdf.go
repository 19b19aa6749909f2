package render

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

const (
	fontFamily = "Helvetica"
	appName    = "Cotizador CRR"
)

type rgb struct{ r, g, b int }

var (
	colorBlack     = rgb{0, 0, 0}
	colorMuted     = rgb{100, 100, 100}
	colorFaint     = rgb{150, 150, 150}
	colorRule      = rgb{200, 200, 200}
	colorHeaderBg  = rgb{41, 41, 41}
	colorStripe    = rgb{245, 245, 245}
	colorWhite     = rgb{255, 255, 255}
	colorBody      = rgb{245, 245, 245}
	colorFlap      = rgb{252, 252, 252}
	colorLabel     = rgb{80, 80, 80}
	colorDimension = rgb{200, 50, 50}
)

// document wraps fpdf with the cp1252 translator the core fonts need for
// accents, and the color helpers both PDFs share.
type document struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func newDocument(orientation, title string) *document {
	pdf := fpdf.New(orientation, "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetCreator(appName, true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	return &document{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

func (d *document) font(style string, size float64) {
	d.pdf.SetFont(fontFamily, style, size)
}

func (d *document) textColor(c rgb) { d.pdf.SetTextColor(c.r, c.g, c.b) }
func (d *document) drawColor(c rgb) { d.pdf.SetDrawColor(c.r, c.g, c.b) }
func (d *document) fillColor(c rgb) { d.pdf.SetFillColor(c.r, c.g, c.b) }

// text writes s with its baseline at y. align is "L", "C" or "R" relative to x.
func (d *document) text(x, y float64, s, align string) {
	s = d.tr(s)
	switch align {
	case "C":
		x -= d.pdf.GetStringWidth(s) / 2
	case "R":
		x -= d.pdf.GetStringWidth(s)
	}
	d.pdf.Text(x, y, s)
}

// rotatedText writes s centered on (x, y), turned angle degrees counter-clockwise.
func (d *document) rotatedText(x, y, angle float64, s string) {
	d.pdf.TransformBegin()
	d.pdf.TransformRotate(angle, x, y)
	d.text(x, y, s, "C")
	d.pdf.TransformEnd()
}

func (d *document) output(w io.Writer) error {
	if err := d.pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
