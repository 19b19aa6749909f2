package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/Simplici0/cotizador/internal/quote"
	"github.com/Simplici0/cotizador/internal/unfold"
)

// svgMargin is kept free around the canvas so dimension labels stay inside the viewBox.
const svgMargin = 10.0

var svgFontSize = map[unfold.LabelRole]float64{
	unfold.RoleName:      2.8,
	unfold.RoleSize:      2.5,
	unfold.RoleDimension: 2.8,
}

// DrawingSVG writes the unfold of q as a standalone SVG whose viewBox is
// width by height units. Units match the PDF millimeters, so the same label
// offsets read the same in both outputs.
func DrawingSVG(w io.Writer, q quote.Quote, width, height float64) error {
	canvas := unfold.Canvas{
		X:      svgMargin,
		Y:      svgMargin,
		Width:  width - 2*svgMargin,
		Height: height - 2*svgMargin,
	}
	dr := unfold.Layout(q.Box, q.Breakdown, canvas)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="100%%" font-family="Helvetica, Arial, sans-serif">`+"\n",
		width, height)
	fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML("Plano "+q.Folio))

	writeRect(&buf, dr.Body, fill(colorBody), stroke(colorBlack, 0.4, ""))
	for _, l := range dr.Dividers {
		writeLine(&buf, l, stroke(colorFaint, 0.4, "2 2"))
	}
	writeRect(&buf, dr.Outline, `fill="none"`, stroke(colorBlack, 0.6, ""))
	for _, f := range dr.Flaps {
		writeRect(&buf, f.Rect, fill(colorFlap), stroke(colorBlack, 0.4, ""))
	}

	for _, group := range [][]unfold.Panel{dr.Panels, dr.Flaps} {
		for _, p := range group {
			writeLabel(&buf, p.Name, colorLabel)
			writeLabel(&buf, p.Size, colorLabel)
		}
	}

	dimStroke := stroke(colorDimension, 0.3, "")
	for _, dim := range dr.Dimensions {
		buf.WriteString("  <g class=\"dimension\">\n")
		for _, l := range dim.Ticks {
			writeLine(&buf, l, dimStroke)
		}
		writeLine(&buf, dim.Baseline, dimStroke)
		for _, l := range dim.Arrows {
			writeLine(&buf, l, dimStroke)
		}
		writeLabel(&buf, dim.Label, colorDimension)
		buf.WriteString("  </g>\n")
	}

	buf.WriteString("</svg>\n")

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

func writeRect(buf *bytes.Buffer, r unfold.Rect, attrs ...string) {
	fmt.Fprintf(buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f"`, r.X, r.Y, r.W, r.H)
	writeAttrs(buf, attrs)
}

func writeLine(buf *bytes.Buffer, l unfold.Line, attrs ...string) {
	fmt.Fprintf(buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"`, l.X1, l.Y1, l.X2, l.Y2)
	writeAttrs(buf, attrs)
}

func writeAttrs(buf *bytes.Buffer, attrs []string) {
	for _, a := range attrs {
		buf.WriteByte(' ')
		buf.WriteString(a)
	}
	buf.WriteString("/>\n")
}

func writeLabel(buf *bytes.Buffer, l unfold.Label, c rgb) {
	weight := "bold"
	if l.Role == unfold.RoleSize {
		weight = "normal"
	}

	fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" text-anchor="middle" font-size="%.1f" font-weight="%s" %s`,
		l.X, l.Y, svgFontSize[l.Role], weight, fill(c))
	if l.Angle != 0 {
		// SVG rotates clockwise on screen.
		fmt.Fprintf(buf, ` transform="rotate(%.2f %.2f %.2f)"`, -l.Angle, l.X, l.Y)
	}
	fmt.Fprintf(buf, ">%s</text>\n", escapeXML(l.Text))
}

func fill(c rgb) string {
	return fmt.Sprintf(`fill="rgb(%d,%d,%d)"`, c.r, c.g, c.b)
}

func stroke(c rgb, width float64, dash string) string {
	s := fmt.Sprintf(`stroke="rgb(%d,%d,%d)" stroke-width="%.2f"`, c.r, c.g, c.b, width)
	if dash != "" {
		s += fmt.Sprintf(` stroke-dasharray="%s"`, dash)
	}
	return s
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
