// Package unfold lays out the flattened sheet of a regular slotted box as a
// set of drawing primitives in canvas coordinates.
//
// The sheet is a horizontal strip of five panels (L, W, L, W and the glue
// flap) with a top and a bottom flap on each of the first four panels. Layout
// maps that model, measured in centimeters, onto a canvas with one uniform
// scale and offset; renderers only have to stroke and fill what it returns.
package unfold

import (
	"fmt"
	"math"

	"github.com/Simplici0/cotizador/internal/format"
	"github.com/Simplici0/cotizador/internal/pricing"
)

const (
	// Pad is the model-space margin, in cm, kept around the strip when fitting it.
	Pad = 20.0

	// Offsets below are in canvas units.
	sizeLabelGap   = 4.0
	dimensionGap   = 12.0 // baseline distance from the strip
	tickGap        = 5.0  // tick start distance from the strip
	bodyDimGap     = 8.0
	bodyTickGap    = 5.0
	arrowSize      = 2.0
	dimLabelOffset = 3.0
	sideLabelGap   = 5.0
)

// Canvas is the drawable region. X and Y locate its top-left corner so
// renderers can reserve room for headers and footers.
type Canvas struct {
	X, Y          float64
	Width, Height float64
}

// PanelKind identifies what a rectangle of the unfold represents.
type PanelKind int

const (
	KindLength PanelKind = iota
	KindWidth
	KindGlueFlap
	KindTopFlap
	KindBottomFlap
)

func (k PanelKind) String() string {
	switch k {
	case KindLength:
		return "L"
	case KindWidth:
		return "W"
	case KindGlueFlap:
		return "Solapa"
	case KindTopFlap, KindBottomFlap:
		return "Flap"
	default:
		return "?"
	}
}

// Rect is an axis-aligned rectangle in canvas units.
type Rect struct {
	X, Y, W, H float64
}

// Line is a segment in canvas units.
type Line struct {
	X1, Y1, X2, Y2 float64
}

// LabelRole tells renderers which text style to use.
type LabelRole int

const (
	RoleName LabelRole = iota
	RoleSize
	RoleDimension
)

// Label is text anchored at its horizontal center. Angle is in degrees,
// counter-clockwise.
type Label struct {
	X, Y  float64
	Text  string
	Angle float64
	Role  LabelRole
}

// Panel is one labelled region of the sheet.
type Panel struct {
	Kind PanelKind
	Rect Rect
	Name Label
	Size Label
}

// Dimension is a measured annotation: baseline, end ticks, arrowheads and text.
type Dimension struct {
	Baseline Line
	Ticks    [2]Line
	Arrows   [4]Line
	Label    Label
}

// Drawing is the full scene produced by Layout.
type Drawing struct {
	Scale, OffsetX, OffsetY float64

	// Model-space sizes, in cm.
	TotalWidth, TotalHeight, FlapDepth float64

	Body       Rect // filled background of the walls
	Outline    Rect // solid border over the walls
	Dividers   []Line
	Panels     []Panel
	Flaps      []Panel
	Dimensions []Dimension
}

// Layout computes the unfold drawing for box, fitted into canvas. Dimension
// labels for the overall sheet come from br so the drawing quotes the same
// figures as the price breakdown.
func Layout(box pricing.BoxSpec, br pricing.Breakdown, canvas Canvas) Drawing {
	if box.Length <= 0 || box.Width <= 0 || box.Height <= 0 {
		panic(fmt.Sprintf("unfold: non-positive box spec %+v", box))
	}

	l, w, h := box.Length, box.Width, box.Height
	flapDepth := w / 2
	totalWidth := 2*l + 2*w + pricing.GlueFlap
	totalHeight := flapDepth + h + flapDepth

	scale := math.Min(
		canvas.Width/(totalWidth+Pad),
		canvas.Height/(totalHeight+Pad),
	)
	offsetX := canvas.X + (canvas.Width-totalWidth*scale)/2
	offsetY := canvas.Y + (canvas.Height-totalHeight*scale)/2

	px := func(x float64) float64 { return offsetX + x*scale }
	py := func(y float64) float64 { return offsetY + y*scale }

	widths := []float64{l, w, l, w, pricing.GlueFlap}
	kinds := []PanelKind{KindLength, KindWidth, KindLength, KindWidth, KindGlueFlap}

	// edges[i] is the left edge of panel i; edges[5] is the right end of the strip.
	edges := make([]float64, len(widths)+1)
	for i, pw := range widths {
		edges[i+1] = edges[i] + pw
	}
	xs := make([]float64, len(edges))
	for i, e := range edges {
		xs[i] = px(e)
	}

	bodyTop, bodyBottom := flapDepth, flapDepth+h
	yTop, yBodyTop, yBodyBottom, yBottom := py(0), py(bodyTop), py(bodyBottom), py(totalHeight)

	d := Drawing{
		Scale:       scale,
		OffsetX:     offsetX,
		OffsetY:     offsetY,
		TotalWidth:  totalWidth,
		TotalHeight: totalHeight,
		FlapDepth:   flapDepth,
	}

	d.Body = Rect{X: xs[0], Y: yBodyTop, W: totalWidth * scale, H: h * scale}
	d.Outline = d.Body

	for i := 1; i < len(widths); i++ {
		d.Dividers = append(d.Dividers, Line{X1: xs[i], Y1: yBodyTop, X2: xs[i], Y2: yBodyBottom})
	}

	bodyMid := py(bodyTop + h/2)
	for i, pw := range widths {
		cx := px(edges[i] + pw/2)
		d.Panels = append(d.Panels, Panel{
			Kind: kinds[i],
			Rect: Rect{X: xs[i], Y: yBodyTop, W: xs[i+1] - xs[i], H: yBodyBottom - yBodyTop},
			Name: Label{X: cx, Y: bodyMid, Text: kinds[i].String(), Role: RoleName},
			Size: Label{X: cx, Y: bodyMid + sizeLabelGap, Text: cm(pw), Role: RoleSize},
		})
	}

	topMid, bottomMid := py(flapDepth/2), py(bodyBottom+flapDepth/2)
	for i := 0; i < 4; i++ {
		cx := px(edges[i] + widths[i]/2)
		rectW := xs[i+1] - xs[i]
		d.Flaps = append(d.Flaps,
			Panel{
				Kind: KindTopFlap,
				Rect: Rect{X: xs[i], Y: yTop, W: rectW, H: yBodyTop - yTop},
				Name: Label{X: cx, Y: topMid, Text: KindTopFlap.String(), Role: RoleName},
				Size: Label{X: cx, Y: topMid + sizeLabelGap, Text: cm(flapDepth), Role: RoleSize},
			},
			Panel{
				Kind: KindBottomFlap,
				Rect: Rect{X: xs[i], Y: yBodyBottom, W: rectW, H: yBottom - yBodyBottom},
				Name: Label{X: cx, Y: bottomMid, Text: KindBottomFlap.String(), Role: RoleName},
				Size: Label{X: cx, Y: bottomMid + sizeLabelGap, Text: cm(flapDepth), Role: RoleSize},
			},
		)
	}

	left, right := xs[0], xs[len(xs)-1]
	d.Dimensions = []Dimension{
		horizontalDimension(left, right, yTop-dimensionGap, yTop-tickGap, cm(br.SheetLength)),
		verticalDimension(left-dimensionGap, yTop, yBottom, left-tickGap, cm(br.SheetWidth)),
		verticalDimension(right+bodyDimGap, yBodyTop, yBodyBottom, right+bodyTickGap, "H="+format.Number(h)),
	}

	return d
}

func horizontalDimension(x1, x2, y, tickY float64, text string) Dimension {
	return Dimension{
		Baseline: Line{X1: x1, Y1: y, X2: x2, Y2: y},
		Ticks: [2]Line{
			{X1: x1, Y1: tickY, X2: x1, Y2: y},
			{X1: x2, Y1: tickY, X2: x2, Y2: y},
		},
		Arrows: [4]Line{
			{X1: x1, Y1: y, X2: x1 + arrowSize, Y2: y - arrowSize},
			{X1: x1, Y1: y, X2: x1 + arrowSize, Y2: y + arrowSize},
			{X1: x2, Y1: y, X2: x2 - arrowSize, Y2: y - arrowSize},
			{X1: x2, Y1: y, X2: x2 - arrowSize, Y2: y + arrowSize},
		},
		Label: Label{X: (x1 + x2) / 2, Y: y - dimLabelOffset, Text: text, Role: RoleDimension},
	}
}

// verticalDimension places the rotated label sideLabelGap to the left of the
// baseline on both sides of the strip.
func verticalDimension(x, y1, y2, tickX float64, text string) Dimension {
	return Dimension{
		Baseline: Line{X1: x, Y1: y1, X2: x, Y2: y2},
		Ticks: [2]Line{
			{X1: tickX, Y1: y1, X2: x, Y2: y1},
			{X1: tickX, Y1: y2, X2: x, Y2: y2},
		},
		Arrows: [4]Line{
			{X1: x, Y1: y1, X2: x - arrowSize, Y2: y1 + arrowSize},
			{X1: x, Y1: y1, X2: x + arrowSize, Y2: y1 + arrowSize},
			{X1: x, Y1: y2, X2: x - arrowSize, Y2: y2 - arrowSize},
			{X1: x, Y1: y2, X2: x + arrowSize, Y2: y2 - arrowSize},
		},
		Label: Label{X: x - sideLabelGap, Y: (y1 + y2) / 2, Text: text, Angle: 90, Role: RoleDimension},
	}
}

func cm(v float64) string {
	return format.Number(v) + " cm"
}
