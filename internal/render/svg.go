// Package render walks geometry primitive lists and emits SVG
// documents scaled to the requesting viewport. Every render is a full
// document regeneration; there is no incremental patching.
package render

import (
	"errors"
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/techdraw/backend/internal/geometry"
	"github.com/techdraw/backend/internal/layout"
	"github.com/techdraw/backend/internal/models"
)

// ErrViewportNotMeasured is returned when the container size is not
// yet known. This is an expected transient state during initial
// layout; callers skip the render rather than surfacing an error.
var ErrViewportNotMeasured = errors.New("render: viewport not measured")

// GridCell is the fixed background grid spacing in container units.
const GridCell = 20

// dash patterns are fixed per style, in container units.
const (
	dashHidden = "6,4"
	dashCenter = "12,4,3,4"
)

// Renderer emits SVG for generated views.
type Renderer struct {
	Padding float64
}

// NewRenderer returns a renderer with the default viewport padding.
func NewRenderer() *Renderer {
	return &Renderer{Padding: layout.DefaultPadding}
}

// RenderView draws one view into w as a complete SVG document sized to
// the container. The theme is threaded through explicitly so the same
// primitives render identically for a given (view, theme, viewport).
func (r *Renderer) RenderView(w io.Writer, v geometry.View, containerW, containerH int, theme Theme) error {
	lay, ok := layout.ResolveView(float64(containerW), float64(containerH), r.Padding, v)
	if !ok {
		return ErrViewportNotMeasured
	}

	pal := PaletteFor(theme)
	canvas := svg.New(w)
	canvas.Start(containerW, containerH)

	canvas.Rect(0, 0, containerW, containerH, "fill:"+pal.Background)
	r.drawGrid(canvas, containerW, containerH, pal)

	shadow := v.Type == models.ViewTop
	if shadow {
		canvas.Gstyle(fmt.Sprintf("filter:drop-shadow(0px 3px 6px %s)", pal.Shadow))
	}

	for _, el := range v.Elements {
		r.drawElement(canvas, el, lay, pal)
	}

	if shadow {
		canvas.Gend()
	}

	canvas.End()
	return nil
}

// drawGrid layers the fixed-cell background grid beneath the geometry.
func (r *Renderer) drawGrid(canvas *svg.SVG, w, h int, pal Palette) {
	style := fmt.Sprintf("stroke:%s;stroke-width:1", pal.Grid)
	for x := GridCell; x < w; x += GridCell {
		canvas.Line(x, 0, x, h, style)
	}
	for y := GridCell; y < h; y += GridCell {
		canvas.Line(0, y, w, y, style)
	}
}

func (r *Renderer) drawElement(canvas *svg.SVG, el geometry.Element, lay layout.ScaledLayout, pal Palette) {
	switch p := el.Primitive.(type) {
	case geometry.Line:
		r.drawLine(canvas, p, lay, pal, 2)
	case geometry.Arc:
		canvas.Path(arcPath(p, lay), strokeStyle(pal, p.Style, 2))
	case geometry.Circle:
		x, y := lay.Project(p.Center)
		canvas.Circle(round(x), round(y), round(p.Radius*lay.ScaleFactor),
			strokeStyle(pal, p.Style, 2))
	case geometry.Text:
		r.drawText(canvas, p, lay, pal)
	case geometry.DimensionGroup:
		r.drawDimension(canvas, p, lay, pal)
	}
}

func (r *Renderer) drawLine(canvas *svg.SVG, l geometry.Line, lay layout.ScaledLayout, pal Palette, width int) {
	x1, y1 := lay.Project(l.From)
	x2, y2 := lay.Project(l.To)
	canvas.Line(round(x1), round(y1), round(x2), round(y2), strokeStyle(pal, l.Style, width))
}

func (r *Renderer) drawText(canvas *svg.SVG, t geometry.Text, lay layout.ScaledLayout, pal Palette) {
	x, y := lay.Project(t.At)
	size := t.Height * lay.ScaleFactor
	style := fmt.Sprintf("font-size:%.1fpx;font-family:sans-serif;fill:%s;text-anchor:%s;dominant-baseline:middle",
		size, pal.Dimension, t.Anchor)
	if t.Rotation != 0 {
		style += fmt.Sprintf(";transform:rotate(%.1fdeg);transform-origin:%dpx %dpx", -t.Rotation, round(x), round(y))
	}
	canvas.Text(round(x), round(y), t.Content, style)
}

// drawDimension renders a full call-out: extension lines, dimension
// line, filled arrowheads, and the label over its background box.
func (r *Renderer) drawDimension(canvas *svg.SVG, d geometry.DimensionGroup, lay layout.ScaledLayout, pal Palette) {
	lineStyle := fmt.Sprintf("stroke:%s;stroke-width:1", pal.Dimension)

	for _, ext := range d.Extensions {
		x1, y1 := lay.Project(ext.From)
		x2, y2 := lay.Project(ext.To)
		canvas.Line(round(x1), round(y1), round(x2), round(y2), lineStyle)
	}
	x1, y1 := lay.Project(d.DimLine.From)
	x2, y2 := lay.Project(d.DimLine.To)
	canvas.Line(round(x1), round(y1), round(x2), round(y2), lineStyle)

	for _, a := range d.Arrows {
		tx, ty := lay.Project(a.Tip)
		lx, ly := lay.Project(a.Left)
		rx, ry := lay.Project(a.Right)
		canvas.Polygon(
			[]int{round(tx), round(lx), round(rx)},
			[]int{round(ty), round(ly), round(ry)},
			"fill:"+pal.Dimension,
		)
	}

	// Label background first, sized to the measured text width.
	minX, minY := lay.Project(d.LabelBox.Min)
	maxX, maxY := lay.Project(d.LabelBox.Max)
	canvas.Rect(round(minX), round(maxY), round(maxX-minX), round(minY-maxY),
		"fill:"+pal.LabelBg)

	r.drawText(canvas, d.Label, lay, pal)
}

// strokeStyle maps a primitive style onto the palette and the fixed
// dash patterns.
func strokeStyle(pal Palette, s geometry.Style, width int) string {
	switch s {
	case geometry.StyleDashed:
		return fmt.Sprintf("stroke:%s;stroke-width:%d;fill:none;stroke-dasharray:%s", pal.Hidden, width, dashHidden)
	case geometry.StyleCenter:
		return fmt.Sprintf("stroke:%s;stroke-width:1;fill:none;stroke-dasharray:%s", pal.Hidden, dashCenter)
	case geometry.StyleSection:
		return fmt.Sprintf("stroke:%s;stroke-width:%d;fill:none;stroke-dasharray:%s", pal.Section, width, dashCenter)
	case geometry.StyleHatch:
		return fmt.Sprintf("stroke:%s;stroke-width:1;fill:none", pal.Hatch)
	default:
		return fmt.Sprintf("stroke:%s;stroke-width:%d;fill:none", pal.Stroke, width)
	}
}

// arcPath builds an SVG path for a model-space arc. The y-flip of the
// projection turns counter-clockwise model arcs into sweep-flag-0
// screen arcs.
func arcPath(a geometry.Arc, lay layout.ScaledLayout) string {
	start := pointOnArc(a, a.StartAngle)
	end := pointOnArc(a, a.EndAngle)
	sx, sy := lay.Project(start)
	ex, ey := lay.Project(end)
	r := a.Radius * lay.ScaleFactor

	span := math.Mod(a.EndAngle-a.StartAngle+360, 360)
	large := 0
	if span > 180 {
		large = 1
	}
	return fmt.Sprintf("M %.2f %.2f A %.2f %.2f 0 %d 0 %.2f %.2f", sx, sy, r, r, large, ex, ey)
}

func pointOnArc(a geometry.Arc, angleDeg float64) geometry.Point {
	rad := angleDeg * math.Pi / 180
	return geometry.Point{
		X: a.Center.X + a.Radius*math.Cos(rad),
		Y: a.Center.Y + a.Radius*math.Sin(rad),
	}
}

func round(v float64) int {
	return int(math.Round(v))
}
