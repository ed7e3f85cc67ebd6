package geometry

import (
	"github.com/techdraw/backend/internal/models"
	"github.com/techdraw/backend/internal/units"
)

// BoxTop generates the plan view of a rectangular enclosure: a rounded
// rectangle with width and height call-outs, plus a radius leader when
// the corners are rounded. The caller guarantees parameters already
// passed validation.
func BoxTop(b models.BoxDimensions) View {
	w, h, r := b.Width, b.Height, b.CornerRadius
	v := View{Type: models.ViewTop, Layer: LayerTopView, ExtentX: w, ExtentY: h}

	hw, hh := w/2, h/2
	addRoundedRect(&v, hw, hh, r, StyleSolid)

	st := DefaultDimStyle(maxOf(w, h))

	// Width along the bottom, height along the right side.
	v.addDim(LinearDimension(
		Point{-hw, -hh}, Point{hw, -hh}, Point{0, -1},
		st, w, b.Unit, PlaceBottom,
	))
	v.addDim(LinearDimension(
		Point{hw, -hh}, Point{hw, hh}, Point{1, 0},
		st, h, b.Unit, PlaceRight,
	))

	if r > 0 {
		center := Point{hw - r, hh - r}
		v.addDim(RadiusLeader(center, r, 45, st, "R"+units.Format(r, b.Unit)))
	}

	return v
}

// BoxSide generates the profile view: a plain rectangle over
// (depth, height). The corner radius does not apply to a flat cut.
func BoxSide(b models.BoxDimensions) View {
	d, h := b.EffectiveDepth(), b.Height
	v := View{Type: models.ViewSide, Layer: LayerSideView, ExtentX: d, ExtentY: h}

	hd, hh := d/2, h/2
	addRect(&v, Point{-hd, -hh}, Point{hd, hh}, StyleSolid)

	st := DefaultDimStyle(maxOf(d, h))
	v.addDim(LinearDimension(
		Point{-hd, -hh}, Point{hd, -hh}, Point{0, -1},
		st, d, b.Unit, PlaceBottom,
	))
	v.addDim(LinearDimension(
		Point{hd, -hh}, Point{hd, hh}, Point{1, 0},
		st, h, b.Unit, PlaceRight,
	))

	return v
}

// BoxDrawing assembles the full multi-view document for a box.
func BoxDrawing(b models.BoxDimensions) Drawing {
	return Drawing{
		Component: models.ComponentBox,
		Unit:      b.Unit,
		Views:     []View{BoxTop(b), BoxSide(b)},
	}
}

// addRoundedRect emits four edges and, when r > 0, four quarter arcs
// for a rectangle centered on the origin with half-extents hw, hh.
func addRoundedRect(v *View, hw, hh, r float64, style Style) {
	// Edges, shortened by the corner radius.
	v.add(Line{From: Point{-hw + r, -hh}, To: Point{hw - r, -hh}, Style: style})
	v.add(Line{From: Point{hw, -hh + r}, To: Point{hw, hh - r}, Style: style})
	v.add(Line{From: Point{hw - r, hh}, To: Point{-hw + r, hh}, Style: style})
	v.add(Line{From: Point{-hw, hh - r}, To: Point{-hw, -hh + r}, Style: style})

	if r <= 0 {
		return
	}
	v.add(Arc{Center: Point{hw - r, hh - r}, Radius: r, StartAngle: 0, EndAngle: 90, Style: style})
	v.add(Arc{Center: Point{-hw + r, hh - r}, Radius: r, StartAngle: 90, EndAngle: 180, Style: style})
	v.add(Arc{Center: Point{-hw + r, -hh + r}, Radius: r, StartAngle: 180, EndAngle: 270, Style: style})
	v.add(Arc{Center: Point{hw - r, -hh + r}, Radius: r, StartAngle: 270, EndAngle: 360, Style: style})
}

// addRect emits the four edges of an axis-aligned rectangle.
func addRect(v *View, min, max Point, style Style) {
	v.add(Line{From: Point{min.X, min.Y}, To: Point{max.X, min.Y}, Style: style})
	v.add(Line{From: Point{max.X, min.Y}, To: Point{max.X, max.Y}, Style: style})
	v.add(Line{From: Point{max.X, max.Y}, To: Point{min.X, max.Y}, Style: style})
	v.add(Line{From: Point{min.X, max.Y}, To: Point{min.X, min.Y}, Style: style})
}

func maxOf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
