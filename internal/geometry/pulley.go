package geometry

import (
	"math"

	"github.com/techdraw/backend/internal/models"
	"github.com/techdraw/backend/internal/units"
)

// PulleyTop generates the face view of a V-belt pulley: outer and bore
// circles, a dashed circle marking the groove floor, and the keyway
// notch seated flush against the bore's upper edge.
func PulleyTop(p models.PulleyParameters) View {
	outerR := p.Diameter / 2
	boreR := p.BoreDiameter / 2
	innerR := p.InnerDiameter / 2

	v := View{Type: models.ViewTop, Layer: LayerTopView, ExtentX: p.Diameter, ExtentY: p.Diameter}

	v.add(Circle{Center: Point{0, 0}, Radius: outerR, Style: StyleSolid})
	v.add(Circle{Center: Point{0, 0}, Radius: innerR, Style: StyleDashed})
	v.add(Circle{Center: Point{0, 0}, Radius: boreR, Style: StyleSolid})

	addKeywayNotch(&v, boreR, p.KeyWayWidth, p.KeyWayDepth)

	st := DefaultDimStyle(p.Diameter)
	v.addDim(LinearDimension(
		Point{-outerR, -outerR}, Point{outerR, -outerR}, Point{0, -1},
		st, p.Diameter, p.Unit, PlaceBottom,
	))
	v.addDim(RadiusLeader(Point{0, 0}, boreR, 135, st,
		"∅"+units.Format(p.BoreDiameter, p.Unit)))

	return v
}

// PulleySide generates the profile: a rounded body rectangle with two
// inward-pointing V notches whose apexes reach the groove floor, the
// defining feature of a V-belt pulley section. Dashed lines mark where
// the inner diameter and the bore cross the body.
func PulleySide(p models.PulleyParameters) View {
	t := p.Thickness
	outerR := p.Diameter / 2
	boreR := p.BoreDiameter / 2
	innerR := p.InnerDiameter / 2
	ht := t / 2

	v := View{
		Type:    models.ViewSide,
		Layer:   LayerSideView,
		ExtentX: maxOf(p.Diameter, t),
		ExtentY: p.Diameter,
	}

	bodyR := minOf(t, p.Diameter) * 0.06
	addRoundedRect(&v, ht, outerR, bodyR, StyleSolid)

	// V notches, apex at the groove floor.
	hgw := p.GrooveWidth / 2
	v.add(Line{From: Point{-hgw, outerR}, To: Point{0, innerR}, Style: StyleSolid})
	v.add(Line{From: Point{0, innerR}, To: Point{hgw, outerR}, Style: StyleSolid})
	v.add(Line{From: Point{-hgw, -outerR}, To: Point{0, -innerR}, Style: StyleSolid})
	v.add(Line{From: Point{0, -innerR}, To: Point{hgw, -outerR}, Style: StyleSolid})

	// Hidden boundaries crossing the body.
	for _, y := range []float64{innerR, -innerR} {
		v.add(Line{From: Point{-ht, y}, To: Point{ht, y}, Style: StyleDashed})
	}
	for _, y := range []float64{boreR, -boreR} {
		v.add(Line{From: Point{-ht, y}, To: Point{ht, y}, Style: StyleDashed})
	}

	// Keyway slot at the bore edge.
	kTop := boreR + p.KeyWayDepth
	v.add(Line{From: Point{-ht, kTop}, To: Point{ht, kTop}, Style: StyleSolid})
	v.add(Line{From: Point{-ht, boreR}, To: Point{-ht, kTop}, Style: StyleSolid})
	v.add(Line{From: Point{ht, boreR}, To: Point{ht, kTop}, Style: StyleSolid})

	st := DefaultDimStyle(maxOf(p.Diameter, t))
	v.addDim(LinearDimension(
		Point{-ht, -outerR}, Point{ht, -outerR}, Point{0, -1},
		st, t, p.Unit, PlaceBottom,
	))
	v.addDim(LinearDimension(
		Point{ht, -outerR}, Point{ht, outerR}, Point{1, 0},
		st, p.Diameter, p.Unit, PlaceRight,
	))

	return v
}

// PulleyDrawing assembles the full multi-view document for a pulley.
func PulleyDrawing(p models.PulleyParameters) Drawing {
	return Drawing{
		Component: models.ComponentPulley,
		Unit:      p.Unit,
		Views:     []View{PulleyTop(p), PulleySide(p)},
	}
}

// addKeywayNotch emits the three open sides of the keyway rectangle.
// The side walls start on the bore circle itself so the notch sits
// flush against the bore with no gap.
func addKeywayNotch(v *View, boreR, width, depth float64) {
	hkw := width / 2
	if hkw >= boreR {
		hkw = boreR * 0.9
	}
	// Chord height where the keyway walls meet the bore circle.
	base := math.Sqrt(boreR*boreR - hkw*hkw)
	top := boreR + depth

	v.add(Line{From: Point{-hkw, base}, To: Point{-hkw, top}, Style: StyleSolid})
	v.add(Line{From: Point{-hkw, top}, To: Point{hkw, top}, Style: StyleSolid})
	v.add(Line{From: Point{hkw, top}, To: Point{hkw, base}, Style: StyleSolid})
}

func minOf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
