package geometry

import (
	"math"

	"github.com/techdraw/backend/internal/models"
	"github.com/techdraw/backend/internal/units"
)

// IdlerTop generates the face view of an idler roll: concentric
// circles only, since idler shells are not grooved. When
// withSectionLine is set, a section cut line with A / A markers is
// drawn through the center for the companion section view.
func IdlerTop(p models.IdlerParameters, withSectionLine bool) View {
	outerR := p.OuterDiameter / 2
	innerR := p.InnerDiameter / 2

	v := View{Type: models.ViewTop, Layer: LayerTopView, ExtentX: p.OuterDiameter, ExtentY: p.OuterDiameter}

	v.add(Circle{Center: Point{0, 0}, Radius: outerR, Style: StyleSolid})
	v.add(Circle{Center: Point{0, 0}, Radius: innerR, Style: StyleSolid})

	st := DefaultDimStyle(p.OuterDiameter)

	if withSectionLine {
		over := outerR * 1.2
		v.add(Line{From: Point{0, -over}, To: Point{0, over}, Style: StyleSection})
		v.add(Text{At: Point{st.LabelPad * 2, over}, Height: st.TextHeight, Content: "A", Anchor: AnchorStart})
		v.add(Text{At: Point{st.LabelPad * 2, -over}, Height: st.TextHeight, Content: "A", Anchor: AnchorStart})
	}

	v.addDim(LinearDimension(
		Point{-outerR, -outerR}, Point{outerR, -outerR}, Point{0, -1},
		st, p.OuterDiameter, p.Unit, PlaceBottom,
	))
	v.addDim(RadiusLeader(Point{0, 0}, innerR, 135, st,
		"∅"+units.Format(p.InnerDiameter, p.Unit)))

	return v
}

// IdlerSide generates the cylinder silhouette with rounded shell ends
// and dashed shaft boundaries. No groove: idlers carry a flat belt
// surface.
func IdlerSide(p models.IdlerParameters) View {
	l := p.Length
	outerR := p.OuterDiameter / 2
	innerR := p.InnerDiameter / 2
	hl := l / 2

	v := View{
		Type:    models.ViewSide,
		Layer:   LayerSideView,
		ExtentX: l,
		ExtentY: p.OuterDiameter,
	}

	endR := minOf(l, p.OuterDiameter) * 0.1
	addRoundedRect(&v, hl, outerR, endR, StyleSolid)

	// Shaft boundaries through the shell.
	for _, y := range []float64{innerR, -innerR} {
		v.add(Line{From: Point{-hl, y}, To: Point{hl, y}, Style: StyleDashed})
	}
	// Center line.
	v.add(Line{From: Point{-hl * 1.1, 0}, To: Point{hl * 1.1, 0}, Style: StyleCenter})

	st := DefaultDimStyle(maxOf(l, p.OuterDiameter))
	v.addDim(LinearDimension(
		Point{-hl, -outerR}, Point{hl, -outerR}, Point{0, -1},
		st, l, p.Unit, PlaceBottom,
	))
	v.addDim(LinearDimension(
		Point{hl, -outerR}, Point{hl, outerR}, Point{1, 0},
		st, p.OuterDiameter, p.Unit, PlaceRight,
	))

	return v
}

// IdlerSection generates the A-A cut: outer and inner circles with a
// 45° hatch filling the annulus between them to mark the cut surface.
func IdlerSection(p models.IdlerParameters) View {
	outerR := p.OuterDiameter / 2
	innerR := p.InnerDiameter / 2

	v := View{
		Type:    models.ViewSection,
		Layer:   LayerSectionView,
		ExtentX: p.OuterDiameter,
		ExtentY: p.OuterDiameter,
	}

	v.add(Circle{Center: Point{0, 0}, Radius: outerR, Style: StyleSolid})
	v.add(Circle{Center: Point{0, 0}, Radius: innerR, Style: StyleSolid})

	for _, seg := range annulusHatch(outerR, innerR, outerR/8) {
		v.add(seg)
	}

	st := DefaultDimStyle(p.OuterDiameter)
	v.addDim(LinearDimension(
		Point{-outerR, -outerR}, Point{outerR, -outerR}, Point{0, -1},
		st, p.OuterDiameter, p.Unit, PlaceBottom,
	))

	return v
}

// IdlerDrawing assembles the full multi-view document for an idler,
// including the section detail.
func IdlerDrawing(p models.IdlerParameters) Drawing {
	return Drawing{
		Component: models.ComponentIdler,
		Unit:      p.Unit,
		Views:     []View{IdlerTop(p, true), IdlerSide(p), IdlerSection(p)},
	}
}

// annulusHatch builds 45° hatch segments clipped to the ring between
// two concentric circles centered on the origin. Lines are spaced
// perpendicular to their direction; offsets inside the inner circle
// split into two segments.
func annulusHatch(outerR, innerR, spacing float64) []Line {
	var segs []Line
	if spacing <= 0 || outerR <= innerR {
		return segs
	}

	// Direction of the hatch lines (45°) and its normal.
	ux, uy := math.Sqrt2/2, math.Sqrt2/2
	nx, ny := -uy, ux

	for c := -outerR + spacing/2; c < outerR; c += spacing {
		halfOuter := math.Sqrt(outerR*outerR - c*c)
		base := Point{nx * c, ny * c}
		if math.Abs(c) >= innerR {
			segs = append(segs, hatchSegment(base, ux, uy, -halfOuter, halfOuter))
			continue
		}
		halfInner := math.Sqrt(innerR*innerR - c*c)
		segs = append(segs,
			hatchSegment(base, ux, uy, -halfOuter, -halfInner),
			hatchSegment(base, ux, uy, halfInner, halfOuter),
		)
	}
	return segs
}

func hatchSegment(base Point, ux, uy, t0, t1 float64) Line {
	return Line{
		From:  Point{base.X + ux*t0, base.Y + uy*t0},
		To:    Point{base.X + ux*t1, base.Y + uy*t1},
		Style: StyleHatch,
	}
}
