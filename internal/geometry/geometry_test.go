package geometry

import (
	"math"
	"reflect"
	"testing"

	"github.com/techdraw/backend/internal/models"
	"github.com/techdraw/backend/internal/units"
)

func testBox() models.BoxDimensions {
	return models.BoxDimensions{Width: 200, Height: 100, Depth: 50, CornerRadius: 10, Unit: units.Millimeter}
}

func testPulley() models.PulleyParameters {
	return models.PulleyParameters{
		Diameter: 250, Thickness: 120, BoreDiameter: 40, InnerDiameter: 220,
		GrooveDepth: 15, GrooveWidth: 20, KeyWayWidth: 12, KeyWayDepth: 6,
		Unit: units.Millimeter,
	}
}

func testIdler() models.IdlerParameters {
	return models.IdlerParameters{OuterDiameter: 133, Length: 400, InnerDiameter: 25, Unit: units.Millimeter}
}

func countKinds(v View) (lines, arcs, circles, texts, dims int) {
	for _, el := range v.Elements {
		switch el.Primitive.(type) {
		case Line:
			lines++
		case Arc:
			arcs++
		case Circle:
			circles++
		case Text:
			texts++
		case DimensionGroup:
			dims++
		}
	}
	return
}

func TestBoxTopRoundedCorners(t *testing.T) {
	v := BoxTop(testBox())

	var arcs []Arc
	for _, el := range v.Elements {
		if a, ok := el.Primitive.(Arc); ok {
			arcs = append(arcs, a)
			if el.Layer != LayerTopView {
				t.Errorf("corner arc on layer %s, want %s", el.Layer, LayerTopView)
			}
		}
	}
	if len(arcs) != 4 {
		t.Fatalf("expected 4 corner arcs, got %d", len(arcs))
	}
	for _, a := range arcs {
		if a.Radius != 10 {
			t.Errorf("corner arc radius = %v, want 10", a.Radius)
		}
		if span := math.Mod(a.EndAngle-a.StartAngle+360, 360); span != 90 {
			t.Errorf("corner arc spans %v degrees, want 90", span)
		}
	}
}

func TestBoxTopSquareCornersHaveNoArcs(t *testing.T) {
	b := testBox()
	b.CornerRadius = 0
	_, arcs, _, _, dims := countKinds(BoxTop(b))
	if arcs != 0 {
		t.Errorf("expected no arcs for square corners, got %d", arcs)
	}
	// No radius leader either: just width and height.
	if dims != 2 {
		t.Errorf("expected 2 dimension groups, got %d", dims)
	}
}

func TestBoxTopDimensions(t *testing.T) {
	v := BoxTop(testBox())
	var labels []string
	for _, el := range v.Elements {
		if d, ok := el.Primitive.(DimensionGroup); ok {
			if el.Layer != LayerDimensions {
				t.Errorf("dimension on layer %s, want %s", el.Layer, LayerDimensions)
			}
			labels = append(labels, d.Label.Content)
		}
	}
	want := []string{"200 mm", "100 mm", "R10 mm"}
	if !reflect.DeepEqual(labels, want) {
		t.Errorf("dimension labels = %v, want %v", labels, want)
	}
}

func TestBoxSideIgnoresCornerRadius(t *testing.T) {
	v := BoxSide(testBox())
	_, arcs, _, _, _ := countKinds(v)
	if arcs != 0 {
		t.Errorf("side view must be a flat cut, got %d arcs", arcs)
	}
	if v.ExtentX != 50 || v.ExtentY != 100 {
		t.Errorf("side view extents = (%v, %v), want (50, 100)", v.ExtentX, v.ExtentY)
	}
}

func TestBoxSideDefaultDepth(t *testing.T) {
	b := testBox()
	b.Depth = 0
	v := BoxSide(b)
	if v.ExtentX != b.Width*models.DefaultDepthRatio {
		t.Errorf("default depth extent = %v, want %v", v.ExtentX, b.Width*models.DefaultDepthRatio)
	}
}

func TestPulleyTopCircles(t *testing.T) {
	p := testPulley()
	v := PulleyTop(p)

	var solid, dashed []Circle
	for _, el := range v.Elements {
		if c, ok := el.Primitive.(Circle); ok {
			if c.Style == StyleDashed {
				dashed = append(dashed, c)
			} else {
				solid = append(solid, c)
			}
		}
	}
	if len(solid) != 2 {
		t.Fatalf("expected outer and bore circles, got %d solid circles", len(solid))
	}
	if len(dashed) != 1 || dashed[0].Radius != p.InnerDiameter/2 {
		t.Fatalf("expected one dashed groove-floor circle at r=%v, got %v", p.InnerDiameter/2, dashed)
	}
}

func TestPulleyTopKeywayFlushAgainstBore(t *testing.T) {
	p := testPulley()
	v := PulleyTop(p)
	boreR := p.BoreDiameter / 2

	// The keyway side walls must start exactly on the bore circle.
	found := 0
	for _, el := range v.Elements {
		l, ok := el.Primitive.(Line)
		if !ok || l.Style != StyleSolid {
			continue
		}
		for _, pt := range []Point{l.From, l.To} {
			d := math.Hypot(pt.X, pt.Y)
			if math.Abs(d-boreR) < 1e-9 && pt.Y > 0 {
				found++
			}
		}
	}
	if found < 2 {
		t.Errorf("keyway walls do not sit on the bore circle (found %d touching endpoints)", found)
	}
}

func TestPulleySideVNotchApex(t *testing.T) {
	p := testPulley()
	v := PulleySide(p)
	innerR := p.InnerDiameter / 2

	apexes := 0
	for _, el := range v.Elements {
		l, ok := el.Primitive.(Line)
		if !ok {
			continue
		}
		for _, pt := range []Point{l.From, l.To} {
			if pt.X == 0 && math.Abs(math.Abs(pt.Y)-innerR) < 1e-9 {
				apexes++
			}
		}
	}
	// Two lines meet at each of the two apexes.
	if apexes != 4 {
		t.Errorf("expected 4 V-notch endpoints at the groove floor, got %d", apexes)
	}
}

func TestIdlerSideHasNoGroove(t *testing.T) {
	v := IdlerSide(testIdler())
	for _, el := range v.Elements {
		if l, ok := el.Primitive.(Line); ok && l.Style == StyleSolid {
			// A V notch would produce a solid diagonal line.
			if l.From.X != l.To.X && l.From.Y != l.To.Y {
				t.Errorf("unexpected diagonal solid line in idler side view: %+v", l)
			}
		}
	}
}

func TestIdlerTopSectionLine(t *testing.T) {
	withLine := IdlerTop(testIdler(), true)
	without := IdlerTop(testIdler(), false)

	count := func(v View) (section, markers int) {
		for _, el := range v.Elements {
			if l, ok := el.Primitive.(Line); ok && l.Style == StyleSection {
				section++
			}
			if txt, ok := el.Primitive.(Text); ok && txt.Content == "A" {
				markers++
			}
		}
		return
	}

	if s, m := count(withLine); s != 1 || m != 2 {
		t.Errorf("expected 1 section line and 2 A markers, got %d and %d", s, m)
	}
	if s, m := count(without); s != 0 || m != 0 {
		t.Errorf("expected no section markers, got %d and %d", s, m)
	}
}

func TestIdlerSectionHatchStaysInAnnulus(t *testing.T) {
	p := testIdler()
	v := IdlerSection(p)
	outerR, innerR := p.OuterDiameter/2, p.InnerDiameter/2

	hatches := 0
	for _, el := range v.Elements {
		l, ok := el.Primitive.(Line)
		if !ok || l.Style != StyleHatch {
			continue
		}
		hatches++
		for _, pt := range []Point{l.From, l.To} {
			d := math.Hypot(pt.X, pt.Y)
			if d > outerR+1e-9 {
				t.Errorf("hatch endpoint outside outer circle: %v > %v", d, outerR)
			}
		}
		mid := Point{(l.From.X + l.To.X) / 2, (l.From.Y + l.To.Y) / 2}
		if d := math.Hypot(mid.X, mid.Y); d < innerR-1e-9 {
			t.Errorf("hatch segment crosses the inner circle: midpoint at %v < %v", d, innerR)
		}
	}
	if hatches == 0 {
		t.Error("section view has no hatch segments")
	}
}

func TestGeneratorsAreIdempotent(t *testing.T) {
	tests := []struct {
		name string
		gen  func() Drawing
	}{
		{"box", func() Drawing { return BoxDrawing(testBox()) }},
		{"pulley", func() Drawing { return PulleyDrawing(testPulley()) }},
		{"idler", func() Drawing { return IdlerDrawing(testIdler()) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := tt.gen()
			second := tt.gen()
			if !reflect.DeepEqual(first, second) {
				t.Error("two generations with identical inputs differ")
			}
		})
	}
}
