package geometry

import (
	"math"

	"github.com/techdraw/backend/internal/units"
)

// Placement selects where a dimension label sits relative to its
// dimension line. The choice is made per call site; there is no
// automatic collision avoidance.
type Placement string

const (
	PlaceTop    Placement = "top"
	PlaceBottom Placement = "bottom"
	PlaceLeft   Placement = "left"
	PlaceRight  Placement = "right"
	PlaceMiddle Placement = "middle"
)

// DimStyle holds the call-out proportions for one drawing. All values
// are in model units, derived from the silhouette extent so call-outs
// keep the same visual weight regardless of component size.
type DimStyle struct {
	Offset      float64 // silhouette to dimension line
	Extension   float64 // extension line overshoot past the dimension line
	Gap         float64 // gap between anchor point and extension start
	ArrowLength float64
	ArrowHalf   float64 // half-width of the arrowhead base
	TextHeight  float64
	LabelPad    float64
}

// DefaultDimStyle derives call-out proportions from the dominant
// silhouette extent.
func DefaultDimStyle(extent float64) DimStyle {
	return DimStyle{
		Offset:      extent * 0.14,
		Extension:   extent * 0.02,
		Gap:         extent * 0.012,
		ArrowLength: extent * 0.035,
		ArrowHalf:   extent * 0.012,
		TextHeight:  extent * 0.05,
		LabelPad:    extent * 0.015,
	}
}

// charWidthRatio approximates glyph advance as a fraction of the text
// height, used to size label background boxes.
const charWidthRatio = 0.62

// measureText estimates the rendered width of a label.
func measureText(content string, height float64) float64 {
	return float64(len([]rune(content))) * height * charWidthRatio
}

// LinearDimension builds a dimension call-out between two anchor
// points. The dimension line runs parallel to a-b, displaced along the
// unit normal; extension lines connect the anchors to it.
func LinearDimension(a, b, normal Point, st DimStyle, value float64, unit units.LengthUnit, placement Placement) DimensionGroup {
	lineA := Point{a.X + normal.X*st.Offset, a.Y + normal.Y*st.Offset}
	lineB := Point{b.X + normal.X*st.Offset, b.Y + normal.Y*st.Offset}

	extEnd := st.Offset + st.Extension
	extensions := []Line{
		{
			From:  Point{a.X + normal.X*st.Gap, a.Y + normal.Y*st.Gap},
			To:    Point{a.X + normal.X*extEnd, a.Y + normal.Y*extEnd},
			Style: StyleSolid,
		},
		{
			From:  Point{b.X + normal.X*st.Gap, b.Y + normal.Y*st.Gap},
			To:    Point{b.X + normal.X*extEnd, b.Y + normal.Y*extEnd},
			Style: StyleSolid,
		},
	}

	// Arrow tips sit on the line ends and point outward.
	dx, dy := lineB.X-lineA.X, lineB.Y-lineA.Y
	length := math.Hypot(dx, dy)
	ux, uy := 1.0, 0.0
	if length > 0 {
		ux, uy = dx/length, dy/length
	}
	arrows := []Arrowhead{
		arrowheadAt(lineA, -ux, -uy, st),
		arrowheadAt(lineB, ux, uy, st),
	}

	mid := Point{(lineA.X + lineB.X) / 2, (lineA.Y + lineB.Y) / 2}
	labelAt := placeLabel(mid, placement, st)
	content := units.Format(value, unit)
	label := Text{At: labelAt, Height: st.TextHeight, Content: content, Anchor: AnchorMiddle}

	return DimensionGroup{
		Extensions: extensions,
		DimLine:    Line{From: lineA, To: lineB, Style: StyleSolid},
		Arrows:     arrows,
		Label:      label,
		LabelBox:   labelBox(label, st),
	}
}

// RadiusLeader builds a leader call-out pointing at a circle's rim at
// the given angle, with a short horizontal tail carrying the label.
func RadiusLeader(center Point, radius, angleDeg float64, st DimStyle, content string) DimensionGroup {
	rad := angleDeg * math.Pi / 180
	dirX, dirY := math.Cos(rad), math.Sin(rad)

	rim := Point{center.X + dirX*radius, center.Y + dirY*radius}
	elbow := Point{rim.X + dirX*st.Offset*0.7, rim.Y + dirY*st.Offset*0.7}
	tailDir := 1.0
	if dirX < 0 {
		tailDir = -1
	}
	tail := Point{elbow.X + tailDir*st.Offset*0.6, elbow.Y}

	labelAt := Point{tail.X + tailDir*st.LabelPad, tail.Y}
	anchor := AnchorStart
	if tailDir < 0 {
		anchor = AnchorEnd
	}
	label := Text{At: labelAt, Height: st.TextHeight, Content: content, Anchor: anchor}

	return DimensionGroup{
		Extensions: []Line{
			{From: rim, To: elbow, Style: StyleSolid},
		},
		DimLine: Line{From: elbow, To: tail, Style: StyleSolid},
		Arrows: []Arrowhead{
			arrowheadAt(rim, -dirX, -dirY, st),
		},
		Label:    label,
		LabelBox: labelBox(label, st),
	}
}

// arrowheadAt builds a filled triangle with its tip at p, pointing
// along (ux, uy).
func arrowheadAt(p Point, ux, uy float64, st DimStyle) Arrowhead {
	baseX := p.X - ux*st.ArrowLength
	baseY := p.Y - uy*st.ArrowLength
	// Perpendicular of the pointing direction.
	px, py := -uy, ux
	return Arrowhead{
		Tip:   p,
		Left:  Point{baseX + px*st.ArrowHalf, baseY + py*st.ArrowHalf},
		Right: Point{baseX - px*st.ArrowHalf, baseY - py*st.ArrowHalf},
	}
}

func placeLabel(mid Point, placement Placement, st DimStyle) Point {
	shift := st.TextHeight*0.5 + st.LabelPad
	switch placement {
	case PlaceTop:
		return Point{mid.X, mid.Y + shift}
	case PlaceBottom:
		return Point{mid.X, mid.Y - shift}
	case PlaceLeft:
		return Point{mid.X - shift, mid.Y}
	case PlaceRight:
		return Point{mid.X + shift, mid.Y}
	default:
		return mid
	}
}

// labelBox sizes the opaque background behind a label to its measured
// text width so it stays legible over underlying geometry.
func labelBox(label Text, st DimStyle) Rect {
	w := measureText(label.Content, label.Height)
	h := label.Height
	cx := label.At.X
	switch label.Anchor {
	case AnchorStart:
		cx += w / 2
	case AnchorEnd:
		cx -= w / 2
	}
	return Rect{
		Min: Point{cx - w/2 - st.LabelPad, label.At.Y - h/2 - st.LabelPad/2},
		Max: Point{cx + w/2 + st.LabelPad, label.At.Y + h/2 + st.LabelPad/2},
	}
}
