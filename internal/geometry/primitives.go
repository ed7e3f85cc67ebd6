// Package geometry is the single source of geometric truth for the
// drawing engine. Generators turn component parameters into
// renderer-agnostic primitive lists in model space (y-up, origin at the
// component center, coordinates in the user's selected unit). The SVG
// adapter and the DXF serializer both consume these lists; neither
// re-derives geometry on its own.
package geometry

import (
	"github.com/techdraw/backend/internal/models"
	"github.com/techdraw/backend/internal/units"
)

// Layer assigns a primitive to a named DXF layer / rendering group.
type Layer string

const (
	LayerTopView     Layer = "TOP_VIEW"
	LayerSideView    Layer = "SIDE_VIEW"
	LayerSectionView Layer = "SECTION_VIEW"
	LayerDimensions  Layer = "DIMENSIONS"
)

// Style selects the stroke treatment of a primitive.
type Style int

const (
	StyleSolid Style = iota
	StyleDashed        // hidden edges, groove floor, bore crossings
	StyleCenter        // center lines
	StyleSection       // red section cut line (A-A)
	StyleHatch         // section cut surface fill
)

// Point is a position in model space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Anchor positions a text label relative to its point.
type Anchor string

const (
	AnchorMiddle Anchor = "middle"
	AnchorStart  Anchor = "start"
	AnchorEnd    Anchor = "end"
)

// Primitive is the closed set of drawable variants. Consumers switch
// on the concrete type.
type Primitive interface {
	primitive()
}

// Line is a straight segment.
type Line struct {
	From  Point `json:"from"`
	To    Point `json:"to"`
	Style Style `json:"style"`
}

// Arc is a circular arc. Angles are in degrees, counter-clockwise from
// the positive X axis, matching the DXF convention.
type Arc struct {
	Center     Point   `json:"center"`
	Radius     float64 `json:"radius"`
	StartAngle float64 `json:"startAngle"`
	EndAngle   float64 `json:"endAngle"`
	Style      Style   `json:"style"`
}

// Circle is a full circle.
type Circle struct {
	Center Point   `json:"center"`
	Radius float64 `json:"radius"`
	Style  Style   `json:"style"`
}

// Text is an annotation label. Height is the cap height in model units.
type Text struct {
	At       Point   `json:"at"`
	Height   float64 `json:"height"`
	Content  string  `json:"content"`
	Anchor   Anchor  `json:"anchor"`
	Rotation float64 `json:"rotation"` // degrees
}

// Arrowhead is a filled triangle terminating a dimension line.
type Arrowhead struct {
	Tip   Point `json:"tip"`
	Left  Point `json:"left"`
	Right Point `json:"right"`
}

// Rect is an axis-aligned rectangle, used for label backgrounds.
type Rect struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// DimensionGroup bundles everything belonging to one dimension
// call-out: extension lines from the anchors, the dimension line, two
// arrowheads and the label with its background box.
type DimensionGroup struct {
	Extensions []Line     `json:"extensions"`
	DimLine    Line       `json:"dimLine"`
	Arrows     []Arrowhead `json:"arrows"`
	Label      Text       `json:"label"`
	LabelBox   Rect       `json:"labelBox"`
}

func (Line) primitive()           {}
func (Arc) primitive()            {}
func (Circle) primitive()         {}
func (Text) primitive()           {}
func (DimensionGroup) primitive() {}

// Element pairs a primitive with its layer assignment.
type Element struct {
	Layer     Layer     `json:"layer"`
	Primitive Primitive `json:"primitive"`
}

// View is the full primitive set of one projection, together with the
// silhouette extents the layout resolver scales by. Extents exclude
// dimension call-outs; the margin factor reserves the space those
// occupy outside the silhouette.
type View struct {
	Type     models.ViewType `json:"type"`
	Layer    Layer           `json:"layer"`
	Elements []Element       `json:"elements"`
	ExtentX  float64         `json:"extentX"`
	ExtentY  float64         `json:"extentY"`
}

func (v *View) add(p Primitive) {
	v.Elements = append(v.Elements, Element{Layer: v.Layer, Primitive: p})
}

func (v *View) addDim(p Primitive) {
	v.Elements = append(v.Elements, Element{Layer: LayerDimensions, Primitive: p})
}

// Drawing is the complete multi-view document for one component, in
// the selected unit.
type Drawing struct {
	Component models.Component `json:"component"`
	Unit      units.LengthUnit `json:"unit"`
	Views     []View           `json:"views"`
}
