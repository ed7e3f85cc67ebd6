package models

import (
	"fmt"

	"github.com/techdraw/backend/internal/units"
)

// Component identifies which drawing generator a request targets.
type Component string

const (
	ComponentBox    Component = "box"
	ComponentPulley Component = "pulley"
	ComponentIdler  Component = "idler"
)

// ViewType selects which projection of a component is generated.
type ViewType string

const (
	ViewTop     ViewType = "top"
	ViewSide    ViewType = "side"
	ViewSection ViewType = "section" // idler detail views only
)

// BoxDimensions describes a rectangular enclosure drawing.
type BoxDimensions struct {
	Width        float64          `json:"width"`
	Height       float64          `json:"height"`
	Depth        float64          `json:"depth,omitempty"`
	CornerRadius float64          `json:"cornerRadius"`
	Unit         units.LengthUnit `json:"unit"`
}

// DefaultDepthRatio is applied when the side view is requested without
// an explicit depth.
const DefaultDepthRatio = 0.5

// EffectiveDepth returns the depth used by the side view, defaulting
// when the user left it empty.
func (b BoxDimensions) EffectiveDepth() float64 {
	if b.Depth > 0 {
		return b.Depth
	}
	return b.Width * DefaultDepthRatio
}

// Validate checks the box parameters and clamps the corner radius.
// It returns adjusted=true when the radius had to be reduced so the
// caller can surface the adjustment to the user.
func (b *BoxDimensions) Validate() (adjusted bool, err error) {
	if !b.Unit.Valid() {
		return false, fmt.Errorf("unknown unit %q", b.Unit)
	}
	if b.Width <= 0 || b.Height <= 0 {
		return false, fmt.Errorf("width and height must be positive")
	}
	if b.Depth < 0 || b.CornerRadius < 0 {
		return false, fmt.Errorf("depth and corner radius must not be negative")
	}
	clamped := units.ClampCornerRadius(b.Width, b.Height, b.CornerRadius)
	if clamped != b.CornerRadius {
		b.CornerRadius = clamped
		adjusted = true
	}
	return adjusted, nil
}

// PulleyParameters describes a V-belt pulley drawing.
type PulleyParameters struct {
	Diameter      float64          `json:"diameter"`
	Thickness     float64          `json:"thickness"`
	BoreDiameter  float64          `json:"boreDiameter"`
	InnerDiameter float64          `json:"innerDiameter"`
	GrooveDepth   float64          `json:"grooveDepth"`
	GrooveWidth   float64          `json:"grooveWidth"`
	KeyWayWidth   float64          `json:"keyWayWidth"`
	KeyWayDepth   float64          `json:"keyWayDepth"`
	Unit          units.LengthUnit `json:"unit"`
}

// Validate enforces the ordering invariant bore < inner < outer and
// positive groove/keyway dimensions. The geometry layer trusts these.
func (p *PulleyParameters) Validate() (adjusted bool, err error) {
	if !p.Unit.Valid() {
		return false, fmt.Errorf("unknown unit %q", p.Unit)
	}
	if p.Diameter <= 0 || p.Thickness <= 0 {
		return false, fmt.Errorf("diameter and thickness must be positive")
	}
	if p.InnerDiameter <= 0 {
		// Derive the groove floor from the groove depth when omitted.
		p.InnerDiameter = p.Diameter - 2*p.GrooveDepth
		adjusted = true
	}
	if p.GrooveDepth <= 0 || p.GrooveWidth <= 0 {
		return false, fmt.Errorf("groove dimensions must be positive")
	}
	if p.KeyWayWidth <= 0 || p.KeyWayDepth <= 0 {
		return false, fmt.Errorf("keyway dimensions must be positive")
	}
	if p.BoreDiameter <= 0 {
		return false, fmt.Errorf("bore diameter must be positive")
	}
	if p.BoreDiameter >= p.InnerDiameter {
		return false, fmt.Errorf("bore diameter (%v) must be smaller than inner diameter (%v)", p.BoreDiameter, p.InnerDiameter)
	}
	if p.InnerDiameter >= p.Diameter {
		return false, fmt.Errorf("inner diameter (%v) must be smaller than outer diameter (%v)", p.InnerDiameter, p.Diameter)
	}
	return adjusted, nil
}

// IdlerParameters describes a conveyor idler roll drawing.
type IdlerParameters struct {
	OuterDiameter float64          `json:"outerDiameter"`
	Length        float64          `json:"length"`
	InnerDiameter float64          `json:"innerDiameter"`
	Unit          units.LengthUnit `json:"unit"`
}

// Validate enforces inner < outer and positive dimensions.
func (p *IdlerParameters) Validate() (adjusted bool, err error) {
	if !p.Unit.Valid() {
		return false, fmt.Errorf("unknown unit %q", p.Unit)
	}
	if p.OuterDiameter <= 0 || p.Length <= 0 || p.InnerDiameter <= 0 {
		return false, fmt.Errorf("all idler dimensions must be positive")
	}
	if p.InnerDiameter >= p.OuterDiameter {
		return false, fmt.Errorf("inner diameter (%v) must be smaller than outer diameter (%v)", p.InnerDiameter, p.OuterDiameter)
	}
	return false, nil
}
