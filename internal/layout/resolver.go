// Package layout computes the uniform scale factor and centering
// offsets that fit a drawing into a viewport with consistent padding
// across views.
package layout

import (
	"math"

	"github.com/techdraw/backend/internal/geometry"
)

// MarginFactor leaves breathing room outside the primary silhouette
// for dimension lines and leaders.
const MarginFactor = 0.85

// DefaultPadding is the viewport inset, in container units, applied on
// every side before scaling.
const DefaultPadding = 20.0

// ScaledLayout is the ephemeral result of one fit computation. It is
// owned by the rendering pass that requested it and recomputed on
// every viewport or parameter change, never persisted.
type ScaledLayout struct {
	ScaleFactor  float64 `json:"scaleFactor"`
	OriginX      float64 `json:"originX"`
	OriginY      float64 `json:"originY"`
	ScaledWidth  float64 `json:"scaledWidth"`
	ScaledHeight float64 `json:"scaledHeight"`
}

// Resolve fits a component extent into a container. ok is false when
// the container has not been measured yet (zero or negative size) or
// the extents are degenerate; callers must skip rendering in that case
// rather than divide by zero.
func Resolve(containerW, containerH, padding, extentX, extentY float64) (ScaledLayout, bool) {
	if containerW <= 0 || containerH <= 0 || extentX <= 0 || extentY <= 0 {
		return ScaledLayout{}, false
	}

	availW := containerW - 2*padding
	availH := containerH - 2*padding
	if availW <= 0 || availH <= 0 {
		return ScaledLayout{}, false
	}

	scale := math.Min(availW/extentX, availH/extentY) * MarginFactor
	if !isFinitePositive(scale) {
		return ScaledLayout{}, false
	}

	scaledW := extentX * scale
	scaledH := extentY * scale

	return ScaledLayout{
		ScaleFactor:  scale,
		OriginX:      containerW / 2,
		OriginY:      containerH / 2,
		ScaledWidth:  scaledW,
		ScaledHeight: scaledH,
	}, true
}

// ResolveView fits one generated view using its silhouette extents.
func ResolveView(containerW, containerH, padding float64, v geometry.View) (ScaledLayout, bool) {
	return Resolve(containerW, containerH, padding, v.ExtentX, v.ExtentY)
}

// Project maps a model-space point into container coordinates. Model
// space is y-up and centered on the origin; containers are y-down.
func (l ScaledLayout) Project(p geometry.Point) (x, y float64) {
	return l.OriginX + p.X*l.ScaleFactor, l.OriginY - p.Y*l.ScaleFactor
}

func isFinitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
