// handlers.go - Shared request/response types and drawing assembly
package api

import (
	"fmt"

	"github.com/techdraw/backend/internal/geometry"
	"github.com/techdraw/backend/internal/layout"
	"github.com/techdraw/backend/internal/models"
	"github.com/techdraw/backend/internal/units"
)

// Viewport is the measured container size reported by the client, in
// CSS pixels. A zero viewport means the container has not been
// measured yet.
type Viewport struct {
	Width  float64 `json:"width" msgpack:"width"`
	Height float64 `json:"height" msgpack:"height"`
}

// GeometryRequest carries the parameters for one geometry or render
// call. Exactly one of Box, Pulley or Idler must match the component
// in the URL.
type GeometryRequest struct {
	Box      *models.BoxDimensions    `json:"box,omitempty" msgpack:"box,omitempty"`
	Pulley   *models.PulleyParameters `json:"pulley,omitempty" msgpack:"pulley,omitempty"`
	Idler    *models.IdlerParameters  `json:"idler,omitempty" msgpack:"idler,omitempty"`
	View     models.ViewType          `json:"view" msgpack:"view"`
	Theme    string                   `json:"theme" msgpack:"theme"`
	Viewport Viewport                 `json:"viewport" msgpack:"viewport"`
}

// GeometryResponse returns the resolved layout and the primitives of
// the requested view. Layout is nil and Measured false when the
// viewport has no size yet; the client skips drawing in that case.
type GeometryResponse struct {
	Component models.Component       `json:"component" msgpack:"component"`
	Unit      units.LengthUnit       `json:"unit" msgpack:"unit"`
	View      models.ViewType        `json:"view" msgpack:"view"`
	Measured  bool                   `json:"measured" msgpack:"measured"`
	Layout    *layout.ScaledLayout   `json:"layout,omitempty" msgpack:"layout,omitempty"`
	ExtentX   float64                `json:"extentX" msgpack:"extentX"`
	ExtentY   float64                `json:"extentY" msgpack:"extentY"`
	Elements  []geometry.WireElement `json:"elements" msgpack:"elements"`
	Adjusted  bool                   `json:"adjusted" msgpack:"adjusted"`
}

// parseComponent maps the URL path parameter onto a component.
func parseComponent(raw string) (models.Component, error) {
	switch models.Component(raw) {
	case models.ComponentBox, models.ComponentPulley, models.ComponentIdler:
		return models.Component(raw), nil
	}
	return "", fmt.Errorf("unknown component %q", raw)
}

// buildDrawing validates the matching parameter set and generates the
// full multi-view drawing for it. adjusted reports whether validation
// clamped or derived any value.
func buildDrawing(component models.Component, req *GeometryRequest) (geometry.Drawing, bool, *APIError) {
	switch component {
	case models.ComponentBox:
		if req.Box == nil {
			return geometry.Drawing{}, false, NewBadRequestError("box parameters are required", nil)
		}
		adjusted, err := req.Box.Validate()
		if err != nil {
			return geometry.Drawing{}, false, NewValidationError(err)
		}
		return geometry.BoxDrawing(*req.Box), adjusted, nil

	case models.ComponentPulley:
		if req.Pulley == nil {
			return geometry.Drawing{}, false, NewBadRequestError("pulley parameters are required", nil)
		}
		adjusted, err := req.Pulley.Validate()
		if err != nil {
			return geometry.Drawing{}, false, NewValidationError(err)
		}
		return geometry.PulleyDrawing(*req.Pulley), adjusted, nil

	case models.ComponentIdler:
		if req.Idler == nil {
			return geometry.Drawing{}, false, NewBadRequestError("idler parameters are required", nil)
		}
		adjusted, err := req.Idler.Validate()
		if err != nil {
			return geometry.Drawing{}, false, NewValidationError(err)
		}
		return geometry.IdlerDrawing(*req.Idler), adjusted, nil
	}
	return geometry.Drawing{}, false, NewBadRequestError(fmt.Sprintf("unknown component %q", component), nil)
}

// selectView picks the requested projection from a drawing, falling
// back to the first view when the request left it empty.
func selectView(d geometry.Drawing, vt models.ViewType) (geometry.View, *APIError) {
	if len(d.Views) == 0 {
		return geometry.View{}, NewInternalError("drawing has no views", nil)
	}
	if vt == "" {
		return d.Views[0], nil
	}
	for _, v := range d.Views {
		if v.Type == vt {
			return v, nil
		}
	}
	return geometry.View{}, NewBadRequestError(fmt.Sprintf("view %q not available for this component", vt), nil)
}
