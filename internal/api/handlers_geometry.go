// handlers_geometry.go - Computed primitives and server-side SVG rendering
package api

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/techdraw/backend/internal/geometry"
	"github.com/techdraw/backend/internal/layout"
	"github.com/techdraw/backend/internal/render"
	"github.com/techdraw/backend/pkg/logger"
)

// GeometryHandlerImpl implements the GeometryHandler interface
type GeometryHandlerImpl struct {
	renderer *render.Renderer
	log      *logger.Logger
}

// NewGeometryHandler creates a new geometry handler
func NewGeometryHandler(renderer *render.Renderer, log *logger.Logger) GeometryHandler {
	return &GeometryHandlerImpl{renderer: renderer, log: log}
}

// HandleGeometry computes the primitives of one view and the layout
// that fits them into the reported viewport. With ?format=msgpack the
// response body is msgpack instead of JSON, for large primitive sets.
func (h *GeometryHandlerImpl) HandleGeometry(c echo.Context) error {
	component, err := parseComponent(c.Param("component"))
	if err != nil {
		return NewBadRequestError(err.Error(), nil)
	}

	var req GeometryRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid request body", err)
	}

	drawing, adjusted, apiErr := buildDrawing(component, &req)
	if apiErr != nil {
		return apiErr
	}
	view, apiErr := selectView(drawing, req.View)
	if apiErr != nil {
		return apiErr
	}

	resp := GeometryResponse{
		Component: component,
		Unit:      drawing.Unit,
		View:      view.Type,
		ExtentX:   view.ExtentX,
		ExtentY:   view.ExtentY,
		Elements:  geometry.Wire(view.Elements),
		Adjusted:  adjusted,
	}
	if lay, ok := layout.ResolveView(req.Viewport.Width, req.Viewport.Height, layout.DefaultPadding, view); ok {
		resp.Measured = true
		resp.Layout = &lay
	}

	if c.QueryParam("format") == "msgpack" {
		data, err := msgpack.Marshal(resp)
		if err != nil {
			return NewInternalError("failed to encode geometry", err)
		}
		return c.Blob(http.StatusOK, "application/msgpack", data)
	}
	return c.JSON(http.StatusOK, resp)
}

// HandleRenderSVG renders one view to a complete SVG document. When
// the viewport has not been measured yet the render is skipped and the
// client is told so instead of receiving a degenerate image.
func (h *GeometryHandlerImpl) HandleRenderSVG(c echo.Context) error {
	component, err := parseComponent(c.Param("component"))
	if err != nil {
		return NewBadRequestError(err.Error(), nil)
	}

	var req GeometryRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid request body", err)
	}

	drawing, _, apiErr := buildDrawing(component, &req)
	if apiErr != nil {
		return apiErr
	}
	view, apiErr := selectView(drawing, req.View)
	if apiErr != nil {
		return apiErr
	}

	var buf bytes.Buffer
	renderErr := h.renderer.RenderView(&buf, view,
		int(req.Viewport.Width), int(req.Viewport.Height), render.Theme(req.Theme))
	if errors.Is(renderErr, render.ErrViewportNotMeasured) {
		return c.JSON(http.StatusOK, map[string]bool{"skip": true})
	}
	if renderErr != nil {
		return NewInternalError("failed to render view", renderErr)
	}

	return c.Blob(http.StatusOK, "image/svg+xml", buf.Bytes())
}
