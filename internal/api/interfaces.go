// interfaces.go - Handler interface definitions for clean separation of concerns
package api

import (
	"github.com/labstack/echo/v4"
)

// SessionHandler handles drawing session lifecycle and parameter commits
type SessionHandler interface {
	HandleCreateSession(c echo.Context) error
	HandleGetParameters(c echo.Context) error
	HandleCommitParameters(c echo.Context) error
	HandleSessionKeepAlive(c echo.Context) error
}

// GeometryHandler serves computed primitives and server-side SVG renders
type GeometryHandler interface {
	HandleGeometry(c echo.Context) error
	HandleRenderSVG(c echo.Context) error
}

// ExportHandler produces and manages DXF/PDF artifacts
type ExportHandler interface {
	HandleExportDXF(c echo.Context) error
	HandleExportPDF(c echo.Context) error
	HandleRecentExports(c echo.Context) error
	HandleDownloadExport(c echo.Context) error
	HandleDeleteExport(c echo.Context) error
}

// ConveyorHandler runs the derived-parameter calculator
type ConveyorHandler interface {
	HandleCalculate(c echo.Context) error
	HandleListMaterials(c echo.Context) error
}

// HealthHandler handles health check operations
type HealthHandler interface {
	HandleHealth(c echo.Context) error
}
