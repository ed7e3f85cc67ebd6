// routes.go - Route registration helpers
// This file provides a clean way to register all API routes
package api

import (
	"github.com/labstack/echo/v4"

	"github.com/techdraw/backend/internal/conveyor"
	"github.com/techdraw/backend/internal/render"
	"github.com/techdraw/backend/internal/session"
	"github.com/techdraw/backend/internal/storage"
	"github.com/techdraw/backend/pkg/logger"
)

// Dependencies holds all handler dependencies
type Dependencies struct {
	Store        storage.Store
	SessionMgr   *session.Manager
	Calculator   *conveyor.Calculator
	Renderer     *render.Renderer
	Hub          *RenderHub
	Log          *logger.Logger
	Version      string
	AllowDelete  bool
	RecentLimit  int
	DefaultTheme string
}

// Handlers holds all handler instances
type Handlers struct {
	Health   HealthHandler
	Session  SessionHandler
	Geometry GeometryHandler
	Export   ExportHandler
	Conveyor ConveyorHandler
	Hub      *RenderHub

	allowDelete bool
}

// NewHandlers creates all handler instances
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		Health:      NewHealthHandler(deps.Version, deps.SessionMgr, deps.Hub),
		Session:     NewSessionHandler(deps.SessionMgr, deps.Hub, deps.DefaultTheme, deps.Log),
		Geometry:    NewGeometryHandler(deps.Renderer, deps.Log),
		Export:      NewExportHandler(deps.Store, deps.RecentLimit, deps.Log),
		Conveyor:    NewConveyorHandler(deps.Calculator, deps.Log),
		Hub:         deps.Hub,
		allowDelete: deps.AllowDelete,
	}
}

// RegisterRoutes registers all API routes with the Echo instance
func RegisterRoutes(e *echo.Echo, handlers *Handlers) {
	// Health check
	e.GET("/health", handlers.Health.HandleHealth)
	e.GET("/api/health", handlers.Health.HandleHealth)

	// Session routes
	sessionGroup := e.Group("/api/sessions")
	sessionGroup.POST("", handlers.Session.HandleCreateSession)
	sessionGroup.GET("/:id/parameters", handlers.Session.HandleGetParameters)
	sessionGroup.PUT("/:id/parameters", handlers.Session.HandleCommitParameters)
	sessionGroup.POST("/:id/keepalive", handlers.Session.HandleSessionKeepAlive)

	// Geometry and rendering routes
	e.POST("/api/geometry/:component", handlers.Geometry.HandleGeometry)
	e.POST("/api/render/:component", handlers.Geometry.HandleRenderSVG)

	// Export routes
	exportGroup := e.Group("/api/export")
	exportGroup.POST("/dxf", handlers.Export.HandleExportDXF)
	exportGroup.POST("/pdf", handlers.Export.HandleExportPDF)
	exportGroup.GET("/recent", handlers.Export.HandleRecentExports)
	exportGroup.GET("/:id/download", handlers.Export.HandleDownloadExport)
	if handlers.allowDelete {
		exportGroup.DELETE("/:id", handlers.Export.HandleDeleteExport)
	}

	// Calculator routes
	e.POST("/api/conveyor/calculate", handlers.Conveyor.HandleCalculate)
	e.GET("/api/materials", handlers.Conveyor.HandleListMaterials)
}

// RegisterWebSocketRoutes registers WebSocket routes
func RegisterWebSocketRoutes(e *echo.Echo, handlers *Handlers) {
	e.GET("/api/ws/render", handlers.Hub.HandleRenderSocket)
}

// SetupMiddleware configures common middleware
func SetupMiddleware(e *echo.Echo) {
	// Use custom error handler
	e.HTTPErrorHandler = ErrorHandler
}
