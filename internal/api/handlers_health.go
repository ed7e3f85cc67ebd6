// handlers_health.go - Health check handlers
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/techdraw/backend/internal/session"
)

// HealthHandlerImpl implements the HealthHandler interface
type HealthHandlerImpl struct {
	version string
	mgr     *session.Manager
	hub     *RenderHub
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(version string, mgr *session.Manager, hub *RenderHub) HealthHandler {
	return &HealthHandlerImpl{
		version: version,
		mgr:     mgr,
		hub:     hub,
	}
}

// HandleHealth returns server health status
func (h *HealthHandlerImpl) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"version":   h.version,
		"sessions":  h.mgr.Count(),
		"wsClients": h.hub.Clients(),
	})
}
