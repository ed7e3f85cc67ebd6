// handlers_session.go - Drawing session lifecycle and parameter commits
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/techdraw/backend/internal/models"
	"github.com/techdraw/backend/internal/session"
	"github.com/techdraw/backend/internal/units"
	"github.com/techdraw/backend/pkg/logger"
)

// renderBroadcaster publishes render-request events to connected
// frontends. Satisfied by RenderHub; mocked in tests.
type renderBroadcaster interface {
	Broadcast(ev models.RenderEvent)
}

// CreateSessionRequest optionally seeds the session with an initial
// state. When omitted the default box drawing is used.
type CreateSessionRequest struct {
	State *models.DrawingState `json:"state,omitempty"`
}

// CommitRequest replaces the committed state of a session. Cause is
// carried through to the render event stream.
type CommitRequest struct {
	State models.DrawingState `json:"state"`
	Cause models.RenderCause  `json:"cause"`
}

// CommitResponse echoes the committed state so the client sees any
// clamped or derived values.
type CommitResponse struct {
	State    models.DrawingState `json:"state"`
	Adjusted bool                `json:"adjusted"`
}

// SessionHandlerImpl implements the SessionHandler interface
type SessionHandlerImpl struct {
	mgr          *session.Manager
	hub          renderBroadcaster
	defaultTheme string
	log          *logger.Logger
}

// NewSessionHandler creates a new session handler. defaultTheme comes
// from the config and seeds fresh sessions; empty falls back to light.
func NewSessionHandler(mgr *session.Manager, hub renderBroadcaster, defaultTheme string, log *logger.Logger) SessionHandler {
	if defaultTheme == "" {
		defaultTheme = "light"
	}
	return &SessionHandlerImpl{mgr: mgr, hub: hub, defaultTheme: defaultTheme, log: log}
}

// defaultDrawingState is the state a fresh session starts from.
func defaultDrawingState(theme string) models.DrawingState {
	if theme == "" {
		theme = "light"
	}
	return models.DrawingState{
		Component: models.ComponentBox,
		View:      models.ViewTop,
		Theme:     theme,
		Box: &models.BoxDimensions{
			Width:        200,
			Height:       100,
			CornerRadius: 10,
			Unit:         units.Millimeter,
		},
	}
}

// HandleCreateSession starts a new editing session.
func (h *SessionHandlerImpl) HandleCreateSession(c echo.Context) error {
	var req CreateSessionRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid request body", err)
	}

	st := defaultDrawingState(h.defaultTheme)
	adjusted := false
	if req.State != nil {
		st = *req.State
		var apiErr *APIError
		adjusted, apiErr = validateState(&st)
		if apiErr != nil {
			return apiErr
		}
	}

	sess, err := h.mgr.Create(st)
	if err != nil {
		return NewInternalError("failed to create session", err)
	}

	h.log.Info("session created", "sessionId", sess.ID, "component", st.Component)
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"session":  sess,
		"adjusted": adjusted,
	})
}

// HandleGetParameters returns the committed state of a session.
func (h *SessionHandlerImpl) HandleGetParameters(c echo.Context) error {
	sess, err := h.mgr.Get(c.Param("id"))
	if err != nil {
		return NewNotFoundError("session", c.Param("id"))
	}
	return c.JSON(http.StatusOK, sess.State)
}

// HandleCommitParameters validates and commits a new state, then asks
// every connected frontend to redraw over the render event channel.
func (h *SessionHandlerImpl) HandleCommitParameters(c echo.Context) error {
	id := c.Param("id")

	var req CommitRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid request body", err)
	}

	adjusted, apiErr := validateState(&req.State)
	if apiErr != nil {
		return apiErr
	}

	if err := h.mgr.Commit(id, req.State); err != nil {
		return NewNotFoundError("session", id)
	}

	cause := req.Cause
	if cause == "" {
		cause = models.CauseParameterChange
	}
	h.hub.Broadcast(models.RenderEvent{SessionID: id, Cause: cause})

	h.log.Debug("state committed", "sessionId", id, "cause", cause, "adjusted", adjusted)
	return c.JSON(http.StatusOK, CommitResponse{State: req.State, Adjusted: adjusted})
}

// HandleSessionKeepAlive refreshes the session TTL.
func (h *SessionHandlerImpl) HandleSessionKeepAlive(c echo.Context) error {
	if err := h.mgr.KeepAlive(c.Param("id")); err != nil {
		return NewNotFoundError("session", c.Param("id"))
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// validateState checks component-matching parameters in place,
// reporting whether any value was clamped or derived. When the state
// carries calculator output, the embedded pulley and idler sets are
// checked too so conveyor-derived sessions obey the same ordering
// rules as hand-entered ones.
func validateState(st *models.DrawingState) (bool, *APIError) {
	systemAdjusted := false
	if st.System != nil {
		var err error
		systemAdjusted, err = st.System.Pulley.Validate()
		if err != nil {
			return false, NewValidationError(err)
		}
		if _, err := st.System.Idler.Validate(); err != nil {
			return false, NewValidationError(err)
		}
	}
	adjusted, apiErr := validateComponent(st)
	if apiErr != nil {
		return false, apiErr
	}
	return adjusted || systemAdjusted, nil
}

func validateComponent(st *models.DrawingState) (bool, *APIError) {
	switch st.Component {
	case models.ComponentBox:
		if st.Box == nil {
			return false, NewBadRequestError("box parameters are required", nil)
		}
		adjusted, err := st.Box.Validate()
		if err != nil {
			return false, NewValidationError(err)
		}
		return adjusted, nil
	case models.ComponentPulley:
		if st.Pulley == nil {
			return false, NewBadRequestError("pulley parameters are required", nil)
		}
		adjusted, err := st.Pulley.Validate()
		if err != nil {
			return false, NewValidationError(err)
		}
		return adjusted, nil
	case models.ComponentIdler:
		if st.Idler == nil {
			return false, NewBadRequestError("idler parameters are required", nil)
		}
		adjusted, err := st.Idler.Validate()
		if err != nil {
			return false, NewValidationError(err)
		}
		return adjusted, nil
	}
	return false, NewBadRequestError("unknown component", nil)
}
