package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techdraw/backend/internal/models"
	"github.com/techdraw/backend/internal/session"
	"github.com/techdraw/backend/internal/units"
	"github.com/techdraw/backend/pkg/logger"
)

// mockHub records broadcast render events instead of writing to
// websocket connections.
type mockHub struct {
	events []models.RenderEvent
}

func (m *mockHub) Broadcast(ev models.RenderEvent) {
	m.events = append(m.events, ev)
}

func newJSONContext(t *testing.T, method, target string, body interface{}) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func newSessionHandler() (SessionHandler, *session.Manager, *mockHub) {
	mgr := session.NewManager()
	hub := &mockHub{}
	return NewSessionHandler(mgr, hub, "", logger.Nop()), mgr, hub
}

func TestCreateSessionDefaults(t *testing.T) {
	h, _, _ := newSessionHandler()

	c, rec := newJSONContext(t, http.MethodPost, "/api/sessions", nil)
	require.NoError(t, h.HandleCreateSession(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Session  models.DrawingSession `json:"session"`
		Adjusted bool                  `json:"adjusted"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Session.ID)
	assert.Equal(t, models.ComponentBox, resp.Session.State.Component)
	require.NotNil(t, resp.Session.State.Box)
	assert.Equal(t, 200.0, resp.Session.State.Box.Width)
	assert.False(t, resp.Adjusted)
}

func TestCreateSessionUsesConfiguredTheme(t *testing.T) {
	mgr := session.NewManager()
	h := NewSessionHandler(mgr, &mockHub{}, "dark", logger.Nop())

	c, rec := newJSONContext(t, http.MethodPost, "/api/sessions", nil)
	require.NoError(t, h.HandleCreateSession(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Session models.DrawingSession `json:"session"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "dark", resp.Session.State.Theme)
}

func TestCreateSessionWithInvalidState(t *testing.T) {
	h, _, _ := newSessionHandler()

	body := CreateSessionRequest{State: &models.DrawingState{
		Component: models.ComponentBox,
		Box:       &models.BoxDimensions{Width: -1, Height: 100, Unit: units.Millimeter},
	}}
	c, _ := newJSONContext(t, http.MethodPost, "/api/sessions", body)

	err := h.HandleCreateSession(c)
	require.Error(t, err)
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "VALIDATION_ERROR", apiErr.Code)
}

func TestGetParametersUnknownSession(t *testing.T) {
	h, _, _ := newSessionHandler()

	c, _ := newJSONContext(t, http.MethodGet, "/api/sessions/nope/parameters", nil)
	c.SetParamNames("id")
	c.SetParamValues("nope")

	err := h.HandleGetParameters(c)
	require.Error(t, err)
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestCommitClampsRadiusAndBroadcasts(t *testing.T) {
	h, mgr, hub := newSessionHandler()
	sess, err := mgr.Create(defaultDrawingState("light"))
	require.NoError(t, err)

	// Radius above half the short side must come back clamped.
	body := CommitRequest{
		State: models.DrawingState{
			Component: models.ComponentBox,
			View:      models.ViewTop,
			Theme:     "dark",
			Box:       &models.BoxDimensions{Width: 200, Height: 100, CornerRadius: 90, Unit: units.Millimeter},
		},
		Cause: models.CauseThemeChange,
	}
	c, rec := newJSONContext(t, http.MethodPut, "/api/sessions/"+sess.ID+"/parameters", body)
	c.SetParamNames("id")
	c.SetParamValues(sess.ID)

	require.NoError(t, h.HandleCommitParameters(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp CommitResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Adjusted)
	assert.Equal(t, 50.0, resp.State.Box.CornerRadius)

	// Committed state must be visible on the next read.
	stored, err := mgr.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, stored.State.Box.CornerRadius)
	assert.Equal(t, "dark", stored.State.Theme)

	require.Len(t, hub.events, 1)
	assert.Equal(t, sess.ID, hub.events[0].SessionID)
	assert.Equal(t, models.CauseThemeChange, hub.events[0].Cause)
}

func TestCommitRejectsInvertedSystemIdler(t *testing.T) {
	h, mgr, hub := newSessionHandler()
	sess, err := mgr.Create(defaultDrawingState("light"))
	require.NoError(t, err)

	st := defaultDrawingState("light")
	st.System = &models.CalculatedSystemParameters{
		Pulley: models.PulleyParameters{
			Diameter: 250, Thickness: 120,
			BoreDiameter: 50, InnerDiameter: 230,
			GrooveDepth: 10, GrooveWidth: 12,
			KeyWayWidth: 8, KeyWayDepth: 4,
			Unit: units.Millimeter,
		},
		Idler: models.IdlerParameters{
			OuterDiameter: 108, Length: 400, InnerDiameter: 133,
			Unit: units.Millimeter,
		},
	}
	body := CommitRequest{State: st}
	c, _ := newJSONContext(t, http.MethodPut, "/api/sessions/"+sess.ID+"/parameters", body)
	c.SetParamNames("id")
	c.SetParamValues(sess.ID)

	err = h.HandleCommitParameters(c)
	require.Error(t, err)
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", apiErr.Code)
	assert.Empty(t, hub.events)
}

func TestCommitUnknownSession(t *testing.T) {
	h, _, hub := newSessionHandler()

	body := CommitRequest{State: defaultDrawingState("light")}
	c, _ := newJSONContext(t, http.MethodPut, "/api/sessions/missing/parameters", body)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	err := h.HandleCommitParameters(c)
	require.Error(t, err)
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Empty(t, hub.events)
}

func TestSessionKeepAlive(t *testing.T) {
	h, mgr, _ := newSessionHandler()
	sess, err := mgr.Create(defaultDrawingState("light"))
	require.NoError(t, err)

	c, rec := newJSONContext(t, http.MethodPost, "/api/sessions/"+sess.ID+"/keepalive", nil)
	c.SetParamNames("id")
	c.SetParamValues(sess.ID)

	require.NoError(t, h.HandleSessionKeepAlive(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
