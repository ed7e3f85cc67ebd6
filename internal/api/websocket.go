package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/techdraw/backend/internal/models"
	"github.com/techdraw/backend/pkg/logger"
)

// WebSocket message types for the render event channel
const (
	// Client -> Server messages
	MsgTypeRenderRequest = "render:request"
	MsgTypePing          = "ping"

	// Server -> Client messages
	MsgTypeRender = "render"
	MsgTypeError  = "error"
	MsgTypePong   = "pong"
)

// WSMessage is the envelope for every frame on the render channel.
type WSMessage struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

// RenderRequestPayload is what clients publish when a local change
// needs every connected view to redraw. All causes converge on the
// same broadcast; the cause is informational.
type RenderRequestPayload struct {
	SessionID string             `json:"sessionId"`
	Cause     models.RenderCause `json:"cause"`
}

// RenderHub fans render-request events out to every connected client.
// HTTP handlers publish through Broadcast; websocket clients may also
// publish by sending a render:request frame.
type RenderHub struct {
	upgrader websocket.Upgrader
	log      *logger.Logger

	mu    sync.RWMutex
	conns map[*websocket.Conn]*sync.Mutex
}

// NewRenderHub creates an empty hub.
func NewRenderHub(log *logger.Logger) *RenderHub {
	return &RenderHub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Allow connections from dev server
				return true
			},
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 4 * 1024,
		},
		conns: make(map[*websocket.Conn]*sync.Mutex),
		log:   log,
	}
}

// HandleRenderSocket upgrades the connection and serves the render
// event protocol until the client disconnects.
func (hub *RenderHub) HandleRenderSocket(c echo.Context) error {
	ws, err := hub.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer ws.Close()

	hub.register(ws)
	defer hub.unregister(ws)
	hub.log.Debug("render channel client connected")

	hub.send(ws, WSMessage{Type: "connected", Timestamp: time.Now().UnixMilli()})

	for {
		var msg WSMessage
		if err := ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				hub.log.Warn("render channel connection error", "error", err)
			}
			break
		}

		switch msg.Type {
		case MsgTypePing:
			hub.send(ws, WSMessage{Type: MsgTypePong, Timestamp: time.Now().UnixMilli()})
		case MsgTypeRenderRequest:
			var payload RenderRequestPayload
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				hub.sendError(ws, "invalid render request payload: "+err.Error())
				continue
			}
			hub.Broadcast(models.RenderEvent{SessionID: payload.SessionID, Cause: payload.Cause})
		default:
			hub.sendError(ws, "unknown message type: "+msg.Type)
		}
	}

	hub.log.Debug("render channel client disconnected")
	return nil
}

// Broadcast publishes a render event to every connected client.
func (hub *RenderHub) Broadcast(ev models.RenderEvent) {
	frame := WSMessage{
		Type:      MsgTypeRender,
		Payload:   mustJSON(ev),
		Timestamp: time.Now().UnixMilli(),
	}

	hub.mu.RLock()
	defer hub.mu.RUnlock()
	for ws, wmu := range hub.conns {
		wmu.Lock()
		err := ws.WriteJSON(frame)
		wmu.Unlock()
		if err != nil {
			hub.log.Warn("render broadcast failed", "error", err)
		}
	}
}

// Clients returns the current connection count.
func (hub *RenderHub) Clients() int {
	hub.mu.RLock()
	defer hub.mu.RUnlock()
	return len(hub.conns)
}

func (hub *RenderHub) register(ws *websocket.Conn) {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	hub.conns[ws] = &sync.Mutex{}
}

func (hub *RenderHub) unregister(ws *websocket.Conn) {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	delete(hub.conns, ws)
}

func (hub *RenderHub) send(ws *websocket.Conn, msg WSMessage) {
	hub.mu.RLock()
	wmu := hub.conns[ws]
	hub.mu.RUnlock()
	if wmu == nil {
		return
	}
	wmu.Lock()
	defer wmu.Unlock()
	if err := ws.WriteJSON(msg); err != nil {
		hub.log.Warn("render channel send failed", "error", err)
	}
}

func (hub *RenderHub) sendError(ws *websocket.Conn, message string) {
	hub.send(ws, WSMessage{
		Type:      MsgTypeError,
		Payload:   mustJSON(map[string]string{"message": message}),
		Timestamp: time.Now().UnixMilli(),
	})
}

func mustJSON(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return []byte("{}")
	}
	return data
}
