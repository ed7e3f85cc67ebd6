package models

// DrawingState is the committed parameter state of one editing session.
// Exactly one of Box, Pulley or Idler is set for directly entered
// parameters; System is set when the unified generator produced them.
type DrawingState struct {
	Component Component                   `json:"component"`
	View      ViewType                    `json:"view"`
	Theme     string                      `json:"theme"` // "light" or "dark"
	Box       *BoxDimensions              `json:"box,omitempty"`
	Pulley    *PulleyParameters           `json:"pulley,omitempty"`
	Idler     *IdlerParameters            `json:"idler,omitempty"`
	System    *CalculatedSystemParameters `json:"system,omitempty"`
}

// DrawingSession ties a session ID to its current drawing state.
type DrawingSession struct {
	ID    string       `json:"id"`
	State DrawingState `json:"state"`
}

// RenderCause identifies why a redraw was requested. All causes
// converge on the same full redraw; the cause is carried for
// logging and for the event stream only.
type RenderCause string

const (
	CauseParameterChange RenderCause = "parameter"
	CauseViewChange      RenderCause = "view"
	CauseThemeChange     RenderCause = "theme"
	CauseResize          RenderCause = "resize"
)

// RenderEvent is broadcast on the websocket channel whenever a session
// commits a change that invalidates the current drawing.
type RenderEvent struct {
	SessionID string      `json:"sessionId"`
	Cause     RenderCause `json:"cause"`
}
