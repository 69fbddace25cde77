package websocket

import "github.com/stemsi/absensi-backend/internal/model"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing Action = "ping"
)

// RequestEnvelope is the only message shape clients send.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventReady      Event = "ready"
	EventAttendance Event = "attendance"
	EventPong       Event = "pong"
	EventError      Event = "error"
)

// ReadyResponse is sent once the feed subscription is live. Events
// published after it are guaranteed to reach the client.
type ReadyResponse struct {
	Event Event `json:"event"`
}

// AttendanceResponse carries one attendance event.
type AttendanceResponse struct {
	Event Event                 `json:"event"`
	Data  model.AttendanceEvent `json:"data"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
