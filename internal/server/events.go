package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/ayusman/mudra/internal/button"
	"github.com/ayusman/mudra/internal/session"
)

// Inbound event types.
const (
	eventPointerDown   = "pointerdown"
	eventPointerUp     = "pointerup"
	eventPointerCancel = "pointercancel"
	eventCaptureLost   = "capturelost"
	eventPower         = "power"
	eventKinematic     = "kinematic"
)

// inboundEvent is one client message on the events socket.
// Captured is a pointer so "field absent" (capture acquired) is
// distinguishable from an explicit false (capture denied).
type inboundEvent struct {
	Type     string  `json:"type"`
	Pad      string  `json:"pad,omitempty"`
	Pointer  int64   `json:"pointer,omitempty"`
	Captured *bool   `json:"captured,omitempty"`
	Value    float64 `json:"value,omitempty"`
	Enabled  bool    `json:"enabled,omitempty"`
}

// EventsHandler receives pointer, power and toggle events from the UI
// client and the terrain controller over WebSocket.
type EventsHandler struct {
	session *session.Session
}

// NewEventsHandler creates an EventsHandler for the given session.
func NewEventsHandler(s *session.Session) *EventsHandler {
	return &EventsHandler{session: s}
}

// ServeHTTP upgrades the connection and processes events until the
// client disconnects.
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var ev inboundEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			log.Printf("bad event payload: %v", err)
			continue
		}

		if err := h.dispatch(ev); err != nil {
			log.Printf("event %s: %v", ev.Type, err)
		}
	}
}

// dispatch routes one event to the session.
func (h *EventsHandler) dispatch(ev inboundEvent) error {
	switch ev.Type {
	case eventPointerDown:
		captured := true
		if ev.Captured != nil {
			captured = *ev.Captured
		}
		return h.session.PointerDown(ev.Pad, button.PointerID(ev.Pointer), captured)

	case eventPointerUp:
		return h.session.PointerUp(ev.Pad, button.PointerID(ev.Pointer))

	case eventPointerCancel, eventCaptureLost:
		return h.session.PointerCancel(ev.Pad, button.PointerID(ev.Pointer))

	case eventPower:
		h.session.SetPower(ev.Value)
		return nil

	case eventKinematic:
		h.session.SetKinematicEnabled(ev.Enabled)
		return nil

	default:
		log.Printf("unknown event type %q", ev.Type)
		return nil
	}
}
