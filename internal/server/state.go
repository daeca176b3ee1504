package server

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ayusman/mudra/internal/joystick"
	"github.com/ayusman/mudra/internal/keys"
	"github.com/ayusman/mudra/internal/session"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// broadcastInterval is the state push cadence (~30 Hz).
const broadcastInterval = 33 * time.Millisecond

// StateSnapshot is the wire form of the full input state consumed by
// the downstream camera/terrain controller and the UI.
type StateSnapshot struct {
	Keys             []keys.Key      `json:"keys"`
	KinematicKeys    []keys.Key      `json:"kinematicKeys"`
	LeftStick        joystick.Signal `json:"leftStick"`
	RightStick       joystick.Signal `json:"rightStick"`
	Pads             map[string]bool `json:"pads"`
	Terraform        TerraformState  `json:"terraform"`
	KinematicEnabled bool            `json:"kinematicEnabled"`
	Error            string          `json:"error,omitempty"`
}

// TerraformState mirrors the externally owned terraform resource.
type TerraformState struct {
	Power  float64 `json:"power"`
	Level  string  `json:"level"`
	Active bool    `json:"active"`
}

// Snapshot builds a StateSnapshot from the current session state.
func Snapshot(s *session.Session) StateSnapshot {
	left, right := s.Sticks()
	return StateSnapshot{
		Keys:          s.Keys().Snapshot().Sorted(),
		KinematicKeys: s.KinematicKeys().Sorted(),
		LeftStick:     left,
		RightStick:    right,
		Pads:          s.PadStates(),
		Terraform: TerraformState{
			Power:  s.Gauge().Power(),
			Level:  string(s.Gauge().Level()),
			Active: s.TerraformActive(),
		},
		KinematicEnabled: s.Enabled(),
		Error:            s.LastError(),
	}
}

// StateHandler pushes state snapshots to connected clients over
// WebSocket, skipping pushes when nothing changed.
type StateHandler struct {
	session *session.Session
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
}

// NewStateHandler creates a StateHandler and starts its broadcast loop.
func NewStateHandler(s *session.Session) *StateHandler {
	h := &StateHandler{
		session: s,
		clients: make(map[*websocket.Conn]bool),
	}
	go h.broadcast()
	return h
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *StateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// broadcast pushes the state to all connected clients at a fixed
// cadence. Identical consecutive payloads are not re-sent.
func (h *StateHandler) broadcast() {
	ticker := time.NewTicker(broadcastInterval)
	defer ticker.Stop()

	var last []byte

	for range ticker.C {
		h.mu.RLock()
		if len(h.clients) == 0 {
			h.mu.RUnlock()
			last = nil
			continue
		}
		h.mu.RUnlock()

		msg, err := json.Marshal(Snapshot(h.session))
		if err != nil {
			continue
		}
		if bytes.Equal(msg, last) {
			continue
		}
		last = msg

		h.mu.RLock()
		for conn := range h.clients {
			conn.WriteMessage(websocket.TextMessage, msg)
		}
		h.mu.RUnlock()
	}
}
