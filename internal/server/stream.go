package server

import (
	"fmt"
	"net/http"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/hud"
	"github.com/ayusman/mudra/internal/session"
)

// StreamHandler serves MJPEG frames from the camera with the joystick
// HUD overlay drawn on top.
type StreamHandler struct {
	session *session.Session
}

// NewStreamHandler creates a new StreamHandler for the given session.
func NewStreamHandler(s *session.Session) *StreamHandler {
	return &StreamHandler{session: s}
}

// ServeHTTP streams MJPEG frames to connected clients.
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	camera := h.session.Camera()
	leftCfg, rightCfg := h.session.JoystickConfigs()

	for {
		select {
		case <-r.Context().Done():
			return
		default:
		}

		frame, err := camera.ReadFrame()
		if err != nil {
			time.Sleep(100 * time.Millisecond)
			continue
		}

		left, right := h.session.Sticks()
		hud.Draw(frame.Mat, leftCfg, left)
		hud.Draw(frame.Mat, rightCfg, right)

		buf, err := gocv.IMEncode(".jpg", *frame.Mat)
		frame.Close()
		if err != nil {
			continue
		}

		// Write MJPEG frame
		fmt.Fprintf(w, "--frame\r\n")
		fmt.Fprintf(w, "Content-Type: image/jpeg\r\n")
		fmt.Fprintf(w, "Content-Length: %d\r\n\r\n", buf.Len())
		w.Write(buf.GetBytes())
		fmt.Fprintf(w, "\r\n")
		buf.Close()

		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}

		time.Sleep(66 * time.Millisecond) // ~15 FPS
	}
}
