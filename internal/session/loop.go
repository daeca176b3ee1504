package session

import (
	"log"
	"time"

	"github.com/ayusman/mudra/internal/joystick"
)

// idleTimeout is how long the scene must stay still before the loop
// drops to the idle sampling rate.
const idleTimeout = 2 * time.Second

// run is the frame loop feeding the kinematic pipeline. One tick reads
// at most one camera frame, skips duplicates by timestamp, measures
// scene activity to switch between idle and active sampling rates, and
// in active mode runs pose detection and writes both stick signals.
//
// The loop is the only writer of the signal slots. writeSignals checks
// the enabled flag under the lock, so an inference result arriving
// after Disable is discarded instead of resurrecting stale state.
func (s *Session) run(stopCh chan struct{}) {
	activeMode := true
	lastActivity := time.Now()

	interval := time.Second / time.Duration(s.cfg.ActiveFPS)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			frame, err := s.camera.ReadFrame()
			if err != nil {
				continue
			}

			// Process each video frame once, even when the tick rate
			// outpaces the camera's delivery rate.
			if !s.claimFrame(frame.TimestampMs) {
				frame.Close()
				continue
			}

			// A wrist held steadily inside a stick zone is a static
			// scene too, so a live deflection blocks the idle drop:
			// the operator is still commanding movement.
			changed := s.activity.Sample(frame.Mat)
			if changed >= s.cfg.ActivityThreshold || !s.sticksAtRest() {
				lastActivity = time.Now()
				if !activeMode {
					activeMode = true
					interval = time.Second / time.Duration(s.cfg.ActiveFPS)
					ticker.Reset(interval)
					log.Println("kinematic sampling: active")
				}
			} else if activeMode && time.Since(lastActivity) > idleTimeout {
				activeMode = false
				interval = time.Second / time.Duration(s.cfg.IdleFPS)
				ticker.Reset(interval)
				log.Println("kinematic sampling: idle")
			}

			if !activeMode || s.isDegraded() {
				frame.Close()
				continue
			}

			aspect := frame.Aspect()
			pose, err := s.detector.Detect(frame.Mat)
			frame.Close()

			if err != nil {
				// Detector failure leaves the feature inert until the
				// operator cycles it off and on again.
				s.setError("pose detection unavailable: " + err.Error())
				s.setDegraded()
				s.writeSignals(joystick.Signal{}, joystick.Signal{})
				log.Printf("pose detection failed: %v", err)
				continue
			}

			if pose == nil {
				s.writeSignals(joystick.Signal{}, joystick.Signal{})
				continue
			}

			lw, rw := pose.Wrists()
			left, _ := joystick.Normalize(lw.X, lw.Y, aspect, s.cfg.Left)
			right, _ := joystick.Normalize(rw.X, rw.Y, aspect, s.cfg.Right)
			s.writeSignals(left, right)
		}
	}
}

// claimFrame records the frame timestamp and reports whether it
// advanced past the last processed one.
func (s *Session) claimFrame(ts int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ts == s.lastFrameTS {
		return false
	}
	s.lastFrameTS = ts
	return true
}

// writeSignals stores both stick values and refreshes the derived key
// set. Writes after Disable are dropped.
func (s *Session) writeSignals(left, right joystick.Signal) {
	s.mu.Lock()
	if !s.enabled {
		s.mu.Unlock()
		return
	}
	s.left = left
	s.right = right
	s.mu.Unlock()

	s.bridge.Update(left, right)
}

func (s *Session) sticksAtRest() bool {
	left, right := s.Sticks()
	return left.Zero() && right.Zero()
}

func (s *Session) isDegraded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.degraded
}

func (s *Session) setDegraded() {
	s.mu.Lock()
	s.degraded = true
	s.mu.Unlock()
}
