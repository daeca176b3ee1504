// Package session owns the shared input state: the authoritative key
// set, both joystick signal slots, the pad buttons and the terraform
// gauge, plus the frame loop that feeds the kinematic pipeline.
package session

import (
	"fmt"
	"log"
	"sync"

	"github.com/ayusman/mudra/internal/bridge"
	"github.com/ayusman/mudra/internal/button"
	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/joystick"
	"github.com/ayusman/mudra/internal/keys"
)

// TerraformPad is the reserved pad name for the terraform power button.
// It has no key binding; its press state is published to the terrain
// controller directly.
const TerraformPad = "terraform"

// Sampling defaults used when the config leaves them zero.
const (
	DefaultActiveFPS         = 30
	DefaultIdleFPS           = 5
	DefaultActivityThreshold = 0.01
)

// ErrUnknownPad is returned for pointer events on unregistered pads.
var ErrUnknownPad = fmt.Errorf("unknown pad")

// Config holds the session configuration.
type Config struct {
	Camera   capture.Camera
	Detector detector.Detector

	Left  joystick.Config
	Right joystick.Config

	// Threshold is the stick deflection for key derivation.
	Threshold float64

	// Pads maps pad names to their key bindings. The terraform pad is
	// created implicitly and must not appear here.
	Pads map[string]keys.Key

	ActiveFPS         int
	IdleFPS           int
	ActivityThreshold float64
}

// Session is the single owner of all shared input state. The frame
// loop is its only signal writer; HUD and broadcast consumers read
// through accessors.
type Session struct {
	cfg      Config
	camera   capture.Camera
	detector detector.Detector
	activity *capture.ActivityDetector

	keyState *keys.State
	bridge   *bridge.Bridge
	gauge    *button.Gauge

	pads      map[string]*button.Button
	terraform *button.Button

	mu          sync.RWMutex
	enabled     bool
	degraded    bool
	stopCh      chan struct{}
	left, right joystick.Signal
	lastErr     string
	lastFrameTS int64
	terraActive bool
}

// New creates a Session. Camera and Detector must be set; pads are
// built from the configured bindings.
func New(cfg Config) *Session {
	if cfg.ActiveFPS <= 0 {
		cfg.ActiveFPS = DefaultActiveFPS
	}
	if cfg.IdleFPS <= 0 {
		cfg.IdleFPS = DefaultIdleFPS
	}
	if cfg.ActivityThreshold <= 0 {
		cfg.ActivityThreshold = DefaultActivityThreshold
	}

	s := &Session{
		cfg:      cfg,
		camera:   cfg.Camera,
		detector: cfg.Detector,
		activity: capture.NewActivityDetector(),
		keyState: keys.NewState(),
		bridge:   bridge.New(cfg.Threshold),
		gauge:    button.NewGauge(1.0),
		pads:     make(map[string]*button.Button, len(cfg.Pads)),
	}

	for name, key := range cfg.Pads {
		key := key
		s.pads[name] = button.New(name,
			func() { s.keyState.Press(key) },
			func() { s.keyState.Release(key) },
		)
	}

	s.terraform = button.New(TerraformPad,
		func() { s.setTerraformActive(true) },
		func() { s.setTerraformActive(false) },
	)

	return s
}

// Keys returns the authoritative key state.
func (s *Session) Keys() *keys.State {
	return s.keyState
}

// Gauge returns the terraform power gauge.
func (s *Session) Gauge() *button.Gauge {
	return s.gauge
}

// SetPower records a power value reported by the terrain controller.
func (s *Session) SetPower(v float64) {
	s.gauge.Set(v)
}

// JoystickConfigs returns the left and right stick layouts.
func (s *Session) JoystickConfigs() (left, right joystick.Config) {
	return s.cfg.Left, s.cfg.Right
}

// Camera returns the camera instance, used by the MJPEG stream.
func (s *Session) Camera() capture.Camera {
	return s.camera
}

// PointerDown routes a pointer-down event to the named pad.
func (s *Session) PointerDown(pad string, id button.PointerID, captured bool) error {
	b, err := s.pad(pad)
	if err != nil {
		return err
	}
	b.PointerDown(id, captured)
	return nil
}

// PointerUp routes a pointer-up event to the named pad.
func (s *Session) PointerUp(pad string, id button.PointerID) error {
	b, err := s.pad(pad)
	if err != nil {
		return err
	}
	b.PointerUp(id)
	return nil
}

// PointerCancel routes a pointer-cancel or capture-loss event to the
// named pad.
func (s *Session) PointerCancel(pad string, id button.PointerID) error {
	b, err := s.pad(pad)
	if err != nil {
		return err
	}
	b.PointerCancel(id)
	return nil
}

func (s *Session) pad(name string) (*button.Button, error) {
	if name == TerraformPad {
		return s.terraform, nil
	}
	b, ok := s.pads[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPad, name)
	}
	return b, nil
}

// PadStates returns the visual pressed state of every pad: the local
// pointer press OR the kinematically derived key for its binding.
func (s *Session) PadStates() map[string]bool {
	derived := s.bridge.Current()
	out := make(map[string]bool, len(s.pads)+1)
	for name, b := range s.pads {
		out[name] = b.Active(derived.Contains(s.cfg.Pads[name]))
	}
	out[TerraformPad] = s.terraform.Pressed()
	return out
}

// TerraformActive reports whether the terraform pad is held.
func (s *Session) TerraformActive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.terraActive
}

func (s *Session) setTerraformActive(v bool) {
	s.mu.Lock()
	s.terraActive = v
	s.mu.Unlock()
}

// Sticks returns the current joystick signals.
func (s *Session) Sticks() (left, right joystick.Signal) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.left, s.right
}

// KinematicKeys returns the derived key set. The returned set is
// identity-stable across frames with unchanged membership.
func (s *Session) KinematicKeys() keys.Set {
	return s.bridge.Current()
}

// Enabled reports whether the kinematic pipeline is running.
func (s *Session) Enabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.enabled
}

// LastError returns the human-readable error from the last Enable or
// pipeline failure, empty when healthy.
func (s *Session) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *Session) setError(msg string) {
	s.mu.Lock()
	s.lastErr = msg
	s.mu.Unlock()
}

// Enable starts the camera and the frame loop. A camera failure is
// recorded as the session error and returned; the session stays
// disabled and inert until the next Enable.
//
// The stop channel is published before the lock is released, so a
// concurrent Enable sees it and returns without opening the camera or
// spawning a second loop.
func (s *Session) Enable() error {
	s.mu.Lock()
	if s.stopCh != nil {
		s.mu.Unlock()
		return nil
	}
	stopCh := make(chan struct{})
	s.stopCh = stopCh
	s.lastErr = ""
	s.degraded = false
	s.mu.Unlock()

	if err := s.camera.Open(); err != nil {
		s.mu.Lock()
		if s.stopCh == stopCh {
			s.stopCh = nil
		}
		s.lastErr = "camera unavailable: " + err.Error()
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	if s.stopCh != stopCh {
		// Disabled while the camera was opening.
		s.mu.Unlock()
		s.camera.Close()
		return nil
	}
	s.enabled = true
	s.lastFrameTS = 0
	s.mu.Unlock()

	go s.run(stopCh)

	log.Println("kinematic pipeline started")
	return nil
}

// Disable stops the frame loop, releases the camera and synchronously
// zeroes both signal slots and the derived key set. A late inference
// result from an in-flight Detect is discarded by the enabled check in
// writeSignals.
func (s *Session) Disable() {
	s.mu.Lock()
	if s.stopCh != nil {
		close(s.stopCh)
		s.stopCh = nil
	}
	wasEnabled := s.enabled
	s.enabled = false
	s.left = joystick.Signal{}
	s.right = joystick.Signal{}
	s.lastFrameTS = 0
	s.mu.Unlock()

	s.bridge.Reset()
	s.activity.Reset()

	if err := s.camera.Close(); err != nil {
		log.Printf("error closing camera: %v", err)
	}

	if wasEnabled {
		log.Println("kinematic pipeline stopped")
	}
}

// SetKinematicEnabled toggles the pipeline. The Enable error, if any,
// is already recorded as the session error.
func (s *Session) SetKinematicEnabled(enabled bool) {
	if enabled {
		if err := s.Enable(); err != nil {
			log.Printf("enable kinematic control: %v", err)
		}
		return
	}
	s.Disable()
}

// Close shuts the session down and releases the detector.
func (s *Session) Close() {
	s.Disable()
	s.activity.Close()
	if s.detector != nil {
		if err := s.detector.Close(); err != nil {
			log.Printf("error closing detector: %v", err)
		}
	}
}
