// Package joystick converts pose landmark positions into normalized
// 2-axis stick signals for the kinematic control pipeline.
package joystick

import "math"

// Config describes one virtual joystick in normalized video space.
// Origin is the stick center, Radius the capture radius in x-units,
// and Deadzone the fraction of Radius treated as no deflection.
type Config struct {
	OriginX  float64
	OriginY  float64
	Radius   float64
	Deadzone float64
}

// Signal is a stick deflection with each axis in [-1, 1].
// X > 0 is rightward and Y > 0 is downward in screen space.
type Signal struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Zero reports whether the signal is at rest.
func (s Signal) Zero() bool {
	return s.X == 0 && s.Y == 0
}

// Normalize maps a landmark position to a stick signal.
//
// The landmark coordinates are normalized video coordinates in [0, 1].
// The vertical offset is divided by the frame aspect ratio (width over
// height) so the circular capture zone is circular on screen rather
// than elliptical. Inside deadzone*radius the stick is inactive; beyond
// it the deflection rescales linearly so full radius is magnitude 1.
// The X axis is negated because the operator sees a mirrored view of
// the camera, keeping left/right intuitive.
//
// Returns the signal and whether the stick is active.
func Normalize(lmX, lmY, aspect float64, cfg Config) (Signal, bool) {
	dx := lmX - cfg.OriginX
	dy := lmY - cfg.OriginY
	if aspect > 0 {
		dy /= aspect
	}

	dist := math.Sqrt(dx*dx + dy*dy)

	inner := cfg.Deadzone * cfg.Radius
	if dist <= inner {
		return Signal{}, false
	}

	span := (1 - cfg.Deadzone) * cfg.Radius
	factor := (dist - inner) / span
	if factor > 1 {
		factor = 1
	}

	vx := dx / dist
	vy := dy / dist

	return Signal{X: -vx * factor, Y: vy * factor}, true
}
