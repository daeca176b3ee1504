// Package bridge derives discrete virtual keys from continuous stick
// signals. The derived set highlights pad buttons visually and is never
// merged into the authoritative key state.
package bridge

import (
	"sync"

	"github.com/ayusman/mudra/internal/joystick"
	"github.com/ayusman/mudra/internal/keys"
)

// DefaultThreshold is the stick deflection past which a directional key
// is considered active. Deliberately looser than the normalizer's own
// deadzone: the normalizer rejects jitter, this converts intent.
const DefaultThreshold = 0.25

// Derive computes the key set active for the given stick values.
// The left stick maps to movement keys and the right stick to look
// keys. Both axes are evaluated independently, so diagonals produce
// two keys per stick.
func Derive(left, right joystick.Signal, threshold float64) keys.Set {
	set := make(keys.Set)

	if left.Y > threshold {
		set[keys.Backward] = struct{}{}
	}
	if left.Y < -threshold {
		set[keys.Forward] = struct{}{}
	}
	if left.X > threshold {
		set[keys.Right] = struct{}{}
	}
	if left.X < -threshold {
		set[keys.Left] = struct{}{}
	}

	if right.Y > threshold {
		set[keys.LookDown] = struct{}{}
	}
	if right.Y < -threshold {
		set[keys.LookUp] = struct{}{}
	}
	if right.X > threshold {
		set[keys.LookRight] = struct{}{}
	}
	if right.X < -threshold {
		set[keys.LookLeft] = struct{}{}
	}

	return set
}

// Bridge holds the current derived key set across frames.
// Update replaces the stored set only when membership actually changes,
// so consumers can use reference identity to gate re-publishes.
type Bridge struct {
	mu        sync.RWMutex
	threshold float64
	current   keys.Set
}

// New creates a Bridge with the given threshold.
// A threshold <= 0 falls back to DefaultThreshold.
func New(threshold float64) *Bridge {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Bridge{
		threshold: threshold,
		current:   make(keys.Set),
	}
}

// Update recomputes the derived set from both sticks and returns the
// stored set. If the recomputed membership equals the previous one the
// prior set is kept as-is.
func (b *Bridge) Update(left, right joystick.Signal) keys.Set {
	next := Derive(left, right, b.threshold)

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.current.Equal(next) {
		b.current = next
	}
	return b.current
}

// Current returns the stored derived set.
func (b *Bridge) Current() keys.Set {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.current
}

// Reset forces the derived set empty, used when kinematic control is
// disabled. Keeps the existing set if it is already empty.
func (b *Bridge) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.current) != 0 {
		b.current = make(keys.Set)
	}
}
