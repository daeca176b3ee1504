// Package button implements the pointer-capture state machine behind
// the on-screen pad buttons and the terraform power gauge.
package button

import (
	"log"
	"sync"
)

// PointerID identifies a platform pointer (touch, pen, mouse).
type PointerID int64

// Button maps a pointer down/up/cancel sequence onto press and release
// callbacks, holding at most one captured pointer at a time. A second
// pointer going down while one is captured is ignored, which prevents
// multi-touch ghost presses on one logical button.
type Button struct {
	name      string
	onPress   func()
	onRelease func()

	mu       sync.Mutex
	captured bool
	pointer  PointerID
	pressed  bool
}

// New creates a Button with the given callbacks. Either callback may
// be nil.
func New(name string, onPress, onRelease func()) *Button {
	return &Button{
		name:      name,
		onPress:   onPress,
		onRelease: onRelease,
	}
}

// Name returns the pad name this button was registered under.
func (b *Button) Name() string {
	return b.name
}

// PointerDown handles a pointer-down event. The captured flag reports
// whether the client managed to acquire pointer capture; acquisition
// failure is logged and the press proceeds uncaptured, accepting that
// the matching pointer-up may not map back reliably.
//
// Returns true if the press was accepted.
func (b *Button) PointerDown(id PointerID, captured bool) bool {
	b.mu.Lock()
	if b.captured {
		b.mu.Unlock()
		return false
	}
	b.captured = true
	b.pointer = id
	b.pressed = true
	onPress := b.onPress
	b.mu.Unlock()

	if !captured {
		log.Printf("button %s: pointer capture failed for pointer %d, proceeding uncaptured", b.name, id)
	}
	if onPress != nil {
		onPress()
	}
	return true
}

// PointerUp handles a pointer-up event. Events from a pointer other
// than the captured one are ignored.
//
// Returns true if the release was accepted.
func (b *Button) PointerUp(id PointerID) bool {
	return b.release(id)
}

// PointerCancel handles pointer-cancel and loss-of-capture events,
// with the same matching rule as PointerUp.
func (b *Button) PointerCancel(id PointerID) bool {
	return b.release(id)
}

func (b *Button) release(id PointerID) bool {
	b.mu.Lock()
	if !b.captured || b.pointer != id {
		b.mu.Unlock()
		return false
	}
	b.captured = false
	b.pressed = false
	onRelease := b.onRelease
	b.mu.Unlock()

	if onRelease != nil {
		onRelease()
	}
	return true
}

// Pressed reports the local pointer-press state.
func (b *Button) Pressed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pressed
}

// Active reports the visual pressed state: the logical OR of the local
// pointer press and an externally supplied activity flag, so the
// kinematic bridge can light a button without a real touch.
func (b *Button) Active(external bool) bool {
	return b.Pressed() || external
}
