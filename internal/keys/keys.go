// Package keys defines the closed virtual key vocabulary shared by the
// pad buttons, the kinematic bridge, and the downstream controller.
package keys

import (
	"fmt"
	"sort"
	"sync"
)

// Key is a logical input identifier. The underlying value matches the
// identifier the downstream camera/terrain controller expects.
type Key string

const (
	// Movement (left stick / WASD pad).
	Forward  Key = "w"
	Backward Key = "s"
	Left     Key = "a"
	Right    Key = "d"

	// Look (right stick / arrow pad).
	LookUp    Key = "arrowup"
	LookDown  Key = "arrowdown"
	LookLeft  Key = "arrowleft"
	LookRight Key = "arrowright"

	// Modifiers.
	Jump   Key = " "
	Sprint Key = "shift"
)

// all lists every valid key, used by Parse.
var all = []Key{
	Forward, Backward, Left, Right,
	LookUp, LookDown, LookLeft, LookRight,
	Jump, Sprint,
}

// Parse converts a raw identifier into a Key.
// Returns an error for identifiers outside the closed vocabulary.
func Parse(s string) (Key, error) {
	for _, k := range all {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown key %q", s)
}

// Set is an unordered collection of keys.
type Set map[Key]struct{}

// NewSet builds a Set from the given keys.
func NewSet(ks ...Key) Set {
	s := make(Set, len(ks))
	for _, k := range ks {
		s[k] = struct{}{}
	}
	return s
}

// Contains reports whether k is a member of the set.
func (s Set) Contains(k Key) bool {
	_, ok := s[k]
	return ok
}

// Equal reports whether two sets have identical membership.
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for k := range s {
		if _, ok := other[k]; !ok {
			return false
		}
	}
	return true
}

// Sorted returns the members in a stable order for serialization.
func (s Set) Sorted() []Key {
	out := make([]Key, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// State is the authoritative set of currently held keys. Press and
// Release are idempotent per key: membership reflects "currently held",
// not "just triggered". Safe for concurrent use.
type State struct {
	mu      sync.RWMutex
	pressed Set
}

// NewState creates an empty key state.
func NewState() *State {
	return &State{pressed: make(Set)}
}

// Press marks the key as held. Pressing an already-held key is a no-op.
func (s *State) Press(k Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pressed[k] = struct{}{}
}

// Release clears the key. Releasing a key that is not held is a no-op.
func (s *State) Release(k Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pressed, k)
}

// IsPressed reports whether the key is currently held.
func (s *State) IsPressed(k Key) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pressed.Contains(k)
}

// Snapshot returns a copy of the currently held keys.
func (s *State) Snapshot() Set {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(Set, len(s.pressed))
	for k := range s.pressed {
		out[k] = struct{}{}
	}
	return out
}
