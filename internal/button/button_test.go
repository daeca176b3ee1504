package button

import "testing"

// counter tracks press/release callback invocations.
type counter struct {
	presses  int
	releases int
}

func newCounted(name string) (*Button, *counter) {
	c := &counter{}
	b := New(name,
		func() { c.presses++ },
		func() { c.releases++ },
	)
	return b, c
}

func TestButton_PressRelease(t *testing.T) {
	b, c := newCounted("forward")

	if !b.PointerDown(1, true) {
		t.Fatal("expected pointer-down to be accepted")
	}
	if !b.Pressed() {
		t.Error("expected button pressed after pointer-down")
	}
	if c.presses != 1 {
		t.Errorf("expected 1 press callback, got %d", c.presses)
	}

	if !b.PointerUp(1) {
		t.Fatal("expected pointer-up to be accepted")
	}
	if b.Pressed() {
		t.Error("expected button released after pointer-up")
	}
	if c.releases != 1 {
		t.Errorf("expected 1 release callback, got %d", c.releases)
	}
}

func TestButton_SecondPointerIgnored(t *testing.T) {
	b, c := newCounted("forward")

	b.PointerDown(1, true)

	// A second pointer going down while the first is captured must not
	// press again nor steal the capture.
	if b.PointerDown(2, true) {
		t.Error("expected second pointer-down to be ignored")
	}
	if c.presses != 1 {
		t.Errorf("expected 1 press callback, got %d", c.presses)
	}

	// Releasing the second pointer does nothing; the first still owns
	// the button.
	if b.PointerUp(2) {
		t.Error("expected release from non-captured pointer to be ignored")
	}
	if !b.Pressed() {
		t.Error("expected button still pressed by the first pointer")
	}

	if !b.PointerUp(1) {
		t.Error("expected release from the captured pointer to be accepted")
	}
	if c.releases != 1 {
		t.Errorf("expected 1 release callback, got %d", c.releases)
	}
}

func TestButton_PressReleasePairing(t *testing.T) {
	b, c := newCounted("jump")

	// Every accepted press pairs with exactly one release, across
	// repeated cycles and regardless of how the release arrives.
	b.PointerDown(7, true)
	b.PointerUp(7)
	b.PointerDown(8, true)
	b.PointerCancel(8)
	b.PointerDown(9, true)
	b.PointerCancel(9)

	if c.presses != 3 || c.releases != 3 {
		t.Errorf("expected 3 press/release pairs, got %d/%d", c.presses, c.releases)
	}

	// A stray release with nothing captured is ignored.
	if b.PointerUp(9) {
		t.Error("expected release with no capture to be ignored")
	}
	if c.releases != 3 {
		t.Errorf("expected release count unchanged, got %d", c.releases)
	}
}

func TestButton_CancelMatchesCapturedPointerOnly(t *testing.T) {
	b, c := newCounted("sprint")

	b.PointerDown(3, true)

	if b.PointerCancel(4) {
		t.Error("expected cancel from unrelated pointer to be ignored")
	}
	if !b.Pressed() {
		t.Error("expected button still pressed")
	}

	b.PointerCancel(3)
	if b.Pressed() {
		t.Error("expected button released after matching cancel")
	}
	if c.releases != 1 {
		t.Errorf("expected 1 release, got %d", c.releases)
	}
}

func TestButton_UncapturedPressStillWorks(t *testing.T) {
	b, c := newCounted("forward")

	// Capture acquisition failure degrades to an uncaptured press; the
	// press logic proceeds anyway.
	if !b.PointerDown(1, false) {
		t.Fatal("expected uncaptured pointer-down to be accepted")
	}
	if c.presses != 1 {
		t.Errorf("expected 1 press callback, got %d", c.presses)
	}

	b.PointerUp(1)
	if c.releases != 1 {
		t.Errorf("expected 1 release callback, got %d", c.releases)
	}
}

func TestButton_Active(t *testing.T) {
	b, _ := newCounted("forward")

	if b.Active(false) {
		t.Error("expected inactive with no press and no external flag")
	}
	if !b.Active(true) {
		t.Error("expected active with external flag set")
	}

	b.PointerDown(1, true)
	if !b.Active(false) {
		t.Error("expected active while pressed")
	}
	if !b.Active(true) {
		t.Error("expected active while pressed and externally flagged")
	}
}

func TestButton_NilCallbacks(t *testing.T) {
	b := New("bare", nil, nil)

	// Must not panic without callbacks.
	b.PointerDown(1, true)
	b.PointerUp(1)
}
