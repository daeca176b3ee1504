package hud

import (
	"image"
	"testing"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/joystick"
)

var testCfg = joystick.Config{OriginX: 0.92, OriginY: 0.88, Radius: 0.12, Deadzone: 0.15}

func TestOriginPoint(t *testing.T) {
	got := OriginPoint(testCfg, 640, 480)
	want := image.Point{X: 588, Y: 422}

	if got != want {
		t.Errorf("OriginPoint() = %v, want %v", got, want)
	}
}

func TestRadiusPx(t *testing.T) {
	// The radius is in x-units, so only the width scales it.
	if got := RadiusPx(testCfg, 640); got != 76 {
		t.Errorf("RadiusPx() = %d, want 76", got)
	}
}

func TestStickPoint(t *testing.T) {
	origin := OriginPoint(testCfg, 640, 480)

	// At rest the marker sits on the origin.
	if got := StickPoint(testCfg, joystick.Signal{}, 640, 480); got != origin {
		t.Errorf("rest StickPoint() = %v, want %v", got, origin)
	}

	// A positive (leftward-for-the-operator) X signal maps back to a
	// raw rightward pixel offset, mirroring the normalizer's inversion.
	got := StickPoint(testCfg, joystick.Signal{X: 1}, 640, 480)
	if got.X <= origin.X {
		t.Errorf("expected marker right of origin, got %v", got)
	}
	if got.Y != origin.Y {
		t.Errorf("expected no vertical offset, got %v", got)
	}

	// Positive Y is downward in both spaces.
	got = StickPoint(testCfg, joystick.Signal{Y: 1}, 640, 480)
	if got.Y <= origin.Y {
		t.Errorf("expected marker below origin, got %v", got)
	}
}

func TestDraw(t *testing.T) {
	mat := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer mat.Close()

	Draw(&mat, testCfg, joystick.Signal{X: 0.5, Y: -0.5})

	// The overlay must have painted something onto the black frame.
	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)
	if gocv.CountNonZero(gray) == 0 {
		t.Error("expected HUD pixels drawn onto the frame")
	}

	// A nil or empty frame is a no-op rather than a panic.
	Draw(nil, testCfg, joystick.Signal{})
	empty := gocv.NewMat()
	defer empty.Close()
	Draw(&empty, testCfg, joystick.Signal{})
}
