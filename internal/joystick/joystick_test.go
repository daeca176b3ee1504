package joystick

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func defaultConfig() Config {
	return Config{OriginX: 0.92, OriginY: 0.88, Radius: 0.12, Deadzone: 0.15}
}

func TestNormalize_InsideDeadzone(t *testing.T) {
	cfg := defaultConfig()

	// Landmark at the deadzone boundary is inactive. The offset is
	// computed by subtraction so the distance lands on deadzone*radius
	// exactly, without picking up float rounding from OriginX+inner.
	inner := cfg.Deadzone * cfg.Radius
	lmX := cfg.OriginX + inner
	for lmX-cfg.OriginX > inner {
		lmX = math.Nextafter(lmX, 0)
	}
	sig, active := Normalize(lmX, cfg.OriginY, 1.0, cfg)

	if active {
		t.Error("expected stick inactive at the deadzone boundary")
	}
	if !sig.Zero() {
		t.Errorf("expected zero signal, got (%f, %f)", sig.X, sig.Y)
	}

	// A hair inside the boundary is inactive as well.
	sig, active = Normalize(cfg.OriginX+inner*0.99, cfg.OriginY, 1.0, cfg)
	if active || !sig.Zero() {
		t.Errorf("expected inactive inside the deadzone, got active=%v (%f, %f)", active, sig.X, sig.Y)
	}
}

func TestNormalize_AtOrigin(t *testing.T) {
	cfg := defaultConfig()

	sig, active := Normalize(cfg.OriginX, cfg.OriginY, 1.0, cfg)

	if active {
		t.Error("expected stick inactive at the origin")
	}
	if !sig.Zero() {
		t.Errorf("expected zero signal, got (%f, %f)", sig.X, sig.Y)
	}
}

func TestNormalize_FullDeflection(t *testing.T) {
	cfg := defaultConfig()

	// A landmark at the capture radius yields magnitude 1.
	sig, active := Normalize(cfg.OriginX+cfg.Radius, cfg.OriginY, 1.0, cfg)

	if !active {
		t.Fatal("expected stick active at the capture radius")
	}

	mag := math.Sqrt(sig.X*sig.X + sig.Y*sig.Y)
	if math.Abs(mag-1.0) > epsilon {
		t.Errorf("expected magnitude 1, got %f", mag)
	}
}

func TestNormalize_ClampsBeyondRadius(t *testing.T) {
	cfg := defaultConfig()

	// Well beyond the capture radius the deflection stays clamped.
	sig, active := Normalize(cfg.OriginX, cfg.OriginY+10, 1.0, cfg)

	if !active {
		t.Fatal("expected stick active beyond the capture radius")
	}

	mag := math.Sqrt(sig.X*sig.X + sig.Y*sig.Y)
	if math.Abs(mag-1.0) > epsilon {
		t.Errorf("expected clamped magnitude 1, got %f", mag)
	}
}

func TestNormalize_XAxisInversion(t *testing.T) {
	cfg := defaultConfig()

	// A raw rightward offset must produce a leftward signal because
	// the operator view is mirrored: dx=0.05, dy=0, dist=0.05,
	// inner=0.018, factor=(0.05-0.018)/0.102.
	sig, active := Normalize(0.97, 0.88, 1.0, cfg)

	if !active {
		t.Fatal("expected stick active")
	}
	if sig.X >= 0 {
		t.Errorf("expected negative X for raw rightward offset, got %f", sig.X)
	}

	wantX := -(0.05 - 0.018) / 0.102
	if math.Abs(sig.X-wantX) > 1e-6 {
		t.Errorf("expected X = %f, got %f", wantX, sig.X)
	}
	if math.Abs(sig.Y) > epsilon {
		t.Errorf("expected Y = 0, got %f", sig.Y)
	}
}

func TestNormalize_AspectCorrection(t *testing.T) {
	cfg := Config{OriginX: 0.5, OriginY: 0.5, Radius: 0.2, Deadzone: 0}
	aspect := 640.0 / 480.0

	// The same raw vertical offset deflects less with aspect
	// correction than without, since dy shrinks by the aspect ratio.
	plain, _ := Normalize(0.5, 0.6, 1.0, cfg)
	corrected, _ := Normalize(0.5, 0.6, aspect, cfg)

	if corrected.Y >= plain.Y {
		t.Errorf("expected aspect-corrected Y (%f) below uncorrected Y (%f)", corrected.Y, plain.Y)
	}

	wantY := (0.1 / aspect) / cfg.Radius
	if math.Abs(corrected.Y-wantY) > 1e-6 {
		t.Errorf("expected Y = %f, got %f", wantY, corrected.Y)
	}
}

func TestNormalize_DeadzoneContinuity(t *testing.T) {
	cfg := defaultConfig()
	inner := cfg.Deadzone * cfg.Radius

	// Just outside the deadzone the deflection starts near zero, so
	// there is no jump at the boundary.
	sig, active := Normalize(cfg.OriginX+inner+1e-6, cfg.OriginY, 1.0, cfg)

	if !active {
		t.Fatal("expected stick active just outside the deadzone")
	}

	mag := math.Sqrt(sig.X*sig.X + sig.Y*sig.Y)
	if mag > 1e-3 {
		t.Errorf("expected near-zero deflection at the deadzone boundary, got %f", mag)
	}
}

func TestNormalize_DownwardIsPositiveY(t *testing.T) {
	cfg := Config{OriginX: 0.5, OriginY: 0.5, Radius: 0.2, Deadzone: 0.1}

	sig, active := Normalize(0.5, 0.65, 1.0, cfg)

	if !active {
		t.Fatal("expected stick active")
	}
	if sig.Y <= 0 {
		t.Errorf("expected positive Y for downward offset, got %f", sig.Y)
	}
}
