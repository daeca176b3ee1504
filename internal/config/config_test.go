package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ayusman/mudra/internal/keys"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mudra.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Listen.Addr() != "127.0.0.1:8080" {
		t.Errorf("unexpected listen address %q", cfg.Listen.Addr())
	}
	if cfg.Kinematic.Threshold != 0.25 {
		t.Errorf("unexpected threshold %g", cfg.Kinematic.Threshold)
	}

	bindings, err := cfg.PadBindings()
	if err != nil {
		t.Fatalf("PadBindings() error = %v", err)
	}
	if len(bindings) != 10 {
		t.Errorf("expected 10 default pads, got %d", len(bindings))
	}
	if bindings["forward"] != keys.Forward {
		t.Errorf("expected forward pad bound to w, got %q", bindings["forward"])
	}
	if bindings["jump"] != keys.Jump {
		t.Errorf("expected jump pad bound to space, got %q", bindings["jump"])
	}
}

func TestLoad_MergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
listen:
  port: 9000
kinematic:
  threshold: 0.3
  left:
    origin_x: 0.9
    origin_y: 0.8
    radius: 0.2
    deadzone: 0.1
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Listen.Port != 9000 {
		t.Errorf("expected overridden port 9000, got %d", cfg.Listen.Port)
	}
	// The host stays at its default.
	if cfg.Listen.Host != "127.0.0.1" {
		t.Errorf("expected default host kept, got %q", cfg.Listen.Host)
	}
	if cfg.Kinematic.Threshold != 0.3 {
		t.Errorf("expected overridden threshold, got %g", cfg.Kinematic.Threshold)
	}
	if cfg.Kinematic.Left.Radius != 0.2 {
		t.Errorf("expected overridden left radius, got %g", cfg.Kinematic.Left.Radius)
	}
	// The right stick keeps its default layout.
	if cfg.Kinematic.Right.OriginX != 0.08 {
		t.Errorf("expected default right stick kept, got %g", cfg.Kinematic.Right.OriginX)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad threshold", "kinematic:\n  threshold: 1.5\n"},
		{"bad port", "listen:\n  port: -1\n"},
		{"zero radius", "kinematic:\n  left:\n    radius: 0\n"},
		{"bad deadzone", "kinematic:\n  right:\n    radius: 0.1\n    deadzone: 1.0\n"},
		{"unknown key", "pads:\n  - name: warp\n    key: q\n"},
		{"duplicate pad", "pads:\n  - name: a\n    key: w\n  - name: a\n    key: s\n"},
		{"empty pad name", "pads:\n  - name: \"\"\n    key: w\n"},
		{"not yaml", "{{{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			if _, err := Load(path); err == nil {
				t.Errorf("expected Load to reject %s", tt.name)
			}
		})
	}
}

func TestJoystickConfig_ToJoystick(t *testing.T) {
	j := JoystickConfig{OriginX: 0.1, OriginY: 0.2, Radius: 0.3, Deadzone: 0.4}

	got := j.ToJoystick()
	if got.OriginX != 0.1 || got.OriginY != 0.2 || got.Radius != 0.3 || got.Deadzone != 0.4 {
		t.Errorf("unexpected conversion %+v", got)
	}
}
