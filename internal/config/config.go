// Package config loads the daemon configuration from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ayusman/mudra/internal/joystick"
	"github.com/ayusman/mudra/internal/keys"
)

type Config struct {
	Listen    ListenConfig    `yaml:"listen"`
	Camera    CameraConfig    `yaml:"camera"`
	Kinematic KinematicConfig `yaml:"kinematic"`
	Pads      []PadConfig     `yaml:"pads"`
}

type ListenConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Addr returns the host:port listen address.
func (l ListenConfig) Addr() string {
	return fmt.Sprintf("%s:%d", l.Host, l.Port)
}

type CameraConfig struct {
	ID int `yaml:"id"`
}

type JoystickConfig struct {
	OriginX  float64 `yaml:"origin_x"`
	OriginY  float64 `yaml:"origin_y"`
	Radius   float64 `yaml:"radius"`
	Deadzone float64 `yaml:"deadzone"`
}

// ToJoystick converts the YAML shape into the pipeline config.
func (j JoystickConfig) ToJoystick() joystick.Config {
	return joystick.Config{
		OriginX:  j.OriginX,
		OriginY:  j.OriginY,
		Radius:   j.Radius,
		Deadzone: j.Deadzone,
	}
}

type KinematicConfig struct {
	Threshold         float64        `yaml:"threshold"`
	ActiveFPS         int            `yaml:"active_fps"`
	IdleFPS           int            `yaml:"idle_fps"`
	ActivityThreshold float64        `yaml:"activity_threshold"`
	Left              JoystickConfig `yaml:"left"`
	Right             JoystickConfig `yaml:"right"`
}

type PadConfig struct {
	Name string `yaml:"name"`
	Key  string `yaml:"key"`
}

// Default returns the configuration used when no file is given.
// Joystick layouts are in normalized video coordinates; the left stick
// sits at the raw bottom-right because the operator view is mirrored.
func Default() *Config {
	return &Config{
		Listen: ListenConfig{Host: "127.0.0.1", Port: 8080},
		Camera: CameraConfig{ID: 0},
		Kinematic: KinematicConfig{
			Threshold:         0.25,
			ActiveFPS:         30,
			IdleFPS:           5,
			ActivityThreshold: 0.01,
			Left:              JoystickConfig{OriginX: 0.92, OriginY: 0.88, Radius: 0.12, Deadzone: 0.15},
			Right:             JoystickConfig{OriginX: 0.08, OriginY: 0.88, Radius: 0.12, Deadzone: 0.15},
		},
		Pads: []PadConfig{
			{Name: "forward", Key: "w"},
			{Name: "backward", Key: "s"},
			{Name: "left", Key: "a"},
			{Name: "right", Key: "d"},
			{Name: "look-up", Key: "arrowup"},
			{Name: "look-down", Key: "arrowdown"},
			{Name: "look-left", Key: "arrowleft"},
			{Name: "look-right", Key: "arrowright"},
			{Name: "jump", Key: " "},
			{Name: "sprint", Key: "shift"},
		},
	}
}

// Load reads and validates the configuration at path.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and the pad key bindings.
func (c *Config) Validate() error {
	if c.Listen.Port <= 0 || c.Listen.Port > 65535 {
		return fmt.Errorf("invalid listen port %d", c.Listen.Port)
	}
	if c.Kinematic.Threshold <= 0 || c.Kinematic.Threshold >= 1 {
		return fmt.Errorf("kinematic threshold must be in (0, 1), got %g", c.Kinematic.Threshold)
	}
	for _, j := range []JoystickConfig{c.Kinematic.Left, c.Kinematic.Right} {
		if j.Radius <= 0 {
			return fmt.Errorf("joystick radius must be positive, got %g", j.Radius)
		}
		if j.Deadzone < 0 || j.Deadzone >= 1 {
			return fmt.Errorf("joystick deadzone must be in [0, 1), got %g", j.Deadzone)
		}
	}
	if _, err := c.PadBindings(); err != nil {
		return err
	}
	return nil
}

// PadBindings converts the pad list into a name-to-key map.
func (c *Config) PadBindings() (map[string]keys.Key, error) {
	bindings := make(map[string]keys.Key, len(c.Pads))
	for _, p := range c.Pads {
		if p.Name == "" {
			return nil, fmt.Errorf("pad with empty name")
		}
		if _, ok := bindings[p.Name]; ok {
			return nil, fmt.Errorf("duplicate pad %q", p.Name)
		}
		k, err := keys.Parse(p.Key)
		if err != nil {
			return nil, fmt.Errorf("pad %q: %w", p.Name, err)
		}
		bindings[p.Name] = k
	}
	return bindings, nil
}
