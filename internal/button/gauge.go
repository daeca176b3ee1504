package button

import "sync"

// Gauge level thresholds.
const (
	// FullThreshold is the power at or above which the gauge is full.
	FullThreshold = 1.0
	// DepletedThreshold is the power at or below which the gauge is
	// depleted.
	DepletedThreshold = 0.01
)

// Level is the discrete visual state of the terraform gauge.
type Level string

const (
	LevelNormal   Level = "normal"
	LevelFull     Level = "full"
	LevelDepleted Level = "depleted"
)

// LevelOf classifies a power value into a gauge level.
func LevelOf(power float64) Level {
	switch {
	case power >= FullThreshold:
		return LevelFull
	case power <= DepletedThreshold:
		return LevelDepleted
	default:
		return LevelNormal
	}
}

// Gauge mirrors the terraform power resource. The value is owned and
// mutated by the external terrain controller; this side only stores the
// latest report for rendering and level classification.
type Gauge struct {
	mu    sync.RWMutex
	power float64
}

// NewGauge creates a gauge at the given initial power.
func NewGauge(power float64) *Gauge {
	g := &Gauge{}
	g.Set(power)
	return g
}

// Set stores a reported power value, clamped to [0, 1].
func (g *Gauge) Set(power float64) {
	if power < 0 {
		power = 0
	}
	if power > 1 {
		power = 1
	}
	g.mu.Lock()
	g.power = power
	g.mu.Unlock()
}

// Power returns the last reported power value.
func (g *Gauge) Power() float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.power
}

// Level returns the discrete level for the last reported power.
func (g *Gauge) Level() Level {
	return LevelOf(g.Power())
}
