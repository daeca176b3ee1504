// Package tray provides the system tray interface for the mudra input
// daemon.
package tray

import (
	"sync"

	"github.com/getlantern/systray"
)

// Tray represents the system tray application.
type Tray struct {
	onToggle   func(enabled bool)
	onSettings func()
	onQuit     func()
	enabled    bool
	mu         sync.RWMutex

	// Menu items stored for later updates
	menuToggle *systray.MenuItem
	menuStatus *systray.MenuItem
}

// New creates a new Tray with kinematic control off by default.
func New() *Tray {
	return &Tray{}
}

// OnToggle sets the callback invoked when kinematic control is toggled.
func (t *Tray) OnToggle(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnSettings sets the callback invoked when the settings item is clicked.
func (t *Tray) OnSettings(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onSettings = fn
}

// OnQuit sets the callback invoked when the quit item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// SetStatus updates the status line, typically the last pipeline error.
func (t *Tray) SetStatus(status string) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.menuStatus != nil {
		t.menuStatus.SetTitle(status)
	}
}

// Run starts the system tray application.
// This function blocks until systray.Quit() is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// onReady sets up the menu structure.
func (t *Tray) onReady() {
	systray.SetTitle("Mudra")
	systray.SetTooltip("Mudra Gesture Input")

	t.menuToggle = systray.AddMenuItem("○ Kinematic control off", "Toggle kinematic control")
	systray.AddSeparator()

	t.menuStatus = systray.AddMenuItem("Status: ok", "Pipeline status")
	t.menuStatus.Disable()
	systray.AddSeparator()

	menuSettings := systray.AddMenuItem("Open Settings...", "Open settings in browser")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit Mudra")

	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.handleToggle()
			case <-menuSettings.ClickedCh:
				t.handleSettings()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

func (t *Tray) onExit() {}

func (t *Tray) handleToggle() {
	t.mu.Lock()
	t.enabled = !t.enabled
	enabled := t.enabled
	onToggle := t.onToggle
	t.mu.Unlock()

	if enabled {
		t.menuToggle.SetTitle("● Kinematic control on")
	} else {
		t.menuToggle.SetTitle("○ Kinematic control off")
	}

	if onToggle != nil {
		onToggle(enabled)
	}
}

func (t *Tray) handleSettings() {
	t.mu.RLock()
	onSettings := t.onSettings
	t.mu.RUnlock()

	if onSettings != nil {
		onSettings()
	}
}

func (t *Tray) handleQuit() {
	t.mu.RLock()
	onQuit := t.onQuit
	t.mu.RUnlock()

	if onQuit != nil {
		onQuit()
	}
	systray.Quit()
}
