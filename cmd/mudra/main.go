package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/session"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tray"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	withTray := flag.Bool("tray", false, "run with a system tray toggle")
	flag.Parse()

	fmt.Println("Mudra - Gesture Input Daemon")

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}

	// Initialize the store
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dataDir := filepath.Join(homeDir, ".mudra")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dataDir, "mudra.db")
	st, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	left := cfg.Kinematic.Left.ToJoystick()
	right := cfg.Kinematic.Right.ToJoystick()
	threshold := cfg.Kinematic.Threshold

	// A stored active profile overrides the file layout
	if name, err := st.Settings().Get(store.SettingActiveProfile); err == nil {
		if p, err := st.Profiles().GetByName(name); err == nil {
			left = p.Left
			right = p.Right
			threshold = p.Threshold
			log.Printf("Loaded profile %q", p.Name)
		} else {
			log.Printf("Active profile %q not found, using config layout", name)
		}
	}

	bindings, err := cfg.PadBindings()
	if err != nil {
		log.Fatalf("Invalid pad bindings: %v", err)
	}

	// Try MediaPipe first, fall back to mock detector
	var det detector.Detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		det = mp
		log.Println("Using MediaPipe pose detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		det = detector.NewMockDetector()
	}

	sess := session.New(session.Config{
		Camera:            capture.NewCamera(cfg.Camera.ID),
		Detector:          det,
		Left:              left,
		Right:             right,
		Threshold:         threshold,
		Pads:              bindings,
		ActiveFPS:         cfg.Kinematic.ActiveFPS,
		IdleFPS:           cfg.Kinematic.IdleFPS,
		ActivityThreshold: cfg.Kinematic.ActivityThreshold,
	})
	defer sess.Close()

	srv := server.New(server.Config{
		Store:   st,
		Session: sess,
	})

	addr := cfg.Listen.Addr()

	if !*withTray {
		fmt.Printf("Starting server on %s\n", addr)
		if err := srv.ListenAndServe(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
		return
	}

	go func() {
		fmt.Printf("Starting server on %s\n", addr)
		if err := srv.ListenAndServe(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	tr := tray.New()
	tr.OnToggle(func(enabled bool) {
		sess.SetKinematicEnabled(enabled)
		if msg := sess.LastError(); msg != "" {
			tr.SetStatus("Status: " + msg)
		} else {
			tr.SetStatus("Status: ok")
		}
	})
	tr.OnSettings(func() {
		openBrowser("http://" + addr)
	})
	tr.OnQuit(func() {
		sess.Close()
	})
	tr.Run()
}

// openBrowser opens the given URL in the default browser, best effort.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch {
	case commandExists("open"):
		cmd = exec.Command("open", url)
	case commandExists("xdg-open"):
		cmd = exec.Command("xdg-open", url)
	default:
		log.Printf("Settings available at %s", url)
		return
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}

func commandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
