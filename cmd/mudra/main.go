package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tray"
)

func main() {
	fmt.Println("Mudra - Finger Count Gesture Launcher")

	cfg, err := config.LoadDefault()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var st *store.Store
	if cfg.HistoryEnabled() {
		if st, err = openHistory(); err != nil {
			log.Printf("Trigger history disabled: %v", err)
			st = nil
		}
	}

	a := app.New(cfg, st)

	tr := tray.New()
	tr.OnToggle(a.SetEnabled)
	a.OnCount(tr.SetLastCount)
	a.OnQuit(tr.Quit)

	if err := a.Start(); err != nil {
		log.Fatalf("Failed to start pipeline: %v", err)
	}

	// An unrecoverable capture failure shuts the app down with a
	// non-zero exit; a quit from the tray, window or an interrupt
	// signal exits cleanly.
	fatal := make(chan error, 1)
	go func() {
		if err := <-a.Done(); err != nil {
			fatal <- err
			tr.Quit()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		tr.Quit()
	}()

	tr.Run()

	a.Stop()
	if st != nil {
		st.Close()
	}

	select {
	case err := <-fatal:
		log.Printf("Capture failed: %v", err)
		os.Exit(1)
	default:
	}
}

// openHistory opens the trigger history database under ~/.mudra.
func openHistory() (*store.Store, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("get home directory: %w", err)
	}

	dbDir := filepath.Join(homeDir, ".mudra")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	return store.New(filepath.Join(dbDir, "mudra.db"))
}
