// Package app wires capture, detection, classification and dispatch
// into the frame-processing pipeline.
package app

import (
	"log"
	"sync"

	"github.com/ayusman/mudra/internal/action"
	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/store"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate while no motion is detected.
	IdleFPS = 5
	// ActiveFPS is the frame rate during active detection.
	ActiveFPS = 15
	// IdleTimeoutMs is how long after the last motion the pipeline
	// falls back to idle mode.
	IdleTimeoutMs = 2000
	// maxReadFailures is how many consecutive frame-read errors count
	// as an unrecoverable capture failure.
	maxReadFailures = 30
)

// App runs the gesture launcher pipeline.
type App struct {
	cfg        *config.Config
	camera     capture.Camera
	motion     *capture.MotionDetector
	detector   detector.Detector
	counter    *gesture.Counter
	dispatcher *action.Dispatcher
	store      *store.Store

	enabled bool
	mu      sync.RWMutex
	stopCh  chan struct{}
	done    chan error

	onCount func(int)
	onQuit  func()
}

// New creates an App from the configuration. The store may be nil, in
// which case no history is recorded.
func New(cfg *config.Config, st *store.Store) *App {
	a := &App{
		cfg:        cfg,
		camera:     capture.NewCamera(cfg.CameraID, cfg.MirrorEnabled()),
		motion:     capture.NewMotionDetector(cfg.MotionThreshold),
		counter:    &gesture.Counter{Tolerance: cfg.Tolerance},
		dispatcher: action.NewDispatcher(cfg.Table(), action.NewExecLauncher()),
		store:      st,
		enabled:    true,
	}

	// Try MediaPipe first, fall back to the mock detector so the app
	// still runs (without detections) when the service is missing.
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a
}

// SetEnabled enables or disables gesture detection.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether gesture detection is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector replaces the hand detector implementation.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// SetCamera replaces the camera implementation.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// SetDispatcher replaces the action dispatcher.
func (a *App) SetDispatcher(d *action.Dispatcher) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.dispatcher = d
}

// OnCount registers a callback invoked with each stable finger count.
func (a *App) OnCount(fn func(int)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onCount = fn
}

// OnQuit registers a callback invoked when the user quits from the
// preview window.
func (a *App) OnQuit(fn func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onQuit = fn
}

// Start opens the camera and begins the pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}

	a.camera.SetFPS(IdleFPS)

	a.stopCh = make(chan struct{})
	a.done = make(chan error, 1)
	go a.runPipeline()

	log.Println("Detection pipeline started")
	return nil
}

// Stop halts the pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.motion.Close()

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Detection pipeline stopped")
}

// Done reports pipeline termination. A non-nil error signals an
// unrecoverable capture failure.
func (a *App) Done() <-chan error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.done
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.camera
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}
