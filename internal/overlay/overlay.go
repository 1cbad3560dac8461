// Package overlay renders the live status HUD onto captured frames.
package overlay

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
)

// Quit key codes accepted by the HUD window.
const (
	keyEsc  = 27
	keyQuit = 'q'
)

// barHeight is the height of the top status bar in pixels.
const barHeight = 30

// Status is what the HUD shows for the current frame.
type Status struct {
	HandVisible bool
	Count       int
	Fingers     gesture.Fingers
	Handedness  string
	Cooldown    time.Duration
}

// Label formats the top-bar text for the status.
func (s Status) Label() string {
	if !s.HandVisible {
		return "No hand"
	}
	return fmt.Sprintf("Fingers: %d  pattern: %s  hand: %s", s.Count, patternString(s.Fingers), s.Handedness)
}

// CooldownLabel formats the remaining cooldown for the top bar.
func (s Status) CooldownLabel() string {
	remaining := s.Cooldown
	if remaining < 0 {
		remaining = 0
	}
	return fmt.Sprintf("Cooldown: %.1fs", remaining.Seconds())
}

// patternString renders the per-digit pattern as a fixed five-character
// string, thumb first: "01100" for index and middle raised.
func patternString(f gesture.Fingers) string {
	b := make([]byte, len(f))
	for i, up := range f {
		if up {
			b[i] = '1'
		} else {
			b[i] = '0'
		}
	}
	return string(b)
}

// IsQuitKey reports whether the pressed key closes the application.
func IsQuitKey(key int) bool {
	return key == keyQuit || key == keyEsc
}

// HUD owns the preview window.
type HUD struct {
	window *gocv.Window
}

// NewHUD opens the preview window.
func NewHUD(title string) *HUD {
	return &HUD{window: gocv.NewWindow(title)}
}

// Show draws the status onto the frame, displays it and returns the
// pressed key, -1 when none.
func (h *HUD) Show(frame *gocv.Mat, status Status) int {
	drawStatusBar(frame, status)
	h.window.IMShow(*frame)
	return h.window.WaitKey(1)
}

// Close destroys the window.
func (h *HUD) Close() error {
	return h.window.Close()
}

var (
	barColor   = color.RGBA{0, 0, 0, 0}
	textColor  = color.RGBA{255, 255, 255, 0}
	dimColor   = color.RGBA{200, 200, 200, 0}
	pointColor = color.RGBA{0, 255, 0, 0}
)

// drawStatusBar paints the top bar with the live count and cooldown.
func drawStatusBar(frame *gocv.Mat, status Status) {
	width := frame.Cols()

	gocv.Rectangle(frame, image.Rect(0, 0, width, barHeight), barColor, -1)
	gocv.PutText(frame, status.Label(), image.Point{X: 8, Y: 20},
		gocv.FontHersheySimplex, 0.6, textColor, 2)
	gocv.PutText(frame, status.CooldownLabel(), image.Point{X: width - 200, Y: 20},
		gocv.FontHersheySimplex, 0.5, dimColor, 1)
}

// DrawLandmarks marks each landmark of the hand on the frame.
// Landmark coordinates are normalized, so they are scaled to the frame
// size.
func DrawLandmarks(frame *gocv.Mat, hand *detector.HandLandmarks) {
	if hand == nil {
		return
	}

	width := float64(frame.Cols())
	height := float64(frame.Rows())

	for _, p := range hand.Points {
		center := image.Point{X: int(p.X * width), Y: int(p.Y * height)}
		gocv.Circle(frame, center, 3, pointColor, -1)
	}
}
