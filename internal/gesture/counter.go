// Package gesture derives a finger count from one hand's landmarks.
package gesture

import (
	"errors"

	"github.com/ayusman/mudra/internal/detector"
)

// ErrInvalidLandmarks is returned when a hand does not carry the full
// 21-point topology. Callers skip the frame.
var ErrInvalidLandmarks = errors.New("hand does not have 21 landmarks")

// DefaultTolerance is the normalized-coordinate margin a tip must clear
// past its joint before the finger counts as extended. Filters out jitter
// from near-flat hands.
const DefaultTolerance = 0.02

// Fingers records which digits are extended, ordered thumb, index,
// middle, ring, pinky.
type Fingers [5]bool

// Count returns the number of extended digits.
func (f Fingers) Count() int {
	n := 0
	for _, up := range f {
		if up {
			n++
		}
	}
	return n
}

// fingerTips holds the tip landmark index per digit, thumb first.
var fingerTips = [5]int{
	detector.ThumbTip,
	detector.IndexTip,
	detector.MiddleTip,
	detector.RingTip,
	detector.PinkyTip,
}

// Counter classifies a hand into an extended-finger count.
// The zero value uses DefaultTolerance.
type Counter struct {
	// Tolerance overrides DefaultTolerance when positive.
	Tolerance float64
}

// NewCounter returns a Counter with the default tolerance.
func NewCounter() *Counter {
	return &Counter{Tolerance: DefaultTolerance}
}

// Count classifies the hand and returns the extended-finger count in
// [0,5] together with the per-digit pattern. The classification is a
// pure function of the landmarks: identical input yields identical
// output.
//
// Non-thumb fingers count as extended when the tip sits above the PIP
// joint (smaller Y, image coordinates). The thumb extends sideways, so
// it is compared on X against its IP joint; the direction depends on
// handedness, and an unknown handedness is treated as "Right". With a
// fixed camera a mirrored hand can therefore misclassify the thumb,
// a known limitation of the landmark geometry that is not corrected here.
func (c *Counter) Count(hand *detector.HandLandmarks) (int, Fingers, error) {
	var fingers Fingers

	if !hand.Complete() {
		return 0, fingers, ErrInvalidLandmarks
	}

	tol := c.Tolerance
	if tol <= 0 {
		tol = DefaultTolerance
	}

	// Thumb: tip vs IP joint on the X axis.
	tipX := hand.Points[detector.ThumbTip].X
	ipX := hand.Points[detector.ThumbIP].X
	if hand.Handedness == "Left" {
		fingers[0] = tipX > ipX+tol
	} else {
		fingers[0] = tipX < ipX-tol
	}

	// Remaining fingers: tip vs PIP joint on the Y axis.
	for i := 1; i < 5; i++ {
		tipY := hand.Points[fingerTips[i]].Y
		pipY := hand.Points[fingerTips[i]-2].Y
		fingers[i] = tipY < pipY-tol
	}

	return fingers.Count(), fingers, nil
}
