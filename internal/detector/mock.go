package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	hands []HandLandmarks
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// Finger geometry used by the synthetic hands below. Y grows downward, so
// smaller Y means higher in the frame.
const (
	fixtureWristY   = 0.80
	fixtureMCPY     = 0.68
	fixturePIPY     = 0.55
	fixtureTipUpY   = 0.35
	fixtureTipDownY = 0.72
	fixtureThumbIPX = 0.62
)

// HandWithFingers builds a synthetic right-hand reading with the given
// fingers extended, ordered thumb, index, middle, ring, pinky.
// Extended non-thumb fingers place the tip well above the PIP joint;
// the extended thumb places the tip left of the IP joint.
func HandWithFingers(fingers [5]bool) HandLandmarks {
	hand := HandLandmarks{
		Points:     make([]Point3D, NumLandmarks),
		Handedness: "Right",
		Score:      0.95,
	}

	hand.Points[Wrist] = Point3D{X: 0.50, Y: fixtureWristY}

	// Thumb chain extends sideways off the palm.
	hand.Points[ThumbCMC] = Point3D{X: 0.56, Y: 0.76}
	hand.Points[ThumbMCP] = Point3D{X: 0.60, Y: 0.70}
	hand.Points[ThumbIP] = Point3D{X: fixtureThumbIPX, Y: 0.66}
	if fingers[0] {
		hand.Points[ThumbTip] = Point3D{X: fixtureThumbIPX - 0.10, Y: 0.64}
	} else {
		hand.Points[ThumbTip] = Point3D{X: fixtureThumbIPX + 0.06, Y: 0.70}
	}

	// Non-thumb fingers share the same vertical chain shape, offset in X.
	bases := [4]float64{0.55, 0.50, 0.45, 0.40}
	mcps := [4]int{IndexMCP, MiddleMCP, RingMCP, PinkyMCP}
	for f := 0; f < 4; f++ {
		x := bases[f]
		mcp, pip, dip, tip := mcps[f], mcps[f]+1, mcps[f]+2, mcps[f]+3
		hand.Points[mcp] = Point3D{X: x, Y: fixtureMCPY}
		hand.Points[pip] = Point3D{X: x, Y: fixturePIPY}
		if fingers[f+1] {
			hand.Points[dip] = Point3D{X: x, Y: 0.45}
			hand.Points[tip] = Point3D{X: x, Y: fixtureTipUpY}
		} else {
			hand.Points[dip] = Point3D{X: x, Y: 0.65}
			hand.Points[tip] = Point3D{X: x, Y: fixtureTipDownY}
		}
	}

	return hand
}

// HandWithCount builds a synthetic hand showing the given finger count,
// raising fingers in the natural counting order: index first, thumb last.
func HandWithCount(count int) HandLandmarks {
	var fingers [5]bool
	order := [5]int{1, 2, 3, 4, 0} // index, middle, ring, pinky, thumb
	for i := 0; i < count && i < 5; i++ {
		fingers[order[i]] = true
	}
	return HandWithFingers(fingers)
}

// OpenPalmLandmarks returns a hand with all five fingers extended.
func OpenPalmLandmarks() HandLandmarks {
	return HandWithFingers([5]bool{true, true, true, true, true})
}

// FistLandmarks returns a hand with no fingers extended.
func FistLandmarks() HandLandmarks {
	return HandWithFingers([5]bool{})
}

// MalformedLandmarks returns a hand with an incomplete point set,
// as produced by a partial detection.
func MalformedLandmarks() HandLandmarks {
	hand := HandWithCount(2)
	hand.Points = hand.Points[:NumLandmarks-2]
	return hand
}
