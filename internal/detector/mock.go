package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	hands []HandLandmarks
	err   error
	calls int
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

// Calls returns how many times Detect has been called.
func (m *MockDetector) Calls() int {
	return m.calls
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return Limit(m.hands), nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// Synthetic hand layout, in normalized frame units relative to the wrist.
// Fingers spread along +X (index) to -X (pinky) when facing is +1.
const (
	mcpRise       = 0.14
	extendedPIP   = 0.12
	extendedDIP   = 0.20
	extendedTip   = 0.27
	foldedPIP     = 0.06
	foldedDIP     = 0.02
	foldedTipDrop = 0.02
)

var fingerOffsets = [4]float64{0.05, 0.0, -0.05, -0.10}

// BuildHand lays out a synthetic upright hand with its wrist at (wx, wy).
// extended selects which of index, middle, ring and pinky point up; the
// rest are curled with their tips below their PIP joints. facing flips the
// finger spread horizontally (+1 or -1). The thumb rests beside the index
// MCP; callers adjust it for poses that need it elsewhere.
func BuildHand(side Side, wx, wy, facing float64, extended [4]bool) HandLandmarks {
	h := HandLandmarks{Handedness: side, Score: 0.95}
	h.Points[Wrist] = Point3D{X: wx, Y: wy}

	h.Points[ThumbCMC] = Point3D{X: wx + 0.05*facing, Y: wy - 0.03}
	h.Points[ThumbMCP] = Point3D{X: wx + 0.09*facing, Y: wy - 0.07}
	h.Points[ThumbIP] = Point3D{X: wx + 0.12*facing, Y: wy - 0.10}
	h.Points[ThumbTip] = Point3D{X: wx + 0.14*facing, Y: wy - 0.13}

	mcps := [4]int{IndexMCP, MiddleMCP, RingMCP, PinkyMCP}
	for i, f := range Fingers {
		x := wx + fingerOffsets[i]*facing
		mcpY := wy - mcpRise
		h.Points[mcps[i]] = Point3D{X: x, Y: mcpY}

		dip := f.Tip - 1
		if extended[i] {
			h.Points[f.PIP] = Point3D{X: x, Y: mcpY - extendedPIP}
			h.Points[dip] = Point3D{X: x, Y: mcpY - extendedDIP}
			h.Points[f.Tip] = Point3D{X: x, Y: mcpY - extendedTip}
		} else {
			h.Points[f.PIP] = Point3D{X: x, Y: mcpY - foldedPIP}
			h.Points[dip] = Point3D{X: x, Y: mcpY - foldedDIP}
			h.Points[f.Tip] = Point3D{X: x, Y: mcpY + foldedTipDrop}
		}
	}

	return h
}

// OpenPalmAt returns an open palm with its wrist at (wx, wy).
func OpenPalmAt(side Side, wx, wy float64) HandLandmarks {
	return BuildHand(side, wx, wy, 1, [4]bool{true, true, true, true})
}

// FistAt returns a front fist with its wrist at (wx, wy) and the thumb
// wrapped across the curled fingers.
func FistAt(side Side, wx, wy float64) HandLandmarks {
	h := BuildHand(side, wx, wy, 1, [4]bool{})
	h.Points[ThumbIP] = Point3D{X: wx + 0.02, Y: wy - 0.09}
	h.Points[ThumbTip] = Point3D{X: wx - 0.02, Y: wy - 0.08}
	return h
}

// OpenPalmLandmarks returns a preset open palm: all fingers extended.
func OpenPalmLandmarks() HandLandmarks {
	return OpenPalmAt(SideRight, 0.5, 0.8)
}

// FistLandmarks returns a preset front fist.
func FistLandmarks() HandLandmarks {
	return FistAt(SideRight, 0.5, 0.8)
}

// OKSignLandmarks returns a preset OK sign: thumb and index tips touching,
// the other three fingers extended.
func OKSignLandmarks() HandLandmarks {
	h := BuildHand(SideRight, 0.5, 0.8, 1, [4]bool{false, true, true, true})
	h.Points[ThumbTip] = h.Points[IndexTip]
	return h
}

// IndexUpLandmarks returns a preset pointing hand: index extended, the
// other fingers curled.
func IndexUpLandmarks() HandLandmarks {
	return IndexUpAt(0.5, 0.8)
}

// IndexUpAt returns a pointing hand with its wrist at (wx, wy).
func IndexUpAt(wx, wy float64) HandLandmarks {
	return BuildHand(SideRight, wx, wy, 1, [4]bool{true, false, false, false})
}

// HeartLandmarks returns two hands forming a heart at the frame center:
// middle, ring and pinky curled, each index tip meeting the other hand's
// thumb tip just above it.
func HeartLandmarks() []HandLandmarks {
	left := BuildHand(SideLeft, 0.40, 0.70, 1, [4]bool{})
	left.Points[IndexPIP] = Point3D{X: 0.47, Y: 0.50}
	left.Points[IndexDIP] = Point3D{X: 0.48, Y: 0.47}
	left.Points[IndexTip] = Point3D{X: 0.49, Y: 0.45}
	left.Points[ThumbTip] = Point3D{X: 0.49, Y: 0.55}

	right := BuildHand(SideRight, 0.60, 0.70, -1, [4]bool{})
	right.Points[IndexPIP] = Point3D{X: 0.53, Y: 0.50}
	right.Points[IndexDIP] = Point3D{X: 0.52, Y: 0.47}
	right.Points[IndexTip] = Point3D{X: 0.51, Y: 0.45}
	right.Points[ThumbTip] = Point3D{X: 0.51, Y: 0.55}

	return []HandLandmarks{left, right}
}
