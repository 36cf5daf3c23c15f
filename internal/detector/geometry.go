package detector

import "math"

// MinHandScale is the floor applied to Scale so that thresholds derived
// from it are always positive.
const MinHandScale = 1e-4

// Distance2D returns the Euclidean distance between a and b in the image plane.
func Distance2D(a, b Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Scale returns the hand-size unit used to normalize every threshold:
// the distance between the index and pinky fingertips, floored at
// MinHandScale.
func (h *HandLandmarks) Scale() float64 {
	return math.Max(Distance2D(h.Points[IndexTip], h.Points[PinkyTip]), MinHandScale)
}

// Extended reports whether the finger whose tip and pip are given points up
// in image space: tip.y < pip.y - scale*margin.
func (h *HandLandmarks) Extended(tip, pip int, scale, margin float64) bool {
	return h.Points[tip].Y < h.Points[pip].Y-scale*margin
}

// Folded reports whether the finger is curled down: tip.y > pip.y + scale*margin.
func (h *HandLandmarks) Folded(tip, pip int, scale, margin float64) bool {
	return h.Points[tip].Y > h.Points[pip].Y+scale*margin
}

// Pixel converts landmark idx into frame pixel coordinates.
func (h *HandLandmarks) Pixel(idx, width, height int) (float64, float64) {
	p := h.Points[idx]
	return p.X * float64(width), p.Y * float64(height)
}

// Finger pairs a fingertip with its PIP joint.
type Finger struct {
	Tip int
	PIP int
}

// Non-thumb fingers, index first.
var (
	IndexFinger  = Finger{Tip: IndexTip, PIP: IndexPIP}
	MiddleFinger = Finger{Tip: MiddleTip, PIP: MiddlePIP}
	RingFinger   = Finger{Tip: RingTip, PIP: RingPIP}
	PinkyFinger  = Finger{Tip: PinkyTip, PIP: PinkyPIP}

	// Fingers lists the four non-thumb fingers.
	Fingers = [4]Finger{IndexFinger, MiddleFinger, RingFinger, PinkyFinger}
	// OtherFingers lists middle, ring and pinky.
	OtherFingers = [3]Finger{MiddleFinger, RingFinger, PinkyFinger}
)

// CountFolded returns how many of fingers are folded.
func (h *HandLandmarks) CountFolded(fingers []Finger, scale, margin float64) int {
	n := 0
	for _, f := range fingers {
		if h.Folded(f.Tip, f.PIP, scale, margin) {
			n++
		}
	}
	return n
}

// CountExtended returns how many of fingers are extended.
func (h *HandLandmarks) CountExtended(fingers []Finger, scale, margin float64) int {
	n := 0
	for _, f := range fingers {
		if h.Extended(f.Tip, f.PIP, scale, margin) {
			n++
		}
	}
	return n
}
