// Package detector provides hand detection interfaces, landmark types and
// the landmark geometry used by the gesture detectors.
package detector

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Side is the handedness label reported by the detector.
type Side string

const (
	// SideLeft is a hand labelled "Left".
	SideLeft Side = "Left"
	// SideRight is a hand labelled "Right".
	SideRight Side = "Right"
	// SideUnknown is a hand the detector did not label.
	SideUnknown Side = ""
)

// String returns the side label, or "Unknown" for an unlabelled hand.
func (s Side) String() string {
	if s == SideUnknown {
		return "Unknown"
	}
	return string(s)
}

// ParseSide maps a detector handedness string onto a Side.
// Anything other than "Left" or "Right" is SideUnknown.
func ParseSide(s string) Side {
	switch s {
	case "Left", "left":
		return SideLeft
	case "Right", "right":
		return SideRight
	default:
		return SideUnknown
	}
}

// Point3D represents a landmark position. X and Y are normalized to [0,1]
// in frame space (Y grows downward), Z is depth relative to the wrist.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks is one observed hand: the 21 landmarks and its side label.
// It is frame-scoped and must not be retained across ticks.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness Side                  `json:"handedness"`
	Score      float64               `json:"score"`
}

// ResolveSides assigns a side to every observed hand. Labelled hands keep
// their label; unlabelled hands take the first side not yet taken, in the
// order Left, Right. The result has the same length as hands.
func ResolveSides(hands []HandLandmarks) []Side {
	sides := make([]Side, len(hands))
	taken := map[Side]bool{}

	for i, h := range hands {
		if h.Handedness != SideUnknown && !taken[h.Handedness] {
			sides[i] = h.Handedness
			taken[h.Handedness] = true
		}
	}

	for i := range hands {
		if sides[i] != SideUnknown {
			continue
		}
		for _, s := range []Side{SideLeft, SideRight} {
			if !taken[s] {
				sides[i] = s
				taken[s] = true
				break
			}
		}
	}

	return sides
}
