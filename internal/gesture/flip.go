package gesture

import "github.com/ayusman/dreamsketch/internal/detector"

// FlipState is the per-side pose remembered between frames by the
// fist-to-palm detector.
type FlipState int

const (
	FlipNeutral FlipState = iota
	FlipFrontFist
	FlipPalmOpen
)

func (s FlipState) String() string {
	switch s {
	case FlipFrontFist:
		return "front-fist"
	case FlipPalmOpen:
		return "palm-open"
	default:
		return "neutral"
	}
}

// ClassifyFlip derives the current frame's flip pose for hand.
func ClassifyFlip(hand *detector.HandLandmarks, cfg PoseConfig) FlipState {
	switch {
	case IsFrontFist(hand, cfg):
		return FlipFrontFist
	case IsPalmOpen(hand, cfg):
		return FlipPalmOpen
	default:
		return FlipNeutral
	}
}

// DetectFlip is the rising-edge detector for a fist opening into a palm.
// It returns whether this frame completes the FrontFist -> PalmOpen
// transition, and the state to carry into the next frame. Neutral frames
// keep the previous pose so a hand passing through half-open frames on its
// way from fist to palm still fires exactly once.
func DetectFlip(prev FlipState, hand *detector.HandLandmarks, cfg PoseConfig) (bool, FlipState) {
	now := ClassifyFlip(hand, cfg)
	if now == FlipNeutral {
		return false, prev
	}
	return prev == FlipFrontFist && now == FlipPalmOpen, now
}
