package gesture

import (
	"github.com/ayusman/dreamsketch/internal/detector"
)

// single returns the only hand in hands, or nil when there is not exactly one.
func single(hands []detector.HandLandmarks) *detector.HandLandmarks {
	if len(hands) != 1 {
		return nil
	}
	return &hands[0]
}

// IsOKSign reports whether exactly one hand is visible and its thumb and
// index tips touch.
func IsOKSign(hands []detector.HandLandmarks, cfg OKConfig) bool {
	h := single(hands)
	if h == nil {
		return false
	}

	scale := h.Scale()
	if detector.Distance2D(h.Points[detector.ThumbTip], h.Points[detector.IndexTip]) >= scale*cfg.ThumbIndexRatio {
		return false
	}

	if cfg.MinOthersFolded > 0 {
		return h.CountFolded(detector.OtherFingers[:], scale, cfg.FoldMargin) >= cfg.MinOthersFolded
	}
	return true
}

// OKReleased reports the falling edge of the OK sign.
func OKReleased(prev, now bool) bool {
	return prev && !now
}

// IsIndexUp reports whether exactly one hand is visible pointing its index
// finger up with the other fingers curled. The thumb is not considered.
func IsIndexUp(hands []detector.HandLandmarks, cfg IndexUpConfig) bool {
	h := single(hands)
	if h == nil {
		return false
	}

	scale := h.Scale()
	if !h.Extended(detector.IndexTip, detector.IndexPIP, scale, cfg.Margin) {
		return false
	}
	return h.CountFolded(detector.OtherFingers[:], scale, cfg.FoldMargin) >= cfg.MinOthersFolded
}

// IsFrontFist reports whether all four non-thumb fingers of hand are curled.
func IsFrontFist(hand *detector.HandLandmarks, cfg PoseConfig) bool {
	scale := hand.Scale()
	if hand.CountFolded(detector.Fingers[:], scale, cfg.FoldMargin) != len(detector.Fingers) {
		return false
	}
	if cfg.ThumbTucked && hand.Points[detector.ThumbTip].Y <= hand.Points[detector.IndexMCP].Y {
		return false
	}
	if cfg.Orientation && hand.Points[detector.Wrist].Z >= hand.Points[detector.MiddleTip].Z {
		return false
	}
	return true
}

// IsPalmOpen reports whether all four non-thumb fingers of hand are extended.
func IsPalmOpen(hand *detector.HandLandmarks, cfg PoseConfig) bool {
	scale := hand.Scale()
	if hand.CountExtended(detector.Fingers[:], scale, cfg.ExtendMargin) != len(detector.Fingers) {
		return false
	}
	if cfg.Orientation && hand.Points[detector.Wrist].Z <= hand.Points[detector.MiddleTip].Z {
		return false
	}
	return true
}
