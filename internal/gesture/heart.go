package gesture

import (
	"math"

	"github.com/ayusman/dreamsketch/internal/detector"
)

// IsTwoHandHeart reports whether exactly two hands form a heart: middle,
// ring and pinky curled on both hands, each index tip meeting the other
// hand's thumb tip, wrists level and centered in the frame.
func IsTwoHandHeart(hands []detector.HandLandmarks, cfg HeartConfig) bool {
	if len(hands) != 2 {
		return false
	}
	a, b := &hands[0], &hands[1]
	sa, sb := a.Scale(), b.Scale()

	if a.CountFolded(detector.OtherFingers[:], sa, cfg.FoldMargin) < cfg.MinFolded ||
		b.CountFolded(detector.OtherFingers[:], sb, cfg.FoldMargin) < cfg.MinFolded {
		return false
	}

	limit := (sa + sb) * cfg.CrossRatio
	if detector.Distance2D(a.Points[detector.IndexTip], b.Points[detector.ThumbTip]) >= limit ||
		detector.Distance2D(b.Points[detector.IndexTip], a.Points[detector.ThumbTip]) >= limit {
		return false
	}

	wa, wb := a.Points[detector.Wrist], b.Points[detector.Wrist]
	if math.Abs(wa.Y-wb.Y) >= (sa+sb)/2*cfg.WristLevelRatio {
		return false
	}

	return math.Abs((wa.X+wb.X)/2-0.5) <= cfg.CenterTolerance
}
