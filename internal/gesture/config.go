// Package gesture classifies one or two observed hands into discrete
// gestures. Every detector is total: an empty or wrong-sized hand list is
// valid input and simply yields no gesture.
package gesture

import "time"

// OKConfig tunes the OK-sign detector.
type OKConfig struct {
	// ThumbIndexRatio is the maximum thumb-tip to index-tip distance as a
	// fraction of the hand scale.
	ThumbIndexRatio float64 `yaml:"thumb_index_ratio"`
	// MinOthersFolded requires that many of middle, ring and pinky to be
	// folded. Zero disables the check.
	MinOthersFolded int `yaml:"min_others_folded"`
	// FoldMargin is the fold margin used by MinOthersFolded.
	FoldMargin float64 `yaml:"fold_margin"`
}

// IndexUpConfig tunes the index-finger-up detector.
type IndexUpConfig struct {
	// Margin is how far above its pip the index tip must be, in hand scales.
	Margin float64 `yaml:"margin"`
	// FoldMargin is how far below their pips the other tips must be.
	FoldMargin float64 `yaml:"fold_margin"`
	// MinOthersFolded is how many of middle, ring and pinky must be folded.
	MinOthersFolded int `yaml:"min_others_folded"`
}

// PoseConfig tunes the front-fist and open-palm detectors.
type PoseConfig struct {
	FoldMargin   float64 `yaml:"fold_margin"`
	ExtendMargin float64 `yaml:"extend_margin"`
	// ThumbTucked additionally requires the fist's thumb tip below the
	// index MCP.
	ThumbTucked bool `yaml:"thumb_tucked"`
	// Orientation gates fist on the back of the hand facing the camera
	// (wrist z < middle tip z) and palm on the opposite.
	Orientation bool `yaml:"orientation"`
}

// HeartConfig tunes the two-hand heart detector.
type HeartConfig struct {
	// MinFolded is how many of middle, ring and pinky must be curled on
	// each hand.
	MinFolded  int     `yaml:"min_folded"`
	FoldMargin float64 `yaml:"fold_margin"`
	// CrossRatio bounds both index-to-opposite-thumb distances as a
	// fraction of the summed hand scales.
	CrossRatio float64 `yaml:"cross_ratio"`
	// WristLevelRatio bounds the wrist height difference, in average hand
	// scales.
	WristLevelRatio float64 `yaml:"wrist_level_ratio"`
	// CenterTolerance bounds how far the wrists' midpoint may sit from the
	// horizontal center of the frame, in normalized frame units.
	CenterTolerance float64 `yaml:"center_tolerance"`
}

// SweepConfig tunes the palm sweep accumulator. Distances are normalized
// frame units.
type SweepConfig struct {
	// Window is how long samples are kept.
	Window time.Duration `yaml:"window"`
	// MaxGap restarts the trajectory when exceeded between samples.
	MaxGap time.Duration `yaml:"max_gap"`
	// MinStep is the anti-noise floor for recording a new sample.
	MinStep float64 `yaml:"min_step"`
	// Distance is the path length a sweep must exceed.
	Distance float64 `yaml:"distance"`
	// ActiveDistance is the path length from which a sweep in progress
	// suppresses heart and petal effects.
	ActiveDistance float64 `yaml:"active_distance"`
}

// Thresholds groups the tuning constants of every detector.
type Thresholds struct {
	OK      OKConfig      `yaml:"ok"`
	IndexUp IndexUpConfig `yaml:"index_up"`
	Pose    PoseConfig    `yaml:"pose"`
	Heart   HeartConfig   `yaml:"heart"`
	Sweep   SweepConfig   `yaml:"sweep"`
}

// DefaultThresholds returns the tuned defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{
		OK: OKConfig{
			ThumbIndexRatio: 0.4,
			MinOthersFolded: 0,
			FoldMargin:      0.05,
		},
		IndexUp: IndexUpConfig{
			Margin:          0.1,
			FoldMargin:      0.05,
			MinOthersFolded: 2,
		},
		Pose: PoseConfig{
			FoldMargin:   0.05,
			ExtendMargin: 0.05,
			ThumbTucked:  true,
			Orientation:  false,
		},
		Heart: HeartConfig{
			MinFolded:       2,
			FoldMargin:      0.05,
			CrossRatio:      0.3,
			WristLevelRatio: 1.0,
			CenterTolerance: 0.25,
		},
		Sweep: SweepConfig{
			Window:         1300 * time.Millisecond,
			MaxGap:         800 * time.Millisecond,
			MinStep:        0.01,
			Distance:       0.3,
			ActiveDistance: 0.1,
		},
	}
}
