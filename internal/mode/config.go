package mode

import (
	"time"

	"github.com/ayusman/dreamsketch/internal/gesture"
	"github.com/ayusman/dreamsketch/internal/trajectory"
)

// Config holds the timings, cooldowns and effect sizes of the machine.
type Config struct {
	// OKHold is how long the OK sign must be held to leave Idle.
	OKHold time.Duration `yaml:"ok_hold"`
	// ReleaseWindow is how long after releasing OK an index-up starts
	// drawing. Once OK is released it replaces ReadyTimeout.
	ReleaseWindow time.Duration `yaml:"release_window"`
	// ReadyTimeout returns Ready to Idle when OK is never released. It is
	// measured from entering Ready.
	ReadyTimeout time.Duration `yaml:"ready_timeout"`
	// MinDrawDwell keeps an OK sign from finishing a stroke just started.
	MinDrawDwell time.Duration `yaml:"min_draw_dwell"`

	HeartCooldown time.Duration `yaml:"heart_cooldown"`
	PetalCooldown time.Duration `yaml:"petal_cooldown"`
	SweepCooldown time.Duration `yaml:"sweep_cooldown"`

	// LabelDuration is how long the last gesture stays on screen.
	LabelDuration time.Duration `yaml:"label_duration"`

	TrajectoryCapacity int `yaml:"trajectory_capacity"`

	HeartBurst   int `yaml:"heart_burst"`
	PetalBurst   int `yaml:"petal_burst"`
	MeteorBurst  int `yaml:"meteor_burst"`
	SparkleBurst int `yaml:"sparkle_burst"`

	Finish   trajectory.Fade    `yaml:"finish"`
	Gestures gesture.Thresholds `yaml:"gestures"`
}

// DefaultConfig returns the tuned defaults.
func DefaultConfig() Config {
	return Config{
		OKHold:             220 * time.Millisecond,
		ReleaseWindow:      2 * time.Second,
		ReadyTimeout:       4 * time.Second,
		MinDrawDwell:       250 * time.Millisecond,
		HeartCooldown:      1500 * time.Millisecond,
		PetalCooldown:      1200 * time.Millisecond,
		SweepCooldown:      1500 * time.Millisecond,
		LabelDuration:      2 * time.Second,
		TrajectoryCapacity: trajectory.DefaultCapacity,
		HeartBurst:         10,
		PetalBurst:         14,
		MeteorBurst:        24,
		SparkleBurst:       2,
		Finish:             trajectory.DefaultFade(),
		Gestures:           gesture.DefaultThresholds(),
	}
}
