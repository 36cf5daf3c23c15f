package trajectory

import "time"

// Fade times the three phases of the finishing animation: the stroke
// brightens, holds at full intensity, then fades out.
type Fade struct {
	Brighten time.Duration `yaml:"brighten"`
	Hold     time.Duration `yaml:"hold"`
	FadeOut  time.Duration `yaml:"fade_out"`
}

// DefaultFade returns the default phase durations.
func DefaultFade() Fade {
	return Fade{
		Brighten: 1300 * time.Millisecond,
		Hold:     800 * time.Millisecond,
		FadeOut:  1500 * time.Millisecond,
	}
}

// Total returns the length of the whole animation.
func (f Fade) Total() time.Duration {
	return f.Brighten + f.Hold + f.FadeOut
}

// At returns the stroke intensity elapsed into the animation, whether the
// fade-out phase is running, and whether the animation is over.
func (f Fade) At(elapsed time.Duration) (float32, bool, bool) {
	if elapsed < 0 {
		elapsed = 0
	}

	switch {
	case elapsed < f.Brighten:
		return float32(elapsed) / float32(f.Brighten), false, false
	case elapsed < f.Brighten+f.Hold:
		return 1, false, false
	case elapsed < f.Total():
		into := elapsed - f.Brighten - f.Hold
		return 1 - float32(into)/float32(f.FadeOut), true, false
	default:
		return 0, true, true
	}
}
