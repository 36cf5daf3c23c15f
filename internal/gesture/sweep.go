package gesture

import (
	"math"
	"time"
)

// Direction is the dominant direction of a sweep.
type Direction string

const (
	DirectionNone  Direction = ""
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
	DirectionUp    Direction = "up"
	DirectionDown  Direction = "down"
)

// SweepSample is one recorded palm position in normalized frame units.
type SweepSample struct {
	X  float64
	Y  float64
	At time.Time
}

// SweepTrajectory is the recent palm path of one hand side. It is a value:
// Advance returns a new trajectory and never mutates the receiver.
type SweepTrajectory struct {
	Samples []SweepSample
}

// Advance folds the current frame into the trajectory.
//
// A hand that is not open resets the path. An empty path, or one whose last
// sample is older than MaxGap, restarts from this sample alone. Otherwise
// the sample is recorded only if it moved at least MinStep, and samples
// older than Window are pruned from the head.
func (t SweepTrajectory) Advance(open bool, x, y float64, now time.Time, cfg SweepConfig) SweepTrajectory {
	if !open {
		return SweepTrajectory{}
	}

	sample := SweepSample{X: x, Y: y, At: now}
	n := len(t.Samples)
	if n == 0 || now.Sub(t.Samples[n-1].At) > cfg.MaxGap {
		return SweepTrajectory{Samples: []SweepSample{sample}}
	}

	next := make([]SweepSample, n, n+1)
	copy(next, t.Samples)

	last := next[n-1]
	if math.Hypot(x-last.X, y-last.Y) >= cfg.MinStep {
		next = append(next, sample)
	}

	head := 0
	for head < len(next) && now.Sub(next[head].At) > cfg.Window {
		head++
	}

	return SweepTrajectory{Samples: next[head:]}
}

// Len returns the number of samples.
func (t SweepTrajectory) Len() int {
	return len(t.Samples)
}

// PathLength returns the summed distance between consecutive samples.
func (t SweepTrajectory) PathLength() float64 {
	var total float64
	for i := 1; i < len(t.Samples); i++ {
		a, b := t.Samples[i-1], t.Samples[i]
		total += math.Hypot(b.X-a.X, b.Y-a.Y)
	}
	return total
}

// DominantDirection compares the first and last samples. Ties and paths
// shorter than two samples have no direction.
func (t SweepTrajectory) DominantDirection() Direction {
	n := len(t.Samples)
	if n < 2 {
		return DirectionNone
	}

	dx := t.Samples[n-1].X - t.Samples[0].X
	dy := t.Samples[n-1].Y - t.Samples[0].Y

	switch {
	case math.Abs(dx) > math.Abs(dy):
		if dx > 0 {
			return DirectionRight
		}
		return DirectionLeft
	case math.Abs(dy) > math.Abs(dx):
		if dy > 0 {
			return DirectionDown
		}
		return DirectionUp
	default:
		return DirectionNone
	}
}

// DetectSweep reports a horizontal sweep once the path is long enough.
func DetectSweep(t SweepTrajectory, cfg SweepConfig) (Direction, bool) {
	if t.PathLength() <= cfg.Distance {
		return DirectionNone, false
	}
	dir := t.DominantDirection()
	if dir != DirectionLeft && dir != DirectionRight {
		return DirectionNone, false
	}
	return dir, true
}
