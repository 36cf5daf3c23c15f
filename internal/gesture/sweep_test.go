package gesture

import (
	"math"
	"testing"
	"time"
)

func TestSweepTrajectory_Advance(t *testing.T) {
	cfg := DefaultThresholds().Sweep
	t0 := time.Unix(1000, 0)
	ms := func(n int) time.Time { return t0.Add(time.Duration(n) * time.Millisecond) }

	t.Run("horizontal sweep to the right", func(t *testing.T) {
		var tr SweepTrajectory
		tr = tr.Advance(true, 0.1, 0.5, ms(0), cfg)
		tr = tr.Advance(true, 0.5, 0.5, ms(400), cfg)

		if tr.Len() != 2 {
			t.Fatalf("Len() = %d, want 2", tr.Len())
		}
		if got := tr.PathLength(); got < 0.4-1e-9 {
			t.Errorf("PathLength() = %f, want >= 0.4", got)
		}
		if got := tr.DominantDirection(); got != DirectionRight {
			t.Errorf("DominantDirection() = %q, want right", got)
		}
	})

	t.Run("long gap restarts the path", func(t *testing.T) {
		var tr SweepTrajectory
		tr = tr.Advance(true, 0.1, 0.5, ms(0), cfg)
		tr = tr.Advance(true, 0.4, 0.5, ms(300), cfg)
		tr = tr.Advance(true, 0.8, 0.5, ms(2300), cfg)

		if tr.Len() != 1 {
			t.Fatalf("Len() = %d, want 1", tr.Len())
		}
		if tr.PathLength() != 0 {
			t.Errorf("PathLength() = %f, want 0", tr.PathLength())
		}
		if tr.Samples[0].X != 0.8 {
			t.Errorf("restart sample X = %f, want 0.8", tr.Samples[0].X)
		}
	})

	t.Run("closed hand resets", func(t *testing.T) {
		var tr SweepTrajectory
		tr = tr.Advance(true, 0.1, 0.5, ms(0), cfg)
		tr = tr.Advance(true, 0.3, 0.5, ms(100), cfg)
		tr = tr.Advance(false, 0.4, 0.5, ms(200), cfg)

		if tr.Len() != 0 {
			t.Errorf("Len() = %d, want 0", tr.Len())
		}
	})

	t.Run("jitter below the noise floor is not recorded", func(t *testing.T) {
		var tr SweepTrajectory
		tr = tr.Advance(true, 0.5, 0.5, ms(0), cfg)
		tr = tr.Advance(true, 0.503, 0.501, ms(50), cfg)
		tr = tr.Advance(true, 0.498, 0.5, ms(100), cfg)

		if tr.Len() != 1 {
			t.Errorf("Len() = %d, want 1", tr.Len())
		}
	})

	t.Run("old samples are pruned", func(t *testing.T) {
		var tr SweepTrajectory
		for i := 0; i <= 20; i++ {
			tr = tr.Advance(true, 0.1+float64(i)*0.02, 0.5, ms(i*100), cfg)
		}

		now := ms(2000)
		for _, s := range tr.Samples {
			if now.Sub(s.At) > cfg.Window {
				t.Errorf("sample at %v is older than the window", now.Sub(s.At))
			}
		}
		if tr.Len() != 14 {
			t.Errorf("Len() = %d, want 14", tr.Len())
		}
	})

	t.Run("receiver is not mutated", func(t *testing.T) {
		var tr SweepTrajectory
		tr = tr.Advance(true, 0.1, 0.5, ms(0), cfg)
		before := tr.Len()

		_ = tr.Advance(true, 0.5, 0.5, ms(100), cfg)

		if tr.Len() != before {
			t.Errorf("receiver length changed from %d to %d", before, tr.Len())
		}
	})
}

func TestSweepTrajectory_DominantDirection(t *testing.T) {
	at := time.Unix(1000, 0)
	path := func(pts ...[2]float64) SweepTrajectory {
		var tr SweepTrajectory
		for _, p := range pts {
			tr.Samples = append(tr.Samples, SweepSample{X: p[0], Y: p[1], At: at})
		}
		return tr
	}

	tests := []struct {
		name string
		tr   SweepTrajectory
		want Direction
	}{
		{name: "empty", tr: path(), want: DirectionNone},
		{name: "single sample", tr: path([2]float64{0.5, 0.5}), want: DirectionNone},
		{name: "right", tr: path([2]float64{0.1, 0.5}, [2]float64{0.6, 0.6}), want: DirectionRight},
		{name: "left", tr: path([2]float64{0.6, 0.5}, [2]float64{0.1, 0.4}), want: DirectionLeft},
		{name: "up", tr: path([2]float64{0.5, 0.8}, [2]float64{0.55, 0.2}), want: DirectionUp},
		{name: "down", tr: path([2]float64{0.5, 0.2}, [2]float64{0.45, 0.8}), want: DirectionDown},
		{name: "diagonal tie", tr: path([2]float64{0.25, 0.25}, [2]float64{0.75, 0.75}), want: DirectionNone},
		{name: "out and back", tr: path([2]float64{0.5, 0.5}, [2]float64{0.9, 0.5}, [2]float64{0.2, 0.5}), want: DirectionLeft},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tr.DominantDirection(); got != tt.want {
				t.Errorf("DominantDirection() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetectSweep(t *testing.T) {
	cfg := DefaultThresholds().Sweep
	at := time.Unix(1000, 0)

	tests := []struct {
		name    string
		samples []SweepSample
		dir     Direction
		ok      bool
	}{
		{
			name:    "long right sweep",
			samples: []SweepSample{{X: 0.1, Y: 0.5, At: at}, {X: 0.3, Y: 0.5, At: at}, {X: 0.6, Y: 0.52, At: at}},
			dir:     DirectionRight,
			ok:      true,
		},
		{
			name:    "long left sweep",
			samples: []SweepSample{{X: 0.8, Y: 0.5, At: at}, {X: 0.4, Y: 0.5, At: at}},
			dir:     DirectionLeft,
			ok:      true,
		},
		{
			name:    "too short",
			samples: []SweepSample{{X: 0.4, Y: 0.5, At: at}, {X: 0.6, Y: 0.5, At: at}},
			ok:      false,
		},
		{
			name:    "vertical",
			samples: []SweepSample{{X: 0.5, Y: 0.1, At: at}, {X: 0.5, Y: 0.9, At: at}},
			ok:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, ok := DetectSweep(SweepTrajectory{Samples: tt.samples}, cfg)
			if ok != tt.ok {
				t.Fatalf("DetectSweep() ok = %v, want %v", ok, tt.ok)
			}
			if dir != tt.dir {
				t.Errorf("DetectSweep() dir = %q, want %q", dir, tt.dir)
			}
		})
	}

	t.Run("path length sums segments", func(t *testing.T) {
		tr := SweepTrajectory{Samples: []SweepSample{{X: 0, Y: 0}, {X: 0.3, Y: 0.4}, {X: 0.3, Y: 0}}}
		if got := tr.PathLength(); math.Abs(got-0.9) > 1e-9 {
			t.Errorf("PathLength() = %f, want 0.9", got)
		}
	})
}
