package mode

import (
	"time"

	"github.com/ayusman/dreamsketch/internal/detector"
	"github.com/ayusman/dreamsketch/internal/gesture"
)

// idleEffects runs the decorative detectors that only fire in Idle. A
// sweep in progress or cooling down suppresses the heart and petals so a
// moving open palm does not also read as a flip.
func (m *Machine) idleEffects(now time.Time, f Frame, hands []detector.HandLandmarks, obs []observed, out *Output) {
	th := m.cfg.Gestures
	suppress := cooling(now, m.lastSweep, m.cfg.SweepCooldown)

	for _, o := range obs {
		st := m.side(o.side)
		if dir, ok := gesture.DetectSweep(st.sweep, th.Sweep); ok && !cooling(now, m.lastSweep, m.cfg.SweepCooldown) {
			m.lastSweep = now
			st.sweep = gesture.SweepTrajectory{}
			out.Emits = append(out.Emits, meteorRain(f, dir, m.cfg.MeteorBurst))
			m.record(out, gesture.Event{Kind: gesture.KindPalmSweep, Side: o.side, Direction: dir}, now)
			suppress = true
			continue
		}
		if st.sweep.PathLength() >= th.Sweep.ActiveDistance {
			suppress = true
		}
	}

	if suppress {
		return
	}

	if gesture.IsTwoHandHeart(hands, th.Heart) && !cooling(now, m.lastHeart, m.cfg.HeartCooldown) {
		m.lastHeart = now
		out.Emits = append(out.Emits, EmitParticles{
			Position: Point{X: float64(f.Width) / 2, Y: float64(f.Height) / 2},
			Count:    m.cfg.HeartBurst,
			Kind:     ParticleHeart,
		})
		m.record(out, gesture.Event{Kind: gesture.KindHeart}, now)
	}

	for _, o := range obs {
		st := m.side(o.side)
		if o.flipped && !cooling(now, st.lastPetal, m.cfg.PetalCooldown) {
			st.lastPetal = now
			x, y := o.hand.Pixel(detector.MiddleMCP, f.Width, f.Height)
			out.Emits = append(out.Emits, EmitParticles{
				Position: Point{X: x, Y: y},
				Count:    m.cfg.PetalBurst,
				Kind:     PetalKind(o.side),
			})
			m.record(out, gesture.Event{Kind: gesture.KindFistPalmFlip, Side: o.side}, now)
		}
	}

	if m.cfg.SparkleBurst <= 0 {
		return
	}
	for _, o := range obs {
		if gesture.IsPalmOpen(o.hand, th.Pose) {
			x, y := o.hand.Pixel(detector.MiddleMCP, f.Width, f.Height)
			out.Emits = append(out.Emits, EmitParticles{
				Position: Point{X: x, Y: y},
				Count:    m.cfg.SparkleBurst,
				Kind:     ParticleStar,
			})
		}
	}
}

// meteorRain starts the rain in the top corner the sweep moved away from.
func meteorRain(f Frame, dir gesture.Direction, count int) EmitParticles {
	x := float64(f.Width) * 0.1
	if dir == gesture.DirectionLeft {
		x = float64(f.Width) * 0.9
	}
	return EmitParticles{
		Position:  Point{X: x, Y: 0},
		Count:     count,
		Kind:      ParticleMeteorRain,
		Direction: dir,
	}
}
