// Package mode sequences recognized gestures through the Idle, Ready,
// Drawing and Finishing modes and turns them into rendering commands.
//
// A Machine is the whole session context: mode, hold timers, per-side
// detector state, cooldowns and the stroke being drawn. It is driven by one
// Tick per video frame from a single goroutine and is not safe for
// concurrent use.
package mode

import (
	"time"

	"github.com/ayusman/dreamsketch/internal/detector"
	"github.com/ayusman/dreamsketch/internal/gesture"
	"github.com/ayusman/dreamsketch/internal/trajectory"
)

// Mode is the application mode.
type Mode int

const (
	Idle Mode = iota
	Ready
	Drawing
	Finishing
)

func (m Mode) String() string {
	switch m {
	case Ready:
		return "ready"
	case Drawing:
		return "drawing"
	case Finishing:
		return "finishing"
	default:
		return "idle"
	}
}

// Frame is one tick's input: the frame size in pixels and up to two hands.
type Frame struct {
	Width  int
	Height int
	Hands  []detector.HandLandmarks
}

// sideState is the detector state remembered for one hand side.
type sideState struct {
	flip      gesture.FlipState
	sweep     gesture.SweepTrajectory
	lastPetal time.Time
}

// observed is one hand of the current frame with its resolved side.
type observed struct {
	side    detector.Side
	hand    *detector.HandLandmarks
	flipped bool
}

// Machine is the application mode state machine.
type Machine struct {
	cfg Config

	mode  Mode
	since time.Time

	okHold     gesture.OKHold
	prevOK     bool
	releasedAt time.Time

	sides     map[detector.Side]*sideState
	lastHeart time.Time
	lastSweep time.Time

	stroke *trajectory.Buffer

	label   string
	labelAt time.Time
}

// New creates a Machine in Idle.
func New(cfg Config) *Machine {
	m := &Machine{cfg: cfg}
	m.Reset()
	return m
}

// Reset returns the machine to a fresh Idle session, clearing cooldowns
// and the stroke.
func (m *Machine) Reset() {
	m.mode = Idle
	m.since = time.Time{}
	m.okHold = gesture.OKHold{}
	m.prevOK = false
	m.releasedAt = time.Time{}
	m.sides = map[detector.Side]*sideState{
		detector.SideLeft:  {},
		detector.SideRight: {},
	}
	m.lastHeart = time.Time{}
	m.lastSweep = time.Time{}
	m.stroke = trajectory.NewBuffer(m.cfg.TrajectoryCapacity)
	m.label = ""
	m.labelAt = time.Time{}
}

// Config returns the machine's configuration.
func (m *Machine) Config() Config {
	return m.cfg
}

// Mode returns the current mode.
func (m *Machine) Mode() Mode {
	return m.mode
}

// Trajectory returns a copy of the stroke being drawn.
func (m *Machine) Trajectory() []trajectory.Point {
	return m.stroke.Points()
}

// Tick advances the session by one frame observed at now and returns the
// commands for the renderer. now must not go backwards between calls.
func (m *Machine) Tick(now time.Time, f Frame) Output {
	hands := detector.Limit(f.Hands)
	th := m.cfg.Gestures
	var out Output

	ok := gesture.IsOKSign(hands, th.OK)
	released := gesture.OKReleased(m.prevOK, ok)
	m.prevOK = ok
	m.okHold = m.okHold.Update(ok, now)

	obs := m.trackSides(now, hands)

	switch m.mode {
	case Idle:
		if ok && m.okHold.Held(now) >= m.cfg.OKHold {
			m.enter(Ready, now)
			m.record(&out, gesture.Event{Kind: gesture.KindOKSign}, now)
			break
		}
		m.idleEffects(now, f, hands, obs, &out)

	case Ready:
		m.tickReady(now, hands, ok, released, &out)

	case Drawing:
		if ok && now.Sub(m.since) >= m.cfg.MinDrawDwell {
			m.enter(Finishing, now)
			m.record(&out, gesture.Event{Kind: gesture.KindOKSign}, now)
			break
		}
		if len(hands) == 1 {
			x, y := hands[0].Pixel(detector.IndexTip, f.Width, f.Height)
			m.stroke.Append(trajectory.Point{X: x, Y: y})
		}

	case Finishing:
		if _, _, done := m.cfg.Finish.At(now.Sub(m.since)); done {
			m.stroke.Clear()
			m.enter(Idle, now)
		}
	}

	switch m.mode {
	case Drawing:
		out.Draw = &DrawTrajectory{Points: m.stroke.Points()}
	case Finishing:
		intensity, fadeOut, _ := m.cfg.Finish.At(now.Sub(m.since))
		out.Draw = &DrawTrajectory{Points: m.stroke.Points(), Intensity: intensity, FadeOut: fadeOut}
	}

	out.Mode = m.mode
	out.ModeLabel = m.mode.String()
	if m.label != "" && now.Sub(m.labelAt) < m.cfg.LabelDuration {
		out.GestureLabel = m.label
	}

	return out
}

func (m *Machine) tickReady(now time.Time, hands []detector.HandLandmarks, ok, released bool, out *Output) {
	if len(hands) == 0 {
		m.enter(Idle, now)
		return
	}

	if released {
		m.releasedAt = now
	}
	if ok {
		// Still (or again) showing OK: wait for the release.
		m.releasedAt = time.Time{}
	}
	if m.releasedAt.IsZero() {
		if now.Sub(m.since) > m.cfg.ReadyTimeout {
			m.enter(Idle, now)
		}
		return
	}
	if now.Sub(m.releasedAt) > m.cfg.ReleaseWindow {
		m.enter(Idle, now)
		return
	}

	if gesture.IsIndexUp(hands, m.cfg.Gestures.IndexUp) {
		m.stroke.Clear()
		m.enter(Drawing, now)
		m.record(out, gesture.Event{Kind: gesture.KindIndexUp}, now)
	}
}

// trackSides advances the per-side flip and sweep state for every visible
// hand and resets the state of sides that are no longer visible.
func (m *Machine) trackSides(now time.Time, hands []detector.HandLandmarks) []observed {
	th := m.cfg.Gestures
	sides := detector.ResolveSides(hands)
	seen := make(map[detector.Side]bool, len(hands))
	obs := make([]observed, len(hands))

	for i := range hands {
		h := &hands[i]
		st := m.side(sides[i])
		seen[sides[i]] = true

		var flipped bool
		flipped, st.flip = gesture.DetectFlip(st.flip, h, th.Pose)

		palm := h.Points[detector.MiddleMCP]
		st.sweep = st.sweep.Advance(gesture.IsPalmOpen(h, th.Pose), palm.X, palm.Y, now, th.Sweep)

		obs[i] = observed{side: sides[i], hand: h, flipped: flipped}
	}

	for s, st := range m.sides {
		if !seen[s] {
			st.flip = gesture.FlipNeutral
			st.sweep = gesture.SweepTrajectory{}
		}
	}

	return obs
}

func (m *Machine) side(s detector.Side) *sideState {
	st, ok := m.sides[s]
	if !ok {
		st = &sideState{}
		m.sides[s] = st
	}
	return st
}

func (m *Machine) enter(mode Mode, now time.Time) {
	m.mode = mode
	m.since = now
	m.releasedAt = time.Time{}
	if mode == Idle {
		m.okHold = gesture.OKHold{}
		// Poses tracked outside Idle must not fire effects once back in it.
		for _, st := range m.sides {
			st.flip = gesture.FlipNeutral
			st.sweep = gesture.SweepTrajectory{}
		}
	}
}

func (m *Machine) record(out *Output, ev gesture.Event, now time.Time) {
	out.Events = append(out.Events, ev)
	m.label = ev.Label()
	m.labelAt = now
}

// cooling reports whether a cooldown started at last is still running.
func cooling(now, last time.Time, cooldown time.Duration) bool {
	return !last.IsZero() && now.Sub(last) < cooldown
}
