package mode

import (
	"github.com/ayusman/dreamsketch/internal/detector"
	"github.com/ayusman/dreamsketch/internal/gesture"
	"github.com/ayusman/dreamsketch/internal/trajectory"
)

// ParticleKind selects the look of emitted particles.
type ParticleKind string

const (
	ParticleStar       ParticleKind = "star"
	ParticleHeart      ParticleKind = "heart"
	ParticleRose       ParticleKind = "rose"
	ParticleSakura     ParticleKind = "sakura"
	ParticleMeteorRain ParticleKind = "meteor-rain"
)

// PetalKind returns the petal particle for a hand side.
func PetalKind(side detector.Side) ParticleKind {
	if side == detector.SideRight {
		return ParticleSakura
	}
	return ParticleRose
}

// Point is a frame position in pixels.
type Point = trajectory.Point

// EmitParticles asks the particle sink to spawn Count particles of Kind at
// Position. Direction is set for meteor rain; Velocity, when set, replaces
// the kind's default initial velocity.
type EmitParticles struct {
	Position  Point             `json:"position"`
	Count     int               `json:"count"`
	Kind      ParticleKind      `json:"kind"`
	Direction gesture.Direction `json:"direction,omitempty"`
	Velocity  *Point            `json:"velocity,omitempty"`
}

// DrawTrajectory asks the stroke renderer to draw Points at Intensity.
type DrawTrajectory struct {
	Points    []Point `json:"points"`
	Intensity float32 `json:"intensity"`
	FadeOut   bool    `json:"fade_out"`
}

// Output is everything one tick hands to the rendering side.
type Output struct {
	Mode         Mode            `json:"-"`
	ModeLabel    string          `json:"mode"`
	GestureLabel string          `json:"gesture,omitempty"`
	Emits        []EmitParticles `json:"emits,omitempty"`
	Draw         *DrawTrajectory `json:"draw,omitempty"`
	Events       []gesture.Event `json:"events,omitempty"`
}
