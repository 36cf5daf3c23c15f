// Package render draws the machine's commands onto camera frames with GoCV:
// particle bursts, the glowing stroke and the on-screen status text.
package render

import (
	"image"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/ayusman/dreamsketch/internal/gesture"
	"github.com/ayusman/dreamsketch/internal/mode"
	"gocv.io/x/gocv"
)

// ParticleConfig holds the particle physics.
type ParticleConfig struct {
	Gravity    float64 `yaml:"gravity"`
	AlphaDecay float64 `yaml:"alpha_decay"`
	LifeDecay  float64 `yaml:"life_decay"`
	// MinLife and MinAlpha retire a particle once either drops below them.
	MinLife  float64 `yaml:"min_life"`
	MinAlpha float64 `yaml:"min_alpha"`
	// MaxParticles caps the live set; the oldest are dropped first.
	MaxParticles int `yaml:"max_particles"`
	// Overlay is the weight of the particle layer over the frame.
	Overlay float64 `yaml:"overlay"`
}

// DefaultParticleConfig returns the default particle physics.
func DefaultParticleConfig() ParticleConfig {
	return ParticleConfig{
		Gravity:      0.17,
		AlphaDecay:   0.97,
		LifeDecay:    0.015,
		MinLife:      0.05,
		MinAlpha:     0.09,
		MaxParticles: 800,
		Overlay:      0.7,
	}
}

// Particle is one live particle in frame pixels.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Size   int
	Life   float64
	Alpha  float64
	Kind   mode.ParticleKind
	Color  color.RGBA
}

// Alive reports whether the particle is still drawn.
func (p *Particle) Alive(cfg ParticleConfig) bool {
	return p.Life > cfg.MinLife && p.Alpha > cfg.MinAlpha
}

// step advances the particle by one frame.
func (p *Particle) step(cfg ParticleConfig) {
	p.X += p.VX
	p.Y += p.VY
	p.VY += cfg.Gravity
	p.Alpha *= cfg.AlphaDecay
	p.Life -= cfg.LifeDecay
}

// shade washes the particle colour towards white as it fades.
func (p *Particle) shade() color.RGBA {
	mix := func(c uint8) uint8 {
		return uint8(math.Round(float64(c)*p.Alpha + 255*(1-p.Alpha)))
	}
	return color.RGBA{R: mix(p.Color.R), G: mix(p.Color.G), B: mix(p.Color.B), A: 255}
}

// System owns the live particles. It is driven from the frame loop and is
// not safe for concurrent use.
type System struct {
	cfg       ParticleConfig
	rng       *rand.Rand
	particles []Particle
}

// NewSystem creates an empty particle system. The seed makes bursts
// reproducible.
func NewSystem(cfg ParticleConfig, seed uint64) *System {
	return &System{
		cfg: cfg,
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Len returns the number of live particles.
func (s *System) Len() int {
	return len(s.particles)
}

// Particles returns a copy of the live particles.
func (s *System) Particles() []Particle {
	out := make([]Particle, len(s.particles))
	copy(out, s.particles)
	return out
}

// Clear drops every particle.
func (s *System) Clear() {
	s.particles = s.particles[:0]
}

// Emit spawns the particles asked for by cmd.
func (s *System) Emit(cmd mode.EmitParticles) {
	for i := 0; i < cmd.Count; i++ {
		var p Particle
		if cmd.Kind == mode.ParticleMeteorRain {
			p = s.meteor(cmd)
		} else {
			p = s.burst(cmd)
		}
		if cmd.Velocity != nil {
			p.VX, p.VY = cmd.Velocity.X, cmd.Velocity.Y
		}
		s.particles = append(s.particles, p)
	}

	if s.cfg.MaxParticles > 0 && len(s.particles) > s.cfg.MaxParticles {
		drop := len(s.particles) - s.cfg.MaxParticles
		s.particles = append(s.particles[:0], s.particles[drop:]...)
	}
}

// burst is a particle flung sideways from the emit point.
func (s *System) burst(cmd mode.EmitParticles) Particle {
	angle := s.uniform(-0.6, 0.6)
	speed := s.uniform(7, 15)
	if s.rng.IntN(2) == 0 {
		angle += math.Pi
	}
	return Particle{
		X:     cmd.Position.X,
		Y:     cmd.Position.Y,
		VX:    speed * math.Cos(angle),
		VY:    speed * math.Sin(angle),
		Size:  9 + s.rng.IntN(7),
		Life:  1,
		Alpha: 1,
		Kind:  cmd.Kind,
		Color: s.palette(cmd.Kind),
	}
}

// meteor is a streak falling diagonally away from the emit corner.
func (s *System) meteor(cmd mode.EmitParticles) Particle {
	dir := 1.0
	if cmd.Direction == gesture.DirectionLeft {
		dir = -1
	}
	return Particle{
		X:     cmd.Position.X + dir*s.uniform(-60, 240),
		Y:     cmd.Position.Y - s.uniform(0, 120),
		VX:    dir * s.uniform(9, 15),
		VY:    s.uniform(5, 9),
		Size:  2 + s.rng.IntN(3),
		Life:  1,
		Alpha: 1,
		Kind:  cmd.Kind,
		Color: s.palette(cmd.Kind),
	}
}

func (s *System) uniform(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

func (s *System) channel(lo, hi int) uint8 {
	return uint8(lo + s.rng.IntN(hi-lo+1))
}

// palette picks a random colour from the kind's range.
func (s *System) palette(kind mode.ParticleKind) color.RGBA {
	switch kind {
	case mode.ParticleHeart:
		return color.RGBA{R: s.channel(160, 240), G: s.channel(70, 120), B: s.channel(200, 255), A: 255}
	case mode.ParticleRose:
		return color.RGBA{R: s.channel(100, 140), G: s.channel(70, 120), B: s.channel(210, 255), A: 255}
	case mode.ParticleSakura:
		return color.RGBA{R: s.channel(220, 255), G: s.channel(160, 210), B: s.channel(240, 255), A: 255}
	case mode.ParticleMeteorRain:
		return color.RGBA{R: s.channel(200, 255), G: s.channel(200, 255), B: s.channel(120, 200), A: 255}
	default:
		return color.RGBA{R: s.channel(180, 255), G: s.channel(120, 255), B: s.channel(120, 255), A: 255}
	}
}

// Step advances every particle one frame and drops the dead ones.
func (s *System) Step() {
	live := s.particles[:0]
	for i := range s.particles {
		p := s.particles[i]
		p.step(s.cfg)
		if p.Alive(s.cfg) {
			live = append(live, p)
		}
	}
	s.particles = live
}

// Draw paints the live particles onto an overlay of frame and blends it
// back into frame.
func (s *System) Draw(frame *gocv.Mat) {
	if len(s.particles) == 0 || frame.Empty() {
		return
	}

	overlay := frame.Clone()
	defer overlay.Close()

	for i := range s.particles {
		drawParticle(&overlay, &s.particles[i])
	}

	gocv.AddWeighted(overlay, s.cfg.Overlay, *frame, 1-s.cfg.Overlay, 0, frame)
}

func drawParticle(img *gocv.Mat, p *Particle) {
	size := int(float64(p.Size) * p.Alpha)
	if size < 1 {
		size = 1
	}
	c := p.shade()
	center := image.Pt(int(p.X), int(p.Y))

	switch p.Kind {
	case mode.ParticleHeart:
		pts := gocv.NewPointsVectorFromPoints([][]image.Point{heartShape(p.X, p.Y, float64(size))})
		gocv.FillPoly(img, pts, c)
		gocv.Polylines(img, pts, true, c, 2)
		pts.Close()
	case mode.ParticleMeteorRain:
		tail := image.Pt(int(p.X-p.VX*3), int(p.Y-p.VY*3))
		gocv.Line(img, tail, center, c, size)
		gocv.Circle(img, center, size+1, color.RGBA{R: 255, G: 255, B: 255, A: 255}, -1)
	default:
		gocv.Circle(img, center, size, c, -1)
	}
}

// heartSegments is the number of vertices in a heart polygon.
const heartSegments = 32

// heartShape returns the classic parametric heart centred on (x, y) and
// roughly 2*size pixels wide.
func heartShape(x, y, size float64) []image.Point {
	k := size / 16
	pts := make([]image.Point, heartSegments)
	for i := range pts {
		t := 2 * math.Pi * float64(i) / heartSegments
		sin := math.Sin(t)
		hx := 16 * sin * sin * sin
		hy := 13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t)
		pts[i] = image.Pt(int(math.Round(x+k*hx)), int(math.Round(y-k*hy)))
	}
	return pts
}
