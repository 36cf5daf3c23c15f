package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/ayusman/dreamsketch/internal/mode"
	"gocv.io/x/gocv"
)

// HUD colours.
var (
	modeColor    = color.RGBA{R: 255, G: 180, B: 150, A: 255}
	gestureColor = color.RGBA{R: 255, G: 240, B: 200, A: 255}
)

// Renderer turns one tick's output into pixels: it feeds emit commands to
// the particle system, draws the stroke, the particles and the HUD.
type Renderer struct {
	particles *System
	hud       bool
}

// NewRenderer creates a Renderer. hud toggles the status text.
func NewRenderer(cfg ParticleConfig, seed uint64, hud bool) *Renderer {
	return &Renderer{
		particles: NewSystem(cfg, seed),
		hud:       hud,
	}
}

// Particles returns the renderer's particle system.
func (r *Renderer) Particles() *System {
	return r.particles
}

// Apply feeds out's emit commands to the particle system and advances it
// one frame. It is the part of Render that needs no image.
func (r *Renderer) Apply(out mode.Output) {
	for _, e := range out.Emits {
		r.particles.Emit(e)
	}
	r.particles.Step()
}

// Render applies out and composites everything onto frame in place.
func (r *Renderer) Render(frame *gocv.Mat, out mode.Output) {
	r.Apply(out)
	if frame == nil || frame.Empty() {
		return
	}

	DrawTrail(frame, out.Draw)
	r.particles.Draw(frame)

	if r.hud {
		drawHUD(frame, out)
	}
}

// HUDLines returns the status text lines for out.
func HUDLines(out mode.Output) []string {
	lines := []string{fmt.Sprintf("Mode: %s", out.ModeLabel)}
	if out.GestureLabel != "" {
		lines = append(lines, out.GestureLabel)
	}
	return lines
}

func drawHUD(frame *gocv.Mat, out mode.Output) {
	lines := HUDLines(out)
	gocv.PutText(frame, lines[0], image.Pt(15, 40), gocv.FontHersheySimplex, 1, modeColor, 2)
	if len(lines) > 1 {
		gocv.PutText(frame, lines[1], image.Pt(15, 80), gocv.FontHersheySimplex, 0.9, gestureColor, 2)
	}
}
