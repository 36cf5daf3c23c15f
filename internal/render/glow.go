package render

import (
	"image"
	"image/color"
	"math"

	"github.com/ayusman/dreamsketch/internal/mode"
	"gocv.io/x/gocv"
)

// trailPalette is the gradient along the stroke, oldest point first.
var trailPalette = [4]color.RGBA{
	{R: 220, G: 120, B: 255, A: 255},
	{R: 100, G: 200, B: 255, A: 255},
	{R: 255, G: 180, B: 100, A: 255},
	{R: 255, G: 120, B: 180, A: 255},
}

// tipGlow is the stack of filled circles drawn on the newest point, outermost
// first.
var tipGlow = []struct {
	radius int
	color  color.RGBA
}{
	{18, color.RGBA{R: 255, G: 255, B: 255, A: 255}},
	{13, color.RGBA{R: 240, G: 210, B: 255, A: 255}},
	{7, color.RGBA{R: 160, G: 255, B: 255, A: 255}},
}

// gradientColor returns the stroke colour of segment i of n.
func gradientColor(i, n int) color.RGBA {
	span := n - 1
	if span < 1 {
		span = 1
	}
	pos := float64(i) / float64(span) * float64(len(trailPalette)-1)
	if pos < 0 {
		pos = 0
	}

	lo := int(pos)
	if lo >= len(trailPalette)-1 {
		return trailPalette[len(trailPalette)-1]
	}
	t := pos - float64(lo)
	a, b := trailPalette[lo], trailPalette[lo+1]
	lerp := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x)*(1-t) + float64(y)*t))
	}
	return color.RGBA{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: 255}
}

// segmentThickness tapers from 20px at the tail to 6px at the tip.
func segmentThickness(i, n int) int {
	if n <= 0 {
		return 6
	}
	return int(14*(1-float64(i)/float64(n))) + 6
}

// trailWeight is the blend weight of the stroke layer. Drawing uses the base
// weight, the finishing animation brightens it towards opaque, and the fade
// takes it down to nothing.
func trailWeight(d *mode.DrawTrajectory) float64 {
	const base = 0.7
	if d.FadeOut {
		return base * float64(d.Intensity)
	}
	return base + (1-base)*float64(d.Intensity)
}

// DrawTrail paints the stroke described by d onto frame.
func DrawTrail(frame *gocv.Mat, d *mode.DrawTrajectory) {
	if d == nil || len(d.Points) == 0 || frame.Empty() {
		return
	}
	w := trailWeight(d)
	if w <= 0 {
		return
	}

	overlay := frame.Clone()
	defer overlay.Close()

	n := len(d.Points)
	for i := 1; i < n; i++ {
		a := image.Pt(int(d.Points[i-1].X), int(d.Points[i-1].Y))
		b := image.Pt(int(d.Points[i].X), int(d.Points[i].Y))
		gocv.Line(&overlay, a, b, gradientColor(i, n), segmentThickness(i, n))
	}

	tip := d.Points[n-1]
	for _, g := range tipGlow {
		gocv.Circle(&overlay, image.Pt(int(tip.X), int(tip.Y)), g.radius, g.color, -1)
	}

	gocv.AddWeighted(overlay, w, *frame, 1-w, 0, frame)
}
