// Package trajectory holds the in-progress freehand stroke and the timing
// of its finishing animation.
package trajectory

// DefaultCapacity is the number of points kept for a stroke.
const DefaultCapacity = 120

// Point is a stroke position in frame pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Buffer is a bounded FIFO of stroke points. Once full, appending evicts
// the oldest point.
type Buffer struct {
	points []Point
	start  int
	size   int
}

// NewBuffer creates a Buffer holding at most capacity points.
// Non-positive capacities fall back to DefaultCapacity.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{points: make([]Point, capacity)}
}

// Append adds p as the newest point.
func (b *Buffer) Append(p Point) {
	if b.size < len(b.points) {
		b.points[(b.start+b.size)%len(b.points)] = p
		b.size++
		return
	}
	b.points[b.start] = p
	b.start = (b.start + 1) % len(b.points)
}

// Points returns a copy of the stroke, oldest first.
func (b *Buffer) Points() []Point {
	out := make([]Point, b.size)
	for i := 0; i < b.size; i++ {
		out[i] = b.points[(b.start+i)%len(b.points)]
	}
	return out
}

// Last returns the newest point.
func (b *Buffer) Last() (Point, bool) {
	if b.size == 0 {
		return Point{}, false
	}
	return b.points[(b.start+b.size-1)%len(b.points)], true
}

// Len returns the number of stored points.
func (b *Buffer) Len() int {
	return b.size
}

// Cap returns the maximum number of stored points.
func (b *Buffer) Cap() int {
	return len(b.points)
}

// Clear drops every point.
func (b *Buffer) Clear() {
	b.start = 0
	b.size = 0
}
