package render

import "math"

// Layer is a cached off-screen canvas for content that rarely changes.
// It is repainted only after Invalidate.
type Layer struct {
	canvas *Canvas
	dirty  bool
	paints int
}

// NewLayer creates an empty, dirty layer.
func NewLayer() *Layer {
	return &Layer{canvas: NewCanvas(0, 0), dirty: true}
}

// Invalidate marks the layer for repainting on the next Redraw.
func (l *Layer) Invalidate() {
	l.dirty = true
}

// Dirty reports whether the layer needs repainting.
func (l *Layer) Dirty() bool {
	return l.dirty
}

// Paints returns how many times the layer was repainted.
func (l *Layer) Paints() int {
	return l.paints
}

// Redraw repaints the layer with paint when it is dirty or when the target
// size changed. w and h are in world pixels.
func (l *Layer) Redraw(w, h float64, paint func(Surface)) {
	cols := int(math.Ceil(w / DotsX))
	rows := int(math.Ceil(h / DotsY))
	if cols != l.canvas.cols || rows != l.canvas.rows {
		l.canvas.Resize(cols, rows)
		l.dirty = true
	}
	if !l.dirty {
		return
	}
	l.canvas.Clear()
	paint(l.canvas)
	l.dirty = false
	l.paints++
}
