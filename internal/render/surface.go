// Package render defines the drawing surface the game states paint on and a
// braille canvas that rasterizes world pixels into terminal cells.
package render

import (
	"github.com/vovakirdan/pixel-arcade/internal/core"
	"github.com/vovakirdan/pixel-arcade/internal/sprite"
)

// Align controls horizontal text placement relative to the anchor point.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Surface is everything a state needs to draw a frame. Coordinates are world
// pixels with the origin in the top-left corner.
type Surface interface {
	Width() float64
	Height() float64

	Clear()
	FillRect(r core.Rect, c core.Color)
	DrawLine(from, to core.Vector, c core.Color)
	DrawSprite(atlas *sprite.Atlas, s sprite.Sprite, pos core.Vector, c core.Color)
	DrawText(pos core.Vector, text string, align Align, c core.Color)
	MeasureText(text string) float64
	DrawLayer(l *Layer)

	// PushTint forces every following draw to use c until PopTint.
	PushTint(c core.Color)
	PopTint()
}
