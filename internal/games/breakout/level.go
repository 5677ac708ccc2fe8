// Package breakout implements a paddle and ball block breaker with an
// optional computer paddle that predicts the ball trajectory.
package breakout

import (
	"math"

	"github.com/vovakirdan/pixel-arcade/internal/config"
	"github.com/vovakirdan/pixel-arcade/internal/core"
)

// Block is one breakable block of the grid.
type Block struct {
	Bounds   core.Rect
	Color    core.Color
	Col, Row int
}

// GridSize returns how many block columns and rows fit a w x h screen.
// The grid takes the upper half of the screen and keeps one block width
// free on each side. Neither count is ever negative.
func GridSize(w, h float64, b config.BreakoutBlocks) (cols, rows int) {
	cols = int(math.Floor((w - b.Gap*2 - b.Width*2) / (b.Width + b.Gap)))
	rows = int(math.Floor((h/2 - b.Gap*2 - b.Height) / (b.Height + b.Gap)))
	return max(cols, 0), max(rows, 0)
}

// GenerateBlocks lays out a full grid centered horizontally and ending
// at the middle of the screen. Rows are colored from red downward along
// the hue wheel.
func GenerateBlocks(w, h float64, b config.BreakoutBlocks) []Block {
	cols, rows := GridSize(w, h, b)
	offsetX := w/2 - float64(cols)*(b.Width+b.Gap)/2 + b.Gap/2
	offsetY := h/2 - float64(rows)*(b.Height+b.Gap)

	blocks := make([]Block, 0, cols*rows)
	for row := range rows {
		color := core.HueColor(float64(row) / float64(rows) * 100)
		for col := range cols {
			blocks = append(blocks, Block{
				Bounds: core.NewRect(
					offsetX+float64(col)*(b.Width+b.Gap),
					offsetY+float64(row)*(b.Height+b.Gap),
					b.Width, b.Height,
				),
				Color: color,
				Col:   col,
				Row:   row,
			})
		}
	}
	return blocks
}
