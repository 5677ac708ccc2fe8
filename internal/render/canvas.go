package render

import (
	"math"

	"github.com/vovakirdan/pixel-arcade/internal/core"
	"github.com/vovakirdan/pixel-arcade/internal/sprite"
)

// Each terminal cell holds a 2x4 braille dot matrix.
const (
	DotsX = 2
	DotsY = 4
)

// brailleBits maps a dot position inside a cell to its braille bit.
var brailleBits = [DotsY][DotsX]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

type dot struct {
	on    bool
	color core.Color
}

// Canvas is a Surface backed by a dot grid and a text overlay.
type Canvas struct {
	cols, rows int
	w, h       int
	dots       []dot
	text       []core.Cell
	tints      []core.Color
}

// NewCanvas creates a canvas covering cols x rows terminal cells.
func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{}
	c.Resize(cols, rows)
	return c
}

// Resize changes the canvas size in cells and clears it.
func (c *Canvas) Resize(cols, rows int) {
	c.cols, c.rows = max(cols, 0), max(rows, 0)
	c.w, c.h = c.cols*DotsX, c.rows*DotsY
	c.dots = make([]dot, c.w*c.h)
	c.text = make([]core.Cell, c.cols*c.rows)
}

// Cols returns the canvas width in cells.
func (c *Canvas) Cols() int { return c.cols }

// Rows returns the canvas height in cells.
func (c *Canvas) Rows() int { return c.rows }

func (c *Canvas) Width() float64  { return float64(c.w) }
func (c *Canvas) Height() float64 { return float64(c.h) }

func (c *Canvas) Clear() {
	clear(c.dots)
	clear(c.text)
}

func (c *Canvas) color(col core.Color) core.Color {
	if n := len(c.tints); n > 0 {
		return c.tints[n-1]
	}
	return col
}

func (c *Canvas) PushTint(col core.Color) {
	c.tints = append(c.tints, col)
}

func (c *Canvas) PopTint() {
	if n := len(c.tints); n > 0 {
		c.tints = c.tints[:n-1]
	}
}

func (c *Canvas) set(x, y int, col core.Color) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.dots[y*c.w+x] = dot{on: true, color: col}
}

// Dot reports whether the pixel at (x, y) is lit.
func (c *Canvas) Dot(x, y int) bool {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return false
	}
	return c.dots[y*c.w+x].on
}

func round(v float64) int {
	return int(math.Floor(v + 0.5))
}

func (c *Canvas) FillRect(r core.Rect, col core.Color) {
	col = c.color(col)
	x0, y0 := round(r.X), round(r.Y)
	x1, y1 := round(r.Right()), round(r.Bottom())
	for y := max(y0, 0); y < min(y1, c.h); y++ {
		for x := max(x0, 0); x < min(x1, c.w); x++ {
			c.dots[y*c.w+x] = dot{on: true, color: col}
		}
	}
}

// DrawLine rasterizes a segment with Bresenham's algorithm.
func (c *Canvas) DrawLine(from, to core.Vector, col core.Color) {
	col = c.color(col)
	x0, y0 := round(from.X), round(from.Y)
	x1, y1 := round(to.X), round(to.Y)

	dx, dy := core.Abs(x1-x0), -core.Abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		c.set(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func (c *Canvas) DrawSprite(atlas *sprite.Atlas, s sprite.Sprite, pos core.Vector, col core.Color) {
	col = c.color(col)
	ox, oy := int(math.Floor(pos.X)), int(math.Floor(pos.Y))
	for y := 0; y < s.H; y++ {
		for x := 0; x < s.W; x++ {
			if atlas.Opaque(s, x, y) {
				c.set(ox+x, oy+y, col)
			}
		}
	}
}

// DrawText writes text on the cell grid. pos is in world pixels and is
// snapped to the cell that contains it.
func (c *Canvas) DrawText(pos core.Vector, text string, align Align, col core.Color) {
	col = c.color(col)
	runes := []rune(text)
	cx := int(math.Floor(pos.X)) / DotsX
	cy := int(math.Floor(pos.Y)) / DotsY
	switch align {
	case AlignCenter:
		cx -= len(runes) / 2
	case AlignRight:
		cx -= len(runes)
	}
	if cy < 0 || cy >= c.rows {
		return
	}
	for i, r := range runes {
		x := cx + i
		if x < 0 || x >= c.cols {
			continue
		}
		c.text[cy*c.cols+x] = core.Cell{Rune: r, Color: col}
	}
}

func (c *Canvas) MeasureText(text string) float64 {
	return float64(len([]rune(text)) * DotsX)
}

// DrawLayer composites the lit dots of a cached layer over the canvas.
func (c *Canvas) DrawLayer(l *Layer) {
	src := l.canvas
	for y := 0; y < min(src.h, c.h); y++ {
		for x := 0; x < min(src.w, c.w); x++ {
			if d := src.dots[y*src.w+x]; d.on {
				c.dots[y*c.w+x] = dot{on: true, color: c.color(d.color)}
			}
		}
	}
}

// Flush rasterizes the canvas into the screen: each cell becomes a braille
// glyph colored after its first lit dot, text cells take precedence.
func (c *Canvas) Flush(s *core.Screen) {
	if s.Width() != c.cols || s.Height() != c.rows {
		s.Resize(c.cols, c.rows)
	}
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			if t := c.text[row*c.cols+col]; t.Rune != 0 {
				s.SetCell(col, row, t.Rune, t.Color)
				continue
			}

			var bits rune
			var color core.Color
			found := false
			for dy := 0; dy < DotsY; dy++ {
				for dx := 0; dx < DotsX; dx++ {
					d := c.dots[(row*DotsY+dy)*c.w+col*DotsX+dx]
					if !d.on {
						continue
					}
					bits |= brailleBits[dy][dx]
					if !found {
						color, found = d.color, true
					}
				}
			}
			if bits == 0 {
				s.SetCell(col, row, ' ', core.ColorDefault)
				continue
			}
			s.SetCell(col, row, 0x2800+bits, color)
		}
	}
}
