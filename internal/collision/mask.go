package collision

import (
	"errors"
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/vovakirdan/pixel-arcade/internal/core"
	"github.com/vovakirdan/pixel-arcade/internal/sprite"
)

// ErrNoScratch is returned when the checker cannot set up its scratch
// surfaces. Without them no pixel test can run, so callers treat it as fatal.
var ErrNoScratch = errors.New("collision: scratch surface unavailable")

// Checker runs pixel-perfect overlap tests against one atlas.
// It is not safe for concurrent use.
type Checker struct {
	atlas     *sprite.Atlas
	scratch   *image.Alpha
	composite *image.Alpha

	maskChecks int
}

// NewChecker allocates scratch surfaces sized for the largest sprite of the
// atlas. They grow on demand.
func NewChecker(atlas *sprite.Atlas) (*Checker, error) {
	if atlas == nil || atlas.Source == nil {
		return nil, ErrNoScratch
	}

	w, h := 1, 1
	for _, name := range atlas.Names() {
		s := atlas.MustSprite(name)
		w, h = max(w, s.W), max(h, s.H)
	}

	c := &Checker{atlas: atlas}
	c.grow(w, h)
	return c, nil
}

func (c *Checker) grow(w, h int) {
	if c.scratch != nil && c.scratch.Rect.Dx() >= w && c.scratch.Rect.Dy() >= h {
		return
	}
	if c.scratch != nil {
		w, h = max(w, c.scratch.Rect.Dx()), max(h, c.scratch.Rect.Dy())
	}
	c.scratch = image.NewAlpha(image.Rect(0, 0, w, h))
	c.composite = image.NewAlpha(image.Rect(0, 0, w, h))
}

// MaskChecks returns how many times the pixel masks were evaluated.
func (c *Checker) MaskChecks() int {
	return c.maskChecks
}

// Bounds returns the world box of a sprite drawn at pos.
func Bounds(pos core.Vector, s sprite.Sprite) core.Rect {
	return core.NewRect(pos.X, pos.Y, float64(s.W), float64(s.H))
}

// Collides reports whether any opaque pixel of sprite a drawn at posA
// overlaps an opaque pixel of sprite b drawn at posB.
func (c *Checker) Collides(posA core.Vector, a sprite.Sprite, posB core.Vector, b sprite.Sprite) bool {
	boxA, boxB := Bounds(posA, a), Bounds(posB, b)
	if !boxA.Intersects(boxB) {
		return false
	}

	inter := boxA.Intersection(boxB)
	ix, iy := int(math.Floor(inter.X)), int(math.Floor(inter.Y))
	iw, ih := int(math.Ceil(inter.W)), int(math.Ceil(inter.H))
	if iw <= 1 || ih <= 1 {
		return false
	}

	c.maskChecks++
	c.grow(iw, ih)

	area := image.Rect(0, 0, iw, ih)
	scratch := c.scratch.SubImage(area).(*image.Alpha)
	composite := c.composite.SubImage(area).(*image.Alpha)
	draw.Draw(scratch, area, image.Transparent, image.Point{}, draw.Src)
	draw.Draw(composite, area, image.Transparent, image.Point{}, draw.Src)

	// Sprite A into the scratch surface.
	ra := placed(posA, a, ix, iy)
	draw.Draw(scratch, ra, c.atlas.Source, image.Pt(a.X, a.Y), draw.Src)

	// Sprite B through A's alpha: only pixels opaque in both survive.
	rb := placed(posB, b, ix, iy)
	draw.DrawMask(composite, rb, c.atlas.Source, image.Pt(b.X, b.Y), scratch, rb.Min, draw.Src)

	for y := 0; y < ih; y++ {
		row := composite.Pix[y*composite.Stride : y*composite.Stride+iw]
		for _, alpha := range row {
			if alpha != 0 {
				return true
			}
		}
	}
	return false
}

// placed returns the sprite rectangle in scratch coordinates.
func placed(pos core.Vector, s sprite.Sprite, ox, oy int) image.Rectangle {
	x := int(math.Floor(pos.X)) - ox
	y := int(math.Floor(pos.Y)) - oy
	return image.Rect(x, y, x+s.W, y+s.H)
}
