// Package sprite holds sprite atlases and the cache that loads them.
//
// An atlas is a single alpha image plus named sub-rectangles. Atlases are
// authored as text masks ('#' opaque, '.' transparent, ';' comments, '@name'
// starts a sprite) or as PNG files, and embedded in the binary.
package sprite

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"strings"
)

// Sprite is a named region of an atlas.
type Sprite struct {
	Name string
	X, Y int
	W, H int
}

// Bounds returns the sprite region inside the atlas source image.
func (s Sprite) Bounds() image.Rectangle {
	return image.Rect(s.X, s.Y, s.X+s.W, s.Y+s.H)
}

// Atlas is an alpha source image with named regions.
type Atlas struct {
	ID      string
	Source  *image.Alpha
	sprites map[string]Sprite
	order   []string
}

// Sprite returns the named region.
func (a *Atlas) Sprite(name string) (Sprite, bool) {
	s, ok := a.sprites[name]
	return s, ok
}

// MustSprite returns the named region and panics if it does not exist.
// Sprite names are compiled into the games, so a miss is a programming error.
func (a *Atlas) MustSprite(name string) Sprite {
	s, ok := a.sprites[name]
	if !ok {
		panic(fmt.Sprintf("sprite: atlas %q has no sprite %q", a.ID, name))
	}
	return s
}

// Names returns sprite names in authoring order.
func (a *Atlas) Names() []string {
	out := make([]string, len(a.order))
	copy(out, a.order)
	return out
}

// Opaque reports whether the pixel at (x, y) relative to the sprite origin
// is set.
func (a *Atlas) Opaque(s Sprite, x, y int) bool {
	if x < 0 || y < 0 || x >= s.W || y >= s.H {
		return false
	}
	return a.Source.AlphaAt(s.X+x, s.Y+y).A > 0
}

type maskRows struct {
	name string
	rows []string
}

// ParseMask reads a text mask atlas. Sprites are stacked vertically in the
// resulting source image.
func ParseMask(id string, r io.Reader) (*Atlas, error) {
	var (
		masks   []maskRows
		current *maskRows
	)

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		switch {
		case text == "" || strings.HasPrefix(text, ";"):
			continue
		case strings.HasPrefix(text, "@"):
			name := strings.TrimSpace(text[1:])
			if name == "" {
				return nil, fmt.Errorf("sprite: %s:%d: empty sprite name", id, line)
			}
			masks = append(masks, maskRows{name: name})
			current = &masks[len(masks)-1]
		default:
			if current == nil {
				return nil, fmt.Errorf("sprite: %s:%d: pixel row before sprite name", id, line)
			}
			if len(current.rows) > 0 && len(text) != len(current.rows[0]) {
				return nil, fmt.Errorf("sprite: %s:%d: row width %d, expected %d", id, line, len(text), len(current.rows[0]))
			}
			current.rows = append(current.rows, text)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("sprite: read %s: %w", id, err)
	}

	width, height := 0, 0
	for _, m := range masks {
		if len(m.rows) == 0 {
			return nil, fmt.Errorf("sprite: %s: sprite %q has no pixels", id, m.name)
		}
		width = max(width, len(m.rows[0]))
		height += len(m.rows)
	}

	atlas := &Atlas{
		ID:      id,
		Source:  image.NewAlpha(image.Rect(0, 0, width, height)),
		sprites: make(map[string]Sprite, len(masks)),
	}

	y := 0
	for _, m := range masks {
		if _, dup := atlas.sprites[m.name]; dup {
			return nil, fmt.Errorf("sprite: %s: duplicate sprite %q", id, m.name)
		}
		for dy, row := range m.rows {
			for dx, ch := range row {
				switch ch {
				case '#':
					atlas.Source.SetAlpha(dx, y+dy, color.Alpha{A: 0xff})
				case '.':
				default:
					return nil, fmt.Errorf("sprite: %s: sprite %q has invalid pixel %q", id, m.name, ch)
				}
			}
		}
		atlas.sprites[m.name] = Sprite{Name: m.name, X: 0, Y: y, W: len(m.rows[0]), H: len(m.rows)}
		atlas.order = append(atlas.order, m.name)
		y += len(m.rows)
	}

	return atlas, nil
}

// FromImage builds a single-sprite atlas from any image, keeping only its
// alpha channel. The sprite is named after the atlas id.
func FromImage(id string, img image.Image) *Atlas {
	b := img.Bounds()
	src := image.NewAlpha(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			_, _, _, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			src.SetAlpha(x, y, color.Alpha{A: uint8(a >> 8)})
		}
	}
	return &Atlas{
		ID:      id,
		Source:  src,
		sprites: map[string]Sprite{id: {Name: id, W: b.Dx(), H: b.Dy()}},
		order:   []string{id},
	}
}
