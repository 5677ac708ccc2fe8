package dino

import (
	"github.com/vovakirdan/pixel-arcade/internal/sprite"
)

// sprites are the regions of the runner atlas the game draws.
type sprites struct {
	run    [2]sprite.Sprite
	crouch [2]sprite.Sprite
	idle   sprite.Sprite
	dead   sprite.Sprite

	cactusSmall []sprite.Sprite
	cactusBig   []sprite.Sprite
	ptero       [2]sprite.Sprite

	cloud  sprite.Sprite
	ground sprite.Sprite
}

func loadSprites(a *sprite.Atlas) sprites {
	return sprites{
		run:    [2]sprite.Sprite{a.MustSprite("dino0"), a.MustSprite("dino1")},
		crouch: [2]sprite.Sprite{a.MustSprite("crouch0"), a.MustSprite("crouch1")},
		idle:   a.MustSprite("dinoIdle"),
		dead:   a.MustSprite("dinoDead"),
		cactusSmall: []sprite.Sprite{
			a.MustSprite("cactusSmall0"),
			a.MustSprite("cactusSmall1"),
			a.MustSprite("cactusSmall2"),
		},
		cactusBig: []sprite.Sprite{
			a.MustSprite("cactusBig0"),
			a.MustSprite("cactusBig1"),
			a.MustSprite("cactusBig2"),
		},
		ptero:  [2]sprite.Sprite{a.MustSprite("ptero0"), a.MustSprite("ptero1")},
		cloud:  a.MustSprite("cloud"),
		ground: a.MustSprite("ground"),
	}
}

// cactusWidths returns the narrowest and the widest cactus.
func (s sprites) cactusWidths() (lo, hi float64) {
	lo, hi = float64(s.cactusSmall[0].W), float64(s.cactusSmall[0].W)
	for _, set := range [][]sprite.Sprite{s.cactusSmall, s.cactusBig} {
		for _, c := range set {
			lo, hi = min(lo, float64(c.W)), max(hi, float64(c.W))
		}
	}
	return lo, hi
}
