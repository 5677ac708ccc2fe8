package dino

import (
	"context"
	"fmt"
	"math"

	"github.com/vovakirdan/pixel-arcade/internal/collision"
	"github.com/vovakirdan/pixel-arcade/internal/core"
	"github.com/vovakirdan/pixel-arcade/internal/engine"
	"github.com/vovakirdan/pixel-arcade/internal/render"
	"github.com/vovakirdan/pixel-arcade/internal/sprite"
)

// labSpeed is how fast the arrow keys move the probe, in pixels per second.
const labSpeed = 40

// debugState is the collision lab: a cactus follows the pointer (or the
// arrow keys) over a standing runner, showing both boxes, their
// intersection and the pixel test result.
type debugState struct {
	game    *Game
	env     *engine.Env
	atlas   *sprite.Atlas
	checker *collision.Checker

	probe, target         sprite.Sprite
	probePos, targetPos   core.Vector
	overlap, pixelPerfect bool
}

func newDebugState(g *Game, env *engine.Env) *debugState {
	return &debugState{game: g, env: env}
}

func (d *debugState) Phase() engine.Phase { return engine.PhaseDebug }

func (d *debugState) Setup(ctx context.Context) error {
	atlas, err := d.env.Assets.Load(ctx, sprite.RunnerAtlas)
	if err != nil {
		return fmt.Errorf("dino: load sprites: %w", err)
	}
	checker, err := collision.NewChecker(atlas)
	if err != nil {
		return fmt.Errorf("dino: %w", err)
	}
	d.atlas, d.checker = atlas, checker
	d.probe = atlas.MustSprite("cactusSmall0")
	d.target = atlas.MustSprite("dino0")
	d.layout(d.env.Width(), d.env.Height())
	return nil
}

func (d *debugState) layout(w, h float64) {
	d.probePos = core.Vec(math.Floor(w/2-float64(d.probe.W)/2), math.Floor(h/2-float64(d.probe.H)/2))
	d.targetPos = core.Vec(math.Floor(w/2-float64(d.target.W)/2), math.Floor(h/4))
	d.test()
}

func (d *debugState) Update(dt float64) {
	in := d.env.Input
	if in.PointerMoved {
		d.probePos = core.Vec(
			math.Floor(in.Pointer.X-float64(d.probe.W)/2),
			math.Floor(in.Pointer.Y-float64(d.probe.H)/2),
		)
	}
	var move core.Vector
	if in.IsDown(core.ActionLeft) {
		move.X--
	}
	if in.IsDown(core.ActionRight) {
		move.X++
	}
	if in.IsDown(core.ActionLongJump) {
		move.Y--
	}
	if in.IsDown(core.ActionDuck) {
		move.Y++
	}
	d.probePos = d.probePos.Add(move.Scale(labSpeed * dt))
	d.test()
	d.env.Invalidate()
}

func (d *debugState) test() {
	a := collision.Bounds(d.probePos, d.probe)
	b := collision.Bounds(d.targetPos, d.target)
	d.overlap = collision.Intersects(a, b)
	d.pixelPerfect = d.checker.Collides(d.probePos, d.probe, d.targetPos, d.target)
}

func (d *debugState) Resize(w, h float64) {
	d.layout(w, h)
}

func (d *debugState) Render(s render.Surface) {
	s.DrawSprite(d.atlas, d.target, d.targetPos, core.ColorBrightWhite)
	s.DrawSprite(d.atlas, d.probe, d.probePos, core.ColorGreen)

	a := collision.Bounds(d.probePos, d.probe)
	b := collision.Bounds(d.targetPos, d.target)
	ca, cb := core.ColorYellow, core.ColorMagenta
	if d.overlap {
		ca, cb = core.ColorRed, core.ColorRed
		outline(s, a.Intersection(b), core.ColorBrightGreen)
	}
	outline(s, a, ca)
	outline(s, b, cb)

	w, h := s.Width(), s.Height()
	dist := core.Distance(a.Center(), b.Center())
	status := fmt.Sprintf("aabb %t  masks %d  dist %.1f", d.overlap, d.checker.MaskChecks(), dist)
	s.DrawText(core.Vec(2, 0), status, render.AlignLeft, core.ColorWhite)
	if d.pixelPerfect {
		s.DrawText(core.Vec(w/2, h-2*render.DotsY), "pixel perfect collision", render.AlignCenter, core.ColorBrightGreen)
	}
}

func outline(s render.Surface, r core.Rect, c core.Color) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	tl, tr := core.Vec(r.X, r.Y), core.Vec(r.Right()-1, r.Y)
	bl, br := core.Vec(r.X, r.Bottom()-1), core.Vec(r.Right()-1, r.Bottom()-1)
	s.DrawLine(tl, tr, c)
	s.DrawLine(tr, br, c)
	s.DrawLine(br, bl, c)
	s.DrawLine(bl, tl, c)
}
