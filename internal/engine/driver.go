package engine

import (
	"context"
	"time"

	"github.com/vovakirdan/pixel-arcade/internal/render"
)

// Defaults for NewDriver.
const (
	DefaultSubsteps      = 4
	DefaultMaxFrameDelta = 0.25
)

// Driver turns wall-clock frames into substepped simulation updates.
type Driver struct {
	env      *Env
	substeps int
	maxDelta float64

	running     bool
	hasBaseline bool
	last        time.Time

	stats     *Analytics
	showStats bool
}

// NewDriver creates a driver for env. substeps <= 0 selects the default.
func NewDriver(env *Env, substeps int) *Driver {
	if substeps <= 0 {
		substeps = DefaultSubsteps
	}
	return &Driver{
		env:      env,
		substeps: substeps,
		maxDelta: DefaultMaxFrameDelta,
		stats:    NewAnalytics(),
	}
}

// Start makes initial the current state and starts accepting frames.
func (d *Driver) Start(ctx context.Context, initial State) error {
	d.env.machine.Set(initial)
	if _, err := d.env.machine.Apply(ctx); err != nil {
		return err
	}
	d.running = true
	d.hasBaseline = false
	d.env.Invalidate()
	return nil
}

// Env returns the driven environment.
func (d *Driver) Env() *Env { return d.env }

// Running reports whether frames are processed.
func (d *Driver) Running() bool { return d.running }

// Suspend stops frame processing while the display is hidden.
func (d *Driver) Suspend() {
	d.running = false
	d.hasBaseline = false
}

// Resume restarts frame processing. The first frame after a resume
// simulates nothing, so time spent hidden is never applied.
func (d *Driver) Resume() {
	if d.running {
		return
	}
	d.running = true
	d.hasBaseline = false
	d.env.Invalidate()
}

// Resize updates the viewport and lets the current state re-layout.
func (d *Driver) Resize(w, h float64) {
	if w == d.env.width && h == d.env.height {
		return
	}
	d.env.width, d.env.height = w, h
	if r, ok := d.env.machine.Current().(Resizer); ok {
		r.Resize(w, h)
	}
	d.env.Invalidate()
}

// ToggleStats shows or hides the frame statistics overlay.
func (d *Driver) ToggleStats() {
	d.showStats = !d.showStats
	d.stats.Clear()
	d.env.Invalidate()
}

// Frame advances the simulation to now and reports whether the frame must
// be redrawn.
func (d *Driver) Frame(ctx context.Context, now time.Time) (bool, error) {
	if !d.running {
		return false, nil
	}
	d.stats.StartFrame()

	dt := 0.0
	if d.hasBaseline {
		dt = min(max(now.Sub(d.last).Seconds(), 0), d.maxDelta)
	}
	d.last = now
	d.hasBaseline = true

	m := d.env.machine
	if state := m.Current(); dt > 0 && state != nil {
		n := d.substeps
		if s, ok := state.(Substepper); ok && s.Substeps() > 0 {
			n = s.Substeps()
		}
		step := dt / float64(n)
		for i := 0; i < n && !m.Pending(); i++ {
			d.env.Time += step
			state.Update(step)
			d.stats.CommitUpdate()
		}
		if fu, ok := state.(FrameUpdater); ok && !m.Pending() {
			fu.FrameUpdate(dt)
		}
		d.env.Input.Clear()
	}
	if d.showStats {
		d.stats.Update(dt)
		d.env.Invalidate()
	}

	changed, err := m.Apply(ctx)
	if err != nil {
		return false, err
	}
	if changed {
		d.env.Invalidate()
	}

	redraw := d.env.dirty
	d.env.dirty = false
	return redraw, nil
}

// Render paints the current state onto s.
func (d *Driver) Render(s render.Surface) {
	s.Clear()
	state := d.env.machine.Current()
	if state == nil {
		return
	}
	if pr, ok := state.(PreRenderer); ok {
		pr.PreRender(s)
	}
	state.Render(s)
	if d.showStats {
		d.stats.Render(s)
	}
	d.stats.EndFrame()
}
