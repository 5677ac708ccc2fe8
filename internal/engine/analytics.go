package engine

import (
	"fmt"
	"time"

	"github.com/vovakirdan/pixel-arcade/internal/core"
	"github.com/vovakirdan/pixel-arcade/internal/render"
)

const maxChartEntries = 60

// Analytics measures frames and simulation updates per second and keeps a
// short history of frame times for the statistics overlay.
type Analytics struct {
	now func() time.Time

	frameStart  time.Time
	frameTimer  float64
	frameCount  int
	updateCount int
	fps, ups    int

	chart []float64 // milliseconds
}

// NewAnalytics creates an empty collector.
func NewAnalytics() *Analytics {
	return &Analytics{now: time.Now}
}

// Clear drops the frame time history.
func (a *Analytics) Clear() {
	a.chart = a.chart[:0]
}

// CommitUpdate counts one simulation substep.
func (a *Analytics) CommitUpdate() {
	a.updateCount++
}

func (a *Analytics) StartFrame() {
	a.frameStart = a.now()
}

func (a *Analytics) EndFrame() {
	if a.frameStart.IsZero() {
		return
	}
	elapsed := float64(a.now().Sub(a.frameStart).Microseconds()) / 1000
	a.frameCount++
	a.chart = append(a.chart, elapsed)
	if len(a.chart) > maxChartEntries {
		a.chart = a.chart[1:]
	}
}

// Update rolls the per-second counters.
func (a *Analytics) Update(dt float64) {
	a.frameTimer += dt
	if a.frameTimer >= 1 {
		a.frameTimer -= 1
		a.fps, a.ups = a.frameCount, a.updateCount
		a.frameCount, a.updateCount = 0, 0
	}
}

// FPS returns frames and updates counted during the last full second.
func (a *Analytics) FPS() (fps, ups int) {
	return a.fps, a.ups
}

// Summary returns the average, maximum and last frame time in milliseconds.
func (a *Analytics) Summary() (avg, peak, last float64) {
	if len(a.chart) == 0 {
		return 0, 0, 0
	}
	total := 0.0
	for _, v := range a.chart {
		total += v
		peak = max(peak, v)
	}
	return total / float64(len(a.chart)), peak, a.chart[len(a.chart)-1]
}

// Render draws the overlay in the top-left corner.
func (a *Analytics) Render(s render.Surface) {
	avg, peak, last := a.Summary()
	lines := []string{
		fmt.Sprintf("FPS %d / %d", a.fps, a.ups),
		fmt.Sprintf("avg %.2fms", avg),
		fmt.Sprintf("max %.2fms", peak),
		fmt.Sprintf("last %.2fms", last),
	}
	for i, l := range lines {
		s.DrawText(core.Vec(2, float64(i*render.DotsY)), l, render.AlignLeft, core.ColorBrightWhite)
	}

	if len(a.chart) < 2 || peak <= 0 {
		return
	}
	const (
		chartX = 2.0
		chartW = 60.0
		chartH = 12.0
	)
	chartY := float64(len(lines)*render.DotsY) + 1
	spacing := chartW / maxChartEntries
	prev := core.Vector{}
	for i, v := range a.chart {
		p := core.Vec(chartX+float64(i)*spacing, chartY+chartH-v/peak*chartH)
		if i > 0 {
			s.DrawLine(prev, p, core.ColorBrightGreen)
		}
		prev = p
	}
}
