package dino

import (
	"context"
	"math"
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/vovakirdan/pixel-arcade/internal/audio"
	"github.com/vovakirdan/pixel-arcade/internal/config"
	"github.com/vovakirdan/pixel-arcade/internal/core"
	"github.com/vovakirdan/pixel-arcade/internal/engine"
	"github.com/vovakirdan/pixel-arcade/internal/sprite"
)

const (
	testW = 160.0
	testH = 92.0
	step  = 1.0 / 240
)

type recorder struct {
	effects []audio.Effect
}

func (r *recorder) Play(float64, time.Duration, float64) {}
func (r *recorder) PlayEffect(e audio.Effect)            { r.effects = append(r.effects, e) }

func (r *recorder) count(e audio.Effect) int {
	n := 0
	for _, got := range r.effects {
		if got == e {
			n++
		}
	}
	return n
}

type scores struct {
	highest int
	current bool
	records []int
}

func (s *scores) Highest() int           { return s.highest }
func (s *scores) SetHighest(v int)       { s.highest, s.current = v, true }
func (s *scores) IsCurrentHighest() bool { return s.current }
func (s *scores) ResetCurrent()          { s.current = false }
func (s *scores) Record(v int)           { s.records = append(s.records, v) }

func newTestEnv(seed int64, h float64, rec *recorder, sc *scores) *engine.Env {
	opts := engine.Options{Config: core.RuntimeConfig{Seed: seed}, Width: testW, Height: h}
	if rec != nil {
		opts.Audio = rec
	}
	if sc != nil {
		opts.Scores = sc
	}
	return engine.NewEnv(opts)
}

// fataler is the part of testing.T and rapid.T the helpers need.
type fataler interface {
	Helper()
	Fatalf(format string, args ...any)
}

func newTestWorld(t fataler, seed int64, cfg config.DinoConfig) (*World, *recorder) {
	t.Helper()
	rec := &recorder{}
	w, err := NewWorld(context.Background(), newTestEnv(seed, testH, rec, nil), cfg)
	if err != nil {
		t.Fatalf("NewWorld() error: %v", err)
	}
	return w, rec
}

// jumpHeight jumps from the ground and returns how high the runner got.
func jumpHeight(w *World, scalar, dt float64) float64 {
	d := w.Dino
	start := d.Position.Y
	d.Update(dt, Controls{Jump: true, Scalar: scalar})
	top := d.Position.Y
	for range 10000 {
		d.Update(dt, Controls{})
		top = min(top, d.Position.Y)
		if d.Grounded() {
			break
		}
	}
	return start - top
}

func TestLongJumpPeaksHigher(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		dt := rapid.Float64Range(1.0/480, 1.0/60).Draw(t, "dt")
		cfg := config.DefaultDinoConfig()

		short, _ := newTestWorld(t, 1, cfg)
		long, _ := newTestWorld(t, 1, cfg)
		hs := jumpHeight(short, 1, dt)
		hl := jumpHeight(long, cfg.Physics.LongJump, dt)
		if hl <= hs {
			t.Fatalf("long jump peak %v, expected more than the regular %v", hl, hs)
		}
		if !short.Dino.Grounded() || !long.Dino.Grounded() {
			t.Fatalf("runner did not land")
		}
	})
}

func TestJumpHeight(t *testing.T) {
	cfg := config.DefaultDinoConfig()
	w, rec := newTestWorld(t, 1, cfg)
	expected := cfg.Physics.JumpVelocity * cfg.Physics.JumpVelocity / (2 * cfg.Physics.Gravity)

	if got := jumpHeight(w, 1, step); math.Abs(got-expected) > 1 {
		t.Errorf("jump height = %v, expected about %v", got, expected)
	}
	if n := rec.count(audio.EffectJump); n != 1 {
		t.Errorf("jump sounds = %d, expected 1", n)
	}
}

func TestJumpOnlyWhenGrounded(t *testing.T) {
	w, _ := newTestWorld(t, 1, config.DefaultDinoConfig())
	d := w.Dino
	if !d.Jump(step, 1) {
		t.Fatal("Jump() on the ground = false, expected true")
	}
	d.Update(step, Controls{})
	if d.Grounded() {
		t.Fatal("runner still grounded after jumping")
	}
	if d.Jump(step, 1) {
		t.Error("Jump() in the air = true, expected false")
	}
	if d.Jump(0, 1) {
		t.Error("Jump() with zero dt = true, expected false")
	}
}

func TestJumpCarriesIntoUpdate(t *testing.T) {
	cfg := config.DefaultDinoConfig()
	peak := func(scalar float64) float64 {
		w, rec := newTestWorld(t, 1, cfg)
		d := w.Dino
		start := d.Position.Y
		if !d.Jump(step, scalar) {
			t.Fatalf("Jump(%v) on the ground = false, expected true", scalar)
		}
		d.Update(step, Controls{})
		if d.Position.Y >= start {
			t.Fatalf("scalar %v: y = %v after the launch, expected above %v", scalar, d.Position.Y, start)
		}
		if expected := -cfg.Physics.JumpVelocity * scalar; math.Abs(d.Velocity.Y-expected) > 1e-9 {
			t.Errorf("scalar %v: vy = %v, expected %v", scalar, d.Velocity.Y, expected)
		}
		top := d.Position.Y
		for range 10000 {
			d.Update(step, Controls{})
			top = min(top, d.Position.Y)
			if d.Grounded() {
				break
			}
		}
		if !d.Grounded() {
			t.Fatalf("scalar %v: runner did not land", scalar)
		}
		if d.Acceleration.Y != 0 {
			t.Errorf("scalar %v: landed acceleration = %v, expected 0", scalar, d.Acceleration.Y)
		}
		if n := rec.count(audio.EffectJump); n != 1 {
			t.Errorf("scalar %v: jump sounds = %d, expected 1", scalar, n)
		}
		return start - top
	}

	regular, long := peak(1), peak(1.25)
	if long <= regular {
		t.Errorf("peak with scalar 1.25 = %v, expected more than %v", long, regular)
	}
}

func TestRunnerStaysBetweenCeilingAndGround(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		h := rapid.Float64Range(20, 120).Draw(t, "h")
		env := newTestEnv(1, h, nil, nil)
		w, err := NewWorld(context.Background(), env, config.DefaultDinoConfig())
		if err != nil {
			t.Fatalf("NewWorld() error: %v", err)
		}
		d := w.Dino

		for i := range rapid.IntRange(1, 400).Draw(t, "steps") {
			c := Controls{
				Jump:   rapid.Bool().Draw(t, "jump"),
				Scalar: rapid.Float64Range(0, 2).Draw(t, "scalar"),
				Crouch: rapid.Bool().Draw(t, "crouch"),
			}
			d.Update(rapid.Float64Range(1e-4, 1.0/30).Draw(t, "dt"), c)
			if d.Position.Y < 0 || d.Position.Y > d.groundHeight() {
				t.Fatalf("step %d: y = %v, expected within [0, %v]", i, d.Position.Y, d.groundHeight())
			}
		}
	})
}

func TestCeilingStopsJump(t *testing.T) {
	env := newTestEnv(1, 30, nil, nil)
	w, err := NewWorld(context.Background(), env, config.DefaultDinoConfig())
	if err != nil {
		t.Fatal(err)
	}
	d := w.Dino
	d.Update(step, Controls{Jump: true})
	stopped := false
	for range 120 {
		d.Update(step, Controls{})
		if d.Position.Y < 0 {
			t.Fatalf("y = %v, expected the ceiling to hold", d.Position.Y)
		}
		stopped = stopped || (d.Position.Y == 0 && d.Velocity.Y == 0)
	}
	if !stopped {
		t.Error("runner never stopped at the ceiling")
	}
}

func TestCrouch(t *testing.T) {
	cfg := config.DefaultDinoConfig()
	w, _ := newTestWorld(t, 1, cfg)
	d := w.Dino

	d.Update(step, Controls{Crouch: true})
	if !d.Crouching {
		t.Fatal("Crouching = false, expected true")
	}
	if expected := testH - 4 - 8 + cfg.Player.GroundOffset; d.Position.Y != expected {
		t.Errorf("crouching y = %v, expected %v", d.Position.Y, expected)
	}
	if s := d.Sprite(); s.H != 8 {
		t.Errorf("crouch sprite %q height = %d, expected 8", s.Name, s.H)
	}

	d.Update(step, Controls{})
	if d.Crouching || d.Position.Y != testH-4-12+cfg.Player.GroundOffset {
		t.Errorf("after standing up crouching = %v, y = %v", d.Crouching, d.Position.Y)
	}
}

func TestCrouchInTheAirFallsFaster(t *testing.T) {
	airtime := func(crouch bool) int {
		w, _ := newTestWorld(t, 1, config.DefaultDinoConfig())
		d := w.Dino
		d.Update(step, Controls{Jump: true})
		for i := 1; i < 10000; i++ {
			d.Update(step, Controls{Crouch: crouch && d.Velocity.Y >= 0})
			if d.Grounded() {
				return i
			}
		}
		return -1
	}
	plain, fast := airtime(false), airtime(true)
	if fast >= plain {
		t.Errorf("crouching airtime %d steps, expected less than %d", fast, plain)
	}
}

func TestRunAnimation(t *testing.T) {
	cfg := config.DefaultDinoConfig()
	w, _ := newTestWorld(t, 1, cfg)
	w.Speed = 1
	d := w.Dino

	if got := d.Sprite().Name; got != "dino0" {
		t.Errorf("first frame = %q, expected dino0", got)
	}
	d.Update(cfg.Player.SpriteInterval+step, Controls{})
	if got := d.Sprite().Name; got != "dino1" {
		t.Errorf("second frame = %q, expected dino1", got)
	}
	d.Dead = true
	if got := d.Sprite().Name; got != "dinoDead" {
		t.Errorf("dead frame = %q, expected dinoDead", got)
	}
}

func TestHitDetection(t *testing.T) {
	cfg := config.DefaultDinoConfig()
	tests := []struct {
		name   string
		kind   ObstacleKind
		crouch bool
		invuln bool
		hit    bool
	}{
		{"cactus hits standing runner", KindCactus, false, false, true},
		{"cactus hits crouching runner", KindCactus, true, false, true},
		{"invulnerable runner ignores cactus", KindCactus, false, true, false},
		{"pterodactyl hits standing runner", KindPterodactyl, false, false, true},
		{"crouching runner ducks pterodactyl", KindPterodactyl, true, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := newTestWorld(t, 1, cfg)
			d := w.Dino
			if tt.crouch {
				d.Update(step, Controls{Crouch: true})
			}
			if tt.invuln {
				d.Invulnerable = 1
			}

			var o *Obstacle
			if tt.kind == KindPterodactyl {
				o = w.newPterodactyl()
			} else {
				s := w.sprites.cactusSmall[0]
				o = &Obstacle{Kind: KindCactus, Position: core.Vec(0, w.cactusY(s)), frames: [2]sprite.Sprite{s, s}}
			}
			o.Position.X = d.Position.X + 4
			w.Obstacles = []*Obstacle{o}

			if got := w.Hit() != nil; got != tt.hit {
				t.Errorf("Hit() = %v, expected %v", got, tt.hit)
			}
		})
	}
}

func TestSpawnInterval(t *testing.T) {
	cfg := config.DefaultDinoConfig()
	base := testW / cfg.Physics.BaseSpeed
	tests := []struct {
		name     string
		speed    float64
		touch    bool
		expected float64
	}{
		{"normal", 1, false, base},
		{"double speed", 2, false, base / 2},
		{"touch", 1, true, base * cfg.Touch.IntervalFactor},
		{"standing still", 0, false, math.Inf(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := newTestWorld(t, 1, cfg)
			w.Speed, w.touch = tt.speed, tt.touch
			var sp ObstacleSpawner
			if got := sp.Interval(w); math.Abs(got-tt.expected) > 1e-9 && !(math.IsInf(got, 1) && math.IsInf(tt.expected, 1)) {
				t.Errorf("Interval() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestObstacleSpawner(t *testing.T) {
	tests := []struct {
		name    string
		ptero   float64
		cactus  float64
		double  float64
		clock   float64
		touch   bool
		early   bool
		kind    ObstacleKind
		spawned bool
	}{
		{"waits for the interval", 1, 1, 0, 10, false, true, KindCactus, false},
		{"cactus", 0, 1, 0, 0, false, false, KindCactus, true},
		{"pterodactyl after the delay", 1, 1, 0, 10, false, false, KindPterodactyl, true},
		{"no pterodactyl before the delay", 1, 1, 0, 1, false, false, KindCactus, true},
		{"no pterodactyl on touch", 1, 1, 0, 10, true, false, KindCactus, true},
		{"failed roll", 0, 0, 0, 10, false, false, KindCactus, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultDinoConfig()
			cfg.Obstacles.PteroChance = tt.ptero
			cfg.Obstacles.CactusChance = tt.cactus
			cfg.Obstacles.DoubleSpawnChance = tt.double
			w, _ := newTestWorld(t, 1, cfg)
			w.Speed, w.env.Time, w.touch = 1, tt.clock, tt.touch

			var sp ObstacleSpawner
			if !tt.early {
				sp.Timer = sp.Interval(w)
			}
			o := sp.Update(step, w)
			if (o != nil) != tt.spawned {
				t.Fatalf("spawned = %v, expected %v", o != nil, tt.spawned)
			}
			if !tt.spawned {
				if len(w.Obstacles) != 0 {
					t.Errorf("len(Obstacles) = %d, expected 0", len(w.Obstacles))
				}
				return
			}
			if o.Kind != tt.kind {
				t.Errorf("kind = %v, expected %v", o.Kind, tt.kind)
			}
			if o.Position.X <= w.Width {
				t.Errorf("spawned at x = %v, expected right of the screen", o.Position.X)
			}
			if sp.Timer != 0 {
				t.Errorf("Timer = %v, expected 0", sp.Timer)
			}
		})
	}
}

func TestPterodactylDelayCountsMenuTime(t *testing.T) {
	cfg := config.DefaultDinoConfig()
	cfg.Obstacles.PteroChance = 1
	cfg.Obstacles.CactusChance = 1
	w, _ := newTestWorld(t, 1, cfg)
	// The run has just started after a long stay in the menu.
	w.Speed, w.Elapsed, w.env.Time = 1, 0.5, cfg.Obstacles.PteroStartDelay+1

	var sp ObstacleSpawner
	sp.Timer = sp.Interval(w)
	o := sp.Update(step, w)
	if o == nil || o.Kind != KindPterodactyl {
		t.Fatalf("spawned %+v, expected a pterodactyl once the game clock passed %v", o, cfg.Obstacles.PteroStartDelay)
	}
}

func TestDoubleSpawnHalvesTimer(t *testing.T) {
	cfg := config.DefaultDinoConfig()
	cfg.Obstacles.CactusChance = 1
	cfg.Obstacles.DoubleSpawnChance = 10
	w, _ := newTestWorld(t, 1, cfg)
	w.Speed = 1

	var sp ObstacleSpawner
	interval := sp.Interval(w)
	sp.Timer = interval
	if sp.Update(step, w) == nil {
		t.Fatal("no obstacle spawned")
	}
	if expected := interval/2 + step; math.Abs(sp.Timer-expected) > 1e-9 {
		t.Errorf("Timer = %v, expected %v", sp.Timer, expected)
	}
}

func TestFailedRollKeepsTimer(t *testing.T) {
	cfg := config.DefaultDinoConfig()
	cfg.Obstacles.CactusChance = 0
	cfg.Obstacles.PteroChance = 0
	w, _ := newTestWorld(t, 1, cfg)
	w.Speed = 1

	var sp ObstacleSpawner
	sp.Timer = sp.Interval(w)
	sp.Update(step, w)
	if sp.Timer < sp.Interval(w) {
		t.Errorf("Timer = %v, expected to stay past the interval", sp.Timer)
	}
}

func TestObstaclesLeaveTheScreen(t *testing.T) {
	w, _ := newTestWorld(t, 1, config.DefaultDinoConfig())
	w.Speed = 1
	o := w.newCactus()
	o.Position.X = -o.Width() + 0.5
	w.Obstacles = []*Obstacle{o}

	w.updateObstacles(1)
	if len(w.Obstacles) != 0 {
		t.Errorf("len(Obstacles) = %d, expected 0", len(w.Obstacles))
	}
}

func TestPterodactylFlaps(t *testing.T) {
	w, _ := newTestWorld(t, 1, config.DefaultDinoConfig())
	o := w.newPterodactyl()
	if a, b := o.Sprite(0.1).Name, o.Sprite(0.3).Name; a == b {
		t.Errorf("frames at 0.1s and 0.3s are both %q", a)
	}
	if expected := testH - 4 - 12 - 5; o.Position.Y != expected {
		t.Errorf("pterodactyl y = %v, expected %v", o.Position.Y, expected)
	}
}

func TestClouds(t *testing.T) {
	cfg := config.DefaultDinoConfig()
	w, _ := newTestWorld(t, 1, cfg)
	if len(w.Clouds) != cfg.Clouds.Count/2 {
		t.Fatalf("initial clouds = %d, expected %d", len(w.Clouds), cfg.Clouds.Count/2)
	}

	for range 4000 {
		w.updateClouds(0.05)
		if len(w.Clouds) > cfg.Clouds.Count {
			t.Fatalf("len(Clouds) = %d, expected at most %d", len(w.Clouds), cfg.Clouds.Count)
		}
	}
	cw := float64(w.sprites.cloud.W)
	for _, c := range w.Clouds {
		if c.Position.X < -cw || c.Position.X > w.Width+cw {
			t.Errorf("cloud at x = %v left the sky", c.Position.X)
		}
		if c.Position.Y < 0 || c.Position.Y > w.Height/2 {
			t.Errorf("cloud at y = %v, expected in the upper half", c.Position.Y)
		}
		if c.Speed < cfg.Clouds.MinSpeed || c.Speed > cfg.Clouds.MaxSpeed {
			t.Errorf("cloud speed = %v, expected within [%v, %v]", c.Speed, cfg.Clouds.MinSpeed, cfg.Clouds.MaxSpeed)
		}
	}
}

func TestCloudNeedsAFreeRow(t *testing.T) {
	cfg := config.DefaultDinoConfig()
	cfg.Clouds.Count = 100
	w, _ := newTestWorld(t, 1, cfg)

	w.Clouds = w.Clouds[:0]
	for y := 0.0; y <= w.Height/2; y += 3 {
		w.Clouds = append(w.Clouds, Cloud{Position: core.Vec(10, y), Speed: 0})
	}
	n := len(w.Clouds)

	cs := CloudSpawner{Timer: cfg.Clouds.Interval}
	cs.Update(0, w)
	if len(w.Clouds) != n {
		t.Errorf("len(Clouds) = %d, expected %d", len(w.Clouds), n)
	}

	w.Clouds = w.Clouds[:0]
	cs.Timer = cfg.Clouds.Interval
	cs.Update(0, w)
	if len(w.Clouds) != 1 || w.Clouds[0].Position.X != w.Width+1 {
		t.Errorf("clouds = %+v, expected one at the right edge", w.Clouds)
	}
}

func TestGroundWraps(t *testing.T) {
	w, _ := newTestWorld(t, 1, config.DefaultDinoConfig())
	w.Speed = 1
	tw := float64(w.sprites.ground.W)
	for range 500 {
		w.Ground.Update(0.1, w)
		if w.Ground.Offset < 0 || w.Ground.Offset >= tw {
			t.Fatalf("Offset = %v, expected within [0, %v)", w.Ground.Offset, tw)
		}
	}
}

func TestSpeedRamp(t *testing.T) {
	tests := []struct {
		name   string
		touch  bool
		factor float64
	}{
		{"keyboard", false, 1},
		{"touch", true, config.DefaultDinoConfig().Touch.SpeedFactor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := newTestWorld(t, 1, config.DefaultDinoConfig())
			w.touch = tt.touch

			prev := 0.0
			for range 240 {
				w.updateSpeed(step)
				if w.Speed < prev {
					t.Fatalf("speed dropped from %v to %v", prev, w.Speed)
				}
				prev = w.Speed
			}
			if math.Abs(w.Speed-tt.factor) > 0.02*tt.factor {
				t.Errorf("speed after 1s = %v, expected about %v", w.Speed, tt.factor)
			}

			for range 2400 {
				w.updateSpeed(step)
			}
			if expected := (1 + 10*speedRamp) * tt.factor; math.Abs(w.Speed-expected) > 0.02*tt.factor {
				t.Errorf("speed after 11s = %v, expected about %v", w.Speed, expected)
			}
		})
	}
}

func placeCactus(w *World, big bool, centerAhead float64) *Obstacle {
	s := w.sprites.cactusSmall[0]
	if big {
		s = w.sprites.cactusBig[len(w.sprites.cactusBig)-1]
	}
	d := w.Dino
	center := d.Position.X + float64(d.Sprite().W)/2 + centerAhead
	o := &Obstacle{
		Kind:     KindCactus,
		Big:      big,
		Position: core.Vec(center-float64(s.W)/2, w.cactusY(s)),
		Velocity: core.Vec(w.cfg.Physics.BaseSpeed, 0),
		frames:   [2]sprite.Sprite{s, s},
	}
	w.Obstacles = append(w.Obstacles, o)
	return o
}

func TestAutopilot(t *testing.T) {
	cfg := config.DefaultDinoConfig()
	tests := []struct {
		name     string
		setup    func(w *World)
		expected Controls
	}{
		{"nothing ahead", func(*World) {}, Controls{}},
		{"far cactus", func(w *World) { placeCactus(w, false, 100) }, Controls{}},
		{"close cactus", func(w *World) { placeCactus(w, false, 12) }, Controls{Jump: true, Scalar: 1}},
		{"close wide cactus", func(w *World) { placeCactus(w, true, 12) }, Controls{Jump: true, Scalar: cfg.Physics.LongJump}},
		{"close pterodactyl", func(w *World) {
			o := w.newPterodactyl()
			o.Position.X = w.Dino.Position.X + 10
			w.Obstacles = append(w.Obstacles, o)
		}, Controls{Crouch: true}},
		{"cactus passed behind", func(w *World) { placeCactus(w, false, -30) }, Controls{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := newTestWorld(t, 1, cfg)
			w.Speed = 1
			tt.setup(w)
			if got := NewAutopilot().Controls(step, w); got != tt.expected {
				t.Errorf("Controls() = %+v, expected %+v", got, tt.expected)
			}
		})
	}
}

func TestAutopilotFallsFastAfterClearing(t *testing.T) {
	w, _ := newTestWorld(t, 1, config.DefaultDinoConfig())
	w.Speed = 1
	w.Dino.Jump(step, 1)
	w.Dino.Update(step, Controls{})
	if got := NewAutopilot().Controls(step, w); !got.Crouch {
		t.Errorf("Controls() = %+v, expected a crouch in the air", got)
	}
}

func TestAutopilotLearnsAirtime(t *testing.T) {
	a := NewAutopilot()
	for range 40 {
		a.learn(0.01, false)
	}
	a.learn(0.01, true)
	expected := initialAirtime + airtimeSmoothing*(0.4-initialAirtime)
	if math.Abs(a.AvgAirtime-expected) > 1e-9 {
		t.Errorf("AvgAirtime = %v, expected %v", a.AvgAirtime, expected)
	}
	a.learn(0.01, true)
	if math.Abs(a.AvgAirtime-expected) > 1e-9 {
		t.Errorf("AvgAirtime changed on the ground: %v", a.AvgAirtime)
	}
}

func TestAutopilotClearsCactus(t *testing.T) {
	cfg := config.DefaultDinoConfig()
	cfg.Obstacles.CactusChance = 0
	cfg.Obstacles.PteroChance = 0
	w, _ := newTestWorld(t, 7, cfg)
	w.rawSpeed, w.Speed = 1, 1
	o := placeCactus(w, false, 90)
	a := NewAutopilot()

	top := w.Dino.Position.Y
	for i := 0; len(w.Obstacles) > 0; i++ {
		if i > 5*240 {
			t.Fatal("cactus never left the screen")
		}
		w.Step(step, a.Controls(step, w))
		top = min(top, w.Dino.Position.Y)
		if w.Hit() != nil {
			t.Fatalf("step %d: runner at y = %v hit the cactus at x = %v", i, w.Dino.Position.Y, o.Position.X)
		}
	}
	if ground := w.Dino.groundHeight(); top >= ground-10 {
		t.Errorf("highest y = %v, expected a jump above %v", top, ground-10)
	}
}

func TestWorldDeterminism(t *testing.T) {
	run := func() *World {
		w, _ := newTestWorld(t, 42, config.DefaultDinoConfig())
		a := NewAutopilot()
		for range 240 * 20 {
			w.Step(step, a.Controls(step, w))
		}
		return w
	}
	a, b := run(), run()
	if a.Dino.Position != b.Dino.Position || a.Ground.Offset != b.Ground.Offset || len(a.Obstacles) != len(b.Obstacles) {
		t.Errorf("runs with the same seed diverged: %+v vs %+v", a.Dino.Position, b.Dino.Position)
	}
	for i := range a.Obstacles {
		if a.Obstacles[i].Position != b.Obstacles[i].Position {
			t.Errorf("obstacle %d at %+v vs %+v", i, a.Obstacles[i].Position, b.Obstacles[i].Position)
		}
	}
}

func startPlay(t *testing.T, env *engine.Env) (*engine.Driver, *playState) {
	t.Helper()
	play := newPlayState(New(config.DefaultDinoConfig()), env, nil)
	d := engine.NewDriver(env, 4)
	if err := d.Start(context.Background(), play); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	return d, play
}

func TestHitCostsALife(t *testing.T) {
	rec := &recorder{}
	env := newTestEnv(1, testH, rec, nil)
	_, play := startPlay(t, env)
	w := play.world
	placeCactus(w, false, 0)

	play.Update(step)
	if w.Lives != 2 {
		t.Fatalf("Lives = %d, expected 2", w.Lives)
	}
	if !w.Dino.IsInvulnerable() {
		t.Error("runner not invulnerable after a hit")
	}
	play.Update(step)
	if w.Lives != 2 {
		t.Errorf("Lives = %d during invulnerability, expected 2", w.Lives)
	}
	if n := rec.count(audio.EffectPhase); n != 1 {
		t.Errorf("phase sounds = %d, expected 1", n)
	}
}

func TestLastLifeGoesToGameOverOnce(t *testing.T) {
	rec := &recorder{}
	sc := &scores{}
	env := newTestEnv(3, testH, rec, sc)
	d, play := startPlay(t, env)
	ctx := context.Background()
	t0 := time.Unix(0, 0)

	w := play.world
	w.Lives = 1
	placeCactus(w, false, 0)

	d.Frame(ctx, t0)
	if _, err := d.Frame(ctx, t0.Add(100*time.Millisecond)); err != nil {
		t.Fatal(err)
	}
	if got := env.Machine().Current().Phase(); got != engine.PhaseGameOver {
		t.Fatalf("phase = %v, expected gameover", got)
	}

	play.Update(step)
	d.Frame(ctx, t0.Add(200*time.Millisecond))
	if n := env.Machine().Transitions(); n != 2 {
		t.Errorf("Transitions() = %d, expected 2", n)
	}
	if len(sc.records) != 1 {
		t.Errorf("recorded %d runs, expected 1", len(sc.records))
	}
	if n := rec.count(audio.EffectGameOver); n != 1 {
		t.Errorf("game over sounds = %d, expected 1", n)
	}
	if !w.Dino.Dead || w.Dino.Sprite().Name != "dinoDead" {
		t.Error("runner not shown dead")
	}
}

func TestGameOverRestarts(t *testing.T) {
	env := newTestEnv(3, testH, nil, nil)
	d, play := startPlay(t, env)
	ctx := context.Background()
	t0 := time.Unix(0, 0)

	old := play.world
	old.Lives = 1
	placeCactus(old, false, 0)
	d.Frame(ctx, t0)
	d.Frame(ctx, t0.Add(100*time.Millisecond))

	env.Input.Set(core.ActionJump)
	d.Frame(ctx, t0.Add(110*time.Millisecond))
	if got := env.Machine().Current().Phase(); got != engine.PhaseGameOver {
		t.Fatalf("restarted before the delay, phase = %v", got)
	}

	d.Frame(ctx, t0.Add(360*time.Millisecond))
	env.Input.Set(core.ActionJump)
	d.Frame(ctx, t0.Add(610*time.Millisecond))

	next, ok := env.Machine().Current().(*playState)
	if !ok {
		t.Fatalf("state = %T, expected *playState", env.Machine().Current())
	}
	if next.world == old || next.world.Lives != 3 || next.world.Score != 0 {
		t.Error("restart did not start a fresh run")
	}
}

func TestScoreCountsTime(t *testing.T) {
	rec := &recorder{}
	sc := &scores{}
	env := newTestEnv(1, testH, rec, sc)
	_, play := startPlay(t, env)

	for range 20 {
		play.Update(0.05)
	}
	if play.world.Score != 10 {
		t.Errorf("Score = %d, expected 10", play.world.Score)
	}
	if sc.highest != 10 || !sc.current {
		t.Errorf("highest = %d (current %v), expected 10", sc.highest, sc.current)
	}

	play.world.Score = 99
	play.addPoint()
	if n := rec.count(audio.EffectScore); n != 1 {
		t.Errorf("score sounds = %d, expected 1", n)
	}
}

func TestPause(t *testing.T) {
	env := newTestEnv(1, testH, nil, nil)
	_, play := startPlay(t, env)

	env.Input.Set(core.ActionPause)
	play.FrameUpdate(step)
	play.Update(1)
	if play.world.Score != 0 || play.world.Elapsed != 0 {
		t.Errorf("paused run advanced: score %d, elapsed %v", play.world.Score, play.world.Elapsed)
	}
}

func TestMenuJumpStartsRun(t *testing.T) {
	env := newTestEnv(1, testH, nil, nil)
	d := engine.NewDriver(env, 4)
	ctx := context.Background()
	if err := d.Start(ctx, New(config.DefaultDinoConfig()).Menu(env)); err != nil {
		t.Fatal(err)
	}
	menu := env.Machine().Current().(*menuState)
	t0 := time.Unix(0, 0)
	d.Frame(ctx, t0)
	env.Input.Set(core.ActionJump)

	for i := 1; i <= 120; i++ {
		if _, err := d.Frame(ctx, t0.Add(time.Duration(i)*16*time.Millisecond)); err != nil {
			t.Fatal(err)
		}
		if play, ok := env.Machine().Current().(*playState); ok {
			if play.world != menu.world {
				t.Error("run did not continue the menu world")
			}
			if !play.world.Dino.Grounded() {
				t.Error("run started before the runner landed")
			}
			return
		}
	}
	t.Fatalf("still in %v after 2s", env.Machine().Current().Phase())
}

func TestAutopilotPlays(t *testing.T) {
	env := engine.NewEnv(engine.Options{Config: core.RuntimeConfig{Seed: 1, Autopilot: true}, Width: testW, Height: testH})
	_, play := startPlay(t, env)
	if play.pilot == nil {
		t.Fatal("autopilot not engaged")
	}
	env.Input.SetHeld(core.ActionDuck, true)
	play.Update(step)
	if play.world.Dino.Crouching {
		t.Error("autopilot followed the keyboard")
	}
}

func TestCollisionLab(t *testing.T) {
	env := engine.NewEnv(engine.Options{Config: core.RuntimeConfig{Seed: 1, Debug: true}, Width: testW, Height: testH})
	d := engine.NewDriver(env, 1)
	ctx := context.Background()
	if err := d.Start(ctx, New(config.DefaultDinoConfig()).Menu(env)); err != nil {
		t.Fatal(err)
	}
	lab, ok := env.Machine().Current().(*debugState)
	if !ok {
		t.Fatalf("state = %T, expected *debugState", env.Machine().Current())
	}
	t0 := time.Unix(0, 0)
	d.Frame(ctx, t0)

	env.Input.Pointer = core.Vec(testW/2, testH/4+6)
	env.Input.PointerMoved = true
	d.Frame(ctx, t0.Add(16*time.Millisecond))
	if !lab.overlap || !lab.pixelPerfect {
		t.Errorf("probe on the runner: overlap %v, pixel perfect %v, expected both", lab.overlap, lab.pixelPerfect)
	}

	env.Input.Pointer = core.Vec(0, testH)
	env.Input.PointerMoved = true
	checks := lab.checker.MaskChecks()
	d.Frame(ctx, t0.Add(32*time.Millisecond))
	if lab.overlap || lab.pixelPerfect {
		t.Errorf("probe away from the runner: overlap %v, pixel perfect %v", lab.overlap, lab.pixelPerfect)
	}
	if got := lab.checker.MaskChecks(); got != checks {
		t.Errorf("MaskChecks() = %d, expected %d for separate boxes", got, checks)
	}
}
