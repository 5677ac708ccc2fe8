package tui

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pixel-arcade/internal/core"
	"github.com/vovakirdan/pixel-arcade/internal/engine"
	"github.com/vovakirdan/pixel-arcade/internal/registry"
	"github.com/vovakirdan/pixel-arcade/internal/render"
)

const probeID = "tui-probe"

func init() {
	registry.Register(probeID, "Probe", func(registry.Settings) (engine.Game, error) {
		return &probeGame{state: &probeState{}}, nil
	})
}

type probeState struct {
	env      *engine.Env
	setupErr error
	updates  int
	duck     bool
	paused   bool
}

func (p *probeState) Phase() engine.Phase { return engine.PhasePlay }

func (p *probeState) Setup(context.Context) error { return p.setupErr }

func (p *probeState) Update(float64) {
	p.updates++
	p.duck = p.duck || p.env.Input.IsDown(core.ActionDuck)
	p.paused = p.paused || p.env.Input.Has(core.ActionPause)
	p.env.Invalidate()
}

func (p *probeState) Render(s render.Surface) {
	s.FillRect(core.NewRect(0, 0, 4, 4), core.ColorGreen)
}

type probeGame struct {
	state *probeState
}

func (g *probeGame) ID() string    { return probeID }
func (g *probeGame) Title() string { return "Probe" }

func (g *probeGame) Menu(env *engine.Env) engine.State {
	g.state.env = env
	return g.state
}

func plainPalette() *Palette {
	p := NewPalette(lipgloss.NewRenderer(io.Discard))
	return &p
}

func newProbeModel(t *testing.T, state *probeState) Model {
	t.Helper()
	return NewModel(context.Background(), Options{
		Game:          &probeGame{state: state},
		Config:        core.RuntimeConfig{ScreenW: 20, ScreenH: 6, TickRate: 60, Seed: 1},
		Palette:       plainPalette(),
		ScreenshotDir: t.TempDir(),
	})
}

func update(t *testing.T, m tea.Model, msg tea.Msg) (tea.Model, tea.Cmd) {
	t.Helper()
	return m.Update(msg)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyMapActions(t *testing.T) {
	keys := DefaultKeyMap()
	tests := []struct {
		msg      tea.KeyMsg
		expected core.Action
	}{
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{runes("d"), core.ActionRight},
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionLongJump},
		{runes("w"), core.ActionLongJump},
		{tea.KeyMsg{Type: tea.KeyDown}, core.ActionDuck},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm},
		{runes("r"), core.ActionRestart},
		{runes("p"), core.ActionPause},
		{runes("q"), core.ActionNone},
		{runes("x"), core.ActionNone},
	}

	for _, tt := range tests {
		if got := keys.Action(tt.msg); got != tt.expected {
			t.Errorf("Action(%q) = %v, expected %v", tt.msg.String(), got, tt.expected)
		}
	}
}

func TestHoldTracker(t *testing.T) {
	t0 := time.Unix(1000, 0)
	in := core.NewInputFrame()
	h := newHoldTracker()

	h.press(core.ActionDuck, t0)
	h.apply(t0.Add(500*time.Millisecond), &in)
	if !in.IsDown(core.ActionDuck) {
		t.Errorf("duck not held inside the first window")
	}

	h.press(core.ActionDuck, t0.Add(500*time.Millisecond))
	h.apply(t0.Add(600*time.Millisecond), &in)
	if !in.IsDown(core.ActionDuck) {
		t.Errorf("duck not held after a repeat")
	}
	h.apply(t0.Add(700*time.Millisecond), &in)
	if in.IsDown(core.ActionDuck) {
		t.Errorf("duck still held after the repeat window")
	}

	h.press(core.ActionLeft, t0)
	h.release(&in)
	if in.IsDown(core.ActionLeft) {
		t.Errorf("left still held after release")
	}
}

func TestModelRunsFrames(t *testing.T) {
	s := &probeState{}
	m := newProbeModel(t, s)
	t0 := time.Unix(2000, 0)
	m.now = func() time.Time { return t0 }

	cmd := m.Init()
	if cmd == nil {
		t.Fatalf("Init() returned no tick")
	}

	next, _ := update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	next, _ = update(t, next, runes("p"))
	next, _ = update(t, next, TickMsg{Gen: m.gen, Time: t0})
	if s.updates != 0 {
		t.Errorf("updates after the baseline frame = %d, expected 0", s.updates)
	}
	next, cmd = update(t, next, TickMsg{Gen: m.gen, Time: t0.Add(20 * time.Millisecond)})
	if s.updates != engine.DefaultSubsteps {
		t.Errorf("updates = %d, expected %d", s.updates, engine.DefaultSubsteps)
	}
	if !s.duck {
		t.Errorf("held duck key not seen by the state")
	}
	if !s.paused {
		t.Errorf("pause press not seen by the state")
	}
	if cmd == nil {
		t.Errorf("tick did not schedule the next one")
	}

	view := next.View()
	if !strings.Contains(view, "\u28ff") {
		t.Errorf("view does not contain the filled braille cell:\n%s", view)
	}
}

func TestBlurDropsTicksUntilFocus(t *testing.T) {
	s := &probeState{}
	m := newProbeModel(t, s)
	t0 := time.Unix(3000, 0)
	old := m.gen

	next, _ := update(t, m, TickMsg{Gen: old, Time: t0})
	next, cmd := update(t, next, tea.BlurMsg{})
	if cmd != nil {
		t.Errorf("blur scheduled a tick")
	}
	if next.(Model).Driver().Running() {
		t.Errorf("driver still running after blur")
	}

	next, cmd = update(t, next, TickMsg{Gen: old, Time: t0.Add(time.Second)})
	if cmd != nil || s.updates != 0 {
		t.Errorf("stale tick ran: cmd %v, updates %d", cmd != nil, s.updates)
	}

	next, cmd = update(t, next, tea.FocusMsg{})
	if cmd == nil {
		t.Fatalf("focus did not restart the tick loop")
	}
	gen := next.(Model).gen
	if gen == old {
		t.Errorf("generation unchanged after focus")
	}

	// The first frame after a resume only takes a baseline.
	next, _ = update(t, next, TickMsg{Gen: gen, Time: t0.Add(10 * time.Second)})
	if s.updates != 0 {
		t.Errorf("updates after resume = %d, expected 0", s.updates)
	}
	update(t, next, TickMsg{Gen: gen, Time: t0.Add(10*time.Second + 16*time.Millisecond)})
	if s.updates != engine.DefaultSubsteps {
		t.Errorf("updates = %d, expected %d", s.updates, engine.DefaultSubsteps)
	}
}

func TestMouseMovesPointer(t *testing.T) {
	s := &probeState{}
	m := newProbeModel(t, s)

	update(t, m, tea.MouseMsg{X: 3, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	in := m.Driver().Env().Input
	expected := core.Vec(7, 6)
	if in.Pointer != expected {
		t.Errorf("Pointer = %v, expected %v", in.Pointer, expected)
	}
	if !in.PointerPressed || !in.PointerMoved {
		t.Errorf("pressed %t moved %t, expected both", in.PointerPressed, in.PointerMoved)
	}

	// The help bar row is not part of the world.
	update(t, m, tea.MouseMsg{X: 0, Y: 5, Action: tea.MouseActionMotion})
	if in.Pointer != expected {
		t.Errorf("Pointer moved to %v over the help bar", in.Pointer)
	}
}

func TestResizeChangesWorld(t *testing.T) {
	m := newProbeModel(t, &probeState{})
	next, _ := update(t, m, tea.WindowSizeMsg{Width: 40, Height: 11})
	env := next.(Model).Driver().Env()
	if env.Width() != 80 || env.Height() != 40 {
		t.Errorf("world = %vx%v, expected 80x40", env.Width(), env.Height())
	}
}

func TestStartFailureShowsError(t *testing.T) {
	boom := errors.New("atlas missing")
	m := newProbeModel(t, &probeState{setupErr: boom})

	if !errors.Is(m.Err(), boom) {
		t.Fatalf("Err() = %v, expected %v", m.Err(), boom)
	}
	if m.Init() != nil {
		t.Errorf("Init() started ticking after a failed start")
	}
	view := m.View()
	for _, want := range []string{"could not continue", "atlas missing", "Restart"} {
		if !strings.Contains(view, want) {
			t.Errorf("error view misses %q:\n%s", want, view)
		}
	}
}

func TestBackAndQuit(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		quit bool
	}{
		{tea.KeyMsg{Type: tea.KeyEsc}, false},
		{runes("b"), false},
		{runes("q"), true},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, true},
	}

	for _, tt := range tests {
		m := newProbeModel(t, &probeState{})
		next, cmd := update(t, m, tt.msg)
		if cmd == nil {
			t.Errorf("%q: no command", tt.msg.String())
			continue
		}
		msg, ok := cmd().(exitMsg)
		if !ok || msg.quit != tt.quit {
			t.Errorf("%q: got %#v, expected exitMsg{quit: %t}", tt.msg.String(), msg, tt.quit)
		}
		if next.View() != "" {
			t.Errorf("%q: view not cleared", tt.msg.String())
		}
	}
}

func TestScreenshot(t *testing.T) {
	m := newProbeModel(t, &probeState{})
	m.now = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC) }

	next, _ := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	path := filepath.Join(m.shotDir, probeID+"_20240501_123000.txt")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("screenshot not written: %v", err)
	}
	if string(data) != m.screen.String() {
		t.Errorf("screenshot differs from the screen")
	}
	if !strings.Contains(next.View(), "saved") {
		t.Errorf("status not shown after the screenshot")
	}
}

func TestRenderScreenWithoutColors(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.SetCell(0, 0, 'a', core.ColorRed)
	s.SetCell(1, 0, 'b', core.ColorRed)
	s.SetCell(2, 1, 'c', core.ColorGray)

	got := plainPalette().RenderScreen(s)
	if got != s.String() {
		t.Errorf("RenderScreen() = %q, expected %q", got, s.String())
	}
}

func TestSessionFlow(t *testing.T) {
	m := NewSessionModel(context.Background(), SessionConfig{
		Runtime: core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 60, Seed: 1},
		Player:  "tester",
		Palette: plainPalette(),
	})
	if _, ok := m.active.(MenuModel); !ok {
		t.Fatalf("session starts on %T, expected MenuModel", m.active)
	}

	next, cmd := update(t, m, selectMsg{gameID: probeID})
	m = next.(SessionModel)
	if _, ok := m.active.(Model); !ok {
		t.Fatalf("active = %T after select, expected Model", m.active)
	}
	if cmd == nil {
		t.Errorf("starting a game did not start ticking")
	}

	next, _ = update(t, m, exitMsg{quit: false})
	m = next.(SessionModel)
	if _, ok := m.active.(MenuModel); !ok {
		t.Errorf("active = %T after back, expected MenuModel", m.active)
	}

	next, _ = update(t, m, scoresMsg{})
	m = next.(SessionModel)
	if _, ok := m.active.(ScoreboardModel); !ok {
		t.Errorf("active = %T after scores, expected ScoreboardModel", m.active)
	}
	if !strings.Contains(m.View(), "not being saved") {
		t.Errorf("scoreboard without a store:\n%s", m.View())
	}

	next, _ = update(t, m, selectMsg{gameID: "missing"})
	m = next.(SessionModel)
	if !strings.Contains(m.View(), "unknown game") {
		t.Errorf("unknown game not reported:\n%s", m.View())
	}

	_, cmd = update(t, m, exitMsg{quit: true})
	if cmd == nil {
		t.Fatalf("quit returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("quit did not end the program")
	}
}

func TestMenuSelectsGame(t *testing.T) {
	m := NewMenuModel(nil, *plainPalette(), 40, 12)
	idx := -1
	for i, item := range m.items {
		if item.GameID == probeID {
			idx = i
		}
	}
	if idx < 0 {
		t.Fatalf("probe game not listed")
	}

	var next tea.Model = m
	for range idx {
		next, _ = update(t, next, tea.KeyMsg{Type: tea.KeyDown})
	}
	item, _ := next.(MenuModel).Selected()
	if item.GameID != probeID {
		t.Fatalf("cursor on %q, expected %q", item.GameID, probeID)
	}

	_, cmd := update(t, next, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("enter returned no command")
	}
	if msg, ok := cmd().(selectMsg); !ok || msg.gameID != probeID {
		t.Errorf("enter sent %#v, expected selectMsg for %q", msg, probeID)
	}
}
