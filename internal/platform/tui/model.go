package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pixel-arcade/internal/audio"
	"github.com/vovakirdan/pixel-arcade/internal/core"
	"github.com/vovakirdan/pixel-arcade/internal/engine"
	"github.com/vovakirdan/pixel-arcade/internal/render"
	"github.com/vovakirdan/pixel-arcade/internal/sprite"
)

// statusTime is how long a status message replaces the help bar.
const statusTime = 2 * time.Second

// generations numbers tick loops across all models, so ticks of a
// finished game never reach the next one.
var generations atomic.Int64

func nextGen() int {
	return int(generations.Add(1))
}

// Options configures a game Model.
type Options struct {
	Game   engine.Game
	Config core.RuntimeConfig
	Audio  audio.Player
	Scores engine.Scoreboard
	Assets *sprite.Loader
	Logger *log.Logger

	// Palette defaults to the styles of the local terminal.
	Palette *Palette
	// Substeps per frame; 0 uses the engine default.
	Substeps int
	// Stats starts with the frame statistics overlay shown.
	Stats bool
	// ScreenshotDir defaults to ~/.arcade/screenshots.
	ScreenshotDir string
}

// exitMsg ends a screen. quit ends the whole program, otherwise a session
// returns to the game picker.
type exitMsg struct {
	quit bool
}

func exitCmd(quit bool) tea.Cmd {
	return func() tea.Msg { return exitMsg{quit: quit} }
}

// Model is the Bubble Tea model for running one arcade game.
type Model struct {
	ctx     context.Context
	game    engine.Game
	driver  *engine.Driver
	canvas  *render.Canvas
	screen  *core.Screen
	palette Palette
	keys    KeyMap
	help    help.Model
	held    *holdTracker
	logger  *log.Logger
	config  core.RuntimeConfig
	shotDir string
	now     func() time.Time

	width, height int
	gen           int
	frame         string
	status        string
	statusUntil   time.Time
	err           error
	quitting      bool
	back          bool
}

// layout splits the terminal into the game area and the help bar.
func layout(width, height int) (cols, rows int) {
	return max(width, 1), max(height-1, 1)
}

// NewModel creates the model and starts the game on its first state. A
// failing start is kept and shown instead of the game.
func NewModel(ctx context.Context, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	palette := NewPalette(nil)
	if opts.Palette != nil {
		palette = *opts.Palette
	}
	cfg := opts.Config
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	cols, rows := layout(cfg.ScreenW, cfg.ScreenH)
	canvas := render.NewCanvas(cols, rows)
	env := engine.NewEnv(engine.Options{
		Config: cfg,
		Width:  canvas.Width(),
		Height: canvas.Height(),
		Audio:  opts.Audio,
		Scores: opts.Scores,
		Assets: opts.Assets,
		Logger: logger,
	})
	driver := engine.NewDriver(env, opts.Substeps)
	if opts.Stats {
		driver.ToggleStats()
	}

	h := help.New()
	h.Width = cfg.ScreenW

	m := Model{
		ctx:     ctx,
		game:    opts.Game,
		driver:  driver,
		canvas:  canvas,
		screen:  core.NewScreen(cols, rows),
		palette: palette,
		keys:    DefaultKeyMap(),
		help:    h,
		held:    newHoldTracker(),
		logger:  logger,
		config:  cfg,
		shotDir: opts.ScreenshotDir,
		now:     time.Now,
		gen:     nextGen(),
		width:   cfg.ScreenW,
		height:  cfg.ScreenH,
	}

	if err := driver.Start(ctx, opts.Game.Menu(env)); err != nil {
		m.fail(fmt.Errorf("start %s: %w", opts.Game.ID(), err))
		return m
	}
	logger.Info("game started", "game", opts.Game.ID(), "cols", cols, "rows", rows, "seed", cfg.Seed)
	m.redraw()
	return m
}

// Driver returns the engine driver of the running game.
func (m Model) Driver() *engine.Driver {
	return m.driver
}

// Err returns the error that stopped the game, if any.
func (m Model) Err() error {
	return m.err
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	if m.err != nil {
		return nil
	}
	return tickCmd(m.config.TickRate, m.gen)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.FocusMsg:
		if m.err != nil || m.driver.Running() {
			return m, nil
		}
		m.driver.Resume()
		m.gen = nextGen()
		m.logger.Debug("resumed", "game", m.game.ID())
		return m, tickCmd(m.config.TickRate, m.gen)

	case tea.BlurMsg:
		if m.err != nil {
			return m, nil
		}
		m.driver.Suspend()
		m.held.release(m.driver.Env().Input)
		m.gen = nextGen()
		m.logger.Debug("suspended", "game", m.game.ID())
		return m, nil

	case TickMsg:
		if msg.Gen != m.gen || m.err != nil {
			return m, nil
		}
		return m.handleTick(msg.Time)

	case exitMsg:
		return m, tea.Quit
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, exitCmd(true)
	case key.Matches(msg, m.keys.Back):
		m.back = true
		return m, exitCmd(false)
	}
	if m.err != nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Stats):
		m.driver.ToggleStats()
		return m, nil
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	}

	a := m.keys.Action(msg)
	if a == core.ActionNone {
		return m, nil
	}
	in := m.driver.Env().Input
	in.Set(a)
	// Jumps are edges only; a held jump key would jump again on landing.
	switch a {
	case core.ActionLeft, core.ActionRight, core.ActionDuck:
		now := m.now()
		m.held.press(a, now)
		m.held.apply(now, in)
	}
	return m, nil
}

// handleMouse moves the pointer to the center of the cell under the mouse,
// in world pixels.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.err != nil || msg.Y >= m.canvas.Rows() {
		return
	}
	in := m.driver.Env().Input
	in.Pointer = core.Vec(
		(float64(msg.X)+0.5)*render.DotsX,
		(float64(msg.Y)+0.5)*render.DotsY,
	)
	switch msg.Action {
	case tea.MouseActionMotion:
		in.PointerMoved = true
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			in.PointerMoved = true
			in.PointerPressed = true
		}
	}
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.help.Width = width
	cols, rows := layout(width, height)
	m.canvas.Resize(cols, rows)
	if m.err != nil {
		return
	}
	m.driver.Resize(m.canvas.Width(), m.canvas.Height())
	m.redraw()
}

// handleTick runs one frame and schedules the next one while the driver is
// running.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.held.apply(now, m.driver.Env().Input)
	redraw, err := m.driver.Frame(m.ctx, now)
	if err != nil {
		m.fail(err)
		return m, nil
	}
	if redraw {
		m.redraw()
	}
	if m.status != "" && now.After(m.statusUntil) {
		m.status = ""
	}
	if !m.driver.Running() {
		return m, nil
	}
	return m, tickCmd(m.config.TickRate, m.gen)
}

func (m *Model) redraw() {
	m.driver.Render(m.canvas)
	m.canvas.Flush(m.screen)
	m.frame = m.palette.RenderScreen(m.screen)
}

func (m *Model) fail(err error) {
	m.err = err
	m.driver.Suspend()
	m.logger.Error("game stopped", "game", m.game.ID(), "error", err)
}

// saveScreenshot writes the current screen as plain text.
func (m *Model) saveScreenshot() {
	dir := m.shotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			m.setStatus("screenshot failed: no home directory")
			return
		}
		dir = filepath.Join(home, ".arcade", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "dir", dir, "error", err)
		m.setStatus("screenshot failed")
		return
	}

	now := m.now()
	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), now.Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "path", path, "error", err)
		m.setStatus("screenshot failed")
		return
	}
	m.logger.Info("screenshot saved", "path", path)
	m.setStatus("saved " + path)
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusUntil = m.now().Add(statusTime)
}

// View renders the last frame and the help bar.
func (m Model) View() string {
	if m.quitting || m.back {
		return ""
	}
	if m.err != nil {
		return m.errorView()
	}

	bar := m.help.View(m.keys)
	if m.status != "" {
		bar = m.status
	}
	return m.frame + "\n" + m.palette.Hint.Render(bar)
}

// errorView asks the user to restart after a fatal error.
func (m Model) errorView() string {
	body := m.palette.Error.Render("The game could not continue.") + "\n\n" +
		m.err.Error() + "\n\n" +
		m.palette.Hint.Render("Restart the arcade to try again. Press q to quit.")
	box := m.palette.Box.Render(body)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// Run plays one game in the local terminal until the user quits.
func Run(ctx context.Context, opts Options) error {
	model := NewModel(ctx, opts)

	p := tea.NewProgram(
		model,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok && m.err != nil {
		return m.err
	}
	return nil
}
