package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pixel-arcade/internal/audio"
	"github.com/vovakirdan/pixel-arcade/internal/core"
	"github.com/vovakirdan/pixel-arcade/internal/registry"
	"github.com/vovakirdan/pixel-arcade/internal/sprite"
	"github.com/vovakirdan/pixel-arcade/internal/storage"
)

// SessionConfig configures an arcade session.
type SessionConfig struct {
	Runtime  core.RuntimeConfig
	Settings registry.Settings
	Store    *storage.Store
	// Player names the recorded runs.
	Player string
	Audio  audio.Player
	Assets *sprite.Loader
	Logger *log.Logger
	// Palette defaults to the styles of the local terminal.
	Palette  *Palette
	Substeps int
	Stats    bool
}

// SessionModel manages the full arcade session flow: menu -> game -> menu.
// It is the top-level model of SSH sessions and of the local menu.
type SessionModel struct {
	ctx     context.Context
	cfg     SessionConfig
	palette Palette
	active  tea.Model
	notice  string
}

// NewSessionModel creates a session that starts in the game picker.
func NewSessionModel(ctx context.Context, cfg SessionConfig) SessionModel {
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	if cfg.Assets == nil {
		cfg.Assets = sprite.NewLoader(nil, cfg.Logger.WithPrefix("sprite"))
	}
	palette := NewPalette(nil)
	if cfg.Palette != nil {
		palette = *cfg.Palette
	}
	m := SessionModel{
		ctx:     ctx,
		cfg:     cfg,
		palette: palette,
	}
	m.active = m.newMenu()
	return m
}

func (m SessionModel) newMenu() MenuModel {
	return NewMenuModel(m.cfg.Store, m.palette, m.cfg.Runtime.ScreenW, m.cfg.Runtime.ScreenH)
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.active.Init()
}

// Update routes messages to the active screen and switches screens.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cfg.Runtime.ScreenW = msg.Width
		m.cfg.Runtime.ScreenH = msg.Height

	case selectMsg:
		return m.startGame(msg.gameID)

	case scoresMsg:
		m.notice = ""
		m.active = NewScoreboardModel(m.cfg.Store, m.palette, m.cfg.Runtime.ScreenW, m.cfg.Runtime.ScreenH)
		return m, m.active.Init()

	case exitMsg:
		if msg.quit {
			return m, tea.Quit
		}
		m.active = m.newMenu()
		return m, m.active.Init()
	}

	var cmd tea.Cmd
	m.active, cmd = m.active.Update(msg)
	return m, cmd
}

// startGame replaces the picker with a running game. The seed of every game
// is fresh unless one was fixed on the command line.
func (m SessionModel) startGame(id string) (tea.Model, tea.Cmd) {
	game, err := registry.Create(id, m.cfg.Settings)
	if err != nil {
		m.cfg.Logger.Error("could not create game", "game", id, "error", err)
		m.notice = err.Error()
		return m, nil
	}
	m.notice = ""

	logger := m.cfg.Logger.With("player", m.cfg.Player)
	gm := NewModel(m.ctx, Options{
		Game:     game,
		Config:   m.cfg.Runtime,
		Audio:    m.cfg.Audio,
		Scores:   storage.NewLeaderboard(m.cfg.Store, id, m.cfg.Player, logger.WithPrefix("scores")),
		Assets:   m.cfg.Assets,
		Logger:   logger,
		Palette:  &m.palette,
		Substeps: m.cfg.Substeps,
		Stats:    m.cfg.Stats,
	})
	m.active = gm
	return m, gm.Init()
}

// View renders the active screen.
func (m SessionModel) View() string {
	v := m.active.View()
	if m.notice != "" {
		v += "\n" + m.palette.Error.Render(m.notice)
	}
	return v
}

// RunSession runs the game picker in the local terminal.
func RunSession(ctx context.Context, cfg SessionConfig) error {
	p := tea.NewProgram(
		NewSessionModel(ctx, cfg),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
	)
	_, err := p.Run()
	return err
}
