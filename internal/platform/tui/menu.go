package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pixel-arcade/internal/registry"
	"github.com/vovakirdan/pixel-arcade/internal/storage"
)

// selectMsg asks the session to start a game.
type selectMsg struct {
	gameID string
}

// scoresMsg asks the session to open the scoreboard.
type scoresMsg struct{}

// MenuItem represents a selectable game in the menu.
type MenuItem struct {
	GameID    string
	Title     string
	HighScore int
}

// MenuModel is the Bubble Tea model for the game picker menu.
type MenuModel struct {
	items   []MenuItem
	cursor  int
	width   int
	height  int
	keys    MenuKeyMap
	help    help.Model
	palette Palette
}

// NewMenuModel lists every registered game with its best score.
func NewMenuModel(store *storage.Store, palette Palette, width, height int) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		item := MenuItem{GameID: g.ID, Title: g.Title}
		if store != nil {
			if hi, err := store.HighScore(g.ID); err == nil {
				item.HighScore = hi
			}
		}
		items = append(items, item)
	}

	h := help.New()
	h.Width = width

	return MenuModel{
		items:   items,
		width:   width,
		height:  height,
		keys:    DefaultMenuKeyMap(),
		help:    h,
		palette: palette,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case exitMsg:
		return m, tea.Quit
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, exitCmd(true)

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		if len(m.items) > 0 {
			id := m.items[m.cursor].GameID
			return m, func() tea.Msg { return selectMsg{gameID: id} }
		}

	case key.Matches(msg, m.keys.Scores):
		return m, func() tea.Msg { return scoresMsg{} }
	}

	return m, nil
}

// Selected returns the item under the cursor.
func (m MenuModel) Selected() (MenuItem, bool) {
	if len(m.items) == 0 {
		return MenuItem{}, false
	}
	return m.items[m.cursor], true
}

// View renders the menu.
func (m MenuModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.palette.Title.Render("P I X E L   A R C A D E"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a game", m.width))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(centerText(m.palette.Hint.Render("No games installed."), m.width))
		b.WriteString("\n")
	}

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%-16s", cursor, item.Title)
		if item.HighScore > 0 {
			line += fmt.Sprintf(" HI %05d", item.HighScore)
		} else {
			line += strings.Repeat(" ", 9)
		}
		if i == m.cursor {
			line = m.palette.Title.Render(line)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.palette.Hint.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")

	return b.String()
}
