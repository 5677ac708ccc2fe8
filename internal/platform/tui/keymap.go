package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pixel-arcade/internal/core"
)

// Hold windows. Terminals report no key release, only auto-repeat, so a key
// counts as held until no repeat arrived for a while. The first window
// covers the usual repeat delay, later ones the repeat rate.
const (
	firstHold  = 550 * time.Millisecond
	repeatHold = 120 * time.Millisecond
)

// KeyMap holds the in-game key bindings.
type KeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Jump       key.Binding
	LongJump   key.Binding
	Duck       key.Binding
	Confirm    key.Binding
	Restart    key.Binding
	Pause      key.Binding
	Back       key.Binding
	Quit       key.Binding
	Stats      key.Binding
	Screenshot key.Binding
}

// DefaultKeyMap returns the default in-game bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "right"),
		),
		Jump: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "jump"),
		),
		LongJump: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "long jump"),
		),
		Duck: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "duck"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Stats: key.NewBinding(
			key.WithKeys("f3", "tab"),
			key.WithHelp("tab", "stats"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Jump, k.LongJump, k.Duck, k.Left, k.Right, k.Pause, k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Jump, k.LongJump, k.Duck},
		{k.Left, k.Right},
		{k.Confirm, k.Restart, k.Pause},
		{k.Stats, k.Screenshot, k.Back, k.Quit},
	}
}

// Action translates a key to the game action it is bound to.
// Platform keys (quit, back, stats, screenshot) are not game actions and
// map to ActionNone.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Jump):
		return core.ActionJump
	case key.Matches(msg, k.LongJump):
		return core.ActionLongJump
	case key.Matches(msg, k.Duck):
		return core.ActionDuck
	case key.Matches(msg, k.Confirm):
		return core.ActionConfirm
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	}
	return core.ActionNone
}

// holdTracker derives held keys from repeated key presses.
type holdTracker struct {
	until map[core.Action]time.Time
}

func newHoldTracker() *holdTracker {
	return &holdTracker{until: make(map[core.Action]time.Time)}
}

// press records a key press at now. A press while the key is still held is
// a repeat and extends the hold by the shorter window.
func (h *holdTracker) press(a core.Action, now time.Time) {
	window := firstHold
	if until, ok := h.until[a]; ok && now.Before(until) {
		window = repeatHold
	}
	h.until[a] = now.Add(window)
}

// apply writes the held state at now into f and forgets expired keys.
func (h *holdTracker) apply(now time.Time, f *core.InputFrame) {
	for a, until := range h.until {
		down := now.Before(until)
		f.SetHeld(a, down)
		if !down {
			delete(h.until, a)
		}
	}
}

// release drops every held key, e.g. when the terminal loses focus.
func (h *holdTracker) release(f *core.InputFrame) {
	for a := range h.until {
		f.SetHeld(a, false)
		delete(h.until, a)
	}
}

// MenuKeyMap holds the game picker bindings.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Scores key.Binding
	Quit   key.Binding
}

// DefaultMenuKeyMap returns the default picker bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Scores: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "scores"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Scores, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
