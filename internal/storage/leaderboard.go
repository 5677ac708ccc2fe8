package storage

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// Leaderboard tracks the best score of one game for the running session.
// The highest score is read from the store once and then kept in memory.
// A nil store gives a memory-only leaderboard.
type Leaderboard struct {
	store  *Store
	gameID string
	player string
	logger *log.Logger

	mu      sync.Mutex
	loaded  bool
	highest int
	current bool
}

// NewLeaderboard creates a leaderboard for gameID. Runs are recorded under
// player.
func NewLeaderboard(store *Store, gameID, player string, logger *log.Logger) *Leaderboard {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Leaderboard{
		store:  store,
		gameID: gameID,
		player: player,
		logger: logger,
	}
}

func (l *Leaderboard) load() {
	if l.loaded {
		return
	}
	l.loaded = true
	if l.store == nil {
		return
	}
	high, err := l.store.HighScore(l.gameID)
	if err != nil {
		l.logger.Warn("could not read high score", "game", l.gameID, "error", err)
		return
	}
	l.highest = max(l.highest, high)
}

// Highest returns the best known score.
func (l *Leaderboard) Highest() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.load()
	return l.highest
}

// SetHighest replaces the best score and marks it as set by the current run.
func (l *Leaderboard) SetHighest(score int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.load()
	l.highest = score
	l.current = true
}

// IsCurrentHighest reports whether the current run set the best score.
func (l *Leaderboard) IsCurrentHighest() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current
}

// ResetCurrent clears the current-run flag at the start of a new run.
func (l *Leaderboard) ResetCurrent() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.current = false
}

// Record persists a finished run. Store failures are logged and the score
// only lives in memory.
func (l *Leaderboard) Record(score int) {
	if l.store == nil {
		return
	}
	runID, err := l.store.SaveScore(l.gameID, l.player, score)
	if err != nil {
		l.logger.Warn("could not save score", "game", l.gameID, "error", err)
		return
	}
	l.logger.Debug("run recorded", "game", l.gameID, "run", runID, "score", score)
}
