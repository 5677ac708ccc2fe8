package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// defaultLimit is the TopScores page size when none is given.
const defaultLimit = 10

// ScoreEntry is one recorded run.
type ScoreEntry struct {
	ID        int64
	RunID     string
	GameID    string
	Player    string
	Score     int
	CreatedAt time.Time
}

// GameStats aggregates every run of a game.
type GameStats struct {
	GameID     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// SaveScore records a finished run and returns its run id.
func (s *Store) SaveScore(gameID, player string, score int) (string, error) {
	runID := uuid.NewString()
	if _, err := s.db.Exec(
		"INSERT INTO scores (run_id, game_id, player, score) VALUES (?, ?, ?, ?)",
		runID, gameID, player, score,
	); err != nil {
		return "", fmt.Errorf("storage: cannot save score: %w", err)
	}
	return runID, nil
}

// TopScores returns the best runs of a game, highest first. Equal scores
// keep the order they were recorded in.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	rows, err := s.db.Query(`
		SELECT id, run_id, game_id, player, score, created_at
		FROM scores
		WHERE game_id = ?
		ORDER BY score DESC, id ASC
		LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

func scanEntry(rows *sql.Rows) (ScoreEntry, error) {
	var (
		e       ScoreEntry
		created any
	)
	err := rows.Scan(&e.ID, &e.RunID, &e.GameID, &e.Player, &e.Score, &created)
	e.CreatedAt = parseTime(created)
	return e, err
}

// HighScore returns the best score of a game, 0 when it was never played.
func (s *Store) HighScore(gameID string) (int, error) {
	var high sql.NullInt64
	if err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE game_id = ?", gameID,
	).Scan(&high); err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	return int(high.Int64), nil
}

// ClearScores deletes every run of a game.
func (s *Store) ClearScores(gameID string) error {
	if _, err := s.db.Exec("DELETE FROM scores WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// GetGameStats aggregates the runs of a game. A game that was never played
// has zero stats and a zero LastPlayed.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}
	var last any
	if err := s.db.QueryRow(`
		SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		       COALESCE(SUM(score), 0), MAX(created_at)
		FROM scores WHERE game_id = ?`,
		gameID,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore, &last); err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	stats.LastPlayed = parseTime(last)
	return stats, nil
}

// sqliteTime is how CURRENT_TIMESTAMP is stored.
const sqliteTime = "2006-01-02 15:04:05"

// parseTime reads a datetime column. The driver returns time.Time for
// declared DATETIME columns and text for computed ones.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTime, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	case []byte:
		return parseTime(string(t))
	}
	return time.Time{}
}
