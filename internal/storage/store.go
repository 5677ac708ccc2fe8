// Package storage records finished runs in SQLite and keeps the per-game
// leaderboard the games read their high score from. The pure-Go
// modernc.org/sqlite driver keeps the binary free of CGO.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store is an open score database.
type Store struct {
	db *sql.DB
}

// Open opens the database at path, creating it and its parent directories
// when needed, and brings the schema up to date. A leading ~ is the home
// directory.
func Open(path string) (*Store, error) {
	if rest, ok := strings.CutPrefix(path, "~"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, rest)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// migrations upgrade the schema one version each. The applied version is
// kept in PRAGMA user_version, so databases written by older releases
// (version 0, scores table without run ids) are upgraded in place.
var migrations = []func(*sql.Tx) error{
	createScores,
	addRunColumns,
}

func (s *Store) migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	for v := version; v < len(migrations); v++ {
		tx, err := s.db.Begin()
		if err != nil {
			return err
		}
		if err := migrations[v](tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("schema version %d: %w", v+1, err)
		}
		// PRAGMA takes no placeholders.
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", v+1)); err != nil {
			tx.Rollback()
			return fmt.Errorf("schema version %d: %w", v+1, err)
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}
	return nil
}

func createScores(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_game_id ON scores(game_id);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);
	`)
	return err
}

// addRunColumns adds the run id and the player name. Rows recorded before
// get a fresh run id each.
func addRunColumns(tx *sql.Tx) error {
	if _, err := tx.Exec(`
		ALTER TABLE scores ADD COLUMN run_id TEXT NOT NULL DEFAULT '';
		ALTER TABLE scores ADD COLUMN player TEXT NOT NULL DEFAULT '';
	`); err != nil {
		return err
	}

	rows, err := tx.Query("SELECT id FROM scores WHERE run_id = ''")
	if err != nil {
		return err
	}
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, id := range ids {
		if _, err := tx.Exec("UPDATE scores SET run_id = ? WHERE id = ?", uuid.NewString(), id); err != nil {
			return err
		}
	}

	_, err = tx.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_scores_run_id ON scores(run_id)")
	return err
}
