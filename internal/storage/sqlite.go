// Package storage provides SQLite-based persistence for user accounts,
// play history, per-level records, and aggregate player statistics.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-memory/internal/stats"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// User is a local player account. PasswordHash is a bcrypt hash; the
// plaintext never touches storage.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS player_stats (
			user_id INTEGER PRIMARY KEY,
			total_games INTEGER NOT NULL DEFAULT 0,
			total_wins INTEGER NOT NULL DEFAULT 0,
			total_time INTEGER NOT NULL DEFAULT 0,
			total_moves INTEGER NOT NULL DEFAULT 0,
			current_streak INTEGER NOT NULL DEFAULT 0,
			best_streak INTEGER NOT NULL DEFAULT 0,
			last_played DATETIME
		);

		CREATE TABLE IF NOT EXISTS game_records (
			user_id INTEGER NOT NULL,
			level INTEGER NOT NULL,
			best_time INTEGER NOT NULL,
			best_moves INTEGER NOT NULL,
			times_completed INTEGER NOT NULL DEFAULT 0,
			last_played DATETIME,
			PRIMARY KEY (user_id, level)
		);

		CREATE TABLE IF NOT EXISTS play_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			level INTEGER NOT NULL,
			moves INTEGER NOT NULL,
			time_spent INTEGER NOT NULL,
			completed INTEGER NOT NULL,
			relax_mode INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_history_user ON play_history(user_id, created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// scanTime normalizes a scanned datetime column - the sqlite driver may
// hand back either time.Time or a string.
func scanTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// --- Users ---

// CreateUser inserts a new account and returns its id.
func (s *Store) CreateUser(username, passwordHash string) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO users (username, password_hash) VALUES (?, ?)",
		username, passwordHash,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// FindUserByName retrieves a user by username. Returns nil if no such
// user exists.
func (s *Store) FindUserByName(username string) (*User, error) {
	var u User
	var createdAt any

	err := s.db.QueryRow(
		"SELECT id, username, password_hash, created_at FROM users WHERE username = ?",
		username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &createdAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query user: %w", err)
	}

	u.CreatedAt = scanTime(createdAt)
	return &u, nil
}

// UsernameExists reports whether an account with the given name exists.
func (s *Store) UsernameExists(username string) (bool, error) {
	var n int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM users WHERE username = ?",
		username,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("storage: cannot check username: %w", err)
	}
	return n > 0, nil
}

// --- Player stats ---

// GetStats retrieves aggregate statistics for a user.
// Returns nil if the user has never finished a game.
func (s *Store) GetStats(userID int64) (*stats.PlayerStats, error) {
	var ps stats.PlayerStats
	var lastPlayed any

	err := s.db.QueryRow(
		`SELECT user_id, total_games, total_wins, total_time, total_moves,
		        current_streak, best_streak, last_played
		 FROM player_stats
		 WHERE user_id = ?`,
		userID,
	).Scan(
		&ps.UserID,
		&ps.TotalGamesPlayed,
		&ps.TotalGamesWon,
		&ps.TotalTimePlayed,
		&ps.TotalMoves,
		&ps.CurrentStreak,
		&ps.BestStreak,
		&lastPlayed,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query player stats: %w", err)
	}

	ps.LastPlayed = scanTime(lastPlayed)
	return &ps, nil
}

// UpsertStats inserts or replaces a user's aggregate statistics row.
func (s *Store) UpsertStats(ps stats.PlayerStats) error {
	_, err := s.db.Exec(
		`INSERT INTO player_stats
		 (user_id, total_games, total_wins, total_time, total_moves, current_streak, best_streak, last_played)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
		   total_games = excluded.total_games,
		   total_wins = excluded.total_wins,
		   total_time = excluded.total_time,
		   total_moves = excluded.total_moves,
		   current_streak = excluded.current_streak,
		   best_streak = excluded.best_streak,
		   last_played = excluded.last_played`,
		ps.UserID,
		ps.TotalGamesPlayed,
		ps.TotalGamesWon,
		ps.TotalTimePlayed,
		ps.TotalMoves,
		ps.CurrentStreak,
		ps.BestStreak,
		ps.LastPlayed.Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save player stats: %w", err)
	}
	return nil
}

// --- Level records ---

// GetRecord retrieves a user's personal best for a level.
// Returns nil if the user has never completed the level in normal mode.
func (s *Store) GetRecord(userID int64, level int) (*stats.GameRecord, error) {
	var r stats.GameRecord
	var lastPlayed any

	err := s.db.QueryRow(
		`SELECT user_id, level, best_time, best_moves, times_completed, last_played
		 FROM game_records
		 WHERE user_id = ? AND level = ?`,
		userID, level,
	).Scan(&r.UserID, &r.Level, &r.BestTime, &r.BestMoves, &r.TimesCompleted, &lastPlayed)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query record: %w", err)
	}

	r.LastPlayed = scanTime(lastPlayed)
	return &r, nil
}

// UpsertRecord inserts or replaces a user's per-level record row.
func (s *Store) UpsertRecord(r stats.GameRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO game_records
		 (user_id, level, best_time, best_moves, times_completed, last_played)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id, level) DO UPDATE SET
		   best_time = excluded.best_time,
		   best_moves = excluded.best_moves,
		   times_completed = excluded.times_completed,
		   last_played = excluded.last_played`,
		r.UserID,
		r.Level,
		r.BestTime,
		r.BestMoves,
		r.TimesCompleted,
		r.LastPlayed.Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save record: %w", err)
	}
	return nil
}

// AllRecords retrieves every level record for a user, ordered by level.
func (s *Store) AllRecords(userID int64) ([]stats.GameRecord, error) {
	rows, err := s.db.Query(
		`SELECT user_id, level, best_time, best_moves, times_completed, last_played
		 FROM game_records
		 WHERE user_id = ?
		 ORDER BY level`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query records: %w", err)
	}
	defer rows.Close()

	var records []stats.GameRecord
	for rows.Next() {
		var r stats.GameRecord
		var lastPlayed any
		if err := rows.Scan(&r.UserID, &r.Level, &r.BestTime, &r.BestMoves, &r.TimesCompleted, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.LastPlayed = scanTime(lastPlayed)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// --- Play history ---

// AppendHistory inserts one play into the append-only history log.
func (s *Store) AppendHistory(entry stats.HistoryEntry) error {
	_, err := s.db.Exec(
		`INSERT INTO play_history (user_id, level, moves, time_spent, completed, relax_mode, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.UserID,
		entry.Level,
		entry.Moves,
		entry.TimeSpent,
		boolToInt(entry.Completed),
		boolToInt(entry.RelaxMode),
		entry.CreatedAt.Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot append history: %w", err)
	}
	return nil
}

// RecentHistory retrieves a user's most recent plays, newest first.
func (s *Store) RecentHistory(userID int64, limit int) ([]stats.HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, user_id, level, moves, time_spent, completed, relax_mode, created_at
		 FROM play_history
		 WHERE user_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query history: %w", err)
	}
	defer rows.Close()

	var entries []stats.HistoryEntry
	for rows.Next() {
		var e stats.HistoryEntry
		var completed, relax int
		var createdAt any
		if err := rows.Scan(&e.ID, &e.UserID, &e.Level, &e.Moves, &e.TimeSpent, &completed, &relax, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Completed = completed != 0
		e.RelaxMode = relax != 0
		e.CreatedAt = scanTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Ensure Store satisfies the aggregator's persistence contract.
var _ stats.Gateway = (*Store)(nil)
