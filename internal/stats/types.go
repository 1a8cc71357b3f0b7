// Package stats aggregates finished game outcomes into per-player
// lifetime statistics, per-level best records, and an append-only play
// history. Persistence happens behind the Gateway interface so the
// aggregator can be tested without a database.
package stats

import "time"

// PlayerStats is the lifetime aggregate for one player. All counters are
// monotonic except CurrentStreak, which resets to zero on any loss.
type PlayerStats struct {
	UserID           int64
	TotalGamesPlayed int
	TotalGamesWon    int
	TotalTimePlayed  int // Seconds
	TotalMoves       int
	CurrentStreak    int
	BestStreak       int
	LastPlayed       time.Time
}

// GameRecord is a player's personal best for one level. BestTime and
// BestMoves are minimized independently and may come from different
// plays.
type GameRecord struct {
	UserID         int64
	Level          int
	BestTime       int // Seconds
	BestMoves      int
	TimesCompleted int
	LastPlayed     time.Time
}

// HistoryEntry is one row of the append-only play log.
type HistoryEntry struct {
	ID        int64
	UserID    int64
	Level     int
	Moves     int
	TimeSpent int // Seconds
	Completed bool
	RelaxMode bool
	CreatedAt time.Time
}

// Gateway is the persistence contract the aggregator writes through.
// Lookups return nil (not an error) when no row exists. Each operation
// is individually atomic; the aggregator does not require them to be
// transactional as a group.
type Gateway interface {
	AppendHistory(entry HistoryEntry) error
	RecentHistory(userID int64, limit int) ([]HistoryEntry, error)
	GetStats(userID int64) (*PlayerStats, error)
	UpsertStats(stats PlayerStats) error
	GetRecord(userID int64, level int) (*GameRecord, error)
	UpsertRecord(rec GameRecord) error
}
