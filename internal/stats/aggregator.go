package stats

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-memory/internal/game"
)

// Aggregator consumes one Outcome per finished session and updates the
// player's history, lifetime stats, and per-level records. Writes are
// best-effort: a failed write is logged and the remaining writes still
// run, since losing a stats row must never take down an active game.
type Aggregator struct {
	store  Gateway
	logger *log.Logger
	now    func() time.Time
}

// New creates an aggregator. A nil logger discards output.
func New(store Gateway, logger *log.Logger) *Aggregator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Aggregator{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Record applies a single outcome for the given user. The session engine
// guarantees it is called at most once per terminal transition.
func (a *Aggregator) Record(userID int64, o game.Outcome) {
	now := a.now()

	a.appendHistory(userID, o, now)
	a.updateStats(userID, o, now)
	if o.Won && !o.Relax {
		a.updateRecord(userID, o, now)
	}
}

// RecordAsync runs Record on its own goroutine, fire-and-forget from the
// state machine's perspective.
func (a *Aggregator) RecordAsync(userID int64, o game.Outcome) {
	go a.Record(userID, o)
}

func (a *Aggregator) appendHistory(userID int64, o game.Outcome, now time.Time) {
	entry := HistoryEntry{
		UserID:    userID,
		Level:     o.Level,
		Moves:     o.MovesUsed,
		TimeSpent: o.TimeSpent,
		Completed: o.Won,
		RelaxMode: o.Relax,
		CreatedAt: now,
	}
	if err := a.store.AppendHistory(entry); err != nil {
		a.logger.Warn("could not append play history", "user", userID, "error", err)
	}
}

func (a *Aggregator) updateStats(userID int64, o game.Outcome, now time.Time) {
	existing, err := a.store.GetStats(userID)
	if err != nil {
		a.logger.Warn("could not load player stats", "user", userID, "error", err)
		return
	}

	stats := PlayerStats{UserID: userID}
	if existing != nil {
		stats = *existing
	}

	stats.TotalGamesPlayed++
	stats.TotalTimePlayed += o.TimeSpent
	stats.TotalMoves += o.MovesUsed
	if o.Won {
		stats.TotalGamesWon++
		stats.CurrentStreak++
		if stats.CurrentStreak > stats.BestStreak {
			stats.BestStreak = stats.CurrentStreak
		}
	} else {
		stats.CurrentStreak = 0
	}
	stats.LastPlayed = now

	if err := a.store.UpsertStats(stats); err != nil {
		a.logger.Warn("could not save player stats", "user", userID, "error", err)
	}
}

// updateRecord runs only for normal-mode wins. BestTime and BestMoves
// are minimized independently; TimesCompleted counts every completion
// whether or not a best improved.
func (a *Aggregator) updateRecord(userID int64, o game.Outcome, now time.Time) {
	existing, err := a.store.GetRecord(userID, o.Level)
	if err != nil {
		a.logger.Warn("could not load level record", "user", userID, "level", o.Level, "error", err)
		return
	}

	rec := GameRecord{
		UserID:         userID,
		Level:          o.Level,
		BestTime:       o.TimeSpent,
		BestMoves:      o.MovesUsed,
		TimesCompleted: 1,
	}
	if existing != nil {
		rec = *existing
		if o.TimeSpent < rec.BestTime {
			rec.BestTime = o.TimeSpent
		}
		if o.MovesUsed < rec.BestMoves {
			rec.BestMoves = o.MovesUsed
		}
		rec.TimesCompleted++
	}
	rec.LastPlayed = now

	if err := a.store.UpsertRecord(rec); err != nil {
		a.logger.Warn("could not save level record", "user", userID, "level", o.Level, "error", err)
	}
}
