package stats

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/tui-memory/internal/game"
)

// fakeGateway is an in-memory Gateway for aggregator tests.
type fakeGateway struct {
	history []HistoryEntry
	stats   map[int64]PlayerStats
	records map[[2]int64]GameRecord

	failHistory bool
	failStats   bool
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		stats:   make(map[int64]PlayerStats),
		records: make(map[[2]int64]GameRecord),
	}
}

func (f *fakeGateway) AppendHistory(entry HistoryEntry) error {
	if f.failHistory {
		return errors.New("disk full")
	}
	entry.ID = int64(len(f.history) + 1)
	f.history = append(f.history, entry)
	return nil
}

func (f *fakeGateway) RecentHistory(userID int64, limit int) ([]HistoryEntry, error) {
	var out []HistoryEntry
	for i := len(f.history) - 1; i >= 0 && len(out) < limit; i-- {
		if f.history[i].UserID == userID {
			out = append(out, f.history[i])
		}
	}
	return out, nil
}

func (f *fakeGateway) GetStats(userID int64) (*PlayerStats, error) {
	if f.failStats {
		return nil, errors.New("locked")
	}
	if s, ok := f.stats[userID]; ok {
		return &s, nil
	}
	return nil, nil
}

func (f *fakeGateway) UpsertStats(s PlayerStats) error {
	if f.failStats {
		return errors.New("locked")
	}
	f.stats[s.UserID] = s
	return nil
}

func (f *fakeGateway) GetRecord(userID int64, level int) (*GameRecord, error) {
	if r, ok := f.records[[2]int64{userID, int64(level)}]; ok {
		return &r, nil
	}
	return nil, nil
}

func (f *fakeGateway) UpsertRecord(r GameRecord) error {
	f.records[[2]int64{r.UserID, int64(r.Level)}] = r
	return nil
}

var _ Gateway = (*fakeGateway)(nil)

func newTestAggregator(gw *fakeGateway) *Aggregator {
	a := New(gw, nil)
	a.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return a
}

func win(level, moves, timeSpent int) game.Outcome {
	return game.Outcome{Won: true, MovesUsed: moves, TimeSpent: timeSpent, Level: level}
}

func loss(level, moves, timeSpent int) game.Outcome {
	return game.Outcome{Won: false, MovesUsed: moves, TimeSpent: timeSpent, Level: level}
}

func TestRecordInitializesStatsFromFirstGame(t *testing.T) {
	gw := newFakeGateway()
	a := newTestAggregator(gw)

	a.Record(7, win(1, 3, 12))

	s, ok := gw.stats[7]
	if !ok {
		t.Fatal("Stats row not created")
	}
	if s.TotalGamesPlayed != 1 || s.TotalGamesWon != 1 {
		t.Errorf("Games: played=%d won=%d", s.TotalGamesPlayed, s.TotalGamesWon)
	}
	if s.TotalTimePlayed != 12 || s.TotalMoves != 3 {
		t.Errorf("Totals: time=%d moves=%d", s.TotalTimePlayed, s.TotalMoves)
	}
	if s.CurrentStreak != 1 || s.BestStreak != 1 {
		t.Errorf("Streaks: current=%d best=%d", s.CurrentStreak, s.BestStreak)
	}
}

func TestStreakResetsOnLoss(t *testing.T) {
	gw := newFakeGateway()
	a := newTestAggregator(gw)

	a.Record(7, win(0, 2, 5))
	a.Record(7, win(1, 4, 10))
	a.Record(7, win(2, 6, 20))
	a.Record(7, loss(3, 20, 60))
	a.Record(7, win(0, 2, 4))

	s := gw.stats[7]
	if s.BestStreak != 3 {
		t.Errorf("BestStreak=%d, expected 3", s.BestStreak)
	}
	if s.CurrentStreak != 1 {
		t.Errorf("CurrentStreak=%d, expected 1", s.CurrentStreak)
	}
	if s.TotalGamesPlayed != 5 || s.TotalGamesWon != 4 {
		t.Errorf("Games: played=%d won=%d", s.TotalGamesPlayed, s.TotalGamesWon)
	}
}

func TestRecordSeedsLevelRecordOnFirstWin(t *testing.T) {
	gw := newFakeGateway()
	a := newTestAggregator(gw)

	a.Record(7, win(2, 8, 25))

	r, ok := gw.records[[2]int64{7, 2}]
	if !ok {
		t.Fatal("Record row not created")
	}
	if r.BestTime != 25 || r.BestMoves != 8 || r.TimesCompleted != 1 {
		t.Errorf("Seeded record: %+v", r)
	}
}

func TestBestsMinimizedIndependently(t *testing.T) {
	// Prior record {bestTime:20, bestMoves:10}; a new win {time:25,
	// moves:8} improves moves but not time, and always bumps the
	// completion counter.
	gw := newFakeGateway()
	a := newTestAggregator(gw)

	a.Record(7, win(1, 10, 20))
	a.Record(7, win(1, 8, 25))

	r := gw.records[[2]int64{7, 1}]
	if r.BestTime != 20 {
		t.Errorf("BestTime=%d, expected 20 (unchanged)", r.BestTime)
	}
	if r.BestMoves != 8 {
		t.Errorf("BestMoves=%d, expected 8 (improved)", r.BestMoves)
	}
	if r.TimesCompleted != 2 {
		t.Errorf("TimesCompleted=%d, expected 2", r.TimesCompleted)
	}
}

func TestNoRecordForLossOrRelax(t *testing.T) {
	gw := newFakeGateway()
	a := newTestAggregator(gw)

	a.Record(7, loss(1, 5, 15))

	relaxWin := win(1, 3, 40)
	relaxWin.Relax = true
	a.Record(7, relaxWin)

	if len(gw.records) != 0 {
		t.Errorf("Records written for loss/relax play: %v", gw.records)
	}

	// But both still count toward history and stats.
	if len(gw.history) != 2 {
		t.Errorf("History entries: %d, expected 2", len(gw.history))
	}
	if gw.stats[7].TotalGamesPlayed != 2 {
		t.Errorf("TotalGamesPlayed=%d, expected 2", gw.stats[7].TotalGamesPlayed)
	}
}

func TestHistoryAppendOnly(t *testing.T) {
	gw := newFakeGateway()
	a := newTestAggregator(gw)

	a.Record(7, win(0, 2, 5))
	a.Record(7, loss(1, 8, 25))

	if len(gw.history) != 2 {
		t.Fatalf("History entries: %d", len(gw.history))
	}
	if gw.history[0].Level != 0 || !gw.history[0].Completed {
		t.Errorf("First entry: %+v", gw.history[0])
	}
	if gw.history[1].Level != 1 || gw.history[1].Completed {
		t.Errorf("Second entry: %+v", gw.history[1])
	}
	if !gw.history[1].CreatedAt.Equal(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("Timestamp not taken from clock: %v", gw.history[1].CreatedAt)
	}
}

func TestWriteFailuresAreNotFatal(t *testing.T) {
	gw := newFakeGateway()
	gw.failHistory = true
	a := newTestAggregator(gw)

	// Must not panic, and the stats write still happens.
	a.Record(7, win(0, 2, 5))

	if gw.stats[7].TotalGamesPlayed != 1 {
		t.Error("Stats write skipped after history failure")
	}

	gw.failHistory = false
	gw.failStats = true
	a.Record(7, win(1, 3, 10))

	// Record update still runs when stats fail.
	if _, ok := gw.records[[2]int64{7, 1}]; !ok {
		t.Error("Record write skipped after stats failure")
	}
}
