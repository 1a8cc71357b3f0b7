package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-memory/internal/stats"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestUserLifecycle(t *testing.T) {
	store := openTestStore(t)

	exists, err := store.UsernameExists("alice")
	if err != nil {
		t.Fatalf("UsernameExists() failed: %v", err)
	}
	if exists {
		t.Error("Username reported as existing in empty database")
	}

	id, err := store.CreateUser("alice", "$2a$10$fakehash")
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	if id == 0 {
		t.Error("CreateUser() returned zero id")
	}

	exists, err = store.UsernameExists("alice")
	if err != nil {
		t.Fatalf("UsernameExists() failed: %v", err)
	}
	if !exists {
		t.Error("Created username not found")
	}

	u, err := store.FindUserByName("alice")
	if err != nil {
		t.Fatalf("FindUserByName() failed: %v", err)
	}
	if u == nil {
		t.Fatal("Created user not found")
	}
	if u.ID != id || u.Username != "alice" || u.PasswordHash != "$2a$10$fakehash" {
		t.Errorf("Unexpected user row: %+v", u)
	}

	// Unknown user is nil, not an error
	missing, err := store.FindUserByName("bob")
	if err != nil {
		t.Fatalf("FindUserByName() failed: %v", err)
	}
	if missing != nil {
		t.Errorf("Expected nil for unknown user, got %+v", missing)
	}
}

func TestDuplicateUsernameRejected(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.CreateUser("alice", "h1"); err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	if _, err := store.CreateUser("alice", "h2"); err == nil {
		t.Error("Duplicate username insert did not fail")
	}
}

func TestStatsUpsertAndGet(t *testing.T) {
	store := openTestStore(t)

	missing, err := store.GetStats(1)
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if missing != nil {
		t.Errorf("Expected nil stats for new user, got %+v", missing)
	}

	ps := stats.PlayerStats{
		UserID:           1,
		TotalGamesPlayed: 3,
		TotalGamesWon:    2,
		TotalTimePlayed:  120,
		TotalMoves:       40,
		CurrentStreak:    2,
		BestStreak:       2,
		LastPlayed:       time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
	}
	if err := store.UpsertStats(ps); err != nil {
		t.Fatalf("UpsertStats() failed: %v", err)
	}

	got, err := store.GetStats(1)
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if got == nil {
		t.Fatal("Stats row not found after upsert")
	}
	if got.TotalGamesPlayed != 3 || got.TotalGamesWon != 2 || got.BestStreak != 2 {
		t.Errorf("Unexpected stats: %+v", got)
	}

	// Second upsert replaces, not duplicates
	ps.TotalGamesPlayed = 4
	ps.CurrentStreak = 0
	if err := store.UpsertStats(ps); err != nil {
		t.Fatalf("UpsertStats() failed: %v", err)
	}
	got, _ = store.GetStats(1)
	if got.TotalGamesPlayed != 4 || got.CurrentStreak != 0 {
		t.Errorf("Upsert did not replace row: %+v", got)
	}
}

func TestRecordUpsertAndGet(t *testing.T) {
	store := openTestStore(t)

	missing, err := store.GetRecord(1, 2)
	if err != nil {
		t.Fatalf("GetRecord() failed: %v", err)
	}
	if missing != nil {
		t.Errorf("Expected nil record, got %+v", missing)
	}

	rec := stats.GameRecord{
		UserID:         1,
		Level:          2,
		BestTime:       30,
		BestMoves:      10,
		TimesCompleted: 1,
		LastPlayed:     time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
	}
	if err := store.UpsertRecord(rec); err != nil {
		t.Fatalf("UpsertRecord() failed: %v", err)
	}

	got, err := store.GetRecord(1, 2)
	if err != nil {
		t.Fatalf("GetRecord() failed: %v", err)
	}
	if got == nil {
		t.Fatal("Record not found after upsert")
	}
	if got.BestTime != 30 || got.BestMoves != 10 || got.TimesCompleted != 1 {
		t.Errorf("Unexpected record: %+v", got)
	}

	// Records are keyed per user x level
	other, err := store.GetRecord(2, 2)
	if err != nil {
		t.Fatalf("GetRecord() failed: %v", err)
	}
	if other != nil {
		t.Errorf("Record leaked across users: %+v", other)
	}

	rec.BestMoves = 8
	rec.TimesCompleted = 2
	if err := store.UpsertRecord(rec); err != nil {
		t.Fatalf("UpsertRecord() failed: %v", err)
	}

	all, err := store.AllRecords(1)
	if err != nil {
		t.Fatalf("AllRecords() failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(all))
	}
	if all[0].BestMoves != 8 || all[0].TimesCompleted != 2 {
		t.Errorf("Upsert did not replace record: %+v", all[0])
	}
}

func TestHistoryAppendAndRecent(t *testing.T) {
	store := openTestStore(t)

	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		entry := stats.HistoryEntry{
			UserID:    1,
			Level:     i % 3,
			Moves:     i + 2,
			TimeSpent: 10 * (i + 1),
			Completed: i%2 == 0,
			RelaxMode: i == 4,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := store.AppendHistory(entry); err != nil {
			t.Fatalf("AppendHistory() failed: %v", err)
		}
	}

	// A different user's play should not show up
	if err := store.AppendHistory(stats.HistoryEntry{UserID: 2, CreatedAt: base}); err != nil {
		t.Fatalf("AppendHistory() failed: %v", err)
	}

	entries, err := store.RecentHistory(1, 3)
	if err != nil {
		t.Fatalf("RecentHistory() failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}

	// Newest first
	if entries[0].Moves != 6 || entries[1].Moves != 5 || entries[2].Moves != 4 {
		t.Errorf("History not ordered newest first: %+v", entries)
	}
	if !entries[0].RelaxMode || !entries[0].Completed {
		t.Errorf("Flags lost in round trip: %+v", entries[0])
	}
	if entries[1].Completed {
		t.Errorf("Completed flag wrongly set: %+v", entries[1])
	}
}
