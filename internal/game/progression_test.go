package game

import (
	"math/rand"
	"testing"
)

func newTestProgression(t *testing.T, relax bool) (*Progression, *manualScheduler, *[]Outcome) {
	t.Helper()
	sched := &manualScheduler{}
	outcomes := &[]Outcome{}
	catalog := NewCatalog(rand.New(rand.NewSource(100)))
	p := NewProgression(catalog, rand.New(rand.NewSource(200)), relax, sched,
		func(o Outcome) { *outcomes = append(*outcomes, o) })
	t.Cleanup(p.Close)
	return p, sched, outcomes
}

// completeCurrentLevel flips every pair in order. The caller must ensure
// the move cap allows a perfect clear.
func completeCurrentLevel(t *testing.T, p *Progression) {
	t.Helper()
	snap, _ := p.Snapshot()
	for _, ids := range idsBySymbol(snap) {
		if !p.Flip(ids[0]) || !p.Flip(ids[1]) {
			t.Fatal("Pair flip rejected during level clear")
		}
	}
	snap, _ = p.Snapshot()
	if snap.State != StateLevelComplete {
		t.Fatalf("Level not complete after matching all pairs: %s", snap.State)
	}
}

func TestProgressionAdvancesAfterCompletion(t *testing.T) {
	p, sched, outcomes := newTestProgression(t, false)
	p.Start(0)

	completeCurrentLevel(t, p)

	if len(*outcomes) != 1 || !(*outcomes)[0].Won {
		t.Fatalf("Expected one winning outcome, got %+v", *outcomes)
	}
	if p.LevelIndex() != 0 {
		t.Fatal("Advanced before the display delay")
	}

	sched.fire()

	if p.LevelIndex() != 1 {
		t.Fatalf("Expected level 1 after advance, got %d", p.LevelIndex())
	}
	snap, _ := p.Snapshot()
	if snap.Moves != 0 {
		t.Errorf("Fresh session has %d moves", snap.Moves)
	}
	if snap.Remaining != snap.TimeLimit {
		t.Errorf("Clock not reset: remaining=%d limit=%d", snap.Remaining, snap.TimeLimit)
	}
	if len(snap.Deck) != 6 {
		t.Errorf("Level 1 deck has %d cards, expected 6", len(snap.Deck))
	}
}

func TestJumpCancelsPendingAdvance(t *testing.T) {
	p, sched, _ := newTestProgression(t, false)
	p.Start(0)

	completeCurrentLevel(t, p)

	// Player jumps away during the completion display window.
	p.SelectLevel(3)
	if p.LevelIndex() != 3 {
		t.Fatalf("Jump did not land on level 3: %d", p.LevelIndex())
	}

	sched.fire()

	if p.LevelIndex() != 3 {
		t.Errorf("Stale advance overrode the jump: level %d", p.LevelIndex())
	}
}

func TestRestartResetsCurrentLevel(t *testing.T) {
	p, sched, _ := newTestProgression(t, false)
	p.Start(2)

	// Burn a move on a deliberate mismatch.
	snap, _ := p.Snapshot()
	var a, b int
	for _, ids := range idsBySymbol(snap) {
		a = ids[0]
		break
	}
	for sym, ids := range idsBySymbol(snap) {
		if snap.Deck[a].Symbol != sym {
			b = ids[0]
			break
		}
	}
	p.Flip(a)
	p.Flip(b)
	sched.fire()

	snap, _ = p.Snapshot()
	if snap.Moves != 1 {
		t.Fatalf("Setup failed: moves=%d", snap.Moves)
	}

	p.Restart()

	snap, _ = p.Snapshot()
	if p.LevelIndex() != 2 {
		t.Errorf("Restart changed the level: %d", p.LevelIndex())
	}
	if snap.Moves != 0 {
		t.Errorf("Restart kept %d moves", snap.Moves)
	}
	if snap.Remaining != snap.TimeLimit {
		t.Errorf("Restart did not reset the clock: %d/%d", snap.Remaining, snap.TimeLimit)
	}
	for _, c := range snap.Deck {
		if c.State != CardHidden {
			t.Errorf("Card %d not hidden after restart: %v", c.ID, c.State)
		}
	}
}

func TestStaleMismatchDoesNotTouchRestartedSession(t *testing.T) {
	p, sched, _ := newTestProgression(t, false)
	p.Start(0)

	// Create a pending mismatch hide, then restart before it fires.
	snap, _ := p.Snapshot()
	pairs := idsBySymbol(snap)
	var first, second int
	seen := false
	for _, ids := range pairs {
		if !seen {
			first = ids[0]
			seen = true
		} else {
			second = ids[0]
			break
		}
	}
	p.Flip(first)
	p.Flip(second)

	p.Restart()
	sched.fire()

	snap, _ = p.Snapshot()
	if snap.Moves != 0 {
		t.Errorf("Stale resolution landed on the new session: moves=%d", snap.Moves)
	}
	for _, c := range snap.Deck {
		if c.State != CardHidden {
			t.Errorf("Card %d mutated by stale callback: %v", c.ID, c.State)
		}
	}
}

func TestGameWonOnLastLevel(t *testing.T) {
	p, sched, outcomes := newTestProgression(t, false)
	p.Start(4)

	completeCurrentLevel(t, p)

	if !p.GameWon() {
		t.Fatal("GameWon false after completing the last level")
	}
	if len(*outcomes) != 1 || !(*outcomes)[0].Won {
		t.Fatalf("Expected one winning outcome, got %+v", *outcomes)
	}

	// No auto-advance past the last level.
	sched.fire()
	if p.LevelIndex() != 4 {
		t.Errorf("Advanced past the last level to %d", p.LevelIndex())
	}

	found := false
	for _, ev := range drainEvents(p.Events()) {
		if _, ok := ev.(GameWonEvent); ok {
			found = true
		}
	}
	if !found {
		t.Error("GameWonEvent not emitted")
	}
}

func TestSelectLevelClampsOutOfRange(t *testing.T) {
	p, _, _ := newTestProgression(t, false)
	p.Start(0)

	p.SelectLevel(99)
	if p.LevelIndex() != 0 {
		t.Errorf("Out-of-range jump landed on %d, expected clamp to 0", p.LevelIndex())
	}

	p.SelectLevel(-5)
	if p.LevelIndex() != 0 {
		t.Errorf("Negative jump landed on %d, expected clamp to 0", p.LevelIndex())
	}
}

func TestRelaxProgressionCompletesWithoutCaps(t *testing.T) {
	p, _, outcomes := newTestProgression(t, true)
	p.Start(0)

	completeCurrentLevel(t, p)

	if len(*outcomes) != 1 {
		t.Fatalf("Expected one outcome, got %d", len(*outcomes))
	}
	if !(*outcomes)[0].Relax {
		t.Error("Outcome not flagged as relax mode")
	}
}
