package game

// SessionStateType labels the coarse phase of a session for display.
type SessionStateType string

const (
	StatePlaying       SessionStateType = "playing"
	StateComparing     SessionStateType = "comparing"
	StateLevelComplete SessionStateType = "level_complete"
	StateGameOver      SessionStateType = "game_over"
)

// Snapshot is an immutable view of a session for rendering and tests.
type Snapshot struct {
	Level      int
	Relax      bool
	Columns    int
	Deck       Deck
	Moves      int
	MaxMoves   int
	TimeLimit  int
	Remaining  int // Normal mode countdown value
	Elapsed    int // Relax mode count-up value
	Comparing  bool
	State      SessionStateType
	OverReason OverReason
}

// Snapshot returns the current session state. The deck is a copy; the
// caller may hold it across further transitions.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := StatePlaying
	switch {
	case s.over:
		state = StateGameOver
	case s.deck.allMatched():
		state = StateLevelComplete
	case s.comparing:
		state = StateComparing
	}

	return Snapshot{
		Level:      s.level.Index,
		Relax:      s.relax,
		Columns:    s.level.Columns,
		Deck:       s.deck.Clone(),
		Moves:      s.moves,
		MaxMoves:   s.level.MaxMoves,
		TimeLimit:  s.level.TimeLimit,
		Remaining:  s.remaining,
		Elapsed:    s.elapsed,
		Comparing:  s.comparing,
		State:      state,
		OverReason: s.overReason,
	}
}
