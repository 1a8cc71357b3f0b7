package game

import (
	"math/rand"
	"sync"
)

// Outcome is the result of a finished session, handed to the aggregator
// exactly once per terminal transition.
type Outcome struct {
	Won       bool
	MovesUsed int
	TimeSpent int // Seconds actually consumed, not remaining
	Level     int
	Relax     bool
}

// Session is the state machine for one attempt at one level. All
// mutations (flip, compare resolution, tick) are serialized behind a
// single mutex; delayed resolutions carry an epoch so that a callback
// scheduled against a superseded state is a no-op.
//
// A Session is never reused across levels or restarts: the progression
// controller constructs a fresh one instead of mutating in place.
type Session struct {
	mu sync.Mutex

	level  LevelDefinition
	relax  bool
	sched  Scheduler
	events chan<- Event

	deck      Deck
	moves     int
	remaining int // Normal mode: seconds left on the countdown
	elapsed   int // Relax mode: seconds since start

	comparing       bool
	over            bool
	overReason      OverReason
	outcomeRecorded bool

	// epoch invalidates pending delayed callbacks. Bumped whenever the
	// session is closed; a hide callback from a stale epoch does nothing.
	epoch      uint64
	cancelHide func()

	onOutcome  func(Outcome)
	onTerminal func(won bool)

	// calls collects callbacks raised while the lock is held; they are
	// fired by the public entry points after unlocking.
	calls []func()
}

// NewSession creates a session for the given level with a freshly
// generated deck. onOutcome and onTerminal may be nil.
func NewSession(def LevelDefinition, relax bool, rng *rand.Rand, sched Scheduler, events chan<- Event, onOutcome func(Outcome), onTerminal func(won bool)) *Session {
	return &Session{
		level:      def,
		relax:      relax,
		sched:      sched,
		events:     events,
		deck:       GenerateDeck(rng, def.Symbols),
		remaining:  def.TimeLimit,
		onOutcome:  onOutcome,
		onTerminal: onTerminal,
	}
}

// Flip attempts to turn the card with the given id face up. Rejected
// flips (unknown id, card not hidden, comparison in progress, two cards
// already revealed, session finished) are silent no-ops and return false.
func (s *Session) Flip(id int) bool {
	s.mu.Lock()
	accepted := s.flipLocked(id)
	fire := s.drainCalls()
	s.mu.Unlock()
	for _, f := range fire {
		f()
	}
	return accepted
}

func (s *Session) flipLocked(id int) bool {
	if s.terminalLocked() || s.comparing {
		return false
	}
	if id < 0 || id >= len(s.deck) {
		return false
	}
	if s.deck[id].State != CardHidden {
		return false
	}

	revealed := s.deck.revealedIDs()
	if len(revealed) >= 2 {
		return false
	}

	s.deck[id].State = CardRevealed
	s.emit(FlipEvent{CardID: id})

	if len(revealed) == 1 {
		s.compareLocked(revealed[0], id)
	}
	return true
}

// compareLocked resolves the pair the instant the second card is
// revealed. One comparison costs exactly one move, match or not.
func (s *Session) compareLocked(a, b int) {
	s.comparing = true
	s.moves++

	if s.deck[a].Symbol == s.deck[b].Symbol {
		s.deck[a].State = CardMatched
		s.deck[b].State = CardMatched
		s.comparing = false
		s.emit(MatchEvent{CardIDs: [2]int{a, b}, Symbol: s.deck[a].Symbol})
	} else {
		s.emit(MismatchEvent{CardIDs: [2]int{a, b}})
		s.scheduleHideLocked(a, b)
	}

	s.evaluateLocked()
}

// scheduleHideLocked arms the mismatch suspension: both cards stay
// revealed for the display window, then flip back down. The epoch guard
// keeps the callback from touching a session that was closed meanwhile.
func (s *Session) scheduleHideLocked(a, b int) {
	epoch := s.epoch
	s.cancelHide = s.sched.After(MismatchDelay, func() {
		s.mu.Lock()
		if s.epoch != epoch {
			s.mu.Unlock()
			return
		}
		if s.deck[a].State == CardRevealed {
			s.deck[a].State = CardHidden
		}
		if s.deck[b].State == CardRevealed {
			s.deck[b].State = CardHidden
		}
		s.comparing = false
		s.cancelHide = nil
		fire := s.drainCalls()
		s.mu.Unlock()
		for _, f := range fire {
			f()
		}
	})
}

// Tick advances the clock by one second. Frozen once the session is
// terminal. Relax mode counts up and can never time out.
func (s *Session) Tick() {
	s.mu.Lock()
	if s.terminalLocked() {
		s.mu.Unlock()
		return
	}

	if s.relax {
		s.elapsed++
		s.mu.Unlock()
		return
	}

	if s.remaining > 0 {
		s.remaining--
	}
	s.evaluateLocked()
	fire := s.drainCalls()
	s.mu.Unlock()
	for _, f := range fire {
		f()
	}
}

// evaluateLocked derives the terminal state from the current fields.
// Completion takes priority over a simultaneous failure: the match that
// clears the board on the exact capped move still wins.
func (s *Session) evaluateLocked() {
	if s.outcomeRecorded {
		return
	}

	if s.deck.allMatched() {
		s.finishLocked(true, "")
		return
	}

	if s.relax {
		return
	}

	switch {
	case s.level.MaxMoves > 0 && s.moves >= s.level.MaxMoves:
		s.finishLocked(false, OverMovesExceeded)
	case s.remaining <= 0:
		s.finishLocked(false, OverTimeUp)
	}
}

// finishLocked records the terminal transition exactly once.
func (s *Session) finishLocked(won bool, reason OverReason) {
	if s.outcomeRecorded {
		return
	}
	s.outcomeRecorded = true

	if won {
		s.emit(LevelCompleteEvent{Level: s.level.Index})
	} else {
		s.over = true
		s.overReason = reason
		s.emit(GameOverEvent{Level: s.level.Index, Reason: reason})
	}

	outcome := Outcome{
		Won:       won,
		MovesUsed: s.moves,
		TimeSpent: s.timeSpentLocked(),
		Level:     s.level.Index,
		Relax:     s.relax,
	}

	if s.onOutcome != nil {
		fn := s.onOutcome
		s.calls = append(s.calls, func() { fn(outcome) })
	}
	if s.onTerminal != nil {
		fn := s.onTerminal
		s.calls = append(s.calls, func() { fn(won) })
	}
}

// timeSpentLocked is the seconds actually consumed: elapsed in relax
// mode, limit minus remaining in normal mode.
func (s *Session) timeSpentLocked() int {
	if s.relax {
		return s.elapsed
	}
	remaining := s.remaining
	if remaining < 0 {
		remaining = 0
	}
	return s.level.TimeLimit - remaining
}

func (s *Session) terminalLocked() bool {
	return s.over || s.deck.allMatched()
}

// Close invalidates the session: any pending mismatch resolution is
// cancelled and can no longer mutate the deck. Called by the progression
// controller before discarding a session.
func (s *Session) Close() {
	s.mu.Lock()
	s.epoch++
	cancel := s.cancelHide
	s.cancelHide = nil
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// LevelComplete reports whether every card has been matched.
func (s *Session) LevelComplete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deck.allMatched()
}

// GameOver reports whether the session was lost, and why.
func (s *Session) GameOver() (bool, OverReason) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.over, s.overReason
}

// emit sends an event without blocking; a saturated consumer drops
// events rather than stalling the state machine.
func (s *Session) emit(ev Event) {
	if s.events == nil {
		return
	}
	select {
	case s.events <- ev:
	default:
	}
}

func (s *Session) drainCalls() []func() {
	fire := s.calls
	s.calls = nil
	return fire
}
