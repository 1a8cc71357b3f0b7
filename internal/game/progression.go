package game

import (
	"math/rand"
	"sync"
)

// Progression sequences the campaign: it owns the current session and
// its clock, advances automatically after a completed level, and handles
// manual restarts and level jumps. Any switch discards the old session
// wholesale (cancelling its pending resolutions) so a stale timer can
// never mutate the new one.
type Progression struct {
	mu sync.Mutex

	catalog   *Catalog
	rng       *rand.Rand
	sched     Scheduler
	relax     bool
	events    chan Event
	onOutcome func(Outcome)

	levelIndex    int
	session       *Session
	clock         *Clock
	cancelAdvance func()
	gameWon       bool
	closed        bool
}

// NewProgression starts a campaign at the given level (clamped). The
// onOutcome hook receives every terminal outcome exactly once.
func NewProgression(catalog *Catalog, rng *rand.Rand, relax bool, sched Scheduler, onOutcome func(Outcome)) *Progression {
	p := &Progression{
		catalog:   catalog,
		rng:       rng,
		sched:     sched,
		relax:     relax,
		events:    make(chan Event, 32),
		onOutcome: onOutcome,
	}
	return p
}

// Start begins play at the given level index (clamped to the catalog).
func (p *Progression) Start(levelIndex int) {
	def := p.catalog.DefinitionAt(levelIndex)
	p.switchTo(def.Index, nil)
}

// Events exposes the engine's event stream for the presentation layer.
func (p *Progression) Events() <-chan Event {
	return p.events
}

// Flip forwards a flip to the current session.
func (p *Progression) Flip(cardID int) bool {
	p.mu.Lock()
	sess := p.session
	p.mu.Unlock()
	if sess == nil {
		return false
	}
	return sess.Flip(cardID)
}

// SelectLevel jumps to the given level, abandoning any progress on the
// current one. Out-of-range indices are clamped.
func (p *Progression) SelectLevel(levelIndex int) {
	def := p.catalog.DefinitionAt(levelIndex)
	p.switchTo(def.Index, nil)
}

// Restart resets the current level: fresh deck, zero moves, clock back
// to the level's cap.
func (p *Progression) Restart() {
	p.switchTo(levelCurrent, nil)
}

// levelCurrent is the switchTo sentinel for "keep the current index".
// User-facing indices are clamped to the catalog before reaching switchTo.
const levelCurrent = -1

// switchTo tears down the active session and starts a fresh one at the
// given level. When expect is non-nil the switch only proceeds if that
// session is still current, which keeps a delayed auto-advance from
// overriding a jump the player made during the wait.
func (p *Progression) switchTo(levelIndex int, expect *Session) {
	p.mu.Lock()
	if p.closed || (expect != nil && p.session != expect) {
		p.mu.Unlock()
		return
	}
	if levelIndex == levelCurrent {
		levelIndex = p.levelIndex
	}

	if p.cancelAdvance != nil {
		p.cancelAdvance()
		p.cancelAdvance = nil
	}
	oldClock := p.clock
	oldSession := p.session

	def := p.catalog.DefinitionAt(levelIndex)
	p.levelIndex = def.Index
	p.gameWon = false

	sess := NewSession(def, p.relax, p.rng, p.sched, p.events, p.onOutcome, nil)
	sess.onTerminal = func(won bool) { p.handleTerminal(sess, won) }
	p.session = sess
	p.clock = StartClock(TickInterval, sess.Tick)
	p.mu.Unlock()

	if oldClock != nil {
		oldClock.Stop()
	}
	if oldSession != nil {
		oldSession.Close()
	}
}

// handleTerminal reacts to a session reaching a terminal state: freeze
// the clock, and on a win either schedule the advance to the next level
// or mark the whole campaign as won.
func (p *Progression) handleTerminal(sess *Session, won bool) {
	p.mu.Lock()
	if p.closed || p.session != sess {
		p.mu.Unlock()
		return
	}

	clock := p.clock

	if won {
		next := p.levelIndex + 1
		if next < p.catalog.LevelCount() {
			p.cancelAdvance = p.sched.After(AdvanceDelay, func() {
				p.switchTo(next, sess)
			})
		} else {
			p.gameWon = true
			select {
			case p.events <- GameWonEvent{}:
			default:
			}
		}
	}
	p.mu.Unlock()

	if clock != nil {
		clock.Stop()
	}
}

// LevelIndex returns the index of the level currently in play.
func (p *Progression) LevelIndex() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.levelIndex
}

// GameWon reports whether the final level has been completed.
func (p *Progression) GameWon() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gameWon
}

// Snapshot returns the current session view plus campaign-level state.
func (p *Progression) Snapshot() (Snapshot, bool) {
	p.mu.Lock()
	sess := p.session
	won := p.gameWon
	p.mu.Unlock()
	if sess == nil {
		return Snapshot{}, won
	}
	return sess.Snapshot(), won
}

// Close stops the clock and cancels all pending delays. The progression
// must not be used afterwards.
func (p *Progression) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	if p.cancelAdvance != nil {
		p.cancelAdvance()
		p.cancelAdvance = nil
	}
	clock := p.clock
	sess := p.session
	p.mu.Unlock()

	if clock != nil {
		clock.Stop()
	}
	if sess != nil {
		sess.Close()
	}
}
