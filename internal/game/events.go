package game

// Event represents a discrete occurrence emitted by the session engine.
// The platform layer consumes these for sound cues and overlays; the
// engine never blocks on a slow consumer (events are dropped if the
// buffer is full).
type Event interface {
	gameEvent()
}

// FlipEvent is sent when a hidden card is turned face up.
type FlipEvent struct {
	CardID int
}

func (FlipEvent) gameEvent() {}

// MatchEvent is sent when a comparison finds two equal symbols.
type MatchEvent struct {
	CardIDs [2]int
	Symbol  string
}

func (MatchEvent) gameEvent() {}

// MismatchEvent is sent when a comparison finds two different symbols.
// The pair stays revealed for the mismatch display window before being
// hidden again.
type MismatchEvent struct {
	CardIDs [2]int
}

func (MismatchEvent) gameEvent() {}

// LevelCompleteEvent is sent once when every card on the board is matched.
type LevelCompleteEvent struct {
	Level int
}

func (LevelCompleteEvent) gameEvent() {}

// GameOverEvent is sent once when a normal-mode session fails.
type GameOverEvent struct {
	Level  int
	Reason OverReason
}

func (GameOverEvent) gameEvent() {}

// GameWonEvent is sent when the last level of the campaign is completed.
type GameWonEvent struct{}

func (GameWonEvent) gameEvent() {}

// OverReason describes why a session was lost.
type OverReason string

const (
	OverMovesExceeded OverReason = "moves_exceeded"
	OverTimeUp        OverReason = "time_up"
)
