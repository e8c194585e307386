package game

import "grid-snake/game/manager"

// EventKind labels what a session just did.
type EventKind int

const (
	EventStarted EventKind = iota
	EventMoved
	EventAte
	EventGameOver
)

func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventMoved:
		return "moved"
	case EventAte:
		return "ate"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event is delivered to observers once the mutation that caused it is
// complete. For EventGameOver, Score is the final score of the run and
// Snapshot already shows the reset board.
type Event struct {
	Kind     EventKind
	Score    int
	NewHigh  bool
	Cause    manager.CollisionType
	Snapshot Snapshot
}

// Observer receives session events. Observers run outside the session lock
// and may call back into the session.
type Observer interface {
	OnEvent(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) OnEvent(ev Event) {
	f(ev)
}
