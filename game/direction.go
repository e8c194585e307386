package game

import "grid-snake/game/types"

// Steering holds the heading used by the last completed step and the turn
// requested for the next one. Requests are judged against the committed
// heading, never against an earlier request that has not been applied yet.
type Steering struct {
	heading types.Direction
	pending types.Direction
}

func NewSteering(initial types.Direction) *Steering {
	return &Steering{heading: initial, pending: initial}
}

// Request queues d for the next step. Reversals of the committed heading and
// invalid directions are dropped; the last accepted request wins.
func (s *Steering) Request(d types.Direction) bool {
	if !d.Valid() || d == s.heading.Opposite() {
		return false
	}
	s.pending = d
	return true
}

// Commit makes the pending request the heading and returns it.
func (s *Steering) Commit() types.Direction {
	s.heading = s.pending
	return s.heading
}

func (s *Steering) Heading() types.Direction {
	return s.heading
}

func (s *Steering) Pending() types.Direction {
	return s.pending
}

func (s *Steering) Reset(d types.Direction) {
	s.heading = d
	s.pending = d
}
