package entity

import "grid-snake/game/types"

// Snake is the ordered list of occupied cells, head first.
type Snake struct {
	Body []types.Point
}

func NewSnake(spawn types.Point) *Snake {
	return &Snake{
		Body: []types.Point{spawn},
	}
}

// Reset shrinks the snake back to a single segment at spawn.
func (s *Snake) Reset(spawn types.Point) {
	s.Body = append(s.Body[:0], spawn)
}

// Move prepends newHead. The caller decides whether the tail is dropped.
func (s *Snake) Move(newHead types.Point) {
	s.Body = append(s.Body, types.Point{})
	copy(s.Body[1:], s.Body[:len(s.Body)-1])
	s.Body[0] = newHead
}

func (s *Snake) RemoveTail() {
	if len(s.Body) > 1 {
		s.Body = s.Body[:len(s.Body)-1]
	}
}

func (s *Snake) GetHead() types.Point {
	return s.Body[0]
}

func (s *Snake) GetTail() types.Point {
	return s.Body[len(s.Body)-1]
}

func (s *Snake) Len() int {
	return len(s.Body)
}

// Occupies reports whether any segment sits on p.
func (s *Snake) Occupies(p types.Point) bool {
	for _, part := range s.Body {
		if part == p {
			return true
		}
	}
	return false
}

// HitsSelf reports whether the head overlaps any trailing segment.
// Every segment from index 1 on is checked.
func (s *Snake) HitsSelf() bool {
	head := s.Body[0]
	for _, part := range s.Body[1:] {
		if part == head {
			return true
		}
	}
	return false
}

// Segments returns a copy of the body safe to hand to readers.
func (s *Snake) Segments() []types.Point {
	body := make([]types.Point, len(s.Body))
	copy(body, s.Body)
	return body
}
