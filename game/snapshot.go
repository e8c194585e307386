package game

import (
	"time"

	"grid-snake/game/types"
)

// Snapshot is the read-only view a renderer draws from.
type Snapshot struct {
	SessionID string
	Grid      types.Grid
	State     State
	Snake     []types.Point
	Food      types.Point
	Heading   types.Direction
	Score     int
	HighScore int
	Speed     time.Duration
	Ticks     int
}

// Running reports whether ticks are being scheduled.
func (s Snapshot) Running() bool {
	return s.State == Running
}

// Visibility tells the presentation layer which screen to show.
type Visibility struct {
	ShowInstructions bool
	ShowBoard        bool
}

func (s Snapshot) Visibility() Visibility {
	return Visibility{
		ShowInstructions: !s.Running(),
		ShowBoard:        s.Running(),
	}
}

// Head returns the first snake segment.
func (s Snapshot) Head() types.Point {
	if len(s.Snake) == 0 {
		return types.Point{}
	}
	return s.Snake[0]
}
