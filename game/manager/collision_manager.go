package manager

import (
	"grid-snake/game/entity"
	"grid-snake/game/types"
)

// CollisionType represents the type of collision
type CollisionType int

const (
	NoCollision CollisionType = iota
	WallCollision
	SelfCollision
)

func (c CollisionType) String() string {
	switch c {
	case WallCollision:
		return "wall"
	case SelfCollision:
		return "self"
	default:
		return "none"
	}
}

type CollisionManager struct {
	grid types.Grid
}

func NewCollisionManager(grid types.Grid) *CollisionManager {
	return &CollisionManager{
		grid: grid,
	}
}

// Check classifies the snake as it stands after a move. The head must be on
// the grid and must not share a cell with any later segment.
func (cm *CollisionManager) Check(snake *entity.Snake) CollisionType {
	if cm.isWallCollision(snake.GetHead()) {
		return WallCollision
	}
	if snake.HitsSelf() {
		return SelfCollision
	}
	return NoCollision
}

// isWallCollision checks if a position lies outside the board
func (cm *CollisionManager) isWallCollision(pos types.Point) bool {
	return !cm.grid.Contains(pos)
}

// IsDanger reports whether moving the head of body onto pos would be fatal,
// assuming no food is eaten so the tail cell is vacated.
func (cm *CollisionManager) IsDanger(body []types.Point, pos types.Point) bool {
	if cm.isWallCollision(pos) {
		return true
	}
	if len(body) == 0 {
		return false
	}
	for _, part := range body[:len(body)-1] {
		if pos == part {
			return true
		}
	}
	return false
}
