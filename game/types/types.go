package types

import "fmt"

// Grid represents the game grid dimensions. Cells are 1-indexed on both axes.
type Grid struct {
	Width  int
	Height int
}

// Board dimensions
const (
	GridWidth  = 15
	GridHeight = 10
)

// DefaultGrid returns the 15x10 board the game is played on.
func DefaultGrid() Grid {
	return Grid{Width: GridWidth, Height: GridHeight}
}

// Contains reports whether p lies inside the grid, bounds inclusive.
func (g Grid) Contains(p Point) bool {
	return p.X >= 1 && p.X <= g.Width && p.Y >= 1 && p.Y <= g.Height
}

// Cells returns the number of cells on the grid.
func (g Grid) Cells() int {
	return g.Width * g.Height
}

type Point struct {
	X, Y int
}

// Add returns p offset by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}
