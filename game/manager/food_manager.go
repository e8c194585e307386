package manager

import (
	"golang.org/x/exp/rand"

	"grid-snake/game/types"
)

// samplesPerCell bounds rejection sampling before falling back to scanning
// the board for free cells.
const samplesPerCell = 4

type FoodManager struct {
	grid       types.Grid
	rng        *rand.Rand
	maxSamples int
}

func NewFoodManager(grid types.Grid, rng *rand.Rand) *FoodManager {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &FoodManager{
		grid:       grid,
		rng:        rng,
		maxSamples: samplesPerCell * grid.Cells(),
	}
}

// Place picks a uniformly random free cell. Cells are drawn at random until
// one is not occupied; after maxSamples misses the free cells are enumerated
// and one is drawn from those. ok is false only when the board is full.
func (fm *FoodManager) Place(occupied func(types.Point) bool) (food types.Point, ok bool) {
	for i := 0; i < fm.maxSamples; i++ {
		food = types.Point{
			X: fm.rng.Intn(fm.grid.Width) + 1,
			Y: fm.rng.Intn(fm.grid.Height) + 1,
		}
		if !occupied(food) {
			return food, true
		}
	}

	free := make([]types.Point, 0, fm.grid.Cells())
	for y := 1; y <= fm.grid.Height; y++ {
		for x := 1; x <= fm.grid.Width; x++ {
			p := types.Point{X: x, Y: y}
			if !occupied(p) {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		return types.Point{}, false
	}
	return free[fm.rng.Intn(len(free))], true
}
