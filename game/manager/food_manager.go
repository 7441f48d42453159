package manager

import (
	"snake/game/types"

	"github.com/pkg/errors"
)

// ErrNoEmptyCell is returned by Place when every cell is taken.
var ErrNoEmptyCell = errors.New("no empty cell for food")

// Random is the part of a random source placement needs. *rand.Rand from
// golang.org/x/exp/rand satisfies it.
type Random interface {
	Intn(n int) int
}

type FoodManager struct {
	rng        Random
	bonusEvery int
}

// NewFoodManager creates a manager drawing from rng. One food in bonusEvery is
// a Bonus shape; zero or less disables bonus food.
func NewFoodManager(rng Random, bonusEvery int) *FoodManager {
	return &FoodManager{
		rng:        rng,
		bonusEvery: bonusEvery,
	}
}

// Place picks an empty cell uniformly, marks it as food and returns it.
func (fm *FoodManager) Place(grid *types.Grid) (types.Food, error) {
	available := grid.Count(types.EmptyCell)
	if available == 0 {
		return types.Food{}, ErrNoEmptyCell
	}

	target := fm.rng.Intn(available)
	seen := 0
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			p := types.Point{X: x, Y: y}
			if grid.Get(p) != types.EmptyCell {
				continue
			}
			if seen == target {
				grid.Set(p, types.FoodCell)
				return types.Food{Location: p, Shape: fm.shape()}, nil
			}
			seen++
		}
	}
	// Count and scan disagree only if the grid changed underneath us.
	panic("food: empty cell count changed during placement")
}

// Remove clears a food cell that was not eaten.
func (fm *FoodManager) Remove(grid *types.Grid, food types.Food) {
	if grid.Get(food.Location) == types.FoodCell {
		grid.Set(food.Location, types.EmptyCell)
	}
}

func (fm *FoodManager) shape() types.FoodShape {
	if fm.bonusEvery > 0 && fm.rng.Intn(fm.bonusEvery) == 0 {
		return types.Bonus
	}
	return types.Basic
}
