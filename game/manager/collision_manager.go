package manager

import (
	"snake/game/types"
)

// Outcome is what happens when the head enters a cell.
type Outcome int

const (
	Move Outcome = iota
	Eat
	HitSelf
	HitWall
)

func (o Outcome) String() string {
	switch o {
	case Move:
		return "move"
	case Eat:
		return "eat"
	case HitSelf:
		return "hit-self"
	case HitWall:
		return "hit-wall"
	}
	return "unknown"
}

// Collision reports the collision type the outcome ends the game with.
func (o Outcome) Collision() types.CollisionType {
	switch o {
	case HitSelf:
		return types.SelfCollision
	case HitWall:
		return types.WallCollision
	}
	return types.NoCollision
}

type CollisionManager struct{}

func NewCollisionManager() *CollisionManager {
	return &CollisionManager{}
}

// Classify checks the wall before reading the grid, so pos may be any point.
// The cell the tail is about to leave still counts as body.
func (cm *CollisionManager) Classify(grid *types.Grid, pos types.Point) Outcome {
	if !grid.InBounds(pos) {
		return HitWall
	}

	switch grid.Get(pos) {
	case types.FoodCell:
		return Eat
	case types.SnakeCell:
		return HitSelf
	default:
		return Move
	}
}

// IsFoodAhead reports whether pos is an in-bounds food cell.
func (cm *CollisionManager) IsFoodAhead(grid *types.Grid, pos types.Point) bool {
	return grid.InBounds(pos) && grid.Get(pos) == types.FoodCell
}
