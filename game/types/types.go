package types

import "fmt"

// Point is a cell coordinate. X grows to the right, Y grows downward.
type Point struct {
	X, Y int
}

func (p Point) Add(d Direction) Point {
	dx, dy := d.Delta()
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Adjacent reports whether q is one orthogonal step away from p.
func (p Point) Adjacent(q Point) bool {
	return abs(p.X-q.X)+abs(p.Y-q.Y) == 1
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Delta returns the unit step for the direction.
func (d Direction) Delta() (int, int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	}
	panic(fmt.Sprintf("types: invalid direction %d", int(d)))
}

func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// Vertical reports whether the direction moves along the Y axis.
func (d Direction) Vertical() bool {
	return d == Up || d == Down
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

// CellState is what occupies a grid cell.
type CellState uint8

const (
	EmptyCell CellState = iota
	SnakeCell
	FoodCell
)

type FoodShape int

const (
	Basic FoodShape = iota
	Bonus
)

type Food struct {
	Location Point
	Shape    FoodShape
}

// State of a play session
type State int

const (
	Running State = iota
	Over
	Won
	Quit
)

// Terminal reports whether ticks have stopped having any effect.
func (s State) Terminal() bool {
	return s != Running
}

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Over:
		return "over"
	case Won:
		return "won"
	case Quit:
		return "quit"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// CollisionType represents the type of collision that ended a game
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
	}
	return "none"
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
