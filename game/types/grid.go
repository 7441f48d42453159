package types

import "fmt"

// Grid represents the game field: Width x Height cells stored row-major.
type Grid struct {
	Width  int
	Height int
	cells  []CellState
}

func NewGrid(width, height int) *Grid {
	return &Grid{
		Width:  width,
		Height: height,
		cells:  make([]CellState, width*height),
	}
}

func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Get panics when p lies outside the grid; callers validate positions first.
func (g *Grid) Get(p Point) CellState {
	return g.cells[g.index(p)]
}

func (g *Grid) Set(p Point, state CellState) {
	g.cells[g.index(p)] = state
}

// Len returns the number of cells.
func (g *Grid) Len() int {
	return len(g.cells)
}

// Count returns how many cells hold state.
func (g *Grid) Count(state CellState) int {
	n := 0
	for _, c := range g.cells {
		if c == state {
			n++
		}
	}
	return n
}

func (g *Grid) index(p Point) int {
	if !g.InBounds(p) {
		panic(fmt.Sprintf("grid: point %v outside %dx%d", p, g.Width, g.Height))
	}
	return p.Y*g.Width + p.X
}
