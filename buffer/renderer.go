// Package buffer keeps a flat byte frame of the field, one byte per cell in
// row-major order, for front ends that copy raw memory into a canvas.
package buffer

import (
	"snake/game/entity"
	"snake/game/types"
)

// Cell codes stored in the frame.
const (
	CellEmpty byte = iota
	CellBody
	CellHead
	CellFood
	CellBonus
)

type Renderer struct {
	width, height int
	cells         []byte
	score         int
}

func NewRenderer(width, height int) *Renderer {
	return &Renderer{
		width:  width,
		height: height,
		cells:  make([]byte, width*height),
	}
}

func (r *Renderer) OnInit(s *entity.Snake) {
	for i := range r.cells {
		r.cells[i] = CellEmpty
	}
	r.score = 0
	for _, seg := range s.Body {
		r.set(seg.Position, CellBody)
	}
	r.set(s.Head().Position, CellHead)
}

func (r *Renderer) OnMove(s *entity.Snake, vacated types.Point, _ bool) {
	r.set(vacated, CellEmpty)
	r.moveHead(s)
}

func (r *Renderer) OnEat(s *entity.Snake, _ types.Food, _ bool) {
	r.score++
	r.moveHead(s)
}

func (r *Renderer) OnFoodAdded(f types.Food) {
	if f.Shape == types.Bonus {
		r.set(f.Location, CellBonus)
		return
	}
	r.set(f.Location, CellFood)
}

func (r *Renderer) OnFoodRemoved(f types.Food) {
	r.set(f.Location, CellEmpty)
}

// Cells returns the live frame. Callers must not keep it across notifications.
func (r *Renderer) Cells() []byte {
	return r.cells
}

func (r *Renderer) At(p types.Point) byte {
	return r.cells[p.Y*r.width+p.X]
}

func (r *Renderer) Score() int {
	return r.score
}

func (r *Renderer) Width() int  { return r.width }
func (r *Renderer) Height() int { return r.height }

func (r *Renderer) moveHead(s *entity.Snake) {
	if s.Len() > 1 {
		r.set(s.Neck().Position, CellBody)
	}
	r.set(s.Head().Position, CellHead)
}

func (r *Renderer) set(p types.Point, code byte) {
	r.cells[p.Y*r.width+p.X] = code
}
