package game

import (
	"snake/game/entity"
	"snake/game/types"
)

// Renderer receives a call for every visible change. Calls are made
// synchronously from Tick and New; a renderer must not call back into the Game.
type Renderer interface {
	// OnInit is called once with the full initial body.
	OnInit(s *entity.Snake)
	// OnMove is called after a plain move. vacated is the cell the tail left.
	OnMove(s *entity.Snake, vacated types.Point, foodAhead bool)
	// OnEat is called after the snake grew onto eaten.
	OnEat(s *entity.Snake, eaten types.Food, foodAhead bool)
	OnFoodAdded(f types.Food)
	// OnFoodRemoved is called when food disappears without being eaten.
	OnFoodRemoved(f types.Food)
}

type multiRenderer []Renderer

// Renderers fans notifications out to rs in order.
func Renderers(rs ...Renderer) Renderer {
	return multiRenderer(rs)
}

func (m multiRenderer) OnInit(s *entity.Snake) {
	for _, r := range m {
		r.OnInit(s)
	}
}

func (m multiRenderer) OnMove(s *entity.Snake, vacated types.Point, foodAhead bool) {
	for _, r := range m {
		r.OnMove(s, vacated, foodAhead)
	}
}

func (m multiRenderer) OnEat(s *entity.Snake, eaten types.Food, foodAhead bool) {
	for _, r := range m {
		r.OnEat(s, eaten, foodAhead)
	}
}

func (m multiRenderer) OnFoodAdded(f types.Food) {
	for _, r := range m {
		r.OnFoodAdded(f)
	}
}

func (m multiRenderer) OnFoodRemoved(f types.Food) {
	for _, r := range m {
		r.OnFoodRemoved(f)
	}
}

// NopRenderer ignores every notification.
type NopRenderer struct{}

func (NopRenderer) OnInit(*entity.Snake)                    {}
func (NopRenderer) OnMove(*entity.Snake, types.Point, bool) {}
func (NopRenderer) OnEat(*entity.Snake, types.Food, bool)   {}
func (NopRenderer) OnFoodAdded(types.Food)                  {}
func (NopRenderer) OnFoodRemoved(types.Food)                {}
