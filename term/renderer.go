// Package term draws a game on a tcell screen.
package term

import (
	"fmt"

	"snake/game/entity"
	"snake/game/types"

	"github.com/gdamore/tcell/v2"
)

// Field origin on screen. Each grid cell takes two columns so wide food glyphs fit.
const (
	OffsetX   = 2
	OffsetY   = 2
	CellWidth = 2
)

var (
	snakeStyle  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	headStyle   = tcell.StyleDefault.Foreground(tcell.ColorLightGreen).Bold(true)
	foodStyle   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	bonusStyle  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	borderStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	textStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

// Renderer paints notifications onto screen. It only touches the cells a
// notification names, except OnInit which draws the frame.
type Renderer struct {
	screen        tcell.Screen
	width, height int
	score         int
}

func NewRenderer(screen tcell.Screen, width, height int) *Renderer {
	return &Renderer{
		screen: screen,
		width:  width,
		height: height,
	}
}

func (r *Renderer) OnInit(s *entity.Snake) {
	r.screen.Clear()
	r.score = 0
	r.drawBorder()

	body := s.Body
	for i, seg := range body {
		switch {
		case i == len(body)-1:
			r.drawCell(seg.Position, mouth(seg.Direction, false), headStyle)
		case i == 0:
			r.drawCell(seg.Position, tailGlyph(s), snakeStyle)
		default:
			r.drawCell(seg.Position, "*", snakeStyle)
		}
	}
	r.drawScore()
	r.screen.Show()
}

func (r *Renderer) OnMove(s *entity.Snake, vacated types.Point, foodAhead bool) {
	r.drawCell(vacated, "", tcell.StyleDefault)
	if s.Len() > 1 {
		r.drawCell(s.Tail().Position, tailGlyph(s), snakeStyle)
	}
	r.replaceHead(s, foodAhead)
	r.screen.Show()
}

func (r *Renderer) OnEat(s *entity.Snake, eaten types.Food, foodAhead bool) {
	r.score++
	r.drawCell(eaten.Location, "", tcell.StyleDefault)
	r.replaceHead(s, foodAhead)
	r.drawScore()
	r.screen.Show()
}

func (r *Renderer) OnFoodAdded(f types.Food) {
	if f.Shape == types.Bonus {
		r.drawCell(f.Location, ":)", bonusStyle)
	} else {
		r.drawCell(f.Location, "@", foodStyle)
	}
	r.screen.Show()
}

func (r *Renderer) OnFoodRemoved(f types.Food) {
	r.drawCell(f.Location, "", tcell.StyleDefault)
	r.screen.Show()
}

// ShowMessage writes msg on the status line below the score.
func (r *Renderer) ShowMessage(msg string) {
	y := OffsetY + r.height + 2
	r.clearLine(y)
	r.drawText(OffsetX-1, y, msg, textStyle)
	r.screen.Show()
}

func (r *Renderer) replaceHead(s *entity.Snake, foodAhead bool) {
	head := s.Head()
	r.drawCell(head.Position, mouth(head.Direction, foodAhead), headStyle)
	if s.Len() > 2 {
		r.drawCell(s.Neck().Position, "*", snakeStyle)
	}
}

// drawCell fills both columns of a grid cell, padding glyph with spaces.
func (r *Renderer) drawCell(p types.Point, glyph string, style tcell.Style) {
	x := OffsetX + p.X*CellWidth
	y := OffsetY + p.Y
	runes := []rune(glyph)
	for i := 0; i < CellWidth; i++ {
		ch := ' '
		if i < len(runes) {
			ch = runes[i]
		}
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}

func (r *Renderer) drawBorder() {
	left := OffsetX - 1
	right := OffsetX + r.width*CellWidth
	top := OffsetY - 1
	bottom := OffsetY + r.height

	for x := left + 1; x < right; x++ {
		r.screen.SetContent(x, top, '─', nil, borderStyle)
		r.screen.SetContent(x, bottom, '─', nil, borderStyle)
	}
	for y := top + 1; y < bottom; y++ {
		r.screen.SetContent(left, y, '│', nil, borderStyle)
		r.screen.SetContent(right, y, '│', nil, borderStyle)
	}
	r.screen.SetContent(left, top, '┌', nil, borderStyle)
	r.screen.SetContent(right, top, '┐', nil, borderStyle)
	r.screen.SetContent(left, bottom, '└', nil, borderStyle)
	r.screen.SetContent(right, bottom, '┘', nil, borderStyle)
}

func (r *Renderer) drawScore() {
	y := OffsetY + r.height + 1
	r.clearLine(y)
	r.drawText(OffsetX-1, y, fmt.Sprintf("Score: %d", r.score), textStyle)
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	for i, ch := range []rune(text) {
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}

func (r *Renderer) clearLine(y int) {
	w, _ := r.screen.Size()
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault)
	}
}

// tailGlyph follows the axis the tail leaves its cell along.
func tailGlyph(s *entity.Snake) string {
	dir := s.Tail().Direction
	if s.Len() > 1 {
		dir = s.Body[1].Direction
	}
	if dir.Vertical() {
		return "Ꞌ"
	}
	return "-"
}

// mouth opens toward food directly ahead.
func mouth(dir types.Direction, foodAhead bool) string {
	if foodAhead {
		switch dir {
		case types.Up:
			return "v"
		case types.Down:
			return "ʌ"
		case types.Right:
			return "<"
		default:
			return ">"
		}
	}
	switch dir {
	case types.Up:
		return "⩀"
	case types.Down:
		return "⨃"
	case types.Right:
		return "⪾"
	default:
		return "⪽"
	}
}
