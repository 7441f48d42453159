package ui

import (
	"fmt"

	"snake/buffer"
	"snake/game/entity"
	"snake/game/types"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	borderPadding = 10 // Padding around game area
	statusHeight  = 40 // Room under the grid for score and messages
)

// Renderer mirrors notifications into a cell frame and draws that frame
// once per window frame. Notifications never call into raylib, so they are
// cheap and can arrive between BeginDrawing/EndDrawing pairs.
type Renderer struct {
	frame     *buffer.Renderer
	heading   types.Direction
	foodAhead bool

	cellSize        int32
	screenWidth     int32
	screenHeight    int32
	totalGridWidth  int32
	totalGridHeight int32
	offsetX         int32
	offsetY         int32
}

func NewRenderer(width, height int) *Renderer {
	r := &Renderer{frame: buffer.NewRenderer(width, height)}
	return r
}

func (r *Renderer) OnInit(s *entity.Snake) {
	r.frame.OnInit(s)
	r.heading = s.Head().Direction
	r.foodAhead = false
}

func (r *Renderer) OnMove(s *entity.Snake, vacated types.Point, foodAhead bool) {
	r.frame.OnMove(s, vacated, foodAhead)
	r.heading = s.Head().Direction
	r.foodAhead = foodAhead
}

func (r *Renderer) OnEat(s *entity.Snake, eaten types.Food, foodAhead bool) {
	r.frame.OnEat(s, eaten, foodAhead)
	r.heading = s.Head().Direction
	r.foodAhead = foodAhead
}

func (r *Renderer) OnFoodAdded(f types.Food) {
	r.frame.OnFoodAdded(f)
}

func (r *Renderer) OnFoodRemoved(f types.Food) {
	r.frame.OnFoodRemoved(f)
}

func (r *Renderer) UpdateDimensions() {
	r.screenWidth = int32(rl.GetScreenWidth())
	r.screenHeight = int32(rl.GetScreenHeight())
}

func min(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

// Draw paints the current frame. message, when not empty, is centred over the grid.
func (r *Renderer) Draw(message string) {
	r.UpdateDimensions()
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	width := int32(r.frame.Width())
	height := int32(r.frame.Height())
	fontSize := int32(r.screenHeight / 30)

	availableWidth := r.screenWidth - (borderPadding * 2)
	availableHeight := r.screenHeight - (borderPadding * 2) - statusHeight

	r.cellSize = min(availableWidth/width, availableHeight/height)
	r.totalGridWidth = r.cellSize * width
	r.totalGridHeight = r.cellSize * height
	r.offsetX = (r.screenWidth - r.totalGridWidth) / 2
	r.offsetY = borderPadding

	// Draw grid background
	rl.DrawRectangle(r.offsetX-1, r.offsetY-1, r.totalGridWidth+2, r.totalGridHeight+2, rl.DarkGray)

	for y := int32(0); y < height; y++ {
		for x := int32(0); x < width; x++ {
			p := types.Point{X: int(x), Y: int(y)}
			cx := r.offsetX + x*r.cellSize
			cy := r.offsetY + y*r.cellSize

			switch r.frame.At(p) {
			case buffer.CellBody:
				rl.DrawRectangle(cx, cy, r.cellSize, r.cellSize, rl.Green)
			case buffer.CellHead:
				rl.DrawRectangle(cx, cy, r.cellSize, r.cellSize, rl.Lime)
				r.drawHeadIndicator(cx, cy)
			case buffer.CellFood:
				rl.DrawRectangle(cx, cy, r.cellSize, r.cellSize, rl.Red)
			case buffer.CellBonus:
				rl.DrawCircle(cx+r.cellSize/2, cy+r.cellSize/2, float32(r.cellSize)/2, rl.Gold)
			default:
				rl.DrawRectangleLines(cx, cy, r.cellSize, r.cellSize, rl.Gray)
			}
		}
	}

	scoreLabel := fmt.Sprintf("Score: %d", r.frame.Score())
	rl.DrawText(scoreLabel, r.offsetX, r.offsetY+r.totalGridHeight+borderPadding, fontSize, rl.White)

	if message != "" {
		textWidth := rl.MeasureText(message, fontSize)
		rl.DrawText(message,
			r.offsetX+(r.totalGridWidth-textWidth)/2,
			r.offsetY+r.totalGridHeight/2-fontSize/2,
			fontSize, rl.White)
	}

	rl.EndDrawing()
}

// drawHeadIndicator points a triangle the way the snake moves; it turns red
// when food is directly ahead.
func (r *Renderer) drawHeadIndicator(headX, headY int32) {
	color := rl.Yellow
	if r.foodAhead {
		color = rl.Red
	}
	halfCell := r.cellSize / 2

	switch r.heading {
	case types.Right:
		rl.DrawTriangle(
			rl.Vector2{X: float32(headX + r.cellSize), Y: float32(headY + halfCell)},
			rl.Vector2{X: float32(headX + halfCell), Y: float32(headY)},
			rl.Vector2{X: float32(headX + halfCell), Y: float32(headY + r.cellSize)},
			color)
	case types.Left:
		rl.DrawTriangle(
			rl.Vector2{X: float32(headX), Y: float32(headY + halfCell)},
			rl.Vector2{X: float32(headX + halfCell), Y: float32(headY + r.cellSize)},
			rl.Vector2{X: float32(headX + halfCell), Y: float32(headY)},
			color)
	case types.Down:
		rl.DrawTriangle(
			rl.Vector2{X: float32(headX + halfCell), Y: float32(headY + r.cellSize)},
			rl.Vector2{X: float32(headX + r.cellSize), Y: float32(headY + halfCell)},
			rl.Vector2{X: float32(headX), Y: float32(headY + halfCell)},
			color)
	default:
		rl.DrawTriangle(
			rl.Vector2{X: float32(headX + halfCell), Y: float32(headY)},
			rl.Vector2{X: float32(headX), Y: float32(headY + halfCell)},
			rl.Vector2{X: float32(headX + r.cellSize), Y: float32(headY + halfCell)},
			color)
	}
}
